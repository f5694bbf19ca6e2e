/*
 * Copyright (c) 2025, ClubAccess.
 *
 * ClubAccess licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

package model

// Tag is one physical QR tag linked to a member.
type Tag struct {
	ID        int    `json:"id"`
	UUID      string `json:"uuid"`
	MemberID  int    `json:"member_id"`
	Active    bool   `json:"active"`
	LinkedAt  string `json:"linked_at,omitempty"`
	RevokedAt string `json:"revoked_at,omitempty"`
}

// LinkRequest binds a tag UUID to a member, identified by document number
// or internal member id.
type LinkRequest struct {
	UUID     string `json:"uuid"`
	Document string `json:"document,omitempty"`
	MemberID int    `json:"member_id,omitempty"`
}

// TagMember is the member summary returned when a tag resolves.
type TagMember struct {
	ID             int    `json:"id"`
	MemberNumber   string `json:"member_number,omitempty"`
	DocumentNumber string `json:"document_number,omitempty"`
	FullName       string `json:"full_name,omitempty"`
	Status         string `json:"status,omitempty"`
	MemberType     string `json:"member_type,omitempty"`
}

// ResolveResponse pairs the tag with its linked member.
type ResolveResponse struct {
	Tag    Tag       `json:"tag"`
	Member TagMember `json:"member"`
}
