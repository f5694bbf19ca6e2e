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

// Entry kinds.
const (
	KindMember  = "member"
	KindVisitor = "visitor"
)

// Payment statuses an entry may carry.
const (
	PaymentPending     = "pending"
	PaymentPaid        = "paid"
	PaymentMonthlyPass = "monthly_pass"
	PaymentAnnualPass  = "annual_pass"
	PaymentExempt      = "exempt"
)

// Gate access types.
const (
	AccessCar        = "car"
	AccessMotorbike  = "motorbike"
	AccessBicycle    = "bicycle"
	AccessPedestrian = "pedestrian"
	AccessOther      = "other"
)

// AccessTypes is the closed set of gate access types. Anything else is
// normalized to "other".
var AccessTypes = map[string]bool{
	AccessCar:        true,
	AccessMotorbike:  true,
	AccessBicycle:    true,
	AccessPedestrian: true,
	AccessOther:      true,
}

// PaymentStatuses is the closed set of entry payment statuses.
var PaymentStatuses = map[string]bool{
	PaymentPending:     true,
	PaymentPaid:        true,
	PaymentMonthlyPass: true,
	PaymentAnnualPass:  true,
	PaymentExempt:      true,
}

// EntryMember is the member summary attached to an entry.
type EntryMember struct {
	ID             int    `json:"id"`
	MemberNumber   string `json:"member_number,omitempty"`
	DocumentNumber string `json:"document_number,omitempty"`
	FullName       string `json:"full_name,omitempty"`
	Status         string `json:"status,omitempty"`
	MemberType     string `json:"member_type,omitempty"`
}

// EntryVisitor is the visitor summary attached to an entry.
type EntryVisitor struct {
	ID             int    `json:"id"`
	DocumentNumber string `json:"document_number,omitempty"`
	FullName       string `json:"full_name,omitempty"`
}

// Entry is one gate entry log row.
type Entry struct {
	ID            int           `json:"id"`
	Kind          string        `json:"kind"`
	EnteredAt     string        `json:"entered_at"`
	ValidatedBy   string        `json:"validated_by"`
	AccessType    string        `json:"access_type,omitempty"`
	Plate         string        `json:"plate,omitempty"`
	Note          string        `json:"note,omitempty"`
	PaymentStatus string        `json:"payment_status"`
	Member        *EntryMember  `json:"member,omitempty"`
	Visitor       *EntryVisitor `json:"visitor,omitempty"`
}

// EntryPage is a paginated entry listing.
type EntryPage struct {
	Page       int     `json:"page"`
	Limit      int     `json:"limit"`
	Total      int     `json:"total"`
	TotalPages int     `json:"total_pages"`
	Entries    []Entry `json:"entries"`
}

// EntryDetails carries the operator-supplied attributes of a new entry.
type EntryDetails struct {
	ValidatedBy string
	AccessType  string
	Plate       string
	Note        string
}

// EntryFilter narrows the entry listing.
type EntryFilter struct {
	From          string
	To            string
	Kind          string
	Document      string
	DocumentLike  string
	NameLike      string
	PaymentStatus string
}

// QREntryRequest registers a member entry from a scanned QR payload.
type QREntryRequest struct {
	QRData      string `json:"qr_data"`
	ValidatedBy string `json:"validated_by"`
	AccessType  string `json:"access_type"`
	Plate       string `json:"plate"`
	Note        string `json:"note"`
}

// UUIDEntryRequest registers a member entry from a linked QR tag.
type UUIDEntryRequest struct {
	UUID        string `json:"uuid"`
	ValidatedBy string `json:"validated_by"`
	AccessType  string `json:"access_type"`
	Plate       string `json:"plate"`
	Note        string `json:"note"`
}

// VisitorEntryRequest registers a non-member entry.
type VisitorEntryRequest struct {
	FullName    string `json:"full_name"`
	Document    string `json:"document"`
	ValidatedBy string `json:"validated_by"`
	AccessType  string `json:"access_type"`
	Plate       string `json:"plate"`
	Note        string `json:"note"`
}

// EntryResponse is returned after a successful registration.
type EntryResponse struct {
	Message    string        `json:"message"`
	Member     *EntryMember  `json:"member,omitempty"`
	Visitor    *EntryVisitor `json:"visitor,omitempty"`
	AccessType string        `json:"access_type,omitempty"`
	Plate      string        `json:"plate,omitempty"`
	Note       string        `json:"note,omitempty"`
}
