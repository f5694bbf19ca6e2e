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

package provider

import (
	"github.com/clubaccess/member-access-service/internal/members/service"
)

// MemberProviderInterface defines the interface for the member provider.
type MemberProviderInterface interface {
	GetMemberService() service.MemberServiceInterface
}

// MemberProvider is the default implementation of the MemberProviderInterface.
type MemberProvider struct{}

// NewMemberProvider creates a new instance of MemberProvider.
func NewMemberProvider() MemberProviderInterface {

	return &MemberProvider{}
}

// GetMemberService returns the member service instance.
func (mp *MemberProvider) GetMemberService() service.MemberServiceInterface {

	return service.GetMemberService()
}
