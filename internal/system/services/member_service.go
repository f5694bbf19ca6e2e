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

package services

import (
	"fmt"
	"net/http"

	"github.com/clubaccess/member-access-service/internal/members/handler"
)

type MemberService struct {
	memberHandler *handler.MemberHandler
}

func NewMemberService(mux *http.ServeMux, apiBasePath string) *MemberService {

	instance := &MemberService{
		memberHandler: handler.NewMemberHandler(),
	}
	instance.RegisterRoutes(mux, apiBasePath)

	return instance
}

func (s *MemberService) RegisterRoutes(mux *http.ServeMux, apiBasePath string) {

	mux.HandleFunc(fmt.Sprintf("POST %s/members/import", apiBasePath), s.memberHandler.ImportMembers)
	mux.HandleFunc(fmt.Sprintf("GET %s/members", apiBasePath), s.memberHandler.ListMembers)
	mux.HandleFunc(fmt.Sprintf("GET %s/members/", apiBasePath), s.memberHandler.GetMember)
}
