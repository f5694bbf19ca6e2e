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

package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/clubaccess/member-access-service/internal/qrtags/model"
	"github.com/clubaccess/member-access-service/internal/qrtags/provider"
	"github.com/clubaccess/member-access-service/internal/system/authn"
	errors2 "github.com/clubaccess/member-access-service/internal/system/errors"
	"github.com/clubaccess/member-access-service/internal/system/utils"
)

type TagHandler struct{}

func NewTagHandler() *TagHandler {

	return &TagHandler{}
}

// LinkTag handles binding a tag UUID to a member. Admin only.
func (th *TagHandler) LinkTag(w http.ResponseWriter, r *http.Request) {

	claims, err := authn.Authenticate(r)
	if err != nil {
		utils.HandleError(w, err)
		return
	}
	if err := authn.RequireAdmin(claims); err != nil {
		utils.HandleError(w, err)
		return
	}

	var request model.LinkRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&request); err != nil {
		utils.HandleError(w, errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.INVALID_REQUEST.Code,
			Message:     errors2.INVALID_REQUEST.Message,
			Description: utils.HandleDecodeError(err, "tag link"),
		}, http.StatusBadRequest))
		return
	}

	tagService := provider.NewTagProvider().GetTagService()
	tag, err := tagService.LinkTag(request)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, tag)
}

// ResolveTag handles looking up the member behind an active tag.
func (th *TagHandler) ResolveTag(w http.ResponseWriter, r *http.Request) {

	if _, err := authn.Authenticate(r); err != nil {
		utils.HandleError(w, err)
		return
	}

	pathParts := strings.Split(r.URL.Path, "/")
	tagUUID := pathParts[len(pathParts)-1]

	tagService := provider.NewTagProvider().GetTagService()
	result, err := tagService.ResolveTag(tagUUID)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, result)
}

// RevokeTag handles deactivating a tag. Admin only.
func (th *TagHandler) RevokeTag(w http.ResponseWriter, r *http.Request) {

	claims, err := authn.Authenticate(r)
	if err != nil {
		utils.HandleError(w, err)
		return
	}
	if err := authn.RequireAdmin(claims); err != nil {
		utils.HandleError(w, err)
		return
	}

	pathParts := strings.Split(r.URL.Path, "/")
	tagUUID := pathParts[len(pathParts)-1]

	tagService := provider.NewTagProvider().GetTagService()
	if err := tagService.RevokeTag(tagUUID); err != nil {
		utils.HandleError(w, err)
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, map[string]string{"message": "Tag revoked."})
}
