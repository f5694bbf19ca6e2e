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

	"github.com/clubaccess/member-access-service/internal/auth/model"
	"github.com/clubaccess/member-access-service/internal/auth/provider"
	errors2 "github.com/clubaccess/member-access-service/internal/system/errors"
	"github.com/clubaccess/member-access-service/internal/system/utils"
)

type AuthHandler struct{}

func NewAuthHandler() *AuthHandler {

	return &AuthHandler{}
}

// Login handles operator credential verification and token issuance.
func (ah *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {

	var request model.LoginRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&request); err != nil {
		utils.HandleError(w, errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.INVALID_REQUEST.Code,
			Message:     errors2.INVALID_REQUEST.Message,
			Description: utils.HandleDecodeError(err, "login"),
		}, http.StatusBadRequest))
		return
	}

	authService := provider.NewAuthProvider().GetAuthService()
	result, err := authService.Login(request)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, result)
}
