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

package service

import (
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/clubaccess/member-access-service/internal/auth/model"
	"github.com/clubaccess/member-access-service/internal/auth/store"
	"github.com/clubaccess/member-access-service/internal/system/authn"
	errors2 "github.com/clubaccess/member-access-service/internal/system/errors"
	"github.com/clubaccess/member-access-service/internal/system/log"
)

// AuthServiceInterface defines operator authentication operations.
type AuthServiceInterface interface {
	Login(request model.LoginRequest) (*model.LoginResponse, error)
}

// AuthService is the default implementation of AuthServiceInterface.
type AuthService struct {
	store store.UserStoreInterface
}

// GetAuthService returns an auth service with the Postgres store injected.
func GetAuthService() AuthServiceInterface {
	return &AuthService{
		store: &store.UserStore{},
	}
}

// Login verifies the credentials and issues a signed token. Unknown users
// and wrong passwords produce the same response.
func (s *AuthService) Login(request model.LoginRequest) (*model.LoginResponse, error) {

	username := strings.TrimSpace(request.Username)
	if username == "" || request.Password == "" {
		return nil, invalidCredentialsError()
	}

	user, err := s.store.GetUserByUsername(username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, invalidCredentialsError()
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(request.Password)); err != nil {
		return nil, invalidCredentialsError()
	}

	token, err := authn.IssueToken(user.ID, user.Username, user.Role)
	if err != nil {
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.AUTHENTICATE_USER.Code,
			Message:     errors2.AUTHENTICATE_USER.Message,
			Description: "Failed to issue token",
		}, err)
	}

	log.GetLogger().Info("User logged in.", log.String("username", user.Username))
	return &model.LoginResponse{
		Token:    token,
		Username: user.Username,
		Role:     user.Role,
	}, nil
}

func invalidCredentialsError() error {
	return errors2.NewClientError(errors2.ErrorMessage{
		Code:        errors2.INVALID_CREDENTIALS.Code,
		Message:     errors2.INVALID_CREDENTIALS.Message,
		Description: "The username or password is incorrect.",
	}, http.StatusUnauthorized)
}
