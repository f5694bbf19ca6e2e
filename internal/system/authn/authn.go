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

package authn

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/clubaccess/member-access-service/internal/system/config"
	"github.com/clubaccess/member-access-service/internal/system/constants"
	errors2 "github.com/clubaccess/member-access-service/internal/system/errors"
	"github.com/clubaccess/member-access-service/internal/system/log"
)

const defaultTokenLifetimeHours = 8

// UserClaims carries the identity of an authenticated staff user.
type UserClaims struct {
	UserID   int
	Username string
	Role     string
}

// IssueToken signs a JWT for the given user with the configured secret and lifetime.
func IssueToken(userID int, username, role string) (string, error) {

	authConfig := config.GetRuntime().Config.Auth
	lifetime := authConfig.TokenLifetimeHours
	if lifetime <= 0 {
		lifetime = defaultTokenLifetimeHours
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":      strconv.Itoa(userID),
		"username": username,
		"role":     role,
		"iat":      now.Unix(),
		"exp":      now.Add(time.Duration(lifetime) * time.Hour).Unix(),
	})

	signed, err := token.SignedString([]byte(authConfig.JWTSecret))
	if err != nil {
		return "", errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.AUTHENTICATE_USER.Code,
			Message:     errors2.AUTHENTICATE_USER.Message,
			Description: "Failed to sign authentication token.",
		}, err)
	}
	return signed, nil
}

// Authenticate validates the Authorization: Bearer token on the request and
// returns the embedded user claims.
func Authenticate(r *http.Request) (*UserClaims, error) {

	logger := log.GetLogger()

	authHeader := r.Header.Get("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return nil, unauthorizedError("Missing bearer token.")
	}
	tokenString := strings.TrimPrefix(authHeader, "Bearer ")

	claims := jwt.MapClaims{}
	secret := config.GetRuntime().Config.Auth.JWTSecret
	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil {
		logger.Debug("Token validation failed.", log.Error(err))
		return nil, unauthorizedError("Token is invalid or expired.")
	}

	return claimsToUser(claims)
}

// RequireAdmin ensures the authenticated user carries the admin role.
func RequireAdmin(claims *UserClaims) error {

	if claims == nil || claims.Role != constants.RoleAdmin {
		return errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.FORBIDDEN.Code,
			Message:     errors2.FORBIDDEN.Message,
			Description: "This operation requires the admin role.",
		}, http.StatusForbidden)
	}
	return nil
}

func claimsToUser(claims jwt.MapClaims) (*UserClaims, error) {

	sub, _ := claims["sub"].(string)
	userID, err := strconv.Atoi(sub)
	if err != nil {
		return nil, unauthorizedError("Token subject is not a valid user id.")
	}

	username, _ := claims["username"].(string)
	role, _ := claims["role"].(string)
	if username == "" || role == "" {
		return nil, unauthorizedError("Token is missing required claims.")
	}

	return &UserClaims{
		UserID:   userID,
		Username: username,
		Role:     role,
	}, nil
}

func unauthorizedError(description string) *errors2.ClientError {

	return errors2.NewClientError(errors2.ErrorMessage{
		Code:        errors2.UNAUTHORIZED.Code,
		Message:     errors2.UNAUTHORIZED.Message,
		Description: description,
	}, http.StatusUnauthorized)
}
