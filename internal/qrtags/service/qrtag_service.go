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
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/clubaccess/member-access-service/internal/qrtags/model"
	"github.com/clubaccess/member-access-service/internal/qrtags/store"
	errors2 "github.com/clubaccess/member-access-service/internal/system/errors"
	"github.com/clubaccess/member-access-service/internal/system/log"
)

// TagServiceInterface defines QR tag operations.
type TagServiceInterface interface {
	LinkTag(request model.LinkRequest) (*model.Tag, error)
	ResolveTag(tagUUID string) (*model.ResolveResponse, error)
	RevokeTag(tagUUID string) error
}

// TagService is the default implementation of TagServiceInterface.
type TagService struct {
	store store.TagStoreInterface
}

// GetTagService returns a tag service with the Postgres store injected.
func GetTagService() TagServiceInterface {
	return &TagService{
		store: &store.TagStore{},
	}
}

// LinkTag binds a tag UUID to a member. Relinking moves the tag and clears
// any earlier revocation.
func (s *TagService) LinkTag(request model.LinkRequest) (*model.Tag, error) {

	tagUUID, err := normalizeTagUUID(request.UUID)
	if err != nil {
		return nil, err
	}

	document := digitsOnly(request.Document)
	if document == "" && request.MemberID <= 0 {
		return nil, errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.INVALID_REQUEST.Code,
			Message:     errors2.INVALID_REQUEST.Message,
			Description: "A document number or member id is required to link a tag.",
		}, http.StatusBadRequest)
	}

	memberID, err := s.store.FindMemberID(document, request.MemberID)
	if err != nil {
		return nil, err
	}
	if memberID == 0 {
		return nil, errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.MEMBER_NOT_FOUND.Code,
			Message:     errors2.MEMBER_NOT_FOUND.Message,
			Description: "No member matches the link request.",
		}, http.StatusNotFound)
	}

	tag, err := s.store.LinkTag(tagUUID, memberID)
	if err != nil {
		return nil, err
	}

	log.GetLogger().Info("Linked QR tag.", log.String("uuid", tagUUID), log.Int("memberId", memberID))
	return tag, nil
}

// ResolveTag returns the member linked to an active tag.
func (s *TagService) ResolveTag(tagUUID string) (*model.ResolveResponse, error) {

	normalized, err := normalizeTagUUID(tagUUID)
	if err != nil {
		return nil, err
	}

	result, err := s.store.ResolveTag(normalized)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, tagNotFoundError(normalized)
	}
	return result, nil
}

// RevokeTag deactivates a tag so it no longer resolves or grants entry.
func (s *TagService) RevokeTag(tagUUID string) error {

	normalized, err := normalizeTagUUID(tagUUID)
	if err != nil {
		return err
	}

	found, err := s.store.RevokeTag(normalized)
	if err != nil {
		return err
	}
	if !found {
		return tagNotFoundError(normalized)
	}

	log.GetLogger().Info("Revoked QR tag.", log.String("uuid", normalized))
	return nil
}

// normalizeTagUUID validates the UUID and folds it to canonical lowercase.
func normalizeTagUUID(raw string) (string, error) {

	parsed, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.INVALID_REQUEST.Code,
			Message:     errors2.INVALID_REQUEST.Message,
			Description: fmt.Sprintf("Invalid tag uuid: %s", raw),
		}, http.StatusBadRequest)
	}
	return parsed.String(), nil
}

func tagNotFoundError(tagUUID string) error {
	return errors2.NewClientError(errors2.ErrorMessage{
		Code:        errors2.QR_TAG_NOT_FOUND.Code,
		Message:     errors2.QR_TAG_NOT_FOUND.Message,
		Description: fmt.Sprintf("No tag found for uuid: %s", tagUUID),
	}, http.StatusNotFound)
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
