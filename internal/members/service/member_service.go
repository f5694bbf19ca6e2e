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
	goerrors "errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/clubaccess/member-access-service/internal/members/importer"
	"github.com/clubaccess/member-access-service/internal/members/model"
	"github.com/clubaccess/member-access-service/internal/members/store"
	"github.com/clubaccess/member-access-service/internal/system/database/provider"
	errors2 "github.com/clubaccess/member-access-service/internal/system/errors"
	"github.com/clubaccess/member-access-service/internal/system/log"
)

// MemberServiceInterface defines member record operations.
type MemberServiceInterface interface {
	ImportMembers(content string, debug bool) (*importer.Summary, error)
	ListMembers(search string, page, limit int) (*model.MemberPage, error)
	GetMemberByDocument(document string) (*model.Member, error)
}

// MemberService is the default implementation of MemberServiceInterface.
type MemberService struct {
	store store.MemberStoreInterface
}

// GetMemberService returns a member service with the Postgres store injected.
func GetMemberService() MemberServiceInterface {
	return &MemberService{
		store: &store.MemberStore{},
	}
}

// ImportMembers runs the ingestion pipeline over the uploaded file content.
// Header validation failures surface as a client error before any write;
// any row-level failure rolls the whole batch back and surfaces as a server
// error.
func (s *MemberService) ImportMembers(content string, debug bool) (*importer.Summary, error) {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		errorMsg := "Failed to get database client for member import"
		logger.Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.IMPORT_MEMBERS.Code,
			Message:     errors2.IMPORT_MEMBERS.Message,
			Description: errorMsg,
		}, err)
	}
	defer dbClient.Close()

	summary, err := importer.NewImporter(dbClient, s.store).Run(content, debug)
	if err != nil {
		var headerErr *importer.HeaderValidationError
		if goerrors.As(err, &headerErr) {
			description := fmt.Sprintf(
				"A document column and a full-name or member-number column are required. Mapped headers: [%s]",
				strings.Join(headerErr.Mapping.Normalized, ", "))
			return nil, errors2.NewClientError(errors2.ErrorMessage{
				Code:        errors2.INVALID_IMPORT_HEADERS.Code,
				Message:     errors2.INVALID_IMPORT_HEADERS.Message,
				Description: description,
			}, http.StatusBadRequest)
		}

		logger.Debug("Member import failed.", log.Error(err))
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.IMPORT_MEMBERS.Code,
			Message:     errors2.IMPORT_MEMBERS.Message,
			Description: "The import was rolled back; no rows were written.",
		}, err)
	}

	return summary, nil
}

// ListMembers returns one page of members matching the optional search term.
func (s *MemberService) ListMembers(search string, page, limit int) (*model.MemberPage, error) {

	offset := (page - 1) * limit
	members, total, err := s.store.ListMembers(strings.TrimSpace(search), limit, offset)
	if err != nil {
		return nil, err
	}

	totalPages := (total + limit - 1) / limit
	if totalPages < 1 {
		totalPages = 1
	}

	return &model.MemberPage{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
		Members:    members,
	}, nil
}

// GetMemberByDocument fetches a member by document number. The lookup value
// is reduced to digits first, mirroring how documents are stored.
func (s *MemberService) GetMemberByDocument(document string) (*model.Member, error) {

	normalized := digitsOnly(document)
	member, err := s.store.GetMemberByDocument(normalized)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.MEMBER_NOT_FOUND.Code,
			Message:     errors2.MEMBER_NOT_FOUND.Message,
			Description: fmt.Sprintf("No member found for document: %s", normalized),
		}, http.StatusNotFound)
	}
	return member, nil
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
