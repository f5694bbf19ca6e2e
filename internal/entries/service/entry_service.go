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

	"github.com/clubaccess/member-access-service/internal/entries/model"
	"github.com/clubaccess/member-access-service/internal/entries/store"
	errors2 "github.com/clubaccess/member-access-service/internal/system/errors"
	"github.com/clubaccess/member-access-service/internal/system/log"
)

// EntryServiceInterface defines entry log operations.
type EntryServiceInterface interface {
	RegisterQREntry(request model.QREntryRequest, validatedBy string) (*model.EntryResponse, error)
	RegisterUUIDEntry(request model.UUIDEntryRequest, validatedBy string) (*model.EntryResponse, error)
	RegisterVisitorEntry(request model.VisitorEntryRequest, validatedBy string) (*model.EntryResponse, error)
	ListEntries(filter model.EntryFilter, page, limit int) (*model.EntryPage, error)
	UpdatePaymentStatus(entryID int, status string) error
}

// EntryService is the default implementation of EntryServiceInterface.
type EntryService struct {
	store store.EntryStoreInterface
}

// GetEntryService returns an entry service with the Postgres store injected.
func GetEntryService() EntryServiceInterface {
	return &EntryService{
		store: &store.EntryStore{},
	}
}

// RegisterQREntry extracts an identity from the scanned payload, checks the
// member's eligibility and appends the entry to the log.
func (s *EntryService) RegisterQREntry(request model.QREntryRequest, validatedBy string) (*model.EntryResponse, error) {

	identity := ParseQRPayload(request.QRData)
	if identity.Empty() {
		return nil, errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.QR_PAYLOAD_UNRESOLVED.Code,
			Message:     errors2.QR_PAYLOAD_UNRESOLVED.Message,
			Description: "The scanned payload carries neither a document number nor a member number.",
		}, http.StatusBadRequest)
	}

	member, err := s.store.FindMemberForEntry(identity.Document, identity.MemberNumber)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, memberNotFoundError(identity)
	}
	return s.registerMemberEntry(member, entryDetails(validatedBy, request.AccessType, request.Plate, request.Note))
}

// RegisterUUIDEntry resolves a linked QR tag to its member and appends the
// entry to the log.
func (s *EntryService) RegisterUUIDEntry(request model.UUIDEntryRequest, validatedBy string) (*model.EntryResponse, error) {

	tagUUID := strings.TrimSpace(strings.ToLower(request.UUID))
	if tagUUID == "" {
		return nil, errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.INVALID_REQUEST.Code,
			Message:     errors2.INVALID_REQUEST.Message,
			Description: "A tag uuid is required.",
		}, http.StatusBadRequest)
	}

	member, err := s.store.ResolveTagMember(tagUUID)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.QR_TAG_NOT_FOUND.Code,
			Message:     errors2.QR_TAG_NOT_FOUND.Message,
			Description: fmt.Sprintf("No active tag found for uuid: %s", tagUUID),
		}, http.StatusNotFound)
	}
	return s.registerMemberEntry(member, entryDetails(validatedBy, request.AccessType, request.Plate, request.Note))
}

// RegisterVisitorEntry records an entry for a non-member, creating or
// refreshing the visitor record keyed on the document number.
func (s *EntryService) RegisterVisitorEntry(request model.VisitorEntryRequest, validatedBy string) (*model.EntryResponse, error) {

	document := digitsOnly(request.Document)
	fullName := strings.TrimSpace(request.FullName)
	if document == "" || fullName == "" {
		return nil, errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.INVALID_REQUEST.Code,
			Message:     errors2.INVALID_REQUEST.Message,
			Description: "A visitor entry requires a document number and a full name.",
		}, http.StatusBadRequest)
	}

	details := entryDetails(validatedBy, request.AccessType, request.Plate, request.Note)
	visitor, err := s.store.RegisterVisitorEntry(document, fullName, details)
	if err != nil {
		return nil, err
	}

	log.GetLogger().Info("Registered visitor entry.",
		log.String("document", document), log.String("accessType", details.AccessType))
	return &model.EntryResponse{
		Message:    "Visitor entry registered.",
		Visitor:    visitor,
		AccessType: details.AccessType,
		Plate:      details.Plate,
		Note:       details.Note,
	}, nil
}

// ListEntries returns one page of the entry log matching the filter.
func (s *EntryService) ListEntries(filter model.EntryFilter, page, limit int) (*model.EntryPage, error) {

	filter.Document = digitsOnly(filter.Document)
	filter.DocumentLike = digitsOnly(filter.DocumentLike)
	filter.NameLike = strings.TrimSpace(filter.NameLike)
	if filter.PaymentStatus != "" {
		status := normalizePaymentStatus(filter.PaymentStatus)
		if !model.PaymentStatuses[status] {
			return nil, invalidPaymentStatusError(filter.PaymentStatus)
		}
		filter.PaymentStatus = status
	}

	offset := (page - 1) * limit
	entries, total, err := s.store.ListEntries(filter, limit, offset)
	if err != nil {
		return nil, err
	}

	totalPages := (total + limit - 1) / limit
	if totalPages < 1 {
		totalPages = 1
	}

	return &model.EntryPage{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
		Entries:    entries,
	}, nil
}

// UpdatePaymentStatus sets a new payment status on one entry.
func (s *EntryService) UpdatePaymentStatus(entryID int, status string) error {

	normalized := normalizePaymentStatus(status)
	if !model.PaymentStatuses[normalized] {
		return invalidPaymentStatusError(status)
	}

	found, err := s.store.UpdatePaymentStatus(entryID, normalized)
	if err != nil {
		return err
	}
	if !found {
		return errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.ENTRY_NOT_FOUND.Code,
			Message:     errors2.ENTRY_NOT_FOUND.Message,
			Description: fmt.Sprintf("No entry found with id: %d", entryID),
		}, http.StatusNotFound)
	}
	return nil
}

// registerMemberEntry enforces eligibility before writing the entry. A member
// enters when the status is ACTIVO or the member type grants a lifetime pass.
func (s *EntryService) registerMemberEntry(member *model.EntryMember, details model.EntryDetails) (*model.EntryResponse, error) {

	if !eligibleForEntry(member) {
		return nil, errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.MEMBER_NOT_ELIGIBLE.Code,
			Message:     errors2.MEMBER_NOT_ELIGIBLE.Message,
			Description: fmt.Sprintf("Member %s has status %q.", member.DocumentNumber, member.Status),
		}, http.StatusForbidden)
	}

	if err := s.store.InsertMemberEntry(member.ID, details); err != nil {
		return nil, err
	}

	log.GetLogger().Info("Registered member entry.",
		log.String("document", member.DocumentNumber), log.String("accessType", details.AccessType))
	return &model.EntryResponse{
		Message:    "Member entry registered.",
		Member:     member,
		AccessType: details.AccessType,
		Plate:      details.Plate,
		Note:       details.Note,
	}, nil
}

func eligibleForEntry(member *model.EntryMember) bool {
	if strings.EqualFold(strings.TrimSpace(member.Status), "ACTIVO") {
		return true
	}
	return strings.Contains(strings.ToUpper(member.MemberType), "VITALICIO")
}

// entryDetails sanitizes the operator-supplied attributes. Unknown access
// types collapse to "other" and plates are stored uppercase.
func entryDetails(validatedBy, accessType, plate, note string) model.EntryDetails {

	accessType = strings.TrimSpace(strings.ToLower(accessType))
	if accessType != "" && !model.AccessTypes[accessType] {
		accessType = model.AccessOther
	}
	return model.EntryDetails{
		ValidatedBy: validatedBy,
		AccessType:  accessType,
		Plate:       strings.ToUpper(strings.TrimSpace(plate)),
		Note:        strings.TrimSpace(note),
	}
}

// normalizePaymentStatus folds case and separator variants onto the stored
// form, so "Monthly Pass" and "monthly-pass" both resolve.
func normalizePaymentStatus(status string) string {
	s := strings.ToLower(strings.TrimSpace(status))
	s = strings.ReplaceAll(s, " ", "_")
	return strings.ReplaceAll(s, "-", "_")
}

func invalidPaymentStatusError(status string) error {
	return errors2.NewClientError(errors2.ErrorMessage{
		Code:        errors2.INVALID_PAYMENT_STATUS.Code,
		Message:     errors2.INVALID_PAYMENT_STATUS.Message,
		Description: fmt.Sprintf("Unsupported payment status: %s", status),
	}, http.StatusBadRequest)
}

func memberNotFoundError(identity QRIdentity) error {
	ref := identity.Document
	if ref == "" {
		ref = identity.MemberNumber
	}
	return errors2.NewClientError(errors2.ErrorMessage{
		Code:        errors2.MEMBER_NOT_FOUND.Code,
		Message:     errors2.MEMBER_NOT_FOUND.Message,
		Description: fmt.Sprintf("No member found for: %s", ref),
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
