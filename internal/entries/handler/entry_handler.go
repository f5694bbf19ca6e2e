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
	"strconv"

	"github.com/clubaccess/member-access-service/internal/entries/model"
	"github.com/clubaccess/member-access-service/internal/entries/provider"
	"github.com/clubaccess/member-access-service/internal/system/authn"
	errors2 "github.com/clubaccess/member-access-service/internal/system/errors"
	"github.com/clubaccess/member-access-service/internal/system/utils"
)

type EntryHandler struct{}

func NewEntryHandler() *EntryHandler {

	return &EntryHandler{}
}

// RegisterQREntry handles member entry registration from a scanned QR payload.
func (eh *EntryHandler) RegisterQREntry(w http.ResponseWriter, r *http.Request) {

	claims, err := authn.Authenticate(r)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	var request model.QREntryRequest
	if err := decodeBody(r, &request, "QR entry"); err != nil {
		utils.HandleError(w, err)
		return
	}

	entryService := provider.NewEntryProvider().GetEntryService()
	result, err := entryService.RegisterQREntry(request, claims.Username)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	utils.WriteJSONResponse(w, http.StatusCreated, result)
}

// RegisterUUIDEntry handles member entry registration from a linked QR tag.
func (eh *EntryHandler) RegisterUUIDEntry(w http.ResponseWriter, r *http.Request) {

	claims, err := authn.Authenticate(r)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	var request model.UUIDEntryRequest
	if err := decodeBody(r, &request, "tag entry"); err != nil {
		utils.HandleError(w, err)
		return
	}

	entryService := provider.NewEntryProvider().GetEntryService()
	result, err := entryService.RegisterUUIDEntry(request, claims.Username)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	utils.WriteJSONResponse(w, http.StatusCreated, result)
}

// RegisterVisitorEntry handles non-member entry registration.
func (eh *EntryHandler) RegisterVisitorEntry(w http.ResponseWriter, r *http.Request) {

	claims, err := authn.Authenticate(r)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	var request model.VisitorEntryRequest
	if err := decodeBody(r, &request, "visitor entry"); err != nil {
		utils.HandleError(w, err)
		return
	}

	entryService := provider.NewEntryProvider().GetEntryService()
	result, err := entryService.RegisterVisitorEntry(request, claims.Username)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	utils.WriteJSONResponse(w, http.StatusCreated, result)
}

// ListEntries handles the filtered, paginated entry log listing.
func (eh *EntryHandler) ListEntries(w http.ResponseWriter, r *http.Request) {

	if _, err := authn.Authenticate(r); err != nil {
		utils.HandleError(w, err)
		return
	}

	page, limit, _ := utils.ParsePagination(r)
	query := r.URL.Query()
	filter := model.EntryFilter{
		From:          query.Get("from"),
		To:            query.Get("to"),
		Kind:          query.Get("kind"),
		Document:      query.Get("document"),
		DocumentLike:  query.Get("document_like"),
		NameLike:      query.Get("name"),
		PaymentStatus: query.Get("payment_status"),
	}

	entryService := provider.NewEntryProvider().GetEntryService()
	result, err := entryService.ListEntries(filter, page, limit)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, result)
}

// UpdatePaymentStatus handles payment status changes on one entry.
func (eh *EntryHandler) UpdatePaymentStatus(w http.ResponseWriter, r *http.Request) {

	if _, err := authn.Authenticate(r); err != nil {
		utils.HandleError(w, err)
		return
	}

	entryID, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		utils.HandleError(w, errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.INVALID_REQUEST.Code,
			Message:     errors2.INVALID_REQUEST.Message,
			Description: "The entry id must be numeric.",
		}, http.StatusBadRequest))
		return
	}

	var request struct {
		PaymentStatus string `json:"payment_status"`
	}
	if err := decodeBody(r, &request, "payment status"); err != nil {
		utils.HandleError(w, err)
		return
	}

	entryService := provider.NewEntryProvider().GetEntryService()
	if err := entryService.UpdatePaymentStatus(entryID, request.PaymentStatus); err != nil {
		utils.HandleError(w, err)
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, map[string]string{"message": "Payment status updated."})
}

func decodeBody(r *http.Request, target interface{}, resourceName string) error {

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(target); err != nil {
		return errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.INVALID_REQUEST.Code,
			Message:     errors2.INVALID_REQUEST.Message,
			Description: utils.HandleDecodeError(err, resourceName),
		}, http.StatusBadRequest)
	}
	return nil
}
