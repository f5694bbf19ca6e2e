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
	"io"
	"net/http"
	"strings"

	"github.com/clubaccess/member-access-service/internal/members/provider"
	"github.com/clubaccess/member-access-service/internal/system/authn"
	errors2 "github.com/clubaccess/member-access-service/internal/system/errors"
	"github.com/clubaccess/member-access-service/internal/system/utils"
)

// maxImportFileBytes caps uploaded import files at 16 MiB, plenty for the
// tens of thousands of rows a spreadsheet export contains.
const maxImportFileBytes = 16 << 20

type MemberHandler struct{}

func NewMemberHandler() *MemberHandler {

	return &MemberHandler{}
}

// ImportMembers handles bulk member uploads from a delimited-text file.
// Admin only. With ?debug=1 the response carries detection diagnostics.
func (mh *MemberHandler) ImportMembers(w http.ResponseWriter, r *http.Request) {

	claims, err := authn.Authenticate(r)
	if err != nil {
		utils.HandleError(w, err)
		return
	}
	if err := authn.RequireAdmin(claims); err != nil {
		utils.HandleError(w, err)
		return
	}

	content, err := readImportFile(r)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	debug := r.URL.Query().Get("debug") == "1"
	memberService := provider.NewMemberProvider().GetMemberService()
	summary, err := memberService.ImportMembers(content, debug)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, summary)
}

// ListMembers handles the paginated member listing with optional search.
func (mh *MemberHandler) ListMembers(w http.ResponseWriter, r *http.Request) {

	if _, err := authn.Authenticate(r); err != nil {
		utils.HandleError(w, err)
		return
	}

	page, limit, _ := utils.ParsePagination(r)
	search := r.URL.Query().Get("search")

	memberService := provider.NewMemberProvider().GetMemberService()
	result, err := memberService.ListMembers(search, page, limit)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, result)
}

// GetMember handles member lookup by document number.
func (mh *MemberHandler) GetMember(w http.ResponseWriter, r *http.Request) {

	if _, err := authn.Authenticate(r); err != nil {
		utils.HandleError(w, err)
		return
	}

	pathParts := strings.Split(r.URL.Path, "/")
	document := pathParts[len(pathParts)-1]

	memberService := provider.NewMemberProvider().GetMemberService()
	member, err := memberService.GetMemberByDocument(document)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, member)
}

// readImportFile pulls the uploaded file out of the multipart form, falling
// back to the raw body for clients that post the file contents directly.
func readImportFile(r *http.Request) (string, error) {

	badRequest := func(description string) error {
		return errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.INVALID_REQUEST.Code,
			Message:     errors2.INVALID_REQUEST.Message,
			Description: description,
		}, http.StatusBadRequest)
	}

	contentType := r.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "multipart/form-data") {
		if err := r.ParseMultipartForm(maxImportFileBytes); err != nil {
			return "", badRequest("Could not parse the multipart upload.")
		}
		file, _, err := r.FormFile("file")
		if err != nil {
			return "", badRequest("Upload the delimited file in the 'file' form field.")
		}
		defer file.Close()

		content, err := io.ReadAll(io.LimitReader(file, maxImportFileBytes))
		if err != nil {
			return "", badRequest("Could not read the uploaded file.")
		}
		return string(content), nil
	}

	content, err := io.ReadAll(io.LimitReader(r.Body, maxImportFileBytes))
	if err != nil || len(content) == 0 {
		return "", badRequest("Request body must contain the delimited file content.")
	}
	return string(content), nil
}
