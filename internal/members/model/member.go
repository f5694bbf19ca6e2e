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

package model

// Canonical member record columns. Import files may carry any subset of
// these; anything outside the set is dropped at mapping time.
const (
	FieldMemberNumber      = "member_number"
	FieldFullName          = "full_name"
	FieldBirthDate         = "birth_date"
	FieldAge               = "age"
	FieldPrevAdmissionDate = "prev_admission_date"
	FieldAdmissionDate     = "admission_date"
	FieldGender            = "gender"
	FieldCategory          = "category"
	FieldStatus            = "status"
	FieldValidUntil        = "valid_until"
	FieldTerminationDate   = "termination_date"
	FieldMemberType        = "member_type"
	FieldFamilyGroup       = "family_group"
	FieldHolder            = "holder"
	FieldDocumentType      = "document_type"
	FieldDocumentNumber    = "document_number"
	FieldAddress           = "address"
	FieldPhone             = "phone"
	FieldMobile            = "mobile"
	FieldEmail             = "email"
	FieldCity              = "city"
	FieldPostalCode        = "postal_code"
	FieldProvince          = "province"
	FieldCountry           = "country"
	FieldLastPaymentDate   = "last_payment_date"
)

// CanonicalFields is the closed set of columns a member record may hold.
var CanonicalFields = map[string]bool{
	FieldMemberNumber:      true,
	FieldFullName:          true,
	FieldBirthDate:         true,
	FieldAge:               true,
	FieldPrevAdmissionDate: true,
	FieldAdmissionDate:     true,
	FieldGender:            true,
	FieldCategory:          true,
	FieldStatus:            true,
	FieldValidUntil:        true,
	FieldTerminationDate:   true,
	FieldMemberType:        true,
	FieldFamilyGroup:       true,
	FieldHolder:            true,
	FieldDocumentType:      true,
	FieldDocumentNumber:    true,
	FieldAddress:           true,
	FieldPhone:             true,
	FieldMobile:            true,
	FieldEmail:             true,
	FieldCity:              true,
	FieldPostalCode:        true,
	FieldProvince:          true,
	FieldCountry:           true,
	FieldLastPaymentDate:   true,
}

// DateFields lists the canonical fields holding calendar dates. Values in
// these columns are normalized to YYYY-MM-DD or stored absent.
var DateFields = []string{
	FieldBirthDate,
	FieldPrevAdmissionDate,
	FieldAdmissionDate,
	FieldValidUntil,
	FieldTerminationDate,
	FieldLastPaymentDate,
}

// Member is a club member record as served by the API. All fields except the
// document number are optional.
type Member struct {
	ID                int    `json:"id"`
	MemberNumber      string `json:"member_number,omitempty"`
	FullName          string `json:"full_name,omitempty"`
	BirthDate         string `json:"birth_date,omitempty"`
	Age               string `json:"age,omitempty"`
	PrevAdmissionDate string `json:"prev_admission_date,omitempty"`
	AdmissionDate     string `json:"admission_date,omitempty"`
	Gender            string `json:"gender,omitempty"`
	Category          string `json:"category,omitempty"`
	Status            string `json:"status,omitempty"`
	ValidUntil        string `json:"valid_until,omitempty"`
	TerminationDate   string `json:"termination_date,omitempty"`
	MemberType        string `json:"member_type,omitempty"`
	FamilyGroup       string `json:"family_group,omitempty"`
	Holder            string `json:"holder,omitempty"`
	DocumentType      string `json:"document_type,omitempty"`
	DocumentNumber    string `json:"document_number"`
	Address           string `json:"address,omitempty"`
	Phone             string `json:"phone,omitempty"`
	Mobile            string `json:"mobile,omitempty"`
	Email             string `json:"email,omitempty"`
	City              string `json:"city,omitempty"`
	PostalCode        string `json:"postal_code,omitempty"`
	Province          string `json:"province,omitempty"`
	Country           string `json:"country,omitempty"`
	LastPaymentDate   string `json:"last_payment_date,omitempty"`
}

// MemberPage is a paginated member listing.
type MemberPage struct {
	Page       int      `json:"page"`
	Limit      int      `json:"limit"`
	Total      int      `json:"total"`
	TotalPages int      `json:"total_pages"`
	Members    []Member `json:"members"`
}
