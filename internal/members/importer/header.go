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

package importer

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"github.com/clubaccess/member-access-service/internal/members/model"
)

const headerScanLines = 80

// headerSynonyms maps normalized spreadsheet header labels to canonical
// member columns. Labels are matched after NormalizeHeader, so diacritics,
// case, periods and duplicate spaces are already gone.
var headerSynonyms = map[string]string{
	"nro socio":       model.FieldMemberNumber,
	"numero de socio": model.FieldMemberNumber,

	"apellidonombre":    model.FieldFullName,
	"apellido nombre":   model.FieldFullName,
	"apellido y nombre": model.FieldFullName,

	"fecha nac":        model.FieldBirthDate,
	"fecha nacimiento": model.FieldBirthDate,

	"edad": model.FieldAge,

	"ant fecha alta": model.FieldPrevAdmissionDate,

	"fecha alta": model.FieldAdmissionDate,

	"sexo": model.FieldGender,

	"categoria": model.FieldCategory,

	"estado":         model.FieldStatus,
	"estado general": model.FieldStatus,

	"fecha tope":              model.FieldValidUntil,
	"fecha tope habilitacion": model.FieldValidUntil,

	"fecha baja": model.FieldTerminationDate,

	"tipo socio": model.FieldMemberType,
	"tiposocio":  model.FieldMemberType,

	"grupo fliar": model.FieldFamilyGroup,

	"titular": model.FieldHolder,

	"tipo doc": model.FieldDocumentType,

	"documento":         model.FieldDocumentNumber,
	"dni":               model.FieldDocumentNumber,
	"nro doc":           model.FieldDocumentNumber,
	"n° doc":            model.FieldDocumentNumber,
	"numero documento":  model.FieldDocumentNumber,
	"numero de documento": model.FieldDocumentNumber,

	"domicilio": model.FieldAddress,
	"telefono":  model.FieldPhone,
	"celular":   model.FieldMobile,
	"email":     model.FieldEmail,
	"mail":      model.FieldEmail,
	"ciudad":    model.FieldCity,
	"cp":        model.FieldPostalCode,
	"provincia": model.FieldProvince,
	"pais":      model.FieldCountry,

	"ultima fecha pago":    model.FieldLastPaymentDate,
	"ultima fecha de pago": model.FieldLastPaymentDate,
}

// Label groups used by the header-line locator.
var (
	documentLabels = []string{"dni", "documento", "nro doc", "n° doc", "numero documento"}
	fullNameLabels = []string{"apellido nombre", "apellido y nombre", "apellidonombre"}
	memberNoLabels = []string{"nro socio", "numero de socio"}
)

// NormalizeHeader folds a raw header cell to its lookup form: trimmed,
// lower-cased, diacritics stripped, periods and slashes turned into spaces,
// runs of whitespace collapsed.
func NormalizeHeader(h string) string {

	s := strings.ToLower(strings.TrimSpace(h))
	s = stripDiacritics(s)
	s = strings.NewReplacer(".", " ", "/", " ").Replace(s)
	s = strings.Join(strings.Fields(s), " ")
	return s
}

// stripDiacritics decomposes to NFD and drops combining marks.
func stripDiacritics(s string) string {
	decomposed := norm.NFD.String(s)
	var result strings.Builder
	result.Grow(len(decomposed))
	for _, r := range decomposed {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		result.WriteRune(r)
	}
	return result.String()
}

// LocateHeaderLine scans up to the first 80 lines for the real header row.
// Source spreadsheets often prepend a free-text title line, so a line only
// qualifies when a document label co-occurs with a full-name or member-number
// label. Returns a 1-based line index; when nothing qualifies the first line
// is assumed to be the header.
func LocateHeaderLine(content string, delimiter rune) int {

	lines := splitLines(content)
	limit := len(lines)
	if limit > headerScanLines {
		limit = headerScanLines
	}

	for i := 0; i < limit; i++ {
		cells := strings.Split(lines[i], string(delimiter))
		normalized := make([]string, len(cells))
		for j, c := range cells {
			normalized[j] = NormalizeHeader(c)
		}

		hasDocument := containsAny(normalized, documentLabels)
		hasFullName := containsAny(normalized, fullNameLabels)
		hasMemberNo := containsAny(normalized, memberNoLabels)

		if hasDocument && (hasFullName || hasMemberNo) {
			return i + 1
		}
	}
	return 1
}

// HeaderMapping is the resolved projection from file columns to canonical
// member columns. Unmapped columns hold an empty string.
type HeaderMapping struct {
	Raw        []string `json:"raw"`
	Normalized []string `json:"normalized"`
	Mapped     []string `json:"mapped"`
}

// HeaderValidationError reports the one hard import precondition: the header
// row must resolve a document column plus a full-name or member-number
// column.
type HeaderValidationError struct {
	Mapping HeaderMapping
}

func (e *HeaderValidationError) Error() string {
	return "invalid headers: a document column and a full-name or member-number column are required"
}

// MapHeaders resolves the raw header row against the synonym table. When no
// header maps at all, a positional fallback is applied: first column member
// number, second column full name, and any column literally labeled
// dni/documento as the document number. The returned mapping is validated
// against the import precondition.
func MapHeaders(raw []string) (HeaderMapping, error) {

	mapping := HeaderMapping{
		Raw:        append([]string(nil), raw...),
		Normalized: make([]string, len(raw)),
		Mapped:     make([]string, len(raw)),
	}

	anyMapped := false
	for i, cell := range raw {
		mapping.Normalized[i] = NormalizeHeader(cell)
		mapping.Mapped[i] = headerSynonyms[mapping.Normalized[i]]
		if mapping.Mapped[i] != "" {
			anyMapped = true
		}
	}

	// Positional fallback only when every header failed to map.
	if !anyMapped && len(mapping.Mapped) > 0 {
		mapping.Mapped[0] = model.FieldMemberNumber
		if len(mapping.Mapped) > 1 {
			mapping.Mapped[1] = model.FieldFullName
		}
		for i, h := range mapping.Normalized {
			if h == "dni" || h == "documento" {
				mapping.Mapped[i] = model.FieldDocumentNumber
			}
		}
	}

	hasDocument := false
	hasFullName := false
	hasMemberNo := false
	for _, col := range mapping.Mapped {
		switch col {
		case model.FieldDocumentNumber:
			hasDocument = true
		case model.FieldFullName:
			hasFullName = true
		case model.FieldMemberNumber:
			hasMemberNo = true
		}
	}

	if !hasDocument || (!hasFullName && !hasMemberNo) {
		return mapping, &HeaderValidationError{Mapping: mapping}
	}
	return mapping, nil
}

func containsAny(haystack []string, needles []string) bool {
	for _, h := range haystack {
		for _, n := range needles {
			if h == n {
				return true
			}
		}
	}
	return false
}
