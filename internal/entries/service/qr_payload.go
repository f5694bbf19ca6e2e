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
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
)

// QRIdentity is the identity extracted from a scanned QR payload. Both
// fields may be empty when the payload carries nothing recognizable;
// extraction never fails.
type QRIdentity struct {
	Document     string
	MemberNumber string
}

// Empty reports whether nothing could be extracted.
func (q QRIdentity) Empty() bool {
	return q.Document == "" && q.MemberNumber == ""
}

var (
	bareDocumentRe = regexp.MustCompile(`^\d{7,9}$`)
	bareMemberRe   = regexp.MustCompile(`^\d{5,12}$`)
	labeledDocRe   = regexp.MustCompile(`(?i)(?:dni|documento|document)[:=\s"]+(\d{7,9})`)
	labeledMemRe   = regexp.MustCompile(`(?i)(?:member_?number|nro_?socio|socio)[:=\s"]+(\d{5,12})`)
)

// ParseQRPayload extracts a document or member number from a QR payload.
// JSON payloads are tried first; malformed JSON degrades to plain-text
// scanning rather than failing.
func ParseQRPayload(payload string) QRIdentity {

	payload = strings.TrimSpace(payload)
	if payload == "" {
		return QRIdentity{}
	}

	var obj map[string]interface{}
	if err := json.Unmarshal([]byte(payload), &obj); err == nil {
		return identityFromJSON(obj)
	}

	// Plain text: a bare number is a document when it is DNI-sized,
	// otherwise a member number; labeled fragments are scanned last.
	if bareDocumentRe.MatchString(payload) {
		return QRIdentity{Document: payload}
	}
	if bareMemberRe.MatchString(payload) {
		return QRIdentity{MemberNumber: payload}
	}

	identity := QRIdentity{}
	if m := labeledDocRe.FindStringSubmatch(payload); m != nil {
		identity.Document = m[1]
	}
	if m := labeledMemRe.FindStringSubmatch(payload); m != nil {
		identity.MemberNumber = m[1]
	}
	return identity
}

func identityFromJSON(obj map[string]interface{}) QRIdentity {

	identity := QRIdentity{}
	for _, key := range []string{"document", "documento", "dni", "DNI"} {
		if v, ok := obj[key]; ok {
			if s := digitsOnly(stringValue(v)); s != "" {
				identity.Document = s
				break
			}
		}
	}
	for _, key := range []string{"member_number", "nro_socio", "socio"} {
		if v, ok := obj[key]; ok {
			if s := strings.TrimSpace(stringValue(v)); s != "" {
				identity.MemberNumber = s
				break
			}
		}
	}
	return identity
}

func stringValue(v interface{}) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		// JSON numbers decode as float64; identity numbers are integral.
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return ""
	}
}
