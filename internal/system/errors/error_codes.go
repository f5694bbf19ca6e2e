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

package errors

const errorPrefix = "MAS-"

var (
	// Server error codes

	IMPORT_MEMBERS = ErrorMessage{
		Code:    errorPrefix + "15001",
		Message: "Error while importing member records.",
	}

	LIST_MEMBERS = ErrorMessage{
		Code:    errorPrefix + "15002",
		Message: "Error while listing members.",
	}

	GET_MEMBER = ErrorMessage{
		Code:    errorPrefix + "15003",
		Message: "Error while fetching member.",
	}

	ADD_ENTRY = ErrorMessage{
		Code:    errorPrefix + "15004",
		Message: "Error while recording entry.",
	}

	LIST_ENTRIES = ErrorMessage{
		Code:    errorPrefix + "15005",
		Message: "Error while listing entries.",
	}

	UPDATE_PAYMENT_STATUS = ErrorMessage{
		Code:    errorPrefix + "15006",
		Message: "Error while updating entry payment status.",
	}

	UPSERT_VISITOR = ErrorMessage{
		Code:    errorPrefix + "15007",
		Message: "Error while registering visitor.",
	}

	LINK_QR_TAG = ErrorMessage{
		Code:    errorPrefix + "15008",
		Message: "Error while linking QR tag.",
	}

	RESOLVE_QR_TAG = ErrorMessage{
		Code:    errorPrefix + "15009",
		Message: "Error while resolving QR tag.",
	}

	REVOKE_QR_TAG = ErrorMessage{
		Code:    errorPrefix + "15010",
		Message: "Error while revoking QR tag.",
	}

	AUTHENTICATE_USER = ErrorMessage{
		Code:    errorPrefix + "15011",
		Message: "Error while authenticating user.",
	}

	// Client error codes

	INVALID_REQUEST = ErrorMessage{
		Code:    errorPrefix + "11001",
		Message: "Invalid request payload.",
	}

	INVALID_IMPORT_HEADERS = ErrorMessage{
		Code:    errorPrefix + "11002",
		Message: "Invalid import file headers.",
	}

	MEMBER_NOT_FOUND = ErrorMessage{
		Code:    errorPrefix + "11003",
		Message: "Member not found.",
	}

	ENTRY_NOT_FOUND = ErrorMessage{
		Code:    errorPrefix + "11004",
		Message: "Entry not found.",
	}

	QR_TAG_NOT_FOUND = ErrorMessage{
		Code:    errorPrefix + "11005",
		Message: "QR tag not linked or inactive.",
	}

	QR_PAYLOAD_UNRESOLVED = ErrorMessage{
		Code:    errorPrefix + "11006",
		Message: "Could not extract a document or member number from the QR payload.",
	}

	MEMBER_NOT_ELIGIBLE = ErrorMessage{
		Code:    errorPrefix + "11007",
		Message: "Member is not eligible for entry.",
	}

	INVALID_CREDENTIALS = ErrorMessage{
		Code:    errorPrefix + "11008",
		Message: "Invalid username or password.",
	}

	UNAUTHORIZED = ErrorMessage{
		Code:    errorPrefix + "11009",
		Message: "Missing or invalid authentication token.",
	}

	FORBIDDEN = ErrorMessage{
		Code:    errorPrefix + "11010",
		Message: "Admin role required.",
	}

	INVALID_PAYMENT_STATUS = ErrorMessage{
		Code:    errorPrefix + "11011",
		Message: "Invalid payment status value.",
	}
)
