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

package services

import (
	"fmt"
	"net/http"

	"github.com/clubaccess/member-access-service/internal/entries/handler"
)

type EntryService struct {
	entryHandler *handler.EntryHandler
}

func NewEntryService(mux *http.ServeMux, apiBasePath string) *EntryService {

	instance := &EntryService{
		entryHandler: handler.NewEntryHandler(),
	}
	instance.RegisterRoutes(mux, apiBasePath)

	return instance
}

func (s *EntryService) RegisterRoutes(mux *http.ServeMux, apiBasePath string) {

	mux.HandleFunc(fmt.Sprintf("POST %s/entries/qr", apiBasePath), s.entryHandler.RegisterQREntry)
	mux.HandleFunc(fmt.Sprintf("POST %s/entries/uuid", apiBasePath), s.entryHandler.RegisterUUIDEntry)
	mux.HandleFunc(fmt.Sprintf("POST %s/entries/visitor", apiBasePath), s.entryHandler.RegisterVisitorEntry)
	mux.HandleFunc(fmt.Sprintf("GET %s/entries", apiBasePath), s.entryHandler.ListEntries)
	mux.HandleFunc(fmt.Sprintf("PATCH %s/entries/{id}/payment-status", apiBasePath), s.entryHandler.UpdatePaymentStatus)
}
