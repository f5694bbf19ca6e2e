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

	"github.com/clubaccess/member-access-service/internal/qrtags/handler"
)

type QRTagService struct {
	tagHandler *handler.TagHandler
}

func NewQRTagService(mux *http.ServeMux, apiBasePath string) *QRTagService {

	instance := &QRTagService{
		tagHandler: handler.NewTagHandler(),
	}
	instance.RegisterRoutes(mux, apiBasePath)

	return instance
}

func (s *QRTagService) RegisterRoutes(mux *http.ServeMux, apiBasePath string) {

	mux.HandleFunc(fmt.Sprintf("POST %s/qr-tags/link", apiBasePath), s.tagHandler.LinkTag)
	mux.HandleFunc(fmt.Sprintf("GET %s/qr-tags/", apiBasePath), s.tagHandler.ResolveTag)
	mux.HandleFunc(fmt.Sprintf("DELETE %s/qr-tags/", apiBasePath), s.tagHandler.RevokeTag)
}
