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

package provider

import (
	"github.com/clubaccess/member-access-service/internal/qrtags/service"
)

// TagProviderInterface defines the interface for the QR tag provider.
type TagProviderInterface interface {
	GetTagService() service.TagServiceInterface
}

// TagProvider is the default implementation of the TagProviderInterface.
type TagProvider struct{}

// NewTagProvider creates a new instance of TagProvider.
func NewTagProvider() TagProviderInterface {

	return &TagProvider{}
}

// GetTagService returns the QR tag service instance.
func (tp *TagProvider) GetTagService() service.TagServiceInterface {

	return service.GetTagService()
}
