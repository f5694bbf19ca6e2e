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

package integration

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	memberService "github.com/clubaccess/member-access-service/internal/members/service"
	errors2 "github.com/clubaccess/member-access-service/internal/system/errors"
)

func Test_MemberListing(t *testing.T) {

	svc := memberService.GetMemberService()

	seed := "Nro Socio;Apellido y Nombre;Documento;Estado\n" +
		"400;Alvarez, Sofia;70111222;ACTIVO\n" +
		"401;Alvarez, Bruno;70333444;ACTIVO\n" +
		"402;Castro, Ivan;70555666;MOROSO\n"
	_, err := svc.ImportMembers(seed, false)
	require.NoError(t, err)

	t.Run("SearchByNameFragment", func(t *testing.T) {
		page, err := svc.ListMembers("alvarez", 1, 50)
		require.NoError(t, err)

		assert.Equal(t, 2, page.Total)
		for _, m := range page.Members {
			assert.Contains(t, m.FullName, "Alvarez")
		}
	})

	t.Run("SearchByDocumentPrefix", func(t *testing.T) {
		page, err := svc.ListMembers("7055", 1, 50)
		require.NoError(t, err)

		require.Equal(t, 1, page.Total)
		assert.Equal(t, "Castro, Ivan", page.Members[0].FullName)
	})

	t.Run("PaginationClampsAndPages", func(t *testing.T) {
		first, err := svc.ListMembers("alvarez", 1, 1)
		require.NoError(t, err)
		second, err := svc.ListMembers("alvarez", 2, 1)
		require.NoError(t, err)

		assert.Equal(t, 2, first.TotalPages)
		require.Len(t, first.Members, 1)
		require.Len(t, second.Members, 1)
		assert.NotEqual(t, first.Members[0].ID, second.Members[0].ID)
	})

	t.Run("GetUnknownDocumentIsNotFound", func(t *testing.T) {
		_, err := svc.GetMemberByDocument("00000001")

		var clientErr *errors2.ClientError
		require.ErrorAs(t, err, &clientErr)
		assert.Equal(t, http.StatusNotFound, clientErr.StatusCode)
	})
}
