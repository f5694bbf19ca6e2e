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

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	entryModel "github.com/clubaccess/member-access-service/internal/entries/model"
	entryService "github.com/clubaccess/member-access-service/internal/entries/service"
	memberService "github.com/clubaccess/member-access-service/internal/members/service"
	qrtagModel "github.com/clubaccess/member-access-service/internal/qrtags/model"
	qrtagService "github.com/clubaccess/member-access-service/internal/qrtags/service"
	errors2 "github.com/clubaccess/member-access-service/internal/system/errors"
)

func Test_QRTagLifecycle(t *testing.T) {

	members := memberService.GetMemberService()
	tags := qrtagService.GetTagService()
	entries := entryService.GetEntryService()

	seed := "Nro Socio;Apellido y Nombre;Documento;Estado\n" +
		"300;Romero, Lucia;60111222;ACTIVO\n" +
		"301;Paz, Esteban;60333444;ACTIVO\n"
	_, err := members.ImportMembers(seed, false)
	require.NoError(t, err)

	tagUUID := uuid.New().String()

	t.Run("LinkAndResolve", func(t *testing.T) {
		tag, err := tags.LinkTag(qrtagModel.LinkRequest{UUID: tagUUID, Document: "60111222"})
		require.NoError(t, err)
		assert.True(t, tag.Active)

		resolved, err := tags.ResolveTag(tagUUID)
		require.NoError(t, err)
		assert.Equal(t, "60111222", resolved.Member.DocumentNumber)
		assert.Equal(t, "Romero, Lucia", resolved.Member.FullName)
	})

	t.Run("LinkedTagGrantsEntry", func(t *testing.T) {
		result, err := entries.RegisterUUIDEntry(entryModel.UUIDEntryRequest{
			UUID:       tagUUID,
			AccessType: "bicycle",
		}, "gatehouse")

		require.NoError(t, err)
		assert.Equal(t, "60111222", result.Member.DocumentNumber)
	})

	t.Run("RelinkMovesTagToNewMember", func(t *testing.T) {
		_, err := tags.LinkTag(qrtagModel.LinkRequest{UUID: tagUUID, Document: "60333444"})
		require.NoError(t, err)

		resolved, err := tags.ResolveTag(tagUUID)
		require.NoError(t, err)
		assert.Equal(t, "60333444", resolved.Member.DocumentNumber)
	})

	t.Run("RevokedTagStopsResolvingAndGrantingEntry", func(t *testing.T) {
		require.NoError(t, tags.RevokeTag(tagUUID))

		_, err := tags.ResolveTag(tagUUID)
		var clientErr *errors2.ClientError
		require.ErrorAs(t, err, &clientErr)
		assert.Equal(t, http.StatusNotFound, clientErr.StatusCode)

		_, err = entries.RegisterUUIDEntry(entryModel.UUIDEntryRequest{UUID: tagUUID}, "gatehouse")
		require.ErrorAs(t, err, &clientErr)
		assert.Equal(t, http.StatusNotFound, clientErr.StatusCode)
	})

	t.Run("RelinkReactivatesRevokedTag", func(t *testing.T) {
		tag, err := tags.LinkTag(qrtagModel.LinkRequest{UUID: tagUUID, Document: "60111222"})
		require.NoError(t, err)
		assert.True(t, tag.Active)
		assert.Empty(t, tag.RevokedAt)

		resolved, err := tags.ResolveTag(tagUUID)
		require.NoError(t, err)
		assert.Equal(t, "60111222", resolved.Member.DocumentNumber)
	})

	t.Run("LinkUnknownMemberFails", func(t *testing.T) {
		_, err := tags.LinkTag(qrtagModel.LinkRequest{UUID: uuid.New().String(), Document: "99999999"})

		var clientErr *errors2.ClientError
		require.ErrorAs(t, err, &clientErr)
		assert.Equal(t, http.StatusNotFound, clientErr.StatusCode)
	})
}
