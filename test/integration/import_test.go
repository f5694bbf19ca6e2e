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

func Test_MemberImport(t *testing.T) {

	svc := memberService.GetMemberService()

	importFile := "Listado de Socios - Exportado 01/06/2025\n" +
		"Nro Socio;Apellido y Nombre;Tipo Doc;Documento;Fecha Nac;Estado;Tipo Socio;Email\n" +
		"100;Pérez, Juan;DNI;20.111.222;5/3/1981;ACTIVO;Activo;juan@example.com\n" +
		"101;Gómez, Ana;DNI;27333444;31/12/99;ACTIVO;Vitalicio;ana@example.com\n" +
		";Sin Documento, Caso;;;;;;\n" +
		"102;López, Marta;DNI;30555666;15021990;MOROSO;Activo;marta@example.com\n"

	t.Run("FirstImportInsertsRows", func(t *testing.T) {
		summary, err := svc.ImportMembers(importFile, true)
		require.NoError(t, err)

		assert.Equal(t, 3, summary.Inserted)
		assert.Equal(t, 0, summary.Updated)
		assert.Equal(t, 1, summary.Skipped)

		require.NotNil(t, summary.Diagnostics)
		assert.Equal(t, ";", summary.Diagnostics.Delimiter)
		assert.Equal(t, 2, summary.Diagnostics.HeaderLine)
	})

	t.Run("ReimportIsIdempotent", func(t *testing.T) {
		summary, err := svc.ImportMembers(importFile, false)
		require.NoError(t, err)

		assert.Equal(t, 0, summary.Inserted)
		assert.Equal(t, 3, summary.Updated)
		assert.Equal(t, 1, summary.Skipped)
		assert.Nil(t, summary.Diagnostics)
	})

	t.Run("DatesAndDocumentsAreNormalized", func(t *testing.T) {
		member, err := svc.GetMemberByDocument("20.111.222")
		require.NoError(t, err)

		assert.Equal(t, "100", member.MemberNumber)
		assert.Equal(t, "Pérez, Juan", member.FullName)
		assert.Equal(t, "1981-03-05", member.BirthDate)
		assert.Equal(t, "ACTIVO", member.Status)

		compact, err := svc.GetMemberByDocument("30555666")
		require.NoError(t, err)
		assert.Equal(t, "1990-02-15", compact.BirthDate)

		twoDigit, err := svc.GetMemberByDocument("27333444")
		require.NoError(t, err)
		assert.Equal(t, "2099-12-31", twoDigit.BirthDate)
	})

	t.Run("PartialReimportPreservesOmittedColumns", func(t *testing.T) {
		partial := "Nro Socio;Documento;Estado\n100;20111222;BAJA\n"

		summary, err := svc.ImportMembers(partial, false)
		require.NoError(t, err)
		assert.Equal(t, 0, summary.Inserted)
		assert.Equal(t, 1, summary.Updated)

		member, err := svc.GetMemberByDocument("20111222")
		require.NoError(t, err)
		assert.Equal(t, "BAJA", member.Status)
		// Columns absent from the file keep their stored values.
		assert.Equal(t, "Pérez, Juan", member.FullName)
		assert.Equal(t, "juan@example.com", member.Email)

		// Restore the status for later tests.
		_, err = svc.ImportMembers("Nro Socio;Documento;Estado\n100;20111222;ACTIVO\n", false)
		require.NoError(t, err)
	})

	t.Run("InvalidHeadersRejectedWithoutWrites", func(t *testing.T) {
		before, err := svc.ListMembers("", 1, 200)
		require.NoError(t, err)

		_, err = svc.ImportMembers("Nombre;Telefono\nJuan;123456\n", false)

		var clientErr *errors2.ClientError
		require.ErrorAs(t, err, &clientErr)
		assert.Equal(t, http.StatusBadRequest, clientErr.StatusCode)
		assert.Equal(t, errors2.INVALID_IMPORT_HEADERS.Code, clientErr.Code)

		after, err := svc.ListMembers("", 1, 200)
		require.NoError(t, err)
		assert.Equal(t, before.Total, after.Total)
	})
}
