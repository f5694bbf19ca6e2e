package importer

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clubaccess/member-access-service/internal/members/model"
	"github.com/clubaccess/member-access-service/internal/system/database/client"
	"github.com/clubaccess/member-access-service/internal/system/log"
)

// recordingUpserter captures every row the orchestrator hands to the store.
type recordingUpserter struct {
	calls []map[string]interface{}
	// existing document numbers report an update instead of an insert
	existing map[string]bool
	err      error
}

func (u *recordingUpserter) UpsertTx(_ *sql.Tx, columns []string, values []interface{}) (bool, error) {
	if u.err != nil {
		return false, u.err
	}
	record := map[string]interface{}{}
	var document string
	for i, col := range columns {
		record[col] = values[i]
		if col == model.FieldDocumentNumber {
			document, _ = values[i].(string)
		}
	}
	u.calls = append(u.calls, record)
	if u.existing[document] {
		return false, nil
	}
	if u.existing == nil {
		u.existing = map[string]bool{}
	}
	u.existing[document] = true
	return true, nil
}

func newMockImporter(t *testing.T, upserter MemberUpserter) (*Importer, sqlmock.Sqlmock) {
	t.Helper()
	_ = log.Init("DEBUG")

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return NewImporter(client.NewDBClient(db), upserter), mock
}

func TestImporterHappyPath(t *testing.T) {
	upserter := &recordingUpserter{}
	imp, mock := newMockImporter(t, upserter)

	mock.ExpectBegin()
	mock.ExpectCommit()

	content := "Nro Socio;Apellido y Nombre;DNI;Estado\n" +
		"100;Pérez, Juan;20111222;ACTIVO\n"

	summary, err := imp.Run(content, false)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Inserted)
	assert.Equal(t, 0, summary.Updated)
	assert.Equal(t, 0, summary.Skipped)

	require.Len(t, upserter.calls, 1)
	record := upserter.calls[0]
	assert.Equal(t, "100", record[model.FieldMemberNumber])
	assert.Equal(t, "Pérez, Juan", record[model.FieldFullName])
	assert.Equal(t, "20111222", record[model.FieldDocumentNumber])
	assert.Equal(t, "ACTIVO", record[model.FieldStatus])

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestImporterSkipsTitleRowAndQuotedFields(t *testing.T) {
	upserter := &recordingUpserter{}
	imp, mock := newMockImporter(t, upserter)

	mock.ExpectBegin()
	mock.ExpectCommit()

	content := "LISTADO GENERAL DE SOCIOS\n" +
		"Nro Socio;Apellido y Nombre;DNI\n" +
		"7;\"García, Ana\";30.111.222\n"

	summary, err := imp.Run(content, false)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Inserted)

	require.Len(t, upserter.calls, 1)
	assert.Equal(t, "García, Ana", upserter.calls[0][model.FieldFullName])
	// Dots are stripped from the document projection.
	assert.Equal(t, "30111222", upserter.calls[0][model.FieldDocumentNumber])
}

func TestImporterCleansDocumentAndCoercesDates(t *testing.T) {
	upserter := &recordingUpserter{}
	imp, mock := newMockImporter(t, upserter)

	mock.ExpectBegin()
	mock.ExpectCommit()

	content := "Nro Socio;Apellido y Nombre;DNI;Fecha Alta;Fecha Nac.\n" +
		"1;Diaz, Mora;20-111-222;05/03/2021;no date\n"

	summary, err := imp.Run(content, false)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Inserted)

	record := upserter.calls[0]
	assert.Equal(t, "20111222", record[model.FieldDocumentNumber])
	assert.Equal(t, "2021-03-05", record[model.FieldAdmissionDate])
	// Unsupported date formats degrade to NULL, never error.
	assert.Nil(t, record[model.FieldBirthDate])
}

func TestImporterSoftSkipsRowsWithoutDocument(t *testing.T) {
	upserter := &recordingUpserter{}
	imp, mock := newMockImporter(t, upserter)

	mock.ExpectBegin()
	mock.ExpectCommit()

	content := "Nro Socio;Apellido y Nombre;DNI\n" +
		"1;Perez, Juan;20111222\n" +
		"2;Sin Documento;\n" +
		"3;Documento Raro;sin numero\n"

	summary, err := imp.Run(content, false)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Inserted)
	assert.Equal(t, 2, summary.Skipped)
	assert.Len(t, upserter.calls, 1)
}

func TestImporterUpdatesExistingDocuments(t *testing.T) {
	upserter := &recordingUpserter{existing: map[string]bool{"20111222": true}}
	imp, mock := newMockImporter(t, upserter)

	mock.ExpectBegin()
	mock.ExpectCommit()

	content := "Nro Socio;Apellido y Nombre;DNI\n" +
		"1;Perez, Juan;20111222\n"

	summary, err := imp.Run(content, false)
	require.NoError(t, err)
	assert.Equal(t, 0, summary.Inserted)
	assert.Equal(t, 1, summary.Updated)
}

func TestImporterRejectsInvalidHeadersBeforeAnyWrite(t *testing.T) {
	upserter := &recordingUpserter{}
	imp, mock := newMockImporter(t, upserter)

	// No Begin expectation: header validation fails before the transaction.
	content := "columna a;columna b\n1;2\n"

	_, err := imp.Run(content, false)
	var headerErr *HeaderValidationError
	require.ErrorAs(t, err, &headerErr)
	assert.Empty(t, upserter.calls)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestImporterRollsBackOnRowFailure(t *testing.T) {
	upserter := &recordingUpserter{err: errors.New("unique constraint violated")}
	imp, mock := newMockImporter(t, upserter)

	mock.ExpectBegin()
	mock.ExpectRollback()

	content := "Nro Socio;Apellido y Nombre;DNI\n" +
		"1;Perez, Juan;20111222\n"

	_, err := imp.Run(content, false)
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestImporterDebugDiagnostics(t *testing.T) {
	upserter := &recordingUpserter{}
	imp, mock := newMockImporter(t, upserter)

	mock.ExpectBegin()
	mock.ExpectCommit()

	content := "TITULO\n" +
		"Nro Socio;Apellido y Nombre;DNI\n" +
		"1;Perez, Juan;20111222\n" +
		"2;Lopez, Eva;30222333\n" +
		"3;Ruiz, Tom;40333444\n" +
		"4;Gomez, Leo;50444555\n"

	summary, err := imp.Run(content, true)
	require.NoError(t, err)
	require.NotNil(t, summary.Diagnostics)
	assert.Equal(t, ";", summary.Diagnostics.Delimiter)
	assert.Equal(t, 2, summary.Diagnostics.HeaderLine)
	assert.Equal(t, []string{"nro socio", "apellido y nombre", "dni"}, summary.Diagnostics.Headers.Normalized)
	// Diagnostics cap at three example rows.
	assert.Len(t, summary.Diagnostics.Examples, 3)
}

func TestImporterBOMAndCRLF(t *testing.T) {
	upserter := &recordingUpserter{}
	imp, mock := newMockImporter(t, upserter)

	mock.ExpectBegin()
	mock.ExpectCommit()

	content := "\uFEFFNro Socio;Apellido y Nombre;DNI\r\n1;Perez, Juan;20111222\r\n"

	summary, err := imp.Run(content, false)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Inserted)
}
