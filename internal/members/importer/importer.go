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
	"database/sql"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/clubaccess/member-access-service/internal/members/model"
	"github.com/clubaccess/member-access-service/internal/system/database/client"
	"github.com/clubaccess/member-access-service/internal/system/log"
)

const maxExampleRows = 3

// MemberUpserter persists one member row inside the import transaction.
// Columns and values are positionally aligned; a nil value clears the column.
// The boolean result distinguishes an insert from an update of an existing
// record with the same document number.
type MemberUpserter interface {
	UpsertTx(tx *sql.Tx, columns []string, values []interface{}) (inserted bool, err error)
}

// Summary reports the outcome of a completed import.
type Summary struct {
	Inserted    int          `json:"inserted"`
	Updated     int          `json:"updated"`
	Skipped     int          `json:"skipped"`
	Diagnostics *Diagnostics `json:"diagnostics,omitempty"`
}

// Diagnostics carries detection detail for debugging header mapping issues.
type Diagnostics struct {
	Delimiter  string        `json:"delimiter"`
	HeaderLine int           `json:"header_line"`
	Headers    HeaderMapping `json:"headers"`
	Examples   []ExampleRow  `json:"examples,omitempty"`
}

// ExampleRow is one processed row echoed back in diagnostics.
type ExampleRow struct {
	Kind   string            `json:"kind"`
	Fields map[string]string `json:"fields,omitempty"`
	Row    []string          `json:"row,omitempty"`
}

// Importer runs the full ingestion pipeline: delimiter sniffing, header-line
// detection, header mapping, per-row coercion and a single-transaction
// upsert batch.
type Importer struct {
	dbClient client.DBClientInterface
	store    MemberUpserter
}

// NewImporter creates an importer bound to the given database client and
// member store.
func NewImporter(dbClient client.DBClientInterface, store MemberUpserter) *Importer {

	return &Importer{
		dbClient: dbClient,
		store:    store,
	}
}

// Run processes the raw file content. The whole batch commits or rolls back
// as one transaction; a HeaderValidationError is returned before any write
// when the header precondition fails. With debug set, the summary carries
// detection diagnostics and up to three example rows.
func (imp *Importer) Run(content string, debug bool) (*Summary, error) {

	content = strings.TrimPrefix(content, "\uFEFF")

	delimiter := DetectDelimiter(content)
	headerLine := LocateHeaderLine(content, delimiter)

	lines := splitLines(content)
	if headerLine-1 < len(lines) {
		lines = lines[headerLine-1:]
	}

	reader := csv.NewReader(strings.NewReader(strings.Join(lines, "\n")))
	reader.Comma = delimiter
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	headerRow, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header row: %w", err)
	}

	mapping, err := MapHeaders(headerRow)
	if err != nil {
		return nil, err
	}

	summary := &Summary{}
	if debug {
		summary.Diagnostics = &Diagnostics{
			Delimiter:  printableDelimiter(delimiter),
			HeaderLine: headerLine,
			Headers:    mapping,
		}
	}

	tx, err := imp.dbClient.BeginTx()
	if err != nil {
		return nil, fmt.Errorf("failed to begin import transaction: %w", err)
	}

	if err := imp.runRows(tx, reader, mapping, summary); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			log.GetLogger().Warn("Failed to roll back import transaction.", log.Error(rbErr))
		}
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit import transaction: %w", err)
	}

	log.GetLogger().Info("Member import committed.",
		log.Int("inserted", summary.Inserted),
		log.Int("updated", summary.Updated),
		log.Int("skipped", summary.Skipped))
	return summary, nil
}

func (imp *Importer) runRows(tx *sql.Tx, reader *csv.Reader, mapping HeaderMapping, summary *Summary) error {

	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to parse data row: %w", err)
		}

		columns, values, document := buildRecord(mapping, row)
		if document == "" {
			summary.Skipped++
			addExample(summary, ExampleRow{Kind: "skipped_no_document", Row: row})
			continue
		}

		inserted, err := imp.store.UpsertTx(tx, columns, values)
		if err != nil {
			return err
		}
		if inserted {
			summary.Inserted++
			addExample(summary, exampleFromRecord("inserted", columns, values))
		} else {
			summary.Updated++
			addExample(summary, exampleFromRecord("updated", columns, values))
		}
	}
}

// buildRecord projects one raw row through the header mapping onto the
// canonical column set. The document number is reduced to digits; date
// columns are coerced and degrade to NULL on any unsupported format.
func buildRecord(mapping HeaderMapping, row []string) (columns []string, values []interface{}, document string) {

	present := map[string]int{}
	for i, col := range mapping.Mapped {
		if col == "" || !model.CanonicalFields[col] || i >= len(row) {
			continue
		}
		if _, seen := present[col]; seen {
			continue
		}

		value := strings.TrimSpace(row[i])
		present[col] = len(columns)
		columns = append(columns, col)
		if value == "" {
			values = append(values, nil)
		} else {
			values = append(values, value)
		}
	}

	// Document number: keep digits only. An empty projection is the soft
	// skip condition; it never aborts the batch.
	if idx, ok := present[model.FieldDocumentNumber]; ok {
		if raw, _ := values[idx].(string); raw != "" {
			document = digitsOnly(raw)
		}
	}
	if document == "" {
		// Second chance: a column literally labeled dni that did not win
		// the mapping for document_number.
		for i, h := range mapping.Normalized {
			if h == "dni" && i < len(row) {
				if v := digitsOnly(row[i]); v != "" {
					document = v
				}
			}
		}
	}
	if document == "" {
		return columns, values, ""
	}

	if idx, ok := present[model.FieldDocumentNumber]; ok {
		values[idx] = document
	} else {
		columns = append(columns, model.FieldDocumentNumber)
		values = append(values, document)
		present[model.FieldDocumentNumber] = len(columns) - 1
	}

	for _, dateField := range model.DateFields {
		idx, ok := present[dateField]
		if !ok {
			continue
		}
		raw, _ := values[idx].(string)
		if raw == "" {
			continue
		}
		if coerced, ok := CoerceDate(raw); ok {
			values[idx] = coerced
		} else {
			values[idx] = nil
		}
	}

	return columns, values, document
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func addExample(summary *Summary, example ExampleRow) {
	if summary.Diagnostics == nil || len(summary.Diagnostics.Examples) >= maxExampleRows {
		return
	}
	summary.Diagnostics.Examples = append(summary.Diagnostics.Examples, example)
}

func exampleFromRecord(kind string, columns []string, values []interface{}) ExampleRow {
	fields := make(map[string]string, len(columns))
	for i, col := range columns {
		if s, ok := values[i].(string); ok {
			fields[col] = s
		}
	}
	return ExampleRow{Kind: kind, Fields: fields}
}

func printableDelimiter(d rune) string {
	if d == '\t' {
		return "TAB"
	}
	return string(d)
}
