package store

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/clubaccess/member-access-service/internal/entries/model"
	"github.com/clubaccess/member-access-service/internal/system/database/provider"
	errors2 "github.com/clubaccess/member-access-service/internal/system/errors"
	"github.com/clubaccess/member-access-service/internal/system/log"
)

// EntryStoreInterface defines persistence operations for the entry log.
type EntryStoreInterface interface {
	FindMemberForEntry(document, memberNumber string) (*model.EntryMember, error)
	ResolveTagMember(tagUUID string) (*model.EntryMember, error)
	InsertMemberEntry(memberID int, details model.EntryDetails) error
	RegisterVisitorEntry(document, fullName string, details model.EntryDetails) (*model.EntryVisitor, error)
	ListEntries(filter model.EntryFilter, limit, offset int) ([]model.Entry, int, error)
	UpdatePaymentStatus(entryID int, status string) (bool, error)
}

// EntryStore is the Postgres implementation of EntryStoreInterface.
type EntryStore struct{}

const memberSummaryColumns = "id, member_number, document_number, full_name, status, member_type"

// FindMemberForEntry locates a member by document number or member number,
// whichever is supplied. Returns nil when no member matches.
func (s *EntryStore) FindMemberForEntry(document, memberNumber string) (*model.EntryMember, error) {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	if err != nil {
		return nil, entryServerError(errors2.ADD_ENTRY, "Failed to get database client for member lookup", err)
	}
	defer dbClient.Close()

	query := fmt.Sprintf(`SELECT %s FROM members
		WHERE ($1 <> '' AND document_number = $1) OR ($2 <> '' AND member_number = $2)
		LIMIT 1`, memberSummaryColumns)
	rows, err := dbClient.ExecuteQuery(query, document, memberNumber)
	if err != nil {
		return nil, entryServerError(errors2.ADD_ENTRY, "Failed to look up member for entry", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	member := scanMemberSummary(rows[0])
	return &member, nil
}

// ResolveTagMember resolves an active QR tag UUID to its linked member.
// Returns nil when the tag is unknown, unlinked or revoked.
func (s *EntryStore) ResolveTagMember(tagUUID string) (*model.EntryMember, error) {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	if err != nil {
		return nil, entryServerError(errors2.ADD_ENTRY, "Failed to get database client for tag lookup", err)
	}
	defer dbClient.Close()

	query := fmt.Sprintf(`SELECT %s FROM members m
		JOIN qr_tags q ON q.member_id = m.id
		WHERE q.uuid = $1 AND q.active = TRUE
		LIMIT 1`, prefixColumns("m", memberSummaryColumns))
	rows, err := dbClient.ExecuteQuery(query, tagUUID)
	if err != nil {
		return nil, entryServerError(errors2.ADD_ENTRY, "Failed to resolve QR tag for entry", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	member := scanMemberSummary(rows[0])
	return &member, nil
}

// InsertMemberEntry appends one member entry to the log.
func (s *EntryStore) InsertMemberEntry(memberID int, details model.EntryDetails) error {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	if err != nil {
		return entryServerError(errors2.ADD_ENTRY, "Failed to get database client for member entry", err)
	}
	defer dbClient.Close()

	query := `INSERT INTO entries (member_id, kind, validated_by, access_type, plate, note)
		VALUES ($1, 'member', $2, $3, $4, $5)`
	_, err = dbClient.ExecuteQuery(query, memberID, details.ValidatedBy,
		nullable(details.AccessType), nullable(details.Plate), nullable(details.Note))
	if err != nil {
		return entryServerError(errors2.ADD_ENTRY, "Failed to insert member entry", err)
	}
	return nil
}

// RegisterVisitorEntry upserts the visitor record by document number and
// appends the entry row, both inside one transaction.
func (s *EntryStore) RegisterVisitorEntry(document, fullName string, details model.EntryDetails) (*model.EntryVisitor, error) {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	if err != nil {
		return nil, entryServerError(errors2.UPSERT_VISITOR, "Failed to get database client for visitor entry", err)
	}
	defer dbClient.Close()

	tx, err := dbClient.BeginTx()
	if err != nil {
		return nil, entryServerError(errors2.UPSERT_VISITOR, "Failed to begin visitor entry transaction", err)
	}

	visitor, err := upsertVisitorTx(tx, document, fullName)
	if err == nil {
		_, err = tx.Exec(`INSERT INTO entries (visitor_id, kind, validated_by, access_type, plate, note)
			VALUES ($1, 'visitor', $2, $3, $4, $5)`,
			visitor.ID, details.ValidatedBy,
			nullable(details.AccessType), nullable(details.Plate), nullable(details.Note))
	}
	if err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			log.GetLogger().Warn("Failed to roll back visitor entry.", log.Error(rbErr))
		}
		return nil, entryServerError(errors2.UPSERT_VISITOR, "Failed to register visitor entry", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, entryServerError(errors2.UPSERT_VISITOR, "Failed to commit visitor entry", err)
	}
	return visitor, nil
}

func upsertVisitorTx(tx *sql.Tx, document, fullName string) (*model.EntryVisitor, error) {

	visitor := model.EntryVisitor{DocumentNumber: document, FullName: fullName}
	err := tx.QueryRow(`INSERT INTO visitors (document_number, full_name)
		VALUES ($1, $2)
		ON CONFLICT (document_number) DO UPDATE SET full_name = EXCLUDED.full_name
		RETURNING id`, document, fullName).Scan(&visitor.ID)
	if err != nil {
		return nil, err
	}
	return &visitor, nil
}

// ListEntries returns one page of the entry log, newest first, plus the
// total match count.
func (s *EntryStore) ListEntries(filter model.EntryFilter, limit, offset int) ([]model.Entry, int, error) {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	if err != nil {
		return nil, 0, entryServerError(errors2.LIST_ENTRIES, "Failed to get database client for entry listing", err)
	}
	defer dbClient.Close()

	where := []string{}
	args := []interface{}{}

	if filter.From != "" {
		args = append(args, filter.From)
		where = append(where, fmt.Sprintf("e.entered_at >= $%d::date", len(args)))
	}
	if filter.To != "" {
		args = append(args, filter.To)
		where = append(where, fmt.Sprintf("e.entered_at < ($%d::date + INTERVAL '1 day')", len(args)))
	}
	if filter.Kind == model.KindMember || filter.Kind == model.KindVisitor {
		args = append(args, filter.Kind)
		where = append(where, fmt.Sprintf("e.kind = $%d", len(args)))
	}
	// Partial document match wins over the exact one.
	if filter.DocumentLike != "" {
		args = append(args, "%"+filter.DocumentLike+"%")
		where = append(where, fmt.Sprintf("(m.document_number LIKE $%d OR v.document_number LIKE $%d)", len(args), len(args)))
	} else if filter.Document != "" {
		args = append(args, filter.Document)
		where = append(where, fmt.Sprintf("(m.document_number = $%d OR v.document_number = $%d)", len(args), len(args)))
	}
	if filter.NameLike != "" {
		args = append(args, "%"+filter.NameLike+"%")
		where = append(where, fmt.Sprintf("(m.full_name ILIKE $%d OR v.full_name ILIKE $%d)", len(args), len(args)))
	}
	if filter.PaymentStatus != "" {
		args = append(args, filter.PaymentStatus)
		where = append(where, fmt.Sprintf("e.payment_status = $%d", len(args)))
	}

	whereSQL := ""
	if len(where) > 0 {
		whereSQL = "WHERE " + strings.Join(where, " AND ")
	}
	baseSelect := fmt.Sprintf(`FROM entries e
		LEFT JOIN members m ON m.id = e.member_id
		LEFT JOIN visitors v ON v.id = e.visitor_id
		%s`, whereSQL)

	countRows, err := dbClient.ExecuteQuery(fmt.Sprintf("SELECT COUNT(*) AS total %s", baseSelect), args...)
	if err != nil {
		return nil, 0, entryServerError(errors2.LIST_ENTRIES, "Failed to count entries", err)
	}
	total := 0
	if len(countRows) == 1 {
		total = int(rowInt64(countRows[0], "total"))
	}

	args = append(args, limit, offset)
	query := fmt.Sprintf(`SELECT
			e.id, e.kind, e.entered_at, e.validated_by, e.access_type, e.plate, e.note, e.payment_status,
			m.id AS member_id, m.member_number, m.document_number AS member_document,
			m.full_name AS member_name, m.status AS member_status, m.member_type,
			v.id AS visitor_id, v.document_number AS visitor_document, v.full_name AS visitor_name
		%s
		ORDER BY e.entered_at DESC
		LIMIT $%d OFFSET $%d`, baseSelect, len(args)-1, len(args))
	rows, err := dbClient.ExecuteQuery(query, args...)
	if err != nil {
		return nil, 0, entryServerError(errors2.LIST_ENTRIES, "Failed to list entries", err)
	}

	entries := make([]model.Entry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, scanEntryRow(row))
	}
	return entries, total, nil
}

// UpdatePaymentStatus sets the payment status of one entry. The boolean
// result reports whether the entry exists.
func (s *EntryStore) UpdatePaymentStatus(entryID int, status string) (bool, error) {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	if err != nil {
		return false, entryServerError(errors2.UPDATE_PAYMENT_STATUS, "Failed to get database client for payment status", err)
	}
	defer dbClient.Close()

	rows, err := dbClient.ExecuteQuery(
		`UPDATE entries SET payment_status = $1 WHERE id = $2 RETURNING id`, status, entryID)
	if err != nil {
		return false, entryServerError(errors2.UPDATE_PAYMENT_STATUS, "Failed to update entry payment status", err)
	}
	return len(rows) == 1, nil
}

func scanMemberSummary(row map[string]interface{}) model.EntryMember {
	return model.EntryMember{
		ID:             int(rowInt64(row, "id")),
		MemberNumber:   rowString(row, "member_number"),
		DocumentNumber: rowString(row, "document_number"),
		FullName:       rowString(row, "full_name"),
		Status:         rowString(row, "status"),
		MemberType:     rowString(row, "member_type"),
	}
}

func scanEntryRow(row map[string]interface{}) model.Entry {

	entry := model.Entry{
		ID:            int(rowInt64(row, "id")),
		Kind:          rowString(row, "kind"),
		EnteredAt:     rowTimestamp(row, "entered_at"),
		ValidatedBy:   rowString(row, "validated_by"),
		AccessType:    rowString(row, "access_type"),
		Plate:         rowString(row, "plate"),
		Note:          rowString(row, "note"),
		PaymentStatus: rowString(row, "payment_status"),
	}

	if row["member_id"] != nil {
		entry.Member = &model.EntryMember{
			ID:             int(rowInt64(row, "member_id")),
			MemberNumber:   rowString(row, "member_number"),
			DocumentNumber: rowString(row, "member_document"),
			FullName:       rowString(row, "member_name"),
			Status:         rowString(row, "member_status"),
			MemberType:     rowString(row, "member_type"),
		}
	}
	if row["visitor_id"] != nil {
		entry.Visitor = &model.EntryVisitor{
			ID:             int(rowInt64(row, "visitor_id")),
			DocumentNumber: rowString(row, "visitor_document"),
			FullName:       rowString(row, "visitor_name"),
		}
	}
	return entry
}

func entryServerError(msg errors2.ErrorMessage, description string, err error) error {
	log.GetLogger().Debug(description, log.Error(err))
	return errors2.NewServerError(errors2.ErrorMessage{
		Code:        msg.Code,
		Message:     msg.Message,
		Description: description,
	}, err)
}

func prefixColumns(prefix, columns string) string {
	parts := strings.Split(columns, ",")
	for i, p := range parts {
		parts[i] = prefix + "." + strings.TrimSpace(p)
	}
	return strings.Join(parts, ", ")
}

func nullable(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

func rowString(row map[string]interface{}, col string) string {
	switch v := row[col].(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	case time.Time:
		return v.Format("2006-01-02")
	default:
		return fmt.Sprintf("%v", v)
	}
}

func rowTimestamp(row map[string]interface{}, col string) string {
	if v, ok := row[col].(time.Time); ok {
		return v.Format("2006-01-02 15:04:05")
	}
	return rowString(row, col)
}

func rowInt64(row map[string]interface{}, col string) int64 {
	switch v := row[col].(type) {
	case int64:
		return v
	case int:
		return int64(v)
	case []byte:
		var n int64
		_, _ = fmt.Sscanf(string(v), "%d", &n)
		return n
	default:
		return 0
	}
}
