package store

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/clubaccess/member-access-service/internal/members/model"
	"github.com/clubaccess/member-access-service/internal/system/database/provider"
	errors2 "github.com/clubaccess/member-access-service/internal/system/errors"
	"github.com/clubaccess/member-access-service/internal/system/log"
)

// MemberStoreInterface defines persistence operations for member records.
type MemberStoreInterface interface {
	UpsertTx(tx *sql.Tx, columns []string, values []interface{}) (bool, error)
	ListMembers(search string, limit, offset int) ([]model.Member, int, error)
	GetMemberByDocument(document string) (*model.Member, error)
}

// MemberStore is the Postgres implementation of MemberStoreInterface.
type MemberStore struct{}

// memberColumns is the projection used by all member reads.
const memberColumns = `id, member_number, full_name, birth_date, age, prev_admission_date,
	admission_date, gender, category, status, valid_until, termination_date, member_type,
	family_group, holder, document_type, document_number, address, phone, mobile, email,
	city, postal_code, province, country, last_payment_date`

// UpsertTx inserts or updates one member row keyed on the document number,
// inside the caller's transaction. Only the supplied columns are written, so
// a partial row never clears previously stored data for omitted columns.
// The result reports whether a new row was created.
func (s *MemberStore) UpsertTx(tx *sql.Tx, columns []string, values []interface{}) (bool, error) {

	if len(columns) == 0 || len(columns) != len(values) {
		return false, fmt.Errorf("upsert requires aligned columns and values")
	}

	placeholders := make([]string, len(columns))
	updates := make([]string, len(columns))
	for i, col := range columns {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		updates[i] = fmt.Sprintf("%s = EXCLUDED.%s", col, col)
	}

	query := fmt.Sprintf(`INSERT INTO members (%s) VALUES (%s)
		ON CONFLICT (document_number) DO UPDATE SET %s
		RETURNING (xmax = 0) AS inserted`,
		strings.Join(columns, ", "), strings.Join(placeholders, ", "), strings.Join(updates, ", "))

	var inserted bool
	if err := tx.QueryRow(query, values...).Scan(&inserted); err != nil {
		return false, err
	}
	return inserted, nil
}

// ListMembers returns one page of members plus the total match count. An
// all-digit search term matches the document number as a prefix; any other
// term matches the full name or member number partially.
func (s *MemberStore) ListMembers(search string, limit, offset int) ([]model.Member, int, error) {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		errorMsg := "Failed to get database client for listing members"
		logger.Debug(errorMsg, log.Error(err))
		return nil, 0, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.LIST_MEMBERS.Code,
			Message:     errors2.LIST_MEMBERS.Message,
			Description: errorMsg,
		}, err)
	}
	defer dbClient.Close()

	where := ""
	args := []interface{}{}
	if search != "" {
		if allDigits(search) {
			args = append(args, search+"%")
			where = fmt.Sprintf("WHERE document_number LIKE $%d", len(args))
		} else {
			args = append(args, "%"+search+"%")
			where = fmt.Sprintf("WHERE (full_name ILIKE $%d OR member_number ILIKE $%d)", len(args), len(args))
		}
	}

	countRows, err := dbClient.ExecuteQuery(fmt.Sprintf("SELECT COUNT(*) AS total FROM members %s", where), args...)
	if err != nil {
		return nil, 0, listMembersError(err, "Failed to count members")
	}
	total := 0
	if len(countRows) == 1 {
		total = int(rowInt64(countRows[0], "total"))
	}

	args = append(args, limit, offset)
	query := fmt.Sprintf("SELECT %s FROM members %s ORDER BY id ASC LIMIT $%d OFFSET $%d",
		memberColumns, where, len(args)-1, len(args))
	rows, err := dbClient.ExecuteQuery(query, args...)
	if err != nil {
		return nil, 0, listMembersError(err, "Failed to list members")
	}

	members := make([]model.Member, 0, len(rows))
	for _, row := range rows {
		members = append(members, scanMemberRow(row))
	}
	return members, total, nil
}

// GetMemberByDocument fetches one member by its digit-normalized document
// number. Returns nil when no such member exists.
func (s *MemberStore) GetMemberByDocument(document string) (*model.Member, error) {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to get database client for member with document: %s", document)
		logger.Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.GET_MEMBER.Code,
			Message:     errors2.GET_MEMBER.Message,
			Description: errorMsg,
		}, err)
	}
	defer dbClient.Close()

	query := fmt.Sprintf("SELECT %s FROM members WHERE document_number = $1", memberColumns)
	rows, err := dbClient.ExecuteQuery(query, document)
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to fetch member with document: %s", document)
		logger.Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.GET_MEMBER.Code,
			Message:     errors2.GET_MEMBER.Message,
			Description: errorMsg,
		}, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	member := scanMemberRow(rows[0])
	return &member, nil
}

func listMembersError(err error, description string) error {
	log.GetLogger().Debug(description, log.Error(err))
	return errors2.NewServerError(errors2.ErrorMessage{
		Code:        errors2.LIST_MEMBERS.Code,
		Message:     errors2.LIST_MEMBERS.Message,
		Description: description,
	}, err)
}

func scanMemberRow(row map[string]interface{}) model.Member {

	return model.Member{
		ID:                int(rowInt64(row, "id")),
		MemberNumber:      rowString(row, "member_number"),
		FullName:          rowString(row, "full_name"),
		BirthDate:         rowString(row, "birth_date"),
		Age:               rowString(row, "age"),
		PrevAdmissionDate: rowString(row, "prev_admission_date"),
		AdmissionDate:     rowString(row, "admission_date"),
		Gender:            rowString(row, "gender"),
		Category:          rowString(row, "category"),
		Status:            rowString(row, "status"),
		ValidUntil:        rowString(row, "valid_until"),
		TerminationDate:   rowString(row, "termination_date"),
		MemberType:        rowString(row, "member_type"),
		FamilyGroup:       rowString(row, "family_group"),
		Holder:            rowString(row, "holder"),
		DocumentType:      rowString(row, "document_type"),
		DocumentNumber:    rowString(row, "document_number"),
		Address:           rowString(row, "address"),
		Phone:             rowString(row, "phone"),
		Mobile:            rowString(row, "mobile"),
		Email:             rowString(row, "email"),
		City:              rowString(row, "city"),
		PostalCode:        rowString(row, "postal_code"),
		Province:          rowString(row, "province"),
		Country:           rowString(row, "country"),
		LastPaymentDate:   rowString(row, "last_payment_date"),
	}
}

// rowString renders a column value as a string, formatting dates as
// YYYY-MM-DD and treating NULL as empty.
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
	case int64:
		return fmt.Sprintf("%d", v)
	default:
		return fmt.Sprintf("%v", v)
	}
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

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
