package store

import (
	"fmt"
	"time"

	"github.com/clubaccess/member-access-service/internal/qrtags/model"
	"github.com/clubaccess/member-access-service/internal/system/database/provider"
	errors2 "github.com/clubaccess/member-access-service/internal/system/errors"
	"github.com/clubaccess/member-access-service/internal/system/log"
)

// TagStoreInterface defines persistence operations for QR tags.
type TagStoreInterface interface {
	FindMemberID(document string, memberID int) (int, error)
	LinkTag(tagUUID string, memberID int) (*model.Tag, error)
	ResolveTag(tagUUID string) (*model.ResolveResponse, error)
	RevokeTag(tagUUID string) (bool, error)
}

// TagStore is the Postgres implementation of TagStoreInterface.
type TagStore struct{}

// FindMemberID resolves the target member of a link request. Returns 0 when
// no member matches.
func (s *TagStore) FindMemberID(document string, memberID int) (int, error) {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	if err != nil {
		return 0, tagServerError(errors2.LINK_QR_TAG, "Failed to get database client for member lookup", err)
	}
	defer dbClient.Close()

	rows, err := dbClient.ExecuteQuery(
		`SELECT id FROM members WHERE ($1 <> '' AND document_number = $1) OR ($2 > 0 AND id = $2) LIMIT 1`,
		document, memberID)
	if err != nil {
		return 0, tagServerError(errors2.LINK_QR_TAG, "Failed to look up member for tag link", err)
	}
	if len(rows) == 0 {
		return 0, nil
	}
	return int(rowInt64(rows[0], "id")), nil
}

// LinkTag binds the tag UUID to the member. Relinking an existing tag moves
// it to the new member, reactivates it and clears any revocation.
func (s *TagStore) LinkTag(tagUUID string, memberID int) (*model.Tag, error) {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	if err != nil {
		return nil, tagServerError(errors2.LINK_QR_TAG, "Failed to get database client for tag link", err)
	}
	defer dbClient.Close()

	rows, err := dbClient.ExecuteQuery(
		`INSERT INTO qr_tags (uuid, member_id, active, linked_at, revoked_at)
		VALUES ($1, $2, TRUE, NOW(), NULL)
		ON CONFLICT (uuid) DO UPDATE SET
			member_id = EXCLUDED.member_id, active = TRUE, linked_at = NOW(), revoked_at = NULL
		RETURNING id, uuid, member_id, active, linked_at, revoked_at`, tagUUID, memberID)
	if err != nil {
		return nil, tagServerError(errors2.LINK_QR_TAG, "Failed to link tag", err)
	}
	if len(rows) != 1 {
		return nil, tagServerError(errors2.LINK_QR_TAG, "Tag link returned no row", nil)
	}
	tag := scanTagRow(rows[0])
	return &tag, nil
}

// ResolveTag returns the tag and its linked member when the tag is active.
// Returns nil for unknown or revoked tags.
func (s *TagStore) ResolveTag(tagUUID string) (*model.ResolveResponse, error) {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	if err != nil {
		return nil, tagServerError(errors2.RESOLVE_QR_TAG, "Failed to get database client for tag resolve", err)
	}
	defer dbClient.Close()

	rows, err := dbClient.ExecuteQuery(
		`SELECT q.id, q.uuid, q.member_id, q.active, q.linked_at, q.revoked_at,
			m.member_number, m.document_number, m.full_name, m.status, m.member_type
		FROM qr_tags q
		JOIN members m ON m.id = q.member_id
		WHERE q.uuid = $1 AND q.active = TRUE`, tagUUID)
	if err != nil {
		return nil, tagServerError(errors2.RESOLVE_QR_TAG, "Failed to resolve tag", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	row := rows[0]
	return &model.ResolveResponse{
		Tag: scanTagRow(row),
		Member: model.TagMember{
			ID:             int(rowInt64(row, "member_id")),
			MemberNumber:   rowString(row, "member_number"),
			DocumentNumber: rowString(row, "document_number"),
			FullName:       rowString(row, "full_name"),
			Status:         rowString(row, "status"),
			MemberType:     rowString(row, "member_type"),
		},
	}, nil
}

// RevokeTag deactivates the tag and stamps the revocation time. The boolean
// result reports whether the tag exists.
func (s *TagStore) RevokeTag(tagUUID string) (bool, error) {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	if err != nil {
		return false, tagServerError(errors2.REVOKE_QR_TAG, "Failed to get database client for tag revoke", err)
	}
	defer dbClient.Close()

	rows, err := dbClient.ExecuteQuery(
		`UPDATE qr_tags SET active = FALSE, revoked_at = NOW() WHERE uuid = $1 RETURNING id`, tagUUID)
	if err != nil {
		return false, tagServerError(errors2.REVOKE_QR_TAG, "Failed to revoke tag", err)
	}
	return len(rows) == 1, nil
}

func scanTagRow(row map[string]interface{}) model.Tag {
	return model.Tag{
		ID:        int(rowInt64(row, "id")),
		UUID:      rowString(row, "uuid"),
		MemberID:  int(rowInt64(row, "member_id")),
		Active:    rowBool(row, "active"),
		LinkedAt:  rowTimestamp(row, "linked_at"),
		RevokedAt: rowTimestamp(row, "revoked_at"),
	}
}

func tagServerError(msg errors2.ErrorMessage, description string, err error) error {
	log.GetLogger().Debug(description, log.Error(err))
	return errors2.NewServerError(errors2.ErrorMessage{
		Code:        msg.Code,
		Message:     msg.Message,
		Description: description,
	}, err)
}

func rowString(row map[string]interface{}, col string) string {
	switch v := row[col].(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
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

func rowBool(row map[string]interface{}, col string) bool {
	switch v := row[col].(type) {
	case bool:
		return v
	case []byte:
		return string(v) == "true" || string(v) == "t"
	default:
		return false
	}
}
