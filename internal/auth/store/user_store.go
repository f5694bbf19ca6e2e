package store

import (
	"fmt"

	"github.com/clubaccess/member-access-service/internal/auth/model"
	"github.com/clubaccess/member-access-service/internal/system/database/provider"
	errors2 "github.com/clubaccess/member-access-service/internal/system/errors"
	"github.com/clubaccess/member-access-service/internal/system/log"
)

// UserStoreInterface defines persistence operations for operator accounts.
type UserStoreInterface interface {
	GetUserByUsername(username string) (*model.User, error)
	CreateUser(username, passwordHash, role string) (bool, error)
}

// UserStore is the Postgres implementation of UserStoreInterface.
type UserStore struct{}

// GetUserByUsername fetches one account by username. Returns nil when no
// such account exists.
func (s *UserStore) GetUserByUsername(username string) (*model.User, error) {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	if err != nil {
		return nil, userServerError("Failed to get database client for user lookup", err)
	}
	defer dbClient.Close()

	rows, err := dbClient.ExecuteQuery(
		`SELECT id, username, password_hash, role FROM users WHERE username = $1`, username)
	if err != nil {
		return nil, userServerError("Failed to fetch user", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	row := rows[0]
	return &model.User{
		ID:           int(rowInt64(row, "id")),
		Username:     rowString(row, "username"),
		PasswordHash: rowString(row, "password_hash"),
		Role:         rowString(row, "role"),
	}, nil
}

// CreateUser inserts a new account, leaving an existing username untouched.
// The result reports whether a row was created.
func (s *UserStore) CreateUser(username, passwordHash, role string) (bool, error) {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	if err != nil {
		return false, userServerError("Failed to get database client for user creation", err)
	}
	defer dbClient.Close()

	rows, err := dbClient.ExecuteQuery(
		`INSERT INTO users (username, password_hash, role) VALUES ($1, $2, $3)
		ON CONFLICT (username) DO NOTHING
		RETURNING id`, username, passwordHash, role)
	if err != nil {
		return false, userServerError("Failed to create user", err)
	}
	return len(rows) == 1, nil
}

func userServerError(description string, err error) error {
	log.GetLogger().Debug(description, log.Error(err))
	return errors2.NewServerError(errors2.ErrorMessage{
		Code:        errors2.AUTHENTICATE_USER.Code,
		Message:     errors2.AUTHENTICATE_USER.Message,
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
