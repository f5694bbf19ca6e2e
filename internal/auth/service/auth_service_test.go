package service

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/clubaccess/member-access-service/internal/auth/model"
	"github.com/clubaccess/member-access-service/internal/system/config"
	errors2 "github.com/clubaccess/member-access-service/internal/system/errors"
	"github.com/clubaccess/member-access-service/internal/system/log"
)

// MockUserStore implements store.UserStoreInterface for testing
type MockUserStore struct {
	mock.Mock
}

func (m *MockUserStore) GetUserByUsername(username string) (*model.User, error) {
	args := m.Called(username)
	user, _ := args.Get(0).(*model.User)
	return user, args.Error(1)
}

func (m *MockUserStore) CreateUser(username, passwordHash, role string) (bool, error) {
	args := m.Called(username, passwordHash, role)
	return args.Bool(0), args.Error(1)
}

func setupAuthRuntime(t *testing.T) {
	t.Helper()
	_ = log.Init("DEBUG")
	config.OverrideRuntime(config.Config{
		Auth: config.AuthConfig{
			JWTSecret:          "test-secret",
			TokenLifetimeHours: 8,
		},
	})
}

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func TestLoginSuccess(t *testing.T) {
	setupAuthRuntime(t)

	mockStore := new(MockUserStore)
	svc := AuthService{store: mockStore}

	mockStore.On("GetUserByUsername", "admin").Return(&model.User{
		ID:           1,
		Username:     "admin",
		PasswordHash: hashPassword(t, "secret123"),
		Role:         "admin",
	}, nil)

	result, err := svc.Login(model.LoginRequest{Username: " admin ", Password: "secret123"})

	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.Equal(t, "admin", result.Username)
	assert.Equal(t, "admin", result.Role)
	mockStore.AssertExpectations(t)
}

func TestLoginWrongPassword(t *testing.T) {
	setupAuthRuntime(t)

	mockStore := new(MockUserStore)
	svc := AuthService{store: mockStore}

	mockStore.On("GetUserByUsername", "admin").Return(&model.User{
		ID:           1,
		Username:     "admin",
		PasswordHash: hashPassword(t, "secret123"),
		Role:         "admin",
	}, nil)

	_, err := svc.Login(model.LoginRequest{Username: "admin", Password: "wrong"})

	var clientErr *errors2.ClientError
	require.ErrorAs(t, err, &clientErr)
	assert.Equal(t, http.StatusUnauthorized, clientErr.StatusCode)
}

func TestLoginUnknownUserLooksLikeWrongPassword(t *testing.T) {
	setupAuthRuntime(t)

	mockStore := new(MockUserStore)
	svc := AuthService{store: mockStore}

	mockStore.On("GetUserByUsername", "ghost").Return(nil, nil)

	_, err := svc.Login(model.LoginRequest{Username: "ghost", Password: "whatever"})

	var clientErr *errors2.ClientError
	require.ErrorAs(t, err, &clientErr)
	assert.Equal(t, http.StatusUnauthorized, clientErr.StatusCode)
	assert.Equal(t, errors2.INVALID_CREDENTIALS.Code, clientErr.Code)
}

func TestLoginRejectsEmptyCredentials(t *testing.T) {
	setupAuthRuntime(t)

	svc := AuthService{store: new(MockUserStore)}

	_, err := svc.Login(model.LoginRequest{Username: "", Password: ""})

	var clientErr *errors2.ClientError
	require.ErrorAs(t, err, &clientErr)
	assert.Equal(t, http.StatusUnauthorized, clientErr.StatusCode)
}
