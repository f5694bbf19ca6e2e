package service

import (
	"database/sql"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/clubaccess/member-access-service/internal/members/model"
	errors2 "github.com/clubaccess/member-access-service/internal/system/errors"
	"github.com/clubaccess/member-access-service/internal/system/log"
)

// MockMemberStore implements store.MemberStoreInterface for testing
type MockMemberStore struct {
	mock.Mock
}

func (m *MockMemberStore) UpsertTx(tx *sql.Tx, columns []string, values []interface{}) (bool, error) {
	args := m.Called(tx, columns, values)
	return args.Bool(0), args.Error(1)
}

func (m *MockMemberStore) ListMembers(search string, limit, offset int) ([]model.Member, int, error) {
	args := m.Called(search, limit, offset)
	return args.Get(0).([]model.Member), args.Int(1), args.Error(2)
}

func (m *MockMemberStore) GetMemberByDocument(document string) (*model.Member, error) {
	args := m.Called(document)
	member, _ := args.Get(0).(*model.Member)
	return member, args.Error(1)
}

func TestListMembersPagination(t *testing.T) {
	_ = log.Init("DEBUG")

	mockStore := new(MockMemberStore)
	svc := MemberService{store: mockStore}

	mockStore.
		On("ListMembers", "perez", 50, 50).
		Return([]model.Member{{ID: 51, FullName: "Perez, Juan", DocumentNumber: "20111222"}}, 101, nil)

	page, err := svc.ListMembers(" perez ", 2, 50)

	require.NoError(t, err)
	assert.Equal(t, 2, page.Page)
	assert.Equal(t, 101, page.Total)
	assert.Equal(t, 3, page.TotalPages)
	assert.Len(t, page.Members, 1)

	mockStore.AssertExpectations(t)
}

func TestGetMemberNormalizesDocument(t *testing.T) {
	_ = log.Init("DEBUG")

	mockStore := new(MockMemberStore)
	svc := MemberService{store: mockStore}

	mockStore.
		On("GetMemberByDocument", "20111222").
		Return(&model.Member{ID: 1, DocumentNumber: "20111222"}, nil)

	member, err := svc.GetMemberByDocument("20.111.222")

	require.NoError(t, err)
	assert.Equal(t, "20111222", member.DocumentNumber)
	mockStore.AssertExpectations(t)
}

func TestGetMemberNotFound(t *testing.T) {
	_ = log.Init("DEBUG")

	mockStore := new(MockMemberStore)
	svc := MemberService{store: mockStore}

	mockStore.
		On("GetMemberByDocument", "99999999").
		Return(nil, nil)

	_, err := svc.GetMemberByDocument("99999999")

	var clientErr *errors2.ClientError
	require.ErrorAs(t, err, &clientErr)
	assert.Equal(t, http.StatusNotFound, clientErr.StatusCode)
	mockStore.AssertExpectations(t)
}
