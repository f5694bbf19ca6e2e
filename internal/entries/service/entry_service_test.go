package service

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/clubaccess/member-access-service/internal/entries/model"
	errors2 "github.com/clubaccess/member-access-service/internal/system/errors"
	"github.com/clubaccess/member-access-service/internal/system/log"
)

// MockEntryStore implements store.EntryStoreInterface for testing
type MockEntryStore struct {
	mock.Mock
}

func (m *MockEntryStore) FindMemberForEntry(document, memberNumber string) (*model.EntryMember, error) {
	args := m.Called(document, memberNumber)
	member, _ := args.Get(0).(*model.EntryMember)
	return member, args.Error(1)
}

func (m *MockEntryStore) ResolveTagMember(tagUUID string) (*model.EntryMember, error) {
	args := m.Called(tagUUID)
	member, _ := args.Get(0).(*model.EntryMember)
	return member, args.Error(1)
}

func (m *MockEntryStore) InsertMemberEntry(memberID int, details model.EntryDetails) error {
	args := m.Called(memberID, details)
	return args.Error(0)
}

func (m *MockEntryStore) RegisterVisitorEntry(document, fullName string, details model.EntryDetails) (*model.EntryVisitor, error) {
	args := m.Called(document, fullName, details)
	visitor, _ := args.Get(0).(*model.EntryVisitor)
	return visitor, args.Error(1)
}

func (m *MockEntryStore) ListEntries(filter model.EntryFilter, limit, offset int) ([]model.Entry, int, error) {
	args := m.Called(filter, limit, offset)
	return args.Get(0).([]model.Entry), args.Int(1), args.Error(2)
}

func (m *MockEntryStore) UpdatePaymentStatus(entryID int, status string) (bool, error) {
	args := m.Called(entryID, status)
	return args.Bool(0), args.Error(1)
}

func activeMember() *model.EntryMember {
	return &model.EntryMember{ID: 7, DocumentNumber: "20111222", FullName: "Perez, Juan", Status: "ACTIVO"}
}

func TestRegisterQREntryActiveMember(t *testing.T) {
	_ = log.Init("DEBUG")

	mockStore := new(MockEntryStore)
	svc := EntryService{store: mockStore}

	mockStore.On("FindMemberForEntry", "20111222", "").Return(activeMember(), nil)
	mockStore.
		On("InsertMemberEntry", 7, model.EntryDetails{ValidatedBy: "porteria", AccessType: "car", Plate: "AB123CD"}).
		Return(nil)

	result, err := svc.RegisterQREntry(model.QREntryRequest{
		QRData:     `{"dni": "20.111.222"}`,
		AccessType: "Car",
		Plate:      " ab123cd ",
	}, "porteria")

	require.NoError(t, err)
	assert.Equal(t, 7, result.Member.ID)
	assert.Equal(t, "AB123CD", result.Plate)
	mockStore.AssertExpectations(t)
}

func TestRegisterQREntryUnknownAccessTypeBecomesOther(t *testing.T) {
	_ = log.Init("DEBUG")

	mockStore := new(MockEntryStore)
	svc := EntryService{store: mockStore}

	mockStore.On("FindMemberForEntry", "20111222", "").Return(activeMember(), nil)
	mockStore.
		On("InsertMemberEntry", 7, model.EntryDetails{ValidatedBy: "porteria", AccessType: "other"}).
		Return(nil)

	result, err := svc.RegisterQREntry(model.QREntryRequest{
		QRData:     "20111222",
		AccessType: "helicopter",
	}, "porteria")

	require.NoError(t, err)
	assert.Equal(t, "other", result.AccessType)
	mockStore.AssertExpectations(t)
}

func TestRegisterQREntryIneligibleMember(t *testing.T) {
	_ = log.Init("DEBUG")

	mockStore := new(MockEntryStore)
	svc := EntryService{store: mockStore}

	mockStore.
		On("FindMemberForEntry", "20111222", "").
		Return(&model.EntryMember{ID: 7, DocumentNumber: "20111222", Status: "MOROSO"}, nil)

	_, err := svc.RegisterQREntry(model.QREntryRequest{QRData: "20111222"}, "porteria")

	var clientErr *errors2.ClientError
	require.ErrorAs(t, err, &clientErr)
	assert.Equal(t, http.StatusForbidden, clientErr.StatusCode)
	mockStore.AssertExpectations(t)
}

func TestRegisterQREntryLifetimeMemberBypassesStatus(t *testing.T) {
	_ = log.Init("DEBUG")

	mockStore := new(MockEntryStore)
	svc := EntryService{store: mockStore}

	mockStore.
		On("FindMemberForEntry", "20111222", "").
		Return(&model.EntryMember{ID: 7, DocumentNumber: "20111222", Status: "BAJA", MemberType: "Socio Vitalicio"}, nil)
	mockStore.On("InsertMemberEntry", 7, mock.Anything).Return(nil)

	_, err := svc.RegisterQREntry(model.QREntryRequest{QRData: "20111222"}, "porteria")

	require.NoError(t, err)
	mockStore.AssertExpectations(t)
}

func TestRegisterQREntryUnresolvedPayload(t *testing.T) {
	_ = log.Init("DEBUG")

	svc := EntryService{store: new(MockEntryStore)}

	_, err := svc.RegisterQREntry(model.QREntryRequest{QRData: "not a number"}, "porteria")

	var clientErr *errors2.ClientError
	require.ErrorAs(t, err, &clientErr)
	assert.Equal(t, http.StatusBadRequest, clientErr.StatusCode)
}

func TestRegisterUUIDEntryUnknownTag(t *testing.T) {
	_ = log.Init("DEBUG")

	mockStore := new(MockEntryStore)
	svc := EntryService{store: mockStore}

	mockStore.
		On("ResolveTagMember", "6f9619ff-8b86-4d01-b42d-00cf4fc964ff").
		Return(nil, nil)

	_, err := svc.RegisterUUIDEntry(model.UUIDEntryRequest{
		UUID: "6F9619FF-8B86-4D01-B42D-00CF4FC964FF",
	}, "porteria")

	var clientErr *errors2.ClientError
	require.ErrorAs(t, err, &clientErr)
	assert.Equal(t, http.StatusNotFound, clientErr.StatusCode)
	mockStore.AssertExpectations(t)
}

func TestRegisterVisitorEntry(t *testing.T) {
	_ = log.Init("DEBUG")

	mockStore := new(MockEntryStore)
	svc := EntryService{store: mockStore}

	mockStore.
		On("RegisterVisitorEntry", "30222333", "Gomez, Ana", model.EntryDetails{ValidatedBy: "porteria", AccessType: "pedestrian"}).
		Return(&model.EntryVisitor{ID: 3, DocumentNumber: "30222333", FullName: "Gomez, Ana"}, nil)

	result, err := svc.RegisterVisitorEntry(model.VisitorEntryRequest{
		FullName:   " Gomez, Ana ",
		Document:   "30.222.333",
		AccessType: "pedestrian",
	}, "porteria")

	require.NoError(t, err)
	assert.Equal(t, 3, result.Visitor.ID)
	mockStore.AssertExpectations(t)
}

func TestRegisterVisitorEntryRequiresDocumentAndName(t *testing.T) {
	_ = log.Init("DEBUG")

	svc := EntryService{store: new(MockEntryStore)}

	_, err := svc.RegisterVisitorEntry(model.VisitorEntryRequest{FullName: "Gomez, Ana"}, "porteria")

	var clientErr *errors2.ClientError
	require.ErrorAs(t, err, &clientErr)
	assert.Equal(t, http.StatusBadRequest, clientErr.StatusCode)
}

func TestListEntriesNormalizesFilter(t *testing.T) {
	_ = log.Init("DEBUG")

	mockStore := new(MockEntryStore)
	svc := EntryService{store: mockStore}

	expected := model.EntryFilter{Document: "20111222", PaymentStatus: "monthly_pass"}
	mockStore.
		On("ListEntries", expected, 50, 0).
		Return([]model.Entry{{ID: 1, Kind: model.KindMember}}, 1, nil)

	page, err := svc.ListEntries(model.EntryFilter{
		Document:      "20.111.222",
		PaymentStatus: "Monthly Pass",
	}, 1, 50)

	require.NoError(t, err)
	assert.Equal(t, 1, page.Total)
	assert.Equal(t, 1, page.TotalPages)
	mockStore.AssertExpectations(t)
}

func TestUpdatePaymentStatusRejectsUnknownValue(t *testing.T) {
	_ = log.Init("DEBUG")

	svc := EntryService{store: new(MockEntryStore)}

	err := svc.UpdatePaymentStatus(1, "iou")

	var clientErr *errors2.ClientError
	require.ErrorAs(t, err, &clientErr)
	assert.Equal(t, http.StatusBadRequest, clientErr.StatusCode)
}

func TestUpdatePaymentStatusEntryNotFound(t *testing.T) {
	_ = log.Init("DEBUG")

	mockStore := new(MockEntryStore)
	svc := EntryService{store: mockStore}

	mockStore.On("UpdatePaymentStatus", 42, "paid").Return(false, nil)

	err := svc.UpdatePaymentStatus(42, "paid")

	var clientErr *errors2.ClientError
	require.ErrorAs(t, err, &clientErr)
	assert.Equal(t, http.StatusNotFound, clientErr.StatusCode)
	mockStore.AssertExpectations(t)
}
