package services

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"importserver/normalization"
	"importserver/pipeline"
)

// MockContactStore мок хранилища контактов
type MockContactStore struct {
	mock.Mock
}

func (m *MockContactStore) SaveContacts(records []normalization.CanonicalRecord) (int, error) {
	args := m.Called(records)
	return args.Int(0), args.Error(1)
}

func (m *MockContactStore) ListContacts(limit, offset int) ([]normalization.CanonicalRecord, error) {
	args := m.Called(limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]normalization.CanonicalRecord), args.Error(1)
}

func (m *MockContactStore) CountContacts() (int, error) {
	args := m.Called()
	return args.Int(0), args.Error(1)
}

func TestImportService_ProcessBatch(t *testing.T) {
	store := new(MockContactStore)
	store.On("ListContacts", 0, 0).Return([]normalization.CanonicalRecord{}, nil)

	svc, err := NewImportService(store, nil)
	require.NoError(t, err)

	raw := []normalization.RawRecord{
		{"contactName": "John Smith", "email": "john@acme.com"},
		{"contactName": "Jon Smith", "email": "john@acme.com"},
	}

	outcome, appErr := svc.ProcessBatch(context.Background(), raw, false)
	require.Nil(t, appErr)
	require.NotNil(t, outcome)

	assert.Equal(t, 2, outcome.Result.Stats.TotalInput)
	assert.Equal(t, 1, outcome.Result.Stats.Duplicates)
	assert.Equal(t, 1, outcome.Result.Stats.ReadyForImport)
	assert.Equal(t, 0, outcome.Committed)

	store.AssertNotCalled(t, "SaveContacts", mock.Anything)
}

func TestImportService_ProcessBatchWithCommit(t *testing.T) {
	store := new(MockContactStore)
	store.On("ListContacts", 0, 0).Return([]normalization.CanonicalRecord{}, nil)
	store.On("SaveContacts", mock.Anything).Return(1, nil)

	svc, err := NewImportService(store, nil)
	require.NoError(t, err)

	raw := []normalization.RawRecord{
		{"contactName": "John Smith", "email": "john@acme.com"},
	}

	outcome, appErr := svc.ProcessBatch(context.Background(), raw, true)
	require.Nil(t, appErr)

	assert.Equal(t, 1, outcome.Committed)
	store.AssertCalled(t, "SaveContacts", mock.Anything)
}

func TestImportService_ProcessBatchAgainstExisting(t *testing.T) {
	store := new(MockContactStore)
	store.On("ListContacts", 0, 0).Return([]normalization.CanonicalRecord{
		{ContactName: "John Smith", Email: "john@acme.com", Country: "US"},
	}, nil)

	svc, err := NewImportService(store, nil)
	require.NoError(t, err)

	raw := []normalization.RawRecord{
		{"contactName": "John Smith", "email": "JOHN@ACME.COM"},
	}

	outcome, appErr := svc.ProcessBatch(context.Background(), raw, false)
	require.Nil(t, appErr)

	assert.Equal(t, 1, outcome.Result.Stats.Duplicates)
	assert.Equal(t, 0, outcome.Result.Stats.ReadyForImport)
}

func TestImportService_ProcessBatchEmpty(t *testing.T) {
	store := new(MockContactStore)

	svc, err := NewImportService(store, nil)
	require.NoError(t, err)

	_, appErr := svc.ProcessBatch(context.Background(), nil, false)
	require.NotNil(t, appErr)
	assert.Equal(t, http.StatusBadRequest, appErr.StatusCode())
}

func TestImportService_ProcessBatchUnlimitedCap(t *testing.T) {
	store := new(MockContactStore)
	store.On("ListContacts", 0, 0).Return([]normalization.CanonicalRecord{}, nil)

	// MaxBatchSize = 0 отключает лимит, любой непустой батч проходит
	p, err := pipeline.NewImportPipeline(&pipeline.ImportPipelineConfig{MaxBatchSize: 0, Workers: 1})
	require.NoError(t, err)

	svc, err := NewImportService(store, p)
	require.NoError(t, err)

	raw := []normalization.RawRecord{{"contactName": "John Smith"}}

	outcome, appErr := svc.ProcessBatch(context.Background(), raw, false)
	require.Nil(t, appErr)
	assert.Equal(t, 1, outcome.Result.Stats.TotalInput)
}

func TestImportService_ProcessBatchOverCap(t *testing.T) {
	store := new(MockContactStore)

	p, err := pipeline.NewImportPipeline(&pipeline.ImportPipelineConfig{MaxBatchSize: 2, Workers: 1})
	require.NoError(t, err)

	svc, err := NewImportService(store, p)
	require.NoError(t, err)

	raw := []normalization.RawRecord{
		{"contactName": "A"},
		{"contactName": "B"},
		{"contactName": "C"},
	}

	_, appErr := svc.ProcessBatch(context.Background(), raw, false)
	require.NotNil(t, appErr)
	assert.Equal(t, http.StatusRequestEntityTooLarge, appErr.StatusCode())
	store.AssertNotCalled(t, "ListContacts", mock.Anything, mock.Anything)
}

func TestImportService_ProcessBatchStoreFailure(t *testing.T) {
	store := new(MockContactStore)
	store.On("ListContacts", 0, 0).Return(nil, errors.New("disk I/O error"))

	svc, err := NewImportService(store, nil)
	require.NoError(t, err)

	raw := []normalization.RawRecord{{"contactName": "John Smith"}}

	_, appErr := svc.ProcessBatch(context.Background(), raw, false)
	require.NotNil(t, appErr)
	assert.Equal(t, http.StatusInternalServerError, appErr.StatusCode())
	// детали внутренней ошибки не должны попадать в сообщение пользователю
	assert.Equal(t, "Internal server error", appErr.UserMessage())
}

func TestImportService_ListContacts(t *testing.T) {
	store := new(MockContactStore)
	store.On("ListContacts", 10, 0).Return([]normalization.CanonicalRecord{
		{ContactName: "John Smith", Country: "US"},
	}, nil)
	store.On("CountContacts").Return(42, nil)

	svc, err := NewImportService(store, nil)
	require.NoError(t, err)

	records, total, appErr := svc.ListContacts(10, 0)
	require.Nil(t, appErr)

	assert.Len(t, records, 1)
	assert.Equal(t, 42, total)
}
