package services

import (
	"context"

	"github.com/SAP-F-2025/survey-service/internal/authoring"
	"github.com/SAP-F-2025/survey-service/internal/models"
	"github.com/SAP-F-2025/survey-service/internal/repositories"
	"github.com/stretchr/testify/mock"
	"gorm.io/datatypes"
)

// MockQuestionRepository is a mock implementation of QuestionRepository
type MockQuestionRepository struct {
	mock.Mock
}

func (m *MockQuestionRepository) Create(ctx context.Context, record *models.Record, createdBy string) error {
	args := m.Called(ctx, record, createdBy)
	return args.Error(0)
}

func (m *MockQuestionRepository) GetByID(ctx context.Context, id uint) (*models.Record, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Record), args.Error(1)
}

func (m *MockQuestionRepository) GetByIDs(ctx context.Context, ids []uint) ([]*models.Record, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Record), args.Error(1)
}

func (m *MockQuestionRepository) Update(ctx context.Context, record *models.Record) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockQuestionRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockQuestionRepository) List(ctx context.Context, filters repositories.QuestionFilters) ([]*models.Record, int64, error) {
	args := m.Called(ctx, filters)
	return args.Get(0).([]*models.Record), args.Get(1).(int64), args.Error(2)
}

// MockSurveyRepository is a mock implementation of SurveyRepository
type MockSurveyRepository struct {
	mock.Mock
}

func (m *MockSurveyRepository) Create(ctx context.Context, survey *models.Survey) error {
	args := m.Called(ctx, survey)
	return args.Error(0)
}

func (m *MockSurveyRepository) GetByID(ctx context.Context, id uint) (*models.Survey, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Survey), args.Error(1)
}

func (m *MockSurveyRepository) Update(ctx context.Context, survey *models.Survey) error {
	args := m.Called(ctx, survey)
	return args.Error(0)
}

func (m *MockSurveyRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockSurveyRepository) AddQuestion(ctx context.Context, surveyID, questionID uint) error {
	args := m.Called(ctx, surveyID, questionID)
	return args.Error(0)
}

func (m *MockSurveyRepository) RemoveQuestion(ctx context.Context, surveyID, questionID uint) error {
	args := m.Called(ctx, surveyID, questionID)
	return args.Error(0)
}

func (m *MockSurveyRepository) SetQuestions(ctx context.Context, surveyID uint, questionIDs []uint) error {
	args := m.Called(ctx, surveyID, questionIDs)
	return args.Error(0)
}

func (m *MockSurveyRepository) GetQuestionIDs(ctx context.Context, surveyID uint) ([]uint, error) {
	args := m.Called(ctx, surveyID)
	return args.Get(0).([]uint), args.Error(1)
}

// MockResponseRepository is a mock implementation of ResponseRepository
type MockResponseRepository struct {
	mock.Mock
}

func (m *MockResponseRepository) CreateBatch(ctx context.Context, records []*models.ResponseRecord) error {
	args := m.Called(ctx, records)
	return args.Error(0)
}

func (m *MockResponseRepository) GetByRespondent(ctx context.Context, respondentID string, filters repositories.ResponseFilters) ([]models.ResponseRecord, error) {
	args := m.Called(ctx, respondentID, filters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ResponseRecord), args.Error(1)
}

func (m *MockResponseRepository) GetBySurvey(ctx context.Context, surveyID uint) ([]models.ResponseRecord, error) {
	args := m.Called(ctx, surveyID)
	return args.Get(0).([]models.ResponseRecord), args.Error(1)
}

// MockMetaStore is a mock implementation of MetaStore
type MockMetaStore struct {
	mock.Mock
}

func (m *MockMetaStore) GetMeta(ctx context.Context, questionID uint) (map[string]datatypes.JSON, error) {
	args := m.Called(ctx, questionID)
	return args.Get(0).(map[string]datatypes.JSON), args.Error(1)
}

func (m *MockMetaStore) SaveMeta(ctx context.Context, questionID uint, values map[string]datatypes.JSON, deletes []string) error {
	args := m.Called(ctx, questionID, values, deletes)
	return args.Error(0)
}

func (m *MockMetaStore) DeleteMeta(ctx context.Context, questionID uint) error {
	args := m.Called(ctx, questionID)
	return args.Error(0)
}

// mockRepository bundles the repository mocks
type mockRepository struct {
	questions *MockQuestionRepository
	meta      *MockMetaStore
	surveys   *MockSurveyRepository
	responses *MockResponseRepository
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		questions: &MockQuestionRepository{},
		meta:      &MockMetaStore{},
		surveys:   &MockSurveyRepository{},
		responses: &MockResponseRepository{},
	}
}

func (r *mockRepository) Question() repositories.QuestionRepository { return r.questions }
func (r *mockRepository) Meta() repositories.MetaStore               { return r.meta }
func (r *mockRepository) Survey() repositories.SurveyRepository      { return r.surveys }
func (r *mockRepository) Response() repositories.ResponseRepository  { return r.responses }

// MockDraftStore is a mock implementation of DraftStore
type MockDraftStore struct {
	mock.Mock
}

func (m *MockDraftStore) Create(ctx context.Context, draft authoring.Draft) (string, error) {
	args := m.Called(ctx, draft)
	return args.String(0), args.Error(1)
}

func (m *MockDraftStore) Get(ctx context.Context, id string) (authoring.Draft, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(authoring.Draft), args.Error(1)
}

func (m *MockDraftStore) Put(ctx context.Context, id string, draft authoring.Draft) error {
	args := m.Called(ctx, id, draft)
	return args.Error(0)
}

func (m *MockDraftStore) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockNonceStore is a mock implementation of NonceStore
type MockNonceStore struct {
	mock.Mock
}

func (m *MockNonceStore) Issue(ctx context.Context, action, respondentID string) (string, error) {
	args := m.Called(ctx, action, respondentID)
	return args.String(0), args.Error(1)
}

func (m *MockNonceStore) Verify(ctx context.Context, action, respondentID, nonce string) (bool, error) {
	args := m.Called(ctx, action, respondentID, nonce)
	return args.Bool(0), args.Error(1)
}
