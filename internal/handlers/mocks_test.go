package handlers

import (
	"context"
	"encoding/json"
	"net/url"

	"github.com/SAP-F-2025/survey-service/internal/models"
	"github.com/SAP-F-2025/survey-service/internal/render"
	"github.com/SAP-F-2025/survey-service/internal/repositories"
	"github.com/SAP-F-2025/survey-service/internal/responses"
	"github.com/SAP-F-2025/survey-service/internal/services"
	"github.com/stretchr/testify/mock"
)

type MockQuestionService struct {
	mock.Mock
}

func (m *MockQuestionService) Create(ctx context.Context, record *models.Record, userID string) (*models.Record, error) {
	args := m.Called(ctx, record, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Record), args.Error(1)
}

func (m *MockQuestionService) GetByID(ctx context.Context, id uint) (*models.Record, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Record), args.Error(1)
}

func (m *MockQuestionService) Update(ctx context.Context, id uint, record *models.Record, userID string) (*models.Record, error) {
	args := m.Called(ctx, id, record, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Record), args.Error(1)
}

func (m *MockQuestionService) Delete(ctx context.Context, id uint, userID string) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

func (m *MockQuestionService) List(ctx context.Context, filters repositories.QuestionFilters) ([]*models.Record, int64, error) {
	args := m.Called(ctx, filters)
	return args.Get(0).([]*models.Record), args.Get(1).(int64), args.Error(2)
}

func (m *MockQuestionService) Render(ctx context.Context, id uint, values url.Values) (*render.QuestionView, error) {
	args := m.Called(ctx, id, values)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*render.QuestionView), args.Error(1)
}

type MockEditorService struct {
	mock.Mock
}

func (m *MockEditorService) Open(ctx context.Context, questionID uint, userID string) (*services.EditorState, error) {
	args := m.Called(ctx, questionID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.EditorState), args.Error(1)
}

func (m *MockEditorService) Dispatch(ctx context.Context, draftID, kind string, payload json.RawMessage) (*services.EditorState, error) {
	args := m.Called(ctx, draftID, kind, payload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.EditorState), args.Error(1)
}

func (m *MockEditorService) Save(ctx context.Context, draftID, userID string) (*models.Record, error) {
	args := m.Called(ctx, draftID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Record), args.Error(1)
}

func (m *MockEditorService) Discard(ctx context.Context, draftID string) error {
	args := m.Called(ctx, draftID)
	return args.Error(0)
}

type MockSurveyService struct {
	mock.Mock
}

func (m *MockSurveyService) Create(ctx context.Context, survey *models.Survey) (*models.Survey, error) {
	args := m.Called(ctx, survey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Survey), args.Error(1)
}

func (m *MockSurveyService) GetByID(ctx context.Context, id uint) (*models.Survey, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Survey), args.Error(1)
}

func (m *MockSurveyService) Update(ctx context.Context, id uint, survey *models.Survey) (*models.Survey, error) {
	args := m.Called(ctx, id, survey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Survey), args.Error(1)
}

func (m *MockSurveyService) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockSurveyService) AddQuestion(ctx context.Context, surveyID, questionID uint) error {
	args := m.Called(ctx, surveyID, questionID)
	return args.Error(0)
}

func (m *MockSurveyService) RemoveQuestion(ctx context.Context, surveyID, questionID uint) error {
	args := m.Called(ctx, surveyID, questionID)
	return args.Error(0)
}

func (m *MockSurveyService) SetQuestions(ctx context.Context, surveyID uint, questionIDs []uint) error {
	args := m.Called(ctx, surveyID, questionIDs)
	return args.Error(0)
}

func (m *MockSurveyService) Questions(ctx context.Context, surveyID uint) (*models.Survey, []models.Question, error) {
	args := m.Called(ctx, surveyID)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*models.Survey), args.Get(1).([]models.Question), args.Error(2)
}

func (m *MockSurveyService) Form(ctx context.Context, surveyID uint, token string) (*render.FormView, error) {
	args := m.Called(ctx, surveyID, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*render.FormView), args.Error(1)
}

func (m *MockSurveyService) Submit(ctx context.Context, req services.SubmitRequest) (*services.SubmitResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.SubmitResult), args.Error(1)
}

func (m *MockSurveyService) IssueNonce(ctx context.Context, action, respondentID string) (string, error) {
	args := m.Called(ctx, action, respondentID)
	return args.String(0), args.Error(1)
}

func (m *MockSurveyService) VerifyNonce(ctx context.Context, action, respondentID, nonce string) error {
	args := m.Called(ctx, action, respondentID, nonce)
	return args.Error(0)
}

type MockResponseService struct {
	mock.Mock
}

func (m *MockResponseService) ListForRespondent(ctx context.Context, respondentID string, filters repositories.ResponseFilters) ([]models.ResponseRecord, error) {
	args := m.Called(ctx, respondentID, filters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ResponseRecord), args.Error(1)
}

func (m *MockResponseService) ListForSurvey(ctx context.Context, surveyID uint) ([]models.ResponseRecord, error) {
	args := m.Called(ctx, surveyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ResponseRecord), args.Error(1)
}

func (m *MockResponseService) Grouped(ctx context.Context, respondentID string) (responses.Grouped, error) {
	args := m.Called(ctx, respondentID)
	return args.Get(0).(responses.Grouped), args.Error(1)
}

type MockExportService struct {
	mock.Mock
}

func (m *MockExportService) ExportResponses(ctx context.Context, respondentID string) ([]byte, error) {
	args := m.Called(ctx, respondentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockExportService) ExportSurveyQuestions(ctx context.Context, surveyID uint) ([]byte, error) {
	args := m.Called(ctx, surveyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

type mockServiceManager struct {
	question *MockQuestionService
	editor   *MockEditorService
	survey   *MockSurveyService
	response *MockResponseService
	export   *MockExportService
}

func newMockServiceManager() *mockServiceManager {
	return &mockServiceManager{
		question: &MockQuestionService{},
		editor:   &MockEditorService{},
		survey:   &MockSurveyService{},
		response: &MockResponseService{},
		export:   &MockExportService{},
	}
}

func (m *mockServiceManager) Question() services.QuestionService { return m.question }
func (m *mockServiceManager) Editor() services.EditorService     { return m.editor }
func (m *mockServiceManager) Survey() services.SurveyService     { return m.survey }
func (m *mockServiceManager) Response() services.ResponseService { return m.response }
func (m *mockServiceManager) Export() services.ExportService     { return m.export }
