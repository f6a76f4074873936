package services

import (
	"log/slog"

	"github.com/SAP-F-2025/survey-service/internal/events"
	"github.com/SAP-F-2025/survey-service/internal/repositories"
	"github.com/SAP-F-2025/survey-service/internal/validator"
)

// ServiceManager hands out the wired services
type ServiceManager interface {
	Question() QuestionService
	Editor() EditorService
	Survey() SurveyService
	Response() ResponseService
	Export() ExportService
}

type serviceManager struct {
	question QuestionService
	editor   EditorService
	survey   SurveyService
	response ResponseService
	export   ExportService
}

func NewServiceManager(
	repo repositories.Repository,
	drafts DraftStore,
	nonces NonceStore,
	publisher events.EventPublisher,
	logger *slog.Logger,
	validator *validator.Validator,
) ServiceManager {
	if publisher == nil {
		publisher = events.NewMockEventPublisher(logger)
	}

	question := NewQuestionService(repo, publisher, logger, validator)
	survey := NewSurveyService(repo, nonces, publisher, logger, validator)
	response := NewResponseService(repo, logger)

	return &serviceManager{
		question: question,
		editor:   NewEditorService(question, drafts, logger),
		survey:   survey,
		response: response,
		export:   NewExportService(response, survey, logger),
	}
}

func (m *serviceManager) Question() QuestionService { return m.question }
func (m *serviceManager) Editor() EditorService     { return m.editor }
func (m *serviceManager) Survey() SurveyService     { return m.survey }
func (m *serviceManager) Response() ResponseService { return m.response }
func (m *serviceManager) Export() ExportService     { return m.export }
