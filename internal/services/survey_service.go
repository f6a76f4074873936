package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/SAP-F-2025/survey-service/internal/events"
	"github.com/SAP-F-2025/survey-service/internal/models"
	"github.com/SAP-F-2025/survey-service/internal/render"
	"github.com/SAP-F-2025/survey-service/internal/repositories"
	"github.com/SAP-F-2025/survey-service/internal/validator"
)

const (
	ActionSubmitSurvey = "submit_survey"
	ActionGetResponses = "get_survey_responses"
)

// NonceStore issues and checks anti-forgery nonces
type NonceStore interface {
	Issue(ctx context.Context, action, respondentID string) (string, error)
	Verify(ctx context.Context, action, respondentID, nonce string) (bool, error)
}

type SubmitRequest struct {
	SurveyID     uint
	RespondentID string
	Values       url.Values
}

type SubmitResult struct {
	Message   string `json:"message"`
	Responses int    `json:"responses"`
}

type SurveyService interface {
	Create(ctx context.Context, survey *models.Survey) (*models.Survey, error)
	GetByID(ctx context.Context, id uint) (*models.Survey, error)
	Update(ctx context.Context, id uint, survey *models.Survey) (*models.Survey, error)
	Delete(ctx context.Context, id uint) error
	SetQuestions(ctx context.Context, surveyID uint, questionIDs []uint) error
	AddQuestion(ctx context.Context, surveyID, questionID uint) error
	RemoveQuestion(ctx context.Context, surveyID, questionID uint) error
	Questions(ctx context.Context, surveyID uint) (*models.Survey, []models.Question, error)

	// Form renders the respondent form
	Form(ctx context.Context, surveyID uint, token string) (*render.FormView, error)
	Submit(ctx context.Context, req SubmitRequest) (*SubmitResult, error)

	IssueNonce(ctx context.Context, action, respondentID string) (string, error)
	VerifyNonce(ctx context.Context, action, respondentID, nonce string) error
}

type surveyService struct {
	repo      repositories.Repository
	nonces    NonceStore
	publisher events.EventPublisher
	logger    *ServiceLogger
	validator *validator.Validator
	now       func() time.Time
}

func NewSurveyService(repo repositories.Repository, nonces NonceStore, publisher events.EventPublisher, logger *slog.Logger, validator *validator.Validator) SurveyService {
	return &surveyService{
		repo:      repo,
		nonces:    nonces,
		publisher: publisher,
		logger:    NewServiceLogger(logger, LogConfig{Service: "survey-service", Component: "survey"}),
		validator: validator,
		now:       time.Now,
	}
}

func (s *surveyService) Create(ctx context.Context, survey *models.Survey) (*models.Survey, error) {
	if err := s.validator.ValidateStruct(survey); err != nil {
		return nil, err
	}
	survey.ID = 0
	survey.Questions = nil
	if err := s.repo.Survey().Create(ctx, survey); err != nil {
		return nil, fmt.Errorf("failed to create survey: %w", err)
	}
	return survey, nil
}

func (s *surveyService) GetByID(ctx context.Context, id uint) (*models.Survey, error) {
	survey, err := s.repo.Survey().GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrSurveyNotFound
		}
		return nil, err
	}
	return survey, nil
}

func (s *surveyService) Update(ctx context.Context, id uint, survey *models.Survey) (*models.Survey, error) {
	if err := s.validator.ValidateStruct(survey); err != nil {
		return nil, err
	}
	survey.ID = id
	if err := s.repo.Survey().Update(ctx, survey); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrSurveyNotFound
		}
		return nil, fmt.Errorf("failed to update survey: %w", err)
	}
	return s.GetByID(ctx, id)
}

// Delete removes the survey and its question list. Stored responses are kept.
func (s *surveyService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Survey().Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrSurveyNotFound
		}
		return fmt.Errorf("failed to delete survey: %w", err)
	}
	return nil
}

// AddQuestion appends an existing question to the end of the survey
func (s *surveyService) AddQuestion(ctx context.Context, surveyID, questionID uint) error {
	if _, err := s.GetByID(ctx, surveyID); err != nil {
		return err
	}
	if _, err := s.repo.Question().GetByID(ctx, questionID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrSurveyUnknownQuestion
		}
		return fmt.Errorf("failed to load question: %w", err)
	}

	if err := s.repo.Survey().AddQuestion(ctx, surveyID, questionID); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return ErrSurveyQuestionExists
		}
		return err
	}
	return nil
}

func (s *surveyService) RemoveQuestion(ctx context.Context, surveyID, questionID uint) error {
	if err := s.repo.Survey().RemoveQuestion(ctx, surveyID, questionID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrSurveyUnknownQuestion
		}
		return err
	}
	return nil
}

// SetQuestions replaces the survey's ordered question list
func (s *surveyService) SetQuestions(ctx context.Context, surveyID uint, questionIDs []uint) error {
	if _, err := s.GetByID(ctx, surveyID); err != nil {
		return err
	}

	seen := make(map[uint]bool, len(questionIDs))
	for i, id := range questionIDs {
		if seen[id] {
			return ValidationErrors{*NewValidationError(fmt.Sprintf("question_ids[%d]", i), "is listed twice", id)}
		}
		seen[id] = true
	}

	records, err := s.repo.Question().GetByIDs(ctx, questionIDs)
	if err != nil {
		return fmt.Errorf("failed to load questions: %w", err)
	}
	if len(records) != len(questionIDs) {
		return ErrSurveyUnknownQuestion
	}

	return s.repo.Survey().SetQuestions(ctx, surveyID, questionIDs)
}

// Questions loads a survey with its questions in survey order
func (s *surveyService) Questions(ctx context.Context, surveyID uint) (*models.Survey, []models.Question, error) {
	survey, err := s.GetByID(ctx, surveyID)
	if err != nil {
		return nil, nil, err
	}

	ids, err := s.repo.Survey().GetQuestionIDs(ctx, surveyID)
	if err != nil {
		return nil, nil, err
	}
	records, err := s.repo.Question().GetByIDs(ctx, ids)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load survey questions: %w", err)
	}

	questions := make([]models.Question, len(records))
	for i, record := range records {
		questions[i] = record.Question()
	}
	return survey, questions, nil
}

func (s *surveyService) Form(ctx context.Context, surveyID uint, token string) (*render.FormView, error) {
	survey, questions, err := s.Questions(ctx, surveyID)
	if err != nil {
		return nil, err
	}
	return render.RenderForm(survey, questions, token, nil)
}

// Submit stores one response record per answered question. Nothing is
// stored when a required question is unanswered.
func (s *surveyService) Submit(ctx context.Context, req SubmitRequest) (result *SubmitResult, err error) {
	op := s.logger.WithOperation(ctx, "submit_survey", req.RespondentID)
	defer func() { op.LogResult(req.SurveyID, "survey", err) }()

	if req.RespondentID == "" {
		return nil, ErrUnauthorized
	}

	survey, questions, err := s.Questions(ctx, req.SurveyID)
	if err != nil {
		return nil, err
	}

	answers, missing := collectAnswers(questions, req.Values)
	if len(missing) > 0 {
		return nil, &BusinessRuleError{
			Rule:    "required_answers",
			Message: MsgRequiredAnswers,
			Context: map[string]interface{}{"question_ids": missing},
			Err:     ErrRequiredAnswerMissing,
		}
	}

	submittedAt := s.now()
	records := make([]*models.ResponseRecord, len(answers))
	for i, a := range answers {
		records[i] = &models.ResponseRecord{
			RespondentID:     req.RespondentID,
			SurveyID:         survey.ID,
			QuestionID:       a.question.ID,
			QuestionText:     a.question.Title,
			Response:         a.value,
			ParentModuleName: survey.ParentModuleName,
			ModuleName:       survey.ModuleName,
			CreatedAt:        submittedAt,
		}
	}

	if err := s.repo.Response().CreateBatch(ctx, records); err != nil {
		return nil, fmt.Errorf("failed to store responses: %w", err)
	}

	ids := make([]uint, len(records))
	for i, r := range records {
		ids[i] = r.ID
	}
	event := events.NewResponseSubmittedEvent(events.ResponseSubmittedEvent{
		SurveyID:         survey.ID,
		RespondentID:     req.RespondentID,
		ResponseIDs:      ids,
		ModuleName:       survey.ModuleName,
		ParentModuleName: survey.ParentModuleName,
		SubmittedAt:      submittedAt,
	})
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.logger.WarnContext(ctx, "Failed to publish response submitted event", "survey_id", survey.ID, "error", err)
	}

	return &SubmitResult{Message: survey.SuccessText(), Responses: len(records)}, nil
}

func (s *surveyService) IssueNonce(ctx context.Context, action, respondentID string) (string, error) {
	if action != ActionSubmitSurvey && action != ActionGetResponses {
		return "", ErrInvalidAction
	}
	return s.nonces.Issue(ctx, action, respondentID)
}

func (s *surveyService) VerifyNonce(ctx context.Context, action, respondentID, nonce string) error {
	ok, err := s.nonces.Verify(ctx, action, respondentID, nonce)
	if err != nil {
		return err
	}
	if !ok {
		return ErrInvalidNonce
	}
	return nil
}
