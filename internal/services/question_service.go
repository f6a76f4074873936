package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/SAP-F-2025/survey-service/internal/authoring"
	"github.com/SAP-F-2025/survey-service/internal/events"
	"github.com/SAP-F-2025/survey-service/internal/models"
	"github.com/SAP-F-2025/survey-service/internal/render"
	"github.com/SAP-F-2025/survey-service/internal/repositories"
	"github.com/SAP-F-2025/survey-service/internal/validator"
)

type QuestionService interface {
	Create(ctx context.Context, record *models.Record, userID string) (*models.Record, error)
	GetByID(ctx context.Context, id uint) (*models.Record, error)
	Update(ctx context.Context, id uint, record *models.Record, userID string) (*models.Record, error)
	Delete(ctx context.Context, id uint, userID string) error
	List(ctx context.Context, filters repositories.QuestionFilters) ([]*models.Record, int64, error)

	// Render builds the respondent view of one question
	Render(ctx context.Context, id uint, values url.Values) (*render.QuestionView, error)
}

type questionService struct {
	repo      repositories.Repository
	publisher events.EventPublisher
	logger    *ServiceLogger
	validator *validator.Validator
}

func NewQuestionService(repo repositories.Repository, publisher events.EventPublisher, logger *slog.Logger, validator *validator.Validator) QuestionService {
	return &questionService{
		repo:      repo,
		publisher: publisher,
		logger:    NewServiceLogger(logger, LogConfig{Service: "survey-service", Component: "question"}),
		validator: validator,
	}
}

// normalize applies the editor's save rules to a record posted directly.
// Text inputs the source left out stay empty instead of getting the
// editor's default row.
func normalize(record *models.Record) *models.Record {
	out := authoring.NewEditor(record).Record()
	if len(record.TextInputs) == 0 {
		out.TextInputs = nil
	}
	return out
}

// keepHiddenSections copies the sections an update omits from the stored
// question, so a type change does not discard them.
func keepHiddenSections(update, stored *models.Record) {
	if update.Options == nil {
		update.Options = stored.Options
		if update.CorrectAnswers == nil {
			update.CorrectAnswers = stored.CorrectAnswers
		}
	}
	if update.TextInputs == nil {
		update.TextInputs = stored.TextInputs
	}
	if update.MatchingItems == nil {
		update.MatchingItems = stored.MatchingItems
	}
}

// authorize loads the question and checks that userID created it.
// Questions without a recorded author are open to every author.
func (s *questionService) authorize(ctx context.Context, id uint, userID, action string) (*models.Record, error) {
	stored, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if stored.CreatedBy != "" && stored.CreatedBy != userID {
		return nil, NewPermissionError(userID, id, "question", action, "question belongs to another author")
	}
	return stored, nil
}

func (s *questionService) Create(ctx context.Context, record *models.Record, userID string) (result *models.Record, err error) {
	op := s.logger.WithOperation(ctx, "create_question", userID)
	defer func() { op.LogResult(resourceID(result), "question", err) }()

	record.ID = 0
	if err := s.validator.ValidateStruct(record); err != nil {
		return nil, err
	}
	normalized := normalize(record)
	if err := s.validator.Validate(normalized); err != nil {
		return nil, err
	}
	normalized.CreatedBy = userID

	if err := s.repo.Question().Create(ctx, normalized, userID); err != nil {
		return nil, fmt.Errorf("failed to create question: %w", err)
	}

	s.publishSaved(ctx, normalized, userID, true)
	return normalized, nil
}

func (s *questionService) GetByID(ctx context.Context, id uint) (*models.Record, error) {
	record, err := s.repo.Question().GetByID(ctx, id)
	if err != nil {
		return nil, mapQuestionError(err)
	}
	return record, nil
}

func (s *questionService) Update(ctx context.Context, id uint, record *models.Record, userID string) (result *models.Record, err error) {
	op := s.logger.WithOperation(ctx, "update_question", userID)
	defer func() { op.LogResult(id, "question", err) }()

	record.ID = id
	if err := s.validator.ValidateStruct(record); err != nil {
		return nil, err
	}
	stored, err := s.authorize(ctx, id, userID, "update")
	if err != nil {
		return nil, err
	}
	keepHiddenSections(record, stored)
	normalized := normalize(record)
	if err := s.validator.Validate(normalized); err != nil {
		return nil, err
	}
	normalized.CreatedBy = stored.CreatedBy

	if err := s.repo.Question().Update(ctx, normalized); err != nil {
		return nil, mapQuestionError(err)
	}

	s.publishSaved(ctx, normalized, userID, false)
	return normalized, nil
}

func (s *questionService) Delete(ctx context.Context, id uint, userID string) (err error) {
	op := s.logger.WithOperation(ctx, "delete_question", userID)
	defer func() { op.LogResult(id, "question", err) }()

	if _, err := s.authorize(ctx, id, userID, "delete"); err != nil {
		return err
	}
	if err := s.repo.Question().Delete(ctx, id); err != nil {
		return mapQuestionError(err)
	}

	event := events.NewQuestionDeletedEvent(events.QuestionDeletedEvent{QuestionID: id, DeletedBy: userID})
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.logger.WarnContext(ctx, "Failed to publish question deleted event", "question_id", id, "error", err)
	}
	return nil
}

func (s *questionService) List(ctx context.Context, filters repositories.QuestionFilters) ([]*models.Record, int64, error) {
	if filters.Type != nil && !filters.Type.IsValid() {
		return nil, 0, ErrQuestionInvalidType
	}
	if filters.Limit <= 0 || filters.Limit > 100 {
		filters.Limit = 20
	}
	return s.repo.Question().List(ctx, filters)
}

func (s *questionService) Render(ctx context.Context, id uint, values url.Values) (*render.QuestionView, error) {
	record, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	q := record.Question()
	return render.Render(&q, &render.RespondentState{Values: values})
}

func (s *questionService) publishSaved(ctx context.Context, record *models.Record, userID string, created bool) {
	event := events.NewQuestionSavedEvent(events.QuestionSavedEvent{
		QuestionID:   record.ID,
		QuestionType: string(record.Type),
		Title:        record.Title,
		SavedBy:      userID,
		Created:      created,
	})
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.logger.WarnContext(ctx, "Failed to publish question saved event", "question_id", record.ID, "error", err)
	}
}

func mapQuestionError(err error) error {
	if errors.Is(err, repositories.ErrNotFound) {
		return ErrQuestionNotFound
	}
	return err
}

func resourceID(record *models.Record) uint {
	if record == nil {
		return 0
	}
	return record.ID
}
