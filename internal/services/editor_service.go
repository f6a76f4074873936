package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SAP-F-2025/survey-service/internal/authoring"
	"github.com/SAP-F-2025/survey-service/internal/cache"
	"github.com/SAP-F-2025/survey-service/internal/models"
)

// DraftStore keeps editor state between requests
type DraftStore interface {
	Create(ctx context.Context, draft authoring.Draft) (string, error)
	Get(ctx context.Context, id string) (authoring.Draft, error)
	Put(ctx context.Context, id string, draft authoring.Draft) error
	Delete(ctx context.Context, id string) error
}

// EditorState is what the authoring form renders after each request
type EditorState struct {
	DraftID string         `json:"draft_id"`
	View    authoring.View `json:"view"`
	Notice  string         `json:"notice,omitempty"`
}

type EditorService interface {
	// Open starts a draft on a stored question, or a blank one for id 0
	Open(ctx context.Context, questionID uint, userID string) (*EditorState, error)
	Dispatch(ctx context.Context, draftID, kind string, payload json.RawMessage) (*EditorState, error)
	Save(ctx context.Context, draftID, userID string) (*models.Record, error)
	Discard(ctx context.Context, draftID string) error
}

type editorService struct {
	questions QuestionService
	drafts    DraftStore
	logger    *ServiceLogger
}

func NewEditorService(questions QuestionService, drafts DraftStore, logger *slog.Logger) EditorService {
	return &editorService{
		questions: questions,
		drafts:    drafts,
		logger:    NewServiceLogger(logger, LogConfig{Service: "survey-service", Component: "editor"}),
	}
}

func (s *editorService) Open(ctx context.Context, questionID uint, userID string) (*EditorState, error) {
	var record *models.Record
	if questionID != 0 {
		var err error
		if record, err = s.questions.GetByID(ctx, questionID); err != nil {
			return nil, err
		}
	}

	editor := authoring.NewEditor(record)
	id, err := s.drafts.Create(ctx, editor.Draft())
	if err != nil {
		return nil, fmt.Errorf("failed to open editor: %w", err)
	}

	s.logger.logger.DebugContext(ctx, "Editor draft opened", "draft_id", id, "question_id", questionID, "user_id", userID)
	return &EditorState{DraftID: id, View: editor.View()}, nil
}

func (s *editorService) Dispatch(ctx context.Context, draftID, kind string, payload json.RawMessage) (*EditorState, error) {
	ev, err := authoring.DecodeEvent(kind, payload)
	if err != nil {
		if errors.Is(err, authoring.ErrUnknownEvent) {
			return nil, fmt.Errorf("%w: %s", ErrUnknownEvent, kind)
		}
		return nil, fmt.Errorf("%w: %v", ErrBadRequest, err)
	}

	editor, err := s.load(ctx, draftID)
	if err != nil {
		return nil, err
	}

	result, err := editor.Dispatch(ev)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadRequest, err)
	}

	if err := s.drafts.Put(ctx, draftID, editor.Draft()); err != nil {
		return nil, fmt.Errorf("failed to store draft: %w", err)
	}
	return &EditorState{DraftID: draftID, View: result.View, Notice: result.Notice}, nil
}

// Save persists the draft. The draft stays open and now points at the
// stored question.
func (s *editorService) Save(ctx context.Context, draftID, userID string) (*models.Record, error) {
	editor, err := s.load(ctx, draftID)
	if err != nil {
		return nil, err
	}

	record := editor.Record()
	var saved *models.Record
	if record.ID == 0 {
		saved, err = s.questions.Create(ctx, record, userID)
	} else {
		saved, err = s.questions.Update(ctx, record.ID, record, userID)
	}
	if err != nil {
		return nil, err
	}

	draft := editor.Draft()
	draft.ID = saved.ID
	if err := s.drafts.Put(ctx, draftID, draft); err != nil {
		s.logger.logger.WarnContext(ctx, "Failed to refresh draft after save", "draft_id", draftID, "error", err)
	}
	return saved, nil
}

func (s *editorService) Discard(ctx context.Context, draftID string) error {
	return s.drafts.Delete(ctx, draftID)
}

func (s *editorService) load(ctx context.Context, draftID string) (*authoring.Editor, error) {
	draft, err := s.drafts.Get(ctx, draftID)
	if err != nil {
		if errors.Is(err, cache.ErrDraftNotFound) {
			return nil, ErrDraftNotFound
		}
		return nil, err
	}
	return authoring.FromDraft(draft), nil
}
