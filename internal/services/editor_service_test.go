package services

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/SAP-F-2025/survey-service/internal/authoring"
	"github.com/SAP-F-2025/survey-service/internal/cache"
	"github.com/SAP-F-2025/survey-service/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newEditorServiceFixture() (*mockRepository, *MockDraftStore, EditorService) {
	repo, _, questions := newQuestionServiceFixture()
	drafts := &MockDraftStore{}
	return repo, drafts, NewEditorService(questions, drafts, nil)
}

func TestEditorService_Open(t *testing.T) {
	t.Run("blank draft", func(t *testing.T) {
		_, drafts, svc := newEditorServiceFixture()
		drafts.On("Create", mock.Anything, mock.Anything).Return("d1", nil)

		state, err := svc.Open(context.Background(), 0, "author-1")

		require.NoError(t, err)
		assert.Equal(t, "d1", state.DraftID)
		assert.Equal(t, models.TypeText, state.View.Type)
	})

	t.Run("stored question", func(t *testing.T) {
		repo, drafts, svc := newEditorServiceFixture()
		repo.questions.On("GetByID", mock.Anything, uint(8)).Return(&models.Record{
			ID: 8, Title: "Pick", Type: models.TypeRadio, Options: []models.Option{{Text: "A"}},
		}, nil)
		drafts.On("Create", mock.Anything, mock.MatchedBy(func(d authoring.Draft) bool {
			return d.ID == 8 && d.Type == models.TypeRadio
		})).Return("d2", nil)

		state, err := svc.Open(context.Background(), 8, "author-1")

		require.NoError(t, err)
		assert.Equal(t, "Pick", state.View.Title)
		require.Len(t, state.View.Options, 1)
	})
}

func TestEditorService_Dispatch(t *testing.T) {
	radioDraft := authoring.Draft{Title: "Pick", Type: models.TypeRadio, Options: []authoring.OptionRow{{Text: "A"}}}

	t.Run("adds option and stores draft", func(t *testing.T) {
		_, drafts, svc := newEditorServiceFixture()
		drafts.On("Get", mock.Anything, "d1").Return(radioDraft, nil)
		drafts.On("Put", mock.Anything, "d1", mock.MatchedBy(func(d authoring.Draft) bool {
			return len(d.Options) == 2 && d.Options[1].Text == "B"
		})).Return(nil)

		state, err := svc.Dispatch(context.Background(), "d1", "add_option", json.RawMessage(`{"text":"B"}`))

		require.NoError(t, err)
		assert.Len(t, state.View.Options, 2)
		assert.Empty(t, state.Notice)
		drafts.AssertExpectations(t)
	})

	t.Run("last option removal is a notice", func(t *testing.T) {
		_, drafts, svc := newEditorServiceFixture()
		drafts.On("Get", mock.Anything, "d1").Return(radioDraft, nil)
		drafts.On("Put", mock.Anything, "d1", mock.Anything).Return(nil)

		state, err := svc.Dispatch(context.Background(), "d1", "remove_option", json.RawMessage(`{"index":0}`))

		require.NoError(t, err)
		assert.Equal(t, "You must have at least one option.", state.Notice)
		assert.Len(t, state.View.Options, 1)
	})

	t.Run("unknown event", func(t *testing.T) {
		_, drafts, svc := newEditorServiceFixture()

		_, err := svc.Dispatch(context.Background(), "d1", "explode", nil)

		assert.ErrorIs(t, err, ErrUnknownEvent)
		drafts.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
	})

	t.Run("bad payload", func(t *testing.T) {
		_, _, svc := newEditorServiceFixture()

		_, err := svc.Dispatch(context.Background(), "d1", "add_option", json.RawMessage(`{"text":`))
		assert.ErrorIs(t, err, ErrBadRequest)
	})

	t.Run("expired draft", func(t *testing.T) {
		_, drafts, svc := newEditorServiceFixture()
		drafts.On("Get", mock.Anything, "gone").Return(authoring.Draft{}, cache.ErrDraftNotFound)

		_, err := svc.Dispatch(context.Background(), "gone", "set_title", json.RawMessage(`{"title":"x"}`))
		assert.ErrorIs(t, err, ErrDraftNotFound)
		assert.True(t, IsNotFound(err))
	})
}

func TestEditorService_Save(t *testing.T) {
	repo, drafts, svc := newEditorServiceFixture()
	drafts.On("Get", mock.Anything, "d1").Return(authoring.Draft{
		Title:   "Pick",
		Type:    models.TypeCheckbox,
		Options: []authoring.OptionRow{{Text: "A", Correct: true}, {Text: ""}, {Text: "B"}},
	}, nil)
	repo.questions.On("Create", mock.Anything, mock.Anything, "author-1").
		Run(func(args mock.Arguments) { args.Get(1).(*models.Record).ID = 21 }).
		Return(nil)
	drafts.On("Put", mock.Anything, "d1", mock.MatchedBy(func(d authoring.Draft) bool { return d.ID == 21 })).Return(nil)

	saved, err := svc.Save(context.Background(), "d1", "author-1")

	require.NoError(t, err)
	assert.Equal(t, uint(21), saved.ID)
	assert.Equal(t, []models.Option{{Text: "A"}, {Text: "B"}}, saved.Options)
	assert.Equal(t, []string{"A"}, saved.CorrectAnswers)
	drafts.AssertExpectations(t)
}
