package services

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"testing"
	"time"

	"github.com/SAP-F-2025/survey-service/internal/events"
	"github.com/SAP-F-2025/survey-service/internal/models"
	"github.com/SAP-F-2025/survey-service/internal/repositories"
	"github.com/SAP-F-2025/survey-service/internal/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func surveyFixture() (*models.Survey, []*models.Record) {
	survey := &models.Survey{
		ID:               1,
		Title:            "Welcome",
		ModuleName:       strPtr("Intro"),
		ParentModuleName: strPtr("Onboarding"),
	}
	records := []*models.Record{
		{ID: 1, Title: "Name", Type: models.TypeText, Required: true},
		{ID: 2, Title: "Pick", Type: models.TypeCheckbox, Options: []models.Option{{Text: "A"}, {Text: "B"}}, HasOtherOption: true},
		{ID: 3, Title: "One", Type: models.TypeRadio, Options: []models.Option{{Text: "X"}, {Text: "Y"}}, HasOtherOption: true},
		{ID: 4, Title: "Words", Type: models.TypeMultipleText, TextInputs: []models.TextInput{{Label: "1"}, {Label: "2"}, {Label: "3"}}},
		{ID: 5, Title: "Sounds", Type: models.TypeMatching, MatchingItems: []models.MatchingItem{
			{Item: "Cat", Options: []string{"Meow", "Woof"}},
			{Item: "Dog", Options: []string{"Meow", "Woof"}},
		}},
		{ID: 6, Title: "Notes", Type: models.TypeTextarea},
	}
	return survey, records
}

func questionsOf(records []*models.Record) []models.Question {
	out := make([]models.Question, len(records))
	for i, r := range records {
		out[i] = r.Question()
	}
	return out
}

func TestCollectAnswers(t *testing.T) {
	_, records := surveyFixture()
	questions := questionsOf(records)

	form := url.Values{
		"q_1":       {"  Ann "},
		"q_2[]":     {"A", "", "other"},
		"q_2_other": {" Zed "},
		"q_3":       {"other"},
		"q_4[]":     {"a", " ", "b"},
		"q_5_0":     {"Meow"},
		"q_5_1":     {""},
	}

	answers, missing := collectAnswers(questions, form)

	assert.Empty(t, missing)
	got := make(map[uint]string, len(answers))
	for _, a := range answers {
		got[a.question.ID] = a.value
	}
	assert.Equal(t, map[uint]string{
		1: "Ann",
		2: "A, Zed",
		3: "other",
		4: "a, b",
		5: "Cat: Meow",
	}, got)
}

func TestCollectAnswers_RadioOtherText(t *testing.T) {
	_, records := surveyFixture()
	questions := questionsOf(records[2:3])

	answers, _ := collectAnswers(questions, url.Values{"q_3": {"other"}, "q_3_other": {"Maybe"}})

	require.Len(t, answers, 1)
	assert.Equal(t, "Maybe", answers[0].value)
}

func TestCollectAnswers_MissingRequired(t *testing.T) {
	_, records := surveyFixture()

	answers, missing := collectAnswers(questionsOf(records), url.Values{"q_1": {"   "}, "q_6": {"fine"}})

	assert.Equal(t, []uint{1}, missing)
	require.Len(t, answers, 1)
	assert.Equal(t, uint(6), answers[0].question.ID)
}

type surveyServiceFixture struct {
	repo      *mockRepository
	nonces    *MockNonceStore
	publisher *events.MockEventPublisher
	service   *surveyService
}

func newSurveyServiceFixture() *surveyServiceFixture {
	repo := newMockRepository()
	nonces := &MockNonceStore{}
	publisher := events.NewMockEventPublisher(nil)
	svc := NewSurveyService(repo, nonces, publisher, nil, validator.New()).(*surveyService)
	svc.now = func() time.Time { return time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC) }
	return &surveyServiceFixture{repo: repo, nonces: nonces, publisher: publisher, service: svc}
}

func (f *surveyServiceFixture) expectSurvey(survey *models.Survey, records []*models.Record) {
	ids := make([]uint, len(records))
	for i, r := range records {
		ids[i] = r.ID
	}
	f.repo.surveys.On("GetByID", mock.Anything, survey.ID).Return(survey, nil)
	f.repo.surveys.On("GetQuestionIDs", mock.Anything, survey.ID).Return(ids, nil)
	f.repo.questions.On("GetByIDs", mock.Anything, ids).Return(records, nil)
}

func TestSurveyService_Submit(t *testing.T) {
	f := newSurveyServiceFixture()
	survey, records := surveyFixture()
	f.expectSurvey(survey, records)

	var stored []*models.ResponseRecord
	f.repo.responses.On("CreateBatch", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			stored = args.Get(1).([]*models.ResponseRecord)
			for i, r := range stored {
				r.ID = uint(100 + i)
			}
		}).
		Return(nil)

	result, err := f.service.Submit(context.Background(), SubmitRequest{
		SurveyID:     1,
		RespondentID: "user-1",
		Values:       url.Values{"q_1": {"Ann"}, "q_6": {"All good"}},
	})

	require.NoError(t, err)
	assert.Equal(t, models.DefaultSuccessMessage, result.Message)
	assert.Equal(t, 2, result.Responses)

	require.Len(t, stored, 2)
	assert.Equal(t, "Name", stored[0].QuestionText)
	assert.Equal(t, "Ann", stored[0].Response)
	assert.Equal(t, "user-1", stored[0].RespondentID)
	assert.Equal(t, "Intro", *stored[0].ModuleName)
	assert.Equal(t, "Onboarding", *stored[0].ParentModuleName)
	assert.Equal(t, stored[0].CreatedAt, stored[1].CreatedAt)

	published := f.publisher.GetPublishedEvents()
	require.Len(t, published, 1)
	assert.Equal(t, events.EventResponseSubmitted, published[0].Type)
	data := published[0].Data.(events.ResponseSubmittedEvent)
	assert.Equal(t, []uint{100, 101}, data.ResponseIDs)
}

func TestSurveyService_Submit_RequiredMissing(t *testing.T) {
	f := newSurveyServiceFixture()
	survey, records := surveyFixture()
	f.expectSurvey(survey, records)

	_, err := f.service.Submit(context.Background(), SubmitRequest{
		SurveyID:     1,
		RespondentID: "user-1",
		Values:       url.Values{"q_6": {"only notes"}},
	})

	var bre *BusinessRuleError
	require.ErrorAs(t, err, &bre)
	assert.Equal(t, MsgRequiredAnswers, bre.Message)
	assert.ErrorIs(t, err, ErrRequiredAnswerMissing)
	f.repo.responses.AssertNotCalled(t, "CreateBatch", mock.Anything, mock.Anything)
	assert.Empty(t, f.publisher.GetPublishedEvents())
}

func TestSurveyService_Submit_NothingAnswered(t *testing.T) {
	f := newSurveyServiceFixture()
	survey, records := surveyFixture()
	records[0].Required = false
	survey.SuccessMessage = "Done!"
	f.expectSurvey(survey, records)
	f.repo.responses.On("CreateBatch", mock.Anything, mock.Anything).Return(nil)

	result, err := f.service.Submit(context.Background(), SubmitRequest{SurveyID: 1, RespondentID: "user-1"})

	require.NoError(t, err)
	assert.Equal(t, "Done!", result.Message)
	assert.Zero(t, result.Responses)
}

func TestSurveyService_Submit_Errors(t *testing.T) {
	t.Run("anonymous respondent", func(t *testing.T) {
		f := newSurveyServiceFixture()
		_, err := f.service.Submit(context.Background(), SubmitRequest{SurveyID: 1})
		assert.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("unknown survey", func(t *testing.T) {
		f := newSurveyServiceFixture()
		f.repo.surveys.On("GetByID", mock.Anything, uint(9)).Return(nil, repositories.ErrNotFound)

		_, err := f.service.Submit(context.Background(), SubmitRequest{SurveyID: 9, RespondentID: "u"})
		assert.ErrorIs(t, err, ErrSurveyNotFound)
		assert.True(t, IsNotFound(err))
	})

	t.Run("store failure", func(t *testing.T) {
		f := newSurveyServiceFixture()
		survey, records := surveyFixture()
		f.expectSurvey(survey, records)
		f.repo.responses.On("CreateBatch", mock.Anything, mock.Anything).Return(errors.New("db down"))

		_, err := f.service.Submit(context.Background(), SubmitRequest{
			SurveyID: 1, RespondentID: "u", Values: url.Values{"q_1": {"x"}},
		})
		assert.ErrorContains(t, err, "db down")
		assert.Empty(t, f.publisher.GetPublishedEvents())
	})
}

func TestSurveyService_SetQuestions(t *testing.T) {
	survey, records := surveyFixture()

	t.Run("duplicate ids", func(t *testing.T) {
		f := newSurveyServiceFixture()
		f.repo.surveys.On("GetByID", mock.Anything, uint(1)).Return(survey, nil)

		err := f.service.SetQuestions(context.Background(), 1, []uint{1, 2, 1})
		assert.True(t, IsValidation(err))
	})

	t.Run("unknown question", func(t *testing.T) {
		f := newSurveyServiceFixture()
		f.repo.surveys.On("GetByID", mock.Anything, uint(1)).Return(survey, nil)
		f.repo.questions.On("GetByIDs", mock.Anything, []uint{1, 42}).Return(records[:1], nil)

		err := f.service.SetQuestions(context.Background(), 1, []uint{1, 42})
		assert.ErrorIs(t, err, ErrSurveyUnknownQuestion)
	})

	t.Run("stores order", func(t *testing.T) {
		f := newSurveyServiceFixture()
		f.repo.surveys.On("GetByID", mock.Anything, uint(1)).Return(survey, nil)
		f.repo.questions.On("GetByIDs", mock.Anything, []uint{2, 1}).Return(records[:2], nil)
		f.repo.surveys.On("SetQuestions", mock.Anything, uint(1), []uint{2, 1}).Return(nil)

		require.NoError(t, f.service.SetQuestions(context.Background(), 1, []uint{2, 1}))
		f.repo.surveys.AssertExpectations(t)
	})
}

func TestSurveyService_AddRemoveQuestion(t *testing.T) {
	survey, records := surveyFixture()

	t.Run("appends existing question", func(t *testing.T) {
		f := newSurveyServiceFixture()
		f.repo.surveys.On("GetByID", mock.Anything, uint(1)).Return(survey, nil)
		f.repo.questions.On("GetByID", mock.Anything, uint(2)).Return(records[1], nil)
		f.repo.surveys.On("AddQuestion", mock.Anything, uint(1), uint(2)).Return(nil)

		require.NoError(t, f.service.AddQuestion(context.Background(), 1, 2))
		f.repo.surveys.AssertExpectations(t)
	})

	t.Run("unknown question", func(t *testing.T) {
		f := newSurveyServiceFixture()
		f.repo.surveys.On("GetByID", mock.Anything, uint(1)).Return(survey, nil)
		f.repo.questions.On("GetByID", mock.Anything, uint(42)).Return(nil, repositories.ErrNotFound)

		err := f.service.AddQuestion(context.Background(), 1, 42)
		assert.ErrorIs(t, err, ErrSurveyUnknownQuestion)
	})

	t.Run("already in survey", func(t *testing.T) {
		f := newSurveyServiceFixture()
		f.repo.surveys.On("GetByID", mock.Anything, uint(1)).Return(survey, nil)
		f.repo.questions.On("GetByID", mock.Anything, uint(2)).Return(records[1], nil)
		f.repo.surveys.On("AddQuestion", mock.Anything, uint(1), uint(2)).
			Return(fmt.Errorf("survey 1 question 2: %w", repositories.ErrDuplicate))

		err := f.service.AddQuestion(context.Background(), 1, 2)
		assert.ErrorIs(t, err, ErrSurveyQuestionExists)
		assert.True(t, IsConflict(err))
	})

	t.Run("remove missing link", func(t *testing.T) {
		f := newSurveyServiceFixture()
		f.repo.surveys.On("RemoveQuestion", mock.Anything, uint(1), uint(9)).Return(repositories.ErrNotFound)

		err := f.service.RemoveQuestion(context.Background(), 1, 9)
		assert.ErrorIs(t, err, ErrSurveyUnknownQuestion)
	})
}

func TestSurveyService_UpdateDelete(t *testing.T) {
	f := newSurveyServiceFixture()

	_, err := f.service.Update(context.Background(), 1, &models.Survey{})
	assert.True(t, IsValidation(err))

	updated := &models.Survey{ID: 3, Title: "Exit poll"}
	f.repo.surveys.On("Update", mock.Anything, mock.MatchedBy(func(s *models.Survey) bool {
		return s.ID == 3 && s.Title == "Exit poll"
	})).Return(nil)
	f.repo.surveys.On("GetByID", mock.Anything, uint(3)).Return(updated, nil)

	got, err := f.service.Update(context.Background(), 3, &models.Survey{ID: 99, Title: "Exit poll"})
	require.NoError(t, err)
	assert.Equal(t, uint(3), got.ID)

	f.repo.surveys.On("Delete", mock.Anything, uint(4)).Return(fmt.Errorf("survey 4: %w", repositories.ErrNotFound))
	assert.ErrorIs(t, f.service.Delete(context.Background(), 4), ErrSurveyNotFound)
}

func TestSurveyService_Create(t *testing.T) {
	f := newSurveyServiceFixture()

	_, err := f.service.Create(context.Background(), &models.Survey{})
	assert.True(t, IsValidation(err))

	f.repo.surveys.On("Create", mock.Anything, mock.Anything).Return(nil)
	created, err := f.service.Create(context.Background(), &models.Survey{ID: 7, Title: "Exit"})
	require.NoError(t, err)
	assert.Zero(t, created.ID)
}

func TestSurveyService_Form(t *testing.T) {
	f := newSurveyServiceFixture()
	survey, records := surveyFixture()
	f.expectSurvey(survey, records)

	form, err := f.service.Form(context.Background(), 1, "tok")

	require.NoError(t, err)
	html, err := form.HTML()
	require.NoError(t, err)
	assert.Contains(t, string(html), `name="q_1"`)
	assert.Contains(t, string(html), `name="q_5_1"`)
}

func TestSurveyService_Nonces(t *testing.T) {
	f := newSurveyServiceFixture()
	ctx := context.Background()

	_, err := f.service.IssueNonce(ctx, "delete_everything", "u")
	assert.ErrorIs(t, err, ErrInvalidAction)

	f.nonces.On("Issue", mock.Anything, ActionSubmitSurvey, "u").Return("n1", nil)
	nonce, err := f.service.IssueNonce(ctx, ActionSubmitSurvey, "u")
	require.NoError(t, err)
	assert.Equal(t, "n1", nonce)

	f.nonces.On("Verify", mock.Anything, ActionSubmitSurvey, "u", "n1").Return(true, nil)
	f.nonces.On("Verify", mock.Anything, ActionSubmitSurvey, "u", "stale").Return(false, nil)
	assert.NoError(t, f.service.VerifyNonce(ctx, ActionSubmitSurvey, "u", "n1"))
	err = f.service.VerifyNonce(ctx, ActionSubmitSurvey, "u", "stale")
	assert.ErrorIs(t, err, ErrInvalidNonce)
	assert.True(t, IsUnauthorized(err))
}
