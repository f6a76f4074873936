package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestRecord_QuestionProjection(t *testing.T) {
	tests := []struct {
		name     string
		record   Record
		wantType QuestionType
		check    func(t *testing.T, q Question)
	}{
		{
			name:     "missing type reads as text",
			record:   Record{Title: "Name"},
			wantType: TypeText,
		},
		{
			name:     "unknown type reads as text",
			record:   Record{Type: "slider"},
			wantType: TypeText,
		},
		{
			name:     "textarea",
			record:   Record{Type: TypeTextarea},
			wantType: TypeTextarea,
		},
		{
			name: "radio keeps only one correct answer",
			record: Record{
				Type:           TypeRadio,
				Options:        []Option{{Text: "X"}, {Text: "Y"}},
				CorrectAnswers: []string{"Y", "X"},
			},
			wantType: TypeRadio,
			check: func(t *testing.T, q Question) {
				body := q.Body.(ChoiceBody)
				assert.Equal(t, []string{"Y"}, body.Correct)
				assert.Nil(t, body.Other)
			},
		},
		{
			name: "checkbox with other option",
			record: Record{
				Type:           TypeCheckbox,
				Options:        []Option{{Text: "X"}},
				CorrectAnswers: []string{"X"},
				HasOtherOption: true,
			},
			wantType: TypeCheckbox,
			check: func(t *testing.T, q Question) {
				body := q.Body.(ChoiceBody)
				require.NotNil(t, body.Other)
				assert.Equal(t, DefaultOtherLabel, body.Other.DisplayLabel())
				assert.True(t, body.IsCorrect("X"))
			},
		},
		{
			name: "matching items",
			record: Record{
				Type:          TypeMatching,
				MatchingItems: []MatchingItem{{Item: "Cat", Options: []string{"Meow", "Woof"}}},
			},
			wantType: TypeMatching,
			check: func(t *testing.T, q Question) {
				assert.Len(t, q.Body.(MatchingBody).Items, 1)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := tt.record.Question()
			assert.Equal(t, tt.wantType, q.Type())
			if tt.check != nil {
				tt.check(t, q)
			}
		})
	}
}

func TestRecord_MetaDropsEmptyValues(t *testing.T) {
	rec := &Record{
		Type:     TypeRadio,
		Options:  []Option{{Text: "A"}, {Text: "B"}},
		Feedback: FeedbackMap{"A": "fa", "B": ""},
	}

	upserts, deletes, err := rec.Meta()
	require.NoError(t, err)

	assert.Equal(t, []string{MetaCorrectAnswers}, deletes)
	assert.JSONEq(t, `{"A":"fa"}`, string(upserts[MetaFeedback]))
	assert.JSONEq(t, `"radio"`, string(upserts[MetaQuestionType]))
	assert.NotContains(t, upserts, MetaTextInputs)
}

func TestRecordFromMeta(t *testing.T) {
	meta := map[string]datatypes.JSON{
		MetaQuestionType:   datatypes.JSON(`"radio"`),
		MetaRequired:       datatypes.JSON(`true`),
		MetaOptions:        datatypes.JSON(`[{"text":"X"},{"text":"Y"}]`),
		MetaCorrectAnswers: datatypes.JSON(`"Y"`),
		MetaFeedback:       datatypes.JSON(`{"X":"not quite"}`),
	}

	rec, err := RecordFromMeta(7, "Pick one", meta)
	require.NoError(t, err)

	assert.Equal(t, uint(7), rec.ID)
	assert.Equal(t, TypeRadio, rec.Type)
	assert.True(t, rec.Required)
	assert.Equal(t, []string{"Y"}, rec.CorrectAnswers)
	assert.Equal(t, "not quite", rec.Feedback.Lookup("X"))

	t.Run("malformed blob", func(t *testing.T) {
		_, err := RecordFromMeta(1, "", map[string]datatypes.JSON{
			MetaOptions: datatypes.JSON(`{not json`),
		})
		assert.ErrorIs(t, err, ErrMalformedMeta)
	})
}

func TestQuestion_JSONUsesRecordShape(t *testing.T) {
	q := Question{
		ID:    3,
		Title: "Favourite colours",
		Body: ChoiceBody{
			Multiple: true,
			Options:  []Option{{Text: "Red"}, {Text: "Blue"}},
			Correct:  []string{"Blue"},
		},
	}

	raw, err := json.Marshal(q)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"type":"checkbox"`)

	var decoded Question
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, TypeCheckbox, decoded.Type())
	assert.Equal(t, []string{"Red", "Blue"}, decoded.FeedbackKeys())
}
