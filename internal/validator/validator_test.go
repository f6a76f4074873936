package validator

import (
	"testing"

	"github.com/SAP-F-2025/survey-service/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fields(errs ValidationErrors) []string {
	out := make([]string, len(errs))
	for i, e := range errs {
		out[i] = e.Field
	}
	return out
}

func TestValidator_StructTags(t *testing.T) {
	v := New()

	err := v.Validate(&models.Record{Title: "", Type: "essay"})

	var errs ValidationErrors
	require.ErrorAs(t, err, &errs)
	assert.ElementsMatch(t, []string{"title", "type"}, fields(errs))
}

func TestValidator_RecordContent(t *testing.T) {
	tests := []struct {
		name   string
		record models.Record
		want   []string
	}{
		{
			name:   "text question",
			record: models.Record{Title: "Name?", Type: models.TypeText},
		},
		{
			name:   "choice without options",
			record: models.Record{Title: "Pick", Type: models.TypeCheckbox, Options: []models.Option{{Text: " "}}},
			want:   []string{"options"},
		},
		{
			name: "radio with two correct answers",
			record: models.Record{
				Title:          "Pick",
				Type:           models.TypeRadio,
				Options:        []models.Option{{Text: "A"}, {Text: "B"}},
				CorrectAnswers: []string{"A", "B"},
			},
			want: []string{"correct_answers"},
		},
		{
			name: "correct answer names a missing option",
			record: models.Record{
				Title:          "Pick",
				Type:           models.TypeCheckbox,
				Options:        []models.Option{{Text: "A"}},
				CorrectAnswers: []string{"Z"},
			},
			want: []string{"correct_answers[0]"},
		},
		{
			name: "matching item without text or options",
			record: models.Record{
				Title:         "Match",
				Type:          models.TypeMatching,
				MatchingItems: []models.MatchingItem{{Item: ""}},
			},
			want: []string{"matching_items[0].item", "matching_items[0].options"},
		},
		{
			name:   "multiple text without inputs",
			record: models.Record{Title: "Tell", Type: models.TypeMultipleText},
			want:   []string{"text_inputs"},
		},
		{
			name: "unused sections are not checked",
			record: models.Record{
				Title:          "Name?",
				Type:           models.TypeText,
				CorrectAnswers: []string{"ghost"},
				MatchingItems:  []models.MatchingItem{{}},
			},
		},
	}

	v := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(&tt.record)
			if len(tt.want) == 0 {
				assert.NoError(t, err)
				return
			}
			var errs ValidationErrors
			require.ErrorAs(t, err, &errs)
			assert.Equal(t, tt.want, fields(errs))
		})
	}
}
