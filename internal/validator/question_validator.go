package validator

import (
	"fmt"
	"strings"

	"github.com/SAP-F-2025/survey-service/internal/models"
)

// QuestionValidator checks that a question's content fits its type
type QuestionValidator struct{}

func NewQuestionValidator() *QuestionValidator {
	return &QuestionValidator{}
}

// ValidateRecord validates the sections used by the record's type. Unused
// sections are carried along and not checked.
func (v *QuestionValidator) ValidateRecord(record *models.Record) ValidationErrors {
	q := record.Question()
	errs := v.ValidateQuestion(&q)

	if record.Type == models.TypeRadio && len(record.CorrectAnswers) > 1 {
		errs = append(errs, ValidationError{
			Field:   "correct_answers",
			Message: "single choice questions accept at most one correct answer",
			Rule:    "radio_single_correct",
			Value:   record.CorrectAnswers,
		})
	}
	return errs
}

// ValidateQuestion validates a typed question
func (v *QuestionValidator) ValidateQuestion(q *models.Question) ValidationErrors {
	var errs ValidationErrors
	if strings.TrimSpace(q.Title) == "" {
		errs = append(errs, ValidationError{Field: "title", Message: "is required", Rule: "required"})
	}

	switch body := q.Body.(type) {
	case models.ChoiceBody:
		errs = append(errs, v.validateChoice(body)...)
	case models.MultipleTextBody:
		if len(body.Inputs) == 0 {
			errs = append(errs, ValidationError{
				Field:   "text_inputs",
				Message: "must have at least one text input",
				Rule:    "min_rows",
			})
		}
	case models.MatchingBody:
		errs = append(errs, v.validateMatching(body)...)
	}
	return errs
}

func (v *QuestionValidator) validateChoice(body models.ChoiceBody) ValidationErrors {
	var errs ValidationErrors

	texts := make(map[string]bool, len(body.Options))
	for _, opt := range body.Options {
		if strings.TrimSpace(opt.Text) != "" {
			texts[opt.Text] = true
		}
	}
	if len(texts) == 0 {
		errs = append(errs, ValidationError{
			Field:   "options",
			Message: "must have at least one option",
			Rule:    "min_rows",
		})
	}

	for i, answer := range body.Correct {
		if !texts[answer] {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("correct_answers[%d]", i),
				Message: "must name an existing option",
				Rule:    "known_option",
				Value:   answer,
			})
		}
	}
	return errs
}

func (v *QuestionValidator) validateMatching(body models.MatchingBody) ValidationErrors {
	var errs ValidationErrors
	if len(body.Items) == 0 {
		return append(errs, ValidationError{
			Field:   "matching_items",
			Message: "must have at least one matching item",
			Rule:    "min_rows",
		})
	}

	for i, item := range body.Items {
		if strings.TrimSpace(item.Item) == "" {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("matching_items[%d].item", i),
				Message: "is required",
				Rule:    "required",
			})
		}
		if len(item.Options) == 0 {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("matching_items[%d].options", i),
				Message: "must have at least one option",
				Rule:    "min_rows",
			})
		}
	}
	return errs
}
