package services

import (
	"net/url"
	"strings"

	"github.com/SAP-F-2025/survey-service/internal/models"
	"github.com/SAP-F-2025/survey-service/internal/render"
)

// answer is one question's submitted value, flattened to a string
type answer struct {
	question models.Question
	value    string
}

// collectAnswers reads every question's answer out of a submitted form.
// It returns the answered questions in survey order and the ids of required
// questions left empty.
func collectAnswers(questions []models.Question, form url.Values) ([]answer, []uint) {
	var answers []answer
	var missing []uint

	for _, q := range questions {
		value := answerValue(&q, form)
		if value == "" {
			if q.Required {
				missing = append(missing, q.ID)
			}
			continue
		}
		answers = append(answers, answer{question: q, value: value})
	}
	return answers, missing
}

func answerValue(q *models.Question, form url.Values) string {
	switch body := q.Body.(type) {
	case models.ChoiceBody:
		other := strings.TrimSpace(form.Get(render.OtherField(q.ID)))
		if !body.Multiple {
			return withOther(strings.TrimSpace(form.Get(render.ScalarField(q.ID))), other)
		}
		values := nonEmpty(form[render.ArrayField(q.ID)])
		for i, v := range values {
			values[i] = withOther(v, other)
		}
		return strings.Join(values, models.MultiValueSeparator)
	case models.MultipleTextBody:
		return strings.Join(nonEmpty(form[render.ArrayField(q.ID)]), models.MultiValueSeparator)
	case models.MatchingBody:
		var pairs []string
		for i, item := range body.Items {
			if v := strings.TrimSpace(form.Get(render.MatchingField(q.ID, i))); v != "" {
				pairs = append(pairs, item.Item+": "+v)
			}
		}
		return strings.Join(pairs, models.MultiValueSeparator)
	default:
		return strings.TrimSpace(form.Get(render.ScalarField(q.ID)))
	}
}

// withOther substitutes the free-text answer for the "other" choice
func withOther(value, other string) string {
	if value == models.OtherValue && other != "" {
		return other
	}
	return value
}

func nonEmpty(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
