package render

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/SAP-F-2025/survey-service/internal/models"
)

// FormView is a whole survey form as shown to a respondent.
type FormView struct {
	SurveyID       uint            `json:"survey_id"`
	Title          string          `json:"title"`
	Token          string          `json:"-"`
	Questions      []*QuestionView `json:"questions"`
	SuccessMessage string          `json:"success_message"`
	Status         string          `json:"status,omitempty"`
}

// RenderForm renders every question of a survey in order.
func RenderForm(survey *models.Survey, questions []models.Question, token string, state *RespondentState) (*FormView, error) {
	form := &FormView{
		SurveyID:       survey.ID,
		Title:          survey.Title,
		Token:          token,
		SuccessMessage: survey.SuccessText(),
	}
	for i := range questions {
		v, err := Render(&questions[i], state)
		if err != nil {
			return nil, fmt.Errorf("failed to render question %d: %w", questions[i].ID, err)
		}
		form.Questions = append(form.Questions, v)
	}
	return form, nil
}

// HTML renders the question block markup.
func (v *QuestionView) HTML() (template.HTML, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, "question", v); err != nil {
		return "", fmt.Errorf("failed to render question markup: %w", err)
	}
	return template.HTML(buf.String()), nil
}

// HTML renders the full form markup.
func (f *FormView) HTML() (template.HTML, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, "form", f); err != nil {
		return "", fmt.Errorf("failed to render form markup: %w", err)
	}
	return template.HTML(buf.String()), nil
}
