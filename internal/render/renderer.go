package render

import (
	"errors"
	"fmt"
	"net/url"
	"slices"

	"github.com/SAP-F-2025/survey-service/internal/models"
)

var ErrUnsupportedBody = errors.New("unsupported question body")

const OtherPlaceholder = "Please specify"

// RespondentState carries previously entered values. A nil state renders
// an empty, enabled question.
type RespondentState struct {
	Values   url.Values
	Disabled bool
}

func (s *RespondentState) values(name string) []string {
	if s == nil || s.Values == nil {
		return nil
	}
	return s.Values[name]
}

func (s *RespondentState) value(name string) string {
	if v := s.values(name); len(v) > 0 {
		return v[0]
	}
	return ""
}

func (s *RespondentState) disabled() bool {
	return s != nil && s.Disabled
}

type ControlKind string

const (
	ControlRadio    ControlKind = "radio"
	ControlCheckbox ControlKind = "checkbox"
)

// Control is one selectable input. Correct is emitted as data only and is
// never shown to the respondent.
type Control struct {
	Kind     ControlKind `json:"kind"`
	Name     string      `json:"name"`
	Value    string      `json:"value"`
	Label    string      `json:"label"`
	Correct  bool        `json:"correct"`
	Checked  bool        `json:"checked"`
	Required bool        `json:"required"`
	Other    bool        `json:"other,omitempty"`
}

type TextField struct {
	Name        string `json:"name"`
	Label       string `json:"label,omitempty"`
	Placeholder string `json:"placeholder,omitempty"`
	Value       string `json:"value,omitempty"`
	Required    bool   `json:"required"`
	Multiline   bool   `json:"multiline,omitempty"`
}

// OptionFeedback is a hidden per-option feedback block.
type OptionFeedback struct {
	Option string `json:"option"`
	Text   string `json:"text"`
}

// MatchingRow is one matching item with its own single-select group.
// Feedback is empty when the item has no feedback block.
type MatchingRow struct {
	Index    int       `json:"index"`
	Name     string    `json:"name"`
	Item     string    `json:"item"`
	Controls []Control `json:"controls"`
	Feedback string    `json:"feedback,omitempty"`
}

func (r MatchingRow) HasFeedback() bool { return r.Feedback != "" }

// Selected reports whether any control of the row is checked.
func (r MatchingRow) Selected() bool {
	return slices.ContainsFunc(r.Controls, func(c Control) bool { return c.Checked })
}

// QuestionView is the respondent projection of one question.
type QuestionView struct {
	QuestionID     uint                `json:"question_id"`
	Type           models.QuestionType `json:"type"`
	Title          string              `json:"title"`
	Required       bool                `json:"required"`
	Image          string              `json:"image,omitempty"`
	Disabled       bool                `json:"disabled"`
	TextFields     []TextField         `json:"text_fields,omitempty"`
	Choices        []Control           `json:"choices,omitempty"`
	OtherText      *TextField          `json:"other_text,omitempty"`
	Matching       []MatchingRow       `json:"matching,omitempty"`
	OptionFeedback []OptionFeedback    `json:"option_feedback,omitempty"`
}

// Render projects q for a respondent. It has no side effects.
func Render(q *models.Question, state *RespondentState) (*QuestionView, error) {
	v := &QuestionView{
		QuestionID: q.ID,
		Type:       q.Type(),
		Title:      q.Title,
		Required:   q.Required,
		Image:      q.Image,
		Disabled:   state.disabled(),
	}

	switch body := q.Body.(type) {
	case nil:
		v.TextFields = []TextField{scalarField(q, false, state)}
	case models.TextBody:
		v.TextFields = []TextField{scalarField(q, body.Multiline, state)}
	case models.MultipleTextBody:
		renderMultipleText(v, q, body, state)
	case models.ChoiceBody:
		renderChoice(v, q, body, state)
	case models.MatchingBody:
		renderMatching(v, q, body, state)
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedBody, body)
	}
	return v, nil
}

func scalarField(q *models.Question, multiline bool, state *RespondentState) TextField {
	name := ScalarField(q.ID)
	return TextField{
		Name:      name,
		Value:     state.value(name),
		Required:  q.Required,
		Multiline: multiline,
	}
}

func renderMultipleText(v *QuestionView, q *models.Question, body models.MultipleTextBody, state *RespondentState) {
	name := ArrayField(q.ID)
	prior := state.values(name)
	for i, in := range body.Inputs {
		f := TextField{
			Name:        name,
			Label:       in.Label,
			Placeholder: in.Placeholder,
			Required:    q.Required,
		}
		if i < len(prior) {
			f.Value = prior[i]
		}
		v.TextFields = append(v.TextFields, f)
	}
}

func renderChoice(v *QuestionView, q *models.Question, body models.ChoiceBody, state *RespondentState) {
	kind := ControlRadio
	name := ScalarField(q.ID)
	if body.Multiple {
		kind = ControlCheckbox
		name = ArrayField(q.ID)
	}
	selected := state.values(name)

	for _, opt := range body.Options {
		v.Choices = append(v.Choices, Control{
			Kind:     kind,
			Name:     name,
			Value:    opt.Text,
			Label:    opt.Text,
			Correct:  body.IsCorrect(opt.Text),
			Checked:  slices.Contains(selected, opt.Text),
			Required: q.Required && !body.Multiple,
		})
		if fb := q.Feedback.Lookup(opt.Text); fb != "" {
			v.OptionFeedback = append(v.OptionFeedback, OptionFeedback{Option: opt.Text, Text: fb})
		}
	}

	if body.Other != nil {
		v.Choices = append(v.Choices, Control{
			Kind:    kind,
			Name:    name,
			Value:   models.OtherValue,
			Label:   body.Other.DisplayLabel(),
			Checked: slices.Contains(selected, models.OtherValue),
			Other:   true,
		})
		otherName := OtherField(q.ID)
		v.OtherText = &TextField{
			Name:        otherName,
			Placeholder: OtherPlaceholder,
			Value:       state.value(otherName),
		}
	}
}

func renderMatching(v *QuestionView, q *models.Question, body models.MatchingBody, state *RespondentState) {
	for i, item := range body.Items {
		name := MatchingField(q.ID, i)
		chosen := state.value(name)
		row := MatchingRow{
			Index:    i,
			Name:     name,
			Item:     item.Item,
			Feedback: q.Feedback.Lookup(item.Item),
		}
		for _, opt := range item.Options {
			row.Controls = append(row.Controls, Control{
				Kind:     ControlRadio,
				Name:     name,
				Value:    opt,
				Label:    opt,
				Checked:  chosen != "" && chosen == opt,
				Required: q.Required,
			})
		}
		v.Matching = append(v.Matching, row)
	}
}
