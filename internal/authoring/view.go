package authoring

import (
	"fmt"

	"github.com/SAP-F-2025/survey-service/internal/models"
)

type Transition string

const (
	TransitionNone      Transition = ""
	TransitionSlideDown Transition = "slide_down"
	TransitionSlideUp   Transition = "slide_up"
)

// ToggleKind is the input kind of the correct-answer toggles.
type ToggleKind string

const (
	ToggleRadio    ToggleKind = "radio"
	ToggleCheckbox ToggleKind = "checkbox"
)

const (
	correctFieldSingle = "correct_answers"
	correctFieldMulti  = "correct_answers[]"
)

type SectionView struct {
	Visible    bool       `json:"visible"`
	Transition Transition `json:"transition,omitempty"`
}

type CorrectToggle struct {
	Kind    ToggleKind `json:"kind"`
	Name    string     `json:"name"`
	Value   string     `json:"value"`
	Checked bool       `json:"checked"`
}

type OptionRowView struct {
	Index     int           `json:"index"`
	TextField string        `json:"text_field"`
	Text      string        `json:"text"`
	Correct   CorrectToggle `json:"correct"`
}

type TextInputRowView struct {
	Index            int    `json:"index"`
	LabelField       string `json:"label_field"`
	Label            string `json:"label"`
	PlaceholderField string `json:"placeholder_field"`
	Placeholder      string `json:"placeholder"`
}

type FieldValue struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

type MatchingRowView struct {
	Index     int          `json:"index"`
	ItemField string       `json:"item_field"`
	Item      string       `json:"item"`
	Options   []FieldValue `json:"options"`
}

type OtherOptionView struct {
	Enabled bool   `json:"enabled"`
	Label   string `json:"label"`
}

// View is the rendered authoring form.
type View struct {
	ID       uint                `json:"id"`
	Title    string              `json:"title"`
	Type     models.QuestionType `json:"type"`
	Required bool                `json:"required"`
	Image    string              `json:"image,omitempty"`

	OptionsSection    SectionView        `json:"options_section"`
	Options           []OptionRowView    `json:"options"`
	OtherOption       OtherOptionView    `json:"other_option"`
	TextInputsSection SectionView        `json:"text_inputs_section"`
	TextInputs        []TextInputRowView `json:"text_inputs"`
	MatchingSection   SectionView        `json:"matching_section"`
	MatchingItems     []MatchingRowView  `json:"matching_items"`
	Feedback          []FeedbackEntry    `json:"feedback"`
}

func (e *Editor) toggleKind() ToggleKind {
	if e.typ == models.TypeCheckbox {
		return ToggleCheckbox
	}
	return ToggleRadio
}

// View projects the current state. Hidden sections still carry their rows.
func (e *Editor) View() View {
	kind := e.toggleKind()
	name := correctFieldSingle
	if kind == ToggleCheckbox {
		name = correctFieldMulti
	}

	v := View{
		ID:                e.id,
		Title:             e.title,
		Type:              e.typ,
		Required:          e.required,
		Image:             e.image,
		OptionsSection:    SectionView{Visible: e.typ.IsChoice()},
		TextInputsSection: SectionView{Visible: e.typ == models.TypeMultipleText, Transition: e.transition},
		MatchingSection:   SectionView{Visible: e.typ == models.TypeMatching},
		OtherOption:       OtherOptionView{Enabled: e.hasOther, Label: e.otherLabel},
		Feedback:          e.feedback.Entries(),
	}

	checkedSeen := false
	for _, row := range e.options.Rows() {
		checked := row.Value.Correct
		if kind == ToggleRadio {
			checked = checked && !checkedSeen
			checkedSeen = checkedSeen || checked
		}
		v.Options = append(v.Options, OptionRowView{
			Index:     row.Index,
			TextField: row.Fields["text"],
			Text:      row.Value.Text,
			Correct: CorrectToggle{
				Kind:    kind,
				Name:    name,
				Value:   row.Value.Text,
				Checked: checked,
			},
		})
	}

	for _, row := range e.textInputs.Rows() {
		v.TextInputs = append(v.TextInputs, TextInputRowView{
			Index:            row.Index,
			LabelField:       row.Fields["label"],
			Label:            row.Value.Label,
			PlaceholderField: row.Fields["placeholder"],
			Placeholder:      row.Value.Placeholder,
		})
	}

	for _, row := range e.matching.Rows() {
		mv := MatchingRowView{
			Index:     row.Index,
			ItemField: row.Fields["item"],
			Item:      row.Value.Item,
		}
		for j, opt := range row.Value.Options {
			mv.Options = append(mv.Options, FieldValue{
				Field: fmt.Sprintf("%s[%d][options][%d]", e.matching.Name(), row.Index, j),
				Value: opt,
			})
		}
		v.MatchingItems = append(v.MatchingItems, mv)
	}

	return v
}
