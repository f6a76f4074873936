package authoring

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/SAP-F-2025/survey-service/internal/models"
)

var (
	ErrUnknownType  = errors.New("unknown question type")
	ErrUnknownEvent = errors.New("unknown editor event")
	ErrUnknownKey   = errors.New("no feedback editor for key")
)

// Event is one authoring edit.
type Event interface {
	apply(e *Editor) error
}

type ChangeType struct {
	Type models.QuestionType `json:"type"`
}

func (ev ChangeType) apply(e *Editor) error { return e.changeType(ev.Type) }

type SetTitle struct {
	Title string `json:"title"`
}

func (ev SetTitle) apply(e *Editor) error {
	e.title = ev.Title
	return nil
}

type SetRequired struct {
	Required bool `json:"required"`
}

func (ev SetRequired) apply(e *Editor) error {
	e.required = ev.Required
	return nil
}

type SetImage struct {
	URL string `json:"url"`
}

func (ev SetImage) apply(e *Editor) error {
	e.image = ev.URL
	return nil
}

// AddOption appends an option. InsertOption places it before Index.
type AddOption struct {
	Text string `json:"text"`
}

func (ev AddOption) apply(e *Editor) error {
	e.options.Append(OptionRow{Text: ev.Text})
	return nil
}

type InsertOption struct {
	Index int    `json:"index"`
	Text  string `json:"text"`
}

func (ev InsertOption) apply(e *Editor) error {
	return e.options.Insert(ev.Index, OptionRow{Text: ev.Text})
}

type RemoveOption struct {
	Index int `json:"index"`
}

func (ev RemoveOption) apply(e *Editor) error { return e.options.Remove(ev.Index) }

type MoveOption struct {
	From int `json:"from"`
	To   int `json:"to"`
}

func (ev MoveOption) apply(e *Editor) error { return e.options.Move(ev.From, ev.To) }

// RenameOption changes an option's text. The correctness flag stays with
// the row; feedback keyed by the old text does not follow.
type RenameOption struct {
	Index int    `json:"index"`
	Text  string `json:"text"`
}

func (ev RenameOption) apply(e *Editor) error {
	return e.options.Update(ev.Index, func(o *OptionRow) { o.Text = ev.Text })
}

type ToggleCorrect struct {
	Index   int  `json:"index"`
	Checked bool `json:"checked"`
}

func (ev ToggleCorrect) apply(e *Editor) error { return e.toggleCorrect(ev.Index, ev.Checked) }

type SetOtherOption struct {
	Enabled bool   `json:"enabled"`
	Label   string `json:"label"`
}

func (ev SetOtherOption) apply(e *Editor) error {
	e.hasOther = ev.Enabled
	e.otherLabel = ev.Label
	return nil
}

// AddTextInput appends a text input, labelled "Input N" when Label is empty.
type AddTextInput struct {
	Label       string `json:"label"`
	Placeholder string `json:"placeholder"`
}

func (ev AddTextInput) apply(e *Editor) error {
	in := models.TextInput{Label: ev.Label, Placeholder: ev.Placeholder}
	if in.Label == "" {
		in.Label = defaultTextInput(e.textInputs.Len() + 1).Label
	}
	e.textInputs.Append(in)
	return nil
}

type RemoveTextInput struct {
	Index int `json:"index"`
}

func (ev RemoveTextInput) apply(e *Editor) error { return e.textInputs.Remove(ev.Index) }

type MoveTextInput struct {
	From int `json:"from"`
	To   int `json:"to"`
}

func (ev MoveTextInput) apply(e *Editor) error { return e.textInputs.Move(ev.From, ev.To) }

type EditTextInput struct {
	Index       int    `json:"index"`
	Label       string `json:"label"`
	Placeholder string `json:"placeholder"`
}

func (ev EditTextInput) apply(e *Editor) error {
	return e.textInputs.Update(ev.Index, func(in *models.TextInput) {
		in.Label = ev.Label
		in.Placeholder = ev.Placeholder
	})
}

type AddMatchingItem struct {
	Item    string   `json:"item"`
	Options []string `json:"options"`
}

func (ev AddMatchingItem) apply(e *Editor) error {
	opts := ev.Options
	if len(opts) == 0 {
		opts = []string{""}
	}
	e.matching.Append(models.MatchingItem{Item: ev.Item, Options: opts})
	return nil
}

type RemoveMatchingItem struct {
	Index int `json:"index"`
}

func (ev RemoveMatchingItem) apply(e *Editor) error { return e.matching.Remove(ev.Index) }

type MoveMatchingItem struct {
	From int `json:"from"`
	To   int `json:"to"`
}

func (ev MoveMatchingItem) apply(e *Editor) error { return e.matching.Move(ev.From, ev.To) }

type EditMatchingItem struct {
	Index   int      `json:"index"`
	Item    string   `json:"item"`
	Options []string `json:"options"`
}

func (ev EditMatchingItem) apply(e *Editor) error {
	return e.matching.Update(ev.Index, func(it *models.MatchingItem) {
		it.Item = ev.Item
		it.Options = append([]string(nil), ev.Options...)
	})
}

type EditFeedback struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

func (ev EditFeedback) apply(e *Editor) error {
	if !e.feedback.Set(ev.Key, ev.Value) {
		return fmt.Errorf("%w: %q", ErrUnknownKey, ev.Key)
	}
	return nil
}

var eventKinds = map[string]func() Event{
	"change_type":          func() Event { return &ChangeType{} },
	"set_title":            func() Event { return &SetTitle{} },
	"set_required":         func() Event { return &SetRequired{} },
	"set_image":            func() Event { return &SetImage{} },
	"add_option":           func() Event { return &AddOption{} },
	"insert_option":        func() Event { return &InsertOption{} },
	"remove_option":        func() Event { return &RemoveOption{} },
	"move_option":          func() Event { return &MoveOption{} },
	"rename_option":        func() Event { return &RenameOption{} },
	"toggle_correct":       func() Event { return &ToggleCorrect{} },
	"set_other_option":     func() Event { return &SetOtherOption{} },
	"add_text_input":       func() Event { return &AddTextInput{} },
	"remove_text_input":    func() Event { return &RemoveTextInput{} },
	"move_text_input":      func() Event { return &MoveTextInput{} },
	"edit_text_input":      func() Event { return &EditTextInput{} },
	"add_matching_item":    func() Event { return &AddMatchingItem{} },
	"remove_matching_item": func() Event { return &RemoveMatchingItem{} },
	"move_matching_item":   func() Event { return &MoveMatchingItem{} },
	"edit_matching_item":   func() Event { return &EditMatchingItem{} },
	"edit_feedback":        func() Event { return &EditFeedback{} },
}

// DecodeEvent builds a typed event from its wire kind and JSON payload.
func DecodeEvent(kind string, payload json.RawMessage) (Event, error) {
	factory, ok := eventKinds[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEvent, kind)
	}
	ev := factory()
	if len(payload) > 0 {
		if err := json.Unmarshal(payload, ev); err != nil {
			return nil, fmt.Errorf("invalid %s payload: %w", kind, err)
		}
	}
	return ev, nil
}
