package authoring

import (
	"errors"
	"fmt"
	"strings"

	"github.com/SAP-F-2025/survey-service/internal/models"
)

// OptionRow is an editable option together with its correctness flag.
type OptionRow struct {
	Text    string `json:"text"`
	Correct bool   `json:"correct"`
}

// Editor is the authoring state of one question. All mutations go through
// Dispatch.
type Editor struct {
	id         uint
	title      string
	typ        models.QuestionType
	required   bool
	image      string
	options    *OrderedList[OptionRow]
	textInputs *OrderedList[models.TextInput]
	matching   *OrderedList[models.MatchingItem]
	feedback   *FeedbackIndex
	hasOther   bool
	otherLabel string

	transition Transition
}

// Draft is the serializable form of an Editor, including unsaved feedback.
type Draft struct {
	ID               uint                  `json:"id"`
	Title            string                `json:"title"`
	Type             models.QuestionType   `json:"type"`
	Required         bool                  `json:"required"`
	Image            string                `json:"image"`
	Options          []OptionRow           `json:"options"`
	TextInputs       []models.TextInput    `json:"text_inputs"`
	MatchingItems    []models.MatchingItem `json:"matching_items"`
	Feedback         []FeedbackEntry       `json:"feedback"`
	HasOtherOption   bool                  `json:"has_other_option"`
	OtherOptionLabel string                `json:"other_option_label"`
}

func defaultTextInput(n int) models.TextInput {
	return models.TextInput{Label: fmt.Sprintf("Input %d", n)}
}

// NewEditor opens an editor on a stored record. A nil record opens a blank
// text question.
func NewEditor(rec *models.Record) *Editor {
	if rec == nil {
		rec = &models.Record{Type: models.TypeText}
	}

	correct := make(map[string]bool, len(rec.CorrectAnswers))
	for _, c := range rec.CorrectAnswers {
		correct[c] = true
	}
	options := make([]OptionRow, 0, len(rec.Options))
	for _, o := range rec.Options {
		options = append(options, OptionRow{Text: o.Text, Correct: correct[o.Text]})
	}

	draft := Draft{
		ID:               rec.ID,
		Title:            rec.Title,
		Type:             rec.Type,
		Required:         rec.Required,
		Image:            rec.Image,
		Options:          options,
		TextInputs:       rec.TextInputs,
		MatchingItems:    rec.MatchingItems,
		HasOtherOption:   rec.HasOtherOption,
		OtherOptionLabel: rec.OtherOptionLabel,
	}
	for k, v := range rec.Feedback {
		draft.Feedback = append(draft.Feedback, FeedbackEntry{Key: k, Value: v})
	}
	return FromDraft(draft)
}

// FromDraft restores an editor. Empty lists get their default first row.
func FromDraft(d Draft) *Editor {
	typ := d.Type
	if !typ.IsValid() {
		typ = models.TypeText
	}

	options := d.Options
	if len(options) == 0 {
		options = []OptionRow{{}}
	}
	inputs := d.TextInputs
	if len(inputs) == 0 {
		inputs = []models.TextInput{defaultTextInput(1)}
	}
	items := d.MatchingItems
	if len(items) == 0 {
		items = []models.MatchingItem{{Options: []string{""}}}
	}

	e := &Editor{
		id:         d.ID,
		title:      d.Title,
		typ:        typ,
		required:   d.Required,
		image:      d.Image,
		options:    NewOrderedList(ListOptions, []string{"text"}, options),
		textInputs: NewOrderedList(ListTextInputs, []string{"label", "placeholder"}, inputs),
		matching:   NewOrderedList(ListMatchingItems, []string{"item"}, items),
		hasOther:   d.HasOtherOption,
		otherLabel: d.OtherOptionLabel,
	}

	stored := make(models.FeedbackMap, len(d.Feedback))
	for _, f := range d.Feedback {
		if f.Value != "" {
			stored[f.Key] = f.Value
		}
	}
	e.feedback = NewFeedbackIndex(stored, e.feedbackKeys())
	return e
}

// Draft captures the full editor state.
func (e *Editor) Draft() Draft {
	return Draft{
		ID:               e.id,
		Title:            e.title,
		Type:             e.typ,
		Required:         e.required,
		Image:            e.image,
		Options:          e.options.Values(),
		TextInputs:       e.textInputs.Values(),
		MatchingItems:    e.matching.Values(),
		Feedback:         e.feedback.Entries(),
		HasOtherOption:   e.hasOther,
		OtherOptionLabel: e.otherLabel,
	}
}

func (e *Editor) Type() models.QuestionType { return e.typ }

// Result is the outcome of one dispatched event.
type Result struct {
	View   View   `json:"view"`
	Notice string `json:"notice,omitempty"`
}

// Dispatch applies ev and returns the new view. A refused removal is
// reported as a notice, not an error; the state is left unchanged.
func (e *Editor) Dispatch(ev Event) (Result, error) {
	e.transition = TransitionNone

	var notice string
	if err := ev.apply(e); err != nil {
		var minErr *MinimumRowsError
		if !errors.As(err, &minErr) {
			return Result{View: e.View()}, err
		}
		notice = minErr.Notice()
	}

	e.feedback.Regenerate(e.feedbackKeys())
	return Result{View: e.View(), Notice: notice}, nil
}

func (e *Editor) feedbackKeys() []string {
	switch {
	case e.typ.IsChoice():
		keys := make([]string, 0, e.options.Len())
		for _, o := range e.options.Values() {
			if o.Text != "" {
				keys = append(keys, o.Text)
			}
		}
		return keys
	case e.typ == models.TypeMatching:
		keys := make([]string, 0, e.matching.Len())
		for _, it := range e.matching.Values() {
			if it.Item != "" {
				keys = append(keys, it.Item)
			}
		}
		return keys
	default:
		return []string{models.GeneralFeedbackKey}
	}
}

func (e *Editor) changeType(to models.QuestionType) error {
	if !to.IsValid() {
		return fmt.Errorf("%w: %q", ErrUnknownType, to)
	}
	from := e.typ
	switch {
	case to == models.TypeMultipleText && from != models.TypeMultipleText:
		e.transition = TransitionSlideDown
	case from == models.TypeMultipleText && to != models.TypeMultipleText:
		e.transition = TransitionSlideUp
	}
	e.typ = to
	return nil
}

func (e *Editor) toggleCorrect(index int, checked bool) error {
	if _, err := e.options.Get(index); err != nil {
		return err
	}
	if checked && e.toggleKind() == ToggleRadio {
		for i := 0; i < e.options.Len(); i++ {
			_ = e.options.Update(i, func(o *OptionRow) { o.Correct = false })
		}
	}
	return e.options.Update(index, func(o *OptionRow) { o.Correct = checked })
}

// Record converts the editor state into the persisted shape. Options with
// empty text and empty feedback values are dropped; a radio question keeps
// only its first correct answer.
func (e *Editor) Record() *models.Record {
	rec := &models.Record{
		ID:               e.id,
		Title:            strings.TrimSpace(e.title),
		Type:             e.typ,
		Required:         e.required,
		Image:            strings.TrimSpace(e.image),
		Feedback:         e.savedFeedback(),
		TextInputs:       e.textInputs.Values(),
		HasOtherOption:   e.hasOther,
		OtherOptionLabel: strings.TrimSpace(e.otherLabel),
	}

	rec.Options = []models.Option{}
	for _, o := range e.options.Values() {
		text := strings.TrimSpace(o.Text)
		if text == "" {
			continue
		}
		rec.Options = append(rec.Options, models.Option{Text: text})
		if o.Correct {
			rec.CorrectAnswers = append(rec.CorrectAnswers, text)
		}
	}
	if e.typ == models.TypeRadio && len(rec.CorrectAnswers) > 1 {
		rec.CorrectAnswers = rec.CorrectAnswers[:1]
	}

	rec.MatchingItems = []models.MatchingItem{}
	for _, it := range e.matching.Values() {
		item := strings.TrimSpace(it.Item)
		if item == "" {
			continue
		}
		opts := make([]string, 0, len(it.Options))
		for _, o := range it.Options {
			if o = strings.TrimSpace(o); o != "" {
				opts = append(opts, o)
			}
		}
		rec.MatchingItems = append(rec.MatchingItems, models.MatchingItem{Item: item, Options: opts})
	}

	return rec
}

// savedFeedback keys feedback by the trimmed text that Record stores for
// options and items. On a collision after trimming the first row wins.
func (e *Editor) savedFeedback() models.FeedbackMap {
	out := make(models.FeedbackMap)
	for _, entry := range e.feedback.Entries() {
		key := strings.TrimSpace(entry.Key)
		if key == "" || entry.Value == "" {
			continue
		}
		if _, ok := out[key]; !ok {
			out[key] = entry.Value
		}
	}
	return out
}
