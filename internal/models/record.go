package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"gorm.io/datatypes"
)

// Metadata keys under which a question is stored. Every value is an
// independently JSON-encoded blob.
const (
	MetaQuestionType     = "question_type"
	MetaRequired         = "required"
	MetaImage            = "question_image"
	MetaOptions          = "question_options"
	MetaFeedback         = "question_feedback"
	MetaCorrectAnswers   = "correct_answers"
	MetaTextInputs       = "text_inputs"
	MetaMatchingItems    = "matching_items"
	MetaHasOtherOption   = "has_other_option"
	MetaOtherOptionLabel = "other_option_label"
)

var ErrMalformedMeta = errors.New("malformed question metadata")

// Record is the loosely-typed persisted shape of a question. Sections that
// the current type does not use are kept so that switching types back and
// forth in the editor does not lose data.
type Record struct {
	ID               uint           `json:"id"`
	Title            string         `json:"title" validate:"required,max=500"`
	Type             QuestionType   `json:"type" validate:"required,question_type"`
	Required         bool           `json:"required"`
	Image            string         `json:"image,omitempty" validate:"omitempty,max=2048"`
	Options          []Option       `json:"options,omitempty"`
	CorrectAnswers   []string       `json:"correct_answers,omitempty"`
	Feedback         FeedbackMap    `json:"feedback,omitempty"`
	TextInputs       []TextInput    `json:"text_inputs,omitempty"`
	MatchingItems    []MatchingItem `json:"matching_items,omitempty"`
	HasOtherOption   bool           `json:"has_other_option,omitempty"`
	OtherOptionLabel string         `json:"other_option_label,omitempty"`

	// CreatedBy is read from the question row and never taken from input.
	CreatedBy string `json:"created_by,omitempty"`
}

// Question projects the record onto the typed union. Unknown or missing
// types read as text.
func (r *Record) Question() Question {
	q := Question{
		ID:       r.ID,
		Title:    r.Title,
		Required: r.Required,
		Image:    r.Image,
		Feedback: r.Feedback,
	}

	switch r.Type {
	case TypeTextarea:
		q.Body = TextBody{Multiline: true}
	case TypeMultipleText:
		q.Body = MultipleTextBody{Inputs: r.TextInputs}
	case TypeRadio, TypeCheckbox:
		body := ChoiceBody{
			Multiple: r.Type == TypeCheckbox,
			Options:  r.Options,
			Correct:  r.CorrectAnswers,
		}
		if !body.Multiple && len(body.Correct) > 1 {
			body.Correct = body.Correct[:1]
		}
		if r.HasOtherOption {
			body.Other = &OtherOption{Label: r.OtherOptionLabel}
		}
		q.Body = body
	case TypeMatching:
		q.Body = MatchingBody{Items: r.MatchingItems}
	default:
		q.Body = TextBody{}
	}
	return q
}

// RecordFromQuestion flattens a typed question.
func RecordFromQuestion(q *Question) *Record {
	r := &Record{
		ID:       q.ID,
		Title:    q.Title,
		Type:     q.Type(),
		Required: q.Required,
		Image:    q.Image,
		Feedback: q.Feedback,
	}

	switch body := q.Body.(type) {
	case MultipleTextBody:
		r.TextInputs = body.Inputs
	case ChoiceBody:
		r.Options = body.Options
		r.CorrectAnswers = body.Correct
		if body.Other != nil {
			r.HasOtherOption = true
			r.OtherOptionLabel = body.Other.Label
		}
	case MatchingBody:
		r.MatchingItems = body.Items
	}
	return r
}

// Meta encodes the record into metadata blobs. The second return value
// lists keys that must be removed from the store.
func (r *Record) Meta() (map[string]datatypes.JSON, []string, error) {
	upserts := make(map[string]datatypes.JSON)
	var deletes []string

	put := func(key string, v any) error {
		raw, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("failed to encode %s: %w", key, err)
		}
		upserts[key] = datatypes.JSON(raw)
		return nil
	}

	typ := r.Type
	if typ == "" {
		typ = TypeText
	}
	if err := put(MetaQuestionType, typ); err != nil {
		return nil, nil, err
	}
	if err := put(MetaRequired, r.Required); err != nil {
		return nil, nil, err
	}
	if err := put(MetaImage, r.Image); err != nil {
		return nil, nil, err
	}

	options := r.Options
	if options == nil {
		options = []Option{}
	}
	if err := put(MetaOptions, options); err != nil {
		return nil, nil, err
	}

	feedback := r.Feedback.Compact()
	if err := put(MetaFeedback, feedback); err != nil {
		return nil, nil, err
	}

	if len(r.CorrectAnswers) > 0 {
		if err := put(MetaCorrectAnswers, r.CorrectAnswers); err != nil {
			return nil, nil, err
		}
	} else {
		deletes = append(deletes, MetaCorrectAnswers)
	}

	if r.TextInputs != nil {
		if err := put(MetaTextInputs, r.TextInputs); err != nil {
			return nil, nil, err
		}
	}
	if r.MatchingItems != nil {
		if err := put(MetaMatchingItems, r.MatchingItems); err != nil {
			return nil, nil, err
		}
	}

	if err := put(MetaHasOtherOption, r.HasOtherOption); err != nil {
		return nil, nil, err
	}
	if err := put(MetaOtherOptionLabel, r.OtherOptionLabel); err != nil {
		return nil, nil, err
	}

	return upserts, deletes, nil
}

// RecordFromMeta decodes stored metadata blobs. Missing keys leave the
// corresponding section empty.
func RecordFromMeta(id uint, title string, meta map[string]datatypes.JSON) (*Record, error) {
	r := &Record{ID: id, Title: title, Type: TypeText}

	get := func(key string, dest any) error {
		raw, ok := meta[key]
		if !ok || len(raw) == 0 {
			return nil
		}
		if err := json.Unmarshal(raw, dest); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrMalformedMeta, key, err)
		}
		return nil
	}

	if err := get(MetaQuestionType, &r.Type); err != nil {
		return nil, err
	}
	if r.Type == "" {
		r.Type = TypeText
	}
	if err := get(MetaRequired, &r.Required); err != nil {
		return nil, err
	}
	if err := get(MetaImage, &r.Image); err != nil {
		return nil, err
	}
	if err := get(MetaOptions, &r.Options); err != nil {
		return nil, err
	}
	if err := get(MetaFeedback, &r.Feedback); err != nil {
		return nil, err
	}
	if err := decodeCorrectAnswers(meta[MetaCorrectAnswers], &r.CorrectAnswers); err != nil {
		return nil, err
	}
	if err := get(MetaTextInputs, &r.TextInputs); err != nil {
		return nil, err
	}
	if err := get(MetaMatchingItems, &r.MatchingItems); err != nil {
		return nil, err
	}
	if err := get(MetaHasOtherOption, &r.HasOtherOption); err != nil {
		return nil, err
	}
	if err := get(MetaOtherOptionLabel, &r.OtherOptionLabel); err != nil {
		return nil, err
	}

	return r, nil
}

// decodeCorrectAnswers accepts either an array of option texts or a single
// string, as older radio questions stored it.
func decodeCorrectAnswers(raw datatypes.JSON, dest *[]string) error {
	if len(raw) == 0 {
		return nil
	}
	trimmed := strings.TrimSpace(string(raw))
	if strings.HasPrefix(trimmed, `"`) {
		var single string
		if err := json.Unmarshal(raw, &single); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrMalformedMeta, MetaCorrectAnswers, err)
		}
		if single != "" {
			*dest = []string{single}
		}
		return nil
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrMalformedMeta, MetaCorrectAnswers, err)
	}
	return nil
}
