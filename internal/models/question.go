package models

import (
	"encoding/json"
	"slices"
)

type QuestionType string

const (
	TypeText         QuestionType = "text"
	TypeTextarea     QuestionType = "textarea"
	TypeMultipleText QuestionType = "multiple_text"
	TypeRadio        QuestionType = "radio"
	TypeCheckbox     QuestionType = "checkbox"
	TypeMatching     QuestionType = "matching"
)

// QuestionTypes lists every supported type in authoring menu order.
var QuestionTypes = []QuestionType{
	TypeText,
	TypeTextarea,
	TypeMultipleText,
	TypeRadio,
	TypeCheckbox,
	TypeMatching,
}

func (t QuestionType) IsValid() bool {
	return slices.Contains(QuestionTypes, t)
}

// IsChoice reports whether the type is answered by picking options.
func (t QuestionType) IsChoice() bool {
	return t == TypeRadio || t == TypeCheckbox
}

const (
	GeneralFeedbackKey = "general"
	DefaultOtherLabel  = "Other:"
	OtherValue         = "other"
)

type Option struct {
	Text string `json:"text"`
}

type TextInput struct {
	Label       string `json:"label"`
	Placeholder string `json:"placeholder"`
}

type MatchingItem struct {
	Item    string   `json:"item"`
	Options []string `json:"options"`
}

// FeedbackMap is keyed by the literal option or item text, or by
// GeneralFeedbackKey for types without options.
type FeedbackMap map[string]string

// Lookup returns the feedback for key, empty when absent.
func (f FeedbackMap) Lookup(key string) string {
	if f == nil {
		return ""
	}
	return f[key]
}

// Compact drops entries with empty values.
func (f FeedbackMap) Compact() FeedbackMap {
	out := make(FeedbackMap, len(f))
	for k, v := range f {
		if v != "" {
			out[k] = v
		}
	}
	return out
}

// Body is the type-specific part of a question. Exactly one of
// TextBody, MultipleTextBody, ChoiceBody or MatchingBody.
type Body interface {
	questionType() QuestionType
}

type TextBody struct {
	Multiline bool
}

func (b TextBody) questionType() QuestionType {
	if b.Multiline {
		return TypeTextarea
	}
	return TypeText
}

type MultipleTextBody struct {
	Inputs []TextInput
}

func (MultipleTextBody) questionType() QuestionType { return TypeMultipleText }

type OtherOption struct {
	Label string
}

// DisplayLabel returns the label, falling back to DefaultOtherLabel.
func (o OtherOption) DisplayLabel() string {
	if o.Label == "" {
		return DefaultOtherLabel
	}
	return o.Label
}

type ChoiceBody struct {
	Multiple bool
	Options  []Option
	Correct  []string
	Other    *OtherOption
}

func (b ChoiceBody) questionType() QuestionType {
	if b.Multiple {
		return TypeCheckbox
	}
	return TypeRadio
}

// IsCorrect reports whether text is one of the designated correct answers.
func (b ChoiceBody) IsCorrect(text string) bool {
	return slices.Contains(b.Correct, text)
}

type MatchingBody struct {
	Items []MatchingItem
}

func (MatchingBody) questionType() QuestionType { return TypeMatching }

// Question is the typed view of a stored question.
type Question struct {
	ID       uint
	Title    string
	Required bool
	Image    string
	Feedback FeedbackMap
	Body     Body
}

// Type derives the discriminator from the body. A nil body reads as text.
func (q *Question) Type() QuestionType {
	if q.Body == nil {
		return TypeText
	}
	return q.Body.questionType()
}

// FeedbackKeys returns the keys feedback can be attached to, in display order.
func (q *Question) FeedbackKeys() []string {
	switch body := q.Body.(type) {
	case ChoiceBody:
		keys := make([]string, 0, len(body.Options))
		for _, opt := range body.Options {
			if opt.Text != "" {
				keys = append(keys, opt.Text)
			}
		}
		return keys
	case MatchingBody:
		keys := make([]string, 0, len(body.Items))
		for _, item := range body.Items {
			if item.Item != "" {
				keys = append(keys, item.Item)
			}
		}
		return keys
	default:
		return []string{GeneralFeedbackKey}
	}
}

func (q Question) MarshalJSON() ([]byte, error) {
	return json.Marshal(RecordFromQuestion(&q))
}

func (q *Question) UnmarshalJSON(data []byte) error {
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return err
	}
	*q = rec.Question()
	return nil
}
