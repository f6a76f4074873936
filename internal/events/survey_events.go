package events

import (
	"time"

	"github.com/google/uuid"
)

// EventType represents the kinds of survey events
type EventType string

const (
	EventResponseSubmitted EventType = "survey.response_submitted"
	EventQuestionSaved     EventType = "question.saved"
	EventQuestionDeleted   EventType = "question.deleted"
)

const (
	eventSource  = "survey-service"
	eventVersion = "1.0"
)

// SurveyEvent is the envelope for every published event
type SurveyEvent struct {
	ID        string                 `json:"id"`
	Type      EventType              `json:"type"`
	Timestamp time.Time              `json:"timestamp"`
	Source    string                 `json:"source"`
	Version   string                 `json:"version"`
	Data      interface{}            `json:"data"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

type ResponseSubmittedEvent struct {
	SurveyID         uint      `json:"survey_id"`
	RespondentID     string    `json:"respondent_id"`
	ResponseIDs      []uint    `json:"response_ids"`
	ModuleName       *string   `json:"module_name,omitempty"`
	ParentModuleName *string   `json:"parent_module_name,omitempty"`
	SubmittedAt      time.Time `json:"submitted_at"`
}

type QuestionSavedEvent struct {
	QuestionID   uint   `json:"question_id"`
	QuestionType string `json:"question_type"`
	Title        string `json:"title"`
	SavedBy      string `json:"saved_by,omitempty"`
	Created      bool   `json:"created"`
}

type QuestionDeletedEvent struct {
	QuestionID uint   `json:"question_id"`
	DeletedBy  string `json:"deleted_by,omitempty"`
}

// Event factory functions

func NewResponseSubmittedEvent(data ResponseSubmittedEvent) *SurveyEvent {
	return newEvent(EventResponseSubmitted, data)
}

func NewQuestionSavedEvent(data QuestionSavedEvent) *SurveyEvent {
	return newEvent(EventQuestionSaved, data)
}

func NewQuestionDeletedEvent(data QuestionDeletedEvent) *SurveyEvent {
	return newEvent(EventQuestionDeleted, data)
}

func newEvent(t EventType, data interface{}) *SurveyEvent {
	return &SurveyEvent{
		ID:        GenerateEventID(),
		Type:      t,
		Timestamp: time.Now(),
		Source:    eventSource,
		Version:   eventVersion,
		Data:      data,
	}
}

// GenerateEventID returns a random event identifier
func GenerateEventID() string {
	return uuid.NewString()
}
