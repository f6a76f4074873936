package models

import "time"

// ResponseRecord is one answered question of one submission. Multi-value
// answers are stored comma-joined.
type ResponseRecord struct {
	ID               uint      `json:"id" gorm:"primaryKey"`
	RespondentID     string    `json:"-" gorm:"not null;size:100;index"`
	SurveyID         uint      `json:"survey_id" gorm:"index"`
	QuestionID       uint      `json:"question_id" gorm:"index"`
	QuestionText     string    `json:"question" gorm:"type:text;not null"`
	Response         string    `json:"response" gorm:"type:text"`
	ParentModuleName *string   `json:"parent_module_name" gorm:"size:200"`
	ModuleName       *string   `json:"module_name" gorm:"size:200"`
	CreatedAt        time.Time `json:"created_at"`
}

func (ResponseRecord) TableName() string { return "survey_responses" }

// MultiValueSeparator joins array answers into a single response string.
const MultiValueSeparator = ", "
