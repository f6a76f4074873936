package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// QuestionPost is the stored question row. Everything type-specific lives
// in QuestionMeta.
type QuestionPost struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	Title     string         `json:"title" gorm:"not null;size:500" validate:"required,min=1,max=500"`
	CreatedBy string         `json:"created_by" gorm:"index"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	Meta []QuestionMeta `json:"-" gorm:"foreignKey:QuestionID"`
}

func (QuestionPost) TableName() string { return "survey_questions" }

// QuestionMeta is one key/value metadata blob of a question.
type QuestionMeta struct {
	ID         uint           `gorm:"primaryKey"`
	QuestionID uint           `gorm:"not null;uniqueIndex:idx_question_meta_key"`
	MetaKey    string         `gorm:"not null;size:64;uniqueIndex:idx_question_meta_key"`
	MetaValue  datatypes.JSON `gorm:"type:jsonb"`
	UpdatedAt  time.Time
}

func (QuestionMeta) TableName() string { return "question_meta" }

// Survey groups ordered questions under a module and its parent module.
type Survey struct {
	ID               uint           `json:"id" gorm:"primaryKey"`
	Title            string         `json:"title" gorm:"not null;size:200" validate:"required,min=1,max=200"`
	ModuleName       *string        `json:"module_name" gorm:"size:200" validate:"omitempty,max=200"`
	ParentModuleName *string        `json:"parent_module_name" gorm:"size:200" validate:"omitempty,max=200"`
	SuccessMessage   string         `json:"success_message" gorm:"type:text"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `json:"-" gorm:"index"`

	Questions []SurveyQuestion `json:"questions,omitempty" gorm:"foreignKey:SurveyID"`
}

type SurveyQuestion struct {
	ID         uint `json:"id" gorm:"primaryKey"`
	SurveyID   uint `json:"survey_id" gorm:"not null;uniqueIndex:idx_survey_question"`
	QuestionID uint `json:"question_id" gorm:"not null;uniqueIndex:idx_survey_question"`
	Order      int  `json:"order" gorm:"not null"`
}

const DefaultSuccessMessage = "Thank you for completing the survey!"

// SuccessText returns the survey's success message or the default one.
func (s *Survey) SuccessText() string {
	if s.SuccessMessage == "" {
		return DefaultSuccessMessage
	}
	return s.SuccessMessage
}
