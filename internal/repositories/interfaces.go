package repositories

import (
	"context"
	"errors"

	"github.com/SAP-F-2025/survey-service/internal/models"
	"gorm.io/datatypes"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("record already exists")
)

// ===== SHARED FILTER STRUCTS =====

type QuestionFilters struct {
	Type      *models.QuestionType `json:"type"`
	CreatedBy *string              `json:"created_by"`
	Search    string               `json:"search"`
	Limit     int                  `json:"limit"`
	Offset    int                  `json:"offset"`
}

type ResponseFilters struct {
	SurveyID *uint `json:"survey_id"`
	Limit    int   `json:"limit"`
	Offset   int   `json:"offset"`
}

// ===== SHARED HELPER STRUCTS =====

type QuestionOrder struct {
	QuestionID uint `json:"question_id"`
	Order      int  `json:"order"`
}

// ===== REPOSITORIES =====

// MetaStore is the opaque per-question key/value store. Values are JSON
// blobs; an absent key reads as missing.
type MetaStore interface {
	GetMeta(ctx context.Context, questionID uint) (map[string]datatypes.JSON, error)
	SaveMeta(ctx context.Context, questionID uint, values map[string]datatypes.JSON, deletes []string) error
	DeleteMeta(ctx context.Context, questionID uint) error
}

// QuestionRepository persists question records through the meta store.
type QuestionRepository interface {
	Create(ctx context.Context, record *models.Record, createdBy string) error
	GetByID(ctx context.Context, id uint) (*models.Record, error)
	GetByIDs(ctx context.Context, ids []uint) ([]*models.Record, error)
	Update(ctx context.Context, record *models.Record) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, filters QuestionFilters) ([]*models.Record, int64, error)
}

type SurveyRepository interface {
	Create(ctx context.Context, survey *models.Survey) error
	GetByID(ctx context.Context, id uint) (*models.Survey, error)
	Update(ctx context.Context, survey *models.Survey) error
	Delete(ctx context.Context, id uint) error

	// Question ordering
	AddQuestion(ctx context.Context, surveyID, questionID uint) error
	RemoveQuestion(ctx context.Context, surveyID, questionID uint) error
	SetQuestions(ctx context.Context, surveyID uint, questionIDs []uint) error
	GetQuestionIDs(ctx context.Context, surveyID uint) ([]uint, error)
}

type ResponseRepository interface {
	CreateBatch(ctx context.Context, records []*models.ResponseRecord) error
	GetByRespondent(ctx context.Context, respondentID string, filters ResponseFilters) ([]models.ResponseRecord, error)
	GetBySurvey(ctx context.Context, surveyID uint) ([]models.ResponseRecord, error)
}

// Repository groups every repository behind one handle
type Repository interface {
	Question() QuestionRepository
	Meta() MetaStore
	Survey() SurveyRepository
	Response() ResponseRepository
}
