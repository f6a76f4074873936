package postgres

import (
	"log/slog"

	"github.com/SAP-F-2025/survey-service/internal/cache"
	"github.com/SAP-F-2025/survey-service/internal/repositories"
	"gorm.io/gorm"
)

type repository struct {
	question repositories.QuestionRepository
	meta     repositories.MetaStore
	survey   repositories.SurveyRepository
	response repositories.ResponseRepository
}

// NewRepository wires the PostgreSQL repositories. cacheService may be nil.
func NewRepository(db *gorm.DB, cacheService cache.CacheService, logger *slog.Logger) repositories.Repository {
	return &repository{
		question: NewQuestionPostgreSQL(db, cacheService, logger),
		meta:     NewMetaStorePostgreSQL(db),
		survey:   NewSurveyPostgreSQL(db),
		response: NewResponsePostgreSQL(db),
	}
}

func (r *repository) Question() repositories.QuestionRepository { return r.question }
func (r *repository) Meta() repositories.MetaStore { return r.meta }
func (r *repository) Survey() repositories.SurveyRepository { return r.survey }
func (r *repository) Response() repositories.ResponseRepository { return r.response }
