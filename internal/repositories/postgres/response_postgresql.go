package postgres

import (
	"context"
	"fmt"

	"github.com/SAP-F-2025/survey-service/internal/models"
	"github.com/SAP-F-2025/survey-service/internal/repositories"
	"gorm.io/gorm"
)

type ResponsePostgreSQL struct {
	db *gorm.DB
}

func NewResponsePostgreSQL(db *gorm.DB) repositories.ResponseRepository {
	return &ResponsePostgreSQL{db: db}
}

// CreateBatch stores all records of one submission atomically
func (r *ResponsePostgreSQL) CreateBatch(ctx context.Context, records []*models.ResponseRecord) error {
	if len(records) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.CreateInBatches(records, 100).Error; err != nil {
			return fmt.Errorf("failed to create responses batch: %w", err)
		}
		return nil
	})
}

// GetByRespondent lists a respondent's answers, most recent submission first
func (r *ResponsePostgreSQL) GetByRespondent(ctx context.Context, respondentID string, filters repositories.ResponseFilters) ([]models.ResponseRecord, error) {
	query := r.db.WithContext(ctx).Where("respondent_id = ?", respondentID)
	if filters.SurveyID != nil {
		query = query.Where("survey_id = ?", *filters.SurveyID)
	}
	if filters.Limit > 0 {
		query = query.Limit(filters.Limit)
	}
	if filters.Offset > 0 {
		query = query.Offset(filters.Offset)
	}

	var records []models.ResponseRecord
	if err := query.Order("created_at DESC, id ASC").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to get responses: %w", err)
	}
	return records, nil
}

func (r *ResponsePostgreSQL) GetBySurvey(ctx context.Context, surveyID uint) ([]models.ResponseRecord, error) {
	var records []models.ResponseRecord
	if err := r.db.WithContext(ctx).
		Where("survey_id = ?", surveyID).
		Order("created_at ASC, id ASC").
		Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to get survey responses: %w", err)
	}
	return records, nil
}
