package postgres

import (
	"context"
	"fmt"

	"github.com/SAP-F-2025/survey-service/internal/models"
	"github.com/SAP-F-2025/survey-service/internal/repositories"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MetaStorePostgreSQL keeps question metadata in question_meta. Built on a
// transaction handle it joins that transaction.
type MetaStorePostgreSQL struct {
	db *gorm.DB
}

func NewMetaStorePostgreSQL(db *gorm.DB) repositories.MetaStore {
	return &MetaStorePostgreSQL{db: db}
}

// GetMeta reads every metadata key of a question
func (m *MetaStorePostgreSQL) GetMeta(ctx context.Context, questionID uint) (map[string]datatypes.JSON, error) {
	var rows []models.QuestionMeta
	if err := m.db.WithContext(ctx).Where("question_id = ?", questionID).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to get question meta: %w", err)
	}

	meta := make(map[string]datatypes.JSON, len(rows))
	for _, row := range rows {
		meta[row.MetaKey] = row.MetaValue
	}
	return meta, nil
}

// SaveMeta upserts values and removes the deleted keys in one transaction
func (m *MetaStorePostgreSQL) SaveMeta(ctx context.Context, questionID uint, values map[string]datatypes.JSON, deletes []string) error {
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return upsertMeta(tx, questionID, values, deletes)
	})
}

func upsertMeta(tx *gorm.DB, questionID uint, values map[string]datatypes.JSON, deletes []string) error {
	if len(values) > 0 {
		rows := make([]models.QuestionMeta, 0, len(values))
		for key, value := range values {
			rows = append(rows, models.QuestionMeta{QuestionID: questionID, MetaKey: key, MetaValue: value})
		}
		err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "question_id"}, {Name: "meta_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"meta_value", "updated_at"}),
		}).Create(&rows).Error
		if err != nil {
			return fmt.Errorf("failed to upsert question meta: %w", err)
		}
	}

	if len(deletes) > 0 {
		if err := tx.Where("question_id = ? AND meta_key IN ?", questionID, deletes).
			Delete(&models.QuestionMeta{}).Error; err != nil {
			return fmt.Errorf("failed to delete question meta: %w", err)
		}
	}
	return nil
}

// DeleteMeta removes all metadata of a question
func (m *MetaStorePostgreSQL) DeleteMeta(ctx context.Context, questionID uint) error {
	if err := m.db.WithContext(ctx).Where("question_id = ?", questionID).
		Delete(&models.QuestionMeta{}).Error; err != nil {
		return fmt.Errorf("failed to delete question meta: %w", err)
	}
	return nil
}
