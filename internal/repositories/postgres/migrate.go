package postgres

import (
	"fmt"

	"github.com/SAP-F-2025/survey-service/internal/models"
	"gorm.io/gorm"
)

// AutoMigrate creates or updates the survey tables
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.QuestionPost{},
		&models.QuestionMeta{},
		&models.Survey{},
		&models.SurveyQuestion{},
		&models.ResponseRecord{},
	); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}
