package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/SAP-F-2025/survey-service/internal/models"
	"github.com/SAP-F-2025/survey-service/internal/repositories"
	"gorm.io/gorm"
)

type SurveyPostgreSQL struct {
	db *gorm.DB
}

func NewSurveyPostgreSQL(db *gorm.DB) repositories.SurveyRepository {
	return &SurveyPostgreSQL{db: db}
}

// ===== BASIC OPERATIONS =====

func (s *SurveyPostgreSQL) Create(ctx context.Context, survey *models.Survey) error {
	if err := s.db.WithContext(ctx).Omit("Questions").Create(survey).Error; err != nil {
		return fmt.Errorf("failed to create survey: %w", err)
	}
	return nil
}

// GetByID retrieves a survey with its questions in order
func (s *SurveyPostgreSQL) GetByID(ctx context.Context, id uint) (*models.Survey, error) {
	var survey models.Survey
	err := s.db.WithContext(ctx).
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("\"order\" ASC")
		}).
		First(&survey, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("survey %d: %w", id, repositories.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get survey: %w", err)
	}
	return &survey, nil
}

func (s *SurveyPostgreSQL) Update(ctx context.Context, survey *models.Survey) error {
	result := s.db.WithContext(ctx).Model(&models.Survey{}).Where("id = ?", survey.ID).
		Select("Title", "ModuleName", "ParentModuleName", "SuccessMessage").
		Updates(survey)
	if result.Error != nil {
		return fmt.Errorf("failed to update survey: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("survey %d: %w", survey.ID, repositories.ErrNotFound)
	}
	return nil
}

func (s *SurveyPostgreSQL) Delete(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("survey_id = ?", id).Delete(&models.SurveyQuestion{}).Error; err != nil {
			return fmt.Errorf("failed to delete survey questions: %w", err)
		}
		result := tx.Delete(&models.Survey{}, id)
		if result.Error != nil {
			return fmt.Errorf("failed to delete survey: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("survey %d: %w", id, repositories.ErrNotFound)
		}
		return nil
	})
}

// ===== ORDER MANAGEMENT =====

// AddQuestion appends a question at the end of the survey
func (s *SurveyPostgreSQL) AddQuestion(ctx context.Context, surveyID, questionID uint) error {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.SurveyQuestion{}).
		Where("survey_id = ? AND question_id = ?", surveyID, questionID).
		Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check if relationship exists: %w", err)
	}
	if count > 0 {
		return fmt.Errorf("survey %d question %d: %w", surveyID, questionID, repositories.ErrDuplicate)
	}

	order, err := s.GetNextOrder(ctx, surveyID)
	if err != nil {
		return fmt.Errorf("failed to get next order: %w", err)
	}

	link := &models.SurveyQuestion{SurveyID: surveyID, QuestionID: questionID, Order: order}
	if err := s.db.WithContext(ctx).Create(link).Error; err != nil {
		return fmt.Errorf("failed to add question to survey: %w", err)
	}
	return nil
}

// RemoveQuestion detaches a question and closes the gap in the ordering
func (s *SurveyPostgreSQL) RemoveQuestion(ctx context.Context, surveyID, questionID uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("survey_id = ? AND question_id = ?", surveyID, questionID).
			Delete(&models.SurveyQuestion{})
		if result.Error != nil {
			return fmt.Errorf("failed to remove question from survey: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("survey %d question %d: %w", surveyID, questionID, repositories.ErrNotFound)
		}

		var remaining []uint
		if err := tx.Model(&models.SurveyQuestion{}).Where("survey_id = ?", surveyID).
			Order("\"order\" ASC").Pluck("question_id", &remaining).Error; err != nil {
			return fmt.Errorf("failed to load survey questions: %w", err)
		}
		return updateOrder(tx, surveyID, orders(remaining))
	})
}

// SetQuestions replaces the survey's question list with questionIDs in order
func (s *SurveyPostgreSQL) SetQuestions(ctx context.Context, surveyID uint, questionIDs []uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("survey_id = ?", surveyID).Delete(&models.SurveyQuestion{}).Error; err != nil {
			return fmt.Errorf("failed to clear survey questions: %w", err)
		}
		if len(questionIDs) == 0 {
			return nil
		}

		links := make([]*models.SurveyQuestion, len(questionIDs))
		for i, qo := range orders(questionIDs) {
			links[i] = &models.SurveyQuestion{SurveyID: surveyID, QuestionID: qo.QuestionID, Order: qo.Order}
		}
		if err := tx.CreateInBatches(links, 100).Error; err != nil {
			return fmt.Errorf("failed to create survey questions batch: %w", err)
		}
		return nil
	})
}

func (s *SurveyPostgreSQL) GetQuestionIDs(ctx context.Context, surveyID uint) ([]uint, error) {
	var ids []uint
	if err := s.db.WithContext(ctx).Model(&models.SurveyQuestion{}).
		Where("survey_id = ?", surveyID).
		Order("\"order\" ASC").
		Pluck("question_id", &ids).Error; err != nil {
		return nil, fmt.Errorf("failed to get survey question ids: %w", err)
	}
	return ids, nil
}

// GetMaxOrder gets the maximum order value for questions in a survey
func (s *SurveyPostgreSQL) GetMaxOrder(ctx context.Context, surveyID uint) (int, error) {
	var maxOrder int
	err := s.db.WithContext(ctx).
		Model(&models.SurveyQuestion{}).
		Where("survey_id = ?", surveyID).
		Select("COALESCE(MAX(\"order\"), 0)").
		Scan(&maxOrder).Error
	if err != nil {
		return 0, fmt.Errorf("failed to get max order: %w", err)
	}
	return maxOrder, nil
}

// GetNextOrder gets the next order value for adding a question
func (s *SurveyPostgreSQL) GetNextOrder(ctx context.Context, surveyID uint) (int, error) {
	maxOrder, err := s.GetMaxOrder(ctx, surveyID)
	if err != nil {
		return 0, err
	}
	return maxOrder + 1, nil
}

// orders numbers ids from 1 in slice order
func orders(ids []uint) []repositories.QuestionOrder {
	out := make([]repositories.QuestionOrder, len(ids))
	for i, id := range ids {
		out[i] = repositories.QuestionOrder{QuestionID: id, Order: i + 1}
	}
	return out
}

func updateOrder(tx *gorm.DB, surveyID uint, questionOrders []repositories.QuestionOrder) error {
	for _, qo := range questionOrders {
		result := tx.Model(&models.SurveyQuestion{}).
			Where("survey_id = ? AND question_id = ?", surveyID, qo.QuestionID).
			Update("order", qo.Order)
		if result.Error != nil {
			return fmt.Errorf("failed to update order for question %d: %w", qo.QuestionID, result.Error)
		}
	}
	return nil
}
