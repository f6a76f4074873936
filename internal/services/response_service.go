package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SAP-F-2025/survey-service/internal/models"
	"github.com/SAP-F-2025/survey-service/internal/repositories"
	"github.com/SAP-F-2025/survey-service/internal/responses"
)

type ResponseService interface {
	// ListForRespondent returns the respondent's records, oldest first
	ListForRespondent(ctx context.Context, respondentID string, filters repositories.ResponseFilters) ([]models.ResponseRecord, error)
	Grouped(ctx context.Context, respondentID string) (responses.Grouped, error)
	ListForSurvey(ctx context.Context, surveyID uint) ([]models.ResponseRecord, error)
}

type responseService struct {
	repo   repositories.Repository
	logger *ServiceLogger
}

func NewResponseService(repo repositories.Repository, logger *slog.Logger) ResponseService {
	return &responseService{
		repo:   repo,
		logger: NewServiceLogger(logger, LogConfig{Service: "survey-service", Component: "response"}),
	}
}

func (s *responseService) ListForRespondent(ctx context.Context, respondentID string, filters repositories.ResponseFilters) ([]models.ResponseRecord, error) {
	if respondentID == "" {
		return nil, ErrUnauthorized
	}
	records, err := s.repo.Response().GetByRespondent(ctx, respondentID, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to get responses: %w", err)
	}
	if records == nil {
		records = []models.ResponseRecord{}
	}
	return records, nil
}

func (s *responseService) Grouped(ctx context.Context, respondentID string) (responses.Grouped, error) {
	records, err := s.ListForRespondent(ctx, respondentID, repositories.ResponseFilters{})
	if err != nil {
		return responses.Grouped{}, err
	}
	return responses.Aggregate(records), nil
}

// ListForSurvey returns every stored answer to the survey, oldest first
func (s *responseService) ListForSurvey(ctx context.Context, surveyID uint) ([]models.ResponseRecord, error) {
	records, err := s.repo.Response().GetBySurvey(ctx, surveyID)
	if err != nil {
		return nil, fmt.Errorf("failed to get survey responses: %w", err)
	}
	return records, nil
}
