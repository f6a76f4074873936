package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SAP-F-2025/survey-service/internal/models"
	"github.com/xuri/excelize/v2"
)

const exportTimeLayout = "2006-01-02 15:04:05"

type ExportService interface {
	// ExportResponses writes the respondent's grouped answers to a workbook
	ExportResponses(ctx context.Context, respondentID string) ([]byte, error)
	// ExportSurveyQuestions writes the question list and every stored answer
	ExportSurveyQuestions(ctx context.Context, surveyID uint) ([]byte, error)
}

type sheet struct {
	name    string
	headers []string
	rows    [][]interface{}
}

type exportService struct {
	responses ResponseService
	surveys   SurveyService
	logger    *slog.Logger
}

func NewExportService(responses ResponseService, surveys SurveyService, logger *slog.Logger) ExportService {
	if logger == nil {
		logger = slog.Default()
	}
	return &exportService{responses: responses, surveys: surveys, logger: logger}
}

func (s *exportService) ExportResponses(ctx context.Context, respondentID string) ([]byte, error) {
	grouped, err := s.responses.Grouped(ctx, respondentID)
	if err != nil {
		return nil, err
	}

	var rows [][]interface{}
	for _, parent := range grouped.Parents {
		for _, module := range parent.Modules {
			for _, rec := range module.Records {
				rows = append(rows, []interface{}{
					parent.Name,
					module.Name,
					rec.QuestionText,
					rec.Response,
					rec.CreatedAt.Format(exportTimeLayout),
				})
			}
		}
	}

	data, err := writeWorkbook(sheet{
		name:    "Responses",
		headers: []string{"Parent Module", "Module", "Question", "Response", "Submitted At"},
		rows:    rows,
	})
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "Responses exported", "respondent_id", respondentID, "rows", len(rows))
	return data, nil
}

func (s *exportService) ExportSurveyQuestions(ctx context.Context, surveyID uint) ([]byte, error) {
	_, questions, err := s.surveys.Questions(ctx, surveyID)
	if err != nil {
		return nil, err
	}

	rows := make([][]interface{}, len(questions))
	for i, q := range questions {
		rows[i] = []interface{}{
			i + 1,
			q.ID,
			string(q.Type()),
			q.Title,
			q.Required,
			strings.Join(answerChoices(q.Body), "; "),
		}
	}

	records, err := s.responses.ListForSurvey(ctx, surveyID)
	if err != nil {
		return nil, err
	}
	answerRows := make([][]interface{}, len(records))
	for i, rec := range records {
		answerRows[i] = []interface{}{
			rec.RespondentID,
			rec.QuestionID,
			rec.QuestionText,
			rec.Response,
			rec.CreatedAt.Format(exportTimeLayout),
		}
	}

	data, err := writeWorkbook(
		sheet{
			name:    "Questions",
			headers: []string{"Order", "Question ID", "Type", "Title", "Required", "Choices"},
			rows:    rows,
		},
		sheet{
			name:    "Responses",
			headers: []string{"Respondent", "Question ID", "Question", "Response", "Submitted At"},
			rows:    answerRows,
		},
	)
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "Survey exported", "survey_id", surveyID, "questions", len(rows), "responses", len(answerRows))
	return data, nil
}

// answerChoices lists the fixed choices a respondent can pick from
func answerChoices(body models.Body) []string {
	var out []string
	switch b := body.(type) {
	case models.ChoiceBody:
		for _, opt := range b.Options {
			out = append(out, opt.Text)
		}
		if b.Other != nil {
			out = append(out, b.Other.DisplayLabel())
		}
	case models.MultipleTextBody:
		for _, in := range b.Inputs {
			out = append(out, in.Label)
		}
	case models.MatchingBody:
		for _, item := range b.Items {
			out = append(out, item.Item+": "+strings.Join(item.Options, "/"))
		}
	}
	return out
}

// writeWorkbook renders sheets in order; the first replaces the default sheet
func writeWorkbook(sheets ...sheet) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	for i, sh := range sheets {
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), sh.name); err != nil {
				return nil, fmt.Errorf("failed to create Excel sheet: %w", err)
			}
		} else if _, err := f.NewSheet(sh.name); err != nil {
			return nil, fmt.Errorf("failed to create Excel sheet %s: %w", sh.name, err)
		}

		for col, header := range sh.headers {
			cell, _ := excelize.CoordinatesToCellName(col+1, 1)
			f.SetCellValue(sh.name, cell, header)
		}
		for rowIndex, row := range sh.rows {
			for colIndex, value := range row {
				cell, _ := excelize.CoordinatesToCellName(colIndex+1, rowIndex+2)
				f.SetCellValue(sh.name, cell, value)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write Excel file: %w", err)
	}
	return buf.Bytes(), nil
}
