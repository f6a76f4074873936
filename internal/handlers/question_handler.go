package handlers

import (
	"net/http"
	"strings"

	"github.com/SAP-F-2025/survey-service/internal/middleware"
	"github.com/SAP-F-2025/survey-service/internal/models"
	"github.com/SAP-F-2025/survey-service/internal/repositories"
	"github.com/SAP-F-2025/survey-service/internal/services"
	"github.com/SAP-F-2025/survey-service/internal/utils"
	"github.com/gin-gonic/gin"
)

type QuestionHandler struct {
	BaseHandler
	questionService services.QuestionService
}

func NewQuestionHandler(questionService services.QuestionService, logger utils.Logger) *QuestionHandler {
	return &QuestionHandler{
		BaseHandler:     NewBaseHandler(logger),
		questionService: questionService,
	}
}

// CreateQuestion creates a new question
// @Summary Create question
// @Tags questions
// @Accept json
// @Produce json
// @Param question body models.Record true "Question data"
// @Success 201 {object} Envelope{data=models.Record}
// @Failure 400 {object} Envelope{data=ErrorResponse}
// @Router /questions [post]
func (h *QuestionHandler) CreateQuestion(c *gin.Context) {
	h.LogRequest(c, "Creating question")

	var req models.Record
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request payload", err, err.Error())
		return
	}

	question, err := h.questionService.Create(c.Request.Context(), &req, middleware.UserID(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusCreated, question)
}

// GetQuestion retrieves a question by ID
// @Summary Get question
// @Tags questions
// @Produce json
// @Param id path uint true "Question ID"
// @Success 200 {object} Envelope{data=models.Record}
// @Failure 404 {object} Envelope{data=ErrorResponse}
// @Router /questions/{id} [get]
func (h *QuestionHandler) GetQuestion(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	question, err := h.questionService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusOK, question)
}

// UpdateQuestion replaces a question
// @Summary Update question
// @Tags questions
// @Accept json
// @Produce json
// @Param id path uint true "Question ID"
// @Param question body models.Record true "Question data"
// @Success 200 {object} Envelope{data=models.Record}
// @Router /questions/{id} [put]
func (h *QuestionHandler) UpdateQuestion(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	h.LogRequest(c, "Updating question", "question_id", id)

	var req models.Record
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request payload", err, err.Error())
		return
	}

	question, err := h.questionService.Update(c.Request.Context(), id, &req, middleware.UserID(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusOK, question)
}

// DeleteQuestion removes a question and its metadata
// @Summary Delete question
// @Tags questions
// @Param id path uint true "Question ID"
// @Success 200 {object} Envelope
// @Router /questions/{id} [delete]
func (h *QuestionHandler) DeleteQuestion(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	h.LogRequest(c, "Deleting question", "question_id", id)

	if err := h.questionService.Delete(c.Request.Context(), id, middleware.UserID(c)); err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusOK, gin.H{"message": "Question deleted successfully"})
}

// ListQuestions lists questions with filtering
// @Summary List questions
// @Tags questions
// @Produce json
// @Param type query string false "Question type"
// @Param search query string false "Title search"
// @Param created_by query string false "Author id"
// @Param limit query int false "Page size"
// @Param offset query int false "Offset"
// @Router /questions [get]
func (h *QuestionHandler) ListQuestions(c *gin.Context) {
	filters := repositories.QuestionFilters{
		Search: strings.TrimSpace(c.Query("search")),
		Limit:  h.parseIntQuery(c, "limit", 20),
		Offset: h.parseIntQuery(c, "offset", 0),
	}
	if t := c.Query("type"); t != "" {
		qt := models.QuestionType(t)
		filters.Type = &qt
	}
	if author := c.Query("created_by"); author != "" {
		filters.CreatedBy = &author
	}

	questions, total, err := h.questionService.List(c.Request.Context(), filters)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.RespondWithSuccess(c, http.StatusOK, gin.H{
		"questions": questions,
		"total":     total,
		"limit":     filters.Limit,
		"offset":    filters.Offset,
	})
}

// RenderQuestion returns the respondent markup of one question. Query
// parameters are read as the respondent's current answers.
// @Summary Render question
// @Tags questions
// @Produce html
// @Param id path uint true "Question ID"
// @Router /questions/{id}/render [get]
func (h *QuestionHandler) RenderQuestion(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	view, err := h.questionService.Render(c.Request.Context(), id, c.Request.URL.Query())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	html, err := view.HTML()
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}
