package handlers

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/SAP-F-2025/survey-service/internal/middleware"
	"github.com/SAP-F-2025/survey-service/internal/models"
	"github.com/SAP-F-2025/survey-service/internal/repositories"
	"github.com/SAP-F-2025/survey-service/internal/services"
	"github.com/SAP-F-2025/survey-service/internal/utils"
	"github.com/gin-gonic/gin"
)

type SetQuestionsRequest struct {
	QuestionIDs []uint `json:"question_ids" binding:"required"`
}

type SurveyHandler struct {
	BaseHandler
	surveyService   services.SurveyService
	responseService services.ResponseService
	exportService   services.ExportService
}

func NewSurveyHandler(
	surveyService services.SurveyService,
	responseService services.ResponseService,
	exportService services.ExportService,
	logger utils.Logger,
) *SurveyHandler {
	return &SurveyHandler{
		BaseHandler:     NewBaseHandler(logger),
		surveyService:   surveyService,
		responseService: responseService,
		exportService:   exportService,
	}
}

// ===== AUTHORING =====

// CreateSurvey creates a survey
// @Summary Create survey
// @Tags surveys
// @Accept json
// @Produce json
// @Param survey body models.Survey true "Survey data"
// @Success 201 {object} Envelope{data=models.Survey}
// @Router /surveys [post]
func (h *SurveyHandler) CreateSurvey(c *gin.Context) {
	var req models.Survey
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request payload", err, err.Error())
		return
	}

	survey, err := h.surveyService.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.RespondWithSuccess(c, http.StatusCreated, survey)
}

// UpdateSurvey changes the survey's title, modules and success message
// @Summary Update survey
// @Tags surveys
// @Accept json
// @Produce json
// @Param id path uint true "Survey ID"
// @Param survey body models.Survey true "Survey data"
// @Success 200 {object} Envelope{data=models.Survey}
// @Router /surveys/{id} [put]
func (h *SurveyHandler) UpdateSurvey(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	var req models.Survey
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request payload", err, err.Error())
		return
	}

	survey, err := h.surveyService.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, survey)
}

// DeleteSurvey removes a survey
// @Summary Delete survey
// @Tags surveys
// @Param id path uint true "Survey ID"
// @Router /surveys/{id} [delete]
func (h *SurveyHandler) DeleteSurvey(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	if err := h.surveyService.Delete(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, gin.H{"message": "Survey deleted successfully"})
}

// AddQuestion appends a question to the survey
// @Summary Add survey question
// @Tags surveys
// @Param id path uint true "Survey ID"
// @Param question_id path uint true "Question ID"
// @Router /surveys/{id}/questions/{question_id} [post]
func (h *SurveyHandler) AddQuestion(c *gin.Context) {
	surveyID := h.parseIDParam(c, "id")
	if surveyID == 0 {
		return
	}
	questionID := h.parseIDParam(c, "question_id")
	if questionID == 0 {
		return
	}

	if err := h.surveyService.AddQuestion(c.Request.Context(), surveyID, questionID); err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.RespondWithSuccess(c, http.StatusCreated, gin.H{"survey_id": surveyID, "question_id": questionID})
}

// RemoveQuestion detaches a question from the survey
// @Summary Remove survey question
// @Tags surveys
// @Param id path uint true "Survey ID"
// @Param question_id path uint true "Question ID"
// @Router /surveys/{id}/questions/{question_id} [delete]
func (h *SurveyHandler) RemoveQuestion(c *gin.Context) {
	surveyID := h.parseIDParam(c, "id")
	if surveyID == 0 {
		return
	}
	questionID := h.parseIDParam(c, "question_id")
	if questionID == 0 {
		return
	}

	if err := h.surveyService.RemoveQuestion(c.Request.Context(), surveyID, questionID); err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, gin.H{"survey_id": surveyID, "question_id": questionID})
}

// SetQuestions replaces the survey's ordered question list
// @Summary Set survey questions
// @Tags surveys
// @Accept json
// @Param id path uint true "Survey ID"
// @Param questions body SetQuestionsRequest true "Ordered question ids"
// @Router /surveys/{id}/questions [put]
func (h *SurveyHandler) SetQuestions(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	var req SetQuestionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request payload", err, err.Error())
		return
	}

	if err := h.surveyService.SetQuestions(c.Request.Context(), id, req.QuestionIDs); err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, gin.H{"survey_id": id, "question_ids": req.QuestionIDs})
}

// ExportSurvey downloads the survey's questions as a workbook
// @Summary Export survey questions
// @Tags surveys
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param id path uint true "Survey ID"
// @Router /surveys/{id}/export [get]
func (h *SurveyHandler) ExportSurvey(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	data, err := h.exportService.ExportSurveyQuestions(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.sendWorkbook(c, fmt.Sprintf("survey-%d-questions.xlsx", id), data)
}

// ===== RESPONDENT =====

// SurveyResponse is a survey with its questions in order
type SurveyResponse struct {
	Survey    *models.Survey    `json:"survey"`
	Questions []models.Question `json:"questions"`
}

// GetSurvey returns the survey and its ordered questions
// @Summary Get survey
// @Tags survey
// @Produce json
// @Param id path uint true "Survey ID"
// @Success 200 {object} Envelope{data=SurveyResponse}
// @Router /surveys/{id} [get]
func (h *SurveyHandler) GetSurvey(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	survey, questions, err := h.surveyService.Questions(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, SurveyResponse{Survey: survey, Questions: questions})
}

// GetForm returns the respondent form markup
// @Summary Survey form
// @Tags survey
// @Produce html
// @Param id path uint true "Survey ID"
// @Router /surveys/{id}/form [get]
func (h *SurveyHandler) GetForm(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	form, err := h.surveyService.Form(c.Request.Context(), id, middleware.Token(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	html, err := form.HTML()
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}

// IssueNonce hands out an anti-forgery nonce for one action
// @Summary Issue nonce
// @Tags survey
// @Produce json
// @Param action query string true "submit_survey or get_survey_responses"
// @Router /survey/nonce [get]
func (h *SurveyHandler) IssueNonce(c *gin.Context) {
	nonce, err := h.surveyService.IssueNonce(c.Request.Context(), c.Query("action"), middleware.UserID(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, gin.H{"nonce": nonce})
}

// Submit stores the respondent's answers
// @Summary Submit survey
// @Tags survey
// @Accept x-www-form-urlencoded
// @Produce json
// @Success 200 {object} Envelope{data=services.SubmitResult}
// @Router /survey/submit [post]
func (h *SurveyHandler) Submit(c *gin.Context) {
	form, ok := h.parseForm(c)
	if !ok {
		return
	}
	userID := middleware.UserID(c)

	if err := h.checkAction(c, form, services.ActionSubmitSurvey, userID); err != nil {
		h.handleServiceError(c, err)
		return
	}

	surveyID, err := strconv.ParseUint(form.Get("survey_id"), 10, 32)
	if err != nil || surveyID == 0 {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid survey_id", err)
		return
	}

	h.LogRequest(c, "Submitting survey", "survey_id", surveyID)

	result, err := h.surveyService.Submit(c.Request.Context(), services.SubmitRequest{
		SurveyID:     uint(surveyID),
		RespondentID: userID,
		Values:       form,
	})
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, result)
}

// ListResponses returns the respondent's stored answers
// @Summary List my responses
// @Tags survey
// @Accept x-www-form-urlencoded
// @Produce json
// @Success 200 {object} Envelope{data=[]models.ResponseRecord}
// @Router /survey/responses [post]
func (h *SurveyHandler) ListResponses(c *gin.Context) {
	form, ok := h.parseForm(c)
	if !ok {
		return
	}
	userID := middleware.UserID(c)

	if err := h.checkAction(c, form, services.ActionGetResponses, userID); err != nil {
		h.handleServiceError(c, err)
		return
	}

	records, err := h.responseService.ListForRespondent(c.Request.Context(), userID, repositories.ResponseFilters{})
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, records)
}

// ExportResponses downloads the respondent's grouped answers
// @Summary Export my responses
// @Tags survey
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Router /survey/responses/export [get]
func (h *SurveyHandler) ExportResponses(c *gin.Context) {
	data, err := h.exportService.ExportResponses(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.sendWorkbook(c, "survey-responses.xlsx", data)
}

func (h *SurveyHandler) parseForm(c *gin.Context) (url.Values, bool) {
	if err := c.Request.ParseForm(); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid form payload", err)
		return nil, false
	}
	return c.Request.PostForm, true
}

// checkAction verifies the posted action name and its nonce
func (h *SurveyHandler) checkAction(c *gin.Context, form url.Values, action, userID string) error {
	if form.Get("action") != action {
		return services.ErrInvalidAction
	}
	return h.surveyService.VerifyNonce(c.Request.Context(), action, userID, form.Get("nonce"))
}
