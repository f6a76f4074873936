package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/SAP-F-2025/survey-service/internal/middleware"
	"github.com/SAP-F-2025/survey-service/internal/services"
	"github.com/SAP-F-2025/survey-service/internal/utils"
	"github.com/gin-gonic/gin"
)

// ===== COMMON RESPONSE STRUCTURES =====

// Envelope wraps every response body
type Envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
}

// ErrorResponse is the data of a failed response
type ErrorResponse struct {
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ===== BASE HANDLER STRUCT =====

// BaseHandler provides common logging functionality for all handlers
type BaseHandler struct {
	logger utils.Logger
}

func NewBaseHandler(logger utils.Logger) BaseHandler {
	return BaseHandler{logger: logger}
}

// LogRequest logs incoming HTTP requests with context information
func (h *BaseHandler) LogRequest(c *gin.Context, message string, additionalFields ...interface{}) {
	fields := append(h.contextFields(c), "remote_addr", c.ClientIP())
	h.logger.Debug(message, append(fields, additionalFields...)...)
}

// LogError logs error details with context information
func (h *BaseHandler) LogError(c *gin.Context, err error, message string, additionalFields ...interface{}) {
	h.logger.LogError(err, message, append(h.contextFields(c), additionalFields...)...)
}

// LogWarn logs warning messages with context
func (h *BaseHandler) LogWarn(c *gin.Context, message string, additionalFields ...interface{}) {
	h.logger.Warn(message, append(h.contextFields(c), additionalFields...)...)
}

func (h *BaseHandler) contextFields(c *gin.Context) []interface{} {
	return []interface{}{
		"request_id", c.GetHeader(utils.RequestIDHeader),
		"user_id", middleware.UserID(c),
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
	}
}

// RespondWithError sends a consistent error response and logs it
func (h *BaseHandler) RespondWithError(c *gin.Context, statusCode int, message string, err error, details ...interface{}) {
	errorResp := ErrorResponse{Message: message}
	if len(details) > 0 {
		errorResp.Details = details[0]
	}

	if err != nil && statusCode >= http.StatusInternalServerError {
		h.LogError(c, err, message, "status_code", statusCode)
	} else {
		h.LogWarn(c, message, "status_code", statusCode, "error", err)
	}

	c.JSON(statusCode, Envelope{Success: false, Data: errorResp})
}

// RespondWithSuccess sends a consistent success response
func (h *BaseHandler) RespondWithSuccess(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, Envelope{Success: true, Data: data})
}

// handleServiceError maps service errors onto status codes and messages
func (h *BaseHandler) handleServiceError(c *gin.Context, err error) {
	var validationErrors services.ValidationErrors
	if errors.As(err, &validationErrors) {
		h.RespondWithError(c, http.StatusBadRequest, "Validation failed", err, validationErrors)
		return
	}

	var businessRuleError *services.BusinessRuleError
	if errors.As(err, &businessRuleError) {
		h.RespondWithError(c, http.StatusUnprocessableEntity, businessRuleError.Message, err, map[string]interface{}{
			"rule":    businessRuleError.Rule,
			"context": businessRuleError.Context,
		})
		return
	}

	var permissionError *services.PermissionError
	if errors.As(err, &permissionError) {
		h.RespondWithError(c, http.StatusForbidden, "Access denied", err, map[string]interface{}{
			"resource": permissionError.Resource,
			"action":   permissionError.Action,
			"reason":   permissionError.Reason,
		})
		return
	}

	switch {
	case errors.Is(err, services.ErrQuestionNotFound):
		h.RespondWithError(c, http.StatusNotFound, "Question not found", err)
	case errors.Is(err, services.ErrSurveyNotFound):
		h.RespondWithError(c, http.StatusNotFound, "Survey not found", err)
	case errors.Is(err, services.ErrDraftNotFound):
		h.RespondWithError(c, http.StatusNotFound, "Editor session expired. Please reopen the question.", err)
	case errors.Is(err, services.ErrInvalidNonce):
		h.RespondWithError(c, http.StatusForbidden, "Security check failed", err)
	case errors.Is(err, services.ErrInvalidAction):
		h.RespondWithError(c, http.StatusBadRequest, "Invalid action", err)
	case errors.Is(err, services.ErrQuestionInvalidType):
		h.RespondWithError(c, http.StatusBadRequest, "Invalid question type", err)
	case errors.Is(err, services.ErrUnknownEvent), errors.Is(err, services.ErrBadRequest):
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request", err, err.Error())
	case errors.Is(err, services.ErrSurveyQuestionExists):
		h.RespondWithError(c, http.StatusConflict, "Question is already part of the survey", err)
	case errors.Is(err, services.ErrSurveyUnknownQuestion):
		h.RespondWithError(c, http.StatusUnprocessableEntity, "Survey references an unknown question", err)
	case services.IsNotFound(err):
		h.RespondWithError(c, http.StatusNotFound, "Resource not found", err)
	case services.IsUnauthorized(err):
		h.RespondWithError(c, http.StatusUnauthorized, "Please log in to continue.", err)
	case services.IsConflict(err):
		h.RespondWithError(c, http.StatusConflict, "Resource conflict", err)
	default:
		h.RespondWithError(c, http.StatusInternalServerError, "An error occurred. Please try again.", err)
	}
}

func (h *BaseHandler) parseIDParam(c *gin.Context, param string) uint {
	id, err := strconv.ParseUint(c.Param(param), 10, 32)
	if err != nil || id == 0 {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid "+param, err)
		return 0
	}
	return uint(id)
}

func (h *BaseHandler) parseIntQuery(c *gin.Context, param string, defaultValue int) int {
	value, err := strconv.Atoi(c.Query(param))
	if err != nil {
		return defaultValue
	}
	return value
}

func (h *BaseHandler) sendWorkbook(c *gin.Context, filename string, data []byte) {
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, xlsxContentType, data)
}

// HealthCheck reports service liveness
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "survey-service",
	})
}
