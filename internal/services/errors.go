package services

import (
	"errors"
	"fmt"

	apperrors "github.com/SAP-F-2025/survey-service/internal/errors"
)

// ===== COMMON SERVICE ERRORS =====

var (
	// Generic errors
	ErrUnauthorized = errors.New("unauthorized access")
	ErrForbidden    = errors.New("forbidden - insufficient permissions")
	ErrBadRequest   = errors.New("bad request")

	// Question specific errors
	ErrQuestionNotFound    = errors.New("question not found")
	ErrQuestionInvalidType = errors.New("invalid question type")

	// Editor errors
	ErrDraftNotFound = errors.New("editor draft not found or expired")
	ErrUnknownEvent  = errors.New("unknown editor event")

	// Survey specific errors
	ErrSurveyNotFound        = errors.New("survey not found")
	ErrSurveyUnknownQuestion = errors.New("survey references an unknown question")
	ErrSurveyQuestionExists  = errors.New("question is already part of the survey")
	ErrInvalidNonce          = errors.New("security check failed")
	ErrInvalidAction         = errors.New("invalid action")
	ErrRequiredAnswerMissing = errors.New("required question not answered")
)

// ===== CUSTOM ERROR TYPES =====

// Use shared validation errors from errors package
type ValidationError = apperrors.ValidationError
type ValidationErrors = apperrors.ValidationErrors

// MsgRequiredAnswers is shown when a required question is left empty.
const MsgRequiredAnswers = "Please answer all required questions."

type BusinessRuleError struct {
	Rule    string                 `json:"rule"`
	Message string                 `json:"message"`
	Context map[string]interface{} `json:"context,omitempty"`
	Err     error                  `json:"-"`
}

func (bre *BusinessRuleError) Error() string {
	return fmt.Sprintf("business rule violation (%s): %s", bre.Rule, bre.Message)
}

func (bre *BusinessRuleError) Unwrap() error { return bre.Err }

type PermissionError struct {
	UserID     string `json:"user_id"`
	ResourceID uint   `json:"resource_id"`
	Resource   string `json:"resource"`
	Action     string `json:"action"`
	Reason     string `json:"reason"`
}

func (pe *PermissionError) Error() string {
	return fmt.Sprintf("permission denied: user %s cannot %s %s %d - %s",
		pe.UserID, pe.Action, pe.Resource, pe.ResourceID, pe.Reason)
}

func (pe *PermissionError) Unwrap() error { return ErrForbidden }

// ===== ERROR HELPERS =====

// NewValidationError creates a new validation error using the shared type
func NewValidationError(field, message string, value interface{}) *ValidationError {
	return apperrors.NewValidationError(field, message, value)
}

func NewPermissionError(userID string, resourceID uint, resource, action, reason string) *PermissionError {
	return &PermissionError{
		UserID:     userID,
		ResourceID: resourceID,
		Resource:   resource,
		Action:     action,
		Reason:     reason,
	}
}

// IsNotFound checks if error represents a "not found" condition
func IsNotFound(err error) bool {
	return errors.Is(err, ErrQuestionNotFound) ||
		errors.Is(err, ErrSurveyNotFound) ||
		errors.Is(err, ErrDraftNotFound)
}

// IsUnauthorized checks if error represents an "unauthorized" condition
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized) ||
		errors.Is(err, ErrInvalidNonce)
}

// IsForbidden checks if the caller is known but may not act on the resource
func IsForbidden(err error) bool {
	return errors.Is(err, ErrForbidden)
}

// IsValidation checks if error represents a validation failure
func IsValidation(err error) bool {
	if errors.Is(err, ErrQuestionInvalidType) ||
		errors.Is(err, ErrUnknownEvent) ||
		errors.Is(err, ErrInvalidAction) ||
		errors.Is(err, ErrBadRequest) {
		return true
	}
	var ve apperrors.ValidationErrors
	return errors.As(err, &ve)
}

// IsBusinessRule checks if error represents a business rule violation
func IsBusinessRule(err error) bool {
	var bre *BusinessRuleError
	return errors.As(err, &bre) ||
		errors.Is(err, ErrRequiredAnswerMissing) ||
		errors.Is(err, ErrSurveyUnknownQuestion)
}

// IsConflict checks if error represents a resource conflict
func IsConflict(err error) bool {
	return errors.Is(err, ErrSurveyQuestionExists)
}
