package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// ParseStringIDParam reads a non-empty string path parameter. It writes the
// error response itself and returns "" when the parameter is blank.
func ParseStringIDParam(c *gin.Context, param string) string {
	idStr := strings.TrimSpace(c.Param(param))
	if idStr == "" {
		c.JSON(http.StatusBadRequest, Envelope{Data: ErrorResponse{
			Message: "Invalid " + param,
			Details: "ID cannot be empty",
		}})
		return ""
	}
	return idStr
}
