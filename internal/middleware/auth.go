package middleware

import (
	"net/http"
	"slices"
	"strings"

	"github.com/SAP-F-2025/survey-service/internal/auth"
	"github.com/gin-gonic/gin"
)

const (
	CtxUserID = "user_id"
	CtxRole   = "user_role"
	CtxToken  = "user_token"
)

// AuthJWT accepts a bearer token or, for form posts, a "token" field, and
// stores the caller's id and role in the context.
func AuthJWT(verifier *auth.Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := bearerToken(c.GetHeader("Authorization"))
		if raw == "" {
			raw = c.PostForm("token")
		}
		if raw == "" {
			abort(c, http.StatusUnauthorized, "Please log in to continue.")
			return
		}

		claims, err := verifier.Verify(raw)
		if err != nil {
			abort(c, http.StatusUnauthorized, "Invalid token")
			return
		}

		c.Set(CtxUserID, claims.UserID)
		c.Set(CtxRole, claims.Role)
		c.Set(CtxToken, raw)
		c.Next()
	}
}

// RequireRole lets through callers holding one of roles.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !slices.Contains(roles, c.GetString(CtxRole)) {
			abort(c, http.StatusForbidden, "Forbidden")
			return
		}
		c.Next()
	}
}

// UserID returns the authenticated caller, empty when there is none.
func UserID(c *gin.Context) string {
	return c.GetString(CtxUserID)
}

// Token returns the raw token the caller authenticated with.
func Token(c *gin.Context) string {
	return c.GetString(CtxToken)
}

func bearerToken(header string) string {
	if len(header) < 7 || !strings.EqualFold(header[:7], "bearer ") {
		return ""
	}
	return strings.TrimSpace(header[7:])
}

func abort(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{
		"success": false,
		"data":    gin.H{"message": message},
	})
}
