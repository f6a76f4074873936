package handlers

import (
	"github.com/SAP-F-2025/survey-service/internal/auth"
	"github.com/SAP-F-2025/survey-service/internal/middleware"
	"github.com/SAP-F-2025/survey-service/internal/services"
	"github.com/SAP-F-2025/survey-service/internal/utils"
	"github.com/gin-gonic/gin"
)

type HandlerManager struct {
	questionHandler *QuestionHandler
	editorHandler   *EditorHandler
	surveyHandler   *SurveyHandler

	verifier      *auth.Verifier
	submitLimiter *middleware.IPRateLimiter
}

func NewHandlerManager(
	serviceManager services.ServiceManager,
	verifier *auth.Verifier,
	submitLimiter *middleware.IPRateLimiter,
	logger utils.Logger,
) *HandlerManager {
	return &HandlerManager{
		questionHandler: NewQuestionHandler(serviceManager.Question(), logger),
		editorHandler:   NewEditorHandler(serviceManager.Editor(), logger),
		surveyHandler: NewSurveyHandler(
			serviceManager.Survey(),
			serviceManager.Response(),
			serviceManager.Export(),
			logger,
		),
		verifier:      verifier,
		submitLimiter: submitLimiter,
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	router.GET("/health", HealthCheck)

	v1 := router.Group("/api/v1")
	v1.Use(middleware.AuthJWT(hm.verifier))
	{
		author := v1.Group("", middleware.RequireRole(auth.RoleAuthor))

		// Question routes
		questions := author.Group("/questions")
		{
			questions.POST("", hm.questionHandler.CreateQuestion)
			questions.GET("", hm.questionHandler.ListQuestions)
			questions.GET("/:id", hm.questionHandler.GetQuestion)
			questions.PUT("/:id", hm.questionHandler.UpdateQuestion)
			questions.DELETE("/:id", hm.questionHandler.DeleteQuestion)
			questions.GET("/:id/render", hm.questionHandler.RenderQuestion)

			// Authoring drafts
			questions.POST("/editor", hm.editorHandler.OpenBlankEditor)
			questions.POST("/:id/editor", hm.editorHandler.OpenEditor)
		}

		editor := author.Group("/editor")
		{
			editor.POST("/:draft_id/events", hm.editorHandler.DispatchEvent)
			editor.POST("/:draft_id/save", hm.editorHandler.SaveDraft)
			editor.DELETE("/:draft_id", hm.editorHandler.DiscardDraft)
		}

		// Survey routes
		surveys := v1.Group("/surveys")
		{
			surveys.POST("", middleware.RequireRole(auth.RoleAuthor), hm.surveyHandler.CreateSurvey)
			surveys.PUT("/:id", middleware.RequireRole(auth.RoleAuthor), hm.surveyHandler.UpdateSurvey)
			surveys.DELETE("/:id", middleware.RequireRole(auth.RoleAuthor), hm.surveyHandler.DeleteSurvey)
			surveys.PUT("/:id/questions", middleware.RequireRole(auth.RoleAuthor), hm.surveyHandler.SetQuestions)
			surveys.POST("/:id/questions/:question_id", middleware.RequireRole(auth.RoleAuthor), hm.surveyHandler.AddQuestion)
			surveys.DELETE("/:id/questions/:question_id", middleware.RequireRole(auth.RoleAuthor), hm.surveyHandler.RemoveQuestion)
			surveys.GET("/:id/export", middleware.RequireRole(auth.RoleAuthor), hm.surveyHandler.ExportSurvey)
			surveys.GET("/:id", hm.surveyHandler.GetSurvey)
			surveys.GET("/:id/form", hm.surveyHandler.GetForm)
		}

		// Respondent routes
		survey := v1.Group("/survey")
		{
			survey.GET("/nonce", hm.surveyHandler.IssueNonce)
			survey.POST("/submit", middleware.RateLimitByIP(hm.submitLimiter), hm.surveyHandler.Submit)
			survey.POST("/responses", hm.surveyHandler.ListResponses)
			survey.GET("/responses/export", hm.surveyHandler.ExportResponses)
		}
	}
}
