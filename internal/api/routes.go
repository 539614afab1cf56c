package api

import (
	"github.com/gin-gonic/gin"

	"github.com/EHWIYA/adsp-quiz-back/internal/telemetry"
)

// SetupRoutes configures all API routes.
func SetupRoutes(router *gin.Engine, handler *Handler, tp *telemetry.Provider) {
	// Health and readiness checks
	router.GET("/health", handler.HealthCheck)
	router.GET("/ready", handler.ReadyCheck)

	if tp != nil {
		router.GET("/metrics", gin.WrapH(tp.Handler()))
	}

	v1 := router.Group("/api/v1")
	{
		// Auto-classification and review workflow
		coreContent := v1.Group("/core-content")
		{
			coreContent.POST("/auto", handler.AutoClassify)
			coreContent.GET("/pending", handler.ListPending)
			coreContent.POST("/runs/:id/approve", handler.Approve)
			coreContent.POST("/runs/:id/reject", handler.Reject)
			coreContent.GET("/settings", handler.GetSettings)
			coreContent.PUT("/settings", handler.UpdateSettings)
			coreContent.GET("/rules", handler.ListRules)
			coreContent.PUT("/rules", handler.UpsertRule)
		}

		// Taxonomy and direct content registration
		v1.GET("/main-topics/:id/sub-topics", handler.ListSubTopics)
		v1.GET("/sub-topics/:id/core-content", handler.GetCoreContent)
		v1.PUT("/sub-topics/:id/core-content", handler.RegisterCoreContent)
		v1.GET("/subjects", handler.ListSubjects)

		// Quiz generation
		quiz := v1.Group("/quiz")
		{
			quiz.POST("/generate", handler.GenerateQuiz)
			quiz.POST("/study", handler.GenerateStudyQuiz)
			quiz.GET("/:id", handler.GetQuiz)
		}

		// Exam sessions
		exam := v1.Group("/exam")
		{
			exam.POST("/answers", handler.SubmitAnswer)
			exam.GET("/results/:session_id", handler.GetExamResults)
		}

		// Wrong-answer note
		wrongAnswers := v1.Group("/wrong-answers")
		{
			wrongAnswers.POST("", handler.SaveWrongAnswer)
			wrongAnswers.GET("", handler.ListWrongAnswers)
			wrongAnswers.DELETE("/:quiz_id", handler.DeleteWrongAnswer)
		}
	}
}
