package api

import (
	"github.com/gin-gonic/gin"

	"github.com/shangobashi/NoteSquared-C/internal/auth"
)

func SetupRoutes(router *gin.Engine, handler *Handler, tokens *auth.TokenManager) {
	// Health check
	router.GET("/health", handler.HealthCheck)

	v1 := router.Group("/v1")
	{
		// Public routes
		v1.POST("/auth/register", handler.Register)
		v1.POST("/auth/login", handler.Login)
		v1.GET("/students/instruments", handler.GetInstruments)

		// Authenticated routes
		authed := v1.Group("", AuthMiddleware(tokens))
		{
			authed.GET("/auth/me", handler.GetMe)

			authed.POST("/students", handler.CreateStudent)
			authed.GET("/students", handler.ListStudents)
			authed.POST("/students/import", handler.ImportRoster)
			authed.GET("/students/:student_id", handler.GetStudent)
			authed.PATCH("/students/:student_id", handler.UpdateStudent)
			authed.POST("/students/:student_id/archive", handler.ArchiveStudent)
			authed.POST("/students/:student_id/unarchive", handler.UnarchiveStudent)

			authed.POST("/lessons", handler.CreateLesson)
			authed.GET("/lessons", handler.ListLessons)
			authed.GET("/lessons/:lesson_id", handler.GetLesson)
			authed.GET("/lessons/:lesson_id/status", handler.GetLessonStatus)
			authed.POST("/lessons/:lesson_id/upload", handler.UploadAudio)
			authed.POST("/lessons/:lesson_id/process", handler.ProcessLesson)

			authed.GET("/outputs/:output_id", handler.GetOutput)
			authed.PATCH("/outputs/:output_id", handler.UpdateOutput)
			authed.POST("/outputs/:output_id/share", handler.ShareOutput)
			authed.POST("/outputs/:output_id/revert", handler.RevertOutput)
		}
	}
}
