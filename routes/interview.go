package routes

import (
	"github.com/gin-gonic/gin"

	"intervuehub/controllers"
	"intervuehub/websocket"
)

// SetupInterviewRoutes registers the live interview session endpoints
func SetupInterviewRoutes(router *gin.RouterGroup) {
	interview := router.Group("/interview")
	{
		interview.POST("/session", controllers.StartInterviewSession)
		interview.GET("/session/:id/transcript", controllers.GetSessionTranscript)
		interview.POST("/session/:id/report", controllers.GenerateSessionReport)
		interview.DELETE("/session/:id", controllers.EndInterviewSession)
		interview.GET("/ws", websocket.InterviewHandler)
	}
}
