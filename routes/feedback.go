package routes

import (
	"github.com/gin-gonic/gin"

	"intervuehub/controllers"
)

// SetupFeedbackRoutes registers the feedback scoring and export endpoints
func SetupFeedbackRoutes(router *gin.RouterGroup) {
	feedback := router.Group("/feedback")
	{
		feedback.POST("/report", controllers.GenerateFeedbackReport)
		feedback.GET("/rubric", controllers.GetScoringRubric)
		feedback.POST("/report/export/:format", controllers.ExportFeedbackReport)
		feedback.GET("/reports", controllers.ListSavedReports)
	}
}
