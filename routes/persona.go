package routes

import (
	"github.com/gin-gonic/gin"

	"intervuehub/controllers"
)

// SetupPersonaRoutes registers the persona catalog endpoints
func SetupPersonaRoutes(router *gin.RouterGroup) {
	persona := router.Group("/persona")
	{
		persona.GET("/list", controllers.ListPersonas)
		persona.GET("/:id", controllers.GetPersona)
	}
}
