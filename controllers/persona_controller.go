package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"intervuehub/services"
)

var personaService *services.PersonaService

func InitPersonaController(svc *services.PersonaService) {
	personaService = svc
}

// ListPersonas returns every persona available for interview practice
func ListPersonas(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"personas": personaService.List()})
}

// GetPersona returns a single persona by id
func GetPersona(c *gin.Context) {
	persona, ok := personaService.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Persona not found"})
		return
	}
	c.JSON(http.StatusOK, persona)
}
