package controllers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"intervuehub/db"
	"intervuehub/models"
	"intervuehub/rubric"
	"intervuehub/services"
)

var feedbackService *services.FeedbackService

// InitFeedbackController wires the shared feedback service into the
// handlers. The service itself is stateless.
func InitFeedbackController(svc *services.FeedbackService) {
	feedbackService = svc
}

// GenerateFeedbackReport scores a submitted transcript and returns the
// full feedback report.
func GenerateFeedbackReport(c *gin.Context) {
	var input models.FeedbackInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload: " + err.Error()})
		return
	}

	for i := range input.InterviewTurns {
		if err := input.InterviewTurns[i].Normalize(); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	log.Printf("Generating feedback for persona %s with %d turns", input.PersonaID, len(input.InterviewTurns))

	report, err := feedbackService.GenerateFeedback(c.Request.Context(), input)
	if err != nil {
		log.Printf("Feedback generation failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate feedback report"})
		return
	}

	log.Printf("Feedback generated successfully. Overall score: %.2f", report.OverallScore)

	// Persist a copy when a session id was provided; failure to save
	// never fails the request.
	if sessionID, ok := input.SessionMetadata["session_id"].(string); ok && sessionID != "" {
		if err := db.SaveFeedbackReport(sessionID, report); err != nil {
			log.Printf("Failed to save feedback report: %v", err)
		}
	}

	c.JSON(http.StatusOK, report)
}

// GetScoringRubric returns the categories, weights, and level anchors used
// for evaluation.
func GetScoringRubric(c *gin.Context) {
	categories := make([]gin.H, 0, 7)
	for _, cat := range rubric.DefaultRubric() {
		anchors := make(map[string]string, len(cat.Anchors))
		for level, anchor := range cat.Anchors {
			anchors[string(level)] = anchor
		}
		categories = append(categories, gin.H{
			"id":          cat.ID,
			"name":        cat.Name,
			"weight":      cat.Weight,
			"description": cat.Description,
			"anchors":     anchors,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"categories":         categories,
		"performance_levels": rubric.Levels(),
		"scoring_scale":      gin.H{"min": 1, "max": 4},
	})
}

// ExportFeedbackReport renders a previously generated report as json,
// html, or markdown.
func ExportFeedbackReport(c *gin.Context) {
	format := c.Param("format")

	var report models.FeedbackReport
	if err := c.ShouldBindJSON(&report); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid report payload: " + err.Error()})
		return
	}

	switch format {
	case "json":
		c.JSON(http.StatusOK, report)
	case "html":
		c.JSON(http.StatusOK, gin.H{"html": services.RenderHTMLReport(report)})
	case "markdown":
		c.JSON(http.StatusOK, gin.H{"markdown": services.RenderMarkdownReport(report)})
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unsupported export format: " + format})
	}
}

// ListSavedReports returns persisted reports for a persona
func ListSavedReports(c *gin.Context) {
	personaID := c.Query("personaId")
	if personaID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "personaId is required"})
		return
	}

	reports, err := db.GetReportsByPersona(personaID, 20)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch reports"})
		return
	}
	c.JSON(http.StatusOK, reports)
}

// FeedbackHealthCheck reports whether the feedback service is operational
func FeedbackHealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service":           "feedback",
		"status":            "healthy",
		"rubric_categories": len(rubric.DefaultRubric()),
		"analysis_methods":  []string{"rule-based", "llm", "hybrid"},
	})
}
