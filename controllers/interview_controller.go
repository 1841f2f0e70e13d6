package controllers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"intervuehub/db"
	"intervuehub/internal/session"
	"intervuehub/models"
)

var (
	sessionStore *session.Store
	rateLimiter  *session.RateLimiter
)

func InitInterviewController(store *session.Store, limiter *session.RateLimiter) {
	sessionStore = store
	rateLimiter = limiter
}

type startSessionRequest struct {
	PersonaID string `json:"persona_id" binding:"required"`
}

// StartInterviewSession opens a new live interview session with a persona
func StartInterviewSession(c *gin.Context) {
	var req startSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "persona_id is required"})
		return
	}

	if _, ok := personaService.Get(req.PersonaID); !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Persona not found"})
		return
	}

	sessionID, err := sessionStore.Create(req.PersonaID)
	if err != nil {
		log.Printf("Failed to create interview session: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create session"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"session_id": sessionID, "persona_id": req.PersonaID})
}

// GetSessionTranscript returns the turns recorded so far for a session
func GetSessionTranscript(c *gin.Context) {
	sessionID := c.Param("id")

	personaID, err := sessionStore.PersonaID(sessionID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return
	}

	turns, err := sessionStore.Turns(sessionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read transcript"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"session_id":      sessionID,
		"persona_id":      personaID,
		"interview_turns": turns,
	})
}

// GenerateSessionReport scores the transcript accumulated in a live session.
// Report generation is rate limited per session.
func GenerateSessionReport(c *gin.Context) {
	sessionID := c.Param("id")

	personaID, err := sessionStore.PersonaID(sessionID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return
	}

	limitConfig := session.DefaultRateLimitConfig()
	allowed, err := rateLimiter.CheckReportRateLimit(sessionID, limitConfig)
	if err != nil {
		log.Printf("Rate limit check failed for session %s: %v", sessionID, err)
	} else if !allowed {
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "Report limit reached for this session, try again shortly"})
		return
	}

	turns, err := sessionStore.Turns(sessionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read transcript"})
		return
	}

	input := models.FeedbackInput{
		PersonaID:      personaID,
		InterviewTurns: turns,
	}

	report, err := feedbackService.GenerateFeedback(c.Request.Context(), input)
	if err != nil {
		log.Printf("Session report generation failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate feedback report"})
		return
	}

	if err := rateLimiter.RecordReport(sessionID, limitConfig); err != nil {
		log.Printf("Failed to record report for rate limiting: %v", err)
	}
	if err := db.SaveFeedbackReport(sessionID, report); err != nil {
		log.Printf("Failed to save session report: %v", err)
	}

	c.JSON(http.StatusOK, report)
}

// EndInterviewSession discards a session's transcript and metadata
func EndInterviewSession(c *gin.Context) {
	sessionID := c.Param("id")
	if err := sessionStore.Delete(sessionID); err != nil {
		log.Printf("Failed to delete session %s: %v", sessionID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to end session"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"session_id": sessionID, "ended": true})
}
