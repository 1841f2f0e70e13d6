package models

import (
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SpeakerRole identifies who produced an interview turn
type SpeakerRole string

const (
	SpeakerStudent SpeakerRole = "student"
	SpeakerPersona SpeakerRole = "persona"
	SpeakerSystem  SpeakerRole = "system"
)

// PerformanceLevel is an ordinal rating, Exemplary highest
type PerformanceLevel string

const (
	LevelExemplary        PerformanceLevel = "Exemplary"
	LevelProficient       PerformanceLevel = "Proficient"
	LevelDeveloping       PerformanceLevel = "Developing"
	LevelNeedsImprovement PerformanceLevel = "Needs Improvement"
)

// Rank maps a level to its position in the ordering, Needs Improvement = 1
func (l PerformanceLevel) Rank() int {
	switch l {
	case LevelExemplary:
		return 4
	case LevelProficient:
		return 3
	case LevelDeveloping:
		return 2
	default:
		return 1
	}
}

// InterviewTurn is one utterance in the transcript
type InterviewTurn struct {
	Speaker    SpeakerRole `json:"speaker" bson:"speaker" binding:"required"`
	Text       string      `json:"text" bson:"text" binding:"required"`
	Timestamp  *float64    `json:"timestamp,omitempty" bson:"timestamp,omitempty"`
	TurnNumber *int        `json:"turn_number,omitempty" bson:"turnNumber,omitempty"`
}

// Normalize trims the turn text and rejects turns that are empty after trimming
func (t *InterviewTurn) Normalize() error {
	t.Text = strings.TrimSpace(t.Text)
	if t.Text == "" {
		return errors.New("turn text cannot be empty")
	}
	return nil
}

// FeedbackInput is the payload consumed from the API boundary
type FeedbackInput struct {
	PersonaID       string                 `json:"persona_id" binding:"required"`
	InterviewTurns  []InterviewTurn        `json:"interview_turns"`
	SessionMetadata map[string]interface{} `json:"session_metadata,omitempty"`
}

// CategoryScore is the scored result for one rubric category
type CategoryScore struct {
	CategoryID  string           `json:"category_id" bson:"categoryId"`
	Score       int              `json:"score" bson:"score"`
	Level       PerformanceLevel `json:"level" bson:"level"`
	Weight      int              `json:"weight" bson:"weight"`
	Description string           `json:"description" bson:"description"`
	Evidence    []string         `json:"evidence" bson:"evidence"`
	Suggestions []string         `json:"suggestions" bson:"suggestions"`
}

// QuoteHighlight is a notable transcript moment picked out by the analyzer
type QuoteHighlight struct {
	Quote       string `json:"quote" bson:"quote"`
	Context     string `json:"context" bson:"context"`
	TurnNumber  int    `json:"turn_number" bson:"turnNumber"`
	Category    string `json:"category" bson:"category"`
	IsPositive  bool   `json:"is_positive" bson:"isPositive"`
	Explanation string `json:"explanation" bson:"explanation"`
}

// FeedbackReport is the complete assessment returned to the caller
type FeedbackReport struct {
	GeneratedAt     time.Time                `json:"generated_at" bson:"generatedAt"`
	PersonaID       string                   `json:"persona_id" bson:"personaId"`
	TotalTurns      int                      `json:"total_turns" bson:"totalTurns"`
	DurationSeconds *float64                 `json:"duration_seconds,omitempty" bson:"durationSeconds,omitempty"`
	Scores          map[string]CategoryScore `json:"scores" bson:"scores"`
	OverallScore    float64                  `json:"overall_score" bson:"overallScore"`
	OverallLevel    PerformanceLevel         `json:"overall_level" bson:"overallLevel"`
	OverallSummary  string                   `json:"overall_summary" bson:"overallSummary"`
	Strengths       []string                 `json:"strengths" bson:"strengths"`
	Improvements    []string                 `json:"improvements" bson:"improvements"`
	QuoteHighlights []QuoteHighlight         `json:"quote_highlights" bson:"quoteHighlights"`
	Rubric          map[string][]string      `json:"rubric" bson:"rubric"`
	AnalysisMethod  string                   `json:"analysis_method" bson:"analysisMethod"`
	ConfidenceScore float64                  `json:"confidence_score" bson:"confidenceScore"`
}

// RubricCategory is one scored dimension with its weight and level anchors
type RubricCategory struct {
	ID          string                      `json:"id"`
	Name        string                      `json:"name"`
	Weight      int                         `json:"weight"`
	Description string                      `json:"description"`
	Anchors     map[PerformanceLevel]string `json:"anchors"`
	Keywords    []string                    `json:"keywords"`
}

// SavedFeedbackReport is a generated report persisted for later viewing
type SavedFeedbackReport struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	SessionID string             `json:"sessionId" bson:"sessionId"`
	PersonaID string             `json:"personaId" bson:"personaId"`
	Report    FeedbackReport     `json:"report" bson:"report"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
}
