package services

import (
	"strings"

	"intervuehub/models"
	"intervuehub/rubric"
)

// ValidateInterview screens a transcript for degenerate shapes before any
// scoring happens. It returns the user-facing edge-case message for the
// first failed check, or "" when the transcript is assessable. Expected
// conditions are reported as values, never as errors.
func ValidateInterview(turns []models.InterviewTurn) string {
	edge := rubric.EdgeCaseResponses()

	if len(turns) == 0 {
		return edge[rubric.EdgeEmptyTranscript]
	}

	var studentTurns, personaTurns []models.InterviewTurn
	for _, t := range turns {
		switch t.Speaker {
		case models.SpeakerStudent:
			studentTurns = append(studentTurns, t)
		case models.SpeakerPersona:
			personaTurns = append(personaTurns, t)
		}
	}

	if len(studentTurns) < 3 {
		return edge[rubric.EdgeTooShort]
	}
	if len(personaTurns) < 2 {
		return edge[rubric.EdgeOneSided]
	}

	// Light content checks: enough substance and a minimal question ratio.
	totalChars := 0
	contentTurns := 0
	questionLike := 0
	for _, t := range studentTurns {
		trimmed := strings.TrimSpace(t.Text)
		if len(trimmed) <= 3 {
			continue
		}
		contentTurns++
		totalChars += len(trimmed)
		if strings.Contains(t.Text, "?") {
			questionLike++
		}
	}

	denom := contentTurns
	if denom < 1 {
		denom = 1
	}
	if totalChars < 60 || float64(questionLike)/float64(denom) < 0.2 {
		return edge[rubric.EdgeOffTopic]
	}

	return ""
}
