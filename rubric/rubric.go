// Package rubric holds the static interview assessment rubric: weighted
// categories with performance-level anchors, the percentage thresholds for
// each level, and the canned responses for degenerate transcripts.
package rubric

import "intervuehub/models"

// Edge case keys returned by validation
const (
	EdgeEmptyTranscript = "empty_transcript"
	EdgeTooShort        = "too_short"
	EdgeOffTopic        = "off_topic"
	EdgeOneSided        = "one_sided"
	EdgeTechnicalIssue  = "technical_issue"
)

// DefaultRubric returns the seven assessment categories in display order.
// Weights sum to 100.
func DefaultRubric() []models.RubricCategory {
	return []models.RubricCategory{
		{
			ID:          "introduction_rapport",
			Name:        "Introduction & Rapport",
			Weight:      15,
			Description: "Opening, clarity, professionalism, ease/comfort for interviewee",
			Anchors: map[models.PerformanceLevel]string{
				models.LevelExemplary:        "Professional, clear, and friendly opening that immediately puts interviewee at ease. Sets clear expectations and builds strong rapport.",
				models.LevelProficient:       "Polite and professional opening. Sets expectations and builds some comfort with the interviewee.",
				models.LevelDeveloping:       "Somewhat rushed or unclear introduction. Minimal rapport building attempted.",
				models.LevelNeedsImprovement: "Abrupt or impersonal introduction. Interviewee appears uneasy or confused about the purpose.",
			},
			Keywords: []string{"hello", "introduce", "thank you for", "purpose", "appreciate", "comfortable", "questions"},
		},
		{
			ID:          "question_quality",
			Name:        "Question Quality",
			Weight:      20,
			Description: "Open-endedness, neutrality, adaptability, probing depth",
			Anchors: map[models.PerformanceLevel]string{
				models.LevelExemplary:        "Consistently asks open-ended, neutral, and unbiased questions. Adapts questions based on responses and probes deeply for rich insights.",
				models.LevelProficient:       "Most questions are open-ended and neutral. Shows some ability to probe when prompted by responses.",
				models.LevelDeveloping:       "Mix of open and closed questions. Some leading questions present. Misses opportunities for deeper exploration.",
				models.LevelNeedsImprovement: "Mostly yes/no or leading questions. Lacks depth and fails to explore interesting responses.",
			},
			Keywords: []string{"tell me", "describe", "explain", "how", "what", "why", "could you", "elaborate", "more about"},
		},
		{
			ID:          "active_listening",
			Name:        "Active Listening & Follow-ups",
			Weight:      20,
			Description: "Attentive listening, follow-ups, empathy",
			Anchors: map[models.PerformanceLevel]string{
				models.LevelExemplary:        "Demonstrates exceptional listening through relevant follow-ups, clarifying questions, and empathetic responses. Never interrupts.",
				models.LevelProficient:       "Shows good listening skills with occasional follow-up questions. Rarely interrupts.",
				models.LevelDeveloping:       "Some evidence of listening but misses cues for deeper exploration. Occasional interruptions.",
				models.LevelNeedsImprovement: "Frequently interrupts or dominates conversation. Fails to follow up on important points.",
			},
			Keywords: []string{"I see", "understand", "that must", "sounds like", "clarify", "you mentioned", "earlier you said"},
		},
		{
			ID:          "question_sequence",
			Name:        "Question Sequence (Funnel)",
			Weight:      15,
			Description: "Logical flow, smooth transitions, broad-to-specific",
			Anchors: map[models.PerformanceLevel]string{
				models.LevelExemplary:        "Perfect funnel technique - moves smoothly from general to specific. Transitions are seamless and logical.",
				models.LevelProficient:       "Generally logical flow with minor jumps. Most transitions are smooth.",
				models.LevelDeveloping:       "Some illogical jumps in topics. Transitions can be abrupt or unclear.",
				models.LevelNeedsImprovement: "No clear sequence. Questions appear random or repetitive.",
			},
			Keywords: []string{"moving on", "next", "related to", "building on", "let's shift", "another area"},
		},
		{
			ID:          "communication",
			Name:        "Communication",
			Weight:      10,
			Description: "Clarity, confidence, engagement",
			Anchors: map[models.PerformanceLevel]string{
				models.LevelExemplary:        "Clear, confident, and engaging communication. No filler words or awkward pauses. Varied tone maintains interest.",
				models.LevelProficient:       "Generally clear communication with occasional lapses. Some filler words but maintains professionalism.",
				models.LevelDeveloping:       "Inconsistent clarity. Noticeable filler words or awkward pauses. Monotone delivery.",
				models.LevelNeedsImprovement: "Unclear or mumbled speech. Excessive filler words. Lacks confidence.",
			},
			// Negative indicators
			Keywords: []string{"um", "uh", "like", "you know", "basically", "actually"},
		},
		{
			ID:          "respect_comfort",
			Name:        "Respect & Comfort",
			Weight:      10,
			Description: "Respect, consent, comfort, adaptability",
			Anchors: map[models.PerformanceLevel]string{
				models.LevelExemplary:        "Consistently ensures interviewee comfort. Asks for consent, checks in regularly, adapts approach based on responses.",
				models.LevelProficient:       "Generally respectful and polite. Checks comfort at least once during interview.",
				models.LevelDeveloping:       "Basic politeness but misses signals of discomfort. Rarely checks in with interviewee.",
				models.LevelNeedsImprovement: "Disregards comfort. Pushes through despite signs of unease or reluctance.",
			},
			Keywords: []string{"comfortable", "okay to ask", "take your time", "no pressure", "skip", "prefer not"},
		},
		{
			ID:          "wrapup_closure",
			Name:        "Wrap-up & Closure",
			Weight:      10,
			Description: "Graceful closing, thanks, final input invitation",
			Anchors: map[models.PerformanceLevel]string{
				models.LevelExemplary:        "Graceful closing that thanks participant, summarizes key points, and invites final thoughts. Leaves positive impression.",
				models.LevelProficient:       "Appropriate ending with thanks. Some attempt to invite final input.",
				models.LevelDeveloping:       "Abrupt or weak closing. Misses opportunity for final input.",
				models.LevelNeedsImprovement: "Ends suddenly without thanks or closure. Leaves interviewee confused.",
			},
			Keywords: []string{"thank you", "appreciate", "final thoughts", "anything else", "add", "covered everything", "time"},
		},
	}
}

// Levels returns all performance levels from highest to lowest.
func Levels() []models.PerformanceLevel {
	return []models.PerformanceLevel{
		models.LevelExemplary,
		models.LevelProficient,
		models.LevelDeveloping,
		models.LevelNeedsImprovement,
	}
}

// ScoreRange is an inclusive percentage band for one performance level.
type ScoreRange struct {
	Min int
	Max int
}

// ScoreThresholds maps each performance level to its percentage band.
func ScoreThresholds() map[models.PerformanceLevel]ScoreRange {
	return map[models.PerformanceLevel]ScoreRange{
		models.LevelExemplary:        {Min: 90, Max: 100},
		models.LevelProficient:       {Min: 70, Max: 89},
		models.LevelDeveloping:       {Min: 50, Max: 69},
		models.LevelNeedsImprovement: {Min: 0, Max: 49},
	}
}

// LevelForPercentage converts a 0-100 percentage into a performance level.
func LevelForPercentage(pct float64) models.PerformanceLevel {
	switch {
	case pct >= 90:
		return models.LevelExemplary
	case pct >= 70:
		return models.LevelProficient
	case pct >= 50:
		return models.LevelDeveloping
	default:
		return models.LevelNeedsImprovement
	}
}

// EdgeCaseResponses returns the user-facing message for each degenerate
// transcript case.
func EdgeCaseResponses() map[string]string {
	return map[string]string{
		EdgeEmptyTranscript: "I didn't hear anything in this interview. Please ensure your microphone is working and try again.",
		EdgeTooShort:        "This interview appears too brief for meaningful assessment. Please conduct a longer interview with at least 5-6 exchanges.",
		EdgeOffTopic:        "The conversation seems to have gone off-topic. Please focus on interviewing the persona about their background and experiences.",
		EdgeOneSided:        "This appears to be a one-sided conversation. Remember to ask questions and allow the interviewee to respond.",
		EdgeTechnicalIssue:  "There seems to be a technical issue with the recording. Please check your setup and try again.",
	}
}
