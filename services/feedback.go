package services

import (
	"context"
	"log"
	"sort"
	"sync"
	"time"

	"intervuehub/models"
	"intervuehub/rubric"
)

const (
	silenceThresholdSeconds = 30.0
	silenceWarning          = "There was a long pause in the interview. Please continue speaking to maintain engagement."
)

// FeedbackService orchestrates validation, rule-based scoring, and LLM
// analysis into a single feedback report. Every predictable defect in the
// input yields a complete report rather than an error; only genuinely
// unexpected failures propagate.
type FeedbackService struct {
	scoring  *ScoringEngine
	analyzer *LLMAnalyzer
	edge     map[string]string
}

func NewFeedbackService(analyzer *LLMAnalyzer) *FeedbackService {
	return &FeedbackService{
		scoring:  NewScoringEngine(),
		analyzer: analyzer,
		edge:     rubric.EdgeCaseResponses(),
	}
}

// GenerateFeedback produces the full report for one interview.
func (s *FeedbackService) GenerateFeedback(ctx context.Context, input models.FeedbackInput) (models.FeedbackReport, error) {
	if msg := ValidateInterview(input.InterviewTurns); msg != "" {
		return s.errorReport(msg, input), nil
	}

	turns := sortTurns(input.InterviewTurns)

	var studentTurns []models.InterviewTurn
	for _, t := range turns {
		if t.Speaker == models.SpeakerStudent {
			studentTurns = append(studentTurns, t)
		}
	}
	silence := checkForSilence(studentTurns)

	var duration *float64
	if len(turns) > 0 && turns[0].Timestamp != nil && turns[len(turns)-1].Timestamp != nil {
		d := *turns[len(turns)-1].Timestamp - *turns[0].Timestamp
		if d < 0 {
			d = 0
		}
		duration = &d
	}

	scores, err := s.scoring.ScoreInterview(turns)
	if err != nil {
		// Scoring failures past validation are absorbed with scaffold
		// scores; the report must still come out complete.
		log.Printf("Scoring engine failed, substituting scaffold scores: %v", err)
		scores = scaffoldScores()
	}

	overallScore := calculateOverallScore(scores)
	overallLevel := scoreToOverallLevel(overallScore)

	// The three analyses are independent; run them concurrently, each
	// with its own timeout and fallback.
	var (
		wg           sync.WaitGroup
		summary      string
		strengths    []string
		improvements []string
		quotes       []models.QuoteHighlight
		usedSummary  bool
		usedLists    bool
		usedQuotes   bool
	)
	wg.Add(3)
	go func() {
		defer wg.Done()
		summary, usedSummary = s.analyzer.GenerateSummary(ctx, turns, scores, overallScore)
	}()
	go func() {
		defer wg.Done()
		strengths, improvements, usedLists = s.analyzer.ExtractStrengthsImprovements(ctx, turns, scores)
	}()
	go func() {
		defer wg.Done()
		quotes, usedQuotes = s.analyzer.ExtractQuotes(ctx, turns, scores)
	}()
	wg.Wait()

	method := "rule-based"
	if usedSummary || usedLists || usedQuotes {
		method = "hybrid"
	}

	if silence != "" {
		improvements = append([]string{silence}, improvements...)
	}

	return models.FeedbackReport{
		GeneratedAt:     time.Now().UTC(),
		PersonaID:       input.PersonaID,
		TotalTurns:      len(turns),
		DurationSeconds: duration,
		Scores:          scores,
		OverallScore:    overallScore,
		OverallLevel:    overallLevel,
		OverallSummary:  summary,
		Strengths:       firstN(strengths, 5),
		Improvements:    firstN(improvements, 5),
		QuoteHighlights: firstQuotes(quotes, 4),
		Rubric:          rubricReference(),
		AnalysisMethod:  method,
		ConfidenceScore: calculateConfidence(turns, scores),
	}, nil
}

// sortTurns orders by timestamp, untimed turns after timed ones, with the
// turn number as tiebreak. The sort is stable so timed turns keep their
// relative order when timestamps tie.
func sortTurns(turns []models.InterviewTurn) []models.InterviewTurn {
	sorted := make([]models.InterviewTurn, len(turns))
	copy(sorted, turns)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if (a.Timestamp == nil) != (b.Timestamp == nil) {
			return a.Timestamp != nil
		}
		if a.Timestamp != nil && b.Timestamp != nil && *a.Timestamp != *b.Timestamp {
			return *a.Timestamp < *b.Timestamp
		}
		return turnNumber(a) < turnNumber(b)
	})
	return sorted
}

func turnNumber(t models.InterviewTurn) int {
	if t.TurnNumber == nil {
		return 0
	}
	return *t.TurnNumber
}

// checkForSilence scans consecutive student turns for a gap exceeding the
// silence threshold.
func checkForSilence(studentTurns []models.InterviewTurn) string {
	for i := 1; i < len(studentTurns); i++ {
		prev, cur := studentTurns[i-1].Timestamp, studentTurns[i].Timestamp
		if prev == nil || cur == nil {
			continue
		}
		if *cur-*prev > silenceThresholdSeconds {
			return silenceWarning
		}
	}
	return ""
}

// calculateOverallScore is the weighted average of the 1-4 category
// scores. Every report's overall_score must agree with this.
func calculateOverallScore(scores map[string]models.CategoryScore) float64 {
	totalWeighted := 0.0
	totalWeight := 0.0
	for _, s := range scores {
		totalWeighted += float64(s.Score) * float64(s.Weight)
		totalWeight += float64(s.Weight)
	}
	if totalWeight == 0 {
		return 0
	}
	return totalWeighted / totalWeight
}

func scoreToOverallLevel(score float64) models.PerformanceLevel {
	switch {
	case score >= 3.5:
		return models.LevelExemplary
	case score >= 2.5:
		return models.LevelProficient
	case score >= 1.5:
		return models.LevelDeveloping
	default:
		return models.LevelNeedsImprovement
	}
}

func calculateConfidence(turns []models.InterviewTurn, scores map[string]models.CategoryScore) float64 {
	base := float64(len(turns)) / 20
	if base > 1 {
		base = 1
	}
	evidenceCount := 0
	for _, s := range scores {
		evidenceCount += len(s.Evidence)
	}
	evidence := float64(evidenceCount) / 20
	if evidence > 1 {
		evidence = 1
	}
	return base*0.5 + evidence*0.5
}

// scaffoldScores covers every category when the scoring engine cannot run.
func scaffoldScores() map[string]models.CategoryScore {
	scores := make(map[string]models.CategoryScore)
	for _, cat := range rubric.DefaultRubric() {
		scores[cat.ID] = models.CategoryScore{
			CategoryID:  cat.ID,
			Score:       1,
			Level:       models.LevelNeedsImprovement,
			Weight:      cat.Weight,
			Description: "Insufficient evidence to score",
			Evidence:    []string{},
			Suggestions: []string{},
		}
	}
	return scores
}

func rubricReference() map[string][]string {
	ref := make(map[string][]string)
	for _, cat := range rubric.DefaultRubric() {
		var lines []string
		for _, level := range rubric.Levels() {
			lines = append(lines, string(level)+": "+cat.Anchors[level])
		}
		ref[cat.ID] = lines
	}
	return ref
}

// errorReport is the complete report returned for degenerate transcripts.
// All categories are forced to 1, which makes the weighted overall exactly
// 1.0; it is set explicitly to keep the invariant visible.
func (s *FeedbackService) errorReport(message string, input models.FeedbackInput) models.FeedbackReport {
	scores := make(map[string]models.CategoryScore)
	emptyRubric := make(map[string][]string)
	for _, cat := range rubric.DefaultRubric() {
		scores[cat.ID] = models.CategoryScore{
			CategoryID:  cat.ID,
			Score:       1,
			Level:       models.LevelNeedsImprovement,
			Weight:      cat.Weight,
			Description: "Unable to assess due to interview issues",
			Evidence:    []string{},
			Suggestions: []string{"Please conduct a proper interview"},
		}
		emptyRubric[cat.ID] = []string{}
	}

	return models.FeedbackReport{
		GeneratedAt:    time.Now().UTC(),
		PersonaID:      input.PersonaID,
		TotalTurns:     len(input.InterviewTurns),
		Scores:         scores,
		OverallScore:   1.0,
		OverallLevel:   models.LevelNeedsImprovement,
		OverallSummary: message,
		Strengths:      []string{},
		Improvements: []string{
			"Conduct a complete interview with the persona",
			"Ask at least 5-6 questions about their background",
			"Listen to responses before asking follow-up questions",
		},
		QuoteHighlights: []models.QuoteHighlight{},
		Rubric:          emptyRubric,
		AnalysisMethod:  "error",
		ConfidenceScore: 0.0,
	}
}

func firstQuotes(quotes []models.QuoteHighlight, n int) []models.QuoteHighlight {
	if quotes == nil {
		return []models.QuoteHighlight{}
	}
	if len(quotes) <= n {
		return quotes
	}
	return quotes[:n]
}
