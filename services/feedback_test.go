package services

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"math/rand"
	"reflect"
	"testing"

	"intervuehub/models"
	"intervuehub/rubric"
)

func ptr(f float64) *float64 { return &f }

func timedStudentTurn(text string, ts float64) models.InterviewTurn {
	return models.InterviewTurn{Speaker: models.SpeakerStudent, Text: text, Timestamp: &ts}
}

func timedPersonaTurn(text string, ts float64) models.InterviewTurn {
	return models.InterviewTurn{Speaker: models.SpeakerPersona, Text: text, Timestamp: &ts}
}

func validInterview() []models.InterviewTurn {
	return []models.InterviewTurn{
		timedStudentTurn("Hello, my name is Sam. Could you tell me about yourself?", 0),
		timedPersonaTurn("I'm Margaret, a retired librarian from Portland.", 5),
		timedStudentTurn("What did you enjoy most about the library?", 12),
		timedPersonaTurn("Helping students find exactly what they needed.", 18),
		timedStudentTurn("Thank you so much. Is there anything else you'd like to add?", 25),
		timedPersonaTurn("No, that covers everything.", 30),
	}
}

func newTestService(client CompletionClient) *FeedbackService {
	return NewFeedbackService(NewLLMAnalyzer(client, "test-model"))
}

func TestGenerateFeedbackErrorReportForEmptyTranscript(t *testing.T) {
	svc := newTestService(&mockClient{err: errors.New("should not be called")})

	report, err := svc.GenerateFeedback(context.Background(), models.FeedbackInput{PersonaID: "1"})
	if err != nil {
		t.Fatalf("Expected complete report, got error: %v", err)
	}

	if report.AnalysisMethod != "error" {
		t.Errorf("Expected analysis_method error, got %s", report.AnalysisMethod)
	}
	if report.OverallScore != 1.0 {
		t.Errorf("Expected overall score 1.0, got %.2f", report.OverallScore)
	}
	if report.OverallLevel != models.LevelNeedsImprovement {
		t.Errorf("Expected Needs Improvement, got %s", report.OverallLevel)
	}
	if report.ConfidenceScore != 0 {
		t.Errorf("Expected confidence 0, got %.2f", report.ConfidenceScore)
	}
	if report.OverallSummary != rubric.EdgeCaseResponses()[rubric.EdgeEmptyTranscript] {
		t.Errorf("Expected empty transcript message, got %q", report.OverallSummary)
	}
	if len(report.Scores) != 7 {
		t.Errorf("Expected scores for all 7 categories, got %d", len(report.Scores))
	}
	for id, score := range report.Scores {
		if score.Score != 1 {
			t.Errorf("Category %s score = %d, want 1", id, score.Score)
		}
	}
	if len(report.Improvements) == 0 {
		t.Error("Error report should still carry improvement guidance")
	}
}

func TestGenerateFeedbackErrorReportKeepsWeightedAverageInvariant(t *testing.T) {
	svc := newTestService(nil)
	report, err := svc.GenerateFeedback(context.Background(), models.FeedbackInput{
		PersonaID:      "1",
		InterviewTurns: []models.InterviewTurn{studentTurn("hi")},
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	recomputed := calculateOverallScore(report.Scores)
	if math.Abs(report.OverallScore-recomputed) > 0.1 {
		t.Errorf("Error report overall %.3f disagrees with weighted average %.3f", report.OverallScore, recomputed)
	}
}

func TestGenerateFeedbackRuleBasedWhenModelFails(t *testing.T) {
	svc := newTestService(&mockClient{err: errors.New("model down")})

	report, err := svc.GenerateFeedback(context.Background(), models.FeedbackInput{
		PersonaID:      "1",
		InterviewTurns: validInterview(),
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if report.AnalysisMethod != "rule-based" {
		t.Errorf("Expected rule-based method, got %s", report.AnalysisMethod)
	}
	if report.TotalTurns != 6 {
		t.Errorf("Expected 6 turns, got %d", report.TotalTurns)
	}
	if report.DurationSeconds == nil || *report.DurationSeconds != 30 {
		t.Errorf("Expected duration 30s, got %v", report.DurationSeconds)
	}
	if report.OverallSummary == "" {
		t.Error("Expected fallback summary")
	}
	if len(report.Strengths) == 0 || len(report.Improvements) == 0 {
		t.Error("Expected fallback strengths and improvements")
	}
}

func TestGenerateFeedbackHybridWhenModelAnswers(t *testing.T) {
	// Plain prose satisfies the summary but fails JSON extraction for the
	// other two analyses, which is enough to mark the report hybrid.
	svc := newTestService(&mockClient{response: "A thoughtful, well-paced interview."})

	report, err := svc.GenerateFeedback(context.Background(), models.FeedbackInput{
		PersonaID:      "1",
		InterviewTurns: validInterview(),
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if report.AnalysisMethod != "hybrid" {
		t.Errorf("Expected hybrid method, got %s", report.AnalysisMethod)
	}
	if report.OverallSummary != "A thoughtful, well-paced interview." {
		t.Errorf("Expected model summary to be used, got %q", report.OverallSummary)
	}
}

func TestGenerateFeedbackOverallScoreMatchesWeightedAverage(t *testing.T) {
	svc := newTestService(&mockClient{err: errors.New("model down")})

	report, err := svc.GenerateFeedback(context.Background(), models.FeedbackInput{
		PersonaID:      "1",
		InterviewTurns: validInterview(),
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	totalWeighted, totalWeight := 0.0, 0.0
	for _, s := range report.Scores {
		totalWeighted += float64(s.Score) * float64(s.Weight)
		totalWeight += float64(s.Weight)
	}
	expected := totalWeighted / totalWeight
	if math.Abs(report.OverallScore-expected) > 0.1 {
		t.Errorf("Overall %.3f disagrees with weighted average %.3f", report.OverallScore, expected)
	}
}

func TestCalculateOverallScoreRandomized(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for trial := 0; trial < 50; trial++ {
		scores := make(map[string]models.CategoryScore)
		for _, cat := range rubric.DefaultRubric() {
			scores[cat.ID] = models.CategoryScore{
				CategoryID: cat.ID,
				Score:      1 + rng.Intn(4),
				Weight:     cat.Weight,
			}
		}

		got := calculateOverallScore(scores)
		if got < 1 || got > 4 {
			t.Fatalf("Trial %d: overall %.3f outside 1-4", trial, got)
		}

		totalWeighted, totalWeight := 0.0, 0.0
		for _, s := range scores {
			totalWeighted += float64(s.Score) * float64(s.Weight)
			totalWeight += float64(s.Weight)
		}
		if math.Abs(got-totalWeighted/totalWeight) > 1e-9 {
			t.Fatalf("Trial %d: got %.6f, want %.6f", trial, got, totalWeighted/totalWeight)
		}
	}
}

func TestScoreToOverallLevelBoundaries(t *testing.T) {
	tests := []struct {
		score float64
		want  models.PerformanceLevel
	}{
		{4.0, models.LevelExemplary},
		{3.5, models.LevelExemplary},
		{3.49, models.LevelProficient},
		{2.5, models.LevelProficient},
		{2.49, models.LevelDeveloping},
		{1.5, models.LevelDeveloping},
		{1.49, models.LevelNeedsImprovement},
		{1.0, models.LevelNeedsImprovement},
	}
	for _, tt := range tests {
		if got := scoreToOverallLevel(tt.score); got != tt.want {
			t.Errorf("scoreToOverallLevel(%.2f) = %s, want %s", tt.score, got, tt.want)
		}
	}
}

func TestSortTurnsOrdersByTimestampThenTurnNumber(t *testing.T) {
	one, two := 1, 2
	turns := []models.InterviewTurn{
		{Speaker: models.SpeakerStudent, Text: "untimed late", TurnNumber: &two},
		timedStudentTurn("second", 10),
		{Speaker: models.SpeakerStudent, Text: "untimed early", TurnNumber: &one},
		timedStudentTurn("first", 5),
	}

	sorted := sortTurns(turns)
	want := []string{"first", "second", "untimed early", "untimed late"}
	for i, text := range want {
		if sorted[i].Text != text {
			t.Errorf("Position %d: got %q, want %q", i, sorted[i].Text, text)
		}
	}

	// The input slice must not be reordered.
	if turns[0].Text != "untimed late" {
		t.Error("sortTurns mutated its input")
	}
}

func TestSortTurnsStableOnEqualTimestamps(t *testing.T) {
	turns := []models.InterviewTurn{
		timedStudentTurn("a", 5),
		timedPersonaTurn("b", 5),
		timedStudentTurn("c", 5),
	}
	sorted := sortTurns(turns)
	got := []string{sorted[0].Text, sorted[1].Text, sorted[2].Text}
	if !reflect.DeepEqual(got, []string{"a", "b", "c"}) {
		t.Errorf("Equal timestamps reordered: %v", got)
	}
}

func TestSilenceWarningPrependedToImprovements(t *testing.T) {
	svc := newTestService(&mockClient{err: errors.New("model down")})

	turns := []models.InterviewTurn{
		timedStudentTurn("Hello, my name is Sam. Could you tell me about yourself?", 0),
		timedPersonaTurn("I'm Margaret, a retired librarian.", 5),
		timedStudentTurn("What did you enjoy most about the library?", 60),
		timedPersonaTurn("Helping students find what they needed.", 65),
		timedStudentTurn("Thanks. Anything else you'd like to add?", 70),
		timedPersonaTurn("No, that covers everything.", 75),
	}

	report, err := svc.GenerateFeedback(context.Background(), models.FeedbackInput{
		PersonaID:      "1",
		InterviewTurns: turns,
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(report.Improvements) == 0 || report.Improvements[0] != silenceWarning {
		t.Errorf("Expected silence warning first, got %v", report.Improvements)
	}
}

func TestNoSilenceWarningUnderThreshold(t *testing.T) {
	turns := []models.InterviewTurn{
		timedStudentTurn("one", 0),
		timedStudentTurn("two", 30),
	}
	if msg := checkForSilence(turns); msg != "" {
		t.Errorf("A gap of exactly 30s should not warn, got %q", msg)
	}

	turns[1].Timestamp = ptr(31)
	if msg := checkForSilence(turns); msg == "" {
		t.Error("A gap over 30s should warn")
	}
}

func TestGenerateFeedbackIsDeterministic(t *testing.T) {
	svc := newTestService(&mockClient{err: errors.New("model down")})
	input := models.FeedbackInput{PersonaID: "1", InterviewTurns: validInterview()}

	first, err := svc.GenerateFeedback(context.Background(), input)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	second, err := svc.GenerateFeedback(context.Background(), input)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if !reflect.DeepEqual(first.Scores, second.Scores) {
		t.Error("Scores differ between identical runs")
	}
	if first.OverallScore != second.OverallScore {
		t.Errorf("Overall score differs: %.3f vs %.3f", first.OverallScore, second.OverallScore)
	}
	if first.OverallSummary != second.OverallSummary {
		t.Error("Fallback summary differs between identical runs")
	}
	if !reflect.DeepEqual(first.Strengths, second.Strengths) ||
		!reflect.DeepEqual(first.Improvements, second.Improvements) {
		t.Error("Strength/improvement lists differ between identical runs")
	}
}

func TestGenerateFeedbackListCaps(t *testing.T) {
	svc := newTestService(&mockClient{response: `{"strengths": ["a","b","c","d","e","f","g"], "improvements": ["1","2","3","4","5","6"]}`})

	report, err := svc.GenerateFeedback(context.Background(), models.FeedbackInput{
		PersonaID:      "1",
		InterviewTurns: validInterview(),
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(report.Strengths) > 5 {
		t.Errorf("Strengths not capped at 5: %d", len(report.Strengths))
	}
	if len(report.Improvements) > 5 {
		t.Errorf("Improvements not capped at 5: %d", len(report.Improvements))
	}
	if len(report.QuoteHighlights) > 4 {
		t.Errorf("Quotes not capped at 4: %d", len(report.QuoteHighlights))
	}
}

func TestDurationClampedAtZero(t *testing.T) {
	svc := newTestService(&mockClient{err: errors.New("model down")})

	// Same timestamp everywhere collapses duration to zero.
	turns := validInterview()
	for i := range turns {
		turns[i].Timestamp = ptr(100)
	}
	report, err := svc.GenerateFeedback(context.Background(), models.FeedbackInput{
		PersonaID:      "1",
		InterviewTurns: turns,
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if report.DurationSeconds == nil || *report.DurationSeconds != 0 {
		t.Errorf("Expected duration 0, got %v", report.DurationSeconds)
	}
}

func TestCalculateConfidence(t *testing.T) {
	turns := make([]models.InterviewTurn, 10)
	scores := map[string]models.CategoryScore{
		"a": {Evidence: []string{"x", "y", "z", "w", "v"}},
		"b": {Evidence: []string{"x", "y", "z", "w", "v"}},
	}
	// 10/20 turns and 10/20 evidence items: 0.5*0.5 + 0.5*0.5 = 0.5
	got := calculateConfidence(turns, scores)
	if math.Abs(got-0.5) > 1e-9 {
		t.Errorf("Expected confidence 0.5, got %.3f", got)
	}

	// Both components cap at 1.
	many := make([]models.InterviewTurn, 100)
	big := map[string]models.CategoryScore{"a": {Evidence: make([]string, 50)}}
	if got := calculateConfidence(many, big); got != 1.0 {
		t.Errorf("Expected capped confidence 1.0, got %.3f", got)
	}
}

func TestFeedbackReportJSONRoundTrip(t *testing.T) {
	svc := newTestService(&mockClient{err: errors.New("model down")})
	report, err := svc.GenerateFeedback(context.Background(), models.FeedbackInput{
		PersonaID:      "1",
		InterviewTurns: validInterview(),
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	data, err := json.Marshal(report)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	var decoded models.FeedbackReport
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if decoded.OverallScore != report.OverallScore {
		t.Errorf("Overall score changed through round trip: %.3f vs %.3f", decoded.OverallScore, report.OverallScore)
	}
	if decoded.AnalysisMethod != report.AnalysisMethod {
		t.Errorf("Analysis method changed through round trip")
	}
	if len(decoded.Scores) != len(report.Scores) {
		t.Errorf("Score map changed through round trip")
	}
}

func TestRubricReferenceListsAllLevels(t *testing.T) {
	ref := rubricReference()
	if len(ref) != 7 {
		t.Fatalf("Expected 7 rubric entries, got %d", len(ref))
	}
	for id, lines := range ref {
		if len(lines) != 4 {
			t.Errorf("Category %s has %d anchor lines, want 4", id, len(lines))
		}
	}
}
