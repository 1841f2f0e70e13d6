package rubric

import (
	"testing"

	"intervuehub/models"
)

func TestDefaultRubricWeightsSumTo100(t *testing.T) {
	total := 0
	for _, cat := range DefaultRubric() {
		total += cat.Weight
	}
	if total != 100 {
		t.Errorf("Expected weights to sum to 100, got %d", total)
	}
}

func TestDefaultRubricHasSevenCategories(t *testing.T) {
	cats := DefaultRubric()
	if len(cats) != 7 {
		t.Fatalf("Expected 7 categories, got %d", len(cats))
	}

	expected := []string{
		"introduction_rapport",
		"question_quality",
		"active_listening",
		"question_sequence",
		"communication",
		"respect_comfort",
		"wrapup_closure",
	}
	for i, id := range expected {
		if cats[i].ID != id {
			t.Errorf("Expected category %d to be %s, got %s", i, id, cats[i].ID)
		}
	}
}

func TestEveryCategoryHasAllLevelAnchors(t *testing.T) {
	for _, cat := range DefaultRubric() {
		for _, level := range Levels() {
			if cat.Anchors[level] == "" {
				t.Errorf("Category %s missing anchor for level %s", cat.ID, level)
			}
		}
	}
}

func TestLevelForPercentage(t *testing.T) {
	tests := []struct {
		pct  float64
		want models.PerformanceLevel
	}{
		{100, models.LevelExemplary},
		{90, models.LevelExemplary},
		{89.9, models.LevelProficient},
		{70, models.LevelProficient},
		{69.9, models.LevelDeveloping},
		{50, models.LevelDeveloping},
		{49.9, models.LevelNeedsImprovement},
		{0, models.LevelNeedsImprovement},
	}
	for _, tt := range tests {
		if got := LevelForPercentage(tt.pct); got != tt.want {
			t.Errorf("LevelForPercentage(%.1f) = %s, want %s", tt.pct, got, tt.want)
		}
	}
}

func TestScoreThresholdsCoverFullRange(t *testing.T) {
	thresholds := ScoreThresholds()
	if len(thresholds) != 4 {
		t.Fatalf("Expected 4 threshold bands, got %d", len(thresholds))
	}
	if thresholds[models.LevelExemplary].Min != 90 || thresholds[models.LevelExemplary].Max != 100 {
		t.Errorf("Unexpected Exemplary band: %+v", thresholds[models.LevelExemplary])
	}
	if thresholds[models.LevelNeedsImprovement].Min != 0 {
		t.Errorf("Expected lowest band to start at 0, got %d", thresholds[models.LevelNeedsImprovement].Min)
	}
}

func TestEdgeCaseResponsesComplete(t *testing.T) {
	responses := EdgeCaseResponses()
	for _, key := range []string{EdgeEmptyTranscript, EdgeTooShort, EdgeOffTopic, EdgeOneSided, EdgeTechnicalIssue} {
		if responses[key] == "" {
			t.Errorf("Missing edge case response for %s", key)
		}
	}
}

func TestLevelRankOrdering(t *testing.T) {
	levels := Levels()
	for i := 1; i < len(levels); i++ {
		if levels[i-1].Rank() <= levels[i].Rank() {
			t.Errorf("Expected %s to rank above %s", levels[i-1], levels[i])
		}
	}
}
