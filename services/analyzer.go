package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"intervuehub/models"
)

// CompletionClient is the abstract text-completion capability. Failures
// surface as a single error, never partial data.
type CompletionClient interface {
	GenerateText(ctx context.Context, req models.ChatRequest) (models.ChatResponse, error)
}

// analysisTimeout bounds each individual analyzer call so a slow model
// cannot stall report generation.
const analysisTimeout = 25 * time.Second

// LLMAnalyzer produces the qualitative parts of a feedback report: the
// narrative summary, strengths/improvements, and quote highlights. Every
// method degrades to a deterministic rule-based result when the model call
// fails or returns unusable output; the second return value reports
// whether the model's answer was actually used.
type LLMAnalyzer struct {
	client CompletionClient
	model  string
}

func NewLLMAnalyzer(client CompletionClient, model string) *LLMAnalyzer {
	return &LLMAnalyzer{client: client, model: model}
}

// GenerateSummary writes a 2-3 sentence narrative of the performance.
func (a *LLMAnalyzer) GenerateSummary(ctx context.Context, turns []models.InterviewTurn, scores map[string]models.CategoryScore, overallScore float64) (string, bool) {
	prompt := fmt.Sprintf(`Write a 2-3 sentence summary of this interview performance.

CONTEXT:
- Overall score: %.1f/4
- Number of exchanges: %d
- Score breakdown: %s

Key observations:
%s

Write a constructive, encouraging summary that:
1. Acknowledges the overall performance level
2. Highlights 1-2 specific strengths
3. Suggests 1 key area for growth
4. Maintains a supportive, educational tone

Keep it concise and actionable.`, overallScore, len(turns), scoreSummary(scores), transcriptSummary(turns))

	text, err := a.complete(ctx, prompt, 150, 0.7)
	if err != nil {
		log.Printf("LLM summary generation failed: %v", err)
		return FallbackSummary(overallScore, scores), false
	}
	summary := strings.TrimSpace(text)
	if summary == "" {
		return FallbackSummary(overallScore, scores), false
	}
	return summary, true
}

// ExtractStrengthsImprovements asks the model for two labeled lists.
func (a *LLMAnalyzer) ExtractStrengthsImprovements(ctx context.Context, turns []models.InterviewTurn, scores map[string]models.CategoryScore) ([]string, []string, bool) {
	prompt := fmt.Sprintf(`Analyze this interview and provide specific, actionable feedback.

TRANSCRIPT:
%s

SCORES AND EVIDENCE:
%s

Based on the evidence, provide:

STRENGTHS (3-5 specific things the interviewer did well):
- Focus on concrete behaviors observed
- Be specific with examples when possible
- Highlight techniques that should be continued

IMPROVEMENTS (3-5 specific areas for growth):
- Provide actionable suggestions
- Focus on technique, not personality
- Suggest specific strategies or phrases to try

Format as a JSON object with two string arrays: "strengths" and "improvements"`, FormatTranscript(turns), scoreDetails(scores))

	text, err := a.complete(ctx, prompt, 400, 0.3)
	if err != nil {
		log.Printf("LLM strength/improvement extraction failed: %v", err)
		s, i := FallbackStrengthsImprovements(scores)
		return s, i, false
	}

	payload, ok := ExtractJSON(text)
	if !ok {
		s, i := FallbackStrengthsImprovements(scores)
		return s, i, false
	}
	var parsed struct {
		Strengths    []string `json:"strengths"`
		Improvements []string `json:"improvements"`
	}
	if err := json.Unmarshal(payload, &parsed); err != nil || (len(parsed.Strengths) == 0 && len(parsed.Improvements) == 0) {
		s, i := FallbackStrengthsImprovements(scores)
		return s, i, false
	}
	return parsed.Strengths, parsed.Improvements, true
}

// ExtractQuotes picks 2-4 transcript moments worth highlighting, aiming
// for at least one from a strong category and one from a weak category.
func (a *LLMAnalyzer) ExtractQuotes(ctx context.Context, turns []models.InterviewTurn, scores map[string]models.CategoryScore) ([]models.QuoteHighlight, bool) {
	var strong, weak []string
	for _, id := range sortedCategoryIDs(scores) {
		if scores[id].Score >= 3 {
			strong = append(strong, id)
		} else {
			weak = append(weak, id)
		}
	}

	prompt := fmt.Sprintf(`Analyze this interview transcript and extract specific quotes that demonstrate strengths and areas for improvement.

TRANSCRIPT:
%s

STRONG CATEGORIES (score 3-4): %s
WEAK CATEGORIES (score 1-2): %s

Extract 2-4 quotes that best illustrate:
1. At least 1 quote showing excellent interviewing (from strong categories)
2. At least 1 quote showing areas for improvement (from weak categories)

For each quote, provide:
- The exact quote (keep it concise, under 50 words)
- The turn number where it appears
- Which category it relates to
- Whether it's positive or negative
- Brief explanation of why it's noteworthy

Format as JSON array with objects containing: quote, turn_number, category, is_positive, explanation`,
		FormatTranscript(turns), strings.Join(strong, ", "), strings.Join(weak, ", "))

	text, err := a.complete(ctx, prompt, 400, 0.3)
	if err != nil {
		log.Printf("LLM quote extraction failed: %v", err)
		return FallbackQuotes(turns), false
	}

	payload, ok := ExtractJSON(text)
	if !ok {
		return FallbackQuotes(turns), false
	}
	var parsed []struct {
		Quote       string `json:"quote"`
		TurnNumber  int    `json:"turn_number"`
		Category    string `json:"category"`
		IsPositive  bool   `json:"is_positive"`
		Explanation string `json:"explanation"`
	}
	if err := json.Unmarshal(payload, &parsed); err != nil || len(parsed) == 0 {
		return FallbackQuotes(turns), false
	}

	quotes := make([]models.QuoteHighlight, 0, len(parsed))
	for _, q := range parsed {
		quotes = append(quotes, models.QuoteHighlight{
			Quote:       q.Quote,
			Context:     quoteContext(turns, q.TurnNumber),
			TurnNumber:  q.TurnNumber,
			Category:    q.Category,
			IsPositive:  q.IsPositive,
			Explanation: q.Explanation,
		})
	}
	return quotes, true
}

func (a *LLMAnalyzer) complete(ctx context.Context, prompt string, maxTokens int, temperature float64) (string, error) {
	if a.client == nil {
		return "", fmt.Errorf("completion client not configured")
	}
	ctx, cancel := context.WithTimeout(ctx, analysisTimeout)
	defer cancel()

	resp, err := a.client.GenerateText(ctx, models.ChatRequest{
		Model:       a.model,
		Messages:    []models.ChatMessage{{Role: "user", Content: prompt}},
		MaxTokens:   maxTokens,
		Temperature: temperature,
	})
	if err != nil {
		return "", err
	}
	return resp.Message, nil
}

// FormatTranscript renders turns for model consumption
func FormatTranscript(turns []models.InterviewTurn) string {
	var b strings.Builder
	for i, turn := range turns {
		speaker := "PERSONA"
		if turn.Speaker == models.SpeakerStudent {
			speaker = "STUDENT"
		}
		fmt.Fprintf(&b, "Turn %d [%s]: %s\n", i+1, speaker, turn.Text)
	}
	return strings.TrimRight(b.String(), "\n")
}

func transcriptSummary(turns []models.InterviewTurn) string {
	var studentTurns []models.InterviewTurn
	for _, t := range turns {
		if t.Speaker == models.SpeakerStudent {
			studentTurns = append(studentTurns, t)
		}
	}

	totalQuestions := 0
	totalWords := 0
	for _, t := range studentTurns {
		if strings.Contains(t.Text, "?") {
			totalQuestions++
		}
		totalWords += len(strings.Fields(t.Text))
	}
	avgLength := 0.0
	if len(studentTurns) > 0 {
		avgLength = float64(totalWords) / float64(len(studentTurns))
	}

	return fmt.Sprintf("- Total questions asked: %d\n- Average question length: %.1f words\n- Interview duration: %d turns",
		totalQuestions, avgLength, len(turns))
}

func scoreSummary(scores map[string]models.CategoryScore) string {
	items := make([]string, 0, len(scores))
	for _, id := range sortedCategoryIDs(scores) {
		s := scores[id]
		items = append(items, fmt.Sprintf("%s: %s (%d/4)", id, s.Level, s.Score))
	}
	return strings.Join(items, ", ")
}

func scoreDetails(scores map[string]models.CategoryScore) string {
	var b strings.Builder
	for _, id := range sortedCategoryIDs(scores) {
		s := scores[id]
		fmt.Fprintf(&b, "\n%s:\n", strings.ToUpper(id))
		fmt.Fprintf(&b, "Score: %d/4 (%s)\n", s.Score, s.Level)
		if len(s.Evidence) > 0 {
			fmt.Fprintf(&b, "Evidence: %s\n", strings.Join(s.Evidence, "; "))
		}
		if len(s.Suggestions) > 0 {
			fmt.Fprintf(&b, "Needs: %s\n", strings.Join(s.Suggestions, "; "))
		}
	}
	return b.String()
}

// sortedCategoryIDs keeps prompt construction and fallbacks deterministic
// across runs regardless of map iteration order.
func sortedCategoryIDs(scores map[string]models.CategoryScore) []string {
	ids := make([]string, 0, len(scores))
	for id := range scores {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func quoteContext(turns []models.InterviewTurn, turnNumber int) string {
	idx := turnNumber - 1
	var parts []string
	if idx > 0 && idx <= len(turns) {
		parts = append(parts, fmt.Sprintf("[Before] %s...", truncate(turns[idx-1].Text, 50)))
	}
	if idx >= 0 && idx < len(turns)-1 {
		parts = append(parts, fmt.Sprintf("[After] %s...", truncate(turns[idx+1].Text, 50)))
	}
	return strings.Join(parts, " ")
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

// FallbackSummary builds the summary without the model, combining the
// overall level with the strongest and weakest categories.
func FallbackSummary(overallScore float64, scores map[string]models.CategoryScore) string {
	level := strings.ToLower(string(scoreToOverallLevel(overallScore)))

	tail := ""
	if len(scores) > 0 {
		ids := sortedCategoryIDs(scores)
		sort.SliceStable(ids, func(i, j int) bool {
			return scores[ids[i]].Score > scores[ids[j]].Score
		})
		strongest := strings.ReplaceAll(ids[0], "_", " ")
		weakest := strings.ReplaceAll(ids[len(ids)-1], "_", " ")
		tail = fmt.Sprintf("You demonstrated particular strength in %s, while %s presents an opportunity for growth. ", strongest, weakest)
	}

	return fmt.Sprintf("Your interview performance is at a %s level with an overall score of %.1f/4. %sReview the detailed feedback below to continue improving your interviewing skills.",
		level, overallScore, tail)
}

// FallbackStrengthsImprovements concatenates rule-engine evidence from
// well-scored categories and suggestions from all, capped at 5 each.
func FallbackStrengthsImprovements(scores map[string]models.CategoryScore) ([]string, []string) {
	var strengths, improvements []string
	for _, id := range sortedCategoryIDs(scores) {
		s := scores[id]
		if s.Score >= 3 {
			strengths = append(strengths, firstN(s.Evidence, 2)...)
		}
		improvements = append(improvements, firstN(s.Suggestions, 2)...)
	}

	if len(strengths) == 0 {
		strengths = []string{"Completed the interview", "Asked multiple questions"}
	}
	if len(improvements) == 0 {
		improvements = []string{"Practice more open-ended questions", "Work on active listening"}
	}
	return firstN(strengths, 5), firstN(improvements, 5)
}

// FallbackQuotes scans student turns for one good open-ended question and
// one overly brief question.
func FallbackQuotes(turns []models.InterviewTurn) []models.QuoteHighlight {
	var quotes []models.QuoteHighlight

	openPhrases := []string{"tell me", "describe", "how do you"}
	for i, turn := range turns {
		if turn.Speaker != models.SpeakerStudent {
			continue
		}
		if containsAny(strings.ToLower(turn.Text), openPhrases) {
			quotes = append(quotes, models.QuoteHighlight{
				Quote:       truncate(turn.Text, 100),
				Context:     "",
				TurnNumber:  i + 1,
				Category:    "question_quality",
				IsPositive:  true,
				Explanation: "Good example of open-ended questioning",
			})
			break
		}
	}

	for i, turn := range turns {
		if turn.Speaker != models.SpeakerStudent {
			continue
		}
		if len(strings.Fields(turn.Text)) < 5 && strings.Contains(turn.Text, "?") {
			quotes = append(quotes, models.QuoteHighlight{
				Quote:       turn.Text,
				Context:     "",
				TurnNumber:  i + 1,
				Category:    "question_quality",
				IsPositive:  false,
				Explanation: "Very brief question - could be expanded",
			})
			break
		}
	}

	return quotes
}

func firstN(items []string, n int) []string {
	if len(items) <= n {
		return items
	}
	return items[:n]
}
