package services

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"intervuehub/models"
	"intervuehub/rubric"
)

// ScoringEngine scores a transcript against every rubric category using
// deterministic keyword and pattern heuristics. It holds no per-call state.
type ScoringEngine struct {
	categories []models.RubricCategory
}

func NewScoringEngine() *ScoringEngine {
	return &ScoringEngine{categories: rubric.DefaultRubric()}
}

var (
	openPatterns = []*regexp.Regexp{
		regexp.MustCompile(`^(tell me|describe|explain|how|what|why|could you)`),
		regexp.MustCompile(`(tell me|describe|explain) (about|your|the)`),
		regexp.MustCompile(`(thoughts|feelings|experience|opinion) (on|about)`),
		regexp.MustCompile(`elaborate|expand|more detail`),
	}
	closedPatterns = []*regexp.Regexp{
		regexp.MustCompile(`^(is|are|do|does|did|can|will|have|has|were|was)`),
		regexp.MustCompile(`(yes or no|correct|right|true)`),
	}
	leadingPatterns = []*regexp.Regexp{
		regexp.MustCompile(`don't you think`),
		regexp.MustCompile(`wouldn't you say`),
		regexp.MustCompile(`isn't it true`),
		regexp.MustCompile(`surely`),
		regexp.MustCompile(`obviously`),
	}
)

// ScoreInterview scores all rubric categories. The returned map always has
// one entry per category. An error is returned only when there are no
// student turns to assess.
func (e *ScoringEngine) ScoreInterview(turns []models.InterviewTurn) (map[string]models.CategoryScore, error) {
	var studentTurns []models.InterviewTurn
	for _, t := range turns {
		if t.Speaker == models.SpeakerStudent {
			studentTurns = append(studentTurns, t)
		}
	}
	if len(studentTurns) == 0 {
		return nil, errors.New("no student turns found in transcript")
	}

	scores := make(map[string]models.CategoryScore, len(e.categories))
	for _, cat := range e.categories {
		pct, evidence, suggestions := scoreCategory(cat.ID, studentTurns, turns)
		level := rubric.LevelForPercentage(pct)

		scores[cat.ID] = models.CategoryScore{
			CategoryID:  cat.ID,
			Score:       percentageToRubricScore(pct),
			Level:       level,
			Weight:      cat.Weight,
			Description: cat.Anchors[level],
			Evidence:    evidence,
			Suggestions: suggestions,
		}
	}
	return scores, nil
}

func scoreCategory(categoryID string, studentTurns, allTurns []models.InterviewTurn) (float64, []string, []string) {
	switch categoryID {
	case "introduction_rapport":
		return scoreIntroduction(studentTurns)
	case "question_quality":
		return scoreQuestionQuality(studentTurns)
	case "active_listening":
		return scoreActiveListening(studentTurns)
	case "question_sequence":
		return scoreSequence(studentTurns)
	case "communication":
		return scoreCommunication(studentTurns)
	case "respect_comfort":
		return scoreRespect(studentTurns)
	case "wrapup_closure":
		return scoreWrapup(studentTurns)
	default:
		return 50, nil, []string{"Category not implemented"}
	}
}

// percentageToRubricScore converts a 0-100 percentage to the 1-4 scale.
// Note the bands differ from the level thresholds; both are reported.
func percentageToRubricScore(pct float64) int {
	switch {
	case pct >= 90:
		return 4
	case pct >= 70:
		return 3
	case pct >= 50:
		return 2
	default:
		return 1
	}
}

func containsAny(text string, terms []string) bool {
	for _, term := range terms {
		if strings.Contains(text, term) {
			return true
		}
	}
	return false
}

func countTurnsContaining(turns []models.InterviewTurn, terms []string) int {
	count := 0
	for _, t := range turns {
		if containsAny(strings.ToLower(t.Text), terms) {
			count++
		}
	}
	return count
}

func scoreIntroduction(studentTurns []models.InterviewTurn) (float64, []string, []string) {
	if len(studentTurns) == 0 {
		return 0, []string{"No introduction found"}, []string{"Start with a proper introduction"}
	}

	score := 50.0
	var evidence, suggestions []string
	firstTurn := strings.ToLower(studentTurns[0].Text)

	greetings := []string{"hello", "hi", "good morning", "good afternoon", "welcome"}
	if containsAny(firstTurn, greetings) {
		score += 15
		evidence = append(evidence, "Includes proper greeting")
	} else {
		suggestions = append(suggestions, "Start with a warm greeting")
	}

	if strings.Contains(firstTurn, "my name") || strings.Contains(firstTurn, "i'm") {
		score += 10
		evidence = append(evidence, "Introduces themselves")
	} else {
		suggestions = append(suggestions, "Introduce yourself by name")
	}

	purposeWords := []string{"interview", "ask", "questions", "talk", "discuss", "learn"}
	if containsAny(firstTurn, purposeWords) {
		score += 15
		evidence = append(evidence, "Explains interview purpose")
	} else {
		suggestions = append(suggestions, "Clearly state the purpose of the interview")
	}

	comfortWords := []string{"comfortable", "okay", "ready", "questions before"}
	if containsAny(firstTurn, comfortWords) {
		score += 10
		evidence = append(evidence, "Checks interviewee comfort")
	} else {
		suggestions = append(suggestions, "Ask if the interviewee is comfortable proceeding")
	}

	if score > 100 {
		score = 100
	}
	return score, evidence, suggestions
}

func scoreQuestionQuality(studentTurns []models.InterviewTurn) (float64, []string, []string) {
	var evidence, suggestions []string
	openCount, closedCount, leadingCount := 0, 0, 0

	for _, turn := range studentTurns {
		text := strings.TrimSpace(strings.ToLower(turn.Text))
		if len(strings.Fields(text)) < 3 {
			continue
		}

		isLeading := matchesAny(text, leadingPatterns)
		isOpen := matchesAny(text, openPatterns)
		isClosed := matchesAny(text, closedPatterns)

		// Leading wins over open, open wins over closed
		switch {
		case isLeading:
			leadingCount++
		case isOpen:
			openCount++
		case isClosed:
			closedCount++
		}
	}

	total := openCount + closedCount + leadingCount
	if total == 0 {
		return 0, evidence, suggestions
	}

	openRatio := float64(openCount) / float64(total)
	score := openRatio * 80

	if openRatio > 0.7 {
		evidence = append(evidence, fmt.Sprintf("Excellent use of open-ended questions (%d/%d)", openCount, total))
	} else if openRatio > 0.5 {
		evidence = append(evidence, fmt.Sprintf("Good mix of question types (%d open-ended)", openCount))
	} else {
		suggestions = append(suggestions, "Use more open-ended questions starting with 'How', 'What', 'Why'")
	}

	if leadingCount > 0 {
		score -= float64(leadingCount) * 5
		suggestions = append(suggestions, fmt.Sprintf("Avoid leading questions (%d found)", leadingCount))
	}

	probingWords := []string{"more", "elaborate", "example", "specifically", "detail"}
	probingCount := countTurnsContaining(studentTurns, probingWords)
	if probingCount > 2 {
		score += 20
		evidence = append(evidence, fmt.Sprintf("Good use of probing questions (%d instances)", probingCount))
	}

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return score, evidence, suggestions
}

func matchesAny(text string, patterns []*regexp.Regexp) bool {
	for _, p := range patterns {
		if p.MatchString(text) {
			return true
		}
	}
	return false
}

func scoreActiveListening(studentTurns []models.InterviewTurn) (float64, []string, []string) {
	score := 50.0
	var evidence, suggestions []string

	ackPhrases := []string{"i see", "i understand", "that's interesting", "thank you for sharing"}
	ackCount := countTurnsContaining(studentTurns, ackPhrases)
	if ackCount >= 2 {
		score += 20
		evidence = append(evidence, fmt.Sprintf("Shows acknowledgment (%d times)", ackCount))
	} else {
		suggestions = append(suggestions, "Acknowledge what the interviewee shares")
	}

	refPhrases := []string{"you mentioned", "earlier you said", "going back to", "you talked about"}
	refCount := countTurnsContaining(studentTurns, refPhrases)
	if refCount > 0 {
		score += 30
		evidence = append(evidence, fmt.Sprintf("References previous answers (%d times)", refCount))
	} else {
		suggestions = append(suggestions, "Reference earlier responses to show you're listening")
	}

	if score > 100 {
		score = 100
	}
	return score, evidence, suggestions
}

func scoreSequence(studentTurns []models.InterviewTurn) (float64, []string, []string) {
	score := 70.0
	var evidence, suggestions []string

	transitions := []string{"moving on", "next", "another", "now", "let's talk about"}
	transitionCount := countTurnsContaining(studentTurns, transitions)
	if transitionCount > 2 {
		score += 20
		evidence = append(evidence, fmt.Sprintf("Good use of transitions (%d found)", transitionCount))
	} else if transitionCount == 0 {
		score -= 20
		suggestions = append(suggestions, "Use transition phrases between topics")
	}

	// Funnel check: question word counts growing over time suggest a
	// broad-to-specific progression.
	var questionLengths []int
	for _, t := range studentTurns {
		if strings.Contains(t.Text, "?") {
			questionLengths = append(questionLengths, len(strings.Fields(t.Text)))
		}
	}
	if len(questionLengths) > 3 {
		half := len(questionLengths) / 2
		firstSum, secondSum := 0, 0
		for _, n := range questionLengths[:half] {
			firstSum += n
		}
		for _, n := range questionLengths[half:] {
			secondSum += n
		}
		firstAvg := float64(firstSum) / float64(half)
		secondAvg := float64(secondSum) / float64(len(questionLengths)-half)
		if secondAvg > firstAvg*1.2 {
			score += 10
			evidence = append(evidence, "Questions become more detailed over time")
		}
	}

	if score > 100 {
		score = 100
	}
	return score, evidence, suggestions
}

func scoreCommunication(studentTurns []models.InterviewTurn) (float64, []string, []string) {
	score := 80.0
	var evidence, suggestions []string

	fillerWords := []string{"um", "uh", "like", "you know", "basically", "actually", "literally"}
	totalWords := 0
	fillerCount := 0
	for _, t := range studentTurns {
		totalWords += len(strings.Fields(t.Text))
		lower := strings.ToLower(t.Text)
		for _, f := range fillerWords {
			fillerCount += strings.Count(lower, f)
		}
	}

	denom := totalWords
	if denom < 1 {
		denom = 1
	}
	fillerRatio := float64(fillerCount) / float64(denom)

	if fillerRatio < 0.02 {
		evidence = append(evidence, "Minimal filler words")
	} else if fillerRatio < 0.05 {
		score -= 10
		evidence = append(evidence, "Some filler words present")
	} else {
		score -= 30
		suggestions = append(suggestions, fmt.Sprintf("Reduce filler words (%d found)", fillerCount))
	}

	incompleteCount := 0
	for _, t := range studentTurns {
		if strings.Contains(t.Text, "...") {
			incompleteCount++
		}
	}
	if incompleteCount > 2 {
		score -= 20
		suggestions = append(suggestions, "Complete your thoughts before moving on")
	}

	if score < 0 {
		score = 0
	}
	return score, evidence, suggestions
}

func scoreRespect(studentTurns []models.InterviewTurn) (float64, []string, []string) {
	score := 60.0
	var evidence, suggestions []string

	comfortPhrases := []string{"comfortable", "okay if", "happy to", "prefer", "take your time", "no pressure"}
	comfortCount := countTurnsContaining(studentTurns, comfortPhrases)
	if comfortCount > 1 {
		score += 30
		evidence = append(evidence, fmt.Sprintf("Checks comfort level (%d times)", comfortCount))
	} else if comfortCount == 1 {
		score += 15
		evidence = append(evidence, "Some comfort checking")
	} else {
		suggestions = append(suggestions, "Check if interviewee is comfortable with questions")
	}

	politeWords := []string{"please", "thank you", "appreciate", "would you mind"}
	politeCount := countTurnsContaining(studentTurns, politeWords)
	if politeCount > 3 {
		score += 10
		evidence = append(evidence, "Consistently polite language")
	}

	if score > 100 {
		score = 100
	}
	return score, evidence, suggestions
}

func scoreWrapup(studentTurns []models.InterviewTurn) (float64, []string, []string) {
	if len(studentTurns) < 2 {
		return 0, []string{"No proper closing found"}, []string{"End with thanks and final thoughts invitation"}
	}

	score := 0.0
	var evidence, suggestions []string

	last := studentTurns[len(studentTurns)-2:]
	lastText := strings.ToLower(last[0].Text + " " + last[1].Text)

	if strings.Contains(lastText, "thank") {
		score += 40
		evidence = append(evidence, "Thanks the interviewee")
	} else {
		suggestions = append(suggestions, "Always thank the interviewee for their time")
	}

	finalPhrases := []string{"anything else", "final thoughts", "add anything", "missed anything", "other questions"}
	if containsAny(lastText, finalPhrases) {
		score += 30
		evidence = append(evidence, "Invites final thoughts")
	} else {
		suggestions = append(suggestions, "Ask if they have anything else to add")
	}

	if strings.Contains(lastText, "summary") || strings.Contains(lastText, "next steps") || strings.Contains(lastText, "follow up") {
		score += 30
		evidence = append(evidence, "Mentions next steps or summary")
	}

	if score > 100 {
		score = 100
	}
	return score, evidence, suggestions
}
