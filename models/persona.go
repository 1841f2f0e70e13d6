package models

// Persona describes an interviewee the student practices with
type Persona struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Role          string   `json:"role"`
	Location      string   `json:"location"`
	Gender        string   `json:"gender"`
	Age           string   `json:"age"`
	Background    string   `json:"background"`
	SpeakingStyle string   `json:"speaking_style,omitempty"`
	Values        []string `json:"values_motivations,omitempty"`
	GoalsToday    string   `json:"goals_today,omitempty"`
	PainPoints    []string `json:"pain_points,omitempty"`
	TopicsWarm    []string `json:"topics_warm,omitempty"`
	TopicsTouchy  []string `json:"topics_sensitive,omitempty"`
	Lexicon       []string `json:"lexicon,omitempty"`
	ClarifyStyle  string   `json:"clarify_style,omitempty"`
	VoiceID       string   `json:"voice_id,omitempty"`
}
