package services

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"intervuehub/models"
)

// PersonaService loads interview personas from a JSON file at startup and
// builds the system prompt that makes the model speak as one of them.
type PersonaService struct {
	personas []models.Persona
	byID     map[string]models.Persona
}

// flexString accepts either a JSON string or a JSON number, since persona
// files are inconsistent about how ids and ages are written.
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = flexString(n.String())
	return nil
}

// personaRecord tolerates the aliases and loose types found in persona
// files: numeric ids/ages and the older field names for values and pain
// points.
type personaRecord struct {
	ID            flexString `json:"id"`
	Name          string     `json:"name"`
	Role          string     `json:"role"`
	Location      string     `json:"location"`
	Gender        string     `json:"gender"`
	Age           flexString `json:"age"`
	Background    string     `json:"background"`
	SpeakingStyle string     `json:"speaking_style"`
	Values        []string   `json:"values_motivations"`
	ValuesAlt     []string   `json:"values_attitudes_motivations"`
	GoalsToday    string     `json:"goals_today"`
	PainPoints    []string   `json:"pain_points"`
	PainPointsAlt []string   `json:"pain_points_challenges"`
	TopicsWarm    []string   `json:"topics_warm"`
	TopicsTouchy  []string   `json:"topics_sensitive"`
	Lexicon       []string   `json:"lexicon"`
	ClarifyStyle  string     `json:"clarify_style"`
	VoiceID       string     `json:"voice_id"`
}

func NewPersonaService(path string) (*PersonaService, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read persona file: %w", err)
	}

	var records []personaRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to parse persona file: %w", err)
	}

	svc := &PersonaService{byID: make(map[string]models.Persona)}
	for _, r := range records {
		values := r.Values
		if len(values) == 0 {
			values = r.ValuesAlt
		}
		painPoints := r.PainPoints
		if len(painPoints) == 0 {
			painPoints = r.PainPointsAlt
		}
		p := models.Persona{
			ID:            string(r.ID),
			Name:          r.Name,
			Role:          r.Role,
			Location:      r.Location,
			Gender:        r.Gender,
			Age:           string(r.Age),
			Background:    r.Background,
			SpeakingStyle: r.SpeakingStyle,
			Values:        values,
			GoalsToday:    r.GoalsToday,
			PainPoints:    painPoints,
			TopicsWarm:    r.TopicsWarm,
			TopicsTouchy:  r.TopicsTouchy,
			Lexicon:       r.Lexicon,
			ClarifyStyle:  r.ClarifyStyle,
			VoiceID:       r.VoiceID,
		}
		svc.personas = append(svc.personas, p)
		svc.byID[p.ID] = p
	}

	return svc, nil
}

func (s *PersonaService) List() []models.Persona {
	return s.personas
}

func (s *PersonaService) Get(id string) (models.Persona, bool) {
	p, ok := s.byID[id]
	return p, ok
}

// BuildPersonaPrompt renders the persona as a system prompt for the chat
// endpoint. Optional fields are emitted in a fixed order; empty ones are
// skipped.
func (s *PersonaService) BuildPersonaPrompt(p models.Persona) string {
	var b strings.Builder

	fmt.Fprintf(&b, "You are %s, a %s from %s. Stay in character for the whole conversation and answer the student's interview questions as this person.\n\n", p.Name, p.Role, p.Location)
	if p.Age != "" {
		fmt.Fprintf(&b, "Age: %s\n", p.Age)
	}

	writeTextBlock(&b, "Background", p.Background)
	writeTextBlock(&b, "Speaking style", p.SpeakingStyle)
	writeListBlock(&b, "Values and motivations", p.Values)
	writeTextBlock(&b, "What you hope to get out of today", p.GoalsToday)
	writeListBlock(&b, "Pain points", p.PainPoints)
	writeListBlock(&b, "Topics you enjoy discussing", p.TopicsWarm)
	writeListBlock(&b, "Topics you are guarded about", p.TopicsTouchy)
	writeListBlock(&b, "Words and phrases you tend to use", p.Lexicon)
	writeTextBlock(&b, "When a question is unclear", p.ClarifyStyle)

	b.WriteString("Keep replies conversational, 2-4 sentences, first person. Do not break character or mention being an AI.")
	return b.String()
}

func writeTextBlock(b *strings.Builder, title, text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	fmt.Fprintf(b, "%s:\n%s\n\n", title, text)
}

func writeListBlock(b *strings.Builder, title string, items []string) {
	var kept []string
	for _, item := range items {
		if strings.TrimSpace(item) != "" {
			kept = append(kept, item)
		}
	}
	if len(kept) == 0 {
		return
	}
	fmt.Fprintf(b, "%s:\n", title)
	for _, item := range kept {
		fmt.Fprintf(b, "- %s\n", item)
	}
	b.WriteString("\n")
}
