package services

import (
	"encoding/json"
	"testing"
)

func TestExtractJSONPlainObject(t *testing.T) {
	payload, ok := ExtractJSON(`{"strengths": ["a"], "improvements": ["b"]}`)
	if !ok {
		t.Fatal("Expected extraction to succeed")
	}
	var parsed map[string][]string
	if err := json.Unmarshal(payload, &parsed); err != nil {
		t.Fatalf("Extracted payload does not parse: %v", err)
	}
}

func TestExtractJSONWrappedInProse(t *testing.T) {
	text := `Sure! Here is the analysis you asked for:

{"strengths": ["good greeting"], "improvements": ["ask more questions"]}

Let me know if you need anything else.`
	payload, ok := ExtractJSON(text)
	if !ok {
		t.Fatal("Expected extraction to succeed")
	}
	var parsed struct {
		Strengths []string `json:"strengths"`
	}
	if err := json.Unmarshal(payload, &parsed); err != nil {
		t.Fatalf("Extracted payload does not parse: %v", err)
	}
	if len(parsed.Strengths) != 1 || parsed.Strengths[0] != "good greeting" {
		t.Errorf("Unexpected parse result: %+v", parsed)
	}
}

func TestExtractJSONMarkdownFence(t *testing.T) {
	text := "```json\n[{\"quote\": \"tell me more\", \"is_positive\": true}]\n```"
	payload, ok := ExtractJSON(text)
	if !ok {
		t.Fatal("Expected extraction to succeed")
	}
	var parsed []map[string]interface{}
	if err := json.Unmarshal(payload, &parsed); err != nil {
		t.Fatalf("Extracted payload does not parse: %v", err)
	}
	if len(parsed) != 1 {
		t.Errorf("Expected 1 element, got %d", len(parsed))
	}
}

func TestExtractJSONHonorsBracesInsideStrings(t *testing.T) {
	text := `{"quote": "he said {hello} to me", "ok": true}`
	payload, ok := ExtractJSON(text)
	if !ok {
		t.Fatal("Expected extraction to succeed")
	}
	var parsed struct {
		Quote string `json:"quote"`
	}
	if err := json.Unmarshal(payload, &parsed); err != nil {
		t.Fatalf("Extracted payload does not parse: %v", err)
	}
	if parsed.Quote != "he said {hello} to me" {
		t.Errorf("Braces inside string mangled: %q", parsed.Quote)
	}
}

func TestExtractJSONSkipsEarlierFalseStart(t *testing.T) {
	// The first bracket never closes; the extractor should move on and
	// find the later valid object.
	text := `broken { fragment and then {"valid": true}`
	payload, ok := ExtractJSON(text)
	if !ok {
		t.Fatal("Expected extraction to succeed")
	}
	var parsed struct {
		Valid bool `json:"valid"`
	}
	if err := json.Unmarshal(payload, &parsed); err != nil {
		t.Fatalf("Extracted payload does not parse: %v", err)
	}
	if !parsed.Valid {
		t.Error("Expected the later valid object to be extracted")
	}
}

func TestExtractJSONFailsCleanly(t *testing.T) {
	for _, text := range []string{
		"",
		"no json here at all",
		`{"truncated": [1, 2`,
	} {
		if payload, ok := ExtractJSON(text); ok {
			t.Errorf("Expected failure for %q, got %s", text, payload)
		}
	}
}
