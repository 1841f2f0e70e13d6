package services

import (
	"encoding/json"
	"strings"
)

// ExtractJSON finds the first balanced JSON object or array inside a model
// response that may be wrapped in prose or markdown fences. It returns the
// raw payload and true on success; otherwise nil and false, so callers can
// activate their fallback without inspecting an error.
func ExtractJSON(text string) ([]byte, bool) {
	cleaned := stripCodeFences(text)

	start := strings.IndexAny(cleaned, "{[")
	for start >= 0 {
		if candidate, ok := balancedFrom(cleaned[start:]); ok {
			if json.Valid([]byte(candidate)) {
				return []byte(candidate), true
			}
		}
		next := strings.IndexAny(cleaned[start+1:], "{[")
		if next < 0 {
			break
		}
		start += 1 + next
	}

	// Last resort: the whole response may already be valid JSON
	trimmed := strings.TrimSpace(cleaned)
	if json.Valid([]byte(trimmed)) {
		return []byte(trimmed), true
	}
	return nil, false
}

// balancedFrom returns the shortest prefix of s that closes the bracket it
// opens with, honoring string literals and escapes.
func balancedFrom(s string) (string, bool) {
	depth := 0
	inString := false
	escaped := false

	for i := 0; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{', '[':
			depth++
		case '}', ']':
			depth--
			if depth == 0 {
				return s[:i+1], true
			}
		}
	}
	return "", false
}

func stripCodeFences(text string) string {
	cleaned := strings.TrimSpace(text)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```JSON")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	return strings.TrimSpace(cleaned)
}
