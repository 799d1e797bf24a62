package agent

import (
	"encoding/json"
	"fmt"
	"strings"
)

// TaskIntent is the structured form of a natural-language task request.
// It mirrors the create_task body fields.
type TaskIntent struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Status      string `json:"status,omitempty"`
	Priority    int    `json:"priority,omitempty"`
}

// Validate checks that the intent can be turned into a create_task call.
func (ti *TaskIntent) Validate() error {
	if strings.TrimSpace(ti.Name) == "" {
		return fmt.Errorf("intent has no task name")
	}
	if ti.Priority < 0 || ti.Priority > 4 {
		return fmt.Errorf("priority %d out of range (1=urgent .. 4=low, 0=unset)", ti.Priority)
	}
	return nil
}

// ParseIntent extracts a TaskIntent from raw model output.
// Models wrap JSON in markdown fences or surround it with prose more
// often than not, so the parser scans for the first balanced JSON
// object instead of unmarshaling the whole string.
func ParseIntent(content string) (*TaskIntent, error) {
	raw, err := extractJSONObject(content)
	if err != nil {
		return nil, err
	}

	var intent TaskIntent
	if err := json.Unmarshal([]byte(raw), &intent); err != nil {
		return nil, fmt.Errorf("parse intent JSON: %w", err)
	}
	if err := intent.Validate(); err != nil {
		return nil, err
	}
	return &intent, nil
}

// extractJSONObject returns the first balanced top-level JSON object in s.
// Braces inside JSON strings are ignored.
func extractJSONObject(s string) (string, error) {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return "", fmt.Errorf("no JSON object in model output")
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
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
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1], nil
			}
		}
	}

	return "", fmt.Errorf("unterminated JSON object in model output")
}
