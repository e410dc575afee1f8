package llm

import (
	"encoding/json"
	"fmt"
	"strings"
)

// errNoPayload is returned when no parseable structure could be located in
// the response text.
var errNoPayload = fmt.Errorf("no structured payload in response")

// ExtractObject locates a JSON object embedded in free text and unmarshals it
// into out. The model does not guarantee a clean response: the object may be
// wrapped in prose or a fenced code block.
func ExtractObject(raw string, out any) error {
	return extract(raw, "{", "}", out)
}

// ExtractArray locates a JSON array embedded in free text and unmarshals it
// into out.
func ExtractArray(raw string, out any) error {
	return extract(raw, "[", "]", out)
}

func extract(raw, opener, closer string, out any) error {
	clean := stripFences(strings.TrimSpace(raw))

	start := strings.Index(clean, opener)
	end := strings.LastIndex(clean, closer)
	if start < 0 || end <= start {
		return errNoPayload
	}
	clean = clean[start : end+1]

	if err := json.Unmarshal([]byte(clean), out); err != nil {
		return fmt.Errorf("failed to parse embedded payload: %w", err)
	}
	return nil
}

// stripFences removes a surrounding markdown code fence, with or without a
// language tag.
func stripFences(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if idx := strings.Index(s, "\n"); idx >= 0 {
		// Drop the language tag line ("json", "JSON", or empty).
		first := strings.TrimSpace(s[:idx])
		if len(first) <= 8 {
			s = s[idx+1:]
		}
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
