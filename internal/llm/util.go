// Package llm - util.go provides shared utilities for LLM response processing.
package llm

import "strings"

// CleanJSONBlock removes markdown code fence wrappers from JSON responses.
// Models often wrap JSON in ```json ... ``` blocks even when instructed not
// to. Content is only unwrapped when both a leading and a trailing fence are
// present; anything else is returned as-is.
func CleanJSONBlock(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") || !strings.HasSuffix(text, "```") {
		return text
	}

	inner := strings.TrimPrefix(text, "```")
	inner = strings.TrimSuffix(inner, "```")

	// Skip a language identifier on the opening fence line ("json", "JSON").
	if idx := strings.Index(inner, "\n"); idx >= 0 {
		firstLine := strings.TrimSpace(inner[:idx])
		if firstLine != "" && len(firstLine) < 20 && !strings.ContainsAny(firstLine, " {[") {
			inner = inner[idx+1:]
		}
	}

	return strings.TrimSpace(inner)
}
