package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanJSONBlock(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "json fence with language tag",
			input:    "```json\n{\"keyword\": \"data\"}\n```",
			expected: `{"keyword": "data"}`,
		},
		{
			name:     "plain fence",
			input:    "```\n[1, 2, 3]\n```",
			expected: "[1, 2, 3]",
		},
		{
			name:     "no fences",
			input:    `{"keyword": "data"}`,
			expected: `{"keyword": "data"}`,
		},
		{
			name:     "leading fence only is left alone",
			input:    "```json\n{\"keyword\": \"data\"}",
			expected: "```json\n{\"keyword\": \"data\"}",
		},
		{
			name:     "surrounding whitespace",
			input:    "  ```json\n{}\n```  ",
			expected: "{}",
		},
		{
			name:     "fence with content on opening line",
			input:    "```{\"a\": 1}```",
			expected: `{"a": 1}`,
		},
		{
			name:     "empty input",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CleanJSONBlock(tt.input))
		})
	}
}

func TestMessageConstructors(t *testing.T) {
	assert.Equal(t, Message{Role: RoleSystem, Content: "s"}, System("s"))
	assert.Equal(t, Message{Role: RoleUser, Content: "u"}, User("u"))
	assert.Equal(t, Message{Role: RoleAssistant, Content: "a"}, Assistant("a"))
}

func TestConfigGetModel(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "gemini-2.5-flash-lite", cfg.GetModel(TierLite))
	assert.Equal(t, "gemini-2.5-flash", cfg.GetModel(TierStandard))

	// Unknown tier falls back to standard.
	assert.Equal(t, "gemini-2.5-flash", cfg.GetModel(ModelTier("advanced")))

	empty := &Config{Provider: ProviderGemini, Models: map[ModelTier]string{}}
	assert.Equal(t, "", empty.GetModel(TierLite))
}
