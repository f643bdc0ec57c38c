package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Role tags a chat message with its speaker.
type Role string

// Chat roles. A system message, when present, must be first.
const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one role-tagged turn in a completion request.
type Message struct {
	Role    Role
	Content string
}

// System returns a system-role message.
func System(content string) Message { return Message{Role: RoleSystem, Content: content} }

// User returns a user-role message.
func User(content string) Message { return Message{Role: RoleUser, Content: content} }

// Assistant returns an assistant-role message.
func Assistant(content string) Message { return Message{Role: RoleAssistant, Content: content} }

// Client is an abstraction over LLM providers
type Client interface {
	// Complete generates a text reply to the given messages
	Complete(ctx context.Context, messages []Message, tier ModelTier) (string, error)
	// CompleteJSON generates a reply constrained to JSON output, with any
	// markdown code fences stripped
	CompleteJSON(ctx context.Context, messages []Message, tier ModelTier) (string, error)
	// Close releases any resources held by the client
	Close() error
}

// NewClient creates a new LLM client based on configuration
func NewClient(ctx context.Context, config *Config, apiKey string) (Client, error) {
	if config == nil {
		config = DefaultConfig()
	}

	switch config.Provider {
	case ProviderGemini:
		return NewGeminiClient(ctx, config, apiKey)
	default:
		return NewGeminiClient(ctx, config, apiKey)
	}
}

// GeminiClient implements Client for Google Gemini
type GeminiClient struct {
	client *genai.Client
	config *Config
}

// NewGeminiClient creates a new Gemini client
func NewGeminiClient(ctx context.Context, config *Config, apiKey string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiClient{
		client: client,
		config: config,
	}, nil
}

// Complete generates a text reply to the given messages
func (c *GeminiClient) Complete(ctx context.Context, messages []Message, tier ModelTier) (string, error) {
	model, parts, err := c.prepare(messages, tier)
	if err != nil {
		return "", err
	}
	model.SetTemperature(0.3)

	resp, err := model.GenerateContent(ctx, parts...)
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	return extractTextFromResponse(resp)
}

// CompleteJSON generates a reply constrained to JSON output
func (c *GeminiClient) CompleteJSON(ctx context.Context, messages []Message, tier ModelTier) (string, error) {
	model, parts, err := c.prepare(messages, tier)
	if err != nil {
		return "", err
	}
	model.SetTemperature(0.1) // Low temperature for consistent output
	model.ResponseMIMEType = "application/json"

	resp, err := model.GenerateContent(ctx, parts...)
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	text, err := extractTextFromResponse(resp)
	if err != nil {
		return "", err
	}

	return CleanJSONBlock(text), nil
}

// Close releases resources held by the client
func (c *GeminiClient) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// prepare resolves the model for a tier and flattens messages into Gemini
// parts. The system message becomes the model's system instruction; user and
// assistant turns are rendered as alternating prompt lines because the agent
// only ever sends short history windows.
func (c *GeminiClient) prepare(messages []Message, tier ModelTier) (*genai.GenerativeModel, []genai.Part, error) {
	modelName := c.config.GetModel(tier)
	if modelName == "" {
		return nil, nil, fmt.Errorf("no model configured for tier %s", tier)
	}

	model := c.client.GenerativeModel(modelName)

	var prompt strings.Builder
	for _, msg := range messages {
		switch msg.Role {
		case RoleSystem:
			model.SystemInstruction = &genai.Content{
				Parts: []genai.Part{genai.Text(msg.Content)},
			}
		case RoleAssistant:
			prompt.WriteString("Assistant: ")
			prompt.WriteString(msg.Content)
			prompt.WriteString("\n")
		default:
			if prompt.Len() > 0 {
				prompt.WriteString("User: ")
			}
			prompt.WriteString(msg.Content)
			prompt.WriteString("\n")
		}
	}

	text := strings.TrimSpace(prompt.String())
	if text == "" {
		return nil, nil, fmt.Errorf("no user content in messages")
	}

	return model, []genai.Part{genai.Text(text)}, nil
}

// extractTextFromResponse extracts text from a Gemini API response
func extractTextFromResponse(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no candidates in response")
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", fmt.Errorf("no content in response")
	}

	var parts []string
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			parts = append(parts, string(text))
		}
	}

	if len(parts) == 0 {
		return "", fmt.Errorf("no text parts in response")
	}

	return strings.Join(parts, ""), nil
}
