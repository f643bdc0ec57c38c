package safety

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// DefaultTimeout bounds one classifier round-trip. A slow classifier is a
// recoverable per-call failure, not a process fault.
const DefaultTimeout = 10 * time.Second

// NinjaProfanityClient checks text against the api-ninjas profanity filter.
type NinjaProfanityClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewNinjaProfanityClient creates a profanity client with the given API key.
func NewNinjaProfanityClient(apiKey string) *NinjaProfanityClient {
	return &NinjaProfanityClient{
		apiKey:     apiKey,
		baseURL:    "https://api.api-ninjas.com/v1/profanityfilter",
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}
}

// WithBaseURL overrides the endpoint, used by tests.
func (c *NinjaProfanityClient) WithBaseURL(baseURL string) *NinjaProfanityClient {
	c.baseURL = baseURL
	return c
}

// Check reports whether text contains profanity.
func (c *NinjaProfanityClient) Check(ctx context.Context, text string) (bool, error) {
	endpoint := fmt.Sprintf("%s?text=%s", c.baseURL, url.QueryEscape(text))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return false, fmt.Errorf("failed to create profanity request: %w", err)
	}
	req.Header.Set("X-Api-Key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("profanity request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("profanity API returned status %d", resp.StatusCode)
	}

	var body struct {
		HasProfanity bool `json:"has_profanity"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return false, fmt.Errorf("failed to decode profanity response: %w", err)
	}
	return body.HasProfanity, nil
}

// HTTPGibberishClassifier calls a text-quality classifier service that
// returns a label and a confidence score.
type HTTPGibberishClassifier struct {
	endpoint   string
	httpClient *http.Client
}

// NewHTTPGibberishClassifier creates a gibberish classifier against the
// given endpoint.
func NewHTTPGibberishClassifier(endpoint string) *HTTPGibberishClassifier {
	return &HTTPGibberishClassifier{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}
}

// Classify posts text to the classifier and returns its label and score.
func (c *HTTPGibberishClassifier) Classify(ctx context.Context, text string) (string, float64, error) {
	payload, err := json.Marshal(map[string]string{"text": text})
	if err != nil {
		return "", 0, fmt.Errorf("failed to marshal gibberish request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", 0, fmt.Errorf("failed to create gibberish request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", 0, fmt.Errorf("gibberish request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", 0, fmt.Errorf("gibberish classifier returned status %d", resp.StatusCode)
	}

	var body struct {
		Label string  `json:"label"`
		Score float64 `json:"score"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", 0, fmt.Errorf("failed to decode gibberish response: %w", err)
	}
	return body.Label, body.Score, nil
}
