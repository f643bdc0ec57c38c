// Package llmtest provides a scripted fake LLM client for tests.
package llmtest

import (
	"context"
	"sync"

	"github.com/askasha/asha-agent/internal/llm"
)

// Call records one completion request made against the fake.
type Call struct {
	Messages []llm.Message
	Tier     llm.ModelTier
	JSON     bool
}

// Fake is an llm.Client that replays scripted responses in order. When the
// script is exhausted it keeps returning the last entry.
type Fake struct {
	mu        sync.Mutex
	responses []Response
	next      int
	calls     []Call
}

// Response is one scripted reply. A non-nil Err is returned instead of Text.
type Response struct {
	Text string
	Err  error
}

// NewFake builds a fake client from scripted responses.
func NewFake(responses ...Response) *Fake {
	return &Fake{responses: responses}
}

// Reply is shorthand for a successful response.
func Reply(text string) Response { return Response{Text: text} }

// Fail is shorthand for an error response.
func Fail(err error) Response { return Response{Err: err} }

// Complete implements llm.Client.
func (f *Fake) Complete(_ context.Context, messages []llm.Message, tier llm.ModelTier) (string, error) {
	return f.record(messages, tier, false)
}

// CompleteJSON implements llm.Client.
func (f *Fake) CompleteJSON(_ context.Context, messages []llm.Message, tier llm.ModelTier) (string, error) {
	text, err := f.record(messages, tier, true)
	if err != nil {
		return "", err
	}
	return llm.CleanJSONBlock(text), nil
}

// Close implements llm.Client.
func (f *Fake) Close() error { return nil }

// Calls returns every request made so far.
func (f *Fake) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Call, len(f.calls))
	copy(out, f.calls)
	return out
}

// CallCount returns the number of requests made so far.
func (f *Fake) CallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *Fake) record(messages []llm.Message, tier llm.ModelTier, isJSON bool) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls = append(f.calls, Call{Messages: messages, Tier: tier, JSON: isJSON})

	if len(f.responses) == 0 {
		return "", nil
	}
	resp := f.responses[f.next]
	if f.next < len(f.responses)-1 {
		f.next++
	}
	if resp.Err != nil {
		return "", resp.Err
	}
	return resp.Text, nil
}
