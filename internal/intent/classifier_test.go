package intent

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/askasha/asha-agent/internal/llm/llmtest"
	"github.com/askasha/asha-agent/internal/types"
)

func TestClassifyExactLabels(t *testing.T) {
	for _, label := range []string{"job_search", "job_guidance", "roadmap", "events", "normal_text"} {
		fake := llmtest.NewFake(llmtest.Reply(label))
		classifier := NewClassifier(fake)

		got := classifier.Classify(context.Background(), "some query")
		assert.Equal(t, types.Intent(label), got)
	}
}

func TestClassifyTrimsAndLowercases(t *testing.T) {
	fake := llmtest.NewFake(llmtest.Reply("  Job_Search \n"))
	classifier := NewClassifier(fake)

	got := classifier.Classify(context.Background(), "find jobs")
	assert.Equal(t, types.IntentJobSearch, got)
}

func TestClassifyLLMErrorDefaultsToNormalText(t *testing.T) {
	fake := llmtest.NewFake(llmtest.Fail(errors.New("rate limited")))
	classifier := NewClassifier(fake)

	got := classifier.Classify(context.Background(), "find jobs")
	assert.Equal(t, types.IntentNormalText, got)
}

func TestCoerceHeuristics(t *testing.T) {
	tests := []struct {
		raw  string
		want types.Intent
	}{
		{"this looks like a job search request", types.IntentJobSearch},
		{"job listing query", types.IntentJobSearch},
		{"find job postings", types.IntentJobSearch},
		{"job advice", types.IntentJobGuidance},
		{"jobs", types.IntentJobGuidance},
		{"learning roadmap", types.IntentRoadmap},
		{"career path", types.IntentRoadmap},
		{"the user wants to learn", types.IntentRoadmap},
		{"upcoming events", types.IntentEvents},
		{"workshop inquiry", types.IntentEvents},
		{"greeting", types.IntentNormalText},
		{"", types.IntentNormalText},
		{"カテゴリ不明", types.IntentNormalText},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, Coerce(tt.raw))
		})
	}
}

func TestClassifyAlwaysReturnsValidIntent(t *testing.T) {
	raws := []string{"", "   ", "JOB!!!", "gibberish", "42", "```json```", "job_search roadmap"}
	for _, raw := range raws {
		fake := llmtest.NewFake(llmtest.Reply(raw))
		classifier := NewClassifier(fake)
		got := classifier.Classify(context.Background(), "anything")
		assert.True(t, got.IsValid(), "raw %q produced invalid intent %q", raw, got)
	}
}
