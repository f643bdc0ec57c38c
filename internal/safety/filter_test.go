package safety

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGibberish struct {
	label string
	score float64
	err   error
}

func (f *fakeGibberish) Classify(_ context.Context, _ string) (string, float64, error) {
	return f.label, f.score, f.err
}

type fakeProfanity struct {
	profane bool
	err     error
}

func (f *fakeProfanity) Check(_ context.Context, _ string) (bool, error) {
	return f.profane, f.err
}

func TestFilterClassify(t *testing.T) {
	tests := []struct {
		name      string
		gibberish *fakeGibberish
		profanity *fakeProfanity
		want      Result
	}{
		{
			name:      "clean input",
			gibberish: &fakeGibberish{label: "clean", score: 0.99},
			profanity: &fakeProfanity{profane: false},
			want:      Result{},
		},
		{
			name:      "gibberish above threshold",
			gibberish: &fakeGibberish{label: "noise", score: 0.92},
			profanity: &fakeProfanity{},
			want:      Result{IsGibberish: true},
		},
		{
			name:      "gibberish below threshold passes",
			gibberish: &fakeGibberish{label: "noise", score: 0.79},
			profanity: &fakeProfanity{},
			want:      Result{},
		},
		{
			name:      "clean label with high score passes",
			gibberish: &fakeGibberish{label: "clean", score: 0.95},
			profanity: &fakeProfanity{},
			want:      Result{},
		},
		{
			name:      "profane input",
			gibberish: &fakeGibberish{label: "clean", score: 0.9},
			profanity: &fakeProfanity{profane: true},
			want:      Result{IsProfane: true},
		},
		{
			name:      "gibberish classifier failure fails open",
			gibberish: &fakeGibberish{err: errors.New("timeout")},
			profanity: &fakeProfanity{},
			want:      Result{},
		},
		{
			name:      "profanity classifier failure fails open",
			gibberish: &fakeGibberish{label: "clean", score: 0.9},
			profanity: &fakeProfanity{err: errors.New("service down")},
			want:      Result{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filter := NewFilter(tt.gibberish, tt.profanity)
			got := filter.Classify(context.Background(), "some input")
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFilterNilClassifiers(t *testing.T) {
	filter := NewFilter(nil, nil)
	result := filter.Classify(context.Background(), "anything")
	assert.Equal(t, Result{}, result)
}

func TestNinjaProfanityClient(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.Header.Get("X-Api-Key"))
		assert.Equal(t, "damn it", r.URL.Query().Get("text"))
		_, _ = w.Write([]byte(`{"has_profanity": true}`))
	}))
	defer srv.Close()

	client := NewNinjaProfanityClient("test-key").WithBaseURL(srv.URL)
	profane, err := client.Check(context.Background(), "damn it")
	require.NoError(t, err)
	assert.True(t, profane)
}

func TestNinjaProfanityClientErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client := NewNinjaProfanityClient("k").WithBaseURL(srv.URL)
	_, err := client.Check(context.Background(), "hello")
	assert.Error(t, err)
}

func TestHTTPGibberishClassifier(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		_, _ = w.Write([]byte(`{"label": "noise", "score": 0.91}`))
	}))
	defer srv.Close()

	client := NewHTTPGibberishClassifier(srv.URL)
	label, score, err := client.Classify(context.Background(), "asdfgh jkl")
	require.NoError(t, err)
	assert.Equal(t, "noise", label)
	assert.InDelta(t, 0.91, score, 0.001)
}
