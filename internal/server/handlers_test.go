package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askasha/asha-agent/internal/agent"
	"github.com/askasha/asha-agent/internal/config"
	"github.com/askasha/asha-agent/internal/interview"
	"github.com/askasha/asha-agent/internal/jobsearch"
	"github.com/askasha/asha-agent/internal/llm/llmtest"
	"github.com/askasha/asha-agent/internal/respond"
	"github.com/askasha/asha-agent/internal/safety"
	"github.com/askasha/asha-agent/internal/types"
)

func newTestServer(t *testing.T, fake *llmtest.Fake, jwt *JWTService) *Server {
	t.Helper()
	t.Setenv("RATE_LIMIT_DISABLED", "true")

	templates := respond.NewStaticTemplates()
	formatter := respond.NewFormatter(templates, nil)
	agg := jobsearch.NewAggregator(jobsearch.NewRegistry())
	orch := agent.New(fake, safety.NewFilter(nil, nil), agg, nil, templates, formatter)
	conductor := interview.NewConductor(fake, interview.NewStore())

	return New(Config{Port: 0}, Deps{
		Orchestrator: orch,
		Conductor:    conductor,
		JWT:          jwt,
	})
}

func postJSON(t *testing.T, s *Server, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.httpServer.Handler.ServeHTTP(rec, req)
	return rec
}

func TestHandleHealth(t *testing.T) {
	s := newTestServer(t, llmtest.NewFake(), nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	s.httpServer.Handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status": "ok"}`, rec.Body.String())
}

func TestHandleChat(t *testing.T) {
	fake := llmtest.NewFake(
		llmtest.Reply("normal_text"),
		llmtest.Reply("Hello! How can I help your career today?"),
	)
	s := newTestServer(t, fake, nil)

	rec := postJSON(t, s, "/chat", "", map[string]any{
		"user_id": "user-1",
		"message": "hi there",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var env types.ResponseEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.Equal(t, types.CanvasNone, env.CanvasType)
	assert.NotEmpty(t, env.Text)
}

func TestHandleChatValidation(t *testing.T) {
	s := newTestServer(t, llmtest.NewFake(), nil)

	rec := postJSON(t, s, "/chat", "", map[string]any{"user_id": "user-1"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	req := httptest.NewRequest(http.MethodPost, "/chat", bytes.NewReader([]byte("{not json")))
	rr := httptest.NewRecorder()
	s.httpServer.Handler.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestHandleChatAuth(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	jwtCfg, err := config.NewJWTConfig()
	require.NoError(t, err)
	jwtService := NewJWTService(jwtCfg)

	fake := llmtest.NewFake(
		llmtest.Reply("normal_text"),
		llmtest.Reply("Hi!"),
	)
	s := newTestServer(t, fake, jwtService)

	// No token: rejected.
	rec := postJSON(t, s, "/chat", "", map[string]any{"user_id": "x", "message": "hi"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Garbage token: rejected.
	rec = postJSON(t, s, "/chat", "not-a-token", map[string]any{"user_id": "x", "message": "hi"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Valid token: the body's user_id is not required.
	token, err := jwtService.GenerateToken("user-42")
	require.NoError(t, err)
	rec = postJSON(t, s, "/chat", token, map[string]any{"message": "hi"})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestInterviewEndpoints(t *testing.T) {
	fake := llmtest.NewFake(llmtest.Reply("What is your greatest strength?"))
	s := newTestServer(t, fake, nil)

	req := httptest.NewRequest(http.MethodPost, "/interview/start-session", nil)
	rec := httptest.NewRecorder()
	s.httpServer.Handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var started startSessionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &started))
	assert.NotEmpty(t, started.SessionID)
	assert.NotEmpty(t, started.Message)

	rec = postJSON(t, s, "/interview/send-message", "", map[string]any{
		"session_id": started.SessionID,
		"message":    "Software engineer",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var sent sendMessageResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &sent))
	assert.False(t, sent.Done)
	assert.NotEmpty(t, sent.Message)

	rec = postJSON(t, s, "/interview/end-session", "", map[string]any{
		"session_id": started.SessionID,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	// The session is gone afterwards.
	rec = postJSON(t, s, "/interview/send-message", "", map[string]any{
		"session_id": started.SessionID,
		"message":    "hello?",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSendMessageUnknownSession(t *testing.T) {
	s := newTestServer(t, llmtest.NewFake(), nil)

	rec := postJSON(t, s, "/interview/send-message", "", map[string]any{
		"session_id": uuid.NewString(),
		"message":    "hello",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestJWTServiceRoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "round-trip-secret")
	cfg, err := config.NewJWTConfig()
	require.NoError(t, err)
	svc := NewJWTService(cfg)

	token, err := svc.GenerateToken("user-7")
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-7", claims.UserID)

	_, err = svc.ValidateToken("")
	assert.Error(t, err)
	_, err = svc.ValidateToken(token + "tampered")
	assert.Error(t, err)
}
