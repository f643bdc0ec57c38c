package server

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/askasha/asha-agent/internal/agent"
	"github.com/askasha/asha-agent/internal/types"
)

// chatHistoryWindow is how many stored turns a chat request loads.
const chatHistoryWindow = 5

// chatRequest is the POST /chat body. UserID is overridden by the
// authenticated user when auth is enabled.
type chatRequest struct {
	UserID    string `json:"user_id" validate:"required"`
	Message   string `json:"message" validate:"required,min=1,max=4000"`
	UseResume bool   `json:"use_resume"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, &ErrValidation{Field: "body", Message: "invalid JSON"})
		return
	}
	if userID := authenticatedUser(r); userID != "" {
		req.UserID = userID
	}
	if err := s.validate.Struct(&req); err != nil {
		s.writeError(w, &ErrValidation{Field: "body", Message: err.Error()})
		return
	}

	ctx := r.Context()

	var history []types.ConversationTurn
	if s.conversations != nil {
		turns, err := s.conversations.Chronological(ctx, req.UserID, chatHistoryWindow)
		if err != nil {
			log.Printf("chat: history load failed for %s: %v", req.UserID, err)
		} else {
			history = turns
		}
	}

	var resume *types.ResumeProfile
	if s.profiles != nil {
		profile, err := s.profiles.Get(ctx, req.UserID)
		if err != nil {
			log.Printf("chat: profile load failed for %s: %v", req.UserID, err)
		} else {
			resume = profile
		}
	}

	env := s.orchestrator.Respond(ctx, agent.Request{
		Query:     req.Message,
		History:   history,
		Resume:    resume,
		UseResume: req.UseResume,
	})

	if s.conversations != nil {
		err := s.conversations.Append(ctx, req.UserID, types.ConversationTurn{
			UserMessage:   req.Message,
			AssistantText: env.Text,
		})
		if err != nil {
			log.Printf("chat: history append failed for %s: %v", req.UserID, err)
		}
	}

	s.writeJSON(w, http.StatusOK, env)
}

type startSessionResponse struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
}

func (s *Server) handleStartSession(w http.ResponseWriter, _ *http.Request) {
	session, opening := s.conductor.Start()
	s.writeJSON(w, http.StatusOK, startSessionResponse{
		SessionID: session.ID,
		Message:   opening,
	})
}

type sendMessageRequest struct {
	SessionID string `json:"session_id" validate:"required,uuid4"`
	Message   string `json:"message" validate:"required,min=1,max=4000"`
}

type sendMessageResponse struct {
	Message string `json:"message"`
	Done    bool   `json:"done"`
}

func (s *Server) handleSendMessage(w http.ResponseWriter, r *http.Request) {
	var req sendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, &ErrValidation{Field: "body", Message: "invalid JSON"})
		return
	}
	if err := s.validate.Struct(&req); err != nil {
		s.writeError(w, &ErrValidation{Field: "body", Message: err.Error()})
		return
	}

	reply, done, err := s.conductor.Send(r.Context(), req.SessionID, req.Message)
	if err != nil {
		s.writeError(w, &ErrSessionNotFound{SessionID: req.SessionID})
		return
	}
	s.writeJSON(w, http.StatusOK, sendMessageResponse{Message: reply, Done: done})
}

type endSessionRequest struct {
	SessionID string `json:"session_id" validate:"required,uuid4"`
}

type endSessionResponse struct {
	Feedback string `json:"feedback"`
}

func (s *Server) handleEndSession(w http.ResponseWriter, r *http.Request) {
	var req endSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, &ErrValidation{Field: "body", Message: "invalid JSON"})
		return
	}
	if err := s.validate.Struct(&req); err != nil {
		s.writeError(w, &ErrValidation{Field: "body", Message: err.Error()})
		return
	}

	feedback, err := s.conductor.End(r.Context(), req.SessionID)
	if err != nil {
		s.writeError(w, &ErrSessionNotFound{SessionID: req.SessionID})
		return
	}
	s.writeJSON(w, http.StatusOK, endSessionResponse{Feedback: feedback})
}
