// Package interview runs mock interviews across multiple calls. Each
// session walks a linear stage machine: collect the target role, the
// candidate's experience and skills, then interview and conclude.
package interview

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/askasha/asha-agent/internal/types"
)

// Stage is a session's position in the interview flow.
type Stage string

// Stages, in order. Sessions only ever move forward.
const (
	StageAskRole       Stage = "ask_role"
	StageAskExperience Stage = "ask_experience"
	StageAskSkills     Stage = "ask_skills"
	StageStartInterview Stage = "start_interview"
	StageInterviewing  Stage = "interviewing"
	StageConcluding    Stage = "concluding"
)

// Session is the mutable per-interview state. Callers must only mutate it
// through the conductor; the store hands out the same pointer across calls.
type Session struct {
	ID         string
	Stage      Stage
	Role       string
	Experience string
	Skills     string
	Transcript []types.ConversationTurn
	QuestionsAsked int
	CreatedAt  time.Time
}

// Store holds live sessions keyed by id. Sessions have no expiry; they
// live until explicitly ended.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewStore creates an empty session store.
func NewStore() *Store {
	return &Store{sessions: make(map[string]*Session)}
}

// Create starts a new session at the first stage and returns it.
func (s *Store) Create() *Session {
	session := &Session{
		ID:        uuid.NewString(),
		Stage:     StageAskRole,
		CreatedAt: time.Now(),
	}

	s.mu.Lock()
	s.sessions[session.ID] = session
	s.mu.Unlock()
	return session
}

// Get returns the session with the given id.
func (s *Store) Get(id string) (*Session, error) {
	s.mu.RLock()
	session, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("no interview session with id %q", id)
	}
	return session, nil
}

// Delete removes a session. Deleting an unknown id is a no-op.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
