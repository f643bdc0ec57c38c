package store

import (
	"context"
	"fmt"

	"github.com/askasha/asha-agent/internal/types"
)

// ConversationStore persists chat history per user.
type ConversationStore struct {
	db *DB
}

// NewConversationStore creates a conversation store over the database.
func NewConversationStore(db *DB) *ConversationStore {
	return &ConversationStore{db: db}
}

// Append records one completed exchange for the user.
func (s *ConversationStore) Append(ctx context.Context, userID string, turn types.ConversationTurn) error {
	_, err := s.db.pool.Exec(ctx,
		`INSERT INTO conversation_turns (user_id, user_message, assistant_text)
		 VALUES ($1, $2, $3)`,
		userID, turn.UserMessage, turn.AssistantText,
	)
	if err != nil {
		return fmt.Errorf("failed to append conversation turn: %w", err)
	}
	return nil
}

// GetRecent returns the user's most recent turns, newest first. Callers
// that need chronological order must reverse the result; Chronological
// does both.
func (s *ConversationStore) GetRecent(ctx context.Context, userID string, limit int) ([]types.ConversationTurn, error) {
	rows, err := s.db.pool.Query(ctx,
		`SELECT user_message, assistant_text
		 FROM conversation_turns
		 WHERE user_id = $1
		 ORDER BY created_at DESC
		 LIMIT $2`,
		userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query conversation turns: %w", err)
	}
	defer rows.Close()

	var turns []types.ConversationTurn
	for rows.Next() {
		var turn types.ConversationTurn
		if err := rows.Scan(&turn.UserMessage, &turn.AssistantText); err != nil {
			return nil, fmt.Errorf("failed to scan conversation turn: %w", err)
		}
		turns = append(turns, turn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read conversation turns: %w", err)
	}
	return turns, nil
}

// Chronological returns the user's recent turns oldest first, ready to hand
// to the agent.
func (s *ConversationStore) Chronological(ctx context.Context, userID string, limit int) ([]types.ConversationTurn, error) {
	turns, err := s.GetRecent(ctx, userID, limit)
	if err != nil {
		return nil, err
	}
	Reverse(turns)
	return turns, nil
}

// Reverse flips a turn slice in place, converting between newest-first
// storage order and the chronological order handlers consume.
func Reverse(turns []types.ConversationTurn) {
	for i, j := 0, len(turns)-1; i < j; i, j = i+1, j-1 {
		turns[i], turns[j] = turns[j], turns[i]
	}
}
