package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/askasha/asha-agent/internal/types"
)

// ResumeProfileStore persists one resume profile per user as JSONB.
// Profiles are normalized to the typed shape before storage, so readers
// never re-parse education strings.
type ResumeProfileStore struct {
	db *DB
}

// NewResumeProfileStore creates a profile store over the database.
func NewResumeProfileStore(db *DB) *ResumeProfileStore {
	return &ResumeProfileStore{db: db}
}

// Save upserts the user's profile.
func (s *ResumeProfileStore) Save(ctx context.Context, userID string, profile *types.ResumeProfile) error {
	payload, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("failed to marshal resume profile: %w", err)
	}

	_, err = s.db.pool.Exec(ctx,
		`INSERT INTO resume_profiles (user_id, profile)
		 VALUES ($1, $2)
		 ON CONFLICT (user_id) DO UPDATE SET profile = $2, updated_at = NOW()`,
		userID, payload,
	)
	if err != nil {
		return fmt.Errorf("failed to save resume profile: %w", err)
	}
	return nil
}

// Get returns the user's profile, or nil when none is stored.
func (s *ResumeProfileStore) Get(ctx context.Context, userID string) (*types.ResumeProfile, error) {
	var payload []byte
	err := s.db.pool.QueryRow(ctx,
		`SELECT profile FROM resume_profiles WHERE user_id = $1`,
		userID,
	).Scan(&payload)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query resume profile: %w", err)
	}

	var profile types.ResumeProfile
	if err := json.Unmarshal(payload, &profile); err != nil {
		return nil, fmt.Errorf("failed to unmarshal resume profile: %w", err)
	}
	return &profile, nil
}

// Delete removes the user's profile. Deleting a missing profile is a no-op.
func (s *ResumeProfileStore) Delete(ctx context.Context, userID string) error {
	if _, err := s.db.pool.Exec(ctx,
		`DELETE FROM resume_profiles WHERE user_id = $1`, userID,
	); err != nil {
		return fmt.Errorf("failed to delete resume profile: %w", err)
	}
	return nil
}
