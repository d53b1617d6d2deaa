// Package profile persists the user's onboarding answers and drives the onboarding flow
package profile

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ngmaloney/citybuddy/internal/models"
	"go.uber.org/zap"
)

const (
	profileKey    = "profile"
	onboardingKey = "onboarding_complete"

	// DefaultPostalCode is used when the user skips the postal code question
	DefaultPostalCode = "M5H 2N2"
)

// Store keeps the single user profile in the kv table
type Store struct {
	db                *sql.DB
	defaultPostalCode string
	logger            *zap.Logger
}

// NewStore creates a profile store over an open database.
// An empty defaultPostalCode uses DefaultPostalCode.
func NewStore(db *sql.DB, defaultPostalCode string, logger *zap.Logger) *Store {
	if strings.TrimSpace(defaultPostalCode) == "" {
		defaultPostalCode = DefaultPostalCode
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		db:                db,
		defaultPostalCode: defaultPostalCode,
		logger:            logger,
	}
}

// DefaultPostalCode returns the postal code used to backfill profiles
func (s *Store) DefaultPostalCode() string {
	return s.defaultPostalCode
}

// SaveProfile replaces the stored profile
func (s *Store) SaveProfile(ctx context.Context, p models.UserProfile) error {
	if err := p.Validate(); err != nil {
		return fmt.Errorf("invalid profile: %w", err)
	}
	if err := s.put(ctx, profileKey, p); err != nil {
		return fmt.Errorf("saving profile: %w", err)
	}
	return nil
}

// GetProfile returns the stored profile, or nil when none exists.
// A profile without a postal code is given the default one and written back.
func (s *Store) GetProfile(ctx context.Context) (*models.UserProfile, error) {
	var p models.UserProfile
	found, err := s.get(ctx, profileKey, &p)
	if err != nil {
		return nil, fmt.Errorf("loading profile: %w", err)
	}
	if !found {
		return nil, nil
	}

	if strings.TrimSpace(p.PostalCode) == "" {
		p.PostalCode = s.defaultPostalCode
		if err := s.put(ctx, profileKey, p); err != nil {
			return nil, fmt.Errorf("backfilling postal code: %w", err)
		}
		s.logger.Info("backfilled default postal code", zap.String("postal_code", p.PostalCode))
	}

	return &p, nil
}

// SetOnboardingComplete stores the onboarding flag
func (s *Store) SetOnboardingComplete(ctx context.Context, complete bool) error {
	if err := s.put(ctx, onboardingKey, complete); err != nil {
		return fmt.Errorf("saving onboarding flag: %w", err)
	}
	return nil
}

// IsOnboardingComplete reports the onboarding flag. Read errors count as not complete.
func (s *Store) IsOnboardingComplete(ctx context.Context) bool {
	var complete bool
	found, err := s.get(ctx, onboardingKey, &complete)
	if err != nil {
		s.logger.Warn("reading onboarding flag", zap.Error(err))
		return false
	}
	return found && complete
}

// Reset deletes the profile and the onboarding flag
func (s *Store) Reset(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM kv WHERE key IN (?, ?)`, profileKey, onboardingKey)
	if err != nil {
		return fmt.Errorf("resetting profile: %w", err)
	}
	return nil
}

func (s *Store) get(ctx context.Context, key string, v any) (bool, error) {
	var raw string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("querying %s: %w", key, err)
	}

	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return false, fmt.Errorf("decoding %s: %w", key, err)
	}
	return true, nil
}

func (s *Store) put(ctx context.Context, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO kv (key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at
	`, key, string(raw), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("writing %s: %w", key, err)
	}
	return nil
}
