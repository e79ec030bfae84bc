package postgres_adapter

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dar360-service/internal/contextkeys"
	"dar360-service/internal/core/port"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ResetTokenRepository stores single-use password reset tokens.
type ResetTokenRepository struct {
	pool *pgxpool.Pool
}

func NewResetTokenRepository(pool *pgxpool.Pool) (*ResetTokenRepository, error) {
	if pool == nil {
		return nil, fmt.Errorf("pgxpool.Pool cannot be nil")
	}
	return &ResetTokenRepository{pool: pool}, nil
}

func (r *ResetTokenRepository) Create(ctx context.Context, token *port.ResetToken) error {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component": "ResetTokenRepository",
		"method":    "Create",
		"user_id":   token.UserID.String(),
	})

	// One live token per user: a new request replaces the old one.
	query := `INSERT INTO password_reset_tokens (token_hash, user_id, expires_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id) DO UPDATE SET token_hash = $1, expires_at = $3`

	_, err := r.pool.Exec(ctx, query, token.TokenHash, token.UserID, token.ExpiresAt)
	if err != nil {
		repoLogger.Error("Failed to store reset token", err, nil)
		return fmt.Errorf("failed to store reset token: %w", err)
	}
	return nil
}

// FindValid returns (nil, nil) when the token is unknown or expired.
func (r *ResetTokenRepository) FindValid(ctx context.Context, tokenHash string, now time.Time) (*port.ResetToken, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component": "ResetTokenRepository",
		"method":    "FindValid",
	})

	query := `SELECT token_hash, user_id, expires_at FROM password_reset_tokens
		WHERE token_hash = $1 AND expires_at > $2`

	var token port.ResetToken
	err := r.pool.QueryRow(ctx, query, tokenHash, now).Scan(&token.TokenHash, &token.UserID, &token.ExpiresAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			repoLogger.Warn("Reset token not found or expired.", nil)
			return nil, nil
		}
		repoLogger.Error("Failed to find reset token", err, nil)
		return nil, fmt.Errorf("failed to find reset token: %w", err)
	}
	return &token, nil
}

func (r *ResetTokenRepository) Consume(ctx context.Context, tokenHash string) error {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component": "ResetTokenRepository",
		"method":    "Consume",
	})

	query := `DELETE FROM password_reset_tokens WHERE token_hash = $1`

	_, err := r.pool.Exec(ctx, query, tokenHash)
	if err != nil {
		repoLogger.Error("Failed to consume reset token", err, nil)
		return fmt.Errorf("failed to consume reset token: %w", err)
	}
	return nil
}
