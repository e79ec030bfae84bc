package postgres_adapter

import (
	"context"
	"errors"
	"fmt"

	"dar360-service/internal/contextkeys"
	"dar360-service/internal/core/domain"
	"dar360-service/internal/core/port"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SavedPropertyRepository implements SavedPropertyRepositoryPort for
// PostgreSQL. Add and Remove are idempotent.
type SavedPropertyRepository struct {
	pool *pgxpool.Pool
}

func NewSavedPropertyRepository(pool *pgxpool.Pool) (*SavedPropertyRepository, error) {
	if pool == nil {
		return nil, fmt.Errorf("pgxpool.Pool cannot be nil")
	}
	return &SavedPropertyRepository{pool: pool}, nil
}

func (r *SavedPropertyRepository) Add(ctx context.Context, userID, propertyID uuid.UUID) error {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component":   "SavedPropertyRepository",
		"method":      "Add",
		"user_id":     userID,
		"property_id": propertyID,
	})

	repoLogger.Debug("Attempting to add saved property.", nil)
	query := `INSERT INTO saved_properties (user_id, property_id) VALUES ($1, $2)`

	_, err := r.pool.Exec(ctx, query, userID, propertyID)
	if err != nil {
		// A duplicate save hits the primary key; the bookmark already
		// exists, so the operation succeeded.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			repoLogger.Warn("Saved property already exists, operation considered successful.", nil)
			return nil
		}
		repoLogger.Error("Failed to add saved property", err, port.Fields{"query": query})
		return fmt.Errorf("failed to add saved property: %w", err)
	}
	return nil
}

func (r *SavedPropertyRepository) Remove(ctx context.Context, userID, propertyID uuid.UUID) error {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component":   "SavedPropertyRepository",
		"method":      "Remove",
		"user_id":     userID,
		"property_id": propertyID,
	})

	query := `DELETE FROM saved_properties WHERE user_id = $1 AND property_id = $2`

	cmdTag, err := r.pool.Exec(ctx, query, userID, propertyID)
	if err != nil {
		repoLogger.Error("Failed to remove saved property", err, port.Fields{"query": query})
		return fmt.Errorf("failed to remove saved property: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		repoLogger.Warn("Saved property did not exist, nothing removed.", nil)
	}
	return nil
}

func (r *SavedPropertyRepository) ListIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component": "SavedPropertyRepository",
		"method":    "ListIDs",
		"user_id":   userID,
	})

	query := `SELECT property_id FROM saved_properties WHERE user_id = $1 ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		repoLogger.Error("Failed to list saved property ids", err, port.Fields{"query": query})
		return nil, fmt.Errorf("failed to list saved property ids: %w", err)
	}
	defer rows.Close()

	ids := make([]uuid.UUID, 0)
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan saved property id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate saved property ids: %w", err)
	}
	return ids, nil
}

func (r *SavedPropertyRepository) ListProperties(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*domain.Property, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component": "SavedPropertyRepository",
		"method":    "ListProperties",
		"user_id":   userID,
	})

	query := propertySelect + ` JOIN saved_properties sp ON sp.property_id = p.id
		WHERE sp.user_id = $1
		ORDER BY sp.created_at DESC LIMIT $2 OFFSET $3`

	rows, err := r.pool.Query(ctx, query, userID, normalizeLimit(limit), offset)
	if err != nil {
		repoLogger.Error("Failed to list saved properties", err, port.Fields{"query": query})
		return nil, fmt.Errorf("failed to list saved properties: %w", err)
	}
	defer rows.Close()

	properties := make([]*domain.Property, 0)
	for rows.Next() {
		property, err := scanProperty(rows)
		if err != nil {
			repoLogger.Error("Failed to scan saved property row", err, nil)
			return nil, fmt.Errorf("failed to scan saved property row: %w", err)
		}
		properties = append(properties, property)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate saved property rows: %w", err)
	}
	return properties, nil
}
