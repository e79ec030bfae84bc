package postgres_adapter

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"dar360-service/internal/contextkeys"
	"dar360-service/internal/core/domain"
	"dar360-service/internal/core/port"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ViewingRepository implements ViewingRepositoryPort for PostgreSQL. The
// upcoming/past split is a date predicate, nothing is stored.
type ViewingRepository struct {
	pool *pgxpool.Pool
}

func NewViewingRepository(pool *pgxpool.Pool) (*ViewingRepository, error) {
	if pool == nil {
		return nil, fmt.Errorf("pgxpool.Pool cannot be nil")
	}
	return &ViewingRepository{pool: pool}, nil
}

const viewingSelect = `SELECT v.id, v.property_id, v.tenant_name, v.tenant_phone, v.date, v.time_slot,
	v.outcome, v.notes, v.cancelled_at, v.created_at, p.title, p.area
	FROM viewings v JOIN properties p ON p.id = v.property_id`

func scanViewing(row pgx.Row) (*domain.Viewing, error) {
	var viewing domain.Viewing
	err := row.Scan(
		&viewing.ID,
		&viewing.PropertyID,
		&viewing.TenantName,
		&viewing.TenantPhone,
		&viewing.Date,
		&viewing.TimeSlot,
		&viewing.Outcome,
		&viewing.Notes,
		&viewing.CancelledAt,
		&viewing.CreatedAt,
		&viewing.PropertyTitle,
		&viewing.PropertyArea,
	)
	if err != nil {
		return nil, err
	}
	return &viewing, nil
}

func (r *ViewingRepository) Create(ctx context.Context, viewing *domain.Viewing) error {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component":  "ViewingRepository",
		"method":     "Create",
		"viewing_id": viewing.ID.String(),
	})

	query := `INSERT INTO viewings (id, property_id, tenant_name, tenant_phone, date, time_slot,
		outcome, notes, cancelled_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	repoLogger.Debug("Executing query to create viewing.", nil)
	_, err := r.pool.Exec(ctx, query,
		viewing.ID, viewing.PropertyID, viewing.TenantName, viewing.TenantPhone,
		viewing.Date, viewing.TimeSlot, viewing.Outcome, viewing.Notes,
		viewing.CancelledAt, viewing.CreatedAt)
	if err != nil {
		repoLogger.Error("Failed to create viewing", err, port.Fields{"query": query})
		return fmt.Errorf("failed to create viewing: %w", err)
	}
	return nil
}

func (r *ViewingRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Viewing, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component":  "ViewingRepository",
		"method":     "FindByID",
		"viewing_id": id.String(),
	})

	query := viewingSelect + ` WHERE v.id = $1`

	viewing, err := scanViewing(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			repoLogger.Warn("Viewing not found by ID.", nil)
			return nil, nil
		}
		repoLogger.Error("Failed to find viewing by ID", err, port.Fields{"query": query})
		return nil, fmt.Errorf("failed to find viewing by id: %w", err)
	}
	return viewing, nil
}

func (r *ViewingRepository) List(ctx context.Context, filter port.ViewingFilter) ([]*domain.Viewing, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component": "ViewingRepository",
		"method":    "List",
	})

	conditions := []string{}
	args := make([]interface{}, 0)
	argID := 1

	if filter.PropertyID != nil {
		conditions = append(conditions, fmt.Sprintf("v.property_id = $%d", argID))
		args = append(args, *filter.PropertyID)
		argID++
	}
	if !filter.IncludeCancelled {
		conditions = append(conditions, "v.cancelled_at IS NULL")
	}
	if filter.When != nil {
		now := filter.Now
		if now.IsZero() {
			now = time.Now()
		}
		today := now.UTC().Truncate(24 * time.Hour)
		if *filter.When == port.ViewingUpcoming {
			conditions = append(conditions, fmt.Sprintf("v.date >= $%d", argID))
		} else {
			conditions = append(conditions, fmt.Sprintf("v.date < $%d", argID))
		}
		args = append(args, today)
		argID++
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	// Upcoming viewings read soonest-first, past ones most-recent-first.
	order := "v.date ASC, v.time_slot ASC"
	if filter.When != nil && *filter.When == port.ViewingPast {
		order = "v.date DESC, v.time_slot DESC"
	}

	query := fmt.Sprintf(`%s %s ORDER BY %s LIMIT $%d OFFSET $%d`,
		viewingSelect, whereClause, order, argID, argID+1)
	args = append(args, normalizeLimit(filter.Limit), filter.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		repoLogger.Error("Failed to list viewings", err, port.Fields{"query": query})
		return nil, fmt.Errorf("failed to list viewings: %w", err)
	}
	defer rows.Close()

	viewings := make([]*domain.Viewing, 0)
	for rows.Next() {
		viewing, err := scanViewing(rows)
		if err != nil {
			repoLogger.Error("Failed to scan viewing row", err, nil)
			return nil, fmt.Errorf("failed to scan viewing row: %w", err)
		}
		viewings = append(viewings, viewing)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate viewing rows: %w", err)
	}
	return viewings, nil
}

func (r *ViewingRepository) Update(ctx context.Context, viewing *domain.Viewing) error {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component":  "ViewingRepository",
		"method":     "Update",
		"viewing_id": viewing.ID.String(),
	})

	query := `UPDATE viewings
		SET tenant_name = $2, tenant_phone = $3, date = $4, time_slot = $5,
		    outcome = $6, notes = $7, cancelled_at = $8
		WHERE id = $1`

	cmdTag, err := r.pool.Exec(ctx, query,
		viewing.ID, viewing.TenantName, viewing.TenantPhone, viewing.Date,
		viewing.TimeSlot, viewing.Outcome, viewing.Notes, viewing.CancelledAt)
	if err != nil {
		repoLogger.Error("Failed to update viewing", err, port.Fields{"query": query})
		return fmt.Errorf("failed to update viewing: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		repoLogger.Warn("Update affected no rows.", nil)
	}
	return nil
}
