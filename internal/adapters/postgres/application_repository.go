package postgres_adapter

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"dar360-service/internal/contextkeys"
	"dar360-service/internal/core/domain"
	"dar360-service/internal/core/port"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ApplicationRepository implements ApplicationRepositoryPort for PostgreSQL.
type ApplicationRepository struct {
	pool *pgxpool.Pool
}

func NewApplicationRepository(pool *pgxpool.Pool) (*ApplicationRepository, error) {
	if pool == nil {
		return nil, fmt.Errorf("pgxpool.Pool cannot be nil")
	}
	return &ApplicationRepository{pool: pool}, nil
}

// The agent contact comes through the property's assigned agent, when set.
const applicationSelect = `SELECT a.id, a.property_id, a.tenant_id, a.status, a.notes,
	a.applied_at, a.decided_at, p.title, p.area,
	COALESCE(p.images[1], ''), p.rent,
	COALESCE(ag.name, ''), COALESCE(ag.phone, '')
	FROM applications a
	JOIN properties p ON p.id = a.property_id
	LEFT JOIN users ag ON ag.id = p.agent_id`

func scanApplication(row pgx.Row) (*domain.Application, error) {
	var application domain.Application
	err := row.Scan(
		&application.ID,
		&application.PropertyID,
		&application.TenantID,
		&application.Status,
		&application.Notes,
		&application.AppliedAt,
		&application.DecidedAt,
		&application.PropertyTitle,
		&application.PropertyArea,
		&application.PropertyImage,
		&application.Rent,
		&application.AgentName,
		&application.AgentPhone,
	)
	if err != nil {
		return nil, err
	}
	return &application, nil
}

func (r *ApplicationRepository) Create(ctx context.Context, application *domain.Application) error {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component":      "ApplicationRepository",
		"method":         "Create",
		"application_id": application.ID.String(),
	})

	query := `INSERT INTO applications (id, property_id, tenant_id, status, notes, applied_at, decided_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	repoLogger.Debug("Executing query to create application.", nil)
	_, err := r.pool.Exec(ctx, query,
		application.ID, application.PropertyID, application.TenantID,
		application.Status, application.Notes, application.AppliedAt, application.DecidedAt)
	if err != nil {
		repoLogger.Error("Failed to create application", err, port.Fields{"query": query})
		return fmt.Errorf("failed to create application: %w", err)
	}
	return nil
}

func (r *ApplicationRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Application, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component":      "ApplicationRepository",
		"method":         "FindByID",
		"application_id": id.String(),
	})

	query := applicationSelect + ` WHERE a.id = $1`

	application, err := scanApplication(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			repoLogger.Warn("Application not found by ID.", nil)
			return nil, nil
		}
		repoLogger.Error("Failed to find application by ID", err, port.Fields{"query": query})
		return nil, fmt.Errorf("failed to find application by id: %w", err)
	}
	return application, nil
}

func (r *ApplicationRepository) List(ctx context.Context, filter port.ApplicationFilter) ([]*domain.Application, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component": "ApplicationRepository",
		"method":    "List",
	})

	conditions := []string{}
	args := make([]interface{}, 0)
	argID := 1

	if filter.Status != nil {
		conditions = append(conditions, fmt.Sprintf("a.status = $%d", argID))
		args = append(args, *filter.Status)
		argID++
	}
	if filter.TenantID != nil {
		conditions = append(conditions, fmt.Sprintf("a.tenant_id = $%d", argID))
		args = append(args, *filter.TenantID)
		argID++
	}
	if filter.PropertyID != nil {
		conditions = append(conditions, fmt.Sprintf("a.property_id = $%d", argID))
		args = append(args, *filter.PropertyID)
		argID++
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	query := fmt.Sprintf(`%s %s ORDER BY a.applied_at DESC LIMIT $%d OFFSET $%d`,
		applicationSelect, whereClause, argID, argID+1)
	args = append(args, normalizeLimit(filter.Limit), filter.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		repoLogger.Error("Failed to list applications", err, port.Fields{"query": query})
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	defer rows.Close()

	applications := make([]*domain.Application, 0)
	for rows.Next() {
		application, err := scanApplication(rows)
		if err != nil {
			repoLogger.Error("Failed to scan application row", err, nil)
			return nil, fmt.Errorf("failed to scan application row: %w", err)
		}
		applications = append(applications, application)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate application rows: %w", err)
	}
	return applications, nil
}

const updateApplicationQuery = `UPDATE applications
	SET status = $2, notes = $3, decided_at = $4
	WHERE id = $1`

func (r *ApplicationRepository) Update(ctx context.Context, application *domain.Application) error {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component":      "ApplicationRepository",
		"method":         "Update",
		"application_id": application.ID.String(),
	})

	cmdTag, err := r.pool.Exec(ctx, updateApplicationQuery,
		application.ID, application.Status, application.Notes, application.DecidedAt)
	if err != nil {
		repoLogger.Error("Failed to update application", err, nil)
		return fmt.Errorf("failed to update application: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		repoLogger.Warn("Update affected no rows.", nil)
	}
	return nil
}

// Approve applies the approval atomically: the decided application, the
// linked draft contract and the reserved property.
func (r *ApplicationRepository) Approve(ctx context.Context, application *domain.Application,
	contract *domain.Contract, property *domain.Property) error {

	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component":      "ApplicationRepository",
		"method":         "Approve",
		"application_id": application.ID.String(),
		"contract_id":    contract.ID.String(),
	})

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		repoLogger.Error("Failed to begin transaction", err, nil)
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, updateApplicationQuery,
		application.ID, application.Status, application.Notes, application.DecidedAt); err != nil {
		repoLogger.Error("Failed to update application in approval transaction", err, nil)
		return fmt.Errorf("failed to update application: %w", err)
	}

	if _, err := tx.Exec(ctx, insertContractQuery, contractInsertArgs(contract)...); err != nil {
		repoLogger.Error("Failed to insert contract in approval transaction", err, nil)
		return fmt.Errorf("failed to insert contract: %w", err)
	}

	propertyQuery := `UPDATE properties SET status = $2, updated_at = $3 WHERE id = $1`
	if _, err := tx.Exec(ctx, propertyQuery, property.ID, property.Status, property.UpdatedAt); err != nil {
		repoLogger.Error("Failed to update property in approval transaction", err, nil)
		return fmt.Errorf("failed to update property: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		repoLogger.Error("Failed to commit approval transaction", err, nil)
		return fmt.Errorf("failed to commit approval transaction: %w", err)
	}

	repoLogger.Debug("Approval transaction committed.", nil)
	return nil
}
