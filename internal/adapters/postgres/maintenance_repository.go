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

// MaintenanceRepository implements MaintenanceRepositoryPort for PostgreSQL.
type MaintenanceRepository struct {
	pool *pgxpool.Pool
}

func NewMaintenanceRepository(pool *pgxpool.Pool) (*MaintenanceRepository, error) {
	if pool == nil {
		return nil, fmt.Errorf("pgxpool.Pool cannot be nil")
	}
	return &MaintenanceRepository{pool: pool}, nil
}

const maintenanceSelect = `SELECT m.id, m.property_id, m.tenant_id, m.category, m.priority,
	m.title, m.description, m.status, m.notes, m.images, m.cost, m.resolved_at,
	m.created_at, m.updated_at,
	p.building, p.unit, p.area, u.name, u.phone
	FROM maintenance_requests m
	JOIN properties p ON p.id = m.property_id
	JOIN users u ON u.id = m.tenant_id`

func scanMaintenance(row pgx.Row) (*domain.MaintenanceRequest, error) {
	var request domain.MaintenanceRequest
	err := row.Scan(
		&request.ID,
		&request.PropertyID,
		&request.TenantID,
		&request.Category,
		&request.Priority,
		&request.Title,
		&request.Description,
		&request.Status,
		&request.Notes,
		&request.Images,
		&request.Cost,
		&request.ResolvedAt,
		&request.CreatedAt,
		&request.UpdatedAt,
		&request.PropertyBuilding,
		&request.PropertyUnit,
		&request.PropertyArea,
		&request.TenantName,
		&request.TenantPhone,
	)
	if err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *MaintenanceRepository) Create(ctx context.Context, request *domain.MaintenanceRequest) error {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component":      "MaintenanceRepository",
		"method":         "Create",
		"maintenance_id": request.ID.String(),
	})

	query := `INSERT INTO maintenance_requests (id, property_id, tenant_id, category, priority,
		title, description, status, notes, images, cost, resolved_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

	repoLogger.Debug("Executing query to create maintenance request.", nil)
	_, err := r.pool.Exec(ctx, query,
		request.ID, request.PropertyID, request.TenantID, request.Category, request.Priority,
		request.Title, request.Description, request.Status, request.Notes, request.Images,
		request.Cost, request.ResolvedAt, request.CreatedAt, request.UpdatedAt)
	if err != nil {
		repoLogger.Error("Failed to create maintenance request", err, port.Fields{"query": query})
		return fmt.Errorf("failed to create maintenance request: %w", err)
	}
	return nil
}

func (r *MaintenanceRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.MaintenanceRequest, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component":      "MaintenanceRepository",
		"method":         "FindByID",
		"maintenance_id": id.String(),
	})

	query := maintenanceSelect + ` WHERE m.id = $1`

	request, err := scanMaintenance(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			repoLogger.Warn("Maintenance request not found by ID.", nil)
			return nil, nil
		}
		repoLogger.Error("Failed to find maintenance request by ID", err, port.Fields{"query": query})
		return nil, fmt.Errorf("failed to find maintenance request by id: %w", err)
	}
	return request, nil
}

func (r *MaintenanceRepository) List(ctx context.Context, filter port.MaintenanceFilter) ([]*domain.MaintenanceRequest, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component": "MaintenanceRepository",
		"method":    "List",
	})

	conditions := []string{}
	args := make([]interface{}, 0)
	argID := 1

	if filter.Status != nil {
		conditions = append(conditions, fmt.Sprintf("m.status = $%d", argID))
		args = append(args, *filter.Status)
		argID++
	}
	if filter.PropertyID != nil {
		conditions = append(conditions, fmt.Sprintf("m.property_id = $%d", argID))
		args = append(args, *filter.PropertyID)
		argID++
	}
	if filter.TenantID != nil {
		conditions = append(conditions, fmt.Sprintf("m.tenant_id = $%d", argID))
		args = append(args, *filter.TenantID)
		argID++
	}
	if filter.OwnerID != nil {
		conditions = append(conditions, fmt.Sprintf("p.owner_id = $%d", argID))
		args = append(args, *filter.OwnerID)
		argID++
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	query := fmt.Sprintf(`%s %s ORDER BY m.created_at DESC LIMIT $%d OFFSET $%d`,
		maintenanceSelect, whereClause, argID, argID+1)
	args = append(args, normalizeLimit(filter.Limit), filter.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		repoLogger.Error("Failed to list maintenance requests", err, port.Fields{"query": query})
		return nil, fmt.Errorf("failed to list maintenance requests: %w", err)
	}
	defer rows.Close()

	requests := make([]*domain.MaintenanceRequest, 0)
	for rows.Next() {
		request, err := scanMaintenance(rows)
		if err != nil {
			repoLogger.Error("Failed to scan maintenance row", err, nil)
			return nil, fmt.Errorf("failed to scan maintenance row: %w", err)
		}
		requests = append(requests, request)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate maintenance rows: %w", err)
	}
	return requests, nil
}

func (r *MaintenanceRepository) Update(ctx context.Context, request *domain.MaintenanceRequest) error {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component":      "MaintenanceRepository",
		"method":         "Update",
		"maintenance_id": request.ID.String(),
	})

	query := `UPDATE maintenance_requests
		SET status = $2, notes = $3, cost = $4, images = $5, resolved_at = $6, updated_at = $7
		WHERE id = $1`

	cmdTag, err := r.pool.Exec(ctx, query,
		request.ID, request.Status, request.Notes, request.Cost, request.Images,
		request.ResolvedAt, request.UpdatedAt)
	if err != nil {
		repoLogger.Error("Failed to update maintenance request", err, nil)
		return fmt.Errorf("failed to update maintenance request: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		repoLogger.Warn("Update affected no rows.", nil)
	}
	return nil
}
