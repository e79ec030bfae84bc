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

// PropertyRepository implements PropertyRepositoryPort for PostgreSQL. Reads
// fill the derived viewings count with a correlated subquery.
type PropertyRepository struct {
	pool *pgxpool.Pool
}

func NewPropertyRepository(pool *pgxpool.Pool) (*PropertyRepository, error) {
	if pool == nil {
		return nil, fmt.Errorf("pgxpool.Pool cannot be nil")
	}
	return &PropertyRepository{pool: pool}, nil
}

const propertySelect = `SELECT p.id, p.owner_id, p.agent_id, p.title, p.building, p.unit, p.area,
	p.type, p.beds, p.baths, p.sqft, p.rent, p.cheques, p.deposit, p.status, p.images,
	p.created_at, p.updated_at,
	(SELECT COUNT(*) FROM viewings v WHERE v.property_id = p.id AND v.cancelled_at IS NULL) AS viewings_count
	FROM properties p`

func scanProperty(row pgx.Row) (*domain.Property, error) {
	var property domain.Property
	err := row.Scan(
		&property.ID,
		&property.OwnerID,
		&property.AgentID,
		&property.Title,
		&property.Building,
		&property.Unit,
		&property.Area,
		&property.Type,
		&property.Beds,
		&property.Baths,
		&property.Sqft,
		&property.Rent,
		&property.Cheques,
		&property.Deposit,
		&property.Status,
		&property.Images,
		&property.CreatedAt,
		&property.UpdatedAt,
		&property.ViewingsCount,
	)
	if err != nil {
		return nil, err
	}
	return &property, nil
}

func (r *PropertyRepository) Create(ctx context.Context, property *domain.Property) error {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component":   "PropertyRepository",
		"method":      "Create",
		"property_id": property.ID.String(),
	})

	query := `INSERT INTO properties (id, owner_id, agent_id, title, building, unit, area,
		type, beds, baths, sqft, rent, cheques, deposit, status, images, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`

	repoLogger.Debug("Executing query to create property.", nil)
	_, err := r.pool.Exec(ctx, query,
		property.ID, property.OwnerID, property.AgentID, property.Title, property.Building,
		property.Unit, property.Area, property.Type, property.Beds, property.Baths, property.Sqft,
		property.Rent, property.Cheques, property.Deposit, property.Status, property.Images,
		property.CreatedAt, property.UpdatedAt)
	if err != nil {
		repoLogger.Error("Failed to create property", err, port.Fields{"query": query})
		return fmt.Errorf("failed to create property: %w", err)
	}
	return nil
}

func (r *PropertyRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Property, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component":   "PropertyRepository",
		"method":      "FindByID",
		"property_id": id.String(),
	})

	query := propertySelect + ` WHERE p.id = $1`

	property, err := scanProperty(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			repoLogger.Warn("Property not found by ID.", nil)
			return nil, nil
		}
		repoLogger.Error("Failed to find property by ID", err, port.Fields{"query": query})
		return nil, fmt.Errorf("failed to find property by id: %w", err)
	}
	return property, nil
}

// buildPropertyListQuery assembles the List statement: optional filter
// conditions, newest first, normalized limit.
func buildPropertyListQuery(filter port.PropertyFilter) (string, []interface{}) {
	conditions := []string{}
	args := make([]interface{}, 0)
	argID := 1

	if filter.Status != nil {
		conditions = append(conditions, fmt.Sprintf("p.status = $%d", argID))
		args = append(args, *filter.Status)
		argID++
	}
	if filter.OwnerID != nil {
		conditions = append(conditions, fmt.Sprintf("p.owner_id = $%d", argID))
		args = append(args, *filter.OwnerID)
		argID++
	}
	if filter.AgentID != nil {
		conditions = append(conditions, fmt.Sprintf("p.agent_id = $%d", argID))
		args = append(args, *filter.AgentID)
		argID++
	}
	if filter.Area != nil {
		conditions = append(conditions, fmt.Sprintf("p.area = $%d", argID))
		args = append(args, *filter.Area)
		argID++
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	query := fmt.Sprintf(`%s %s ORDER BY p.created_at DESC LIMIT $%d OFFSET $%d`,
		propertySelect, whereClause, argID, argID+1)
	args = append(args, normalizeLimit(filter.Limit), filter.Offset)

	return query, args
}

func (r *PropertyRepository) List(ctx context.Context, filter port.PropertyFilter) ([]*domain.Property, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component": "PropertyRepository",
		"method":    "List",
	})

	query, args := buildPropertyListQuery(filter)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		repoLogger.Error("Failed to list properties", err, port.Fields{"query": query})
		return nil, fmt.Errorf("failed to list properties: %w", err)
	}
	defer rows.Close()

	properties := make([]*domain.Property, 0)
	for rows.Next() {
		property, err := scanProperty(rows)
		if err != nil {
			repoLogger.Error("Failed to scan property row", err, nil)
			return nil, fmt.Errorf("failed to scan property row: %w", err)
		}
		properties = append(properties, property)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate property rows: %w", err)
	}
	return properties, nil
}

func (r *PropertyRepository) Update(ctx context.Context, property *domain.Property) error {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component":   "PropertyRepository",
		"method":      "Update",
		"property_id": property.ID.String(),
	})

	query := `UPDATE properties
		SET agent_id = $2, title = $3, building = $4, unit = $5, area = $6, type = $7,
		    beds = $8, baths = $9, sqft = $10, rent = $11, cheques = $12, deposit = $13,
		    status = $14, images = $15, updated_at = $16
		WHERE id = $1`

	cmdTag, err := r.pool.Exec(ctx, query,
		property.ID, property.AgentID, property.Title, property.Building, property.Unit,
		property.Area, property.Type, property.Beds, property.Baths, property.Sqft,
		property.Rent, property.Cheques, property.Deposit, property.Status, property.Images,
		property.UpdatedAt)
	if err != nil {
		repoLogger.Error("Failed to update property", err, port.Fields{"query": query})
		return fmt.Errorf("failed to update property: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		repoLogger.Warn("Update affected no rows.", nil)
	}
	return nil
}

func (r *PropertyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component":   "PropertyRepository",
		"method":      "Delete",
		"property_id": id.String(),
	})

	query := `DELETE FROM properties WHERE id = $1`

	_, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		repoLogger.Error("Failed to delete property", err, port.Fields{"query": query})
		return fmt.Errorf("failed to delete property: %w", err)
	}
	return nil
}

func (r *PropertyRepository) AppendImages(ctx context.Context, id uuid.UUID, urls []string) error {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component":   "PropertyRepository",
		"method":      "AppendImages",
		"property_id": id.String(),
	})

	query := `UPDATE properties SET images = images || $2, updated_at = NOW() WHERE id = $1`

	_, err := r.pool.Exec(ctx, query, id, urls)
	if err != nil {
		repoLogger.Error("Failed to append property images", err, port.Fields{"query": query})
		return fmt.Errorf("failed to append property images: %w", err)
	}
	return nil
}
