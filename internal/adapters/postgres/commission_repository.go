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

// CommissionRepository implements CommissionRepositoryPort for PostgreSQL.
// Rows are inserted by the contract-signing transaction.
type CommissionRepository struct {
	pool *pgxpool.Pool
}

func NewCommissionRepository(pool *pgxpool.Pool) (*CommissionRepository, error) {
	if pool == nil {
		return nil, fmt.Errorf("pgxpool.Pool cannot be nil")
	}
	return &CommissionRepository{pool: pool}, nil
}

const commissionSelect = `SELECT co.id, co.contract_id, co.agent_id, co.deal_value,
	co.commission_rate, co.commission_amount, co.status, co.closed_date,
	co.expected_payment_date, co.paid_date, co.created_at,
	p.title, p.area, c.tenant_name
	FROM commissions co
	JOIN contracts c ON c.id = co.contract_id
	JOIN properties p ON p.id = c.property_id`

func scanCommission(row pgx.Row) (*domain.Commission, error) {
	var commission domain.Commission
	err := row.Scan(
		&commission.ID,
		&commission.ContractID,
		&commission.AgentID,
		&commission.DealValue,
		&commission.CommissionRate,
		&commission.CommissionAmount,
		&commission.Status,
		&commission.ClosedDate,
		&commission.ExpectedPaymentDate,
		&commission.PaidDate,
		&commission.CreatedAt,
		&commission.PropertyTitle,
		&commission.PropertyArea,
		&commission.TenantName,
	)
	if err != nil {
		return nil, err
	}
	return &commission, nil
}

func (r *CommissionRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Commission, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component":     "CommissionRepository",
		"method":        "FindByID",
		"commission_id": id.String(),
	})

	query := commissionSelect + ` WHERE co.id = $1`

	commission, err := scanCommission(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			repoLogger.Warn("Commission not found by ID.", nil)
			return nil, nil
		}
		repoLogger.Error("Failed to find commission by ID", err, port.Fields{"query": query})
		return nil, fmt.Errorf("failed to find commission by id: %w", err)
	}
	return commission, nil
}

func (r *CommissionRepository) List(ctx context.Context, filter port.CommissionFilter) ([]*domain.Commission, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component": "CommissionRepository",
		"method":    "List",
	})

	conditions := []string{}
	args := make([]interface{}, 0)
	argID := 1

	if filter.Status != nil {
		conditions = append(conditions, fmt.Sprintf("co.status = $%d", argID))
		args = append(args, *filter.Status)
		argID++
	}
	if filter.AgentID != nil {
		conditions = append(conditions, fmt.Sprintf("co.agent_id = $%d", argID))
		args = append(args, *filter.AgentID)
		argID++
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	query := fmt.Sprintf(`%s %s ORDER BY co.closed_date DESC LIMIT $%d OFFSET $%d`,
		commissionSelect, whereClause, argID, argID+1)
	args = append(args, normalizeLimit(filter.Limit), filter.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		repoLogger.Error("Failed to list commissions", err, port.Fields{"query": query})
		return nil, fmt.Errorf("failed to list commissions: %w", err)
	}
	defer rows.Close()

	commissions := make([]*domain.Commission, 0)
	for rows.Next() {
		commission, err := scanCommission(rows)
		if err != nil {
			repoLogger.Error("Failed to scan commission row", err, nil)
			return nil, fmt.Errorf("failed to scan commission row: %w", err)
		}
		commissions = append(commissions, commission)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate commission rows: %w", err)
	}
	return commissions, nil
}

func (r *CommissionRepository) Update(ctx context.Context, commission *domain.Commission) error {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component":     "CommissionRepository",
		"method":        "Update",
		"commission_id": commission.ID.String(),
	})

	query := `UPDATE commissions
		SET status = $2, expected_payment_date = $3, paid_date = $4
		WHERE id = $1`

	cmdTag, err := r.pool.Exec(ctx, query,
		commission.ID, commission.Status, commission.ExpectedPaymentDate, commission.PaidDate)
	if err != nil {
		repoLogger.Error("Failed to update commission", err, nil)
		return fmt.Errorf("failed to update commission: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		repoLogger.Warn("Update affected no rows.", nil)
	}
	return nil
}
