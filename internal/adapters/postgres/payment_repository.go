package postgres_adapter

import (
	"context"
	"errors"
	"fmt"

	"dar360-service/internal/contextkeys"
	"dar360-service/internal/core/domain"
	"dar360-service/internal/core/port"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PaymentRepository implements PaymentRepositoryPort for PostgreSQL. Rows
// are inserted by the contract-signing transaction.
type PaymentRepository struct {
	pool *pgxpool.Pool
}

func NewPaymentRepository(pool *pgxpool.Pool) (*PaymentRepository, error) {
	if pool == nil {
		return nil, fmt.Errorf("pgxpool.Pool cannot be nil")
	}
	return &PaymentRepository{pool: pool}, nil
}

const chequeColumns = `id, contract_id, cheque_number, total_cheques, amount, due_date,
	paid_at, paid_method, created_at`

func scanCheque(row pgx.Row) (*domain.ChequePayment, error) {
	var cheque domain.ChequePayment
	err := row.Scan(
		&cheque.ID,
		&cheque.ContractID,
		&cheque.ChequeNumber,
		&cheque.TotalCheques,
		&cheque.Amount,
		&cheque.DueDate,
		&cheque.PaidAt,
		&cheque.PaidMethod,
		&cheque.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &cheque, nil
}

func (r *PaymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.ChequePayment, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component": "PaymentRepository",
		"method":    "FindByID",
		"cheque_id": id.String(),
	})

	query := `SELECT ` + chequeColumns + ` FROM cheque_payments WHERE id = $1`

	cheque, err := scanCheque(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			repoLogger.Warn("Cheque not found by ID.", nil)
			return nil, nil
		}
		repoLogger.Error("Failed to find cheque by ID", err, port.Fields{"query": query})
		return nil, fmt.Errorf("failed to find cheque by id: %w", err)
	}
	return cheque, nil
}

func (r *PaymentRepository) ListByContract(ctx context.Context, contractID uuid.UUID) ([]*domain.ChequePayment, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component":   "PaymentRepository",
		"method":      "ListByContract",
		"contract_id": contractID.String(),
	})

	query := `SELECT ` + chequeColumns + ` FROM cheque_payments
		WHERE contract_id = $1 ORDER BY cheque_number ASC`

	rows, err := r.pool.Query(ctx, query, contractID)
	if err != nil {
		repoLogger.Error("Failed to list cheques", err, port.Fields{"query": query})
		return nil, fmt.Errorf("failed to list cheques: %w", err)
	}
	defer rows.Close()

	cheques := make([]*domain.ChequePayment, 0)
	for rows.Next() {
		cheque, err := scanCheque(rows)
		if err != nil {
			repoLogger.Error("Failed to scan cheque row", err, nil)
			return nil, fmt.Errorf("failed to scan cheque row: %w", err)
		}
		cheques = append(cheques, cheque)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate cheque rows: %w", err)
	}
	return cheques, nil
}

func (r *PaymentRepository) Update(ctx context.Context, cheque *domain.ChequePayment) error {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component": "PaymentRepository",
		"method":    "Update",
		"cheque_id": cheque.ID.String(),
	})

	query := `UPDATE cheque_payments SET paid_at = $2, paid_method = $3 WHERE id = $1`

	cmdTag, err := r.pool.Exec(ctx, query, cheque.ID, cheque.PaidAt, cheque.PaidMethod)
	if err != nil {
		repoLogger.Error("Failed to update cheque", err, nil)
		return fmt.Errorf("failed to update cheque: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		repoLogger.Warn("Update affected no rows.", nil)
	}
	return nil
}
