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

// ContractRepository implements ContractRepositoryPort for PostgreSQL,
// including the atomic signing transaction.
type ContractRepository struct {
	pool *pgxpool.Pool
}

func NewContractRepository(pool *pgxpool.Pool) (*ContractRepository, error) {
	if pool == nil {
		return nil, fmt.Errorf("pgxpool.Pool cannot be nil")
	}
	return &ContractRepository{pool: pool}, nil
}

const contractSelect = `SELECT c.id, c.property_id, c.application_id, c.agent_id, c.tenant_name,
	c.tenant_email, c.tenant_phone, c.start_date, c.end_date, c.rent, c.cheques, c.deposit,
	c.status, c.signed_at, c.pdf_url, c.created_at, c.updated_at, p.title
	FROM contracts c JOIN properties p ON p.id = c.property_id`

func scanContract(row pgx.Row) (*domain.Contract, error) {
	var contract domain.Contract
	err := row.Scan(
		&contract.ID,
		&contract.PropertyID,
		&contract.ApplicationID,
		&contract.AgentID,
		&contract.TenantName,
		&contract.TenantEmail,
		&contract.TenantPhone,
		&contract.StartDate,
		&contract.EndDate,
		&contract.Rent,
		&contract.Cheques,
		&contract.Deposit,
		&contract.Status,
		&contract.SignedAt,
		&contract.PdfURL,
		&contract.CreatedAt,
		&contract.UpdatedAt,
		&contract.PropertyTitle,
	)
	if err != nil {
		return nil, err
	}
	return &contract, nil
}

const insertContractQuery = `INSERT INTO contracts (id, property_id, application_id, agent_id,
	tenant_name, tenant_email, tenant_phone, start_date, end_date, rent, cheques, deposit,
	status, signed_at, pdf_url, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`

func contractInsertArgs(c *domain.Contract) []interface{} {
	return []interface{}{
		c.ID, c.PropertyID, c.ApplicationID, c.AgentID, c.TenantName, c.TenantEmail,
		c.TenantPhone, c.StartDate, c.EndDate, c.Rent, c.Cheques, c.Deposit,
		c.Status, c.SignedAt, c.PdfURL, c.CreatedAt, c.UpdatedAt,
	}
}

func (r *ContractRepository) Create(ctx context.Context, contract *domain.Contract) error {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component":   "ContractRepository",
		"method":      "Create",
		"contract_id": contract.ID.String(),
	})

	repoLogger.Debug("Executing query to create contract.", nil)
	_, err := r.pool.Exec(ctx, insertContractQuery, contractInsertArgs(contract)...)
	if err != nil {
		repoLogger.Error("Failed to create contract", err, nil)
		return fmt.Errorf("failed to create contract: %w", err)
	}
	return nil
}

func (r *ContractRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Contract, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component":   "ContractRepository",
		"method":      "FindByID",
		"contract_id": id.String(),
	})

	query := contractSelect + ` WHERE c.id = $1`

	contract, err := scanContract(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			repoLogger.Warn("Contract not found by ID.", nil)
			return nil, nil
		}
		repoLogger.Error("Failed to find contract by ID", err, port.Fields{"query": query})
		return nil, fmt.Errorf("failed to find contract by id: %w", err)
	}
	return contract, nil
}

func (r *ContractRepository) List(ctx context.Context, filter port.ContractFilter) ([]*domain.Contract, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component": "ContractRepository",
		"method":    "List",
	})

	conditions := []string{}
	args := make([]interface{}, 0)
	argID := 1

	if filter.Status != nil {
		conditions = append(conditions, fmt.Sprintf("c.status = $%d", argID))
		args = append(args, *filter.Status)
		argID++
	}
	if filter.PropertyID != nil {
		conditions = append(conditions, fmt.Sprintf("c.property_id = $%d", argID))
		args = append(args, *filter.PropertyID)
		argID++
	}
	if filter.AgentID != nil {
		conditions = append(conditions, fmt.Sprintf("c.agent_id = $%d", argID))
		args = append(args, *filter.AgentID)
		argID++
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	query := fmt.Sprintf(`%s %s ORDER BY c.created_at DESC LIMIT $%d OFFSET $%d`,
		contractSelect, whereClause, argID, argID+1)
	args = append(args, normalizeLimit(filter.Limit), filter.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		repoLogger.Error("Failed to list contracts", err, port.Fields{"query": query})
		return nil, fmt.Errorf("failed to list contracts: %w", err)
	}
	defer rows.Close()

	contracts := make([]*domain.Contract, 0)
	for rows.Next() {
		contract, err := scanContract(rows)
		if err != nil {
			repoLogger.Error("Failed to scan contract row", err, nil)
			return nil, fmt.Errorf("failed to scan contract row: %w", err)
		}
		contracts = append(contracts, contract)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate contract rows: %w", err)
	}
	return contracts, nil
}

const updateContractQuery = `UPDATE contracts
	SET tenant_name = $2, tenant_email = $3, tenant_phone = $4, start_date = $5, end_date = $6,
	    rent = $7, cheques = $8, deposit = $9, status = $10, signed_at = $11, pdf_url = $12,
	    updated_at = $13
	WHERE id = $1`

func contractUpdateArgs(c *domain.Contract) []interface{} {
	return []interface{}{
		c.ID, c.TenantName, c.TenantEmail, c.TenantPhone, c.StartDate, c.EndDate,
		c.Rent, c.Cheques, c.Deposit, c.Status, c.SignedAt, c.PdfURL, c.UpdatedAt,
	}
}

func (r *ContractRepository) Update(ctx context.Context, contract *domain.Contract) error {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component":   "ContractRepository",
		"method":      "Update",
		"contract_id": contract.ID.String(),
	})

	cmdTag, err := r.pool.Exec(ctx, updateContractQuery, contractUpdateArgs(contract)...)
	if err != nil {
		repoLogger.Error("Failed to update contract", err, nil)
		return fmt.Errorf("failed to update contract: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		repoLogger.Warn("Update affected no rows.", nil)
	}
	return nil
}

// FindActiveByProperty returns the property's non-terminal contract, or
// (nil, nil) when there is none.
func (r *ContractRepository) FindActiveByProperty(ctx context.Context, propertyID uuid.UUID) (*domain.Contract, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component":   "ContractRepository",
		"method":      "FindActiveByProperty",
		"property_id": propertyID.String(),
	})

	query := contractSelect + ` WHERE c.property_id = $1 AND c.status IN ('draft', 'pending_signature', 'signed')
		ORDER BY c.created_at DESC LIMIT 1`

	contract, err := scanContract(r.pool.QueryRow(ctx, query, propertyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		repoLogger.Error("Failed to find active contract", err, port.Fields{"query": query})
		return nil, fmt.Errorf("failed to find active contract: %w", err)
	}
	return contract, nil
}

// ReplaceSignatureSession stores a fresh session, discarding any previous
// one for the contract.
func (r *ContractRepository) ReplaceSignatureSession(ctx context.Context, session *domain.SignatureSession) error {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component":   "ContractRepository",
		"method":      "ReplaceSignatureSession",
		"contract_id": session.ContractID.String(),
	})

	query := `INSERT INTO signature_sessions (id, contract_id, code, expires_at, attempts, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (contract_id) DO UPDATE
		SET id = $1, code = $3, expires_at = $4, attempts = $5, created_at = $6`

	_, err := r.pool.Exec(ctx, query,
		session.ID, session.ContractID, session.Code, session.ExpiresAt, session.Attempts, session.CreatedAt)
	if err != nil {
		repoLogger.Error("Failed to store signature session", err, nil)
		return fmt.Errorf("failed to store signature session: %w", err)
	}
	return nil
}

func (r *ContractRepository) FindSignatureSession(ctx context.Context, contractID uuid.UUID) (*domain.SignatureSession, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component":   "ContractRepository",
		"method":      "FindSignatureSession",
		"contract_id": contractID.String(),
	})

	query := `SELECT id, contract_id, code, expires_at, attempts, created_at
		FROM signature_sessions WHERE contract_id = $1`

	var session domain.SignatureSession
	err := r.pool.QueryRow(ctx, query, contractID).Scan(
		&session.ID, &session.ContractID, &session.Code,
		&session.ExpiresAt, &session.Attempts, &session.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		repoLogger.Error("Failed to find signature session", err, nil)
		return nil, fmt.Errorf("failed to find signature session: %w", err)
	}
	return &session, nil
}

func (r *ContractRepository) UpdateSignatureSession(ctx context.Context, session *domain.SignatureSession) error {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component":   "ContractRepository",
		"method":      "UpdateSignatureSession",
		"contract_id": session.ContractID.String(),
	})

	query := `UPDATE signature_sessions SET attempts = $2 WHERE id = $1`

	_, err := r.pool.Exec(ctx, query, session.ID, session.Attempts)
	if err != nil {
		repoLogger.Error("Failed to update signature session", err, nil)
		return fmt.Errorf("failed to update signature session: %w", err)
	}
	return nil
}

func (r *ContractRepository) DeleteSignatureSession(ctx context.Context, contractID uuid.UUID) error {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component":   "ContractRepository",
		"method":      "DeleteSignatureSession",
		"contract_id": contractID.String(),
	})

	query := `DELETE FROM signature_sessions WHERE contract_id = $1`

	_, err := r.pool.Exec(ctx, query, contractID)
	if err != nil {
		repoLogger.Error("Failed to delete signature session", err, nil)
		return fmt.Errorf("failed to delete signature session: %w", err)
	}
	return nil
}

// Sign persists the whole signing result in one transaction: the signed
// contract, the rented property, the cheque schedule and the commission.
func (r *ContractRepository) Sign(ctx context.Context, contract *domain.Contract, property *domain.Property,
	cheques []*domain.ChequePayment, commission *domain.Commission) error {

	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component":   "ContractRepository",
		"method":      "Sign",
		"contract_id": contract.ID.String(),
		"property_id": property.ID.String(),
	})

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		repoLogger.Error("Failed to begin transaction", err, nil)
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, updateContractQuery, contractUpdateArgs(contract)...); err != nil {
		repoLogger.Error("Failed to update contract in signing transaction", err, nil)
		return fmt.Errorf("failed to update contract: %w", err)
	}

	propertyQuery := `UPDATE properties SET status = $2, updated_at = $3 WHERE id = $1`
	if _, err := tx.Exec(ctx, propertyQuery, property.ID, property.Status, property.UpdatedAt); err != nil {
		repoLogger.Error("Failed to update property in signing transaction", err, nil)
		return fmt.Errorf("failed to update property: %w", err)
	}

	chequeQuery := `INSERT INTO cheque_payments (id, contract_id, cheque_number, total_cheques,
		amount, due_date, paid_at, paid_method, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	for _, cheque := range cheques {
		_, err := tx.Exec(ctx, chequeQuery,
			cheque.ID, cheque.ContractID, cheque.ChequeNumber, cheque.TotalCheques,
			cheque.Amount, cheque.DueDate, cheque.PaidAt, cheque.PaidMethod, cheque.CreatedAt)
		if err != nil {
			repoLogger.Error("Failed to insert cheque in signing transaction", err,
				port.Fields{"cheque_number": cheque.ChequeNumber})
			return fmt.Errorf("failed to insert cheque: %w", err)
		}
	}

	if commission != nil {
		commissionQuery := `INSERT INTO commissions (id, contract_id, agent_id, deal_value,
			commission_rate, commission_amount, status, closed_date, expected_payment_date,
			paid_date, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
		_, err := tx.Exec(ctx, commissionQuery,
			commission.ID, commission.ContractID, commission.AgentID, commission.DealValue,
			commission.CommissionRate, commission.CommissionAmount, commission.Status,
			commission.ClosedDate, commission.ExpectedPaymentDate, commission.PaidDate,
			commission.CreatedAt)
		if err != nil {
			repoLogger.Error("Failed to insert commission in signing transaction", err, nil)
			return fmt.Errorf("failed to insert commission: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		repoLogger.Error("Failed to commit signing transaction", err, nil)
		return fmt.Errorf("failed to commit signing transaction: %w", err)
	}

	repoLogger.Debug("Signing transaction committed.", port.Fields{"cheques": len(cheques)})
	return nil
}
