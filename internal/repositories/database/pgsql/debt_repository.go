package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/crateworks/debt_ledger_app/internal/apperrors"
	"github.com/crateworks/debt_ledger_app/internal/core/domain"
	portsrepo "github.com/crateworks/debt_ledger_app/internal/core/ports/repositories"
	"github.com/crateworks/debt_ledger_app/internal/models"
	"github.com/crateworks/debt_ledger_app/internal/utils/mapping"
	"github.com/crateworks/debt_ledger_app/internal/utils/pagination"
)

type PgxDebtRepository struct {
	BaseRepository
}

// newPgxDebtRepository creates a new repository for tab and ledger data.
func newPgxDebtRepository(pool *pgxpool.Pool) portsrepo.DebtRepositoryWithTx {
	return &PgxDebtRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxDebtRepository implements portsrepo.DebtRepositoryWithTx
var _ portsrepo.DebtRepositoryWithTx = (*PgxDebtRepository)(nil)

const tabColumns = `tab_id, customer_id, status, total_balance, opened_at, closed_at, created_at, created_by, last_updated_at, last_updated_by`

const transactionColumns = `transaction_id, debt_tab_id, transaction_type, containers, unit_price, amount, balance_after, adjustment_reason, notes, transaction_date, created_at, created_by, last_updated_at, last_updated_by`

func scanTab(row pgx.Row) (*models.DebtTab, error) {
	var t models.DebtTab
	err := row.Scan(
		&t.TabID,
		&t.CustomerID,
		&t.Status,
		&t.TotalBalance,
		&t.OpenedAt,
		&t.ClosedAt,
		&t.CreatedAt,
		&t.CreatedBy,
		&t.LastUpdatedAt,
		&t.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func scanTransaction(rows pgx.Rows) (models.DebtTransaction, error) {
	var t models.DebtTransaction
	var containers sql.NullInt64
	var unitPrice decimal.NullDecimal
	var reason sql.NullString

	err := rows.Scan(
		&t.TransactionID,
		&t.DebtTabID,
		&t.TransactionType,
		&containers,
		&unitPrice,
		&t.Amount,
		&t.BalanceAfter,
		&reason,
		&t.Notes,
		&t.TransactionDate,
		&t.CreatedAt,
		&t.CreatedBy,
		&t.LastUpdatedAt,
		&t.LastUpdatedBy,
	)
	if err != nil {
		return t, err
	}
	if containers.Valid {
		t.Containers = &containers.Int64
	}
	if unitPrice.Valid {
		t.UnitPrice = &unitPrice.Decimal
	}
	if reason.Valid {
		t.AdjustmentReason = &reason.String
	}
	return t, nil
}

// lockOpenTab selects the customer's OPEN tab row FOR UPDATE within tx.
func (r *PgxDebtRepository) lockOpenTab(ctx context.Context, tx pgx.Tx, customerID string) (*models.DebtTab, error) {
	query := `
		SELECT ` + tabColumns + `
		FROM debt_tabs
		WHERE customer_id = $1 AND status = 'OPEN'
		FOR UPDATE;
	`
	tab, err := scanTab(tx.QueryRow(ctx, query, customerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to lock open tab for customer "+customerID, err)
	}
	return tab, nil
}

func (r *PgxDebtRepository) insertTabTx(ctx context.Context, tx pgx.Tx, tab models.DebtTab) (bool, error) {
	// The partial unique index on (customer_id) WHERE status = 'OPEN'
	// guarantees exactly one concurrent creator wins; the loser's insert
	// becomes a no-op and it re-locks the winner's row.
	query := `
		INSERT INTO debt_tabs (` + tabColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (customer_id) WHERE status = 'OPEN' DO NOTHING;
	`
	ct, err := tx.Exec(ctx, query,
		tab.TabID,
		tab.CustomerID,
		tab.Status,
		tab.TotalBalance,
		tab.OpenedAt,
		tab.ClosedAt,
		tab.CreatedAt,
		tab.CreatedBy,
		tab.LastUpdatedAt,
		tab.LastUpdatedBy,
	)
	if err != nil {
		return false, apperrors.NewAppError(500, "failed to insert tab for customer "+tab.CustomerID, err)
	}
	return ct.RowsAffected() > 0, nil
}

func (r *PgxDebtRepository) updateTabTx(ctx context.Context, tx pgx.Tx, tab models.DebtTab) error {
	query := `
		UPDATE debt_tabs
		SET status = $2, total_balance = $3, closed_at = $4, last_updated_at = $5, last_updated_by = $6
		WHERE tab_id = $1;
	`
	_, err := tx.Exec(ctx, query,
		tab.TabID,
		tab.Status,
		tab.TotalBalance,
		tab.ClosedAt,
		tab.LastUpdatedAt,
		tab.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update tab "+tab.TabID, err)
	}
	return nil
}

func (r *PgxDebtRepository) insertTransactionTx(ctx context.Context, tx pgx.Tx, txn models.DebtTransaction) error {
	query := `
		INSERT INTO debt_transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err := tx.Exec(ctx, query,
		txn.TransactionID,
		txn.DebtTabID,
		txn.TransactionType,
		txn.Containers,
		txn.UnitPrice,
		txn.Amount,
		txn.BalanceAfter,
		txn.AdjustmentReason,
		txn.Notes,
		txn.TransactionDate,
		txn.CreatedAt,
		txn.CreatedBy,
		txn.LastUpdatedAt,
		txn.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert transaction "+txn.TransactionID, err)
	}
	return nil
}

// MutateOpenTab runs fn against the customer's OPEN tab inside one database
// transaction and persists the resulting ledger entry plus the tab's new
// state together. See the port for the full contract.
func (r *PgxDebtRepository) MutateOpenTab(ctx context.Context, customerID string, createIfMissing bool, fn portsrepo.TabMutator) (*domain.DebtTransaction, *domain.DebtTab, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, nil, err
	}
	// Will be ignored if the transaction is committed successfully
	defer r.Rollback(ctx, tx)

	modelTab, err := r.lockOpenTab(ctx, tx, customerID)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, nil, err
	}

	created := false
	var domainTab domain.DebtTab
	if modelTab == nil {
		if !createIfMissing {
			return nil, nil, apperrors.ErrNotFound
		}
		now := time.Now().UTC()
		domainTab = domain.DebtTab{
			TabID:        uuid.NewString(),
			CustomerID:   customerID,
			Status:       domain.TabOpen,
			TotalBalance: decimal.Zero,
			OpenedAt:     now,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				LastUpdatedAt: now,
			},
		}
		created = true
	} else {
		domainTab = mapping.ToDomainDebtTab(*modelTab)
	}

	txn, err := fn(ctx, &domainTab)
	if err != nil {
		return nil, nil, err
	}

	if created {
		// fn stamps LastUpdatedBy with the acting user; a fresh tab is
		// created by that same user.
		domainTab.CreatedBy = domainTab.LastUpdatedBy
		inserted, err := r.insertTabTx(ctx, tx, mapping.ToModelDebtTab(domainTab))
		if err != nil {
			return nil, nil, err
		}
		if !inserted {
			// Lost the creation race: re-lock the winner's row and re-run
			// fn against its actual state.
			modelTab, err = r.lockOpenTab(ctx, tx, customerID)
			if err != nil {
				return nil, nil, err
			}
			domainTab = mapping.ToDomainDebtTab(*modelTab)
			txn, err = fn(ctx, &domainTab)
			if err != nil {
				return nil, nil, err
			}
			if err := r.updateTabTx(ctx, tx, mapping.ToModelDebtTab(domainTab)); err != nil {
				return nil, nil, err
			}
		}
	} else {
		if err := r.updateTabTx(ctx, tx, mapping.ToModelDebtTab(domainTab)); err != nil {
			return nil, nil, err
		}
	}

	if txn != nil {
		txn.DebtTabID = domainTab.TabID
		if err := r.insertTransactionTx(ctx, tx, mapping.ToModelDebtTransaction(*txn)); err != nil {
			return nil, nil, err
		}
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, nil, err
	}

	return txn, &domainTab, nil
}

// FindTabByID retrieves a specific tab by its unique identifier.
func (r *PgxDebtRepository) FindTabByID(ctx context.Context, tabID string) (*domain.DebtTab, error) {
	query := `SELECT ` + tabColumns + ` FROM debt_tabs WHERE tab_id = $1;`
	tab, err := scanTab(r.Pool.QueryRow(ctx, query, tabID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find tab by ID "+tabID, err)
	}
	domainTab := mapping.ToDomainDebtTab(*tab)
	return &domainTab, nil
}

// FindOpenTabByCustomerID retrieves the customer's OPEN tab, or ErrNotFound.
func (r *PgxDebtRepository) FindOpenTabByCustomerID(ctx context.Context, customerID string) (*domain.DebtTab, error) {
	query := `SELECT ` + tabColumns + ` FROM debt_tabs WHERE customer_id = $1 AND status = 'OPEN';`
	tab, err := scanTab(r.Pool.QueryRow(ctx, query, customerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find open tab for customer "+customerID, err)
	}
	domainTab := mapping.ToDomainDebtTab(*tab)
	return &domainTab, nil
}

// FindTabsByCustomerID retrieves all tabs for a customer, newest first.
func (r *PgxDebtRepository) FindTabsByCustomerID(ctx context.Context, customerID string) ([]domain.DebtTab, error) {
	query := `
		SELECT ` + tabColumns + `
		FROM debt_tabs
		WHERE customer_id = $1
		ORDER BY opened_at DESC;
	`
	rows, err := r.Pool.Query(ctx, query, customerID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query tabs for customer "+customerID, err)
	}
	defer rows.Close()

	tabs := []models.DebtTab{}
	for rows.Next() {
		tab, err := scanTab(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan tab row for customer "+customerID, err)
		}
		tabs = append(tabs, *tab)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating tab rows for customer "+customerID, err)
	}

	return mapping.ToDomainDebtTabSlice(tabs), nil
}

// FindTransactionsByTabID retrieves a tab's entries in ledger order.
func (r *PgxDebtRepository) FindTransactionsByTabID(ctx context.Context, tabID string) ([]domain.DebtTransaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM debt_transactions
		WHERE debt_tab_id = $1
		ORDER BY transaction_date, created_at;
	`
	return r.queryTransactions(ctx, query, tabID)
}

// FindTransactionsByCustomerID retrieves every entry across all the
// customer's tabs in ledger order.
func (r *PgxDebtRepository) FindTransactionsByCustomerID(ctx context.Context, customerID string) ([]domain.DebtTransaction, error) {
	query := `
		SELECT t.transaction_id, t.debt_tab_id, t.transaction_type, t.containers, t.unit_price, t.amount, t.balance_after,
		       t.adjustment_reason, t.notes, t.transaction_date, t.created_at, t.created_by, t.last_updated_at, t.last_updated_by
		FROM debt_transactions t
		JOIN debt_tabs dt ON t.debt_tab_id = dt.tab_id
		WHERE dt.customer_id = $1
		ORDER BY t.transaction_date, t.created_at;
	`
	return r.queryTransactions(ctx, query, customerID)
}

func (r *PgxDebtRepository) queryTransactions(ctx context.Context, query string, args ...interface{}) ([]domain.DebtTransaction, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query transactions", err)
	}
	defer rows.Close()

	transactions := []models.DebtTransaction{}
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan transaction row", err)
		}
		transactions = append(transactions, t)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating transaction rows", err)
	}

	return mapping.ToDomainDebtTransactionSlice(transactions), nil
}

// ListTransactions retrieves a filtered, token-paginated listing joined with
// tab and customer columns, newest first.
func (r *PgxDebtRepository) ListTransactions(ctx context.Context, filter portsrepo.TransactionFilter, limit int, nextToken *string) ([]domain.DebtTransaction, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// We fetch one extra item to determine if there's a next page.
	fetchLimit := limit + 1

	baseQuery := `
		SELECT t.transaction_id, t.debt_tab_id, t.transaction_type, t.containers, t.unit_price, t.amount, t.balance_after,
		       t.adjustment_reason, t.notes, t.transaction_date, t.created_at, t.created_by, t.last_updated_at, t.last_updated_by,
		       dt.customer_id, c.name, dt.status
		FROM debt_transactions t
		JOIN debt_tabs dt ON t.debt_tab_id = dt.tab_id
		JOIN customers c ON dt.customer_id = c.customer_id
		WHERE 1=1
	`
	args := []interface{}{}

	if filter.CustomerID != "" {
		args = append(args, filter.CustomerID)
		baseQuery += ` AND dt.customer_id = $` + strconv.Itoa(len(args))
	}
	if filter.TransactionType != "" {
		args = append(args, string(filter.TransactionType))
		baseQuery += ` AND t.transaction_type = $` + strconv.Itoa(len(args))
	}
	if filter.TabStatus != "" {
		args = append(args, string(filter.TabStatus))
		baseQuery += ` AND dt.status = $` + strconv.Itoa(len(args))
	}
	if filter.DateFrom != nil {
		args = append(args, *filter.DateFrom)
		baseQuery += ` AND t.transaction_date >= $` + strconv.Itoa(len(args))
	}
	if filter.DateTo != nil {
		args = append(args, *filter.DateTo)
		baseQuery += ` AND t.transaction_date <= $` + strconv.Itoa(len(args))
	}

	if nextToken != nil && *nextToken != "" {
		lastTxnDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		args = append(args, lastTxnDate, lastCreatedAt)
		baseQuery += ` AND (t.transaction_date, t.created_at) < ($` + strconv.Itoa(len(args)-1) + `, $` + strconv.Itoa(len(args)) + `)`
	}

	// Ordering must be stable for the cursor to hold
	args = append(args, fetchLimit)
	query := baseQuery + ` ORDER BY t.transaction_date DESC, t.created_at DESC LIMIT $` + strconv.Itoa(len(args)) + `;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query transaction listing", err)
	}
	defer rows.Close()

	transactions := make([]models.DebtTransaction, 0, fetchLimit)
	for rows.Next() {
		var t models.DebtTransaction
		var containers sql.NullInt64
		var unitPrice decimal.NullDecimal
		var reason sql.NullString

		err := rows.Scan(
			&t.TransactionID,
			&t.DebtTabID,
			&t.TransactionType,
			&containers,
			&unitPrice,
			&t.Amount,
			&t.BalanceAfter,
			&reason,
			&t.Notes,
			&t.TransactionDate,
			&t.CreatedAt,
			&t.CreatedBy,
			&t.LastUpdatedAt,
			&t.LastUpdatedBy,
			&t.CustomerID,
			&t.CustomerName,
			&t.TabStatus,
		)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan transaction listing row", err)
		}
		if containers.Valid {
			t.Containers = &containers.Int64
		}
		if unitPrice.Valid {
			t.UnitPrice = &unitPrice.Decimal
		}
		if reason.Valid {
			t.AdjustmentReason = &reason.String
		}
		transactions = append(transactions, t)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating transaction listing rows", err)
	}

	var nextTokenVal *string
	if len(transactions) > limit {
		lastTxn := transactions[limit-1]
		token := pagination.EncodeToken(lastTxn.TransactionDate, lastTxn.CreatedAt)
		nextTokenVal = &token
		transactions = transactions[:limit]
	}

	return mapping.ToDomainDebtTransactionSlice(transactions), nextTokenVal, nil
}
