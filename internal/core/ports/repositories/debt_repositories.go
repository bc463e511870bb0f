package repositories

import (
	"context"
	"time"

	"github.com/crateworks/debt_ledger_app/internal/core/domain"
)

// TabMutator is the engine's critical section. It receives the customer's
// OPEN tab, freshly locked by the store, and either returns the ledger entry
// to append (having updated the tab's balance/status in place) or an error to
// roll the whole operation back. A nil transaction with a nil error persists
// the tab change alone (mark-paid of an already-zero tab).
type TabMutator func(ctx context.Context, tab *domain.DebtTab) (*domain.DebtTransaction, error)

// TransactionFilter narrows the global transaction listing.
type TransactionFilter struct {
	CustomerID      string
	TransactionType domain.TransactionType
	TabStatus       domain.TabStatus
	DateFrom        *time.Time
	DateTo          *time.Time
}

// DebtTabReader defines read operations for tab data
type DebtTabReader interface {
	// FindTabByID retrieves a specific tab by its unique identifier.
	FindTabByID(ctx context.Context, tabID string) (*domain.DebtTab, error)

	// FindOpenTabByCustomerID retrieves the customer's OPEN tab, or ErrNotFound.
	FindOpenTabByCustomerID(ctx context.Context, customerID string) (*domain.DebtTab, error)

	// FindTabsByCustomerID retrieves all tabs (any status) for a customer, newest first.
	FindTabsByCustomerID(ctx context.Context, customerID string) ([]domain.DebtTab, error)
}

// DebtTabWriter defines the single mutating entry point of the ledger.
type DebtTabWriter interface {
	// MutateOpenTab executes fn against the customer's OPEN tab inside one
	// database transaction: the tab row is locked (or created when
	// createIfMissing and none exists; exactly one creator can win the race),
	// fn runs, and the returned ledger entry plus the tab's new state are
	// persisted together. Any error from fn rolls everything back unchanged.
	// Returns ErrNotFound when no open tab exists and createIfMissing is false.
	MutateOpenTab(ctx context.Context, customerID string, createIfMissing bool, fn TabMutator) (*domain.DebtTransaction, *domain.DebtTab, error)
}

// DebtTransactionReader defines read operations for ledger entries.
// There is no writer counterpart outside MutateOpenTab: entries are
// append-only and only ever written as part of a tab mutation.
type DebtTransactionReader interface {
	// FindTransactionsByTabID retrieves a tab's entries ordered by
	// transaction_date then created_at.
	FindTransactionsByTabID(ctx context.Context, tabID string) ([]domain.DebtTransaction, error)

	// FindTransactionsByCustomerID retrieves every entry across all the
	// customer's tabs, same ordering.
	FindTransactionsByCustomerID(ctx context.Context, customerID string) ([]domain.DebtTransaction, error)

	// ListTransactions retrieves a filtered, cursor-paginated listing joined
	// with tab and customer columns. Returns the page and the next cursor.
	ListTransactions(ctx context.Context, filter TransactionFilter, limit int, nextToken *string) ([]domain.DebtTransaction, *string, error)
}

// DebtRepositoryFacade combines all debt-ledger repository interfaces
type DebtRepositoryFacade interface {
	DebtTabReader
	DebtTabWriter
	DebtTransactionReader
}

// DebtRepositoryWithTx extends DebtRepositoryFacade with transaction capabilities
type DebtRepositoryWithTx interface {
	DebtRepositoryFacade
	TransactionManager
}
