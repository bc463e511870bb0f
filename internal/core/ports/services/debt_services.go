package services

import (
	"context"
	"time"

	"github.com/crateworks/debt_ledger_app/internal/core/domain"
	"github.com/crateworks/debt_ledger_app/internal/dto"
	"github.com/shopspring/decimal"
)

// ChargeCommand describes a container sale on credit.
type ChargeCommand struct {
	CustomerID      string
	Containers      int64
	TransactionDate time.Time
	Notes           string
	ActorID         string
}

// PaymentCommand describes a payment against the open tab.
type PaymentCommand struct {
	CustomerID      string
	Amount          decimal.Decimal
	TransactionDate time.Time
	Notes           string
	ActorID         string
}

// AdjustmentCommand describes a manual balance correction.
type AdjustmentCommand struct {
	CustomerID      string
	Amount          decimal.Decimal
	Reason          string
	TransactionDate time.Time
	Notes           string
	ActorID         string
}

// MarkPaidCommand closes the open tab, optionally after one final payment.
type MarkPaidCommand struct {
	CustomerID      string
	TransactionDate time.Time
	FinalPayment    *decimal.Decimal
	Notes           string
	ActorID         string
}

// DebtOperationResult is returned by every ledger mutation. Transaction is
// nil for a mark-paid that required no final payment.
type DebtOperationResult struct {
	Transaction *domain.DebtTransaction
	Tab         *domain.DebtTab
}

// DebtWriterSvc defines the ledger mutations. Each executes as one atomic
// unit against the customer's open tab.
type DebtWriterSvc interface {
	// RecordCharge appends a CHARGE entry, creating an open tab when needed.
	RecordCharge(ctx context.Context, cmd ChargeCommand) (*DebtOperationResult, error)

	// RecordPayment appends a PAYMENT entry and closes the tab when it
	// reaches zero.
	RecordPayment(ctx context.Context, cmd PaymentCommand) (*DebtOperationResult, error)

	// RecordAdjustment appends an ADJUSTMENT entry. Never closes the tab.
	RecordAdjustment(ctx context.Context, cmd AdjustmentCommand) (*DebtOperationResult, error)

	// MarkPaid settles and closes the open tab.
	MarkPaid(ctx context.Context, cmd MarkPaidCommand) (*DebtOperationResult, error)
}

// DebtReaderSvc defines the read-only history views.
type DebtReaderSvc interface {
	// GetCustomerSnapshot returns the customer, their open tab (nil when
	// none) and the open tab's transactions.
	GetCustomerSnapshot(ctx context.Context, customerID string) (*dto.CustomerDebtSnapshotResponse, error)

	// GetCustomerFullHistory returns all tabs and all transactions across
	// tabs for one customer.
	GetCustomerFullHistory(ctx context.Context, customerID string) (*dto.CustomerDebtHistoryResponse, error)

	// ListTransactions returns the global filtered, cursor-paginated listing.
	ListTransactions(ctx context.Context, params dto.ListDebtTransactionsParams) (*dto.ListDebtTransactionsResponse, error)
}

// DebtSvcFacade combines the ledger engine interfaces
type DebtSvcFacade interface {
	DebtWriterSvc
	DebtReaderSvc
}
