package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType classifies a ledger entry's effect on a tab balance.
type TransactionType string

const (
	Charge     TransactionType = "CHARGE"     // Container sale on credit, increases balance
	Payment    TransactionType = "PAYMENT"    // Customer payment, decreases balance
	Adjustment TransactionType = "ADJUSTMENT" // Manual correction, signed delta
)

// DebtTransaction is one immutable ledger entry belonging to exactly one tab.
// Rows are created once and never updated or deleted; together they form the
// audit trail of the tab.
type DebtTransaction struct {
	TransactionID    string           `json:"transactionID"` // Primary Key (UUID)
	DebtTabID        string           `json:"debtTabID"`     // FK -> debt_tabs.tab_id (Not Null)
	TransactionType  TransactionType  `json:"transactionType"`
	Containers       *int64           `json:"containers"` // CHARGE only
	UnitPrice        *decimal.Decimal `json:"unitPrice"`  // CHARGE only
	Amount           decimal.Decimal  `json:"amount"`     // CHARGE/PAYMENT: positive; ADJUSTMENT: signed
	BalanceAfter     decimal.Decimal  `json:"balanceAfter"` // Tab balance snapshot after this entry
	AdjustmentReason string           `json:"adjustmentReason,omitempty"` // ADJUSTMENT only, non-blank
	Notes            string           `json:"notes"`
	TransactionDate  time.Time        `json:"transactionDate"` // Caller-supplied business date
	AuditFields

	// Tab and customer context, populated only by the global listing join.
	CustomerID   string    `json:"customerID,omitempty"`
	CustomerName string    `json:"customerName,omitempty"`
	TabStatus    TabStatus `json:"tabStatus,omitempty"`
}

// SignedDelta returns the effect of this entry on the tab balance: positive
// for CHARGE, negative for PAYMENT, as recorded for ADJUSTMENT.
func (t *DebtTransaction) SignedDelta() decimal.Decimal {
	switch t.TransactionType {
	case Payment:
		return t.Amount.Neg()
	default:
		return t.Amount
	}
}

// Validate checks the per-row invariants of a ledger entry.
func (t *DebtTransaction) Validate() error {
	switch t.TransactionType {
	case Charge:
		if t.Containers == nil || *t.Containers <= 0 {
			return errors.New("charge requires a positive container count")
		}
		if t.UnitPrice == nil || t.UnitPrice.LessThanOrEqual(decimal.Zero) {
			return errors.New("charge requires a positive unit price")
		}
		if t.Amount.LessThanOrEqual(decimal.Zero) {
			return errors.New("charge amount must be positive")
		}
	case Payment:
		if t.Amount.LessThanOrEqual(decimal.Zero) {
			return errors.New("payment amount must be positive")
		}
	case Adjustment:
		if t.Amount.IsZero() {
			return errors.New("adjustment amount must not be zero")
		}
		if strings.TrimSpace(t.AdjustmentReason) == "" {
			return errors.New("adjustment reason is required")
		}
	default:
		return errors.New("unknown transaction type " + string(t.TransactionType))
	}
	if t.CreatedBy == "" {
		return errors.New("enteredBy user is required")
	}
	if t.BalanceAfter.IsNegative() {
		return errors.New("balance after a transaction cannot be negative")
	}
	return nil
}

// ReplayBalance folds an ordered transaction log starting from a zero
// balance and returns the final balance. Used to verify that the persisted
// balanceAfter snapshots are internally consistent.
func ReplayBalance(transactions []DebtTransaction) decimal.Decimal {
	balance := decimal.Zero
	for i := range transactions {
		balance = balance.Add(transactions[i].SignedDelta())
	}
	return balance
}
