package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType classifies a ledger row.
type TransactionType string

const (
	Charge     TransactionType = "CHARGE"
	Payment    TransactionType = "PAYMENT"
	Adjustment TransactionType = "ADJUSTMENT"
)

// DebtTransaction maps the debt_transactions table. Rows are append-only.
type DebtTransaction struct {
	TransactionID    string           `json:"transactionID"`
	DebtTabID        string           `json:"debtTabID"`
	TransactionType  TransactionType  `json:"transactionType"`
	Containers       *int64           `json:"containers"`
	UnitPrice        *decimal.Decimal `json:"unitPrice"`
	Amount           decimal.Decimal  `json:"amount"`
	BalanceAfter     decimal.Decimal  `json:"balanceAfter"`
	AdjustmentReason *string          `json:"adjustmentReason"`
	Notes            string           `json:"notes"`
	TransactionDate  time.Time        `json:"transactionDate"`
	AuditFields

	// Joined columns populated by the global listing query only.
	CustomerID   string    `json:"customerID,omitempty"`
	CustomerName string    `json:"customerName,omitempty"`
	TabStatus    TabStatus `json:"tabStatus,omitempty"`
}
