package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TabStatus indicates the lifecycle state of a debt tab.
type TabStatus string

const (
	TabOpen   TabStatus = "OPEN"
	TabClosed TabStatus = "CLOSED"
)

// DebtTab is one running balance container for one customer. A customer has
// at most one OPEN tab at any time; a CLOSED tab is immutable history and is
// never reopened.
type DebtTab struct {
	TabID        string          `json:"tabID"`      // Primary Key (UUID)
	CustomerID   string          `json:"customerID"` // FK -> customers.customer_id (Not Null)
	Status       TabStatus       `json:"status"`
	TotalBalance decimal.Decimal `json:"totalBalance"` // Outstanding amount, never negative
	OpenedAt     time.Time       `json:"openedAt"`
	ClosedAt     *time.Time      `json:"closedAt"` // Nil while OPEN
	AuditFields
}

// IsOpen reports whether the tab can still accept transactions.
func (t *DebtTab) IsOpen() bool {
	return t.Status == TabOpen
}

// Close marks the tab CLOSED as of the given business date. The balance is
// forced to zero; callers must have settled it first.
func (t *DebtTab) Close(closedAt time.Time) {
	t.Status = TabClosed
	t.TotalBalance = decimal.Zero
	t.ClosedAt = &closedAt
}
