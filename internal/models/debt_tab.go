package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TabStatus indicates the lifecycle state of a debt tab row.
type TabStatus string

const (
	TabOpen   TabStatus = "OPEN"
	TabClosed TabStatus = "CLOSED"
)

// DebtTab maps the debt_tabs table. A partial unique index on
// (customer_id) WHERE status = 'OPEN' enforces the one-open-tab rule.
type DebtTab struct {
	TabID        string          `json:"tabID"`
	CustomerID   string          `json:"customerID"`
	Status       TabStatus       `json:"status"`
	TotalBalance decimal.Decimal `json:"totalBalance"`
	OpenedAt     time.Time       `json:"openedAt"`
	ClosedAt     *time.Time      `json:"closedAt"`
	AuditFields
}
