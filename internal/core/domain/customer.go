package domain

import "github.com/shopspring/decimal"

// Customer represents a ledger customer. The debt engine only consumes
// IsActive and CustomUnitPrice; the rest is contact bookkeeping.
type Customer struct {
	CustomerID      string           `json:"customerID"` // Primary Key (UUID)
	Name            string           `json:"name"`
	Phone           string           `json:"phone"` // Nullable
	CustomUnitPrice *decimal.Decimal `json:"customUnitPrice"` // Overrides the global unit price when > 0
	IsActive        bool             `json:"isActive"`
	AuditFields
}

// EffectiveUnitPrice returns the customer's override price and whether it applies.
func (c *Customer) EffectiveUnitPrice() (decimal.Decimal, bool) {
	if c.CustomUnitPrice != nil && c.CustomUnitPrice.GreaterThan(decimal.Zero) {
		return *c.CustomUnitPrice, true
	}
	return decimal.Zero, false
}
