package models

import "github.com/shopspring/decimal"

// Customer maps the customers table.
type Customer struct {
	CustomerID      string           `json:"customerID"`
	Name            string           `json:"name"`
	Phone           string           `json:"phone"`
	CustomUnitPrice *decimal.Decimal `json:"customUnitPrice"`
	IsActive        bool             `json:"isActive"`
	AuditFields
}
