package dto

import (
	"time"

	"github.com/crateworks/debt_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateCustomerRequest defines the data needed to create a customer.
type CreateCustomerRequest struct {
	Name            string           `json:"name" binding:"required"`
	Phone           string           `json:"phone"`
	CustomUnitPrice *decimal.Decimal `json:"customUnitPrice"`
}

// UpdateCustomerRequest defines the data allowed for updating a customer.
// Pointers differentiate omitted fields from zero-value fields.
type UpdateCustomerRequest struct {
	Name            *string          `json:"name"`
	Phone           *string          `json:"phone"`
	CustomUnitPrice *decimal.Decimal `json:"customUnitPrice"`
	IsActive        *bool            `json:"isActive"`
}

// ListCustomersParams defines query parameters for listing customers.
type ListCustomersParams struct {
	Limit     int     `form:"limit,default=20"`
	NextToken *string `form:"nextToken"`
}

// CustomerResponse defines the data returned for a customer.
type CustomerResponse struct {
	CustomerID      string           `json:"customerID"`
	Name            string           `json:"name"`
	Phone           string           `json:"phone,omitempty"`
	CustomUnitPrice *decimal.Decimal `json:"customUnitPrice,omitempty"`
	IsActive        bool             `json:"isActive"`
	CreatedAt       time.Time        `json:"createdAt"`
}

// ListCustomersResponse wraps a page of customers.
type ListCustomersResponse struct {
	Customers []CustomerResponse `json:"customers"`
	NextToken *string            `json:"nextToken,omitempty"`
}

// ToCustomerResponse converts a domain.Customer to CustomerResponse DTO.
func ToCustomerResponse(c *domain.Customer) CustomerResponse {
	return CustomerResponse{
		CustomerID:      c.CustomerID,
		Name:            c.Name,
		Phone:           c.Phone,
		CustomUnitPrice: c.CustomUnitPrice,
		IsActive:        c.IsActive,
		CreatedAt:       c.CreatedAt,
	}
}

// ToListCustomersResponse converts a page of domain customers to its DTO.
func ToListCustomersResponse(customers []domain.Customer, nextToken *string) ListCustomersResponse {
	responses := make([]CustomerResponse, len(customers))
	for i := range customers {
		responses[i] = ToCustomerResponse(&customers[i])
	}
	return ListCustomersResponse{Customers: responses, NextToken: nextToken}
}
