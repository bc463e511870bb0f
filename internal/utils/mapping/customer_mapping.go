package mapping

import (
	"github.com/crateworks/debt_ledger_app/internal/core/domain"
	"github.com/crateworks/debt_ledger_app/internal/models"
)

// ToModelCustomer converts a domain Customer to a model Customer
func ToModelCustomer(d domain.Customer) models.Customer {
	return models.Customer{
		CustomerID:      d.CustomerID,
		Name:            d.Name,
		Phone:           d.Phone,
		CustomUnitPrice: d.CustomUnitPrice,
		IsActive:        d.IsActive,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainCustomer converts a model Customer to a domain Customer
func ToDomainCustomer(m models.Customer) domain.Customer {
	return domain.Customer{
		CustomerID:      m.CustomerID,
		Name:            m.Name,
		Phone:           m.Phone,
		CustomUnitPrice: m.CustomUnitPrice,
		IsActive:        m.IsActive,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainCustomerSlice converts a slice of model customers to domain customers
func ToDomainCustomerSlice(ms []models.Customer) []domain.Customer {
	out := make([]domain.Customer, len(ms))
	for i, m := range ms {
		out[i] = ToDomainCustomer(m)
	}
	return out
}
