package mapping

import (
	"strings"

	"github.com/crateworks/debt_ledger_app/internal/core/domain"
	"github.com/crateworks/debt_ledger_app/internal/models"
)

// ToModelDebtTab converts a domain DebtTab to a model DebtTab
func ToModelDebtTab(d domain.DebtTab) models.DebtTab {
	return models.DebtTab{
		TabID:        d.TabID,
		CustomerID:   d.CustomerID,
		Status:       models.TabStatus(d.Status),
		TotalBalance: d.TotalBalance,
		OpenedAt:     d.OpenedAt,
		ClosedAt:     d.ClosedAt,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainDebtTab converts a model DebtTab to a domain DebtTab
func ToDomainDebtTab(m models.DebtTab) domain.DebtTab {
	return domain.DebtTab{
		TabID:        m.TabID,
		CustomerID:   m.CustomerID,
		Status:       domain.TabStatus(m.Status),
		TotalBalance: m.TotalBalance,
		OpenedAt:     m.OpenedAt,
		ClosedAt:     m.ClosedAt,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainDebtTabSlice converts a slice of model tabs to domain tabs
func ToDomainDebtTabSlice(ms []models.DebtTab) []domain.DebtTab {
	out := make([]domain.DebtTab, len(ms))
	for i, m := range ms {
		out[i] = ToDomainDebtTab(m)
	}
	return out
}

// ToModelDebtTransaction converts a domain DebtTransaction to a model DebtTransaction
func ToModelDebtTransaction(d domain.DebtTransaction) models.DebtTransaction {
	var reason *string
	if strings.TrimSpace(d.AdjustmentReason) != "" {
		r := d.AdjustmentReason
		reason = &r
	}
	return models.DebtTransaction{
		TransactionID:    d.TransactionID,
		DebtTabID:        d.DebtTabID,
		TransactionType:  models.TransactionType(d.TransactionType),
		Containers:       d.Containers,
		UnitPrice:        d.UnitPrice,
		Amount:           d.Amount,
		BalanceAfter:     d.BalanceAfter,
		AdjustmentReason: reason,
		Notes:            d.Notes,
		TransactionDate:  d.TransactionDate,
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainDebtTransaction converts a model DebtTransaction to a domain DebtTransaction
func ToDomainDebtTransaction(m models.DebtTransaction) domain.DebtTransaction {
	var reason string
	if m.AdjustmentReason != nil {
		reason = *m.AdjustmentReason
	}
	return domain.DebtTransaction{
		TransactionID:    m.TransactionID,
		DebtTabID:        m.DebtTabID,
		TransactionType:  domain.TransactionType(m.TransactionType),
		Containers:       m.Containers,
		UnitPrice:        m.UnitPrice,
		Amount:           m.Amount,
		BalanceAfter:     m.BalanceAfter,
		AdjustmentReason: reason,
		Notes:            m.Notes,
		TransactionDate:  m.TransactionDate,
		AuditFields:      ToDomainAuditFields(m.AuditFields),
		CustomerID:       m.CustomerID,
		CustomerName:     m.CustomerName,
		TabStatus:        domain.TabStatus(m.TabStatus),
	}
}

// ToDomainDebtTransactionSlice converts a slice of model transactions to domain transactions
func ToDomainDebtTransactionSlice(ms []models.DebtTransaction) []domain.DebtTransaction {
	out := make([]domain.DebtTransaction, len(ms))
	for i, m := range ms {
		out[i] = ToDomainDebtTransaction(m)
	}
	return out
}
