package mapping

import (
	"github.com/crateworks/debt_ledger_app/internal/core/domain"
	"github.com/crateworks/debt_ledger_app/internal/models"
)

// ToModelAuditLog converts a domain AuditLog to a model AuditLog
func ToModelAuditLog(d domain.AuditLog) models.AuditLog {
	return models.AuditLog{
		AuditID:     d.AuditID,
		Action:      string(d.Action),
		EntityType:  d.EntityType,
		EntityID:    d.EntityID,
		Details:     d.Details,
		PerformedBy: d.PerformedBy,
		CreatedAt:   d.CreatedAt,
	}
}

// ToDomainAuditLog converts a model AuditLog to a domain AuditLog
func ToDomainAuditLog(m models.AuditLog) domain.AuditLog {
	return domain.AuditLog{
		AuditID:     m.AuditID,
		Action:      domain.AuditAction(m.Action),
		EntityType:  m.EntityType,
		EntityID:    m.EntityID,
		Details:     m.Details,
		PerformedBy: m.PerformedBy,
		CreatedAt:   m.CreatedAt,
	}
}

// ToDomainAuditLogSlice converts a slice of model audit logs to domain audit logs
func ToDomainAuditLogSlice(ms []models.AuditLog) []domain.AuditLog {
	out := make([]domain.AuditLog, len(ms))
	for i, m := range ms {
		out[i] = ToDomainAuditLog(m)
	}
	return out
}
