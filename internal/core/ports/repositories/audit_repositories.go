package repositories

import (
	"context"

	"github.com/crateworks/debt_ledger_app/internal/core/domain"
)

// AuditWriter defines write operations for audit records
type AuditWriter interface {
	// SaveAuditLog persists one audit record.
	SaveAuditLog(ctx context.Context, entry domain.AuditLog) error
}

// AuditReader defines read operations for audit records
type AuditReader interface {
	// ListAuditLogs retrieves a cursor-paginated list of audit records,
	// newest first.
	ListAuditLogs(ctx context.Context, limit int, nextToken *string) ([]domain.AuditLog, *string, error)
}

// AuditRepositoryFacade combines the audit repository interfaces
type AuditRepositoryFacade interface {
	AuditReader
	AuditWriter
}
