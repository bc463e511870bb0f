package services

import (
	"context"

	"github.com/crateworks/debt_ledger_app/internal/core/domain"
	"github.com/crateworks/debt_ledger_app/internal/dto"
)

// AuditSvcFacade is the engine's audit sink plus the read endpoint over it.
// Record is fire-and-forget from the caller's point of view: failures are
// logged by the implementation and never propagated.
type AuditSvcFacade interface {
	// Record persists one audit entry for a completed operation.
	Record(ctx context.Context, action domain.AuditAction, entityType string, entityID string, details map[string]any, actorID string)

	// ListAuditLogs retrieves a cursor-paginated list of audit records.
	ListAuditLogs(ctx context.Context, params dto.ListAuditLogsParams) (*dto.ListAuditLogsResponse, error)
}
