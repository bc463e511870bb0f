package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/crateworks/debt_ledger_app/internal/core/domain"
	portsrepo "github.com/crateworks/debt_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/crateworks/debt_ledger_app/internal/core/ports/services"
	"github.com/crateworks/debt_ledger_app/internal/dto"
	"github.com/crateworks/debt_ledger_app/internal/middleware"
)

type auditService struct {
	auditRepo portsrepo.AuditRepositoryFacade
}

// NewAuditService creates a new AuditSvcFacade.
func NewAuditService(auditRepo portsrepo.AuditRepositoryFacade) portssvc.AuditSvcFacade {
	return &auditService{auditRepo: auditRepo}
}

var _ portssvc.AuditSvcFacade = (*auditService)(nil)

// Record persists one audit entry. The ledger commit has already happened by
// the time this runs, so failures are logged and swallowed rather than
// bubbled up to undo a completed operation.
func (s *auditService) Record(ctx context.Context, action domain.AuditAction, entityType string, entityID string, details map[string]any, actorID string) {
	logger := middleware.GetLoggerFromCtx(ctx)

	entry := domain.AuditLog{
		AuditID:     uuid.NewString(),
		Action:      action,
		EntityType:  entityType,
		EntityID:    entityID,
		Details:     details,
		PerformedBy: actorID,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.auditRepo.SaveAuditLog(ctx, entry); err != nil {
		logger.Error("Failed to write audit record",
			slog.String("action", string(action)),
			slog.String("entity_id", entityID),
			slog.String("error", err.Error()),
		)
	}
}

// ListAuditLogs retrieves a cursor-paginated list of audit records.
func (s *auditService) ListAuditLogs(ctx context.Context, params dto.ListAuditLogsParams) (*dto.ListAuditLogsResponse, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}

	entries, nextToken, err := s.auditRepo.ListAuditLogs(ctx, limit, params.NextToken)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit records: %w", err)
	}

	resp := dto.ToListAuditLogsResponse(entries, nextToken)
	return &resp, nil
}
