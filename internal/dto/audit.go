package dto

import (
	"time"

	"github.com/crateworks/debt_ledger_app/internal/core/domain"
)

// ListAuditLogsParams defines query parameters for listing audit records.
type ListAuditLogsParams struct {
	Limit     int     `form:"limit,default=20"`
	NextToken *string `form:"nextToken"`
}

// AuditLogResponse defines the data returned for one audit record.
type AuditLogResponse struct {
	AuditID     string         `json:"auditID"`
	Action      string         `json:"action"`
	EntityType  string         `json:"entityType"`
	EntityID    string         `json:"entityID"`
	Details     map[string]any `json:"details"`
	PerformedBy string         `json:"performedBy"`
	CreatedAt   time.Time      `json:"createdAt"`
}

// ListAuditLogsResponse wraps a page of audit records.
type ListAuditLogsResponse struct {
	AuditLogs []AuditLogResponse `json:"auditLogs"`
	NextToken *string            `json:"nextToken,omitempty"`
}

// ToListAuditLogsResponse converts a page of domain audit logs to its DTO.
func ToListAuditLogsResponse(entries []domain.AuditLog, nextToken *string) ListAuditLogsResponse {
	responses := make([]AuditLogResponse, len(entries))
	for i, e := range entries {
		responses[i] = AuditLogResponse{
			AuditID:     e.AuditID,
			Action:      string(e.Action),
			EntityType:  e.EntityType,
			EntityID:    e.EntityID,
			Details:     e.Details,
			PerformedBy: e.PerformedBy,
			CreatedAt:   e.CreatedAt,
		}
	}
	return ListAuditLogsResponse{AuditLogs: responses, NextToken: nextToken}
}
