package models

import "time"

// AuditLog maps the audit_logs table. Details is serialized to JSONB.
type AuditLog struct {
	AuditID     string         `json:"auditID"`
	Action      string         `json:"action"`
	EntityType  string         `json:"entityType"`
	EntityID    string         `json:"entityID"`
	Details     map[string]any `json:"details"`
	PerformedBy string         `json:"performedBy"`
	CreatedAt   time.Time      `json:"createdAt"`
}
