package domain

import "time"

// AuditAction names a recorded operation.
type AuditAction string

const (
	ActionChargeRecorded      AuditAction = "CHARGE_RECORDED"
	ActionPaymentRecorded     AuditAction = "PAYMENT_RECORDED"
	ActionAdjustmentRecorded  AuditAction = "ADJUSTMENT_RECORDED"
	ActionTabClosed           AuditAction = "TAB_CLOSED"
	ActionCustomerCreated     AuditAction = "CUSTOMER_CREATED"
	ActionCustomerUpdated     AuditAction = "CUSTOMER_UPDATED"
	ActionCustomerDeactivated AuditAction = "CUSTOMER_DEACTIVATED"
	ActionUserCreated         AuditAction = "USER_CREATED"
	ActionSettingUpdated      AuditAction = "SETTING_UPDATED"
)

// AuditLog is one append-only record of a completed operation. It is written
// fire-and-forget after the ledger commit; the ledger itself remains the
// source of truth.
type AuditLog struct {
	AuditID     string         `json:"auditID"` // Primary Key (UUID)
	Action      AuditAction    `json:"action"`
	EntityType  string         `json:"entityType"`
	EntityID    string         `json:"entityID"`
	Details     map[string]any `json:"details"` // Stored as JSONB
	PerformedBy string         `json:"performedBy"`
	CreatedAt   time.Time      `json:"createdAt"`
}
