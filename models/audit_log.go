package models

import (
	"encoding/json"
	"time"
)

type AuditLog struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	SalesRepID   *uint           `gorm:"index:idx_audit_sales_rep_id" json:"sales_rep_id,omitempty"`
	SalesRep     *SalesRep       `gorm:"foreignKey:SalesRepID;references:ID" json:"sales_rep,omitempty"`
	Action       string          `gorm:"type:audit_action_enum;not null;index:idx_audit_action" json:"action"`
	Description  *string         `gorm:"type:text" json:"description,omitempty"`
	IPAddress    *string         `gorm:"type:inet;index:idx_audit_ip_address" json:"ip_address,omitempty"`
	UserAgent    *string         `gorm:"type:text" json:"user_agent,omitempty"`
	RequestID    *string         `gorm:"size:255;index:idx_audit_request_id" json:"request_id,omitempty"`
	Metadata     json.RawMessage `gorm:"type:jsonb;index:idx_audit_metadata,type:gin" json:"metadata,omitempty"`
	Success      *bool           `gorm:"default:true;index:idx_audit_success" json:"success"`
	ErrorMessage *string         `gorm:"type:text" json:"error_message,omitempty"`
	CreatedAt    time.Time       `gorm:"default:CURRENT_TIMESTAMP;index:idx_audit_created_at" json:"created_at"`
}

func (AuditLog) TableName() string {
	return "audit_log"
}

// Audit action constants
const (
	AuditActionLoginSuccessful = "login_successful"
	AuditActionLoginFailed     = "login_failed"
	AuditActionLogout          = "logout"
	AuditActionSessionCreated  = "session_created"
	AuditActionSessionExpired  = "session_expired"

	AuditActionLeadCreated      = "lead_created"
	AuditActionLeadUpdated      = "lead_updated"
	AuditActionLeadStageMoved   = "lead_stage_moved"
	AuditActionLeadExported     = "lead_exported"
	AuditActionActivityLogged   = "activity_logged"
	AuditActionCadenceGenerated = "cadence_generated"
	AuditActionCadenceGenFailed = "cadence_generation_failed"
	AuditActionStepCompleted    = "cadence_step_completed"
	AuditActionStepSkipped      = "cadence_step_skipped"
	AuditActionQueueBuilt       = "session_queue_built"
)

// AuditLogFilter represents filter criteria for audit log queries
type AuditLogFilter struct {
	ID            *uint
	SalesRepID    *uint
	Action        *string
	Success       *bool
	IPAddress     *string
	RequestID     *string
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
}

func (a *AuditLog) IsFailed() bool {
	return a.Success != nil && !*a.Success
}

func (a *AuditLog) IsSecurityEvent() bool {
	securityActions := map[string]bool{
		AuditActionLoginSuccessful: true,
		AuditActionLoginFailed:     true,
		AuditActionLogout:          true,
		AuditActionSessionExpired:  true,
	}
	return securityActions[a.Action]
}
