package domain

import (
	"strings"
	"time"
)

// ValidationError carries one human-readable message per violated rule.
// Handlers map it to a 400-class response.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Fields, "; ")
}

type AuditAction string

const (
	ActionCreate AuditAction = "create"
	ActionUpdate AuditAction = "update"
	ActionCancel AuditAction = "cancel"
	ActionDelete AuditAction = "delete"
)

// AuditLog records a mutation against an aggregate. Entries are written
// asynchronously; see service.AuditTrail.
type AuditLog struct {
	ID         string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	OccurredAt time.Time `gorm:"autoCreateTime;index" json:"occurred_at"`

	Action       AuditAction `gorm:"column:action;type:varchar(20);not null;index" json:"action"`
	ResourceType string      `gorm:"column:resource_type;type:varchar(50);not null;index" json:"resource_type"`
	ResourceID   string      `gorm:"column:resource_id;type:varchar(64);index" json:"resource_id"`

	Changes string `gorm:"column:changes;type:text" json:"changes,omitempty"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}
