package entity

import (
	"time"

	"github.com/google/uuid"
)

// AuditLog represents a system audit trail entry
type AuditLog struct {
	ID        int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    *uuid.UUID `gorm:"type:uuid;index" json:"user_id,omitempty"`
	Action    string     `gorm:"type:varchar(100);not null;index" json:"action"`
	Metadata  JSON       `gorm:"type:jsonb" json:"metadata,omitempty"`
	CreatedAt time.Time  `gorm:"autoCreateTime;index" json:"created_at"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}

// Common audit actions
const (
	AuditActionScheduleReplace = "schedule.replace"
	AuditActionTemplateCreate  = "template.create"
	AuditActionTemplateUpdate  = "template.update"
	AuditActionTemplateDelete  = "template.delete"
	AuditActionTemplateApply   = "template.apply"
	AuditActionExceptionCreate = "exception.create"
	AuditActionExceptionDelete = "exception.delete"
	AuditActionConflictScan    = "conflict.scan"
	AuditActionConflictAutoFix = "conflict.auto_fix"
	AuditActionConflictResolve = "conflict.resolve"
	AuditActionConflictIgnore  = "conflict.ignore"
	AuditActionCalendarSync    = "calendar.sync"
)
