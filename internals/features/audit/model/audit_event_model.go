package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Jenis event yang dikenal audit log
const (
	AuditEventClockIn        = "clock_in"
	AuditEventClockOut       = "clock_out"
	AuditEventRecordApproved = "record_approved"
	AuditEventRecordRejected = "record_rejected"
	AuditEventRecordDeleted  = "record_deleted"
)

type AuditEventModel struct {
	AuditEventID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:audit_event_id" json:"audit_event_id"`

	AuditEventType   string    `gorm:"size:50;not null;index;column:audit_event_type" json:"audit_event_type"`
	AuditEventUserID uuid.UUID `gorm:"type:uuid;not null;index;column:audit_event_user_id" json:"audit_event_user_id"`

	AuditEventTimeRecordID *uuid.UUID `gorm:"type:uuid;column:audit_event_time_record_id" json:"audit_event_time_record_id,omitempty"`
	AuditEventRotationID   *uuid.UUID `gorm:"type:uuid;column:audit_event_rotation_id"    json:"audit_event_rotation_id,omitempty"`

	AuditEventOccurredAt time.Time      `gorm:"not null;column:audit_event_occurred_at" json:"audit_event_occurred_at"`
	AuditEventPayload    datatypes.JSON `gorm:"type:jsonb;column:audit_event_payload"   json:"audit_event_payload,omitempty"`

	AuditEventCreatedAt time.Time `gorm:"column:audit_event_created_at;autoCreateTime" json:"audit_event_created_at"`
}

func (AuditEventModel) TableName() string { return "audit_events" }
