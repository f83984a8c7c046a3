package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Status time-record
const (
	TimeRecordStatusPending  = "PENDING"
	TimeRecordStatusApproved = "APPROVED"
	TimeRecordStatusRejected = "REJECTED"
)

// LocationSnapshot: potret lokasi saat clock-in/clock-out, disimpan JSONB.
// Snapshot in dan out independen — tidak saling menimpa.
type LocationSnapshot struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Accuracy  *float64 `json:"accuracy,omitempty"`
	Source    string  `json:"source,omitempty"` // gps | network | passive
}

// Invariant satu sesi terbuka per (student, rotation) dijaga dua lapis:
// probe FOR UPDATE dalam transaksi + partial unique index di DB:
//
//	CREATE UNIQUE INDEX uq_time_records_open
//	ON time_records (time_record_student_id, time_record_rotation_id)
//	WHERE time_record_clock_out IS NULL AND time_record_deleted_at IS NULL;
type TimeRecordModel struct {
	TimeRecordID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:time_record_id" json:"time_record_id"`

	TimeRecordStudentID  uuid.UUID `gorm:"type:uuid;not null;index;column:time_record_student_id"  json:"time_record_student_id"`
	TimeRecordRotationID uuid.UUID `gorm:"type:uuid;not null;index;column:time_record_rotation_id" json:"time_record_rotation_id"`

	TimeRecordDate     time.Time  `gorm:"type:date;not null;column:time_record_date"            json:"time_record_date"`
	TimeRecordClockIn  time.Time  `gorm:"type:timestamptz;not null;column:time_record_clock_in" json:"time_record_clock_in"`
	TimeRecordClockOut *time.Time `gorm:"type:timestamptz;column:time_record_clock_out"         json:"time_record_clock_out,omitempty"`

	// Terisi hanya setelah clock-out (numeric(7,2), presisi kebijakan 2 desimal)
	TimeRecordTotalHours *float64 `gorm:"type:numeric(7,2);column:time_record_total_hours" json:"time_record_total_hours,omitempty"`

	TimeRecordActivities pq.StringArray `gorm:"type:text[];column:time_record_activities" json:"time_record_activities,omitempty"`
	TimeRecordNotes      *string        `gorm:"type:text;column:time_record_notes"        json:"time_record_notes,omitempty"`

	TimeRecordClockInLocation  datatypes.JSON `gorm:"type:jsonb;column:time_record_clock_in_location"  json:"time_record_clock_in_location,omitempty"`
	TimeRecordClockOutLocation datatypes.JSON `gorm:"type:jsonb;column:time_record_clock_out_location" json:"time_record_clock_out_location,omitempty"`

	// Audit per aksi: IP & user-agent clock-in dan clock-out disimpan terpisah
	TimeRecordClockInIP        *string `gorm:"size:45;column:time_record_clock_in_ip"          json:"time_record_clock_in_ip,omitempty"`
	TimeRecordClockInUserAgent *string `gorm:"size:255;column:time_record_clock_in_user_agent" json:"time_record_clock_in_user_agent,omitempty"`
	TimeRecordClockOutIP       *string `gorm:"size:45;column:time_record_clock_out_ip"         json:"time_record_clock_out_ip,omitempty"`
	TimeRecordClockOutUserAgent *string `gorm:"size:255;column:time_record_clock_out_user_agent" json:"time_record_clock_out_user_agent,omitempty"`

	TimeRecordStatus     string     `gorm:"type:varchar(10);not null;default:'PENDING';column:time_record_status" json:"time_record_status"`
	TimeRecordApprovedBy *uuid.UUID `gorm:"type:uuid;column:time_record_approved_by" json:"time_record_approved_by,omitempty"`
	TimeRecordApprovedAt *time.Time `gorm:"column:time_record_approved_at"           json:"time_record_approved_at,omitempty"`

	TimeRecordCreatedAt time.Time      `gorm:"column:time_record_created_at;autoCreateTime" json:"time_record_created_at"`
	TimeRecordUpdatedAt *time.Time     `gorm:"column:time_record_updated_at;autoUpdateTime" json:"time_record_updated_at,omitempty"`
	TimeRecordDeletedAt gorm.DeletedAt `gorm:"column:time_record_deleted_at;index"          json:"time_record_deleted_at,omitempty"`
}

func (TimeRecordModel) TableName() string { return "time_records" }

// IsOpen: sesi masih berjalan selama clock_out belum terisi.
func (m *TimeRecordModel) IsOpen() bool { return m.TimeRecordClockOut == nil }

func IsKnownTimeRecordStatus(s string) bool {
	switch s {
	case TimeRecordStatusPending, TimeRecordStatusApproved, TimeRecordStatusRejected:
		return true
	}
	return false
}
