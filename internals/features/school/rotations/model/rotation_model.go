package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RotationModel: penempatan klinis satu student di satu clinical site
// untuk rentang tanggal tertentu.
type RotationModel struct {
	RotationID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:rotation_id" json:"rotation_id"`

	RotationStudentID uuid.UUID `gorm:"type:uuid;not null;index;column:rotation_student_id" json:"rotation_student_id"`

	RotationSiteName      string  `gorm:"size:150;not null;column:rotation_site_name"  json:"rotation_site_name"`
	RotationPreceptorName *string `gorm:"size:150;column:rotation_preceptor_name"      json:"rotation_preceptor_name,omitempty"`

	RotationStartDate time.Time `gorm:"type:date;not null;column:rotation_start_date" json:"rotation_start_date"`
	RotationEndDate   time.Time `gorm:"type:date;not null;column:rotation_end_date"   json:"rotation_end_date"`

	RotationCreatedAt time.Time      `gorm:"column:rotation_created_at;autoCreateTime" json:"rotation_created_at"`
	RotationUpdatedAt *time.Time     `gorm:"column:rotation_updated_at;autoUpdateTime" json:"rotation_updated_at,omitempty"`
	RotationDeletedAt gorm.DeletedAt `gorm:"column:rotation_deleted_at;index"          json:"rotation_deleted_at,omitempty"`
}

func (RotationModel) TableName() string { return "rotations" }

// IsActiveAt: rotasi sedang berjalan pada waktu t (inklusif di tanggal akhir).
func (m *RotationModel) IsActiveAt(t time.Time) bool {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	start := time.Date(m.RotationStartDate.Year(), m.RotationStartDate.Month(), m.RotationStartDate.Day(), 0, 0, 0, 0, time.UTC)
	end := time.Date(m.RotationEndDate.Year(), m.RotationEndDate.Month(), m.RotationEndDate.Day(), 0, 0, 0, 0, time.UTC)
	return !day.Before(start) && !day.After(end)
}
