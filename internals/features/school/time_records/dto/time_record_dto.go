package dto

import (
	"time"

	"github.com/google/uuid"

	"rotasiku_backend/internals/features/school/time_records/model"
)

/* ===============================
   Requests
=================================*/

const (
	ActionClockIn  = "clock-in"
	ActionClockOut = "clock-out"
)

// ClockRequest: body POST /time-records/clock.
// clock-in pakai rotation_id; clock-out pakai time_record_id.
type ClockRequest struct {
	Action string `json:"action" validate:"required,oneof=clock-in clock-out"`

	RotationID   *uuid.UUID `json:"rotation_id"    validate:"required_if=Action clock-in"`
	TimeRecordID *uuid.UUID `json:"time_record_id" validate:"required_if=Action clock-out"`

	Activities []string `json:"activities" validate:"omitempty,max=20,dive,min=1,max=200"`
	Notes      *string  `json:"notes"      validate:"omitempty,max=1000"`

	Latitude       *float64 `json:"latitude"        validate:"omitempty,min=-90,max=90"`
	Longitude      *float64 `json:"longitude"       validate:"omitempty,min=-180,max=180"`
	Accuracy       *float64 `json:"accuracy"        validate:"omitempty,min=0"`
	LocationSource *string  `json:"location_source" validate:"omitempty,oneof=gps network passive"`
}

// Location: snapshot hanya dibentuk kalau latitude & longitude dua-duanya ada.
func (r *ClockRequest) Location() *model.LocationSnapshot {
	if r.Latitude == nil || r.Longitude == nil {
		return nil
	}
	loc := &model.LocationSnapshot{
		Latitude:  *r.Latitude,
		Longitude: *r.Longitude,
		Accuracy:  r.Accuracy,
	}
	if r.LocationSource != nil {
		loc.Source = *r.LocationSource
	}
	return loc
}

/* ===============================
   Responses
=================================*/

type TimeRecordResponse struct {
	TimeRecordID uuid.UUID `json:"time_record_id"`

	TimeRecordStudentID  uuid.UUID `json:"time_record_student_id"`
	TimeRecordRotationID uuid.UUID `json:"time_record_rotation_id"`

	TimeRecordDate       string   `json:"time_record_date"`
	TimeRecordClockIn    string   `json:"time_record_clock_in"`
	TimeRecordClockOut   *string  `json:"time_record_clock_out,omitempty"`
	TimeRecordTotalHours *float64 `json:"time_record_total_hours,omitempty"`

	TimeRecordActivities []string `json:"time_record_activities,omitempty"`
	TimeRecordNotes      *string  `json:"time_record_notes,omitempty"`

	TimeRecordClockInLocation  any `json:"time_record_clock_in_location,omitempty"`
	TimeRecordClockOutLocation any `json:"time_record_clock_out_location,omitempty"`

	TimeRecordStatus     string     `json:"time_record_status"`
	TimeRecordApprovedBy *uuid.UUID `json:"time_record_approved_by,omitempty"`
	TimeRecordApprovedAt *string    `json:"time_record_approved_at,omitempty"`

	TimeRecordCreatedAt string `json:"time_record_created_at"`
}

func FromTimeRecordModel(m model.TimeRecordModel) TimeRecordResponse {
	resp := TimeRecordResponse{
		TimeRecordID:         m.TimeRecordID,
		TimeRecordStudentID:  m.TimeRecordStudentID,
		TimeRecordRotationID: m.TimeRecordRotationID,
		TimeRecordDate:       m.TimeRecordDate.Format("2006-01-02"),
		TimeRecordClockIn:    m.TimeRecordClockIn.UTC().Format(time.RFC3339Nano),
		TimeRecordTotalHours: m.TimeRecordTotalHours,
		TimeRecordActivities: m.TimeRecordActivities,
		TimeRecordNotes:      m.TimeRecordNotes,
		TimeRecordStatus:     m.TimeRecordStatus,
		TimeRecordApprovedBy: m.TimeRecordApprovedBy,
		TimeRecordCreatedAt:  m.TimeRecordCreatedAt.UTC().Format(time.RFC3339),
	}
	if m.TimeRecordClockOut != nil {
		s := m.TimeRecordClockOut.UTC().Format(time.RFC3339Nano)
		resp.TimeRecordClockOut = &s
	}
	if m.TimeRecordApprovedAt != nil {
		s := m.TimeRecordApprovedAt.UTC().Format(time.RFC3339)
		resp.TimeRecordApprovedAt = &s
	}
	if len(m.TimeRecordClockInLocation) > 0 {
		resp.TimeRecordClockInLocation = m.TimeRecordClockInLocation
	}
	if len(m.TimeRecordClockOutLocation) > 0 {
		resp.TimeRecordClockOutLocation = m.TimeRecordClockOutLocation
	}
	return resp
}

// ClockResponse: record + echo instant presisi tinggi dari Timestamp Service.
type ClockResponse struct {
	TimeRecord            TimeRecordResponse `json:"time_record"`
	HighPrecisionClockIn  *string            `json:"high_precision_clock_in,omitempty"`
	HighPrecisionClockOut *string            `json:"high_precision_clock_out,omitempty"`
}

func FromTimeRecordList(ms []model.TimeRecordModel) []TimeRecordResponse {
	out := make([]TimeRecordResponse, 0, len(ms))
	for _, m := range ms {
		out = append(out, FromTimeRecordModel(m))
	}
	return out
}
