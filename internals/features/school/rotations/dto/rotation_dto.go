package dto

import (
	"time"

	"github.com/google/uuid"

	"rotasiku_backend/internals/features/school/rotations/model"
)

/* ===============================
   Requests
=================================*/

type CreateRotationRequest struct {
	StudentID     uuid.UUID `json:"student_id"     validate:"required"`
	SiteName      string    `json:"site_name"      validate:"required,min=2,max=150"`
	PreceptorName *string   `json:"preceptor_name" validate:"omitempty,max=150"`

	// format tanggal: YYYY-MM-DD
	StartDate string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate   string `json:"end_date"   validate:"required,datetime=2006-01-02"`
}

type UpdateRotationRequest struct {
	SiteName      *string `json:"site_name"      validate:"omitempty,min=2,max=150"`
	PreceptorName *string `json:"preceptor_name" validate:"omitempty,max=150"`
	StartDate     *string `json:"start_date"     validate:"omitempty,datetime=2006-01-02"`
	EndDate       *string `json:"end_date"       validate:"omitempty,datetime=2006-01-02"`
}

/* ===============================
   Responses
=================================*/

type RotationResponse struct {
	RotationID        uuid.UUID `json:"rotation_id"`
	RotationStudentID uuid.UUID `json:"rotation_student_id"`

	RotationSiteName      string  `json:"rotation_site_name"`
	RotationPreceptorName *string `json:"rotation_preceptor_name,omitempty"`

	RotationStartDate string `json:"rotation_start_date"`
	RotationEndDate   string `json:"rotation_end_date"`

	RotationIsActive  bool   `json:"rotation_is_active"`
	RotationCreatedAt string `json:"rotation_created_at"`
}

func FromRotationModel(m model.RotationModel) RotationResponse {
	return RotationResponse{
		RotationID:            m.RotationID,
		RotationStudentID:     m.RotationStudentID,
		RotationSiteName:      m.RotationSiteName,
		RotationPreceptorName: m.RotationPreceptorName,
		RotationStartDate:     m.RotationStartDate.Format("2006-01-02"),
		RotationEndDate:       m.RotationEndDate.Format("2006-01-02"),
		RotationIsActive:      m.IsActiveAt(time.Now().UTC()),
		RotationCreatedAt:     m.RotationCreatedAt.UTC().Format(time.RFC3339),
	}
}

func FromRotationList(ms []model.RotationModel) []RotationResponse {
	out := make([]RotationResponse, 0, len(ms))
	for _, m := range ms {
		out = append(out, FromRotationModel(m))
	}
	return out
}
