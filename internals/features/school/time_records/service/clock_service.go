package service

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"rotasiku_backend/internals/configs"
	rotmodel "rotasiku_backend/internals/features/school/rotations/model"
	"rotasiku_backend/internals/features/school/time_records/model"
	"rotasiku_backend/internals/helpers/dbtime"
)

// RotationReader: kolaborator lookup rotasi (dipenuhi fitur rotations).
type RotationReader interface {
	GetRotation(ctx context.Context, id uuid.UUID) (*rotmodel.RotationModel, error)
}

// ClockService: koordinator use-case clock-in/clock-out/status.
// Semua dependensi diinjeksi; aturan bisnis murni ada di validation.go,
// atomisitas di ClockStore.
type ClockService struct {
	Store     ClockStore
	Rotations RotationReader
	Clock     dbtime.Clock
	Policy    configs.ClockPolicy
}

func NewClockService(store ClockStore, rotations RotationReader, clock dbtime.Clock, policy configs.ClockPolicy) *ClockService {
	if clock == nil {
		clock = dbtime.NewRealClock()
	}
	return &ClockService{Store: store, Rotations: rotations, Clock: clock, Policy: policy}
}

type ClockInInput struct {
	RotationID uuid.UUID
	Activities []string
	Notes      *string
	Location   *model.LocationSnapshot
	Client     ClientInfo
}

type ClockOutInput struct {
	TimeRecordID uuid.UUID
	Activities   []string
	Notes        *string
	Location     *model.LocationSnapshot
	Client       ClientInfo
}

// ClockIn: student hanya boleh clock-in atas rotasi miliknya sendiri,
// dan rotasi harus sedang di dalam rentang tanggal aktifnya.
func (s *ClockService) ClockIn(ctx context.Context, studentID uuid.UUID, in ClockInInput) (*model.TimeRecordModel, dbtime.Instant, error) {
	now := s.Clock.Now()

	rot, err := s.Rotations.GetRotation(ctx, in.RotationID)
	if err != nil {
		return nil, now, err
	}
	if rot.RotationStudentID != studentID {
		return nil, now, ErrAccessDenied
	}
	if !rot.IsActiveAt(now.DB) {
		return nil, now, ErrRotationNotActive
	}

	if res := ValidateStudentSubmissionWindow(now.DB, now.DB, s.Policy.SubmissionWindow, s.Policy.FutureGrace); !res.Valid {
		return nil, now, &RuleViolation{Reason: res.Reason}
	}

	rec, err := s.Store.OpenRecord(ctx, OpenParams{
		StudentID:  studentID,
		RotationID: in.RotationID,
		ClockIn:    now,
		Activities: in.Activities,
		Notes:      in.Notes,
		Location:   in.Location,
		Client:     in.Client,
	})
	if err != nil {
		return nil, now, err
	}
	return rec, now, nil
}

// ClockOut: tutup sesi milik sendiri. Pemeriksaan kepemilikan di sini,
// pemeriksaan "sudah tertutup" final tetap di store di bawah lock.
func (s *ClockService) ClockOut(ctx context.Context, studentID uuid.UUID, in ClockOutInput) (*model.TimeRecordModel, dbtime.Instant, error) {
	now := s.Clock.Now()

	rec, err := s.Store.GetRecord(ctx, in.TimeRecordID)
	if err != nil {
		return nil, now, err
	}
	if rec.TimeRecordStudentID != studentID {
		return nil, now, ErrAccessDenied
	}
	if rec.TimeRecordClockOut != nil {
		return nil, now, ErrAlreadyClockedOut
	}

	// clock-in yang sudah terlalu lama tidak boleh lagi ditutup student
	// sendiri (stale submission); admin/preceptor yang membereskan.
	if res := ValidateStudentSubmissionWindow(now.DB, rec.TimeRecordClockIn, s.Policy.SubmissionWindow, s.Policy.FutureGrace); !res.Valid {
		return nil, now, &RuleViolation{Reason: res.Reason}
	}

	closed, err := s.Store.CloseRecord(ctx, in.TimeRecordID, CloseParams{
		ClockOut:   now,
		Activities: in.Activities,
		Notes:      in.Notes,
		Location:   in.Location,
		Client:     in.Client,
	})
	if err != nil {
		return nil, now, err
	}
	return closed, now, nil
}

/* ===============================
   Status query (read-only)
=================================*/

// StatusResult: bentuk respons clock-status. Nilai default-nya = "tidak
// sedang clock-in"; error internal tidak pernah keluar dari Status().
type StatusResult struct {
	IsClocked              bool       `json:"is_clocked"`
	TimeRecordID           *uuid.UUID `json:"time_record_id,omitempty"`
	RotationID             *uuid.UUID `json:"rotation_id,omitempty"`
	ClockedInAt            *string    `json:"clocked_in_at,omitempty"`
	CurrentDurationSeconds int64      `json:"current_duration_seconds"`
	Activities             []string   `json:"activities,omitempty"`
	Notes                  *string    `json:"notes,omitempty"`
	Location               any        `json:"location,omitempty"`
}

// Status tidak pernah mengembalikan error: pengecekan status jangan
// sampai jadi alasan UI rusak. Gagal apa pun → "tidak clock-in".
func (s *ClockService) Status(ctx context.Context, studentID uuid.UUID, rotationID *uuid.UUID) StatusResult {
	now := s.Clock.Now()

	var (
		rec *model.TimeRecordModel
		err error
	)
	if rotationID != nil {
		rec, err = s.Store.FindOpenRecord(ctx, studentID, *rotationID)
	} else {
		rec, err = s.Store.FindAnyOpenRecord(ctx, studentID)
	}
	if err != nil {
		log.Printf("clock-status degrade ke default: %v", err)
		return StatusResult{IsClocked: false}
	}
	if rec == nil {
		return StatusResult{IsClocked: false}
	}

	iso := rec.TimeRecordClockIn.UTC().Format(time.RFC3339Nano)
	dur := now.DB.Sub(rec.TimeRecordClockIn)
	if dur < 0 {
		dur = 0
	}

	res := StatusResult{
		IsClocked:              true,
		TimeRecordID:           &rec.TimeRecordID,
		RotationID:             &rec.TimeRecordRotationID,
		ClockedInAt:            &iso,
		CurrentDurationSeconds: int64(dur.Seconds()),
		Activities:             rec.TimeRecordActivities,
		Notes:                  rec.TimeRecordNotes,
	}
	if len(rec.TimeRecordClockInLocation) > 0 {
		res.Location = rec.TimeRecordClockInLocation
	}
	return res
}
