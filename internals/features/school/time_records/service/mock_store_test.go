package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	rotmodel "rotasiku_backend/internals/features/school/rotations/model"
	"rotasiku_backend/internals/features/school/time_records/model"
)

/* ===============================
   Fake ClockStore (in-memory)
=================================*/

// fakeClockStore meniru semantik transaksional store asli: cek-lalu-insert
// dan cek-lalu-update dilindungi satu mutex, jadi dua request konkuren
// tidak pernah sama-sama berhasil.
type fakeClockStore struct {
	mu      sync.Mutex
	records map[uuid.UUID]*model.TimeRecordModel
	policy  fakePolicy

	failAll bool // paksa semua operasi error (untuk test degrade status)
}

type fakePolicy struct {
	autoApprove bool
	maxSession  time.Duration
}

var errFakeStore = errors.New("store sedang bermasalah")

func newFakeClockStore() *fakeClockStore {
	return &fakeClockStore{
		records: make(map[uuid.UUID]*model.TimeRecordModel),
		policy:  fakePolicy{autoApprove: false, maxSession: 24 * time.Hour},
	}
}

func (f *fakeClockStore) FindOpenRecord(_ context.Context, studentID, rotationID uuid.UUID) (*model.TimeRecordModel, error) {
	if f.failAll {
		return nil, errFakeStore
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.findOpenLocked(studentID, rotationID), nil
}

func (f *fakeClockStore) FindAnyOpenRecord(_ context.Context, studentID uuid.UUID) (*model.TimeRecordModel, error) {
	if f.failAll {
		return nil, errFakeStore
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.records {
		if r.TimeRecordStudentID == studentID && r.TimeRecordClockOut == nil {
			cp := *r
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeClockStore) GetRecord(_ context.Context, recordID uuid.UUID) (*model.TimeRecordModel, error) {
	if f.failAll {
		return nil, errFakeStore
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.records[recordID]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *r
	return &cp, nil
}

func (f *fakeClockStore) OpenRecord(_ context.Context, p OpenParams) (*model.TimeRecordModel, error) {
	if f.failAll {
		return nil, errFakeStore
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.findOpenLocked(p.StudentID, p.RotationID) != nil {
		return nil, ErrAlreadyClockedIn
	}

	day := p.ClockIn.DB
	rec := &model.TimeRecordModel{
		TimeRecordID:         uuid.New(),
		TimeRecordStudentID:  p.StudentID,
		TimeRecordRotationID: p.RotationID,
		TimeRecordDate:       time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC),
		TimeRecordClockIn:    p.ClockIn.DB,
		TimeRecordActivities: sanitizeActivities(p.Activities),
		TimeRecordNotes:      trimNotes(p.Notes),
		TimeRecordStatus:     model.TimeRecordStatusPending,
	}
	f.records[rec.TimeRecordID] = rec
	cp := *rec
	return &cp, nil
}

func (f *fakeClockStore) CloseRecord(_ context.Context, recordID uuid.UUID, p CloseParams) (*model.TimeRecordModel, error) {
	if f.failAll {
		return nil, errFakeStore
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	rec, ok := f.records[recordID]
	if !ok {
		return nil, ErrNotFound
	}
	if rec.TimeRecordClockOut != nil {
		return nil, ErrAlreadyClockedOut
	}

	out := p.ClockOut.DB
	hours := RoundHours(out.Sub(rec.TimeRecordClockIn))
	rec.TimeRecordClockOut = &out
	rec.TimeRecordTotalHours = &hours
	rec.TimeRecordActivities = append(rec.TimeRecordActivities, sanitizeActivities(p.Activities)...)
	rec.TimeRecordNotes = mergeNotes(rec.TimeRecordNotes, p.Notes)

	if f.policy.autoApprove {
		if res := ValidateClockOutTime(rec.TimeRecordClockIn, out, f.policy.maxSession); res.Valid {
			rec.TimeRecordStatus = model.TimeRecordStatusApproved
			rec.TimeRecordApprovedAt = &out
		}
	}

	cp := *rec
	return &cp, nil
}

// openCount: jumlah sesi terbuka untuk satu pasangan (student, rotation).
func (f *fakeClockStore) openCount(studentID, rotationID uuid.UUID) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, r := range f.records {
		if r.TimeRecordStudentID == studentID && r.TimeRecordRotationID == rotationID && r.TimeRecordClockOut == nil {
			n++
		}
	}
	return n
}

func (f *fakeClockStore) findOpenLocked(studentID, rotationID uuid.UUID) *model.TimeRecordModel {
	for _, r := range f.records {
		if r.TimeRecordStudentID == studentID && r.TimeRecordRotationID == rotationID && r.TimeRecordClockOut == nil {
			return r
		}
	}
	return nil
}

/* ===============================
   Fake RotationReader
=================================*/

type fakeRotationReader struct {
	rotations map[uuid.UUID]*rotmodel.RotationModel
}

func newFakeRotationReader() *fakeRotationReader {
	return &fakeRotationReader{rotations: make(map[uuid.UUID]*rotmodel.RotationModel)}
}

func (f *fakeRotationReader) GetRotation(_ context.Context, id uuid.UUID) (*rotmodel.RotationModel, error) {
	r, ok := f.rotations[id]
	if !ok {
		return nil, ErrNotFound
	}
	return r, nil
}

func (f *fakeRotationReader) add(studentID uuid.UUID, start, end time.Time) uuid.UUID {
	id := uuid.New()
	f.rotations[id] = &rotmodel.RotationModel{
		RotationID:        id,
		RotationStudentID: studentID,
		RotationSiteName:  "RS Pendidikan",
		RotationStartDate: start,
		RotationEndDate:   end,
	}
	return id
}
