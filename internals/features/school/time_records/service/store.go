package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"rotasiku_backend/internals/configs"
	"rotasiku_backend/internals/features/school/time_records/model"
	"rotasiku_backend/internals/helpers/dbtime"
)

const (
	// batas retry untuk konflik lock/serialisasi
	txMaxRetries = 3
	// transaksi clock tidak boleh menggantung; gagal cepat lebih baik
	txTimeout = 3 * time.Second

	notesSeparator = "\n\n"
)

type ClientInfo struct {
	IP        string
	UserAgent string
}

type OpenParams struct {
	StudentID  uuid.UUID
	RotationID uuid.UUID
	ClockIn    dbtime.Instant
	Activities []string
	Notes      *string
	Location   *model.LocationSnapshot
	Client     ClientInfo
}

type CloseParams struct {
	ClockOut   dbtime.Instant
	Activities []string
	Notes      *string
	Location   *model.LocationSnapshot
	Client     ClientInfo
}

// ClockStore: semua baca/tulis TimeRecord yang harus atomik terhadap
// invariant "maksimal satu sesi terbuka per (student, rotation)".
// Tidak ada caching in-process atas state open-record — setiap cek
// harus ke store transaksional (invariant tidak boleh bocor saat
// server berjalan lebih dari satu instance).
type ClockStore interface {
	FindOpenRecord(ctx context.Context, studentID, rotationID uuid.UUID) (*model.TimeRecordModel, error)
	FindAnyOpenRecord(ctx context.Context, studentID uuid.UUID) (*model.TimeRecordModel, error)
	GetRecord(ctx context.Context, recordID uuid.UUID) (*model.TimeRecordModel, error)
	OpenRecord(ctx context.Context, p OpenParams) (*model.TimeRecordModel, error)
	CloseRecord(ctx context.Context, recordID uuid.UUID, p CloseParams) (*model.TimeRecordModel, error)
}

type GormClockStore struct {
	DB     *gorm.DB
	Policy configs.ClockPolicy
}

func NewGormClockStore(db *gorm.DB, policy configs.ClockPolicy) *GormClockStore {
	return &GormClockStore{DB: db, Policy: policy}
}

func (s *GormClockStore) FindOpenRecord(ctx context.Context, studentID, rotationID uuid.UUID) (*model.TimeRecordModel, error) {
	var rec model.TimeRecordModel
	err := s.DB.WithContext(ctx).
		Where("time_record_student_id = ? AND time_record_rotation_id = ? AND time_record_clock_out IS NULL", studentID, rotationID).
		First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

// FindAnyOpenRecord: sesi terbuka milik student di rotasi mana pun
// (dipakai status query tanpa rotation_id).
func (s *GormClockStore) FindAnyOpenRecord(ctx context.Context, studentID uuid.UUID) (*model.TimeRecordModel, error) {
	var rec model.TimeRecordModel
	err := s.DB.WithContext(ctx).
		Where("time_record_student_id = ? AND time_record_clock_out IS NULL", studentID).
		Order("time_record_clock_in DESC").
		First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (s *GormClockStore) GetRecord(ctx context.Context, recordID uuid.UUID) (*model.TimeRecordModel, error) {
	var rec model.TimeRecordModel
	err := s.DB.WithContext(ctx).
		Where("time_record_id = ?", recordID).
		First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &rec, nil
}

// OpenRecord: cek-lalu-insert dalam SATU transaksi. Probe open record
// dikunci FOR UPDATE; kalau dua request masuk bersamaan, partial unique
// index di DB jadi pagar terakhir (unique violation → ErrAlreadyClockedIn).
func (s *GormClockStore) OpenRecord(ctx context.Context, p OpenParams) (*model.TimeRecordModel, error) {
	var created *model.TimeRecordModel

	err := s.withRetry(ctx, func(tx *gorm.DB) error {
		var existing model.TimeRecordModel
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("time_record_student_id = ? AND time_record_rotation_id = ? AND time_record_clock_out IS NULL",
				p.StudentID, p.RotationID).
			First(&existing).Error
		if err == nil {
			return ErrAlreadyClockedIn
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		locJSON, err := marshalLocation(p.Location)
		if err != nil {
			return err
		}

		day := p.ClockIn.DB
		rec := &model.TimeRecordModel{
			TimeRecordStudentID:  p.StudentID,
			TimeRecordRotationID: p.RotationID,
			TimeRecordDate:       time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC),
			TimeRecordClockIn:    p.ClockIn.DB,
			TimeRecordActivities: sanitizeActivities(p.Activities),
			TimeRecordNotes:      trimNotes(p.Notes),
			TimeRecordClockInLocation: locJSON,
			TimeRecordStatus:     model.TimeRecordStatusPending,
		}
		if p.Client.IP != "" {
			rec.TimeRecordClockInIP = ptr(p.Client.IP)
		}
		if p.Client.UserAgent != "" {
			rec.TimeRecordClockInUserAgent = ptr(p.Client.UserAgent)
		}

		if err := tx.Create(rec).Error; err != nil {
			if isUniqueViolation(err) {
				return ErrAlreadyClockedIn
			}
			return err
		}
		created = rec
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// CloseRecord: load FOR UPDATE lalu mutasi sekali. Record yang sudah
// tertutup tidak pernah diubah lagi (idempoten dalam arti selalu gagal
// ErrAlreadyClockedOut tanpa menyentuh total_hours/notes lama).
func (s *GormClockStore) CloseRecord(ctx context.Context, recordID uuid.UUID, p CloseParams) (*model.TimeRecordModel, error) {
	var closed *model.TimeRecordModel

	err := s.withRetry(ctx, func(tx *gorm.DB) error {
		var rec model.TimeRecordModel
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("time_record_id = ?", recordID).
			First(&rec).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if rec.TimeRecordClockOut != nil {
			return ErrAlreadyClockedOut
		}

		out := p.ClockOut.DB
		hours := RoundHours(out.Sub(rec.TimeRecordClockIn))

		rec.TimeRecordClockOut = &out
		rec.TimeRecordTotalHours = &hours

		// activities di-APPEND, bukan replace
		rec.TimeRecordActivities = append(rec.TimeRecordActivities, sanitizeActivities(p.Activities)...)

		// notes lama dan baru digabung dengan separator, yang kosong dilewati
		rec.TimeRecordNotes = mergeNotes(rec.TimeRecordNotes, p.Notes)

		locJSON, err := marshalLocation(p.Location)
		if err != nil {
			return err
		}
		rec.TimeRecordClockOutLocation = locJSON
		if p.Client.IP != "" {
			rec.TimeRecordClockOutIP = ptr(p.Client.IP)
		}
		if p.Client.UserAgent != "" {
			rec.TimeRecordClockOutUserAgent = ptr(p.Client.UserAgent)
		}

		// auto-approve hanya kalau kebijakan mengizinkan DAN interval lolos validasi
		if s.Policy.AutoApprove {
			if res := ValidateClockOutTime(rec.TimeRecordClockIn, out, s.Policy.MaxSession); res.Valid {
				now := p.ClockOut.DB
				rec.TimeRecordStatus = model.TimeRecordStatusApproved
				rec.TimeRecordApprovedAt = &now
			}
		}

		if err := tx.Save(&rec).Error; err != nil {
			return err
		}
		closed = &rec
		return nil
	})
	if err != nil {
		return nil, err
	}
	return closed, nil
}

/* ===============================
   Transaksi + retry konflik
=================================*/

// withRetry menjalankan fn dalam transaksi ber-deadline; konflik
// serialisasi/lock di-retry terbatas lalu menyerah sebagai ErrTxConflict.
func (s *GormClockStore) withRetry(ctx context.Context, fn func(tx *gorm.DB) error) error {
	var lastErr error
	for attempt := 0; attempt < txMaxRetries; attempt++ {
		txCtx, cancel := context.WithTimeout(ctx, txTimeout)
		err := s.runTx(txCtx, fn)
		cancel()
		if err == nil {
			return nil
		}
		if !isRetryableTxError(err) {
			return err
		}
		lastErr = err
		time.Sleep(time.Duration(attempt+1) * 25 * time.Millisecond)
	}
	if lastErr != nil {
		return ErrTxConflict
	}
	return nil
}

func (s *GormClockStore) runTx(ctx context.Context, fn func(tx *gorm.DB) error) (err error) {
	tx := s.DB.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	if err = fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit().Error
}

func isRetryableTxError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "40001", "40P01", "55P03": // serialization / deadlock / lock timeout
			return true
		}
	}
	return false
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

/* ===============================
   Helper kecil
=================================*/

func marshalLocation(loc *model.LocationSnapshot) (datatypes.JSON, error) {
	if loc == nil {
		return nil, nil
	}
	b, err := sonic.Marshal(loc)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(b), nil
}

func sanitizeActivities(in []string) []string {
	out := make([]string, 0, len(in))
	for _, a := range in {
		a = strings.TrimSpace(a)
		if a != "" {
			out = append(out, a)
		}
	}
	return out
}

func trimNotes(n *string) *string {
	if n == nil {
		return nil
	}
	t := strings.TrimSpace(*n)
	if t == "" {
		return nil
	}
	return &t
}

func mergeNotes(existing, incoming *string) *string {
	parts := make([]string, 0, 2)
	if existing != nil && strings.TrimSpace(*existing) != "" {
		parts = append(parts, strings.TrimSpace(*existing))
	}
	if incoming != nil && strings.TrimSpace(*incoming) != "" {
		parts = append(parts, strings.TrimSpace(*incoming))
	}
	if len(parts) == 0 {
		return nil
	}
	merged := strings.Join(parts, notesSeparator)
	return &merged
}

func ptr[T any](v T) *T { return &v }
