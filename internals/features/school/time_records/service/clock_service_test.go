package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"rotasiku_backend/internals/configs"
	"rotasiku_backend/internals/features/school/time_records/model"
	"rotasiku_backend/internals/helpers/dbtime"
)

var mulaiSemester = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func setupClockService() (*ClockService, *fakeClockStore, *fakeRotationReader, *dbtime.FakeClock) {
	store := newFakeClockStore()
	rotations := newFakeRotationReader()
	clock := dbtime.NewFakeClock(time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC))
	svc := NewClockService(store, rotations, clock, configs.ClockPolicy{
		SubmissionWindow: 48 * time.Hour,
		FutureGrace:      5 * time.Minute,
		MaxSession:       24 * time.Hour,
		AutoApprove:      false,
	})
	return svc, store, rotations, clock
}

/* ===================== CLOCK-IN ===================== */

func TestClockIn_Sukses(t *testing.T) {
	svc, _, rotations, _ := setupClockService()
	studentID := uuid.New()
	rotID := rotations.add(studentID, mulaiSemester, mulaiSemester.AddDate(0, 3, 0))

	rec, now, err := svc.ClockIn(context.Background(), studentID, ClockInInput{RotationID: rotID})
	if err != nil {
		t.Fatalf("ClockIn harus sukses: %v", err)
	}
	if rec.TimeRecordClockOut != nil {
		t.Error("record baru harus masih terbuka")
	}
	if rec.TimeRecordStatus != model.TimeRecordStatusPending {
		t.Errorf("status = %s, harap PENDING", rec.TimeRecordStatus)
	}
	if !rec.TimeRecordClockIn.Equal(now.DB) {
		t.Error("clock_in harus sama dengan instant yang di-echo")
	}
}

func TestClockIn_DuaKaliDitolak(t *testing.T) {
	svc, _, rotations, _ := setupClockService()
	studentID := uuid.New()
	rotID := rotations.add(studentID, mulaiSemester, mulaiSemester.AddDate(0, 3, 0))

	if _, _, err := svc.ClockIn(context.Background(), studentID, ClockInInput{RotationID: rotID}); err != nil {
		t.Fatalf("clock-in pertama harus sukses: %v", err)
	}
	_, _, err := svc.ClockIn(context.Background(), studentID, ClockInInput{RotationID: rotID})
	if !errors.Is(err, ErrAlreadyClockedIn) {
		t.Errorf("harap ErrAlreadyClockedIn, dapat: %v", err)
	}
}

// Dua request clock-in konkuren untuk pasangan yang sama: tepat satu yang
// berhasil, dan store tidak pernah berisi dua sesi terbuka sekaligus.
func TestClockIn_KonkurenHanyaSatuBerhasil(t *testing.T) {
	svc, store, rotations, _ := setupClockService()
	studentID := uuid.New()
	rotID := rotations.add(studentID, mulaiSemester, mulaiSemester.AddDate(0, 3, 0))

	const n = 16
	var wg sync.WaitGroup
	results := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, _, results[i] = svc.ClockIn(context.Background(), studentID, ClockInInput{RotationID: rotID})
		}(i)
	}
	wg.Wait()

	sukses, konflik := 0, 0
	for _, err := range results {
		switch {
		case err == nil:
			sukses++
		case errors.Is(err, ErrAlreadyClockedIn):
			konflik++
		default:
			t.Errorf("error tak terduga: %v", err)
		}
	}
	if sukses != 1 {
		t.Errorf("sukses = %d, harap tepat 1", sukses)
	}
	if konflik != n-1 {
		t.Errorf("konflik = %d, harap %d", konflik, n-1)
	}
	if got := store.openCount(studentID, rotID); got != 1 {
		t.Errorf("sesi terbuka di store = %d, harap 1", got)
	}
}

func TestClockIn_RotasiOrangLainDitolak(t *testing.T) {
	svc, _, rotations, _ := setupClockService()
	pemilik := uuid.New()
	penyusup := uuid.New()
	rotID := rotations.add(pemilik, mulaiSemester, mulaiSemester.AddDate(0, 3, 0))

	_, _, err := svc.ClockIn(context.Background(), penyusup, ClockInInput{RotationID: rotID})
	if !errors.Is(err, ErrAccessDenied) {
		t.Errorf("harap ErrAccessDenied, dapat: %v", err)
	}
}

func TestClockIn_RotasiTidakAktifDitolak(t *testing.T) {
	svc, _, rotations, _ := setupClockService()
	studentID := uuid.New()
	// rotasi baru mulai bulan depan
	rotID := rotations.add(studentID, mulaiSemester.AddDate(0, 1, 0), mulaiSemester.AddDate(0, 4, 0))

	_, _, err := svc.ClockIn(context.Background(), studentID, ClockInInput{RotationID: rotID})
	if !errors.Is(err, ErrRotationNotActive) {
		t.Errorf("harap ErrRotationNotActive, dapat: %v", err)
	}
}

func TestClockIn_RotasiTidakAdaDitolak(t *testing.T) {
	svc, _, _, _ := setupClockService()

	_, _, err := svc.ClockIn(context.Background(), uuid.New(), ClockInInput{RotationID: uuid.New()})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("harap ErrNotFound, dapat: %v", err)
	}
}

/* ===================== CLOCK-OUT ===================== */

func TestClockOut_DurasiDanPembulatan(t *testing.T) {
	svc, _, rotations, clock := setupClockService()
	studentID := uuid.New()
	rotID := rotations.add(studentID, mulaiSemester, mulaiSemester.AddDate(0, 3, 0))

	rec, _, err := svc.ClockIn(context.Background(), studentID, ClockInInput{RotationID: rotID})
	if err != nil {
		t.Fatalf("clock-in gagal: %v", err)
	}

	// 09:00 → 17:00
	clock.Advance(8 * time.Hour)
	closed, _, err := svc.ClockOut(context.Background(), studentID, ClockOutInput{TimeRecordID: rec.TimeRecordID})
	if err != nil {
		t.Fatalf("clock-out gagal: %v", err)
	}
	if closed.TimeRecordClockOut == nil {
		t.Fatal("clock_out harus terisi")
	}
	if closed.TimeRecordTotalHours == nil || *closed.TimeRecordTotalHours != 8.00 {
		t.Errorf("total_hours = %v, harap 8.00", closed.TimeRecordTotalHours)
	}
}

func TestClockOut_DuaKaliSelaluGagalTanpaMutasi(t *testing.T) {
	svc, _, rotations, clock := setupClockService()
	studentID := uuid.New()
	rotID := rotations.add(studentID, mulaiSemester, mulaiSemester.AddDate(0, 3, 0))

	rec, _, _ := svc.ClockIn(context.Background(), studentID, ClockInInput{RotationID: rotID})
	clock.Advance(4 * time.Hour)
	pertama, _, err := svc.ClockOut(context.Background(), studentID, ClockOutInput{
		TimeRecordID: rec.TimeRecordID,
		Notes:        strPtr("catatan pertama"),
	})
	if err != nil {
		t.Fatalf("clock-out pertama gagal: %v", err)
	}

	clock.Advance(2 * time.Hour)
	_, _, err = svc.ClockOut(context.Background(), studentID, ClockOutInput{
		TimeRecordID: rec.TimeRecordID,
		Notes:        strPtr("catatan kedua yang tidak boleh masuk"),
	})
	if !errors.Is(err, ErrAlreadyClockedOut) {
		t.Fatalf("harap ErrAlreadyClockedOut, dapat: %v", err)
	}

	// total_hours dan notes lama tidak berubah
	ulang, err := svc.Store.GetRecord(context.Background(), rec.TimeRecordID)
	if err != nil {
		t.Fatalf("GetRecord gagal: %v", err)
	}
	if *ulang.TimeRecordTotalHours != *pertama.TimeRecordTotalHours {
		t.Error("total_hours berubah setelah close kedua")
	}
	if ulang.TimeRecordNotes == nil || *ulang.TimeRecordNotes != *pertama.TimeRecordNotes {
		t.Error("notes berubah setelah close kedua")
	}
}

func TestClockOut_RecordOrangLainDitolak(t *testing.T) {
	svc, _, rotations, _ := setupClockService()
	pemilik := uuid.New()
	rotID := rotations.add(pemilik, mulaiSemester, mulaiSemester.AddDate(0, 3, 0))
	rec, _, _ := svc.ClockIn(context.Background(), pemilik, ClockInInput{RotationID: rotID})

	_, _, err := svc.ClockOut(context.Background(), uuid.New(), ClockOutInput{TimeRecordID: rec.TimeRecordID})
	if !errors.Is(err, ErrAccessDenied) {
		t.Errorf("harap ErrAccessDenied, dapat: %v", err)
	}
}

func TestClockOut_MergeActivitiesDanNotes(t *testing.T) {
	svc, _, rotations, clock := setupClockService()
	studentID := uuid.New()
	rotID := rotations.add(studentID, mulaiSemester, mulaiSemester.AddDate(0, 3, 0))

	rec, _, err := svc.ClockIn(context.Background(), studentID, ClockInInput{
		RotationID: rotID,
		Activities: []string{"anamnesis", "pemeriksaan fisik"},
		Notes:      strPtr("pagi ramai"),
	})
	if err != nil {
		t.Fatalf("clock-in gagal: %v", err)
	}

	clock.Advance(6 * time.Hour)
	closed, _, err := svc.ClockOut(context.Background(), studentID, ClockOutInput{
		TimeRecordID: rec.TimeRecordID,
		Activities:   []string{"observasi operasi"},
		Notes:        strPtr("sore membaik"),
	})
	if err != nil {
		t.Fatalf("clock-out gagal: %v", err)
	}

	wantActs := []string{"anamnesis", "pemeriksaan fisik", "observasi operasi"}
	if len(closed.TimeRecordActivities) != len(wantActs) {
		t.Fatalf("activities = %v, harap %v", closed.TimeRecordActivities, wantActs)
	}
	for i, a := range wantActs {
		if closed.TimeRecordActivities[i] != a {
			t.Errorf("activities[%d] = %s, harap %s", i, closed.TimeRecordActivities[i], a)
		}
	}

	if closed.TimeRecordNotes == nil {
		t.Fatal("notes kosong")
	}
	if *closed.TimeRecordNotes != "pagi ramai\n\nsore membaik" {
		t.Errorf("notes = %q, dua-duanya harus ada", *closed.TimeRecordNotes)
	}
}

func TestClockOut_AutoApproveSesuaiKebijakan(t *testing.T) {
	svc, store, rotations, clock := setupClockService()
	svc.Policy.AutoApprove = true
	store.policy.autoApprove = true

	studentID := uuid.New()
	rotID := rotations.add(studentID, mulaiSemester, mulaiSemester.AddDate(0, 3, 0))
	rec, _, _ := svc.ClockIn(context.Background(), studentID, ClockInInput{RotationID: rotID})

	clock.Advance(8 * time.Hour)
	closed, _, err := svc.ClockOut(context.Background(), studentID, ClockOutInput{TimeRecordID: rec.TimeRecordID})
	if err != nil {
		t.Fatalf("clock-out gagal: %v", err)
	}
	if closed.TimeRecordStatus != model.TimeRecordStatusApproved {
		t.Errorf("status = %s, harap APPROVED (auto-approve aktif)", closed.TimeRecordStatus)
	}
	if closed.TimeRecordApprovedAt == nil {
		t.Error("approved_at harus terisi saat auto-approve")
	}
}

func TestClockOut_SesiBasiDitolakSubmissionWindow(t *testing.T) {
	svc, _, rotations, clock := setupClockService()
	studentID := uuid.New()
	rotID := rotations.add(studentID, mulaiSemester, mulaiSemester.AddDate(0, 6, 0))
	rec, _, _ := svc.ClockIn(context.Background(), studentID, ClockInInput{RotationID: rotID})

	// lupa clock-out sampai lewat submission window (48 jam)
	clock.Advance(72 * time.Hour)
	_, _, err := svc.ClockOut(context.Background(), studentID, ClockOutInput{TimeRecordID: rec.TimeRecordID})
	var rv *RuleViolation
	if !errors.As(err, &rv) {
		t.Errorf("harap RuleViolation submission window, dapat: %v", err)
	}
}

/* ===================== STATUS ===================== */

func TestStatus_TidakClockIn(t *testing.T) {
	svc, _, _, _ := setupClockService()

	res := svc.Status(context.Background(), uuid.New(), nil)
	if res.IsClocked {
		t.Error("harap is_clocked = false")
	}
}

func TestStatus_SedangClockIn(t *testing.T) {
	svc, _, rotations, clock := setupClockService()
	studentID := uuid.New()
	rotID := rotations.add(studentID, mulaiSemester, mulaiSemester.AddDate(0, 3, 0))
	rec, _, _ := svc.ClockIn(context.Background(), studentID, ClockInInput{RotationID: rotID})

	clock.Advance(90 * time.Minute)
	res := svc.Status(context.Background(), studentID, &rotID)
	if !res.IsClocked {
		t.Fatal("harap is_clocked = true")
	}
	if res.TimeRecordID == nil || *res.TimeRecordID != rec.TimeRecordID {
		t.Error("time_record_id tidak sesuai")
	}
	if res.CurrentDurationSeconds != 90*60 {
		t.Errorf("durasi = %d detik, harap %d", res.CurrentDurationSeconds, 90*60)
	}
}

// Status query tidak boleh pernah gagal: store error → jawab "tidak clock-in".
func TestStatus_StoreErrorDegradeKeDefault(t *testing.T) {
	svc, store, _, _ := setupClockService()
	store.failAll = true

	res := svc.Status(context.Background(), uuid.New(), nil)
	if res.IsClocked {
		t.Error("saat store error, harus jatuh ke is_clocked = false")
	}
}

func strPtr(s string) *string { return &s }
