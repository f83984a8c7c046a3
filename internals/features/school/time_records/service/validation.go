package service

import (
	"fmt"
	"math"
	"time"
)

// HoursPrecision: presisi pembulatan total_hours, berlaku satu untuk
// seluruh code path (2 desimal).
const HoursPrecision = 2

// RuleResult: hasil predicate aturan bisnis — deterministik, tanpa side effect,
// waktu "sekarang" selalu diinjeksi supaya bisa diunit-test.
type RuleResult struct {
	Valid  bool
	Reason string
}

func ruleOK() RuleResult { return RuleResult{Valid: true} }

func ruleFail(format string, args ...any) RuleResult {
	return RuleResult{Valid: false, Reason: fmt.Sprintf(format, args...)}
}

// ValidateStudentSubmissionWindow: student hanya boleh membuat/mengubah record
// yang timestamp acuannya masih di dalam window terakhir (kebijakan, mis. 48 jam),
// plus toleransi kecil ke depan untuk clock skew. Mencegah submit mundur
// lama setelah shift selesai.
func ValidateStudentSubmissionWindow(now, ref time.Time, window, futureGrace time.Duration) RuleResult {
	if ref.IsZero() {
		return ruleFail("timestamp acuan kosong")
	}
	if ref.After(now.Add(futureGrace)) {
		return ruleFail("timestamp berada di masa depan")
	}
	if ref.Before(now.Add(-window)) {
		return ruleFail("timestamp di luar submission window (%s terakhir)", window)
	}
	return ruleOK()
}

// ValidateClockOutTime: clock-out harus setelah clock-in dan durasi sesi
// tidak melebihi batas maksimum (guard lupa clock-out berhari-hari).
func ValidateClockOutTime(clockIn, clockOut time.Time, maxSession time.Duration) RuleResult {
	if !clockOut.After(clockIn) {
		return ruleFail("clock-out harus setelah clock-in")
	}
	if clockOut.Sub(clockIn) > maxSession {
		return ruleFail("durasi sesi melebihi batas maksimum %s", maxSession)
	}
	return ruleOK()
}

// RoundHours membulatkan durasi ke jam desimal sesuai HoursPrecision.
func RoundHours(d time.Duration) float64 {
	pow := math.Pow10(HoursPrecision)
	return math.Round(d.Hours()*pow) / pow
}
