package service

import (
	"testing"
	"time"
)

var jam9 = time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

func TestValidateStudentSubmissionWindow(t *testing.T) {
	window := 48 * time.Hour
	grace := 5 * time.Minute

	tests := []struct {
		name  string
		ref   time.Time
		valid bool
	}{
		{"sekarang", jam9, true},
		{"kemarin", jam9.Add(-24 * time.Hour), true},
		{"tepat di batas window", jam9.Add(-48 * time.Hour), true},
		{"lewat window", jam9.Add(-49 * time.Hour), false},
		{"skew kecil ke depan", jam9.Add(2 * time.Minute), true},
		{"terlalu jauh di masa depan", jam9.Add(time.Hour), false},
		{"zero time", time.Time{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := ValidateStudentSubmissionWindow(jam9, tt.ref, window, grace)
			if res.Valid != tt.valid {
				t.Errorf("valid = %v, harap %v (reason: %s)", res.Valid, tt.valid, res.Reason)
			}
			if !res.Valid && res.Reason == "" {
				t.Error("penolakan harus membawa alasan")
			}
		})
	}
}

func TestValidateClockOutTime(t *testing.T) {
	maxSession := 24 * time.Hour

	tests := []struct {
		name     string
		clockOut time.Time
		valid    bool
	}{
		{"sesi 8 jam", jam9.Add(8 * time.Hour), true},
		{"sesi 1 detik", jam9.Add(time.Second), true},
		{"clock-out sama dengan clock-in", jam9, false},
		{"clock-out sebelum clock-in", jam9.Add(-time.Hour), false},
		{"sesi multi-hari (lupa clock-out)", jam9.Add(72 * time.Hour), false},
		{"tepat di batas maksimum", jam9.Add(24 * time.Hour), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := ValidateClockOutTime(jam9, tt.clockOut, maxSession)
			if res.Valid != tt.valid {
				t.Errorf("valid = %v, harap %v (reason: %s)", res.Valid, tt.valid, res.Reason)
			}
		})
	}
}

func TestRoundHours_PresisiDuaDesimal(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want float64
	}{
		{8 * time.Hour, 8.00},
		{90 * time.Minute, 1.50},
		{10 * time.Minute, 0.17},  // 0.1666... → 0.17
		{8*time.Hour + 20*time.Minute, 8.33},
		{time.Second, 0.00},
	}

	for _, tt := range tests {
		if got := RoundHours(tt.d); got != tt.want {
			t.Errorf("RoundHours(%v) = %v, harap %v", tt.d, got, tt.want)
		}
	}
}
