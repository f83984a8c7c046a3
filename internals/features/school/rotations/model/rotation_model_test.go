package model

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestIsActiveAt_RentangTanggalInklusif(t *testing.T) {
	rot := RotationModel{
		RotationStartDate: date(2026, 3, 1),
		RotationEndDate:   date(2026, 3, 31),
	}

	cases := []struct {
		name string
		at   time.Time
		want bool
	}{
		{"sebelum mulai", date(2026, 2, 28), false},
		{"hari pertama", date(2026, 3, 1), true},
		{"di tengah", date(2026, 3, 15), true},
		{"hari terakhir jam 23:59", time.Date(2026, 3, 31, 23, 59, 0, 0, time.UTC), true},
		{"sehari setelah berakhir", date(2026, 4, 1), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := rot.IsActiveAt(tc.at); got != tc.want {
				t.Errorf("IsActiveAt(%s) = %v, want %v", tc.at, got, tc.want)
			}
		})
	}
}

// Jam berapa pun pada tanggal akhir masih aktif — perbandingan per tanggal,
// bukan per instant.
func TestIsActiveAt_AbaikanKomponenJam(t *testing.T) {
	rot := RotationModel{
		RotationStartDate: date(2026, 5, 10),
		RotationEndDate:   date(2026, 5, 10),
	}
	if !rot.IsActiveAt(time.Date(2026, 5, 10, 22, 30, 0, 0, time.UTC)) {
		t.Error("rotasi satu hari harus aktif sepanjang tanggal tersebut")
	}
}
