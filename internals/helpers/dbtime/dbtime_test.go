package dbtime

import (
	"testing"
	"time"
)

func TestFromTime_KonsistenAntarRepresentasi(t *testing.T) {
	base := time.Date(2024, 1, 1, 9, 0, 0, 123456789, time.UTC)
	ins := FromTime(base)

	if ins.ISO != "2024-01-01T09:00:00.123456789Z" {
		t.Errorf("ISO tidak sesuai: %s", ins.ISO)
	}
	// DB dibulatkan ke mikrodetik
	want := time.Date(2024, 1, 1, 9, 0, 0, 123456000, time.UTC)
	if !ins.DB.Equal(want) {
		t.Errorf("DB timestamp: dapat %v, harap %v", ins.DB, want)
	}
}

func TestFromTime_DurasiDariDBSamaDenganWall(t *testing.T) {
	t0 := time.Date(2024, 1, 1, 9, 0, 0, 250000000, time.UTC)
	t1 := t0.Add(8 * time.Hour)

	in := FromTime(t0)
	out := FromTime(t1)

	if got := out.DB.Sub(in.DB); got != 8*time.Hour {
		t.Errorf("durasi dari DB = %v, harap 8h", got)
	}
}

func TestFakeClock_Advance(t *testing.T) {
	start := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	fc := NewFakeClock(start)

	fc.Advance(90 * time.Minute)
	got := fc.Now()
	if !got.Wall.Equal(start.Add(90 * time.Minute)) {
		t.Errorf("FakeClock tidak maju: %v", got.Wall)
	}
}

func TestRealClock_TidakPernahZero(t *testing.T) {
	ins := NewRealClock().Now()
	if ins.Wall.IsZero() || ins.DB.IsZero() || ins.ISO == "" {
		t.Error("RealClock mengembalikan instant kosong")
	}
}
