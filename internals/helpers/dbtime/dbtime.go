// file: internals/helpers/dbtime/dbtime.go
package dbtime

import (
	"sync"
	"time"
)

// Instant: satu momen konsisten untuk tiga kebutuhan sekaligus —
// tampilan (ISO), aritmetika durasi presisi tinggi (Wall, monotonic),
// dan nilai yang dipersist (DB, UTC turunan dari Wall).
// Durasi yang dihitung nanti dari DB harus sama dengan durasi dari Wall.
type Instant struct {
	Wall time.Time // bawa monotonic reading dari time.Now()
	ISO  string    // RFC3339Nano, untuk echo ke client
	DB   time.Time // UTC, dibulatkan ke mikrodetik (presisi timestamptz)
}

// Clock abstraksi waktu supaya rules & limiter bisa dites dengan waktu injeksi.
type Clock interface {
	Now() Instant
}

// RealClock delegasi ke time.Now(). Tidak pernah gagal: time.Now() selalu
// mengembalikan wall clock walau monotonic source tidak tersedia.
type RealClock struct{}

func NewRealClock() *RealClock { return &RealClock{} }

func (RealClock) Now() Instant {
	return FromTime(time.Now())
}

// FromTime membentuk Instant dari satu time.Time tunggal.
// DB dibulatkan ke mikrodetik karena timestamptz Postgres menyimpan µs;
// dengan begitu (DB_out - DB_in) == (Wall_out - Wall_in) setelah pembulatan.
func FromTime(t time.Time) Instant {
	db := t.UTC().Truncate(time.Microsecond)
	return Instant{
		Wall: t,
		ISO:  t.UTC().Format(time.RFC3339Nano),
		DB:   db,
	}
}

// FakeClock: jam yang bisa dimaju-mundurkan untuk test.
type FakeClock struct {
	mu  sync.Mutex
	cur time.Time
}

func NewFakeClock(start time.Time) *FakeClock {
	return &FakeClock{cur: start}
}

func (f *FakeClock) Now() Instant {
	f.mu.Lock()
	defer f.mu.Unlock()
	return FromTime(f.cur)
}

func (f *FakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cur = f.cur.Add(d)
}

func (f *FakeClock) Set(t time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cur = t
}
