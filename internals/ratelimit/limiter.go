// file: internals/ratelimit/limiter.go
//
// Limiter milik proses (bukan global): sliding-window counter per identitas.
// Best-effort single-process — tujuannya mitigasi abuse, bukan korektness
// terdistribusi. Kalau nanti perlu shared store (Redis), cukup ganti
// implementasi ini tanpa menyentuh call site.
package ratelimit

import (
	"sync"
	"time"

	"rotasiku_backend/internals/configs"
	"rotasiku_backend/internals/helpers/dbtime"
)

type Result struct {
	Allowed   bool
	Remaining int
	ResetTime time.Time
}

type entry struct {
	count     int
	resetTime time.Time
}

type Limiter struct {
	mu     sync.Mutex
	max    int
	window time.Duration
	clock  dbtime.Clock
	byID   map[string]*entry
}

func NewLimiter(max int, window time.Duration, clock dbtime.Clock) *Limiter {
	if clock == nil {
		clock = dbtime.NewRealClock()
	}
	return &Limiter{
		max:    max,
		window: window,
		clock:  clock,
		byID:   make(map[string]*entry),
	}
}

// Check menghitung satu request atas identity. Entri kedaluwarsa
// di-reset lazily di sini; sweep berkala membersihkan sisanya.
func (l *Limiter) Check(identity string) Result {
	now := l.clock.Now().Wall

	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.byID[identity]
	if !ok || now.After(e.resetTime) {
		e = &entry{count: 0, resetTime: now.Add(l.window)}
		l.byID[identity] = e
	}

	if e.count >= l.max {
		return Result{Allowed: false, Remaining: 0, ResetTime: e.resetTime}
	}

	e.count++
	return Result{
		Allowed:   true,
		Remaining: l.max - e.count,
		ResetTime: e.resetTime,
	}
}

// sweep membuang entri yang window-nya sudah lewat, supaya map tidak
// tumbuh tanpa batas.
func (l *Limiter) sweep() {
	now := l.clock.Now().Wall

	l.mu.Lock()
	defer l.mu.Unlock()

	for id, e := range l.byID {
		if now.After(e.resetTime) {
			delete(l.byID, id)
		}
	}
}

func (l *Limiter) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.byID)
}

/* ===============================
   Registry: limiter per kelas endpoint
=================================*/

type Registry struct {
	API   *Limiter // traffic API umum
	Clock *Limiter // operasi clock-in/out (lebih ketat)
	Login *Limiter // percobaan login

	stop chan struct{}
	wg   sync.WaitGroup
}

func NewRegistry(cfg configs.RateLimitConfig) *Registry {
	clk := dbtime.NewRealClock()
	r := &Registry{
		API:   NewLimiter(cfg.APIMax, cfg.APIWindow, clk),
		Clock: NewLimiter(cfg.ClockMax, cfg.ClockWindow, clk),
		Login: NewLimiter(cfg.LoginMax, cfg.LoginWindow, clk),
		stop:  make(chan struct{}),
	}
	r.startSweeper(time.Minute)
	return r
}

func (r *Registry) startSweeper(every time.Duration) {
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		t := time.NewTicker(every)
		defer t.Stop()
		for {
			select {
			case <-t.C:
				r.API.sweep()
				r.Clock.sweep()
				r.Login.sweep()
			case <-r.stop:
				return
			}
		}
	}()
}

func (r *Registry) Stop() {
	close(r.stop)
	r.wg.Wait()
}
