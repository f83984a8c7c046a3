package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

// Emit tidak boleh memblokir walau buffer penuh dan worker belum jalan.
func TestEmit_TidakBlokirSaatBufferPenuh(t *testing.T) {
	d := NewDispatcher(nil, 2)
	// worker sengaja tidak di-Start

	done := make(chan struct{})
	go func() {
		for i := 0; i < 10; i++ {
			d.Emit(Event{Type: "clock_in", UserID: uuid.New()})
		}
		close(done)
	}()

	select {
	case <-done:
		// ok: semua Emit kembali, kelebihan event di-drop
	case <-time.After(time.Second):
		t.Fatal("Emit memblokir saat buffer penuh")
	}
}

func TestEmit_MengisiOccurredAtKalauKosong(t *testing.T) {
	d := NewDispatcher(nil, 4)
	d.Emit(Event{Type: "clock_out", UserID: uuid.New()})

	ev := <-d.ch
	if ev.OccurredAt.IsZero() {
		t.Error("OccurredAt harus terisi otomatis")
	}
}

func TestStop_MenghabiskanBufferLaluBerhenti(t *testing.T) {
	d := NewDispatcher(nil, 8)
	d.Start()
	for i := 0; i < 5; i++ {
		d.Emit(Event{Type: "clock_in", UserID: uuid.New()})
	}

	done := make(chan struct{})
	go func() {
		d.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop tidak selesai")
	}
}
