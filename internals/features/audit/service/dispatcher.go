package service

import (
	"log"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"rotasiku_backend/internals/features/audit/model"
)

// Event: satu kejadian yang dicatat ke audit log.
type Event struct {
	Type         string
	UserID       uuid.UUID
	TimeRecordID *uuid.UUID
	RotationID   *uuid.UUID
	OccurredAt   time.Time
	Payload      map[string]any
}

// Dispatcher menulis audit event secara asynchronous lewat buffered channel.
// Emit tidak pernah memblokir path response: kalau buffer penuh, event
// di-drop dan dicatat ke log — audit di sini best-effort, bukan ledger.
type Dispatcher struct {
	db     *gorm.DB
	ch     chan Event
	wg     sync.WaitGroup
	once   sync.Once
	closed sync.Once
}

func NewDispatcher(db *gorm.DB, buffer int) *Dispatcher {
	if buffer <= 0 {
		buffer = 64
	}
	return &Dispatcher{
		db: db,
		ch: make(chan Event, buffer),
	}
}

func (d *Dispatcher) Start() {
	d.once.Do(func() {
		d.wg.Add(1)
		go func() {
			defer d.wg.Done()
			for ev := range d.ch {
				d.write(ev)
			}
		}()
	})
}

// Emit: fire-and-forget. Tidak pernah menunggu, tidak pernah error ke caller.
func (d *Dispatcher) Emit(ev Event) {
	if ev.OccurredAt.IsZero() {
		ev.OccurredAt = time.Now().UTC()
	}
	select {
	case d.ch <- ev:
	default:
		log.Printf("⚠️ audit buffer penuh, event %s di-drop", ev.Type)
	}
}

// Stop menutup channel dan menunggu worker menghabiskan sisa buffer.
func (d *Dispatcher) Stop() {
	d.closed.Do(func() {
		close(d.ch)
	})
	d.wg.Wait()
}

func (d *Dispatcher) write(ev Event) {
	if d.db == nil {
		log.Printf("audit tanpa DB, event %s diabaikan", ev.Type)
		return
	}
	var payload datatypes.JSON
	if len(ev.Payload) > 0 {
		if b, err := sonic.Marshal(ev.Payload); err == nil {
			payload = datatypes.JSON(b)
		} else {
			log.Printf("audit payload marshal err: %v", err)
		}
	}

	rec := model.AuditEventModel{
		AuditEventType:         ev.Type,
		AuditEventUserID:       ev.UserID,
		AuditEventTimeRecordID: ev.TimeRecordID,
		AuditEventRotationID:   ev.RotationID,
		AuditEventOccurredAt:   ev.OccurredAt,
		AuditEventPayload:      payload,
	}
	if err := d.db.Create(&rec).Error; err != nil {
		// kegagalan audit diisolasi dari request utama
		log.Printf("audit write err (%s): %v", ev.Type, err)
	}
}
