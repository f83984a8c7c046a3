package service

import "errors"

// Taksonomi error engine clock. Konflik bisnis (sudah clock-in/out) itu
// kondisi normal, bukan fault server — controller memetakan ke 400/403/404,
// bukan 500, dan tidak dicatat sebagai error server.
var (
	ErrAlreadyClockedIn  = errors.New("student sudah clock-in di rotasi ini")
	ErrAlreadyClockedOut = errors.New("time record sudah di-clock-out")
	ErrNotFound          = errors.New("data tidak ditemukan")
	ErrAccessDenied      = errors.New("akses ditolak")
	ErrRotationNotActive = errors.New("rotasi sedang tidak aktif")
	ErrRecordNotPending  = errors.New("time record sudah tidak berstatus PENDING")

	// ErrTxConflict: konflik lock/serialisasi yang sudah di-retry sampai batas;
	// caller boleh mencoba lagi.
	ErrTxConflict = errors.New("transaksi bentrok, silakan coba lagi")
)

// RuleViolation: penolakan aturan bisnis dengan alasan yang bisa
// ditampilkan ke user (submission window, interval clock-out, dll).
type RuleViolation struct {
	Reason string
}

func (e *RuleViolation) Error() string { return e.Reason }
