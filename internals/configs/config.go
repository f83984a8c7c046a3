package configs

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

var (
	JWTSecret        string
	JWTRefreshSecret string
)

// RateLimitConfig: knob limiter per kelas endpoint.
// Operasi clock dibatasi lebih ketat daripada API umum.
type RateLimitConfig struct {
	APIMax      int
	APIWindow   time.Duration
	ClockMax    int
	ClockWindow time.Duration
	LoginMax    int
	LoginWindow time.Duration
}

// ClockPolicy: aturan bisnis time-record.
type ClockPolicy struct {
	// SubmissionWindow: seberapa lama ke belakang timestamp masih boleh disubmit student
	SubmissionWindow time.Duration
	// FutureGrace: toleransi clock skew ke depan
	FutureGrace time.Duration
	// MaxSession: durasi sesi maksimum (guard lupa clock-out)
	MaxSession time.Duration
	// AutoApprove: langsung APPROVED saat clock-out kalau lolos validasi
	AutoApprove bool
}

type AppConfig struct {
	RateLimit RateLimitConfig
	Clock     ClockPolicy
}

var App AppConfig

// =======================
// ENV LOADER
// =======================
func LoadEnv() {
	if os.Getenv("RAILWAY_ENVIRONMENT") == "" {
		if err := godotenv.Load(); err != nil {
			log.Println("⚠️ Tidak menemukan .env file, menggunakan ENV dari sistem")
		} else {
			log.Println("✅ .env file berhasil dimuat!")
		}
	} else {
		log.Println("🚀 Running in Railway, menggunakan ENV dari sistem")
	}

	JWTSecret = GetEnv("JWT_SECRET")
	JWTRefreshSecret = GetEnv("JWT_REFRESH_SECRET")

	if JWTSecret == "" {
		log.Println("❌ JWT_SECRET belum diset!")
	} else {
		log.Println("✅ JWT_SECRET berhasil dimuat.")
	}

	App = AppConfig{
		RateLimit: RateLimitConfig{
			APIMax:      envInt("RATE_API_MAX", 100),
			APIWindow:   envDuration("RATE_API_WINDOW", time.Minute),
			ClockMax:    envInt("RATE_CLOCK_MAX", 10),
			ClockWindow: envDuration("RATE_CLOCK_WINDOW", time.Minute),
			LoginMax:    envInt("RATE_LOGIN_MAX", 5),
			LoginWindow: envDuration("RATE_LOGIN_WINDOW", time.Minute),
		},
		Clock: ClockPolicy{
			SubmissionWindow: envDuration("CLOCK_SUBMISSION_WINDOW", 48*time.Hour),
			FutureGrace:      envDuration("CLOCK_FUTURE_GRACE", 5*time.Minute),
			MaxSession:       envDuration("CLOCK_MAX_SESSION", 24*time.Hour),
			AutoApprove:      envBool("CLOCK_AUTO_APPROVE", false),
		},
	}
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if !exists && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}

func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
		log.Printf("⚠️ %s tidak valid, pakai default %d", key, def)
	}
	return def
}

func envDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
		log.Printf("⚠️ %s tidak valid, pakai default %s", key, def)
	}
	return def
}

func envBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}
