package middlewares

import (
	"time"

	"github.com/gofiber/fiber/v2"

	helperAuth "rotasiku_backend/internals/helpers/auth"
	helper "rotasiku_backend/internals/helpers"
	"rotasiku_backend/internals/ratelimit"
)

// RateLimit membungkus limiter injeksi jadi fiber.Handler.
// Identitas: user id kalau sudah lewat AuthJWT, fallback IP.
// Ditolak SEBELUM handler menyentuh data store.
func RateLimit(l *ratelimit.Limiter, message string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		res := l.Check(helperAuth.RateLimitIdentity(c))
		if !res.Allowed {
			c.Set("Retry-After", res.ResetTime.UTC().Format(time.RFC3339))
			return helper.JsonRateLimited(c, message, res.ResetTime.UTC().Format(time.RFC3339))
		}
		return c.Next()
	}
}

// ClockRateLimiter: untuk operasi clock-in/out (lebih ketat)
func ClockRateLimiter(r *ratelimit.Registry) fiber.Handler {
	return RateLimit(r.Clock, "❌ Terlalu banyak operasi clock. Silakan coba lagi nanti.")
}

// APIRateLimiter: untuk semua endpoint biasa
func APIRateLimiter(r *ratelimit.Registry) fiber.Handler {
	return RateLimit(r.API, "❌ Terlalu banyak permintaan. Silakan coba lagi nanti.")
}

// LoginRateLimiter: untuk login route
func LoginRateLimiter(r *ratelimit.Registry) fiber.Handler {
	return RateLimit(r.Login, "❌ Terlalu banyak percobaan login. Coba beberapa saat lagi.")
}
