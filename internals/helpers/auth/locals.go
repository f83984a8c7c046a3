// file: internals/helpers/auth/locals.go
package helperAuth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"rotasiku_backend/internals/constants"
)

/* ===============================
   Locals Keys (diisi middleware AuthJWT)
=================================*/

const (
	LocUserID   = "user_id"   // string UUID
	LocRole     = "role"      // string, salah satu constants.AllRoles
	LocUserName = "user_name" // string, opsional
)

// GetUserIDFromToken membaca user_id hasil hydrate middleware AuthJWT.
func GetUserIDFromToken(c *fiber.Ctx) (uuid.UUID, error) {
	v := c.Locals(LocUserID)
	s, ok := v.(string)
	if !ok || strings.TrimSpace(s) == "" {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "user_id tidak ditemukan di token")
	}
	id, err := uuid.Parse(strings.TrimSpace(s))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "user_id tidak valid")
	}
	return id, nil
}

// GetRoleFromToken membaca role; role di luar enumerasi ditolak.
func GetRoleFromToken(c *fiber.Ctx) (string, error) {
	v := c.Locals(LocRole)
	s, ok := v.(string)
	if !ok || strings.TrimSpace(s) == "" {
		return "", fiber.NewError(fiber.StatusUnauthorized, "role tidak ditemukan di token")
	}
	role := strings.ToLower(strings.TrimSpace(s))
	if !constants.IsKnownRole(role) {
		return "", fiber.NewError(fiber.StatusForbidden, "role tidak dikenal")
	}
	return role, nil
}

// RequireCapability: evaluasi tabel kapabilitas sekali di awal handler.
func RequireCapability(c *fiber.Ctx, action string) (uuid.UUID, string, error) {
	userID, err := GetUserIDFromToken(c)
	if err != nil {
		return uuid.Nil, "", err
	}
	role, err := GetRoleFromToken(c)
	if err != nil {
		return uuid.Nil, "", err
	}
	if !constants.Can(role, action) {
		return uuid.Nil, "", fiber.NewError(fiber.StatusForbidden, "❌ Role Anda tidak diizinkan melakukan aksi ini.")
	}
	return userID, role, nil
}

// RateLimitIdentity: identitas untuk limiter — user id kalau sudah login,
// fallback ke IP untuk endpoint publik.
func RateLimitIdentity(c *fiber.Ctx) string {
	if v, ok := c.Locals(LocUserID).(string); ok && v != "" {
		return "u:" + v
	}
	return "ip:" + c.IP()
}
