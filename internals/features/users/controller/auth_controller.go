package controller

import (
	"errors"
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"

	"rotasiku_backend/internals/configs"
	"rotasiku_backend/internals/features/users/dto"
	"rotasiku_backend/internals/features/users/model"
	helper "rotasiku_backend/internals/helpers"
	helperAuth "rotasiku_backend/internals/helpers/auth"
)

const tokenTTL = 24 * time.Hour

type AuthController struct {
	DB *gorm.DB
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{DB: db}
}

/* ===================== LOGIN ===================== */
// POST /auth/login
func (ctrl *AuthController) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Payload tidak valid")
	}
	v := validator.New()
	if err := v.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	var user model.UserModel
	err := ctrl.DB.WithContext(c.UserContext()).
		Where("user_email = ?", req.Email).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// pesan sama dengan password salah — jangan bocorkan email mana yang terdaftar
			return fiber.NewError(fiber.StatusUnauthorized, "Email atau password salah")
		}
		log.Printf("login lookup err: %v", err)
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal memproses login")
	}

	if !user.UserIsActive {
		return fiber.NewError(fiber.StatusForbidden, "Akun dinonaktifkan")
	}
	if !user.CheckPassword(req.Password) {
		return fiber.NewError(fiber.StatusUnauthorized, "Email atau password salah")
	}

	expiresAt := time.Now().Add(tokenTTL)
	claims := jwt.MapClaims{
		"id":        user.UserID.String(),
		"role":      user.UserRole,
		"user_name": user.UserName,
		"iat":       time.Now().Unix(),
		"exp":       expiresAt.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(configs.JWTSecret))
	if err != nil {
		log.Printf("sign token err: %v", err)
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal memproses login")
	}

	return helper.JsonOK(c, "Login berhasil", dto.LoginResponse{
		Token:     signed,
		ExpiresAt: expiresAt.UTC().Format(time.RFC3339),
		User:      dto.FromUserModel(user),
	})
}

/* ===================== ME ===================== */
// GET /u/me — profil user yang login (sudah AuthJWT).
func (ctrl *AuthController) Me(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var user model.UserModel
	if err := ctrl.DB.WithContext(c.UserContext()).
		Where("user_id = ?", userID).
		First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "User tidak ditemukan")
		}
		log.Printf("me lookup err: %v", err)
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil profil")
	}

	return helper.JsonOK(c, "ok", dto.FromUserModel(user))
}
