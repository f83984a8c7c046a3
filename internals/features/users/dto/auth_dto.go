package dto

import (
	"time"

	"github.com/google/uuid"

	"rotasiku_backend/internals/features/users/model"
)

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type UserResponse struct {
	UserID    uuid.UUID `json:"user_id"`
	UserName  string    `json:"user_name"`
	UserEmail string    `json:"user_email"`
	UserRole  string    `json:"user_role"`
	CreatedAt string    `json:"created_at"`
}

func FromUserModel(m model.UserModel) UserResponse {
	return UserResponse{
		UserID:    m.UserID,
		UserName:  m.UserName,
		UserEmail: m.UserEmail,
		UserRole:  m.UserRole,
		CreatedAt: m.UserCreatedAt.UTC().Format(time.RFC3339),
	}
}

type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt string       `json:"expires_at"`
	User      UserResponse `json:"user"`
}
