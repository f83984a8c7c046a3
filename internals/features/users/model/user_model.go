package model

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserModel struct {
	UserID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:user_id" json:"user_id"`

	UserName  string `gorm:"size:100;not null;column:user_name"          json:"user_name"`
	UserEmail string `gorm:"size:255;not null;uniqueIndex;column:user_email" json:"user_email"`

	// hash bcrypt, tidak pernah ikut JSON
	UserPassword string `gorm:"size:255;not null;column:user_password" json:"-"`

	// salah satu dari constants.AllRoles
	UserRole string `gorm:"size:20;not null;default:'student';column:user_role" json:"user_role"`

	UserIsActive bool `gorm:"not null;default:true;column:user_is_active" json:"user_is_active"`

	UserCreatedAt time.Time      `gorm:"column:user_created_at;autoCreateTime" json:"user_created_at"`
	UserUpdatedAt *time.Time     `gorm:"column:user_updated_at;autoUpdateTime" json:"user_updated_at,omitempty"`
	UserDeletedAt gorm.DeletedAt `gorm:"column:user_deleted_at;index"          json:"user_deleted_at,omitempty"`
}

func (UserModel) TableName() string { return "users" }

// SetPassword menyimpan hash bcrypt, bukan plaintext.
func (u *UserModel) SetPassword(plain string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.UserPassword = string(hash)
	return nil
}

func (u *UserModel) CheckPassword(plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.UserPassword), []byte(plain)) == nil
}
