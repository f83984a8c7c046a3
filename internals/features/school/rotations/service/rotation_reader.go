package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"rotasiku_backend/internals/features/school/rotations/model"
	trservice "rotasiku_backend/internals/features/school/time_records/service"
)

// GormRotationReader memenuhi kebutuhan lookup rotasi milik clock engine.
type GormRotationReader struct {
	DB *gorm.DB
}

func NewGormRotationReader(db *gorm.DB) *GormRotationReader {
	return &GormRotationReader{DB: db}
}

func (r *GormRotationReader) GetRotation(ctx context.Context, id uuid.UUID) (*model.RotationModel, error) {
	var rot model.RotationModel
	err := r.DB.WithContext(ctx).
		Where("rotation_id = ?", id).
		First(&rot).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, trservice.ErrNotFound
		}
		return nil, err
	}
	return &rot, nil
}
