package repository

import (
	"time"

	"content-admin/internal/domain/entity"

	"gorm.io/gorm"
)

type IdentityRepository interface {
	// Create inserts the identity together with its profile.
	Create(db *gorm.DB, identity *entity.Identity) error
	FindByID(db *gorm.DB, id uint) (*entity.Identity, error)
	UpdateLastLogin(db *gorm.DB, id uint, at time.Time) error
	UpdatePassword(db *gorm.DB, id uint, passwordHash string) error
	Deactivate(db *gorm.DB, ids []uint) error
}
