package repository

import (
	"content-admin/internal/domain/entity"

	"gorm.io/gorm"
)

type AdminProfileRepository interface {
	FindByEmail(db *gorm.DB, email string) (*entity.AdminProfile, error)
	FindByIdentityID(db *gorm.DB, identityID uint) (*entity.AdminProfile, error)
	EmailTaken(db *gorm.DB, email string, excludeID uint) (bool, error)
	Update(db *gorm.DB, profile *entity.AdminProfile) error
}
