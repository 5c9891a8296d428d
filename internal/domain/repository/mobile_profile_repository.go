package repository

import (
	"time"

	"content-admin/internal/domain/entity"

	"gorm.io/gorm"
)

type MobileProfileRepository interface {
	FindAll(db *gorm.DB, filter entity.ListFilter) ([]entity.MobileProfile, int64, error)
	FindByID(db *gorm.DB, id uint) (*entity.MobileProfile, error)
	FindActiveByIDs(db *gorm.DB, ids []uint) ([]entity.MobileProfile, error)
	FindByPhone(db *gorm.DB, phoneNo string) (*entity.MobileProfile, error)
	FindByIdentityID(db *gorm.DB, identityID uint) (*entity.MobileProfile, error)
	// Taken reports whether another profile already uses value in column.
	Taken(db *gorm.DB, column string, value interface{}, excludeID uint) (bool, error)
	Update(db *gorm.DB, profile *entity.MobileProfile) error
	SetOTP(db *gorm.DB, id uint, otp *string, expiresAt *time.Time) error
	// ConsumeOTP clears the pending code only if it still equals code.
	ConsumeOTP(db *gorm.DB, id uint, code string) (bool, error)
	// Deactivate flips is_active on the given profiles that are still active.
	Deactivate(db *gorm.DB, ids []uint) (int64, error)
}
