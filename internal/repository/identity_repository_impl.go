package repository

import (
	"errors"
	"time"

	"content-admin/internal/domain/entity"
	domainRepo "content-admin/internal/domain/repository"

	"gorm.io/gorm"
)

type identityRepository struct{}

func NewIdentityRepository() domainRepo.IdentityRepository {
	return &identityRepository{}
}

func (r *identityRepository) Create(db *gorm.DB, identity *entity.Identity) error {
	if err := identity.CheckProfile(); err != nil {
		return err
	}
	return db.Create(identity).Error
}

func (r *identityRepository) FindByID(db *gorm.DB, id uint) (*entity.Identity, error) {
	var identity entity.Identity
	err := db.Preload("AdminProfile").Preload("MobileProfile").Where("id = ?", id).First(&identity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &identity, nil
}

func (r *identityRepository) UpdateLastLogin(db *gorm.DB, id uint, at time.Time) error {
	return db.Model(&entity.Identity{}).Where("id = ?", id).Update("last_login", at).Error
}

func (r *identityRepository) UpdatePassword(db *gorm.DB, id uint, passwordHash string) error {
	return db.Model(&entity.Identity{}).Where("id = ?", id).Update("password", passwordHash).Error
}

func (r *identityRepository) Deactivate(db *gorm.DB, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	return db.Model(&entity.Identity{}).Where("id IN ?", ids).Update("is_active", false).Error
}
