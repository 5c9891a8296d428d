package repository

import (
	"errors"

	"content-admin/internal/domain/entity"
	domainRepo "content-admin/internal/domain/repository"

	"gorm.io/gorm"
)

var adminProfileEditColumns = []string{"first_name", "last_name", "email", "phone_no", "designation", "image", "updated_at"}

type adminProfileRepository struct{}

func NewAdminProfileRepository() domainRepo.AdminProfileRepository {
	return &adminProfileRepository{}
}

func (r *adminProfileRepository) FindByEmail(db *gorm.DB, email string) (*entity.AdminProfile, error) {
	return r.findOne(db.Where("LOWER(email) = LOWER(?)", email))
}

func (r *adminProfileRepository) FindByIdentityID(db *gorm.DB, identityID uint) (*entity.AdminProfile, error) {
	return r.findOne(db.Where("identity_id = ?", identityID))
}

func (r *adminProfileRepository) EmailTaken(db *gorm.DB, email string, excludeID uint) (bool, error) {
	var count int64
	query := db.Model(&entity.AdminProfile{}).Where("LOWER(email) = LOWER(?)", email)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *adminProfileRepository) Update(db *gorm.DB, profile *entity.AdminProfile) error {
	return db.Model(profile).Select(adminProfileEditColumns).Updates(profile).Error
}

func (r *adminProfileRepository) findOne(query *gorm.DB) (*entity.AdminProfile, error) {
	var profile entity.AdminProfile
	if err := query.First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}
