package repository

import (
	"errors"
	"time"

	"content-admin/internal/domain/entity"
	domainRepo "content-admin/internal/domain/repository"

	"gorm.io/gorm"
)

var mobileProfileSearchColumns = []string{"first_name", "last_name", "email", "phone_no"}

// mobileProfileEditColumns excludes otp state and is_active, which have their own writers.
var mobileProfileEditColumns = []string{"first_name", "last_name", "email", "phone_no", "image", "fcm_token", "updated_at"}

type mobileProfileRepository struct{}

func NewMobileProfileRepository() domainRepo.MobileProfileRepository {
	return &mobileProfileRepository{}
}

func (r *mobileProfileRepository) FindAll(db *gorm.DB, filter entity.ListFilter) ([]entity.MobileProfile, int64, error) {
	var profiles []entity.MobileProfile
	query := applyListFilter(db.Model(&entity.MobileProfile{}), filter, mobileProfileSearchColumns)
	total, err := findPage(query, filter, &profiles)
	if err != nil {
		return nil, 0, err
	}
	return profiles, total, nil
}

func (r *mobileProfileRepository) FindByID(db *gorm.DB, id uint) (*entity.MobileProfile, error) {
	return r.findOne(db.Where("id = ?", id))
}

func (r *mobileProfileRepository) FindActiveByIDs(db *gorm.DB, ids []uint) ([]entity.MobileProfile, error) {
	var profiles []entity.MobileProfile
	if len(ids) == 0 {
		return profiles, nil
	}
	if err := db.Where("id IN ? AND is_active = ?", ids, true).Find(&profiles).Error; err != nil {
		return nil, err
	}
	return profiles, nil
}

func (r *mobileProfileRepository) FindByPhone(db *gorm.DB, phoneNo string) (*entity.MobileProfile, error) {
	return r.findOne(db.Where("phone_no = ?", phoneNo))
}

func (r *mobileProfileRepository) FindByIdentityID(db *gorm.DB, identityID uint) (*entity.MobileProfile, error) {
	return r.findOne(db.Where("identity_id = ?", identityID))
}

func (r *mobileProfileRepository) Taken(db *gorm.DB, column string, value interface{}, excludeID uint) (bool, error) {
	return taken(db, &entity.MobileProfile{}, column, value, excludeID)
}

func (r *mobileProfileRepository) Update(db *gorm.DB, profile *entity.MobileProfile) error {
	return db.Model(profile).Select(mobileProfileEditColumns).Updates(profile).Error
}

func (r *mobileProfileRepository) SetOTP(db *gorm.DB, id uint, otp *string, expiresAt *time.Time) error {
	return db.Model(&entity.MobileProfile{}).Where("id = ?", id).Updates(map[string]interface{}{
		"otp":            otp,
		"otp_expires_at": expiresAt,
	}).Error
}

func (r *mobileProfileRepository) ConsumeOTP(db *gorm.DB, id uint, code string) (bool, error) {
	result := db.Model(&entity.MobileProfile{}).
		Where("id = ? AND otp = ?", id, code).
		Updates(map[string]interface{}{
			"otp":            nil,
			"otp_expires_at": nil,
		})
	return result.RowsAffected == 1, result.Error
}

func (r *mobileProfileRepository) Deactivate(db *gorm.DB, ids []uint) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	result := db.Model(&entity.MobileProfile{}).
		Where("id IN ? AND is_active = ?", ids, true).
		Update("is_active", false)
	return result.RowsAffected, result.Error
}

func (r *mobileProfileRepository) findOne(query *gorm.DB) (*entity.MobileProfile, error) {
	var profile entity.MobileProfile
	if err := query.First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}
