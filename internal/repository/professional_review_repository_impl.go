package repository

import (
	"errors"

	"content-admin/internal/domain/entity"
	domainRepo "content-admin/internal/domain/repository"

	"gorm.io/gorm"
)

type professionalReviewRepository struct{}

func NewProfessionalReviewRepository() domainRepo.ProfessionalReviewRepository {
	return &professionalReviewRepository{}
}

func (r *professionalReviewRepository) Create(db *gorm.DB, review *entity.ProfessionalReview) error {
	return db.Omit("CreatedBy").Create(review).Error
}

func (r *professionalReviewRepository) FindAdminReview(db *gorm.DB, professionalID uint) (*entity.ProfessionalReview, error) {
	var review entity.ProfessionalReview
	err := db.Joins("JOIN identities ON identities.id = professional_reviews.created_by_id").
		Where("professional_reviews.professional_id = ? AND identities.is_superuser = ?", professionalID, true).
		Order("professional_reviews.id ASC").
		First(&review).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &review, nil
}

func (r *professionalReviewRepository) Update(db *gorm.DB, review *entity.ProfessionalReview) error {
	return db.Omit("CreatedBy").Save(review).Error
}

func (r *professionalReviewRepository) DeleteByProfessionalIDs(db *gorm.DB, professionalIDs []uint) (int64, error) {
	if len(professionalIDs) == 0 {
		return 0, nil
	}
	result := db.Where("professional_id IN ?", professionalIDs).Delete(&entity.ProfessionalReview{})
	return result.RowsAffected, result.Error
}
