package repository

import (
	"content-admin/internal/domain/entity"

	"gorm.io/gorm"
)

type ProfessionalRepository interface {
	Create(db *gorm.DB, professional *entity.Professional) error
	FindAll(db *gorm.DB, filter entity.ListFilter) ([]entity.Professional, int64, error)
	FindByID(db *gorm.DB, id uint) (*entity.Professional, error)
	FindByIDs(db *gorm.DB, ids []uint) ([]entity.Professional, error)
	Taken(db *gorm.DB, column string, value interface{}, excludeID uint) (bool, error)
	Update(db *gorm.DB, professional *entity.Professional) error
	DeleteByIDs(db *gorm.DB, ids []uint) (int64, error)
}

type ProfessionalReviewRepository interface {
	Create(db *gorm.DB, review *entity.ProfessionalReview) error
	// FindAdminReview returns the review written by a superuser, or nil.
	FindAdminReview(db *gorm.DB, professionalID uint) (*entity.ProfessionalReview, error)
	Update(db *gorm.DB, review *entity.ProfessionalReview) error
	DeleteByProfessionalIDs(db *gorm.DB, professionalIDs []uint) (int64, error)
}
