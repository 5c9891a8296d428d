package repository

import (
	"errors"

	"content-admin/internal/domain/entity"
	domainRepo "content-admin/internal/domain/repository"

	"gorm.io/gorm"
)

var professionalSearchColumns = []string{"name", "email", "expertise", "location"}

type professionalRepository struct{}

func NewProfessionalRepository() domainRepo.ProfessionalRepository {
	return &professionalRepository{}
}

func (r *professionalRepository) Create(db *gorm.DB, professional *entity.Professional) error {
	return db.Omit("Reviews").Create(professional).Error
}

func (r *professionalRepository) FindAll(db *gorm.DB, filter entity.ListFilter) ([]entity.Professional, int64, error) {
	var professionals []entity.Professional
	query := applyListFilter(db.Model(&entity.Professional{}), filter, professionalSearchColumns)
	total, err := findPage(query, filter, &professionals)
	if err != nil {
		return nil, 0, err
	}
	return professionals, total, nil
}

func (r *professionalRepository) FindByID(db *gorm.DB, id uint) (*entity.Professional, error) {
	var professional entity.Professional
	if err := db.Where("id = ?", id).First(&professional).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &professional, nil
}

func (r *professionalRepository) FindByIDs(db *gorm.DB, ids []uint) ([]entity.Professional, error) {
	var professionals []entity.Professional
	if len(ids) == 0 {
		return professionals, nil
	}
	if err := db.Where("id IN ?", ids).Find(&professionals).Error; err != nil {
		return nil, err
	}
	return professionals, nil
}

func (r *professionalRepository) Taken(db *gorm.DB, column string, value interface{}, excludeID uint) (bool, error) {
	return taken(db, &entity.Professional{}, column, value, excludeID)
}

func (r *professionalRepository) Update(db *gorm.DB, professional *entity.Professional) error {
	return db.Omit("Reviews").Save(professional).Error
}

func (r *professionalRepository) DeleteByIDs(db *gorm.DB, ids []uint) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	result := db.Where("id IN ?", ids).Delete(&entity.Professional{})
	return result.RowsAffected, result.Error
}
