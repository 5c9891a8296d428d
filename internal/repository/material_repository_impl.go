package repository

import (
	"errors"

	"content-admin/internal/domain/entity"
	domainRepo "content-admin/internal/domain/repository"

	"gorm.io/gorm"
)

var materialSearchColumns = []string{"supplier_name", "type"}

type materialRepository struct{}

func NewMaterialRepository() domainRepo.MaterialRepository {
	return &materialRepository{}
}

func (r *materialRepository) Create(db *gorm.DB, material *entity.Material) error {
	return db.Create(material).Error
}

func (r *materialRepository) FindAll(db *gorm.DB, filter entity.ListFilter) ([]entity.Material, int64, error) {
	var materials []entity.Material
	query := applyListFilter(db.Model(&entity.Material{}), filter, materialSearchColumns)
	total, err := findPage(query, filter, &materials)
	if err != nil {
		return nil, 0, err
	}
	return materials, total, nil
}

func (r *materialRepository) FindByID(db *gorm.DB, id uint) (*entity.Material, error) {
	var material entity.Material
	if err := db.Where("id = ?", id).First(&material).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &material, nil
}

func (r *materialRepository) FindByIDs(db *gorm.DB, ids []uint) ([]entity.Material, error) {
	var materials []entity.Material
	if len(ids) == 0 {
		return materials, nil
	}
	if err := db.Where("id IN ?", ids).Find(&materials).Error; err != nil {
		return nil, err
	}
	return materials, nil
}

func (r *materialRepository) Update(db *gorm.DB, material *entity.Material) error {
	return db.Save(material).Error
}

func (r *materialRepository) DeleteByIDs(db *gorm.DB, ids []uint) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	result := db.Where("id IN ?", ids).Delete(&entity.Material{})
	return result.RowsAffected, result.Error
}
