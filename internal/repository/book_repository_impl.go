package repository

import (
	"errors"

	"content-admin/internal/domain/entity"
	domainRepo "content-admin/internal/domain/repository"

	"gorm.io/gorm"
)

var bookSearchColumns = []string{"name", "description"}

type bookRepository struct{}

func NewBookRepository() domainRepo.BookRepository {
	return &bookRepository{}
}

func (r *bookRepository) Create(db *gorm.DB, book *entity.Book) error {
	return db.Create(book).Error
}

func (r *bookRepository) FindAll(db *gorm.DB, filter entity.ListFilter) ([]entity.Book, int64, error) {
	var books []entity.Book
	query := applyListFilter(db.Model(&entity.Book{}), filter, bookSearchColumns)
	total, err := findPage(query, filter, &books)
	if err != nil {
		return nil, 0, err
	}
	return books, total, nil
}

func (r *bookRepository) FindByID(db *gorm.DB, id uint) (*entity.Book, error) {
	var book entity.Book
	if err := db.Where("id = ?", id).First(&book).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &book, nil
}

func (r *bookRepository) FindByIDs(db *gorm.DB, ids []uint) ([]entity.Book, error) {
	var books []entity.Book
	if len(ids) == 0 {
		return books, nil
	}
	if err := db.Where("id IN ?", ids).Find(&books).Error; err != nil {
		return nil, err
	}
	return books, nil
}

func (r *bookRepository) Update(db *gorm.DB, book *entity.Book) error {
	return db.Save(book).Error
}

func (r *bookRepository) DeleteByIDs(db *gorm.DB, ids []uint) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	result := db.Where("id IN ?", ids).Delete(&entity.Book{})
	return result.RowsAffected, result.Error
}
