package repository

import (
	"content-admin/internal/domain/entity"

	"gorm.io/gorm"
)

type BookRepository interface {
	Create(db *gorm.DB, book *entity.Book) error
	FindAll(db *gorm.DB, filter entity.ListFilter) ([]entity.Book, int64, error)
	FindByID(db *gorm.DB, id uint) (*entity.Book, error)
	FindByIDs(db *gorm.DB, ids []uint) ([]entity.Book, error)
	Update(db *gorm.DB, book *entity.Book) error
	DeleteByIDs(db *gorm.DB, ids []uint) (int64, error)
}

type EventRepository interface {
	Create(db *gorm.DB, event *entity.Event) error
	FindAll(db *gorm.DB, filter entity.ListFilter) ([]entity.Event, int64, error)
	FindByID(db *gorm.DB, id uint) (*entity.Event, error)
	FindByIDs(db *gorm.DB, ids []uint) ([]entity.Event, error)
	Update(db *gorm.DB, event *entity.Event) error
	DeleteByIDs(db *gorm.DB, ids []uint) (int64, error)
}

type MaterialRepository interface {
	Create(db *gorm.DB, material *entity.Material) error
	FindAll(db *gorm.DB, filter entity.ListFilter) ([]entity.Material, int64, error)
	FindByID(db *gorm.DB, id uint) (*entity.Material, error)
	FindByIDs(db *gorm.DB, ids []uint) ([]entity.Material, error)
	Update(db *gorm.DB, material *entity.Material) error
	DeleteByIDs(db *gorm.DB, ids []uint) (int64, error)
}
