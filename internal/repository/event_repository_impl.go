package repository

import (
	"errors"

	"content-admin/internal/domain/entity"
	domainRepo "content-admin/internal/domain/repository"

	"gorm.io/gorm"
)

var eventSearchColumns = []string{"title", "location"}

type eventRepository struct{}

func NewEventRepository() domainRepo.EventRepository {
	return &eventRepository{}
}

func (r *eventRepository) Create(db *gorm.DB, event *entity.Event) error {
	return db.Create(event).Error
}

func (r *eventRepository) FindAll(db *gorm.DB, filter entity.ListFilter) ([]entity.Event, int64, error) {
	var events []entity.Event
	query := applyListFilter(db.Model(&entity.Event{}), filter, eventSearchColumns)
	total, err := findPage(query, filter, &events)
	if err != nil {
		return nil, 0, err
	}
	return events, total, nil
}

func (r *eventRepository) FindByID(db *gorm.DB, id uint) (*entity.Event, error) {
	var event entity.Event
	if err := db.Where("id = ?", id).First(&event).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &event, nil
}

func (r *eventRepository) FindByIDs(db *gorm.DB, ids []uint) ([]entity.Event, error) {
	var events []entity.Event
	if len(ids) == 0 {
		return events, nil
	}
	if err := db.Where("id IN ?", ids).Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

func (r *eventRepository) Update(db *gorm.DB, event *entity.Event) error {
	return db.Save(event).Error
}

func (r *eventRepository) DeleteByIDs(db *gorm.DB, ids []uint) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	result := db.Where("id IN ?", ids).Delete(&entity.Event{})
	return result.RowsAffected, result.Error
}
