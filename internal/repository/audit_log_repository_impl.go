package repository

import (
	"errors"

	"content-admin/internal/domain/entity"
	domainRepo "content-admin/internal/domain/repository"

	"gorm.io/gorm"
)

type auditLogRepository struct{}

func NewAuditLogRepository() domainRepo.AuditLogRepository {
	return &auditLogRepository{}
}

func (r *auditLogRepository) Create(db *gorm.DB, log *entity.AuditLog) error {
	return db.Omit("Identity").Create(log).Error
}

func (r *auditLogRepository) FindAll(db *gorm.DB, filter entity.ListFilter) ([]entity.AuditLog, int64, error) {
	var logs []entity.AuditLog
	query := applyListFilter(db.Model(&entity.AuditLog{}), filter, []string{"action"})
	total, err := findPage(query, filter, &logs)
	if err != nil {
		return nil, 0, err
	}
	return logs, total, nil
}

func (r *auditLogRepository) FindByID(db *gorm.DB, id int64) (*entity.AuditLog, error) {
	var log entity.AuditLog
	if err := db.Where("id = ?", id).First(&log).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &log, nil
}
