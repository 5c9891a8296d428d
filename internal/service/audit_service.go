package service

import (
	"context"
	"strconv"

	"content-admin/internal/domain/entity"
	"content-admin/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type AuditService interface {
	LogCreate(ctx context.Context, tx *gorm.DB, identityID *uint, action string, entityName string, entityID uint, newValue interface{}) error
	LogUpdate(ctx context.Context, tx *gorm.DB, identityID *uint, action string, entityName string, entityID uint, oldValue, newValue interface{}) error
	LogDelete(ctx context.Context, tx *gorm.DB, identityID *uint, action string, entityName string, entityIDs []uint) error
	LogAction(ctx context.Context, tx *gorm.DB, identityID *uint, action string, metadata entity.JSON) error
}

type auditService struct {
	log       *logrus.Logger
	auditRepo repository.AuditLogRepository
}

func NewAuditService(log *logrus.Logger, auditRepo repository.AuditLogRepository) AuditService {
	return &auditService{
		log:       log,
		auditRepo: auditRepo,
	}
}

// LogCreate logs a create action
func (s *auditService) LogCreate(ctx context.Context, tx *gorm.DB, identityID *uint, action string, entityName string, entityID uint, newValue interface{}) error {
	return s.LogAction(ctx, tx, identityID, action, entity.JSON{
		"entity":    entityName,
		"entity_id": strconv.FormatUint(uint64(entityID), 10),
		"new_value": newValue,
	})
}

// LogUpdate logs an update action with old and new values
func (s *auditService) LogUpdate(ctx context.Context, tx *gorm.DB, identityID *uint, action string, entityName string, entityID uint, oldValue, newValue interface{}) error {
	return s.LogAction(ctx, tx, identityID, action, entity.JSON{
		"entity":    entityName,
		"entity_id": strconv.FormatUint(uint64(entityID), 10),
		"old_value": oldValue,
		"new_value": newValue,
	})
}

// LogDelete logs a single or bulk delete
func (s *auditService) LogDelete(ctx context.Context, tx *gorm.DB, identityID *uint, action string, entityName string, entityIDs []uint) error {
	return s.LogAction(ctx, tx, identityID, action, entity.JSON{
		"entity":     entityName,
		"entity_ids": entityIDs,
	})
}

func (s *auditService) LogAction(ctx context.Context, tx *gorm.DB, identityID *uint, action string, metadata entity.JSON) error {
	auditLog := &entity.AuditLog{
		IdentityID: identityID,
		Action:     action,
		Metadata:   metadata,
	}

	if err := s.auditRepo.Create(tx, auditLog); err != nil {
		s.log.Warnf("Failed to create audit log: %+v", err)
		return err
	}

	return nil
}
