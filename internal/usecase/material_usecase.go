package usecase

import (
	"context"

	"content-admin/internal/converter"
	"content-admin/internal/delivery/dto"
	"content-admin/internal/domain/entity"
	"content-admin/internal/domain/repository"
	"content-admin/internal/service"
	"content-admin/pkg/apperror"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type MaterialUsecase interface {
	List(ctx context.Context, q *dto.ListQuery) ([]dto.MaterialListItem, int64, error)
	GetByID(ctx context.Context, id uint) (*dto.MaterialResponse, error)
	Create(ctx context.Context, actorID uint, req *dto.MaterialRequest) (*dto.MaterialResponse, error)
	Update(ctx context.Context, actorID, id uint, req *dto.MaterialRequest) (*dto.MaterialResponse, error)
	Delete(ctx context.Context, actorID, id uint) error
	BulkDelete(ctx context.Context, actorID uint, ids []uint) (int64, error)
}

type materialUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	materialRepo repository.MaterialRepository
	auditService service.AuditService
	fileService  service.FileService
}

func NewMaterialUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	materialRepo repository.MaterialRepository,
	auditService service.AuditService,
	fileService service.FileService,
) MaterialUsecase {
	return &materialUsecase{
		db:           db,
		log:          log,
		materialRepo: materialRepo,
		auditService: auditService,
		fileService:  fileService,
	}
}

func (u *materialUsecase) List(ctx context.Context, q *dto.ListQuery) ([]dto.MaterialListItem, int64, error) {
	materials, total, err := u.materialRepo.FindAll(u.db.WithContext(ctx), buildListFilter(q, materialFilters))
	if err != nil {
		u.log.Warnf("Failed to list materials: %+v", err)
		return nil, 0, internalError(err)
	}
	return converter.MaterialsToListItems(materials, u.fileService.URL), total, nil
}

func (u *materialUsecase) GetByID(ctx context.Context, id uint) (*dto.MaterialResponse, error) {
	material, err := u.find(u.db.WithContext(ctx), id)
	if err != nil {
		return nil, err
	}
	return converter.MaterialToResponse(material, u.fileService.URL), nil
}

func (u *materialUsecase) Create(ctx context.Context, actorID uint, req *dto.MaterialRequest) (*dto.MaterialResponse, error) {
	if err := validateMaterial(req); err != nil {
		return nil, err
	}

	files := u.fileService.NewChangeSet()
	defer files.Discard(ctx)

	image, err := files.Upload(ctx, "materials", service.FileKindImage, req.Image)
	if err != nil {
		return nil, err
	}

	material := &entity.Material{Image: image}
	applyMaterial(material, req)

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.materialRepo.Create(tx, material); err != nil {
		u.log.Warnf("Failed to create material: %+v", err)
		return nil, internalError(err)
	}

	if err := u.auditService.LogCreate(ctx, tx, &actorID, entity.AuditActionMaterialCreate, "material", material.ID, material); err != nil {
		return nil, internalError(err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, internalError(err)
	}
	files.Commit(ctx)

	return converter.MaterialToResponse(material, u.fileService.URL), nil
}

func (u *materialUsecase) Update(ctx context.Context, actorID, id uint, req *dto.MaterialRequest) (*dto.MaterialResponse, error) {
	if err := validateMaterial(req); err != nil {
		return nil, err
	}

	material, err := u.find(u.db.WithContext(ctx), id)
	if err != nil {
		return nil, err
	}
	old := *material

	files := u.fileService.NewChangeSet()
	defer files.Discard(ctx)

	if req.Image != nil {
		image, err := files.Upload(ctx, "materials", service.FileKindImage, req.Image)
		if err != nil {
			return nil, err
		}
		files.Replace(material.Image, image)
		material.Image = image
	}
	applyMaterial(material, req)

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.materialRepo.Update(tx, material); err != nil {
		u.log.Warnf("Failed to update material: %+v", err)
		return nil, internalError(err)
	}

	if err := u.auditService.LogUpdate(ctx, tx, &actorID, entity.AuditActionMaterialUpdate, "material", id, old, material); err != nil {
		return nil, internalError(err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, internalError(err)
	}
	files.Commit(ctx)

	return converter.MaterialToResponse(material, u.fileService.URL), nil
}

func (u *materialUsecase) Delete(ctx context.Context, actorID, id uint) error {
	if _, err := u.deleteMany(ctx, actorID, []uint{id}); err != nil {
		if apperror.Is(err, apperror.KindNotFound) {
			return ErrMaterialNotFound
		}
		return err
	}
	return nil
}

func (u *materialUsecase) BulkDelete(ctx context.Context, actorID uint, ids []uint) (int64, error) {
	return u.deleteMany(ctx, actorID, ids)
}

func (u *materialUsecase) deleteMany(ctx context.Context, actorID uint, ids []uint) (int64, error) {
	files := u.fileService.NewChangeSet()

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	materials, err := u.materialRepo.FindByIDs(tx, ids)
	if err != nil {
		u.log.Warnf("Failed to find materials: %+v", err)
		return 0, internalError(err)
	}

	deleted, err := u.materialRepo.DeleteByIDs(tx, ids)
	if err != nil {
		u.log.Warnf("Failed to delete materials: %+v", err)
		return 0, internalError(err)
	}
	if deleted == 0 {
		return 0, ErrNothingDeleted
	}

	deletedIDs := make([]uint, 0, len(materials))
	for i := range materials {
		deletedIDs = append(deletedIDs, materials[i].ID)
		files.Retire(materials[i].FileKeys()...)
	}

	if err := u.auditService.LogDelete(ctx, tx, &actorID, entity.AuditActionMaterialDelete, "material", deletedIDs); err != nil {
		return 0, internalError(err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return 0, internalError(err)
	}
	files.Commit(ctx)

	return deleted, nil
}

func (u *materialUsecase) find(db *gorm.DB, id uint) (*entity.Material, error) {
	material, err := u.materialRepo.FindByID(db, id)
	if err != nil {
		u.log.Warnf("Failed to find material: %+v", err)
		return nil, internalError(err)
	}
	if material == nil {
		return nil, ErrMaterialNotFound
	}
	return material, nil
}

func validateMaterial(req *dto.MaterialRequest) error {
	fields := checkPrice(apperror.Fields{}, req.Price)
	return checkDiscount(fields, req.DiscountPercentage).Err()
}

func applyMaterial(m *entity.Material, req *dto.MaterialRequest) {
	m.Name = req.Name
	m.Type = req.Type
	m.SupplierName = req.SupplierName
	m.SupplierPhoneNo = req.SupplierPhoneNo
	m.Price = *req.Price
	m.DiscountPercentage = decimal.Zero
	if req.DiscountPercentage != nil {
		m.DiscountPercentage = *req.DiscountPercentage
	}
	m.Title = req.Title
	m.Availability = req.Availability
	m.Description = req.Description
	m.Overview = req.Overview
	m.AdditionalDetails = req.AdditionalDetails
}
