package usecase

import (
	"context"
	"strings"

	"content-admin/internal/converter"
	"content-admin/internal/delivery/dto"
	"content-admin/internal/domain/entity"
	"content-admin/internal/domain/repository"
	"content-admin/internal/service"
	"content-admin/pkg/apperror"
	"content-admin/pkg/phone"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type AccountUsecase interface {
	GetProfile(ctx context.Context, identityID uint) (*dto.AccountResponse, error)
	UpdateProfile(ctx context.Context, identityID uint, req *dto.UpdateAccountRequest) (*dto.AccountResponse, error)
	UpdatePhoto(ctx context.Context, identityID uint, req *dto.PhotoRequest) (*dto.AccountResponse, error)
}

type accountUsecase struct {
	db               *gorm.DB
	log              *logrus.Logger
	adminProfileRepo repository.AdminProfileRepository
	auditService     service.AuditService
	fileService      service.FileService
	phones           *phone.Normalizer
}

func NewAccountUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	adminProfileRepo repository.AdminProfileRepository,
	auditService service.AuditService,
	fileService service.FileService,
	phones *phone.Normalizer,
) AccountUsecase {
	return &accountUsecase{
		db:               db,
		log:              log,
		adminProfileRepo: adminProfileRepo,
		auditService:     auditService,
		fileService:      fileService,
		phones:           phones,
	}
}

func (u *accountUsecase) GetProfile(ctx context.Context, identityID uint) (*dto.AccountResponse, error) {
	profile, err := u.findProfile(u.db.WithContext(ctx), identityID)
	if err != nil {
		return nil, err
	}
	return converter.AdminProfileToResponse(profile, u.fileService.URL), nil
}

func (u *accountUsecase) UpdateProfile(ctx context.Context, identityID uint, req *dto.UpdateAccountRequest) (*dto.AccountResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	profile, err := u.findProfile(tx, identityID)
	if err != nil {
		return nil, err
	}
	old := *profile
	email := entity.NormalizeEmail(req.Email)

	fields := apperror.Fields{}
	taken, err := u.adminProfileRepo.EmailTaken(tx, email, profile.ID)
	if err != nil {
		u.log.Warnf("Failed to check email uniqueness: %+v", err)
		return nil, internalError(err)
	}
	if taken {
		fields.Add("email", alreadyExists("admin user", "email"))
	}

	phoneNo := ""
	if strings.TrimSpace(req.PhoneNo) != "" {
		if phoneNo, err = u.phones.Normalize(req.PhoneNo); err != nil {
			fields.Add("phone_no", phone.InvalidMessage)
		}
	}
	if err := fields.Err(); err != nil {
		return nil, err
	}

	profile.FirstName = req.FirstName
	profile.LastName = req.LastName
	profile.Email = email
	profile.PhoneNo = phoneNo
	profile.Designation = req.Designation

	if err := u.adminProfileRepo.Update(tx, profile); err != nil {
		if fieldErr := uniqueViolation(err, "admin user", "email"); fieldErr != nil {
			return nil, fieldErr
		}
		u.log.Warnf("Failed to update admin profile: %+v", err)
		return nil, internalError(err)
	}

	if err := u.auditService.LogUpdate(ctx, tx, &identityID, entity.AuditActionAccountUpdate, "admin_profile", profile.ID, old, profile); err != nil {
		return nil, internalError(err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, internalError(err)
	}

	return converter.AdminProfileToResponse(profile, u.fileService.URL), nil
}

func (u *accountUsecase) UpdatePhoto(ctx context.Context, identityID uint, req *dto.PhotoRequest) (*dto.AccountResponse, error) {
	if req.Image == nil {
		return nil, apperror.Field("image", "No file was submitted.")
	}

	files := u.fileService.NewChangeSet()
	defer files.Discard(ctx)

	image, err := files.Upload(ctx, "admin_profiles", service.FileKindImage, req.Image)
	if err != nil {
		return nil, err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	profile, err := u.findProfile(tx, identityID)
	if err != nil {
		return nil, err
	}

	files.Replace(profile.Image, image)
	profile.Image = image

	if err := u.adminProfileRepo.Update(tx, profile); err != nil {
		u.log.Warnf("Failed to update admin photo: %+v", err)
		return nil, internalError(err)
	}

	if err := u.auditService.LogAction(ctx, tx, &identityID, entity.AuditActionAccountUpdate, entity.JSON{"image": image}); err != nil {
		return nil, internalError(err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, internalError(err)
	}
	files.Commit(ctx)

	return converter.AdminProfileToResponse(profile, u.fileService.URL), nil
}

func (u *accountUsecase) findProfile(db *gorm.DB, identityID uint) (*entity.AdminProfile, error) {
	profile, err := u.adminProfileRepo.FindByIdentityID(db, identityID)
	if err != nil {
		u.log.Warnf("Failed to find admin profile: %+v", err)
		return nil, internalError(err)
	}
	if profile == nil {
		return nil, ErrIdentityNotFound
	}
	return profile, nil
}
