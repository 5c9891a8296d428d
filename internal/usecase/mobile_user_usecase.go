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
	"content-admin/pkg/password"
	"content-admin/pkg/phone"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// MobileUserUsecase is the admin-side management of mobile accounts.
// Deletes are soft: the profile and its identity are deactivated.
type MobileUserUsecase interface {
	List(ctx context.Context, q *dto.ListQuery) ([]dto.MobileUserListItem, int64, error)
	GetByID(ctx context.Context, id uint) (*dto.MobileProfileResponse, error)
	Create(ctx context.Context, actorID uint, req *dto.MobileRegisterRequest) (*dto.MobileProfileResponse, error)
	Update(ctx context.Context, actorID, id uint, req *dto.UpdateMobileUserRequest) (*dto.MobileProfileResponse, error)
	UpdatePhoto(ctx context.Context, actorID, id uint, req *dto.PhotoRequest) (*dto.MobileProfileResponse, error)
	Delete(ctx context.Context, actorID, id uint) error
	BulkDelete(ctx context.Context, actorID uint, ids []uint) (int64, error)
}

type mobileUserUsecase struct {
	db                *gorm.DB
	log               *logrus.Logger
	identityRepo      repository.IdentityRepository
	mobileProfileRepo repository.MobileProfileRepository
	registrar         *mobileRegistrar
	auditService      service.AuditService
	fileService       service.FileService
	phones            *phone.Normalizer
}

func NewMobileUserUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	identityRepo repository.IdentityRepository,
	mobileProfileRepo repository.MobileProfileRepository,
	auditService service.AuditService,
	fileService service.FileService,
	policy *password.Policy,
	phones *phone.Normalizer,
) MobileUserUsecase {
	return &mobileUserUsecase{
		db:                db,
		log:               log,
		identityRepo:      identityRepo,
		mobileProfileRepo: mobileProfileRepo,
		registrar:         newMobileRegistrar(db, log, identityRepo, mobileProfileRepo, fileService, policy, phones),
		auditService:      auditService,
		fileService:       fileService,
		phones:            phones,
	}
}

func (u *mobileUserUsecase) List(ctx context.Context, q *dto.ListQuery) ([]dto.MobileUserListItem, int64, error) {
	filter := buildListFilter(q, nil)
	if q != nil {
		if status, ok := q.Filters["status"]; ok && status != "" {
			switch status {
			case "1":
				filter.Equals["is_active"] = true
			case "0":
				filter.Equals["is_active"] = false
			default:
				return nil, 0, apperror.Field("status", "Invalid status value. Use 1 for active or 0 for inactive.")
			}
		}
	}

	profiles, total, err := u.mobileProfileRepo.FindAll(u.db.WithContext(ctx), filter)
	if err != nil {
		u.log.Warnf("Failed to list mobile users: %+v", err)
		return nil, 0, internalError(err)
	}
	return converter.MobileProfilesToListItems(profiles), total, nil
}

func (u *mobileUserUsecase) GetByID(ctx context.Context, id uint) (*dto.MobileProfileResponse, error) {
	profile, err := u.find(u.db.WithContext(ctx), id)
	if err != nil {
		return nil, err
	}
	return converter.MobileProfileToResponse(profile, u.fileService.URL), nil
}

func (u *mobileUserUsecase) Create(ctx context.Context, actorID uint, req *dto.MobileRegisterRequest) (*dto.MobileProfileResponse, error) {
	identity, err := u.registrar.register(ctx, req, func(tx *gorm.DB, identity *entity.Identity) error {
		return u.auditService.LogCreate(ctx, tx, &actorID, entity.AuditActionMobileUserCreate, "mobile_profile", identity.MobileProfile.ID, identity.MobileProfile)
	})
	if err != nil {
		return nil, err
	}
	return converter.MobileProfileToResponse(identity.MobileProfile, u.fileService.URL), nil
}

func (u *mobileUserUsecase) Update(ctx context.Context, actorID, id uint, req *dto.UpdateMobileUserRequest) (*dto.MobileProfileResponse, error) {
	db := u.db.WithContext(ctx)

	profile, err := u.find(db, id)
	if err != nil {
		return nil, err
	}
	old := *profile

	fields := apperror.Fields{}
	phoneNo, err := u.phones.Normalize(req.PhoneNo)
	if err != nil {
		fields.Add("phone_no", phone.InvalidMessage)
	} else {
		taken, err := u.mobileProfileRepo.Taken(db, "phone_no", phoneNo, id)
		if err != nil {
			u.log.Warnf("Failed to check phone uniqueness: %+v", err)
			return nil, internalError(err)
		}
		if taken {
			fields.Add("phone_no", alreadyExists("mobile user", "phone_no"))
		}
	}

	var email *string
	if e := strings.TrimSpace(req.Email); e != "" {
		email = &e
		taken, err := u.mobileProfileRepo.Taken(db, "email", e, id)
		if err != nil {
			u.log.Warnf("Failed to check email uniqueness: %+v", err)
			return nil, internalError(err)
		}
		if taken {
			fields.Add("email", alreadyExists("mobile user", "email"))
		}
	}
	if err := fields.Err(); err != nil {
		return nil, err
	}

	profile.FirstName = req.FirstName
	profile.LastName = req.LastName
	profile.Email = email
	profile.PhoneNo = phoneNo

	tx := db.Begin()
	defer tx.Rollback()

	if err := u.mobileProfileRepo.Update(tx, profile); err != nil {
		if fieldErr := uniqueViolation(err, "mobile user", "phone_no", "email"); fieldErr != nil {
			return nil, fieldErr
		}
		u.log.Warnf("Failed to update mobile profile: %+v", err)
		return nil, internalError(err)
	}

	if err := u.auditService.LogUpdate(ctx, tx, &actorID, entity.AuditActionMobileUserUpdate, "mobile_profile", id, old, profile); err != nil {
		return nil, internalError(err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, internalError(err)
	}

	return converter.MobileProfileToResponse(profile, u.fileService.URL), nil
}

func (u *mobileUserUsecase) UpdatePhoto(ctx context.Context, actorID, id uint, req *dto.PhotoRequest) (*dto.MobileProfileResponse, error) {
	if req.Image == nil {
		return nil, apperror.Field("image", "No file was submitted.")
	}

	db := u.db.WithContext(ctx)
	profile, err := u.find(db, id)
	if err != nil {
		return nil, err
	}

	files := u.fileService.NewChangeSet()
	defer files.Discard(ctx)

	image, err := files.Upload(ctx, "mobile_profiles", service.FileKindImage, req.Image)
	if err != nil {
		return nil, err
	}
	files.Replace(profile.Image, image)
	profile.Image = image

	tx := db.Begin()
	defer tx.Rollback()

	if err := u.mobileProfileRepo.Update(tx, profile); err != nil {
		u.log.Warnf("Failed to update mobile photo: %+v", err)
		return nil, internalError(err)
	}

	if err := u.auditService.LogAction(ctx, tx, &actorID, entity.AuditActionMobileUserUpdate, entity.JSON{"mobile_profile_id": id, "image": image}); err != nil {
		return nil, internalError(err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, internalError(err)
	}
	files.Commit(ctx)

	return converter.MobileProfileToResponse(profile, u.fileService.URL), nil
}

func (u *mobileUserUsecase) Delete(ctx context.Context, actorID, id uint) error {
	if _, err := u.deactivate(ctx, actorID, []uint{id}); err != nil {
		if apperror.Is(err, apperror.KindNotFound) {
			return ErrMobileUserNotFound
		}
		return err
	}
	return nil
}

func (u *mobileUserUsecase) BulkDelete(ctx context.Context, actorID uint, ids []uint) (int64, error) {
	return u.deactivate(ctx, actorID, ids)
}

// deactivate counts only profiles that were still active.
func (u *mobileUserUsecase) deactivate(ctx context.Context, actorID uint, ids []uint) (int64, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	profiles, err := u.mobileProfileRepo.FindActiveByIDs(tx, ids)
	if err != nil {
		u.log.Warnf("Failed to find mobile profiles: %+v", err)
		return 0, internalError(err)
	}
	if len(profiles) == 0 {
		return 0, ErrNothingDeleted
	}

	profileIDs := make([]uint, 0, len(profiles))
	identityIDs := make([]uint, 0, len(profiles))
	for i := range profiles {
		profileIDs = append(profileIDs, profiles[i].ID)
		identityIDs = append(identityIDs, profiles[i].IdentityID)
	}

	deactivated, err := u.mobileProfileRepo.Deactivate(tx, profileIDs)
	if err != nil {
		u.log.Warnf("Failed to deactivate mobile profiles: %+v", err)
		return 0, internalError(err)
	}

	if err := u.identityRepo.Deactivate(tx, identityIDs); err != nil {
		u.log.Warnf("Failed to deactivate identities: %+v", err)
		return 0, internalError(err)
	}

	if err := u.auditService.LogDelete(ctx, tx, &actorID, entity.AuditActionMobileUserDeactivate, "mobile_profile", profileIDs); err != nil {
		return 0, internalError(err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return 0, internalError(err)
	}

	return deactivated, nil
}

func (u *mobileUserUsecase) find(db *gorm.DB, id uint) (*entity.MobileProfile, error) {
	profile, err := u.mobileProfileRepo.FindByID(db, id)
	if err != nil {
		u.log.Warnf("Failed to find mobile profile: %+v", err)
		return nil, internalError(err)
	}
	if profile == nil {
		return nil, ErrMobileUserNotFound
	}
	return profile, nil
}
