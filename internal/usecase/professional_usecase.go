package usecase

import (
	"context"

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

type ProfessionalUsecase interface {
	List(ctx context.Context, q *dto.ListQuery) ([]dto.ProfessionalListItem, int64, error)
	GetByID(ctx context.Context, id uint) (*dto.ProfessionalResponse, error)
	Create(ctx context.Context, actorID uint, req *dto.ProfessionalRequest) (*dto.ProfessionalResponse, error)
	Update(ctx context.Context, actorID, id uint, req *dto.ProfessionalRequest) (*dto.ProfessionalResponse, error)
	Delete(ctx context.Context, actorID, id uint) error
	BulkDelete(ctx context.Context, actorID uint, ids []uint) (int64, error)
}

type professionalUsecase struct {
	db               *gorm.DB
	log              *logrus.Logger
	professionalRepo repository.ProfessionalRepository
	reviewRepo       repository.ProfessionalReviewRepository
	auditService     service.AuditService
	fileService      service.FileService
	phones           *phone.Normalizer
}

func NewProfessionalUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	professionalRepo repository.ProfessionalRepository,
	reviewRepo repository.ProfessionalReviewRepository,
	auditService service.AuditService,
	fileService service.FileService,
	phones *phone.Normalizer,
) ProfessionalUsecase {
	return &professionalUsecase{
		db:               db,
		log:              log,
		professionalRepo: professionalRepo,
		reviewRepo:       reviewRepo,
		auditService:     auditService,
		fileService:      fileService,
		phones:           phones,
	}
}

func (u *professionalUsecase) List(ctx context.Context, q *dto.ListQuery) ([]dto.ProfessionalListItem, int64, error) {
	professionals, total, err := u.professionalRepo.FindAll(u.db.WithContext(ctx), buildListFilter(q, professionalFilters))
	if err != nil {
		u.log.Warnf("Failed to list professionals: %+v", err)
		return nil, 0, internalError(err)
	}
	return converter.ProfessionalsToListItems(professionals), total, nil
}

func (u *professionalUsecase) GetByID(ctx context.Context, id uint) (*dto.ProfessionalResponse, error) {
	db := u.db.WithContext(ctx)

	professional, review, err := u.findWithAdminReview(db, id)
	if err != nil {
		return nil, err
	}
	return converter.ProfessionalToResponse(professional, review, u.fileService.URL), nil
}

func (u *professionalUsecase) Create(ctx context.Context, actorID uint, req *dto.ProfessionalRequest) (*dto.ProfessionalResponse, error) {
	db := u.db.WithContext(ctx)

	phoneNo, err := u.validate(db, req, 0)
	if err != nil {
		return nil, err
	}

	files := u.fileService.NewChangeSet()
	defer files.Discard(ctx)

	portfolio, err := files.Upload(ctx, "professionals/portfolio", service.FileKindDocument, req.Portfolio)
	if err != nil {
		return nil, err
	}
	banner, err := files.Upload(ctx, "professionals/banner", service.FileKindImage, req.Banner)
	if err != nil {
		return nil, err
	}

	professional := &entity.Professional{
		Name:       req.Name,
		PhoneNo:    phoneNo,
		Email:      req.Email,
		Expertise:  req.Expertise,
		Location:   req.Location,
		About:      req.About,
		Experience: req.Experience,
		Portfolio:  portfolio,
		Banner:     banner,
		Website:    req.Website,
	}

	tx := db.Begin()
	defer tx.Rollback()

	if err := u.professionalRepo.Create(tx, professional); err != nil {
		if fieldErr := uniqueViolation(err, "professional", "phone_no", "email"); fieldErr != nil {
			return nil, fieldErr
		}
		u.log.Warnf("Failed to create professional: %+v", err)
		return nil, internalError(err)
	}

	review := &entity.ProfessionalReview{
		ProfessionalID: professional.ID,
		CreatedByID:    &actorID,
		Rating:         req.Rating,
		Review:         req.Review,
	}
	if err := u.reviewRepo.Create(tx, review); err != nil {
		u.log.Warnf("Failed to create professional review: %+v", err)
		return nil, internalError(err)
	}

	if err := u.auditService.LogCreate(ctx, tx, &actorID, entity.AuditActionProfessionalCreate, "professional", professional.ID, professional); err != nil {
		return nil, internalError(err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, internalError(err)
	}
	files.Commit(ctx)

	return converter.ProfessionalToResponse(professional, review, u.fileService.URL), nil
}

func (u *professionalUsecase) Update(ctx context.Context, actorID, id uint, req *dto.ProfessionalRequest) (*dto.ProfessionalResponse, error) {
	db := u.db.WithContext(ctx)

	professional, review, err := u.findWithAdminReview(db, id)
	if err != nil {
		return nil, err
	}
	old := *professional

	phoneNo, err := u.validate(db, req, id)
	if err != nil {
		return nil, err
	}

	files := u.fileService.NewChangeSet()
	defer files.Discard(ctx)

	if req.Portfolio != nil {
		key, err := files.Upload(ctx, "professionals/portfolio", service.FileKindDocument, req.Portfolio)
		if err != nil {
			return nil, err
		}
		files.Replace(professional.Portfolio, key)
		professional.Portfolio = key
	}
	if req.Banner != nil {
		key, err := files.Upload(ctx, "professionals/banner", service.FileKindImage, req.Banner)
		if err != nil {
			return nil, err
		}
		files.Replace(professional.Banner, key)
		professional.Banner = key
	}

	professional.Name = req.Name
	professional.PhoneNo = phoneNo
	professional.Email = req.Email
	professional.Expertise = req.Expertise
	professional.Location = req.Location
	professional.About = req.About
	professional.Experience = req.Experience
	professional.Website = req.Website
	review.Rating = req.Rating
	review.Review = req.Review

	tx := db.Begin()
	defer tx.Rollback()

	if err := u.professionalRepo.Update(tx, professional); err != nil {
		if fieldErr := uniqueViolation(err, "professional", "phone_no", "email"); fieldErr != nil {
			return nil, fieldErr
		}
		u.log.Warnf("Failed to update professional: %+v", err)
		return nil, internalError(err)
	}

	if err := u.reviewRepo.Update(tx, review); err != nil {
		u.log.Warnf("Failed to update professional review: %+v", err)
		return nil, internalError(err)
	}

	if err := u.auditService.LogUpdate(ctx, tx, &actorID, entity.AuditActionProfessionalUpdate, "professional", id, old, professional); err != nil {
		return nil, internalError(err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, internalError(err)
	}
	files.Commit(ctx)

	return converter.ProfessionalToResponse(professional, review, u.fileService.URL), nil
}

func (u *professionalUsecase) Delete(ctx context.Context, actorID, id uint) error {
	_, err := u.deleteMany(ctx, actorID, []uint{id})
	if apperror.Is(err, apperror.KindNotFound) {
		return ErrProfessionalNotFound
	}
	return err
}

func (u *professionalUsecase) BulkDelete(ctx context.Context, actorID uint, ids []uint) (int64, error) {
	return u.deleteMany(ctx, actorID, ids)
}

// deleteMany removes the professionals and every review pointing at them. The
// count is the number of professionals removed.
func (u *professionalUsecase) deleteMany(ctx context.Context, actorID uint, ids []uint) (int64, error) {
	files := u.fileService.NewChangeSet()

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	professionals, err := u.professionalRepo.FindByIDs(tx, ids)
	if err != nil {
		u.log.Warnf("Failed to find professionals: %+v", err)
		return 0, internalError(err)
	}

	if _, err := u.reviewRepo.DeleteByProfessionalIDs(tx, ids); err != nil {
		u.log.Warnf("Failed to delete professional reviews: %+v", err)
		return 0, internalError(err)
	}

	deleted, err := u.professionalRepo.DeleteByIDs(tx, ids)
	if err != nil {
		u.log.Warnf("Failed to delete professionals: %+v", err)
		return 0, internalError(err)
	}
	if deleted == 0 {
		return 0, ErrNothingDeleted
	}

	deletedIDs := make([]uint, 0, len(professionals))
	for i := range professionals {
		deletedIDs = append(deletedIDs, professionals[i].ID)
		files.Retire(professionals[i].FileKeys()...)
	}

	if err := u.auditService.LogDelete(ctx, tx, &actorID, entity.AuditActionProfessionalDelete, "professional", deletedIDs); err != nil {
		return 0, internalError(err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return 0, internalError(err)
	}
	files.Commit(ctx)

	return deleted, nil
}

func (u *professionalUsecase) findWithAdminReview(db *gorm.DB, id uint) (*entity.Professional, *entity.ProfessionalReview, error) {
	professional, err := u.professionalRepo.FindByID(db, id)
	if err != nil {
		u.log.Warnf("Failed to find professional: %+v", err)
		return nil, nil, internalError(err)
	}
	if professional == nil {
		return nil, nil, ErrProfessionalNotFound
	}

	review, err := u.reviewRepo.FindAdminReview(db, id)
	if err != nil {
		u.log.Warnf("Failed to find admin review: %+v", err)
		return nil, nil, internalError(err)
	}
	if review == nil {
		return nil, nil, ErrAdminReviewNotFound
	}
	return professional, review, nil
}

// validate normalizes the phone number and checks uniqueness, collecting every field error.
func (u *professionalUsecase) validate(db *gorm.DB, req *dto.ProfessionalRequest, excludeID uint) (string, error) {
	fields := apperror.Fields{}

	phoneNo, err := u.phones.Normalize(req.PhoneNo)
	if err != nil {
		fields.Add("phone_no", phone.InvalidMessage)
	} else {
		taken, err := u.professionalRepo.Taken(db, "phone_no", phoneNo, excludeID)
		if err != nil {
			u.log.Warnf("Failed to check phone uniqueness: %+v", err)
			return "", internalError(err)
		}
		if taken {
			fields.Add("phone_no", alreadyExists("professional", "phone_no"))
		}
	}

	taken, err := u.professionalRepo.Taken(db, "email", req.Email, excludeID)
	if err != nil {
		u.log.Warnf("Failed to check email uniqueness: %+v", err)
		return "", internalError(err)
	}
	if taken {
		fields.Add("email", alreadyExists("professional", "email"))
	}

	return phoneNo, fields.Err()
}
