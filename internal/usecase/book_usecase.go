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

type BookUsecase interface {
	List(ctx context.Context, q *dto.ListQuery) ([]dto.BookListItem, int64, error)
	GetByID(ctx context.Context, id uint) (*dto.BookResponse, error)
	Create(ctx context.Context, actorID uint, req *dto.BookRequest) (*dto.BookResponse, error)
	Update(ctx context.Context, actorID, id uint, req *dto.BookRequest) (*dto.BookResponse, error)
	Delete(ctx context.Context, actorID, id uint) error
	BulkDelete(ctx context.Context, actorID uint, ids []uint) (int64, error)
}

type bookUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	bookRepo     repository.BookRepository
	auditService service.AuditService
	fileService  service.FileService
}

func NewBookUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	bookRepo repository.BookRepository,
	auditService service.AuditService,
	fileService service.FileService,
) BookUsecase {
	return &bookUsecase{
		db:           db,
		log:          log,
		bookRepo:     bookRepo,
		auditService: auditService,
		fileService:  fileService,
	}
}

func (u *bookUsecase) List(ctx context.Context, q *dto.ListQuery) ([]dto.BookListItem, int64, error) {
	books, total, err := u.bookRepo.FindAll(u.db.WithContext(ctx), buildListFilter(q, bookFilters))
	if err != nil {
		u.log.Warnf("Failed to list books: %+v", err)
		return nil, 0, internalError(err)
	}
	return converter.BooksToListItems(books, u.fileService.URL), total, nil
}

func (u *bookUsecase) GetByID(ctx context.Context, id uint) (*dto.BookResponse, error) {
	book, err := u.find(u.db.WithContext(ctx), id)
	if err != nil {
		return nil, err
	}
	return converter.BookToResponse(book, u.fileService.URL), nil
}

func (u *bookUsecase) Create(ctx context.Context, actorID uint, req *dto.BookRequest) (*dto.BookResponse, error) {
	if err := checkPrice(apperror.Fields{}, req.Price).Err(); err != nil {
		return nil, err
	}

	files := u.fileService.NewChangeSet()
	defer files.Discard(ctx)

	image, err := files.Upload(ctx, "books", service.FileKindImage, req.Image)
	if err != nil {
		return nil, err
	}

	book := &entity.Book{
		Name:              req.Name,
		Price:             *req.Price,
		Description:       req.Description,
		AdditionalDetails: req.AdditionalDetails,
		Image:             image,
		Availability:      req.Availability,
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.bookRepo.Create(tx, book); err != nil {
		u.log.Warnf("Failed to create book: %+v", err)
		return nil, internalError(err)
	}

	if err := u.auditService.LogCreate(ctx, tx, &actorID, entity.AuditActionBookCreate, "book", book.ID, book); err != nil {
		return nil, internalError(err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, internalError(err)
	}
	files.Commit(ctx)

	return converter.BookToResponse(book, u.fileService.URL), nil
}

func (u *bookUsecase) Update(ctx context.Context, actorID, id uint, req *dto.BookRequest) (*dto.BookResponse, error) {
	if err := checkPrice(apperror.Fields{}, req.Price).Err(); err != nil {
		return nil, err
	}

	book, err := u.find(u.db.WithContext(ctx), id)
	if err != nil {
		return nil, err
	}
	old := *book

	files := u.fileService.NewChangeSet()
	defer files.Discard(ctx)

	if req.Image != nil {
		image, err := files.Upload(ctx, "books", service.FileKindImage, req.Image)
		if err != nil {
			return nil, err
		}
		files.Replace(book.Image, image)
		book.Image = image
	}

	book.Name = req.Name
	book.Price = *req.Price
	book.Description = req.Description
	book.AdditionalDetails = req.AdditionalDetails
	book.Availability = req.Availability

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.bookRepo.Update(tx, book); err != nil {
		u.log.Warnf("Failed to update book: %+v", err)
		return nil, internalError(err)
	}

	if err := u.auditService.LogUpdate(ctx, tx, &actorID, entity.AuditActionBookUpdate, "book", id, old, book); err != nil {
		return nil, internalError(err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, internalError(err)
	}
	files.Commit(ctx)

	return converter.BookToResponse(book, u.fileService.URL), nil
}

func (u *bookUsecase) Delete(ctx context.Context, actorID, id uint) error {
	if _, err := u.deleteMany(ctx, actorID, []uint{id}); err != nil {
		if apperror.Is(err, apperror.KindNotFound) {
			return ErrBookNotFound
		}
		return err
	}
	return nil
}

func (u *bookUsecase) BulkDelete(ctx context.Context, actorID uint, ids []uint) (int64, error) {
	return u.deleteMany(ctx, actorID, ids)
}

func (u *bookUsecase) deleteMany(ctx context.Context, actorID uint, ids []uint) (int64, error) {
	files := u.fileService.NewChangeSet()

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	books, err := u.bookRepo.FindByIDs(tx, ids)
	if err != nil {
		u.log.Warnf("Failed to find books: %+v", err)
		return 0, internalError(err)
	}

	deleted, err := u.bookRepo.DeleteByIDs(tx, ids)
	if err != nil {
		u.log.Warnf("Failed to delete books: %+v", err)
		return 0, internalError(err)
	}
	if deleted == 0 {
		return 0, ErrNothingDeleted
	}

	deletedIDs := make([]uint, 0, len(books))
	for i := range books {
		deletedIDs = append(deletedIDs, books[i].ID)
		files.Retire(books[i].FileKeys()...)
	}

	if err := u.auditService.LogDelete(ctx, tx, &actorID, entity.AuditActionBookDelete, "book", deletedIDs); err != nil {
		return 0, internalError(err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return 0, internalError(err)
	}
	files.Commit(ctx)

	return deleted, nil
}

func (u *bookUsecase) find(db *gorm.DB, id uint) (*entity.Book, error) {
	book, err := u.bookRepo.FindByID(db, id)
	if err != nil {
		u.log.Warnf("Failed to find book: %+v", err)
		return nil, internalError(err)
	}
	if book == nil {
		return nil, ErrBookNotFound
	}
	return book, nil
}

var hundred = decimal.NewFromInt(100)

func checkPrice(fields apperror.Fields, price *decimal.Decimal) apperror.Fields {
	if price != nil && price.IsNegative() {
		fields.Add("price", "Ensure this value is greater than or equal to 0.")
	}
	return fields
}

func checkDiscount(fields apperror.Fields, discount *decimal.Decimal) apperror.Fields {
	if discount == nil {
		return fields
	}
	if discount.IsNegative() {
		fields.Add("discount_percentage", "Ensure this value is greater than or equal to 0.")
	} else if discount.GreaterThan(hundred) {
		fields.Add("discount_percentage", "Ensure this value is less than or equal to 100.")
	}
	return fields
}
