package usecase

import (
	"context"

	"content-admin/internal/converter"
	"content-admin/internal/delivery/dto"
	"content-admin/internal/domain/entity"
	"content-admin/internal/domain/repository"
	"content-admin/internal/service"
	"content-admin/pkg/apperror"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type EventUsecase interface {
	List(ctx context.Context, q *dto.ListQuery) ([]dto.EventListItem, int64, error)
	GetByID(ctx context.Context, id uint) (*dto.EventResponse, error)
	Create(ctx context.Context, actorID uint, req *dto.EventRequest) (*dto.EventResponse, error)
	Update(ctx context.Context, actorID, id uint, req *dto.EventRequest) (*dto.EventResponse, error)
	Delete(ctx context.Context, actorID, id uint) error
	BulkDelete(ctx context.Context, actorID uint, ids []uint) (int64, error)
}

type eventUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	eventRepo    repository.EventRepository
	auditService service.AuditService
	fileService  service.FileService
}

func NewEventUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	eventRepo repository.EventRepository,
	auditService service.AuditService,
	fileService service.FileService,
) EventUsecase {
	return &eventUsecase{
		db:           db,
		log:          log,
		eventRepo:    eventRepo,
		auditService: auditService,
		fileService:  fileService,
	}
}

func (u *eventUsecase) List(ctx context.Context, q *dto.ListQuery) ([]dto.EventListItem, int64, error) {
	events, total, err := u.eventRepo.FindAll(u.db.WithContext(ctx), buildListFilter(q, eventFilters))
	if err != nil {
		u.log.Warnf("Failed to list events: %+v", err)
		return nil, 0, internalError(err)
	}
	return converter.EventsToListItems(events), total, nil
}

func (u *eventUsecase) GetByID(ctx context.Context, id uint) (*dto.EventResponse, error) {
	event, err := u.find(u.db.WithContext(ctx), id)
	if err != nil {
		return nil, err
	}
	return converter.EventToResponse(event, u.fileService.URL), nil
}

func (u *eventUsecase) Create(ctx context.Context, actorID uint, req *dto.EventRequest) (*dto.EventResponse, error) {
	files := u.fileService.NewChangeSet()
	defer files.Discard(ctx)

	image, err := files.Upload(ctx, "events", service.FileKindImage, req.Image)
	if err != nil {
		return nil, err
	}

	event := &entity.Event{
		Title:                  req.Title,
		Date:                   req.Date.UTC(),
		Location:               req.Location,
		Description:            req.Description,
		Image:                  image,
		AdditionalInformations: req.AdditionalInformations,
		Status:                 eventStatus(req.Status),
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.eventRepo.Create(tx, event); err != nil {
		u.log.Warnf("Failed to create event: %+v", err)
		return nil, internalError(err)
	}

	if err := u.auditService.LogCreate(ctx, tx, &actorID, entity.AuditActionEventCreate, "event", event.ID, event); err != nil {
		return nil, internalError(err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, internalError(err)
	}
	files.Commit(ctx)

	return converter.EventToResponse(event, u.fileService.URL), nil
}

func (u *eventUsecase) Update(ctx context.Context, actorID, id uint, req *dto.EventRequest) (*dto.EventResponse, error) {
	event, err := u.find(u.db.WithContext(ctx), id)
	if err != nil {
		return nil, err
	}
	old := *event

	files := u.fileService.NewChangeSet()
	defer files.Discard(ctx)

	if req.Image != nil {
		image, err := files.Upload(ctx, "events", service.FileKindImage, req.Image)
		if err != nil {
			return nil, err
		}
		files.Replace(event.Image, image)
		event.Image = image
	}

	event.Title = req.Title
	event.Date = req.Date.UTC()
	event.Location = req.Location
	event.Description = req.Description
	event.AdditionalInformations = req.AdditionalInformations
	event.Status = eventStatus(req.Status)

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.eventRepo.Update(tx, event); err != nil {
		u.log.Warnf("Failed to update event: %+v", err)
		return nil, internalError(err)
	}

	if err := u.auditService.LogUpdate(ctx, tx, &actorID, entity.AuditActionEventUpdate, "event", id, old, event); err != nil {
		return nil, internalError(err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, internalError(err)
	}
	files.Commit(ctx)

	return converter.EventToResponse(event, u.fileService.URL), nil
}

func (u *eventUsecase) Delete(ctx context.Context, actorID, id uint) error {
	if _, err := u.deleteMany(ctx, actorID, []uint{id}); err != nil {
		if apperror.Is(err, apperror.KindNotFound) {
			return ErrEventNotFound
		}
		return err
	}
	return nil
}

func (u *eventUsecase) BulkDelete(ctx context.Context, actorID uint, ids []uint) (int64, error) {
	return u.deleteMany(ctx, actorID, ids)
}

func (u *eventUsecase) deleteMany(ctx context.Context, actorID uint, ids []uint) (int64, error) {
	files := u.fileService.NewChangeSet()

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	events, err := u.eventRepo.FindByIDs(tx, ids)
	if err != nil {
		u.log.Warnf("Failed to find events: %+v", err)
		return 0, internalError(err)
	}

	deleted, err := u.eventRepo.DeleteByIDs(tx, ids)
	if err != nil {
		u.log.Warnf("Failed to delete events: %+v", err)
		return 0, internalError(err)
	}
	if deleted == 0 {
		return 0, ErrNothingDeleted
	}

	deletedIDs := make([]uint, 0, len(events))
	for i := range events {
		deletedIDs = append(deletedIDs, events[i].ID)
		files.Retire(events[i].FileKeys()...)
	}

	if err := u.auditService.LogDelete(ctx, tx, &actorID, entity.AuditActionEventDelete, "event", deletedIDs); err != nil {
		return 0, internalError(err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return 0, internalError(err)
	}
	files.Commit(ctx)

	return deleted, nil
}

func (u *eventUsecase) find(db *gorm.DB, id uint) (*entity.Event, error) {
	event, err := u.eventRepo.FindByID(db, id)
	if err != nil {
		u.log.Warnf("Failed to find event: %+v", err)
		return nil, internalError(err)
	}
	if event == nil {
		return nil, ErrEventNotFound
	}
	return event, nil
}

func eventStatus(status string) string {
	if status == "" {
		return entity.EventStatusUpcoming
	}
	return status
}
