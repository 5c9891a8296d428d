package usecase

import (
	"context"
	"testing"
	"time"

	"content-admin/internal/delivery/dto"
	"content-admin/internal/domain/entity"
	"content-admin/internal/repository"
	"content-admin/internal/testutil"
	"content-admin/pkg/apperror"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func materialRequest(name, kind, supplier string) *dto.MaterialRequest {
	return &dto.MaterialRequest{
		Name:         name,
		Type:         kind,
		SupplierName: supplier,
		Price:        dec("120.50"),
		Availability: entity.AvailabilityInStock,
	}
}

func TestMaterial_SearchWithTypeFilter(t *testing.T) {
	f := newFixture(t)
	admin := f.seedAdmin(t, "admin@example.com")
	uc := NewMaterialUsecase(f.DB, f.Log, repository.NewMaterialRepository(), f.audit, f.Files)
	ctx := context.Background()

	for _, req := range []*dto.MaterialRequest{
		materialRequest("Rebar", "metal", "Tata Steel"),
		materialRequest("Plank", "wood", "Steel Woods"),
		materialRequest("Sheet", "metal", "Hindalco"),
	} {
		_, err := uc.Create(ctx, admin.ID, req)
		require.NoError(t, err)
	}

	items, total, err := uc.List(ctx, &dto.ListQuery{
		Search:   "steel",
		Filters:  map[string]string{"type": "metal", "unknown": "ignored"},
		Page:     1,
		PageSize: 10,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, items, 1)
	assert.Equal(t, "Rebar", items[0].Name)

	_, total, err = uc.List(ctx, &dto.ListQuery{Search: "STEEL", Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
}

func TestMaterial_Validation(t *testing.T) {
	f := newFixture(t)
	admin := f.seedAdmin(t, "admin@example.com")
	uc := NewMaterialUsecase(f.DB, f.Log, repository.NewMaterialRepository(), f.audit, f.Files)
	ctx := context.Background()

	req := materialRequest("Rebar", "metal", "Tata Steel")
	req.Price = dec("-1")
	req.DiscountPercentage = dec("120")

	_, err := uc.Create(ctx, admin.ID, req)
	appErr, ok := apperror.As(err)
	require.True(t, ok)
	assert.Contains(t, appErr.Fields, "price")
	assert.Contains(t, appErr.Fields, "discount_percentage")

	created, err := uc.Create(ctx, admin.ID, materialRequest("Rebar", "metal", "Tata Steel"))
	require.NoError(t, err)
	assert.True(t, created.DiscountPercentage.IsZero())
}

func TestBook_CreateDeleteRemovesImage(t *testing.T) {
	f := newFixture(t)
	admin := f.seedAdmin(t, "admin@example.com")
	bookRepo := repository.NewBookRepository()
	uc := NewBookUsecase(f.DB, f.Log, bookRepo, f.audit, f.Files)
	ctx := context.Background()

	created, err := uc.Create(ctx, admin.ID, &dto.BookRequest{
		Name:         "Clean Architecture",
		Price:        dec("499.00"),
		Availability: entity.AvailabilityPreOrder,
		Image:        testutil.ImageUpload("image"),
	})
	require.NoError(t, err)

	stored, err := bookRepo.FindByID(f.DB, created.ID)
	require.NoError(t, err)
	require.True(t, f.Store.Exists(stored.Image))
	assert.Equal(t, "/media/"+stored.Image, created.Image)

	require.NoError(t, uc.Delete(ctx, admin.ID, created.ID))
	assert.False(t, f.Store.Exists(stored.Image))
	assert.ErrorIs(t, uc.Delete(ctx, admin.ID, created.ID), ErrBookNotFound)

	_, err = uc.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, ErrBookNotFound)
}

func TestEvent_DefaultStatusAndFilter(t *testing.T) {
	f := newFixture(t)
	admin := f.seedAdmin(t, "admin@example.com")
	uc := NewEventUsecase(f.DB, f.Log, repository.NewEventRepository(), f.audit, f.Files)
	ctx := context.Background()

	date := time.Date(2026, 11, 20, 18, 30, 0, 0, time.UTC)
	created, err := uc.Create(ctx, admin.ID, &dto.EventRequest{Title: "Expo", Date: &date, Location: "Mumbai"})
	require.NoError(t, err)
	assert.Equal(t, entity.EventStatusUpcoming, created.Status)

	_, err = uc.Create(ctx, admin.ID, &dto.EventRequest{Title: "Summit", Date: &date, Location: "Delhi", Status: entity.EventStatusCancelled})
	require.NoError(t, err)

	items, total, err := uc.List(ctx, &dto.ListQuery{Filters: map[string]string{"status": "cancelled"}, Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "Summit", items[0].Title)

	deleted, err := uc.BulkDelete(ctx, admin.ID, []uint{created.ID, 42})
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)
	assert.Equal(t, int64(1), f.auditCount(t, entity.AuditActionEventDelete))
}
