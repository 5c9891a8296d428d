package usecase

import (
	"context"
	"strings"
	"testing"

	"content-admin/internal/delivery/dto"
	"content-admin/internal/domain/entity"
	"content-admin/internal/repository"
	"content-admin/internal/testutil"
	"content-admin/pkg/apperror"
	"content-admin/pkg/password"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProfessionalUsecase(f *fixture) ProfessionalUsecase {
	return NewProfessionalUsecase(
		f.DB,
		f.Log,
		repository.NewProfessionalRepository(),
		repository.NewProfessionalReviewRepository(),
		f.audit,
		f.Files,
		f.phones,
	)
}

func professionalRequest(email, phoneNo string) *dto.ProfessionalRequest {
	return &dto.ProfessionalRequest{
		Name:      "Dr. Meera Iyer",
		PhoneNo:   phoneNo,
		Email:     email,
		Expertise: "Orthodontics",
		Location:  "Chennai",
		Review:    "Excellent",
		Rating:    5,
	}
}

func storedProfessional(t *testing.T, f *fixture, id uint) *entity.Professional {
	t.Helper()

	p, err := repository.NewProfessionalRepository().FindByID(f.DB, id)
	require.NoError(t, err)
	return p
}

func TestProfessional_CreateGet(t *testing.T) {
	f := newFixture(t)
	admin := f.seedAdmin(t, "admin@example.com")
	uc := newProfessionalUsecase(f)
	ctx := context.Background()

	created, err := uc.Create(ctx, admin.ID, professionalRequest("meera@example.com", "9999999999"))
	require.NoError(t, err)
	assert.Equal(t, "+919999999999", created.PhoneNo)
	assert.Empty(t, created.Banner)

	got, err := uc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, got.Rating)
	assert.Equal(t, "Excellent", got.Review)
	assert.Equal(t, int64(1), f.auditCount(t, entity.AuditActionProfessionalCreate))

	_, err = uc.Create(ctx, admin.ID, professionalRequest("meera@example.com", "9888888888"))
	appErr, ok := apperror.As(err)
	require.True(t, ok)
	assert.Contains(t, appErr.Fields, "email")

	_, err = uc.GetByID(ctx, 999)
	assert.ErrorIs(t, err, ErrProfessionalNotFound)
}

func TestProfessional_GetWithoutAdminReview(t *testing.T) {
	f := newFixture(t)
	uc := newProfessionalUsecase(f)

	p := &entity.Professional{Name: "No Review", PhoneNo: "+919999999999", Email: "x@example.com"}
	require.NoError(t, repository.NewProfessionalRepository().Create(f.DB, p))

	_, err := uc.GetByID(context.Background(), p.ID)
	assert.ErrorIs(t, err, ErrAdminReviewNotFound)
}

func TestProfessional_UpdateWithoutAdminReview(t *testing.T) {
	f := newFixture(t)
	admin := f.seedAdmin(t, "admin@example.com")
	uc := newProfessionalUsecase(f)

	p := &entity.Professional{Name: "No Review", PhoneNo: "+919999999999", Email: "x@example.com"}
	require.NoError(t, repository.NewProfessionalRepository().Create(f.DB, p))

	_, err := uc.Update(context.Background(), admin.ID, p.ID, professionalRequest("x@example.com", "9999999999"))
	assert.ErrorIs(t, err, ErrAdminReviewNotFound)
}

func TestProfessional_ReplaceBanner(t *testing.T) {
	f := newFixture(t)
	admin := f.seedAdmin(t, "admin@example.com")
	uc := newProfessionalUsecase(f)
	ctx := context.Background()

	req := professionalRequest("meera@example.com", "9999999999")
	req.Banner = testutil.ImageUpload("banner")
	created, err := uc.Create(ctx, admin.ID, req)
	require.NoError(t, err)

	oldBanner := storedProfessional(t, f, created.ID).Banner
	require.NotEmpty(t, oldBanner)
	assert.True(t, f.Store.Exists(oldBanner))

	// An update without files keeps the current banner.
	_, err = uc.Update(ctx, admin.ID, created.ID, professionalRequest("meera@example.com", "9999999999"))
	require.NoError(t, err)
	assert.Equal(t, oldBanner, storedProfessional(t, f, created.ID).Banner)
	assert.True(t, f.Store.Exists(oldBanner))

	update := professionalRequest("meera@example.com", "9999999999")
	update.Banner = testutil.ImageUpload("banner")
	update.Rating = 3
	updated, err := uc.Update(ctx, admin.ID, created.ID, update)
	require.NoError(t, err)
	assert.Equal(t, 3, updated.Rating)

	newBanner := storedProfessional(t, f, created.ID).Banner
	assert.NotEqual(t, oldBanner, newBanner)
	assert.True(t, f.Store.Exists(newBanner))
	assert.False(t, f.Store.Exists(oldBanner))
}

func TestProfessional_RejectsNonImageBanner(t *testing.T) {
	f := newFixture(t)
	admin := f.seedAdmin(t, "admin@example.com")
	uc := newProfessionalUsecase(f)

	req := professionalRequest("meera@example.com", "9999999999")
	req.Portfolio = testutil.ImageUpload("portfolio")
	req.Banner = &entity.Upload{Field: "banner", Filename: "notes.txt", Size: 4, Content: strings.NewReader("text")}

	_, err := uc.Create(context.Background(), admin.ID, req)
	appErr, ok := apperror.As(err)
	require.True(t, ok)
	assert.Contains(t, appErr.Fields, "banner")
	assert.Equal(t, int64(0), countRows(t, f.DB, &entity.Professional{}))
}

func TestProfessional_BulkDelete(t *testing.T) {
	f := newFixture(t)
	admin := f.seedAdmin(t, "admin@example.com")
	uc := newProfessionalUsecase(f)
	ctx := context.Background()

	req := professionalRequest("one@example.com", "9999999999")
	req.Banner = testutil.ImageUpload("banner")
	first, err := uc.Create(ctx, admin.ID, req)
	require.NoError(t, err)
	second, err := uc.Create(ctx, admin.ID, professionalRequest("two@example.com", "9888888888"))
	require.NoError(t, err)

	banner := storedProfessional(t, f, first.ID).Banner

	deleted, err := uc.BulkDelete(ctx, admin.ID, []uint{first.ID, second.ID, 999})
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)
	assert.Equal(t, int64(0), countRows(t, f.DB, &entity.Professional{}))
	assert.Equal(t, int64(0), countRows(t, f.DB, &entity.ProfessionalReview{}))
	assert.False(t, f.Store.Exists(banner))
	assert.Equal(t, int64(1), f.auditCount(t, entity.AuditActionProfessionalDelete))

	_, err = uc.BulkDelete(ctx, admin.ID, []uint{first.ID})
	assert.ErrorIs(t, err, ErrNothingDeleted)

	assert.ErrorIs(t, uc.Delete(ctx, admin.ID, first.ID), ErrProfessionalNotFound)
}

func TestProfessional_BulkDeleteRemovesEveryReview(t *testing.T) {
	f := newFixture(t)
	admin := f.seedAdmin(t, "admin@example.com")
	uc := newProfessionalUsecase(f)
	ctx := context.Background()

	created, err := uc.Create(ctx, admin.ID, professionalRequest("one@example.com", "9999999999"))
	require.NoError(t, err)

	hash, err := password.Hash(testPassword)
	require.NoError(t, err)
	staff := entity.NewAdminIdentity(hash, &entity.AdminProfile{FirstName: "Staff", LastName: "Member", Email: "staff@example.com"})
	require.NoError(t, repository.NewIdentityRepository().Create(f.DB, staff))
	require.False(t, staff.IsSuperuser)

	require.NoError(t, f.DB.Create(&entity.ProfessionalReview{ProfessionalID: created.ID, CreatedByID: &staff.ID, Rating: 2, Review: "Late"}).Error)
	require.NoError(t, f.DB.Create(&entity.ProfessionalReview{ProfessionalID: created.ID, Rating: 4, Review: "Anonymous"}).Error)
	require.Equal(t, int64(3), countRows(t, f.DB, &entity.ProfessionalReview{}))

	deleted, err := uc.BulkDelete(ctx, admin.ID, []uint{created.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)
	assert.Equal(t, int64(0), countRows(t, f.DB, &entity.ProfessionalReview{}))
}

func TestProfessional_ListSearch(t *testing.T) {
	f := newFixture(t)
	admin := f.seedAdmin(t, "admin@example.com")
	uc := newProfessionalUsecase(f)
	ctx := context.Background()

	_, err := uc.Create(ctx, admin.ID, professionalRequest("one@example.com", "9999999999"))
	require.NoError(t, err)
	other := professionalRequest("two@example.com", "9888888888")
	other.Expertise = "Cardiology"
	other.Location = "Pune"
	_, err = uc.Create(ctx, admin.ID, other)
	require.NoError(t, err)

	items, total, err := uc.List(ctx, &dto.ListQuery{Search: "cardio", Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, items, 1)
	assert.Equal(t, "two@example.com", items[0].Email)

	items, total, err = uc.List(ctx, &dto.ListQuery{Filters: map[string]string{"location": "Chennai"}, Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "one@example.com", items[0].Email)
}
