package usecase

import (
	"context"
	"testing"
	"time"

	"content-admin/config"
	"content-admin/internal/delivery/dto"
	"content-admin/internal/domain/entity"
	"content-admin/internal/repository"
	"content-admin/internal/testutil"
	"content-admin/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMobileUserUsecase(f *fixture) MobileUserUsecase {
	return NewMobileUserUsecase(
		f.DB,
		f.Log,
		repository.NewIdentityRepository(),
		repository.NewMobileProfileRepository(),
		f.audit,
		f.Files,
		f.policy,
		f.phones,
	)
}

func TestMobileUser_SoftDelete(t *testing.T) {
	f := newFixture(t)
	admin := f.seedAdmin(t, "admin@example.com")
	uc := newMobileUserUsecase(f)
	ctx := context.Background()

	first, err := uc.Create(ctx, admin.ID, registerRequest("9999999999"))
	require.NoError(t, err)
	second, err := uc.Create(ctx, admin.ID, registerRequest("9888888888"))
	require.NoError(t, err)
	assert.Equal(t, int64(2), f.auditCount(t, entity.AuditActionMobileUserCreate))

	require.NoError(t, uc.Delete(ctx, admin.ID, first.ID))

	// The row survives, inactive, and its identity can no longer authenticate.
	got, err := uc.GetByID(ctx, first.ID)
	require.NoError(t, err)
	assert.False(t, got.IsActive)

	profile, err := repository.NewMobileProfileRepository().FindByID(f.DB, first.ID)
	require.NoError(t, err)
	identity, err := repository.NewIdentityRepository().FindByID(f.DB, profile.IdentityID)
	require.NoError(t, err)
	assert.False(t, identity.IsActive)

	assert.ErrorIs(t, uc.Delete(ctx, admin.ID, first.ID), ErrMobileUserNotFound)

	deactivated, err := uc.BulkDelete(ctx, admin.ID, []uint{first.ID, second.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(1), deactivated)
	assert.Equal(t, int64(2), countRows(t, f.DB, &entity.MobileProfile{}))

	auth := newMobileAuthUsecase(f, &recordingDispatcher{}, config.OTPConfig{TTL: time.Minute})
	_, err = auth.RequestOTP(ctx, &dto.RequestOTPRequest{PhoneNo: "9999999999"})
	assert.ErrorIs(t, err, ErrMobileUserNotFound)
}

func TestMobileUser_StatusFilter(t *testing.T) {
	f := newFixture(t)
	admin := f.seedAdmin(t, "admin@example.com")
	uc := newMobileUserUsecase(f)
	ctx := context.Background()

	active, err := uc.Create(ctx, admin.ID, registerRequest("9999999999"))
	require.NoError(t, err)
	inactive, err := uc.Create(ctx, admin.ID, registerRequest("9888888888"))
	require.NoError(t, err)
	require.NoError(t, uc.Delete(ctx, admin.ID, inactive.ID))

	list := func(status string) ([]dto.MobileUserListItem, error) {
		items, _, err := uc.List(ctx, &dto.ListQuery{Filters: map[string]string{"status": status}, Page: 1, PageSize: 10})
		return items, err
	}

	items, err := list("1")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, active.ID, items[0].ID)

	items, err = list("0")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, inactive.ID, items[0].ID)

	items, err = list("")
	require.NoError(t, err)
	assert.Len(t, items, 2)

	_, err = list("yes")
	appErr, ok := apperror.As(err)
	require.True(t, ok)
	assert.Equal(t, []string{"Invalid status value. Use 1 for active or 0 for inactive."}, appErr.Fields["status"])
}

func TestMobileUser_UpdateAndPhoto(t *testing.T) {
	f := newFixture(t)
	admin := f.seedAdmin(t, "admin@example.com")
	uc := newMobileUserUsecase(f)
	ctx := context.Background()

	created, err := uc.Create(ctx, admin.ID, registerRequest("9999999999"))
	require.NoError(t, err)
	_, err = uc.Create(ctx, admin.ID, registerRequest("9888888888"))
	require.NoError(t, err)

	_, err = uc.Update(ctx, admin.ID, created.ID, &dto.UpdateMobileUserRequest{FirstName: "A", PhoneNo: "9888888888"})
	appErr, ok := apperror.As(err)
	require.True(t, ok)
	assert.Contains(t, appErr.Fields, "phone_no")

	updated, err := uc.Update(ctx, admin.ID, created.ID, &dto.UpdateMobileUserRequest{FirstName: "Kiran", Email: "kiran@example.com", PhoneNo: "9777777777"})
	require.NoError(t, err)
	assert.Equal(t, "Kiran", updated.FirstName)
	assert.Equal(t, "+919777777777", updated.PhoneNo)
	assert.Equal(t, "kiran@example.com", updated.Email)

	_, err = uc.UpdatePhoto(ctx, admin.ID, created.ID, &dto.PhotoRequest{})
	assert.True(t, apperror.Is(err, apperror.KindValidation))

	withPhoto, err := uc.UpdatePhoto(ctx, admin.ID, created.ID, &dto.PhotoRequest{Image: testutil.ImageUpload("image")})
	require.NoError(t, err)
	assert.Contains(t, withPhoto.Image, "/media/mobile_profiles/")
}
