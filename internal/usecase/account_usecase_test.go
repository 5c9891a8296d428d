package usecase

import (
	"context"
	"testing"

	"content-admin/internal/delivery/dto"
	"content-admin/internal/domain/entity"
	"content-admin/internal/repository"
	"content-admin/internal/testutil"
	"content-admin/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAccountUsecase(f *fixture) AccountUsecase {
	return NewAccountUsecase(f.DB, f.Log, repository.NewAdminProfileRepository(), f.audit, f.Files, f.phones)
}

func TestAccount_UpdateProfile(t *testing.T) {
	f := newFixture(t)
	admin := f.seedAdmin(t, "admin@example.com")
	f.seedAdmin(t, "other@example.com")
	uc := newAccountUsecase(f)
	ctx := context.Background()

	_, err := uc.UpdateProfile(ctx, admin.ID, &dto.UpdateAccountRequest{Email: "OTHER@example.com"})
	appErr, ok := apperror.As(err)
	require.True(t, ok)
	assert.Equal(t, []string{"admin user with this email already exists."}, appErr.Fields["email"])

	updated, err := uc.UpdateProfile(ctx, admin.ID, &dto.UpdateAccountRequest{
		FirstName:   "Priya",
		Email:       " Priya@Example.com ",
		PhoneNo:     "99999 99999",
		Designation: "Editor",
	})
	require.NoError(t, err)
	assert.Equal(t, "+919999999999", updated.PhoneNo)
	assert.Equal(t, "Editor", updated.Designation)

	got, err := uc.GetProfile(ctx, admin.ID)
	require.NoError(t, err)
	assert.Equal(t, "priya@example.com", got.Email)
	assert.Equal(t, int64(1), f.auditCount(t, entity.AuditActionAccountUpdate))

	_, err = uc.GetProfile(ctx, 999)
	assert.ErrorIs(t, err, ErrIdentityNotFound)
}

func TestAdminEmailStoredLowercase(t *testing.T) {
	f := newFixture(t)
	admin := f.seedAdmin(t, "Mixed.Case@Example.com")
	assert.Equal(t, "mixed.case@example.com", admin.AdminProfile.Email)

	profile, err := repository.NewAdminProfileRepository().FindByEmail(f.DB, "MIXED.CASE@example.COM")
	require.NoError(t, err)
	require.NotNil(t, profile)
	assert.Equal(t, "mixed.case@example.com", profile.Email)
}

func TestAccount_UpdatePhotoReplacesOld(t *testing.T) {
	f := newFixture(t)
	admin := f.seedAdmin(t, "admin@example.com")
	uc := newAccountUsecase(f)
	profiles := repository.NewAdminProfileRepository()
	ctx := context.Background()

	_, err := uc.UpdatePhoto(ctx, admin.ID, &dto.PhotoRequest{Image: testutil.ImageUpload("image")})
	require.NoError(t, err)
	first, err := profiles.FindByIdentityID(f.DB, admin.ID)
	require.NoError(t, err)
	require.True(t, f.Store.Exists(first.Image))

	_, err = uc.UpdatePhoto(ctx, admin.ID, &dto.PhotoRequest{Image: testutil.ImageUpload("image")})
	require.NoError(t, err)
	second, err := profiles.FindByIdentityID(f.DB, admin.ID)
	require.NoError(t, err)

	assert.True(t, f.Store.Exists(second.Image))
	assert.False(t, f.Store.Exists(first.Image))
}

func TestAuditLog_ListAndGet(t *testing.T) {
	f := newFixture(t)
	admin := f.seedAdmin(t, "admin@example.com")
	uc := NewAuditLogUsecase(f.DB, f.Log, repository.NewAuditLogRepository())
	ctx := context.Background()

	_, err := newAuthUsecase(f).AdminLogin(ctx, &dto.AdminLoginRequest{Email: "admin@example.com", Password: testPassword})
	require.NoError(t, err)
	_, err = newAccountUsecase(f).UpdateProfile(ctx, admin.ID, &dto.UpdateAccountRequest{Email: "admin@example.com"})
	require.NoError(t, err)

	logs, total, err := uc.List(ctx, &dto.ListQuery{Filters: map[string]string{"action": entity.AuditActionAdminLogin}, Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, logs, 1)
	assert.Equal(t, "admin@example.com", logs[0].Metadata["email"])

	got, err := uc.GetByID(ctx, logs[0].ID)
	require.NoError(t, err)
	assert.Equal(t, entity.AuditActionAdminLogin, got.Action)

	_, err = uc.GetByID(ctx, 12345)
	assert.ErrorIs(t, err, ErrAuditLogNotFound)
}
