package repository

import (
	"testing"
	"time"

	"content-admin/internal/domain/entity"
	"content-admin/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMobileProfileUpdate_KeepsPendingOTP(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewMobileProfileRepository()

	identity := entity.NewMobileIdentity("hash", &entity.MobileProfile{
		FirstName: "Asha",
		PhoneNo:   "+919999999999",
		FCMToken:  "fcm-token",
	})
	require.NoError(t, NewIdentityRepository().Create(db, identity))

	stale, err := repo.FindByIdentityID(db, identity.ID)
	require.NoError(t, err)
	require.NotNil(t, stale)
	require.Nil(t, stale.OTP)

	code := "4321"
	expiresAt := time.Now().Add(time.Minute)
	require.NoError(t, repo.SetOTP(db, stale.ID, &code, &expiresAt))

	stale.FirstName = "Asha Devi"
	require.NoError(t, repo.Update(db, stale))

	got, err := repo.FindByID(db, stale.ID)
	require.NoError(t, err)
	assert.Equal(t, "Asha Devi", got.FirstName)
	require.NotNil(t, got.OTP)
	assert.Equal(t, "4321", *got.OTP)
	assert.NotNil(t, got.OTPExpiresAt)
	assert.True(t, got.IsActive)
}

func TestMobileProfileUpdate_KeepsDeactivation(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewMobileProfileRepository()

	identity := entity.NewMobileIdentity("hash", &entity.MobileProfile{PhoneNo: "+919888888888", FCMToken: "fcm-token"})
	require.NoError(t, NewIdentityRepository().Create(db, identity))

	stale, err := repo.FindByIdentityID(db, identity.ID)
	require.NoError(t, err)

	n, err := repo.Deactivate(db, []uint{stale.ID})
	require.NoError(t, err)
	require.Equal(t, int64(1), n)

	stale.LastName = "Rao"
	require.NoError(t, repo.Update(db, stale))

	got, err := repo.FindByID(db, stale.ID)
	require.NoError(t, err)
	assert.False(t, got.IsActive)
	assert.Equal(t, "Rao", got.LastName)
}
