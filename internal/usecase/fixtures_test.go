package usecase

import (
	"testing"
	"time"

	"content-admin/config"
	"content-admin/internal/domain/entity"
	"content-admin/internal/repository"
	"content-admin/internal/service"
	"content-admin/internal/testutil"
	"content-admin/pkg/jwt"
	"content-admin/pkg/password"
	"content-admin/pkg/phone"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testPassword = "Str0ng-Passw0rd!"

type fixture struct {
	*testutil.Env
	jwt       *jwt.JWTService
	blacklist service.TokenBlacklist
	audit     service.AuditService
	policy    *password.Policy
	phones    *phone.Normalizer
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	env := testutil.NewEnv(t)
	return &fixture{
		Env: env,
		jwt: jwt.NewJWTService(config.JWTConfig{
			Secret:        "test-secret",
			AccessExpiry:  5 * time.Minute,
			RefreshExpiry: time.Hour,
		}),
		blacklist: service.NewTokenBlacklist(env.Redis),
		audit:     service.NewAuditService(env.Log, repository.NewAuditLogRepository()),
		policy:    password.NewPolicy(password.MinimumLength(8)),
		phones:    phone.NewNormalizer("IN"),
	}
}

// seedAdmin stores an active superuser admin and returns its identity.
func (f *fixture) seedAdmin(t *testing.T, email string) *entity.Identity {
	t.Helper()

	hash, err := password.Hash(testPassword)
	require.NoError(t, err)

	identity := entity.NewAdminIdentity(hash, &entity.AdminProfile{FirstName: "Site", LastName: "Admin", Email: email})
	identity.IsSuperuser = true
	require.NoError(t, repository.NewIdentityRepository().Create(f.DB, identity))
	return identity
}

func (f *fixture) auditCount(t *testing.T, action string) int64 {
	t.Helper()

	var n int64
	require.NoError(t, f.DB.Model(&entity.AuditLog{}).Where("action = ?", action).Count(&n).Error)
	return n
}

func countRows(t *testing.T, db *gorm.DB, model interface{}) int64 {
	t.Helper()

	var n int64
	require.NoError(t, db.Model(model).Count(&n).Error)
	return n
}
