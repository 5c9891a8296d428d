package usecase

import (
	"context"
	"time"

	"content-admin/internal/delivery/dto"
	"content-admin/internal/domain/entity"
	"content-admin/internal/domain/repository"
	"content-admin/internal/infrastructure/metrics"
	"content-admin/internal/service"
	"content-admin/pkg/apperror"
	"content-admin/pkg/jwt"
	"content-admin/pkg/password"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type AuthUsecase interface {
	AdminLogin(ctx context.Context, req *dto.AdminLoginRequest) (*dto.TokenResponse, error)
	AdminLogout(ctx context.Context, access *jwt.Claims, req *dto.LogoutRequest) error
	RefreshToken(ctx context.Context, group string, req *dto.RefreshTokenRequest) (*dto.AccessTokenResponse, error)
	ChangePassword(ctx context.Context, identityID uint, req *dto.ChangePasswordRequest) error
}

type authUsecase struct {
	db               *gorm.DB
	log              *logrus.Logger
	identityRepo     repository.IdentityRepository
	adminProfileRepo repository.AdminProfileRepository
	jwtService       *jwt.JWTService
	blacklist        service.TokenBlacklist
	auditService     service.AuditService
	policy           *password.Policy
	metrics          *metrics.Metrics
}

func NewAuthUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	identityRepo repository.IdentityRepository,
	adminProfileRepo repository.AdminProfileRepository,
	jwtService *jwt.JWTService,
	blacklist service.TokenBlacklist,
	auditService service.AuditService,
	policy *password.Policy,
	m *metrics.Metrics,
) AuthUsecase {
	return &authUsecase{
		db:               db,
		log:              log,
		identityRepo:     identityRepo,
		adminProfileRepo: adminProfileRepo,
		jwtService:       jwtService,
		blacklist:        blacklist,
		auditService:     auditService,
		policy:           policy,
		metrics:          m,
	}
}

func (u *authUsecase) AdminLogin(ctx context.Context, req *dto.AdminLoginRequest) (*dto.TokenResponse, error) {
	db := u.db.WithContext(ctx)

	profile, err := u.adminProfileRepo.FindByEmail(db, req.Email)
	if err != nil {
		u.log.Warnf("Failed to find admin profile by email: %+v", err)
		return nil, internalError(err)
	}
	if profile == nil {
		u.countLogin("not_found")
		return nil, ErrAdminNotFound
	}

	identity, err := u.identityRepo.FindByID(db, profile.IdentityID)
	if err != nil {
		u.log.Warnf("Failed to find identity: %+v", err)
		return nil, internalError(err)
	}
	if identity == nil || !password.Matches(identity.Password, req.Password) {
		u.countLogin("invalid_credentials")
		return nil, ErrInvalidCredentials
	}
	if !identity.IsActive || !profile.IsActive {
		u.countLogin("inactive")
		return nil, ErrAccountInactive
	}

	pair, err := u.jwtService.GeneratePair(subjectOf(identity))
	if err != nil {
		u.log.Warnf("Failed to generate tokens: %+v", err)
		return nil, internalError(err)
	}

	tx := db.Begin()
	defer tx.Rollback()

	if err := u.identityRepo.UpdateLastLogin(tx, identity.ID, time.Now()); err != nil {
		u.log.Warnf("Failed to update last login: %+v", err)
		return nil, internalError(err)
	}

	if err := u.auditService.LogAction(ctx, tx, &identity.ID, entity.AuditActionAdminLogin, entity.JSON{"email": profile.Email}); err != nil {
		return nil, internalError(err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, internalError(err)
	}

	u.countLogin("success")
	return &dto.TokenResponse{Access: pair.Access, Refresh: pair.Refresh}, nil
}

func (u *authUsecase) AdminLogout(ctx context.Context, access *jwt.Claims, req *dto.LogoutRequest) error {
	claims, err := u.jwtService.ValidateTyped(req.Refresh, jwt.RefreshToken)
	if err != nil {
		return apperror.Field("refresh", "Token is invalid or expired")
	}
	if access != nil && claims.IdentityID != access.IdentityID {
		return apperror.Field("refresh", "Token does not belong to the current user")
	}

	added, err := u.blacklist.Add(ctx, claims.TokenID(), claims.Remaining())
	if err != nil {
		u.log.Warnf("Failed to blacklist refresh token: %+v", err)
		return apperror.Unavailable("token store unavailable", err)
	}
	if !added {
		return apperror.Field("refresh", "Token is blacklisted")
	}

	// The access token used for this call dies with the session.
	if access != nil {
		if _, err := u.blacklist.Add(ctx, access.TokenID(), access.Remaining()); err != nil {
			u.log.Warnf("Failed to blacklist access token: %+v", err)
		}
	}

	if err := u.auditService.LogAction(ctx, u.db.WithContext(ctx), &claims.IdentityID, entity.AuditActionAdminLogout, nil); err != nil {
		u.log.Warnf("Failed to record logout: %+v", err)
	}

	return nil
}

func (u *authUsecase) RefreshToken(ctx context.Context, group string, req *dto.RefreshTokenRequest) (*dto.AccessTokenResponse, error) {
	claims, err := u.jwtService.ValidateTyped(req.Refresh, jwt.RefreshToken)
	if err != nil {
		return nil, apperror.Field("refresh", "Token is invalid or expired")
	}
	if claims.Group != group {
		return nil, ErrTokenWrongGroup
	}

	revoked, err := u.blacklist.Contains(ctx, claims.TokenID())
	if err != nil {
		u.log.Warnf("Failed to check token blacklist: %+v", err)
		return nil, apperror.Unavailable("token store unavailable", err)
	}
	if revoked {
		return nil, ErrTokenBlacklisted
	}

	identity, err := u.identityRepo.FindByID(u.db.WithContext(ctx), claims.IdentityID)
	if err != nil {
		u.log.Warnf("Failed to find identity: %+v", err)
		return nil, internalError(err)
	}
	if identity == nil || !identity.IsActive {
		return nil, ErrAccountInactive
	}

	access, _, err := u.jwtService.GenerateAccessToken(subjectOf(identity))
	if err != nil {
		u.log.Warnf("Failed to generate access token: %+v", err)
		return nil, internalError(err)
	}

	return &dto.AccessTokenResponse{Access: access}, nil
}

func (u *authUsecase) ChangePassword(ctx context.Context, identityID uint, req *dto.ChangePasswordRequest) error {
	db := u.db.WithContext(ctx)

	identity, err := u.identityRepo.FindByID(db, identityID)
	if err != nil {
		u.log.Warnf("Failed to find identity: %+v", err)
		return internalError(err)
	}
	if identity == nil {
		return ErrIdentityNotFound
	}

	fields := apperror.Fields{}
	if !password.Matches(identity.Password, req.CurrentPassword) {
		fields.Add("current_password", "Current password is incorrect.")
	}
	if req.NewPassword != req.ConfirmPassword {
		fields.Add("confirm_password", "The two password fields didn't match.")
	}
	fields.AddAll("new_password", u.policy.Check(req.NewPassword, attributesOf(identity)))
	if err := fields.Err(); err != nil {
		return err
	}

	hash, err := password.Hash(req.NewPassword)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return internalError(err)
	}

	tx := db.Begin()
	defer tx.Rollback()

	if err := u.identityRepo.UpdatePassword(tx, identity.ID, hash); err != nil {
		u.log.Warnf("Failed to update password: %+v", err)
		return internalError(err)
	}

	if err := u.auditService.LogAction(ctx, tx, &identity.ID, entity.AuditActionPasswordChange, nil); err != nil {
		return internalError(err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return internalError(err)
	}

	return nil
}

func (u *authUsecase) countLogin(result string) {
	if u.metrics != nil {
		u.metrics.LoginsTotal.WithLabelValues(string(entity.IdentityKindAdmin), result).Inc()
	}
}

func subjectOf(identity *entity.Identity) jwt.Subject {
	return jwt.Subject{
		IdentityID: identity.ID,
		Kind:       string(identity.Kind),
		Group:      identity.Group(),
	}
}

// attributesOf lists the profile values a new password must not resemble.
func attributesOf(identity *entity.Identity) password.Attributes {
	attrs := password.Attributes{}
	switch {
	case identity.AdminProfile != nil:
		p := identity.AdminProfile
		attrs["first_name"] = p.FirstName
		attrs["last_name"] = p.LastName
		attrs["email"] = p.Email
		attrs["phone_no"] = p.PhoneNo
	case identity.MobileProfile != nil:
		p := identity.MobileProfile
		attrs["first_name"] = p.FirstName
		attrs["last_name"] = p.LastName
		attrs["email"] = p.EmailValue()
		attrs["phone_no"] = p.PhoneNo
	}
	return attrs
}
