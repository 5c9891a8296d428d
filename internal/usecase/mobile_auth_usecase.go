package usecase

import (
	"context"
	"crypto/rand"
	"math/big"
	"strconv"
	"strings"
	"time"

	"content-admin/config"
	"content-admin/internal/converter"
	"content-admin/internal/delivery/dto"
	"content-admin/internal/domain/entity"
	"content-admin/internal/domain/repository"
	"content-admin/internal/infrastructure/metrics"
	"content-admin/internal/service"
	"content-admin/pkg/apperror"
	"content-admin/pkg/jwt"
	"content-admin/pkg/password"
	"content-admin/pkg/phone"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const (
	otpMin = 1000
	otpMax = 9999
)

type MobileAuthUsecase interface {
	Register(ctx context.Context, req *dto.MobileRegisterRequest) (*dto.MobileProfileResponse, error)
	RequestOTP(ctx context.Context, req *dto.RequestOTPRequest) (*dto.OTPResponse, error)
	VerifyOTP(ctx context.Context, req *dto.VerifyOTPRequest) (*dto.TokenResponse, error)
	Me(ctx context.Context, identityID uint) (*dto.MobileProfileResponse, error)
}

type mobileAuthUsecase struct {
	db                *gorm.DB
	log               *logrus.Logger
	identityRepo      repository.IdentityRepository
	mobileProfileRepo repository.MobileProfileRepository
	registrar         *mobileRegistrar
	jwtService        *jwt.JWTService
	dispatcher        service.OTPDispatcher
	fileService       service.FileService
	phones            *phone.Normalizer
	otpConfig         config.OTPConfig
	metrics           *metrics.Metrics
}

func NewMobileAuthUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	identityRepo repository.IdentityRepository,
	mobileProfileRepo repository.MobileProfileRepository,
	jwtService *jwt.JWTService,
	dispatcher service.OTPDispatcher,
	fileService service.FileService,
	policy *password.Policy,
	phones *phone.Normalizer,
	otpConfig config.OTPConfig,
	m *metrics.Metrics,
) MobileAuthUsecase {
	return &mobileAuthUsecase{
		db:                db,
		log:               log,
		identityRepo:      identityRepo,
		mobileProfileRepo: mobileProfileRepo,
		registrar:         newMobileRegistrar(db, log, identityRepo, mobileProfileRepo, fileService, policy, phones),
		jwtService:        jwtService,
		dispatcher:        dispatcher,
		fileService:       fileService,
		phones:            phones,
		otpConfig:         otpConfig,
		metrics:           m,
	}
}

func (u *mobileAuthUsecase) Register(ctx context.Context, req *dto.MobileRegisterRequest) (*dto.MobileProfileResponse, error) {
	identity, err := u.registrar.register(ctx, req, nil)
	if err != nil {
		return nil, err
	}
	return converter.MobileProfileToResponse(identity.MobileProfile, u.fileService.URL), nil
}

func (u *mobileAuthUsecase) RequestOTP(ctx context.Context, req *dto.RequestOTPRequest) (*dto.OTPResponse, error) {
	phoneNo, err := u.phones.Normalize(req.PhoneNo)
	if err != nil {
		return nil, apperror.Field("phone_no", phone.InvalidMessage)
	}

	db := u.db.WithContext(ctx)
	profile, err := u.mobileProfileRepo.FindByPhone(db, phoneNo)
	if err != nil {
		u.log.Warnf("Failed to find mobile profile by phone: %+v", err)
		return nil, internalError(err)
	}
	if profile == nil || !profile.IsActive {
		return nil, ErrMobileUserNotFound
	}

	code, err := generateOTP()
	if err != nil {
		u.log.Warnf("Failed to generate otp: %+v", err)
		return nil, internalError(err)
	}
	codeStr := strconv.Itoa(code)
	expiresAt := time.Now().Add(u.otpConfig.TTL)

	if err := u.mobileProfileRepo.SetOTP(db, profile.ID, &codeStr, &expiresAt); err != nil {
		u.log.Warnf("Failed to store otp: %+v", err)
		return nil, internalError(err)
	}

	event := service.OTPRequested{PhoneNo: phoneNo, OTP: codeStr, ExpiresAt: expiresAt}
	if err := u.dispatcher.Dispatch(ctx, event); err != nil {
		u.log.Warnf("Failed to dispatch otp: %+v", err)
		if !u.otpConfig.ExposeInResponse {
			return nil, apperror.Unavailable("otp delivery unavailable", err)
		}
	}

	if u.metrics != nil {
		u.metrics.OTPIssuedTotal.Inc()
	}

	resp := &dto.OTPResponse{ExpiresAt: expiresAt}
	if u.otpConfig.ExposeInResponse {
		resp.OTP = &code
	}
	return resp, nil
}

func (u *mobileAuthUsecase) VerifyOTP(ctx context.Context, req *dto.VerifyOTPRequest) (*dto.TokenResponse, error) {
	if req.OTP < otpMin || req.OTP > otpMax {
		return nil, apperror.Field("otp", "OTP must be exactly 4 digits")
	}

	phoneNo, err := u.phones.Normalize(req.PhoneNo)
	if err != nil {
		return nil, apperror.Field("phone_no", phone.InvalidMessage)
	}

	db := u.db.WithContext(ctx)
	profile, err := u.mobileProfileRepo.FindByPhone(db, phoneNo)
	if err != nil {
		u.log.Warnf("Failed to find mobile profile by phone: %+v", err)
		return nil, internalError(err)
	}
	if profile == nil || !profile.IsActive {
		u.countVerify("unknown_user")
		return nil, apperror.Field("phone_no", "User not found")
	}

	code := strconv.Itoa(req.OTP)
	if profile.OTP != nil && *profile.OTP == code && !profile.OTPMatches(code, time.Now()) {
		u.countVerify("expired")
		return nil, apperror.Field("otp", "OTP has expired")
	}
	if !profile.OTPMatches(code, time.Now()) {
		u.countVerify("invalid")
		return nil, apperror.Field("otp", "Invalid otp")
	}

	identity, err := u.identityRepo.FindByID(db, profile.IdentityID)
	if err != nil {
		u.log.Warnf("Failed to find identity: %+v", err)
		return nil, internalError(err)
	}
	if identity == nil || !identity.IsActive {
		return nil, apperror.Field("phone_no", "User account is disabled")
	}

	tx := db.Begin()
	defer tx.Rollback()

	// Only one concurrent verification can clear the code.
	consumed, err := u.mobileProfileRepo.ConsumeOTP(tx, profile.ID, code)
	if err != nil {
		u.log.Warnf("Failed to clear otp: %+v", err)
		return nil, internalError(err)
	}
	if !consumed {
		u.countVerify("invalid")
		return nil, apperror.Field("otp", "Invalid otp")
	}

	if err := u.identityRepo.UpdateLastLogin(tx, identity.ID, time.Now()); err != nil {
		u.log.Warnf("Failed to update last login: %+v", err)
		return nil, internalError(err)
	}

	pair, err := u.jwtService.GeneratePair(subjectOf(identity))
	if err != nil {
		u.log.Warnf("Failed to generate tokens: %+v", err)
		return nil, internalError(err)
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, internalError(err)
	}

	u.countVerify("success")
	return &dto.TokenResponse{Access: pair.Access, Refresh: pair.Refresh}, nil
}

func (u *mobileAuthUsecase) Me(ctx context.Context, identityID uint) (*dto.MobileProfileResponse, error) {
	profile, err := u.mobileProfileRepo.FindByIdentityID(u.db.WithContext(ctx), identityID)
	if err != nil {
		u.log.Warnf("Failed to find mobile profile: %+v", err)
		return nil, internalError(err)
	}
	if profile == nil {
		return nil, ErrMobileUserNotFound
	}
	return converter.MobileProfileToResponse(profile, u.fileService.URL), nil
}

func (u *mobileAuthUsecase) countVerify(result string) {
	if u.metrics != nil {
		u.metrics.OTPVerifiedTotal.WithLabelValues(result).Inc()
	}
}

// generateOTP returns a uniformly random code in [1000, 9999].
func generateOTP() (int, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(otpMax-otpMin+1))
	if err != nil {
		return 0, err
	}
	return otpMin + int(n.Int64()), nil
}

// mobileRegistrar creates an identity and its mobile profile in one transaction.
// It backs both self registration and admin-side creation.
type mobileRegistrar struct {
	db                *gorm.DB
	log               *logrus.Logger
	identityRepo      repository.IdentityRepository
	mobileProfileRepo repository.MobileProfileRepository
	fileService       service.FileService
	policy            *password.Policy
	phones            *phone.Normalizer
}

func newMobileRegistrar(
	db *gorm.DB,
	log *logrus.Logger,
	identityRepo repository.IdentityRepository,
	mobileProfileRepo repository.MobileProfileRepository,
	fileService service.FileService,
	policy *password.Policy,
	phones *phone.Normalizer,
) *mobileRegistrar {
	return &mobileRegistrar{
		db:                db,
		log:               log,
		identityRepo:      identityRepo,
		mobileProfileRepo: mobileProfileRepo,
		fileService:       fileService,
		policy:            policy,
		phones:            phones,
	}
}

// register runs afterCreate inside the same transaction, e.g. for audit rows.
func (r *mobileRegistrar) register(ctx context.Context, req *dto.MobileRegisterRequest, afterCreate func(tx *gorm.DB, identity *entity.Identity) error) (*entity.Identity, error) {
	db := r.db.WithContext(ctx)
	fields := apperror.Fields{}

	phoneNo, err := r.phones.Normalize(req.PhoneNo)
	if err != nil {
		fields.Add("phone_no", phone.InvalidMessage)
	} else {
		taken, err := r.mobileProfileRepo.Taken(db, "phone_no", phoneNo, 0)
		if err != nil {
			r.log.Warnf("Failed to check phone uniqueness: %+v", err)
			return nil, internalError(err)
		}
		if taken {
			fields.Add("phone_no", alreadyExists("mobile user", "phone_no"))
		}
	}

	var email *string
	if e := strings.TrimSpace(req.Email); e != "" {
		email = &e
		taken, err := r.mobileProfileRepo.Taken(db, "email", e, 0)
		if err != nil {
			r.log.Warnf("Failed to check email uniqueness: %+v", err)
			return nil, internalError(err)
		}
		if taken {
			fields.Add("email", alreadyExists("mobile user", "email"))
		}
	}

	fields.AddAll("password", r.policy.Check(req.Password, password.Attributes{
		"first_name": req.FirstName,
		"last_name":  req.LastName,
		"email":      req.Email,
		"phone_no":   phoneNo,
	}))
	if err := fields.Err(); err != nil {
		return nil, err
	}

	hash, err := password.Hash(req.Password)
	if err != nil {
		r.log.Warnf("Failed to hash password: %+v", err)
		return nil, internalError(err)
	}

	files := r.fileService.NewChangeSet()
	defer files.Discard(ctx)

	image, err := files.Upload(ctx, "mobile_profiles", service.FileKindImage, req.Image)
	if err != nil {
		return nil, err
	}

	identity := entity.NewMobileIdentity(hash, &entity.MobileProfile{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     email,
		PhoneNo:   phoneNo,
		Image:     image,
		FCMToken:  req.FCMToken,
	})

	tx := db.Begin()
	defer tx.Rollback()

	if err := r.identityRepo.Create(tx, identity); err != nil {
		if fieldErr := uniqueViolation(err, "mobile user", "phone_no", "email"); fieldErr != nil {
			return nil, fieldErr
		}
		r.log.Warnf("Failed to create mobile identity: %+v", err)
		return nil, internalError(err)
	}

	if afterCreate != nil {
		if err := afterCreate(tx, identity); err != nil {
			return nil, internalError(err)
		}
	}

	if err := tx.Commit().Error; err != nil {
		r.log.Warnf("Failed commit transaction: %+v", err)
		return nil, internalError(err)
	}
	files.Commit(ctx)

	return identity, nil
}
