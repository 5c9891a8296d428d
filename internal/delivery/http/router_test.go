package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"content-admin/config"
	deliveryHttp "content-admin/internal/delivery/http"
	"content-admin/internal/delivery/http/handler"
	"content-admin/internal/delivery/http/middleware"
	"content-admin/internal/domain/entity"
	"content-admin/internal/repository"
	"content-admin/internal/service"
	"content-admin/internal/testutil"
	"content-admin/internal/usecase"
	"content-admin/pkg/jwt"
	"content-admin/pkg/password"
	"content-admin/pkg/phone"
	"content-admin/pkg/validator"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const adminPassword = "Str0ng-Passw0rd!"

type server struct {
	env     *testutil.Env
	handler http.Handler
}

func newServer(t *testing.T, throttle deliveryHttp.Throttle, checks map[string]deliveryHttp.HealthCheck) *server {
	t.Helper()

	env := testutil.NewEnv(t)
	db, log := env.DB, env.Log

	jwtService := jwt.NewJWTService(config.JWTConfig{Secret: "test-secret", AccessExpiry: 5 * time.Minute, RefreshExpiry: time.Hour})
	blacklist := service.NewTokenBlacklist(env.Redis)
	policy := password.NewPolicy(password.MinimumLength(8))
	phones := phone.NewNormalizer("IN")
	v := validator.NewValidator()

	identityRepo := repository.NewIdentityRepository()
	adminProfileRepo := repository.NewAdminProfileRepository()
	mobileProfileRepo := repository.NewMobileProfileRepository()
	auditLogRepo := repository.NewAuditLogRepository()
	auditService := service.NewAuditService(log, auditLogRepo)
	dispatcher := service.NewOTPDispatcher(nil, "", log)

	authUsecase := usecase.NewAuthUsecase(db, log, identityRepo, adminProfileRepo, jwtService, blacklist, auditService, policy, env.Metrics)
	mobileAuthUsecase := usecase.NewMobileAuthUsecase(db, log, identityRepo, mobileProfileRepo, jwtService, dispatcher, env.Files, policy, phones,
		config.OTPConfig{TTL: 5 * time.Minute, ExposeInResponse: true}, env.Metrics)

	handlers := deliveryHttp.Handlers{
		Auth:         handler.NewAuthHandler(authUsecase, v),
		Account:      handler.NewAccountHandler(usecase.NewAccountUsecase(db, log, adminProfileRepo, auditService, env.Files, phones), v, 0),
		Mobile:       handler.NewMobileHandler(mobileAuthUsecase, authUsecase, v, 0),
		MobileUser:   handler.NewMobileUserHandler(usecase.NewMobileUserUsecase(db, log, identityRepo, mobileProfileRepo, auditService, env.Files, policy, phones), v, "", 0),
		Professional: handler.NewProfessionalHandler(usecase.NewProfessionalUsecase(db, log, repository.NewProfessionalRepository(), repository.NewProfessionalReviewRepository(), auditService, env.Files, phones), v, "", 0),
		Book:         handler.NewBookHandler(usecase.NewBookUsecase(db, log, repository.NewBookRepository(), auditService, env.Files), v, "http://api.test", 0),
		Event:        handler.NewEventHandler(usecase.NewEventUsecase(db, log, repository.NewEventRepository(), auditService, env.Files), v, "", 0),
		Material:     handler.NewMaterialHandler(usecase.NewMaterialUsecase(db, log, repository.NewMaterialRepository(), auditService, env.Files), v, "", 0),
		AuditLog:     handler.NewAuditLogHandler(usecase.NewAuditLogUsecase(db, log, auditLogRepo), ""),
	}

	router := deliveryHttp.NewRouter(
		handlers,
		middleware.NewAuthMiddleware(jwtService, blacklist, log),
		middleware.NewCORSMiddleware(),
		middleware.NewObserveMiddleware(log, env.Metrics, nil),
		middleware.NewRateLimiter(env.Redis, log, env.Metrics, nil),
		throttle,
		env.Metrics.Handler(),
		checks,
	)
	router.ServeMedia("/media/", env.Store.FileSystem())

	hash, err := password.Hash(adminPassword)
	require.NoError(t, err)
	admin := entity.NewAdminIdentity(hash, &entity.AdminProfile{FirstName: "Site", Email: "admin@example.com"})
	admin.IsSuperuser = true
	require.NoError(t, identityRepo.Create(db, admin))

	return &server{env: env, handler: router.Setup()}
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   json.RawMessage `json:"error"`
}

// fields decodes the per-field messages of a validation failure.
func (e envelope) fields(t *testing.T) map[string][]string {
	t.Helper()

	var fields map[string][]string
	require.NoError(t, json.Unmarshal(e.Error, &fields))
	return fields
}

func (s *server) do(t *testing.T, r *http.Request) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, r)

	var body envelope
	if rec.Header().Get("Content-Type") == "application/json" {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	}
	return rec, body
}

func jsonRequest(method, target, token string, body interface{}) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	r := httptest.NewRequest(method, target, &buf)
	r.Header.Set("Content-Type", "application/json")
	if token != "" {
		r.Header.Set("Authorization", "Bearer "+token)
	}
	return r
}

func multipartRequest(t *testing.T, method, target, token string, fields map[string]string, files map[string][]byte) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	for field, content := range files {
		fw, err := mw.CreateFormFile(field, field+".png")
		require.NoError(t, err)
		_, err = fw.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	r := httptest.NewRequest(method, target, &buf)
	r.Header.Set("Content-Type", mw.FormDataContentType())
	if token != "" {
		r.Header.Set("Authorization", "Bearer "+token)
	}
	return r
}

func decodeData(t *testing.T, body envelope, dst interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(body.Data, dst))
}

func (s *server) adminToken(t *testing.T) string {
	t.Helper()

	rec, body := s.do(t, jsonRequest(http.MethodPost, "/api/v1/admin/login", "", map[string]string{
		"email":    "admin@example.com",
		"password": adminPassword,
	}))
	require.Equal(t, http.StatusOK, rec.Code)

	var tokens struct {
		Access string `json:"access"`
	}
	decodeData(t, body, &tokens)
	return tokens.Access
}

func TestMobileOTPFlow(t *testing.T) {
	s := newServer(t, deliveryHttp.Throttle{}, nil)

	rec, _ := s.do(t, jsonRequest(http.MethodPost, "/api/v1/mobile/getotp", "", map[string]string{"phone_no": "9999999999"}))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, _ = s.do(t, multipartRequest(t, http.MethodPost, "/api/v1/mobile/register", "", map[string]string{
		"first_name": "Asha",
		"phone_no":   "9999999999",
		"password":   adminPassword,
		"fcm_token":  "fcm",
	}, map[string][]byte{"image": testutil.PNG}))
	require.Equal(t, http.StatusCreated, rec.Code)

	rec, body := s.do(t, jsonRequest(http.MethodPost, "/api/v1/mobile/getotp", "", map[string]string{"phone_no": "9999999999"}))
	require.Equal(t, http.StatusOK, rec.Code)
	var issued struct {
		OTP int `json:"otp"`
	}
	decodeData(t, body, &issued)

	wrong := issued.OTP%9000 + 1000
	rec, body = s.do(t, jsonRequest(http.MethodPost, "/api/v1/mobile/validate_otp", "", map[string]interface{}{"phone_no": "9999999999", "otp": wrong}))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, []string{"Invalid otp"}, body.fields(t)["otp"])

	rec, body = s.do(t, jsonRequest(http.MethodPost, "/api/v1/mobile/validate_otp", "", map[string]interface{}{"phone_no": "9999999999", "otp": issued.OTP}))
	require.Equal(t, http.StatusOK, rec.Code)
	var tokens struct {
		Access  string `json:"access"`
		Refresh string `json:"refresh"`
	}
	decodeData(t, body, &tokens)

	rec, body = s.do(t, jsonRequest(http.MethodGet, "/api/v1/mobile/me", tokens.Access, nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var me struct {
		PhoneNo string `json:"phone_no"`
		Image   string `json:"image"`
	}
	decodeData(t, body, &me)
	assert.Equal(t, "+919999999999", me.PhoneNo)

	// Uploaded media is served back from the local store.
	rec, _ = s.do(t, httptest.NewRequest(http.MethodGet, me.Image, nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	// A mobile token cannot reach admin routes, and mobile refresh refuses admin tokens.
	rec, _ = s.do(t, jsonRequest(http.MethodGet, "/api/v1/admin/books", tokens.Access, nil))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, _ = s.do(t, jsonRequest(http.MethodPost, "/api/v1/admin/token/refresh", "", map[string]string{"refresh": tokens.Refresh}))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, _ = s.do(t, jsonRequest(http.MethodPost, "/api/v1/mobile/token/refresh", "", map[string]string{"refresh": tokens.Refresh}))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestOTPThrottle(t *testing.T) {
	s := newServer(t, deliveryHttp.Throttle{OTPPerMinute: 2}, nil)

	for i := 0; i < 2; i++ {
		rec, _ := s.do(t, jsonRequest(http.MethodPost, "/api/v1/mobile/getotp", "", map[string]string{"phone_no": "9999999999"}))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	}
	rec, _ := s.do(t, jsonRequest(http.MethodPost, "/api/v1/mobile/getotp", "", map[string]string{"phone_no": "9999999999"}))
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}

func TestAdminBooksCRUD(t *testing.T) {
	s := newServer(t, deliveryHttp.Throttle{}, nil)
	token := s.adminToken(t)

	rec, _ := s.do(t, jsonRequest(http.MethodGet, "/api/v1/admin/books", "", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, body := s.do(t, multipartRequest(t, http.MethodPost, "/api/v1/admin/books", token, map[string]string{
		"name":         "Domain Driven Design",
		"price":        "-5",
		"availability": "in_stock",
	}, nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, body.fields(t), "price")

	rec, body = s.do(t, multipartRequest(t, http.MethodPost, "/api/v1/admin/books", token, map[string]string{
		"name":         "Domain Driven Design",
		"price":        "not-a-number",
		"availability": "in_stock",
	}, nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, []string{"Enter a valid value."}, body.fields(t)["price"])

	var ids []uint
	for i := 0; i < 3; i++ {
		rec, body = s.do(t, multipartRequest(t, http.MethodPost, "/api/v1/admin/books", token, map[string]string{
			"name":         fmt.Sprintf("Book %d", i),
			"price":        "12.50",
			"availability": "in_stock",
		}, map[string][]byte{"image": testutil.PNG}))
		require.Equal(t, http.StatusCreated, rec.Code)
		var created struct {
			ID uint `json:"id"`
		}
		decodeData(t, body, &created)
		ids = append(ids, created.ID)
	}

	rec, body = s.do(t, jsonRequest(http.MethodGet, "/api/v1/admin/books?page=1&page_size=2", token, nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var page struct {
		Count int64   `json:"count"`
		Next  *string `json:"next"`
	}
	decodeData(t, body, &page)
	assert.Equal(t, int64(3), page.Count)
	require.NotNil(t, page.Next)
	assert.Equal(t, "http://api.test/api/v1/admin/books?page=2&page_size=2", *page.Next)

	rec, _ = s.do(t, jsonRequest(http.MethodGet, fmt.Sprintf("/api/v1/admin/books/%d", ids[0]), token, nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = s.do(t, jsonRequest(http.MethodDelete, "/api/v1/admin/books", token, map[string]interface{}{"ids": []uint{}}))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, body = s.do(t, jsonRequest(http.MethodDelete, "/api/v1/admin/books", token, map[string]interface{}{"ids": []uint{ids[0], ids[1], 9999}}))
	require.Equal(t, http.StatusOK, rec.Code)
	var deleted struct {
		Deleted int64 `json:"deleted"`
	}
	decodeData(t, body, &deleted)
	assert.Equal(t, int64(2), deleted.Deleted)

	rec, _ = s.do(t, jsonRequest(http.MethodDelete, fmt.Sprintf("/api/v1/admin/books/%d", ids[0]), token, nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, _ = s.do(t, jsonRequest(http.MethodDelete, fmt.Sprintf("/api/v1/admin/books/%d", ids[2]), token, nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAdminLogout(t *testing.T) {
	s := newServer(t, deliveryHttp.Throttle{}, nil)

	rec, body := s.do(t, jsonRequest(http.MethodPost, "/api/v1/admin/login", "", map[string]string{"email": "admin@example.com", "password": adminPassword}))
	require.Equal(t, http.StatusOK, rec.Code)
	var tokens struct {
		Access  string `json:"access"`
		Refresh string `json:"refresh"`
	}
	decodeData(t, body, &tokens)

	rec, _ = s.do(t, jsonRequest(http.MethodPost, "/api/v1/admin/logout", tokens.Access, map[string]string{"refresh": tokens.Refresh}))
	require.Equal(t, http.StatusOK, rec.Code)

	rec, _ = s.do(t, jsonRequest(http.MethodGet, "/api/v1/admin/account", tokens.Access, nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, _ = s.do(t, jsonRequest(http.MethodPost, "/api/v1/admin/token/refresh", "", map[string]string{"refresh": tokens.Refresh}))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHealth(t *testing.T) {
	healthy := newServer(t, deliveryHttp.Throttle{}, map[string]deliveryHttp.HealthCheck{
		"database": func(ctx context.Context) error { return nil },
	})
	rec, _ := healthy.do(t, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	down := newServer(t, deliveryHttp.Throttle{}, map[string]deliveryHttp.HealthCheck{
		"redis": func(ctx context.Context) error { return errors.New("connection refused") },
	})
	rec, _ = down.do(t, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	rec, _ = down.do(t, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequestBodyLimit(t *testing.T) {
	s := newServer(t, deliveryHttp.Throttle{}, nil)

	rec, body := s.do(t, jsonRequest(http.MethodPost, "/api/v1/admin/login", "", map[string]string{
		"email":    strings.Repeat("a", middleware.DefaultJSONBodyLimit),
		"password": adminPassword,
	}))
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Equal(t, "Request body too large.", body.Message)
}
