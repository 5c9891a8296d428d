package handler

import (
	"net/http"

	"content-admin/internal/delivery/dto"
	"content-admin/internal/domain/entity"
	"content-admin/internal/usecase"
	"content-admin/pkg/response"
	"content-admin/pkg/validator"
)

type MobileHandler struct {
	mobileAuthUsecase usecase.MobileAuthUsecase
	authUsecase       usecase.AuthUsecase
	validator         *validator.CustomValidator
	maxMemory         int64
}

func NewMobileHandler(
	mobileAuthUsecase usecase.MobileAuthUsecase,
	authUsecase usecase.AuthUsecase,
	validator *validator.CustomValidator,
	maxMemory int64,
) *MobileHandler {
	return &MobileHandler{
		mobileAuthUsecase: mobileAuthUsecase,
		authUsecase:       authUsecase,
		validator:         validator,
		maxMemory:         maxMemory,
	}
}

// Register handles mobile self registration
// @Summary Register a mobile user
// @Tags Mobile
// @Accept multipart/form-data
// @Produce json
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /mobile/register [post]
func (h *MobileHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.MobileRegisterRequest
	if err := decodeRequest(r, &req, h.maxMemory); err != nil {
		response.FromError(w, err)
		return
	}

	var err error
	if req.Image, err = formFile(r, "image"); err != nil {
		response.FromError(w, err)
		return
	}
	defer closeUploads(req.Image)

	if err := h.validator.ValidateRequest(&req); err != nil {
		response.FromError(w, err)
		return
	}

	profile, err := h.mobileAuthUsecase.Register(r.Context(), &req)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, http.StatusCreated, "User registered successfully", profile)
}

// GetOTP issues a one-time code for the phone number
// @Summary Request OTP
// @Tags Mobile
// @Accept json
// @Produce json
// @Param request body dto.RequestOTPRequest true "Request OTP"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 429 {object} response.Response
// @Router /mobile/getotp [post]
func (h *MobileHandler) GetOTP(w http.ResponseWriter, r *http.Request) {
	var req dto.RequestOTPRequest
	if err := decodeRequest(r, &req, h.maxMemory); err != nil {
		response.FromError(w, err)
		return
	}

	if err := h.validator.ValidateRequest(&req); err != nil {
		response.FromError(w, err)
		return
	}

	otp, err := h.mobileAuthUsecase.RequestOTP(r.Context(), &req)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "OTP sent successfully", otp)
}

// ValidateOTP exchanges a valid code for a token pair
// @Summary Validate OTP
// @Tags Mobile
// @Accept json
// @Produce json
// @Param request body dto.VerifyOTPRequest true "Validate OTP"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /mobile/validate_otp [post]
func (h *MobileHandler) ValidateOTP(w http.ResponseWriter, r *http.Request) {
	var req dto.VerifyOTPRequest
	if err := decodeRequest(r, &req, h.maxMemory); err != nil {
		response.FromError(w, err)
		return
	}

	if err := h.validator.ValidateRequest(&req); err != nil {
		response.FromError(w, err)
		return
	}

	tokens, err := h.mobileAuthUsecase.VerifyOTP(r.Context(), &req)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Login successful", tokens)
}

func (h *MobileHandler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	refreshFor(w, r, h.authUsecase, h.validator, entity.GroupUser)
}

func (h *MobileHandler) Me(w http.ResponseWriter, r *http.Request) {
	claims, err := currentClaims(r)
	if err != nil {
		response.FromError(w, err)
		return
	}

	profile, err := h.mobileAuthUsecase.Me(r.Context(), claims.IdentityID)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Profile retrieved successfully", profile)
}
