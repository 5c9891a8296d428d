package handler

import (
	"net/http"

	"content-admin/internal/delivery/dto"
	"content-admin/internal/domain/entity"
	"content-admin/internal/usecase"
	"content-admin/pkg/response"
	"content-admin/pkg/validator"
)

type AuthHandler struct {
	authUsecase usecase.AuthUsecase
	validator   *validator.CustomValidator
}

func NewAuthHandler(authUsecase usecase.AuthUsecase, validator *validator.CustomValidator) *AuthHandler {
	return &AuthHandler{
		authUsecase: authUsecase,
		validator:   validator,
	}
}

// Login handles admin login
// @Summary Admin login
// @Description Login with email and password, returns an access/refresh pair
// @Tags Admin Auth
// @Accept json
// @Produce json
// @Param request body dto.AdminLoginRequest true "Login Request"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.AdminLoginRequest
	if err := decodeRequest(r, &req, 0); err != nil {
		response.FromError(w, err)
		return
	}

	if err := h.validator.ValidateRequest(&req); err != nil {
		response.FromError(w, err)
		return
	}

	tokens, err := h.authUsecase.AdminLogin(r.Context(), &req)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Login successful", tokens)
}

// Logout blacklists the refresh token and the access token of the current session
// @Summary Admin logout
// @Tags Admin Auth
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.LogoutRequest true "Logout Request"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /admin/logout [post]
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	claims, err := currentClaims(r)
	if err != nil {
		response.FromError(w, err)
		return
	}

	var req dto.LogoutRequest
	if err := decodeRequest(r, &req, 0); err != nil {
		response.FromError(w, err)
		return
	}

	if err := h.validator.ValidateRequest(&req); err != nil {
		response.FromError(w, err)
		return
	}

	if err := h.authUsecase.AdminLogout(r.Context(), claims, &req); err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Logout successful", nil)
}

// RefreshToken handles admin token refresh
// @Summary Refresh admin access token
// @Tags Admin Auth
// @Accept json
// @Produce json
// @Param request body dto.RefreshTokenRequest true "Refresh Token Request"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /admin/token/refresh [post]
func (h *AuthHandler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	refreshFor(w, r, h.authUsecase, h.validator, entity.GroupAdmin)
}

// ChangePassword handles password change for the logged in admin
// @Summary Change password
// @Tags Admin Security
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.ChangePasswordRequest true "Change Password Request"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /admin/security/change-password [post]
func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	claims, err := currentClaims(r)
	if err != nil {
		response.FromError(w, err)
		return
	}

	var req dto.ChangePasswordRequest
	if err := decodeRequest(r, &req, 0); err != nil {
		response.FromError(w, err)
		return
	}

	if err := h.validator.ValidateRequest(&req); err != nil {
		response.FromError(w, err)
		return
	}

	if err := h.authUsecase.ChangePassword(r.Context(), claims.IdentityID, &req); err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Password updated successfully", nil)
}

func refreshFor(w http.ResponseWriter, r *http.Request, authUsecase usecase.AuthUsecase, v *validator.CustomValidator, group string) {
	var req dto.RefreshTokenRequest
	if err := decodeRequest(r, &req, 0); err != nil {
		response.FromError(w, err)
		return
	}

	if err := v.ValidateRequest(&req); err != nil {
		response.FromError(w, err)
		return
	}

	tokens, err := authUsecase.RefreshToken(r.Context(), group, &req)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Token refreshed successfully", tokens)
}
