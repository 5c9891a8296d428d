package handler

import (
	"net/http"

	"content-admin/internal/delivery/dto"
	"content-admin/internal/usecase"
	"content-admin/pkg/response"
	"content-admin/pkg/validator"
)

type AccountHandler struct {
	accountUsecase usecase.AccountUsecase
	validator      *validator.CustomValidator
	maxMemory      int64
}

func NewAccountHandler(accountUsecase usecase.AccountUsecase, validator *validator.CustomValidator, maxMemory int64) *AccountHandler {
	return &AccountHandler{
		accountUsecase: accountUsecase,
		validator:      validator,
		maxMemory:      maxMemory,
	}
}

// Get returns the logged in admin's profile
// @Summary Get admin account
// @Tags Admin Account
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /admin/account [get]
func (h *AccountHandler) Get(w http.ResponseWriter, r *http.Request) {
	claims, err := currentClaims(r)
	if err != nil {
		response.FromError(w, err)
		return
	}

	account, err := h.accountUsecase.GetProfile(r.Context(), claims.IdentityID)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Account retrieved successfully", account)
}

// Update replaces the admin's profile fields
// @Summary Update admin account
// @Tags Admin Account
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.UpdateAccountRequest true "Update Account Request"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /admin/account [put]
func (h *AccountHandler) Update(w http.ResponseWriter, r *http.Request) {
	claims, err := currentClaims(r)
	if err != nil {
		response.FromError(w, err)
		return
	}

	var req dto.UpdateAccountRequest
	if err := decodeRequest(r, &req, h.maxMemory); err != nil {
		response.FromError(w, err)
		return
	}

	if err := h.validator.ValidateRequest(&req); err != nil {
		response.FromError(w, err)
		return
	}

	account, err := h.accountUsecase.UpdateProfile(r.Context(), claims.IdentityID, &req)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Account updated successfully", account)
}

// UpdatePhoto replaces the admin's profile image
// @Summary Update admin photo
// @Tags Admin Account
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param image formData file true "Profile image"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /admin/account [patch]
func (h *AccountHandler) UpdatePhoto(w http.ResponseWriter, r *http.Request) {
	claims, err := currentClaims(r)
	if err != nil {
		response.FromError(w, err)
		return
	}

	var req dto.PhotoRequest
	if err := decodeRequest(r, &req, h.maxMemory); err != nil {
		response.FromError(w, err)
		return
	}
	if req.Image, err = formFile(r, "image"); err != nil {
		response.FromError(w, err)
		return
	}
	defer closeUploads(req.Image)

	account, err := h.accountUsecase.UpdatePhoto(r.Context(), claims.IdentityID, &req)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Photo updated successfully", account)
}
