package handler

import (
	"net/http"

	"content-admin/internal/delivery/dto"
	"content-admin/internal/usecase"
	"content-admin/pkg/response"
	"content-admin/pkg/validator"
)

type MobileUserHandler struct {
	mobileUserUsecase usecase.MobileUserUsecase
	validator         *validator.CustomValidator
	baseURL           string
	maxMemory         int64
}

func NewMobileUserHandler(mobileUserUsecase usecase.MobileUserUsecase, validator *validator.CustomValidator, baseURL string, maxMemory int64) *MobileUserHandler {
	return &MobileUserHandler{
		mobileUserUsecase: mobileUserUsecase,
		validator:         validator,
		baseURL:           baseURL,
		maxMemory:         maxMemory,
	}
}

// List handles listing mobile users
// @Summary List mobile users
// @Tags Mobile Users
// @Security BearerAuth
// @Produce json
// @Param status query string false "1 for active, 0 for inactive"
// @Param search query string false "Search over name, email and phone"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /admin/mobile-users [get]
func (h *MobileUserHandler) List(w http.ResponseWriter, r *http.Request) {
	q := listQuery(r)

	items, total, err := h.mobileUserUsecase.List(r.Context(), q)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Mobile users retrieved successfully", response.NewPage(r, h.baseURL, items, total, q.Page, q.PageSize))
}

func (h *MobileUserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		response.FromError(w, err)
		return
	}

	profile, err := h.mobileUserUsecase.GetByID(r.Context(), id)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Mobile user retrieved successfully", profile)
}

// Create registers a mobile user on behalf of an admin
// @Summary Create mobile user
// @Tags Mobile Users
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /admin/mobile-users [post]
func (h *MobileUserHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims, err := currentClaims(r)
	if err != nil {
		response.FromError(w, err)
		return
	}

	var req dto.MobileRegisterRequest
	if err := decodeRequest(r, &req, h.maxMemory); err != nil {
		response.FromError(w, err)
		return
	}

	if err := h.validator.ValidateRequest(&req); err != nil {
		response.FromError(w, err)
		return
	}

	if req.Image, err = formFile(r, "image"); err != nil {
		response.FromError(w, err)
		return
	}
	defer closeUploads(req.Image)

	profile, err := h.mobileUserUsecase.Create(r.Context(), claims.IdentityID, &req)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, http.StatusCreated, "Mobile user created successfully", profile)
}

func (h *MobileUserHandler) Update(w http.ResponseWriter, r *http.Request) {
	claims, err := currentClaims(r)
	if err != nil {
		response.FromError(w, err)
		return
	}

	id, err := pathID(r)
	if err != nil {
		response.FromError(w, err)
		return
	}

	var req dto.UpdateMobileUserRequest
	if err := decodeRequest(r, &req, h.maxMemory); err != nil {
		response.FromError(w, err)
		return
	}

	if err := h.validator.ValidateRequest(&req); err != nil {
		response.FromError(w, err)
		return
	}

	profile, err := h.mobileUserUsecase.Update(r.Context(), claims.IdentityID, id, &req)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Mobile user updated successfully", profile)
}

func (h *MobileUserHandler) UpdatePhoto(w http.ResponseWriter, r *http.Request) {
	claims, err := currentClaims(r)
	if err != nil {
		response.FromError(w, err)
		return
	}

	id, err := pathID(r)
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

	profile, err := h.mobileUserUsecase.UpdatePhoto(r.Context(), claims.IdentityID, id, &req)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Photo updated successfully", profile)
}

// Delete deactivates the mobile user; the row is kept.
func (h *MobileUserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	claims, err := currentClaims(r)
	if err != nil {
		response.FromError(w, err)
		return
	}

	id, err := pathID(r)
	if err != nil {
		response.FromError(w, err)
		return
	}

	if err := h.mobileUserUsecase.Delete(r.Context(), claims.IdentityID, id); err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Mobile user deactivated successfully", nil)
}

func (h *MobileUserHandler) BulkDelete(w http.ResponseWriter, r *http.Request) {
	claims, err := currentClaims(r)
	if err != nil {
		response.FromError(w, err)
		return
	}

	var req dto.BulkDeleteRequest
	if err := decodeRequest(r, &req, 0); err != nil {
		response.FromError(w, err)
		return
	}

	if err := h.validator.ValidateRequest(&req); err != nil {
		response.FromError(w, err)
		return
	}

	deleted, err := h.mobileUserUsecase.BulkDelete(r.Context(), claims.IdentityID, req.IDs)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Mobile users deactivated successfully", dto.DeleteCountResponse{Deleted: deleted})
}
