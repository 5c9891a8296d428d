package handler

import (
	"net/http"

	"content-admin/internal/delivery/dto"
	"content-admin/internal/usecase"
	"content-admin/pkg/response"
	"content-admin/pkg/validator"
)

type ProfessionalHandler struct {
	professionalUsecase usecase.ProfessionalUsecase
	validator           *validator.CustomValidator
	baseURL             string
	maxMemory           int64
}

func NewProfessionalHandler(professionalUsecase usecase.ProfessionalUsecase, validator *validator.CustomValidator, baseURL string, maxMemory int64) *ProfessionalHandler {
	return &ProfessionalHandler{
		professionalUsecase: professionalUsecase,
		validator:           validator,
		baseURL:             baseURL,
		maxMemory:           maxMemory,
	}
}

// List handles listing professionals
// @Summary List professionals
// @Description Filter by expertise and location, search over name, email, expertise and location
// @Tags Professionals
// @Security BearerAuth
// @Produce json
// @Param expertise query string false "Expertise"
// @Param location query string false "Location"
// @Param search query string false "Search term"
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Items per page" default(10)
// @Success 200 {object} response.Response
// @Router /admin/professionals [get]
func (h *ProfessionalHandler) List(w http.ResponseWriter, r *http.Request) {
	q := listQuery(r)

	items, total, err := h.professionalUsecase.List(r.Context(), q)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Professionals retrieved successfully", response.NewPage(r, h.baseURL, items, total, q.Page, q.PageSize))
}

// Get handles retrieving a professional with the admin review
// @Summary Get professional
// @Tags Professionals
// @Security BearerAuth
// @Produce json
// @Param id path int true "Professional ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/professionals/{id} [get]
func (h *ProfessionalHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		response.FromError(w, err)
		return
	}

	professional, err := h.professionalUsecase.GetByID(r.Context(), id)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Professional retrieved successfully", professional)
}

// Create handles professional creation together with the admin review
// @Summary Create professional
// @Tags Professionals
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param portfolio formData file false "Portfolio (image or PDF)"
// @Param banner formData file false "Banner image"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /admin/professionals [post]
func (h *ProfessionalHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims, err := currentClaims(r)
	if err != nil {
		response.FromError(w, err)
		return
	}

	req, err := h.decode(r)
	if err != nil {
		response.FromError(w, err)
		return
	}
	defer closeUploads(req.Portfolio, req.Banner)

	professional, err := h.professionalUsecase.Create(r.Context(), claims.IdentityID, req)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, http.StatusCreated, "Professional created successfully", professional)
}

// Update handles a full update of the professional and its admin review
// @Summary Update professional
// @Tags Professionals
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "Professional ID"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/professionals/{id} [put]
func (h *ProfessionalHandler) Update(w http.ResponseWriter, r *http.Request) {
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

	req, err := h.decode(r)
	if err != nil {
		response.FromError(w, err)
		return
	}
	defer closeUploads(req.Portfolio, req.Banner)

	professional, err := h.professionalUsecase.Update(r.Context(), claims.IdentityID, id, req)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Professional updated successfully", professional)
}

// Delete handles deleting one professional and its reviews
// @Summary Delete professional
// @Tags Professionals
// @Security BearerAuth
// @Produce json
// @Param id path int true "Professional ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/professionals/{id} [delete]
func (h *ProfessionalHandler) Delete(w http.ResponseWriter, r *http.Request) {
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

	if err := h.professionalUsecase.Delete(r.Context(), claims.IdentityID, id); err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Professional deleted successfully", nil)
}

// BulkDelete handles deleting professionals by id
// @Summary Bulk delete professionals
// @Tags Professionals
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.BulkDeleteRequest true "IDs"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/professionals [delete]
func (h *ProfessionalHandler) BulkDelete(w http.ResponseWriter, r *http.Request) {
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

	deleted, err := h.professionalUsecase.BulkDelete(r.Context(), claims.IdentityID, req.IDs)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Professionals deleted successfully", dto.DeleteCountResponse{Deleted: deleted})
}

func (h *ProfessionalHandler) decode(r *http.Request) (*dto.ProfessionalRequest, error) {
	var req dto.ProfessionalRequest
	if err := decodeRequest(r, &req, h.maxMemory); err != nil {
		return nil, err
	}
	if err := h.validator.ValidateRequest(&req); err != nil {
		return nil, err
	}

	var err error
	if req.Portfolio, err = formFile(r, "portfolio"); err != nil {
		return nil, err
	}
	if req.Banner, err = formFile(r, "banner"); err != nil {
		closeUploads(req.Portfolio)
		return nil, err
	}
	return &req, nil
}
