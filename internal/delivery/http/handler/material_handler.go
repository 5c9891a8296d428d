package handler

import (
	"net/http"

	"content-admin/internal/delivery/dto"
	"content-admin/internal/usecase"
	"content-admin/pkg/response"
	"content-admin/pkg/validator"
)

type MaterialHandler struct {
	materialUsecase usecase.MaterialUsecase
	validator       *validator.CustomValidator
	baseURL         string
	maxMemory       int64
}

func NewMaterialHandler(materialUsecase usecase.MaterialUsecase, validator *validator.CustomValidator, baseURL string, maxMemory int64) *MaterialHandler {
	return &MaterialHandler{
		materialUsecase: materialUsecase,
		validator:       validator,
		baseURL:         baseURL,
		maxMemory:       maxMemory,
	}
}

func (h *MaterialHandler) List(w http.ResponseWriter, r *http.Request) {
	q := listQuery(r)

	items, total, err := h.materialUsecase.List(r.Context(), q)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Materials retrieved successfully", response.NewPage(r, h.baseURL, items, total, q.Page, q.PageSize))
}

func (h *MaterialHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		response.FromError(w, err)
		return
	}

	material, err := h.materialUsecase.GetByID(r.Context(), id)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Material retrieved successfully", material)
}

func (h *MaterialHandler) Create(w http.ResponseWriter, r *http.Request) {
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
	defer closeUploads(req.Image)

	material, err := h.materialUsecase.Create(r.Context(), claims.IdentityID, req)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, http.StatusCreated, "Material created successfully", material)
}

// Update replaces every field; the stored image is kept when none is uploaded.
func (h *MaterialHandler) Update(w http.ResponseWriter, r *http.Request) {
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
	defer closeUploads(req.Image)

	material, err := h.materialUsecase.Update(r.Context(), claims.IdentityID, id, req)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Material updated successfully", material)
}

func (h *MaterialHandler) Delete(w http.ResponseWriter, r *http.Request) {
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

	if err := h.materialUsecase.Delete(r.Context(), claims.IdentityID, id); err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Material deleted successfully", nil)
}

func (h *MaterialHandler) BulkDelete(w http.ResponseWriter, r *http.Request) {
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

	deleted, err := h.materialUsecase.BulkDelete(r.Context(), claims.IdentityID, req.IDs)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Materials deleted successfully", dto.DeleteCountResponse{Deleted: deleted})
}

func (h *MaterialHandler) decode(r *http.Request) (*dto.MaterialRequest, error) {
	var req dto.MaterialRequest
	if err := decodeRequest(r, &req, h.maxMemory); err != nil {
		return nil, err
	}
	if err := h.validator.ValidateRequest(&req); err != nil {
		return nil, err
	}

	var err error
	if req.Image, err = formFile(r, "image"); err != nil {
		return nil, err
	}
	return &req, nil
}
