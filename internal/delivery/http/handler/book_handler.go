package handler

import (
	"net/http"

	"content-admin/internal/delivery/dto"
	"content-admin/internal/usecase"
	"content-admin/pkg/response"
	"content-admin/pkg/validator"
)

type BookHandler struct {
	bookUsecase usecase.BookUsecase
	validator   *validator.CustomValidator
	baseURL     string
	maxMemory   int64
}

func NewBookHandler(bookUsecase usecase.BookUsecase, validator *validator.CustomValidator, baseURL string, maxMemory int64) *BookHandler {
	return &BookHandler{
		bookUsecase: bookUsecase,
		validator:   validator,
		baseURL:     baseURL,
		maxMemory:   maxMemory,
	}
}

func (h *BookHandler) List(w http.ResponseWriter, r *http.Request) {
	q := listQuery(r)

	items, total, err := h.bookUsecase.List(r.Context(), q)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Books retrieved successfully", response.NewPage(r, h.baseURL, items, total, q.Page, q.PageSize))
}

func (h *BookHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		response.FromError(w, err)
		return
	}

	book, err := h.bookUsecase.GetByID(r.Context(), id)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Book retrieved successfully", book)
}

func (h *BookHandler) Create(w http.ResponseWriter, r *http.Request) {
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

	book, err := h.bookUsecase.Create(r.Context(), claims.IdentityID, req)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, http.StatusCreated, "Book created successfully", book)
}

// Update replaces every field; the stored image is kept when none is uploaded.
func (h *BookHandler) Update(w http.ResponseWriter, r *http.Request) {
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

	book, err := h.bookUsecase.Update(r.Context(), claims.IdentityID, id, req)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Book updated successfully", book)
}

func (h *BookHandler) Delete(w http.ResponseWriter, r *http.Request) {
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

	if err := h.bookUsecase.Delete(r.Context(), claims.IdentityID, id); err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Book deleted successfully", nil)
}

func (h *BookHandler) BulkDelete(w http.ResponseWriter, r *http.Request) {
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

	deleted, err := h.bookUsecase.BulkDelete(r.Context(), claims.IdentityID, req.IDs)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Books deleted successfully", dto.DeleteCountResponse{Deleted: deleted})
}

func (h *BookHandler) decode(r *http.Request) (*dto.BookRequest, error) {
	var req dto.BookRequest
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
