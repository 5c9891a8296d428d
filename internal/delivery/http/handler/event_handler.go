package handler

import (
	"net/http"

	"content-admin/internal/delivery/dto"
	"content-admin/internal/usecase"
	"content-admin/pkg/response"
	"content-admin/pkg/validator"
)

type EventHandler struct {
	eventUsecase usecase.EventUsecase
	validator    *validator.CustomValidator
	baseURL      string
	maxMemory    int64
}

func NewEventHandler(eventUsecase usecase.EventUsecase, validator *validator.CustomValidator, baseURL string, maxMemory int64) *EventHandler {
	return &EventHandler{
		eventUsecase: eventUsecase,
		validator:    validator,
		baseURL:      baseURL,
		maxMemory:    maxMemory,
	}
}

func (h *EventHandler) List(w http.ResponseWriter, r *http.Request) {
	q := listQuery(r)

	items, total, err := h.eventUsecase.List(r.Context(), q)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Events retrieved successfully", response.NewPage(r, h.baseURL, items, total, q.Page, q.PageSize))
}

func (h *EventHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		response.FromError(w, err)
		return
	}

	event, err := h.eventUsecase.GetByID(r.Context(), id)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Event retrieved successfully", event)
}

func (h *EventHandler) Create(w http.ResponseWriter, r *http.Request) {
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

	event, err := h.eventUsecase.Create(r.Context(), claims.IdentityID, req)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, http.StatusCreated, "Event created successfully", event)
}

// Update replaces every field; the stored image is kept when none is uploaded.
func (h *EventHandler) Update(w http.ResponseWriter, r *http.Request) {
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

	event, err := h.eventUsecase.Update(r.Context(), claims.IdentityID, id, req)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Event updated successfully", event)
}

func (h *EventHandler) Delete(w http.ResponseWriter, r *http.Request) {
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

	if err := h.eventUsecase.Delete(r.Context(), claims.IdentityID, id); err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Event deleted successfully", nil)
}

func (h *EventHandler) BulkDelete(w http.ResponseWriter, r *http.Request) {
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

	deleted, err := h.eventUsecase.BulkDelete(r.Context(), claims.IdentityID, req.IDs)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Events deleted successfully", dto.DeleteCountResponse{Deleted: deleted})
}

func (h *EventHandler) decode(r *http.Request) (*dto.EventRequest, error) {
	var req dto.EventRequest
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
