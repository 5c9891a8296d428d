package handler

import (
	"net/http"
	"strconv"

	"content-admin/internal/usecase"
	"content-admin/pkg/apperror"
	"content-admin/pkg/response"

	"github.com/gorilla/mux"
)

type AuditLogHandler struct {
	auditLogUsecase usecase.AuditLogUsecase
	baseURL         string
}

func NewAuditLogHandler(auditLogUsecase usecase.AuditLogUsecase, baseURL string) *AuditLogHandler {
	return &AuditLogHandler{
		auditLogUsecase: auditLogUsecase,
		baseURL:         baseURL,
	}
}

// List handles listing audit logs, newest first
// @Summary List audit logs
// @Tags Audit Logs
// @Security BearerAuth
// @Produce json
// @Param action query string false "Action"
// @Param identity_id query int false "Acting identity"
// @Success 200 {object} response.Response
// @Router /admin/audit-logs [get]
func (h *AuditLogHandler) List(w http.ResponseWriter, r *http.Request) {
	q := listQuery(r)

	logs, total, err := h.auditLogUsecase.List(r.Context(), q)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Audit logs retrieved successfully", response.NewPage(r, h.baseURL, logs, total, q.Page, q.PageSize))
}

// Get handles getting an audit log by ID
// @Summary Get audit log
// @Tags Audit Logs
// @Security BearerAuth
// @Produce json
// @Param id path int true "Audit Log ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/audit-logs/{id} [get]
func (h *AuditLogHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		response.FromError(w, apperror.NotFound("Not found."))
		return
	}

	auditLog, err := h.auditLogUsecase.GetByID(r.Context(), id)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Audit log retrieved successfully", auditLog)
}
