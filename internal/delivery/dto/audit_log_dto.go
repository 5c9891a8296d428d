package dto

import (
	"time"

	"content-admin/internal/domain/entity"
)

// Response DTOs

type AuditLogResponse struct {
	ID         int64       `json:"id"`
	IdentityID *uint       `json:"identity_id"`
	Action     string      `json:"action"`
	Metadata   entity.JSON `json:"metadata"`
	CreatedAt  time.Time   `json:"created_at"`
}
