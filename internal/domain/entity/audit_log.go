package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// AuditLog records an admin action, written in the same transaction as the change.
type AuditLog struct {
	ID         int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	IdentityID *uint     `gorm:"index" json:"identity_id,omitempty"`
	Action     string    `gorm:"type:varchar(100);not null;index" json:"action"`
	Metadata   JSON      `gorm:"type:jsonb" json:"metadata,omitempty"`
	CreatedAt  time.Time `gorm:"autoCreateTime;index" json:"created_at"`

	Identity *Identity `gorm:"foreignKey:IdentityID;constraint:OnDelete:SET NULL" json:"-"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}

// JSON type for GORM JSONB support
type JSON map[string]interface{}

// Value returns json value, implement driver.Valuer interface
func (j JSON) Value() (driver.Value, error) {
	if len(j) == 0 {
		return nil, nil
	}
	return json.Marshal(j)
}

// Scan scan value into Jsonb, implements sql.Scanner interface
func (j *JSON) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}
	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New(fmt.Sprint("Failed to unmarshal JSONB value:", value))
	}

	result := map[string]interface{}{}
	err := json.Unmarshal(bytes, &result)
	*j = JSON(result)
	return err
}

// Audit actions
const (
	AuditActionAdminLogin           = "admin.login"
	AuditActionAdminLogout          = "admin.logout"
	AuditActionAccountUpdate        = "account.update"
	AuditActionPasswordChange       = "account.password_change"
	AuditActionProfessionalCreate   = "professional.create"
	AuditActionProfessionalUpdate   = "professional.update"
	AuditActionProfessionalDelete   = "professional.delete"
	AuditActionBookCreate           = "book.create"
	AuditActionBookUpdate           = "book.update"
	AuditActionBookDelete           = "book.delete"
	AuditActionEventCreate          = "event.create"
	AuditActionEventUpdate          = "event.update"
	AuditActionEventDelete          = "event.delete"
	AuditActionMaterialCreate       = "material.create"
	AuditActionMaterialUpdate       = "material.update"
	AuditActionMaterialDelete       = "material.delete"
	AuditActionMobileUserCreate     = "mobile_user.create"
	AuditActionMobileUserUpdate     = "mobile_user.update"
	AuditActionMobileUserDeactivate = "mobile_user.deactivate"
)
