package entity

import (
	"strings"
	"time"
)

type AdminProfile struct {
	ID           uint         `gorm:"primaryKey" json:"id"`
	IdentityID   uint         `gorm:"uniqueIndex;not null" json:"identity_id"`
	IdentityKind IdentityKind `gorm:"type:varchar(16);not null" json:"-"`
	FirstName    string       `gorm:"type:varchar(100)" json:"first_name"`
	LastName     string       `gorm:"type:varchar(100)" json:"last_name"`
	Email        string       `gorm:"type:varchar(254);uniqueIndex;not null" json:"email"`
	PhoneNo      string       `gorm:"type:varchar(20)" json:"phone_no"`
	Designation  string       `gorm:"type:varchar(100)" json:"designation"`
	Image        string       `gorm:"type:varchar(255)" json:"image"`
	IsActive     bool         `gorm:"not null" json:"is_active"`
	CreatedAt    time.Time    `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time    `gorm:"autoUpdateTime" json:"updated_at"`
}

func (AdminProfile) TableName() string {
	return "admin_profiles"
}

// NormalizeEmail is applied to admin emails before they are stored or compared.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
