package entity

import (
	"errors"
	"time"
)

type IdentityKind string

const (
	IdentityKindAdmin  IdentityKind = "admin"
	IdentityKindMobile IdentityKind = "mobile"
)

// Permission groups carried in access tokens.
const (
	GroupAdmin = "ADMIN"
	GroupUser  = "USER"
)

var ErrProfileMismatch = errors.New("identity kind does not match its profile")

// Identity is the authenticable account. Kind selects which single profile it owns.
type Identity struct {
	ID          uint         `gorm:"primaryKey" json:"id"`
	Kind        IdentityKind `gorm:"type:varchar(16);not null;index" json:"kind"`
	Password    string       `gorm:"type:text;not null" json:"-"`
	IsActive    bool         `gorm:"not null;index" json:"is_active"`
	IsSuperuser bool         `gorm:"not null" json:"is_superuser"`
	LastLogin   *time.Time   `json:"last_login,omitempty"`
	CreatedAt   time.Time    `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time    `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships; exactly one is set, matching Kind
	AdminProfile  *AdminProfile  `gorm:"foreignKey:IdentityID" json:"admin_profile,omitempty"`
	MobileProfile *MobileProfile `gorm:"foreignKey:IdentityID" json:"mobile_profile,omitempty"`
}

func (Identity) TableName() string {
	return "identities"
}

func NewAdminIdentity(passwordHash string, profile *AdminProfile) *Identity {
	profile.IdentityKind = IdentityKindAdmin
	profile.IsActive = true
	profile.Email = NormalizeEmail(profile.Email)
	return &Identity{
		Kind:         IdentityKindAdmin,
		Password:     passwordHash,
		IsActive:     true,
		AdminProfile: profile,
	}
}

func NewMobileIdentity(passwordHash string, profile *MobileProfile) *Identity {
	profile.IdentityKind = IdentityKindMobile
	profile.IsActive = true
	return &Identity{
		Kind:          IdentityKindMobile,
		Password:      passwordHash,
		IsActive:      true,
		MobileProfile: profile,
	}
}

// Group is the permission group implied by the identity kind.
func (i *Identity) Group() string {
	if i.Kind == IdentityKindAdmin {
		return GroupAdmin
	}
	return GroupUser
}

// CheckProfile reports whether the loaded profiles agree with Kind.
func (i *Identity) CheckProfile() error {
	switch i.Kind {
	case IdentityKindAdmin:
		if i.AdminProfile == nil || i.MobileProfile != nil {
			return ErrProfileMismatch
		}
	case IdentityKindMobile:
		if i.MobileProfile == nil || i.AdminProfile != nil {
			return ErrProfileMismatch
		}
	default:
		return ErrProfileMismatch
	}
	return nil
}
