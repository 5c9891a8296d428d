package entity

import "time"

type MobileProfile struct {
	ID           uint         `gorm:"primaryKey" json:"id"`
	IdentityID   uint         `gorm:"uniqueIndex;not null" json:"identity_id"`
	IdentityKind IdentityKind `gorm:"type:varchar(16);not null" json:"-"`
	FirstName    string       `gorm:"type:varchar(100)" json:"first_name"`
	LastName     string       `gorm:"type:varchar(100)" json:"last_name"`
	Email        *string      `gorm:"type:varchar(254);uniqueIndex" json:"email"`
	PhoneNo      string       `gorm:"type:varchar(20);uniqueIndex;not null" json:"phone_no"`
	Image        string       `gorm:"type:varchar(255)" json:"image"`
	IsActive     bool         `gorm:"not null;index" json:"is_active"`
	OTP          *string      `gorm:"column:otp;type:varchar(4)" json:"-"`
	OTPExpiresAt *time.Time   `gorm:"column:otp_expires_at" json:"-"`
	FCMToken     string       `gorm:"column:fcm_token;type:text;not null" json:"fcm_token"`
	CreatedAt    time.Time    `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time    `gorm:"autoUpdateTime" json:"updated_at"`
}

func (MobileProfile) TableName() string {
	return "mobile_profiles"
}

func (p *MobileProfile) EmailValue() string {
	if p.Email == nil {
		return ""
	}
	return *p.Email
}

// OTPMatches reports whether code equals the pending, unexpired OTP.
func (p *MobileProfile) OTPMatches(code string, now time.Time) bool {
	if p.OTP == nil || *p.OTP == "" {
		return false
	}
	if p.OTPExpiresAt != nil && now.After(*p.OTPExpiresAt) {
		return false
	}
	return *p.OTP == code
}
