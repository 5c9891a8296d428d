package dto

import (
	"time"

	"content-admin/internal/domain/entity"
)

type MobileRegisterRequest struct {
	FirstName string         `json:"first_name" schema:"first_name" validate:"max=100"`
	LastName  string         `json:"last_name" schema:"last_name" validate:"max=100"`
	Email     string         `json:"email" schema:"email" validate:"omitempty,email,max=254"`
	PhoneNo   string         `json:"phone_no" schema:"phone_no" validate:"required"`
	Password  string         `json:"password" schema:"password" validate:"required"`
	FCMToken  string         `json:"fcm_token" schema:"fcm_token" validate:"required"`
	Image     *entity.Upload `json:"-" schema:"-"`
}

type RequestOTPRequest struct {
	PhoneNo string `json:"phone_no" schema:"phone_no" validate:"required"`
}

type VerifyOTPRequest struct {
	PhoneNo string `json:"phone_no" schema:"phone_no" validate:"required"`
	OTP     int    `json:"otp" schema:"otp"`
}

type OTPResponse struct {
	OTP       *int      `json:"otp,omitempty"`
	ExpiresAt time.Time `json:"expires_at"`
}

type MobileProfileResponse struct {
	ID        uint      `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	PhoneNo   string    `json:"phone_no"`
	Image     string    `json:"image"`
	IsActive  bool      `json:"is_active"`
	CreatedOn time.Time `json:"created_on"`
}

// Admin side

type UpdateMobileUserRequest struct {
	FirstName string `json:"first_name" schema:"first_name" validate:"max=100"`
	LastName  string `json:"last_name" schema:"last_name" validate:"max=100"`
	Email     string `json:"email" schema:"email" validate:"omitempty,email,max=254"`
	PhoneNo   string `json:"phone_no" schema:"phone_no" validate:"required"`
}

type MobileUserListItem struct {
	ID        uint      `json:"id"`
	FirstName string    `json:"first_name"`
	Email     string    `json:"email"`
	PhoneNo   string    `json:"phone_no"`
	CreatedOn time.Time `json:"created_on"`
	IsActive  bool      `json:"is_active"`
}
