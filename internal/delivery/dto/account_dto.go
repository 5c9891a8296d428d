package dto

import "content-admin/internal/domain/entity"

type UpdateAccountRequest struct {
	FirstName   string `json:"first_name" schema:"first_name" validate:"max=100"`
	LastName    string `json:"last_name" schema:"last_name" validate:"max=100"`
	Email       string `json:"email" schema:"email" validate:"required,email,max=254"`
	PhoneNo     string `json:"phone_no" schema:"phone_no"`
	Designation string `json:"designation" schema:"designation" validate:"max=100"`
}

type PhotoRequest struct {
	Image *entity.Upload `json:"-" schema:"-"`
}

type AccountResponse struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Email       string `json:"email"`
	PhoneNo     string `json:"phone_no"`
	Designation string `json:"designation"`
	Image       string `json:"image"`
}
