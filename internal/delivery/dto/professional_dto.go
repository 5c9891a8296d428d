package dto

import (
	"time"

	"content-admin/internal/domain/entity"
)

type ProfessionalRequest struct {
	Name       string         `json:"name" schema:"name" validate:"required,max=255"`
	PhoneNo    string         `json:"phone_no" schema:"phone_no" validate:"required"`
	Email      string         `json:"email" schema:"email" validate:"required,email,max=254"`
	Expertise  string         `json:"expertise" schema:"expertise" validate:"required,max=100"`
	Location   string         `json:"location" schema:"location" validate:"required,max=255"`
	About      string         `json:"about" schema:"about"`
	Experience string         `json:"experience" schema:"experience"`
	Website    string         `json:"website" schema:"website" validate:"omitempty,url,max=255"`
	Review     string         `json:"review" schema:"review" validate:"required"`
	Rating     int            `json:"rating" schema:"rating" validate:"required,gte=1,lte=5"`
	Portfolio  *entity.Upload `json:"-" schema:"-"`
	Banner     *entity.Upload `json:"-" schema:"-"`
}

type ProfessionalResponse struct {
	ID         uint      `json:"id"`
	Name       string    `json:"name"`
	PhoneNo    string    `json:"phone_no"`
	Email      string    `json:"email"`
	Expertise  string    `json:"expertise"`
	Location   string    `json:"location"`
	About      string    `json:"about"`
	Experience string    `json:"experience"`
	Portfolio  string    `json:"portfolio"`
	Banner     string    `json:"banner"`
	Website    string    `json:"website"`
	Review     string    `json:"review"`
	Rating     int       `json:"rating"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type ProfessionalListItem struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	PhoneNo   string `json:"phone_no"`
	Email     string `json:"email"`
	Expertise string `json:"expertise"`
	Location  string `json:"location"`
}
