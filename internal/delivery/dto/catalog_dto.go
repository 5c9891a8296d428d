package dto

import (
	"time"

	"content-admin/internal/domain/entity"

	"github.com/shopspring/decimal"
)

// Books

type BookRequest struct {
	Name              string           `json:"name" schema:"name" validate:"required,max=255"`
	Price             *decimal.Decimal `json:"price" schema:"price" validate:"required"`
	Description       string           `json:"description" schema:"description"`
	AdditionalDetails string           `json:"additional_details" schema:"additional_details"`
	Availability      string           `json:"availability" schema:"availability" validate:"required,oneof=in_stock out_of_stock pre_order"`
	Image             *entity.Upload   `json:"-" schema:"-"`
}

type BookResponse struct {
	ID                uint            `json:"id"`
	Name              string          `json:"name"`
	Price             decimal.Decimal `json:"price"`
	Description       string          `json:"description"`
	AdditionalDetails string          `json:"additional_details"`
	Image             string          `json:"image"`
	Availability      string          `json:"availability"`
}

type BookListItem struct {
	ID           uint            `json:"id"`
	Image        string          `json:"image"`
	Name         string          `json:"name"`
	Price        decimal.Decimal `json:"price"`
	Availability string          `json:"availability"`
}

// Events

type EventRequest struct {
	Title                  string         `json:"title" schema:"title" validate:"required,max=255"`
	Date                   *time.Time     `json:"date" schema:"date" validate:"required"`
	Location               string         `json:"location" schema:"location" validate:"max=255"`
	Description            string         `json:"description" schema:"description"`
	AdditionalInformations string         `json:"additional_informations" schema:"additional_informations"`
	Status                 string         `json:"status" schema:"status" validate:"omitempty,oneof=upcoming ongoing completed cancelled"`
	Image                  *entity.Upload `json:"-" schema:"-"`
}

type EventResponse struct {
	ID                     uint      `json:"id"`
	Title                  string    `json:"title"`
	Date                   time.Time `json:"date"`
	Location               string    `json:"location"`
	Description            string    `json:"description"`
	Image                  string    `json:"image"`
	AdditionalInformations string    `json:"additional_informations"`
	Status                 string    `json:"status"`
}

type EventListItem struct {
	ID       uint      `json:"id"`
	Title    string    `json:"title"`
	Date     time.Time `json:"date"`
	Location string    `json:"location"`
	Status   string    `json:"status"`
}

// Materials

type MaterialRequest struct {
	Name               string           `json:"name" schema:"name" validate:"required,max=255"`
	Type               string           `json:"type" schema:"type" validate:"required,max=100"`
	SupplierName       string           `json:"supplier_name" schema:"supplier_name" validate:"required,max=255"`
	SupplierPhoneNo    string           `json:"supplier_phone_no" schema:"supplier_phone_no" validate:"max=20"`
	Price              *decimal.Decimal `json:"price" schema:"price" validate:"required"`
	DiscountPercentage *decimal.Decimal `json:"discount_percentage" schema:"discount_percentage"`
	Title              string           `json:"title" schema:"title" validate:"max=255"`
	Availability       string           `json:"availability" schema:"availability" validate:"required,oneof=in_stock out_of_stock pre_order"`
	Description        string           `json:"description" schema:"description"`
	Overview           string           `json:"overview" schema:"overview"`
	AdditionalDetails  string           `json:"additional_details" schema:"additional_details"`
	Image              *entity.Upload   `json:"-" schema:"-"`
}

type MaterialResponse struct {
	ID                 uint            `json:"id"`
	Name               string          `json:"name"`
	Type               string          `json:"type"`
	SupplierName       string          `json:"supplier_name"`
	SupplierPhoneNo    string          `json:"supplier_phone_no"`
	Price              decimal.Decimal `json:"price"`
	DiscountPercentage decimal.Decimal `json:"discount_percentage"`
	Title              string          `json:"title"`
	Availability       string          `json:"availability"`
	Image              string          `json:"image"`
	Description        string          `json:"description"`
	Overview           string          `json:"overview"`
	AdditionalDetails  string          `json:"additional_details"`
}

type MaterialListItem struct {
	ID              uint            `json:"id"`
	Name            string          `json:"name"`
	Image           string          `json:"image"`
	Type            string          `json:"type"`
	SupplierName    string          `json:"supplier_name"`
	SupplierPhoneNo string          `json:"supplier_phone_no"`
	Price           decimal.Decimal `json:"price"`
	Availability    string          `json:"availability"`
}
