package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	AvailabilityInStock    = "in_stock"
	AvailabilityOutOfStock = "out_of_stock"
	AvailabilityPreOrder   = "pre_order"
)

const (
	EventStatusUpcoming  = "upcoming"
	EventStatusOngoing   = "ongoing"
	EventStatusCompleted = "completed"
	EventStatusCancelled = "cancelled"
)

type Book struct {
	ID                uint            `gorm:"primaryKey"`
	Name              string          `gorm:"type:varchar(255);not null"`
	Price             decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Description       string          `gorm:"type:text"`
	AdditionalDetails string          `gorm:"type:text"`
	Image             string          `gorm:"type:varchar(255)"`
	Availability      string          `gorm:"type:varchar(20);not null;index"`
	CreatedAt         time.Time       `gorm:"autoCreateTime"`
	UpdatedAt         time.Time       `gorm:"autoUpdateTime"`
}

func (Book) TableName() string {
	return "books"
}

func (b *Book) FileKeys() []string {
	return nonEmpty(b.Image)
}

type Event struct {
	ID                     uint      `gorm:"primaryKey"`
	Title                  string    `gorm:"type:varchar(255);not null"`
	Date                   time.Time `gorm:"not null"`
	Location               string    `gorm:"type:varchar(255);index"`
	Description            string    `gorm:"type:text"`
	Image                  string    `gorm:"type:varchar(255)"`
	AdditionalInformations string    `gorm:"type:text"`
	Status                 string    `gorm:"type:varchar(20);not null;index"`
	CreatedAt              time.Time `gorm:"autoCreateTime"`
	UpdatedAt              time.Time `gorm:"autoUpdateTime"`
}

func (Event) TableName() string {
	return "events"
}

func (e *Event) FileKeys() []string {
	return nonEmpty(e.Image)
}

type Material struct {
	ID                 uint            `gorm:"primaryKey"`
	Name               string          `gorm:"type:varchar(255);not null"`
	Type               string          `gorm:"type:varchar(100);index"`
	SupplierName       string          `gorm:"type:varchar(255);index"`
	SupplierPhoneNo    string          `gorm:"type:varchar(20)"`
	Price              decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	DiscountPercentage decimal.Decimal `gorm:"type:decimal(5,2);not null"`
	Title              string          `gorm:"type:varchar(255)"`
	Availability       string          `gorm:"type:varchar(20);not null;index"`
	Image              string          `gorm:"type:varchar(255)"`
	Description        string          `gorm:"type:text"`
	Overview           string          `gorm:"type:text"`
	AdditionalDetails  string          `gorm:"type:text"`
	CreatedAt          time.Time       `gorm:"autoCreateTime"`
	UpdatedAt          time.Time       `gorm:"autoUpdateTime"`
}

func (Material) TableName() string {
	return "materials"
}

func (m *Material) FileKeys() []string {
	return nonEmpty(m.Image)
}

func nonEmpty(keys ...string) []string {
	var out []string
	for _, k := range keys {
		if k != "" {
			out = append(out, k)
		}
	}
	return out
}
