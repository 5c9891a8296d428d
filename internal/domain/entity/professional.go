package entity

import "time"

type Professional struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Name       string    `gorm:"type:varchar(255);not null" json:"name"`
	PhoneNo    string    `gorm:"type:varchar(20);uniqueIndex;not null" json:"phone_no"`
	Email      string    `gorm:"type:varchar(254);uniqueIndex;not null" json:"email"`
	Expertise  string    `gorm:"type:varchar(100);index" json:"expertise"`
	Location   string    `gorm:"type:varchar(255);index" json:"location"`
	About      string    `gorm:"type:text" json:"about"`
	Experience string    `gorm:"type:text" json:"experience"`
	Portfolio  string    `gorm:"type:varchar(255)" json:"portfolio"`
	Banner     string    `gorm:"type:varchar(255)" json:"banner"`
	Website    string    `gorm:"type:varchar(255)" json:"website"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Reviews []ProfessionalReview `gorm:"foreignKey:ProfessionalID;constraint:OnDelete:CASCADE" json:"reviews,omitempty"`
}

func (Professional) TableName() string {
	return "professionals"
}

func (p *Professional) FileKeys() []string {
	return nonEmpty(p.Portfolio, p.Banner)
}

// ProfessionalReview belongs to one professional. The review whose creator is a
// superuser is the one managed through the admin API.
type ProfessionalReview struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	ProfessionalID uint      `gorm:"not null;index" json:"professional_id"`
	CreatedByID    *uint     `gorm:"index" json:"created_by_id"`
	Rating         int       `gorm:"not null" json:"rating"`
	Review         string    `gorm:"type:text" json:"review"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	CreatedBy *Identity `gorm:"foreignKey:CreatedByID;constraint:OnDelete:SET NULL" json:"-"`
}

func (ProfessionalReview) TableName() string {
	return "professional_reviews"
}
