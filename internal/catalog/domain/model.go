package domain

import (
	"time"

	"gorm.io/gorm"
)

// Product is a catalog entry. The internal id never leaves the API; the
// uuid is the client-facing key, assigned once at creation.
type Product struct {
	ID        int64          `json:"-" gorm:"primaryKey"`
	UUID      string         `json:"uuid" gorm:"type:uuid;uniqueIndex:ux_products_uuid;not null"`
	Name      string         `json:"name" gorm:"type:text;not null"`
	Price     int64          `json:"price" gorm:"not null;default:0"`
	Image     *string        `json:"image" gorm:"type:text"`
	Active    bool           `json:"active" gorm:"not null;default:true"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}

func (Product) TableName() string { return "products" }
