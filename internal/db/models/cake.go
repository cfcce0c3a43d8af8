package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Cake is one entry of the cake catalog.
type Cake struct {
	// ID is the unique identifier for the cake.
	ID uint64 `gorm:"primaryKey" json:"id"`
	// Name is shown as the card title on the public page.
	Name string `gorm:"size:255;not null" json:"name"`
	// Price in the shop currency, never negative.
	Price decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	// Description is free text.
	Description string `gorm:"type:text" json:"description"`
	// ImageURL is the public URL of the uploaded cake image.
	ImageURL string `gorm:"column:image_url;size:1024;not null" json:"image_url"`
	// CreatedAt is managed by GORM and drives the newest first ordering.
	CreatedAt time.Time `json:"created_at"`
	// UpdatedAt is managed by GORM.
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName overrides the gorm table name.
func (Cake) TableName() string { return "cakes" }
