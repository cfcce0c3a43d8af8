package models

import "time"

// Testimonial is a customer quote.
type Testimonial struct {
	ID        uint64    `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Comment   string    `gorm:"type:text;not null" json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName overrides the gorm table name.
func (Testimonial) TableName() string { return "testimonials" }
