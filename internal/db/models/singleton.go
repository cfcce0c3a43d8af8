package models

import "time"

// SingletonID is the fixed primary key of the contact and site settings rows.
const SingletonID uint64 = 1

// ContactInfo is the singleton contact record.
type ContactInfo struct {
	ID uint64 `gorm:"primaryKey;autoIncrement:false" json:"id"`
	// Phone is shown as tel: link.
	Phone string `gorm:"size:100" json:"phone"`
	// Instagram handle, stored without a leading "@".
	Instagram string    `gorm:"size:100" json:"instagram"`
	Address   string    `gorm:"size:512" json:"address"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName overrides the gorm table name.
func (ContactInfo) TableName() string { return "contact" }

// SiteSettings is the singleton row holding site wide settings.
type SiteSettings struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement:false" json:"id"`
	LogoURL   string    `gorm:"column:logo_url;size:1024" json:"logo_url"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName overrides the gorm table name.
func (SiteSettings) TableName() string { return "site_settings" }
