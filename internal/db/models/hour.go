package models

// BusinessHour is one line of the opening hours, e.g. "Monday" / "9:00 - 17:00".
type BusinessHour struct {
	ID    uint64 `gorm:"primaryKey" json:"id"`
	Day   string `gorm:"size:100;not null" json:"day"`
	Hours string `gorm:"size:255;not null" json:"hours"`
}

// TableName overrides the gorm table name.
func (BusinessHour) TableName() string { return "hours" }
