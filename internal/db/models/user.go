package models

import (
	"crypto/subtle"
	"strings"
	"time"

	"github.com/alexedwards/argon2id"
	"github.com/rs/zerolog/log"
)

const argon2idPrefix = "$argon2id$"

// Admin is a credential allowed to use the dashboard.
type Admin struct {
	// ID is the unique identifier for the admin.
	ID uint64 `gorm:"primaryKey"`
	// AdminEmail is stored lowercased; lookups compare case-insensitive.
	AdminEmail string `gorm:"column:admin_email;size:255;not null;uniqueIndex"`
	// AdminPassword is an Argon2id hash. Rows imported from older installations may hold plaintext.
	AdminPassword string `gorm:"column:admin_password;size:255;not null"`
	// CreatedAt is the timestamp when the admin was created (managed by GORM).
	CreatedAt time.Time
}

// TableName overrides the gorm table name.
func (Admin) TableName() string { return "admins" }

// User is a registered site user. The bakery only lists them.
type User struct {
	ID        uint64    `gorm:"primaryKey" json:"id"`
	Email     string    `gorm:"size:255;not null" json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName overrides the gorm table name.
func (User) TableName() string { return "users" }

// HashPassword hashes a plaintext password using the Argon2id algorithm.
// It uses the default Argon2id parameters.
func HashPassword(password string) (string, error) {
	return argon2id.CreateHash(password, argon2id.DefaultParams) //nolint:wrapcheck
}

// IsHashed reports whether the stored password is an Argon2id hash.
func (a *Admin) IsHashed() bool {
	return strings.HasPrefix(a.AdminPassword, argon2idPrefix)
}

// VerifyPassword verifies a plaintext password against the stored password.
// Hashes are verified with argon2id, legacy plaintext values in constant time.
func (a *Admin) VerifyPassword(password string) bool {
	if !a.IsHashed() {
		return subtle.ConstantTimeCompare([]byte(a.AdminPassword), []byte(password)) == 1
	}

	match, err := argon2id.ComparePasswordAndHash(password, a.AdminPassword)
	if err != nil {
		log.Error().Err(err).Uint64("admin", a.ID).Msg("failed to verify password")
		return false
	}

	return match
}

// Migrate lists every model for gorm AutoMigrate.
func Migrate() []any {
	return []any{
		&Cake{},
		&BusinessHour{},
		&Testimonial{},
		&ContactInfo{},
		&SiteSettings{},
		&Admin{},
		&User{},
	}
}
