package store

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/melitabakes/bakery/internal/db/models"
)

// NormalizeEmail trims and lowercases an admin email.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// AuthenticateAdmin looks up the admin by case-insensitive email and verifies the
// trimmed password. Exactly one matching row is required; every other outcome,
// store errors included, is ErrAuthFailure.
func (c *Client) AuthenticateAdmin(ctx context.Context, email, password string) (*models.Admin, error) {
	email = NormalizeEmail(email)
	password = strings.TrimSpace(password)

	if email == "" || password == "" {
		return nil, ErrAuthFailure
	}

	var admins []models.Admin

	err := c.db.WithContext(ctx).
		Where("LOWER(admin_email) = ?", email).
		Limit(2). //nolint:mnd // more than one row is already a failure
		Find(&admins).Error
	if err != nil {
		log.Error().Err(err).Msg("admin lookup failed")
		return nil, ErrAuthFailure
	}

	if len(admins) != 1 {
		if len(admins) > 1 {
			log.Warn().Str("email", email).Msg("ambiguous admin credential, refusing login")
		}

		return nil, ErrAuthFailure
	}

	admin := admins[0]

	if !admin.VerifyPassword(password) {
		return nil, ErrAuthFailure
	}

	if !admin.IsHashed() {
		log.Warn().Uint64("admin", admin.ID).Msg("admin password is stored in plaintext, rehash it with 'admin add'")
	}

	return &admin, nil
}

// CreateAdmin stores a new admin with a hashed password.
func (c *Client) CreateAdmin(ctx context.Context, email, password string) (*models.Admin, error) {
	email = NormalizeEmail(email)
	password = strings.TrimSpace(password)

	if email == "" || password == "" {
		return nil, ErrAdminInvalid
	}

	hash, err := models.HashPassword(password)
	if err != nil {
		return nil, wrapDB("hash admin password", err)
	}

	admin := models.Admin{AdminEmail: email, AdminPassword: hash}

	if err = c.db.WithContext(ctx).Create(&admin).Error; err != nil {
		return nil, wrapDB("create admin", err)
	}

	return &admin, nil
}

// CountAdmins returns the number of admin rows.
func (c *Client) CountAdmins(ctx context.Context) (int64, error) {
	var n int64

	if err := c.db.WithContext(ctx).Model(&models.Admin{}).Count(&n).Error; err != nil {
		return 0, wrapDB("count admins", err)
	}

	return n, nil
}
