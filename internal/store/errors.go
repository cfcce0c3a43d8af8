package store

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when a record (or a singleton row) does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrAuthFailure is returned for every failed admin lookup.
	ErrAuthFailure = errors.New("invalid credentials")
	// ErrUpload is returned when a file is rejected or the blob store fails.
	ErrUpload = errors.New("upload failed")
	// ErrStore is returned for any database failure.
	ErrStore = errors.New("store failure")
	// ErrAdminInvalid is returned when creating an admin without email or password.
	ErrAdminInvalid = errors.New("admin email and password are required")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
	// ErrBlobsNil is returned when the blob store is nil.
	ErrBlobsNil = errors.New("blob store is nil")
)

// wrapDB maps gorm errors into the store error kinds.
func wrapDB(op string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}

	return fmt.Errorf("%s: %w: %w", op, ErrStore, err)
}

func uploadErr(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrUpload, fmt.Sprintf(format, args...))
}
