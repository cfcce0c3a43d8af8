// Package handler holds what the web handlers share: route constants, the error
// to status mapping, request contexts and form helpers.
package handler

import (
	"context"
	"errors"
	"io"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/melitabakes/bakery/internal/admin"
	"github.com/melitabakes/bakery/internal/blob"
	"github.com/melitabakes/bakery/internal/config"
	"github.com/melitabakes/bakery/internal/store"
)

var (
	// ErrNoController is returned when a protected handler runs without the auth middleware.
	ErrNoController = errors.New("no admin session")
	// ErrInvalidID is returned for non numeric or zero ids in the path.
	ErrInvalidID = errors.New("invalid id")
	// ErrFileTooLarge is returned for uploads above Storage.MaxUploadSize.
	ErrFileTooLarge = errors.New("file too large")
)

// Controller returns the admin controller the auth middleware stored for this request.
func Controller(c *fiber.Ctx) (*admin.Controller, error) {
	ctrl, ok := c.Locals(LocalsController).(*admin.Controller)
	if !ok || ctrl == nil {
		return nil, ErrNoController
	}

	return ctrl, nil
}

// RequestContext derives the context of store and blob calls from the request,
// bounded by Webserver.RequestTimeout.
func RequestContext(c *fiber.Ctx, cfg *config.Config) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.UserContext(), cfg.Webserver.RequestTimeout)
}

// ParseID reads the :id path parameter.
func ParseID(c *fiber.Ctx) (uint64, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, ErrInvalidID
	}

	return id, nil
}

// Confirmed reports whether the delete form carried the confirmation checkbox.
func Confirmed(c *fiber.Ctx) bool {
	return c.FormValue("confirm") == "yes"
}

// FormFile reads the optional uploaded file of field. A missing or empty file returns nil.
func FormFile(c *fiber.Ctx, field string, maxSize int64) (*blob.File, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		// missing field or not a multipart request
		return nil, nil //nolint:nilnil
	}

	if fh.Size == 0 {
		return nil, nil //nolint:nilnil
	}

	if maxSize > 0 && fh.Size > maxSize {
		return nil, ErrFileTooLarge
	}

	f, err := fh.Open()
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	return &blob.File{Name: fh.Filename, Data: data}, nil
}

// StatusFor maps domain errors to http status codes.
func StatusFor(err error) int {
	switch {
	case err == nil:
		return fiber.StatusOK
	case errors.Is(err, admin.ErrValidation), errors.Is(err, ErrInvalidID),
		errors.Is(err, store.ErrUpload), errors.Is(err, ErrFileTooLarge):
		return fiber.StatusBadRequest
	case errors.Is(err, store.ErrAuthFailure), errors.Is(err, admin.ErrNotAuthenticated),
		errors.Is(err, ErrNoController):
		return fiber.StatusUnauthorized
	case errors.Is(err, store.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, admin.ErrOperationPending):
		return fiber.StatusConflict
	case errors.Is(err, context.DeadlineExceeded):
		return fiber.StatusGatewayTimeout
	default:
		return fiber.StatusInternalServerError
	}
}

// Message returns the text shown to the admin for err. Store internals are not exposed.
func Message(err error) string {
	var ve *admin.ValidationError

	switch {
	case err == nil:
		return ""
	case errors.As(err, &ve):
		return ve.Error()
	case errors.Is(err, admin.ErrValidation), errors.Is(err, store.ErrUpload),
		errors.Is(err, admin.ErrOperationPending), errors.Is(err, ErrFileTooLarge),
		errors.Is(err, ErrInvalidID):
		return err.Error()
	case errors.Is(err, store.ErrAuthFailure):
		return "Invalid credentials"
	case errors.Is(err, store.ErrNotFound):
		return "Record not found"
	case errors.Is(err, context.DeadlineExceeded):
		return "The operation timed out, please try again"
	default:
		return "The operation failed, please try again"
	}
}
