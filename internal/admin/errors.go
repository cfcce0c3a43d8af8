package admin

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrValidation is the kind of every client side precondition failure.
	ErrValidation = errors.New("validation failed")
	// ErrImageRequired is returned by AddCake without an image.
	ErrImageRequired = fmt.Errorf("image required: %w", ErrValidation)
	// ErrLogoRequired is returned by UploadLogo without a file.
	ErrLogoRequired = fmt.Errorf("logo file required: %w", ErrValidation)
	// ErrConfirmationRequired is returned by deletes that were not confirmed.
	ErrConfirmationRequired = fmt.Errorf("confirmation required: %w", ErrValidation)
	// ErrNotAuthenticated is returned for mutations outside an admin session.
	ErrNotAuthenticated = errors.New("not authenticated")
	// ErrOperationPending is returned while another mutation of the same session is in flight.
	ErrOperationPending = errors.New("another operation is still running")
)

// ValidationError lists the rejected form fields.
type ValidationError struct {
	// Fields maps the form field name to the failed rule.
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}

	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+" "+e.Fields[name])
	}

	return "invalid form: " + strings.Join(parts, ", ")
}

// Unwrap makes errors.Is(err, ErrValidation) hold.
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// LoadError aggregates the failures of one bulk load, keyed by collection.
type LoadError struct {
	Errs map[Collection]error
}

func (e *LoadError) Error() string {
	parts := make([]string, 0, len(e.Errs))

	for _, c := range allCollections {
		if err, ok := e.Errs[c]; ok {
			parts = append(parts, string(c)+": "+err.Error())
		}
	}

	return "failed to load " + strings.Join(parts, "; ")
}

// Unwrap returns the per-collection errors.
func (e *LoadError) Unwrap() []error {
	errs := make([]error, 0, len(e.Errs))

	for _, c := range allCollections {
		if err, ok := e.Errs[c]; ok {
			errs = append(errs, err)
		}
	}

	return errs
}

// Failed reports whether collection c could not be loaded.
func (e *LoadError) Failed(c Collection) bool {
	if e == nil {
		return false
	}

	_, ok := e.Errs[c]

	return ok
}

// Names returns the failed collections in load order, nil for a nil error.
func (e *LoadError) Names() []string {
	if e == nil {
		return nil
	}

	names := make([]string, 0, len(e.Errs))

	for _, c := range allCollections {
		if _, ok := e.Errs[c]; ok {
			names = append(names, string(c))
		}
	}

	return names
}

// without returns a copy of e lacking collection c, nil when nothing else failed.
func (e *LoadError) without(c Collection) *LoadError {
	if !e.Failed(c) {
		return e
	}

	errs := make(map[Collection]error, len(e.Errs)-1)

	for coll, err := range e.Errs {
		if coll != c {
			errs[coll] = err
		}
	}

	if len(errs) == 0 {
		return nil
	}

	return &LoadError{Errs: errs}
}
