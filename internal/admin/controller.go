// Package admin implements the admin session: login state, in-memory copies of
// the content collections, draft forms and the create/update/delete actions.
package admin

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog/log"

	"github.com/melitabakes/bakery/internal/blob"
	"github.com/melitabakes/bakery/internal/db/models"
	"github.com/melitabakes/bakery/internal/store"
)

// State of an admin session.
type State int

const (
	// LoggedOut is the initial state.
	LoggedOut State = iota
	// Authenticated is entered by a successful Login.
	Authenticated
)

func (s State) String() string {
	if s == Authenticated {
		return "authenticated"
	}

	return "logged out"
}

// Controller is one admin session. It is safe for concurrent use; mutations of
// one controller never overlap (ErrOperationPending).
type Controller struct {
	store Store

	mu       sync.RWMutex
	state    State
	admin    *models.Admin
	snapshot Snapshot
	drafts   Drafts
	loadErr  *LoadError

	pending atomic.Bool
}

// NewController returns a logged out controller.
func NewController(s Store) *Controller {
	return &Controller{store: s}
}

// State returns the session state.
func (c *Controller) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.state
}

// Admin returns a copy of the logged in admin, nil when logged out.
func (c *Controller) Admin() *models.Admin {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.admin == nil {
		return nil
	}

	a := *c.admin
	a.AdminPassword = ""

	return &a
}

// Snapshot returns the current in-memory content.
func (c *Controller) Snapshot() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.snapshot
}

// LoadFailures returns the collections the last bulk load could not read,
// nil when everything loaded. A collection is cleared once it reloads after a write.
func (c *Controller) LoadFailures() *LoadError {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.loadErr
}

// Drafts returns the retained form input.
func (c *Controller) Drafts() Drafts {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.drafts
}

// Login authenticates the admin and bulk loads all content including users.
// On failure the state is unchanged and ErrAuthFailure is returned.
// A failed bulk load after a successful login is returned as *LoadError; the session stays authenticated.
func (c *Controller) Login(ctx context.Context, email, password string) error {
	if !c.pending.CompareAndSwap(false, true) {
		return ErrOperationPending
	}
	defer c.pending.Store(false)

	a, err := c.store.AuthenticateAdmin(ctx, email, password)
	if err != nil {
		if !errors.Is(err, store.ErrAuthFailure) {
			log.Error().Err(err).Msg("unexpected authentication error")
		}

		return store.ErrAuthFailure
	}

	c.mu.Lock()
	c.state = Authenticated
	c.admin = a
	c.mu.Unlock()

	log.Info().Str("admin", a.AdminEmail).Msg("admin logged in")

	return c.BulkLoad(ctx)
}

// Restore marks the controller authenticated for an admin whose login was
// verified earlier (a resumed web session) and bulk loads the content.
func (c *Controller) Restore(ctx context.Context, a *models.Admin) error {
	c.mu.Lock()
	c.state = Authenticated
	c.admin = a
	c.mu.Unlock()

	return c.BulkLoad(ctx)
}

// Logout clears the session, admin only data and drafts.
func (c *Controller) Logout() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.admin != nil {
		log.Info().Str("admin", c.admin.AdminEmail).Msg("admin logged out")
	}

	c.state = LoggedOut
	c.admin = nil
	c.snapshot.Users = nil
	c.drafts = Drafts{}
	c.loadErr = c.loadErr.without(Users)
}

// BulkLoad refreshes all collections concurrently. Users are loaded only when authenticated.
// Collections that load replace the in-memory copy even when others fail.
func (c *Controller) BulkLoad(ctx context.Context) error {
	authenticated := c.State() == Authenticated

	snap, err := LoadContent(ctx, c.store, authenticated)

	var loadErr *LoadError
	if err != nil && !errors.As(err, &loadErr) {
		return err
	}

	c.mu.Lock()
	// a Logout during the load must not bring the users back
	includeUsers := authenticated && c.state == Authenticated
	if !includeUsers {
		loadErr = loadErr.without(Users)
	}

	c.snapshot.merge(snap, loadErr, includeUsers)
	c.loadErr = loadErr
	c.mu.Unlock()

	if err != nil {
		log.Warn().Err(err).Msg("bulk load incomplete")
	}

	return err
}

// begin guards a mutation: the session must be authenticated and idle.
// The returned func releases the guard.
func (c *Controller) begin() (func(), error) {
	if c.State() != Authenticated {
		return nil, ErrNotAuthenticated
	}

	if !c.pending.CompareAndSwap(false, true) {
		return nil, ErrOperationPending
	}

	return func() { c.pending.Store(false) }, nil
}

// reload refreshes one collection after a successful write. The write already
// happened, so a failed reload is only logged.
func (c *Controller) reload(ctx context.Context, coll Collection) {
	var err error

	switch coll {
	case Cakes:
		var cakes []models.Cake
		if cakes, err = c.store.ListCakes(ctx); err == nil {
			c.mu.Lock()
			c.snapshot.Cakes = cakes
			c.mu.Unlock()
		}
	case Hours:
		var hours []models.BusinessHour
		if hours, err = c.store.ListHours(ctx); err == nil {
			c.mu.Lock()
			c.snapshot.Hours = hours
			c.mu.Unlock()
		}
	case Testimonials:
		var testimonials []models.Testimonial
		if testimonials, err = c.store.ListTestimonials(ctx); err == nil {
			c.mu.Lock()
			c.snapshot.Testimonials = testimonials
			c.mu.Unlock()
		}
	case Contact:
		var contact models.ContactInfo
		if contact, err = c.store.GetContactInfo(ctx); err == nil {
			c.mu.Lock()
			c.snapshot.Contact = contact
			c.mu.Unlock()
		}
	case Settings:
		var settings models.SiteSettings
		if settings, err = c.store.GetSiteSettings(ctx); err == nil {
			c.mu.Lock()
			c.snapshot.Settings = settings
			c.mu.Unlock()
		}
	case Users:
		// users are never written by the controller
		return
	}

	if err != nil {
		log.Warn().Err(err).Str("collection", string(coll)).Msg("reload after write failed")
		return
	}

	c.mu.Lock()
	c.loadErr = c.loadErr.without(coll)
	c.mu.Unlock()
}

// compensate deletes a blob whose owning record could not be written.
func (c *Controller) compensate(ctx context.Context, obj blob.Object, cause error) {
	// the request context may be the reason the write failed
	cleanupCtx := context.WithoutCancel(ctx)

	if err := c.store.DeleteImage(cleanupCtx, obj); err != nil {
		store.OrphanBlobs.Inc()
		log.Error().Err(err).AnErr("cause", cause).
			Str("bucket", obj.Bucket).Str("key", obj.Key).
			Msg("failed to delete orphaned blob")

		return
	}

	log.Info().AnErr("cause", cause).Str("bucket", obj.Bucket).Str("key", obj.Key).
		Msg("deleted blob of failed write")
}

func (c *Controller) setDrafts(fn func(d *Drafts)) {
	c.mu.Lock()
	fn(&c.drafts)
	c.mu.Unlock()
}
