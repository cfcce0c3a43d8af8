package admin

import (
	"context"
	"errors"
	"sync"

	"github.com/melitabakes/bakery/internal/db/models"
	"github.com/melitabakes/bakery/internal/store"
)

// Collection names one content collection.
type Collection string

// The content collections.
const (
	Cakes        Collection = "cakes"
	Hours        Collection = "hours"
	Testimonials Collection = "testimonials"
	Contact      Collection = "contact"
	Settings     Collection = "settings"
	Users        Collection = "users"
)

var allCollections = []Collection{Cakes, Hours, Testimonials, Contact, Settings, Users}

// Snapshot is one consistent copy of all content collections.
type Snapshot struct {
	Cakes        []models.Cake         `json:"cakes"`
	Hours        []models.BusinessHour `json:"hours"`
	Testimonials []models.Testimonial  `json:"testimonials"`
	Contact      models.ContactInfo    `json:"contact"`
	Settings     models.SiteSettings   `json:"settings"`
	Users        []models.User         `json:"users,omitempty"`
}

// merge copies the collections of src that loaded into s.
func (s *Snapshot) merge(src Snapshot, loadErr *LoadError, includeUsers bool) {
	if !loadErr.Failed(Cakes) {
		s.Cakes = src.Cakes
	}

	if !loadErr.Failed(Hours) {
		s.Hours = src.Hours
	}

	if !loadErr.Failed(Testimonials) {
		s.Testimonials = src.Testimonials
	}

	if !loadErr.Failed(Contact) {
		s.Contact = src.Contact
	}

	if !loadErr.Failed(Settings) {
		s.Settings = src.Settings
	}

	if includeUsers && !loadErr.Failed(Users) {
		s.Users = src.Users
	}
}

// LoadContent reads all collections concurrently. Collections that load are
// populated even if others fail; the failures are returned as one *LoadError.
// Missing singleton rows are replaced by empty defaults.
func LoadContent(ctx context.Context, r Reader, includeUsers bool) (Snapshot, error) {
	var (
		snap Snapshot
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs = make(map[Collection]error)
	)

	run := func(c Collection, fn func() error) {
		wg.Add(1)

		go func() {
			defer wg.Done()

			if err := fn(); err != nil {
				mu.Lock()
				errs[c] = err
				mu.Unlock()
			}
		}()
	}

	run(Cakes, func() (err error) {
		snap.Cakes, err = r.ListCakes(ctx)
		return err
	})

	run(Hours, func() (err error) {
		snap.Hours, err = r.ListHours(ctx)
		return err
	})

	run(Testimonials, func() (err error) {
		snap.Testimonials, err = r.ListTestimonials(ctx)
		return err
	})

	run(Contact, func() error {
		contact, err := r.GetContactInfo(ctx)
		if errors.Is(err, store.ErrNotFound) {
			contact, err = models.ContactInfo{ID: models.SingletonID}, nil
		}

		snap.Contact = contact

		return err
	})

	run(Settings, func() error {
		settings, err := r.GetSiteSettings(ctx)
		if errors.Is(err, store.ErrNotFound) {
			settings, err = models.SiteSettings{ID: models.SingletonID}, nil
		}

		snap.Settings = settings

		return err
	})

	if includeUsers {
		run(Users, func() (err error) {
			snap.Users, err = r.ListUsers(ctx)
			return err
		})
	}

	wg.Wait()

	if len(errs) > 0 {
		return snap, &LoadError{Errs: errs}
	}

	return snap, nil
}
