// Package home serves the public bakery page and its content as JSON.
package home

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/melitabakes/bakery/internal/admin"
	"github.com/melitabakes/bakery/internal/config"
	"github.com/melitabakes/bakery/internal/web/handler"
	"github.com/melitabakes/bakery/internal/web/navigation"
)

const (
	// Path is the public home page.
	Path = handler.RootPath

	// APIPath returns the public content as JSON.
	APIPath = "/api/content"

	// TemplateName is the name of the home template.
	TemplateName = "home"
)

// Service is the public page handler service.
type Service struct {
	cfg *config.Config
	st  admin.Reader
}

// Handler is the home handler.
var Handler = Service{}

var _ handler.Service = (*Service)(nil)

// Init initializes the home handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, st admin.Store) error {
	if app == nil || cfg == nil || st == nil {
		return errors.New(handler.ErrNilACDFatalLogMsg)
	}

	s.cfg = cfg
	s.st = st

	app.Get(Path, s.Get)
	app.Get(APIPath, s.Content)

	return nil
}

// load reads the public collections. Failed collections are logged and left
// empty so the page still renders what could be read.
func (s *Service) load(c *fiber.Ctx) (admin.Snapshot, *admin.LoadError, error) {
	ctx, cancel := handler.RequestContext(c, s.cfg)
	defer cancel()

	snap, err := admin.LoadContent(ctx, s.st, false)
	if err == nil {
		return snap, nil, nil
	}

	var loadErr *admin.LoadError
	if !errors.As(err, &loadErr) {
		return snap, nil, err //nolint:wrapcheck
	}

	for coll, e := range loadErr.Errs {
		log.Warn().Err(e).Str("collection", string(coll)).Msg("public content partially loaded")
	}

	return snap, loadErr, nil
}

// Get renders the public page.
func (s *Service) Get(c *fiber.Ctx) error {
	snap, loadErr, err := s.load(c)
	if err != nil {
		return err
	}

	nav := navigation.NewContext("Home", "home").
		AddBreadcrumb("Home", Path, true)

	return c.Render(TemplateName, fiber.Map{
		"Title":      s.cfg.Title,
		"Navigation": nav,
		"LogoURL":    snap.Settings.LogoURL,
		"AdminEmail": "",
		"Content":    snap,
		"Error":      "",
		// sections that could not be read render as unavailable
		"LoadFailures": loadErr.Names(),
	}, handler.BaseLayout)
}

// Content returns the public content and the names of the collections that failed to load.
func (s *Service) Content(c *fiber.Ctx) error {
	snap, loadErr, err := s.load(c)
	if err != nil {
		return err
	}

	failed := loadErr.Names()
	if failed == nil {
		failed = []string{}
	}

	return c.JSON(fiber.Map{
		"content": snap,
		"errors":  failed,
	})
}
