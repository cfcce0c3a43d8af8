// Package logo provides the logo upload action of the dashboard.
package logo

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/melitabakes/bakery/internal/config"
	"github.com/melitabakes/bakery/internal/web/handler"
	"github.com/melitabakes/bakery/internal/web/handler/dashboard"
)

const (
	// Path is the path of the logo upload action.
	Path = handler.AdminPath + "/logo"

	// Field is the multipart field carrying the logo.
	Field = "logo"
)

// Service provides the logo action.
type Service struct {
	cfg *config.Config
}

// Handler is the exported instance.
var Handler = Service{}

// Init registers routes.
func (s *Service) Init(app *fiber.App, cfg *config.Config) {
	if app == nil || cfg == nil {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)
		return
	}

	s.cfg = cfg

	app.Post(Path, s.Post)
}

// Post replaces the site logo.
func (s *Service) Post(c *fiber.Ctx) error {
	ctrl, err := handler.Controller(c)
	if err != nil {
		return c.Redirect(handler.LoginPath)
	}

	file, err := handler.FormFile(c, Field, s.cfg.Storage.MaxUploadSize)
	if err != nil {
		return dashboard.Finish(c, s.cfg, ctrl, err, "logo")
	}

	ctx, cancel := handler.RequestContext(c, s.cfg)
	defer cancel()

	return dashboard.Finish(c, s.cfg, ctrl, ctrl.UploadLogo(ctx, file), "logo")
}
