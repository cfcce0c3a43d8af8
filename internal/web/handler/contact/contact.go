// Package contact provides the contact information action of the dashboard.
package contact

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/melitabakes/bakery/internal/admin"
	"github.com/melitabakes/bakery/internal/config"
	"github.com/melitabakes/bakery/internal/web/handler"
	"github.com/melitabakes/bakery/internal/web/handler/dashboard"
)

// Path is the path of the contact form action.
const Path = handler.AdminPath + "/contact"

// Service provides the contact action.
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

// Post saves the contact information singleton.
func (s *Service) Post(c *fiber.Ctx) error {
	ctrl, err := handler.Controller(c)
	if err != nil {
		return c.Redirect(handler.LoginPath)
	}

	var form admin.ContactForm
	if err = dashboard.ParseForm(c, &form); err != nil {
		return dashboard.Finish(c, s.cfg, ctrl, err, "contact")
	}

	ctx, cancel := handler.RequestContext(c, s.cfg)
	defer cancel()

	return dashboard.Finish(c, s.cfg, ctrl, ctrl.SaveContactInfo(ctx, form), "contact")
}
