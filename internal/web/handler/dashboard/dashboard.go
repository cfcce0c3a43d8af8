// Package dashboard renders the admin dashboard: all collections, the
// registered users and the draft forms of the session.
package dashboard

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/melitabakes/bakery/internal/admin"
	"github.com/melitabakes/bakery/internal/config"
	"github.com/melitabakes/bakery/internal/web/handler"
	"github.com/melitabakes/bakery/internal/web/navigation"
)

const (
	// Path is the path to the dashboard page.
	Path = handler.AdminPath

	// TemplateName is the name of the dashboard template.
	TemplateName = "admin/dashboard"
)

// Service is the dashboard handler service.
type Service struct {
	cfg *config.Config
}

// Handler is the dashboard handler.
var Handler = Service{}

// Init initializes the dashboard handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config) {
	if app == nil || cfg == nil {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)
		return
	}

	s.cfg = cfg

	app.Get(Path, s.Get)
}

// Get handles the dashboard page rendering.
func (s *Service) Get(c *fiber.Ctx) error {
	ctrl, err := handler.Controller(c)
	if err != nil {
		return c.Redirect(handler.LoginPath)
	}

	return Render(c, s.cfg, ctrl, nil)
}

// Render renders the dashboard of ctrl. A non nil err sets the status and the error message.
func Render(c *fiber.Ctx, cfg *config.Config, ctrl *admin.Controller, err error) error {
	nav := navigation.NewContext("Dashboard", "admin").
		AddBreadcrumb("Home", handler.RootPath, false).
		AddBreadcrumb("Dashboard", Path, true).
		AddAnchor("Cakes", "cakes").
		AddAnchor("Business hours", "hours").
		AddAnchor("Testimonials", "testimonials").
		AddAnchor("Contact", "contact").
		AddAnchor("Logo", "logo").
		AddAnchor("Users", "users")

	var (
		snap   = ctrl.Snapshot()
		drafts = ctrl.Drafts()
		email  string
	)

	if a := ctrl.Admin(); a != nil {
		email = a.AdminEmail
	}

	contact := drafts.Contact
	if contact == (admin.ContactForm{}) {
		contact = admin.ContactForm{
			Phone:     snap.Contact.Phone,
			Instagram: snap.Contact.Instagram,
			Address:   snap.Contact.Address,
		}
	}

	if err != nil {
		c.Status(handler.StatusFor(err))
	}

	return c.Render(TemplateName, fiber.Map{
		"Title":      cfg.Title,
		"Navigation": nav,
		"AdminEmail": email,
		"LogoURL":    snap.Settings.LogoURL,
		"Content":    snap,
		"Drafts":     drafts,
		"Contact":    contact,
		"Error":      handler.Message(err),
		// collections the last bulk load could not read
		"LoadFailures": ctrl.LoadFailures().Names(),
	}, handler.BaseLayout)
}

// Finish ends a dashboard action: redirect back on success, re-render with the error otherwise.
func Finish(c *fiber.Ctx, cfg *config.Config, ctrl *admin.Controller, err error, anchor string) error {
	if err == nil {
		return c.Redirect(Path + "#" + anchor)
	}

	if handler.StatusFor(err) >= fiber.StatusInternalServerError {
		log.Error().Err(err).Str("path", c.Path()).Msg("admin action failed")
	} else {
		log.Debug().Err(err).Str("path", c.Path()).Msg("admin action rejected")
	}

	return Render(c, cfg, ctrl, err)
}

// ParseForm decodes the request body into form. An undecodable body is
// reported as a validation error on the "form" field.
func ParseForm(c *fiber.Ctx, form any) error {
	if err := c.BodyParser(form); err != nil {
		log.Debug().Err(err).Str("path", c.Path()).Msg("failed to parse form")

		return &admin.ValidationError{Fields: map[string]string{"form": "parse"}}
	}

	return nil
}
