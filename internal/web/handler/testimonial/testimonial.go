// Package testimonial provides the testimonial actions of the dashboard.
package testimonial

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/melitabakes/bakery/internal/admin"
	"github.com/melitabakes/bakery/internal/config"
	"github.com/melitabakes/bakery/internal/web/handler"
	"github.com/melitabakes/bakery/internal/web/handler/dashboard"
)

const (
	// Path is the base path for testimonial management.
	Path = handler.AdminPath + "/testimonials"

	anchor = "testimonials"
)

// Service provides the testimonial actions.
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

	app.Post(Path, s.Create)
	app.Post(Path+"/:id", s.Update)
	app.Post(Path+"/:id/delete", s.Delete)
}

// Create adds a testimonial.
func (s *Service) Create(c *fiber.Ctx) error {
	ctrl, err := handler.Controller(c)
	if err != nil {
		return c.Redirect(handler.LoginPath)
	}

	var form admin.TestimonialForm
	if err = dashboard.ParseForm(c, &form); err != nil {
		return dashboard.Finish(c, s.cfg, ctrl, err, anchor)
	}

	ctx, cancel := handler.RequestContext(c, s.cfg)
	defer cancel()

	return dashboard.Finish(c, s.cfg, ctrl, ctrl.AddTestimonial(ctx, form), anchor)
}

// Update replaces testimonial :id.
func (s *Service) Update(c *fiber.Ctx) error {
	ctrl, err := handler.Controller(c)
	if err != nil {
		return c.Redirect(handler.LoginPath)
	}

	id, err := handler.ParseID(c)
	if err != nil {
		return dashboard.Finish(c, s.cfg, ctrl, err, anchor)
	}

	var form admin.TestimonialForm
	if err = dashboard.ParseForm(c, &form); err != nil {
		return dashboard.Finish(c, s.cfg, ctrl, err, anchor)
	}

	ctx, cancel := handler.RequestContext(c, s.cfg)
	defer cancel()

	return dashboard.Finish(c, s.cfg, ctrl, ctrl.EditTestimonial(ctx, id, form), anchor)
}

// Delete removes testimonial :id when confirmed.
func (s *Service) Delete(c *fiber.Ctx) error {
	ctrl, err := handler.Controller(c)
	if err != nil {
		return c.Redirect(handler.LoginPath)
	}

	id, err := handler.ParseID(c)
	if err != nil {
		return dashboard.Finish(c, s.cfg, ctrl, err, anchor)
	}

	ctx, cancel := handler.RequestContext(c, s.cfg)
	defer cancel()

	return dashboard.Finish(c, s.cfg, ctrl, ctrl.DeleteTestimonial(ctx, id, handler.Confirmed(c)), anchor)
}
