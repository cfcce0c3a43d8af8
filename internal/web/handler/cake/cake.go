// Package cake provides the cake create, edit and delete actions of the dashboard.
package cake

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/melitabakes/bakery/internal/admin"
	"github.com/melitabakes/bakery/internal/config"
	"github.com/melitabakes/bakery/internal/web/handler"
	"github.com/melitabakes/bakery/internal/web/handler/dashboard"
)

const (
	// Path is the base path for cake management.
	Path = handler.AdminPath + "/cakes"

	anchor = "cakes"
)

// Service provides the cake actions.
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

// Create adds a cake. The image is mandatory.
func (s *Service) Create(c *fiber.Ctx) error {
	ctrl, err := handler.Controller(c)
	if err != nil {
		return c.Redirect(handler.LoginPath)
	}

	var form admin.CakeForm
	if err = dashboard.ParseForm(c, &form); err != nil {
		return dashboard.Finish(c, s.cfg, ctrl, err, anchor)
	}

	image, err := handler.FormFile(c, "image", s.cfg.Storage.MaxUploadSize)
	if err != nil {
		return dashboard.Finish(c, s.cfg, ctrl, err, anchor)
	}

	ctx, cancel := handler.RequestContext(c, s.cfg)
	defer cancel()

	return dashboard.Finish(c, s.cfg, ctrl, ctrl.AddCake(ctx, form, image), anchor)
}

// Update edits cake :id. Without a new image the stored one is kept.
func (s *Service) Update(c *fiber.Ctx) error {
	ctrl, err := handler.Controller(c)
	if err != nil {
		return c.Redirect(handler.LoginPath)
	}

	id, err := handler.ParseID(c)
	if err != nil {
		return dashboard.Finish(c, s.cfg, ctrl, err, anchor)
	}

	var form admin.CakeForm
	if err = dashboard.ParseForm(c, &form); err != nil {
		return dashboard.Finish(c, s.cfg, ctrl, err, anchor)
	}

	image, err := handler.FormFile(c, "image", s.cfg.Storage.MaxUploadSize)
	if err != nil {
		return dashboard.Finish(c, s.cfg, ctrl, err, anchor)
	}

	ctx, cancel := handler.RequestContext(c, s.cfg)
	defer cancel()

	return dashboard.Finish(c, s.cfg, ctrl, ctrl.EditCake(ctx, id, form, image), anchor)
}

// Delete removes cake :id when the form carries confirm=yes.
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

	return dashboard.Finish(c, s.cfg, ctrl, ctrl.DeleteCake(ctx, id, handler.Confirmed(c)), anchor)
}
