// Package login provides the admin login page and the credential check.
package login

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/melitabakes/bakery/internal/admin"
	"github.com/melitabakes/bakery/internal/config"
	"github.com/melitabakes/bakery/internal/store"
	"github.com/melitabakes/bakery/internal/web/handler"
	"github.com/melitabakes/bakery/internal/web/navigation"
	"github.com/melitabakes/bakery/internal/web/session"
)

const (
	// Path is the path to the login page.
	Path = handler.LoginPath

	// TemplateName is the name of the login template.
	TemplateName = "login"
)

// ErrInvalidFormData is returned when the submitted login form cannot be parsed.
var ErrInvalidFormData = errors.New("invalid form data")

// Form is the submitted login form.
type Form struct {
	Email    string `form:"email"`
	Password string `form:"password"`
}

// Service is the login handler service.
type Service struct {
	cfg *config.Config
	st  admin.Store
}

// Handler is the login handler.
var Handler = Service{}

var _ handler.Service = (*Service)(nil)

// Init initializes the login handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, st admin.Store) error {
	if app == nil || cfg == nil || st == nil {
		return errors.New(handler.ErrNilACDFatalLogMsg)
	}

	s.cfg = cfg
	s.st = st

	app.Get(Path, s.Get)
	app.Post(Path, s.Post)

	return nil
}

// Get handles the login page rendering.
func (s *Service) Get(c *fiber.Ctx) error {
	return s.render(c, "", nil)
}

func (s *Service) render(c *fiber.Ctx, email string, err error) error {
	nav := navigation.NewContext("Login", "admin").
		AddBreadcrumb("Home", handler.RootPath, false).
		AddBreadcrumb("Login", Path, true)

	msg := ""

	switch {
	case err == nil:
	case errors.Is(err, ErrInvalidFormData):
		c.Status(fiber.StatusBadRequest)
		msg = err.Error()
	default:
		c.Status(handler.StatusFor(err))
		msg = handler.Message(err)
	}

	return c.Render(TemplateName, fiber.Map{
		"Title":      s.cfg.Title,
		"Navigation": nav,
		"LogoURL":    "",
		"AdminEmail": "",
		"Email":      email,
		"Error":      msg,
	}, handler.BaseLayout)
}

// Post checks the credentials, opens a session and redirects to the dashboard.
// Collections that fail to load after a successful login leave the admin logged in.
func (s *Service) Post(c *fiber.Ctx) error {
	form := new(Form)
	if err := c.BodyParser(form); err != nil {
		return s.render(c, "", ErrInvalidFormData)
	}

	ctrl := admin.NewController(s.st)

	ctx, cancel := handler.RequestContext(c, s.cfg)
	err := ctrl.Login(ctx, form.Email, form.Password)
	cancel()

	var loadErr *admin.LoadError

	switch {
	case err == nil:
	case errors.As(err, &loadErr):
		log.Warn().Err(err).Str("admin", store.NormalizeEmail(form.Email)).Msg("dashboard partially loaded")
	case errors.Is(err, store.ErrAuthFailure):
		log.Info().Str("admin", store.NormalizeEmail(form.Email)).Msg("login failed")
		return s.render(c, form.Email, err)
	default:
		log.Error().Err(err).Msg("login failed")
		return s.render(c, form.Email, err)
	}

	a := ctrl.Admin()

	sessionID, err := session.GenerateSessionID()
	if err != nil {
		log.Error().Err(err).Msg("failed to generate session ID")
		return s.render(c, form.Email, err)
	}

	sessData := &session.Data{AdminID: a.ID, AdminEmail: a.AdminEmail}
	if err = sessData.Write(sessionID, s.cfg.Webserver.Session.ExpiryTime); err != nil {
		log.Error().Err(err).Msg("failed to write session")
		return s.render(c, form.Email, err)
	}

	session.Controllers.Put(sessionID, ctrl)
	session.SetCookie(c, sessionID, s.cfg.Webserver.Session.ExpiryTime, s.cfg.DevMode)

	log.Info().Str("admin", a.AdminEmail).Msg("admin logged in")

	return c.Redirect(handler.AdminPath)
}
