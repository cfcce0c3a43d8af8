// Package logout ends admin sessions.
package logout

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/melitabakes/bakery/internal/config"
	"github.com/melitabakes/bakery/internal/web/handler"
	"github.com/melitabakes/bakery/internal/web/session"
)

// Path is the path of the logout action.
const Path = handler.LogoutPath

// Service is the logout handler service.
type Service struct {
	cfg *config.Config
}

// Handler is the logout handler.
var Handler = Service{}

// Init initializes the logout handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config) {
	if app == nil || cfg == nil {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)
		return
	}

	s.cfg = cfg

	// the auth middleware lets this path through without a session
	app.Get(Path, s.Logout)
	app.Post(Path, s.Logout)
}

// Logout drops the session data, discards the session's controller and clears the cookie.
func (s *Service) Logout(c *fiber.Ctx) error {
	sessionID := c.Cookies(session.CookieName)
	if sessionID != "" {
		if err := session.Delete(sessionID); err != nil {
			log.Error().Err(err).Msg("failed to delete session")
		}

		if ctrl, ok := session.Controllers.Delete(sessionID); ok {
			ctrl.Logout()
		}
	}

	session.ClearCookie(c, s.cfg.DevMode)

	return c.Redirect(handler.LoginPath)
}
