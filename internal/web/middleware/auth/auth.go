package auth

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/melitabakes/bakery/internal/admin"
	"github.com/melitabakes/bakery/internal/config"
	"github.com/melitabakes/bakery/internal/db/models"
	accesslog "github.com/melitabakes/bakery/internal/logger/adapter/fiber"
	"github.com/melitabakes/bakery/internal/web/handler"
	"github.com/melitabakes/bakery/internal/web/session"
)

// New returns the middleware guarding the admin area. It resolves the session
// cookie to the session's admin controller and stores it in fiber.Locals.
// A controller unknown to this process (after a restart of the registry) is
// recreated from the session data.
func New(cfg *config.Config, st admin.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var (
			isLoginPage  = IsLoginPage(c)
			isLogoutPage = IsLogoutPage(c)
		)

		// Allow logout page without authentication
		if isLogoutPage {
			return c.Next()
		}

		sessionID := c.Cookies(session.CookieName)

		sessData := new(session.Data)
		if err := sessData.Read(sessionID); err != nil || !sessData.Valid() {
			if err != nil && !errors.Is(err, session.ErrNoSession) {
				log.Error().Err(err).Msg("failed to read session")
			}

			if sessionID != "" {
				session.Controllers.Delete(sessionID)
			}

			// If we're already on the login page, don't redirect (would cause loop)
			if isLoginPage {
				return c.Next()
			}

			return c.Redirect(handler.LoginPath)
		}

		if isLoginPage {
			return c.Redirect(handler.AdminPath)
		}

		ctrl, ok := session.Controllers.Get(sessionID)
		if !ok {
			ctrl = admin.NewController(st)

			ctx, cancel := handler.RequestContext(c, cfg)
			err := ctrl.Restore(ctx, &models.Admin{ID: sessData.AdminID, AdminEmail: sessData.AdminEmail})
			cancel()

			var loadErr *admin.LoadError
			if err != nil && !errors.As(err, &loadErr) {
				return err //nolint:wrapcheck
			}

			session.Controllers.Put(sessionID, ctrl)
		}

		c.Locals(handler.LocalsController, ctrl)
		c.Locals(accesslog.LocalsAdminKey, sessData.AdminEmail)

		return c.Next()
	}
}

// IsLoginPage checks if the current request is for the login page.
func IsLoginPage(c *fiber.Ctx) bool {
	return strings.HasPrefix(strings.ToLower(c.Path()), handler.LoginPath)
}

// IsLogoutPage checks if the current request is for the logout page.
func IsLogoutPage(c *fiber.Ctx) bool {
	return strings.HasPrefix(strings.ToLower(c.Path()), handler.LogoutPath)
}
