// Package auth provides the authentication middleware of the admin area.
//
// The middleware performs the following tasks:
//   - Validates the session cookie and redirects to the login page if invalid
//   - Puts the session's admin controller into fiber.Locals for the handlers
//   - Puts the admin email into fiber.Locals for the access log
//   - Allows the login and logout pages without a session
//   - Prevents redirect loops on the login page
//
// Usage:
//
//	app.Use(handler.AdminPath, auth.New(cfg, store))
package auth
