package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/melitabakes/bakery/internal/admin"
	"github.com/melitabakes/bakery/internal/config"
)

// Service is the interface for a web handler service that needs the content store.
type Service interface {
	Init(app *fiber.App, cfg *config.Config, st admin.Store) error
}
