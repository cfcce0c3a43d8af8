package daemon

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/melitabakes/bakery/internal/config"
	"github.com/melitabakes/bakery/internal/db/models"
	"github.com/melitabakes/bakery/internal/store"
)

type adminSeeder interface {
	CountAdmins(ctx context.Context) (int64, error)
	CreateAdmin(ctx context.Context, email, password string) (*models.Admin, error)
}

// seed creates the configured admin when the admins table is empty.
func seed(ctx context.Context, cfg *config.Config, st adminSeeder) error {
	count, err := st.CountAdmins(ctx)
	if err != nil {
		return err //nolint:wrapcheck
	}

	if count > 0 || cfg.Seed.AdminEmail == "" {
		return nil
	}

	if cfg.Seed.AdminPassword == "" {
		log.Warn().Str("admin", cfg.Seed.AdminEmail).Msg("seed admin has no password, skipping")
		return nil
	}

	a, err := st.CreateAdmin(ctx, cfg.Seed.AdminEmail, cfg.Seed.AdminPassword)
	if err != nil {
		return err //nolint:wrapcheck
	}

	log.Warn().Str("admin", a.AdminEmail).Msg("seeded initial admin, change its password")

	return nil
}

var _ adminSeeder = (*store.Client)(nil)
