package seed

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/savi/placement-portal/internal/app/models"
	"github.com/savi/placement-portal/internal/app/repositories"
	"github.com/savi/placement-portal/internal/config"
	"github.com/savi/placement-portal/internal/pkg/auth"
)

// EnsureDefaultAdmin creates the bootstrap admin account when the admins
// collection is empty, using the configured credentials.
func EnsureDefaultAdmin(ctx context.Context, cfg *config.Config, adminRepo *repositories.AdminRepository, lgr zerolog.Logger) error {
	count, err := adminRepo.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := auth.HashPassword(cfg.Admin.Password)
	if err != nil {
		return err
	}

	admin := &models.Admin{
		Username:  cfg.Admin.Username,
		Password:  hash,
		CreatedAt: time.Now().UTC(),
		IsActive:  true,
	}
	if err := adminRepo.Create(ctx, admin); err != nil {
		return err
	}

	lgr.Info().Str("username", admin.Username).Msg("Default admin account created")
	return nil
}
