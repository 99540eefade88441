// Package seed bootstraps the records a fresh install needs before the
// first login: the admin account and the settings row.
package seed

import (
	"context"
	"errors"

	authdomain "github.com/cordeirinhocaleb-stack/lagoaformosanomomento/internal/auth/domain"
	"github.com/cordeirinhocaleb-stack/lagoaformosanomomento/internal/config"
	settingsdomain "github.com/cordeirinhocaleb-stack/lagoaformosanomomento/internal/settings/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Cfg      config.Config
	Log      *zap.Logger
	Auth     authdomain.Service
	Settings settingsdomain.Service
}

type Seeder struct {
	cfg      config.Config
	log      *zap.Logger
	auth     authdomain.Service
	settings settingsdomain.Service
}

func New(p Params) *Seeder {
	return &Seeder{
		cfg:      p.Cfg,
		log:      p.Log.Named("seed"),
		auth:     p.Auth,
		settings: p.Settings,
	}
}

func (s *Seeder) Run(ctx context.Context) error {
	if err := s.ensureSettings(ctx); err != nil {
		return err
	}
	return s.ensureDefaultAdmin(ctx)
}

func (s *Seeder) ensureSettings(ctx context.Context) error {
	// Get falls back to defaults when the row is missing; Update with no
	// fields persists them.
	_, err := s.settings.Update(ctx, settingsdomain.UpdateSettingsRequest{})
	return err
}

func (s *Seeder) ensureDefaultAdmin(ctx context.Context) error {
	if !s.cfg.Bootstrap.EnsureDefaultAdmin {
		return nil
	}

	_, err := s.auth.CreateUser(ctx, authdomain.CreateUserRequest{
		Email:    s.cfg.Bootstrap.AdminEmail,
		Password: s.cfg.Bootstrap.AdminPassword,
		Role:     authdomain.RoleAdmin,
	})
	if errors.Is(err, authdomain.ErrUserExists) {
		return nil
	}
	if err != nil {
		return err
	}
	s.log.Info("default admin created", zap.String("email", s.cfg.Bootstrap.AdminEmail))
	return nil
}

var Module = fx.Module("seed",
	fx.Provide(New),
)
