// Package migration creates the schema on boot. The portal ships as a
// single binary, so gorm's AutoMigrate replaces external migration
// tooling.
package migration

import (
	"context"

	advertiserdomain "github.com/cordeirinhocaleb-stack/lagoaformosanomomento/internal/advertiser/domain"
	articledomain "github.com/cordeirinhocaleb-stack/lagoaformosanomomento/internal/article/domain"
	authdomain "github.com/cordeirinhocaleb-stack/lagoaformosanomomento/internal/auth/domain"
	"github.com/cordeirinhocaleb-stack/lagoaformosanomomento/internal/seed"
	settingsdomain "github.com/cordeirinhocaleb-stack/lagoaformosanomomento/internal/settings/domain"
	ticketdomain "github.com/cordeirinhocaleb-stack/lagoaformosanomomento/internal/ticket/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func models() []interface{} {
	return []interface{}{
		&authdomain.User{},
		&authdomain.Session{},
		&settingsdomain.Settings{},
		&advertiserdomain.Advertiser{},
		&articledomain.Article{},
		&ticketdomain.Ticket{},
		&ticketdomain.Reply{},
	}
}

func Run(db *gorm.DB, log *zap.Logger) error {
	if err := db.AutoMigrate(models()...); err != nil {
		log.Error("schema migration failed", zap.Error(err))
		return err
	}
	log.Info("schema migrated", zap.Int("models", len(models())))
	return nil
}

var Module = fx.Module("migration",
	fx.Invoke(registerHooks),
)

type hookParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	DB        *gorm.DB
	Log       *zap.Logger
	Seeder    *seed.Seeder
}

func registerHooks(p hookParams) {
	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := Run(p.DB, p.Log); err != nil {
				return err
			}
			return p.Seeder.Run(ctx)
		},
	})
}
