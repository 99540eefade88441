package settings

import (
	"github.com/cordeirinhocaleb-stack/lagoaformosanomomento/internal/settings/repository"
	"github.com/cordeirinhocaleb-stack/lagoaformosanomomento/internal/settings/service"
	"go.uber.org/fx"
)

var Module = fx.Module("settings.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
