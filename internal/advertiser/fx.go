package advertiser

import (
	"github.com/cordeirinhocaleb-stack/lagoaformosanomomento/internal/advertiser/repository"
	"github.com/cordeirinhocaleb-stack/lagoaformosanomomento/internal/advertiser/service"
	"go.uber.org/fx"
)

var Module = fx.Module("advertiser.service",
	fx.Provide(
		repository.Provide,
		service.New,
	),
)
