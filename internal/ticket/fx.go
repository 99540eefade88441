package ticket

import (
	"github.com/cordeirinhocaleb-stack/lagoaformosanomomento/internal/ticket/repository"
	"github.com/cordeirinhocaleb-stack/lagoaformosanomomento/internal/ticket/service"
	"go.uber.org/fx"
)

var Module = fx.Module("ticket.service",
	fx.Provide(
		repository.Provide,
		service.New,
	),
)
