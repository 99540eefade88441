package article

import (
	"github.com/cordeirinhocaleb-stack/lagoaformosanomomento/internal/article/repository"
	"github.com/cordeirinhocaleb-stack/lagoaformosanomomento/internal/article/service"
	"go.uber.org/fx"
)

var Module = fx.Module("article.service",
	fx.Provide(
		repository.Provide,
		service.New,
	),
)
