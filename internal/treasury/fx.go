package treasury

import (
	"github.com/lodgeworks/tesoro/internal/treasury/repository"
	"github.com/lodgeworks/tesoro/internal/treasury/service"
	"go.uber.org/fx"
)

var Module = fx.Module("treasury.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
