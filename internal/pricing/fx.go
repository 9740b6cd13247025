package pricing

import (
	"github.com/lodgeworks/tesoro/internal/pricing/repository"
	"github.com/lodgeworks/tesoro/internal/pricing/service"
	"go.uber.org/fx"
)

var Module = fx.Module("pricing.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
