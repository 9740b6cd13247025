package organization

import (
	"github.com/lodgeworks/tesoro/internal/organization/repository"
	"github.com/lodgeworks/tesoro/internal/organization/service"
	"go.uber.org/fx"
)

var Module = fx.Module("organization.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
