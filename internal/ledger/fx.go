package ledger

import (
	"github.com/lodgeworks/tesoro/internal/ledger/repository"
	"github.com/lodgeworks/tesoro/internal/ledger/service"
	"go.uber.org/fx"
)

var Module = fx.Module("ledger.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
