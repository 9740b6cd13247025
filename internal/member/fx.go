package member

import (
	"github.com/lodgeworks/tesoro/internal/member/repository"
	"github.com/lodgeworks/tesoro/internal/member/service"
	"go.uber.org/fx"
)

var Module = fx.Module("member.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
