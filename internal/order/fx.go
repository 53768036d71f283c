package order

import (
	"github.com/warungkita/pos/internal/order/repository"
	"github.com/warungkita/pos/internal/order/service"
	"go.uber.org/fx"
)

var Module = fx.Module("order.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.NewService),
)
