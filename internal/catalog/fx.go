package catalog

import (
	"github.com/warungkita/pos/internal/catalog/repository"
	"github.com/warungkita/pos/internal/catalog/service"
	"go.uber.org/fx"
)

var Module = fx.Module("catalog.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.NewService),
)
