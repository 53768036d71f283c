package label

import (
	"github.com/warungkita/pos/internal/label/render"
	"github.com/warungkita/pos/internal/label/service"
	"go.uber.org/fx"
)

var Module = fx.Module("label.service",
	fx.Provide(render.NewRenderer),
	fx.Provide(service.NewService),
)
