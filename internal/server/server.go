package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/warungkita/pos/internal/catalog"
	catalogdomain "github.com/warungkita/pos/internal/catalog/domain"
	"github.com/warungkita/pos/internal/config"
	"github.com/warungkita/pos/internal/label"
	labeldomain "github.com/warungkita/pos/internal/label/domain"
	"github.com/warungkita/pos/internal/observability"
	obsmiddleware "github.com/warungkita/pos/internal/observability/logger"
	obsmetrics "github.com/warungkita/pos/internal/observability/metrics"
	obstracing "github.com/warungkita/pos/internal/observability/tracing"
	"github.com/warungkita/pos/internal/order"
	orderdomain "github.com/warungkita/pos/internal/order/domain"
	"github.com/warungkita/pos/internal/storage"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("http.server",
	fx.Provide(registerGin),
	catalog.Module,
	order.Module,
	label.Module,
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obsmiddleware.GinMiddleware(obsmiddleware.MiddlewareConfig{
		Debug:           obsCfg.Debug(),
		ErrorClassifier: classifyErrorForLog,
	}))
	r.Use(obstracing.GinMiddleware())
	r.Use(obsmetrics.GinMiddleware(httpMetrics))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	return NewEngine(obsCfg, httpMetrics)
}

func run(lc fx.Lifecycle, cfg config.Config, r *gin.Engine) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine *gin.Engine
	cfg    config.Config
	db     *gorm.DB

	store      *storage.Store
	catalogSvc catalogdomain.Service
	orderSvc   orderdomain.Service
	labelSvc   labeldomain.Service
}

type ServerParams struct {
	fx.In

	Gin        *gin.Engine
	Cfg        config.Config
	DB         *gorm.DB
	Store      *storage.Store
	CatalogSvc catalogdomain.Service
	OrderSvc   orderdomain.Service
	LabelSvc   labeldomain.Service
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:     p.Gin,
		cfg:        p.Cfg,
		db:         p.DB,
		store:      p.Store,
		catalogSvc: p.CatalogSvc,
		orderSvc:   p.OrderSvc,
		labelSvc:   p.LabelSvc,
	}

	svc.registerStaticRoutes()
	svc.registerProductRoutes()
	svc.registerOrderRoutes()

	return svc
}

func (s *Server) registerStaticRoutes() {
	s.engine.Static("/storage", s.store.Root())
}
