package server

import (
	"context"
	"net/http"
	"time"

	"github.com/buestan/buestanflow/internal/catalog"
	"github.com/buestan/buestanflow/internal/config"
	"github.com/buestan/buestanflow/internal/consumption"
	consumptionservice "github.com/buestan/buestanflow/internal/consumption/service"
	"github.com/buestan/buestanflow/internal/history"
	historyservice "github.com/buestan/buestanflow/internal/history/service"
	"github.com/buestan/buestanflow/internal/kpi"
	kpiservice "github.com/buestan/buestanflow/internal/kpi/service"
	"github.com/buestan/buestanflow/internal/observability"
	obsmiddleware "github.com/buestan/buestanflow/internal/observability/logger"
	"github.com/buestan/buestanflow/internal/order"
	orderservice "github.com/buestan/buestanflow/internal/order/service"
	"github.com/buestan/buestanflow/internal/requirement"
	requirementservice "github.com/buestan/buestanflow/internal/requirement/service"
	"github.com/buestan/buestanflow/internal/supply"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("http.server",
	catalog.Module,
	supply.Module,
	history.Module,
	order.Module,
	requirement.Module,
	consumption.Module,
	kpi.Module,
	fx.Provide(registerGin),
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(obsCfg observability.Config) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obsmiddleware.GinMiddleware(obsmiddleware.MiddlewareConfig{
		Debug:           obsCfg.Debug(),
		ErrorClassifier: classifyErrorForLog,
	}))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(obsCfg observability.Config) *gin.Engine {
	return NewEngine(obsCfg)
}

func run(lc fx.Lifecycle, cfg config.Config, r *gin.Engine, log *zap.Logger) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Info("http server listening", zap.String("addr", srv.Addr))
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal("http server failed", zap.Error(err))
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
	engine         *gin.Engine
	cfg            config.Config
	orderSvc       *orderservice.Service
	requirementSvc *requirementservice.Service
	consumptionSvc *consumptionservice.Service
	historySvc     *historyservice.Service
	kpiSvc         *kpiservice.Service
}

type ServerParams struct {
	fx.In

	Gin            *gin.Engine
	Cfg            config.Config
	OrderSvc       *orderservice.Service
	RequirementSvc *requirementservice.Service
	ConsumptionSvc *consumptionservice.Service
	HistorySvc     *historyservice.Service
	KPISvc         *kpiservice.Service
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:         p.Gin,
		cfg:            p.Cfg,
		orderSvc:       p.OrderSvc,
		requirementSvc: p.RequirementSvc,
		consumptionSvc: p.ConsumptionSvc,
		historySvc:     p.HistorySvc,
		kpiSvc:         p.KPISvc,
	}

	svc.registerAPIRoutes()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/api")

	// -------- Orders --------
	api.GET("/orders", s.ListOrders)
	api.POST("/orders", RequireActor(), s.CreateOrder)
	api.GET("/orders/:id", s.GetOrder)
	api.PUT("/orders/:id/status", RequireActor(), s.UpdateOrderStatus)
	api.GET("/orders/:id/history", s.GetOrderHistory)
	api.GET("/orders/:id/supplies", s.GetOrderSupplies)
	api.GET("/orders/:id/consumption", s.GetOrderConsumption)

	// -------- Supplies --------
	api.POST("/supplies/consume", RequireActor(), s.ConsumeSupplies)

	// -------- History --------
	api.GET("/history", s.ListHistory)

	// -------- KPIs --------
	api.GET("/kpis", s.GetKPIs)
}
