// internal/app/server.go
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"crm-service/internal/config"
	"crm-service/internal/db"
	addressHandler "crm-service/internal/handlers/address"
	customerHandler "crm-service/internal/handlers/customer"
	dashboardHandler "crm-service/internal/handlers/dashboard"
	healthHandler "crm-service/internal/handlers/health"
	"crm-service/internal/middleware"
	"crm-service/internal/repository/memory"
	"crm-service/internal/repository/postgres"
	addresssvc "crm-service/internal/service/address"
	customersvc "crm-service/internal/service/customer"
	dashboardsvc "crm-service/internal/service/dashboard"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

const Version = "1.0.0"

// CustomerStore is everything the services need from customer storage.
type CustomerStore interface {
	customersvc.CustomerRepository
	dashboardsvc.CustomerStats
}

// AddressStore is everything the services need from address storage.
type AddressStore interface {
	addresssvc.AddressRepository
	dashboardsvc.AddressStats
}

type Stores struct {
	Customers CustomerStore
	Addresses AddressStore
	Health    healthHandler.Pinger
}

type Server struct {
	cfg    config.AppConfig
	engine *gin.Engine
	http   *http.Server
	logger *zap.Logger
	pool   *pgxpool.Pool
}

// NewServer connects storage, applies the schema and builds the HTTP stack.
// Call Start to begin serving and Shutdown to release resources.
func NewServer(ctx context.Context) (*Server, error) {
	cfg := config.Load()

	logger, err := newLogger(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}

	s := &Server{cfg: cfg, logger: logger}

	stores, err := s.openStores(ctx)
	if err != nil {
		return nil, err
	}

	var registry *prometheus.Registry
	if cfg.MetricsEnabled {
		registry = prometheus.NewRegistry()
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	s.engine = NewEngine(cfg, stores, registry, logger)
	s.http = &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      s.engine,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	return s, nil
}

func newLogger(cfg config.AppConfig) (*zap.Logger, error) {
	if cfg.IsDevelopment() {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func (s *Server) openStores(ctx context.Context) (Stores, error) {
	if s.cfg.StorageDriver == "memory" {
		s.logger.Warn("using in-memory storage; data is lost on restart")
		store := memory.NewStore()
		return Stores{Customers: store.Customers(), Addresses: store.Addresses(), Health: store}, nil
	}

	// ----- PostgreSQL -----
	if err := db.MigrateURL(ctx, s.cfg.DatabaseURL); err != nil {
		return Stores{}, fmt.Errorf("failed to apply schema: %w", err)
	}

	pool, err := db.ConnectDB(ctx, s.cfg, s.logger)
	if err != nil {
		return Stores{}, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}
	s.pool = pool

	handle := postgres.NewDB(pool)
	return Stores{
		Customers: postgres.NewCustomerRepository(handle),
		Addresses: postgres.NewAddressRepository(handle),
		Health:    handle,
	}, nil
}

// NewEngine wires services, handlers and middleware onto a gin engine.
// A nil registry disables metrics.
func NewEngine(cfg config.AppConfig, stores Stores, registry *prometheus.Registry, logger *zap.Logger) *gin.Engine {
	// ----- Services -----
	customerService := customersvc.NewCustomerService(stores.Customers, stores.Addresses, logger)
	addressService := addresssvc.NewAddressService(stores.Addresses, stores.Customers, logger)
	dashboardService := dashboardsvc.NewDashboardService(stores.Customers, stores.Addresses, logger)

	// ----- Handlers -----
	handlers := &Handlers{
		CustomerHandler:  customerHandler.NewCustomerHandler(customerService, logger),
		AddressHandler:   addressHandler.NewAddressHandler(addressService, logger),
		DashboardHandler: dashboardHandler.NewDashboardHandler(dashboardService, logger),
		HealthHandler:    healthHandler.NewHealthHandler(stores.Health, Version, logger),
	}

	// ----- Middlewares -----
	engine := gin.New()
	engine.Use(
		middleware.RequestIDMiddleware(),
		middleware.RecoveryMiddleware(logger),
		middleware.LoggingMiddleware(logger),
		middleware.CORSMiddleware(cfg.AllowedOrigins),
	)
	if registry != nil {
		engine.Use(middleware.NewMetrics(registry).Handler())
		handlers.MetricsHandler = promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
	}

	// ----- Router -----
	SetupRouter(engine, logger, handlers)
	return engine
}

// Start serves HTTP until Shutdown is called.
func (s *Server) Start() error {
	s.logger.Info("server running", zap.String("addr", s.cfg.HTTPAddr), zap.String("storage", s.cfg.StorageDriver))
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests, then closes the database pool.
func (s *Server) Shutdown(ctx context.Context) error {
	err := s.http.Shutdown(ctx)
	if s.pool != nil {
		s.pool.Close()
	}
	_ = s.logger.Sync()
	return err
}

func (s *Server) Logger() *zap.Logger {
	return s.logger
}

func (s *Server) Config() config.AppConfig {
	return s.cfg
}
