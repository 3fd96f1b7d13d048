package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"conductor/config"
	"conductor/database"
	"conductor/pkg/middleware"
	"conductor/pkg/zone"
	"conductor/router"

	// Auth
	authCtrlImp "conductor/pkg/auth/controllerImp"

	// Catalog
	catCtrlImp "conductor/pkg/catalog/controllerImp"
	catRepoImp "conductor/pkg/catalog/repositoryImp"
	catSvcImp "conductor/pkg/catalog/serviceImp"

	// Bed
	bedCtrlImp "conductor/pkg/bed/controllerImp"
	bedRepoImp "conductor/pkg/bed/repositoryImp"
	bedSvcImp "conductor/pkg/bed/serviceImp"

	// Planting
	plantCtrlImp "conductor/pkg/planting/controllerImp"
	plantRepoImp "conductor/pkg/planting/repositoryImp"
	plantSvcImp "conductor/pkg/planting/serviceImp"

	// Brix
	brixCtrlImp "conductor/pkg/brix/controllerImp"
	brixRepoImp "conductor/pkg/brix/repositoryImp"
	brixSvcImp "conductor/pkg/brix/serviceImp"

	// Health
	healthCtrlImp "conductor/pkg/health/controllerImp"
)

func main() {
	// 1) Config + logger
	cfg := config.Load()
	logger, err := config.NewLogger(cfg)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 2) DB (sqlite) + automigrate
	db, err := database.Open(cfg.DBPath)
	if err != nil {
		logger.Fatal("database", zap.String("path", cfg.DBPath), zap.Error(err))
	}

	// 3) Zones
	zones, err := zone.LoadFile(cfg.ZonesPath)
	if err != nil {
		logger.Warn("zones file ignored, using defaults", zap.String("path", cfg.ZonesPath), zap.Error(err))
		zones = zone.Defaults()
	} else if cfg.ZonesPath != "" {
		if err := zone.Watch(ctx, cfg.ZonesPath, zones, logger.Named("zones")); err != nil {
			logger.Warn("zones file not watched", zap.Error(err))
		}
	}

	// 4) Catalog + seed
	catSvc := catSvcImp.New(catRepoImp.New(db), logger.Named("catalog"))
	if n, err := catSvc.SeedIfEmpty(cfg.CatalogSeed); err != nil {
		logger.Warn("catalog seed failed", zap.String("path", cfg.CatalogSeed), zap.Error(err))
	} else if n > 0 {
		logger.Info("catalog seeded", zap.Int("crops", n))
	}

	// 5) Services
	bedSvc := bedSvcImp.NewBedService(bedRepoImp.New(db))
	plantSvc := plantSvcImp.New(plantRepoImp.New(db), bedSvc, catSvc, zones, logger.Named("planting"))
	brixSvc := brixSvcImp.NewBrixService(brixRepoImp.New(db), bedSvc, logger.Named("brix"))

	// 6) Echo
	e := echo.New()
	e.HideBanner = true
	e.Use(echoMiddleware.Recover())
	e.Use(middleware.RequestLog(logger.Named("http")))

	r := router.New(
		e,
		cfg.StewardHeader,
		catCtrlImp.New(catSvc, cfg.AllowedHosts, cfg.MaxFetchBytes, logger.Named("catalog")),
		bedCtrlImp.New(bedSvc),
		plantCtrlImp.New(plantSvc),
		brixCtrlImp.New(brixSvc),
		authCtrlImp.NewAuthController(),
		healthCtrlImp.NewHealthCtrl(db, zones),
	)

	// 7) Start
	go func() {
		logger.Info("listening", zap.String("port", cfg.Port), zap.String("env", cfg.AppEnv))
		if err := r.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server stopped", zap.Error(err))
		}
	}()
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := r.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", zap.Error(err))
	}
}
