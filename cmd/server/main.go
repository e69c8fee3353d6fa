package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"

	"segment-quantitation-service/internal/adapters/primary/http/handlers"
	"segment-quantitation-service/internal/adapters/primary/http/middleware"
	"segment-quantitation-service/internal/adapters/secondary/csvfile"
	"segment-quantitation-service/internal/adapters/secondary/gonumfit"
	"segment-quantitation-service/internal/adapters/secondary/memory"
	"segment-quantitation-service/internal/adapters/secondary/postgres"
	"segment-quantitation-service/internal/config"
	"segment-quantitation-service/internal/core/domain"
	"segment-quantitation-service/internal/core/ports/output"
	"segment-quantitation-service/internal/core/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	initLogger(cfg)

	// Calibration history (Optional - based on config)
	var runRepo ports.CalibrationRunRepository
	var pool *pgxpool.Pool
	if cfg.Database.Enabled {
		pool, err = newPool(cfg.Database)
		if err != nil {
			log.Fatalf("create db pool: %v", err)
		}
		defer pool.Close()

		if err := postgres.EnsureCalibrationRunSchema(context.Background(), pool); err != nil {
			log.Fatalf("ensure calibration_run schema: %v", err)
		}
		runRepo = postgres.NewCalibrationRunRepository(pool)
		log.Info("database connection established")
	} else {
		log.Info("calibration history disabled")
	}

	// ============================================================================
	// Hexagonal Architecture Wiring
	// ============================================================================

	// Secondary Adapters
	files := csvfile.NewStore(cfg.Processing.DataDir)
	sequenceRepo := memory.NewSequenceRepository()

	defaultParams := domain.Parameters{}
	if cfg.Processing.ParametersFile != "" {
		defaultParams, err = files.LoadParameters(context.Background(), cfg.Processing.ParametersFile)
		if err != nil {
			log.Fatalf("load parameters: %v", err)
		}
		log.WithField("groups", len(defaultParams)).Info("default parameters loaded")
	}
	defaultFilenames := domain.Filenames{
		QuantitationMethodsCSVInput:     cfg.Processing.MethodsInput,
		QuantitationMethodsCSVOutput:    cfg.Processing.MethodsOutput,
		StandardsConcentrationsCSVInput: cfg.Processing.StandardsInput,
		ParametersCSVInput:              cfg.Processing.ParametersFile,
	}

	// Core Services
	calibrationSvc := services.NewCalibrationService(gonumfit.NewFactory())
	processor := services.NewSegmentProcessor(calibrationSvc, files)
	sequenceSvc := services.NewSequenceService(sequenceRepo, runRepo, files, processor, cfg.Processing.MaxConcurrentSegments)

	// Primary Adapter (HTTP Handlers)
	h := handlers.New(sequenceSvc, defaultParams, defaultFilenames)

	router := gin.New()
	router.Use(middleware.RequestID(), middleware.Logging(), gin.Recovery())

	api := router.Group("/api/v1/quantitation")
	h.RegisterRoutes(api)

	router.GET("/healthz", func(c *gin.Context) {
		if pool != nil {
			if err := pool.Ping(c.Request.Context()); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "error": err.Error()})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		log.Infof("starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server forced shutdown: %v", err)
	}

	log.Info("server stopped")
}

func newPool(db config.DatabaseConfig) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(db.DSN())
	if err != nil {
		return nil, fmt.Errorf("parse db config: %w", err)
	}
	poolCfg.MaxConns = int32(db.MaxOpenConns)
	poolCfg.MinConns = int32(db.MaxIdleConns)
	poolCfg.MaxConnLifetime = db.ConnMaxLifetime

	pool, err := pgxpool.NewWithConfig(context.Background(), poolCfg)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(context.Background()); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}
	return pool, nil
}

func initLogger(cfg *config.Config) {
	level, err := log.ParseLevel(cfg.Logger.Level)
	if err != nil {
		level = log.InfoLevel
	}
	if cfg.Processing.Verbose && level < log.DebugLevel {
		level = log.DebugLevel
	}
	log.SetLevel(level)

	if cfg.Logger.Format == "json" {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
}
