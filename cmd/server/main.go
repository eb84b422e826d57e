package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"

	"github.com/smartcity/lowemission/internal/config"
	"github.com/smartcity/lowemission/internal/delivery/http"
	"github.com/smartcity/lowemission/internal/domain"
	applog "github.com/smartcity/lowemission/internal/logger"
	"github.com/smartcity/lowemission/internal/repository/geojsonfile"
	"github.com/smartcity/lowemission/internal/repository/osm"
	"github.com/smartcity/lowemission/internal/repository/postgres"
	"github.com/smartcity/lowemission/internal/service"
)

func main() {
	// Configuration
	cfg := config.Load()
	applog.Init(cfg.LogLevel, cfg.LogFormat)
	cfg.LogLoadNotes()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// Feature sources
	features, base, backend, closeBackend := setupSources(cfg)
	defer closeBackend()

	// Engine and its collaborators
	surface := service.NewLayerSet()
	board := service.NewBoard(service.DefaultSlots...)
	engine := service.NewEngine(surface, service.NewAirQualityEstimator(nil), cfg.InitialHour)
	engine.Subscribe(service.Presenter(board))
	engine.Subscribe(func(s domain.Snapshot) {
		log.WithFields(log.Fields{
			"clock":       s.Clock,
			"regime":      s.Regime,
			"closed_road": s.Stats.ClosedRoad,
			"open_road":   s.Stats.OpenRoad,
			"aqi":         s.AirQuality.Index,
		}).Debug("State updated")
	})

	// One-shot background load; the API serves empty layers until it lands
	loader := service.NewLoader(engine, features, base)
	loader.Start(cfg.LoadTimeout)

	// Fiber App
	app := fiber.New(fiber.Config{
		AppName:      "Low Emission Zone API v1.0",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		ErrorHandler: http.ErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${method} ${path} (${latency})\n",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}))

	// Routes
	http.SetupRoutes(app, http.NewHandler(engine, surface, board, backend))

	// Graceful shutdown
	go func() {
		log.Infof("Server starting on :%s", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")
	if err := app.ShutdownWithTimeout(5 * time.Second); err != nil {
		log.Errorf("Server forced to shutdown: %v", err)
	}
	loader.WaitBackground()
	log.Info("Server exited gracefully")
}

// setupSources picks the feature backends: PostGIS when DATABASE_URL is
// reachable, otherwise the GeoJSON files, otherwise the built-in sample.
// An Overpass endpoint, when set, replaces the OSM base layer source.
func setupSources(cfg *config.Config) (features, base service.FeatureSource, backend http.HealthChecker, closeFn func()) {
	closeFn = func() {}

	switch {
	case cfg.DatabaseURL != "":
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err == nil {
			err = pool.Ping(ctx)
			if err != nil {
				pool.Close()
			}
		}
		if err != nil {
			log.WithError(err).Warn("Could not connect to database, falling back to files")
			features, base, backend = fileSources(cfg)
			break
		}

		log.Info("Connected to PostgreSQL")
		repo := postgres.NewRepository(pool)
		features, base, backend = repo.LowEmission(), repo.Base(), repo
		closeFn = pool.Close

	default:
		features, base, backend = fileSources(cfg)
	}

	if cfg.OverpassURL != "" {
		src, err := osm.NewSource(cfg.OverpassURL, cfg.OverpassBBox, cfg.LoadTimeout)
		if err != nil {
			log.WithError(err).Warn("Ignoring Overpass configuration")
		} else {
			log.WithField("bbox", cfg.OverpassBBox).Info("Using Overpass for the OSM base layer")
			base = src
		}
	}

	return features, base, backend, closeFn
}

// fileSources uses the GeoJSON documents when present and the built-in
// sample when the low emission document is missing.
func fileSources(cfg *config.Config) (features, base service.FeatureSource, backend http.HealthChecker) {
	mock := postgres.NewMockRepository()

	if _, err := os.Stat(cfg.FeaturesPath); err != nil {
		log.WithField("path", cfg.FeaturesPath).Warn("Feature file not found, running with sample data")
		return mock.LowEmission(), mock.Base(), mock
	}

	features = geojsonfile.NewSource(cfg.FeaturesPath)
	if _, err := os.Stat(cfg.BaseLayerPath); err == nil {
		base = geojsonfile.NewSource(cfg.BaseLayerPath)
	} else {
		log.WithField("path", cfg.BaseLayerPath).Warn("OSM base layer file not found, layer stays empty")
	}
	return features, base, mock
}
