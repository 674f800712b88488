package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
	"go.uber.org/zap"

	reporthttp "github.com/Children-Of-Regions/pdf-service/adapters/http"
	storedrive "github.com/Children-Of-Regions/pdf-service/adapters/store/drive"
	storefs "github.com/Children-Of-Regions/pdf-service/adapters/store/fs"
	"github.com/Children-Of-Regions/pdf-service/adapters/surface"
	trackerbun "github.com/Children-Of-Regions/pdf-service/adapters/tracker/bun"
	"github.com/Children-Of-Regions/pdf-service/report"
)

func main() {
	_ = godotenv.Load()
	cfg := FromEnv()

	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger init failed: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	chromium := &surface.Chromium{
		BrowserPath: cfg.Surface.BrowserPath,
		Headless:    cfg.Surface.Headless,
		Args:        cfg.Surface.Args,
		LoadTimeout: cfg.Surface.LoadTimeout,
		SettleDelay: cfg.Surface.SettleDelay,
	}
	defer func() { _ = chromium.Close() }()

	localStore := storefs.NewStore(cfg.OutputDir)

	var remoteStore report.Store
	if cfg.Drive.CredentialsFile != "" {
		drive := storedrive.NewStore(cfg.Drive.CredentialsFile)
		drive.DefaultFolderID = cfg.Drive.FolderID
		remoteStore = drive
	}

	tracker, closeTracker, err := buildTracker(cfg)
	if err != nil {
		logger.Fatal("tracker init failed", zap.Error(err))
	}
	defer closeTracker()

	generator := &report.Generator{
		TemplatePath: cfg.TemplatePath,
		Surface:      chromium,
		Store:        remoteStore,
		LocalStore:   localStore,
		Tracker:      tracker,
		Options:      report.Options{AcademyKeptByStory: cfg.AcademyKeptByStory},
		Logger:       logger,
	}

	app := fiber.New(fiber.Config{
		AppName:               "profile-report-service",
		DisableStartupMessage: true,
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Content-Type",
	}))

	handler := &reporthttp.Handler{
		Generator: generator,
		Tracker:   tracker,
		Logger:    logger,
	}
	handler.Register(app)

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	go func() {
		logger.Info("server listening",
			zap.String("addr", addr),
			zap.String("template", cfg.TemplatePath))
		if err := app.Listen(addr); err != nil {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	if err := app.Shutdown(); err != nil {
		logger.Warn("shutdown error", zap.Error(err))
	}
}

// buildTracker prefers the SQLite history store and falls back to the
// in-memory tracker when no database is configured.
func buildTracker(cfg Config) (report.Tracker, func(), error) {
	if cfg.SQLitePath == "" {
		return report.NewMemoryTracker(), func() {}, nil
	}

	sqldb, err := sql.Open(sqliteshim.ShimName, cfg.SQLitePath)
	if err != nil {
		return nil, nil, err
	}
	db := bun.NewDB(sqldb, sqlitedialect.New())
	if err := trackerbun.EnsureSchema(context.Background(), db); err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	return trackerbun.NewTracker(db), func() { _ = db.Close() }, nil
}
