package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/stellabot/stella-gacha/stella"
	"github.com/stellabot/stella-gacha/stella/battle"
	"github.com/stellabot/stella-gacha/stella/config"
	"github.com/stellabot/stella-gacha/stella/database"
	"github.com/stellabot/stella-gacha/stella/database/repositories"
	"github.com/stellabot/stella-gacha/stella/economy/ledger"
	"github.com/stellabot/stella-gacha/stella/gacha"
	"github.com/stellabot/stella-gacha/stella/logger"
	"github.com/stellabot/stella-gacha/stella/services"
	"github.com/stellabot/stella-gacha/web/handlers"
	"github.com/stellabot/stella-gacha/web/middleware"
)

var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	logHandler := logger.NewHandler("Stella")
	slog.SetDefault(slog.New(logHandler))

	slog.Info("Starting Stella gacha service",
		slog.String("version", version),
		slog.String("commit", commit))

	path := flag.String("config", "config.toml", "path to config")
	skipSeed := flag.Bool("skip-seed", false, "skip seeding the starter catalog")
	flag.Parse()

	cfg, err := stella.LoadConfig(*path)
	if err != nil {
		logger.LogError("Failed to load configuration", err)
		os.Exit(-1)
	}
	logHandler.SetLevel(cfg.Log.Level)
	slog.Info("Configuration loaded successfully")

	slog.Info("Initializing database connection...")
	dbStartTime := time.Now()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	db, err := database.New(ctx, cfg.DB)
	if err != nil {
		slog.Error("Database connection failed",
			slog.String("error", err.Error()),
			slog.Duration("attempted_for", time.Since(dbStartTime)))
		os.Exit(-1)
	}
	defer db.Close()

	slog.Info("Database connected successfully",
		slog.String("database", cfg.DB.Database),
		slog.Duration("took", time.Since(dbStartTime)))

	if err := db.InitializeSchema(ctx); err != nil {
		logger.LogError("Failed to initialize database schema", err)
		os.Exit(-1)
	}

	userRepo := repositories.NewUserRepository(db.BunDB())
	cardRepo := repositories.NewCardRepository(db.BunDB())
	userCardRepo := repositories.NewUserCardRepository(db.BunDB())

	if !*skipSeed {
		if err := database.SeedCatalog(ctx, cardRepo); err != nil {
			logger.LogError("Failed to seed catalog", err)
			os.Exit(-1)
		}
	}

	led := ledger.New(db.BunDB(), userRepo, userCardRepo, ledger.Config{
		DailyReward:     cfg.Gacha.DailyReward,
		StartingBalance: cfg.Gacha.StartingBalance,
	})

	drawCfg, err := cfg.Gacha.EngineConfig()
	if err != nil {
		logger.LogError("Invalid gacha configuration", err)
		os.Exit(-1)
	}
	drawEngine := gacha.NewEngine(drawCfg, gacha.NewSource())
	battleEngine := battle.NewEngine(battle.Config{MaxTurns: cfg.Battle.MaxTurns})

	webApp := &handlers.App{
		Gacha:     services.NewGachaService(cardRepo, userCardRepo, led, drawEngine, cfg.Gacha.CostPerPull),
		Battle:    services.NewBattleService(userRepo, userCardRepo, cardRepo, battleEngine, gacha.NewSource(), cfg.Battle.MaxConcurrent),
		Ranking:   services.NewRankingService(userRepo, userCardRepo),
		Search:    services.NewSearchService(cardRepo),
		Ledger:    led,
		Users:     userRepo,
		Cards:     cardRepo,
		UserCards: userCardRepo,
		DB:        db,
		Version:   version,
	}

	app := fiber.New(fiber.Config{
		AppName:      "Stella Gacha API",
		ServerHeader: "Stella",
	})

	app.Use(recover.New())
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
	app.Use(cors.New())
	app.Use(middleware.LoggingMiddleware())

	handlers.RegisterRoutes(app, webApp)

	address := cfg.Server.Addr()
	slog.Info("Starting HTTP server", slog.String("address", address))

	s := make(chan os.Signal, 1)
	signal.Notify(s, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := app.Listen(address); err != nil {
			slog.Error("Failed to start server", slog.String("error", err.Error()))
			s <- syscall.SIGTERM
		}
	}()

	<-s
	slog.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
	defer shutdownCancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		logger.LogError("Server shutdown error", err)
	}

	logger.LogSystem("Shutdown complete")
}
