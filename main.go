// gorand is the randomness validation server. It receives number
// streams over HTTP, runs them through the NIST statistical battery,
// and serves verdicts, history, and reports.
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"gorand/adapters/memory"
	"gorand/adapters/postgres"
	"gorand/adapters/stats/nist"
	"gorand/adapters/stats/quick"
	"gorand/app"
	"gorand/internal/config"
	"gorand/internal/migration"
	"gorand/internal/ops"
	"gorand/ports"
	"gorand/ui"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := newLogger(appConfig.Logging.Level)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	sugar := logger.Sugar()

	history, cleanup, err := initHistory(appConfig, sugar)
	if err != nil {
		sugar.Fatalw("failed to initialize history store", "error", err)
	}
	defer cleanup()

	validation := app.NewValidationService(
		nist.NewEngine(sugar),
		quick.NewBattery(sugar),
		history,
		sugar,
		appConfig.Paths.DebugDir,
	)
	historyService := app.NewHistoryService(history, sugar)

	// Operational endpoints live on their own listener so pprof and
	// liveness probes never share a port with the public API.
	if appConfig.Profiling.Enabled {
		go func() {
			addr := ":" + appConfig.Profiling.Port
			sugar.Infow("ops listener starting", "addr", addr)
			if err := http.ListenAndServe(addr, ops.Router()); err != nil {
				sugar.Warnw("ops listener stopped", "error", err)
			}
		}()
	}

	gin.SetMode(appConfig.Server.GinMode)
	server := ui.NewServer(sugar)
	if err := server.Initialize(validation, historyService); err != nil {
		sugar.Fatalw("failed to initialize server", "error", err)
	}

	sugar.Infow("starting gorand server", "port", appConfig.Server.Port)
	if err := server.Start(":" + appConfig.Server.Port); err != nil {
		sugar.Fatalw("server stopped", "error", err)
	}
}

// initHistory connects the PostgreSQL history store when DATABASE_URL
// is configured, and falls back to the bounded in-process store so the
// validator runs without any infrastructure.
func initHistory(appConfig *config.Config, logger *zap.SugaredLogger) (ports.HistoryPort, func(), error) {
	if appConfig.Database.URL == "" {
		logger.Infow("no database configured, using in-process history store")
		return memory.NewHistoryStore(), func() {}, nil
	}

	db, err := sqlx.Connect("postgres", appConfig.Database.URL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to ping database: %w", err)
	}

	runner := migration.NewRunner()
	if err := runner.Run(context.Background(), db); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("database migration failed: %w", err)
	}
	logger.Infow("database connected", "schema_version", runner.Version())

	return postgres.NewHistoryRepository(db), func() { db.Close() }, nil
}

// newLogger builds the process logger at the configured level.
func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL %q: %w", level, err)
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	return cfg.Build()
}
