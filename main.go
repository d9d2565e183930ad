package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"bid-finder/config"
	"bid-finder/services"
	"bid-finder/storage"
)

func main() {
	logging, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("can't initialize zap logger: %v", err)
	}
	defer logging.Sync()

	cfg, err := config.Load()
	if err != nil {
		logging.Fatal("Config load error", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := storage.Open(ctx, cfg, logging)
	if err != nil {
		logging.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer store.Close()
	logging.Info("Database pool opened", zap.Int32("min_conns", cfg.DBMinConns), zap.Int32("max_conns", cfg.DBMaxConns))
	logRowCounts(ctx, store, logging)

	source, err := services.NewSource(ctx, cfg, logging)
	if err != nil {
		logging.Fatal("Source setup failed", zap.Error(err))
	}

	querySvc := services.NewQueryService(store, cfg.QueryDefaultLimit, cfg.QueryMaxLimit, logging)
	historySvc := services.NewHistoryService(store, source, logging)

	gin.SetMode(gin.ReleaseMode)
	router, err := setupRouter(cfg, logging, querySvc, historySvc)
	if err != nil {
		logging.Fatal("Router setup failed", zap.Error(err))
	}

	if cfg.LoaderCronSchedule != "" {
		loadSvc := services.NewLoadService(store, source, cfg.LoaderChunkSize, logging)
		cronScheduler := cron.New()
		_, err := cronScheduler.AddFunc(cfg.LoaderCronSchedule, func() {
			logging.Info("Running scheduled load...")
			if _, err := loadSvc.Run(ctx); err != nil {
				logging.Error("Scheduled load failed", zap.Error(err))
			}
		})
		if err != nil {
			logging.Fatal("Invalid loader schedule", zap.String("schedule", cfg.LoaderCronSchedule), zap.Error(err))
		}
		cronScheduler.Start()
		defer func() { <-cronScheduler.Stop().Done() }()
		logging.Info("Scheduled loader enabled", zap.String("schedule", cfg.LoaderCronSchedule))
	}

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadTimeout:       30 * time.Second,
		ReadHeaderTimeout: 15 * time.Second,
		WriteTimeout:      cfg.DBCommandTimeout + 30*time.Second,
		IdleTimeout:       120 * time.Second,
	}
	go func() {
		logging.Info("Starting server", zap.String("port", cfg.HTTPPort))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal("Failed to run server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logging.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.Error("Server forced to shutdown", zap.Error(err))
	}
	logging.Info("Server exited")
}

// logRowCounts protokolliert beim Start die Zeilenzahl der Views und der Verlaufstabelle.
func logRowCounts(ctx context.Context, store *storage.Store, logging *zap.Logger) {
	for _, table := range []string{"df1_full", "df2_full", "run_history"} {
		n, err := store.TableCount(ctx, table)
		if err != nil {
			logging.Warn("Row count failed", zap.String("table", table), zap.Error(err))
			continue
		}
		logging.Info("Row count", zap.String("table", table), zap.Int64("rows", n))
	}
}
