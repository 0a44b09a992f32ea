package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/xxxsen/common/logger"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/verdant-labs/plantdex/internal/config"
	"github.com/verdant-labs/plantdex/internal/db"
	"github.com/verdant-labs/plantdex/internal/filestore"
	"github.com/verdant-labs/plantdex/internal/handler"
	"github.com/verdant-labs/plantdex/internal/job"
	"github.com/verdant-labs/plantdex/internal/repo"
	"github.com/verdant-labs/plantdex/internal/schedule"
	"github.com/verdant-labs/plantdex/internal/service"
)

func main() {
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "plantdex",
		Short: "plantdex backend server",
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run plantdex server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if configPath == "" {
				return fmt.Errorf("--config is required")
			}
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			logger.Init(
				cfg.LogConfig.File,
				cfg.LogConfig.Level,
				int(cfg.LogConfig.FileCount),
				int(cfg.LogConfig.FileSize),
				int(cfg.LogConfig.KeepDays),
				cfg.LogConfig.Console,
			)
			logutil.GetLogger(context.Background()).Info("config loaded", zap.String("config", configPath))

			database, err := db.Open(cfg.Database)
			if err != nil {
				return fmt.Errorf("open db: %w", err)
			}
			if err := db.ApplyMigrations(database); err != nil {
				return fmt.Errorf("migrations: %w", err)
			}
			return runServer(cfg, database)
		},
	}

	runCmd.Flags().StringVar(&configPath, "config", "", "path to config.json")
	rootCmd.AddCommand(runCmd)

	if err := rootCmd.Execute(); err != nil {
		logutil.GetLogger(context.Background()).Fatal("startup error", zap.Error(err))
	}
}

func runServer(cfg *config.Config, database *sql.DB) error {
	logutil.GetLogger(context.Background()).Info(
		"starting server",
		zap.Int("port", cfg.Port),
		zap.String("file_store", cfg.FileStore.Type),
	)

	plantRepo := repo.NewPlantRepo(database)
	tagRepo := repo.NewTagRepo(database)
	plantTagRepo := repo.NewPlantTagRepo(database)
	assetRepo := repo.NewAssetRepo(database)

	store, err := filestore.New(withTempDir(cfg.FileStore, cfg.TempDir))
	if err != nil {
		return fmt.Errorf("init file store: %w", err)
	}

	plantService := service.NewPlantService(plantRepo, tagRepo, plantTagRepo)
	tagService := service.NewTagService(tagRepo, plantTagRepo)
	assetService := service.NewAssetService(assetRepo, store, time.Duration(cfg.UploadTimeoutSec)*time.Second)

	router := handler.NewRouter(handler.RouterDeps{
		Plants:          handler.NewPlantHandler(plantService),
		Tags:            handler.NewTagHandler(tagService),
		Assets:          handler.NewAssetHandler(assetService),
		Upload:          handler.NewUploadHandler(assetService),
		CORSAllowlist:   cfg.CORSAllowlist,
		UploadRateLimit: time.Duration(cfg.UploadRateLimitSec) * time.Second,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	scheduler := schedule.NewCronScheduler()
	cleanup := job.NewTempCleanupJob(cfg.TempDir, time.Duration(cfg.TempMaxAgeHours)*time.Hour)
	if err := scheduler.AddJob(cleanup, cfg.CleanupSpec); err != nil {
		return fmt.Errorf("schedule cleanup: %w", err)
	}
	scheduler.Start(ctx)
	defer scheduler.Stop()

	server := &http.Server{
		Addr:    fmt.Sprintf("0.0.0.0:%d", cfg.Port),
		Handler: router,
	}
	go func() {
		logutil.GetLogger(context.Background()).Info("http server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logutil.GetLogger(context.Background()).Error("server error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logutil.GetLogger(context.Background()).Info("server stopping...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// withTempDir hands the configured staging dir to the store backend so the
// cleanup job and the uploader agree on one location.
func withTempDir(cfg config.FileStoreConfig, tempDir string) config.FileStoreConfig {
	data, ok := cfg.Data.(map[string]interface{})
	if !ok {
		return cfg
	}
	if _, exists := data["temp_dir"]; !exists {
		data["temp_dir"] = tempDir
	}
	cfg.Data = data
	return cfg
}
