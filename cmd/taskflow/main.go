package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/joho/godotenv/autoload"
	"github.com/rs/zerolog"

	"taskflow/internal/config"
	v1 "taskflow/internal/delivery/http/v1"
	"taskflow/internal/notify"
	"taskflow/internal/repository"
	"taskflow/internal/service"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		bootLog := zerolog.New(os.Stderr)
		bootLog.Fatal().Err(err).Msg("config")
	}

	logger := newLogger(cfg.Env)

	db, err := repository.NewDB(cfg.DatabaseURL, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("db")
	}
	sqlDB, err := db.DB()
	if err == nil {
		defer sqlDB.Close()
	}

	userRepo := repository.NewUserRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	statsRepo := repository.NewStatsRepository(db)

	userSvc := service.NewUserService(userRepo)
	categorySvc := service.NewCategoryService(categoryRepo)
	taskSvc := service.NewTaskService(taskRepo, categoryRepo)
	analyticsSvc := service.NewAnalyticsService(taskRepo, statsRepo, userRepo)
	snapshotSvc := service.NewSnapshotService(userRepo, taskRepo, statsRepo, logger)

	var notifier *notify.TelegramNotifier
	if cfg.TelegramToken != "" {
		notifier, err = notify.NewTelegram(cfg.TelegramToken, logger)
		if err != nil {
			logger.Fatal().Err(err).Msg("notifier")
		}
	}

	scheduler := service.NewSchedulerService(time.Local)
	if _, err := scheduler.ScheduleDaily(cfg.SnapshotTime, func() {
		jobCtx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		snapshots, err := snapshotSvc.BuildDailySnapshots(jobCtx)
		if err != nil {
			logger.Error().Err(err).Msg("daily snapshots")
		}
		logger.Info().Int("users", len(snapshots)).Msg("daily snapshots built")
		if notifier != nil {
			notifier.SendDailyDigests(jobCtx, snapshots)
		}
	}); err != nil {
		logger.Fatal().Err(err).Msg("schedule snapshots")
	}
	scheduler.Start()
	defer scheduler.Stop()

	if cfg.Env != config.EnvLocal {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	v1.RegisterRoutes(router, v1.New(logger, userSvc, taskSvc, categorySvc, analyticsSvc))

	server := &http.Server{
		Addr:    net.JoinHostPort(cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		logger.Info().Str("addr", server.Addr).Msg("http server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("http server")
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("http shutdown")
	}
	logger.Info().Msg("shutdown complete")
}

func newLogger(env string) zerolog.Logger {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	switch env {
	case config.EnvLocal:
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		writer := zerolog.NewConsoleWriter()
		writer.TimeFormat = time.DateTime
		logger = logger.Output(writer)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	return logger
}
