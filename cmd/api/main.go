package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/meditrack/meditrack/internal/config"
	"github.com/meditrack/meditrack/internal/email"
	alertHandler "github.com/meditrack/meditrack/internal/handler/alert"
	bmiHandler "github.com/meditrack/meditrack/internal/handler/bmi"
	reminderHandler "github.com/meditrack/meditrack/internal/handler/reminder"
	"github.com/meditrack/meditrack/internal/notifier"
	"github.com/meditrack/meditrack/internal/repository/blob"
	"github.com/meditrack/meditrack/internal/router"
	"github.com/meditrack/meditrack/internal/scheduler"
	bmiService "github.com/meditrack/meditrack/internal/service/bmi"
	reminderService "github.com/meditrack/meditrack/internal/service/reminder"
	"github.com/meditrack/meditrack/internal/storage"
	fileStorage "github.com/meditrack/meditrack/internal/storage/file"
	memoryStorage "github.com/meditrack/meditrack/internal/storage/memory"
	redisStorage "github.com/meditrack/meditrack/internal/storage/redis"
	sqliteStorage "github.com/meditrack/meditrack/internal/storage/sqlite"
	"github.com/meditrack/meditrack/pkg/circuitbreaker"
	"github.com/meditrack/meditrack/pkg/clock"
	"github.com/meditrack/meditrack/pkg/logger"
	"github.com/meditrack/meditrack/pkg/metrics"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appLogger := logger.NewLogger(nil)

	adapter, err := newStorageAdapter(cfg.Storage)
	if err != nil {
		appLogger.Fatal(err, "failed to initialize storage")
	}

	// Repositories: reload persisted state before anything else runs.
	reminderRepo := blob.NewReminderStore(adapter, appLogger)
	bmiRepo := blob.NewBMIHistory(adapter, appLogger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := reminderRepo.Load(ctx); err != nil {
		appLogger.Fatal(err, "failed to load reminders")
	}
	if err := bmiRepo.Load(ctx); err != nil {
		appLogger.Fatal(err, "failed to load BMI history")
	}

	// Presentation
	alarm := notifier.NewLogAlarm(appLogger)
	presenter := notifier.NewInApp(
		newPlatformNotifier(cfg.Notifier, appLogger),
		notifier.Permission(cfg.Notifier.Permission),
		cfg.Notifier.ToastTTL,
		cfg.Notifier.PopupTTL,
		appLogger,
	)

	// Scheduler
	clk := clock.NewReal()
	m := metrics.New("meditrack")
	sched := scheduler.New(reminderRepo, presenter, alarm, clk, m, appLogger, scheduler.Config{
		PollInterval:   cfg.Scheduler.PollInterval,
		SnoozeDelay:    cfg.Scheduler.SnoozeDelay,
		DailyFireGuard: cfg.Scheduler.DailyFireGuard,
	})

	// Services
	reminderSvc := reminderService.NewService(reminderRepo, presenter, appLogger)
	bmiSvc := bmiService.NewService(bmiRepo, appLogger)

	// Router
	r := router.NewRouter(
		router.Config{
			RateLimit: rate.Limit(cfg.Server.RateLimitRPS),
			RateBurst: cfg.Server.RateLimitBurst,
		},
		reminderHandler.NewHandler(reminderSvc, sched, clk),
		bmiHandler.NewHandler(bmiSvc),
		alertHandler.NewHandler(presenter),
	)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r.Engine(),
		ReadTimeout:  time.Duration(cfg.Server.TimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.TimeoutSeconds) * time.Second,
	}

	go func() {
		if err := sched.Start(ctx); err != nil {
			appLogger.Error(err, "scheduler stopped with error")
		}
	}()

	go func() {
		appLogger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal(err, "failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("shutting down server...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Fatal(err, "server forced to shutdown")
	}

	appLogger.Info("server exited properly")
}

func newPlatformNotifier(cfg config.NotifierConfig, log *logger.Logger) notifier.PlatformNotifier {
	if !cfg.Email.Enabled {
		return notifier.NewLogNotifier(log)
	}
	sender := email.New(email.Config{
		Host:     cfg.Email.Host,
		Port:     cfg.Email.Port,
		Username: cfg.Email.Username,
		Password: cfg.Email.Password,
		From:     cfg.Email.From,
		To:       cfg.Email.To,
	})
	cb := circuitbreaker.New(circuitbreaker.Settings{
		Name:        "email",
		MaxFailures: 3,
		Timeout:     time.Minute,
	})
	return notifier.WithBreaker(sender, cb)
}

func newStorageAdapter(cfg config.StorageConfig) (storage.Adapter, error) {
	switch cfg.Backend {
	case "file":
		return fileStorage.New(cfg.Dir)
	case "sqlite":
		return sqliteStorage.New(cfg.SQLitePath)
	case "redis":
		return redisStorage.New(cfg.RedisURL)
	case "memory":
		return memoryStorage.New(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}
