package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	appidentity "github.com/invento/backend/internal/application/identity"
	appinventory "github.com/invento/backend/internal/application/inventory"
	"github.com/invento/backend/internal/application/notification"
	appreport "github.com/invento/backend/internal/application/report"
	"github.com/invento/backend/internal/infrastructure/auth"
	"github.com/invento/backend/internal/infrastructure/config"
	"github.com/invento/backend/internal/infrastructure/logger"
	"github.com/invento/backend/internal/infrastructure/mailer"
	"github.com/invento/backend/internal/infrastructure/persistence"
	"github.com/invento/backend/internal/infrastructure/scheduler"
	"github.com/invento/backend/internal/interfaces/http/handler"
	"github.com/invento/backend/internal/interfaces/http/middleware"
	"github.com/invento/backend/internal/interfaces/http/router"
)

const version = "1.0.0"

const shutdownTimeout = 30 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load configuration: " + err.Error())
	}

	log := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	defer log.Sync() //nolint:errcheck

	if err := run(cfg, log); err != nil {
		log.Fatal("server exited with error", zap.Error(err))
	}
}

func run(cfg *config.Config, log *zap.Logger) error {
	db, err := persistence.NewDatabase(&cfg.Database,
		logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level)))
	if err != nil {
		return err
	}
	defer db.Close() //nolint:errcheck

	if err := db.Migrate(); err != nil {
		return err
	}

	blacklist := newTokenBlacklist(cfg, log)
	notifier := newNotifier(cfg, log)

	itemRepo := persistence.NewGormItemRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)

	jwtService := auth.NewJWTService(cfg.JWT)
	alertService := notification.NewAlertService(notifier, userRepo, log)

	itemService := appinventory.NewItemService(itemRepo, alertService, log)
	dashboardService := appreport.NewDashboardService(itemRepo, log)
	reportService := appreport.NewReportService(itemRepo, log)
	authService := appidentity.NewAuthService(userRepo, jwtService, blacklist, alertService, log)
	dailyReport := notification.NewDailyReportService(itemRepo, userRepo, notifier, log)

	r := router.New(router.Config{
		Environment: cfg.App.Env,
		Logger:      log,
		CORS: middleware.CORSConfig{
			AllowedOrigins: cfg.HTTP.CORSAllowOrigins,
			AllowedMethods: cfg.HTTP.CORSAllowMethods,
			AllowedHeaders: cfg.HTTP.CORSAllowHeaders,
		},
		JWT: middleware.JWTMiddlewareConfig{
			JWTService: jwtService,
			Blacklist:  blacklist,
			Logger:     log,
			SkipPaths: []string{
				"/api/v1/auth/register",
				"/api/v1/auth/login",
				"/api/v1/auth/refresh",
			},
		},
	})
	r.RegisterPublic(handler.NewSystemHandler(db, version, log))
	r.Register(handler.NewAuthHandler(authService, log))
	r.RegisterProtected(
		handler.NewInventoryHandler(itemService, log),
		handler.NewDashboardHandler(dashboardService, log),
		handler.NewReportHandler(reportService, log),
	)

	engine := r.Setup()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			return err
		}
	}

	var reportScheduler *scheduler.DailyReportScheduler
	if cfg.Scheduler.Enabled {
		reportScheduler, err = scheduler.NewDailyReportScheduler(scheduler.Config{
			CronSchedule: cfg.Scheduler.DailyCronSchedule,
			JobTimeout:   cfg.Scheduler.JobTimeout,
		}, dailyReport, log)
		if err != nil {
			return err
		}
		reportScheduler.Start(context.Background())
	}

	server := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server starting",
			zap.String("addr", server.Addr),
			zap.String("env", cfg.App.Env),
			zap.String("version", version))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		log.Info("shutting down", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if reportScheduler != nil {
		if err := reportScheduler.Stop(ctx); err != nil {
			log.Warn("scheduler shutdown timed out", zap.Error(err))
		}
	}
	if err := server.Shutdown(ctx); err != nil {
		return err
	}

	log.Info("server stopped")
	return nil
}

// newTokenBlacklist connects to Redis for token revocation, falling back to
// the in-process store when Redis is unreachable. The fallback loses revoked
// tokens on restart, acceptable for single-instance deployments.
func newTokenBlacklist(cfg *config.Config, log *zap.Logger) auth.TokenBlacklist {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Warn("redis unreachable, using in-memory token blacklist",
			zap.String("addr", cfg.Redis.Addr()),
			zap.Error(err))
		client.Close() //nolint:errcheck
		return auth.NewInMemoryTokenBlacklist()
	}

	log.Info("connected to redis", zap.String("addr", cfg.Redis.Addr()))
	return auth.NewRedisTokenBlacklist(client)
}

// newNotifier wires SMTP delivery when a host is configured; otherwise email
// notifications are silently dropped.
func newNotifier(cfg *config.Config, log *zap.Logger) notification.Notifier {
	if cfg.SMTP.Host == "" {
		log.Info("smtp host not configured, email notifications disabled")
		return notification.NopNotifier{}
	}
	return mailer.NewSMTPNotifier(cfg.SMTP, log)
}
