package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/spf13/cobra"

	"github.com/Hbollas/LashTechBooking/internal/audit"
	"github.com/Hbollas/LashTechBooking/internal/config"
	dbpkg "github.com/Hbollas/LashTechBooking/internal/db"
	"github.com/Hbollas/LashTechBooking/internal/infra/repository"
	"github.com/Hbollas/LashTechBooking/internal/middleware"
	"github.com/Hbollas/LashTechBooking/internal/notify"
	"github.com/Hbollas/LashTechBooking/internal/routes"
	"github.com/Hbollas/LashTechBooking/internal/timezone"
)

const (
	notifyQueueSize = 64
	notifyTimeout   = 15 * time.Second
)

func newServeCmd() *cobra.Command {
	var migrateUp bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the booking HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := setup()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return serve(ctx, cfg, log, migrateUp)
		},
	}

	cmd.Flags().BoolVar(&migrateUp, "migrate", false, "run database migrations on startup")
	cmd.Flags().Lookup("migrate").NoOptDefVal = "true"
	return cmd
}

func serve(ctx context.Context, cfg *config.Config, log *slog.Logger, migrateUp bool) error {
	hours, err := cfg.BusinessHours()
	if err != nil {
		return err
	}

	db, err := dbpkg.NewDB(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := dbpkg.Close(db); err != nil {
			log.Warn("database close failed", slog.Any("err", err))
		}
	}()

	if migrateUp {
		if err := dbpkg.Migrate(db.WithContext(ctx)); err != nil {
			return err
		}
		log.Info("migrations applied")
	}

	// --------------------------------------------------
	// Side channels
	// --------------------------------------------------
	var sender notify.Notifier = notify.NewLogNotifier(log)
	if cfg.SMTP.Host != "" {
		sender = notify.NewSMTPNotifier(notify.SMTPOptions{
			Host:     cfg.SMTP.Host,
			Port:     cfg.SMTP.Port,
			User:     cfg.SMTP.User,
			Pass:     cfg.SMTP.Pass,
			From:     cfg.SMTP.From,
			FromName: cfg.SMTP.FromName,
		})
	}
	notifier := notify.NewDispatcher(sender, log, notifyQueueSize, notifyTimeout)
	defer notifier.Close()

	auditStore := audit.New(db)
	auditor := audit.NewDispatcher(auditStore, log)
	defer auditor.Close()

	var limiter middleware.Counter
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("parse REDIS_URL: %w", err)
		}
		rdb := redis.NewClient(opts)
		defer rdb.Close()

		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Warn("redis unreachable, rate limiting fails open", slog.Any("err", err))
		}
		limiter = middleware.NewRedisCounter(rdb)
	}

	// --------------------------------------------------
	// HTTP
	// --------------------------------------------------
	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	routes.RegisterRoutes(r, routes.Dependencies{
		Config:    cfg,
		Repo:      repository.NewAppointmentGormRepository(db, cfg.BookingTxTimeout),
		Users:     repository.NewUserGormRepository(db),
		AuditLogs: auditStore,
		Hours:     hours,
		Clock:     timezone.SystemClock{},
		Notifier:  notifier,
		Audit:     auditor,
		Limiter:   limiter,
		Log:       log,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	log.Info("http server started",
		slog.String("addr", cfg.Addr()),
		slog.String("timezone", hours.Location().String()),
	)

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received", slog.Duration("timeout", cfg.ShutdownTimeout))

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Warn("graceful shutdown timed out", slog.Any("err", err))
			return srv.Close()
		}
		log.Info("http server stopped")
		return nil

	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	}
}
