// @title LuxServ 365 Concierge API
// @version 1.0
// @description Guest service requests, owner portal and admin back office for LuxServ 365 vacation rentals.
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	_ "github.com/luxserv365/concierge/docs"
	"github.com/luxserv365/concierge/internal/api/handlers"
	"github.com/luxserv365/concierge/internal/api/middleware"
	"github.com/luxserv365/concierge/internal/api/routes"
	"github.com/luxserv365/concierge/internal/application"
	"github.com/luxserv365/concierge/internal/config"
	"github.com/luxserv365/concierge/internal/config/db"
	"github.com/luxserv365/concierge/internal/cron"
	"github.com/luxserv365/concierge/internal/live"
	"github.com/luxserv365/concierge/internal/migrations"
	"github.com/luxserv365/concierge/internal/notify"
	"github.com/luxserv365/concierge/internal/repository"
	"github.com/luxserv365/concierge/internal/repository/memory"
	"github.com/luxserv365/concierge/pkg/logger"
	"github.com/luxserv365/concierge/pkg/storage"
)

func main() {
	// Load configuration from environment variables and .env file
	config.LoadConfig()

	log := logger.New(logger.Config{Level: config.LogLevel, Format: config.LogFormat})
	slog.SetDefault(log)

	if err := run(log); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gin.SetMode(config.GinMode)

	// Initialize JWT signing key
	middleware.Init()
	if config.RedisURL != "" {
		client, err := middleware.NewRedisClient(config.RedisURL)
		if err != nil {
			return err
		}
		defer client.Close()
		if err := client.Ping(ctx).Err(); err != nil {
			return err
		}
		middleware.UseRevoker(middleware.NewRedisRevoker(client))
		log.Info("session revocation backed by redis")
	}

	repos, err := openRepos()
	if err != nil {
		return err
	}

	store, err := openStore(ctx)
	if err != nil {
		return err
	}

	mailer, err := newMailer(log)
	if err != nil {
		return err
	}

	allowOrigin := middleware.OriginAllowed(config.CORSOrigins)
	hub := live.NewHub(log, func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		return origin == "" || allowOrigin(origin)
	})
	defer hub.Close()

	events := notify.NewDispatcher(log, hub)
	if len(config.NotifyEmails) > 0 {
		events.Add(notify.NewEmailSink(mailer, config.NotifyEmails))
	}
	if config.TelegramEnabled() {
		bot, err := notify.NewTelegramBot(config.TelegramBotToken)
		if err != nil {
			log.Warn("telegram alerts disabled", "error", err)
		} else {
			events.Add(notify.NewTelegramSink(bot, config.TelegramChatID))
		}
	}
	if config.AmqpURL != "" {
		sink, err := notify.DialAMQP(config.AmqpURL, config.AmqpExchange)
		if err != nil {
			return err
		}
		defer sink.Close()
		events.Add(sink)
	}
	log.Info("event sinks ready", "sinks", events.Sinks())

	svc := application.New(repos, application.Options{
		Store:          store,
		Events:         events,
		Mailer:         mailer,
		ReplyTo:        config.EmailFrom,
		MaxUploadBytes: config.MaxUploadBytes,
		MaxGuestPhotos: config.MaxGuestPhotos,
		AdminTokenTTL:  config.AdminTokenTTL,
		OwnerTokenTTL:  config.OwnerTokenTTL,
	})

	created, err := svc.Auth.EnsureAdmin(config.AdminUsername, config.AdminPassword)
	if err != nil {
		return err
	}
	if created {
		log.Info("bootstrap admin created", "username", config.AdminUsername)
	}

	router, err := routes.NewRouter(log, config.CORSOrigins)
	if err != nil {
		return err
	}
	routes.RegisterRoutes(router, handlers.New(svc, repos, hub))

	cleanupDone := cron.StartCleanupTask(ctx, svc.Audit, config.AuditRetentionDays, cron.DefaultInterval, log)

	srv := &http.Server{
		Addr:              ":" + config.ServerPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info("starting API server", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	<-cleanupDone
	return nil
}

func openRepos() (*repository.Repos, error) {
	if config.StorageDriver == config.StorageDriverMemory {
		slog.Warn("using in-memory storage, data is lost on restart")
		return memory.NewRepositories(), nil
	}
	if err := db.Init(); err != nil {
		return nil, err
	}
	if err := migrations.Run(db.DB); err != nil {
		return nil, err
	}
	return repository.NewRepositories(db.DB), nil
}

func openStore(ctx context.Context) (storage.Store, error) {
	if config.ObjectStore == config.ObjectStoreMemory {
		return storage.NewMemory(), nil
	}
	store, err := storage.NewMinio(ctx, storage.MinioConfig{
		Endpoint:  config.MinioEndpoint,
		AccessKey: config.MinioAccessKey,
		SecretKey: config.MinioSecretKey,
		Bucket:    config.MinioBucket,
		UseSSL:    config.MinioUseSSL,
	})
	if err != nil {
		return nil, err
	}
	return store, nil
}

func newMailer(log *slog.Logger) (notify.Mailer, error) {
	if !config.SMTPEnabled() {
		log.Warn("SMTP not configured, outgoing mail is only logged")
		return notify.LogMailer{Log: log}, nil
	}
	mailer, err := notify.NewSMTPMailer(notify.SMTPConfig{
		Host:     config.SMTPHost,
		Port:     config.SMTPPort,
		Username: config.SMTPUsername,
		Password: config.SMTPPassword,
		From:     config.EmailFrom,
		FromName: config.EmailFromName,
	})
	if err != nil {
		return nil, err
	}
	return mailer, nil
}
