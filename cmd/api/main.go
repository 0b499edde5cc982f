package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/barbershop-booking/internal/audit"
	"github.com/BruksfildServices01/barbershop-booking/internal/config"
	dbpkg "github.com/BruksfildServices01/barbershop-booking/internal/db"
	"github.com/BruksfildServices01/barbershop-booking/internal/infra/redisstore"
	"github.com/BruksfildServices01/barbershop-booking/internal/metrics"
	"github.com/BruksfildServices01/barbershop-booking/internal/notify"
	"github.com/BruksfildServices01/barbershop-booking/internal/payments"
	"github.com/BruksfildServices01/barbershop-booking/internal/routes"
	"github.com/BruksfildServices01/barbershop-booking/internal/storage"
)

func main() {
	log := zerolog.New(os.Stdout).With().Timestamp().Str("service", "barbershop-booking").Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}

	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		log = log.Level(lvl)
	}
	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := dbpkg.NewDB(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("database")
	}

	rdb := redisstore.NewClient(cfg)
	pingCtx, cancelPing := context.WithTimeout(context.Background(), 5*time.Second)
	if err := redisstore.Ping(pingCtx, rdb); err != nil {
		log.Fatal().Err(err).Msg("redis")
	}
	cancelPing()

	created, err := dbpkg.SeedOwner(db, cfg.OwnerEmail, cfg.OwnerPassword, cfg.OwnerName)
	if err != nil {
		log.Fatal().Err(err).Msg("seed owner")
	}
	if created {
		log.Info().Str("email", cfg.OwnerEmail).Msg("owner account created")
	}

	metrics.Register()

	// ======================================================
	// BACKGROUND WORKERS
	// ======================================================
	auditDispatcher := audit.NewDispatcher(audit.New(db), log)

	deps := routes.Deps{
		DB:     db,
		Redis:  rdb,
		Config: cfg,
		Log:    log,
		Audit:  auditDispatcher,
	}

	var mailDispatcher *notify.Dispatcher
	if cfg.MailEnabled() {
		mailDispatcher = notify.NewDispatcher(
			notify.NewSMTPMailer(cfg),
			cfg.AdminEmail,
			cfg.Booking.Notification.Subject,
			cfg.Booking.Timezone,
			log,
		)
		deps.Notifier = mailDispatcher
	} else {
		log.Warn().Msg("SMTP or ADMIN_EMAIL not set, booking emails disabled")
	}

	if cfg.AvatarStorageEnabled() {
		deps.Avatars = storage.NewAvatarStore(storage.NewS3Client(cfg), cfg.S3Bucket, cfg.S3PublicURL)
	}

	if cfg.MercadoPagoToken != "" {
		mp, err := payments.NewMercadoPago(cfg.MercadoPagoToken, cfg.Booking.Locale.Currency)
		if err != nil {
			log.Fatal().Err(err).Msg("mercadopago")
		}
		deps.Links = mp
	}

	// ======================================================
	// HTTP
	// ======================================================
	r := gin.New()
	r.Use(gin.Recovery())
	routes.RegisterRoutes(r, deps)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", cfg.Addr()).Msg("server running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("listen")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Info().Msg("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("http shutdown")
	}

	// handlers are done; drain the queues
	if mailDispatcher != nil {
		if err := mailDispatcher.Close(ctx); err != nil {
			log.Error().Err(err).Msg("notification queue not drained")
		}
	}
	if err := auditDispatcher.Close(ctx); err != nil {
		log.Error().Err(err).Msg("audit queue not drained")
	}

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	_ = rdb.Close()
}
