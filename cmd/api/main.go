package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"trekbooking/internal/adminuser"
	"trekbooking/internal/audit"
	"trekbooking/internal/auth"
	"trekbooking/internal/booking"
	"trekbooking/internal/catalog"
	"trekbooking/internal/gallery"
	"trekbooking/internal/httpapi"
	"trekbooking/internal/notify"
	"trekbooking/internal/session"
	"trekbooking/internal/storage"
	"trekbooking/internal/user"
	"trekbooking/pkg/config"
	"trekbooking/pkg/db"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()

	pool, err := db.Open(ctx, cfg)
	if err != nil {
		log.Fatalf("db open: %v", err)
	}
	defer pool.Close()

	// Optional auto-migrate for dev; production runs cmd/dev/migrate against
	// DIRECT_URL as a deploy step.
	if cfg.MigrationsPath != "" {
		if err := db.Migrate(cfg.MigrationsPath, cfg); err != nil {
			log.Fatalf("migrate: %v", err)
		}
		log.Printf("migrations applied from %s", cfg.MigrationsPath)
	}

	ttl := time.Duration(cfg.Session.TTLHours) * time.Hour
	cache := session.NewCache(cfg.Redis, ttl)
	defer func() { _ = cache.Close() }()
	if err := cache.Ping(ctx); err != nil {
		log.Printf("redis unavailable, session cache disabled: %v", err)
		_ = cache.Close()
		cache = nil
	}

	notifiers := notify.Multi{notify.LogNotifier{}}
	if cfg.Notify.AMQPURL != "" {
		n, err := notify.NewAMQPNotifier(cfg.Notify.AMQPURL, cfg.Notify.AMQPExchange)
		if err != nil {
			log.Printf("amqp notifier disabled: %v", err)
		} else {
			defer n.Close()
			notifiers = append(notifiers, n)
		}
	}
	if cfg.Notify.TelegramBotToken != "" && cfg.Notify.TelegramAdminChatID != 0 {
		n, err := notify.NewTelegramNotifier(cfg.Notify.TelegramBotToken, cfg.Notify.TelegramAdminChatID)
		if err != nil {
			log.Printf("telegram notifier disabled: %v", err)
		} else {
			notifiers = append(notifiers, n)
		}
	}

	users := user.NewRepository(pool)
	identities := auth.NewRepository(pool)

	deps := httpapi.Deps{
		Cfg:      cfg,
		DB:       pool,
		Cache:    cache,
		Storage:  storage.New(cfg.Storage),
		Notifier: notifiers,

		Users:    users,
		Admins:   adminuser.NewRepository(pool),
		Catalog:  catalog.NewRepository(pool),
		Bookings: booking.NewRepository(pool),
		Gallery:  gallery.NewRepository(pool),
		Audit:    audit.NewRepository(pool),
		Auth: &auth.Service{
			Identities:          identities,
			Profiles:            users,
			RequireConfirmation: cfg.Session.RequireEmailConfirmation,
		},
	}

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           httpapi.NewRouter(deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("api listening on %s (env=%s)", cfg.HTTPAddr, cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %v", err)
		}
	}()

	<-ctx.Done()
	log.Printf("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}
