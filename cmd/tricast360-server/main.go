package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/tricast360/tricast360-server/internal/catalog"
	"github.com/tricast360/tricast360-server/internal/config"
	"github.com/tricast360/tricast360-server/internal/contact"
	"github.com/tricast360/tricast360-server/internal/db"
	"github.com/tricast360/tricast360-server/internal/handler"
	"github.com/tricast360/tricast360-server/internal/mailer"
	"github.com/tricast360/tricast360-server/internal/order"
	"github.com/tricast360/tricast360-server/internal/ratelimit"
	"github.com/tricast360/tricast360-server/internal/storage"
	"github.com/tricast360/tricast360-server/internal/transport"
)

const (
	contactRateLimit  = 5
	contactRateWindow = 15 * time.Minute
)

func main() {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	log.Logger = log.With().Str("service", "tricast360-server").Logger()

	log.Info().Msg("TRICAST360 server starting...")

	cfg, err := config.Load(".env")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}

	cat := catalog.Default()

	smtpMailer := mailer.NewSMTP(mailer.SMTPConfig{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Secure:   cfg.SMTP.Secure,
		User:     cfg.SMTP.User,
		Password: cfg.SMTP.Password,
		FromName: "TRICAST360 Website",
	})
	log.Info().
		Str("smtp_host", cfg.SMTP.Host).
		Int("smtp_port", cfg.SMTP.Port).
		Bool("smtp_user_configured", cfg.SMTP.User != "").
		Msg("SMTP relay configured")

	contactSvc := contact.NewService(
		contact.NewRenderer(cfg.App.TemplatesDir),
		smtpMailer,
		cfg.Contact.Recipient,
	)

	slotStore, err := storage.NewFileStore(cfg.App.DataDir)
	if err != nil {
		log.Fatal().Err(err).Str("dir", cfg.App.DataDir).Msg("Failed to open slot store")
	}

	deps := transport.Deps{
		Contact:   handler.NewContactHandler(contactSvc),
		Quote:     handler.NewQuoteHandler(cat),
		Draft:     handler.NewDraftHandler(slotStore),
		Limiter:   ratelimit.New(contactRateLimit, contactRateWindow),
		StaticDir: cfg.App.StaticDir,
	}

	if cfg.OrdersEnabled {
		dbConn, err := db.Connect(cfg.Postgres, "migrations")
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to database")
		}
		defer dbConn.Close()

		repo := order.NewPostgresRepository(dbConn)
		deps.Orders = handler.NewOrderHandler(order.NewService(repo, cat))
	} else {
		log.Warn().Msg("DB_HOST not set, order intake disabled")
	}

	srv := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      transport.NewRouter(deps),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.App.Port).Msg("Starting HTTP server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan
	log.Info().Msg("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Shutdown failed")
	}
	log.Info().Msg("Server stopped")
}
