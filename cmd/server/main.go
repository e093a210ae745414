// Command server runs the campus clubs HTTP API.
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.opentelemetry.io/otel"

	adminapi "campus-clubs/backend/internal/admin"
	adminrepo "campus-clubs/backend/internal/admin/repository"
	"campus-clubs/backend/internal/audit"
	auditrepo "campus-clubs/backend/internal/audit/repository"
	"campus-clubs/backend/internal/auth"
	"campus-clubs/backend/internal/club"
	clubrepo "campus-clubs/backend/internal/club/repository"
	"campus-clubs/backend/internal/clubrequest"
	crrepo "campus-clubs/backend/internal/clubrequest/repository"
	"campus-clubs/backend/internal/config"
	"campus-clubs/backend/internal/db"
	"campus-clubs/backend/internal/event"
	eventrepo "campus-clubs/backend/internal/event/repository"
	"campus-clubs/backend/internal/health"
	"campus-clubs/backend/internal/mailer"
	"campus-clubs/backend/internal/platform/authz"
	"campus-clubs/backend/internal/security"
	"campus-clubs/backend/internal/server"
	"campus-clubs/backend/internal/session"
	sessionrepo "campus-clubs/backend/internal/session/repository"
	"campus-clubs/backend/internal/telemetry"
	otelsetup "campus-clubs/backend/internal/telemetry/otel"
	"campus-clubs/backend/internal/telemetry/producer"
	userrepo "campus-clubs/backend/internal/user/repository"
)

const shutdownGrace = 15 * time.Second

func main() {
	if err := run(); err != nil {
		log.Fatalf("server: %v", err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	authz.SetSiteBaseURL(cfg.SiteBaseURL)

	if cfg.DatabaseURL == "" {
		return errors.New("DATABASE_URL must be set")
	}
	database, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer database.Close()

	privKey, err := security.ParsePrivateKey(cfg.JWTPrivateKey)
	if err != nil {
		return err
	}
	pubKey, err := security.ParsePublicKey(cfg.JWTPublicKey)
	if err != nil {
		return err
	}
	tokens := security.NewTokenProvider(privKey, pubKey, cfg.JWTIssuer, cfg.JWTAudience, cfg.SessionDuration())
	hasher := security.NewHasher(cfg.BcryptCost)

	providers, err := otelsetup.NewProviders(ctx, cfg.OTLPEndpoint, "campus-clubs-api", cfg.OTLPInsecure)
	if err != nil {
		return err
	}
	otel.SetTracerProvider(providers.TracerProvider)
	otel.SetMeterProvider(providers.MeterProvider)
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := providers.Shutdown(shutdownCtx); err != nil {
			log.Printf("otel shutdown: %v", err)
		}
	}()

	// Activity events go to Kafka when brokers are configured; otherwise they ride the
	// OTLP log pipeline alongside traces and metrics.
	var emitter telemetry.EventEmitter
	if brokers := cfg.ActivityKafkaBrokersList(); len(brokers) > 0 {
		kp, err := producer.NewKafkaProducer(brokers, cfg.ActivityKafkaTopic)
		if err != nil {
			return err
		}
		defer kp.Close()
		emitter = kp
	} else {
		emitter = otelsetup.NewEventEmitter(providers.LoggerProvider)
	}

	users := userrepo.NewPostgresRepository(database)
	sessions := sessionrepo.NewPostgresRepository(database)
	admins := adminrepo.NewPostgresRepository(database)
	clubs := clubrepo.NewPostgresRepository(database)
	requests := crrepo.NewPostgresRepository(database)
	events := eventrepo.NewPostgresRepository(database)
	audits := auditrepo.NewPostgresRepository(database)

	auditor := audit.NewLogger(audits)
	resolver := session.NewResolver(tokens, users, sessions)
	mailClient := mailer.NewClient(cfg, nil)

	handlers := server.Handlers{
		Auth:        auth.NewHandler(auth.NewService(users, sessions, tokens, hasher), emitter),
		Club:        club.NewHandler(clubs),
		Event:       event.NewHandler(event.NewService(events)),
		ClubRequest: clubrequest.NewHandler(requests, emitter),
		Admin:       adminapi.NewHandler(admins, requests, clubs, users, audits, auditor, emitter),
		Mailer:      mailer.NewHandler(mailClient, admins, auditor, emitter),
		Health:      health.NewHandler(database),
	}

	tracer := providers.TracerProvider.Tracer("campus-clubs/server")
	router := server.NewRouter(handlers, resolver, tracer, emitter)
	srv := server.New(cfg.HTTPAddr, router)

	errCh := make(chan error, 1)
	go func() {
		log.Printf("http: listening on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Print("http: shutting down")
	if err := server.Shutdown(srv, shutdownGrace); err != nil {
		return err
	}
	// Give in-flight activity emits a moment before the producer closes.
	time.Sleep(telemetry.ShutdownDrainDuration)
	return nil
}
