package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	_ "github.com/smartcondominium/portal/docs"
	"github.com/smartcondominium/portal/internal/api"
	"github.com/smartcondominium/portal/internal/api/handler"
	"github.com/smartcondominium/portal/internal/api/middleware"
	"github.com/smartcondominium/portal/internal/core/ports"
	"github.com/smartcondominium/portal/internal/core/service"
	"github.com/smartcondominium/portal/internal/infrastructure/backend"
	mongodb "github.com/smartcondominium/portal/internal/infrastructure/db/mongo"
	redisdb "github.com/smartcondominium/portal/internal/infrastructure/db/redis"
	"github.com/smartcondominium/portal/internal/infrastructure/queue"
	"github.com/smartcondominium/portal/internal/infrastructure/session"
	"github.com/smartcondominium/portal/internal/pkg/config"
	"github.com/smartcondominium/portal/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

// @title       SmartCondominium Portal Gateway
// @version     1.0
// @description Session, navigation and dashboard gateway in front of the SmartCondominium REST API.
// @BasePath    /
func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "condo-portal",
	})

	if err := run(cfg, log); err != nil {
		log.Fatal().Err(err).Msg("portal stopped with error")
	}
}

// stores groups the session-scoped persistence the services share.
type stores struct {
	sessions ports.SessionStore
	drafts   ports.DraftStore
	gens     ports.GenerationTracker
	ping     handler.Pinger
	close    func()
}

func openStores(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*stores, error) {
	if cfg.Session.Backend == "memory" {
		log.Warn().Msg("using in-memory session store; sessions are lost on restart")
		mem := session.NewMemoryStore(cfg.Session.TTL, cfg.Session.DraftTTL)
		return &stores{sessions: mem, drafts: mem, gens: mem, close: func() {}}, nil
	}

	client, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
	if err != nil {
		return nil, err
	}
	return &stores{
		sessions: redisdb.NewSessionStore(client, cfg.Session.TTL, logger.Component("session_store")),
		drafts:   redisdb.NewDraftStore(client, cfg.Session.DraftTTL),
		gens:     redisdb.NewGenerationTracker(client, cfg.Session.TTL),
		ping:     func(ctx context.Context) error { return client.Ping(ctx).Err() },
		close:    func() { _ = client.Close() },
	}, nil
}

// auditPipeline is the audit sink plus its lifecycle hooks.
type auditPipeline struct {
	sink ports.AuditSink
	ping handler.Pinger
	stop func()
}

func openAudit(ctx context.Context, cfg *config.Config) (*auditPipeline, error) {
	if !cfg.Audit.Enabled {
		return &auditPipeline{sink: queue.NewLogSink(logger.Component("audit")), stop: func() {}}, nil
	}

	client, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return nil, err
	}
	repo := mongodb.NewAuditRepository(db)
	if err := repo.EnsureIndexes(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("audit indexes: %w", err)
	}

	workerCtx, cancel := context.WithCancel(context.Background())
	dispatcher := queue.NewDispatcher(cfg.Audit.Workers, repo, logger.Component("audit_dispatcher"))
	dispatcher.Start(workerCtx)

	return &auditPipeline{
		sink: dispatcher,
		ping: func(ctx context.Context) error { return client.Ping(ctx, nil) },
		stop: func() {
			cancel()
			dispatcher.Wait()
			ctx, done := context.WithTimeout(context.Background(), shutdownTimeout)
			defer done()
			_ = client.Disconnect(ctx)
		},
	}, nil
}

func run(cfg *config.Config, log zerolog.Logger) error {
	ctx := context.Background()

	st, err := openStores(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("session store: %w", err)
	}
	defer st.close()

	audit, err := openAudit(ctx, cfg)
	if err != nil {
		return fmt.Errorf("audit: %w", err)
	}
	defer audit.stop()

	passZone, err := cfg.Pass.Location()
	if err != nil {
		return fmt.Errorf("pass timezone: %w", err)
	}

	client := backend.New(backend.Config{BaseURL: cfg.Backend.URL, Timeout: cfg.Backend.Timeout}, logger.Component("backend"))

	readiness := map[string]handler.Pinger{}
	if st.ping != nil {
		readiness["redis"] = st.ping
	}
	if audit.ping != nil {
		readiness["mongo"] = audit.ping
	}

	e := api.NewRouter(api.Deps{
		Log: log,
		Cookies: middleware.CookieConfig{
			Name:      cfg.Session.CookieName,
			DraftName: cfg.Session.CookieName + "_draft",
			Secret:    cfg.Session.Secret,
			TTL:       cfg.Session.TTL,
			DraftTTL:  cfg.Session.DraftTTL,
			Secure:    cfg.Session.CookieSecure,
		},
		Sessions:     st.sessions,
		Auth:         service.NewAuthService(client, st.sessions, audit.sink, logger.Component("auth")),
		Registration: service.NewRegistrationService(client, st.drafts, audit.sink, logger.Component("registration")),
		Shells: service.NewShellService(client, st.gens, audit.sink, service.ShellOptions{
			ForceReauthOnUnauthorized: cfg.Session.ForceReauthOnUnauthorized,
		}, logger.Component("shell")),
		Visitors:     service.NewVisitorService(client, st.gens, logger.Component("visitors")),
		Payments:     service.NewPaymentService(client, cfg.Payment.PublishableKey, logger.Component("payments")),
		Pages:        handler.NewPagesHandler(passZone),
		LoginLimiter: middleware.NewRateLimiter(cfg.Login.RatePerSec, cfg.Login.Burst),
		Readiness:    readiness,
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("session_backend", cfg.Session.Backend).Msg("portal listening")
		errCh <- e.Start(":" + cfg.Port)
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Info().Str("signal", sig.String()).Msg("shutting down")
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
