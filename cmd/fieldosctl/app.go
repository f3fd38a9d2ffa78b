package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/fieldos/fieldos-client-go/internal/config"
	"github.com/fieldos/fieldos-client-go/internal/domain"
	"github.com/fieldos/fieldos-client-go/internal/infra/cache"
	"github.com/fieldos/fieldos-client-go/internal/infra/client"
	"github.com/fieldos/fieldos-client-go/internal/infra/credstore"
	"github.com/fieldos/fieldos-client-go/internal/infra/observability"
	"github.com/fieldos/fieldos-client-go/internal/infra/resilience"
	"github.com/fieldos/fieldos-client-go/internal/infra/transport"
	"github.com/fieldos/fieldos-client-go/internal/port"
	"github.com/fieldos/fieldos-client-go/internal/service"

	"go.uber.org/zap"
)

// app wires the full client stack in the same order the session expects to
// consume it: config → logger → store → transport → services.
type app struct {
	cfg       *config.Config
	logger    *zap.Logger
	metrics   *observability.Metrics
	store     *credstore.Store
	session   *service.Session
	guard     *service.Guard
	branding  *service.Branding
	dashboard *service.Dashboard
	resources *client.ResourcesClient

	overviewCache  *cache.InMemory[*domain.DashboardOverview]
	shutdownTracer func(context.Context) error
}

func newApp() (*app, error) {
	_ = config.LoadDotEnv(".env")
	cfg := config.Load()
	if err := config.LoadFile(cfg); err != nil {
		return nil, fmt.Errorf("load config file: %w", err)
	}

	logger := observability.NewLogger(cfg.LogLevel)

	shutdown, err := observability.InitTracer(cfg.OTLPEndpoint, "fieldosctl")
	if err != nil {
		return nil, fmt.Errorf("init tracer: %w", err)
	}

	metrics := observability.NewMetrics()
	store := credstore.New(cfg, logger)

	// The CLI's login screen: tell the user, let the command's error path
	// handle the exit. Storage is already wiped by the transport.
	nav := port.NavigatorFunc(func(reason string) {
		if reason == "" {
			reason = "session expired"
		}
		fmt.Fprintf(os.Stderr, "%s: run 'fieldosctl login'\n", reason)
	})

	resilienceCfg := resilience.Config{
		MaxRetries:     cfg.MaxRetries,
		InitialBackoff: cfg.InitialBackoff,
		MaxConcurrency: cfg.MaxConcurrency,
	}
	cb := resilience.NewCircuitBreaker("fieldos-api")
	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}

	t := transport.New(httpClient, cfg.APIBaseURL, store, nav, cb, resilienceCfg, metrics, logger)

	authClient := client.NewAuthClient(t)
	settingsClient := client.NewSettingsClient(t)
	resources := client.NewResourcesClient(t)

	sess := service.NewSession(authClient, store, logger)
	overviewCache := cache.New[*domain.DashboardOverview](cfg.CacheTTL)

	return &app{
		cfg:            cfg,
		logger:         logger,
		metrics:        metrics,
		store:          store,
		session:        sess,
		guard:          service.NewGuard(sess, logger),
		branding:       service.NewBranding(settingsClient, logger),
		dashboard:      service.NewDashboard(resources, overviewCache, metrics, logger),
		resources:      resources,
		overviewCache:  overviewCache,
		shutdownTracer: shutdown,
	}, nil
}

func (a *app) close() {
	a.overviewCache.Stop()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = a.shutdownTracer(ctx)
	_ = a.logger.Sync()
}

// requireSession restores the stored session and fails when none survives
// verification.
func (a *app) requireSession(ctx context.Context) error {
	a.session.Init(ctx)
	if a.session.State() != service.SessionAuthenticated {
		return &domain.ErrNoSession{}
	}
	return nil
}
