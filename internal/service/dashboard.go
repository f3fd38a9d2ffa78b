package service

import (
	"context"
	"fmt"

	"github.com/fieldos/fieldos-client-go/internal/domain"
	"github.com/fieldos/fieldos-client-go/internal/infra/observability"
	"github.com/fieldos/fieldos-client-go/internal/port"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// dashboardAPI is the slice of the backend the dashboard needs.
type dashboardAPI interface {
	port.JobsFetcher
	port.InvoicesFetcher
	port.CampaignsFetcher
}

// Dashboard aggregates the main screen's three list fetches, with a TTL
// cache in front so quick navigation back to the dashboard doesn't refetch.
type Dashboard struct {
	api     dashboardAPI
	cache   port.Cache[*domain.DashboardOverview]
	metrics *observability.Metrics
	logger  *zap.Logger
}

// NewDashboard creates the dashboard service with all dependencies injected.
func NewDashboard(api dashboardAPI, cache port.Cache[*domain.DashboardOverview], metrics *observability.Metrics, logger *zap.Logger) *Dashboard {
	return &Dashboard{
		api:     api,
		cache:   cache,
		metrics: metrics,
		logger:  logger,
	}
}

const overviewCacheKey = "dashboard:overview"

// Overview fetches jobs, invoices and campaigns concurrently. A failure in
// any fetch fails the whole aggregate; partial dashboards confuse more
// than they help.
func (d *Dashboard) Overview(ctx context.Context) (*domain.DashboardOverview, error) {
	if cached, ok := d.cache.Get(overviewCacheKey); ok {
		d.metrics.IncrCacheHit("lists")
		return cached, nil
	}
	d.metrics.IncrCacheMiss("lists")

	var overview domain.DashboardOverview
	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		jobs, err := d.api.ListJobs(gCtx)
		if err != nil {
			return fmt.Errorf("jobs: %w", err)
		}
		overview.Jobs = jobs
		return nil
	})

	g.Go(func() error {
		invoices, err := d.api.ListInvoices(gCtx)
		if err != nil {
			return fmt.Errorf("invoices: %w", err)
		}
		overview.Invoices = invoices
		return nil
	})

	g.Go(func() error {
		campaigns, err := d.api.ListCampaigns(gCtx)
		if err != nil {
			return fmt.Errorf("campaigns: %w", err)
		}
		overview.Campaigns = campaigns
		return nil
	})

	if err := g.Wait(); err != nil {
		d.logger.Error("dashboard: overview fetch failed", zap.Error(err))
		return nil, err
	}

	d.cache.Set(overviewCacheKey, &overview)
	return &overview, nil
}
