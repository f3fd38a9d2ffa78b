package client

import (
	"context"
	"fmt"

	"github.com/fieldos/fieldos-client-go/internal/domain"
	"github.com/fieldos/fieldos-client-go/internal/infra/transport"
)

// ResourcesClient covers the tenant-scoped CRUD surfaces the portal
// screens render: customers, jobs, quotes, invoices, campaigns, dispatch,
// templates, and reports.
type ResourcesClient struct {
	t *transport.Client
}

// NewResourcesClient creates a ResourcesClient on the shared transport.
func NewResourcesClient(t *transport.Client) *ResourcesClient {
	return &ResourcesClient{t: t}
}

func (c *ResourcesClient) ListCustomers(ctx context.Context) ([]domain.Customer, error) {
	var out []domain.Customer
	if err := c.t.Get(ctx, "Customers.List", "/v1/customers", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *ResourcesClient) GetCustomer(ctx context.Context, id int64) (*domain.Customer, error) {
	var out domain.Customer
	if err := c.t.Get(ctx, "Customers.Get", fmt.Sprintf("/v1/customers/%d", id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *ResourcesClient) ListJobs(ctx context.Context) ([]domain.Job, error) {
	var out []domain.Job
	if err := c.t.Get(ctx, "Jobs.List", "/v1/jobs", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *ResourcesClient) GetJob(ctx context.Context, id int64) (*domain.Job, error) {
	var out domain.Job
	if err := c.t.Get(ctx, "Jobs.Get", fmt.Sprintf("/v1/jobs/%d", id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *ResourcesClient) CreateJob(ctx context.Context, req *domain.JobCreate) (*domain.Job, error) {
	var out domain.Job
	if err := c.t.Post(ctx, "Jobs.Create", "/v1/jobs", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *ResourcesClient) ListQuotes(ctx context.Context) ([]domain.Quote, error) {
	var out []domain.Quote
	if err := c.t.Get(ctx, "Quotes.List", "/v1/quotes", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *ResourcesClient) ListInvoices(ctx context.Context) ([]domain.Invoice, error) {
	var out []domain.Invoice
	if err := c.t.Get(ctx, "Invoices.List", "/v1/invoices", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *ResourcesClient) ListCampaigns(ctx context.Context) ([]domain.Campaign, error) {
	var out []domain.Campaign
	if err := c.t.Get(ctx, "Campaigns.List", "/v1/campaigns", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *ResourcesClient) ListDispatch(ctx context.Context) ([]domain.DispatchAssignment, error) {
	var out []domain.DispatchAssignment
	if err := c.t.Get(ctx, "Dispatch.List", "/v1/dispatch/assignments", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *ResourcesClient) ListTemplates(ctx context.Context) ([]domain.MessageTemplate, error) {
	var out []domain.MessageTemplate
	if err := c.t.Get(ctx, "Templates.List", "/v1/templates", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *ResourcesClient) ReportSummary(ctx context.Context) (*domain.ReportSummary, error) {
	var out domain.ReportSummary
	if err := c.t.Get(ctx, "Reports.Summary", "/v1/reports/summary", &out); err != nil {
		return nil, err
	}
	return &out, nil
}
