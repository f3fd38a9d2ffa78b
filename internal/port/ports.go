// Package port defines the interfaces (ports) for external dependencies.
// Following hexagonal architecture, these ports decouple the session and
// view-facing services from concrete implementations.
package port

import (
	"context"

	"github.com/fieldos/fieldos-client-go/internal/domain"
)

// CredentialStore persists the bearer token and serialized user. Token and
// user are a pair: implementations must make SetCredentials and ClearAll
// cover both, and ClearAll must wipe every storage tier, not just the
// active one.
type CredentialStore interface {
	Token() (string, bool)
	SetToken(token string)
	User() ([]byte, bool)
	SetUser(raw []byte)
	SetCredentials(token string, user []byte)
	ClearAll()
}

// Navigator is invoked when the backend rejects a credential mid-flight.
// The browser equivalent is a forced redirect to the login screen.
type Navigator interface {
	RedirectToLogin(reason string)
}

// NavigatorFunc adapts a function to the Navigator interface.
type NavigatorFunc func(reason string)

func (f NavigatorFunc) RedirectToLogin(reason string) { f(reason) }

// AuthAPI is the identity slice of the backend contract.
type AuthAPI interface {
	Login(ctx context.Context, email, password string) (*domain.LoginResponse, error)
	Me(ctx context.Context) (*domain.User, error)
}

// SettingsAPI fetches tenant display configuration.
type SettingsAPI interface {
	Branding(ctx context.Context) (*domain.BrandingSettings, error)
}

// Cache provides generic caching with TTL.
type Cache[T any] interface {
	Get(key string) (T, bool)
	Set(key string, value T)
	Delete(key string)
}

// JobsFetcher retrieves the job list for dashboards and polling.
type JobsFetcher interface {
	ListJobs(ctx context.Context) ([]domain.Job, error)
}

// InvoicesFetcher retrieves the invoice list.
type InvoicesFetcher interface {
	ListInvoices(ctx context.Context) ([]domain.Invoice, error)
}

// CampaignsFetcher retrieves the campaign list.
type CampaignsFetcher interface {
	ListCampaigns(ctx context.Context) ([]domain.Campaign, error)
}
