package client

import (
	"context"

	"github.com/fieldos/fieldos-client-go/internal/domain"
	"github.com/fieldos/fieldos-client-go/internal/infra/transport"
)

// SettingsClient fetches tenant display configuration.
type SettingsClient struct {
	t *transport.Client
}

// NewSettingsClient creates a SettingsClient on the shared transport.
func NewSettingsClient(t *transport.Client) *SettingsClient {
	return &SettingsClient{t: t}
}

// Branding fetches the tenant branding settings.
func (c *SettingsClient) Branding(ctx context.Context) (*domain.BrandingSettings, error) {
	var settings domain.BrandingSettings
	if err := c.t.Get(ctx, "Settings.Branding", "/v1/settings/branding", &settings); err != nil {
		return nil, err
	}
	return &settings, nil
}
