package service

import (
	"context"
	"sync"

	"github.com/fieldos/fieldos-client-go/internal/domain"
	"github.com/fieldos/fieldos-client-go/internal/port"

	"go.uber.org/zap"
)

// Branding holds the tenant display settings: client-side defaults,
// overlaid once with server values when they can be fetched. Lower stakes
// than the session: a failed fetch silently keeps the defaults.
type Branding struct {
	mu       sync.RWMutex
	settings domain.BrandingSettings

	api    port.SettingsAPI
	logger *zap.Logger
}

// NewBranding creates the branding state seeded with defaults.
func NewBranding(api port.SettingsAPI, logger *zap.Logger) *Branding {
	if api == nil {
		panic("branding: settings API is required")
	}
	return &Branding{
		settings: domain.DefaultBranding(),
		api:      api,
		logger:   logger,
	}
}

// Load fetches server settings once and overlays non-empty fields onto the
// defaults. Best-effort: any error leaves the defaults in place.
func (b *Branding) Load(ctx context.Context) {
	remote, err := b.api.Branding(ctx)
	if err != nil {
		b.logger.Debug("branding: fetch failed, keeping defaults", zap.Error(err))
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.settings = merge(b.settings, *remote)
}

// Settings returns the currently resolved settings.
func (b *Branding) Settings() domain.BrandingSettings {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.settings
}

// Set replaces the resolved settings locally. Used by the settings screen
// for optimistic edits; the backend write happens elsewhere.
func (b *Branding) Set(s domain.BrandingSettings) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.settings = s
}

// ThemeVars resolves the style variables the rest of the UI consumes.
func (b *Branding) ThemeVars() map[string]string {
	s := b.Settings()
	return map[string]string{
		"--color-primary":   s.PrimaryColor,
		"--color-secondary": s.SecondaryColor,
		"--color-accent":    s.AccentColor,
		"--text-on-primary": s.TextOnPrimary,
	}
}

// merge overlays non-empty remote fields onto base. The white-label flag
// copies unconditionally: false is a valid server value.
func merge(base, remote domain.BrandingSettings) domain.BrandingSettings {
	out := base
	if remote.LogoURL != "" {
		out.LogoURL = remote.LogoURL
	}
	if remote.CompanyName != "" {
		out.CompanyName = remote.CompanyName
	}
	if remote.PrimaryColor != "" {
		out.PrimaryColor = remote.PrimaryColor
	}
	if remote.SecondaryColor != "" {
		out.SecondaryColor = remote.SecondaryColor
	}
	if remote.AccentColor != "" {
		out.AccentColor = remote.AccentColor
	}
	if remote.TextOnPrimary != "" {
		out.TextOnPrimary = remote.TextOnPrimary
	}
	if remote.PortalTitle != "" {
		out.PortalTitle = remote.PortalTitle
	}
	if remote.PortalWelcomeMessage != "" {
		out.PortalWelcomeMessage = remote.PortalWelcomeMessage
	}
	out.WhiteLabelEnabled = remote.WhiteLabelEnabled
	return out
}
