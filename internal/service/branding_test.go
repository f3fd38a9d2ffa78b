package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/fieldos/fieldos-client-go/internal/domain"
	"github.com/fieldos/fieldos-client-go/internal/service"

	"go.uber.org/zap"
)

type fakeSettingsAPI struct {
	brandingFn func(ctx context.Context) (*domain.BrandingSettings, error)
}

func (f *fakeSettingsAPI) Branding(ctx context.Context) (*domain.BrandingSettings, error) {
	return f.brandingFn(ctx)
}

func TestBranding_FetchFailureKeepsDefaults(t *testing.T) {
	api := &fakeSettingsAPI{
		brandingFn: func(context.Context) (*domain.BrandingSettings, error) {
			return nil, errors.New("backend down")
		},
	}
	b := service.NewBranding(api, zap.NewNop())

	b.Load(context.Background())

	defaults := domain.DefaultBranding()
	if got := b.Settings(); got != defaults {
		t.Errorf("expected defaults retained, got %+v", got)
	}
}

func TestBranding_ServerValuesOverlayDefaults(t *testing.T) {
	api := &fakeSettingsAPI{
		brandingFn: func(context.Context) (*domain.BrandingSettings, error) {
			return &domain.BrandingSettings{
				CompanyName:       "Acme Plumbing",
				PrimaryColor:      "#112233",
				WhiteLabelEnabled: true,
			}, nil
		},
	}
	b := service.NewBranding(api, zap.NewNop())

	b.Load(context.Background())

	got := b.Settings()
	if got.CompanyName != "Acme Plumbing" || got.PrimaryColor != "#112233" {
		t.Errorf("server values must overlay defaults: %+v", got)
	}
	if !got.WhiteLabelEnabled {
		t.Error("white-label flag must copy from server")
	}
	// Fields the server left empty keep their defaults.
	if got.PortalTitle != domain.DefaultBranding().PortalTitle {
		t.Errorf("empty server field must keep default, got %q", got.PortalTitle)
	}
}

func TestBranding_ThemeVarsResolve(t *testing.T) {
	b := service.NewBranding(&fakeSettingsAPI{
		brandingFn: func(context.Context) (*domain.BrandingSettings, error) { return nil, errors.New("x") },
	}, zap.NewNop())

	vars := b.ThemeVars()
	if vars["--color-primary"] != domain.DefaultBranding().PrimaryColor {
		t.Errorf("unexpected primary var: %q", vars["--color-primary"])
	}
}

func TestBranding_SetAppliesLocalEdit(t *testing.T) {
	b := service.NewBranding(&fakeSettingsAPI{
		brandingFn: func(context.Context) (*domain.BrandingSettings, error) { return nil, errors.New("x") },
	}, zap.NewNop())

	edited := b.Settings()
	edited.PrimaryColor = "#abcdef"
	b.Set(edited)

	if b.Settings().PrimaryColor != "#abcdef" {
		t.Error("local edit must stick")
	}
}
