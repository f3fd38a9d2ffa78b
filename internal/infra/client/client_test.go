package client_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fieldos/fieldos-client-go/internal/config"
	"github.com/fieldos/fieldos-client-go/internal/domain"
	"github.com/fieldos/fieldos-client-go/internal/infra/client"
	"github.com/fieldos/fieldos-client-go/internal/infra/credstore"
	"github.com/fieldos/fieldos-client-go/internal/infra/observability"
	"github.com/fieldos/fieldos-client-go/internal/infra/resilience"
	"github.com/fieldos/fieldos-client-go/internal/infra/transport"
	"github.com/fieldos/fieldos-client-go/internal/port"

	"go.uber.org/zap"
)

func newTransport(t *testing.T, baseURL string) *transport.Client {
	t.Helper()
	store := credstore.New(&config.Config{
		PersistMode: config.PersistSession,
		StateDir:    t.TempDir(),
	}, zap.NewNop())

	return transport.New(
		&http.Client{Timeout: 5 * time.Second},
		baseURL,
		store,
		port.NavigatorFunc(func(string) {}),
		resilience.NewCircuitBreaker("test"),
		resilience.Config{MaxRetries: 0, InitialBackoff: time.Millisecond, MaxConcurrency: 4},
		observability.NewMetrics(),
		zap.NewNop(),
	)
}

func TestAuthClient_Login(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/auth/login" || r.Method != http.MethodPost {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var req domain.LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("bad login body: %v", err)
		}
		json.NewEncoder(w).Encode(domain.LoginResponse{
			AccessToken: "T",
			User:        domain.User{ID: 1, Email: req.Email, Role: domain.RoleTech},
		})
	}))
	defer srv.Close()

	auth := client.NewAuthClient(newTransport(t, srv.URL))
	resp, err := auth.Login(context.Background(), "a@b.com", "pw")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.AccessToken != "T" || resp.User.Email != "a@b.com" {
		t.Errorf("unexpected response: %+v", resp)
	}
}

func TestAuthClient_LoginRejectsMissingToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"user":{"id":1}}`))
	}))
	defer srv.Close()

	auth := client.NewAuthClient(newTransport(t, srv.URL))
	if _, err := auth.Login(context.Background(), "a@b.com", "pw"); err == nil {
		t.Fatal("expected error for response without access token")
	}
}

func TestAuthClient_Me(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/auth/me" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(domain.User{ID: 4, Role: domain.RoleSuperAdmin})
	}))
	defer srv.Close()

	auth := client.NewAuthClient(newTransport(t, srv.URL))
	user, err := auth.Me(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !user.IsSuperAdmin() {
		t.Errorf("unexpected user: %+v", user)
	}
}

func TestResourcesClient_ListAndCreate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method + " " + r.URL.Path {
		case "GET /v1/jobs":
			json.NewEncoder(w).Encode([]domain.Job{{ID: 1, Title: "inspect boiler"}})
		case "POST /v1/jobs":
			var req domain.JobCreate
			json.NewDecoder(r.Body).Decode(&req)
			json.NewEncoder(w).Encode(domain.Job{ID: 2, Title: req.Title, Status: "scheduled"})
		case "GET /v1/reports/summary":
			json.NewEncoder(w).Encode(domain.ReportSummary{OpenJobs: 3})
		default:
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	res := client.NewResourcesClient(newTransport(t, srv.URL))
	ctx := context.Background()

	jobs, err := res.ListJobs(ctx)
	if err != nil || len(jobs) != 1 {
		t.Fatalf("list jobs: %v (%d)", err, len(jobs))
	}

	created, err := res.CreateJob(ctx, &domain.JobCreate{CustomerID: 1, Title: "replace filter"})
	if err != nil || created.ID != 2 || created.Status != "scheduled" {
		t.Fatalf("create job: %v %+v", err, created)
	}

	summary, err := res.ReportSummary(ctx)
	if err != nil || summary.OpenJobs != 3 {
		t.Fatalf("report summary: %v %+v", err, summary)
	}
}

func TestSettingsClient_Branding(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/settings/branding" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(domain.BrandingSettings{CompanyName: "Acme"})
	}))
	defer srv.Close()

	settings := client.NewSettingsClient(newTransport(t, srv.URL))
	got, err := settings.Branding(context.Background())
	if err != nil || got.CompanyName != "Acme" {
		t.Fatalf("branding: %v %+v", err, got)
	}
}
