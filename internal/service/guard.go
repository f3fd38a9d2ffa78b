package service

import (
	"strings"

	"go.uber.org/zap"
)

// Public routes reachable without a session.
var publicRoutes = map[string]bool{
	"/login":           true,
	"/forgot-password": true,
	"/signup":          true,
}

const superAdminPrefix = "/admin"

// Decision is the outcome of a navigation check.
type Decision struct {
	Allowed  bool
	Redirect string // where to send the user when not allowed
}

// Guard gates navigation on the session. It holds no state of its own:
// every decision is derived from the session at call time.
type Guard struct {
	session *Session
	logger  *zap.Logger
}

// NewGuard wires the guard to a session. A nil session is a wiring bug.
func NewGuard(session *Session, logger *zap.Logger) *Guard {
	if session == nil {
		panic("guard: session is required")
	}
	return &Guard{session: session, logger: logger}
}

// Allow decides whether navigating to route is permitted right now.
// While the session is still initializing, protected routes are allowed;
// the screen renders its loading state and the session settles underneath.
func (g *Guard) Allow(route string) Decision {
	if publicRoutes[route] {
		return Decision{Allowed: true}
	}

	state := g.session.State()
	if state == SessionUnauthenticated {
		g.logger.Debug("guard: unauthenticated navigation blocked", zap.String("route", route))
		return Decision{Allowed: false, Redirect: "/login"}
	}

	if strings.HasPrefix(route, superAdminPrefix) && !g.session.IsSuperAdmin() {
		g.logger.Warn("guard: super-admin route denied", zap.String("route", route))
		return Decision{Allowed: false, Redirect: "/"}
	}

	return Decision{Allowed: true}
}

// NavigationSurface returns the menu entries for the current user: the
// cross-tenant admin surface for super-admins, the tenant surface for
// everyone else.
func (g *Guard) NavigationSurface() []string {
	if g.session.IsSuperAdmin() {
		return []string{"/admin/tenants", "/admin/plans", "/admin/settings"}
	}
	return []string{
		"/dashboard", "/jobs", "/customers", "/quotes", "/invoices",
		"/campaigns", "/dispatch", "/templates", "/reports",
	}
}
