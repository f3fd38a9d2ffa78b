package domain

// Roles returned by the backend. The client only ever branches on
// SUPER_ADMIN; the rest are display/navigation hints.
const (
	RoleSuperAdmin = "SUPER_ADMIN"
	RoleAdmin      = "ADMIN"
	RoleDispatcher = "DISPATCHER"
	RoleTech       = "TECH"
)

// User is the authenticated identity exactly as the backend reports it.
// The client never constructs or validates one beyond JSON decoding.
type User struct {
	ID                 int64  `json:"id"`
	Name               string `json:"name"`
	Email              string `json:"email"`
	Role               string `json:"role"`
	TenantID           string `json:"tenant_id,omitempty"`
	AvatarURL          string `json:"avatar_url,omitempty"`
	OnboardingComplete bool   `json:"onboarding_complete"`
}

// IsSuperAdmin reports whether the user has cross-tenant access.
// Derived on every call so it can never be stale relative to the user.
func (u *User) IsSuperAdmin() bool {
	return u != nil && u.Role == RoleSuperAdmin
}
