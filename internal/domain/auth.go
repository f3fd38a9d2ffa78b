package domain

// ============================================================
// Auth request / response types, matching the FieldOS API contract.
// ============================================================

// LoginRequest is the body for POST /v1/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is the body for 200 from POST /v1/auth/login.
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in,omitempty"`
	User        User   `json:"user"`
}

// TokenInfo is an advisory, locally decoded view of the bearer token.
// Display only. Authorization decisions always come from the backend.
type TokenInfo struct {
	Subject   string `json:"sub"`
	ExpiresAt int64  `json:"exp"`
	IssuedAt  int64  `json:"iat"`
}
