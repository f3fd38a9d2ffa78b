package service

import (
	"fmt"

	"github.com/fieldos/fieldos-client-go/internal/domain"

	"github.com/golang-jwt/jwt/v5"
)

// DecodeToken parses the bearer token's claims WITHOUT verifying the
// signature. The token stays opaque for every authorization decision; this
// exists only so whoami output can show who the token claims to be and
// when it expires.
func DecodeToken(token string) (*domain.TokenInfo, error) {
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return nil, fmt.Errorf("decode token: %w", err)
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("decode token: unexpected claims type")
	}

	info := &domain.TokenInfo{}
	if sub, err := claims.GetSubject(); err == nil {
		info.Subject = sub
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		info.ExpiresAt = exp.Unix()
	}
	if iat, err := claims.GetIssuedAt(); err == nil && iat != nil {
		info.IssuedAt = iat.Unix()
	}
	return info, nil
}
