package api

import (
	"errors"
	"strings"

	"github.com/danielgtaylor/huma/v2"

	"github.com/linkstashapp/linkstash-server/internal/auth"
	domainerrors "github.com/linkstashapp/linkstash-server/internal/errors"
)

// authenticateRequest validates the Authorization header and returns the
// verified token claims. Scope enforcement happens later, in the guard.
func (s *Server) authenticateRequest(authHeader string) (*auth.Claims, error) {
	if authHeader == "" {
		return nil, huma.Error401Unauthorized("Missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return nil, huma.Error401Unauthorized("Invalid authorization header format")
	}

	claims, err := s.services.Auth.VerifyAccessToken(parts[1])
	if err != nil {
		var domainErr *domainerrors.Error
		if errors.As(err, &domainErr) {
			return nil, domainErr
		}
		return nil, huma.Error401Unauthorized("Invalid or expired token")
	}

	return claims, nil
}
