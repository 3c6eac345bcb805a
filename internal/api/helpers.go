package api

import (
	"context"
	"strings"

	"github.com/danielgtaylor/huma/v2"
)

// authenticateOperator validates the Authorization header and returns the
// operator username. Every console endpoint goes through this.
func (s *Server) authenticateOperator(authHeader string) (string, error) {
	if authHeader == "" {
		return "", huma.Error401Unauthorized("Missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", huma.Error401Unauthorized("Invalid authorization header format")
	}

	claims, err := s.services.Auth.Verify(parts[1])
	if err != nil {
		return "", huma.Error401Unauthorized("Invalid or expired token")
	}

	return claims.Username, nil
}

// deviceKey returns the quota key for a fan submission: the client-supplied
// device ID when present, the client IP otherwise. Fans without JavaScript
// storage still get a stable-enough key from their address.
func deviceKey(ctx context.Context, deviceID string) string {
	if key := strings.TrimSpace(deviceID); key != "" {
		return key
	}
	return clientIPFromContext(ctx)
}
