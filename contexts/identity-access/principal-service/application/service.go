package application

import (
	"context"
	"log/slog"
	"strings"

	"vestiaire/contexts/identity-access/principal-service/ports"
	"vestiaire/internal/shared/principal"
)

// Service resolves the current principal for one request. Resolution order:
// bearer token, then trusted proxy headers. Anonymous callers resolve to
// (zero principal, false) without error so read-only surfaces keep working.
type Service struct {
	Verifier ports.TokenVerifier
	Logger   *slog.Logger
}

func (s Service) Resolve(ctx context.Context, authorization, headerUserID, headerRole string) (principal.Principal, bool, error) {
	if token, ok := bearerToken(authorization); ok {
		if s.Verifier == nil {
			return principal.Principal{}, false, nil
		}
		p, err := s.Verifier.Verify(ctx, token)
		if err != nil {
			if s.Logger != nil {
				s.Logger.Warn("token verification failed",
					"event", "principal_token_rejected",
					"module", "identity-access/principal-service",
					"layer", "application",
					"error", err.Error(),
				)
			}
			return principal.Principal{}, false, err
		}
		return p, true, nil
	}

	// Header identity is only meaningful behind the school gateway, which
	// strips these headers from external traffic.
	userID := strings.TrimSpace(headerUserID)
	if userID == "" {
		return principal.Principal{}, false, nil
	}
	role, err := principal.ParseRole(headerRole)
	if err != nil {
		role = principal.RoleStudent
	}
	return principal.Principal{UserID: userID, Role: role}, true, nil
}

func bearerToken(authorization string) (string, bool) {
	value := strings.TrimSpace(authorization)
	if value == "" {
		return "", false
	}
	const prefix = "bearer "
	if len(value) <= len(prefix) || !strings.EqualFold(value[:len(prefix)], prefix) {
		return "", false
	}
	return strings.TrimSpace(value[len(prefix):]), true
}
