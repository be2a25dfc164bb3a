package ports

import (
	"context"

	"vestiaire/internal/shared/principal"
)

// TokenVerifier validates a bearer token and extracts the principal baked
// into its claims.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (principal.Principal, error)
}
