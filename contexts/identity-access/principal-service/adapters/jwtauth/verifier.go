package jwtauth

import (
	"context"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	domainerrors "vestiaire/contexts/identity-access/principal-service/domain/errors"
	"vestiaire/internal/shared/principal"
)

// Verifier checks HS256 tokens issued by the school identity provider.
// Expected claims: sub (user id) and role.
type Verifier struct {
	secret []byte
}

func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: []byte(secret)}
}

func (v *Verifier) Verify(_ context.Context, token string) (principal.Principal, error) {
	parsed, err := jwt.Parse(
		strings.TrimSpace(token),
		func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
			}
			return v.secret, nil
		},
		jwt.WithValidMethods([]string{"HS256"}),
	)
	if err != nil || !parsed.Valid {
		return principal.Principal{}, domainerrors.ErrInvalidToken
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return principal.Principal{}, domainerrors.ErrInvalidToken
	}
	subject, err := claims.GetSubject()
	if err != nil || strings.TrimSpace(subject) == "" {
		return principal.Principal{}, domainerrors.ErrInvalidToken
	}
	rawRole, _ := claims["role"].(string)
	role, err := principal.ParseRole(rawRole)
	if err != nil {
		return principal.Principal{}, domainerrors.ErrUnknownRole
	}

	return principal.Principal{UserID: subject, Role: role}, nil
}
