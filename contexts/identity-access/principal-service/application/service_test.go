package application

import (
	"context"
	"errors"
	"testing"

	domainerrors "vestiaire/contexts/identity-access/principal-service/domain/errors"
	"vestiaire/internal/shared/principal"
)

type staticVerifier struct {
	p   principal.Principal
	err error
}

func (v staticVerifier) Verify(context.Context, string) (principal.Principal, error) {
	return v.p, v.err
}

func TestResolvePrefersBearerToken(t *testing.T) {
	svc := Service{Verifier: staticVerifier{p: principal.Principal{UserID: "user-1", Role: principal.RoleModerator}}}
	p, ok, err := svc.Resolve(context.Background(), "Bearer some-token", "header-user", "admin")
	if err != nil || !ok {
		t.Fatalf("resolve failed: ok=%v err=%v", ok, err)
	}
	if p.UserID != "user-1" || p.Role != principal.RoleModerator {
		t.Fatalf("unexpected principal %+v", p)
	}
}

func TestResolveRejectsBadToken(t *testing.T) {
	svc := Service{Verifier: staticVerifier{err: domainerrors.ErrInvalidToken}}
	_, ok, err := svc.Resolve(context.Background(), "Bearer junk", "", "")
	if ok || !errors.Is(err, domainerrors.ErrInvalidToken) {
		t.Fatalf("expected invalid token, got ok=%v err=%v", ok, err)
	}
}

func TestResolveHeaderFallback(t *testing.T) {
	svc := Service{}
	p, ok, err := svc.Resolve(context.Background(), "", "user-7", "moderator")
	if err != nil || !ok {
		t.Fatalf("resolve failed: ok=%v err=%v", ok, err)
	}
	if p.Role != principal.RoleModerator {
		t.Fatalf("expected moderator role, got %s", p.Role)
	}

	// Unknown header role degrades to student rather than failing the call.
	p, ok, err = svc.Resolve(context.Background(), "", "user-8", "wizard")
	if err != nil || !ok || p.Role != principal.RoleStudent {
		t.Fatalf("expected student fallback, got %+v ok=%v err=%v", p, ok, err)
	}
}

func TestResolveAnonymous(t *testing.T) {
	svc := Service{}
	p, ok, err := svc.Resolve(context.Background(), "", "", "")
	if err != nil || ok || !p.Anonymous() {
		t.Fatalf("expected anonymous, got %+v ok=%v err=%v", p, ok, err)
	}
}
