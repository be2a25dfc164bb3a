package principal

import "testing"

func TestRoleHierarchy(t *testing.T) {
	if !RoleAdmin.AtLeast(RoleModerator) {
		t.Fatalf("admin should satisfy moderator checks")
	}
	if !RoleModerator.AtLeast(RoleModerator) {
		t.Fatalf("moderator should satisfy moderator checks")
	}
	if RoleStudent.AtLeast(RoleModerator) {
		t.Fatalf("student must not satisfy moderator checks")
	}
	if Role("root").AtLeast(RoleStudent) {
		t.Fatalf("unknown roles must rank below every known role")
	}
}

func TestParseRole(t *testing.T) {
	role, err := ParseRole(" Moderator ")
	if err != nil {
		t.Fatalf("parse role failed: %v", err)
	}
	if role != RoleModerator {
		t.Fatalf("expected moderator, got %s", role)
	}
	if _, err := ParseRole("teacher"); err == nil {
		t.Fatalf("expected unknown role error")
	}
}

func TestPrincipalHelpers(t *testing.T) {
	var anon Principal
	if !anon.Anonymous() {
		t.Fatalf("zero principal must be anonymous")
	}
	mod := Principal{UserID: "user-1", Role: RoleModerator}
	if anon.Moderator() || !mod.Moderator() || mod.Admin() {
		t.Fatalf("unexpected capability evaluation")
	}
}
