package principal

import (
	"errors"
	"strings"
)

// Role is the school-wide role hierarchy. Elevated capability is always
// expressed as "at least" a role, never as string equality at call sites.
type Role string

const (
	RoleStudent   Role = "student"
	RoleModerator Role = "moderator"
	RoleAdmin     Role = "admin"
)

var ErrUnknownRole = errors.New("unknown role")

var roleRank = map[Role]int{
	RoleStudent:   1,
	RoleModerator: 2,
	RoleAdmin:     3,
}

// AtLeast reports whether r sits at or above min in the hierarchy.
// Unknown roles rank below every known role.
func (r Role) AtLeast(min Role) bool {
	return roleRank[r] >= roleRank[min]
}

func ParseRole(raw string) (Role, error) {
	switch Role(strings.TrimSpace(strings.ToLower(raw))) {
	case RoleStudent:
		return RoleStudent, nil
	case RoleModerator:
		return RoleModerator, nil
	case RoleAdmin:
		return RoleAdmin, nil
	default:
		return "", ErrUnknownRole
	}
}

// Principal is the authenticated caller identity every core operation
// receives explicitly. The zero value is anonymous.
type Principal struct {
	UserID string
	Role   Role
}

func (p Principal) Anonymous() bool {
	return strings.TrimSpace(p.UserID) == ""
}

func (p Principal) Moderator() bool {
	return p.Role.AtLeast(RoleModerator)
}

func (p Principal) Admin() bool {
	return p.Role.AtLeast(RoleAdmin)
}
