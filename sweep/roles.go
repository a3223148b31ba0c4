package sweep

import "strings"

// Role is the closed set of membership roles the sweep recognizes. Roles are
// stored as free-form strings; anything outside this set matches no tier and
// is reachable only through the first-alert fallback.
type Role string

const (
	RoleMember     Role = "member"
	RoleOperator   Role = "operator"
	RoleAdmin      Role = "admin"
	RoleOwner      Role = "owner"
	RoleSupervisor Role = "supervisor"
)

func ParseRole(s string) Role {
	return Role(strings.ToLower(strings.TrimSpace(s)))
}

// Tier classifies roles into the front-line audience of the first alert and
// the elevated audience of the escalation.
type Tier int

const (
	TierFirstLine Tier = iota
	TierElevated
)

func (t Tier) Includes(r Role) bool {
	switch t {
	case TierFirstLine:
		return r == RoleMember || r == RoleOperator
	case TierElevated:
		return r == RoleAdmin || r == RoleOwner || r == RoleSupervisor
	}
	return false
}
