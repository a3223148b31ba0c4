package sweep

import "testing"

func TestTierIncludes(t *testing.T) {
	cases := []struct {
		role      Role
		firstLine bool
		elevated  bool
	}{
		{RoleMember, true, false},
		{RoleOperator, true, false},
		{RoleAdmin, false, true},
		{RoleOwner, false, true},
		{RoleSupervisor, false, true},
		{Role("accountant"), false, false}, // unrecognized role matches no tier
	}
	for _, c := range cases {
		if got := TierFirstLine.Includes(c.role); got != c.firstLine {
			t.Fatalf("TierFirstLine.Includes(%q) = %v, want %v", c.role, got, c.firstLine)
		}
		if got := TierElevated.Includes(c.role); got != c.elevated {
			t.Fatalf("TierElevated.Includes(%q) = %v, want %v", c.role, got, c.elevated)
		}
	}
}

func TestParseRole_NormalizesCase(t *testing.T) {
	if ParseRole(" Admin ") != RoleAdmin {
		t.Fatal("expected role parsing to trim and lowercase")
	}
}
