package workflow

import "testing"

func TestForwardTargets(t *testing.T) {
	want := map[Role][]Role{
		RoleZS:  {RoleSHO, RoleACP},
		RoleSHO: {RoleACP},
		RoleACP: {RoleDCP, RoleSHO},
		RoleDCP: {RoleCP, RoleACP},
		RoleCP:  {},
	}
	all := []Role{RoleZS, RoleSHO, RoleACP, RoleDCP, RoleCP}
	for actor, targets := range want {
		allowed := make(map[Role]bool, len(targets))
		for _, tg := range targets {
			allowed[tg] = true
		}
		for _, tg := range all {
			if got := CanForwardTo(actor, tg); got != allowed[tg] {
				t.Errorf("CanForwardTo(%s, %s) = %v, want %v", actor, tg, got, allowed[tg])
			}
		}
	}
}

func TestUnknownRoleFailsClosed(t *testing.T) {
	if targets := ForwardTargets(Role("CLERK")); len(targets) != 0 {
		t.Errorf("ForwardTargets for unknown role = %v, want empty", targets)
	}
	if CanForwardTo(Role("CLERK"), RoleSHO) {
		t.Error("unknown role allowed to forward")
	}
	if CanChangeStatus(Role("CLERK")) || CanForward(Role("CLERK")) {
		t.Error("unknown role granted workflow capability")
	}
}

func TestCapabilities(t *testing.T) {
	// ZS may forward but never change status; every other rank may do both.
	if CanChangeStatus(RoleZS) {
		t.Error("ZS must not be allowed to change status")
	}
	if !CanForward(RoleZS) {
		t.Error("ZS must be allowed to forward")
	}
	for _, r := range []Role{RoleSHO, RoleACP, RoleDCP, RoleCP} {
		if !CanChangeStatus(r) {
			t.Errorf("%s must be allowed to change status", r)
		}
		if !CanForward(r) {
			t.Errorf("%s must be allowed to forward", r)
		}
	}
}

func TestRoleLists(t *testing.T) {
	if got := len(StatusChangerRoles()); got != 4 {
		t.Errorf("StatusChangerRoles has %d entries, want 4", got)
	}
	if got := len(ForwarderRoles()); got != 5 {
		t.Errorf("ForwarderRoles has %d entries, want 5", got)
	}
	for _, code := range StatusChangerRoles() {
		if code == string(RoleZS) {
			t.Error("ZS listed among status changers")
		}
	}
}

func TestParseRole(t *testing.T) {
	for _, code := range []string{"ZS", "SHO", "ACP", "DCP", "CP"} {
		if _, err := ParseRole(code); err != nil {
			t.Errorf("ParseRole(%s) failed: %v", code, err)
		}
	}
	for _, bad := range []string{"", "sho", "CLERK", "CP "} {
		if _, err := ParseRole(bad); err == nil {
			t.Errorf("ParseRole(%q) accepted an invalid role", bad)
		}
	}
}
