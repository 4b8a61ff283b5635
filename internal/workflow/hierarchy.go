package workflow

import "fmt"

// Role is a validated rank code.  Like Status, the set is closed and
// request payloads are parsed at the boundary via ParseRole.
type Role string

const (
	RoleZS  Role = "ZS"  // Zonal Supervisor
	RoleSHO Role = "SHO" // Station House Officer
	RoleACP Role = "ACP" // Assistant Commissioner of Police
	RoleDCP Role = "DCP" // Deputy Commissioner of Police
	RoleCP  Role = "CP"  // Commissioner of Police
)

// hierarchy maps each rank to the ranks it may forward an application to.
// CP sits at the top and forwards to nobody.
var hierarchy = map[Role][]Role{
	RoleZS:  {RoleSHO, RoleACP},
	RoleSHO: {RoleACP},
	RoleACP: {RoleDCP, RoleSHO},
	RoleDCP: {RoleCP, RoleACP},
	RoleCP:  {},
}

// capabilities is the single declaration of which ranks may perform each
// workflow operation.  Both the engine and the route middleware consult
// this table so the allow-lists cannot drift apart.
var capabilities = map[Role]struct {
	changeStatus bool
	forward      bool
}{
	RoleZS:  {changeStatus: false, forward: true},
	RoleSHO: {changeStatus: true, forward: true},
	RoleACP: {changeStatus: true, forward: true},
	RoleDCP: {changeStatus: true, forward: true},
	RoleCP:  {changeStatus: true, forward: true},
}

// ParseRole validates a raw rank code.  Unknown codes are rejected so that
// lookups downstream never operate on unchecked strings.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if _, ok := hierarchy[r]; !ok {
		return "", fmt.Errorf("unknown role %q", s)
	}
	return r, nil
}

// ForwardTargets returns the ranks the given rank may forward to.  An
// unknown rank yields an empty slice (fail closed, not an error).
func ForwardTargets(r Role) []Role {
	next := hierarchy[r]
	out := make([]Role, len(next))
	copy(out, next)
	return out
}

// CanForwardTo reports whether actor may forward an application to target.
func CanForwardTo(actor, target Role) bool {
	for _, t := range hierarchy[actor] {
		if t == target {
			return true
		}
	}
	return false
}

// CanChangeStatus reports whether the rank may change application status
// at all.  This is the blanket permission; the transition table decides
// whether a specific change is legal.
func CanChangeStatus(r Role) bool {
	return capabilities[r].changeStatus
}

// CanForward reports whether the rank may forward applications at all.
func CanForward(r Role) bool {
	return capabilities[r].forward
}

// StatusChangerRoles returns the rank codes permitted to change status,
// for use when registering role middleware on routes.
func StatusChangerRoles() []string {
	return rolesWith(func(c struct{ changeStatus, forward bool }) bool { return c.changeStatus })
}

// ForwarderRoles returns the rank codes permitted to forward.
func ForwarderRoles() []string {
	return rolesWith(func(c struct{ changeStatus, forward bool }) bool { return c.forward })
}

// AllRoles returns every known rank code.
func AllRoles() []string {
	return rolesWith(func(struct{ changeStatus, forward bool }) bool { return true })
}

func rolesWith(pred func(struct{ changeStatus, forward bool }) bool) []string {
	// Fixed order keeps route registration and responses deterministic.
	ordered := []Role{RoleZS, RoleSHO, RoleACP, RoleDCP, RoleCP}
	out := make([]string, 0, len(ordered))
	for _, r := range ordered {
		if pred(capabilities[r]) {
			out = append(out, string(r))
		}
	}
	return out
}
