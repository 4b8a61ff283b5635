package workflow

import "fmt"

// Status is the lifecycle state of a license application.  The value set
// is closed: every status stored in the database and every status accepted
// from a request body must be one of the constants below.  Handlers call
// ParseStatus at the boundary so the engine only ever sees valid values.
type Status string

const (
	StatusFresh      Status = "FRESH"       // newly created, not yet routed
	StatusForwarded  Status = "FORWARDED"   // routed to a reviewing officer
	StatusReturned   Status = "RETURNED"    // sent back to the applicant's desk
	StatusRedFlagged Status = "RED_FLAGGED" // marked for disposal review
	StatusApproved   Status = "APPROVED"    // cleared by a reviewing officer
	StatusRejected   Status = "REJECTED"    // terminal refusal
	StatusDisposed   Status = "DISPOSED"    // terminal after red flag
	StatusSent       Status = "SENT"        // dispatched for final issuance
	StatusFinal      Status = "FINAL"       // terminal, license issued
)

// transitions is the full status state machine.  A status missing from the
// map, or mapping to an empty slice, permits no outgoing transition.
var transitions = map[Status][]Status{
	StatusFresh:      {StatusForwarded},
	StatusForwarded:  {StatusApproved, StatusRejected, StatusReturned, StatusRedFlagged},
	StatusReturned:   {StatusForwarded},
	StatusRedFlagged: {StatusDisposed},
	StatusApproved:   {StatusFinal},
	StatusRejected:   {},
	StatusDisposed:   {},
	StatusSent:       {StatusFinal},
	StatusFinal:      {},
}

// ParseStatus validates a raw string against the closed status set.  It
// returns an error for anything outside the nine known values, including
// the empty string.
func ParseStatus(s string) (Status, error) {
	st := Status(s)
	if _, ok := transitions[st]; !ok {
		return "", fmt.Errorf("unknown status %q", s)
	}
	return st, nil
}

// Valid reports whether s is one of the nine defined statuses.
func (s Status) Valid() bool {
	_, ok := transitions[s]
	return ok
}

// Terminal reports whether s permits no further transition.
func (s Status) Terminal() bool {
	return len(transitions[s]) == 0 && s.Valid()
}

// AllowedNext returns the statuses reachable from s.  The returned slice
// is a copy; callers may modify it freely.  An unknown status yields an
// empty slice rather than an error so lookups fail closed.
func AllowedNext(s Status) []Status {
	next := transitions[s]
	out := make([]Status, len(next))
	copy(out, next)
	return out
}

// CanTransition reports whether the state machine permits moving from one
// status to another.
func CanTransition(from, to Status) bool {
	for _, n := range transitions[from] {
		if n == to {
			return true
		}
	}
	return false
}
