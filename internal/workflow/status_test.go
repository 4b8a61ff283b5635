package workflow

import "testing"

func TestTransitionTable(t *testing.T) {
	// Every legal edge of the state machine, and nothing else.
	legal := map[Status][]Status{
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
	all := []Status{
		StatusFresh, StatusForwarded, StatusReturned, StatusRedFlagged,
		StatusApproved, StatusRejected, StatusDisposed, StatusSent, StatusFinal,
	}
	for from, targets := range legal {
		want := make(map[Status]bool, len(targets))
		for _, to := range targets {
			want[to] = true
		}
		for _, to := range all {
			if got := CanTransition(from, to); got != want[to] {
				t.Errorf("CanTransition(%s, %s) = %v, want %v", from, to, got, want[to])
			}
		}
		if got := AllowedNext(from); len(got) != len(targets) {
			t.Errorf("AllowedNext(%s) returned %d statuses, want %d", from, len(got), len(targets))
		}
	}
}

func TestUnknownStatusFailsClosed(t *testing.T) {
	for _, to := range []Status{StatusForwarded, StatusFinal} {
		if CanTransition(Status("PENDING"), to) {
			t.Errorf("unknown status allowed transition to %s", to)
		}
	}
	if next := AllowedNext(Status("PENDING")); len(next) != 0 {
		t.Errorf("AllowedNext for unknown status = %v, want empty", next)
	}
}

func TestParseStatus(t *testing.T) {
	if _, err := ParseStatus("FORWARDED"); err != nil {
		t.Fatalf("ParseStatus(FORWARDED) failed: %v", err)
	}
	for _, bad := range []string{"", "fresh", "FORWARDED ", "CONFIRMED"} {
		if _, err := ParseStatus(bad); err == nil {
			t.Errorf("ParseStatus(%q) accepted an invalid status", bad)
		}
	}
}

func TestTerminal(t *testing.T) {
	terminal := map[Status]bool{StatusRejected: true, StatusDisposed: true, StatusFinal: true}
	all := []Status{
		StatusFresh, StatusForwarded, StatusReturned, StatusRedFlagged,
		StatusApproved, StatusRejected, StatusDisposed, StatusSent, StatusFinal,
	}
	for _, s := range all {
		if got := s.Terminal(); got != terminal[s] {
			t.Errorf("%s.Terminal() = %v, want %v", s, got, terminal[s])
		}
	}
	if Status("PENDING").Terminal() {
		t.Error("unknown status reported as terminal")
	}
}
