package workflow

import (
	"regexp"
	"strings"
	"testing"
	"time"
)

func TestNewApplicationIDFormat(t *testing.T) {
	pattern := regexp.MustCompile(`^ALM-\d{8}-\d{5}$`)
	now := time.Date(2026, 8, 29, 23, 59, 0, 0, time.UTC)
	for i := 0; i < 200; i++ {
		id := NewApplicationID(now)
		if !pattern.MatchString(id) {
			t.Fatalf("id %q does not match ALM-YYYYMMDD-NNNNN", id)
		}
		if !strings.HasPrefix(id, "ALM-20260829-") {
			t.Fatalf("id %q does not embed the creation date", id)
		}
	}
}

func TestNewApplicationIDUsesUTCDate(t *testing.T) {
	// 01:30 on Aug 30 in UTC+5 is still Aug 29 in UTC.
	loc := time.FixedZone("UTC+5", 5*3600)
	now := time.Date(2026, 8, 30, 1, 30, 0, 0, loc)
	id := NewApplicationID(now)
	if !strings.HasPrefix(id, "ALM-20260829-") {
		t.Fatalf("id %q should use the UTC date 20260829", id)
	}
}
