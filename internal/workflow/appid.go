package workflow

import (
	"fmt"
	"math/rand"
	"time"
)

// NewApplicationID generates a business identifier of the form
// ALM-YYYYMMDD-NNNNN, where the date is the creation day in UTC and the
// suffix is a uniformly random 5-digit number.  The generator makes no
// uniqueness promise; the applications table's primary key rejects the
// rare collision and the caller retries with a fresh id.
func NewApplicationID(now time.Time) string {
	return fmt.Sprintf("ALM-%s-%05d", now.UTC().Format("20060102"), 10000+rand.Intn(90000))
}
