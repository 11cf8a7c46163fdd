package order

import (
	"fmt"
	"math/rand"
	"time"
)

// NewTrackingNumber produces a reference of the form ORD-YYMMDD-RRRR,
// where RRRR is a random four-digit suffix. Uniqueness is not guaranteed;
// the value is a human-facing reference, not a key.
func NewTrackingNumber(now time.Time) string {
	return fmt.Sprintf("ORD-%s-%04d", now.Format("060102"), rand.Intn(10000))
}
