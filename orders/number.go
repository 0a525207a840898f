package orders

import (
	"fmt"
	rndm "math/rand"
	"time"
)

// NewOrderNumber builds a human-readable identifier from the creation
// timestamp plus a small random suffix. Uniqueness is probabilistic; the
// unique index on orderNumber is the hard backstop and a collision surfaces
// as a write error.
func NewOrderNumber(now time.Time) string {
	return fmt.Sprintf("ORD-%d-%d", now.UnixMilli(), rndm.Intn(1000))
}
