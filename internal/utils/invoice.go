package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

// GenerateOrderNumber returns ORD{YY}{MM}{DD}{RRRR}. Collisions are possible
// and are surfaced by the unique index rather than retried.
func GenerateOrderNumber(now time.Time) string {
	return fmt.Sprintf("ORD%s%04d", now.Format("060102"), randomInt(10000, now))
}

// GenerateTrackingNumber returns TRK{YY}{MM}{DD}{NNNNNN}.
func GenerateTrackingNumber(now time.Time) string {
	return fmt.Sprintf("TRK%s%06d", now.Format("060102"), randomInt(1000000, now))
}

func randomInt(max int64, now time.Time) int64 {
	n, err := rand.Int(rand.Reader, big.NewInt(max))
	if err != nil {
		// fallback: time-based entropy
		return now.UnixNano() % max
	}
	return n.Int64()
}
