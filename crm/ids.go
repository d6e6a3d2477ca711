// ABOUTME: Record id generation
// ABOUTME: UUIDs for contacts, time-ordered ULIDs for interactions
package crm

import (
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
)

func newContactID() string {
	return uuid.New().String()
}

func newInteractionID() string {
	entropy := ulid.Monotonic(rand.New(rand.NewSource(time.Now().UnixNano())), 0) //nolint:gosec // IDs, not secrets
	return ulid.MustNew(ulid.Timestamp(time.Now()), entropy).String()
}

func today() string {
	return time.Now().Format("2006-01-02")
}
