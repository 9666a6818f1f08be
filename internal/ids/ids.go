package ids

import (
	mathrand "math/rand"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
)

var (
	entropyMu sync.Mutex
	entropy   = ulid.Monotonic(mathrand.New(mathrand.NewSource(time.Now().UnixNano())), 0)
)

// NewRequestID returns a lexicographically sortable identifier used to
// correlate log and audit lines for one call.
func NewRequestID() string {
	entropyMu.Lock()
	defer entropyMu.Unlock()
	return ulid.MustNew(ulid.Timestamp(time.Now()), entropy).String()
}

// NewUUID returns a random entity identifier.
func NewUUID() string {
	return uuid.NewString()
}

// NewCompactUUID returns a random identifier without separators, suitable
// for keys embedded in file names and URLs.
func NewCompactUUID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
