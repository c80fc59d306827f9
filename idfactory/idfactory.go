// Package idfactory generates the two kinds of identifier an Order needs:
// a per-replica ID, and per-bunch IDs derived from it. Both are modeled
// as a small, closure-based factory rather than a process-wide counter, so
// the counter state lives per-Order instead of leaking across every Order
// in a process. Replica-ID randomness is delegated to
// github.com/google/uuid.
package idfactory

import (
	"strconv"

	"github.com/google/uuid"
)

// Factory mints a new, globally-unique bunch ID each time it is called.
type Factory func() string

// NewReplicaID returns a cryptographically-random alphanumeric replica
// identifier suitable for seeding a Default factory.
func NewReplicaID() string {
	// uuid.New uses crypto/rand under the hood; hex-encode it ourselves
	// rather than using its canonical hyphenated string form, since a
	// bunch ID may not contain ',' or '.' and must sort lexicographically
	// less than "~".
	id := uuid.New()
	buf := make([]byte, 0, 32)
	for _, b := range id[:] {
		buf = strconv.AppendUint(buf, uint64(b>>4), 16)
		buf = strconv.AppendUint(buf, uint64(b&0xf), 16)
	}
	return string(buf)
}

// Default returns the default factory: "{replicaID}_{counter}" with the
// counter rendered in base36.
func Default(replicaID string) Factory {
	var counter uint64
	return func() string {
		id := replicaID + "_" + strconv.FormatUint(counter, 36)
		counter++
		return id
	}
}
