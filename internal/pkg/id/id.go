package id

import (
	"crypto/rand"

	"github.com/oklog/ulid/v2"
)

// New generates a ULID string, used for identity, session, listing,
// exchange, and photo ids. ULIDs sort lexicographically by creation time,
// which keeps newest-first listing scans cheap.
func New() string {
	return ulid.MustNew(ulid.Now(), rand.Reader).String()
}
