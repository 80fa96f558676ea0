package id

import (
	"crypto/rand"
	"strings"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
)

// New generates a new ULID string. ULIDs are lexicographically sortable
// by creation time, which keeps flash keys and import ids ordered in logs.
func New() string {
	return ulid.MustNew(ulid.Now(), rand.Reader).String()
}

// Ref generates a 32-character project reference (a v4 UUID without dashes).
func Ref() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
