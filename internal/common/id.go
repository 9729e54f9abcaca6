package common

import (
	"crypto/rand"
	"encoding/hex"
)

// NewID returns a short random hex identifier for repositories and log entries.
func NewID() string {
	b := make([]byte, 6)
	if _, err := rand.Read(b); err != nil {
		// crypto/rand failing means the platform is broken; an empty id
		// would collide, so panic loudly instead.
		panic("common: unable to read random bytes: " + err.Error())
	}
	return hex.EncodeToString(b)
}
