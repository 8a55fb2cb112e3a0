package dataset

import (
	"crypto/rand"
	"encoding/hex"
)

// NewDatasetID generates a random dataset identifier. Identifiers are
// never reused; 128 random bits make collisions negligible even under
// concurrent creation.
func NewDatasetID() string {
	var buf [16]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return hex.EncodeToString(buf[:])
	}
	// UUIDv4 formatting (without external dependency).
	buf[6] = (buf[6] & 0x0f) | 0x40
	buf[8] = (buf[8] & 0x3f) | 0x80
	return hex.EncodeToString(buf[:])
}
