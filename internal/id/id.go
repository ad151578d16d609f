// Package id generates the identifiers used for mocks and recorders.
package id

import (
	"crypto/rand"
	"encoding/hex"

	"github.com/google/uuid"
)

// UUID returns a random UUID string, used where an identifier may leave the
// process (failure messages, logs shared between runs).
func UUID() string {
	return uuid.NewString()
}

// Short returns a 16-character hex id, used for in-process identities where
// brevity matters more than global uniqueness.
func Short() string {
	b := make([]byte, 8)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
