package ledger

import "github.com/google/uuid"

// IDGenerator produces a fresh, globally unique friend id on every call.
type IDGenerator func() string

// UUIDGenerator returns random (version 4) UUID strings.
func UUIDGenerator() string {
	return uuid.New().String()
}
