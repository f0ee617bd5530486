package domain

import "github.com/google/uuid"

// NewID returns a new opaque entity identifier.
func NewID() string {
	return uuid.NewString()
}
