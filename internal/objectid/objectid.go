// Package objectid assigns stable identifiers to indexed objects and IP
// blocks, grounded on the teacher's use of github.com/google/uuid for
// ArxObject identity (services/arxobject).
package objectid

import "github.com/google/uuid"

// ID is a stable, globally unique identifier.
type ID string

// New generates a fresh random identifier.
func New() ID {
	return ID(uuid.New().String())
}

// IsValid reports whether s parses as a UUID, the shape every ID produced
// by New satisfies.
func IsValid(s ID) bool {
	_, err := uuid.Parse(string(s))
	return err == nil
}
