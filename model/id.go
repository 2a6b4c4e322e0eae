package model

import "github.com/gofrs/uuid"

// NewID returns a fresh random identifier.
func NewID() string {
	return uuid.Must(uuid.NewV4()).String()
}
