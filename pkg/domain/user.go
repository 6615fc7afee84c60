package domain

import (
	"fmt"

	"github.com/google/uuid"
)

// UserID uniquely identifies a user within the system.
// It is a thin wrapper around uuid.UUID to provide type safety at the domain layer.
type UserID uuid.UUID

// ParseUserID parses a textual UUID (e.g. a JWT subject) into a UserID.
func ParseUserID(s string) (UserID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return UserID{}, fmt.Errorf("could not parse user ID: %w", err)
	}

	return UserID(id), nil
}
