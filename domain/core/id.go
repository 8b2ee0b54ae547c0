package core

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ID represents a domain identifier
type ID string

// NewID creates a new unique identifier using UUID v7 for time-ordered generation
func NewID() ID {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to v4 if v7 fails
		id = uuid.New()
	}
	return ID(id.String())
}

// String returns the string representation
func (id ID) String() string {
	return string(id)
}

// IsEmpty checks if the ID is empty
func (id ID) IsEmpty() bool {
	return id == ""
}

// QueryID identifies a single validation query end to end, from the
// incoming request through history persistence.
type QueryID ID

func NewQueryID() QueryID { return QueryID(NewID()) }

func (id QueryID) String() string { return ID(id).String() }

// ParseQueryID parses a string into QueryID
func ParseQueryID(s string) (QueryID, error) {
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("%w: empty string", ErrInvalidQueryID)
	}
	if _, err := uuid.Parse(s); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidQueryID, err)
	}
	return QueryID(s), nil
}
