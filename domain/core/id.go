package core

import (
	"time"

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

// RunID identifies one analysis run
type RunID = ID

// Timestamp is the canonical UTC timestamp for artifacts
type Timestamp time.Time

// Now returns the current UTC timestamp
func Now() Timestamp {
	return Timestamp(time.Now().UTC())
}

// Time converts back to time.Time
func (t Timestamp) Time() time.Time {
	return time.Time(t)
}
