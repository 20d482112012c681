package core

import (
	"github.com/google/uuid"
)

// ID represents a domain identifier
type ID string

// NewID creates a new unique identifier using UUID v7 for time-ordered generation
func NewID() ID {
	// Use UUID v7 for time-ordered, sortable IDs
	// Falls back to v4 if v7 is not available (for compatibility)
	id, err := uuid.NewV7()
	if err != nil {
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

// Domain-specific ID types
type (
	// ResultID identifies a persisted comparison result.
	ResultID ID
	// SampleLabel names one of the two samples in a comparison ("x", "y",
	// or a caller-supplied label such as a locality or lab code).
	SampleLabel string
)

// NewResultID creates a new result identifier
func NewResultID() ResultID { return ResultID(NewID()) }

func (id ResultID) String() string   { return ID(id).String() }
func (id ResultID) IsEmpty() bool    { return ID(id).IsEmpty() }
func (l SampleLabel) String() string { return string(l) }
