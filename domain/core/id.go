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

// Domain-specific ID types
type (
	// JointID identifies a joint distribution; marginals keep it as their
	// back-reference key and external collaborators use it for addressing.
	JointID ID

	// DistributionID identifies a registered distribution snapshot.
	DistributionID ID
)

func (id JointID) String() string        { return ID(id).String() }
func (id DistributionID) String() string { return ID(id).String() }

// ParseDistributionID parses a string into DistributionID
func ParseDistributionID(s string) (DistributionID, error) {
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("distribution ID cannot be empty")
	}
	return DistributionID(s), nil
}
