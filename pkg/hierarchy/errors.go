package hierarchy

import (
	"fmt"
	"strings"
)

// CyclicHierarchyError reports that the parent relation contains a cycle.
// Codes holds the nodes left unordered by the topological pass, all of which
// sit on or behind a cycle.
type CyclicHierarchyError struct {
	Codes []string
}

func (e *CyclicHierarchyError) Error() string {
	return fmt.Sprintf("hierarchy contains a cycle involving: %s", strings.Join(e.Codes, ", "))
}

// MissingOrCorruptRankError reports a node whose rank is absent or outside
// the valid range [1, Max].
type MissingOrCorruptRankError struct {
	Code string
	Rank int
	Max  int
}

func (e *MissingOrCorruptRankError) Error() string {
	return fmt.Sprintf("org %q has invalid rank %d (expected 1..%d)", e.Code, e.Rank, e.Max)
}

// MappingOrgNotFoundError reports an abbreviation override that references an
// org code absent from the hierarchy.
type MappingOrgNotFoundError struct {
	Code string
}

func (e *MappingOrgNotFoundError) Error() string {
	return fmt.Sprintf("abbreviation org code %q does not exist in the hierarchy", e.Code)
}
