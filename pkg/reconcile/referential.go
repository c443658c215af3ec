package reconcile

import (
	"fmt"
	"slices"

	"github.com/iota-uz/orgsync/pkg/dataset"
)

const LocationCodeColumn = "location_code"

// ValidateLocationCodes checks that every location code referenced by the
// table exists in the canonical location master.
func ValidateLocationCodes(t *dataset.Table, locations *dataset.Table) error {
	if !t.HasColumn(LocationCodeColumn) {
		return fmt.Errorf("table is missing the %s column", LocationCodeColumn)
	}
	if !locations.HasColumn(LocationCodeColumn) {
		return fmt.Errorf("location master is missing the %s column", LocationCodeColumn)
	}

	valid := make(map[string]bool, locations.Len())
	for i := 0; i < locations.Len(); i++ {
		valid[locations.Cell(i, LocationCodeColumn).String()] = true
	}

	var missing []string
	for i := 0; i < t.Len(); i++ {
		code := t.Cell(i, LocationCodeColumn).String()
		if !valid[code] && !slices.Contains(missing, code) {
			missing = append(missing, code)
		}
	}
	if len(missing) > 0 {
		return &ReferentialIntegrityError{MissingCodes: missing}
	}
	return nil
}

// MergeLocation validates the referential link and inner-joins the location
// master's attribute columns onto the table by location code.
func MergeLocation(t *dataset.Table, locations *dataset.Table) (*dataset.Table, error) {
	if err := ValidateLocationCodes(t, locations); err != nil {
		return nil, err
	}
	return dataset.InnerJoin(t, locations, LocationCodeColumn), nil
}
