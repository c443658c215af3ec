package reconcile

import (
	"github.com/iota-uz/orgsync/pkg/dataset"
)

// ValidateChanges enforces the change-set post-conditions: the disable flag
// is null, blank, or 1 (blank occurs on user-like retirements, where the
// department sentinel carries the disable semantics), and every flag is ADD
// or UPDATE.
func ValidateChanges(changes *dataset.Table) error {
	if changes.HasColumn(DisableFlagColumn) {
		var invalid []string
		for i := 0; i < changes.Len(); i++ {
			v := changes.Cell(i, DisableFlagColumn)
			if v.IsNull() || v.Str == "" || v.Str == DisabledValue {
				continue
			}
			invalid = append(invalid, v.Str)
		}
		if len(invalid) > 0 {
			return &InvalidDisableFlagError{Values: invalid}
		}
	}

	if changes.HasColumn(FlagColumn) {
		var invalid []string
		for i := 0; i < changes.Len(); i++ {
			v := changes.Cell(i, FlagColumn)
			if v.String() == FlagAdd || v.String() == FlagUpdate {
				continue
			}
			invalid = append(invalid, v.String())
		}
		if len(invalid) > 0 {
			return &InvalidFlagError{Values: invalid}
		}
	}

	return nil
}
