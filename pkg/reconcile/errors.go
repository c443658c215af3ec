package reconcile

import (
	"fmt"
	"strings"
)

// SuffixValidationError reports joined columns that carry neither the _left
// nor the _right suffix. It means the two inputs did not share the same
// column set, so per-column comparison would silently skip data.
type SuffixValidationError struct {
	Columns []string
}

func (e *SuffixValidationError) Error() string {
	return fmt.Sprintf("joined columns without a _left/_right suffix: %s", strings.Join(e.Columns, ", "))
}

// ReferentialIntegrityError reports location codes referenced by the data but
// absent from the canonical location table.
type ReferentialIntegrityError struct {
	MissingCodes []string
}

func (e *ReferentialIntegrityError) Error() string {
	return fmt.Sprintf("location codes not present in the location master: %s", strings.Join(e.MissingCodes, ", "))
}

// InvalidFlagError reports change rows whose flag is neither ADD nor UPDATE.
type InvalidFlagError struct {
	Values []string
}

func (e *InvalidFlagError) Error() string {
	return fmt.Sprintf("change set contains invalid flag values: %s", strings.Join(e.Values, ", "))
}

// InvalidDisableFlagError reports disable_flag values that are neither null,
// blank, nor 1.
type InvalidDisableFlagError struct {
	Values []string
}

func (e *InvalidDisableFlagError) Error() string {
	return fmt.Sprintf("change set contains invalid disable_flag values: %s", strings.Join(e.Values, ", "))
}
