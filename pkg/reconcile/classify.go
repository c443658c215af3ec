package reconcile

import (
	"fmt"

	"github.com/iota-uz/orgsync/pkg/dataset"
)

const (
	FlagColumn = "flag"
	FlagAdd    = "ADD"
	FlagUpdate = "UPDATE"

	DisableFlagColumn = "disable_flag"
	DepartmentColumn  = "department_code"

	// DisabledValue marks a soft-disabled row. Removal is never emitted as a
	// delete; the downstream system only understands updates flipping this
	// indicator.
	DisabledValue = "1"
)

// ClassifyOptions tunes entity-specific behavior of the classifier.
type ClassifyOptions struct {
	// UserLike selects the user-style disable semantics: retirement is
	// expressed by forcing the department to the sentinel, not by the
	// disable flag.
	UserLike bool

	// RetirementSentinel is the department code meaning "retired".
	RetirementSentinel string
}

func userGroupColumns() []string {
	cols := make([]string, 0, 10)
	for i := 1; i <= 10; i++ {
		cols = append(cols, fmt.Sprintf("user_group%d", i))
	}
	return cols
}

// identifyDifferences compares the _left/_right variants of the compare
// columns row by row. Two nulls are equal; any other mismatch is a
// difference.
func identifyDifferences(joined *dataset.Table, compareColumns []string) []bool {
	diff := make([]bool, joined.Len())
	for i := 0; i < joined.Len(); i++ {
		row := joined.Row(i)
		for _, col := range compareColumns {
			l := row.Get(col + suffixLeft)
			r := row.Get(col + suffixRight)
			if !l.Equal(r) {
				diff[i] = true
				break
			}
		}
	}
	return diff
}

// extractSide pulls key columns, the flag, and one side's compare columns out
// of the joined table for the selected rows, stripping the side suffix.
func extractSide(joined *dataset.Table, selected []int, compareColumns, keyColumns []string, suffix, flag string) *dataset.Table {
	var present []string
	for _, col := range compareColumns {
		if joined.HasColumn(col + suffix) {
			present = append(present, col)
		}
	}

	cols := append([]string{}, keyColumns...)
	cols = append(cols, FlagColumn)
	cols = append(cols, present...)

	out := dataset.New(cols...)
	for _, i := range selected {
		src := joined.Row(i)
		row := make(dataset.Row, len(cols))
		for _, k := range keyColumns {
			row[k] = src.Get(k)
		}
		row[FlagColumn] = dataset.NewValue(flag)
		for _, col := range present {
			row[col] = src.Get(col + suffix)
		}
		out.Append(row)
	}
	return out
}

// IdentifyChanges converts the joined table into the change set:
//
//   - ADD for rows only the local side has,
//   - UPDATE for rows on both sides with at least one differing compare
//     column (local values win),
//   - UPDATE for rows only the downstream side has, rewritten into a
//     soft-disable — unless the row is already disabled downstream.
//
// Output preserves ADD, UPDATE, disable order with a fresh index.
func IdentifyChanges(joined *dataset.Table, compareColumns, keyColumns []string, opts ClassifyOptions) (*dataset.Table, error) {
	var addRows, updateRows, disableRows []int

	diff := identifyDifferences(joined, compareColumns)
	for i := 0; i < joined.Len(); i++ {
		provenance := joined.Cell(i, ProvenanceColumn).String()
		switch provenance {
		case ProvenanceLeft:
			addRows = append(addRows, i)
		case ProvenanceBoth:
			if diff[i] {
				updateRows = append(updateRows, i)
			}
		case ProvenanceRight:
			if opts.UserLike {
				if joined.Cell(i, DepartmentColumn+suffixRight).String() == opts.RetirementSentinel {
					continue
				}
			} else {
				if joined.Cell(i, DisableFlagColumn+suffixRight).String() == DisabledValue {
					continue
				}
			}
			disableRows = append(disableRows, i)
		default:
			return nil, fmt.Errorf("unexpected provenance value %q", provenance)
		}
	}

	addDF := extractSide(joined, addRows, compareColumns, keyColumns, suffixLeft, FlagAdd)
	updateDF := extractSide(joined, updateRows, compareColumns, keyColumns, suffixLeft, FlagUpdate)
	disableDF := extractSide(joined, disableRows, compareColumns, keyColumns, suffixRight, FlagUpdate)

	if opts.UserLike {
		// Retirement travels through the department sentinel. The disable
		// flag and group memberships are blanked: setting both the sentinel
		// and the flag would double-disable the row downstream.
		disableDF.AddColumn(DisableFlagColumn, dataset.NewValue(""))
		for _, col := range userGroupColumns() {
			if disableDF.HasColumn(col) {
				disableDF.AddColumn(col, dataset.NewValue(""))
			}
		}
		for i := 0; i < disableDF.Len(); i++ {
			if disableDF.Cell(i, DepartmentColumn).String() != opts.RetirementSentinel {
				disableDF.SetCell(i, DisableFlagColumn, dataset.NewValue(""))
				disableDF.SetCell(i, DepartmentColumn, dataset.NewValue(opts.RetirementSentinel))
			}
		}
	} else {
		disableDF.AddColumn(DisableFlagColumn, dataset.NewValue(DisabledValue))
	}

	changes := dataset.New()
	changes.AppendTable(addDF)
	changes.AppendTable(updateDF)
	changes.AppendTable(disableDF)
	return changes, nil
}
