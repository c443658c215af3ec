package reconcile

import (
	"slices"
	"strings"

	"github.com/iota-uz/orgsync/pkg/dataset"
)

// Join provenance markers. Every joined row records which side(s) it came
// from in the ProvenanceColumn.
const (
	ProvenanceColumn = "_merge"
	ProvenanceLeft   = "left_only"
	ProvenanceRight  = "right_only"
	ProvenanceBoth   = "both"

	suffixLeft  = "_left"
	suffixRight = "_right"
)

const keySeparator = "\x1f"

func keyOf(row dataset.Row, keyColumns []string) string {
	parts := make([]string, len(keyColumns))
	for i, k := range keyColumns {
		v := row.Get(k)
		if v.IsNull() {
			// distinguish null keys from empty-string keys
			parts[i] = "\x00"
		} else {
			parts[i] = v.Str
		}
	}
	return strings.Join(parts, keySeparator)
}

// OuterJoin performs a full outer join of the local (left) and downloaded
// (right) tables on the key columns. Non-key columns present on both sides
// are suffixed _left/_right; the provenance column tags each row. After the
// join, every non-key column must carry one of the two suffixes — a bare
// column means the inputs disagreed on their layout, which is fatal.
//
// Output order follows the left table, then unmatched right rows in right
// order, the way the source system's merge behaved.
func OuterJoin(left, right *dataset.Table, keyColumns []string) (*dataset.Table, error) {
	leftCols := left.Columns()
	rightCols := right.Columns()

	overlap := make(map[string]bool)
	for _, col := range rightCols {
		if !slices.Contains(keyColumns, col) && slices.Contains(leftCols, col) {
			overlap[col] = true
		}
	}

	rename := func(col, suffix string) string {
		if overlap[col] {
			return col + suffix
		}
		return col
	}

	var outCols []string
	outCols = append(outCols, keyColumns...)
	for _, col := range leftCols {
		if slices.Contains(keyColumns, col) {
			continue
		}
		outCols = append(outCols, rename(col, suffixLeft))
	}
	for _, col := range rightCols {
		if slices.Contains(keyColumns, col) {
			continue
		}
		outCols = append(outCols, rename(col, suffixRight))
	}
	outCols = append(outCols, ProvenanceColumn)

	out := dataset.New(outCols...)

	rightIndex := make(map[string][]int)
	for i := 0; i < right.Len(); i++ {
		k := keyOf(right.Row(i), keyColumns)
		rightIndex[k] = append(rightIndex[k], i)
	}

	emit := func(leftRow, rightRow dataset.Row, provenance string) {
		row := make(dataset.Row, len(outCols))
		for _, k := range keyColumns {
			if leftRow != nil {
				row[k] = leftRow.Get(k)
			} else {
				row[k] = rightRow.Get(k)
			}
		}
		for _, col := range leftCols {
			if slices.Contains(keyColumns, col) {
				continue
			}
			if leftRow != nil {
				row[rename(col, suffixLeft)] = leftRow.Get(col)
			} else {
				row[rename(col, suffixLeft)] = dataset.Null()
			}
		}
		for _, col := range rightCols {
			if slices.Contains(keyColumns, col) {
				continue
			}
			if rightRow != nil {
				row[rename(col, suffixRight)] = rightRow.Get(col)
			} else {
				row[rename(col, suffixRight)] = dataset.Null()
			}
		}
		row[ProvenanceColumn] = dataset.NewValue(provenance)
		out.Append(row)
	}

	matchedRight := make(map[int]bool)
	for i := 0; i < left.Len(); i++ {
		leftRow := left.Row(i)
		matches := rightIndex[keyOf(leftRow, keyColumns)]
		if len(matches) == 0 {
			emit(leftRow, nil, ProvenanceLeft)
			continue
		}
		for _, j := range matches {
			matchedRight[j] = true
			emit(leftRow, right.Row(j), ProvenanceBoth)
		}
	}
	for j := 0; j < right.Len(); j++ {
		if !matchedRight[j] {
			emit(nil, right.Row(j), ProvenanceRight)
		}
	}

	var invalid []string
	for _, col := range outCols {
		if slices.Contains(keyColumns, col) || col == ProvenanceColumn {
			continue
		}
		if !strings.HasSuffix(col, suffixLeft) && !strings.HasSuffix(col, suffixRight) {
			invalid = append(invalid, col)
		}
	}
	if len(invalid) > 0 {
		return nil, &SuffixValidationError{Columns: invalid}
	}

	return out, nil
}
