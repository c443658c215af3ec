package dataset

import "slices"

// InnerJoin matches rows of left and right on one column and merges right's
// remaining columns onto left's rows. Rows without a match are dropped; a
// right column that already exists on the left overwrites it.
func InnerJoin(left, right *Table, on string) *Table {
	rightByKey := make(map[string][]Row, right.Len())
	for i := 0; i < right.Len(); i++ {
		row := right.Row(i)
		key := row.Get(on).String()
		rightByKey[key] = append(rightByKey[key], row)
	}

	cols := left.Columns()
	for _, col := range right.Columns() {
		if col != on && !slices.Contains(cols, col) {
			cols = append(cols, col)
		}
	}

	out := New(cols...)
	for i := 0; i < left.Len(); i++ {
		base := left.Row(i)
		for _, match := range rightByKey[base.Get(on).String()] {
			row := base.Clone()
			for _, col := range right.Columns() {
				if col == on {
					continue
				}
				row[col] = match.Get(col)
			}
			out.Append(row)
		}
	}
	return out
}
