package dataset

import (
	"fmt"
	"slices"
)

// Row maps column names to cells. Columns absent from the map read as null.
type Row map[string]Value

func (r Row) Get(col string) Value {
	if v, ok := r[col]; ok {
		return v
	}
	return Null()
}

func (r Row) Clone() Row {
	out := make(Row, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Table is an ordered-column, row-oriented dataset. All transformation stages
// of a reconciliation run treat their input tables as immutable snapshots and
// produce new tables; mutating methods exist for the stage that owns a table.
type Table struct {
	columns []string
	rows    []Row
}

func New(columns ...string) *Table {
	return &Table{columns: slices.Clone(columns)}
}

func (t *Table) Columns() []string {
	return slices.Clone(t.columns)
}

func (t *Table) HasColumn(name string) bool {
	return slices.Contains(t.columns, name)
}

func (t *Table) Len() int {
	return len(t.rows)
}

func (t *Table) Row(i int) Row {
	return t.rows[i]
}

func (t *Table) Append(r Row) {
	t.rows = append(t.rows, r)
}

func (t *Table) Cell(i int, col string) Value {
	return t.rows[i].Get(col)
}

func (t *Table) SetCell(i int, col string, v Value) {
	if !t.HasColumn(col) {
		t.columns = append(t.columns, col)
	}
	t.rows[i][col] = v
}

// AddColumn appends a column filled with the given value. Adding an existing
// column overwrites its cells.
func (t *Table) AddColumn(name string, fill Value) {
	if !t.HasColumn(name) {
		t.columns = append(t.columns, name)
	}
	for _, r := range t.rows {
		r[name] = fill
	}
}

func (t *Table) DropColumns(names ...string) {
	for _, name := range names {
		if i := slices.Index(t.columns, name); i >= 0 {
			t.columns = slices.Delete(t.columns, i, i+1)
		}
		for _, r := range t.rows {
			delete(r, name)
		}
	}
}

// Select returns a new table with only the given columns, in the given order.
func (t *Table) Select(columns ...string) (*Table, error) {
	for _, col := range columns {
		if !t.HasColumn(col) {
			return nil, fmt.Errorf("select: unknown column %q", col)
		}
	}
	out := New(columns...)
	for _, r := range t.rows {
		row := make(Row, len(columns))
		for _, col := range columns {
			row[col] = r.Get(col)
		}
		out.Append(row)
	}
	return out, nil
}

// Reorder rearranges the column order to match the given list, which must
// cover exactly the table's columns.
func (t *Table) Reorder(columns []string) error {
	if len(columns) != len(t.columns) {
		return fmt.Errorf("reorder: got %d columns, table has %d", len(columns), len(t.columns))
	}
	for _, col := range columns {
		if !t.HasColumn(col) {
			return fmt.Errorf("reorder: unknown column %q", col)
		}
	}
	t.columns = slices.Clone(columns)
	return nil
}

func (t *Table) Rename(mapping map[string]string) {
	for i, col := range t.columns {
		if to, ok := mapping[col]; ok {
			t.columns[i] = to
		}
	}
	for _, r := range t.rows {
		for from, to := range mapping {
			if v, ok := r[from]; ok {
				delete(r, from)
				r[to] = v
			}
		}
	}
}

// Slice returns a new table holding rows [lo, hi). Rows are shared, not
// copied.
func (t *Table) Slice(lo, hi int) *Table {
	out := New(t.columns...)
	out.rows = t.rows[lo:hi]
	return out
}

func (t *Table) Clone() *Table {
	out := New(t.columns...)
	for _, r := range t.rows {
		out.Append(r.Clone())
	}
	return out
}

// AppendTable appends all rows of other, extending the column set with any
// columns this table does not yet have.
func (t *Table) AppendTable(other *Table) {
	for _, col := range other.columns {
		if !t.HasColumn(col) {
			t.columns = append(t.columns, col)
		}
	}
	for _, r := range other.rows {
		t.Append(r.Clone())
	}
}
