package dataset

// Value is a single cell. Master data travels as text; a cell is either a
// string or null (a missing value), never both. Two nulls compare equal,
// mirroring the NaN-aware equality the reconciliation relies on.
type Value struct {
	Str   string
	Valid bool
}

func NewValue(s string) Value {
	return Value{Str: s, Valid: true}
}

func Null() Value {
	return Value{}
}

func (v Value) IsNull() bool {
	return !v.Valid
}

// String returns the cell text, empty for null. Note that an empty string
// cell and a null cell are distinct values.
func (v Value) String() string {
	if !v.Valid {
		return ""
	}
	return v.Str
}

func (v Value) Equal(o Value) bool {
	if !v.Valid && !o.Valid {
		return true
	}
	return v.Valid == o.Valid && v.Str == o.Str
}
