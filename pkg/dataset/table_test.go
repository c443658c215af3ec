package dataset

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTable_SetCellAddsColumn(t *testing.T) {
	tbl := New("a")
	tbl.Append(Row{"a": NewValue("1")})
	tbl.SetCell(0, "b", NewValue("2"))

	require.Equal(t, []string{"a", "b"}, tbl.Columns())
	require.Equal(t, "2", tbl.Cell(0, "b").String())
}

func TestTable_AddColumnFillsAndOverwrites(t *testing.T) {
	tbl := New("a")
	tbl.Append(Row{"a": NewValue("1")})
	tbl.Append(Row{"a": NewValue("2")})

	tbl.AddColumn("b", NewValue("x"))
	require.Equal(t, "x", tbl.Cell(1, "b").String())

	tbl.AddColumn("b", Null())
	require.True(t, tbl.Cell(0, "b").IsNull())
	require.Equal(t, []string{"a", "b"}, tbl.Columns())
}

func TestTable_Select(t *testing.T) {
	tbl := New("a", "b", "c")
	tbl.Append(Row{"a": NewValue("1"), "b": NewValue("2"), "c": NewValue("3")})

	got, err := tbl.Select("c", "a")
	require.NoError(t, err)
	require.Equal(t, []string{"c", "a"}, got.Columns())
	require.Equal(t, "3", got.Cell(0, "c").String())

	_, err = tbl.Select("nope")
	require.Error(t, err)
}

func TestTable_Reorder(t *testing.T) {
	tbl := New("a", "b")
	require.Error(t, tbl.Reorder([]string{"a"}))
	require.Error(t, tbl.Reorder([]string{"a", "x"}))
	require.NoError(t, tbl.Reorder([]string{"b", "a"}))
	require.Equal(t, []string{"b", "a"}, tbl.Columns())
}

func TestTable_Rename(t *testing.T) {
	tbl := New("a", "b")
	tbl.Append(Row{"a": NewValue("1"), "b": NewValue("2")})
	tbl.Rename(map[string]string{"a": "x"})

	require.Equal(t, []string{"x", "b"}, tbl.Columns())
	require.Equal(t, "1", tbl.Cell(0, "x").String())
	require.True(t, tbl.Cell(0, "a").IsNull())
}

func TestTable_AppendTableExtendsColumns(t *testing.T) {
	left := New("a")
	left.Append(Row{"a": NewValue("1")})
	right := New("a", "b")
	right.Append(Row{"a": NewValue("2"), "b": NewValue("3")})

	left.AppendTable(right)
	require.Equal(t, []string{"a", "b"}, left.Columns())
	require.Equal(t, 2, left.Len())
	require.True(t, left.Cell(0, "b").IsNull())
	require.Equal(t, "3", left.Cell(1, "b").String())
}

func TestTable_Slice(t *testing.T) {
	tbl := New("a")
	for _, v := range []string{"1", "2", "3", "4"} {
		tbl.Append(Row{"a": NewValue(v)})
	}
	part := tbl.Slice(1, 3)
	require.Equal(t, 2, part.Len())
	require.Equal(t, "2", part.Cell(0, "a").String())
}
