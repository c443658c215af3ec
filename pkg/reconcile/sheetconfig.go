package reconcile

import (
	"fmt"
	"slices"
	"strings"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"
)

// SheetConfig describes one entity sheet of the downstream system: the full
// column layout, the key columns rows are matched on, columns dropped before
// comparison, and the derived set of columns compared for differences.
type SheetConfig struct {
	ColumnNames    []string
	KeyColumns     []string
	DropColumns    []string
	CompareColumns []string
}

// NewSheetConfig validates the column sets and derives the compare columns
// (all columns minus keys and drops).
func NewSheetConfig(columnNames, keyColumns, dropColumns []string) (SheetConfig, error) {
	if len(columnNames) == 0 {
		return SheetConfig{}, fmt.Errorf("sheet config has no columns")
	}
	if len(keyColumns) == 0 {
		return SheetConfig{}, fmt.Errorf("sheet config has no key columns")
	}
	for _, k := range keyColumns {
		if !slices.Contains(columnNames, k) {
			return SheetConfig{}, fmt.Errorf("key column %q is not among the sheet columns", k)
		}
	}
	for _, d := range dropColumns {
		if !slices.Contains(columnNames, d) {
			return SheetConfig{}, fmt.Errorf("drop column %q is not among the sheet columns", d)
		}
	}

	var compare []string
	for _, col := range columnNames {
		if slices.Contains(keyColumns, col) || slices.Contains(dropColumns, col) {
			continue
		}
		compare = append(compare, col)
	}

	return SheetConfig{
		ColumnNames:    slices.Clone(columnNames),
		KeyColumns:     slices.Clone(keyColumns),
		DropColumns:    slices.Clone(dropColumns),
		CompareColumns: compare,
	}, nil
}

// LoadSheetConfig reads one sheet of the configuration workbook. The sheet
// lists one row per column with headers "column", "key", "drop"; any
// non-blank marker in the key/drop cells selects the column.
func LoadSheetConfig(path, sheet string) (SheetConfig, error) {
	wb, err := excelize.OpenFile(path)
	if err != nil {
		return SheetConfig{}, errors.Wrapf(err, "open %s", path)
	}
	defer func() { _ = wb.Close() }()

	rows, err := wb.GetRows(sheet)
	if err != nil {
		return SheetConfig{}, errors.Wrapf(err, "read %s sheet %s", path, sheet)
	}
	if len(rows) == 0 {
		return SheetConfig{}, fmt.Errorf("sheet %s of %s is empty", sheet, path)
	}

	colIdx, keyIdx, dropIdx := -1, -1, -1
	for i, h := range rows[0] {
		switch strings.TrimSpace(strings.ToLower(h)) {
		case "column":
			colIdx = i
		case "key":
			keyIdx = i
		case "drop":
			dropIdx = i
		}
	}
	if colIdx < 0 {
		return SheetConfig{}, fmt.Errorf("sheet %s of %s is missing the column header", sheet, path)
	}

	cell := func(row []string, idx int) string {
		if idx < 0 || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	var columnNames, keyColumns, dropColumns []string
	for _, row := range rows[1:] {
		name := cell(row, colIdx)
		if name == "" {
			continue
		}
		columnNames = append(columnNames, name)
		if cell(row, keyIdx) != "" {
			keyColumns = append(keyColumns, name)
		}
		if cell(row, dropIdx) != "" {
			dropColumns = append(dropColumns, name)
		}
	}

	return NewSheetConfig(columnNames, keyColumns, dropColumns)
}
