package dataset

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"
)

// ReadExcel loads one sheet of a workbook into a table. An empty sheet name
// selects the workbook's first sheet. The first row is the header; ragged
// rows are padded with nulls, empty cells load as null.
func ReadExcel(path, sheet string) (*Table, error) {
	wb, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", path)
	}
	defer func() { _ = wb.Close() }()

	if sheet == "" {
		sheet = wb.GetSheetName(0)
	}
	rows, err := wb.GetRows(sheet)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s sheet %s", path, sheet)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("read %s sheet %s: missing header", path, sheet)
	}

	header := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		header[i] = strings.TrimSpace(h)
	}

	t := New(header...)
	for _, raw := range rows[1:] {
		row := make(Row, len(header))
		for i, col := range header {
			if i < len(raw) && raw[i] != "" {
				row[col] = NewValue(raw[i])
			} else {
				row[col] = Null()
			}
		}
		t.Append(row)
	}
	return t, nil
}

// WriteExcel writes the table as a single-sheet workbook. Null cells stay
// blank.
func WriteExcel(path string, t *Table, sheet string) error {
	if sheet == "" {
		sheet = "Sheet1"
	}
	wb := excelize.NewFile()
	defer func() { _ = wb.Close() }()

	if sheet != "Sheet1" {
		if err := wb.SetSheetName("Sheet1", sheet); err != nil {
			return errors.Wrapf(err, "write %s", path)
		}
	}

	cols := t.Columns()
	headerRow := make([]interface{}, len(cols))
	for i, col := range cols {
		headerRow[i] = col
	}
	if err := setRow(wb, sheet, 1, headerRow); err != nil {
		return errors.Wrapf(err, "write %s", path)
	}

	for i := 0; i < t.Len(); i++ {
		row := t.Row(i)
		cells := make([]interface{}, len(cols))
		for j, col := range cols {
			v := row.Get(col)
			if v.IsNull() {
				cells[j] = nil
			} else {
				cells[j] = v.Str
			}
		}
		if err := setRow(wb, sheet, i+2, cells); err != nil {
			return errors.Wrapf(err, "write %s", path)
		}
	}

	if err := wb.SaveAs(path); err != nil {
		return errors.Wrapf(err, "save %s", path)
	}
	return nil
}

func setRow(wb *excelize.File, sheet string, rowNum int, cells []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return err
	}
	return wb.SetSheetRow(sheet, cell, &cells)
}
