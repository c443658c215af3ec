package dataset

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/pkg/errors"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"
)

// Encoding names accepted by the delimited-text readers. Master data exported
// from legacy systems arrives as cp932; everything else is UTF-8.
const (
	EncodingUTF8  = "utf-8"
	EncodingCP932 = "cp932"
)

// ReadDelimited reads a delimited text file into a table. Empty cells load as
// null, matching how the rest of the pipeline treats missing values. A UTF-8
// BOM is stripped when present.
func ReadDelimited(path string, comma rune, encoding string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", path)
	}
	defer func() { _ = f.Close() }()

	var reader io.Reader = f
	switch encoding {
	case "", EncodingUTF8:
	case EncodingCP932:
		reader = transform.NewReader(f, japanese.ShiftJIS.NewDecoder())
	default:
		return nil, fmt.Errorf("unsupported encoding: %s", encoding)
	}

	br := stripUTF8BOM(bufio.NewReader(reader))

	r := csv.NewReader(br)
	r.Comma = comma
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = false

	header, err := readHeader(r)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", path)
	}

	t := New(header...)
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(err, "read %s", path)
		}
		row := make(Row, len(header))
		for i, col := range header {
			if i < len(record) && record[i] != "" {
				row[col] = NewValue(record[i])
			} else {
				row[col] = Null()
			}
		}
		t.Append(row)
	}
	return t, nil
}

// WriteCSV writes the table as UTF-8 comma-separated text. Null cells are
// written as empty fields.
func WriteCSV(path string, t *Table) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "create %s", path)
	}
	defer func() { _ = f.Close() }()

	w := csv.NewWriter(f)
	cols := t.Columns()
	if err := w.Write(cols); err != nil {
		return errors.Wrapf(err, "write %s", path)
	}
	record := make([]string, len(cols))
	for i := 0; i < t.Len(); i++ {
		row := t.Row(i)
		for j, col := range cols {
			record[j] = row.Get(col).String()
		}
		if err := w.Write(record); err != nil {
			return errors.Wrapf(err, "write %s", path)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return errors.Wrapf(err, "flush %s", path)
	}
	return f.Close()
}

func stripUTF8BOM(r *bufio.Reader) *bufio.Reader {
	b, err := r.Peek(3)
	if err == nil && len(b) == 3 && b[0] == 0xEF && b[1] == 0xBB && b[2] == 0xBF {
		_, _ = r.Discard(3)
	}
	return r
}

func readHeader(r *csv.Reader) ([]string, error) {
	h, err := r.Read()
	if err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("missing header")
		}
		return nil, err
	}
	for i := range h {
		h[i] = strings.TrimSpace(h[i])
		if !utf8.ValidString(h[i]) {
			return nil, fmt.Errorf("invalid header encoding")
		}
	}
	return h, nil
}
