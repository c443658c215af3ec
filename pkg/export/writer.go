package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/iota-uz/orgsync/pkg/dataset"
)

// SplitAndSave writes the change set. The full table always lands in
// "{base}_original.{ext}" as a workbook; when the row count exceeds
// chunkSize, the rows are additionally written as sequential two-digit
// numbered chunks "{base}_01.{ext}", "{base}_02.{ext}", ... in delimited
// form, preserving order, for upload-size-limited ingestion. Returns the
// paths written.
func SplitAndSave(t *dataset.Table, chunkSize int, path string, log logrus.FieldLogger) ([]string, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}
	if chunkSize <= 0 {
		return nil, fmt.Errorf("chunk size must be positive, got %d", chunkSize)
	}

	dir := filepath.Dir(path)
	ext := filepath.Ext(path)
	base := strings.TrimSuffix(filepath.Base(path), ext)
	ext = strings.TrimPrefix(ext, ".")

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	originalPath := filepath.Join(dir, fmt.Sprintf("%s_original.%s", base, ext))
	if err := dataset.WriteExcel(originalPath, t, ""); err != nil {
		return nil, err
	}
	log.Infof("wrote full change set to %s", originalPath)
	written := []string{originalPath}

	if t.Len() <= chunkSize {
		return written, nil
	}

	for i, lo := 1, 0; lo < t.Len(); i, lo = i+1, lo+chunkSize {
		hi := lo + chunkSize
		if hi > t.Len() {
			hi = t.Len()
		}
		chunkPath := filepath.Join(dir, fmt.Sprintf("%s_%02d.%s", base, i, ext))
		if err := dataset.WriteCSV(chunkPath, t.Slice(lo, hi)); err != nil {
			return nil, err
		}
		log.Infof("wrote chunk %s (%d rows)", chunkPath, hi-lo)
		written = append(written, chunkPath)
	}
	return written, nil
}
