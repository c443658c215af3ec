package dataset

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FindLatestFile expands a glob pattern and returns the most recently
// modified match. Input drops land in watched folders with timestamped names;
// a run always picks up the newest drop.
func FindLatestFile(pattern string) (string, error) {
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return "", err
	}
	if len(matches) == 0 {
		return "", fmt.Errorf("no files found for pattern: %s", pattern)
	}

	latest := ""
	var latestMod int64
	for _, m := range matches {
		info, err := os.Stat(m)
		if err != nil {
			return "", err
		}
		if latest == "" || info.ModTime().UnixNano() > latestMod {
			latest = m
			latestMod = info.ModTime().UnixNano()
		}
	}
	return latest, nil
}

// LoadTable resolves the pattern to the latest matching file and loads it
// based on its extension: .xlsx workbooks, .csv comma-separated UTF-8, and
// .txt/.tsv tab-separated cp932 (the legacy export format).
func LoadTable(pattern, sheet string) (*Table, error) {
	path, err := FindLatestFile(pattern)
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return ReadExcel(path, sheet)
	case ".csv":
		return ReadDelimited(path, ',', EncodingUTF8)
	case ".txt", ".tsv":
		return ReadDelimited(path, '\t', EncodingCP932)
	default:
		return nil, fmt.Errorf("unsupported file type: %s", path)
	}
}
