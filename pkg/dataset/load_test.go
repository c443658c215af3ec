package dataset

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFindLatestFile(t *testing.T) {
	dir := t.TempDir()
	older := filepath.Join(dir, "drop_01.csv")
	newer := filepath.Join(dir, "drop_02.csv")
	require.NoError(t, os.WriteFile(older, []byte("a\n"), 0o644))
	require.NoError(t, os.WriteFile(newer, []byte("a\n"), 0o644))
	require.NoError(t, os.Chtimes(older, time.Now().Add(-time.Hour), time.Now().Add(-time.Hour)))

	got, err := FindLatestFile(filepath.Join(dir, "drop_*.csv"))
	require.NoError(t, err)
	require.Equal(t, newer, got)
}

func TestFindLatestFile_NoMatch(t *testing.T) {
	_, err := FindLatestFile(filepath.Join(t.TempDir(), "none_*.csv"))
	require.Error(t, err)
}

func TestLoadTable_Dispatch(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.csv")
	require.NoError(t, os.WriteFile(path, []byte("code,name\nA,Alpha\n"), 0o644))

	got, err := LoadTable(filepath.Join(dir, "*.csv"), "")
	require.NoError(t, err)
	require.Equal(t, "Alpha", got.Cell(0, "name").String())

	bad := filepath.Join(dir, "data.bin")
	require.NoError(t, os.WriteFile(bad, []byte("x"), 0o644))
	_, err = LoadTable(bad, "")
	require.Error(t, err)
}
