package reconcile

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/iota-uz/orgsync/pkg/dataset"
)

func TestNewSheetConfig(t *testing.T) {
	cfg, err := NewSheetConfig(
		[]string{"id", "name", "updated_at"},
		[]string{"id"},
		[]string{"updated_at"},
	)
	require.NoError(t, err)
	require.Equal(t, []string{"name"}, cfg.CompareColumns)
}

func TestNewSheetConfig_Invalid(t *testing.T) {
	_, err := NewSheetConfig(nil, []string{"id"}, nil)
	require.Error(t, err)

	_, err = NewSheetConfig([]string{"id"}, nil, nil)
	require.Error(t, err)

	_, err = NewSheetConfig([]string{"id"}, []string{"nope"}, nil)
	require.Error(t, err)

	_, err = NewSheetConfig([]string{"id"}, []string{"id"}, []string{"nope"})
	require.Error(t, err)
}

func TestLoadSheetConfig(t *testing.T) {
	sheet := dataset.New("column", "key", "drop")
	sheet.Append(row(map[string]string{"column": "id", "key": "x", "drop": "\x00"}))
	sheet.Append(row(map[string]string{"column": "name", "key": "\x00", "drop": "\x00"}))
	sheet.Append(row(map[string]string{"column": "updated_at", "key": "\x00", "drop": "x"}))

	path := filepath.Join(t.TempDir(), "config.xlsx")
	require.NoError(t, dataset.WriteExcel(path, sheet, "user"))

	cfg, err := LoadSheetConfig(path, "user")
	require.NoError(t, err)
	require.Equal(t, []string{"id", "name", "updated_at"}, cfg.ColumnNames)
	require.Equal(t, []string{"id"}, cfg.KeyColumns)
	require.Equal(t, []string{"updated_at"}, cfg.DropColumns)
	require.Equal(t, []string{"name"}, cfg.CompareColumns)
}
