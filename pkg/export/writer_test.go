package export

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/iota-uz/orgsync/pkg/dataset"
)

func changeTable(n int) *dataset.Table {
	t := dataset.New("id", "name")
	for i := 0; i < n; i++ {
		t.Append(dataset.Row{
			"id":   dataset.NewValue(string(rune('a' + i))),
			"name": dataset.NewValue("row"),
		})
	}
	return t
}

func TestSplitAndSave_SmallTableWritesOnlyOriginal(t *testing.T) {
	dir := t.TempDir()
	written, err := SplitAndSave(changeTable(3), 100, filepath.Join(dir, "user.xlsx"), nil)
	require.NoError(t, err)
	require.Equal(t, []string{filepath.Join(dir, "user_original.xlsx")}, written)

	got, err := dataset.ReadExcel(written[0], "")
	require.NoError(t, err)
	require.Equal(t, 3, got.Len())
}

func TestSplitAndSave_LargeTableChunks(t *testing.T) {
	dir := t.TempDir()
	written, err := SplitAndSave(changeTable(5), 2, filepath.Join(dir, "user.xlsx"), nil)
	require.NoError(t, err)

	require.Equal(t, []string{
		filepath.Join(dir, "user_original.xlsx"),
		filepath.Join(dir, "user_01.xlsx"),
		filepath.Join(dir, "user_02.xlsx"),
		filepath.Join(dir, "user_03.xlsx"),
	}, written)

	// chunks are delimited text regardless of the workbook extension
	chunk, err := dataset.ReadDelimited(written[1], ',', dataset.EncodingUTF8)
	require.NoError(t, err)
	require.Equal(t, 2, chunk.Len())

	last, err := dataset.ReadDelimited(written[3], ',', dataset.EncodingUTF8)
	require.NoError(t, err)
	require.Equal(t, 1, last.Len())
}

func TestSplitAndSave_InvalidChunkSize(t *testing.T) {
	_, err := SplitAndSave(changeTable(1), 0, filepath.Join(t.TempDir(), "x.xlsx"), nil)
	require.Error(t, err)
}
