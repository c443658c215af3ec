package reconcile

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/iota-uz/orgsync/pkg/dataset"
)

func TestProcessMasterUpdate_Idempotent(t *testing.T) {
	cfg, err := NewSheetConfig([]string{"id", "name"}, []string{"id"}, nil)
	require.NoError(t, err)

	local := dataset.New("id", "name")
	local.Append(row(map[string]string{"id": "1", "name": "A"}))
	local.Append(row(map[string]string{"id": "2", "name": "B"}))

	changes, err := ProcessMasterUpdate(local, local.Clone(), cfg, ClassifyOptions{}, nil)
	require.NoError(t, err)
	require.Equal(t, 0, changes.Len())
}

func TestProcessMasterUpdate_EmptyDownloadAddsEverything(t *testing.T) {
	cfg, err := NewSheetConfig([]string{"id", "name"}, []string{"id"}, nil)
	require.NoError(t, err)

	local := dataset.New("id", "name")
	local.Append(row(map[string]string{"id": "1", "name": "A"}))

	changes, err := ProcessMasterUpdate(local, dataset.New("id", "name"), cfg, ClassifyOptions{}, nil)
	require.NoError(t, err)
	require.Equal(t, 1, changes.Len())
	require.Equal(t, FlagAdd, changes.Cell(0, FlagColumn).String())
}
