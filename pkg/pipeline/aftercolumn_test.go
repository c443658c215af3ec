package pipeline

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/iota-uz/orgsync/pkg/dataset"
	"github.com/iota-uz/orgsync/pkg/reconcile"
)

func TestUpdateToAfterColumn(t *testing.T) {
	changes := dataset.New("id", reconcile.FlagColumn, LocationIdentifierColumn)
	changes.Append(dataset.Row{
		"id":                     dataset.NewValue("1"),
		reconcile.FlagColumn:     dataset.NewValue(reconcile.FlagAdd),
		LocationIdentifierColumn: dataset.NewValue("L1_Tokyo"),
	})
	changes.Append(dataset.Row{
		"id":                     dataset.NewValue("2"),
		reconcile.FlagColumn:     dataset.NewValue(reconcile.FlagUpdate),
		LocationIdentifierColumn: dataset.NewValue("L2_Osaka"),
	})

	require.NoError(t, UpdateToAfterColumn(changes, LocationAfterColumn, LocationIdentifierColumn))

	require.Equal(t, "", changes.Cell(0, LocationAfterColumn).String())
	require.False(t, changes.Cell(0, LocationAfterColumn).IsNull())
	require.Equal(t, "L2_Osaka", changes.Cell(1, LocationAfterColumn).String())
}

func TestUpdateToAfterColumn_MissingSource(t *testing.T) {
	changes := dataset.New("id")
	require.Error(t, UpdateToAfterColumn(changes, LocationAfterColumn, LocationIdentifierColumn))
}
