package reconcile

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/iota-uz/orgsync/pkg/dataset"
)

func TestValidateChanges_OK(t *testing.T) {
	changes := dataset.New("id", FlagColumn, DisableFlagColumn)
	changes.Append(row(map[string]string{"id": "1", FlagColumn: FlagAdd, DisableFlagColumn: "\x00"}))
	changes.Append(row(map[string]string{"id": "2", FlagColumn: FlagUpdate, DisableFlagColumn: ""}))
	changes.Append(row(map[string]string{"id": "3", FlagColumn: FlagUpdate, DisableFlagColumn: "1"}))

	require.NoError(t, ValidateChanges(changes))
}

func TestValidateChanges_BadDisableFlag(t *testing.T) {
	changes := dataset.New("id", FlagColumn, DisableFlagColumn)
	changes.Append(row(map[string]string{"id": "1", FlagColumn: FlagAdd, DisableFlagColumn: "2"}))

	err := ValidateChanges(changes)
	var disableErr *InvalidDisableFlagError
	require.ErrorAs(t, err, &disableErr)
	require.Equal(t, []string{"2"}, disableErr.Values)
}

func TestValidateChanges_BadFlag(t *testing.T) {
	changes := dataset.New("id", FlagColumn)
	changes.Append(row(map[string]string{"id": "1", FlagColumn: "DELETE"}))

	err := ValidateChanges(changes)
	var flagErr *InvalidFlagError
	require.ErrorAs(t, err, &flagErr)
	require.Equal(t, []string{"DELETE"}, flagErr.Values)
}
