package pipeline

import (
	"fmt"

	"github.com/iota-uz/orgsync/pkg/dataset"
	"github.com/iota-uz/orgsync/pkg/reconcile"
)

// UpdateToAfterColumn fills targetField on every row: blank by default, and a
// copy of copyField on rows flagged as UPDATE. Upload tooling reads the
// "after" value only for updates.
func UpdateToAfterColumn(t *dataset.Table, targetField, copyField string) error {
	if !t.HasColumn(copyField) {
		return fmt.Errorf("table is missing the %s column", copyField)
	}
	t.AddColumn(targetField, dataset.NewValue(""))
	for i := 0; i < t.Len(); i++ {
		t.SetCell(i, targetField, dataset.NewValue(""))
		if t.Cell(i, reconcile.FlagColumn).String() == reconcile.FlagUpdate {
			t.SetCell(i, targetField, t.Cell(i, copyField))
		}
	}
	return nil
}
