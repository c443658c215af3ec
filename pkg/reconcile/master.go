package reconcile

import (
	"github.com/sirupsen/logrus"

	"github.com/iota-uz/orgsync/pkg/dataset"
)

// ProcessMasterUpdate runs one full reconciliation: outer join of the local
// and downloaded tables on the sheet's key columns, classification into
// ADD/UPDATE change rows, then post-condition validation.
func ProcessMasterUpdate(local, downloaded *dataset.Table, cfg SheetConfig, opts ClassifyOptions, log logrus.FieldLogger) (*dataset.Table, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}

	joined, err := OuterJoin(local, downloaded, cfg.KeyColumns)
	if err != nil {
		return nil, err
	}
	log.Infof("outer join on %v produced %d rows", cfg.KeyColumns, joined.Len())

	changes, err := IdentifyChanges(joined, cfg.CompareColumns, cfg.KeyColumns, opts)
	if err != nil {
		return nil, err
	}
	log.Infof("identified %d change rows", changes.Len())

	if err := ValidateChanges(changes); err != nil {
		return nil, err
	}
	return changes, nil
}
