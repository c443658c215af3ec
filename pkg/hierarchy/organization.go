package hierarchy

import (
	"github.com/sirupsen/logrus"

	"github.com/iota-uz/orgsync/pkg/dataset"
)

// CreateOrganization turns the flat org table into the disambiguated org
// master: build the hierarchy, derive rank columns, then resolve duplicate
// display names against the abbreviation mapping. The input table is mutated
// and returned.
func CreateOrganization(t *dataset.Table, mapping *dataset.Table, log logrus.FieldLogger) (*dataset.Table, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}
	log.Infof("loaded %d organization records", t.Len())

	records, err := RecordsFromTable(t)
	if err != nil {
		return nil, err
	}

	g, err := Build(records, log)
	if err != nil {
		return nil, err
	}

	if err := AssignRankColumns(t, g); err != nil {
		return nil, err
	}

	groups := FindDuplicateNames(t)
	if len(groups) == 0 {
		log.Info("no duplicate org names found")
		t.DropColumns(ColumnNormalizedName)
		return t, nil
	}

	overrides, err := PrepareOverrides(g, mapping)
	if err != nil {
		return nil, err
	}

	identifiers := AssignIdentifiers(groups, g, overrides)
	ValidateIdentifiers(groups, identifiers, log)
	ApplyIdentifiers(t, groups, identifiers)

	t.DropColumns(ColumnNormalizedName)
	return t, nil
}
