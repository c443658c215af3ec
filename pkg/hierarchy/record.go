package hierarchy

import (
	"fmt"
	"strconv"

	"github.com/iota-uz/orgsync/pkg/dataset"
)

// Column names of the organization master table.
const (
	ColumnOrgCode        = "org_code"
	ColumnOrgName        = "org_name"
	ColumnParentCode     = "parent_code"
	ColumnNormalizedName = "org_name_normalized"
	ColumnRank           = "rank"
)

// OrgRecord is one organizational unit from the flat input. Rank is supplied
// data denoting the organizational tier, not graph depth; it may skip levels.
type OrgRecord struct {
	Code       string
	Name       string
	ParentCode string // empty when the unit is a root
	Rank       int
}

// RecordsFromTable converts the raw org table into records. Codes and names
// are taken as-is; a null or non-numeric rank becomes 0 and is rejected later
// when rank columns are assigned.
func RecordsFromTable(t *dataset.Table) ([]OrgRecord, error) {
	for _, col := range []string{ColumnOrgCode, ColumnOrgName, ColumnRank} {
		if !t.HasColumn(col) {
			return nil, fmt.Errorf("org table is missing column %q", col)
		}
	}

	parentCol := ColumnParentCode
	if !t.HasColumn(parentCol) {
		// Some drops use the long-form header.
		parentCol = "parent_org_code"
		if !t.HasColumn(parentCol) {
			return nil, fmt.Errorf("org table is missing column %q", ColumnParentCode)
		}
	}

	records := make([]OrgRecord, 0, t.Len())
	for i := 0; i < t.Len(); i++ {
		row := t.Row(i)
		rank := 0
		if v := row.Get(ColumnRank); !v.IsNull() {
			if n, err := strconv.Atoi(v.Str); err == nil {
				rank = n
			}
		}
		records = append(records, OrgRecord{
			Code:       row.Get(ColumnOrgCode).String(),
			Name:       row.Get(ColumnOrgName).String(),
			ParentCode: row.Get(parentCol).String(),
			Rank:       rank,
		})
	}
	return records, nil
}
