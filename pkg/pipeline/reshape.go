package pipeline

import (
	"fmt"

	"github.com/iota-uz/orgsync/pkg/dataset"
)

// ReshapeRankNames melts the wide "{base}{rank}" columns of a table into a
// long ("rank", "group_name") table, one row per non-null name, deduplicated
// in first-occurrence order.
func ReshapeRankNames(t *dataset.Table, base string, startRank, endRank int) (*dataset.Table, error) {
	if startRank > endRank {
		return nil, fmt.Errorf("invalid rank range %d..%d", startRank, endRank)
	}
	for rank := startRank; rank <= endRank; rank++ {
		if !t.HasColumn(fmt.Sprintf("%s%d", base, rank)) {
			return nil, fmt.Errorf("table is missing the %s%d column", base, rank)
		}
	}

	out := dataset.New("rank", "group_name")
	seen := make(map[string]bool)
	for rank := startRank; rank <= endRank; rank++ {
		col := fmt.Sprintf("%s%d", base, rank)
		rankValue := dataset.NewValue(fmt.Sprintf("%d", rank))
		for i := 0; i < t.Len(); i++ {
			v := t.Cell(i, col)
			if v.IsNull() || v.String() == "" {
				continue
			}
			key := fmt.Sprintf("%d\x1f%s", rank, v.String())
			if seen[key] {
				continue
			}
			seen[key] = true
			out.Append(dataset.Row{"rank": rankValue, "group_name": v})
		}
	}
	return out, nil
}
