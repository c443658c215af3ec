package hierarchy

import (
	"fmt"

	"github.com/iota-uz/orgsync/pkg/dataset"
)

func rankCodeColumn(rank int) string {
	return fmt.Sprintf("rank%d_code", rank)
}

func rankNameColumn(rank int) string {
	return fmt.Sprintf("rank%d_name", rank)
}

type rankEntry struct {
	rank int
	name string
}

// AssignRankColumns populates rank{1..R}_code / rank{1..R}_name columns on
// the org table, where R is the highest rank in the dataset. For every row
// the root-to-self path is walked and each node on it is written into the
// slot of its own rank; a slot already filled is left alone. Ancestor
// resolutions are memoized per call since deep subtrees share long prefixes.
func AssignRankColumns(t *dataset.Table, g *Graph) error {
	records, err := RecordsFromTable(t)
	if err != nil {
		return err
	}

	maxRank := 0
	for _, rec := range records {
		if rec.Rank > maxRank {
			maxRank = rec.Rank
		}
	}
	if maxRank < 1 {
		return &MissingOrCorruptRankError{Code: "", Rank: maxRank, Max: maxRank}
	}

	for r := 1; r <= maxRank; r++ {
		t.AddColumn(rankCodeColumn(r), dataset.Null())
	}
	for r := 1; r <= maxRank; r++ {
		t.AddColumn(rankNameColumn(r), dataset.Null())
	}

	memo := make(map[string]rankEntry)

	resolve := func(code string) (rankEntry, error) {
		if e, ok := memo[code]; ok {
			return e, nil
		}
		node, _ := g.Node(code)
		if node.Rank < 1 || node.Rank > maxRank {
			return rankEntry{}, &MissingOrCorruptRankError{Code: code, Rank: node.Rank, Max: maxRank}
		}
		e := rankEntry{rank: node.Rank, name: node.Name}
		memo[code] = e
		return e, nil
	}

	for i := 0; i < t.Len(); i++ {
		code := t.Cell(i, ColumnOrgCode).String()
		path := append(g.AncestorsTopological(code), code)
		for _, ancestor := range path {
			e, err := resolve(ancestor)
			if err != nil {
				return err
			}
			codeCol := rankCodeColumn(e.rank)
			if t.Cell(i, codeCol).IsNull() {
				t.SetCell(i, codeCol, dataset.NewValue(ancestor))
				t.SetCell(i, rankNameColumn(e.rank), dataset.NewValue(e.name))
			}
		}
	}
	return nil
}
