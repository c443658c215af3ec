package hierarchy

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/iota-uz/orgsync/pkg/dataset"
)

// Member is one record of a duplicate-name group.
type Member struct {
	Code string
	Name string
	Rank int
}

// DuplicateGroup is the set of records sharing one normalized display name.
type DuplicateGroup struct {
	NormalizedName string
	Members        []Member
}

// FindDuplicateNames stamps the normalized-name column onto the table and
// returns the groups of records whose normalized names collide. Groups and
// members keep first-occurrence order.
func FindDuplicateNames(t *dataset.Table) []DuplicateGroup {
	t.AddColumn(ColumnNormalizedName, dataset.Null())

	byName := make(map[string][]Member)
	var nameOrder []string
	for i := 0; i < t.Len(); i++ {
		row := t.Row(i)
		normalized := NormalizeName(row.Get(ColumnOrgName).String())
		t.SetCell(i, ColumnNormalizedName, dataset.NewValue(normalized))

		rank := 0
		if v := row.Get(ColumnRank); !v.IsNull() {
			fmt.Sscanf(v.Str, "%d", &rank)
		}
		if _, ok := byName[normalized]; !ok {
			nameOrder = append(nameOrder, normalized)
		}
		byName[normalized] = append(byName[normalized], Member{
			Code: row.Get(ColumnOrgCode).String(),
			Name: row.Get(ColumnOrgName).String(),
			Rank: rank,
		})
	}

	var groups []DuplicateGroup
	for _, name := range nameOrder {
		if members := byName[name]; len(members) >= 2 {
			groups = append(groups, DuplicateGroup{NormalizedName: name, Members: members})
		}
	}
	return groups
}

// Override is an externally supplied abbreviation for an org, applicable to
// descendants diverging at or below the override's rank.
type Override struct {
	Abbreviation string
	Rank         int
}

// PrepareOverrides turns the abbreviation mapping table (org_code,
// abbreviation) into a lookup keyed by org code. Blank abbreviations are
// sanitized to empty strings; the rank is resolved from the hierarchy and an
// unknown code is fatal.
func PrepareOverrides(g *Graph, mapping *dataset.Table) (map[string]Override, error) {
	out := make(map[string]Override, mapping.Len())
	for i := 0; i < mapping.Len(); i++ {
		row := mapping.Row(i)
		code := row.Get(ColumnOrgCode).String()
		node, ok := g.Node(code)
		if !ok {
			return nil, &MappingOrgNotFoundError{Code: code}
		}
		abbr := row.Get("abbreviation")
		sanitized := ""
		if !abbr.IsNull() && strings.TrimSpace(abbr.Str) != "" {
			sanitized = abbr.Str
		}
		out[code] = Override{Abbreviation: sanitized, Rank: node.Rank}
	}
	return out, nil
}

// ancestorNamePath returns the normalized display names of code's ancestors,
// root first, excluding code itself.
func ancestorNamePath(g *Graph, code string) []string {
	ancestors := g.AncestorsTopological(code)
	names := make([]string, len(ancestors))
	for i, a := range ancestors {
		node, _ := g.Node(a)
		names[i] = NormalizeName(node.Name)
	}
	return names
}

// divergenceRank finds the rank of the first ancestor (in topological order)
// whose normalized name equals segment, and returns that rank together with
// the ancestor codes scanned. Zero when no ancestor matches.
func divergenceRank(g *Graph, code, segment string) ([]string, int) {
	ancestors := g.AncestorsTopological(code)
	for _, a := range ancestors {
		node, _ := g.Node(a)
		if NormalizeName(node.Name) == segment {
			return ancestors, node.Rank
		}
	}
	return ancestors, 0
}

func commonPrefixLen(paths [][]string) int {
	if len(paths) == 0 {
		return 0
	}
	prefix := len(paths[0])
	for _, p := range paths[1:] {
		if len(p) < prefix {
			prefix = len(p)
		}
		for i := 0; i < prefix; i++ {
			if p[i] != paths[0][i] {
				prefix = i
				break
			}
		}
		if prefix == 0 {
			break
		}
	}
	return prefix
}

// AssignIdentifiers resolves a disambiguating identifier for every member of
// every duplicate group and returns them keyed by org code.
//
// Each group starts as one subset on a worklist. A subset whose members share
// no ancestor-path prefix falls back to each member's own display name.
// Otherwise the subset is partitioned on the path segment right after the
// common prefix; singletons resolve immediately, larger partitions go back on
// the list. A partition that does not shrink the subset (members with fully
// identical ancestor paths) resolves to own display names right away, since
// no further splitting is possible. A singleton defaults to its own display
// name unless some override lies on its ancestor path with a rank at or above
// the divergence rank; the first qualifying entry of the override map wins.
func AssignIdentifiers(groups []DuplicateGroup, g *Graph, overrides map[string]Override) map[string]string {
	identifiers := make(map[string]string)

	for _, group := range groups {
		paths := make(map[string][]string, len(group.Members))
		codes := make([]string, 0, len(group.Members))
		for _, m := range group.Members {
			codes = append(codes, m.Code)
			paths[m.Code] = ancestorNamePath(g, m.Code)
		}

		worklist := [][]string{codes}
		for len(worklist) > 0 {
			subset := worklist[0]
			worklist = worklist[1:]

			subsetPaths := make([][]string, len(subset))
			for i, code := range subset {
				subsetPaths[i] = paths[code]
			}
			prefixLen := commonPrefixLen(subsetPaths)

			if prefixLen == 0 {
				for _, code := range subset {
					node, _ := g.Node(code)
					identifiers[code] = node.Name
				}
				continue
			}

			// Partition by the segment following the common prefix. Members
			// whose whole path is the prefix land in a sentinel partition.
			partitions := make(map[string][]string)
			var segmentOrder []string
			for _, code := range subset {
				segment := ""
				if path := paths[code]; len(path) > prefixLen {
					segment = path[prefixLen]
				}
				if _, ok := partitions[segment]; !ok {
					segmentOrder = append(segmentOrder, segment)
				}
				partitions[segment] = append(partitions[segment], code)
			}

			for _, segment := range segmentOrder {
				part := partitions[segment]
				if len(part) > 1 {
					if len(part) == len(subset) {
						// Members share their entire ancestor path (same-named
						// siblings); there is nothing left to split on, so
						// requeueing would never terminate. Fall back to the
						// own display name, as with an empty prefix.
						for _, code := range part {
							node, _ := g.Node(code)
							identifiers[code] = node.Name
						}
						continue
					}
					worklist = append(worklist, part)
					continue
				}

				code := part[0]
				pathCodes, rank := divergenceRank(g, code, segment)

				node, _ := g.Node(code)
				identifier := node.Name
				for k, override := range overrides {
					if !containsString(pathCodes, k) {
						continue
					}
					if override.Rank >= rank {
						identifier = override.Abbreviation
						break
					}
				}
				identifiers[code] = identifier
			}
		}

		// Should be unreachable, kept as a sanity net.
		for _, m := range group.Members {
			if identifiers[m.Code] == "" {
				node, _ := g.Node(m.Code)
				identifiers[m.Code] = node.Name
			}
		}
	}
	return identifiers
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// ValidateIdentifiers warns about duplicate-group members that ended up
// without an identifier.
func ValidateIdentifiers(groups []DuplicateGroup, identifiers map[string]string, log logrus.FieldLogger) {
	if log == nil {
		log = logrus.StandardLogger()
	}
	missing := 0
	for _, group := range groups {
		for _, m := range group.Members {
			if identifiers[m.Code] == "" {
				missing++
				log.Warnf("org %q (code %s) has no identifier", m.Name, m.Code)
			}
		}
	}
	if missing == 0 {
		log.Info("all duplicate org names received an identifier")
	}
}

// ApplyIdentifiers rewrites each disambiguated member's own-rank name column
// to "{name} ({identifier})".
func ApplyIdentifiers(t *dataset.Table, groups []DuplicateGroup, identifiers map[string]string) {
	rowByCode := make(map[string]int, t.Len())
	for i := 0; i < t.Len(); i++ {
		rowByCode[t.Cell(i, ColumnOrgCode).String()] = i
	}

	for _, group := range groups {
		for _, m := range group.Members {
			i, ok := rowByCode[m.Code]
			if !ok {
				continue
			}
			name := m.Name
			if id := identifiers[m.Code]; id != "" {
				name = fmt.Sprintf("%s (%s)", m.Name, id)
			}
			t.SetCell(i, rankNameColumn(m.Rank), dataset.NewValue(name))
		}
	}
}
