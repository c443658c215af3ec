package hierarchy

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/iota-uz/orgsync/pkg/logging"
)

func testLogger() *logrus.Logger {
	return logging.ConsoleLogger(logrus.ErrorLevel)
}

func TestBuild_DetectsCycle(t *testing.T) {
	records := []OrgRecord{
		{Code: "A", Name: "Alpha", ParentCode: "B", Rank: 1},
		{Code: "B", Name: "Beta", ParentCode: "A", Rank: 2},
	}

	_, err := Build(records, testLogger())
	require.Error(t, err)

	var cyclic *CyclicHierarchyError
	require.ErrorAs(t, err, &cyclic)
	require.ElementsMatch(t, []string{"A", "B"}, cyclic.Codes)
}

func TestBuild_ImplicitParentNode(t *testing.T) {
	records := []OrgRecord{
		{Code: "A", Name: "Alpha", ParentCode: "GHOST", Rank: 2},
	}

	g, err := Build(records, testLogger())
	require.NoError(t, err)
	require.True(t, g.Has("GHOST"))

	node, ok := g.Node("GHOST")
	require.True(t, ok)
	require.Equal(t, 0, node.Rank)
}

func TestAncestorsTopological(t *testing.T) {
	records := []OrgRecord{
		{Code: "HQ", Name: "Head Office", Rank: 1},
		{Code: "TYO", Name: "Tokyo Branch", ParentCode: "HQ", Rank: 2},
		{Code: "TS", Name: "Sales", ParentCode: "TYO", Rank: 3},
	}

	g, err := Build(records, testLogger())
	require.NoError(t, err)

	require.Equal(t, []string{"HQ", "TYO"}, g.AncestorsTopological("TS"))
	require.Equal(t, []string{"HQ"}, g.AncestorsTopological("TYO"))
	require.Empty(t, g.AncestorsTopological("HQ"))
}

func TestAncestorsTopological_UnknownCode(t *testing.T) {
	g, err := Build([]OrgRecord{{Code: "HQ", Name: "Head Office", Rank: 1}}, testLogger())
	require.NoError(t, err)
	require.Nil(t, g.AncestorsTopological("NOPE"))
}

func TestAncestorsTopological_DiamondIsStable(t *testing.T) {
	// two parents converging; order must follow record insertion
	records := []OrgRecord{
		{Code: "R", Name: "Root", Rank: 1},
		{Code: "L", Name: "Left", ParentCode: "R", Rank: 2},
		{Code: "M", Name: "Mid", ParentCode: "R", Rank: 2},
		{Code: "X", Name: "Leaf", ParentCode: "L", Rank: 3},
	}
	records = append(records, OrgRecord{Code: "X", Name: "Leaf", ParentCode: "M", Rank: 3})

	g, err := Build(records, testLogger())
	require.NoError(t, err)
	require.Equal(t, []string{"R", "L", "M"}, g.AncestorsTopological("X"))
}
