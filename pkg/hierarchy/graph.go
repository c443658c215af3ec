package hierarchy

import (
	"github.com/sirupsen/logrus"
)

// Node is one organizational unit inside the graph.
type Node struct {
	Code string
	Name string
	Rank int
}

// Graph is the validated organization hierarchy: an explicit adjacency arena
// keyed by org code, edges parent -> child. Built once per run from an
// immutable record set and read-only afterwards.
type Graph struct {
	order    []string // insertion order, keeps traversals deterministic
	orderIdx map[string]int
	nodes    map[string]Node
	parents  map[string][]string
	children map[string][]string
	log      logrus.FieldLogger
}

// Build constructs the hierarchy from flat records and validates it is
// acyclic. A parent code that never appears as a record of its own still
// becomes a node (with zero rank), so a corrupt drop surfaces later as a rank
// error rather than a missing edge.
func Build(records []OrgRecord, log logrus.FieldLogger) (*Graph, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}
	g := &Graph{
		orderIdx: make(map[string]int),
		nodes:    make(map[string]Node),
		parents:  make(map[string][]string),
		children: make(map[string][]string),
		log:      log,
	}

	edgeSeen := make(map[[2]string]struct{})
	for _, rec := range records {
		g.upsertNode(Node{Code: rec.Code, Name: rec.Name, Rank: rec.Rank})
		if rec.ParentCode == "" {
			continue
		}
		g.ensureNode(rec.ParentCode)
		key := [2]string{rec.ParentCode, rec.Code}
		if _, ok := edgeSeen[key]; ok {
			continue
		}
		edgeSeen[key] = struct{}{}
		g.parents[rec.Code] = append(g.parents[rec.Code], rec.ParentCode)
		g.children[rec.ParentCode] = append(g.children[rec.ParentCode], rec.Code)
	}

	if cyclic := g.unorderedByKahn(); len(cyclic) > 0 {
		return nil, &CyclicHierarchyError{Codes: cyclic}
	}
	return g, nil
}

func (g *Graph) upsertNode(n Node) {
	if _, ok := g.nodes[n.Code]; !ok {
		g.orderIdx[n.Code] = len(g.order)
		g.order = append(g.order, n.Code)
	}
	g.nodes[n.Code] = n
}

func (g *Graph) ensureNode(code string) {
	if _, ok := g.nodes[code]; ok {
		return
	}
	g.orderIdx[code] = len(g.order)
	g.order = append(g.order, code)
	g.nodes[code] = Node{Code: code}
}

func (g *Graph) Has(code string) bool {
	_, ok := g.nodes[code]
	return ok
}

func (g *Graph) Node(code string) (Node, bool) {
	n, ok := g.nodes[code]
	return n, ok
}

func (g *Graph) Len() int {
	return len(g.nodes)
}

// unorderedByKahn runs Kahn's algorithm over the whole graph and returns the
// codes it could not order, i.e. the nodes on or downstream of a cycle.
func (g *Graph) unorderedByKahn() []string {
	indegree := make(map[string]int, len(g.nodes))
	for code := range g.nodes {
		indegree[code] = len(g.parents[code])
	}

	queue := make([]string, 0, len(g.nodes))
	for _, code := range g.order {
		if indegree[code] == 0 {
			queue = append(queue, code)
		}
	}

	processed := 0
	for len(queue) > 0 {
		code := queue[0]
		queue = queue[1:]
		processed++
		for _, child := range g.children[code] {
			indegree[child]--
			if indegree[child] == 0 {
				queue = append(queue, child)
			}
		}
	}

	if processed == len(g.nodes) {
		return nil
	}
	var cyclic []string
	for _, code := range g.order {
		if indegree[code] > 0 {
			cyclic = append(cyclic, code)
		}
	}
	return cyclic
}

// AncestorsTopological returns the ancestors of code in topological order,
// root first, excluding code itself. An unknown code is logged and treated as
// having no ancestors.
func (g *Graph) AncestorsTopological(code string) []string {
	if !g.Has(code) {
		g.log.Errorf("org code %q does not exist in the hierarchy", code)
		return nil
	}

	ancestors := g.ancestorSet(code)
	if len(ancestors) == 0 {
		return nil
	}

	// Kahn restricted to the ancestor subgraph. Ready nodes are consumed in
	// insertion order so the result is stable across runs.
	indegree := make(map[string]int, len(ancestors))
	for a := range ancestors {
		n := 0
		for _, p := range g.parents[a] {
			if _, ok := ancestors[p]; ok {
				n++
			}
		}
		indegree[a] = n
	}

	ready := make([]string, 0, len(ancestors))
	for _, c := range g.order {
		if _, ok := ancestors[c]; ok && indegree[c] == 0 {
			ready = append(ready, c)
		}
	}

	sorted := make([]string, 0, len(ancestors))
	for len(ready) > 0 {
		// pick the earliest-inserted ready node
		best := 0
		for i := 1; i < len(ready); i++ {
			if g.orderIdx[ready[i]] < g.orderIdx[ready[best]] {
				best = i
			}
		}
		cur := ready[best]
		ready = append(ready[:best], ready[best+1:]...)
		sorted = append(sorted, cur)
		for _, child := range g.children[cur] {
			if _, ok := ancestors[child]; !ok {
				continue
			}
			indegree[child]--
			if indegree[child] == 0 {
				ready = append(ready, child)
			}
		}
	}
	return sorted
}

func (g *Graph) ancestorSet(code string) map[string]struct{} {
	set := make(map[string]struct{})
	stack := append([]string(nil), g.parents[code]...)
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if _, ok := set[cur]; ok {
			continue
		}
		set[cur] = struct{}{}
		stack = append(stack, g.parents[cur]...)
	}
	return set
}
