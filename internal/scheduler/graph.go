package scheduler

import (
	"sort"

	"github.com/alexanderramin/loadline/internal/domain"
)

// DependencyNode holds the direct neighbours of one item.
// Upstream items must finish before this one; downstream items wait on it.
type DependencyNode struct {
	Upstream   map[int]struct{}
	Downstream map[int]struct{}
}

func newDependencyNode() *DependencyNode {
	return &DependencyNode{
		Upstream:   make(map[int]struct{}),
		Downstream: make(map[int]struct{}),
	}
}

// DependencyGraph is a "must finish before" graph built from a snapshot of
// work items. The caller owns its lifetime and rebuilds it when relations
// change. The downstream-count memo belongs to the graph instance and is
// cleared by AddEdge and Invalidate.
type DependencyGraph struct {
	nodes  map[int]*DependencyNode
	closed map[int]bool

	downstreamMemo map[int]int
}

// BuildGraph creates a graph from the relation records of items.
//
// The tracker feed repeats every relation on both endpoints (A blocks B shows
// up on A as "blocks" and on B as "blocked"). Only records owned by the item
// being processed are honoured, so each logical edge is added once.
// Self-references are dropped and non-scheduling relation types ignored.
// Targets outside the item set get nodes of their own.
func BuildGraph(items []domain.WorkItem) *DependencyGraph {
	g := &DependencyGraph{
		nodes:          make(map[int]*DependencyNode, len(items)),
		closed:         make(map[int]bool),
		downstreamMemo: make(map[int]int),
	}
	for i := range items {
		g.ensure(items[i].ID)
		if items[i].IsClosed() {
			g.closed[items[i].ID] = true
		}
	}
	for i := range items {
		item := &items[i]
		for _, rel := range item.Relations {
			if rel.OwnerItemID != item.ID {
				continue
			}
			switch {
			case rel.Type.OwnerBlocksTarget():
				g.link(rel.OwnerItemID, rel.TargetItemID)
			case rel.Type.OwnerWaitsOnTarget():
				g.link(rel.TargetItemID, rel.OwnerItemID)
			}
		}
	}
	return g
}

func (g *DependencyGraph) ensure(id int) *DependencyNode {
	n, ok := g.nodes[id]
	if !ok {
		n = newDependencyNode()
		g.nodes[id] = n
	}
	return n
}

// link records that blocker must finish before blocked.
func (g *DependencyGraph) link(blocker, blocked int) bool {
	if blocker == blocked {
		return false
	}
	g.ensure(blocker).Downstream[blocked] = struct{}{}
	g.ensure(blocked).Upstream[blocker] = struct{}{}
	return true
}

// AddEdge adds a blocking edge and clears the downstream memo.
// Self-edges are ignored.
func (g *DependencyGraph) AddEdge(blocker, blocked int) {
	if g.link(blocker, blocked) {
		g.Invalidate()
	}
}

// Invalidate clears the downstream-count memo.
func (g *DependencyGraph) Invalidate() {
	g.downstreamMemo = make(map[int]int)
}

// Has reports whether the graph has a node for id.
func (g *DependencyGraph) Has(id int) bool {
	_, ok := g.nodes[id]
	return ok
}

// Len returns the number of nodes, including out-of-set targets.
func (g *DependencyGraph) Len() int {
	return len(g.nodes)
}

// Upstream returns the direct blockers of id in ascending order.
func (g *DependencyGraph) Upstream(id int) []int {
	n, ok := g.nodes[id]
	if !ok {
		return nil
	}
	return sortedIDs(n.Upstream)
}

// Downstream returns the items directly waiting on id in ascending order.
func (g *DependencyGraph) Downstream(id int) []int {
	n, ok := g.nodes[id]
	if !ok {
		return nil
	}
	return sortedIDs(n.Downstream)
}

// CountDownstream counts every item transitively waiting on id. Items reachable
// through several paths are counted once.
func (g *DependencyGraph) CountDownstream(id int) int {
	if n, ok := g.downstreamMemo[id]; ok {
		return n
	}
	seen := map[int]bool{id: true}
	queue := []int{id}
	count := 0
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		node, ok := g.nodes[cur]
		if !ok {
			continue
		}
		for next := range node.Downstream {
			if seen[next] {
				continue
			}
			seen[next] = true
			count++
			queue = append(queue, next)
		}
	}
	g.downstreamMemo[id] = count
	return count
}

// RelatedItem is a direct neighbour returned by Blockers and Dependents.
// Hidden is set when the id is in the graph but not in the caller's visible
// item map, e.g. an issue assigned to someone else; Item is nil then.
type RelatedItem struct {
	ID     int
	Item   *domain.WorkItem
	Hidden bool
}

// Blockers returns the open items id directly waits on.
func (g *DependencyGraph) Blockers(id int, visible map[int]*domain.WorkItem) []RelatedItem {
	return g.related(g.Upstream(id), visible)
}

// Dependents returns the open items directly waiting on id.
func (g *DependencyGraph) Dependents(id int, visible map[int]*domain.WorkItem) []RelatedItem {
	return g.related(g.Downstream(id), visible)
}

func (g *DependencyGraph) related(ids []int, visible map[int]*domain.WorkItem) []RelatedItem {
	var out []RelatedItem
	for _, rid := range ids {
		if g.closed[rid] {
			continue
		}
		item, ok := visible[rid]
		if !ok {
			out = append(out, RelatedItem{ID: rid, Hidden: true})
			continue
		}
		if item.IsClosed() {
			continue
		}
		out = append(out, RelatedItem{ID: rid, Item: item})
	}
	return out
}

func sortedIDs(set map[int]struct{}) []int {
	ids := make([]int, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}
