package layout

import (
	"slices"

	"github.com/matzehuels/indexflow/pkg/dag"
)

// DefaultSweeps is the number of barycenter sweeps the layered engine runs.
const DefaultSweeps = 8

// orderRows orders the nodes of every row to reduce crossings.
//
// Rows start in insertion order. Each sweep re-sorts every row by the
// barycenter of its neighbours in the previous row (downward sweeps use
// parents, upward sweeps children), then applies transpose passes that
// swap adjacent nodes while that strictly lowers crossings. The ordering
// with the fewest crossings seen is returned; ties keep the earlier one.
func orderRows(g *dag.DAG, sweeps int) map[int][]string {
	orders := make(map[int][]string)
	for _, r := range g.RowIDs() {
		orders[r] = dag.NodeIDs(g.NodesInRow(r))
	}
	best := cloneOrders(orders)
	bestCrossings := dag.CountCrossings(g, orders)

	rows := g.RowIDs()
	for i := 0; i < sweeps && bestCrossings > 0; i++ {
		if i%2 == 0 {
			for j := 1; j < len(rows); j++ {
				sortByBarycenter(g, orders[rows[j]], orders[rows[j-1]], true)
				transpose(g, orders[rows[j]], orders[rows[j-1]], true)
			}
		} else {
			for j := len(rows) - 2; j >= 0; j-- {
				sortByBarycenter(g, orders[rows[j]], orders[rows[j+1]], false)
				transpose(g, orders[rows[j]], orders[rows[j+1]], false)
			}
		}
		if c := dag.CountCrossings(g, orders); c < bestCrossings {
			best, bestCrossings = cloneOrders(orders), c
		}
	}
	return best
}

// sortByBarycenter stably sorts row by the mean position of each node's
// neighbours in adj. Nodes without neighbours there keep their position.
func sortByBarycenter(g *dag.DAG, row, adj []string, useParents bool) {
	pos := dag.PosMap(adj)
	bary := make(map[string]float64, len(row))
	for i, id := range row {
		nbrs := g.Children(id)
		if useParents {
			nbrs = g.Parents(id)
		}
		sum, n := 0.0, 0
		for _, nb := range nbrs {
			if p, ok := pos[nb]; ok {
				sum += float64(p)
				n++
			}
		}
		if n == 0 {
			bary[id] = float64(i)
			continue
		}
		bary[id] = sum / float64(n)
	}
	slices.SortStableFunc(row, func(a, b string) int {
		switch {
		case bary[a] < bary[b]:
			return -1
		case bary[a] > bary[b]:
			return 1
		}
		return 0
	})
}

// transpose swaps adjacent nodes of row while a swap strictly reduces the
// crossings against adj.
func transpose(g *dag.DAG, row, adj []string, useParents bool) {
	pos := dag.PosMap(adj)
	for improved := true; improved; {
		improved = false
		for j := 0; j+1 < len(row); j++ {
			l, r := row[j], row[j+1]
			before := dag.CountPairCrossings(g, l, r, pos, useParents)
			after := dag.CountPairCrossings(g, r, l, pos, useParents)
			if after < before {
				row[j], row[j+1] = r, l
				improved = true
			}
		}
	}
}

func cloneOrders(orders map[int][]string) map[int][]string {
	out := make(map[int][]string, len(orders))
	for r, ids := range orders {
		out[r] = slices.Clone(ids)
	}
	return out
}
