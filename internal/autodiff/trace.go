package autodiff

// Edge links an operand to a node that consumes it.
type Edge struct {
	From ID // operand
	To   ID // consumer
}

// Trace is the node and edge structure reachable from a root.
type Trace struct {
	Root  ID
	Nodes []ID   // Each reachable node once, in depth-first visit order.
	Edges []Edge // Each distinct (operand, consumer) pair once.
}

// Trace walks the graph depth-first from root and collects every reachable
// node and operand edge. Nodes are deduplicated by identity, never by value:
// two leaves holding the same value are two entries.
//
// For a tree, len(Edges) == len(Nodes)-1. A node used twice by the same
// consumer (x*x) contributes a single edge.
func (g *Graph[V]) Trace(root Node[V]) Trace {
	g.mustOwn(root)

	tr := Trace{Root: root.id}
	visited := make([]bool, root.id+1)
	edges := make(map[Edge]struct{})
	stack := []ID{root.id}

	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if visited[id] {
			continue
		}
		visited[id] = true
		tr.Nodes = append(tr.Nodes, id)

		operands := g.operandIDs(id)
		for _, o := range operands {
			e := Edge{From: o, To: id}
			if _, dup := edges[e]; !dup {
				edges[e] = struct{}{}
				tr.Edges = append(tr.Edges, e)
			}
		}
		// Push in reverse so the first operand is visited first.
		for i := len(operands) - 1; i >= 0; i-- {
			if !visited[operands[i]] {
				stack = append(stack, operands[i])
			}
		}
	}
	return tr
}
