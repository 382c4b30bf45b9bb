package autodiff

import "github.com/majin-ml/majin/internal/autodiff/ops"

// Evaluate recomputes the value of root from the values of the nodes it
// depends on, replacing the value of any node listed in overrides. The graph
// itself is not modified, so Evaluate may run concurrently with other reads.
//
// Overriding an inner node pins its value; its operands are then ignored.
func (g *Graph[V]) Evaluate(root Node[V], overrides map[ID]V) V {
	g.mustOwn(root)

	seen := g.reachable(root.id)
	values := make([]V, root.id+1)
	var inputs []V
	for id := ID(0); id <= root.id; id++ {
		if !seen[id] {
			continue
		}
		if v, ok := overrides[id]; ok {
			values[id] = v
			continue
		}
		rec := &g.nodes[id]
		rule, ok := ops.Lookup[V](rec.op)
		if !ok {
			values[id] = rec.value
			continue
		}
		inputs = inputs[:0]
		for _, o := range g.operandIDs(id) {
			inputs = append(inputs, values[o])
		}
		values[id] = rule.Forward(inputs)
	}
	return values[root.id]
}
