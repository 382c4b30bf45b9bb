package loader

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/majin-ml/majin/internal/autodiff"
	"github.com/majin-ml/majin/internal/autodiff/ops"
)

// ErrInvalidGraph is the cause of every validation failure.
var ErrInvalidGraph = errors.New("invalid graph definition")

// Built is a definition turned into a graph.
type Built[V ops.Scalar] struct {
	Name  string
	Graph *autodiff.Graph[V]
	Root  autodiff.Node[V]
	Nodes map[string]autodiff.Node[V] // By label.
}

// Validate checks a definition and returns every problem found, each
// wrapping ErrInvalidGraph, combined in a *multierror.Error.
func (d *GraphYAML) Validate() error {
	var result *multierror.Error
	fail := func(format string, args ...interface{}) {
		result = multierror.Append(result, errors.Wrapf(ErrInvalidGraph, format, args...))
	}

	if len(d.Nodes) == 0 {
		fail("no nodes")
	}

	declared := make(map[string]int, len(d.Nodes))
	for i, n := range d.Nodes {
		where := nodeRef(i, n.Label)
		if n.Label == "" {
			fail("%s: empty label", where)
		} else if prev, dup := declared[n.Label]; dup {
			fail("%s: label already used by node %d", where, prev)
		}

		if n.IsLeaf() {
			if n.Value == nil {
				fail("%s: leaf without value", where)
			}
			if len(n.Operands) > 0 {
				fail("%s: leaf with operands", where)
			}
		} else {
			if n.Value != nil {
				fail("%s: op node %q must not set a value", where, n.Op)
			}
			k, err := ops.ParseKind(n.Op)
			if err != nil {
				fail("%s: %v", where, err)
			} else if !k.AcceptsArity(len(n.Operands)) {
				fail("%s: %s takes %s operands, got %d", where, k, arityText(k), len(n.Operands))
			}
			for _, o := range n.Operands {
				if _, ok := declared[o]; ok {
					continue
				}
				if o == n.Label {
					fail("%s: operand %q refers to the node itself", where, o)
				} else if laterIndex(d.Nodes[i+1:], o) >= 0 {
					fail("%s: operand %q is declared later", where, o)
				} else {
					fail("%s: undefined operand %q", where, o)
				}
			}
		}

		if n.Label != "" {
			if _, dup := declared[n.Label]; !dup {
				declared[n.Label] = i
			}
		}
	}

	if d.Root == "" {
		fail("root not set")
	} else if _, ok := declared[d.Root]; !ok {
		fail("root %q is not a declared node", d.Root)
	}

	return result.ErrorOrNil()
}

// Build validates def and constructs its graph.
func Build[V ops.Scalar](def *GraphYAML) (*Built[V], error) {
	if err := def.Validate(); err != nil {
		return nil, err
	}

	b := &Built[V]{
		Name:  def.Name,
		Graph: autodiff.NewGraph[V](),
		Nodes: make(map[string]autodiff.Node[V], len(def.Nodes)),
	}

	integer := isInteger[V]()
	for i, n := range def.Nodes {
		if n.IsLeaf() {
			v := V(*n.Value)
			if integer && float64(v) != *n.Value {
				return nil, errors.Wrapf(ErrInvalidGraph, "%s: value %g is not representable", nodeRef(i, n.Label), *n.Value)
			}
			b.Nodes[n.Label] = b.Graph.NewLeaf(v, n.Label)
			continue
		}

		k, _ := ops.ParseKind(n.Op)
		operands := make([]autodiff.Node[V], len(n.Operands))
		for j, o := range n.Operands {
			operands[j] = b.Nodes[o]
		}
		node, err := b.Graph.Apply(k, n.Label, operands...)
		if err != nil {
			return nil, errors.Wrapf(err, "%s", nodeRef(i, n.Label))
		}
		b.Nodes[n.Label] = node
	}

	b.Root = b.Nodes[def.Root]
	logrus.Debugf("built graph %q: %d nodes, root %q = %v", def.Name, b.Graph.Len(), def.Root, b.Root.Value())
	return b, nil
}

func nodeRef(i int, label string) string {
	if label == "" {
		return fmt.Sprintf("node %d", i)
	}
	return fmt.Sprintf("node %d (%s)", i, label)
}

func arityText(k ops.Kind) string {
	if k.Arity() == ops.Variadic {
		return "at least 1"
	}
	return fmt.Sprint(k.Arity())
}

// isInteger reports whether V truncates fractions.
func isInteger[V ops.Scalar]() bool {
	half := 0.5
	return V(half) == 0
}

func laterIndex(nodes []NodeYAML, label string) int {
	for i, n := range nodes {
		if n.Label == label {
			return i
		}
	}
	return -1
}
