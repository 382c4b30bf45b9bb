// Package viz renders the trace of an expression graph for inspection.
package viz

import (
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/pkg/errors"

	"github.com/majin-ml/majin/internal/autodiff"
	"github.com/majin-ml/majin/internal/autodiff/ops"
)

// DrawASCII writes the plain-text dump of the graph reachable from root:
// one "Node <id>: Value: <v>" line per node, a blank line, "Edges:" and one
// "<operand-id> -> <consumer-id>" line per edge.
func DrawASCII[V ops.Scalar](w io.Writer, root autodiff.Node[V]) error {
	g := root.Graph()
	tr := g.Trace(root)

	var b strings.Builder
	for _, id := range tr.Nodes {
		fmt.Fprintf(&b, "Node %d: Value: %v\n", id, g.Node(id).Value())
	}
	b.WriteString("\nEdges:\n")
	for _, e := range tr.Edges {
		fmt.Fprintf(&b, "%d -> %d\n", e.From, e.To)
	}

	if _, err := io.WriteString(w, b.String()); err != nil {
		return errors.Wrap(err, "failed to write trace")
	}
	return nil
}

// Table column headers.
const (
	colID       = "ID"
	colLabel    = "LABEL"
	colOp       = "OP"
	colValue    = "VALUE"
	colGrad     = "GRAD"
	colOperands = "OPERANDS"
)

// RenderTable writes one row per node reachable from root, in reverse
// topological order (root first).
func RenderTable[V ops.Scalar](w io.Writer, root autodiff.Node[V]) {
	g := root.Graph()

	table := tablewriter.NewWriter(w)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{colID, colLabel, colOp, colValue, colGrad, colOperands})
	table.SetAlignment(tablewriter.ALIGN_LEFT)

	for _, id := range g.ReverseTopological(root) {
		n := g.Node(id)
		table.Append([]string{
			fmt.Sprint(id),
			DisplayLabel(n),
			n.Op().Symbol(),
			fmt.Sprint(n.Value()),
			fmt.Sprint(n.Grad()),
			operandList(n),
		})
	}
	table.Render()
}

// DisplayLabel returns the node label, or "#<id>" for unlabeled nodes.
func DisplayLabel[V ops.Scalar](n autodiff.Node[V]) string {
	if n.Label() != "" {
		return n.Label()
	}
	return fmt.Sprintf("#%d", n.ID())
}

func operandList[V ops.Scalar](n autodiff.Node[V]) string {
	operands := n.Operands()
	names := make([]string, len(operands))
	for i, o := range operands {
		names[i] = DisplayLabel(o)
	}
	return strings.Join(names, ", ")
}
