package cmd

import (
	"fmt"
	"io"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/majin-ml/majin/internal/autodiff/ops"
	"github.com/majin-ml/majin/internal/loader"
	"github.com/majin-ml/majin/internal/viz"
)

const (
	formatTable = "table"
	formatASCII = "ascii"
)

var exampleForGradCmd = `
majin grad neuron.yaml
majin grad --dtype int64 --format ascii counts.yaml
`

func newGradCmd(opts *rootOpts) *cobra.Command {
	gradCmd := &cobra.Command{
		Use:     "grad FILE",
		Short:   "compute the gradient of the root with respect to every node",
		Example: exampleForGradCmd,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dtype, err := opts.dtype()
			if err != nil {
				return err
			}
			format := opts.v.GetString(keyFormat)
			if format != formatTable && format != formatASCII {
				return errors.Errorf("unsupported format %q, want %s or %s", format, formatTable, formatASCII)
			}
			def, err := loader.LoadFile(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			switch dtype {
			case dtypeFloat32:
				return renderGrad[float32](out, def, format)
			case dtypeInt64:
				return renderGrad[int64](out, def, format)
			default:
				return renderGrad[float64](out, def, format)
			}
		},
	}

	gradCmd.Flags().StringP(keyFormat, "o", formatTable, "output format: table or ascii")
	_ = opts.v.BindPFlag(keyFormat, gradCmd.Flags().Lookup(keyFormat))
	return gradCmd
}

func renderGrad[V ops.Scalar](out io.Writer, def *loader.GraphYAML, format string) error {
	built, err := loader.Build[V](def)
	if err != nil {
		return err
	}
	built.Graph.SeedRoot(built.Root)
	built.Graph.Backward(built.Root)

	if format == formatASCII {
		if err := viz.DrawASCII(out, built.Root); err != nil {
			return err
		}
		for _, id := range built.Graph.ReverseTopological(built.Root) {
			n := built.Graph.Node(id)
			if _, err := fmt.Fprintf(out, "grad %d (%s): %v\n", id, viz.DisplayLabel(n), n.Grad()); err != nil {
				return errors.Wrap(err, "failed to write gradients")
			}
		}
		return nil
	}
	viz.RenderTable(out, built.Root)
	return nil
}
