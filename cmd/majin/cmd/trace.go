package cmd

import (
	"github.com/spf13/cobra"

	"github.com/majin-ml/majin/internal/autodiff/ops"
	"github.com/majin-ml/majin/internal/loader"
	"github.com/majin-ml/majin/internal/viz"
)

func newTraceCmd(opts *rootOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "trace FILE",
		Short: "print the nodes and edges reachable from the root",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dtype, err := opts.dtype()
			if err != nil {
				return err
			}
			def, err := loader.LoadFile(args[0])
			if err != nil {
				return err
			}

			switch dtype {
			case dtypeFloat32:
				return drawTrace[float32](cmd, def)
			case dtypeInt64:
				return drawTrace[int64](cmd, def)
			default:
				return drawTrace[float64](cmd, def)
			}
		},
	}
}

func drawTrace[V ops.Scalar](cmd *cobra.Command, def *loader.GraphYAML) error {
	built, err := loader.Build[V](def)
	if err != nil {
		return err
	}
	return viz.DrawASCII(cmd.OutOrStdout(), built.Root)
}
