package cmd

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/exp/constraints"

	"github.com/majin-ml/majin/internal/gradcheck"
	"github.com/majin-ml/majin/internal/loader"
)

var longCheckCmdDescription = `check compares the gradient of every leaf with a central finite
difference of the root value and fails if any leaf is out of tolerance.
Only float dtypes can be checked.
`

func newCheckCmd(opts *rootOpts) *cobra.Command {
	defaults := gradcheck.DefaultOptions()

	checkCmd := &cobra.Command{
		Use:   "check FILE",
		Short: "verify gradients against finite differences",
		Long:  longCheckCmdDescription,
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

			checkOpts := gradcheck.DefaultOptions()
			checkOpts.Epsilon = opts.v.GetFloat64(keyEpsilon)
			checkOpts.Tolerance = opts.v.GetFloat64(keyTolerance)
			if w := opts.v.GetInt(keyWorkers); w > 0 {
				checkOpts.Parallel.NumWorkers = w
				checkOpts.Parallel.Enabled = w > 1
			}

			switch dtype {
			case dtypeFloat64:
				return runCheck[float64](cmd, def, checkOpts)
			case dtypeFloat32:
				return runCheck[float32](cmd, def, checkOpts)
			default:
				return errors.Errorf("check requires a float dtype, got %s", dtype)
			}
		},
	}

	flags := checkCmd.Flags()
	flags.Float64(keyEpsilon, defaults.Epsilon, "finite-difference step")
	flags.Float64(keyTolerance, defaults.Tolerance, "maximum relative error per leaf")
	flags.Int(keyWorkers, 0, "number of parallel evaluations (default: number of CPUs)")
	for _, key := range []string{keyEpsilon, keyTolerance, keyWorkers} {
		_ = opts.v.BindPFlag(key, flags.Lookup(key))
	}
	return checkCmd
}

func runCheck[V constraints.Float](cmd *cobra.Command, def *loader.GraphYAML, opts gradcheck.Options) error {
	built, err := loader.Build[V](def)
	if err != nil {
		return err
	}

	logrus.Debugf("checking %d nodes with epsilon=%g tolerance=%g", built.Graph.Len(), opts.Epsilon, opts.Tolerance)
	report, err := gradcheck.Check(cmd.Context(), built.Root, opts)
	if err != nil {
		return err
	}

	printReport(cmd.OutOrStdout(), report)
	if failures := report.Failures(); len(failures) > 0 {
		return errors.Errorf("gradient check failed for %d of %d leaves", len(failures), len(report.Results))
	}
	return nil
}

func printReport(w io.Writer, report gradcheck.Report) {
	table := tablewriter.NewWriter(w)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"LEAF", "ANALYTIC", "NUMERIC", "REL ERROR", "STATUS"})
	for _, r := range report.Results {
		status := "ok"
		if !r.OK {
			status = "FAIL"
		}
		table.Append([]string{
			r.Label,
			fmt.Sprintf("%.6g", r.Analytic),
			fmt.Sprintf("%.6g", r.Numeric),
			fmt.Sprintf("%.2e", r.Error),
			status,
		})
	}
	table.Render()
}
