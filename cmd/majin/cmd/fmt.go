package cmd

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/majin-ml/majin/internal/loader"
)

var longFmtCmdDescription = `fmt validates a graph definition and prints it in canonical form:
keys in a fixed order, two-space indentation, comments dropped.
`

func newFmtCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fmt FILE",
		Short: "print a validated graph definition in canonical form",
		Long:  longFmtCmdDescription,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			def, err := loader.LoadFile(args[0])
			if err != nil {
				return err
			}
			if err := def.Validate(); err != nil {
				return err
			}
			data, err := loader.Marshal(def)
			if err != nil {
				return err
			}
			if _, err := cmd.OutOrStdout().Write(data); err != nil {
				return errors.Wrap(err, "failed to write definition")
			}
			return nil
		},
	}
}
