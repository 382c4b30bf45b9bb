// Package cmd implements the majin command tree.
package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/majin-ml/majin/internal/logger"
)

// Configuration keys. Each can be set by flag, by MAJIN_<KEY> in the
// environment or in the config file.
const (
	keyDebug     = "debug"
	keyDType     = "dtype"
	keyFormat    = "format"
	keyEpsilon   = "epsilon"
	keyTolerance = "tolerance"
	keyWorkers   = "workers"
	keyNoColor   = "no-color"
)

const (
	dtypeFloat64 = "float64"
	dtypeFloat32 = "float32"
	dtypeInt64   = "int64"
)

var supportedDTypes = []string{dtypeFloat64, dtypeFloat32, dtypeInt64}

type rootOpts struct {
	cfgFile string
	v       *viper.Viper
}

var longRootCmdDescription = `majin builds scalar expression graphs from YAML definitions,
computes reverse-mode gradients of the root with respect to every node,
and renders the graph for inspection.
`

// NewRootCmd returns the root command with all subcommands attached.
func NewRootCmd() *cobra.Command {
	opts := &rootOpts{v: viper.New()}

	rootCmd := &cobra.Command{
		Use:           "majin",
		Short:         "Scalar reverse-mode automatic differentiation",
		Long:          longRootCmdDescription,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.initConfig(); err != nil {
				return err
			}
			logger.Init(logger.Options{
				Verbose:      opts.v.GetBool(keyDebug),
				DisableColor: opts.v.GetBool(keyNoColor),
				Output:       cmd.ErrOrStderr(),
			})
			return nil
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.cfgFile, "config", "", "config file (default is $HOME/.majin.yaml)")
	flags.BoolP(keyDebug, "d", false, "turn on debug logging")
	flags.Bool(keyNoColor, false, "disable colored log output")
	flags.String(keyDType, dtypeFloat64, fmt.Sprintf("scalar type of the graph, one of %v", supportedDTypes))
	for _, key := range []string{keyDebug, keyNoColor, keyDType} {
		_ = opts.v.BindPFlag(key, flags.Lookup(key))
	}

	rootCmd.AddCommand(
		newGradCmd(opts),
		newTraceCmd(opts),
		newCheckCmd(opts),
		newFmtCmd(),
		newVersionCmd(),
	)
	rootCmd.DisableAutoGenTag = true
	return rootCmd
}

// Execute runs the root command. This is called by main.main().
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		logrus.Errorf("majin-%s: %v", version, err)
		os.Exit(1)
	}
}

// initConfig reads in config file and ENV variables if set.
func (o *rootOpts) initConfig() error {
	o.v.SetEnvPrefix("MAJIN")
	o.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	o.v.AutomaticEnv()

	if o.cfgFile != "" {
		o.v.SetConfigFile(o.cfgFile)
		if err := o.v.ReadInConfig(); err != nil {
			return errors.Wrapf(err, "failed to read config %s", o.cfgFile)
		}
		return nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		// No home directory: flags and environment only.
		return nil
	}
	o.v.SetConfigFile(filepath.Join(home, ".majin.yaml"))
	if err := o.v.ReadInConfig(); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "failed to read default config")
	}
	return nil
}

func (o *rootOpts) dtype() (string, error) {
	dt := strings.ToLower(o.v.GetString(keyDType))
	for _, s := range supportedDTypes {
		if dt == s {
			return dt, nil
		}
	}
	return "", errors.Errorf("unsupported dtype %q, want one of %v", dt, supportedDTypes)
}
