// Package logger configures the process-wide logrus logger.
package logger

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Options controls logger setup.
type Options struct {
	// Verbose enables debug level logging.
	Verbose bool
	// DisableColor disables colored level names.
	DisableColor bool
	// Output defaults to os.Stderr.
	Output io.Writer
}

// Init configures the standard logrus logger.
func Init(opts Options) {
	if opts.Verbose {
		logrus.SetLevel(logrus.DebugLevel)
	} else {
		logrus.SetLevel(logrus.InfoLevel)
	}

	out := opts.Output
	if out == nil {
		out = os.Stderr
	}
	logrus.SetOutput(out)

	logrus.SetFormatter(&logrus.TextFormatter{
		DisableColors:    opts.DisableColor,
		DisableTimestamp: true,
	})
}
