// Command romctl inspects romkit artifacts and runs POD jobs.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/romkit/internal/logging"
)

var (
	version = "0.1.0"
	commit  = "dev"
)

// app carries state shared by subcommands.
type app struct {
	logLevel  string
	logFormat string
	logger    *slog.Logger
}

// setupLogger builds the logger from the flags, falling back to level and
// format for whichever flag was left empty.
func (a *app) setupLogger(w io.Writer, level, format string) error {
	if a.logLevel != "" {
		level = a.logLevel
	}
	if a.logFormat != "" {
		format = a.logFormat
	}
	l, err := logging.New(level, format, w)
	if err != nil {
		return err
	}
	a.logger = l

	return nil
}

func newRootCmd() *cobra.Command {
	a := &app{logger: logging.Discard()}

	root := &cobra.Command{
		Use:   "romctl",
		Short: "romctl - reduced-order model artifact tool",
		Long: `romctl works with the artifacts written by romkit's online layer.

  inspect  print the headers and values of a stored tensor or list
  pod      run a proper orthogonal decomposition job from a YAML file`,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn, error")
	root.PersistentFlags().StringVar(&a.logFormat, "log-format", "", "log format: text, json")

	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "romctl v%s (%s)\n", version, commit)
		},
	})
	root.AddCommand(newInspectCmd(a), newPODCmd(a))

	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
