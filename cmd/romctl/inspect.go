package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/romkit/tensorio"
)

type inspectFlags struct {
	values bool
	kind   string
	list   bool
}

func newInspectCmd(a *app) *cobra.Command {
	f := &inspectFlags{}
	cmd := &cobra.Command{
		Use:   "inspect <dir> <name>",
		Short: "Print the content of a stored artifact",
		Long: `Print the record headers of dir/name.dat and, with --values, the values.
--kind and --list make the command fail unless the artifact matches.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.setupLogger(cmd.ErrOrStderr(), "info", "text"); err != nil {
				return err
			}
			art, err := tensorio.Open(args[0], args[1])
			if err != nil {
				return err
			}
			a.logger.Debug("artifact opened", "path", tensorio.Path(args[0], args[1]), "records", len(art.Records))
			if err = f.check(cmd, art); err != nil {
				return err
			}

			return printArtifact(cmd.OutOrStdout(), art, f.values)
		},
	}
	cmd.Flags().BoolVar(&f.values, "values", false, "print the values of every record")
	cmd.Flags().StringVar(&f.kind, "kind", "", "require every record to be of this kind (vector or matrix)")
	cmd.Flags().BoolVar(&f.list, "list", false, "require a list artifact (--list=false requires a single tensor)")

	return cmd
}

func (f *inspectFlags) check(cmd *cobra.Command, art *tensorio.Artifact) error {
	if cmd.Flags().Changed("list") && art.List != f.list {
		return fmt.Errorf("artifact list=%t, want %t: %w", art.List, f.list, tensorio.ErrFormat)
	}
	if f.kind == "" {
		return nil
	}
	for i, r := range art.Records {
		if !strings.EqualFold(r.Kind.String(), f.kind) {
			return fmt.Errorf("record %d is a %s, want %s: %w", i, r.Kind, f.kind, tensorio.ErrFormat)
		}
	}

	return nil
}

func printArtifact(w io.Writer, art *tensorio.Artifact, values bool) error {
	if art.List {
		if _, err := fmt.Fprintf(w, "list of %d records\n", len(art.Records)); err != nil {
			return err
		}
	}
	for i, r := range art.Records {
		_, err := fmt.Fprintf(w, "#%d %s %dx%d version=%d compression=%s raw=%d stored=%d\n",
			i, r.Kind, r.Rows, r.Cols, r.Version, r.Compression, r.RawLen, r.StoredLen)
		if err != nil {
			return err
		}
		if !values {
			continue
		}
		for row := 0; row < r.Rows; row++ {
			cells := make([]string, r.Cols)
			for c := range cells {
				cells[c] = fmt.Sprintf("%g", r.Values[row*r.Cols+c])
			}
			if _, err = fmt.Fprintf(w, "  [%s]\n", strings.Join(cells, ", ")); err != nil {
				return err
			}
		}
	}

	return nil
}
