package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/romkit/functions"
	"github.com/katalvlaran/romkit/internal/config"
	"github.com/katalvlaran/romkit/matrix"
	"github.com/katalvlaran/romkit/online"
	"github.com/katalvlaran/romkit/pod"
	"github.com/katalvlaran/romkit/tensorio"
)

func newPODCmd(a *app) *cobra.Command {
	var cfgPath string
	cmd := &cobra.Command{
		Use:   "pod",
		Short: "Run a POD job",
		Long: `Load a snapshot list and an optional inner-product matrix, decompose
the snapshots and export the eigenvalues (vector) and the modes (list).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			job, err := config.Load(cfgPath)
			if err != nil {
				return err
			}
			if err = a.setupLogger(cmd.ErrOrStderr(), job.Log.Level, job.Log.Format); err != nil {
				return err
			}
			a.logger.Info("pod job", "job", job.String())

			r, err := runPOD(a, job)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "retained %d of %d modes; eigenvalues -> %s, modes -> %s\n",
				r.Modes.Len(), len(r.Eigenvalues),
				tensorio.Path(job.Output.Dir, job.Output.Eigenvalues),
				tensorio.Path(job.Output.Dir, job.Output.Modes))

			return err
		},
	}
	cmd.Flags().StringVarP(&cfgPath, "config", "c", "job.yaml", "job file")

	return cmd
}

func runPOD(a *app, job *config.Job) (*pod.FunctionsResult, error) {
	ioOpts := []tensorio.Option{tensorio.WithLogger(a.logger)}
	space := job.FunctionSpace()

	list, err := functions.Load(space, job.Snapshots.Dir, job.Snapshots.Name, ioOpts...)
	if err != nil {
		return nil, fmt.Errorf("snapshots: %w", err)
	}
	inner, err := innerProduct(job, space, ioOpts)
	if err != nil {
		return nil, fmt.Errorf("inner product: %w", err)
	}

	r, err := pod.Functions(list, inner, job.POD.N, job.POD.Tol,
		append(job.PODOptions(), pod.WithLogger(a.logger))...)
	if err != nil {
		return nil, err
	}

	outOpts := append(ioOpts, tensorio.WithCompression(job.Compression()))
	eig, err := matrix.NewVectorFrom(r.Eigenvalues)
	if err != nil {
		return nil, err
	}
	if err = online.ExportVector(eig, job.Output.Dir, job.Output.Eigenvalues, outOpts...); err != nil {
		return nil, fmt.Errorf("eigenvalues: %w", err)
	}
	if err = r.Modes.Save(job.Output.Dir, job.Output.Modes, outOpts...); err != nil {
		return nil, fmt.Errorf("modes: %w", err)
	}

	return r, nil
}

// innerProduct imports the configured matrix or returns the identity.
func innerProduct(job *config.Job, space functions.Space, opts []tensorio.Option) (*matrix.Dense, error) {
	n := space.Dim()
	if job.InnerProduct.Set() {
		return online.ImportMatrix(n, n, job.InnerProduct.Dir, job.InnerProduct.Name, opts...)
	}
	id, err := online.NewMatrix(n, n)
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		if err = id.Set(i, i, 1); err != nil {
			return nil, err
		}
	}

	return id, nil
}
