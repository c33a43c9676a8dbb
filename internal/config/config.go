// Package config loads romctl job files.
//
// A job file is YAML. Defaults are applied first and the file overlays them,
// so every key is optional except the snapshot artifact and the space:
//
//	snapshots:
//	  dir: ./data
//	  name: snapshots
//	space:
//	  dim: 128          # or blocks: [64, 64]
//	inner_product:      # optional; identity when omitted
//	  dir: ./data
//	  name: mass
//	pod:
//	  n: 10
//	  tol: 1.0e-6
//	  normalize: true
//	  solver: jacobi    # or gonum
//	output:
//	  dir: ./out
//	  eigenvalues: eigenvalues
//	  modes: modes
//	  compression: zstd # none, lz4, zstd
//	log:
//	  level: info
//	  format: text
package config

import (
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/katalvlaran/romkit/functions"
	"github.com/katalvlaran/romkit/internal/logging"
	"github.com/katalvlaran/romkit/online"
	"github.com/katalvlaran/romkit/pod"
	"github.com/katalvlaran/romkit/tensorio"
	"gopkg.in/yaml.v3"
)

// ErrInvalid is returned by Validate.
var ErrInvalid = errors.New("config: invalid job")

// Artifact names one stored artifact.
type Artifact struct {
	Dir  string `yaml:"dir"`
	Name string `yaml:"name"`
}

// Set reports whether the artifact is configured.
func (a Artifact) Set() bool { return a.Name != "" }

// Space describes the snapshots' space: a plain dimension or block sizes.
type Space struct {
	Dim    int   `yaml:"dim"`
	Blocks []int `yaml:"blocks"`
}

// POD holds the decomposition parameters.
type POD struct {
	N         int     `yaml:"n"`
	Tol       float64 `yaml:"tol"`
	Normalize bool    `yaml:"normalize"`
	Solver    string  `yaml:"solver"`
}

// Output names the exported eigenvalues vector and modes list.
type Output struct {
	Dir         string `yaml:"dir"`
	Eigenvalues string `yaml:"eigenvalues"`
	Modes       string `yaml:"modes"`
	Compression string `yaml:"compression"`
}

// Log selects the CLI logger.
type Log struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Job is a complete POD job.
type Job struct {
	Snapshots    Artifact `yaml:"snapshots"`
	Space        Space    `yaml:"space"`
	InnerProduct Artifact `yaml:"inner_product"`
	POD          POD      `yaml:"pod"`
	Output       Output   `yaml:"output"`
	Log          Log      `yaml:"log"`
}

// Default returns a job with every optional key filled in.
func Default() *Job {
	return &Job{
		POD: POD{
			N:         10,
			Tol:       0,
			Normalize: pod.DefaultNormalize,
			Solver:    pod.SolverJacobi.String(),
		},
		Output: Output{
			Dir:         ".",
			Eigenvalues: "eigenvalues",
			Modes:       "modes",
			Compression: tensorio.CompressionNone.String(),
		},
		Log: Log{Level: "info", Format: logging.FormatText},
	}
}

// Load reads path over the defaults and validates the result.
func Load(path string) (*Job, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	return Parse(data)
}

// Parse decodes a YAML job over the defaults and validates it.
func Parse(data []byte) (*Job, error) {
	job := Default()
	if err := yaml.Unmarshal(data, job); err != nil {
		return nil, fmt.Errorf("config: parse: %w", err)
	}
	if err := job.Validate(); err != nil {
		return nil, err
	}

	return job, nil
}

// Validate checks the job for missing or out-of-range values.
func (j *Job) Validate() error {
	switch {
	case !j.Snapshots.Set():
		return fmt.Errorf("%w: snapshots.name is required", ErrInvalid)
	case j.Space.Dim <= 0 && len(j.Space.Blocks) == 0:
		return fmt.Errorf("%w: space.dim or space.blocks is required", ErrInvalid)
	case j.POD.N < 0:
		return fmt.Errorf("%w: pod.n = %d", ErrInvalid, j.POD.N)
	case math.IsNaN(j.POD.Tol) || j.POD.Tol < 0 || j.POD.Tol > 1:
		return fmt.Errorf("%w: pod.tol = %g", ErrInvalid, j.POD.Tol)
	case j.Output.Eigenvalues == "" || j.Output.Modes == "":
		return fmt.Errorf("%w: output names are required", ErrInvalid)
	case j.Output.Eigenvalues == j.Output.Modes:
		return fmt.Errorf("%w: output.eigenvalues and output.modes collide", ErrInvalid)
	}
	if len(j.Space.Blocks) > 0 {
		total, err := online.Total(j.Space.Blocks)
		if err != nil {
			return fmt.Errorf("%w: space.blocks: %v", ErrInvalid, err)
		}
		if j.Space.Dim != 0 && j.Space.Dim != total {
			return fmt.Errorf("%w: space.dim %d does not match blocks total %d", ErrInvalid, j.Space.Dim, total)
		}
	}
	if _, err := pod.ParseSolver(j.POD.Solver); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if _, err := tensorio.ParseCompression(j.Output.Compression); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	return nil
}

// FunctionSpace returns the configured space.
func (j *Job) FunctionSpace() functions.Space {
	if len(j.Space.Blocks) > 0 {
		return functions.BlockSpace(append([]int(nil), j.Space.Blocks...))
	}

	return functions.DenseSpace(j.Space.Dim)
}

// PODOptions translates the pod section into pod options.
func (j *Job) PODOptions() []pod.Option {
	solver, _ := pod.ParseSolver(j.POD.Solver)

	return []pod.Option{pod.WithNormalize(j.POD.Normalize), pod.WithSolver(solver)}
}

// Compression returns the output codec.
func (j *Job) Compression() tensorio.Compression {
	c, _ := tensorio.ParseCompression(j.Output.Compression)

	return c
}

// String summarizes the job for logging.
func (j *Job) String() string {
	return fmt.Sprintf("Job{snapshots: %s/%s, N: %d, tol: %g, solver: %s, out: %s}",
		j.Snapshots.Dir, j.Snapshots.Name, j.POD.N, j.POD.Tol, j.POD.Solver, j.Output.Dir)
}
