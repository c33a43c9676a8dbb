package pod

import (
	"fmt"
	"io"
	"log/slog"
	"math"
	"strings"
)

// Solver selects the symmetric eigen-solver used on the correlation matrix.
type Solver uint8

const (
	// SolverJacobi uses matrix.Eigen (classical Jacobi rotations).
	SolverJacobi Solver = iota
	// SolverGonum uses gonum's LAPACK-backed mat.EigenSym through matrix.EigenSym.
	SolverGonum
)

// String implements fmt.Stringer.
func (s Solver) String() string {
	switch s {
	case SolverJacobi:
		return "jacobi"
	case SolverGonum:
		return "gonum"
	default:
		return "unknown"
	}
}

// ParseSolver maps "jacobi" or "gonum" (case-insensitive, "" is jacobi) to a Solver.
func ParseSolver(name string) (Solver, error) {
	switch strings.ToLower(name) {
	case "", "jacobi":
		return SolverJacobi, nil
	case "gonum":
		return SolverGonum, nil
	default:
		return 0, fmt.Errorf("pod: solver %q: %w", name, ErrInvalidInput)
	}
}

const (
	// DefaultEigenTolerance is the relative off-diagonal threshold of the Jacobi
	// solver; it is scaled by max(1, ‖C‖_F).
	DefaultEigenTolerance = 1e-12

	// DefaultNormalize scales retained modes to unit norm.
	DefaultNormalize = true
)

const (
	panicSolverInvalid  = "pod: WithSolver: unknown solver"
	panicEigenTolerance = "pod: WithEigenTolerance: tol must be finite and > 0"
	panicMaxRotations   = "pod: WithMaxRotations: n must be > 0"
	panicLoggerNil      = "pod: WithLogger: nil logger"
)

// Option configures a decomposition.
type Option func(*options)

type options struct {
	normalize    bool
	solver       Solver
	eigTol       float64
	maxRotations int // 0 = derived from the snapshot count
	logger       *slog.Logger
}

// WithNormalize toggles scaling of modes and eigenvectors by 1/sqrt(λ).
func WithNormalize(on bool) Option {
	return func(o *options) { o.normalize = on }
}

// WithSolver selects the eigen-solver. Panics on an unknown value.
func WithSolver(s Solver) Option {
	if s != SolverJacobi && s != SolverGonum {
		panic(panicSolverInvalid)
	}

	return func(o *options) { o.solver = s }
}

// WithEigenTolerance sets the relative convergence threshold of the eigen-solver.
func WithEigenTolerance(tol float64) Option {
	if math.IsNaN(tol) || math.IsInf(tol, 0) || tol <= 0 {
		panic(panicEigenTolerance)
	}

	return func(o *options) { o.eigTol = tol }
}

// WithMaxRotations caps the Jacobi rotations. The default is max(1000, 50·n²).
func WithMaxRotations(n int) Option {
	if n <= 0 {
		panic(panicMaxRotations)
	}

	return func(o *options) { o.maxRotations = n }
}

// WithLogger receives one debug record per decomposition.
func WithLogger(l *slog.Logger) Option {
	if l == nil {
		panic(panicLoggerNil)
	}

	return func(o *options) { o.logger = l }
}

func gatherOptions(opts ...Option) options {
	o := options{
		normalize: DefaultNormalize,
		solver:    SolverJacobi,
		eigTol:    DefaultEigenTolerance,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	return o
}
