package pod_test

import (
	"bytes"
	"log/slog"
	"math"
	"testing"

	"github.com/katalvlaran/romkit/functions"
	"github.com/katalvlaran/romkit/matrix"
	"github.com/katalvlaran/romkit/online"
	"github.com/katalvlaran/romkit/pod"
	"github.com/katalvlaran/romkit/tensors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tol = 1e-9

func snapshots(t *testing.T, dim int, rows ...[]float64) *functions.List {
	t.Helper()
	l, err := functions.New(functions.DenseSpace(dim))
	require.NoError(t, err)
	for _, r := range rows {
		v, err := matrix.NewVectorFrom(r)
		require.NoError(t, err)
		require.NoError(t, l.Append(v))
	}

	return l
}

func diag(t *testing.T, d ...float64) *matrix.Dense {
	t.Helper()
	a, err := matrix.NewDense(len(d), len(d))
	require.NoError(t, err)
	for i, x := range d {
		require.NoError(t, a.Set(i, i, x))
	}

	return a
}

// independent returns four linearly independent snapshots of R^4.
func independent(t *testing.T) *functions.List {
	return snapshots(t, 4,
		[]float64{3, 1, 0, 0},
		[]float64{1, 2, 1, 0},
		[]float64{0, 1, 1, 1},
		[]float64{0.5, 0, 0, 0.25},
	)
}

func requireDescending(t *testing.T, vals []float64) {
	t.Helper()
	for i := 1; i < len(vals); i++ {
		require.GreaterOrEqual(t, vals[i-1], vals[i], "eigenvalue %d", i)
	}
}

// expectedRetained applies the truncation rule to a descending spectrum.
func expectedRetained(vals []float64, n int, tol float64) int {
	total := 0.0
	for _, v := range vals {
		total += math.Abs(v)
	}
	if total == 0 {
		return 0
	}
	retained := 0.0
	k := 0
	for ; k < min(n, len(vals)); k++ {
		if retained/total >= 1-tol {
			break
		}
		retained += math.Abs(vals[k])
	}

	return k
}

func TestFunctions_SpectrumAndTrace(t *testing.T) {
	list := independent(t)
	r, err := pod.Functions(list, diag(t, 1, 1, 1, 1), 4, 0)
	require.NoError(t, err)
	require.Len(t, r.Eigenvalues, 4)
	requireDescending(t, r.Eigenvalues)

	// trace identity: Σλ = Σ‖s_i‖²
	want := 0.0
	for _, s := range list.Items() {
		d, err := matrix.Dot(s.RawData(), s.RawData())
		require.NoError(t, err)
		want += d
	}
	got := 0.0
	for _, v := range r.Eigenvalues {
		got += v
		require.Greater(t, v, 0.0)
	}
	require.InDelta(t, want, got, tol*want)
	require.Equal(t, 4, r.Modes.Len())
	require.Len(t, r.Eigenvectors, 4)
}

func TestFunctions_ModesAreOrthonormal(t *testing.T) {
	for _, solver := range []pod.Solver{pod.SolverJacobi, pod.SolverGonum} {
		solver := solver
		t.Run(solver.String(), func(t *testing.T) {
			inner := diag(t, 2, 1, 0.5, 1)
			r, err := pod.Functions(independent(t), inner, 3, 0, pod.WithSolver(solver))
			require.NoError(t, err)
			require.Equal(t, 3, r.Modes.Len())

			modes := r.Modes.Items()
			for i := range modes {
				for j := range modes {
					got, err := matrix.Inner(inner, modes[i].RawData(), modes[j].RawData())
					require.NoError(t, err)
					want := 0.0
					if i == j {
						want = 1
					}
					require.InDelta(t, want, got, 1e-8, "(%d,%d)", i, j)
				}
			}
		})
	}
}

func TestFunctions_SolversAgree(t *testing.T) {
	inner := diag(t, 1, 1, 1, 1)
	j, err := pod.Functions(independent(t), inner, 4, 0)
	require.NoError(t, err)
	g, err := pod.Functions(independent(t), inner, 4, 0, pod.WithSolver(pod.SolverGonum))
	require.NoError(t, err)

	require.InDeltaSlice(t, j.Eigenvalues, g.Eigenvalues, 1e-9)
	for i := range j.Eigenvectors {
		require.InDeltaSlice(t, j.Eigenvectors[i].RawData(), g.Eigenvectors[i].RawData(), 1e-7, "eigenvector %d", i)
		jm, _ := j.Modes.At(i)
		gm, _ := g.Modes.At(i)
		require.InDeltaSlice(t, jm.RawData(), gm.RawData(), 1e-7, "mode %d", i)
	}
}

func TestFunctions_Truncation(t *testing.T) {
	inner := diag(t, 1, 1, 1, 1)
	full, err := pod.Functions(independent(t), inner, 4, 0)
	require.NoError(t, err)

	cases := []struct {
		name string
		n    int
		tol  float64
	}{
		{"N caps", 1, 0},
		{"N zero", 0, 0},
		{"loose tol", 4, 0.5},
		{"medium tol", 4, 0.1},
		{"tight tol", 4, 1e-3},
		{"tol one keeps nothing", 4, 1},
		{"N beyond snapshots", 10, 0},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			r, err := pod.Functions(independent(t), inner, tc.n, tc.tol)
			require.NoError(t, err)
			want := expectedRetained(full.Eigenvalues, tc.n, tc.tol)
			require.Equal(t, want, r.Modes.Len())
			require.Len(t, r.Eigenvectors, want)
			require.Len(t, r.Eigenvalues, 4, "the full spectrum is always returned")
		})
	}

	r, err := pod.Functions(independent(t), inner, 4, 1)
	require.NoError(t, err)
	assert.Equal(t, 0, r.Modes.Len())
	r, err = pod.Functions(independent(t), inner, 1, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, r.Modes.Len())
}

func TestFunctions_TruncationFixedSpectrum(t *testing.T) {
	// λ = [2, 1, 1]: two modes hold exactly 3/4 of the energy
	list := func() *functions.List {
		return snapshots(t, 4,
			[]float64{1, 1, 0, 0},
			[]float64{0, 0, 1, 0},
			[]float64{0, 0, 0, 1},
		)
	}
	inner := diag(t, 1, 1, 1, 1)

	cases := []struct {
		tol  float64
		want int
	}{
		{0.6, 1},  // 2/4 ≥ 0.4
		{0.5, 1},  // 2/4 ≥ 0.5, equality retains
		{0.25, 2}, // 3/4 ≥ 0.75, equality retains
		{0.2, 3},  // 3/4 < 0.8
		{0, 3},
	}
	for _, tc := range cases {
		r, err := pod.Functions(list(), inner, 3, tc.tol)
		require.NoError(t, err)
		require.InDeltaSlice(t, []float64{2, 1, 1}, r.Eigenvalues, 1e-12)
		require.Equal(t, tc.want, r.Modes.Len(), "tol=%g", tc.tol)
	}
}

func TestFunctions_WithoutNormalization(t *testing.T) {
	inner := diag(t, 1, 1, 1, 1)
	r, err := pod.Functions(independent(t), inner, 2, 0, pod.WithNormalize(false))
	require.NoError(t, err)

	for i, m := range r.Modes.Items() {
		norm, err := matrix.Dot(m.RawData(), m.RawData())
		require.NoError(t, err)
		require.InDelta(t, r.Eigenvalues[i], norm, 1e-8)

		// eigenvectors stay unit length
		e, err := matrix.Dot(r.Eigenvectors[i].RawData(), r.Eigenvectors[i].RawData())
		require.NoError(t, err)
		require.InDelta(t, 1.0, e, 1e-10)
	}
}

func TestFunctions_ZeroSnapshots(t *testing.T) {
	r, err := pod.Functions(snapshots(t, 2, []float64{0, 0}, []float64{0, 0}), diag(t, 1, 1), 2, 0)
	require.NoError(t, err)
	require.Equal(t, []float64{0, 0}, r.Eigenvalues)
	require.Equal(t, 0, r.Modes.Len())
}

func TestFunctions_RepeatedSnapshot(t *testing.T) {
	// rank one: one mode carries all the energy
	r, err := pod.Functions(snapshots(t, 2, []float64{3, 4}, []float64{3, 4}), diag(t, 1, 1), 2, 1e-6)
	require.NoError(t, err)
	require.InDelta(t, 50.0, r.Eigenvalues[0], tol)
	require.InDelta(t, 0.0, r.Eigenvalues[1], tol)
	require.Equal(t, 1, r.Modes.Len())
	m, err := r.Modes.At(0)
	require.NoError(t, err)
	require.InDeltaSlice(t, []float64{0.6, 0.8}, m.RawData(), 1e-10)
}

func TestFunctions_Errors(t *testing.T) {
	empty, err := functions.New(functions.DenseSpace(2))
	require.NoError(t, err)
	_, err = pod.Functions(empty, diag(t, 1, 1), 1, 0)
	require.ErrorIs(t, err, pod.ErrInvalidInput)

	list := snapshots(t, 2, []float64{1, 0})
	_, err = pod.Functions(list, diag(t, 1, 1), -1, 0)
	require.ErrorIs(t, err, pod.ErrInvalidInput)
	_, err = pod.Functions(list, diag(t, 1, 1), 1, 1.5)
	require.ErrorIs(t, err, pod.ErrInvalidInput)
	_, err = pod.Functions(list, diag(t, 1, 1), 1, math.NaN())
	require.ErrorIs(t, err, pod.ErrInvalidInput)
	_, err = pod.Functions(list, nil, 1, 0)
	require.ErrorIs(t, err, pod.ErrInvalidInput)
	_, err = pod.Functions(list, diag(t, 1, 1, 1), 1, 0)
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}

func TestFunctions_Logger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	_, err := pod.Functions(independent(t), diag(t, 1, 1, 1, 1), 2, 0, pod.WithLogger(logger))
	require.NoError(t, err)
	require.Contains(t, buf.String(), `"msg":"pod decomposition"`)
	require.Contains(t, buf.String(), `"retained":2`)
}

func TestOptions_Panics(t *testing.T) {
	require.Panics(t, func() { pod.WithSolver(pod.Solver(7)) })
	require.Panics(t, func() { pod.WithEigenTolerance(0) })
	require.Panics(t, func() { pod.WithEigenTolerance(math.Inf(1)) })
	require.Panics(t, func() { pod.WithMaxRotations(0) })
	require.Panics(t, func() { pod.WithLogger(nil) })
}

func TestFunctions_MaxRotationsTooSmall(t *testing.T) {
	_, err := pod.Functions(independent(t), diag(t, 1, 1, 1, 1), 4, 0, pod.WithMaxRotations(1))
	require.ErrorIs(t, err, matrix.ErrMatrixEigenFailed)
}

func TestTensors_Matrices(t *testing.T) {
	list, err := tensors.New[*matrix.Dense](online.MatrixFactory{Rows: 2, Cols: 2})
	require.NoError(t, err)
	for _, vals := range [][]float64{{1, 0, 0, 1}, {0, 2, 1, 0}, {1, 1, 1, 1}} {
		m, err := matrix.NewDenseFrom(2, 2, vals)
		require.NoError(t, err)
		require.NoError(t, list.Append(m))
	}

	r, err := pod.Tensors(list, 3, 0)
	require.NoError(t, err)
	requireDescending(t, r.Eigenvalues)

	// trace identity with the Frobenius inner product: 2 + 5 + 4
	sum := 0.0
	for _, v := range r.Eigenvalues {
		sum += v
	}
	require.InDelta(t, 11.0, sum, tol)

	modes := r.Modes.Items()
	require.Len(t, modes, 3)
	for i := range modes {
		for j := range modes {
			got, err := matrix.Frobenius(modes[i], modes[j])
			require.NoError(t, err)
			want := 0.0
			if i == j {
				want = 1
			}
			require.InDelta(t, want, got, 1e-8)
		}
	}
	rows, cols := r.Modes.Shape()
	require.Equal(t, 2, rows)
	require.Equal(t, 2, cols)
}

func TestTensors_Vectors(t *testing.T) {
	list, err := tensors.New[*matrix.Vector](online.VectorFactory{Size: 2})
	require.NoError(t, err)
	for _, vals := range [][]float64{{3, 4}, {6, 8}} {
		v, err := matrix.NewVectorFrom(vals)
		require.NoError(t, err)
		require.NoError(t, list.Append(v))
	}

	r, err := pod.Tensors(list, 2, 1e-6)
	require.NoError(t, err)
	require.InDelta(t, 125.0, r.Eigenvalues[0], tol)
	require.Equal(t, 1, r.Modes.Len())
	m, err := r.Modes.At(0)
	require.NoError(t, err)
	require.InDeltaSlice(t, []float64{0.6, 0.8}, m.RawData(), 1e-10)

	empty, err := tensors.New[*matrix.Vector](online.VectorFactory{Size: 2})
	require.NoError(t, err)
	_, err = pod.Tensors(empty, 1, 0)
	require.ErrorIs(t, err, pod.ErrInvalidInput)
}

func TestParseSolver(t *testing.T) {
	for name, want := range map[string]pod.Solver{"": pod.SolverJacobi, "Jacobi": pod.SolverJacobi, "GONUM": pod.SolverGonum} {
		got, err := pod.ParseSolver(name)
		require.NoError(t, err)
		assert.Equal(t, want, got, name)
	}
	_, err := pod.ParseSolver("lapack")
	require.ErrorIs(t, err, pod.ErrInvalidInput)
	assert.Equal(t, "unknown", pod.Solver(9).String())
}
