package pod_test

import (
	"testing"

	"github.com/katalvlaran/romkit/functions"
	"github.com/katalvlaran/romkit/matrix"
	"github.com/katalvlaran/romkit/pod"
	"github.com/stretchr/testify/require"
)

func blocks(t *testing.T) ([]*functions.List, []*matrix.Dense) {
	t.Helper()
	lists := []*functions.List{
		independent(t),
		snapshots(t, 2, []float64{3, 4}, []float64{6, 8}),
	}
	inners := []*matrix.Dense{diag(t, 1, 1, 1, 1), diag(t, 1, 1)}

	return lists, inners
}

func TestFunctionsBlock_MatchesPerBlock(t *testing.T) {
	lists, inners := blocks(t)
	r, err := pod.FunctionsBlock(lists, inners, pod.Same(2), pod.Each(0.0, 1e-6))
	require.NoError(t, err)
	require.Len(t, r.Eigenvalues, 2)
	require.Len(t, r.Modes, 2)
	require.Len(t, r.Eigenvectors, 2)

	for I, list := range lists {
		tol := []float64{0, 1e-6}[I]
		want, err := pod.Functions(list, inners[I], 2, tol)
		require.NoError(t, err)
		require.InDeltaSlice(t, want.Eigenvalues, r.Eigenvalues[I], 1e-12, "block %d", I)
		require.Equal(t, want.Modes.Len(), r.Modes[I].Len(), "block %d", I)
		for k, m := range want.Modes.Items() {
			got, err := r.Modes[I].At(k)
			require.NoError(t, err)
			require.InDeltaSlice(t, m.RawData(), got.RawData(), 1e-12)
		}
	}
	require.Equal(t, 2, r.Modes[0].Len())
	require.Equal(t, 1, r.Modes[1].Len(), "rank-one block keeps one mode")
}

func TestFunctionsBlock_Errors(t *testing.T) {
	lists, inners := blocks(t)

	_, err := pod.FunctionsBlock(nil, nil, pod.Same(1), pod.Same(0.0))
	require.ErrorIs(t, err, pod.ErrInvalidInput)

	_, err = pod.FunctionsBlock(lists, inners[:1], pod.Same(1), pod.Same(0.0))
	require.ErrorIs(t, err, pod.ErrBlockMismatch)

	_, err = pod.FunctionsBlock(lists, inners, pod.Each(1, 2, 3), pod.Same(0.0))
	require.ErrorIs(t, err, pod.ErrBlockMismatch)

	_, err = pod.FunctionsBlock(lists, inners, pod.Same(1), pod.Each(0.0))
	require.ErrorIs(t, err, pod.ErrBlockMismatch)

	// per-block failures carry the block's own sentinel
	_, err = pod.FunctionsBlock(lists, inners, pod.Each(1, -1), pod.Same(0.0))
	require.ErrorIs(t, err, pod.ErrInvalidInput)
	require.ErrorContains(t, err, "block 1")
}
