// SPDX-License-Identifier: MIT
package matrix_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/romkit/matrix"
	"github.com/stretchr/testify/require"
)

// TestWithEpsilon_PanicsOnInvalid ensures nonsensical tolerances are rejected eagerly.
func TestWithEpsilon_PanicsOnInvalid(t *testing.T) {
	require.Panics(t, func() { matrix.WithEpsilon(-1) })
	require.Panics(t, func() { matrix.WithEpsilon(math.NaN()) })
	require.Panics(t, func() { matrix.WithEpsilon(math.Inf(1)) })
	require.NotPanics(t, func() { matrix.WithEpsilon(0) })
}

// TestWithEpsilon_LastWins checks that later options override earlier ones.
func TestWithEpsilon_LastWins(t *testing.T) {
	a := MustVector(t, 1)
	b := MustVector(t, 1.5)

	ok, err := matrix.AllClose(a, b, matrix.WithEpsilon(1), matrix.WithEpsilon(0))
	require.NoError(t, err)
	require.False(t, ok)

	ok, err = matrix.AllClose(a, b, nil, matrix.WithEpsilon(0), matrix.WithEpsilon(1))
	require.NoError(t, err)
	require.True(t, ok)
}
