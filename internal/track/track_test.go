package track

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cxd309/zeno-engine/internal/kinematics"
)

func TestNew(t *testing.T) {
	t.Parallel()

	trk, err := New(200)
	require.NoError(t, err)
	assert.Equal(t, 200.0, trk.Extent)

	_, err = New(0)
	assert.Error(t, err)

	_, err = New(-1)
	assert.Error(t, err)
}

func TestFraction(t *testing.T) {
	t.Parallel()

	trk, err := New(200)
	require.NoError(t, err)

	assert.Equal(t, 0.0, trk.Fraction(0))
	assert.Equal(t, 0.5, trk.Fraction(100))
	assert.Equal(t, 1.0, trk.Fraction(200))
	// Deliberately unclamped beyond the extent.
	assert.Equal(t, 1.5, trk.Fraction(300))

	assert.Equal(t, 1.0, trk.ClampFraction(300))
	assert.Equal(t, 0.0, trk.ClampFraction(-10))
}

func TestCell(t *testing.T) {
	t.Parallel()

	trk, err := New(100)
	require.NoError(t, err)

	assert.Equal(t, 0, trk.Cell(0, 80))
	assert.Equal(t, 79, trk.Cell(100, 80))
	assert.Equal(t, 79, trk.Cell(150, 80), "clamped to the last column")
	assert.Equal(t, 40, trk.Cell(50, 81), "midpoint of an odd width")
	assert.Equal(t, 0, trk.Cell(50, 0), "degenerate width collapses to column 0")
}

func TestForSolution(t *testing.T) {
	t.Parallel()

	t.Run("margin places the catch point inside the view", func(t *testing.T) {
		t.Parallel()
		sol := kinematics.CatchSolution{CatchTime: 10, CatchPosition: 100}
		trk := ForSolution(sol, 0.1)
		assert.InDelta(t, 110, trk.Extent, 1e-9)
		assert.InDelta(t, 1.0/1.1, trk.Fraction(sol.CatchPosition), 1e-9)
	})

	t.Run("zero margin puts the catch point at the right end", func(t *testing.T) {
		t.Parallel()
		trk := ForSolution(kinematics.CatchSolution{CatchPosition: 100}, 0)
		assert.Equal(t, 100.0, trk.Extent)
	})

	t.Run("degenerate solution falls back to a unit extent", func(t *testing.T) {
		t.Parallel()
		trk := ForSolution(kinematics.CatchSolution{}, 0.1)
		assert.Equal(t, 1.0, trk.Extent)
	})
}
