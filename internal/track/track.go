// Package track maps logical pursuit positions onto a bounded rendering
// coordinate space. It is a pure coordinate transform with no knowledge of
// the simulation that produces the positions.
package track

import (
	"fmt"
	"math"

	"github.com/cxd309/zeno-engine/internal/kinematics"
)

// Track is a straight, finite track of a fixed logical extent. Position 0 is
// the left end; Extent is the right end.
type Track struct {
	Extent float64 `json:"extent"` // units
}

// New builds a Track. The extent must be positive: a zero-length track has no
// coordinate space to map onto.
func New(extent float64) (Track, error) {
	if extent <= 0 {
		return Track{}, fmt.Errorf("track extent must be positive, got %g", extent)
	}
	return Track{Extent: extent}, nil
}

// ForSolution returns a Track sized so the catch point sits at 1/(1+margin)
// of the extent, leaving visible room beyond it. margin values ≤ 0 place the
// catch point exactly at the right end. A degenerate zero catch position
// falls back to a unit extent so callers always get a usable track.
func ForSolution(sol kinematics.CatchSolution, margin float64) Track {
	extent := sol.CatchPosition
	if margin > 0 {
		extent *= 1 + margin
	}
	if extent <= 0 {
		extent = 1
	}
	return Track{Extent: extent}
}

// Fraction maps a logical position to its fraction of the track extent.
// The result is deliberately unclamped: positions beyond the extent map
// beyond 1, and callers that need on-screen coordinates use ClampFraction.
func (t Track) Fraction(position float64) float64 {
	return position / t.Extent
}

// ClampFraction is Fraction restricted to [0, 1].
func (t Track) ClampFraction(position float64) float64 {
	return math.Min(1, math.Max(0, t.Fraction(position)))
}

// Cell maps a logical position to a column index in [0, width−1] for
// character-cell renderers. Width values below 1 collapse to column 0.
func (t Track) Cell(position float64, width int) int {
	if width < 1 {
		return 0
	}
	return int(math.Round(t.ClampFraction(position) * float64(width-1)))
}
