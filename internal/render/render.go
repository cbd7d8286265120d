// Package render draws the pursuit onto a tcell screen: a bounded track with
// both mover markers, the catch point, a gap bar, and a numeric readout. It
// holds no simulation state; every frame is a pure function of the snapshot
// it is handed.
package render

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/cxd309/zeno-engine/internal/driver"
	"github.com/cxd309/zeno-engine/internal/kinematics"
	"github.com/cxd309/zeno-engine/internal/track"
)

const (
	sideMargin = 2
	minWidth   = 20
	minHeight  = 10
)

var (
	styleDefault = tcell.StyleDefault
	styleDim     = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleFast    = tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
	styleSlow    = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleCatch   = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	styleTitle   = tcell.StyleDefault.Bold(true)
)

// Frame draws one complete frame and flips it to the screen.
func Frame(s tcell.Screen, snap driver.Snapshot, sol kinematics.CatchSolution, trk track.Track) {
	s.Clear()
	w, h := s.Size()

	if w < minWidth || h < minHeight {
		drawText(s, 0, 0, styleDefault, "window too small")
		s.Show()
		return
	}

	drawText(s, sideMargin, 0, styleTitle, "Achilles and the Tortoise")
	fillRow(s, 1, w, '─', styleDim)

	gap := snap.SlowPos - snap.FastPos
	status := "idle"
	if snap.Running {
		status = "running"
	}
	drawText(s, sideMargin, 3, styleDefault,
		fmt.Sprintf("t = %6.2f s   achilles = %8.2f   tortoise = %8.2f   gap = %7.2f", snap.Elapsed, snap.FastPos, snap.SlowPos, gap))
	drawText(s, sideMargin, 4, styleDim,
		fmt.Sprintf("catch at t = %.2f s, position = %.2f   [%s]", sol.CatchTime, sol.CatchPosition, status))

	trackY := 6
	innerW := w - 2*sideMargin
	fillRow(s, trackY, w, '─', styleDim)

	catchX := sideMargin + trk.Cell(sol.CatchPosition, innerW)
	slowX := sideMargin + trk.Cell(snap.SlowPos, innerW)
	fastX := sideMargin + trk.Cell(snap.FastPos, innerW)

	// Draw order matters on coincident cells: the catch marker loses to the
	// movers, and at the catch instant both movers share one cell.
	s.SetContent(catchX, trackY, '◆', nil, styleCatch)
	s.SetContent(slowX, trackY, 'T', nil, styleSlow)
	s.SetContent(fastX, trackY, 'A', nil, styleFast)

	// Gap bar: the stretch of track Achilles has yet to cover.
	if slowX > fastX+1 {
		for x := fastX + 1; x < slowX; x++ {
			s.SetContent(x, trackY+1, '·', nil, styleDim)
		}
	}

	drawText(s, sideMargin, h-1, styleDim, "space/enter start · r reset · q quit")
	s.Show()
}

func drawText(s tcell.Screen, x, y int, style tcell.Style, text string) {
	for i, r := range []rune(text) {
		s.SetContent(x+i, y, r, nil, style)
	}
}

func fillRow(s tcell.Screen, y, w int, r rune, style tcell.Style) {
	for x := sideMargin; x < w-sideMargin; x++ {
		s.SetContent(x, y, r, nil, style)
	}
}
