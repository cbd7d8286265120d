// Command tui animates the pursuit live in the terminal. An optional file
// argument supplies a SimulationInput JSON; without it the canonical
// Achilles-and-tortoise parameters are used.
//
// Keys: Space or Enter starts a run, r resets, q/Escape/Ctrl-C quits.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/gdamore/tcell/v2"

	"github.com/cxd309/zeno-engine/internal/driver"
	"github.com/cxd309/zeno-engine/internal/engine"
	"github.com/cxd309/zeno-engine/internal/render"
	"github.com/cxd309/zeno-engine/internal/track"
)

func main() {
	input := engine.DefaultInput()
	if len(os.Args) > 1 {
		data, err := os.ReadFile(os.Args[1])
		if err != nil {
			fatal("reading input: %v", err)
		}
		if err := json.Unmarshal(data, &input); err != nil {
			fatal("parsing input: %v", err)
		}
	}

	d, err := driver.New(driver.Config{
		Params:   input.Params,
		TimeStep: input.Meta.TimeStep,
	})
	if err != nil {
		fatal("%v", err)
	}
	defer d.Close()

	screen, err := tcell.NewScreen()
	if err != nil {
		fatal("creating screen: %v", err)
	}
	if err := screen.Init(); err != nil {
		fatal("initialising screen: %v", err)
	}
	defer screen.Fini()

	// Size the track so the catch point sits visibly inside the view.
	trk := track.ForSolution(d.Solution(), 0.1)

	eventChan := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return // screen finalised
			}
			eventChan <- ev
		}
	}()

	render.Frame(screen, d.Snapshot(), d.Solution(), trk)

	for {
		select {
		case snap := <-d.Updates():
			render.Frame(screen, snap, d.Solution(), trk)

		case ev := <-eventChan:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				switch {
				case ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC:
					return
				case ev.Key() == tcell.KeyEnter:
					d.Start()
				case ev.Key() == tcell.KeyRune && ev.Rune() == ' ':
					d.Start()
				case ev.Key() == tcell.KeyRune && ev.Rune() == 'r':
					d.Reset()
				case ev.Key() == tcell.KeyRune && ev.Rune() == 'q':
					return
				}

			case *tcell.EventResize:
				screen.Sync()
				render.Frame(screen, d.Snapshot(), d.Solution(), trk)
			}
		}
	}
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
