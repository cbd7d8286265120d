// Package driver owns simulated time for a live pursuit animation.
//
// A Driver is a two-state machine. Idle: not ticking, elapsed zero, movers at
// the start configuration. Running: a single tick goroutine advances elapsed
// on a fixed cadence, recomputes positions through the kinematics model, and
// publishes an immutable Snapshot after every tick. When elapsed reaches the
// catch time it is clamped there, the ticker is released, and the Driver is
// Idle again. The Driver is the sole mutator of its state; frontends only
// read snapshots.
package driver

import (
	"fmt"
	"sync"
	"time"

	"github.com/cxd309/zeno-engine/internal/kinematics"
)

const (
	// DefaultTimeStep is the simulated time advanced per tick.
	DefaultTimeStep = 0.1 // seconds

	// DefaultTickInterval is the wall-clock pause between ticks, chosen so the
	// canonical classroom pursuit plays out in a few seconds.
	DefaultTickInterval = 50 * time.Millisecond
)

// Config holds the fixed inputs to a Driver. Zero TimeStep and TickInterval
// take the package defaults.
type Config struct {
	Params       kinematics.Params
	TimeStep     float64       // simulated seconds per tick
	TickInterval time.Duration // wall-clock time between ticks
}

// Snapshot is the per-tick publication: the full simulation state at one
// instant. Snapshots are values; mutating one cannot affect the Driver.
type Snapshot struct {
	Elapsed float64 `json:"elapsed"`  // simulated seconds
	FastPos float64 `json:"fast_pos"` // units
	SlowPos float64 `json:"slow_pos"` // units
	Running bool    `json:"running"`
}

// Driver advances a pursuit on a fixed tick and broadcasts state snapshots.
type Driver struct {
	params   kinematics.Params
	solution kinematics.CatchSolution
	timeStep float64
	interval time.Duration

	mu    sync.Mutex
	state Snapshot
	stop  chan struct{} // non-nil only while a tick loop may still be live
	wg    sync.WaitGroup

	updates chan Snapshot
}

// New builds an Idle Driver, solving the catch up front. Invalid parameters
// are rejected here, never mid-run.
func New(cfg Config) (*Driver, error) {
	if cfg.TimeStep == 0 {
		cfg.TimeStep = DefaultTimeStep
	}
	if cfg.TimeStep < 0 {
		return nil, fmt.Errorf("time step must be positive, got %g", cfg.TimeStep)
	}
	if cfg.TickInterval == 0 {
		cfg.TickInterval = DefaultTickInterval
	}
	if cfg.TickInterval < 0 {
		return nil, fmt.Errorf("tick interval must be positive, got %s", cfg.TickInterval)
	}

	sol, err := kinematics.Solve(cfg.Params)
	if err != nil {
		return nil, fmt.Errorf("configuring driver: %w", err)
	}

	d := &Driver{
		params:   cfg.Params,
		solution: sol,
		timeStep: cfg.TimeStep,
		interval: cfg.TickInterval,
		updates:  make(chan Snapshot, 1),
	}
	d.state = d.startConfiguration()
	return d, nil
}

// Params returns the immutable simulation parameters.
func (d *Driver) Params() kinematics.Params { return d.params }

// Solution returns the catch solution cached at construction.
func (d *Driver) Solution() kinematics.CatchSolution { return d.solution }

// Snapshot returns the current simulation state.
func (d *Driver) Snapshot() Snapshot {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

// Updates returns the snapshot broadcast channel. It carries the latest
// snapshot only: a consumer that falls behind skips intermediate states
// rather than draining a backlog, and always observes the terminal one.
func (d *Driver) Updates() <-chan Snapshot { return d.updates }

// Start transitions Idle → Running: elapsed and positions return to the start
// configuration and the tick loop launches. While already Running it is a
// no-op and the state is left untouched.
func (d *Driver) Start() {
	d.mu.Lock()
	if d.state.Running {
		d.mu.Unlock()
		return
	}
	d.state = d.startConfiguration()
	d.state.Running = true
	stop := make(chan struct{})
	d.stop = stop
	d.publish(d.state)
	d.mu.Unlock()

	d.wg.Add(1)
	go d.run(stop)
}

// Reset returns to Idle from any state: any pending tick is cancelled and the
// start configuration is restored and published.
func (d *Driver) Reset() {
	d.mu.Lock()
	if d.stop != nil {
		close(d.stop)
		d.stop = nil
	}
	d.state = d.startConfiguration()
	d.publish(d.state)
	d.mu.Unlock()
}

// Close tears the Driver down: Reset plus waiting for the tick goroutine to
// exit, so no timer outlives the owner.
func (d *Driver) Close() {
	d.Reset()
	d.wg.Wait()
}

// startConfiguration is the Idle state: elapsed zero, pursuer at the origin,
// quarry at its head start.
func (d *Driver) startConfiguration() Snapshot {
	return Snapshot{Elapsed: 0, FastPos: 0, SlowPos: d.params.HeadStart, Running: false}
}

// run is the tick loop. It exits when cancelled via stop or when a tick
// reports the horizon reached; both paths release the ticker.
func (d *Driver) run(stop chan struct{}) {
	defer d.wg.Done()

	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if d.tick(stop) {
				return
			}
		}
	}
}

// tick advances elapsed by one timestep and publishes the resulting snapshot.
// Reaching the catch time clamps elapsed to it and reports done, leaving the
// movers coincident in the final publication.
//
// stop is the calling loop's own cancellation channel. It doubles as a
// generation token: a loop whose channel is no longer d.stop has been
// cancelled, and its final pending tick must not touch the state — a Reset
// (and possibly a new Start) won the race, and only the current loop may
// advance the current run.
func (d *Driver) tick(stop chan struct{}) (done bool) {
	d.mu.Lock()
	if d.stop != stop {
		d.mu.Unlock()
		return true
	}
	elapsed := d.state.Elapsed + d.timeStep
	done = elapsed >= d.solution.CatchTime
	if done {
		elapsed = d.solution.CatchTime
		d.stop = nil // the loop exits on its own; nothing left to cancel
	}
	fast, slow := kinematics.PositionAt(d.params, elapsed)
	d.state = Snapshot{Elapsed: elapsed, FastPos: fast, SlowPos: slow, Running: !done}
	d.publish(d.state)
	d.mu.Unlock()
	return done
}

// publish offers snap on the updates channel, displacing an unconsumed older
// snapshot rather than blocking the tick loop. It never blocks, so it is safe
// to call with the state mutex held; holding it keeps the publication order
// identical to the mutation order.
func (d *Driver) publish(snap Snapshot) {
	select {
	case d.updates <- snap:
	default:
		select {
		case <-d.updates:
		default:
		}
		select {
		case d.updates <- snap:
		default:
		}
	}
}
