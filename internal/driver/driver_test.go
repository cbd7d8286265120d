package driver

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cxd309/zeno-engine/internal/kinematics"
)

var testParams = kinematics.Params{FastSpeed: 10, SlowSpeed: 1, HeadStart: 100}

// frozenDriver returns a Driver whose ticker is so slow that no tick fires
// during a test, making state transitions fully deterministic.
func frozenDriver(t *testing.T) *Driver {
	t.Helper()
	d, err := New(Config{Params: testParams, TickInterval: time.Hour})
	require.NoError(t, err)
	t.Cleanup(d.Close)
	return d
}

// awaitTerminal consumes updates until the driver reports it has gone Idle at
// the horizon.
func awaitTerminal(t *testing.T, d *Driver) Snapshot {
	t.Helper()
	deadline := time.After(5 * time.Second)
	for {
		select {
		case snap := <-d.Updates():
			if !snap.Running {
				return snap
			}
		case <-deadline:
			t.Fatal("driver did not reach the horizon in time")
		}
	}
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("rejects invalid parameters", func(t *testing.T) {
		t.Parallel()
		_, err := New(Config{Params: kinematics.Params{FastSpeed: 1, SlowSpeed: 2}})
		assert.Error(t, err)
	})

	t.Run("rejects a negative timestep", func(t *testing.T) {
		t.Parallel()
		_, err := New(Config{Params: testParams, TimeStep: -1})
		assert.Error(t, err)
	})

	t.Run("starts Idle at the start configuration", func(t *testing.T) {
		t.Parallel()
		d := frozenDriver(t)
		assert.Equal(t, Snapshot{Elapsed: 0, FastPos: 0, SlowPos: 100, Running: false}, d.Snapshot())
		assert.InDelta(t, 100.0/9.0, d.Solution().CatchTime, 1e-9)
	})
}

func TestStartIdempotentWhileRunning(t *testing.T) {
	t.Parallel()

	d := frozenDriver(t)
	d.Start()
	before := d.Snapshot()
	require.True(t, before.Running)

	d.Start()
	assert.Equal(t, before, d.Snapshot(), "Start while Running must leave the state unchanged")
}

func TestRunToHorizon(t *testing.T) {
	t.Parallel()

	d, err := New(Config{Params: testParams, TimeStep: 0.5, TickInterval: time.Millisecond})
	require.NoError(t, err)
	defer d.Close()

	d.Start()
	terminal := awaitTerminal(t, d)

	sol := d.Solution()
	assert.InDelta(t, sol.CatchTime, terminal.Elapsed, 1e-9, "elapsed clamps to the catch time")
	assert.InDelta(t, sol.CatchPosition, terminal.FastPos, 1e-9)
	assert.InDelta(t, terminal.FastPos, terminal.SlowPos, 1e-9, "movers coincide at the catch point")

	// The ticker is released at the horizon: no further state changes and no
	// further publications.
	select {
	case snap := <-d.Updates():
		t.Fatalf("unexpected update after the horizon: %+v", snap)
	case <-time.After(50 * time.Millisecond):
	}
	assert.Equal(t, terminal, d.Snapshot())
}

func TestReset(t *testing.T) {
	t.Parallel()

	idle := Snapshot{Elapsed: 0, FastPos: 0, SlowPos: 100, Running: false}

	t.Run("from Idle", func(t *testing.T) {
		t.Parallel()
		d := frozenDriver(t)
		d.Reset()
		assert.Equal(t, idle, d.Snapshot())
	})

	t.Run("mid-run cancels pending ticks", func(t *testing.T) {
		t.Parallel()
		d, err := New(Config{Params: testParams, TimeStep: 0.01, TickInterval: time.Millisecond})
		require.NoError(t, err)
		defer d.Close()

		d.Start()
		// Let a few ticks land before pulling the plug.
		for i := 0; i < 3; i++ {
			select {
			case <-d.Updates():
			case <-time.After(time.Second):
				t.Fatal("no tick arrived")
			}
		}

		d.Reset()
		assert.Equal(t, idle, d.Snapshot())

		// Whatever still arrives is the Idle publication, never a stale
		// running frame.
		timeout := time.After(50 * time.Millisecond)
		for {
			select {
			case snap := <-d.Updates():
				assert.Equal(t, idle, snap)
			case <-timeout:
				assert.Equal(t, idle, d.Snapshot())
				return
			}
		}
	})

	t.Run("restart after reset reaches the horizon again", func(t *testing.T) {
		t.Parallel()
		d, err := New(Config{Params: testParams, TimeStep: 1.0, TickInterval: time.Millisecond})
		require.NoError(t, err)
		defer d.Close()

		d.Start()
		awaitTerminal(t, d)
		d.Reset()
		d.Start()
		terminal := awaitTerminal(t, d)
		assert.InDelta(t, d.Solution().CatchTime, terminal.Elapsed, 1e-9)
	})
}

func TestRestartCancelsStaleLoop(t *testing.T) {
	t.Parallel()

	d := frozenDriver(t)
	d.Start()
	d.mu.Lock()
	stale := d.stop
	d.mu.Unlock()

	// Back-to-back Reset and Start: the first loop is cancelled but may still
	// hold one pending tick when the new run is already live.
	d.Reset()
	d.Start()
	before := d.Snapshot()
	require.True(t, before.Running)

	// The cancelled loop's tick must report done without touching the new run.
	assert.True(t, d.tick(stale))
	assert.Equal(t, before, d.Snapshot())

	// The current loop still advances, exactly one timestep at a time.
	d.mu.Lock()
	cur := d.stop
	d.mu.Unlock()
	assert.False(t, d.tick(cur))
	assert.InDelta(t, before.Elapsed+DefaultTimeStep, d.Snapshot().Elapsed, 1e-9)
}

func TestBackToBackResetStart(t *testing.T) {
	t.Parallel()

	d, err := New(Config{Params: testParams, TimeStep: 0.5, TickInterval: time.Millisecond})
	require.NoError(t, err)
	defer d.Close()

	for i := 0; i < 50; i++ {
		d.Reset()
		d.Start()
	}

	// Only the last run survives; it must tick at the fixed cadence to the
	// exact horizon, never past it. Reset publications (Idle at elapsed 0)
	// may still be in flight, so the terminal snapshot is the non-running
	// one at a positive elapsed.
	sol := d.Solution()
	deadline := time.After(5 * time.Second)
	for {
		select {
		case snap := <-d.Updates():
			assert.LessOrEqual(t, snap.Elapsed, sol.CatchTime+1e-9)
			if !snap.Running && snap.Elapsed > 0 {
				assert.InDelta(t, sol.CatchTime, snap.Elapsed, 1e-9)
				return
			}
		case <-deadline:
			t.Fatal("driver did not reach the horizon after restart churn")
		}
	}
}

func TestZeroHeadStart(t *testing.T) {
	t.Parallel()

	d, err := New(Config{
		Params:       kinematics.Params{FastSpeed: 10, SlowSpeed: 1, HeadStart: 0},
		TickInterval: time.Millisecond,
	})
	require.NoError(t, err)
	defer d.Close()

	d.Start()
	terminal := awaitTerminal(t, d)
	assert.Zero(t, terminal.Elapsed)
	assert.Zero(t, terminal.FastPos)
	assert.Zero(t, terminal.SlowPos)
}

func TestClose(t *testing.T) {
	t.Parallel()

	d, err := New(Config{Params: testParams, TimeStep: 0.01, TickInterval: time.Millisecond})
	require.NoError(t, err)

	d.Start()
	d.Close() // must not hang, and must strand no timer

	snap := d.Snapshot()
	assert.False(t, snap.Running)
	assert.Zero(t, snap.Elapsed)
}
