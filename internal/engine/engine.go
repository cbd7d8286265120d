// Package engine implements the pursuit simulation loop.
//
// The simulation advances in fixed timesteps from t = 0. Each step records
// both movers' positions and the remaining gap; the run ends on the row whose
// timestamp is clamped to the analytic catch time, so the final row always
// shows the movers coincident at the catch position.
package engine

import (
	"encoding/json"
	"fmt"

	"github.com/cxd309/zeno-engine/internal/kinematics"
)

// NewPursuit constructs a Pursuit from a SimulationInput, solving the catch
// up front. Invalid parameters or a non-positive timestep are rejected here,
// before the simulation exists; a missing timestep takes DefaultTimeStep.
func NewPursuit(input SimulationInput) (*Pursuit, error) {
	if input.Meta.TimeStep == 0 {
		input.Meta.TimeStep = DefaultTimeStep
	}
	if input.Meta.TimeStep < 0 {
		return nil, fmt.Errorf("time_step must be positive, got %g", input.Meta.TimeStep)
	}

	sol, err := kinematics.Solve(input.Params)
	if err != nil {
		return nil, fmt.Errorf("simulation %q: %w", input.Meta.SimulationID, err)
	}

	return &Pursuit{
		meta:     input.Meta,
		params:   input.Params,
		solution: sol,
		curTime:  0,
	}, nil
}

// Solution returns the analytic catch solution computed at construction.
func (p *Pursuit) Solution() kinematics.CatchSolution {
	return p.solution
}

// Run executes the full simulation and returns the log.
func (p *Pursuit) Run() SimulationLog {
	log := SimulationLog{Meta: p.meta, Solution: p.solution}
	for {
		log.Output = append(log.Output, p.step())
		if p.curTime >= p.solution.CatchTime {
			break
		}
		p.curTime += p.meta.TimeStep
		if p.curTime > p.solution.CatchTime {
			// Land the final row exactly on the catch instant.
			p.curTime = p.solution.CatchTime
		}
	}
	return log
}

// step records both movers' state at the current simulation time.
func (p *Pursuit) step() SimulationLogRow {
	fast, slow := kinematics.PositionAt(p.params, p.curTime)
	return SimulationLogRow{
		Timestamp: p.curTime,
		FastPos:   fast,
		SlowPos:   slow,
		Gap:       slow - fast,
	}
}

// RunJSON is the primary entry point for the CLI, WASM, and chart targets.
// It accepts a JSON-encoded SimulationInput, runs the simulation, and returns
// a JSON-encoded SimulationLog.
func RunJSON(jsonInput string) (string, error) {
	var input SimulationInput
	if err := json.Unmarshal([]byte(jsonInput), &input); err != nil {
		return "", fmt.Errorf("invalid input JSON: %w", err)
	}

	pursuit, err := NewPursuit(input)
	if err != nil {
		return "", err
	}

	out, err := json.Marshal(pursuit.Run())
	if err != nil {
		return "", fmt.Errorf("marshaling output: %w", err)
	}
	return string(out), nil
}
