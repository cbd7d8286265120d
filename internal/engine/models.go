package engine

import "github.com/cxd309/zeno-engine/internal/kinematics"

// DefaultTimeStep is the simulated time advanced per log row when the input
// does not specify one.
const DefaultTimeStep = 0.1 // seconds

// SimulationMeta holds the identity and timing parameters for a simulation run.
type SimulationMeta struct {
	SimulationID string  `json:"simulation_id"`
	TimeStep     float64 `json:"time_step"` // seconds
}

// SimulationInput is the JSON-serialisable input to the engine.
type SimulationInput struct {
	Meta   SimulationMeta    `json:"simulation_meta"`
	Params kinematics.Params `json:"pursuit_params"`
}

// SimulationLogRow is the state of both movers at a single simulation timestep.
type SimulationLogRow struct {
	Timestamp float64 `json:"timestamp"` // seconds
	FastPos   float64 `json:"fast_pos"`  // units
	SlowPos   float64 `json:"slow_pos"`  // units
	Gap       float64 `json:"gap"`       // units; slow_pos − fast_pos
}

// SimulationLog is the complete output of a simulation run.
type SimulationLog struct {
	Meta     SimulationMeta           `json:"simulation_meta"`
	Solution kinematics.CatchSolution `json:"catch_solution"`
	Output   []SimulationLogRow       `json:"output"`
}

// Pursuit simulation engine state.
type Pursuit struct {
	meta     SimulationMeta
	params   kinematics.Params
	solution kinematics.CatchSolution
	curTime  float64
}

// DefaultInput returns the canonical classroom pursuit: Achilles at 10 units/s
// chasing a tortoise at 1 unit/s with a 100-unit head start, logged every
// 0.1 s. The catch occurs at t = 100/9 ≈ 11.11 s, position ≈ 111.11.
func DefaultInput() SimulationInput {
	return SimulationInput{
		Meta: SimulationMeta{SimulationID: "achilles-tortoise", TimeStep: DefaultTimeStep},
		Params: kinematics.Params{
			FastSpeed: 10,
			SlowSpeed: 1,
			HeadStart: 100,
		},
	}
}
