// Package kinematics implements the closed-form pursuit model: a fast mover
// chasing a slow mover that starts with a head start, both at constant speed.
//
// The package is stateless. It maps parameters (and an elapsed time) to
// positions; deciding when to stop advancing time is the caller's concern.
// All distances are in the same logical unit, speeds in units per second,
// and time in seconds.
package kinematics

import (
	"fmt"
	"math"
)

// Params holds the fixed inputs to a pursuit. They are set once at
// configuration time and never change during a run.
type Params struct {
	FastSpeed float64 `json:"fast_speed"` // pursuer speed, units/s; must exceed SlowSpeed
	SlowSpeed float64 `json:"slow_speed"` // quarry speed, units/s; ≥ 0
	HeadStart float64 `json:"head_start"` // quarry's initial lead, units; ≥ 0
}

// Validate reports whether p describes a pursuit with a finite catch time.
// A FastSpeed not strictly greater than SlowSpeed has no solution (the gap
// never closes), so it is rejected here, before any simulation exists.
func (p Params) Validate() error {
	// NaN compares false against everything, so it would slip through the
	// ordering checks below and poison the catch time.
	if !isFinite(p.FastSpeed) || !isFinite(p.SlowSpeed) || !isFinite(p.HeadStart) {
		return fmt.Errorf("parameters must be finite, got fast_speed=%g slow_speed=%g head_start=%g",
			p.FastSpeed, p.SlowSpeed, p.HeadStart)
	}
	if p.FastSpeed <= 0 {
		return fmt.Errorf("fast_speed must be positive, got %g", p.FastSpeed)
	}
	if p.SlowSpeed < 0 {
		return fmt.Errorf("slow_speed must be non-negative, got %g", p.SlowSpeed)
	}
	if p.HeadStart < 0 {
		return fmt.Errorf("head_start must be non-negative, got %g", p.HeadStart)
	}
	if p.FastSpeed <= p.SlowSpeed {
		return fmt.Errorf("fast_speed (%g) must exceed slow_speed (%g): no finite catch time exists", p.FastSpeed, p.SlowSpeed)
	}
	return nil
}

// isFinite reports whether f is neither NaN nor an infinity.
func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// CatchSolution is the analytic answer to a pursuit: the instant the pursuer
// draws level and the track position where it happens.
type CatchSolution struct {
	CatchTime     float64 `json:"catch_time"`     // seconds
	CatchPosition float64 `json:"catch_position"` // units
}

// Solve returns the unique catch solution for p:
//
//	catchTime     = headStart / (fastSpeed − slowSpeed)
//	catchPosition = fastSpeed × catchTime
//
// A zero head start yields a zero catch time with the movers already
// coincident. Solve fails if and only if p.Validate fails.
func Solve(p Params) (CatchSolution, error) {
	if err := p.Validate(); err != nil {
		return CatchSolution{}, fmt.Errorf("solving catch: %w", err)
	}
	t := p.HeadStart / (p.FastSpeed - p.SlowSpeed)
	return CatchSolution{CatchTime: t, CatchPosition: p.FastSpeed * t}, nil
}

// PositionAt returns both movers' positions after elapsed seconds:
// fastPos = fastSpeed × elapsed, slowPos = headStart + slowSpeed × elapsed.
// It is total for all elapsed ≥ 0 and applies the formulas unboundedly past
// the catch time; the caller decides when to stop advancing elapsed.
func PositionAt(p Params, elapsed float64) (fastPos, slowPos float64) {
	return p.FastSpeed * elapsed, p.HeadStart + p.SlowSpeed*elapsed
}

// Gap returns the remaining distance between the movers after elapsed
// seconds. It is positive before the catch time, zero at it, and negative
// past it.
func Gap(p Params, elapsed float64) float64 {
	fast, slow := PositionAt(p, elapsed)
	return slow - fast
}
