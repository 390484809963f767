// Package scheduler decouples the variable render frame rate from fixed
// simulation stepping. Each frame's elapsed time is accumulated and drained
// in whole steps of 1/TickRate seconds, bounded by a per-frame step cap.
package scheduler

import (
	"time"

	"github.com/vovakirdan/arena/internal/core"
)

// Stepper advances the simulation by exactly one fixed step.
type Stepper interface {
	Step(dt float64, in *core.InputFrame)
}

// StepFunc adapts a plain function to the Stepper interface.
type StepFunc func(dt float64, in *core.InputFrame)

// Step calls f(dt, in).
func (f StepFunc) Step(dt float64, in *core.InputFrame) { f(dt, in) }

// Config controls step size and catch-up limits.
type Config struct {
	TickRate     int           // steps per simulated second
	MaxSteps     int           // steps allowed per frame before pending time is discarded
	MaxFrameTime time.Duration // frame times above this are clamped
}

// DefaultConfig returns 60 Hz stepping, at most 5 steps per frame, 250ms frame clamp.
func DefaultConfig() Config {
	return Config{
		TickRate:     60,
		MaxSteps:     5,
		MaxFrameTime: 250 * time.Millisecond,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.TickRate <= 0 {
		c.TickRate = d.TickRate
	}
	if c.MaxSteps <= 0 {
		c.MaxSteps = d.MaxSteps
	}
	if c.MaxFrameTime <= 0 {
		c.MaxFrameTime = d.MaxFrameTime
	}
	return c
}

// FrameResult reports what one Frame call did.
type FrameResult struct {
	Steps   int           // fixed steps executed
	Dropped time.Duration // whole steps discarded past the cap
	Alpha   float64       // leftover fraction of a step, in [0, 1)
}

// Stats are running totals since the scheduler was created.
type Stats struct {
	Frames       int64
	Steps        int64
	DroppedSteps int64
	SimTime      time.Duration
}

// Scheduler owns the accumulator. It is not safe for concurrent use; the
// platform loop is the only caller.
type Scheduler struct {
	cfg     Config
	stepper Stepper
	step    time.Duration
	acc     time.Duration
	stats   Stats
	idle    core.InputFrame // stands in for a nil frame
}

// New creates a scheduler driving stepper.
func New(cfg Config, stepper Stepper) *Scheduler {
	cfg = cfg.withDefaults()
	step := time.Second / time.Duration(cfg.TickRate)
	if step <= 0 {
		step = 1
	}
	return &Scheduler{
		cfg:     cfg,
		stepper: stepper,
		step:    step,
		idle:    core.NewInputFrame(),
	}
}

// Dt returns the fixed step in seconds.
func (s *Scheduler) Dt() float64 {
	return s.step.Seconds()
}

// StepDuration returns the fixed step as a duration.
func (s *Scheduler) StepDuration() time.Duration {
	return s.step
}

// Frame accumulates elapsed and runs as many whole steps as it covers, up to
// MaxSteps. Every step sees the same input frame; edge fields are cleared once
// after the loop, and only if a step actually consumed them. A nil in steps
// with an empty frame.
func (s *Scheduler) Frame(elapsed time.Duration, in *core.InputFrame) FrameResult {
	if in == nil {
		in = &s.idle
	}
	if elapsed < 0 {
		elapsed = 0
	}
	if elapsed > s.cfg.MaxFrameTime {
		elapsed = s.cfg.MaxFrameTime
	}
	s.acc += elapsed
	s.stats.Frames++

	var res FrameResult
	dt := s.Dt()
	for s.acc >= s.step && res.Steps < s.cfg.MaxSteps {
		s.stepper.Step(dt, in)
		s.acc -= s.step
		res.Steps++
	}

	if s.acc >= s.step {
		pending := s.acc / s.step
		res.Dropped = pending * s.step
		s.acc -= res.Dropped
		s.stats.DroppedSteps += int64(pending)
	}

	if res.Steps > 0 {
		in.ClearEdges()
	}

	s.stats.Steps += int64(res.Steps)
	s.stats.SimTime += time.Duration(res.Steps) * s.step
	res.Alpha = float64(s.acc) / float64(s.step)
	return res
}

// Pending returns the time waiting in the accumulator.
func (s *Scheduler) Pending() time.Duration {
	return s.acc
}

// Stats returns running totals.
func (s *Scheduler) Stats() Stats {
	return s.stats
}

// Reset empties the accumulator without touching totals.
func (s *Scheduler) Reset() {
	s.acc = 0
}
