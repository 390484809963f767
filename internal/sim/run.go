package sim

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/vovakirdan/arena/internal/core"
	"github.com/vovakirdan/arena/internal/scheduler"
)

// RunOptions controls a headless run.
type RunOptions struct {
	Duration  time.Duration // simulated time to run
	RenderFPS float64       // synthetic frame rate
	Jitter    float64       // each frame time varies by up to this fraction
	Seed      int64         // seeds the frame-time jitter
}

// RunResult summarizes a headless run.
type RunResult struct {
	Stats     Stats
	Scheduler scheduler.Stats
	Wave      int
}

// Run drives s through the scheduler with synthetic frame times and input
// from ap until opts.Duration of simulated time has passed or ctx is done.
func Run(ctx context.Context, s *Session, ap *Autopilot, opts RunOptions) (RunResult, error) {
	if opts.RenderFPS <= 0 {
		return RunResult{}, fmt.Errorf("sim: render fps must be positive, got %g", opts.RenderFPS)
	}
	rng := rand.New(rand.NewSource(opts.Seed))
	sched := scheduler.New(s.Config().SchedulerConfig(), scheduler.StepFunc(func(dt float64, in *core.InputFrame) {
		s.Step(dt, in)
	}))

	frame := float64(time.Second) / opts.RenderFPS
	in := core.NewInputFrame()
	for sched.Stats().SimTime < opts.Duration {
		select {
		case <-ctx.Done():
			return result(s, sched), ctx.Err()
		default:
		}

		elapsed := frame
		if opts.Jitter > 0 {
			elapsed *= 1 + opts.Jitter*(2*rng.Float64()-1)
		}
		ap.Frame(s, &in)
		sched.Frame(time.Duration(elapsed), &in)
	}

	res := result(s, sched)
	s.logger.Info("run complete",
		"sim", res.Scheduler.SimTime,
		"frames", res.Scheduler.Frames,
		"steps", res.Scheduler.Steps,
		"dropped_steps", res.Scheduler.DroppedSteps,
		"kills", res.Stats.Kills,
		"deaths", res.Stats.Deaths,
		"waves", res.Wave,
	)
	return res, nil
}

func result(s *Session, sched *scheduler.Scheduler) RunResult {
	return RunResult{Stats: s.Stats(), Scheduler: sched.Stats(), Wave: s.AI().Wave()}
}
