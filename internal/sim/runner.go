// Package sim drives a scene forward in fixed ticks, solving detections on
// each tick and handing them to the optional store and frame recorder.
package sim

import (
	"context"
	"fmt"
	"log"
	"sync/atomic"
	"time"

	"github.com/banshee-data/sensorsim/internal/playback"
	"github.com/banshee-data/sensorsim/internal/scene"
	"github.com/banshee-data/sensorsim/internal/solver"
	"github.com/banshee-data/sensorsim/internal/timeutil"
)

// DetectionStore persists the detections of a tick.
type DetectionStore interface {
	RecordDetections(ctx context.Context, runID string, tick int, simTime float64, ds []solver.Detection) error
}

// FrameWriter records one frame per tick.
type FrameWriter interface {
	Write(f *playback.Frame) error
}

// Options configures a Runner. Zero values disable the optional sinks.
type Options struct {
	Store  DetectionStore
	RunID  string
	Frames FrameWriter

	Clock        timeutil.Clock // defaults to the real clock
	TickInterval time.Duration  // simulated and wall time per tick
	Verbose      bool
}

// Runner advances a scene tick by tick.
type Runner struct {
	scene  *scene.Scene
	solver *solver.Solver
	opts   Options

	ticks      atomic.Int64
	detections atomic.Int64
}

// New returns a runner for sc.
func New(sc *scene.Scene, sv *solver.Solver, opts Options) *Runner {
	if opts.Clock == nil {
		opts.Clock = timeutil.RealClock{}
	}
	if opts.TickInterval <= 0 {
		opts.TickInterval = 50 * time.Millisecond
	}
	return &Runner{scene: sc, solver: sv, opts: opts}
}

// Ticks returns the number of completed steps. Safe to call while Run is
// in progress.
func (r *Runner) Ticks() int { return int(r.ticks.Load()) }

// Detections returns the total number of detections produced.
func (r *Runner) Detections() int { return int(r.detections.Load()) }

// Step advances the scene by dt, solves it and forwards the result to the
// configured sinks.
func (r *Runner) Step(ctx context.Context, dt time.Duration) ([]solver.Detection, error) {
	tick := r.Ticks()
	r.scene.Update(dt.Seconds())
	simTime := r.scene.Elapsed()

	ds := r.solver.SolveDetailed(r.scene)

	if r.opts.Store != nil {
		if err := r.opts.Store.RecordDetections(ctx, r.opts.RunID, tick, simTime, ds); err != nil {
			return ds, fmt.Errorf("tick %d: %w", tick, err)
		}
	}
	if r.opts.Frames != nil {
		if err := r.opts.Frames.Write(r.frame(tick, simTime, ds)); err != nil {
			return ds, fmt.Errorf("tick %d: %w", tick, err)
		}
	}

	r.ticks.Add(1)
	r.detections.Add(int64(len(ds)))
	if r.opts.Verbose {
		log.Printf("[sim] tick=%d t=%.3fs detections=%d", tick, simTime, len(ds))
	}
	return ds, nil
}

// frame packages a tick's detections with the platform's IMU reading.
func (r *Runner) frame(tick int, simTime float64, ds []solver.Detection) *playback.Frame {
	f := &playback.Frame{Index: tick, Timestamp: simTime}
	for _, d := range ds {
		f.Cloud.Add(d.Point)
	}
	if p := r.scene.Platform(); p != nil {
		f.LinearAcceleration = p.LinearAcceleration()
		f.AngularVelocity = p.AngularVelocity()
	}
	return f
}

// Run steps once per tick interval of the clock until ticks steps have
// completed (forever if ticks <= 0), a step fails, or ctx is done.
func (r *Runner) Run(ctx context.Context, ticks int) error {
	ticker := r.opts.Clock.NewTicker(r.opts.TickInterval)
	defer ticker.Stop()

	start := r.opts.Clock.Now()
	log.Printf("[sim] running scene %q every %v", r.scene.Name(), r.opts.TickInterval)

	for n := 0; ticks <= 0 || n < ticks; n++ {
		select {
		case <-ctx.Done():
			log.Printf("[sim] stopped after %d ticks: %v", r.Ticks(), ctx.Err())
			return ctx.Err()
		case <-ticker.C():
		}
		if _, err := r.Step(ctx, r.opts.TickInterval); err != nil {
			return err
		}
	}

	log.Printf("[sim] finished %d ticks, %d detections in %v", r.Ticks(), r.Detections(), r.opts.Clock.Since(start))
	return nil
}
