// Package solver picks one representative detection point for every
// transmitter/receiver pair in a scene.
package solver

import (
	"log"

	"github.com/banshee-data/sensorsim/internal/device"
	"github.com/banshee-data/sensorsim/internal/geom"
	"github.com/banshee-data/sensorsim/internal/scene"
)

// Detection is the point chosen for one transmitter/receiver pair.
type Detection struct {
	Transmitter string
	Receiver    string
	Point       geom.Point
	// PathLength is |point-tx| + |point-rx| in metres.
	PathLength float64
}

// Solver intersects device cones over a scene's merged surface cloud. The
// zero value is ready to use.
type Solver struct {
	solves  uint64
	verbose bool
}

// New returns a solver.
func New() *Solver { return &Solver{} }

// SetVerbose enables a one-line log summary per Solve call.
func (s *Solver) SetVerbose(v bool) { s.verbose = v }

// Solves returns how many detections have been emitted over the solver's
// lifetime. It only ever grows.
func (s *Solver) Solves() uint64 { return s.solves }

// Solve returns one point per transmitter/receiver pair whose cones share at
// least one surface point, in transmitter-major order.
func (s *Solver) Solve(sc *scene.Scene) geom.PointCloud {
	var out geom.PointCloud
	for _, d := range s.SolveDetailed(sc) {
		out.Add(d.Point)
	}
	return out
}

// SolveDetailed is Solve with the pair names and path length kept.
func (s *Solver) SolveDetailed(sc *scene.Scene) []Detection {
	all := sc.MergedPointCloud()
	txs, rxs := sc.Transmitters(), sc.Receivers()

	var detections []Detection
	for _, tx := range txs {
		inTx := tx.PointsInFOV(all)
		if inTx.Empty() {
			continue
		}
		for _, rx := range rxs {
			inBoth := rx.PointsInFOV(inTx)
			if inBoth.Empty() {
				continue
			}
			detections = append(detections, closest(tx, rx, inBoth))
			s.solves++
		}
	}

	if s.verbose {
		log.Printf("[solver] scene=%q points=%d tx=%d rx=%d detections=%d total=%d",
			sc.Name(), all.Len(), len(txs), len(rxs), len(detections), s.solves)
	}
	return detections
}

// closest returns the point with the shortest tx→point→rx path. Ties keep
// the earliest point. cloud must not be empty.
func closest(tx, rx *device.Device, cloud geom.PointCloud) Detection {
	txPos, rxPos := tx.Position(), rx.Position()
	pathLength := func(p geom.Point) float64 { return p.DistanceTo(txPos) + p.DistanceTo(rxPos) }

	first := cloud.At(0)
	best := Detection{Transmitter: tx.Name(), Receiver: rx.Name(), Point: first, PathLength: pathLength(first)}
	for _, p := range cloud.Points()[1:] {
		if d := pathLength(p); d < best.PathLength {
			best.Point = p
			best.PathLength = d
		}
	}
	return best
}
