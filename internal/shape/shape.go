// Package shape provides static scene geometry sampled into surface point
// clouds. Sampling is uniform over each primitive's surface at a fixed
// spacing; points are generated once in the local frame and mapped through
// the shape's current global pose on every call.
package shape

import (
	"errors"
	"fmt"
	"math"

	"github.com/banshee-data/sensorsim/internal/geom"
)

// DefaultSpacing is the sample spacing in metres used when none is given.
const DefaultSpacing = 0.25

// MaxSamples bounds the number of surface points a single shape may
// generate.
const MaxSamples = 1 << 20

var (
	// ErrInvalidDimensions is returned for non-positive sizes or spacing.
	ErrInvalidDimensions = errors.New("shape: dimensions must be positive")
	// ErrTooManySamples is returned when the spacing is too fine for the
	// shape's size.
	ErrTooManySamples = errors.New("shape: too many surface samples")
)

// Shape is a piece of static geometry with a sampled surface.
type Shape interface {
	Name() string
	Node() *geom.Node
	// SurfacePoints returns the sampled surface in world coordinates.
	SurfacePoints() geom.PointCloud
}

// sampled is the state shared by all primitives.
type sampled struct {
	name  string
	node  *geom.Node
	local geom.PointCloud
}

func (s *sampled) Name() string { return s.name }

func (s *sampled) Node() *geom.Node { return s.node }

func (s *sampled) SurfacePoints() geom.PointCloud {
	return s.local.Transformed(geom.MustGlobal(s.node))
}

func newSampled(name string, node *geom.Node, local geom.PointCloud) (sampled, error) {
	if node == nil {
		return sampled{}, fmt.Errorf("shape %q: %w", name, geom.ErrMissingNode)
	}
	return sampled{name: name, node: node, local: local}, nil
}

func checkPositive(name string, spacing float64, dims ...float64) error {
	if !(spacing > 0) {
		return fmt.Errorf("shape %q: spacing %v: %w", name, spacing, ErrInvalidDimensions)
	}
	for _, d := range dims {
		if !(d > 0) {
			return fmt.Errorf("shape %q: dimension %v: %w", name, d, ErrInvalidDimensions)
		}
	}
	return nil
}

// checkSamples rejects shapes whose estimated point count exceeds
// MaxSamples. The estimate is computed in floating point so huge or
// infinite ratios never reach an int conversion.
func checkSamples(name string, estimate float64) error {
	if !(estimate <= MaxSamples) {
		return fmt.Errorf("shape %q: ~%.3g points exceeds %d: %w", name, estimate, MaxSamples, ErrTooManySamples)
	}
	return nil
}

// perAxis is the float count of steps values for length at spacing.
func perAxis(length, spacing float64) float64 {
	return math.Ceil(length/spacing) + 1
}

// steps returns evenly spaced values covering [-half, half] inclusive with a
// gap no larger than spacing.
func steps(length, spacing float64) []float64 {
	n := int(math.Ceil(length/spacing)) + 1
	if n < 2 {
		n = 2
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = -length/2 + length*float64(i)/float64(n-1)
	}
	return out
}
