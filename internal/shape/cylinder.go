package shape

import (
	"math"

	"github.com/banshee-data/sensorsim/internal/geom"
)

// Cylinder is a closed cylinder whose axis is the local Z axis, centred on
// its node.
type Cylinder struct {
	sampled
	radius, height float64
}

// NewCylinder samples the side wall and both caps of a cylinder.
func NewCylinder(name string, node *geom.Node, radius, height, spacing float64) (*Cylinder, error) {
	if err := checkPositive(name, spacing, radius, height); err != nil {
		return nil, err
	}
	perRing := math.Ceil(2*math.Pi*radius/spacing) + 3
	rings := perAxis(height, spacing) + 2*math.Ceil(radius/spacing)
	if err := checkSamples(name, perRing*rings); err != nil {
		return nil, err
	}
	s, err := newSampled(name, node, sampleCylinder(radius, height, spacing))
	if err != nil {
		return nil, err
	}
	return &Cylinder{sampled: s, radius: radius, height: height}, nil
}

// Radius returns the cylinder radius.
func (c *Cylinder) Radius() float64 { return c.radius }

// Height returns the cylinder height.
func (c *Cylinder) Height() float64 { return c.height }

func sampleCylinder(radius, height, spacing float64) geom.PointCloud {
	var cloud geom.PointCloud

	ring := func(r, z float64) {
		n := int(math.Ceil(2 * math.Pi * r / spacing))
		if n < 3 {
			n = 3
		}
		for i := 0; i < n; i++ {
			a := 2 * math.Pi * float64(i) / float64(n)
			cloud.Add(geom.Point{X: r * math.Cos(a), Y: r * math.Sin(a), Z: z})
		}
	}

	for _, z := range steps(height, spacing) {
		ring(radius, z)
	}

	// Caps: concentric rings inside the wall, plus the centre point.
	rings := int(math.Ceil(radius / spacing))
	for _, z := range []float64{-height / 2, height / 2} {
		cloud.Add(geom.Point{Z: z})
		for i := 1; i < rings; i++ {
			ring(radius*float64(i)/float64(rings), z)
		}
	}
	return cloud
}
