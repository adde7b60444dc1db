package shape

import "github.com/banshee-data/sensorsim/internal/geom"

// Plane is a flat rectangle in its local XY plane, centred on its node.
// Ground and walls are planes.
type Plane struct {
	sampled
	width, depth float64
}

// NewPlane samples a width (X) by depth (Y) rectangle.
func NewPlane(name string, node *geom.Node, width, depth, spacing float64) (*Plane, error) {
	if err := checkPositive(name, spacing, width, depth); err != nil {
		return nil, err
	}
	if err := checkSamples(name, perAxis(width, spacing)*perAxis(depth, spacing)); err != nil {
		return nil, err
	}
	var cloud geom.PointCloud
	for _, x := range steps(width, spacing) {
		for _, y := range steps(depth, spacing) {
			cloud.Add(geom.Point{X: x, Y: y})
		}
	}
	s, err := newSampled(name, node, cloud)
	if err != nil {
		return nil, err
	}
	return &Plane{sampled: s, width: width, depth: depth}, nil
}

// Width returns the extent along local X.
func (p *Plane) Width() float64 { return p.width }

// Depth returns the extent along local Y.
func (p *Plane) Depth() float64 { return p.depth }
