package shape

import "github.com/banshee-data/sensorsim/internal/geom"

// Cuboid is an axis-aligned box (in its local frame) centred on its node.
type Cuboid struct {
	sampled
	size geom.Vector
}

// NewCuboid samples the six faces of a box with the given edge lengths.
func NewCuboid(name string, node *geom.Node, size geom.Vector, spacing float64) (*Cuboid, error) {
	if err := checkPositive(name, spacing, size.X, size.Y, size.Z); err != nil {
		return nil, err
	}
	nx, ny, nz := perAxis(size.X, spacing), perAxis(size.Y, spacing), perAxis(size.Z, spacing)
	if err := checkSamples(name, 2*(nx*ny+ny*nz+nx*nz)); err != nil {
		return nil, err
	}
	s, err := newSampled(name, node, sampleCuboid(size, spacing))
	if err != nil {
		return nil, err
	}
	return &Cuboid{sampled: s, size: size}, nil
}

// Size returns the edge lengths.
func (c *Cuboid) Size() geom.Vector { return c.size }

func sampleCuboid(size geom.Vector, spacing float64) geom.PointCloud {
	xs := steps(size.X, spacing)
	ys := steps(size.Y, spacing)
	zs := steps(size.Z, spacing)
	hx, hy, hz := size.X/2, size.Y/2, size.Z/2

	var cloud geom.PointCloud
	for _, x := range xs {
		for _, y := range ys {
			cloud.Add(geom.Point{X: x, Y: y, Z: -hz})
			cloud.Add(geom.Point{X: x, Y: y, Z: hz})
		}
	}
	// Side faces skip the rows already emitted by the top and bottom.
	for _, z := range zs[1 : len(zs)-1] {
		for _, x := range xs {
			cloud.Add(geom.Point{X: x, Y: -hy, Z: z})
			cloud.Add(geom.Point{X: x, Y: hy, Z: z})
		}
		for _, y := range ys[1 : len(ys)-1] {
			cloud.Add(geom.Point{X: -hx, Y: y, Z: z})
			cloud.Add(geom.Point{X: hx, Y: y, Z: z})
		}
	}
	return cloud
}
