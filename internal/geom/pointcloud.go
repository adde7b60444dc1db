package geom

// PointCloud is an ordered collection of points. Order is preserved but
// carries no meaning; the zero value is an empty cloud ready to use.
type PointCloud struct {
	points []Point
}

// NewPointCloud returns a cloud holding a copy of points.
func NewPointCloud(points ...Point) PointCloud {
	c := PointCloud{points: make([]Point, len(points))}
	copy(c.points, points)
	return c
}

// Add appends a single point.
func (c *PointCloud) Add(p Point) {
	c.points = append(c.points, p)
}

// AddAll appends every point of o, in order.
func (c *PointCloud) AddAll(o PointCloud) {
	c.points = append(c.points, o.points...)
}

// Concat returns a new cloud with c's points followed by o's. Neither input
// is modified.
func (c PointCloud) Concat(o PointCloud) PointCloud {
	out := make([]Point, 0, len(c.points)+len(o.points))
	out = append(out, c.points...)
	out = append(out, o.points...)
	return PointCloud{points: out}
}

// Len returns the number of points.
func (c PointCloud) Len() int { return len(c.points) }

// Empty reports whether the cloud has no points.
func (c PointCloud) Empty() bool { return len(c.points) == 0 }

// At returns the i-th point.
func (c PointCloud) At(i int) Point { return c.points[i] }

// Points returns a copy of the points in order.
func (c PointCloud) Points() []Point {
	out := make([]Point, len(c.points))
	copy(out, c.points)
	return out
}

// Transformed maps every point through t.Apply, preserving order.
func (c PointCloud) Transformed(t Transform) PointCloud {
	out := make([]Point, len(c.points))
	for i, p := range c.points {
		out[i] = t.Apply(p)
	}
	return PointCloud{points: out}
}

// Filter returns the points for which keep returns true, preserving order.
func (c PointCloud) Filter(keep func(Point) bool) PointCloud {
	var out PointCloud
	for _, p := range c.points {
		if keep(p) {
			out.points = append(out.points, p)
		}
	}
	return out
}
