package geom

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Point is a position in 3-D space.
type Point struct {
	X, Y, Z float64
}

func (p Point) vec() r3.Vec { return r3.Vec{X: p.X, Y: p.Y, Z: p.Z} }

func pointOf(r r3.Vec) Point { return Point{X: r.X, Y: r.Y, Z: r.Z} }

// Sub returns the displacement from o to p.
func (p Point) Sub(o Point) Vector { return vectorOf(r3.Sub(p.vec(), o.vec())) }

// Add translates p by v.
func (p Point) Add(v Vector) Point { return pointOf(r3.Add(p.vec(), v.vec())) }

// DistanceTo returns the Euclidean distance between p and o.
func (p Point) DistanceTo(o Point) float64 { return r3.Norm(r3.Sub(p.vec(), o.vec())) }

// ApproxEqual reports whether every coordinate of p and o differs by at most tol.
func (p Point) ApproxEqual(o Point, tol float64) bool {
	return math.Abs(p.X-o.X) <= tol && math.Abs(p.Y-o.Y) <= tol && math.Abs(p.Z-o.Z) <= tol
}
