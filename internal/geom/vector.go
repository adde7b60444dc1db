package geom

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// UnitTolerance is the allowed deviation from magnitude 1 for a normalised
// direction vector.
const UnitTolerance = 1e-6

var (
	axisX = r3.Vec{X: 1}
	axisY = r3.Vec{Y: 1}
	axisZ = r3.Vec{Z: 1}
)

// Vector is a direction, a displacement, or a roll/pitch/yaw triple in
// radians, depending on where it is stored.
type Vector struct {
	X, Y, Z float64
}

func (v Vector) vec() r3.Vec { return r3.Vec{X: v.X, Y: v.Y, Z: v.Z} }

func vectorOf(r r3.Vec) Vector { return Vector{X: r.X, Y: r.Y, Z: r.Z} }

// Add returns v + o.
func (v Vector) Add(o Vector) Vector { return vectorOf(r3.Add(v.vec(), o.vec())) }

// Sub returns v - o.
func (v Vector) Sub(o Vector) Vector { return vectorOf(r3.Sub(v.vec(), o.vec())) }

// Scale returns v scaled by f.
func (v Vector) Scale(f float64) Vector { return vectorOf(r3.Scale(f, v.vec())) }

// Dot returns the dot product of v and o.
func (v Vector) Dot(o Vector) float64 { return r3.Dot(v.vec(), o.vec()) }

// Cross returns the cross product v × o.
func (v Vector) Cross(o Vector) Vector { return vectorOf(r3.Cross(v.vec(), o.vec())) }

// Norm returns the Euclidean length of v.
func (v Vector) Norm() float64 { return r3.Norm(v.vec()) }

// IsZero reports whether every component is exactly zero.
func (v Vector) IsZero() bool { return v.X == 0 && v.Y == 0 && v.Z == 0 }

// Normalize returns the unit vector colinear to v. The zero vector
// normalises to the zero vector; callers computing angles from it get the
// degenerate all-zero result.
func (v Vector) Normalize() Vector {
	if v.IsZero() {
		return Vector{}
	}
	return vectorOf(r3.Unit(v.vec()))
}

// IsUnit reports whether v has magnitude 1 within UnitTolerance.
func (v Vector) IsUnit() bool {
	return math.Abs(v.Norm()-1) <= UnitTolerance
}

// ApproxEqual reports whether every component of v and o differs by at most tol.
func (v Vector) ApproxEqual(o Vector, tol float64) bool {
	return math.Abs(v.X-o.X) <= tol && math.Abs(v.Y-o.Y) <= tol && math.Abs(v.Z-o.Z) <= tol
}
