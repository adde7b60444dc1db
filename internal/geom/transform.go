package geom

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Transform is a pose: a position plus a roll/pitch/yaw orientation in
// radians. The zero value is the identity pose.
type Transform struct {
	Position    Point
	Orientation Vector
}

// Identity returns the identity pose.
func Identity() Transform { return Transform{} }

// NewTransform builds a pose from a position and roll/pitch/yaw angles.
func NewTransform(position Point, roll, pitch, yaw float64) Transform {
	return Transform{Position: position, Orientation: Vector{X: roll, Y: pitch, Z: yaw}}
}

// Roll returns the rotation about X in radians.
func (t Transform) Roll() float64 { return t.Orientation.X }

// Pitch returns the rotation about Y in radians.
func (t Transform) Pitch() float64 { return t.Orientation.Y }

// Yaw returns the rotation about Z in radians.
func (t Transform) Yaw() float64 { return t.Orientation.Z }

// Move translates the pose by a world-space delta.
func (t Transform) Move(delta Vector) Transform {
	t.Position = t.Position.Add(delta)
	return t
}

// RotateYaw adds angle radians to the yaw component.
func (t Transform) RotateYaw(angle float64) Transform {
	t.Orientation.Z += angle
	return t
}

// Rotate applies the pose's rotation, Rz(yaw)*Ry(pitch)*Rx(roll), to v.
func (t Transform) Rotate(v Vector) Vector {
	r := v.vec()
	r = r3.Rotate(r, t.Orientation.X, axisX)
	r = r3.Rotate(r, t.Orientation.Y, axisY)
	r = r3.Rotate(r, t.Orientation.Z, axisZ)
	return vectorOf(r)
}

// ForwardDirection returns the unit vector the pose faces: the local +X
// axis rotated into the parent frame.
func (t Transform) ForwardDirection() Vector {
	return t.Rotate(Vector{X: 1}).Normalize()
}

// Apply maps a point expressed in this pose's local frame into the parent frame.
func (t Transform) Apply(p Point) Point {
	return t.Position.Add(t.Rotate(Vector(p)))
}

// Compose returns the pose of child, given in t's local frame, expressed in
// t's parent frame. t's rotation and translation are applied first, so
// t.Compose(c).Apply(p) == t.Apply(c.Apply(p)).
//
// The composed rotation is re-expressed as Z-Y-X angles. At pitch = ±π/2
// roll and yaw are not separable and roll absorbs the remainder.
func (t Transform) Compose(child Transform) Transform {
	c0 := t.Rotate(child.Rotate(Vector{X: 1}))
	c1 := t.Rotate(child.Rotate(Vector{Y: 1}))
	c2 := t.Rotate(child.Rotate(Vector{Z: 1}))

	pitch := math.Asin(clampUnit(-c0.Z))
	var roll, yaw float64
	if math.Abs(c0.Z) < 1-1e-12 {
		yaw = math.Atan2(c0.Y, c0.X)
		roll = math.Atan2(c1.Z, c2.Z)
	} else if c0.Z < 0 {
		// Gimbal lock: fold yaw into roll.
		roll = math.Atan2(c1.X, c1.Y)
	} else {
		roll = math.Atan2(-c1.X, c1.Y)
	}

	return Transform{
		Position:    t.Apply(child.Position),
		Orientation: Vector{X: roll, Y: pitch, Z: yaw},
	}
}

// ApproxEqual compares two poses by the points they produce, so equivalent
// angle representations (yaw 2π versus 0) compare equal.
func (t Transform) ApproxEqual(o Transform, tol float64) bool {
	probes := []Point{{}, {X: 1}, {Y: 1}, {Z: 1}}
	for _, p := range probes {
		if !t.Apply(p).ApproxEqual(o.Apply(p), tol) {
			return false
		}
	}
	return true
}

func clampUnit(v float64) float64 {
	return math.Max(-1, math.Min(1, v))
}
