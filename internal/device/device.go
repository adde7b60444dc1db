// Package device models directional sensors: a pose in the transform tree
// plus a vertical and horizontal field of view.
package device

import (
	"errors"
	"fmt"
	"math"

	"github.com/banshee-data/sensorsim/internal/geom"
)

// ErrInvalidFOV is returned when a field of view is outside (0, 360] degrees.
var ErrInvalidFOV = errors.New("device: fov must be in (0, 360] degrees")

// Role says whether a device emits or receives the signal.
type Role int

const (
	RoleTransmitter Role = iota
	RoleReceiver
)

// String returns the lower-case role name.
func (r Role) String() string {
	switch r {
	case RoleTransmitter:
		return "transmitter"
	case RoleReceiver:
		return "receiver"
	default:
		return fmt.Sprintf("role(%d)", int(r))
	}
}

// ParseRole maps "transmitter"/"tx" and "receiver"/"rx" to a Role.
func ParseRole(s string) (Role, error) {
	switch s {
	case "transmitter", "tx":
		return RoleTransmitter, nil
	case "receiver", "rx":
		return RoleReceiver, nil
	default:
		return 0, fmt.Errorf("device: unknown role %q", s)
	}
}

// Device is a sensor placed in the scene. Its node is shared with the scene
// and with any platform it is mounted on.
type Device struct {
	name string
	role Role
	node *geom.Node

	verticalFOVDeg   float64
	horizontalFOVDeg float64
	verticalFOVRad   float64
	horizontalFOVRad float64

	angles AngleModel
}

// New creates a device. node must not be nil; both FOVs are in degrees.
func New(name string, role Role, node *geom.Node, verticalFOVDeg, horizontalFOVDeg float64) (*Device, error) {
	if node == nil {
		return nil, fmt.Errorf("device %q: %w", name, geom.ErrMissingNode)
	}
	d := &Device{name: name, role: role, node: node, angles: AngleModelLegacy}
	if err := d.SetVerticalFOV(verticalFOVDeg); err != nil {
		return nil, fmt.Errorf("device %q: %w", name, err)
	}
	if err := d.SetHorizontalFOV(horizontalFOVDeg); err != nil {
		return nil, fmt.Errorf("device %q: %w", name, err)
	}
	return d, nil
}

// Name returns the device name.
func (d *Device) Name() string { return d.name }

// Role returns whether the device transmits or receives.
func (d *Device) Role() Role { return d.role }

// Node returns the device's transform node.
func (d *Device) Node() *geom.Node { return d.node }

// SetLocalTransform moves the device relative to its parent node.
func (d *Device) SetLocalTransform(t geom.Transform) { d.node.SetLocalTransform(t) }

// VerticalFOVDeg returns the full vertical field of view in degrees.
func (d *Device) VerticalFOVDeg() float64 { return d.verticalFOVDeg }

// HorizontalFOVDeg returns the full horizontal field of view in degrees.
func (d *Device) HorizontalFOVDeg() float64 { return d.horizontalFOVDeg }

// VerticalFOVRad returns the full vertical field of view in radians.
func (d *Device) VerticalFOVRad() float64 { return d.verticalFOVRad }

// HorizontalFOVRad returns the full horizontal field of view in radians.
func (d *Device) HorizontalFOVRad() float64 { return d.horizontalFOVRad }

// SetVerticalFOV sets the vertical field of view in degrees.
func (d *Device) SetVerticalFOV(deg float64) error {
	if err := validateFOV(deg); err != nil {
		return err
	}
	d.verticalFOVDeg = deg
	d.verticalFOVRad = deg * math.Pi / 180.0
	return nil
}

// SetHorizontalFOV sets the horizontal field of view in degrees.
func (d *Device) SetHorizontalFOV(deg float64) error {
	if err := validateFOV(deg); err != nil {
		return err
	}
	d.horizontalFOVDeg = deg
	d.horizontalFOVRad = deg * math.Pi / 180.0
	return nil
}

// AngleModel returns the angle formulas used by the FOV test.
func (d *Device) AngleModel() AngleModel { return d.angles }

// SetAngleModel selects the angle formulas used by the FOV test.
func (d *Device) SetAngleModel(m AngleModel) { d.angles = m }

// Position returns the device's current world position.
func (d *Device) Position() geom.Point {
	return geom.MustGlobal(d.node).Position
}

// Direction returns the device's current world forward direction.
func (d *Device) Direction() geom.Vector {
	return geom.MustGlobal(d.node).ForwardDirection()
}

// PointsInFOV returns the points of cloud that lie angularly inside the
// device's cone, in their original order. The pose is read once per call.
func (d *Device) PointsInFOV(cloud geom.PointCloud) geom.PointCloud {
	global := geom.MustGlobal(d.node)
	c := d.cone(global.Position, global.ForwardDirection())
	return cloud.Filter(c.contains)
}

// Contains reports whether p is inside the device's cone.
func (d *Device) Contains(p geom.Point) bool {
	global := geom.MustGlobal(d.node)
	return d.cone(global.Position, global.ForwardDirection()).contains(p)
}

func (d *Device) cone(origin geom.Point, dir geom.Vector) cone {
	return cone{
		origin:   origin,
		angles:   d.angles,
		dirH:     d.angles.horizontal(dir),
		dirV:     d.angles.vertical(dir),
		halfHFOV: d.horizontalFOVRad / 2,
		halfVFOV: d.verticalFOVRad / 2,
	}
}

// cone caches the per-call quantities of the membership test.
type cone struct {
	origin             geom.Point
	angles             AngleModel
	dirH, dirV         float64
	halfHFOV, halfVFOV float64
}

func (c cone) contains(p geom.Point) bool {
	v := p.Sub(c.origin)
	if math.Abs(c.angles.horizontal(v)-c.dirH) > c.halfHFOV {
		return false
	}
	return math.Abs(c.angles.vertical(v)-c.dirV) <= c.halfVFOV
}

func validateFOV(deg float64) error {
	if math.IsNaN(deg) || deg <= 0 || deg > 360 {
		return fmt.Errorf("%w: got %v", ErrInvalidFOV, deg)
	}
	return nil
}
