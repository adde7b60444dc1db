// Package scene holds the simulated world: static shapes, a moving platform
// and the transmitters and receivers observing them.
package scene

import (
	"fmt"

	"github.com/banshee-data/sensorsim/internal/device"
	"github.com/banshee-data/sensorsim/internal/geom"
	"github.com/banshee-data/sensorsim/internal/shape"
)

// Scene is the set of entities a solve runs over. Devices and shapes share
// their transform nodes with whoever else holds them; the scene never
// copies poses.
type Scene struct {
	name         string
	shapes       []shape.Shape
	transmitters []*device.Device
	receivers    []*device.Device
	platform     *Platform
	elapsed      float64
}

// New returns an empty scene.
func New(name string) *Scene {
	return &Scene{name: name}
}

// Name returns the scene name.
func (s *Scene) Name() string { return s.name }

// AddShape adds static geometry.
func (s *Scene) AddShape(sh shape.Shape) {
	s.shapes = append(s.shapes, sh)
}

// AddDevice adds a device to the transmitter or receiver list by its role.
func (s *Scene) AddDevice(d *device.Device) error {
	switch d.Role() {
	case device.RoleTransmitter:
		s.transmitters = append(s.transmitters, d)
	case device.RoleReceiver:
		s.receivers = append(s.receivers, d)
	default:
		return fmt.Errorf("scene: device %q has unknown role %v", d.Name(), d.Role())
	}
	return nil
}

// SetPlatform installs the moving platform; nil removes it.
func (s *Scene) SetPlatform(p *Platform) { s.platform = p }

// Platform returns the moving platform, or nil.
func (s *Scene) Platform() *Platform { return s.platform }

// Shapes returns the static geometry in insertion order.
func (s *Scene) Shapes() []shape.Shape { return s.shapes }

// Transmitters returns the transmitters in insertion order.
func (s *Scene) Transmitters() []*device.Device { return s.transmitters }

// Receivers returns the receivers in insertion order.
func (s *Scene) Receivers() []*device.Device { return s.receivers }

// Elapsed returns the simulated seconds accumulated by Update.
func (s *Scene) Elapsed() float64 { return s.elapsed }

// MergedPointCloud concatenates every shape's world-space surface, in shape
// order. It is recomputed on every call.
func (s *Scene) MergedPointCloud() geom.PointCloud {
	var merged geom.PointCloud
	for _, sh := range s.shapes {
		merged.AddAll(sh.SurfacePoints())
	}
	return merged
}

// Update advances simulated time by dt seconds, moving the platform.
func (s *Scene) Update(dt float64) {
	if dt <= 0 {
		return
	}
	s.elapsed += dt
	if s.platform != nil {
		s.platform.Update(dt)
	}
}
