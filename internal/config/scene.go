package config

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/banshee-data/sensorsim/internal/units"
)

// Shape kinds understood by the scene builder.
const (
	ShapeCuboid   = "cuboid"
	ShapeCylinder = "cylinder"
	ShapePlane    = "plane"
)

// Device mounts.
const (
	MountWorld    = "world"
	MountPlatform = "platform"
)

// SceneDescription is the on-disk description of a simulated scene.
// Angles are in degrees for readability; the builder converts them.
type SceneDescription struct {
	Name     string        `yaml:"name"`
	Platform *PlatformSpec `yaml:"platform,omitempty"`
	Shapes   []ShapeSpec   `yaml:"shapes"`
	Devices  []DeviceSpec  `yaml:"devices"`
}

// PoseSpec is a position in metres and roll/pitch/yaw in degrees.
type PoseSpec struct {
	Position [3]float64 `yaml:"position"`
	RPYDeg   [3]float64 `yaml:"rpy_deg"`
}

// PlatformSpec describes the moving platform devices can be mounted on.
// Speed may be given either as speed_mps or as speed plus speed_units.
type PlatformSpec struct {
	Name         string   `yaml:"name"`
	Pose         PoseSpec `yaml:"pose"`
	SpeedMPS     float64  `yaml:"speed_mps,omitempty"`
	Speed        float64  `yaml:"speed,omitempty"`
	SpeedUnits   string   `yaml:"speed_units,omitempty"`
	YawRateDegPS float64  `yaml:"yaw_rate_dps"`
}

// MetresPerSecond returns the platform speed in m/s.
func (p *PlatformSpec) MetresPerSecond() (float64, error) {
	if p.Speed == 0 {
		return p.SpeedMPS, nil
	}
	return units.ToMPS(p.Speed, p.SpeedUnits)
}

// ShapeSpec describes one piece of static geometry. Which dimension fields
// apply depends on Kind.
type ShapeSpec struct {
	Name    string     `yaml:"name"`
	Kind    string     `yaml:"kind"`
	Pose    PoseSpec   `yaml:"pose"`
	Size    [3]float64 `yaml:"size,omitempty"`   // cuboid
	Radius  float64    `yaml:"radius,omitempty"` // cylinder
	Height  float64    `yaml:"height,omitempty"` // cylinder
	Width   float64    `yaml:"width,omitempty"`  // plane
	Depth   float64    `yaml:"depth,omitempty"`  // plane
	Spacing float64    `yaml:"spacing,omitempty"`
}

// DeviceSpec describes a transmitter or receiver. Pose is relative to the
// mount: the world origin or the platform.
type DeviceSpec struct {
	Name             string   `yaml:"name"`
	Role             string   `yaml:"role"`
	Mount            string   `yaml:"mount,omitempty"`
	Pose             PoseSpec `yaml:"pose"`
	VerticalFOVDeg   *float64 `yaml:"vertical_fov_deg,omitempty"`
	HorizontalFOVDeg *float64 `yaml:"horizontal_fov_deg,omitempty"`
	AngleModel       string   `yaml:"angle_model,omitempty"`
}

// LoadScene reads and validates a YAML scene description.
func LoadScene(path string) (*SceneDescription, error) {
	data, err := readConfigFile(path, ".yaml", ".yml")
	if err != nil {
		return nil, err
	}
	return ParseScene(data)
}

// ParseScene decodes and validates a YAML scene description.
func ParseScene(data []byte) (*SceneDescription, error) {
	var desc SceneDescription
	if err := yaml.Unmarshal(data, &desc); err != nil {
		return nil, fmt.Errorf("failed to parse scene YAML: %w", err)
	}
	if err := desc.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scene: %w", err)
	}
	return &desc, nil
}

// Validate checks names, kinds, roles and mounts. Dimension checks are left
// to the shape constructors.
func (d *SceneDescription) Validate() error {
	var errs []error
	names := make(map[string]bool)
	claim := func(kind, name string) {
		if name == "" {
			errs = append(errs, fmt.Errorf("%s with empty name", kind))
			return
		}
		if names[name] {
			errs = append(errs, fmt.Errorf("duplicate name %q", name))
		}
		names[name] = true
	}

	if p := d.Platform; p != nil {
		claim("platform", p.Name)
		if p.Speed != 0 && p.SpeedMPS != 0 {
			errs = append(errs, fmt.Errorf("platform %q: set speed_mps or speed, not both", p.Name))
		}
		if p.SpeedUnits != "" && !units.IsValid(p.SpeedUnits) {
			errs = append(errs, fmt.Errorf("platform %q: invalid speed_units %q (valid: %s)",
				p.Name, p.SpeedUnits, units.ValidUnitsString()))
		}
	}
	for _, s := range d.Shapes {
		claim("shape", s.Name)
		switch s.Kind {
		case ShapeCuboid, ShapeCylinder, ShapePlane:
		default:
			errs = append(errs, fmt.Errorf("shape %q: unknown kind %q", s.Name, s.Kind))
		}
	}
	for _, dev := range d.Devices {
		claim("device", dev.Name)
		switch dev.Role {
		case "transmitter", "tx", "receiver", "rx":
		default:
			errs = append(errs, fmt.Errorf("device %q: unknown role %q", dev.Name, dev.Role))
		}
		switch dev.Mount {
		case "", MountWorld:
		case MountPlatform:
			if d.Platform == nil {
				errs = append(errs, fmt.Errorf("device %q: mounted on platform but scene has none", dev.Name))
			}
		default:
			errs = append(errs, fmt.Errorf("device %q: unknown mount %q", dev.Name, dev.Mount))
		}
	}
	return errors.Join(errs...)
}
