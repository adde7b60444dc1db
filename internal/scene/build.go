package scene

import (
	"fmt"
	"math"

	"github.com/banshee-data/sensorsim/internal/config"
	"github.com/banshee-data/sensorsim/internal/device"
	"github.com/banshee-data/sensorsim/internal/geom"
	"github.com/banshee-data/sensorsim/internal/shape"
)

// Build assembles a scene from a validated description. cfg supplies the
// defaults for fields a description leaves out.
func Build(desc *config.SceneDescription, cfg *config.SimConfig) (*Scene, error) {
	if cfg == nil {
		cfg = config.EmptySimConfig()
	}
	if err := desc.Validate(); err != nil {
		return nil, fmt.Errorf("scene %q: %w", desc.Name, err)
	}

	s := New(desc.Name)

	if ps := desc.Platform; ps != nil {
		speed, err := ps.MetresPerSecond()
		if err != nil {
			return nil, fmt.Errorf("platform %q: %w", ps.Name, err)
		}
		s.SetPlatform(NewPlatform(ps.Name, pose(ps.Pose), speed, ps.YawRateDegPS*math.Pi/180))
	}

	for _, spec := range desc.Shapes {
		sh, err := buildShape(spec, cfg.GetSampleSpacing())
		if err != nil {
			return nil, err
		}
		s.AddShape(sh)
	}

	for _, spec := range desc.Devices {
		d, err := buildDevice(spec, s.Platform(), cfg)
		if err != nil {
			return nil, err
		}
		if err := s.AddDevice(d); err != nil {
			return nil, err
		}
	}

	return s, nil
}

func buildShape(spec config.ShapeSpec, defaultSpacing float64) (shape.Shape, error) {
	spacing := spec.Spacing
	if spacing == 0 {
		spacing = defaultSpacing
	}
	node := geom.NewNode(pose(spec.Pose), nil)

	switch spec.Kind {
	case config.ShapeCuboid:
		size := geom.Vector{X: spec.Size[0], Y: spec.Size[1], Z: spec.Size[2]}
		return shape.NewCuboid(spec.Name, node, size, spacing)
	case config.ShapeCylinder:
		return shape.NewCylinder(spec.Name, node, spec.Radius, spec.Height, spacing)
	case config.ShapePlane:
		return shape.NewPlane(spec.Name, node, spec.Width, spec.Depth, spacing)
	default:
		return nil, fmt.Errorf("shape %q: unknown kind %q", spec.Name, spec.Kind)
	}
}

func buildDevice(spec config.DeviceSpec, platform *Platform, cfg *config.SimConfig) (*device.Device, error) {
	role, err := device.ParseRole(spec.Role)
	if err != nil {
		return nil, err
	}

	var parent *geom.Node
	if spec.Mount == config.MountPlatform {
		if platform == nil {
			return nil, fmt.Errorf("device %q: %w", spec.Name, geom.ErrMissingNode)
		}
		parent = platform.Node()
	}

	vfov := cfg.GetVerticalFOVDeg()
	if spec.VerticalFOVDeg != nil {
		vfov = *spec.VerticalFOVDeg
	}
	hfov := cfg.GetHorizontalFOVDeg()
	if spec.HorizontalFOVDeg != nil {
		hfov = *spec.HorizontalFOVDeg
	}

	d, err := device.New(spec.Name, role, geom.NewNode(pose(spec.Pose), parent), vfov, hfov)
	if err != nil {
		return nil, err
	}

	model := cfg.GetAngleModel()
	if spec.AngleModel != "" {
		if model, err = device.ParseAngleModel(spec.AngleModel); err != nil {
			return nil, fmt.Errorf("device %q: %w", spec.Name, err)
		}
	}
	d.SetAngleModel(model)
	return d, nil
}

func pose(p config.PoseSpec) geom.Transform {
	const deg = math.Pi / 180
	return geom.NewTransform(
		geom.Point{X: p.Position[0], Y: p.Position[1], Z: p.Position[2]},
		p.RPYDeg[0]*deg, p.RPYDeg[1]*deg, p.RPYDeg[2]*deg,
	)
}
