package shape

import (
	"errors"
	"math"
	"testing"

	"github.com/banshee-data/sensorsim/internal/geom"
)

func TestCuboid_SurfaceSampling(t *testing.T) {
	node := geom.NewNode(geom.Identity(), nil)
	c, err := NewCuboid("box", node, geom.Vector{X: 1, Y: 1, Z: 1}, 0.5)
	if err != nil {
		t.Fatalf("NewCuboid: %v", err)
	}

	pts := c.SurfacePoints().Points()
	// A 3x3x3 lattice minus its single interior point.
	if len(pts) != 26 {
		t.Fatalf("got %d points, want 26", len(pts))
	}

	seen := make(map[geom.Point]bool, len(pts))
	for _, p := range pts {
		if seen[p] {
			t.Errorf("duplicate sample %v", p)
		}
		seen[p] = true
		onFace := math.Abs(p.X) == 0.5 || math.Abs(p.Y) == 0.5 || math.Abs(p.Z) == 0.5
		if !onFace {
			t.Errorf("point %v is not on the surface", p)
		}
	}
}

func TestCuboid_FollowsNode(t *testing.T) {
	node := geom.NewNode(geom.Identity(), nil)
	c, err := NewCuboid("box", node, geom.Vector{X: 2, Y: 2, Z: 2}, 1)
	if err != nil {
		t.Fatalf("NewCuboid: %v", err)
	}
	before := c.SurfacePoints()

	node.SetLocalTransform(geom.Identity().Move(geom.Vector{X: 10}))
	after := c.SurfacePoints()

	if before.Len() != after.Len() {
		t.Fatalf("point count changed: %d -> %d", before.Len(), after.Len())
	}
	for i := 0; i < before.Len(); i++ {
		want := before.At(i).Add(geom.Vector{X: 10})
		if !after.At(i).ApproxEqual(want, 1e-12) {
			t.Fatalf("point %d = %v, want %v", i, after.At(i), want)
		}
	}
}

func TestCylinder_SurfaceSampling(t *testing.T) {
	node := geom.NewNode(geom.Identity(), nil)
	c, err := NewCylinder("pole", node, 1, 4, 0.5)
	if err != nil {
		t.Fatalf("NewCylinder: %v", err)
	}

	cloud := c.SurfacePoints()
	if cloud.Empty() {
		t.Fatal("no samples")
	}
	for _, p := range cloud.Points() {
		r := math.Hypot(p.X, p.Y)
		onWall := math.Abs(r-1) < 1e-9 && math.Abs(p.Z) <= 2+1e-9
		onCap := math.Abs(math.Abs(p.Z)-2) < 1e-9 && r <= 1+1e-9
		if !onWall && !onCap {
			t.Errorf("point %v (r=%v) is not on the surface", p, r)
		}
	}
}

func TestPlane_SurfaceSampling(t *testing.T) {
	node := geom.NewNode(geom.NewTransform(geom.Point{Z: -1}, 0, 0, 0), nil)
	p, err := NewPlane("ground", node, 4, 2, 1)
	if err != nil {
		t.Fatalf("NewPlane: %v", err)
	}

	cloud := p.SurfacePoints()
	if cloud.Len() != 5*3 {
		t.Errorf("got %d points, want 15", cloud.Len())
	}
	for _, pt := range cloud.Points() {
		if math.Abs(pt.Z+1) > 1e-12 {
			t.Errorf("point %v not on z=-1", pt)
		}
	}
}

func TestShapes_InvalidInput(t *testing.T) {
	node := geom.NewNode(geom.Identity(), nil)

	if _, err := NewCuboid("c", node, geom.Vector{X: 1, Y: 0, Z: 1}, 0.1); !errors.Is(err, ErrInvalidDimensions) {
		t.Errorf("zero cuboid edge: error = %v", err)
	}
	if _, err := NewPlane("p", node, 1, 1, 0); !errors.Is(err, ErrInvalidDimensions) {
		t.Errorf("zero spacing: error = %v", err)
	}
	if _, err := NewCylinder("y", node, -1, 1, 0.1); !errors.Is(err, ErrInvalidDimensions) {
		t.Errorf("negative radius: error = %v", err)
	}
	if _, err := NewPlane("p", nil, 1, 1, 0.5); !errors.Is(err, geom.ErrMissingNode) {
		t.Errorf("missing node: error = %v", err)
	}
}

func TestShapes_TooManySamples(t *testing.T) {
	node := geom.NewNode(geom.Identity(), nil)
	tests := []struct {
		name  string
		build func() error
	}{
		{"plane tiny spacing", func() error { _, err := NewPlane("p", node, 10, 10, 1e-9); return err }},
		{"plane infinite width", func() error { _, err := NewPlane("p", node, math.Inf(1), 1, 0.5); return err }},
		{"cuboid tiny spacing", func() error { _, err := NewCuboid("c", node, geom.Vector{X: 1, Y: 1, Z: 1}, 1e-300); return err }},
		{"cylinder tiny spacing", func() error { _, err := NewCylinder("y", node, 1, 1, 1e-6); return err }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.build(); !errors.Is(err, ErrTooManySamples) {
				t.Errorf("error = %v, want ErrTooManySamples", err)
			}
		})
	}

	// 1000 x 1000 samples is within the limit.
	if _, err := NewPlane("ok", node, 999, 999, 1); err != nil {
		t.Errorf("plane within limit: %v", err)
	}
}
