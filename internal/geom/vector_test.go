package geom

import (
	"math"
	"testing"
)

func TestVector_Normalize(t *testing.T) {
	tests := []struct {
		name string
		in   Vector
		want Vector
	}{
		{"unit x", Vector{X: 1}, Vector{X: 1}},
		{"scaled", Vector{X: 3, Y: 4}, Vector{X: 0.6, Y: 0.8}},
		{"negative", Vector{Z: -2}, Vector{Z: -1}},
		{"zero stays zero", Vector{}, Vector{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in.Normalize()
			if !got.ApproxEqual(tt.want, 1e-12) {
				t.Errorf("Normalize(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestVector_NormalizeIsUnit(t *testing.T) {
	for _, v := range []Vector{{X: 1e-9}, {X: 1e9, Y: -3, Z: 7}, {X: 0.1, Y: 0.2, Z: 0.3}} {
		if n := v.Normalize(); !n.IsUnit() {
			t.Errorf("Normalize(%v) has norm %v", v, n.Norm())
		}
	}
	if (Vector{}).Normalize().IsUnit() {
		t.Error("zero vector should not normalise to a unit vector")
	}
}

func TestVector_Arithmetic(t *testing.T) {
	a := Vector{X: 1, Y: 2, Z: 3}
	b := Vector{X: -1, Y: 0.5, Z: 2}

	if got := a.Add(b); got != (Vector{X: 0, Y: 2.5, Z: 5}) {
		t.Errorf("Add = %v", got)
	}
	if got := a.Sub(b); got != (Vector{X: 2, Y: 1.5, Z: 1}) {
		t.Errorf("Sub = %v", got)
	}
	if got := a.Scale(2); got != (Vector{X: 2, Y: 4, Z: 6}) {
		t.Errorf("Scale = %v", got)
	}
	if got := a.Dot(b); got != 6 {
		t.Errorf("Dot = %v, want 6", got)
	}
	if got := (Vector{X: 1}).Cross(Vector{Y: 1}); !got.ApproxEqual(Vector{Z: 1}, 1e-12) {
		t.Errorf("Cross = %v, want +Z", got)
	}
}

func TestPoint_SubAndAdd(t *testing.T) {
	p := Point{X: 4, Y: 6, Z: 8}
	o := Point{X: 1, Y: 2, Z: 3}

	v := p.Sub(o)
	if v != (Vector{X: 3, Y: 4, Z: 5}) {
		t.Fatalf("Sub = %v", v)
	}
	if back := o.Add(v); back != p {
		t.Errorf("o.Add(p.Sub(o)) = %v, want %v", back, p)
	}
	if d := o.DistanceTo(p); math.Abs(d-math.Sqrt(50)) > 1e-12 {
		t.Errorf("DistanceTo = %v, want sqrt(50)", d)
	}
}
