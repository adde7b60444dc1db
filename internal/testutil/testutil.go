// Package testutil provides shared test helpers for geometry and error
// assertions.
package testutil

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/banshee-data/sensorsim/internal/geom"
)

// DefaultTolerance is the absolute tolerance used by the Near helpers when
// callers pass zero.
const DefaultTolerance = 1e-9

// AssertNoError fails the test if err is not nil.
func AssertNoError(t testing.TB, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// AssertError fails the test if err is nil.
func AssertError(t testing.TB, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}

// AssertPointNear checks that two points agree component-wise within tol.
func AssertPointNear(t testing.TB, got, want geom.Point, tol float64) {
	t.Helper()
	if !got.ApproxEqual(want, tolerance(tol)) {
		t.Errorf("point = %+v, want %+v (tol %g)", got, want, tolerance(tol))
	}
}

// AssertVectorNear checks that two vectors agree component-wise within tol.
func AssertVectorNear(t testing.TB, got, want geom.Vector, tol float64) {
	t.Helper()
	if !got.ApproxEqual(want, tolerance(tol)) {
		t.Errorf("vector = %+v, want %+v (tol %g)", got, want, tolerance(tol))
	}
}

// AssertTransformNear checks that two transforms map points identically
// within tol, which tolerates equivalent roll/pitch/yaw triples.
func AssertTransformNear(t testing.TB, got, want geom.Transform, tol float64) {
	t.Helper()
	if !got.ApproxEqual(want, tolerance(tol)) {
		t.Errorf("transform = %+v, want %+v (tol %g)", got, want, tolerance(tol))
	}
}

// AssertCloudNear checks that two clouds hold the same points in the same
// order, within tol per component.
func AssertCloudNear(t testing.TB, got, want geom.PointCloud, tol float64) {
	t.Helper()
	opt := cmpopts.EquateApprox(0, tolerance(tol))
	if diff := cmp.Diff(want.Points(), got.Points(), opt); diff != "" {
		t.Errorf("cloud mismatch (-want +got):\n%s", diff)
	}
}

func tolerance(tol float64) float64 {
	if tol <= 0 {
		return DefaultTolerance
	}
	return tol
}
