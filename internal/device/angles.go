package device

import (
	"fmt"
	"math"

	"github.com/banshee-data/sensorsim/internal/geom"
)

// AngleModel selects the formulas that turn a vector into the horizontal
// and vertical angles compared by the FOV test.
type AngleModel int

const (
	// AngleModelLegacy is the detection model existing scenes were tuned
	// against: horizontal = atan2(y, x), vertical = atan2(y, hypot(x, z)).
	// Both numerators read Y, so the two axes are not independent for a
	// direction with a Z component. Kept as the default for compatibility.
	AngleModelLegacy AngleModel = iota

	// AngleModelZUp uses azimuth/elevation for a Z-up frame:
	// horizontal = atan2(y, x), vertical = atan2(z, hypot(x, y)).
	AngleModelZUp
)

// String returns the config name of the model.
func (m AngleModel) String() string {
	switch m {
	case AngleModelLegacy:
		return "legacy"
	case AngleModelZUp:
		return "zup"
	default:
		return fmt.Sprintf("angle_model(%d)", int(m))
	}
}

// ParseAngleModel maps a config name to an AngleModel. Empty means legacy.
func ParseAngleModel(s string) (AngleModel, error) {
	switch s {
	case "", "legacy":
		return AngleModelLegacy, nil
	case "zup":
		return AngleModelZUp, nil
	default:
		return 0, fmt.Errorf("device: unknown angle model %q", s)
	}
}

// horizontal returns the angle of v in the horizontal test. No wrap-around
// is applied; the result is in (-π, π].
func (m AngleModel) horizontal(v geom.Vector) float64 {
	return math.Atan2(v.Y, v.X)
}

// vertical returns the angle of v in the vertical test.
func (m AngleModel) vertical(v geom.Vector) float64 {
	if m == AngleModelZUp {
		return math.Atan2(v.Z, math.Hypot(v.X, v.Y))
	}
	return math.Atan2(v.Y, math.Hypot(v.X, v.Z))
}
