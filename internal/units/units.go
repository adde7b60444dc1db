// Package units converts platform speeds between the units scene files
// accept. Everything inside the simulator is metres per second.
package units

import (
	"fmt"
	"slices"
	"strings"
)

// Unit constants
const (
	MPS  = "mps"
	MPH  = "mph"
	KMPH = "kmph"
	KPH  = "kph"
)

// ValidUnits contains all valid unit values
var ValidUnits = []string{MPS, MPH, KMPH, KPH}

const metresPerMile = 1609.344

// IsValid checks if the given unit is in the list of valid units
func IsValid(unit string) bool {
	return slices.Contains(ValidUnits, unit)
}

// ValidUnitsString returns a comma-separated list of valid units for error
// messages.
func ValidUnitsString() string {
	return strings.Join(ValidUnits, ", ")
}

// factor returns metres per second for one of unit. An empty unit means m/s.
func factor(unit string) (float64, bool) {
	switch unit {
	case MPS, "":
		return 1, true
	case MPH:
		return metresPerMile / 3600, true
	case KMPH, KPH:
		return 1 / 3.6, true
	}
	return 0, false
}

// ToMPS converts speed in unit to metres per second.
func ToMPS(speed float64, unit string) (float64, error) {
	f, ok := factor(unit)
	if !ok {
		return 0, fmt.Errorf("invalid speed unit %q (valid: %s)", unit, ValidUnitsString())
	}
	return speed * f, nil
}

// FromMPS converts a speed in metres per second to unit. Unknown units are
// treated as m/s.
func FromMPS(speedMPS float64, unit string) float64 {
	f, ok := factor(unit)
	if !ok {
		return speedMPS
	}
	return speedMPS / f
}
