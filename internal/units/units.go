// Package units provides shared constants and validation for astronomical distance units
package units

// Unit constants
const (
	Mpc = "mpc"
	Kpc = "kpc"
	Pc  = "pc"
	Gly = "gly"
)

// Physical constants for the distance integrals. Keeping H0 in km/s/Mpc and
// c in km/s yields comoving distances directly in Mpc.
const (
	SpeedOfLightKMS = 299792.458 // speed of light in km/s
	PcPerMpc        = 1e6        // parsecs per megaparsec
	KpcPerMpc       = 1e3        // kiloparsecs per megaparsec
	LyPerPc         = 3.2615638  // light years per parsec
)

// ValidUnits contains all valid unit values
var ValidUnits = []string{Mpc, Kpc, Pc, Gly}

// IsValid checks if the given unit is in the list of valid units
func IsValid(unit string) bool {
	for _, validUnit := range ValidUnits {
		if unit == validUnit {
			return true
		}
	}
	return false
}

// GetValidUnitsString returns a comma-separated string of valid units for error messages
func GetValidUnitsString() string {
	return "mpc, kpc, pc, gly"
}

// ConvertDistance converts a distance from megaparsecs to the target units
// All lookup tables store distances in Mpc (megaparsecs)
func ConvertDistance(distMpc float64, targetUnits string) float64 {
	switch targetUnits {
	case Kpc:
		return distMpc * KpcPerMpc
	case Pc:
		return distMpc * PcPerMpc
	case Gly:
		return distMpc * PcPerMpc * LyPerPc / 1e9 // Mpc to giga light years
	case Mpc:
		return distMpc // no conversion needed
	default:
		return distMpc // default to Mpc if unknown unit
	}
}
