// Package cosmology computes standard cosmological distance measures from
// redshift for a fixed flat LCDM background.
//
// A Model precomputes a redshift to comoving-distance lookup table by
// numerical integration at construction time, then answers distance queries
// via cubic interpolation and closed-form transforms. Models are immutable
// after construction and safe for concurrent read-only use.
package cosmology

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/integrate/quad"
	"gonum.org/v1/gonum/interp"

	"github.com/banshee-data/skymock/internal/units"
)

// ErrNonPositiveDistance is returned by DistanceModulus when the luminosity
// distance at the requested redshift is not positive, which would put the
// logarithm outside its domain.
var ErrNonPositiveDistance = errors.New("cosmology: luminosity distance is not positive")

// Lookup table resolution. 1000 rows over z in [0, 5] keeps interpolation
// error well below the table spacing for a smooth integrand.
const (
	tableRows = 1000
	tableZMax = 5.0

	// Nodes per Gauss-Legendre quadrature. The integrand 1/E(z) is smooth
	// on [0, 5], so a modest fixed order is already converged.
	quadNodes = 40
)

// Parameters holds the cosmological parameters of a flat LCDM background.
// Values are fixed at construction and never mutated.
type Parameters struct {
	H           float64 // dimensionless Hubble parameter h
	H0          float64 // Hubble constant in km/s/Mpc
	OmegaM      float64 // matter density parameter
	OmegaLambda float64 // dark energy density parameter
	C           float64 // speed of light in km/s
}

// Planck18 returns the Planck 2018 cosmological parameters.
func Planck18() Parameters {
	h := 0.6737
	return Parameters{
		H:           h,
		H0:          100 * h,
		OmegaM:      0.3147,
		OmegaLambda: 0.6853,
		C:           units.SpeedOfLightKMS,
	}
}

// E computes the dimensionless Hubble parameter E(z).
// Callers must not pass z < -1 (negative root domain).
func (p Parameters) E(z float64) float64 {
	return math.Sqrt(p.OmegaM*math.Pow(1+z, 3) + p.OmegaLambda)
}

// Model answers distance queries for one set of cosmological parameters.
// The zero value is not usable; construct with New or NewWithParameters.
type Model struct {
	params Parameters

	// Comoving distance lookup: cubic fit through tableRows samples of the
	// distance integral, evaluated once at construction.
	lookup interp.NaturalCubic
}

// New creates a Model with Planck 2018 parameters and builds its lookup table.
func New() (*Model, error) {
	return NewWithParameters(Planck18())
}

// NewWithParameters creates a Model for the given parameters and builds its
// lookup table by integrating c/(H0*E(z')) from 0 to each table redshift.
func NewWithParameters(p Parameters) (*Model, error) {
	m := &Model{params: p}

	zVals := make([]float64, tableRows)
	dcVals := make([]float64, tableRows)
	step := tableZMax / float64(tableRows-1)

	integrand := func(zPrime float64) float64 {
		return p.C / p.H0 / p.E(zPrime)
	}

	for i := range zVals {
		z := float64(i) * step
		zVals[i] = z
		dcVals[i] = quad.Fixed(integrand, 0, z, quadNodes, nil, 0)
	}

	if err := m.lookup.Fit(zVals, dcVals); err != nil {
		return nil, fmt.Errorf("fit comoving distance lookup: %w", err)
	}
	return m, nil
}

// Parameters returns the cosmological parameters the model was built with.
func (m *Model) Parameters() Parameters {
	return m.params
}

// E computes the dimensionless Hubble parameter E(z) for the model's
// parameters. Pure; does not touch the lookup table.
func (m *Model) E(z float64) float64 {
	return m.params.E(z)
}

// ComovingDistance returns the comoving distance to redshift z in Mpc.
// Inside [0, 5] the value matches the distance integral to interpolation
// error. Outside that range the table is extended linearly from the nearest
// boundary using the spline's endpoint slope (Predict alone clamps to the
// boundary value); extrapolated values are unverified.
func (m *Model) ComovingDistance(z float64) float64 {
	switch {
	case z < 0:
		return m.lookup.Predict(0) + m.lookup.PredictDerivative(0)*z
	case z > tableZMax:
		return m.lookup.Predict(tableZMax) + m.lookup.PredictDerivative(tableZMax)*(z-tableZMax)
	}
	return m.lookup.Predict(z)
}

// LuminosityDistance returns the luminosity distance to redshift z in Mpc,
// (1+z) times the comoving distance.
func (m *Model) LuminosityDistance(z float64) float64 {
	return (1 + z) * m.ComovingDistance(z)
}

// DistanceModulus returns the distance modulus at redshift z, converting the
// luminosity distance from Mpc to pc before applying 5*log10(d_pc) - 5.
// Returns ErrNonPositiveDistance when the luminosity distance is <= 0, which
// only happens for degenerate or negative redshifts.
func (m *Model) DistanceModulus(z float64) (float64, error) {
	dL := m.LuminosityDistance(z)
	if dL <= 0 {
		return 0, fmt.Errorf("distance modulus at z=%g: %w", z, ErrNonPositiveDistance)
	}
	return 5*math.Log10(dL*units.PcPerMpc) - 5, nil
}
