package tracer

import "math"

// Grid resolution for the construction-time peak search used by populations
// that have no closed-form bound, plus the safety margin applied on top of
// the scanned maximum.
const (
	peakSearchPoints = 5001
	peakSearchMargin = 1.05
)

// gridPeakBound scans f densely over the sampling domain and returns the
// largest value found, inflated by a small safety margin so the bound
// dominates the true peak between grid points.
func gridPeakBound(f func(float64) float64) float64 {
	step := (SampleZMax - SampleZMin) / float64(peakSearchPoints-1)
	peak := 0.0
	for i := 0; i < peakSearchPoints; i++ {
		if v := f(SampleZMin + float64(i)*step); v > peak {
			peak = v
		}
	}
	return peak * peakSearchMargin
}

// LRG models Luminous Red Galaxies: a top-hat redshift window with error
// function shoulders between ZMin and ZMax.
type LRG struct {
	ZMin  float64
	ZMax  float64
	Sigma float64
	Norm  float64

	peakBound float64
}

// NewLRG creates an LRG population with the survey's fixed shape constants.
func NewLRG() *LRG {
	l := &LRG{ZMin: 0.4, ZMax: 1.0, Sigma: 0.1}
	l.Norm = 1.0 / (l.ZMax - l.ZMin)
	l.peakBound = gridPeakBound(l.DensityAt)
	return l
}

// Name implements Population.
func (l *LRG) Name() string { return "LRG" }

// DensityAt evaluates the Gaussian-shouldered top-hat density: near 1
// between ZMin and ZMax, falling to zero over a width of Sigma outside.
func (l *LRG) DensityAt(z float64) float64 {
	return 0.5 * (math.Erf((z-l.ZMin)/(math.Sqrt2*l.Sigma)) - math.Erf((z-l.ZMax)/(math.Sqrt2*l.Sigma)))
}

// PeakBound implements Population. The bound is found by dense grid search
// at construction since the shouldered top-hat has no tidy closed-form peak.
func (l *LRG) PeakBound() float64 { return l.peakBound }

// ELG models Emission Line Galaxies with a modified Schechter density
// z^Alpha * exp(-(z/Z0)^Beta).
type ELG struct {
	Alpha float64
	Beta  float64
	Z0    float64

	// MaxProbEstimate is the declared density peak bound.
	MaxProbEstimate float64
}

// NewELG creates an ELG population with the survey's fixed shape constants.
func NewELG() *ELG {
	return &ELG{Alpha: 2.0, Beta: 1.5, Z0: 0.8, MaxProbEstimate: 1.0}
}

// Name implements Population.
func (e *ELG) Name() string { return "ELG" }

// DensityAt evaluates the modified Schechter density.
func (e *ELG) DensityAt(z float64) float64 {
	return math.Pow(z, e.Alpha) * math.Exp(-math.Pow(z/e.Z0, e.Beta))
}

// PeakBound implements Population.
func (e *ELG) PeakBound() float64 { return e.MaxProbEstimate }

// QSO models quasars with a power-law rise and exponential cutoff
// z^2 * exp(-z/ZStar).
type QSO struct {
	ZStar float64

	peakBound float64
}

// NewQSO creates a QSO population with the survey's fixed shape constants.
func NewQSO() *QSO {
	q := &QSO{ZStar: 2.0}
	q.peakBound = gridPeakBound(q.DensityAt)
	return q
}

// Name implements Population.
func (q *QSO) Name() string { return "QSO" }

// DensityAt evaluates the quasar density.
func (q *QSO) DensityAt(z float64) float64 {
	return z * z * math.Exp(-z/q.ZStar)
}

// PeakBound implements Population. Grid-searched at construction; the true
// peak sits at z = 2*ZStar with value (2*ZStar)^2/e^2, well above 1.
func (q *QSO) PeakBound() float64 { return q.peakBound }

// BGS models Bright Galaxy Survey targets: the same modified Schechter form
// as ELG but concentrated at much lower redshift.
type BGS struct {
	Alpha float64
	Beta  float64
	Z0    float64

	// MaxProbEstimate is the declared density peak bound.
	MaxProbEstimate float64
}

// NewBGS creates a BGS population with the survey's fixed shape constants.
func NewBGS() *BGS {
	return &BGS{Alpha: 2.0, Beta: 1.5, Z0: 0.2, MaxProbEstimate: 1.0}
}

// Name implements Population.
func (b *BGS) Name() string { return "BGS" }

// DensityAt evaluates the modified Schechter density.
func (b *BGS) DensityAt(z float64) float64 {
	return math.Pow(z, b.Alpha) * math.Exp(-math.Pow(z/b.Z0, b.Beta))
}

// PeakBound implements Population.
func (b *BGS) PeakBound() float64 { return b.MaxProbEstimate }

// AllPopulations returns the four tracer populations in catalog order.
func AllPopulations() []Population {
	return []Population{NewLRG(), NewELG(), NewQSO(), NewBGS()}
}

// Verify at compile time that every variant implements Population.
var (
	_ Population = (*LRG)(nil)
	_ Population = (*ELG)(nil)
	_ Population = (*QSO)(nil)
	_ Population = (*BGS)(nil)
)
