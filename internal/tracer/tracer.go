// Package tracer models the redshift distributions of four survey tracer
// populations (LRG, ELG, QSO, BGS) and draws redshift samples from them by
// batched rejection sampling.
//
// Populations are stateless beyond their fixed shape constants; all
// randomness flows through an explicitly injected source so runs are
// reproducible under a fixed seed.
package tracer

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// ErrSamplingStalled is returned when rejection sampling accepts nothing for
// many consecutive batches, which indicates a broken density or a peak bound
// set far above the density's actual values.
var ErrSamplingStalled = errors.New("tracer: rejection sampling did not converge")

// Sampling domain shared by every population. Proposals always span the full
// survey range; populations concentrated in a narrower interval rely on
// their density being near zero outside it to reject those proposals.
const (
	SampleZMin = 0.0
	SampleZMax = 5.0
)

// Population describes one tracer population's unnormalized redshift
// density n(z). Only the relative shape matters for sampling; densities need
// not integrate to 1.
type Population interface {
	// Name returns the short survey name of the population (e.g. "LRG").
	Name() string

	// DensityAt evaluates n(z). Pure and deterministic; must be
	// non-negative over [SampleZMin, SampleZMax].
	DensityAt(z float64) float64

	// PeakBound returns an upper bound on n(z) over the sampling domain.
	// A bound below the true peak does not fail: it silently biases the
	// samples by truncating the density at the bound. Bounds are therefore
	// verified numerically in the test suite rather than trusted.
	PeakBound() float64
}

// Density evaluates pop's density at every redshift in zs.
func Density(pop Population, zs []float64) []float64 {
	out := make([]float64, len(zs))
	for i, z := range zs {
		out[i] = pop.DensityAt(z)
	}
	return out
}

// Sampler draws redshifts and placeholder object attributes from an injected
// random source. A Sampler is cheap; create one per goroutine rather than
// sharing (the underlying source is not synchronised).
type Sampler struct {
	src rand.Source
	rng *rand.Rand

	// Oversample is the proposal batch multiplier. Each rejection batch
	// proposes Oversample times the number of samples still needed,
	// assuming roughly 1/Oversample acceptance efficiency. Throughput
	// heuristic only; correctness does not depend on it.
	Oversample int

	// MaxEmptyBatches bounds how many consecutive batches may accept
	// nothing before SampleRedshifts gives up with ErrSamplingStalled.
	MaxEmptyBatches int
}

// minBatchSize floors the proposal batch. Near the end of a draw the
// remaining count is tiny, and a loose peak bound (BGS's declared bound sits
// well above its true peak) can make small batches come back empty often
// enough to trip the stall guard on a perfectly healthy density.
const minBatchSize = 256

// NewSampler creates a Sampler drawing from the given source.
func NewSampler(src rand.Source) *Sampler {
	return &Sampler{
		src:             src,
		rng:             rand.New(src),
		Oversample:      3,
		MaxEmptyBatches: 64,
	}
}

// NewSeededSampler creates a Sampler with a PCG source seeded from seed.
func NewSeededSampler(seed uint64) *Sampler {
	return NewSampler(rand.NewPCG(seed, seed))
}

// SampleRedshifts draws exactly n redshifts distributed proportionally to
// pop's density restricted to [SampleZMin, SampleZMax].
//
// Each batch proposes uniform redshifts across the domain and uniform
// heights in [0, PeakBound); a proposal is accepted when its height falls
// strictly below the density there. Accepted proposals accumulate until n
// are available; the excess from the final batch is discarded first-N.
func (s *Sampler) SampleRedshifts(pop Population, n int) ([]float64, error) {
	if n < 0 {
		return nil, fmt.Errorf("tracer: sample count must be non-negative, got %d", n)
	}
	samples := make([]float64, 0, n)
	bound := pop.PeakBound()

	emptyBatches := 0
	for len(samples) < n {
		batchSize := max((n-len(samples))*s.Oversample, minBatchSize)
		accepted := 0
		for i := 0; i < batchSize; i++ {
			zProposal := SampleZMin + s.rng.Float64()*(SampleZMax-SampleZMin)
			probProposal := s.rng.Float64() * bound
			if probProposal < pop.DensityAt(zProposal) {
				samples = append(samples, zProposal)
				accepted++
			}
		}

		if accepted == 0 {
			emptyBatches++
			if emptyBatches >= s.MaxEmptyBatches {
				return nil, fmt.Errorf("tracer: %s accepted 0 of %d proposals over %d batches: %w",
					pop.Name(), batchSize*emptyBatches, emptyBatches, ErrSamplingStalled)
			}
		} else {
			emptyBatches = 0
		}
	}

	return samples[:n], nil
}

// SampleAbsoluteMagnitudes draws n absolute magnitudes, uniform in [-22, -18).
// Placeholder distribution, independent of redshift.
func (s *Sampler) SampleAbsoluteMagnitudes(n int) []float64 {
	u := distuv.Uniform{Min: -22, Max: -18, Src: s.src}
	return drawN(u.Rand, n)
}

// SampleColors draws n colors, uniform in [0, 2). Placeholder distribution.
func (s *Sampler) SampleColors(n int) []float64 {
	u := distuv.Uniform{Min: 0, Max: 2, Src: s.src}
	return drawN(u.Rand, n)
}

// SamplePeculiarVelocities draws n peculiar velocities in km/s, normal with
// mean 0 and standard deviation 300. Placeholder distribution.
func (s *Sampler) SamplePeculiarVelocities(n int) []float64 {
	norm := distuv.Normal{Mu: 0, Sigma: 300, Src: s.src}
	return drawN(norm.Rand, n)
}

// SampleHaloMasses draws n halo masses in solar masses, log-normal with
// log10 mean 12 and log10 standard deviation 0.5. Placeholder distribution.
func (s *Sampler) SampleHaloMasses(n int) []float64 {
	norm := distuv.Normal{Mu: 12, Sigma: 0.5, Src: s.src}
	out := make([]float64, max(n, 0))
	for i := range out {
		out[i] = math.Pow(10, norm.Rand())
	}
	return out
}

func drawN(draw func() float64, n int) []float64 {
	out := make([]float64, max(n, 0))
	for i := range out {
		out[i] = draw()
	}
	return out
}
