// Package survey assembles mock catalogs by splitting a requested object
// count across the four tracer populations and sampling each population's
// redshift distribution.
package survey

import (
	"fmt"
	"math/rand/v2"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/banshee-data/skymock/internal/cosmology"
	"github.com/banshee-data/skymock/internal/tracer"
)

// Counts holds the per-population split of a catalog request, in catalog
// order (LRG, ELG, QSO, BGS).
type Counts struct {
	LRG int
	ELG int
	QSO int
	BGS int
}

// Total returns the sum of all per-population counts.
func (c Counts) Total() int {
	return c.LRG + c.ELG + c.QSO + c.BGS
}

// SplitCounts partitions n into four non-negative parts summing to n by
// drawing three cut points uniformly in [0, n], sorting them, and taking
// the segment lengths. Sorting before differencing is what keeps every part
// non-negative and the realized total exactly n.
func SplitCounts(rng *rand.Rand, n int) (Counts, error) {
	if n < 0 {
		return Counts{}, fmt.Errorf("survey: catalog size must be non-negative, got %d", n)
	}
	edges := []int{rng.IntN(n + 1), rng.IntN(n + 1), rng.IntN(n + 1)}
	sort.Ints(edges)
	return Counts{
		LRG: edges[0],
		ELG: edges[1] - edges[0],
		QSO: edges[2] - edges[1],
		BGS: n - edges[2],
	}, nil
}

// Object is one entry of a mock catalog. The redshift is drawn from the
// tagged tracer's distribution; the remaining attributes are placeholder
// draws independent of redshift and of each other.
type Object struct {
	Tracer              string
	Redshift            float64
	AbsoluteMagnitude   float64
	Color               float64
	PeculiarVelocityKMS float64
	HaloMassMsun        float64

	// Distance measures evaluated at the object's redshift.
	ComovingDistanceMpc float64
	DistanceModulus     float64
}

// Catalog is a generated mock catalog. Objects are grouped by tracer in
// catalog order (LRG, ELG, QSO, BGS).
type Catalog struct {
	RunID     uuid.UUID
	CreatedAt time.Time
	Objects   []Object
}

// Redshifts returns the redshift column of the catalog.
func (c *Catalog) Redshifts() []float64 {
	out := make([]float64, len(c.Objects))
	for i, obj := range c.Objects {
		out[i] = obj.Redshift
	}
	return out
}

// CountByTracer returns how many objects each tracer contributed.
func (c *Catalog) CountByTracer() map[string]int {
	out := make(map[string]int)
	for _, obj := range c.Objects {
		out[obj.Tracer]++
	}
	return out
}

// Generator produces mock catalogs. It owns the four populations, a
// redshift sampler, and a distance model; all randomness comes from the
// seed handed to NewGenerator, so identical seeds reproduce identical
// catalogs (run IDs and timestamps aside).
type Generator struct {
	populations []tracer.Population
	sampler     *tracer.Sampler
	model       *cosmology.Model
	rng         *rand.Rand
}

// NewGenerator creates a Generator seeded with seed. Building the distance
// model performs the lookup-table integrations up front.
func NewGenerator(seed uint64) (*Generator, error) {
	model, err := cosmology.New()
	if err != nil {
		return nil, fmt.Errorf("build distance model: %w", err)
	}
	return &Generator{
		populations: tracer.AllPopulations(),
		sampler:     tracer.NewSeededSampler(seed),
		model:       model,
		rng:         rand.New(rand.NewPCG(seed, seed+1)),
	}, nil
}

// Model returns the generator's distance model.
func (g *Generator) Model() *cosmology.Model {
	return g.model
}

// Populations returns the generator's tracer populations in catalog order.
func (g *Generator) Populations() []tracer.Population {
	return g.populations
}

// GenerateRedshifts produces a combined redshift catalog of exactly n
// values, split randomly across the four populations and concatenated in
// catalog order.
func (g *Generator) GenerateRedshifts(n int) ([]float64, error) {
	counts, err := SplitCounts(g.rng, n)
	if err != nil {
		return nil, err
	}

	redshifts := make([]float64, 0, n)
	for i, count := range []int{counts.LRG, counts.ELG, counts.QSO, counts.BGS} {
		if count <= 0 {
			continue
		}
		pop := g.populations[i]
		zs, err := g.sampler.SampleRedshifts(pop, count)
		if err != nil {
			return nil, fmt.Errorf("sample %s redshifts: %w", pop.Name(), err)
		}
		redshifts = append(redshifts, zs...)
	}
	return redshifts, nil
}

// GenerateCatalog produces a full mock catalog of exactly n objects. Every
// object carries its originating tracer tag, placeholder photometric and
// dynamical attributes, and distance measures from the generator's model.
func (g *Generator) GenerateCatalog(n int) (*Catalog, error) {
	counts, err := SplitCounts(g.rng, n)
	if err != nil {
		return nil, err
	}

	cat := &Catalog{
		RunID:     uuid.New(),
		CreatedAt: time.Now().UTC(),
		Objects:   make([]Object, 0, n),
	}

	for i, count := range []int{counts.LRG, counts.ELG, counts.QSO, counts.BGS} {
		if count <= 0 {
			continue
		}
		pop := g.populations[i]

		zs, err := g.sampler.SampleRedshifts(pop, count)
		if err != nil {
			return nil, fmt.Errorf("sample %s redshifts: %w", pop.Name(), err)
		}
		mags := g.sampler.SampleAbsoluteMagnitudes(count)
		colors := g.sampler.SampleColors(count)
		vels := g.sampler.SamplePeculiarVelocities(count)
		masses := g.sampler.SampleHaloMasses(count)

		for j, z := range zs {
			mu, err := g.model.DistanceModulus(z)
			if err != nil {
				return nil, fmt.Errorf("distance modulus for %s object: %w", pop.Name(), err)
			}
			cat.Objects = append(cat.Objects, Object{
				Tracer:              pop.Name(),
				Redshift:            z,
				AbsoluteMagnitude:   mags[j],
				Color:               colors[j],
				PeculiarVelocityKMS: vels[j],
				HaloMassMsun:        masses[j],
				ComovingDistanceMpc: g.model.ComovingDistance(z),
				DistanceModulus:     mu,
			})
		}
	}

	return cat, nil
}
