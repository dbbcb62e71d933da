package survey

import (
	"math/rand/v2"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/skymock/internal/tracer"
)

func TestSplitCounts_PartsSumToTotal(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))

	for _, n := range []int{0, 1, 2, 10, 1000} {
		for trial := 0; trial < 200; trial++ {
			counts, err := SplitCounts(rng, n)
			require.NoError(t, err)

			assert.GreaterOrEqual(t, counts.LRG, 0)
			assert.GreaterOrEqual(t, counts.ELG, 0)
			assert.GreaterOrEqual(t, counts.QSO, 0)
			assert.GreaterOrEqual(t, counts.BGS, 0)
			assert.Equal(t, n, counts.Total(), "parts must sum to the requested total")
		}
	}
}

func TestSplitCounts_NegativeTotal(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	_, err := SplitCounts(rng, -1)
	require.Error(t, err)
}

func TestSplitCounts_Zero(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	counts, err := SplitCounts(rng, 0)
	require.NoError(t, err)
	assert.Equal(t, Counts{}, counts)
}

func TestGenerateRedshifts_ExactTotal(t *testing.T) {
	g, err := NewGenerator(99)
	require.NoError(t, err)

	const n = 1000
	zs, err := g.GenerateRedshifts(n)
	require.NoError(t, err)
	require.Len(t, zs, n, "sorted-edge splitting must return exactly n redshifts")

	for _, z := range zs {
		assert.GreaterOrEqual(t, z, tracer.SampleZMin)
		assert.LessOrEqual(t, z, tracer.SampleZMax)
	}
}

func TestGenerateCatalog(t *testing.T) {
	g, err := NewGenerator(5)
	require.NoError(t, err)

	const n = 2000
	cat, err := g.GenerateCatalog(n)
	require.NoError(t, err)
	require.Len(t, cat.Objects, n)
	assert.NotEqual(t, cat.RunID.String(), "00000000-0000-0000-0000-000000000000")
	assert.False(t, cat.CreatedAt.IsZero())

	// Tags must come from the four known tracers and cover the whole catalog
	byTracer := cat.CountByTracer()
	total := 0
	for name, count := range byTracer {
		assert.Contains(t, []string{"LRG", "ELG", "QSO", "BGS"}, name)
		total += count
	}
	assert.Equal(t, n, total)

	for _, obj := range cat.Objects {
		assert.GreaterOrEqual(t, obj.Redshift, tracer.SampleZMin)
		assert.LessOrEqual(t, obj.Redshift, tracer.SampleZMax)
		assert.GreaterOrEqual(t, obj.AbsoluteMagnitude, -22.0)
		assert.Less(t, obj.AbsoluteMagnitude, -18.0)
		assert.GreaterOrEqual(t, obj.Color, 0.0)
		assert.Less(t, obj.Color, 2.0)
		assert.Greater(t, obj.HaloMassMsun, 0.0)
		assert.Greater(t, obj.ComovingDistanceMpc, 0.0)
	}
}

// Objects are grouped by tracer in catalog order.
func TestGenerateCatalog_TracerOrder(t *testing.T) {
	g, err := NewGenerator(17)
	require.NoError(t, err)

	cat, err := g.GenerateCatalog(500)
	require.NoError(t, err)

	order := map[string]int{"LRG": 0, "ELG": 1, "QSO": 2, "BGS": 3}
	prev := -1
	for _, obj := range cat.Objects {
		rank, ok := order[obj.Tracer]
		require.True(t, ok, "unknown tracer %q", obj.Tracer)
		require.GreaterOrEqual(t, rank, prev, "objects must be grouped in catalog order")
		prev = rank
	}
}

// Distance columns must agree with the generator's own model.
func TestGenerateCatalog_DistanceColumns(t *testing.T) {
	g, err := NewGenerator(23)
	require.NoError(t, err)

	cat, err := g.GenerateCatalog(200)
	require.NoError(t, err)

	m := g.Model()
	for _, obj := range cat.Objects {
		assert.Equal(t, m.ComovingDistance(obj.Redshift), obj.ComovingDistanceMpc)
		mu, err := m.DistanceModulus(obj.Redshift)
		require.NoError(t, err)
		assert.Equal(t, mu, obj.DistanceModulus)
	}
}

// Identical seeds must reproduce identical catalogs, run metadata aside.
func TestGenerateCatalog_Deterministic(t *testing.T) {
	g1, err := NewGenerator(123)
	require.NoError(t, err)
	g2, err := NewGenerator(123)
	require.NoError(t, err)

	cat1, err := g1.GenerateCatalog(300)
	require.NoError(t, err)
	cat2, err := g2.GenerateCatalog(300)
	require.NoError(t, err)

	if diff := cmp.Diff(cat1.Objects, cat2.Objects); diff != "" {
		t.Errorf("catalogs from identical seeds differ (-first +second):\n%s", diff)
	}
	assert.NotEqual(t, cat1.RunID, cat2.RunID, "run IDs must be unique per catalog")
}

func TestGenerateCatalog_Empty(t *testing.T) {
	g, err := NewGenerator(1)
	require.NoError(t, err)

	cat, err := g.GenerateCatalog(0)
	require.NoError(t, err)
	assert.Empty(t, cat.Objects)
}

func TestGenerateCatalog_NegativeCount(t *testing.T) {
	g, err := NewGenerator(1)
	require.NoError(t, err)

	_, err = g.GenerateCatalog(-10)
	require.Error(t, err)
}
