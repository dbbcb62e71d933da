package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/banshee-data/skymock/internal/survey"
	"github.com/banshee-data/skymock/internal/tracer"
)

func generateTestCatalog(t *testing.T, n int) (*survey.Catalog, []tracer.Population) {
	t.Helper()
	g, err := survey.NewGenerator(42)
	if err != nil {
		t.Fatalf("NewGenerator failed: %v", err)
	}
	cat, err := g.GenerateCatalog(n)
	if err != nil {
		t.Fatalf("GenerateCatalog failed: %v", err)
	}
	return cat, g.Populations()
}

func TestWriteHistograms(t *testing.T) {
	cat, pops := generateTestCatalog(t, 400)
	dir := t.TempDir()

	plotCount, err := WriteHistograms(cat, pops, dir)
	if err != nil {
		t.Fatalf("WriteHistograms failed: %v", err)
	}

	// One plot per tracer that contributed objects, plus the combined plot
	contributed := len(cat.CountByTracer())
	if want := contributed + 1; plotCount != want {
		t.Errorf("plotCount = %d, want %d", plotCount, want)
	}

	combined := filepath.Join(dir, "redshift_hist_combined.png")
	info, err := os.Stat(combined)
	if err != nil {
		t.Fatalf("combined histogram missing: %v", err)
	}
	if info.Size() == 0 {
		t.Error("combined histogram is empty")
	}

	for name := range cat.CountByTracer() {
		file := filepath.Join(dir, "redshift_hist_"+name+".png")
		if _, err := os.Stat(file); err != nil {
			t.Errorf("histogram for %s missing: %v", name, err)
		}
	}
}

func TestWriteHistograms_EmptyCatalog(t *testing.T) {
	cat, pops := generateTestCatalog(t, 0)
	dir := t.TempDir()

	plotCount, err := WriteHistograms(cat, pops, dir)
	if err != nil {
		t.Fatalf("WriteHistograms failed on empty catalog: %v", err)
	}
	if plotCount != 0 {
		t.Errorf("expected no plots for empty catalog, got %d", plotCount)
	}
}

func TestWriteOverview(t *testing.T) {
	cat, pops := generateTestCatalog(t, 400)
	path := filepath.Join(t.TempDir(), "overview.html")

	if err := WriteOverview(cat, pops, path); err != nil {
		t.Fatalf("WriteOverview failed: %v", err)
	}

	body, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("overview missing: %v", err)
	}
	html := string(body)
	for _, want := range []string{"Tracer Redshift Densities", "Catalog Redshift Histogram"} {
		if !strings.Contains(html, want) {
			t.Errorf("overview missing %q section", want)
		}
	}
}

func TestHistogramCounts(t *testing.T) {
	zs := []float64{0.1, 0.1, 0.2, 4.9}
	centres, counts := histogramCounts(zs, 10)
	if len(centres) != 10 || len(counts) != 10 {
		t.Fatalf("expected 10 bins, got %d centres and %d counts", len(centres), len(counts))
	}

	total := 0.0
	for _, c := range counts {
		total += c
	}
	if total != float64(len(zs)) {
		t.Errorf("histogram counts sum to %f, want %d", total, len(zs))
	}
	if counts[0] != 3 {
		t.Errorf("first bin = %f, want 3", counts[0])
	}
	if counts[9] != 1 {
		t.Errorf("last bin = %f, want 1", counts[9])
	}
}
