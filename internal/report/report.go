// Package report renders inspection output for generated mock catalogs:
// per-tracer redshift histogram PNGs and a standalone HTML overview page.
// Reports are a debugging aid for checking sampled catalogs against the
// tracer densities by eye; nothing in the generation path depends on them.
package report

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/banshee-data/skymock/internal/survey"
	"github.com/banshee-data/skymock/internal/tracer"
)

const (
	histogramBins = 50
	densityPoints = 200
)

// WriteHistograms renders one redshift histogram PNG per tracer, with the
// tracer's normalized density overlaid, plus a combined histogram for the
// whole catalog. Returns the number of plots written.
func WriteHistograms(cat *survey.Catalog, pops []tracer.Population, outputDir string) (int, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return 0, fmt.Errorf("create report directory: %w", err)
	}

	byTracer := make(map[string][]float64)
	for _, obj := range cat.Objects {
		byTracer[obj.Tracer] = append(byTracer[obj.Tracer], obj.Redshift)
	}

	plotCount := 0
	for _, pop := range pops {
		zs := byTracer[pop.Name()]
		if len(zs) == 0 {
			continue
		}
		file := filepath.Join(outputDir, fmt.Sprintf("redshift_hist_%s.png", pop.Name()))
		if err := writeTracerHistogram(pop, zs, file); err != nil {
			return plotCount, fmt.Errorf("tracer %s: %w", pop.Name(), err)
		}
		plotCount++
	}

	if len(cat.Objects) > 0 {
		file := filepath.Join(outputDir, "redshift_hist_combined.png")
		if err := writeCombinedHistogram(cat, file); err != nil {
			return plotCount, fmt.Errorf("combined histogram: %w", err)
		}
		plotCount++
	}

	return plotCount, nil
}

// writeTracerHistogram plots one tracer's sampled redshifts against the
// shape of its density.
func writeTracerHistogram(pop tracer.Population, zs []float64, file string) error {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s - Sampled Redshift Distribution (%d objects)", pop.Name(), len(zs))
	p.X.Label.Text = "Redshift z"
	p.Y.Label.Text = "Normalized density"

	h, err := plotter.NewHist(plotter.Values(zs), histogramBins)
	if err != nil {
		return fmt.Errorf("build histogram: %w", err)
	}
	h.Normalize(1)
	h.FillColor = color.RGBA{R: 100, G: 160, B: 220, A: 255}
	p.Add(h)

	line, err := plotter.NewLine(densityCurve(pop))
	if err != nil {
		return fmt.Errorf("build density line: %w", err)
	}
	line.Width = vg.Points(2)
	line.Color = color.RGBA{R: 220, G: 60, B: 60, A: 255}
	p.Add(line)
	p.Legend.Add("n(z)", line)

	if err := p.Save(10*vg.Inch, 6*vg.Inch, file); err != nil {
		return fmt.Errorf("save plot: %w", err)
	}
	return nil
}

// writeCombinedHistogram plots the redshift distribution of the full catalog.
func writeCombinedHistogram(cat *survey.Catalog, file string) error {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("Mock Catalog %s - Combined Redshift Distribution", cat.RunID)
	p.X.Label.Text = "Redshift z"
	p.Y.Label.Text = "Normalized density"

	h, err := plotter.NewHist(plotter.Values(cat.Redshifts()), histogramBins)
	if err != nil {
		return fmt.Errorf("build histogram: %w", err)
	}
	h.Normalize(1)
	h.FillColor = color.RGBA{R: 120, G: 120, B: 120, A: 255}
	p.Add(h)

	if err := p.Save(10*vg.Inch, 6*vg.Inch, file); err != nil {
		return fmt.Errorf("save plot: %w", err)
	}
	return nil
}

// densityCurve samples pop's density over the sampling domain, normalized
// to unit area so it overlays a Normalize(1) histogram directly.
func densityCurve(pop tracer.Population) plotter.XYs {
	zs := make([]float64, densityPoints)
	floats.Span(zs, tracer.SampleZMin, tracer.SampleZMax)
	ds := tracer.Density(pop, zs)

	// Trapezoid area for normalization
	area := 0.0
	for i := 1; i < len(zs); i++ {
		area += (ds[i] + ds[i-1]) / 2 * (zs[i] - zs[i-1])
	}

	pts := make(plotter.XYs, densityPoints)
	for i := range pts {
		pts[i].X = zs[i]
		pts[i].Y = ds[i]
		if area > 0 {
			pts[i].Y /= area
		}
	}
	return pts
}

// histogramCounts bins the given redshifts over the sampling domain and
// returns the bin centres and counts. Shared by the HTML overview.
func histogramCounts(zs []float64, bins int) (centres, counts []float64) {
	dividers := make([]float64, bins+1)
	floats.Span(dividers, tracer.SampleZMin, tracer.SampleZMax+1e-9)

	// stat.Histogram requires sorted samples
	sorted := append([]float64(nil), zs...)
	sort.Float64s(sorted)
	counts = stat.Histogram(nil, dividers, sorted, nil)

	centres = make([]float64, bins)
	for i := range centres {
		centres[i] = (dividers[i] + dividers[i+1]) / 2
	}
	return centres, counts
}
