package report

import (
	"fmt"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/banshee-data/skymock/internal/survey"
	"github.com/banshee-data/skymock/internal/tracer"
)

const overviewBins = 40

// WriteOverview renders a standalone HTML page with the tracer density
// curves and the catalog's redshift histogram, using go-echarts. The page
// is self-contained and opens directly in a browser.
func WriteOverview(cat *survey.Catalog, pops []tracer.Population, path string) error {
	page := components.NewPage()
	page.AddCharts(densityChart(pops), catalogChart(cat))

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create overview file: %w", err)
	}
	defer f.Close()

	if err := page.Render(f); err != nil {
		return fmt.Errorf("render overview: %w", err)
	}
	return nil
}

// densityChart draws every population's unnormalized n(z) over the sampling
// domain on one line chart.
func densityChart(pops []tracer.Population) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Mock Catalog Overview", Width: "900px", Height: "500px"}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Tracer Redshift Densities",
			Subtitle: "unnormalized n(z) over the sampling domain",
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "z"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "n(z)"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
	)

	zs := make([]float64, densityPoints)
	labels := make([]string, densityPoints)
	step := (tracer.SampleZMax - tracer.SampleZMin) / float64(densityPoints-1)
	for i := range zs {
		zs[i] = tracer.SampleZMin + float64(i)*step
		labels[i] = fmt.Sprintf("%.2f", zs[i])
	}
	line.SetXAxis(labels)

	for _, pop := range pops {
		ds := tracer.Density(pop, zs)
		data := make([]opts.LineData, len(ds))
		for i, d := range ds {
			data[i] = opts.LineData{Value: d}
		}
		line.AddSeries(pop.Name(), data,
			charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}))
	}
	return line
}

// catalogChart draws the catalog's binned redshift counts as a bar chart.
func catalogChart(cat *survey.Catalog) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "900px", Height: "500px"}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Catalog Redshift Histogram",
			Subtitle: fmt.Sprintf("run=%s objects=%d", cat.RunID, len(cat.Objects)),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "z"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "objects"}),
	)

	centres, counts := histogramCounts(cat.Redshifts(), overviewBins)
	labels := make([]string, len(centres))
	data := make([]opts.BarData, len(counts))
	for i := range centres {
		labels[i] = fmt.Sprintf("%.2f", centres[i])
		data[i] = opts.BarData{Value: counts[i]}
	}
	bar.SetXAxis(labels).AddSeries("objects", data)
	return bar
}
