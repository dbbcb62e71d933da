// Command skymock generates a synthetic cosmological survey catalog and
// optionally writes histogram plots and an HTML overview for inspection.
package main

import (
	"flag"
	"fmt"
	"log"
	"path/filepath"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/banshee-data/skymock/internal/report"
	"github.com/banshee-data/skymock/internal/survey"
	"github.com/banshee-data/skymock/internal/units"
)

func main() {
	count := flag.Int("n", 10000, "number of objects to generate")
	seed := flag.Uint64("seed", 0, "random seed (0 uses the current time)")
	outDir := flag.String("out", "", "directory for histogram plots and overview (empty disables)")
	distUnits := flag.String("units", units.Mpc, "distance units for the summary: "+units.GetValidUnitsString())
	flag.Parse()

	if !units.IsValid(*distUnits) {
		log.Fatalf("[Skymock] Invalid units %q (valid: %s)", *distUnits, units.GetValidUnitsString())
	}

	if *seed == 0 {
		*seed = uint64(time.Now().UnixNano())
	}
	log.Printf("[Skymock] Generating %d objects (seed=%d)", *count, *seed)

	gen, err := survey.NewGenerator(*seed)
	if err != nil {
		log.Fatalf("[Skymock] Failed to build generator: %v", err)
	}

	start := time.Now()
	cat, err := gen.GenerateCatalog(*count)
	if err != nil {
		log.Fatalf("[Skymock] Catalog generation failed: %v", err)
	}
	log.Printf("[Skymock] Generated catalog %s in %s", cat.RunID, time.Since(start).Round(time.Millisecond))

	printSummary(cat, *distUnits)

	if *outDir != "" {
		plotCount, err := report.WriteHistograms(cat, gen.Populations(), *outDir)
		if err != nil {
			log.Fatalf("[Skymock] Failed to write histograms: %v", err)
		}
		overview := filepath.Join(*outDir, "overview.html")
		if err := report.WriteOverview(cat, gen.Populations(), overview); err != nil {
			log.Fatalf("[Skymock] Failed to write overview: %v", err)
		}
		log.Printf("[Skymock] Wrote %d plots and %s", plotCount, overview)
	}
}

// printSummary logs per-tracer counts and catalog-level statistics.
func printSummary(cat *survey.Catalog, distUnits string) {
	byTracer := cat.CountByTracer()
	for _, name := range []string{"LRG", "ELG", "QSO", "BGS"} {
		log.Printf("[Skymock]   %s: %d objects", name, byTracer[name])
	}

	if len(cat.Objects) == 0 {
		return
	}

	zs := cat.Redshifts()
	dists := make([]float64, len(cat.Objects))
	for i, obj := range cat.Objects {
		dists[i] = units.ConvertDistance(obj.ComovingDistanceMpc, distUnits)
	}
	log.Printf("[Skymock]   mean z = %.3f, mean comoving distance = %s",
		stat.Mean(zs, nil), formatDistance(stat.Mean(dists, nil), distUnits))
}

func formatDistance(d float64, distUnits string) string {
	return fmt.Sprintf("%.1f %s", d, distUnits)
}
