// Command validate performs pre-flight integrity checks on a raw-data
// directory: it loads each dataset through the real loader, reports row and
// drop counts, and exits non-zero when any required file or column is
// missing. Useful after a manual download to catch schema drift before a
// full pipeline run.
//
// Usage:
//
//	go run ./cmd/validate -raw-dir data/raw
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/couchcryptid/wildfire-climate-etl/internal/domain"
	"github.com/couchcryptid/wildfire-climate-etl/internal/loader"
	"github.com/couchcryptid/wildfire-climate-etl/internal/observability"
)

func main() {
	rawDir := flag.String("raw-dir", "data/raw", "directory containing the raw CSV datasets")
	flag.Parse()

	logger := observability.NewLogger("info", "text")
	l := loader.New(*rawDir, logger, observability.NewMetrics())

	failures := 0

	obs, err := l.LoadClimate()
	if err != nil {
		logger.Error("dataset invalid", "dataset", "climate", "error", err)
		failures++
	} else {
		daily := domain.PivotDaily(obs)
		fmt.Printf("climate: %d observations, %d station-days\n", len(obs), len(daily))
	}

	fires, hasRegion, err := l.LoadFires()
	if err != nil {
		logger.Error("dataset invalid", "dataset", "fires", "error", err)
		failures++
	} else {
		fmt.Printf("fires: %d detections, regional split available: %v\n", len(fires), hasRegion)
	}

	decls, err := l.LoadFema()
	if err != nil {
		logger.Error("dataset invalid", "dataset", "fema", "error", err)
		failures++
	} else {
		fmt.Printf("fema: %d declarations across %d years\n", len(decls), len(domain.CountDeclarationsByYear(decls)))
	}

	if failures > 0 {
		fmt.Printf("validation failed for %d dataset(s)\n", failures)
		os.Exit(1)
	}
	fmt.Println("all datasets valid")
}
