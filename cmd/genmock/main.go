// Command genmock generates synthetic raw CSV fixtures for the pipeline:
// a fire-history dataset with the regional summer bias seen in real MODIS
// detections, a long-format climate dataset with seasonal structure, and a
// small set of FEMA declarations tied to the heaviest fire years.
//
// Usage:
//
//	go run ./cmd/genmock -out-dir data/raw -points 1000 -seed 42
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/couchcryptid/wildfire-climate-etl/internal/loader"
)

// Washington bounding box and the approximate Cascade crest longitude used
// to split eastern from western detections.
const (
	minLon, maxLon = -124.85, -116.92
	minLat, maxLat = 45.54, 49.0
	cascadeLon     = -120.85
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	outDir := flag.String("out-dir", "data/raw", "directory to write raw CSV fixtures")
	points := flag.Int("points", 1000, "number of fire detections to generate")
	startYear := flag.Int("start-year", 1990, "first year of generated data")
	endYear := flag.Int("end-year", time.Now().Year(), "last year of generated data")
	seed := flag.Int64("seed", 42, "random seed for reproducible fixtures")
	flag.Parse()

	if *endYear < *startYear {
		return fmt.Errorf("end-year %d before start-year %d", *endYear, *startYear)
	}

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", *outDir, err)
	}

	rng := rand.New(rand.NewSource(*seed))

	fireYears, err := writeFires(*outDir, rng, *points, *startYear, *endYear)
	if err != nil {
		return fmt.Errorf("fires: %w", err)
	}
	if err := writeClimate(*outDir, rng, *startYear, *endYear); err != nil {
		return fmt.Errorf("climate: %w", err)
	}
	if err := writeFema(*outDir, rng, fireYears); err != nil {
		return fmt.Errorf("fema: %w", err)
	}

	log.Printf("fixtures written to %s", *outDir)
	return nil
}

// writeFires generates detections across the state, biasing eastern ones
// toward summer months. Returns the per-year detection counts so the FEMA
// fixture can declare disasters in heavy fire years.
func writeFires(dir string, rng *rand.Rand, points, startYear, endYear int) (map[int]int, error) {
	rows := [][]string{{"latitude", "longitude", "acq_date", "confidence", "frp", "brightness", "is_eastern"}}
	yearCounts := make(map[int]int)

	for i := 0; i < points; i++ {
		lon := minLon + rng.Float64()*(maxLon-minLon)
		lat := minLat + rng.Float64()*(maxLat-minLat)
		eastern := lon > cascadeLon

		year := startYear + rng.Intn(endYear-startYear+1)
		month := 1 + rng.Intn(12)
		if eastern && rng.Float64() < 0.7 {
			month = 6 + rng.Intn(4) // June through September
		}
		day := 1 + rng.Intn(28)
		date := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
		yearCounts[year]++

		confidence := "nominal"
		if rng.Float64() < 0.5 {
			confidence = "high"
		}

		rows = append(rows, []string{
			formatFloat(lat, 4),
			formatFloat(lon, 4),
			date.Format("2006-01-02"),
			confidence,
			formatFloat(rng.ExpFloat64()*50, 2), // fire radiative power
			formatFloat(315+rng.NormFloat64()*10, 2),
			boolTitle(eastern),
		})
	}

	return yearCounts, writeCSV(filepath.Join(dir, loader.FireFile), rows)
}

// writeClimate generates first-of-month observations for two stations with
// a seasonal sinusoid, a slow warming trend, and wetter winters. Values are
// integers in tenths, matching the GHCN-Daily convention.
func writeClimate(dir string, rng *rand.Rand, startYear, endYear int) error {
	rows := [][]string{{"date", "station", "datatype", "value"}}

	for year := startYear; year <= endYear; year++ {
		warming := float64(year-startYear) * 0.02
		for month := 1; month <= 12; month++ {
			// Peaks in late July, troughs in late January.
			season := math.Sin((float64(month) - 4.0) * math.Pi / 6.0)
			for _, station := range []string{"GHCND:USW00024233", "GHCND:USW00024243"} {
				date := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC).Format("2006-01-02")
				tmax := 14.0 + 12.0*season + warming + rng.NormFloat64()*1.5
				tmin := tmax - 8.0 - rng.Float64()*4.0
				prcp := math.Max(0, 40.0-35.0*season+rng.NormFloat64()*10.0)

				rows = append(rows,
					[]string{date, station, "TMAX", tenths(tmax)},
					[]string{date, station, "TMIN", tenths(tmin)},
					[]string{date, station, "PRCP", tenths(prcp)},
				)
			}
		}
	}

	return writeCSV(filepath.Join(dir, loader.ClimateFile), rows)
}

// writeFema declares one fire-management disaster in each of the ten
// heaviest fire years.
func writeFema(dir string, rng *rand.Rand, fireYears map[int]int) error {
	years := make([]int, 0, len(fireYears))
	for y := range fireYears {
		years = append(years, y)
	}
	sort.Slice(years, func(i, j int) bool { return fireYears[years[i]] > fireYears[years[j]] })
	if len(years) > 10 {
		years = years[:10]
	}
	sort.Ints(years)

	rows := [][]string{{"disasterNumber", "declarationDate", "incidentBeginDate", "incidentEndDate", "designatedArea", "declarationType"}}
	for i, year := range years {
		begin := time.Date(year, time.July, 1+rng.Intn(31), 0, 0, 0, 0, time.UTC)
		declared := begin.AddDate(0, 0, 3+rng.Intn(10))
		end := begin.AddDate(0, 0, 14+rng.Intn(30))

		rows = append(rows, []string{
			strconv.Itoa(5000 + i),
			declared.Format(time.RFC3339),
			begin.Format(time.RFC3339),
			end.Format(time.RFC3339),
			"Okanogan (County)",
			"FM",
		})
	}

	return writeCSV(filepath.Join(dir, loader.FemaFile), rows)
}

func writeCSV(path string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.WriteAll(rows); err != nil {
		return err
	}
	log.Printf("%s: %d rows", path, len(rows)-1)
	return nil
}

func tenths(v float64) string {
	return strconv.Itoa(int(math.Round(v * 10)))
}

func formatFloat(v float64, prec int) string {
	return strconv.FormatFloat(v, 'f', prec, 64)
}

func boolTitle(b bool) string {
	if b {
		return "True"
	}
	return "False"
}
