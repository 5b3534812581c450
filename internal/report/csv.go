// Package report writes the processed tables, renders the charts, and builds
// the static dashboard. It consumes finished tables from the integrator and
// holds no analysis logic of its own.
package report

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-gota/gota/dataframe"

	"github.com/couchcryptid/wildfire-climate-etl/internal/domain"
	"github.com/couchcryptid/wildfire-climate-etl/internal/observability"
)

// Processed table file names inside the processed directory.
const (
	MonthlyClimateFile           = "wa_monthly_climate.csv"
	MonthlyClimateFahrenheitFile = "wa_monthly_climate_fahrenheit.csv"
	YearlyFiresFile              = "wa_yearly_fires.csv"
	FireClimateFile              = "wa_fire_climate_correlation.csv"
	FireFemaFile                 = "wa_fire_fema_comparison.csv"
)

// CSVWriter writes processed tables to the processed-data directory.
type CSVWriter struct {
	dir     string
	logger  *slog.Logger
	metrics *observability.Metrics
}

// NewCSVWriter creates a writer rooted at the processed-data directory.
func NewCSVWriter(dir string, logger *slog.Logger, metrics *observability.Metrics) *CSVWriter {
	return &CSVWriter{dir: dir, logger: logger, metrics: metrics}
}

// WriteMonthlyClimate writes the monthly climate table in °C and mm.
func (w *CSVWriter) WriteMonthlyClimate(rows []domain.MonthlyClimate) error {
	records := [][]string{{"year", "month", "TMAX", "TMIN", "TAVG", "PRCP"}}
	for _, m := range rows {
		records = append(records, []string{
			strconv.Itoa(m.Year),
			strconv.Itoa(m.Month),
			formatValue(m.TMaxC),
			formatValue(m.TMinC),
			formatValue(m.TAvgC),
			formatValue(m.PrcpMM),
		})
	}
	return w.writeTable(MonthlyClimateFile, records)
}

// WriteMonthlyClimateFahrenheit writes the monthly climate table with
// temperatures converted to °F. Precipitation stays in mm.
func (w *CSVWriter) WriteMonthlyClimateFahrenheit(rows []domain.MonthlyClimate) error {
	records := [][]string{{"year", "month", "TMAX_F", "TMIN_F", "TAVG_F", "PRCP"}}
	for _, m := range rows {
		records = append(records, []string{
			strconv.Itoa(m.Year),
			strconv.Itoa(m.Month),
			formatValue(domain.CelsiusToFahrenheit(m.TMaxC)),
			formatValue(domain.CelsiusToFahrenheit(m.TMinC)),
			formatValue(domain.CelsiusToFahrenheit(m.TAvgC)),
			formatValue(m.PrcpMM),
		})
	}
	return w.writeTable(MonthlyClimateFahrenheitFile, records)
}

// WriteYearlyFires writes yearly fire counts. Regional columns appear only
// when the source carried region information.
func (w *CSVWriter) WriteYearlyFires(rows []domain.YearlyFireCounts) error {
	hasRegion := len(rows) > 0 && rows[0].HasRegion

	header := []string{"year", "fire_count"}
	if hasRegion {
		header = append(header, "eastern_count", "western_count")
	}

	records := [][]string{header}
	for _, f := range rows {
		rec := []string{strconv.Itoa(f.Year), strconv.Itoa(f.Count)}
		if hasRegion {
			rec = append(rec, strconv.Itoa(f.EasternCount), strconv.Itoa(f.WesternCount))
		}
		records = append(records, rec)
	}
	return w.writeTable(YearlyFiresFile, records)
}

// WriteFireClimate writes the joined fire-climate table. The correlation
// coefficients are constant across the table and repeat on every row, blank
// when undefined.
func (w *CSVWriter) WriteFireClimate(report domain.CorrelationReport) error {
	records := [][]string{{
		"year", "fire_count", "TMAX", "TMIN", "TAVG", "PRCP",
		"tavg_fire_correlation", "prcp_fire_correlation",
	}}
	for _, y := range report.Years {
		records = append(records, []string{
			strconv.Itoa(y.Year),
			strconv.Itoa(y.FireCount),
			formatValue(y.TMaxC),
			formatValue(y.TMinC),
			formatValue(y.TAvgC),
			formatValue(y.PrcpMM),
			formatValue(report.TempFire.Coefficient),
			formatValue(report.PrcpFire.Coefficient),
		})
	}
	return w.writeTable(FireClimateFile, records)
}

// WriteFireFema writes the fire vs FEMA declaration comparison table.
func (w *CSVWriter) WriteFireFema(rows []domain.FireFemaYear) error {
	records := [][]string{{"year", "fire_count", "declaration_count"}}
	for _, y := range rows {
		records = append(records, []string{
			strconv.Itoa(y.Year),
			strconv.Itoa(y.FireCount),
			strconv.Itoa(y.DeclarationCount),
		})
	}
	return w.writeTable(FireFemaFile, records)
}

func (w *CSVWriter) writeTable(file string, records [][]string) error {
	path := filepath.Join(w.dir, file)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	// gota rejects a records slice with no data rows; an empty table is
	// still a valid output, so write the bare header directly.
	if len(records) == 1 {
		if _, err := fmt.Fprintln(f, strings.Join(records[0], ",")); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		w.logger.Info("table written", "file", file, "rows", 0)
		w.metrics.TablesWritten.Inc()
		return nil
	}

	df := dataframe.LoadRecords(records, dataframe.DetectTypes(false))
	if df.Err != nil {
		return fmt.Errorf("build table %s: %w", file, df.Err)
	}
	if err := df.WriteCSV(f); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	w.logger.Info("table written", "file", file, "rows", len(records)-1)
	w.metrics.TablesWritten.Inc()
	return nil
}

// formatValue renders one cell; Missing becomes an empty cell, the same
// convention pandas uses for NaN.
func formatValue(v float64) string {
	if domain.IsMissing(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
