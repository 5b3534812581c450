// Package loader reads the three raw CSV datasets into typed records,
// enforcing the per-file schema and dropping unparseable rows with a warning.
package loader

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/couchcryptid/wildfire-climate-etl/internal/domain"
	"github.com/couchcryptid/wildfire-climate-etl/internal/observability"
)

// Input file names inside the raw-data directory.
const (
	ClimateFile = "wa_climate_data.csv"
	FireFile    = "wa_fire_history.csv"
	FemaFile    = "wa_fema_wildfire_declarations.csv"
)

// Drop reasons recorded on the rows_dropped metric.
const (
	reasonBadDate   = "bad_date"
	reasonBadValue  = "bad_value"
	reasonBadRegion = "bad_region"
)

// dateLayouts covers the exports seen in practice: plain dates from the MODIS
// CSV, NOAA CDO timestamps without a zone, and OpenFEMA RFC 3339 timestamps.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02T15:04:05",
	time.RFC3339,
}

// Loader reads raw CSVs from a single directory.
type Loader struct {
	dir     string
	logger  *slog.Logger
	metrics *observability.Metrics
}

// New creates a Loader rooted at the raw-data directory.
func New(dir string, logger *slog.Logger, metrics *observability.Metrics) *Loader {
	return &Loader{dir: dir, logger: logger, metrics: metrics}
}

// table is a parsed CSV with a header index.
type table struct {
	file    string
	columns map[string]int
	rows    [][]string
}

// col returns the value of a named column in a row, or "" when the column is
// absent from the file.
func (t *table) col(row []string, name string) string {
	i, ok := t.columns[name]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func (t *table) hasColumn(name string) bool {
	_, ok := t.columns[name]
	return ok
}

// readTable loads one CSV through gota without type detection; all parsing of
// individual values happens against the typed record schemas below.
func (l *Loader) readTable(file string, required []string) (*table, error) {
	path := filepath.Join(l.dir, file)
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &MissingFileError{Path: path}
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	df := dataframe.ReadCSV(f,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
	)
	if df.Err != nil {
		return nil, fmt.Errorf("read %s: %w", path, df.Err)
	}

	records := df.Records()
	if len(records) == 0 {
		return nil, fmt.Errorf("read %s: no header row", path)
	}

	t := &table{file: file, columns: make(map[string]int, len(records[0]))}
	for i, name := range records[0] {
		t.columns[strings.TrimSpace(name)] = i
	}
	t.rows = records[1:]

	for _, name := range required {
		if !t.hasColumn(name) {
			return nil, &SchemaError{File: file, Column: name}
		}
	}

	return t, nil
}

// LoadClimate reads the long-format NOAA climate export. Rows with an
// unparseable date or value are dropped with a warning.
func (l *Loader) LoadClimate() ([]domain.ClimateObservation, error) {
	t, err := l.readTable(ClimateFile, []string{"date", "datatype", "value"})
	if err != nil {
		return nil, err
	}

	obs := make([]domain.ClimateObservation, 0, len(t.rows))
	for i, row := range t.rows {
		date, err := parseDate(t.col(row, "date"))
		if err != nil {
			l.dropRow("climate", reasonBadDate, i, err)
			continue
		}
		value, err := parseTenths(t.col(row, "value"))
		if err != nil {
			l.dropRow("climate", reasonBadValue, i, err)
			continue
		}

		obs = append(obs, domain.ClimateObservation{
			Date:     date,
			Station:  t.col(row, "station"),
			Datatype: t.col(row, "datatype"),
			Value:    value,
		})
	}

	l.loaded("climate", len(obs))
	return obs, nil
}

// LoadFires reads the fire-detection export. The returned bool reports
// whether the is_eastern column was present, i.e. whether regional counts
// are computable downstream.
func (l *Loader) LoadFires() ([]domain.FireDetection, bool, error) {
	t, err := l.readTable(FireFile, []string{"acq_date"})
	if err != nil {
		return nil, false, err
	}

	hasRegion := t.hasColumn("is_eastern")

	fires := make([]domain.FireDetection, 0, len(t.rows))
	for i, row := range t.rows {
		date, err := parseDate(t.col(row, "acq_date"))
		if err != nil {
			l.dropRow("fires", reasonBadDate, i, err)
			continue
		}

		det := domain.FireDetection{
			AcqDate:    date,
			HasRegion:  hasRegion,
			Latitude:   parseFloatOrZero(t.col(row, "latitude")),
			Longitude:  parseFloatOrZero(t.col(row, "longitude")),
			Confidence: t.col(row, "confidence"),
			Brightness: parseFloatOrZero(t.col(row, "brightness")),
			FRP:        parseFloatOrZero(t.col(row, "frp")),
		}
		if hasRegion {
			eastern, err := strconv.ParseBool(t.col(row, "is_eastern"))
			if err != nil {
				l.dropRow("fires", reasonBadRegion, i, err)
				continue
			}
			det.IsEastern = eastern
		}

		fires = append(fires, det)
	}

	l.loaded("fires", len(fires))
	return fires, hasRegion, nil
}

// LoadFema reads the OpenFEMA declarations export. A row is dropped only
// when incidentBeginDate is unparseable, since that field drives the yearly
// counts; bad declaration or end dates are stored as zero times.
func (l *Loader) LoadFema() ([]domain.FemaDeclaration, error) {
	t, err := l.readTable(FemaFile, []string{"declarationDate", "incidentBeginDate", "incidentEndDate"})
	if err != nil {
		return nil, err
	}

	decls := make([]domain.FemaDeclaration, 0, len(t.rows))
	for i, row := range t.rows {
		begin, err := parseDate(t.col(row, "incidentBeginDate"))
		if err != nil {
			l.dropRow("fema", reasonBadDate, i, err)
			continue
		}

		declared, _ := parseDate(t.col(row, "declarationDate"))
		end, _ := parseDate(t.col(row, "incidentEndDate"))

		decls = append(decls, domain.FemaDeclaration{
			DisasterNumber:    t.col(row, "disasterNumber"),
			DeclarationDate:   declared,
			IncidentBeginDate: begin,
			IncidentEndDate:   end,
			County:            firstNonEmpty(t.col(row, "county"), t.col(row, "designatedArea")),
			DeclarationType:   t.col(row, "declarationType"),
		})
	}

	l.loaded("fema", len(decls))
	return decls, nil
}

func (l *Loader) dropRow(dataset, reason string, index int, err error) {
	l.logger.Warn("dropping unparseable row",
		"dataset", dataset,
		"row", index+1,
		"reason", reason,
		"error", err,
	)
	l.metrics.RowsDropped.WithLabelValues(dataset, reason).Inc()
}

func (l *Loader) loaded(dataset string, n int) {
	l.logger.Info("dataset loaded", "dataset", dataset, "rows", n)
	l.metrics.RowsLoaded.WithLabelValues(dataset).Add(float64(n))
}

func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, errors.New("empty date")
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

// parseTenths parses a raw NOAA value. Exports sometimes carry integral
// values with a decimal point ("82.0"), so parse as float and round.
func parseTenths(s string) (int, error) {
	if s == "" {
		return 0, errors.New("empty value")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("non-numeric value %q", s)
	}
	return int(math.Round(v)), nil
}

func parseFloatOrZero(s string) float64 {
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
