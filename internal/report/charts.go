package report

import (
	"fmt"
	"image/color"
	"log/slog"
	"path/filepath"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/couchcryptid/wildfire-climate-etl/internal/domain"
	"github.com/couchcryptid/wildfire-climate-etl/internal/observability"
)

// Chart file names inside the output directory.
const (
	TemperatureTrendChart   = "wa_temperature_trend.png"
	FiresByYearChart        = "fire_incidents_by_year.png"
	FiresByRegionChart      = "fire_incidents_by_region.png"
	TemperatureFireChart    = "temperature_fire_correlation.png"
	PrecipitationFireChart  = "precipitation_fire_correlation.png"
	FireFemaComparisonChart = "fire_fema_comparison.png"
	FemaByYearChart         = "fema_declarations_by_year.png"
)

var (
	fireOrange  = color.RGBA{R: 0xff, G: 0xa5, B: 0x00, A: 0xff}
	trendRed    = color.RGBA{R: 0xc0, G: 0x20, B: 0x20, A: 0xff}
	regionBlue  = color.RGBA{R: 0x20, G: 0x40, B: 0xc0, A: 0xff}
	fitGray     = color.RGBA{R: 0x60, G: 0x60, B: 0x60, A: 0xff}
	femaMaroon  = color.RGBA{R: 0x80, G: 0x10, B: 0x10, A: 0xff}
	barWidth    = vg.Points(18)
	chartWidth  = 9 * vg.Inch
	chartHeight = 4.5 * vg.Inch
)

// ChartRenderer renders PNG charts to the output directory.
type ChartRenderer struct {
	dir     string
	logger  *slog.Logger
	metrics *observability.Metrics
}

// NewChartRenderer creates a renderer rooted at the output directory.
func NewChartRenderer(dir string, logger *slog.Logger, metrics *observability.Metrics) *ChartRenderer {
	return &ChartRenderer{dir: dir, logger: logger, metrics: metrics}
}

// TemperatureTrend draws average annual temperature as a line over years.
func (r *ChartRenderer) TemperatureTrend(yearly []domain.YearlyClimate) error {
	pts := make(plotter.XYs, 0, len(yearly))
	for _, y := range yearly {
		if domain.IsMissing(y.TAvgC) {
			continue
		}
		pts = append(pts, plotter.XY{X: float64(y.Year), Y: y.TAvgC})
	}
	if len(pts) == 0 {
		r.skip(TemperatureTrendChart, "no yearly temperature data")
		return nil
	}

	p := plot.New()
	p.Title.Text = "Average Annual Temperature in Washington State"
	p.X.Label.Text = "Year"
	p.Y.Label.Text = "Temperature (°C)"
	p.Add(plotter.NewGrid())

	line, points, err := plotter.NewLinePoints(pts)
	if err != nil {
		return fmt.Errorf("temperature trend: %w", err)
	}
	line.Color = trendRed
	points.Color = trendRed
	p.Add(line, points)

	return r.save(p, TemperatureTrendChart)
}

// FiresByYear draws yearly fire detection counts as a bar chart.
func (r *ChartRenderer) FiresByYear(counts []domain.YearlyFireCounts) error {
	if len(counts) == 0 {
		r.skip(FiresByYearChart, "no fire counts")
		return nil
	}

	values := make(plotter.Values, len(counts))
	labels := make([]string, len(counts))
	for i, c := range counts {
		values[i] = float64(c.Count)
		labels[i] = strconv.Itoa(c.Year)
	}

	p := plot.New()
	p.Title.Text = "Fire Incidents in Washington State by Year"
	p.X.Label.Text = "Year"
	p.Y.Label.Text = "Number of Fire Incidents"

	bars, err := plotter.NewBarChart(values, barWidth)
	if err != nil {
		return fmt.Errorf("fires by year: %w", err)
	}
	bars.Color = fireOrange
	bars.LineStyle.Width = 0
	p.Add(bars)
	p.NominalX(labels...)

	return r.save(p, FiresByYearChart)
}

// FiresByRegion draws eastern and western counts as grouped bars per year.
// Skipped when the source export carried no region column.
func (r *ChartRenderer) FiresByRegion(counts []domain.YearlyFireCounts) error {
	if len(counts) == 0 || !counts[0].HasRegion {
		r.skip(FiresByRegionChart, "no regional fire counts")
		return nil
	}

	eastern := make(plotter.Values, len(counts))
	western := make(plotter.Values, len(counts))
	labels := make([]string, len(counts))
	for i, c := range counts {
		eastern[i] = float64(c.EasternCount)
		western[i] = float64(c.WesternCount)
		labels[i] = strconv.Itoa(c.Year)
	}

	p := plot.New()
	p.Title.Text = "Fire Incidents in Washington State by Year and Region"
	p.X.Label.Text = "Year"
	p.Y.Label.Text = "Number of Fire Incidents"

	east, err := plotter.NewBarChart(eastern, barWidth/2)
	if err != nil {
		return fmt.Errorf("fires by region: %w", err)
	}
	east.Color = trendRed
	east.LineStyle.Width = 0
	east.Offset = -barWidth / 4

	west, err := plotter.NewBarChart(western, barWidth/2)
	if err != nil {
		return fmt.Errorf("fires by region: %w", err)
	}
	west.Color = regionBlue
	west.LineStyle.Width = 0
	west.Offset = barWidth / 4

	p.Add(east, west)
	p.Legend.Add("Eastern WA", east)
	p.Legend.Add("Western WA", west)
	p.Legend.Top = true
	p.NominalX(labels...)

	return r.save(p, FiresByRegionChart)
}

// TemperatureFireScatter draws yearly fire count against average temperature
// with the least-squares trend line, annotating the Pearson coefficient.
func (r *ChartRenderer) TemperatureFireScatter(report domain.CorrelationReport) error {
	return r.correlationScatter(
		TemperatureFireChart,
		"Correlation between Average Temperature and Fire Incidents",
		"Average Temperature (°C)",
		report.TempFire,
		func(y domain.FireClimateYear) float64 { return y.TAvgC },
		report.Years,
	)
}

// PrecipitationFireScatter draws yearly fire count against mean precipitation
// with the least-squares trend line, annotating the Pearson coefficient.
func (r *ChartRenderer) PrecipitationFireScatter(report domain.CorrelationReport) error {
	return r.correlationScatter(
		PrecipitationFireChart,
		"Correlation between Precipitation and Fire Incidents",
		"Average Precipitation (mm)",
		report.PrcpFire,
		func(y domain.FireClimateYear) float64 { return y.PrcpMM },
		report.Years,
	)
}

func (r *ChartRenderer) correlationScatter(
	file, title, xLabel string,
	stat domain.CorrelationStat,
	value func(domain.FireClimateYear) float64,
	years []domain.FireClimateYear,
) error {
	pts := make(plotter.XYs, 0, len(years))
	for _, y := range years {
		v := value(y)
		if domain.IsMissing(v) {
			continue
		}
		pts = append(pts, plotter.XY{X: v, Y: float64(y.FireCount)})
	}
	if len(pts) == 0 {
		r.skip(file, "no joined fire-climate data")
		return nil
	}

	p := plot.New()
	if stat.Defined() {
		p.Title.Text = fmt.Sprintf("%s (r = %.2f)", title, stat.Coefficient)
	} else {
		p.Title.Text = title + " (insufficient data)"
	}
	p.X.Label.Text = xLabel
	p.Y.Label.Text = "Number of Fire Incidents"
	p.Add(plotter.NewGrid())

	scatter, err := plotter.NewScatter(pts)
	if err != nil {
		return fmt.Errorf("%s: %w", file, err)
	}
	scatter.Color = trendRed
	scatter.Radius = vg.Points(3)
	p.Add(scatter)

	if stat.Defined() {
		fit := plotter.NewFunction(func(x float64) float64 {
			return stat.Intercept + stat.Slope*x
		})
		fit.Color = fitGray
		fit.Dashes = []vg.Length{vg.Points(4), vg.Points(3)}
		p.Add(fit)
	}

	return r.save(p, file)
}

// FireFemaComparison draws yearly fire counts as bars with FEMA declaration
// counts as an overlaid line. Declarations are typically two orders of
// magnitude rarer than detections, so the line is rescaled to the fire axis
// and the scale factor is called out in its legend entry.
func (r *ChartRenderer) FireFemaComparison(rows []domain.FireFemaYear) error {
	if len(rows) == 0 {
		r.skip(FireFemaComparisonChart, "no fire-fema rows")
		return nil
	}

	maxFires, maxDecls := 0, 0
	for _, y := range rows {
		maxFires = max(maxFires, y.FireCount)
		maxDecls = max(maxDecls, y.DeclarationCount)
	}
	scale := 1.0
	if maxDecls > 0 && maxFires > 0 {
		scale = float64(maxFires) / float64(maxDecls)
	}

	fires := make(plotter.Values, len(rows))
	labels := make([]string, len(rows))
	decls := make(plotter.XYs, len(rows))
	for i, y := range rows {
		fires[i] = float64(y.FireCount)
		labels[i] = strconv.Itoa(y.Year)
		decls[i] = plotter.XY{X: float64(i), Y: float64(y.DeclarationCount) * scale}
	}

	p := plot.New()
	p.Title.Text = "Fire Incidents vs. FEMA Disaster Declarations in Washington State"
	p.X.Label.Text = "Year"
	p.Y.Label.Text = "Number of Fire Incidents"

	bars, err := plotter.NewBarChart(fires, barWidth)
	if err != nil {
		return fmt.Errorf("fire-fema comparison: %w", err)
	}
	bars.Color = fireOrange
	bars.LineStyle.Width = 0

	line, points, err := plotter.NewLinePoints(decls)
	if err != nil {
		return fmt.Errorf("fire-fema comparison: %w", err)
	}
	line.Color = femaMaroon
	line.Width = vg.Points(2)
	points.Color = femaMaroon

	p.Add(bars, line, points)
	p.Legend.Add("Fire incidents", bars)
	p.Legend.Add(fmt.Sprintf("FEMA declarations (×%.0f)", scale), line)
	p.Legend.Top = true
	p.NominalX(labels...)

	return r.save(p, FireFemaComparisonChart)
}

// FemaDeclarationsByYear draws yearly FEMA declaration counts as a bar chart.
func (r *ChartRenderer) FemaDeclarationsByYear(counts []domain.YearlyFemaCounts) error {
	if len(counts) == 0 {
		r.skip(FemaByYearChart, "no declaration counts")
		return nil
	}

	values := make(plotter.Values, len(counts))
	labels := make([]string, len(counts))
	for i, c := range counts {
		values[i] = float64(c.Count)
		labels[i] = strconv.Itoa(c.Year)
	}

	p := plot.New()
	p.Title.Text = "FEMA Wildfire Disaster Declarations in Washington State by Year"
	p.X.Label.Text = "Year"
	p.Y.Label.Text = "Number of Declarations"

	bars, err := plotter.NewBarChart(values, barWidth)
	if err != nil {
		return fmt.Errorf("fema by year: %w", err)
	}
	bars.Color = femaMaroon
	bars.LineStyle.Width = 0
	p.Add(bars)
	p.NominalX(labels...)

	return r.save(p, FemaByYearChart)
}

func (r *ChartRenderer) save(p *plot.Plot, file string) error {
	path := filepath.Join(r.dir, file)
	if err := p.Save(chartWidth, chartHeight, path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	r.logger.Info("chart rendered", "file", file)
	r.metrics.ChartsDrawn.Inc()
	return nil
}

func (r *ChartRenderer) skip(file, reason string) {
	r.logger.Warn("chart skipped", "file", file, "reason", reason)
}
