package report

import (
	"fmt"
	"html/template"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/couchcryptid/wildfire-climate-etl/internal/domain"
)

// DashboardFile is the static index page written next to the charts.
const DashboardFile = "dashboard.html"

var chartDescriptions = []struct {
	File  string
	Title string
	Text  string
}{
	{TemperatureTrendChart, "Temperature Trend", "Average annual temperature across all reporting stations."},
	{FiresByYearChart, "Fire Incidents by Year", "Satellite fire detections per year."},
	{FiresByRegionChart, "Fire Incidents by Region", "Detections split east and west of the Cascade crest."},
	{TemperatureFireChart, "Temperature vs. Fires", "Yearly fire counts against average temperature with trend line."},
	{PrecipitationFireChart, "Precipitation vs. Fires", "Yearly fire counts against mean precipitation with trend line."},
	{FireFemaComparisonChart, "Fires vs. FEMA Declarations", "Detection counts compared with federal disaster declarations."},
	{FemaByYearChart, "FEMA Declarations by Year", "Federal wildfire disaster declarations per year."},
}

const dashboardTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Washington Wildfire &amp; Climate Analysis</title>
<style>
body { font-family: sans-serif; margin: 2rem auto; max-width: 70rem; color: #222; }
h1 { border-bottom: 2px solid #c02020; padding-bottom: 0.3rem; }
figure { margin: 2rem 0; }
figure img { max-width: 100%; border: 1px solid #ccc; }
figcaption { color: #555; font-size: 0.9rem; margin-top: 0.4rem; }
.summary { background: #f7f3ec; padding: 1rem; border-left: 4px solid #c02020; }
footer { color: #888; font-size: 0.8rem; margin-top: 3rem; }
</style>
</head>
<body>
<h1>Washington Wildfire &amp; Climate Analysis</h1>
<div class="summary">
<p>Temperature vs. fire incidents: <strong>{{.TempCorrelation}}</strong></p>
<p>Precipitation vs. fire incidents: <strong>{{.PrcpCorrelation}}</strong></p>
</div>
{{range .Charts}}
<figure>
<h2>{{.Title}}</h2>
<img src="{{.File}}" alt="{{.Title}}">
<figcaption>{{.Text}}</figcaption>
</figure>
{{end}}
<footer>Generated {{.GeneratedAt}}</footer>
</body>
</html>
`

// Dashboard writes a static HTML index of the rendered charts.
type Dashboard struct {
	dir    string
	logger *slog.Logger
	tmpl   *template.Template
}

// NewDashboard creates a dashboard writer rooted at the output directory.
func NewDashboard(dir string, logger *slog.Logger) *Dashboard {
	return &Dashboard{
		dir:    dir,
		logger: logger,
		tmpl:   template.Must(template.New("dashboard").Parse(dashboardTemplate)),
	}
}

type dashboardChart struct {
	File  string
	Title string
	Text  string
}

type dashboardData struct {
	Charts          []dashboardChart
	TempCorrelation string
	PrcpCorrelation string
	GeneratedAt     string
}

// Write renders the dashboard listing only the charts that exist on disk.
func (d *Dashboard) Write(report domain.CorrelationReport) error {
	data := dashboardData{
		TempCorrelation: correlationLabel(report.TempFire),
		PrcpCorrelation: correlationLabel(report.PrcpFire),
		GeneratedAt:     domain.Now().UTC().Format("2006-01-02 15:04:05 UTC"),
	}

	for _, c := range chartDescriptions {
		if _, err := os.Stat(filepath.Join(d.dir, c.File)); err != nil {
			continue
		}
		data.Charts = append(data.Charts, dashboardChart(c))
	}

	path := filepath.Join(d.dir, DashboardFile)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	if err := d.tmpl.Execute(f, data); err != nil {
		return fmt.Errorf("render dashboard: %w", err)
	}

	d.logger.Info("dashboard written", "file", DashboardFile, "charts", len(data.Charts))
	return nil
}

func correlationLabel(s domain.CorrelationStat) string {
	if !s.Defined() {
		return fmt.Sprintf("insufficient data (%d overlapping years)", s.N)
	}
	return fmt.Sprintf("r = %.2f over %d years", s.Coefficient, s.N)
}
