// Package pipeline orchestrates the load → transform → integrate → report
// stages of one batch run. Each stage fully consumes its inputs before the
// next starts; a dataset that fails its schema check is excluded from every
// downstream output while its siblings still process.
package pipeline

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/wildfire-climate-etl/internal/domain"
	"github.com/couchcryptid/wildfire-climate-etl/internal/loader"
	"github.com/couchcryptid/wildfire-climate-etl/internal/observability"
	"github.com/couchcryptid/wildfire-climate-etl/internal/report"
)

// Snapshotter persists the processed tables; nil disables the snapshot.
type Snapshotter interface {
	Save(fires []domain.YearlyFireCounts, climate domain.CorrelationReport, fema []domain.FireFemaYear) error
}

// Pipeline wires the stages together.
type Pipeline struct {
	loader    *loader.Loader
	tables    *report.CSVWriter
	charts    *report.ChartRenderer
	dashboard *report.Dashboard
	snapshot  Snapshotter
	logger    *slog.Logger
	metrics   *observability.Metrics
}

// New creates a Pipeline. Pass a nil snapshot to skip SQLite persistence.
func New(
	l *loader.Loader,
	tables *report.CSVWriter,
	charts *report.ChartRenderer,
	dashboard *report.Dashboard,
	snapshot Snapshotter,
	logger *slog.Logger,
	metrics *observability.Metrics,
) *Pipeline {
	return &Pipeline{
		loader:    l,
		tables:    tables,
		charts:    charts,
		dashboard: dashboard,
		snapshot:  snapshot,
		logger:    logger,
		metrics:   metrics,
	}
}

// Run executes one batch run to completion. The returned error joins every
// fatal per-dataset failure; outputs for healthy datasets are still written
// before it returns.
func (p *Pipeline) Run() error {
	p.logger.Info("pipeline started")
	var errs []error

	// Load.
	done := p.timeStage("load")
	climateObs, climateErr := p.loader.LoadClimate()
	fires, hasRegion, fireErr := p.loader.LoadFires()
	decls, femaErr := p.loader.LoadFema()
	done()

	for _, e := range []error{climateErr, fireErr, femaErr} {
		if e != nil {
			p.logger.Error("dataset failed to load", "error", e)
			errs = append(errs, e)
		}
	}

	// Transform.
	done = p.timeStage("transform")
	var monthly []domain.MonthlyClimate
	var yearlyClimate []domain.YearlyClimate
	if climateErr == nil {
		daily := domain.PivotDaily(climateObs)
		monthly = domain.AggregateMonthly(daily)
		yearlyClimate = domain.AggregateYearly(monthly)
		p.logger.Info("climate aggregated", "daily_rows", len(daily), "months", len(monthly), "years", len(yearlyClimate))
	}

	var fireCounts []domain.YearlyFireCounts
	if fireErr == nil {
		fireCounts = domain.CountFiresByYear(fires, hasRegion)
		p.logger.Info("fires counted", "years", len(fireCounts), "regional", hasRegion)
	}

	var femaCounts []domain.YearlyFemaCounts
	if femaErr == nil {
		femaCounts = domain.CountDeclarationsByYear(decls)
		p.logger.Info("declarations counted", "years", len(femaCounts))
	}
	done()

	// Integrate.
	done = p.timeStage("integrate")
	var correlation domain.CorrelationReport
	haveCorrelation := climateErr == nil && fireErr == nil
	if haveCorrelation {
		correlation = domain.Correlate(domain.JoinFireClimate(yearlyClimate, fireCounts))
		p.logCorrelation("temperature", correlation.TempFire)
		p.logCorrelation("precipitation", correlation.PrcpFire)
	}

	var fireFema []domain.FireFemaYear
	haveFireFema := fireErr == nil && femaErr == nil
	if haveFireFema {
		fireFema = domain.JoinFireFema(fireCounts, femaCounts)
	}
	done()

	// Report.
	done = p.timeStage("report")
	if climateErr == nil {
		errs = append(errs,
			p.tables.WriteMonthlyClimate(monthly),
			p.tables.WriteMonthlyClimateFahrenheit(monthly),
			p.charts.TemperatureTrend(yearlyClimate),
		)
	}
	if fireErr == nil {
		errs = append(errs,
			p.tables.WriteYearlyFires(fireCounts),
			p.charts.FiresByYear(fireCounts),
			p.charts.FiresByRegion(fireCounts),
		)
	}
	if haveCorrelation {
		errs = append(errs,
			p.tables.WriteFireClimate(correlation),
			p.charts.TemperatureFireScatter(correlation),
			p.charts.PrecipitationFireScatter(correlation),
		)
	}
	if haveFireFema {
		errs = append(errs,
			p.tables.WriteFireFema(fireFema),
			p.charts.FireFemaComparison(fireFema),
		)
	}
	if femaErr == nil {
		errs = append(errs, p.charts.FemaDeclarationsByYear(femaCounts))
	}
	errs = append(errs, p.dashboard.Write(correlation))

	if p.snapshot != nil {
		if err := p.snapshot.Save(fireCounts, correlation, fireFema); err != nil {
			errs = append(errs, fmt.Errorf("snapshot: %w", err))
		}
	}
	done()

	err := errors.Join(errs...)
	if err != nil {
		p.metrics.RunSuccess.Set(0)
		p.logger.Error("pipeline finished with errors", "error", err)
		return err
	}

	p.metrics.RunSuccess.Set(1)
	p.logger.Info("pipeline finished")
	return nil
}

func (p *Pipeline) logCorrelation(variable string, s domain.CorrelationStat) {
	if !s.Defined() {
		p.logger.Warn("correlation undefined",
			"variable", variable,
			"overlapping_years", s.N,
			"minimum", domain.MinCorrelationYears,
		)
		return
	}
	p.logger.Info("correlation computed", "variable", variable, "r", s.Coefficient, "years", s.N)
}

func (p *Pipeline) timeStage(stage string) func() {
	start := time.Now()
	return func() {
		p.metrics.StageDuration.WithLabelValues(stage).Observe(time.Since(start).Seconds())
	}
}
