package domain

import (
	"sort"
	"time"
)

// Datatype codes recognized in the long-format climate export. Other codes
// (SNOW, AWND, ...) pass through the loader but are ignored by the pivot.
const (
	DatatypeTMax = "TMAX"
	DatatypeTMin = "TMIN"
	DatatypePrcp = "PRCP"
)

// tenthsToUnit converts a raw NOAA value in tenths of a unit to the unit
// itself: 82 tenths of °C -> 8.2°C, 142 tenths of mm -> 14.2mm.
func tenthsToUnit(v int) float64 {
	return float64(v) / 10.0
}

// CelsiusToFahrenheit converts a temperature; Missing stays Missing.
func CelsiusToFahrenheit(c float64) float64 {
	if IsMissing(c) {
		return Missing
	}
	return c*9.0/5.0 + 32.0
}

// PivotDaily reshapes long-format observations into one DailyClimate row per
// (station, date). The first observation for a (station, date, datatype) key
// wins; later duplicates are ignored. TAVG is derived only when both TMAX and
// TMIN were reported for the same row.
func PivotDaily(obs []ClimateObservation) []DailyClimate {
	type key struct {
		station string
		date    time.Time
	}

	rows := make(map[key]*DailyClimate)
	order := make([]key, 0, len(obs))

	for _, o := range obs {
		k := key{station: o.Station, date: o.Date}
		row, ok := rows[k]
		if !ok {
			row = &DailyClimate{
				Date:    o.Date,
				Station: o.Station,
				TMaxC:   Missing,
				TMinC:   Missing,
				TAvgC:   Missing,
				PrcpMM:  Missing,
			}
			rows[k] = row
			order = append(order, k)
		}

		switch o.Datatype {
		case DatatypeTMax:
			if IsMissing(row.TMaxC) {
				row.TMaxC = tenthsToUnit(o.Value)
			}
		case DatatypeTMin:
			if IsMissing(row.TMinC) {
				row.TMinC = tenthsToUnit(o.Value)
			}
		case DatatypePrcp:
			if IsMissing(row.PrcpMM) {
				row.PrcpMM = tenthsToUnit(o.Value)
			}
		}
	}

	out := make([]DailyClimate, 0, len(order))
	for _, k := range order {
		row := rows[k]
		if !IsMissing(row.TMaxC) && !IsMissing(row.TMinC) {
			row.TAvgC = (row.TMaxC + row.TMinC) / 2.0
		}
		out = append(out, *row)
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].Station < out[j].Station
	})

	return out
}

// accumulator collects non-missing samples for one aggregated cell.
type accumulator struct {
	sum float64
	n   int
}

func (a *accumulator) add(v float64) {
	if IsMissing(v) {
		return
	}
	a.sum += v
	a.n++
}

func (a *accumulator) mean() float64 {
	if a.n == 0 {
		return Missing
	}
	return a.sum / float64(a.n)
}

func (a *accumulator) total() float64 {
	if a.n == 0 {
		return Missing
	}
	return a.sum
}

// AggregateMonthly reduces daily rows to one MonthlyClimate per (year, month):
// arithmetic mean of each temperature field across all stations and days,
// total precipitation for the month. A field with no observations in a month
// is Missing, never zero.
func AggregateMonthly(daily []DailyClimate) []MonthlyClimate {
	type cell struct {
		tmax, tmin, tavg, prcp accumulator
	}

	cells := make(map[int]*cell)
	for _, d := range daily {
		k := d.Date.Year()*100 + int(d.Date.Month())
		c, ok := cells[k]
		if !ok {
			c = &cell{}
			cells[k] = c
		}
		c.tmax.add(d.TMaxC)
		c.tmin.add(d.TMinC)
		c.tavg.add(d.TAvgC)
		c.prcp.add(d.PrcpMM)
	}

	out := make([]MonthlyClimate, 0, len(cells))
	for k, c := range cells {
		out = append(out, MonthlyClimate{
			Year:   k / 100,
			Month:  k % 100,
			TMaxC:  c.tmax.mean(),
			TMinC:  c.tmin.mean(),
			TAvgC:  c.tavg.mean(),
			PrcpMM: c.prcp.total(),
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year < out[j].Year
		}
		return out[i].Month < out[j].Month
	})

	return out
}

// AggregateYearly reduces monthly rows to one YearlyClimate per year by
// arithmetic mean of the monthly values. Precipitation is the mean of the
// monthly totals. Applying it to data that already has one row per year
// returns the same values unchanged.
func AggregateYearly(monthly []MonthlyClimate) []YearlyClimate {
	type cell struct {
		tmax, tmin, tavg, prcp accumulator
	}

	cells := make(map[int]*cell)
	for _, m := range monthly {
		c, ok := cells[m.Year]
		if !ok {
			c = &cell{}
			cells[m.Year] = c
		}
		c.tmax.add(m.TMaxC)
		c.tmin.add(m.TMinC)
		c.tavg.add(m.TAvgC)
		c.prcp.add(m.PrcpMM)
	}

	out := make([]YearlyClimate, 0, len(cells))
	for year, c := range cells {
		out = append(out, YearlyClimate{
			Year:   year,
			TMaxC:  c.tmax.mean(),
			TMinC:  c.tmin.mean(),
			TAvgC:  c.tavg.mean(),
			PrcpMM: c.prcp.mean(),
		})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Year < out[j].Year })

	return out
}
