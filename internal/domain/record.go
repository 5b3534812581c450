package domain

import (
	"math"
	"time"
)

// Missing marks an absent observation in derived climate tables. Derived
// values are only computed from observations that exist; a missing TMAX or
// TMIN yields a missing TAVG rather than a fabricated one.
var Missing = math.NaN()

// IsMissing reports whether a derived value is the missing-observation marker.
func IsMissing(v float64) bool {
	return math.IsNaN(v)
}

// ClimateObservation is one long-format row from the NOAA CDO export:
// a single (date, station, datatype) reading with the value in tenths
// of the base unit (tenths of °C for TMAX/TMIN, tenths of mm for PRCP).
type ClimateObservation struct {
	Date     time.Time
	Station  string
	Datatype string // "TMAX", "TMIN", or "PRCP"
	Value    int
}

// DailyClimate is one pivoted row per (station, date) with converted units.
// Fields are Missing when the underlying observation was not reported.
type DailyClimate struct {
	Date    time.Time
	Station string
	TMaxC   float64
	TMinC   float64
	TAvgC   float64
	PrcpMM  float64
}

// MonthlyClimate aggregates DailyClimate rows across all stations and days
// of one calendar month. Temperatures are arithmetic means; precipitation
// is the monthly total.
type MonthlyClimate struct {
	Year   int
	Month  int // 1-12
	TMaxC  float64
	TMinC  float64
	TAvgC  float64
	PrcpMM float64
}

// YearlyClimate aggregates MonthlyClimate rows: arithmetic mean of the
// monthly values, including the mean of monthly precipitation totals.
type YearlyClimate struct {
	Year   int
	TMaxC  float64
	TMinC  float64
	TAvgC  float64
	PrcpMM float64
}

// FireDetection is one satellite fire detection. Region and radiometric
// fields are optional in the source; HasRegion is false when the is_eastern
// column was absent from the export.
type FireDetection struct {
	AcqDate    time.Time
	HasRegion  bool
	IsEastern  bool
	Latitude   float64
	Longitude  float64
	Confidence string
	Brightness float64
	FRP        float64
}

// YearlyFireCounts is the number of fire detections in one year. Regional
// counts are populated only when the source carried region information;
// a region with no detections in a year counts as 0, not missing.
type YearlyFireCounts struct {
	Year         int
	Count        int
	HasRegion    bool
	EasternCount int
	WesternCount int
}

// FemaDeclaration is one FEMA disaster declaration row from the OpenFEMA
// DisasterDeclarationsSummaries export.
type FemaDeclaration struct {
	DisasterNumber    string
	DeclarationDate   time.Time
	IncidentBeginDate time.Time
	IncidentEndDate   time.Time
	County            string
	DeclarationType   string
}

// YearlyFemaCounts is the number of declarations whose incident began in a year.
type YearlyFemaCounts struct {
	Year  int
	Count int
}

// FireClimateYear is one row of the inner join between YearlyClimate and
// YearlyFireCounts; only years present in both datasets appear.
type FireClimateYear struct {
	Year      int
	FireCount int
	TMaxC     float64
	TMinC     float64
	TAvgC     float64
	PrcpMM    float64
}

// CorrelationStat holds a Pearson coefficient and the least-squares trend
// line for one climate variable against yearly fire counts. Coefficient is
// Missing when fewer than MinCorrelationYears overlapping years exist.
type CorrelationStat struct {
	Coefficient float64
	Slope       float64
	Intercept   float64
	N           int
}

// Defined reports whether enough overlapping years existed to compute the
// coefficient. The zero value is undefined, so a report built from a failed
// or absent dataset never presents as a real statistic.
func (s CorrelationStat) Defined() bool {
	return s.N >= MinCorrelationYears && !IsMissing(s.Coefficient)
}

// CorrelationReport is the integrated fire-climate analysis: the joined
// yearly rows plus correlation statistics over them.
type CorrelationReport struct {
	Years    []FireClimateYear
	TempFire CorrelationStat
	PrcpFire CorrelationStat
}

// FireFemaYear is one row of the left join from YearlyFireCounts to
// YearlyFemaCounts; every fire year is preserved and DeclarationCount is 0
// for years without a FEMA declaration.
type FireFemaYear struct {
	Year             int
	FireCount        int
	DeclarationCount int
}
