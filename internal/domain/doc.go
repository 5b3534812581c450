// Package domain models the three Washington State wildfire-analysis
// datasets and the pure transforms between them.
//
// # Data Sources
//
// Climate observations come from the NOAA Climate Data Online (CDO) daily
// summaries export (https://www.ncdc.noaa.gov/cdo-web/), long format: one row
// per (date, station, datatype). Values are integers in tenths of the base
// unit, the GHCN-Daily convention:
//
//	TMAX/TMIN: tenths of degrees Celsius, e.g. 82 → 8.2°C
//	PRCP:      tenths of millimetres,     e.g. 142 → 14.2mm
//
// Fire detections follow the NASA FIRMS/MODIS active-fire CSV layout: one row
// per satellite detection with acq_date, coordinates, confidence, brightness
// temperature (K), and fire radiative power (MW). The is_eastern flag marks
// detections east of the Cascade crest (roughly longitude -120.85) and is
// added upstream; exports without it cannot produce regional counts.
//
// FEMA declarations come from the OpenFEMA DisasterDeclarationsSummaries API
// filtered to Washington wildfire incidents. Declarations are counted by the
// year the incident began (incidentBeginDate), not the year it was declared.
//
// # Missing Values
//
// Derived climate fields use the Missing marker (NaN) for absent
// observations. TAVG is the mean of TMAX and TMIN only when both were
// reported on the same (station, date); one-sided days stay Missing.
// Aggregation means skip Missing samples, and a cell with no samples at all
// stays Missing rather than collapsing to zero.
//
// # Aggregation Conventions
//
//	Monthly: mean of TMAX/TMIN/TAVG across stations and days; total PRCP.
//	Yearly:  mean of the monthly values, including mean of monthly PRCP totals.
//
// Duplicate (station, date, datatype) observations keep the first value seen,
// matching the upstream export order.
package domain
