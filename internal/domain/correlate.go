package domain

import (
	"gonum.org/v1/gonum/stat"
)

// MinCorrelationYears is the smallest number of overlapping years for which
// a Pearson coefficient is reported. Below it the coefficient is Missing
// rather than a division-by-zero or a meaningless two-point fit.
const MinCorrelationYears = 3

// JoinFireClimate inner-joins yearly climate and yearly fire counts on year.
// Years present in only one dataset are dropped; the correlation is only
// meaningful where both observations exist.
func JoinFireClimate(climate []YearlyClimate, fires []YearlyFireCounts) []FireClimateYear {
	fireByYear := make(map[int]YearlyFireCounts, len(fires))
	for _, f := range fires {
		fireByYear[f.Year] = f
	}

	out := make([]FireClimateYear, 0, len(climate))
	for _, c := range climate {
		f, ok := fireByYear[c.Year]
		if !ok {
			continue
		}
		out = append(out, FireClimateYear{
			Year:      c.Year,
			FireCount: f.Count,
			TMaxC:     c.TMaxC,
			TMinC:     c.TMinC,
			TAvgC:     c.TAvgC,
			PrcpMM:    c.PrcpMM,
		})
	}

	return out
}

// Correlate computes Pearson coefficients and least-squares trend lines for
// average temperature and precipitation against yearly fire counts. Joined
// years where the climate variable itself is Missing are excluded from that
// variable's statistic.
func Correlate(joined []FireClimateYear) CorrelationReport {
	temps := make([]float64, 0, len(joined))
	tempFires := make([]float64, 0, len(joined))
	prcps := make([]float64, 0, len(joined))
	prcpFires := make([]float64, 0, len(joined))

	for _, row := range joined {
		if !IsMissing(row.TAvgC) {
			temps = append(temps, row.TAvgC)
			tempFires = append(tempFires, float64(row.FireCount))
		}
		if !IsMissing(row.PrcpMM) {
			prcps = append(prcps, row.PrcpMM)
			prcpFires = append(prcpFires, float64(row.FireCount))
		}
	}

	return CorrelationReport{
		Years:    joined,
		TempFire: correlationStat(temps, tempFires),
		PrcpFire: correlationStat(prcps, prcpFires),
	}
}

func correlationStat(xs, ys []float64) CorrelationStat {
	s := CorrelationStat{Coefficient: Missing, Slope: Missing, Intercept: Missing, N: len(xs)}
	if len(xs) < MinCorrelationYears {
		return s
	}

	s.Coefficient = stat.Correlation(xs, ys, nil)
	s.Intercept, s.Slope = stat.LinearRegression(xs, ys, nil, false)
	return s
}

// JoinFireFema left-joins yearly fire counts with yearly FEMA declaration
// counts. Every fire year is preserved; years without a declaration get a
// count of 0.
func JoinFireFema(fires []YearlyFireCounts, fema []YearlyFemaCounts) []FireFemaYear {
	femaByYear := make(map[int]int, len(fema))
	for _, d := range fema {
		femaByYear[d.Year] = d.Count
	}

	out := make([]FireFemaYear, 0, len(fires))
	for _, f := range fires {
		out = append(out, FireFemaYear{
			Year:             f.Year,
			FireCount:        f.Count,
			DeclarationCount: femaByYear[f.Year],
		})
	}

	return out
}
