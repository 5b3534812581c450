package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJoinFireClimate(t *testing.T) {
	t.Run("keeps only years present in both datasets", func(t *testing.T) {
		climate := []YearlyClimate{
			{Year: 2017, TAvgC: 9.0, PrcpMM: 70},
			{Year: 2018, TAvgC: 10.5, PrcpMM: 55},
			{Year: 2019, TAvgC: 9.8, PrcpMM: 65},
		}
		fires := []YearlyFireCounts{
			{Year: 2018, Count: 120},
			{Year: 2019, Count: 95},
			{Year: 2020, Count: 200},
		}

		joined := JoinFireClimate(climate, fires)

		require.Len(t, joined, 2)
		assert.Equal(t, 2018, joined[0].Year)
		assert.Equal(t, 120, joined[0].FireCount)
		assert.Equal(t, 10.5, joined[0].TAvgC)
		assert.Equal(t, 2019, joined[1].Year)
		assert.Equal(t, 95, joined[1].FireCount)
	})

	t.Run("no overlap yields empty join", func(t *testing.T) {
		climate := []YearlyClimate{{Year: 2000}}
		fires := []YearlyFireCounts{{Year: 2018, Count: 1}}

		assert.Empty(t, JoinFireClimate(climate, fires))
	})
}

func TestCorrelate(t *testing.T) {
	t.Run("perfectly linear data correlates at one", func(t *testing.T) {
		joined := []FireClimateYear{
			{Year: 2016, FireCount: 10, TAvgC: 8.0, PrcpMM: 90},
			{Year: 2017, FireCount: 20, TAvgC: 9.0, PrcpMM: 80},
			{Year: 2018, FireCount: 30, TAvgC: 10.0, PrcpMM: 70},
			{Year: 2019, FireCount: 40, TAvgC: 11.0, PrcpMM: 60},
		}

		report := Correlate(joined)

		require.True(t, report.TempFire.Defined())
		assert.InDelta(t, 1.0, report.TempFire.Coefficient, 1e-9)
		assert.InDelta(t, 10.0, report.TempFire.Slope, 1e-9)
		assert.Equal(t, 4, report.TempFire.N)

		require.True(t, report.PrcpFire.Defined())
		assert.InDelta(t, -1.0, report.PrcpFire.Coefficient, 1e-9)
	})

	t.Run("coefficient stays within bounds on noisy data", func(t *testing.T) {
		joined := []FireClimateYear{
			{Year: 2015, FireCount: 35, TAvgC: 9.1, PrcpMM: 88},
			{Year: 2016, FireCount: 12, TAvgC: 8.4, PrcpMM: 71},
			{Year: 2017, FireCount: 81, TAvgC: 10.2, PrcpMM: 43},
			{Year: 2018, FireCount: 44, TAvgC: 9.6, PrcpMM: 66},
			{Year: 2019, FireCount: 27, TAvgC: 8.9, PrcpMM: 95},
		}

		report := Correlate(joined)

		require.True(t, report.TempFire.Defined())
		assert.GreaterOrEqual(t, report.TempFire.Coefficient, -1.0)
		assert.LessOrEqual(t, report.TempFire.Coefficient, 1.0)
		assert.GreaterOrEqual(t, report.PrcpFire.Coefficient, -1.0)
		assert.LessOrEqual(t, report.PrcpFire.Coefficient, 1.0)
	})

	t.Run("fewer than three years is undefined not a crash", func(t *testing.T) {
		joined := []FireClimateYear{
			{Year: 2018, FireCount: 10, TAvgC: 9.0, PrcpMM: 50},
			{Year: 2019, FireCount: 20, TAvgC: 10.0, PrcpMM: 40},
		}

		report := Correlate(joined)

		assert.False(t, report.TempFire.Defined())
		assert.False(t, report.PrcpFire.Defined())
		assert.Equal(t, 2, report.TempFire.N)
	})

	t.Run("missing climate values are excluded per variable", func(t *testing.T) {
		joined := []FireClimateYear{
			{Year: 2016, FireCount: 10, TAvgC: 8.0, PrcpMM: Missing},
			{Year: 2017, FireCount: 20, TAvgC: 9.0, PrcpMM: Missing},
			{Year: 2018, FireCount: 30, TAvgC: 10.0, PrcpMM: 70},
			{Year: 2019, FireCount: 40, TAvgC: 11.0, PrcpMM: 60},
		}

		report := Correlate(joined)

		assert.True(t, report.TempFire.Defined())
		assert.Equal(t, 4, report.TempFire.N)
		assert.False(t, report.PrcpFire.Defined())
		assert.Equal(t, 2, report.PrcpFire.N)
	})

	t.Run("empty join", func(t *testing.T) {
		report := Correlate(nil)
		assert.False(t, report.TempFire.Defined())
		assert.Empty(t, report.Years)
	})
}

func TestCorrelationStat_ZeroValueUndefined(t *testing.T) {
	// A report that was never computed must not read as r = 0 over 0 years.
	var s CorrelationStat
	assert.False(t, s.Defined())
	assert.False(t, CorrelationReport{}.TempFire.Defined())
}

func TestJoinFireFema(t *testing.T) {
	t.Run("preserves every fire year with zero fill", func(t *testing.T) {
		fires := []YearlyFireCounts{
			{Year: 2018, Count: 120},
			{Year: 2019, Count: 95},
			{Year: 2020, Count: 200},
		}
		fema := []YearlyFemaCounts{
			{Year: 2018, Count: 2},
			{Year: 2020, Count: 1},
		}

		joined := JoinFireFema(fires, fema)

		require.Len(t, joined, len(fires))
		assert.Equal(t, FireFemaYear{Year: 2018, FireCount: 120, DeclarationCount: 2}, joined[0])
		assert.Equal(t, FireFemaYear{Year: 2019, FireCount: 95, DeclarationCount: 0}, joined[1])
		assert.Equal(t, FireFemaYear{Year: 2020, FireCount: 200, DeclarationCount: 1}, joined[2])
	})

	t.Run("fema-only years are dropped", func(t *testing.T) {
		fires := []YearlyFireCounts{{Year: 2019, Count: 10}}
		fema := []YearlyFemaCounts{{Year: 2018, Count: 3}}

		joined := JoinFireFema(fires, fema)

		require.Len(t, joined, 1)
		assert.Equal(t, 2019, joined[0].Year)
		assert.Zero(t, joined[0].DeclarationCount)
	})
}
