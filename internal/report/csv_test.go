package report

import (
	"encoding/csv"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/wildfire-climate-etl/internal/domain"
	"github.com/couchcryptid/wildfire-climate-etl/internal/observability"
)

func newTestCSVWriter(t *testing.T) (*CSVWriter, string) {
	t.Helper()
	dir := t.TempDir()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewCSVWriter(dir, logger, observability.NewMetrics()), dir
}

func readRows(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestWriteMonthlyClimate(t *testing.T) {
	t.Run("writes header and formatted values", func(t *testing.T) {
		w, dir := newTestCSVWriter(t)

		err := w.WriteMonthlyClimate([]domain.MonthlyClimate{
			{Year: 2015, Month: 7, TMaxC: 8.2, TMinC: 3.3, TAvgC: 5.75, PrcpMM: 14.2},
		})
		require.NoError(t, err)

		rows := readRows(t, filepath.Join(dir, MonthlyClimateFile))
		require.Len(t, rows, 2)
		assert.Equal(t, []string{"year", "month", "TMAX", "TMIN", "TAVG", "PRCP"}, rows[0])
		assert.Equal(t, []string{"2015", "7", "8.2", "3.3", "5.75", "14.2"}, rows[1])
	})

	t.Run("missing values become empty cells", func(t *testing.T) {
		w, dir := newTestCSVWriter(t)

		err := w.WriteMonthlyClimate([]domain.MonthlyClimate{
			{Year: 2016, Month: 1, TMaxC: 2.5, TMinC: domain.Missing, TAvgC: domain.Missing, PrcpMM: 80},
		})
		require.NoError(t, err)

		rows := readRows(t, filepath.Join(dir, MonthlyClimateFile))
		require.Len(t, rows, 2)
		assert.Equal(t, "2.5", rows[1][2])
		assert.Equal(t, "", rows[1][3])
		assert.Equal(t, "", rows[1][4])
	})

	t.Run("empty input writes bare header", func(t *testing.T) {
		w, dir := newTestCSVWriter(t)

		require.NoError(t, w.WriteMonthlyClimate(nil))

		rows := readRows(t, filepath.Join(dir, MonthlyClimateFile))
		require.Len(t, rows, 1)
		assert.Equal(t, []string{"year", "month", "TMAX", "TMIN", "TAVG", "PRCP"}, rows[0])
	})
}

func TestWriteMonthlyClimateFahrenheit(t *testing.T) {
	w, dir := newTestCSVWriter(t)

	err := w.WriteMonthlyClimateFahrenheit([]domain.MonthlyClimate{
		{Year: 2015, Month: 7, TMaxC: 10, TMinC: 0, TAvgC: 5, PrcpMM: 14.2},
	})
	require.NoError(t, err)

	rows := readRows(t, filepath.Join(dir, MonthlyClimateFahrenheitFile))
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"year", "month", "TMAX_F", "TMIN_F", "TAVG_F", "PRCP"}, rows[0])
	assert.Equal(t, "50", rows[1][2])
	assert.Equal(t, "32", rows[1][3])
	assert.Equal(t, "41", rows[1][4])
	assert.Equal(t, "14.2", rows[1][5], "precipitation stays metric")
}

func TestWriteYearlyFires(t *testing.T) {
	t.Run("regional columns present when source has regions", func(t *testing.T) {
		w, dir := newTestCSVWriter(t)

		err := w.WriteYearlyFires([]domain.YearlyFireCounts{
			{Year: 2015, Count: 3, HasRegion: true, EasternCount: 2, WesternCount: 1},
			{Year: 2016, Count: 1, HasRegion: true, EasternCount: 0, WesternCount: 1},
		})
		require.NoError(t, err)

		rows := readRows(t, filepath.Join(dir, YearlyFiresFile))
		require.Len(t, rows, 3)
		assert.Equal(t, []string{"year", "fire_count", "eastern_count", "western_count"}, rows[0])
		assert.Equal(t, []string{"2015", "3", "2", "1"}, rows[1])
		assert.Equal(t, []string{"2016", "1", "0", "1"}, rows[2])
	})

	t.Run("regional columns omitted without region data", func(t *testing.T) {
		w, dir := newTestCSVWriter(t)

		err := w.WriteYearlyFires([]domain.YearlyFireCounts{
			{Year: 2015, Count: 3},
		})
		require.NoError(t, err)

		rows := readRows(t, filepath.Join(dir, YearlyFiresFile))
		require.Len(t, rows, 2)
		assert.Equal(t, []string{"year", "fire_count"}, rows[0])
		assert.Equal(t, []string{"2015", "3"}, rows[1])
	})
}

func TestWriteFireClimate(t *testing.T) {
	t.Run("correlation coefficients repeat on every row", func(t *testing.T) {
		w, dir := newTestCSVWriter(t)

		report := domain.CorrelationReport{
			Years: []domain.FireClimateYear{
				{Year: 2015, FireCount: 10, TMaxC: 15, TMinC: 5, TAvgC: 10, PrcpMM: 50},
				{Year: 2016, FireCount: 20, TMaxC: 16, TMinC: 6, TAvgC: 11, PrcpMM: 40},
			},
			TempFire: domain.CorrelationStat{Coefficient: 0.9, N: 2},
			PrcpFire: domain.CorrelationStat{Coefficient: -0.5, N: 2},
		}
		require.NoError(t, w.WriteFireClimate(report))

		rows := readRows(t, filepath.Join(dir, FireClimateFile))
		require.Len(t, rows, 3)
		for _, row := range rows[1:] {
			assert.Equal(t, "0.9", row[6])
			assert.Equal(t, "-0.5", row[7])
		}
	})

	t.Run("undefined correlation leaves blank cells", func(t *testing.T) {
		w, dir := newTestCSVWriter(t)

		report := domain.CorrelationReport{
			Years: []domain.FireClimateYear{
				{Year: 2015, FireCount: 10, TMaxC: 15, TMinC: 5, TAvgC: 10, PrcpMM: 50},
			},
			TempFire: domain.CorrelationStat{Coefficient: domain.Missing, N: 1},
			PrcpFire: domain.CorrelationStat{Coefficient: domain.Missing, N: 1},
		}
		require.NoError(t, w.WriteFireClimate(report))

		rows := readRows(t, filepath.Join(dir, FireClimateFile))
		require.Len(t, rows, 2)
		assert.Equal(t, "", rows[1][6])
		assert.Equal(t, "", rows[1][7])
	})
}

func TestWriteFireFema(t *testing.T) {
	w, dir := newTestCSVWriter(t)

	err := w.WriteFireFema([]domain.FireFemaYear{
		{Year: 2015, FireCount: 12, DeclarationCount: 2},
		{Year: 2016, FireCount: 4, DeclarationCount: 0},
	})
	require.NoError(t, err)

	rows := readRows(t, filepath.Join(dir, FireFemaFile))
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"year", "fire_count", "declaration_count"}, rows[0])
	assert.Equal(t, []string{"2016", "4", "0"}, rows[2], "years without declarations keep a zero, not a blank")
}
