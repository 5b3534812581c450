package report

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/wildfire-climate-etl/internal/domain"
)

func TestDashboardWrite(t *testing.T) {
	domain.SetClock(clockwork.NewFakeClockAt(time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)))
	t.Cleanup(func() { domain.SetClock(nil) })

	report := domain.CorrelationReport{
		TempFire: domain.CorrelationStat{Coefficient: 0.82, N: 10},
		PrcpFire: domain.CorrelationStat{Coefficient: -0.61, N: 10},
	}

	t.Run("lists only charts present on disk", func(t *testing.T) {
		dir := t.TempDir()
		for _, file := range []string{FiresByYearChart, TemperatureTrendChart} {
			require.NoError(t, os.WriteFile(filepath.Join(dir, file), []byte("png"), 0o644))
		}

		d := NewDashboard(dir, slog.New(slog.NewTextHandler(io.Discard, nil)))
		require.NoError(t, d.Write(report))

		html, err := os.ReadFile(filepath.Join(dir, DashboardFile))
		require.NoError(t, err)

		assert.Contains(t, string(html), FiresByYearChart)
		assert.Contains(t, string(html), TemperatureTrendChart)
		assert.NotContains(t, string(html), FiresByRegionChart)
		assert.Contains(t, string(html), "r = 0.82 over 10 years")
		assert.Contains(t, string(html), "r = -0.61 over 10 years")
		assert.Contains(t, string(html), "2024-03-01 12:00:00 UTC")
	})

	t.Run("reports insufficient data when correlation undefined", func(t *testing.T) {
		dir := t.TempDir()
		d := NewDashboard(dir, slog.New(slog.NewTextHandler(io.Discard, nil)))

		undefined := domain.CorrelationReport{
			TempFire: domain.CorrelationStat{Coefficient: domain.Missing, N: 2},
			PrcpFire: domain.CorrelationStat{Coefficient: domain.Missing, N: 2},
		}
		require.NoError(t, d.Write(undefined))

		html, err := os.ReadFile(filepath.Join(dir, DashboardFile))
		require.NoError(t, err)
		assert.Contains(t, string(html), "insufficient data (2 overlapping years)")
	})
}
