package repository

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/wildfire-climate-etl/internal/domain"
)

func openTestSnapshot(t *testing.T) *Snapshot {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "snapshot.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSnapshotSave(t *testing.T) {
	domain.SetClock(clockwork.NewFakeClockAt(time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)))
	t.Cleanup(func() { domain.SetClock(nil) })

	fires := []domain.YearlyFireCounts{
		{Year: 2015, Count: 120, HasRegion: true, EasternCount: 90, WesternCount: 30},
		{Year: 2016, Count: 45, HasRegion: true, EasternCount: 40, WesternCount: 5},
	}
	climate := domain.CorrelationReport{
		Years: []domain.FireClimateYear{
			{Year: 2015, FireCount: 120, TMaxC: 15.2, TMinC: 5.1, TAvgC: 10.15, PrcpMM: 60},
		},
		TempFire: domain.CorrelationStat{Coefficient: 0.9, N: 1},
	}
	fema := []domain.FireFemaYear{
		{Year: 2015, FireCount: 120, DeclarationCount: 2},
		{Year: 2016, FireCount: 45, DeclarationCount: 0},
	}

	t.Run("persists and reads back fire counts", func(t *testing.T) {
		s := openTestSnapshot(t)

		require.NoError(t, s.Save(fires, climate, fema))

		rows, err := s.YearlyFires()
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, 2015, rows[0].Year)
		assert.Equal(t, 120, rows[0].FireCount)
		require.NotNil(t, rows[0].EasternCount)
		assert.Equal(t, 90, *rows[0].EasternCount)
		require.NotNil(t, rows[0].WesternCount)
		assert.Equal(t, 30, *rows[0].WesternCount)
	})

	t.Run("regional counts are null without region data", func(t *testing.T) {
		s := openTestSnapshot(t)

		noRegion := []domain.YearlyFireCounts{{Year: 2015, Count: 120}}
		require.NoError(t, s.Save(noRegion, domain.CorrelationReport{}, nil))

		rows, err := s.YearlyFires()
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Nil(t, rows[0].EasternCount)
		assert.Nil(t, rows[0].WesternCount)
	})

	t.Run("each save replaces the previous snapshot", func(t *testing.T) {
		s := openTestSnapshot(t)

		require.NoError(t, s.Save(fires, climate, fema))
		require.NoError(t, s.Save(fires[:1], climate, fema[:1]))

		rows, err := s.YearlyFires()
		require.NoError(t, err)
		assert.Len(t, rows, 1)

		var runs int
		require.NoError(t, s.db.Get(&runs, `SELECT COUNT(*) FROM runs`))
		assert.Equal(t, 2, runs, "run history accumulates across snapshots")
	})

	t.Run("missing climate values stored as null", func(t *testing.T) {
		s := openTestSnapshot(t)

		sparse := domain.CorrelationReport{
			Years: []domain.FireClimateYear{
				{Year: 2016, FireCount: 45, TMaxC: domain.Missing, TMinC: domain.Missing, TAvgC: domain.Missing, PrcpMM: 40},
			},
		}
		require.NoError(t, s.Save(nil, sparse, nil))

		var row struct {
			TAvgC  *float64 `db:"tavg_c"`
			PrcpMM *float64 `db:"prcp_mm"`
		}
		require.NoError(t, s.db.Get(&row, `SELECT tavg_c, prcp_mm FROM fire_climate WHERE year = 2016`))
		assert.Nil(t, row.TAvgC)
		require.NotNil(t, row.PrcpMM)
		assert.Equal(t, 40.0, *row.PrcpMM)
	})
}
