// Package repository persists the processed tables into a SQLite snapshot so
// downstream tools can query results without re-parsing CSVs. Each run
// replaces the previous snapshot; nothing is stored incrementally.
package repository

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/couchcryptid/wildfire-climate-etl/internal/domain"
)

const schema = `
CREATE TABLE IF NOT EXISTS yearly_fires (
	year          INTEGER PRIMARY KEY,
	fire_count    INTEGER NOT NULL,
	eastern_count INTEGER,
	western_count INTEGER
);

CREATE TABLE IF NOT EXISTS fire_climate (
	year       INTEGER PRIMARY KEY,
	fire_count INTEGER NOT NULL,
	tmax_c     REAL,
	tmin_c     REAL,
	tavg_c     REAL,
	prcp_mm    REAL
);

CREATE TABLE IF NOT EXISTS fire_fema (
	year              INTEGER PRIMARY KEY,
	fire_count        INTEGER NOT NULL,
	declaration_count INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS runs (
	id           INTEGER PRIMARY KEY AUTOINCREMENT,
	completed_at DATETIME NOT NULL
);
`

// Snapshot is a SQLite sink for the processed tables.
type Snapshot struct {
	db *sqlx.DB
}

// Open opens (and migrates) the snapshot database at path.
func Open(path string) (*Snapshot, error) {
	db, err := sqlx.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open snapshot %s: %w", path, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping snapshot %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate snapshot: %w", err)
	}
	return &Snapshot{db: db}, nil
}

// Close releases the database handle.
func (s *Snapshot) Close() error {
	return s.db.Close()
}

// Save replaces the snapshot with the given tables inside one transaction
// and records the run completion time from the injected clock.
func (s *Snapshot) Save(
	fires []domain.YearlyFireCounts,
	climate domain.CorrelationReport,
	fema []domain.FireFemaYear,
) error {
	tx, err := s.db.Beginx()
	if err != nil {
		return fmt.Errorf("begin snapshot tx: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"yearly_fires", "fire_climate", "fire_fema"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	for _, f := range fires {
		var eastern, western any
		if f.HasRegion {
			eastern, western = f.EasternCount, f.WesternCount
		}
		_, err := tx.Exec(
			`INSERT INTO yearly_fires (year, fire_count, eastern_count, western_count) VALUES (?, ?, ?, ?)`,
			f.Year, f.Count, eastern, western,
		)
		if err != nil {
			return fmt.Errorf("insert yearly_fires %d: %w", f.Year, err)
		}
	}

	for _, y := range climate.Years {
		_, err := tx.Exec(
			`INSERT INTO fire_climate (year, fire_count, tmax_c, tmin_c, tavg_c, prcp_mm) VALUES (?, ?, ?, ?, ?, ?)`,
			y.Year, y.FireCount, nullable(y.TMaxC), nullable(y.TMinC), nullable(y.TAvgC), nullable(y.PrcpMM),
		)
		if err != nil {
			return fmt.Errorf("insert fire_climate %d: %w", y.Year, err)
		}
	}

	for _, y := range fema {
		_, err := tx.Exec(
			`INSERT INTO fire_fema (year, fire_count, declaration_count) VALUES (?, ?, ?)`,
			y.Year, y.FireCount, y.DeclarationCount,
		)
		if err != nil {
			return fmt.Errorf("insert fire_fema %d: %w", y.Year, err)
		}
	}

	if _, err := tx.Exec(`INSERT INTO runs (completed_at) VALUES (?)`, domain.Now().UTC()); err != nil {
		return fmt.Errorf("record run: %w", err)
	}

	return tx.Commit()
}

// YearlyFireRow mirrors the yearly_fires table for queries.
type YearlyFireRow struct {
	Year         int  `db:"year"`
	FireCount    int  `db:"fire_count"`
	EasternCount *int `db:"eastern_count"`
	WesternCount *int `db:"western_count"`
}

// YearlyFires reads back the persisted fire counts, newest snapshot only.
func (s *Snapshot) YearlyFires() ([]YearlyFireRow, error) {
	var rows []YearlyFireRow
	if err := s.db.Select(&rows, `SELECT year, fire_count, eastern_count, western_count FROM yearly_fires ORDER BY year`); err != nil {
		return nil, fmt.Errorf("select yearly_fires: %w", err)
	}
	return rows, nil
}

// nullable maps the Missing marker to SQL NULL.
func nullable(v float64) any {
	if domain.IsMissing(v) {
		return nil
	}
	return v
}
