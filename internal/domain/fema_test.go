package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCountDeclarationsByYear(t *testing.T) {
	t.Run("counts by incident begin year", func(t *testing.T) {
		decls := []FemaDeclaration{
			{IncidentBeginDate: date(2020, time.September, 1), DeclarationDate: date(2020, time.September, 10)},
			{IncidentBeginDate: date(2019, time.August, 20), DeclarationDate: date(2019, time.September, 2)},
		}

		counts := CountDeclarationsByYear(decls)

		require.Len(t, counts, 2)
		assert.Equal(t, YearlyFemaCounts{Year: 2019, Count: 1}, counts[0])
		assert.Equal(t, YearlyFemaCounts{Year: 2020, Count: 1}, counts[1])
	})

	t.Run("declaration year does not matter", func(t *testing.T) {
		// Incident began in late December, declared the following January.
		decls := []FemaDeclaration{
			{IncidentBeginDate: date(2015, time.December, 28), DeclarationDate: date(2016, time.January, 5)},
		}

		counts := CountDeclarationsByYear(decls)

		require.Len(t, counts, 1)
		assert.Equal(t, 2015, counts[0].Year)
	})

	t.Run("multiple declarations in one year accumulate", func(t *testing.T) {
		decls := []FemaDeclaration{
			{IncidentBeginDate: date(2015, time.June, 28)},
			{IncidentBeginDate: date(2015, time.July, 10)},
			{IncidentBeginDate: date(2015, time.August, 14)},
		}

		counts := CountDeclarationsByYear(decls)

		require.Len(t, counts, 1)
		assert.Equal(t, 3, counts[0].Count)
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Empty(t, CountDeclarationsByYear(nil))
	})
}
