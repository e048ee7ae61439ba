package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog(t *testing.T) {
	first := Catalog()
	second := Catalog()

	require.Len(t, first, 36)
	assert.Equal(t, first, second)
	assert.Equal(t, "CUUR0000SA0", first[0].SeriesID)

	// Catalog hands out copies; mutating one must not leak into the table.
	first[0].Name = "mutated"
	assert.Equal(t, "CPI - All Urban Consumers, All Items, US City Average", Catalog()[0].Name)
}

func TestSeriesIDs(t *testing.T) {
	ids := SeriesIDs()
	entries := Catalog()
	require.Len(t, ids, len(entries))
	for i, e := range entries {
		assert.Equal(t, e.SeriesID, ids[i])
	}
}

func TestSeriesName(t *testing.T) {
	assert.Equal(t, "Unemployment Rate", SeriesName("LNS14000000"))
	assert.Equal(t, "PPI - Finished Goods", SeriesName("WPUFD4"))
	assert.Equal(t, "Unknown", SeriesName("LASST390000000000003"))
}

func TestPeriodLabel(t *testing.T) {
	assert.Equal(t, "2024 M09", SeriesRecord{Year: "2024", Period: "M09"}.PeriodLabel())
	assert.Equal(t, "2024", SeriesRecord{Year: "2024"}.PeriodLabel())
	assert.Equal(t, "", SeriesRecord{}.PeriodLabel())
}
