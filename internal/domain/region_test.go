package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveState(t *testing.T) {
	t.Run("abbreviation, name, and FIPS agree", func(t *testing.T) {
		byAbbrev, ok := ResolveState("OH")
		require.True(t, ok)
		byName, ok := ResolveState("Ohio")
		require.True(t, ok)
		byFIPS, ok := ResolveState("39")
		require.True(t, ok)

		assert.Equal(t, byAbbrev, byName)
		assert.Equal(t, byName, byFIPS)
		assert.Equal(t, Region{FIPS: "39", Name: "Ohio"}, byAbbrev)
	})

	t.Run("case-insensitive matching", func(t *testing.T) {
		cases := []string{"oh", "OHIO", "ohio", " Ohio "}
		for _, input := range cases {
			region, ok := ResolveState(input)
			require.True(t, ok, "input %q", input)
			assert.Equal(t, "39", region.FIPS)
		}
	})

	t.Run("single-digit FIPS is zero-padded", func(t *testing.T) {
		region, ok := ResolveState("9")
		require.True(t, ok)
		assert.Equal(t, Region{FIPS: "09", Name: "Connecticut"}, region)
	})

	t.Run("abbreviation wins over other interpretations", func(t *testing.T) {
		// "LA" is Louisiana's abbreviation, not a fragment of anything else.
		region, ok := ResolveState("la")
		require.True(t, ok)
		assert.Equal(t, "Louisiana", region.Name)
	})

	t.Run("district and territory entries", func(t *testing.T) {
		dc, ok := ResolveState("DC")
		require.True(t, ok)
		assert.Equal(t, "11", dc.FIPS)

		pr, ok := ResolveState("Puerto Rico")
		require.True(t, ok)
		assert.Equal(t, "72", pr.FIPS)
	})

	t.Run("unknown input", func(t *testing.T) {
		for _, input := range []string{"", "Atlantis", "99", "ZZ"} {
			_, ok := ResolveState(input)
			assert.False(t, ok, "input %q", input)
		}
	})
}

func TestCountyRegion(t *testing.T) {
	t.Run("pads to five digits", func(t *testing.T) {
		region := CountyRegion("9049", "")
		assert.Equal(t, "09049", region.FIPS)
		assert.Equal(t, "County FIPS 09049", region.Name)
	})

	t.Run("keeps caller label", func(t *testing.T) {
		region := CountyRegion("39049", "Franklin County, OH")
		assert.Equal(t, "39049", region.FIPS)
		assert.Equal(t, "Franklin County, OH", region.Name)
	})
}

func TestStates(t *testing.T) {
	states := States()
	require.Len(t, states, 52)

	assert.Equal(t, "Alabama", states[0].Name)
	for i := 1; i < len(states); i++ {
		assert.Less(t, states[i-1].Name, states[i].Name)
	}

	byName := make(map[string]StateInfo, len(states))
	for _, s := range states {
		byName[s.Name] = s
	}
	assert.Equal(t, StateInfo{Name: "Ohio", Abbreviation: "OH", FIPS: "39"}, byName["Ohio"])
	assert.Equal(t, "PR", byName["Puerto Rico"].Abbreviation)
}
