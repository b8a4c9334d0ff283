package kalah

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRules_Validate(t *testing.T) {
	assert.NoError(t, DefaultRules().Validate())
	assert.Error(t, Rules{PitsPerPlayer: 0, SeedsPerPit: 4}.Validate())
	assert.Error(t, Rules{PitsPerPlayer: 6, SeedsPerPit: -1}.Validate())
	assert.Error(t, Rules{PitsPerPlayer: 6, SeedsPerPit: 4, Sweep: SweepPolicy(9)}.Validate())
	assert.Error(t, Rules{PitsPerPlayer: 6, SeedsPerPit: MaxSeeds}.Validate())
	assert.Error(t, Rules{PitsPerPlayer: MaxSeeds, SeedsPerPit: 1}.Validate())
	assert.NoError(t, Rules{PitsPerPlayer: 1, SeedsPerPit: MaxSeeds / 2}.Validate())
	assert.Equal(t, 14, DefaultRules().CycleLength())
}

func TestParseSweepPolicy(t *testing.T) {
	tests := map[string]SweepPolicy{
		"":          SweepNone,
		"none":      SweepNone,
		"remaining": SweepRemaining,
		"Sweep":     SweepRemaining,
	}
	for input, want := range tests {
		got, err := ParseSweepPolicy(input)
		require.NoError(t, err, input)
		assert.Equal(t, want, got, input)
		if input != "" && input != "Sweep" {
			assert.Equal(t, input, got.String())
		}
	}

	_, err := ParseSweepPolicy("everything")
	assert.Error(t, err)
}

func TestGameResult(t *testing.T) {
	for _, r := range []GameResult{InProgress, Draw, FirstPlayerWon, SecondPlayerWon} {
		parsed, err := ParseGameResult(r.String())
		require.NoError(t, err)
		assert.Equal(t, r, parsed)
	}
	_, err := ParseGameResult("forfeit")
	assert.Error(t, err)

	seat, ok := SecondPlayerWon.Winner()
	assert.True(t, ok)
	assert.Equal(t, Second, seat)
	_, ok = Draw.Winner()
	assert.False(t, ok)
}
