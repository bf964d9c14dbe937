package opening

import (
	"testing"

	"github.com/AdamHerman69/backranq-sub002/internal/core"

	"github.com/stretchr/testify/require"
)

func TestClassifyTrustsHeaders(t *testing.T) {
	tags := map[string]string{
		"ECO":       "B33",
		"Opening":   "Sicilian Defense",
		"Variation": "Sveshnikov",
	}

	// Header values win verbatim even when the moves say otherwise
	info := Classify(tags, []string{"d4", "d5"})
	require.Equal(t, core.OpeningSourcePGN, info.Source)
	require.Equal(t, "B33", info.ECO)
	require.Equal(t, "Sicilian Defense", info.Name)
	require.Equal(t, "Sveshnikov", info.Variation)
}

func TestClassifyPartialHeaders(t *testing.T) {
	// A single header tag is enough to trust the PGN attribution
	info := Classify(map[string]string{"Opening": "Latvian Gambit"}, nil)
	require.Equal(t, core.OpeningSourcePGN, info.Source)
	require.Equal(t, "Latvian Gambit", info.Name)
	require.Empty(t, info.ECO)
}

func TestClassifyFallsBackToMoves(t *testing.T) {
	info := Classify(nil, []string{"e4", "c5", "Nf3"})
	require.Equal(t, core.OpeningSourceGuess, info.Source)
	require.Equal(t, "B27", info.ECO)

	info = Classify(map[string]string{"Event": "club night"}, []string{"e4", "c5"})
	require.Equal(t, core.OpeningSourceGuess, info.Source)
	require.Equal(t, "B20", info.ECO)
}

func TestFromMovesLongestPrefixWins(t *testing.T) {
	tests := []struct {
		name      string
		moves     []string
		eco       string
		opening   string
		variation string
	}{
		{
			name:    "single move",
			moves:   []string{"e4"},
			eco:     "B00",
			opening: "King's Pawn Game",
		},
		{
			name:    "two moves extend the match",
			moves:   []string{"e4", "e5"},
			eco:     "C20",
			opening: "King's Pawn Game",
		},
		{
			name:    "italian over shorter entries",
			moves:   []string{"e4", "e5", "Nf3", "Nc6", "Bc4"},
			eco:     "C50",
			opening: "Italian Game",
		},
		{
			name:      "giuoco piano over plain italian",
			moves:     []string{"e4", "e5", "Nf3", "Nc6", "Bc4", "Bc5"},
			eco:       "C50",
			opening:   "Italian Game",
			variation: "Giuoco Piano",
		},
		{
			name:      "main line with trailing moves",
			moves:     []string{"e4", "e5", "Nf3", "Nc6", "Bc4", "Bc5", "c3", "Nf6", "d4"},
			eco:       "C53",
			opening:   "Italian Game",
			variation: "Giuoco Piano, Main Line",
		},
		{
			name:      "najdorf",
			moves:     []string{"e4", "c5", "Nf3", "d6", "d4", "cxd4", "Nxd4", "Nf6", "Nc3", "a6"},
			eco:       "B90",
			opening:   "Sicilian Defense",
			variation: "Najdorf",
		},
		{
			name:      "check suffixes ignored for matching",
			moves:     []string{"d4", "d5", "c4", "dxc4+"},
			eco:       "D20",
			opening:   "Queen's Gambit Accepted",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := FromMoves(tt.moves)
			require.Equal(t, core.OpeningSourceGuess, info.Source)
			require.Equal(t, tt.eco, info.ECO)
			require.Equal(t, tt.opening, info.Name)
			require.Equal(t, tt.variation, info.Variation)
		})
	}
}

func TestFromMovesNoMatch(t *testing.T) {
	for _, moves := range [][]string{nil, {}, {"a3"}, {"h4", "h5"}} {
		info := FromMoves(moves)
		require.Equal(t, core.OpeningSourceUnknown, info.Source)
		require.Empty(t, info.ECO)
		require.Empty(t, info.Name)
		require.Empty(t, info.Variation)
	}
}
