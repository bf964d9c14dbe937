package board

import (
	"strings"
	"testing"

	"github.com/AdamHerman69/backranq-sub002/internal/core"

	"github.com/stretchr/testify/require"
)

func TestParseFEN(t *testing.T) {
	b, err := ParseFEN(StartingFEN)
	require.NoError(t, err)
	require.Equal(t, core.ColorWhite, b.Turn())
	require.Equal(t, byte('K'), b.GetPieceAt("e1"))
	require.Equal(t, byte('r'), b.GetPieceAt("a8"))
	require.Equal(t, byte('p'), b.GetPieceAt("e7"))
	require.Equal(t, byte(0), b.GetPieceAt("e4"))

	b, err = ParseFEN("8/8/8/4k3/8/8/4P3/4K3 b - - 3 40")
	require.NoError(t, err)
	require.Equal(t, core.ColorBlack, b.Turn())
}

func TestParseFENErrors(t *testing.T) {
	tests := []struct {
		name string
		fen  string
	}{
		{"too few parts", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq -"},
		{"too few ranks", "8/8/8/8/8/8/PPPPPPPP w KQkq - 0 1"},
		{"short rank", "rnbqkbnr/ppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"},
		{"overfull rank", "rnbqkbnrr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"},
		{"bad turn", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR x KQkq - 0 1"},
		{"bad halfmove", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - x 1"},
		{"bad fullmove", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 x"},
		{"empty", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseFEN(tt.fen)
			require.Error(t, err)
		})
	}
}

func TestIsValidUCI(t *testing.T) {
	tests := []struct {
		move  string
		valid bool
	}{
		{"e2e4", true},
		{"g8f6", true},
		{"e7e8q", true},
		{"a2a1n", true},
		{"e7e8k", false},
		{"e2e", false},
		{"e2e4x5", false},
		{"i2i4", false},
		{"e9e4", false},
		{"", false},
		{"O-O", false},
	}

	for _, tt := range tests {
		require.Equal(t, tt.valid, IsValidUCI(tt.move), "move %q", tt.move)
	}
}

func TestIsCapture(t *testing.T) {
	start, err := ParseFEN(StartingFEN)
	require.NoError(t, err)
	require.False(t, start.IsCapture("e2e4"))
	require.False(t, start.IsCapture("g1f3"))

	// Scholar's mate position, Qxf7 takes a pawn
	b, err := ParseFEN("r1bqkbnr/pppp1ppp/2n5/4p3/2B1P3/5Q2/PPPP1PPP/RNB1K1NR w KQkq - 0 4")
	require.NoError(t, err)
	require.True(t, b.IsCapture("f3f7"))
	require.True(t, b.IsCapture("c4f7"))
	require.False(t, b.IsCapture("f3f6"))

	// En passant: pawn moving diagonally onto an empty square
	ep, err := ParseFEN("rnbqkbnr/ppp1p1pp/8/3pPp2/8/8/PPPP1PPP/RNBQKBNR w KQkq f6 0 3")
	require.NoError(t, err)
	require.True(t, ep.IsCapture("e5f6"))
	require.False(t, ep.IsCapture("e5e6"))
}

func TestIsPromotion(t *testing.T) {
	require.True(t, IsPromotion("e7e8q"))
	require.True(t, IsPromotion("a2a1r"))
	require.False(t, IsPromotion("e7e8"))
	require.False(t, IsPromotion("e7e8x"))
}

func TestApplyUCIPawnPush(t *testing.T) {
	b, err := ParseFEN(StartingFEN)
	require.NoError(t, err)

	nb, err := b.ApplyUCI("e2e4")
	require.NoError(t, err)
	require.Equal(t, byte('P'), nb.GetPieceAt("e4"))
	require.Equal(t, byte(0), nb.GetPieceAt("e2"))
	require.Equal(t, core.ColorBlack, nb.Turn())
	require.Equal(t, "e3", nb.enPassant)
	require.Equal(t, 1, nb.fullmove)

	// Original board untouched
	require.Equal(t, byte('P'), b.GetPieceAt("e2"))

	nb2, err := nb.ApplyUCI("e7e5")
	require.NoError(t, err)
	require.Equal(t, "e6", nb2.enPassant)
	require.Equal(t, core.ColorWhite, nb2.Turn())
	require.Equal(t, 2, nb2.fullmove)

	// A quiet non-double move clears the en passant target
	nb3, err := nb2.ApplyUCI("g1f3")
	require.NoError(t, err)
	require.Equal(t, "-", nb3.enPassant)
}

func TestApplyUCIEnPassantCapture(t *testing.T) {
	b, err := ParseFEN("rnbqkbnr/ppp1p1pp/8/3pPp2/8/8/PPPP1PPP/RNBQKBNR w KQkq f6 0 3")
	require.NoError(t, err)

	nb, err := b.ApplyUCI("e5f6")
	require.NoError(t, err)
	require.Equal(t, byte('P'), nb.GetPieceAt("f6"))
	require.Equal(t, byte(0), nb.GetPieceAt("e5"))
	require.Equal(t, byte(0), nb.GetPieceAt("f5"), "captured pawn must be removed")
}

func TestApplyUCICastling(t *testing.T) {
	b, err := ParseFEN("r3k2r/pppppppp/8/8/8/8/PPPPPPPP/R3K2R w KQkq - 0 1")
	require.NoError(t, err)

	kingSide, err := b.ApplyUCI("e1g1")
	require.NoError(t, err)
	require.Equal(t, byte('K'), kingSide.GetPieceAt("g1"))
	require.Equal(t, byte('R'), kingSide.GetPieceAt("f1"))
	require.Equal(t, byte(0), kingSide.GetPieceAt("h1"))
	require.Equal(t, byte(0), kingSide.GetPieceAt("e1"))

	queenSide, err := b.ApplyUCI("e1c1")
	require.NoError(t, err)
	require.Equal(t, byte('K'), queenSide.GetPieceAt("c1"))
	require.Equal(t, byte('R'), queenSide.GetPieceAt("d1"))
	require.Equal(t, byte(0), queenSide.GetPieceAt("a1"))

	black, err := kingSide.ApplyUCI("e8g8")
	require.NoError(t, err)
	require.Equal(t, byte('k'), black.GetPieceAt("g8"))
	require.Equal(t, byte('r'), black.GetPieceAt("f8"))
}

func TestApplyUCIPromotion(t *testing.T) {
	b, err := ParseFEN("8/4P3/8/4k3/8/4K3/4p3/8 w - - 0 1")
	require.NoError(t, err)

	white, err := b.ApplyUCI("e7e8q")
	require.NoError(t, err)
	require.Equal(t, byte('Q'), white.GetPieceAt("e8"))

	black, err := white.ApplyUCI("e2e1n")
	require.NoError(t, err)
	require.Equal(t, byte('n'), black.GetPieceAt("e1"))
}

func TestApplyUCIErrors(t *testing.T) {
	b, err := ParseFEN(StartingFEN)
	require.NoError(t, err)

	_, err = b.ApplyUCI("xyz")
	require.Error(t, err)

	_, err = b.ApplyUCI("e4e5")
	require.Error(t, err, "no piece on the from-square")
}

func TestChecks(t *testing.T) {
	// Back-rank rook check
	b, err := ParseFEN("6k1/5ppp/8/8/8/8/8/4R1K1 w - - 0 1")
	require.NoError(t, err)
	require.True(t, b.GivesCheck("e1e8"))
	require.False(t, b.GivesCheck("e1e2"))
	require.False(t, b.InCheck(core.ColorBlack))
	require.False(t, b.InCheck(core.ColorWhite))

	// Qxf7+ in the scholar's mate position
	scholar, err := ParseFEN("r1bqkbnr/pppp1ppp/2n5/4p3/2B1P3/5Q2/PPPP1PPP/RNB1K1NR w KQkq - 0 4")
	require.NoError(t, err)
	require.True(t, scholar.GivesCheck("f3f7"))
	require.False(t, scholar.GivesCheck("d2d3"))

	// Knight check
	knight, err := ParseFEN("4k3/8/8/8/8/5n2/8/4K3 w - - 0 1")
	require.NoError(t, err)
	require.True(t, knight.InCheck(core.ColorWhite))
	require.False(t, knight.InCheck(core.ColorBlack))
}

func TestNonKingPieceCount(t *testing.T) {
	start, err := ParseFEN(StartingFEN)
	require.NoError(t, err)
	require.Equal(t, 30, start.NonKingPieceCount())

	sparse, err := ParseFEN("8/8/8/4k3/8/8/4P3/4K3 w - - 0 1")
	require.NoError(t, err)
	require.Equal(t, 1, sparse.NonKingPieceCount())
}

func TestToASCII(t *testing.T) {
	b, err := ParseFEN(StartingFEN)
	require.NoError(t, err)

	out := b.ToASCII()
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 10)
	require.Equal(t, "  a b c d e f g h", lines[0])
	require.True(t, strings.HasPrefix(lines[1], "8 r n b q k b n r"))
	require.True(t, strings.HasPrefix(lines[8], "1 R N B Q K B N R"))
	require.Contains(t, lines[4], ". . . . . . . .")
}
