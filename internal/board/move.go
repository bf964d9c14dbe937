package board

import (
	"fmt"

	"github.com/AdamHerman69/backranq-sub002/internal/core"
)

// IsValidUCI reports whether a move string has UCI shape:
// [a-h][1-8][a-h][1-8] with an optional promotion piece.
func IsValidUCI(move string) bool {
	if len(move) < 4 || len(move) > 5 {
		return false
	}
	if move[0] < 'a' || move[0] > 'h' ||
		move[1] < '1' || move[1] > '8' ||
		move[2] < 'a' || move[2] > 'h' ||
		move[3] < '1' || move[3] > '8' {
		return false
	}
	if len(move) == 5 {
		p := move[4]
		if p != 'q' && p != 'r' && p != 'b' && p != 'n' {
			return false
		}
	}
	return true
}

// IsCapture reports whether the UCI move takes a piece in this position,
// including en passant captures onto the empty target square.
func (b *Board) IsCapture(move string) bool {
	if !IsValidUCI(move) {
		return false
	}
	from := b.GetPieceAt(move[0:2])
	to := b.GetPieceAt(move[2:4])
	if to != 0 {
		return true
	}
	// Pawn moving diagonally onto an empty square is en passant
	if (from == 'P' || from == 'p') && move[0] != move[2] {
		return true
	}
	return false
}

// IsPromotion reports whether the UCI move carries a promotion piece.
func IsPromotion(move string) bool {
	return len(move) == 5 && IsValidUCI(move)
}

// ApplyUCI returns a copy of the board with the move applied. The move is
// assumed legal; castling rook relocation and en passant removal are
// handled, castling rights and counters are updated conservatively.
func (b *Board) ApplyUCI(move string) (*Board, error) {
	if !IsValidUCI(move) {
		return nil, fmt.Errorf("invalid UCI move: %q", move)
	}
	fr, ff, _ := squareIndex(move[0:2])
	tr, tf, _ := squareIndex(move[2:4])

	piece := b.squares[fr][ff]
	if piece == 0 {
		return nil, fmt.Errorf("no piece on %s", move[0:2])
	}

	nb := *b
	nb.squares[fr][ff] = 0

	// En passant removal: pawn moves diagonally onto an empty square
	if (piece == 'P' || piece == 'p') && ff != tf && b.squares[tr][tf] == 0 {
		nb.squares[fr][tf] = 0
	}

	nb.squares[tr][tf] = piece

	// Promotion
	if len(move) == 5 {
		promo := move[4]
		if piece == 'P' {
			promo = promo - 'a' + 'A'
		}
		nb.squares[tr][tf] = promo
	}

	// Castling: king moved two files, relocate the rook
	if (piece == 'K' || piece == 'k') && abs(tf-ff) == 2 {
		if tf > ff { // king side
			nb.squares[tr][5] = nb.squares[tr][7]
			nb.squares[tr][7] = 0
		} else { // queen side
			nb.squares[tr][3] = nb.squares[tr][0]
			nb.squares[tr][0] = 0
		}
	}

	// New en passant target after a double pawn push
	nb.enPassant = "-"
	if piece == 'P' && fr-tr == 2 {
		nb.enPassant = fmt.Sprintf("%c%c", 'a'+ff, '8'-byte(fr-1))
	} else if piece == 'p' && tr-fr == 2 {
		nb.enPassant = fmt.Sprintf("%c%c", 'a'+ff, '8'-byte(fr+1))
	}

	if nb.turn == core.ColorBlack {
		nb.fullmove++
	}
	nb.turn = core.OppositeColor(nb.turn)

	return &nb, nil
}

// GivesCheck reports whether the UCI move leaves the opponent's king in
// check in the resulting position.
func (b *Board) GivesCheck(move string) bool {
	nb, err := b.ApplyUCI(move)
	if err != nil {
		return false
	}
	return nb.InCheck(nb.turn)
}

// InCheck reports whether the king of the given color is attacked.
func (b *Board) InCheck(c core.Color) bool {
	king := byte('k')
	if c == core.ColorWhite {
		king = 'K'
	}
	for r := 0; r < 8; r++ {
		for f := 0; f < 8; f++ {
			if b.squares[r][f] == king {
				return b.squareAttacked(r, f, core.OppositeColor(c))
			}
		}
	}
	return false
}

// squareAttacked reports whether (rank, file) is attacked by any piece of
// the given color.
func (b *Board) squareAttacked(rank, file int, by core.Color) bool {
	// Knight jumps
	knightOffsets := [8][2]int{{-2, -1}, {-2, 1}, {-1, -2}, {-1, 2}, {1, -2}, {1, 2}, {2, -1}, {2, 1}}
	for _, d := range knightOffsets {
		if p := b.pieceAtIdx(rank+d[0], file+d[1]); p != 0 && pieceColor(p) == by && (p == 'N' || p == 'n') {
			return true
		}
	}

	// King adjacency
	for dr := -1; dr <= 1; dr++ {
		for df := -1; df <= 1; df++ {
			if dr == 0 && df == 0 {
				continue
			}
			if p := b.pieceAtIdx(rank+dr, file+df); p != 0 && pieceColor(p) == by && (p == 'K' || p == 'k') {
				return true
			}
		}
	}

	// Pawn attacks: white pawns attack toward lower rank index
	pawnDir := 1
	pawn := byte('P')
	if by == core.ColorBlack {
		pawnDir = -1
		pawn = 'p'
	}
	for _, df := range []int{-1, 1} {
		if p := b.pieceAtIdx(rank+pawnDir, file+df); p == pawn {
			return true
		}
	}

	// Sliding pieces
	rookDirs := [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
	bishopDirs := [4][2]int{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}
	for _, d := range rookDirs {
		if p := b.firstPieceAlong(rank, file, d[0], d[1]); p != 0 && pieceColor(p) == by && (p == 'R' || p == 'r' || p == 'Q' || p == 'q') {
			return true
		}
	}
	for _, d := range bishopDirs {
		if p := b.firstPieceAlong(rank, file, d[0], d[1]); p != 0 && pieceColor(p) == by && (p == 'B' || p == 'b' || p == 'Q' || p == 'q') {
			return true
		}
	}

	return false
}

func (b *Board) pieceAtIdx(rank, file int) byte {
	if rank < 0 || rank > 7 || file < 0 || file > 7 {
		return 0
	}
	return b.squares[rank][file]
}

func (b *Board) firstPieceAlong(rank, file, dr, df int) byte {
	r, f := rank+dr, file+df
	for r >= 0 && r <= 7 && f >= 0 && f <= 7 {
		if p := b.squares[r][f]; p != 0 {
			return p
		}
		r += dr
		f += df
	}
	return 0
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
