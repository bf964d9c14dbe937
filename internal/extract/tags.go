package extract

import (
	"fmt"

	"github.com/AdamHerman69/backranq-sub002/internal/analysis"
	"github.com/AdamHerman69/backranq-sub002/internal/board"
	"github.com/AdamHerman69/backranq-sub002/internal/core"
)

// maxTags bounds tag cardinality per puzzle.
const maxTags = 8

// buildTags derives the deduplicated signal tag set for a puzzle: the
// kind marker plus tactical motifs found on the solution move.
func buildTags(c candidate, best *analysis.Line) []string {
	tags := []string{fmt.Sprintf("kind:%s", c.ptype)}
	add := func(t string) {
		if len(tags) >= maxTags {
			return
		}
		for _, existing := range tags {
			if existing == t {
				return
			}
		}
		tags = append(tags, t)
	}

	if best.IsMate {
		add("mate")
	}
	if c.severity >= core.SeverityBlunder {
		add("blunder")
	} else {
		add("missed-tactic")
	}

	if b, err := board.ParseFEN(c.fen); err == nil {
		if b.IsCapture(best.MoveUci) {
			add("capture")
		}
		if board.IsPromotion(best.MoveUci) {
			add("promotion")
		}
		if b.GivesCheck(best.MoveUci) {
			add("check")
		}
	}

	return tags
}

// buildLabel composes the short human summary shown with a puzzle.
func buildLabel(c candidate, best *analysis.Line, op core.OpeningInfo) string {
	var motif string
	switch {
	case best.IsMate && best.MateIn > 0:
		motif = fmt.Sprintf("mate in %d", best.MateIn)
	case best.IsMate:
		motif = "mating attack"
	case c.severity >= core.SeverityBlunder:
		motif = "decisive tactic"
	default:
		motif = "missed tactic"
	}

	var action string
	if c.ptype == core.PuzzlePunishBlunder {
		action = "Punish the blunder"
	} else {
		action = "Find the better move"
	}

	label := fmt.Sprintf("%s: %s", action, motif)
	if op.Name != "" {
		label = fmt.Sprintf("%s (%s)", label, op.Name)
	}
	return label
}

// lineIsTactical reports whether the solution move, or a follow-up
// within lookahead plies of the principal line, is a capture, check or
// promotion.
func lineIsTactical(fen string, pv []string, lookaheadPlies int) bool {
	b, err := board.ParseFEN(fen)
	if err != nil {
		return false
	}

	limit := lookaheadPlies
	if limit > len(pv) {
		limit = len(pv)
	}

	for i := 0; i < limit; i++ {
		move := pv[i]
		if b.IsCapture(move) || board.IsPromotion(move) || b.GivesCheck(move) {
			return true
		}
		b, err = b.ApplyUCI(move)
		if err != nil {
			return false
		}
	}
	return false
}

func nonKingPieces(fen string) int {
	b, err := board.ParseFEN(fen)
	if err != nil {
		return 0
	}
	return b.NonKingPieceCount()
}
