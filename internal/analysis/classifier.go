// Package analysis converts a game's per-ply engine evaluations into
// per-move quality labels and signed centipawn swings.
package analysis

import (
	"github.com/AdamHerman69/backranq-sub002/internal/core"
)

// Line is one ranked candidate from a multi-PV evaluation. Scores are
// from the perspective of the side to move in the evaluated position.
type Line struct {
	MoveUci string   `json:"moveUci"`
	ScoreCp int      `json:"scoreCp"`
	IsMate  bool     `json:"isMate"`
	MateIn  int      `json:"mateIn,omitempty"`
	PV      []string `json:"pv"`
}

// PlyEvaluation is the ranked evaluation of the position before the
// move at Ply was played. Immutable once produced for a given config.
type PlyEvaluation struct {
	Ply     int        `json:"ply"` // 0-based half-move index
	FEN     string     `json:"fen"`
	Mover   core.Color `json:"mover"` // side to move in FEN
	Depth   int        `json:"depth"`
	Lines   []Line     `json:"lines"`   // ordered by rank, best first
	Missing bool       `json:"missing"` // engine error or timeout upstream
}

// Best returns the top-ranked line, nil when the evaluation is missing
// or empty.
func (e *PlyEvaluation) Best() *Line {
	if e == nil || e.Missing || len(e.Lines) == 0 {
		return nil
	}
	return &e.Lines[0]
}

// Second returns the second-ranked line if the evaluation carried one.
func (e *PlyEvaluation) Second() *Line {
	if e == nil || e.Missing || len(e.Lines) < 2 {
		return nil
	}
	return &e.Lines[1]
}

// MoveQuality is the classification of one played move.
type MoveQuality struct {
	Ply          int          `json:"ply"`
	MoveUci      string       `json:"moveUci"`
	Mover        core.Color   `json:"mover"`
	SwingCp      int          `json:"swingCp"` // positive = position got worse for the mover
	Quality      core.Quality `json:"quality"`
	EvalBeforeCp int          `json:"evalBeforeCp"` // mover perspective, mate-clamped
	EvalAfterCp  int          `json:"evalAfterCp"`  // mover perspective, mate-clamped
	BestWasMate  bool         `json:"bestWasMate"`  // the engine's best line at this ply forced mate
}

// Score converts a line's evaluation to clamped centipawns. Mate scores
// map near the clamp ceiling with shorter mates scoring higher, so
// mate-vs-mate differences stay ordered without dominating swings.
func (l *Line) Score(mateClampCp int) int {
	if !l.IsMate {
		cp := l.ScoreCp
		if cp > mateClampCp {
			return mateClampCp
		}
		if cp < -mateClampCp {
			return -mateClampCp
		}
		return cp
	}
	if l.MateIn > 0 {
		return mateClampCp - l.MateIn
	}
	return -mateClampCp - l.MateIn
}

// Classify labels every played move of a game. evals must hold one
// entry per position, evals[i] being the position before moves[i], plus
// a final entry for the position after the last move. Plies whose
// before or after evaluation is missing come back unclassified rather
// than aborting the game.
func Classify(evals []PlyEvaluation, moves []string, cfg core.AnalysisConfig) []MoveQuality {
	cfg = cfg.Normalized()

	out := make([]MoveQuality, 0, len(moves))
	for i, move := range moves {
		mq := MoveQuality{
			Ply:     i,
			MoveUci: move,
			Quality: core.QualityUnclassified,
		}
		if i < len(evals) {
			mq.Mover = evals[i].Mover
		}

		if i+1 >= len(evals) {
			out = append(out, mq)
			continue
		}

		before := evals[i].Best()
		after := evals[i+1].Best()
		if before == nil || after == nil {
			out = append(out, mq)
			continue
		}

		evalBefore := before.Score(cfg.MateClampCp)
		// The next position is evaluated from the opponent's perspective;
		// flip the sign back to the mover's. This convention holds for
		// both colors across the whole pipeline.
		evalAfter := -after.Score(cfg.MateClampCp)

		mq.EvalBeforeCp = evalBefore
		mq.EvalAfterCp = evalAfter
		mq.SwingCp = evalBefore - evalAfter
		mq.BestWasMate = before.IsMate
		mq.Quality = labelForSwing(mq.SwingCp, cfg)

		out = append(out, mq)
	}

	return out
}

// labelForSwing maps a swing magnitude onto the quality bands:
// best < good threshold <= good < inaccuracy threshold <= inaccuracy <
// missed-tactic threshold <= mistake < blunder threshold <= blunder.
func labelForSwing(swingCp int, cfg core.AnalysisConfig) core.Quality {
	switch {
	case swingCp < cfg.GoodSwingCp:
		return core.QualityBest
	case swingCp < cfg.InaccuracySwingCp:
		return core.QualityGood
	case swingCp < cfg.MissedTacticSwingCp:
		return core.QualityInaccuracy
	case swingCp < cfg.BlunderSwingCp:
		return core.QualityMistake
	default:
		return core.QualityBlunder
	}
}
