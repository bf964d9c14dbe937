// Package extract scans a classified game and selects puzzle-worthy
// positions under a configuration of thresholds.
package extract

import (
	"context"
	"fmt"
	"sort"

	"github.com/AdamHerman69/backranq-sub002/internal/analysis"
	"github.com/AdamHerman69/backranq-sub002/internal/core"
)

// Game is the classified input to one extraction run. FENs holds one
// entry per position (FENs[i] is the position before Moves[i], plus the
// final position), Evals and Quality are aligned the same way.
type Game struct {
	GameID  string
	FENs    []string
	Moves   []string
	Evals   []analysis.PlyEvaluation
	Quality []analysis.MoveQuality
	Opening core.OpeningInfo
}

// Puzzle is one extracted training position. AltMoves lists lower-ranked
// engine moves scoring within the good-move margin of the best, accepted
// as alternate solutions when grading.
type Puzzle struct {
	SourcePly   int
	FEN         string
	Type        core.PuzzleType
	Severity    *int
	ScoreCp     *int
	BestMoveUci string
	BestLine    []string
	AltMoves    []string
	Tags        []string
	Label       string
	Opening     core.OpeningInfo
}

// Evaluator supplies the optional deeper confirmation pass.
type Evaluator interface {
	Evaluate(ctx context.Context, fen string, multiPV, movetimeMs int) ([]analysis.Line, error)
}

// Extractor runs the extraction algorithm. A nil evaluator disables the
// confirmation pass regardless of config.
type Extractor struct {
	confirmer      Evaluator
	confirmWorkers int
}

func New(confirmer Evaluator, confirmWorkers int) *Extractor {
	if confirmWorkers < 1 {
		confirmWorkers = 2
	}
	return &Extractor{confirmer: confirmer, confirmWorkers: confirmWorkers}
}

// candidate is one surviving ply/framing pair before confirmation.
type candidate struct {
	ply      int
	ptype    core.PuzzleType
	fen      string
	severity int
	swingCp  int
	eval     analysis.PlyEvaluation // evaluation of the puzzle's starting position
}

// Extract scans plies in increasing order and returns the deduplicated,
// severity-ordered puzzle set for the game. The scan itself is a pure
// single pass; only the confirmation pass touches the engine.
func (x *Extractor) Extract(ctx context.Context, g Game, cfg core.AnalysisConfig) ([]Puzzle, error) {
	cfg = cfg.Normalized()

	if len(g.Quality) != len(g.Moves) || len(g.Evals) != len(g.Moves)+1 || len(g.FENs) != len(g.Moves)+1 {
		return nil, fmt.Errorf("misaligned game: %d moves, %d evals, %d fens", len(g.Moves), len(g.Evals), len(g.FENs))
	}

	var candidates []candidate
	seen := make(map[string]bool) // dedup by (sourcePly, type)

	for ply := cfg.OpeningSkipPlies; ply < len(g.Moves); ply++ {
		mq := g.Quality[ply]
		if mq.Quality == core.QualityUnclassified {
			continue
		}

		severity := severityForSwing(mq.SwingCp, cfg)
		if severity == 0 {
			continue
		}

		if cfg.PuzzleMode == core.ModeAvoidBlunder || cfg.PuzzleMode == core.ModeBoth {
			c := candidate{
				ply:      ply,
				ptype:    core.PuzzleAvoidBlunder,
				fen:      g.FENs[ply],
				severity: severity,
				swingCp:  mq.SwingCp,
				eval:     g.Evals[ply],
			}
			if x.passes(&c, cfg) && !seen[dedupKey(c.ply, c.ptype)] {
				seen[dedupKey(c.ply, c.ptype)] = true
				candidates = append(candidates, c)
			}
		}

		if cfg.PuzzleMode == core.ModePunishBlunder || cfg.PuzzleMode == core.ModeBoth {
			c := candidate{
				ply:      ply,
				ptype:    core.PuzzlePunishBlunder,
				fen:      g.FENs[ply+1],
				severity: severity,
				swingCp:  mq.SwingCp,
				eval:     g.Evals[ply+1],
			}
			if x.passes(&c, cfg) && !seen[dedupKey(c.ply, c.ptype)] {
				seen[dedupKey(c.ply, c.ptype)] = true
				candidates = append(candidates, c)
			}
		}
	}

	if cfg.ConfirmMovetimeMs > 0 && x.confirmer != nil {
		var err error
		candidates, err = x.confirm(ctx, g, candidates, cfg)
		if err != nil {
			return nil, err
		}
	}

	// Higher severity first, then earlier ply, so a cap keeps the most
	// instructive puzzles.
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].severity != candidates[j].severity {
			return candidates[i].severity > candidates[j].severity
		}
		return candidates[i].ply < candidates[j].ply
	})

	if cfg.MaxPuzzlesPerGame > 0 && len(candidates) > cfg.MaxPuzzlesPerGame {
		candidates = candidates[:cfg.MaxPuzzlesPerGame]
	}

	puzzles := make([]Puzzle, 0, len(candidates))
	for _, c := range candidates {
		puzzles = append(puzzles, x.build(g, c, cfg))
	}
	return puzzles, nil
}

// severityForSwing buckets a swing magnitude. When both thresholds are
// met the higher-severity bucket wins.
func severityForSwing(swingCp int, cfg core.AnalysisConfig) int {
	switch {
	case swingCp >= cfg.BlunderSwingCp:
		return core.SeverityBlunder
	case swingCp >= cfg.MissedTacticSwingCp:
		return core.SeverityMissedTactic
	default:
		return 0
	}
}

// passes applies filters 2 and 4-7 to a candidate; the swing filter ran
// before the candidate was built. It also upgrades severity for forced
// mates found in the solution line.
func (x *Extractor) passes(c *candidate, cfg core.AnalysisConfig) bool {
	best := c.eval.Best()
	if best == nil {
		return false
	}

	// Eval-band filter: starting eval from the solver's perspective
	startEval := best.Score(cfg.MateClampCp)
	if cfg.EvalBandMinCp != nil && startEval < *cfg.EvalBandMinCp {
		return false
	}
	if cfg.EvalBandMaxCp != nil && startEval > *cfg.EvalBandMaxCp {
		return false
	}

	// Uniqueness filter: top move must clearly beat the runner-up. A
	// missing second line means the position had a single candidate.
	if cfg.UniquenessMarginCp > 0 {
		if second := c.eval.Second(); second != nil {
			margin := best.Score(cfg.MateClampCp) - second.Score(cfg.MateClampCp)
			if margin < cfg.UniquenessMarginCp {
				return false
			}
		}
	}

	// Tactical filter
	if cfg.RequireTactical && !lineIsTactical(c.fen, best.PV, cfg.TacticalLookaheadPlies) {
		return false
	}

	// Triviality filter
	if cfg.SkipTrivialEndgames && nonKingPieces(c.fen) < cfg.MinNonKingPieces {
		return false
	}

	// Line-length filter
	if len(best.PV) < cfg.MinPvMoves {
		return false
	}

	if best.IsMate {
		c.severity = core.SeverityMate
	}

	return true
}

func dedupKey(ply int, t core.PuzzleType) string {
	return fmt.Sprintf("%d:%s", ply, t)
}

// build turns a surviving candidate into its puzzle.
func (x *Extractor) build(g Game, c candidate, cfg core.AnalysisConfig) Puzzle {
	best := c.eval.Best()

	severity := c.severity
	score := best.Score(cfg.MateClampCp)

	p := Puzzle{
		SourcePly:   c.ply,
		FEN:         c.fen,
		Type:        c.ptype,
		Severity:    &severity,
		ScoreCp:     &score,
		BestMoveUci: best.MoveUci,
		BestLine:    append([]string(nil), best.PV...),
		Opening:     g.Opening,
	}
	for _, l := range c.eval.Lines[1:] {
		if best.Score(cfg.MateClampCp)-l.Score(cfg.MateClampCp) < cfg.GoodSwingCp {
			p.AltMoves = append(p.AltMoves, l.MoveUci)
		}
	}
	p.Tags = buildTags(c, best)
	p.Label = buildLabel(c, best, g.Opening)
	return p
}
