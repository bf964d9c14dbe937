package extract

import (
	"context"
	"log"
	"sort"
	"sync"

	"github.com/AdamHerman69/backranq-sub002/internal/analysis"
	"github.com/AdamHerman69/backranq-sub002/internal/core"
)

// confirm re-evaluates surviving candidates at the deeper confirmation
// budget and re-validates the filters against the deeper result.
// Queries are independent read-only lookups against immutable positions,
// so they run concurrently on a bounded worker set. A candidate that no
// longer qualifies is dropped silently; a failed query drops only that
// candidate.
func (x *Extractor) confirm(ctx context.Context, g Game, candidates []candidate, cfg core.AnalysisConfig) ([]candidate, error) {
	if len(candidates) == 0 {
		return candidates, nil
	}

	type indexed struct {
		idx int
		c   candidate
		ok  bool
	}

	results := make([]indexed, len(candidates))
	sem := make(chan struct{}, x.confirmWorkers)
	var wg sync.WaitGroup

	for i, c := range candidates {
		wg.Add(1)
		go func(i int, c candidate) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			if ctx.Err() != nil {
				return
			}

			lines, err := x.confirmer.Evaluate(ctx, c.fen, cfg.MultiPV, cfg.ConfirmMovetimeMs)
			if err != nil {
				log.Printf("confirmation query failed for ply %d (%s): %v", c.ply, c.ptype, err)
				return
			}

			confirmed, ok := x.revalidate(g, c, lines, cfg)
			results[i] = indexed{idx: i, c: confirmed, ok: ok}
		}(i, c)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	kept := make([]candidate, 0, len(candidates))
	for _, r := range results {
		if r.ok {
			kept = append(kept, r.c)
		}
	}

	// Preserve scan order for the later severity sort's ply tie-break
	sort.SliceStable(kept, func(i, j int) bool { return kept[i].ply < kept[j].ply })
	return kept, nil
}

// revalidate recomputes the swing with the deeper evaluation substituted
// for the puzzle position, re-buckets severity, and re-runs the filters.
func (x *Extractor) revalidate(g Game, c candidate, lines []analysis.Line, cfg core.AnalysisConfig) (candidate, bool) {
	if len(lines) == 0 {
		return c, false
	}

	deeper := analysis.PlyEvaluation{
		Ply:   c.eval.Ply,
		FEN:   c.fen,
		Mover: c.eval.Mover,
		Lines: lines,
	}
	newBest := deeper.Best()

	var swing int
	switch c.ptype {
	case core.PuzzleAvoidBlunder:
		// Puzzle position is the pre-blunder position: the deeper eval
		// replaces the "before" term, the post-blunder eval stands.
		after := g.Evals[c.ply+1].Best()
		if after == nil {
			return c, false
		}
		swing = newBest.Score(cfg.MateClampCp) - (-after.Score(cfg.MateClampCp))
	case core.PuzzlePunishBlunder:
		// Puzzle position is the post-blunder position: the deeper eval
		// replaces the "after" term from the blunderer's perspective.
		before := g.Evals[c.ply].Best()
		if before == nil {
			return c, false
		}
		swing = before.Score(cfg.MateClampCp) - (-newBest.Score(cfg.MateClampCp))
	}

	severity := severityForSwing(swing, cfg)
	if severity == 0 {
		return c, false
	}

	c.eval = deeper
	c.swingCp = swing
	c.severity = severity

	if !x.passes(&c, cfg) {
		return c, false
	}
	return c, true
}
