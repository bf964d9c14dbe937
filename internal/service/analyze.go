package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/AdamHerman69/backranq-sub002/internal/analysis"
	"github.com/AdamHerman69/backranq-sub002/internal/core"
	"github.com/AdamHerman69/backranq-sub002/internal/extract"
	"github.com/AdamHerman69/backranq-sub002/internal/metrics"
	"github.com/AdamHerman69/backranq-sub002/internal/storage"
)

// evalConcurrency bounds in-flight evaluations per analysis run so a
// long game cannot flood the pool queue.
const evalConcurrency = 8

// AnalyzeGame runs the full pipeline for one stored game: evaluate every
// position, classify the played moves, extract puzzles, and replace the
// game's puzzle set. Runs are serialized per (user, game); a failed run
// leaves the previous puzzle set untouched.
func (s *Service) AnalyzeGame(ctx context.Context, userID, gameID string, override core.AnalysisConfig) (*core.AnalyzeResponse, error) {
	if s.pool == nil {
		return nil, ErrEngineUnavailable
	}

	record, err := s.ownedGame(userID, gameID)
	if err != nil {
		return nil, err
	}

	var moves, fens []string
	if err := json.Unmarshal([]byte(record.MovesJSON), &moves); err != nil {
		return nil, fmt.Errorf("corrupt game record %s: %w", gameID, err)
	}
	if err := json.Unmarshal([]byte(record.FENsJSON), &fens); err != nil {
		return nil, fmt.Errorf("corrupt game record %s: %w", gameID, err)
	}
	if len(fens) != len(moves)+1 {
		return nil, fmt.Errorf("corrupt game record %s: %d moves, %d positions", gameID, len(moves), len(fens))
	}

	cfg := s.defaults.Merge(override).Normalized()

	unlock := s.lockGame(userID, gameID)
	defer unlock()

	start := time.Now()

	evals, failures := s.evaluatePositions(ctx, fens, cfg)
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	if failures == len(fens) {
		metrics.AnalysisRuns.WithLabelValues("failure").Inc()
		return nil, ErrCouldNotAnalyze
	}
	if failures > 0 {
		log.Printf("Analysis of game %s: %d of %d positions missing, affected plies left unclassified", gameID, failures, len(fens))
	}

	quality := analysis.Classify(evals, moves, cfg)

	g := extract.Game{
		GameID:  gameID,
		FENs:    fens,
		Moves:   moves,
		Evals:   evals,
		Quality: quality,
		Opening: core.OpeningInfo{
			ECO:       record.OpeningECO,
			Name:      record.OpeningName,
			Variation: record.OpeningVariation,
			Source:    core.OpeningSource(record.OpeningSource),
		},
	}

	puzzles, err := s.extractor.Extract(ctx, g, cfg)
	if err != nil {
		metrics.AnalysisRuns.WithLabelValues("failure").Inc()
		return nil, fmt.Errorf("%w: %v", ErrCouldNotAnalyze, err)
	}

	records := puzzleRecords(userID, gameID, puzzles)
	if err := s.store.ReplacePuzzles(userID, gameID, records); err != nil {
		metrics.AnalysisRuns.WithLabelValues("failure").Inc()
		return nil, fmt.Errorf("failed to store puzzles: %w", err)
	}

	elapsed := time.Since(start)
	metrics.AnalysisRuns.WithLabelValues("success").Inc()
	metrics.PuzzlesExtracted.Add(float64(len(records)))
	metrics.AnalysisDuration.Observe(elapsed.Seconds())

	cfgJSON, _ := json.Marshal(cfg)
	s.store.RecordAnalysisRun(storage.AnalysisRunRecord{
		GameID:      gameID,
		UserID:      userID,
		ConfigJSON:  string(cfgJSON),
		PuzzleCount: len(records),
		DurationMs:  int(elapsed.Milliseconds()),
		RunAt:       time.Now().UTC(),
	})

	resp := &core.AnalyzeResponse{
		GameID:  gameID,
		Puzzles: make([]core.PuzzleResponse, 0, len(records)),
	}
	for i := range records {
		if pr, ok := puzzleResponse(&records[i]); ok {
			resp.Puzzles = append(resp.Puzzles, pr)
		}
	}
	return resp, nil
}

// evaluatePositions runs one evaluation per position through the pool.
// Individual failures are recorded as missing evaluations instead of
// aborting the run; the caller decides when too many are missing.
func (s *Service) evaluatePositions(ctx context.Context, fens []string, cfg core.AnalysisConfig) ([]analysis.PlyEvaluation, int) {
	evals := make([]analysis.PlyEvaluation, len(fens))

	sem := make(chan struct{}, evalConcurrency)
	var wg sync.WaitGroup
	var failed atomic.Int32

	for i, fen := range fens {
		wg.Add(1)
		go func(i int, fen string) {
			defer wg.Done()

			sem <- struct{}{}
			defer func() { <-sem }()

			pe := analysis.PlyEvaluation{
				Ply:   i,
				FEN:   fen,
				Mover: moverFromFEN(fen),
			}

			if ctx.Err() != nil {
				pe.Missing = true
				failed.Add(1)
				evals[i] = pe
				return
			}

			start := time.Now()
			eval, err := s.pool.Evaluate(ctx, fen, cfg.MultiPV, cfg.MovetimeMs)
			if err != nil {
				log.Printf("Evaluation failed at ply %d: %v", i, err)
				pe.Missing = true
				failed.Add(1)
			} else {
				metrics.EvalDuration.Observe(time.Since(start).Seconds())
				pe.Depth = eval.Depth
				pe.Lines = evalLines(eval)
			}

			evals[i] = pe
		}(i, fen)
	}

	wg.Wait()
	return evals, int(failed.Load())
}

// moverFromFEN reads the side-to-move field.
func moverFromFEN(fen string) core.Color {
	fields := strings.Fields(fen)
	if len(fields) > 1 && fields[1] == "b" {
		return core.ColorBlack
	}
	return core.ColorWhite
}
