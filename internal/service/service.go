// Package service coordinates storage, the engine pool, and the
// extraction pipeline behind the HTTP handlers.
package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/AdamHerman69/backranq-sub002/internal/analysis"
	"github.com/AdamHerman69/backranq-sub002/internal/core"
	"github.com/AdamHerman69/backranq-sub002/internal/engine"
	"github.com/AdamHerman69/backranq-sub002/internal/extract"
	"github.com/AdamHerman69/backranq-sub002/internal/storage"
)

const (
	TempUserTTL        = 24 * time.Hour
	SessionTTL         = 7 * 24 * time.Hour
	CleanupJobInterval = 1 * time.Hour
	ConfirmWorkers     = 2
)

// Sentinel errors the HTTP layer maps to response codes.
var (
	ErrGameNotFound      = errors.New("game not found")
	ErrPuzzleNotFound    = errors.New("puzzle not found")
	ErrInvalidMove       = errors.New("invalid move")
	ErrInvalidPGN        = errors.New("invalid pgn")
	ErrInvalidFEN        = errors.New("invalid fen")
	ErrCouldNotAnalyze   = errors.New("could not analyze game")
	ErrEngineUnavailable = errors.New("engine unavailable")
)

// Service coordinates game import, analysis, and attempt grading.
type Service struct {
	store     *storage.Store
	jwtSecret []byte
	pool      *engine.Pool
	extractor *extract.Extractor
	defaults  core.AnalysisConfig

	// gameLocks serializes analysis per (user, game) so concurrent
	// requests never interleave their delete+insert replaces.
	gameLocks sync.Map // string -> *sync.Mutex
}

// New creates a service. pool may be nil when the server runs without an
// engine, which disables analysis but leaves imports and attempts working.
func New(store *storage.Store, jwtSecret []byte, pool *engine.Pool, defaults core.AnalysisConfig) *Service {
	s := &Service{
		store:     store,
		jwtSecret: jwtSecret,
		pool:      pool,
		defaults:  defaults,
	}
	if pool != nil {
		s.extractor = extract.New(poolEvaluator{pool}, ConfirmWorkers)
	} else {
		s.extractor = extract.New(nil, ConfirmWorkers)
	}
	return s
}

// poolEvaluator adapts the engine pool to the extraction confirmer.
type poolEvaluator struct {
	pool *engine.Pool
}

func (p poolEvaluator) Evaluate(ctx context.Context, fen string, multiPV, movetimeMs int) ([]analysis.Line, error) {
	eval, err := p.pool.Evaluate(ctx, fen, multiPV, movetimeMs)
	if err != nil {
		return nil, err
	}
	return evalLines(eval), nil
}

// evalLines converts ranked engine output into analysis lines.
func evalLines(eval *engine.Evaluation) []analysis.Line {
	if eval == nil {
		return nil
	}
	lines := make([]analysis.Line, 0, len(eval.Lines))
	for _, l := range eval.Lines {
		lines = append(lines, analysis.Line{
			MoveUci: l.MoveUci,
			ScoreCp: l.ScoreCp,
			IsMate:  l.IsMate,
			MateIn:  l.MateIn,
			PV:      append([]string(nil), l.PV...),
		})
	}
	return lines
}

// lockGame acquires the per-(user, game) mutex and returns its unlock.
func (s *Service) lockGame(userID, gameID string) func() {
	key := userID + "/" + gameID
	v, _ := s.gameLocks.LoadOrStore(key, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

// GetStorageHealth returns the storage component status
func (s *Service) GetStorageHealth() string {
	if s.store == nil {
		return "disabled"
	}
	if s.store.IsHealthy() {
		return "ok"
	}
	return "degraded"
}

// GetEngineHealth reports whether analysis is available
func (s *Service) GetEngineHealth() string {
	if s.pool == nil {
		return "disabled"
	}
	return "ok"
}

// Shutdown gracefully shuts down the service
func (s *Service) Shutdown(timeout time.Duration) error {
	var errs []error

	if s.pool != nil {
		if err := s.pool.Shutdown(timeout); err != nil {
			errs = append(errs, fmt.Errorf("engine pool: %w", err))
		}
	}

	if s.store != nil {
		if err := s.store.Close(); err != nil {
			errs = append(errs, fmt.Errorf("storage: %w", err))
		}
	}

	return errors.Join(errs...)
}

// RunCleanupJob runs periodic cleanup of expired users and sessions
func (s *Service) RunCleanupJob(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.cleanupExpired()
		}
	}
}

func (s *Service) cleanupExpired() {
	if s.store == nil {
		return
	}

	if deleted, err := s.store.DeleteExpiredTempUsers(); err != nil {
		log.Printf("cleanup: failed to delete expired users: %v", err)
	} else if deleted > 0 {
		log.Printf("cleanup: deleted %d expired temp users", deleted)
	}

	if deleted, err := s.store.DeleteExpiredSessions(); err != nil {
		log.Printf("cleanup: failed to delete expired sessions: %v", err)
	} else if deleted > 0 {
		log.Printf("cleanup: deleted %d expired sessions", deleted)
	}
}
