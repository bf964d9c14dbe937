package service

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/AdamHerman69/backranq-sub002/internal/board"
	"github.com/AdamHerman69/backranq-sub002/internal/core"
	"github.com/AdamHerman69/backranq-sub002/internal/metrics"
	"github.com/AdamHerman69/backranq-sub002/internal/storage"
)

// SubmitAttempt grades one puzzle attempt and appends it to the history.
// Grading is a pure comparison against the stored solution set, so the
// same move against the same puzzle always grades the same way.
func (s *Service) SubmitAttempt(userID, puzzleID string, req core.AttemptRequest) (*core.AttemptResponse, error) {
	record, err := s.ownedPuzzle(userID, puzzleID)
	if err != nil {
		return nil, err
	}

	move := NormalizeMove(req.UserMoveUci)
	if !board.IsValidUCI(move) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidMove, req.UserMoveUci)
	}

	wasCorrect := gradeMove(record, move)

	attempt := storage.AttemptRecord{
		PuzzleID:    puzzleID,
		UserID:      userID,
		MoveUci:     move,
		WasCorrect:  wasCorrect,
		TimeSpentMs: req.TimeSpentMs,
		AttemptedAt: time.Now().UTC(),
	}
	if _, err := s.store.InsertAttempt(attempt); err != nil {
		return nil, fmt.Errorf("failed to record attempt: %w", err)
	}

	result := "incorrect"
	if wasCorrect {
		result = "correct"
	}
	metrics.AttemptsGraded.WithLabelValues(result).Inc()

	stats, err := s.attemptStats(puzzleID, userID)
	if err != nil {
		return nil, err
	}

	return &core.AttemptResponse{
		PuzzleID:    puzzleID,
		UserMoveUci: move,
		WasCorrect:  wasCorrect,
		AttemptedAt: attempt.AttemptedAt,
		Stats:       *stats,
	}, nil
}

// GetAttemptStats recomputes the user's aggregate for one puzzle.
func (s *Service) GetAttemptStats(userID, puzzleID string) (*core.AttemptStats, error) {
	if _, err := s.ownedPuzzle(userID, puzzleID); err != nil {
		return nil, err
	}
	return s.attemptStats(puzzleID, userID)
}

func (s *Service) attemptStats(puzzleID, userID string) (*core.AttemptStats, error) {
	attempts, err := s.store.QueryAttempts(puzzleID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query attempts: %w", err)
	}
	stats := ComputeStats(attempts)
	return &stats, nil
}

// gradeMove checks the move against the best move and any alternates.
func gradeMove(record *storage.PuzzleRecord, move string) bool {
	if move == NormalizeMove(record.BestMoveUci) {
		return true
	}

	var alts []string
	if err := json.Unmarshal([]byte(record.AltMovesJSON), &alts); err != nil {
		return false
	}
	for _, alt := range alts {
		if move == NormalizeMove(alt) {
			return true
		}
	}
	return false
}

// NormalizeMove canonicalizes a UCI move for comparison.
func NormalizeMove(move string) string {
	return strings.ToLower(strings.TrimSpace(move))
}
