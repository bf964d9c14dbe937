package service

import (
	"testing"
	"time"

	"github.com/AdamHerman69/backranq-sub002/internal/storage"

	"github.com/stretchr/testify/require"
)

// attempts builds a most-recent-first history from newest to oldest
// correctness flags, mirroring QueryAttempts ordering.
func attempts(correct ...bool) []storage.AttemptRecord {
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	out := make([]storage.AttemptRecord, len(correct))
	for i, c := range correct {
		out[i] = storage.AttemptRecord{
			AttemptID:   int64(len(correct) - i),
			PuzzleID:    "puzzle-1",
			UserID:      "user-1",
			MoveUci:     "e2e4",
			WasCorrect:  c,
			AttemptedAt: base.Add(-time.Duration(i) * time.Minute),
		}
	}
	return out
}

func TestComputeStatsEmpty(t *testing.T) {
	stats := ComputeStats(nil)
	require.Equal(t, 0, stats.TotalAttempts)
	require.Equal(t, 0, stats.CorrectAttempts)
	require.Zero(t, stats.SuccessRate)
	require.False(t, stats.FirstAttemptCorrect)
	require.False(t, stats.LastAttemptCorrect)
	require.Equal(t, 0, stats.CurrentStreak)
	require.Nil(t, stats.LastAttemptAt)
}

func TestComputeStats(t *testing.T) {
	tests := []struct {
		name         string
		history      []storage.AttemptRecord // newest first
		correct      int
		rate         float64
		firstCorrect bool
		lastCorrect  bool
		streak       int
	}{
		{
			name:         "single correct",
			history:      attempts(true),
			correct:      1,
			rate:         1.0,
			firstCorrect: true,
			lastCorrect:  true,
			streak:       1,
		},
		{
			name:         "single incorrect",
			history:      attempts(false),
			correct:      0,
			rate:         0.0,
			firstCorrect: false,
			lastCorrect:  false,
			streak:       0,
		},
		{
			name:         "failed first then solved",
			history:      attempts(true, true, false),
			correct:      2,
			rate:         2.0 / 3.0,
			firstCorrect: false,
			lastCorrect:  true,
			streak:       2,
		},
		{
			name:         "streak broken by latest miss",
			history:      attempts(false, true, true, true),
			correct:      3,
			rate:         0.75,
			firstCorrect: true,
			lastCorrect:  false,
			streak:       0,
		},
		{
			name:         "streak stops at first miss",
			history:      attempts(true, true, false, true),
			correct:      3,
			rate:         0.75,
			firstCorrect: true,
			lastCorrect:  true,
			streak:       2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stats := ComputeStats(tt.history)
			require.Equal(t, len(tt.history), stats.TotalAttempts)
			require.Equal(t, tt.correct, stats.CorrectAttempts)
			require.InDelta(t, tt.rate, stats.SuccessRate, 1e-9)
			require.Equal(t, tt.firstCorrect, stats.FirstAttemptCorrect)
			require.Equal(t, tt.lastCorrect, stats.LastAttemptCorrect)
			require.Equal(t, tt.streak, stats.CurrentStreak)
			require.NotNil(t, stats.LastAttemptAt)
			require.Equal(t, tt.history[0].AttemptedAt, *stats.LastAttemptAt)
		})
	}
}
