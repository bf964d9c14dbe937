package extract

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/AdamHerman69/backranq-sub002/internal/analysis"
	"github.com/AdamHerman69/backranq-sub002/internal/core"

	"github.com/stretchr/testify/require"
)

// fakeConfirmer serves canned deeper evaluations keyed by FEN.
type fakeConfirmer struct {
	mu    sync.Mutex
	lines map[string][]analysis.Line
	errs  map[string]error
	calls []string
}

func (f *fakeConfirmer) Evaluate(ctx context.Context, fen string, multiPV, movetimeMs int) ([]analysis.Line, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, fen)
	if err := f.errs[fen]; err != nil {
		return nil, err
	}
	return f.lines[fen], nil
}

func confirmConfig() core.AnalysisConfig {
	cfg := testConfig()
	cfg.ConfirmMovetimeMs = 2000
	return cfg
}

func TestConfirmDropsWeakenedCandidate(t *testing.T) {
	g := testGame()
	avoidFEN := g.FENs[1]
	punishFEN := g.FENs[2]

	// The deeper search confirms the avoid framing but finds the punishing
	// reply only wins 130cp, below the missed-tactic threshold.
	fake := &fakeConfirmer{lines: map[string][]analysis.Line{
		avoidFEN: {
			{MoveUci: "g8f6", ScoreCp: -20, PV: []string{"g8f6", "b1c3"}},
		},
		punishFEN: {
			{MoveUci: "d1h5", ScoreCp: 150, PV: []string{"d1h5", "g8f6"}},
		},
	}}

	x := New(fake, 2)
	puzzles, err := x.Extract(context.Background(), g, confirmConfig())
	require.NoError(t, err)
	require.Len(t, puzzles, 1)
	require.Equal(t, core.PuzzleAvoidBlunder, puzzles[0].Type)
	require.ElementsMatch(t, []string{avoidFEN, punishFEN}, fake.calls)
}

func TestConfirmSubstitutesDeeperLine(t *testing.T) {
	g := testGame()
	avoidFEN := g.FENs[1]
	punishFEN := g.FENs[2]

	// Deeper search prefers a different punishing move; the surviving
	// puzzle carries the deeper line and score.
	fake := &fakeConfirmer{lines: map[string][]analysis.Line{
		avoidFEN: {
			{MoveUci: "g8f6", ScoreCp: -25, PV: []string{"g8f6", "b1c3"}},
		},
		punishFEN: {
			{MoveUci: "d1g4", ScoreCp: 320, PV: []string{"d1g4", "d7d5", "g4g5"}},
			{MoveUci: "d1h5", ScoreCp: 280, PV: []string{"d1h5", "g8f6"}},
		},
	}}

	x := New(fake, 2)
	puzzles, err := x.Extract(context.Background(), g, confirmConfig())
	require.NoError(t, err)
	require.Len(t, puzzles, 2)

	avoid := puzzles[0]
	require.Equal(t, core.PuzzleAvoidBlunder, avoid.Type)
	require.Equal(t, -25, *avoid.ScoreCp)

	punish := puzzles[1]
	require.Equal(t, core.PuzzlePunishBlunder, punish.Type)
	require.Equal(t, "d1g4", punish.BestMoveUci)
	require.Equal(t, []string{"d1g4", "d7d5", "g4g5"}, punish.BestLine)
	require.Equal(t, 320, *punish.ScoreCp)
	require.Equal(t, core.SeverityBlunder, *punish.Severity)
}

func TestConfirmFailedQueryDropsOnlyThatCandidate(t *testing.T) {
	g := testGame()
	avoidFEN := g.FENs[1]
	punishFEN := g.FENs[2]

	fake := &fakeConfirmer{
		lines: map[string][]analysis.Line{
			punishFEN: {
				{MoveUci: "d1h5", ScoreCp: 330, PV: []string{"d1h5", "g8f6"}},
			},
		},
		errs: map[string]error{
			avoidFEN: errors.New("engine process gone"),
		},
	}

	x := New(fake, 2)
	puzzles, err := x.Extract(context.Background(), g, confirmConfig())
	require.NoError(t, err)
	require.Len(t, puzzles, 1)
	require.Equal(t, core.PuzzlePunishBlunder, puzzles[0].Type)
	require.Equal(t, "d1h5", puzzles[0].BestMoveUci)
}

func TestConfirmSkippedWithoutBudget(t *testing.T) {
	fake := &fakeConfirmer{}

	x := New(fake, 2)
	puzzles, err := x.Extract(context.Background(), testGame(), testConfig())
	require.NoError(t, err)
	require.Len(t, puzzles, 2)
	require.Empty(t, fake.calls)
}
