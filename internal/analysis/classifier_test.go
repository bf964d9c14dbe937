package analysis

import (
	"testing"

	"github.com/AdamHerman69/backranq-sub002/internal/core"

	"github.com/stretchr/testify/require"
)

func TestLineScore(t *testing.T) {
	tests := []struct {
		name string
		line Line
		want int
	}{
		{"plain cp", Line{ScoreCp: 134}, 134},
		{"negative cp", Line{ScoreCp: -87}, -87},
		{"clamped high", Line{ScoreCp: 4200}, 1500},
		{"clamped low", Line{ScoreCp: -9999}, -1500},
		{"mate in one", Line{IsMate: true, MateIn: 1}, 1499},
		{"mate in three", Line{IsMate: true, MateIn: 3}, 1497},
		{"getting mated in two", Line{IsMate: true, MateIn: -2}, -1498},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.line.Score(core.DefaultMateClampCp))
		})
	}
}

// eval builds a single-line evaluation for the side to move.
func eval(mover core.Color, lines ...Line) PlyEvaluation {
	return PlyEvaluation{Mover: mover, Depth: 20, Lines: lines}
}

func TestClassifySignConvention(t *testing.T) {
	// White holds +150; the reply position is scored -150 from black's
	// perspective, which is the same +150 for white. Zero swing.
	evals := []PlyEvaluation{
		eval(core.ColorWhite, Line{MoveUci: "e2e4", ScoreCp: 150}),
		eval(core.ColorBlack, Line{MoveUci: "e7e5", ScoreCp: -150}),
	}

	out := Classify(evals, []string{"e2e4"}, core.AnalysisConfig{})
	require.Len(t, out, 1)

	mq := out[0]
	require.Equal(t, 0, mq.Ply)
	require.Equal(t, "e2e4", mq.MoveUci)
	require.Equal(t, core.ColorWhite, mq.Mover)
	require.Equal(t, 150, mq.EvalBeforeCp)
	require.Equal(t, 150, mq.EvalAfterCp)
	require.Equal(t, 0, mq.SwingCp)
	require.Equal(t, core.QualityBest, mq.Quality)
}

func TestClassifyBlackBlunder(t *testing.T) {
	// Black stood at -50 and the move hands white +300: swing of 350
	// against the mover, labeled a blunder for black just like for white.
	evals := []PlyEvaluation{
		eval(core.ColorBlack, Line{MoveUci: "g8f6", ScoreCp: -50}),
		eval(core.ColorWhite, Line{MoveUci: "d1h5", ScoreCp: 300}),
	}

	out := Classify(evals, []string{"g7g5"}, core.AnalysisConfig{})
	require.Len(t, out, 1)
	require.Equal(t, 350, out[0].SwingCp)
	require.Equal(t, core.QualityBlunder, out[0].Quality)
}

func TestClassifyQualityBands(t *testing.T) {
	tests := []struct {
		swing int
		want  core.Quality
	}{
		{-30, core.QualityBest},
		{0, core.QualityBest},
		{19, core.QualityBest},
		{20, core.QualityGood},
		{49, core.QualityGood},
		{50, core.QualityInaccuracy},
		{149, core.QualityInaccuracy},
		{150, core.QualityMistake},
		{299, core.QualityMistake},
		{300, core.QualityBlunder},
		{800, core.QualityBlunder},
	}

	for _, tt := range tests {
		// Before-eval equals the swing when the reply position scores
		// zero for the opponent.
		evals := []PlyEvaluation{
			eval(core.ColorWhite, Line{MoveUci: "e2e4", ScoreCp: tt.swing}),
			eval(core.ColorBlack, Line{MoveUci: "e7e5", ScoreCp: 0}),
		}
		out := Classify(evals, []string{"d2d4"}, core.AnalysisConfig{})
		require.Len(t, out, 1)
		require.Equal(t, tt.swing, out[0].SwingCp)
		require.Equal(t, tt.want, out[0].Quality, "swing %d", tt.swing)
	}
}

func TestClassifyMissingEvals(t *testing.T) {
	evals := []PlyEvaluation{
		eval(core.ColorWhite, Line{MoveUci: "e2e4", ScoreCp: 30}),
		{Mover: core.ColorBlack, Missing: true},
		eval(core.ColorWhite, Line{MoveUci: "g1f3", ScoreCp: 25}),
	}

	out := Classify(evals, []string{"e2e4", "e7e5"}, core.AnalysisConfig{})
	require.Len(t, out, 2)
	require.Equal(t, core.QualityUnclassified, out[0].Quality, "after-eval missing")
	require.Equal(t, core.QualityUnclassified, out[1].Quality, "before-eval missing")
	require.Equal(t, core.ColorBlack, out[1].Mover)
}

func TestClassifyTruncatedEvals(t *testing.T) {
	// No evaluation for the final position: the last move stays
	// unclassified instead of aborting the game.
	evals := []PlyEvaluation{
		eval(core.ColorWhite, Line{MoveUci: "e2e4", ScoreCp: 30}),
		eval(core.ColorBlack, Line{MoveUci: "e7e5", ScoreCp: -30}),
	}

	out := Classify(evals, []string{"e2e4", "e7e5"}, core.AnalysisConfig{})
	require.Len(t, out, 2)
	require.Equal(t, core.QualityBest, out[0].Quality)
	require.Equal(t, core.QualityUnclassified, out[1].Quality)
}

func TestClassifyMateFlagAndClamp(t *testing.T) {
	// White had mate in 2 and played into a drawn position
	evals := []PlyEvaluation{
		eval(core.ColorWhite, Line{MoveUci: "d1h5", IsMate: true, MateIn: 2}),
		eval(core.ColorBlack, Line{MoveUci: "e8f8", ScoreCp: 0}),
	}

	out := Classify(evals, []string{"a2a3"}, core.AnalysisConfig{})
	require.Len(t, out, 1)
	require.True(t, out[0].BestWasMate)
	require.Equal(t, 1498, out[0].EvalBeforeCp)
	require.Equal(t, 1498, out[0].SwingCp)
	require.Equal(t, core.QualityBlunder, out[0].Quality)
}

func TestBestAndSecond(t *testing.T) {
	var nilEval *PlyEvaluation
	require.Nil(t, nilEval.Best())
	require.Nil(t, nilEval.Second())

	missing := &PlyEvaluation{Missing: true, Lines: []Line{{MoveUci: "e2e4"}}}
	require.Nil(t, missing.Best())

	single := &PlyEvaluation{Lines: []Line{{MoveUci: "e2e4"}}}
	require.NotNil(t, single.Best())
	require.Nil(t, single.Second())

	double := &PlyEvaluation{Lines: []Line{{MoveUci: "e2e4"}, {MoveUci: "d2d4"}}}
	require.Equal(t, "e2e4", double.Best().MoveUci)
	require.Equal(t, "d2d4", double.Second().MoveUci)
}
