package engine

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

// fakeEngine writes a minimal UCI engine as a shell script: answers the
// handshake and emits a fixed two-iteration search for any go command.
func fakeEngine(t *testing.T) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake engine is a shell script")
	}

	script := `#!/bin/sh
while IFS= read -r line; do
	case "$line" in
	uci) echo "id name fake"; echo "uciok" ;;
	isready) echo "readyok" ;;
	d) echo "Fen: rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1" ;;
	go*)
		echo "info depth 8 multipv 1 score cp 25 pv e2e4 e7e5"
		echo "info depth 10 multipv 1 score cp 31 pv e2e4 e7e5 g1f3"
		echo "bestmove e2e4"
		;;
	quit) exit 0 ;;
	esac
done
`
	path := filepath.Join(t.TempDir(), "fake-engine.sh")
	require.NoError(t, os.WriteFile(path, []byte(script), 0o755))
	return path
}

func TestEvaluateReusesProcess(t *testing.T) {
	u, err := New(fakeEngine(t))
	require.NoError(t, err)
	defer u.Close()

	fen := "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

	// Every search on the same process must see its own output; earlier
	// searches may not steal or hold the stdout stream.
	for i := 0; i < 3; i++ {
		eval, err := u.Evaluate(context.Background(), fen, 1, 50)
		require.NoError(t, err, "evaluation %d", i)
		require.Equal(t, 10, eval.Depth)
		require.Equal(t, 31, eval.BestLine().ScoreCp)
		require.Equal(t, "e2e4", eval.BestLine().MoveUci)
	}

	got, err := u.GetFEN()
	require.NoError(t, err)
	require.Equal(t, fen, got)
}

func TestParseInfoLine(t *testing.T) {
	tests := []struct {
		name string
		line string
		ok   bool
		want EvalLine
	}{
		{
			name: "plain cp line",
			line: "info depth 20 seldepth 28 multipv 1 score cp 34 nodes 1523000 nps 850000 time 1790 pv e2e4 e7e5 g1f3",
			ok:   true,
			want: EvalLine{Rank: 1, Depth: 20, ScoreCp: 34, MoveUci: "e2e4", PV: []string{"e2e4", "e7e5", "g1f3"}},
		},
		{
			name: "second multipv line",
			line: "info depth 18 multipv 2 score cp -12 pv d2d4 d7d5",
			ok:   true,
			want: EvalLine{Rank: 2, Depth: 18, ScoreCp: -12, MoveUci: "d2d4", PV: []string{"d2d4", "d7d5"}},
		},
		{
			name: "mate for the mover",
			line: "info depth 12 multipv 1 score mate 3 pv d1h5 g8f6 h5f7",
			ok:   true,
			want: EvalLine{Rank: 1, Depth: 12, IsMate: true, MateIn: 3, MoveUci: "d1h5", PV: []string{"d1h5", "g8f6", "h5f7"}},
		},
		{
			name: "getting mated",
			line: "info depth 15 multipv 1 score mate -2 pv e8f8 h5f7",
			ok:   true,
			want: EvalLine{Rank: 1, Depth: 15, IsMate: true, MateIn: -2, MoveUci: "e8f8", PV: []string{"e8f8", "h5f7"}},
		},
		{
			name: "missing multipv defaults to rank one",
			line: "info depth 10 score cp 55 pv g1f3 b8c6",
			ok:   true,
			want: EvalLine{Rank: 1, Depth: 10, ScoreCp: 55, MoveUci: "g1f3", PV: []string{"g1f3", "b8c6"}},
		},
		{
			name: "currmove report carries no pv",
			line: "info depth 14 currmove e2e4 currmovenumber 1",
			ok:   false,
		},
		{
			name: "nps only line",
			line: "info nodes 120000 nps 900000 hashfull 12",
			ok:   false,
		},
		{
			name: "pv without score",
			line: "info depth 5 pv e2e4",
			ok:   false,
		},
		{
			name: "bestmove is not an info line",
			line: "bestmove e2e4 ponder e7e5",
			ok:   false,
		},
		{
			name: "empty line",
			line: "",
			ok:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := parseInfoLine(tt.line)
			require.Equal(t, tt.ok, ok)
			if tt.ok {
				require.Equal(t, tt.want, got)
			}
		})
	}
}

func TestEvaluationBestLine(t *testing.T) {
	var nilEval *Evaluation
	require.Nil(t, nilEval.BestLine())

	empty := &Evaluation{}
	require.Nil(t, empty.BestLine())

	e := &Evaluation{Lines: []EvalLine{
		{Rank: 1, MoveUci: "e2e4"},
		{Rank: 2, MoveUci: "d2d4"},
	}}
	require.Equal(t, "e2e4", e.BestLine().MoveUci)
}
