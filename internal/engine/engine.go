package engine

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"sync"
	"time"
)

const DefaultEnginePath = "stockfish"

type UCI struct {
	cmd   *exec.Cmd
	stdin io.WriteCloser
	lines chan string // engine stdout, one line per receive
	mu    sync.Mutex
}

// EvalLine is one ranked candidate line from a multi-PV search. Scores
// are centipawns from the side-to-move perspective; mate scores carry
// the distance in MateIn with sign preserved.
type EvalLine struct {
	Rank    int
	Depth   int
	MoveUci string
	ScoreCp int
	IsMate  bool
	MateIn  int
	PV      []string
}

// Evaluation is one immutable snapshot of a deepening search.
type Evaluation struct {
	Depth  int
	Lines  []EvalLine // ordered by multipv rank
	TimeMs int
}

// BestLine returns the top-ranked line, nil if the search produced none.
func (e *Evaluation) BestLine() *EvalLine {
	if e == nil || len(e.Lines) == 0 {
		return nil
	}
	return &e.Lines[0]
}

func New(path string) (*UCI, error) {
	if path == "" {
		path = DefaultEnginePath
	}
	cmd := exec.Command(path)

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, err
	}

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, err
	}

	if err = cmd.Start(); err != nil {
		return nil, fmt.Errorf("failed to start engine: %v", err)
	}

	uci := &UCI{
		cmd:   cmd,
		stdin: stdin,
		lines: make(chan string, 64),
	}

	// One reader owns stdout for the life of the process. Requests on a
	// process are serialized, so the in-flight caller drains the channel;
	// it closes when the engine exits.
	go func() {
		scanner := bufio.NewScanner(stdout)
		for scanner.Scan() {
			uci.lines <- scanner.Text()
		}
		close(uci.lines)
	}()

	if err := uci.initialize(); err != nil {
		uci.Close()
		return nil, err
	}

	return uci, nil
}

func (u *UCI) initialize() error {
	u.sendCommand("uci")
	if err := u.awaitToken("uciok", 5*time.Second); err != nil {
		return err
	}
	u.sendCommand("isready")
	return u.waitReady()
}

func (u *UCI) waitReady() error {
	return u.awaitToken("readyok", 5*time.Second)
}

// awaitToken discards output until the exact token line arrives.
func (u *UCI) awaitToken(token string, timeout time.Duration) error {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	for {
		select {
		case line, ok := <-u.lines:
			if !ok {
				return fmt.Errorf("engine closed unexpectedly")
			}
			if line == token {
				return nil
			}
		case <-timer.C:
			return fmt.Errorf("timeout waiting for %s", token)
		}
	}
}

func (u *UCI) sendCommand(cmd string) {
	u.mu.Lock()
	defer u.mu.Unlock()
	fmt.Fprintln(u.stdin, cmd)
}

func (u *UCI) NewGame() {
	u.sendCommand("ucinewgame")
	u.sendCommand("isready")
	u.waitReady()
}

func (u *UCI) SetPosition(fen string, moves []string) {
	cmd := fmt.Sprintf("position fen %s", fen)
	if len(moves) > 0 {
		cmd += " moves " + strings.Join(moves, " ")
	}
	u.sendCommand(cmd)
}

// GetFEN reads the current position back from the engine's debug output.
// Used to derive per-ply FENs when replaying imported games.
func (u *UCI) GetFEN() (string, error) {
	u.sendCommand("d")

	timer := time.NewTimer(2 * time.Second)
	defer timer.Stop()

	for {
		select {
		case line, ok := <-u.lines:
			if !ok {
				return "", fmt.Errorf("failed to get FEN from engine")
			}
			if strings.HasPrefix(line, "Fen: ") {
				return strings.TrimPrefix(line, "Fen: "), nil
			}
		case <-timer.C:
			return "", fmt.Errorf("timeout getting FEN")
		}
	}
}

// EvaluateStream runs a multi-PV search and emits one snapshot per depth
// iteration on a bounded channel. The stream closes once the engine
// reports bestmove or the context is cancelled; cancellation stops the
// search so abandoned queries release the engine promptly. The last
// snapshot received before closure is the deepest result available.
func (u *UCI) EvaluateStream(ctx context.Context, fen string, multiPV, movetimeMs int) (<-chan Evaluation, <-chan error) {
	if multiPV < 1 {
		multiPV = 1
	}
	snapshots := make(chan Evaluation, 8)
	errc := make(chan error, 1)

	u.sendCommand(fmt.Sprintf("setoption name MultiPV value %d", multiPV))
	u.SetPosition(fen, nil)
	u.sendCommand(fmt.Sprintf("go movetime %d", movetimeMs))

	started := time.Now()
	stopped := make(chan struct{})

	// Forward a stop on cancellation so the scan loop sees bestmove soon
	go func() {
		select {
		case <-ctx.Done():
			u.sendCommand("stop")
		case <-stopped:
		}
	}()

	go func() {
		defer close(snapshots)
		defer close(stopped)

		current := make([]EvalLine, multiPV)
		depth := 0
		seen := 0

		flush := func() {
			if seen == 0 {
				return
			}
			snap := Evaluation{
				Depth:  depth,
				Lines:  make([]EvalLine, 0, seen),
				TimeMs: int(time.Since(started).Milliseconds()),
			}
			for _, l := range current {
				if l.MoveUci != "" {
					snap.Lines = append(snap.Lines, l)
				}
			}
			select {
			case snapshots <- snap:
			default:
				// Consumer lagging, drop the intermediate snapshot
			}
		}

		deadline := time.Duration(movetimeMs*2+2000) * time.Millisecond
		timer := time.NewTimer(deadline)
		defer timer.Stop()

		for {
			select {
			case line, ok := <-u.lines:
				if !ok {
					errc <- fmt.Errorf("engine closed unexpectedly")
					return
				}
				if strings.HasPrefix(line, "bestmove ") {
					flush()
					errc <- nil
					return
				}
				info, ok := parseInfoLine(line)
				if !ok {
					continue
				}
				if info.Depth > depth {
					// New iteration: publish the completed one
					flush()
					depth = info.Depth
				}
				if info.Rank >= 1 && info.Rank <= multiPV {
					if current[info.Rank-1].MoveUci == "" {
						seen++
					}
					current[info.Rank-1] = info
				}
			case <-timer.C:
				flush()
				// A stalled search must not leak its late output into the
				// next request on this process
				u.sendCommand("stop")
				u.drainBestmove(2 * time.Second)
				errc <- fmt.Errorf("timeout waiting for bestmove")
				return
			}
		}
	}()

	return snapshots, errc
}

// drainBestmove discards search output through the terminating bestmove
// line. Best effort; gives up on the timeout or engine exit.
func (u *UCI) drainBestmove(timeout time.Duration) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	for {
		select {
		case line, ok := <-u.lines:
			if !ok {
				return
			}
			if strings.HasPrefix(line, "bestmove") {
				return
			}
		case <-timer.C:
			return
		}
	}
}

// Evaluate runs EvaluateStream to completion and returns the deepest
// snapshot. A cancelled context yields the best partial result if any
// snapshot was seen, otherwise the cancellation error.
func (u *UCI) Evaluate(ctx context.Context, fen string, multiPV, movetimeMs int) (*Evaluation, error) {
	snapshots, errc := u.EvaluateStream(ctx, fen, multiPV, movetimeMs)

	var last *Evaluation
	for snap := range snapshots {
		s := snap
		last = &s
	}

	if err := <-errc; err != nil {
		return nil, err
	}
	if last == nil || len(last.Lines) == 0 {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("no evaluation produced for position")
	}
	return last, nil
}

func (u *UCI) Close() error {
	u.sendCommand("quit")
	time.Sleep(100 * time.Millisecond)

	// Try graceful shutdown first
	done := make(chan error, 1)
	go func() {
		done <- u.cmd.Wait()
	}()

	select {
	case <-done:
		return nil
	case <-time.After(1 * time.Second):
		// Force kill if doesn't exit gracefully
		return u.cmd.Process.Kill()
	}
}

// parseInfoLine extracts one multi-PV info line. Returns false for info
// lines that carry no pv (currmove reports, nps-only lines).
func parseInfoLine(line string) (EvalLine, bool) {
	if !strings.HasPrefix(line, "info ") {
		return EvalLine{}, false
	}

	result := EvalLine{Rank: 1}
	fields := strings.Fields(line)
	depth := 0
	hasScore := false

	for i := 0; i < len(fields)-1; i++ {
		switch fields[i] {
		case "depth":
			fmt.Sscanf(fields[i+1], "%d", &depth)
		case "multipv":
			fmt.Sscanf(fields[i+1], "%d", &result.Rank)
		case "score":
			switch fields[i+1] {
			case "cp":
				if i+2 < len(fields) {
					fmt.Sscanf(fields[i+2], "%d", &result.ScoreCp)
					hasScore = true
				}
			case "mate":
				if i+2 < len(fields) {
					fmt.Sscanf(fields[i+2], "%d", &result.MateIn)
					result.IsMate = true
					hasScore = true
				}
			}
		case "pv":
			result.PV = append([]string(nil), fields[i+1:]...)
			if len(result.PV) > 0 {
				result.MoveUci = result.PV[0]
			}
			result.Depth = depth
			if !hasScore || result.MoveUci == "" {
				return EvalLine{}, false
			}
			return result, true
		}
	}

	return EvalLine{}, false
}
