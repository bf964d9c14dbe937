package engine

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// EvalTask is one evaluation request against an immutable position.
type EvalTask struct {
	FEN        string
	MultiPV    int
	MovetimeMs int
	Ctx        context.Context
	Response   chan<- EvalOutcome
}

type EvalOutcome struct {
	Eval *Evaluation
	Err  error
}

// Pool manages a bounded set of worker engines. Per-ply evaluations and
// confirmation-pass re-checks are independent read-only queries, so they
// can run concurrently, one search per engine process at a time.
type Pool struct {
	tasks   chan EvalTask
	path    string
	workers int
	wg      sync.WaitGroup
	ctx     context.Context
	cancel  context.CancelFunc
}

// NewPool creates a pool with the specified worker count, each worker
// owning its own engine process.
func NewPool(enginePath string, workerCount int) *Pool {
	if workerCount < 1 {
		workerCount = 2 // Default
	}

	ctx, cancel := context.WithCancel(context.Background())

	p := &Pool{
		tasks:   make(chan EvalTask, 256), // Buffered for queueing
		path:    enginePath,
		workers: workerCount,
		ctx:     ctx,
		cancel:  cancel,
	}

	for i := 0; i < workerCount; i++ {
		p.wg.Add(1)
		go p.worker(i)
	}

	return p
}

func (p *Pool) worker(id int) {
	defer p.wg.Done()

	eng, err := New(p.path)
	if err != nil {
		fmt.Printf("Worker %d failed to initialize engine: %v\n", id, err)
		return
	}
	defer eng.Close()

	for {
		select {
		case task, ok := <-p.tasks:
			if !ok {
				return
			}

			// Skip work the requester already abandoned
			if task.Ctx != nil && task.Ctx.Err() != nil {
				continue
			}

			taskCtx := task.Ctx
			if taskCtx == nil {
				taskCtx = context.Background()
			}

			eval, err := eng.Evaluate(taskCtx, task.FEN, task.MultiPV, task.MovetimeMs)

			select {
			case task.Response <- EvalOutcome{Eval: eval, Err: err}:
			case <-time.After(100 * time.Millisecond):
				// Receiver abandoned, discard result
			}

		case <-p.ctx.Done():
			return
		}
	}
}

// Submit queues a task without waiting for the result.
func (p *Pool) Submit(task EvalTask) error {
	select {
	case p.tasks <- task:
		return nil
	case <-p.ctx.Done():
		return fmt.Errorf("pool is shutting down")
	default:
		return fmt.Errorf("pool queue is full")
	}
}

// Evaluate queues a task and blocks until its result or ctx expiry.
func (p *Pool) Evaluate(ctx context.Context, fen string, multiPV, movetimeMs int) (*Evaluation, error) {
	respChan := make(chan EvalOutcome, 1)

	task := EvalTask{
		FEN:        fen,
		MultiPV:    multiPV,
		MovetimeMs: movetimeMs,
		Ctx:        ctx,
		Response:   respChan,
	}

	if err := p.Submit(task); err != nil {
		return nil, err
	}

	select {
	case outcome := <-respChan:
		return outcome.Eval, outcome.Err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// DeriveFENs replays UCI moves from an initial position and returns the
// FEN before each ply plus the final position, using a worker engine as
// the rules authority.
func (p *Pool) DeriveFENs(initialFEN string, moves []string) ([]string, error) {
	eng, err := New(p.path)
	if err != nil {
		return nil, fmt.Errorf("failed to start replay engine: %w", err)
	}
	defer eng.Close()

	eng.NewGame()
	fens := make([]string, 0, len(moves)+1)

	eng.SetPosition(initialFEN, nil)
	fen, err := eng.GetFEN()
	if err != nil {
		return nil, fmt.Errorf("invalid initial position: %w", err)
	}
	fens = append(fens, fen)

	for i := range moves {
		eng.SetPosition(initialFEN, moves[:i+1])
		next, err := eng.GetFEN()
		if err != nil {
			return nil, fmt.Errorf("replay failed at ply %d: %w", i, err)
		}
		if next == fens[len(fens)-1] {
			return nil, fmt.Errorf("illegal move %q at ply %d", moves[i], i)
		}
		fens = append(fens, next)
	}

	return fens, nil
}

// Shutdown gracefully stops the pool.
func (p *Pool) Shutdown(timeout time.Duration) error {
	p.cancel()
	close(p.tasks)

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-time.After(timeout):
		return fmt.Errorf("shutdown timeout exceeded")
	}
}
