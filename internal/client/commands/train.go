package commands

import (
	"fmt"
	"time"

	"github.com/AdamHerman69/backranq-sub002/internal/board"
	"github.com/AdamHerman69/backranq-sub002/internal/client/display"
)

func (r *Registry) registerTrainCommands() {
	r.Register(&Command{
		Name:        "train",
		ShortName:   "t",
		Description: "Load the puzzle queue",
		Usage:       "train [gameId]",
		Handler:     trainHandler,
	})

	r.Register(&Command{
		Name:        "show",
		ShortName:   "h",
		Description: "Show the current puzzle",
		Usage:       "show",
		Handler:     showHandler,
	})

	r.Register(&Command{
		Name:        "try",
		ShortName:   "y",
		Description: "Try a move against the current puzzle",
		Usage:       "try <uci move>",
		Handler:     tryHandler,
	})

	r.Register(&Command{
		Name:        "next",
		ShortName:   "n",
		Description: "Skip to the next puzzle",
		Usage:       "next",
		Handler:     nextHandler,
	})

	r.Register(&Command{
		Name:        "stats",
		ShortName:   "s",
		Description: "Show attempt stats for the current puzzle",
		Usage:       "stats",
		Handler:     statsHandler,
	})
}

func trainHandler(s *Session, args []string) error {
	gameID := s.CurrentGame
	if len(args) > 0 {
		gameID = args[0]
	}

	puzzles, err := s.Client.ListPuzzles(gameID)
	if err != nil {
		return err
	}

	if len(puzzles) == 0 {
		fmt.Printf("%sNo puzzles found; run 'analyze' first%s\n", display.Yellow, display.Reset)
		return nil
	}

	s.Queue = puzzles
	s.QueueIndex = 0

	fmt.Printf("%sLoaded %d puzzles%s\n", display.Green, len(puzzles), display.Reset)
	return showHandler(s, nil)
}

func showHandler(s *Session, args []string) error {
	p := s.CurrentPuzzle()
	if p == nil {
		fmt.Printf("%sQueue finished; run 'train' to reload%s\n", display.Yellow, display.Reset)
		return nil
	}

	b, err := board.ParseFEN(p.FEN)
	if err != nil {
		return fmt.Errorf("puzzle has an unreadable position: %w", err)
	}

	fmt.Printf("\n%sPuzzle %d of %d%s", display.Cyan, s.QueueIndex+1, len(s.Queue), display.Reset)
	if p.Severity != nil {
		fmt.Printf("  [%s]", display.SeverityLabel(*p.Severity))
	}
	fmt.Println()
	if p.Label != "" {
		fmt.Printf("%s%s%s\n", display.Magenta, p.Label, display.Reset)
	}
	fmt.Println()

	display.RenderBoard(b.ToASCII())
	fmt.Printf("\n%s to move. 'try <move>' to answer.\n", display.ColorForTurn(b.Turn().String()))

	s.ShownAt = time.Now()
	return nil
}

func tryHandler(s *Session, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: try <uci move, e.g. e2e4>")
	}

	p := s.CurrentPuzzle()
	if p == nil {
		return fmt.Errorf("no puzzle loaded; run 'train' first")
	}

	var timeSpent *int
	if !s.ShownAt.IsZero() {
		ms := int(time.Since(s.ShownAt).Milliseconds())
		timeSpent = &ms
	}

	resp, err := s.Client.SubmitAttempt(p.PuzzleID, args[0], timeSpent)
	if err != nil {
		return err
	}

	if resp.WasCorrect {
		fmt.Printf("%sCorrect!%s", display.Green, display.Reset)
		if len(p.BestLine) > 1 {
			fmt.Printf(" Line: %v", p.BestLine)
		}
		fmt.Println()
		fmt.Printf("Streak: %d  Success: %.0f%%\n",
			resp.Stats.CurrentStreak, resp.Stats.SuccessRate*100)
		return nextHandler(s, nil)
	}

	fmt.Printf("%sNot the best move, try again%s (attempt %d)\n",
		display.Red, display.Reset, resp.Stats.TotalAttempts)
	return nil
}

func nextHandler(s *Session, args []string) error {
	if s.QueueIndex < len(s.Queue) {
		s.QueueIndex++
	}
	return showHandler(s, nil)
}

func statsHandler(s *Session, args []string) error {
	p := s.CurrentPuzzle()
	if p == nil {
		return fmt.Errorf("no puzzle loaded; run 'train' first")
	}

	stats, err := s.Client.GetAttemptStats(p.PuzzleID)
	if err != nil {
		return err
	}

	fmt.Printf("%sAttempt Stats:%s\n", display.Cyan, display.Reset)
	fmt.Printf("  Attempts:      %d (%d correct)\n", stats.TotalAttempts, stats.CorrectAttempts)
	fmt.Printf("  Success rate:  %.0f%%\n", stats.SuccessRate*100)
	fmt.Printf("  First correct: %v\n", stats.FirstAttemptCorrect)
	fmt.Printf("  Streak:        %d\n", stats.CurrentStreak)
	if stats.LastAttemptAt != nil {
		fmt.Printf("  Last attempt:  %s\n", stats.LastAttemptAt.Format("2006-01-02 15:04:05"))
	}
	return nil
}
