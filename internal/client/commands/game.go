package commands

import (
	"fmt"
	"os"

	"github.com/AdamHerman69/backranq-sub002/internal/client/display"
	"github.com/AdamHerman69/backranq-sub002/internal/core"
)

func (r *Registry) registerGameCommands() {
	r.Register(&Command{
		Name:        "import",
		ShortName:   "m",
		Description: "Import a game from UCI moves, optionally with a PGN file",
		Usage:       "import <uci moves...> [--pgn <file>]",
		Handler:     importHandler,
	})

	r.Register(&Command{
		Name:        "games",
		ShortName:   "g",
		Description: "List imported games",
		Usage:       "games",
		Handler:     gamesHandler,
	})

	r.Register(&Command{
		Name:        "analyze",
		ShortName:   "a",
		Description: "Analyze a game and build its puzzles",
		Usage:       "analyze [gameId]",
		Handler:     analyzeHandler,
	})

	r.Register(&Command{
		Name:        "delete",
		ShortName:   "d",
		Description: "Delete a game and its puzzles",
		Usage:       "delete <gameId>",
		Handler:     deleteHandler,
	})
}

func importHandler(s *Session, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: import <uci moves...> [--pgn <file>]")
	}

	var moves []string
	var pgnText string
	for i := 0; i < len(args); i++ {
		if args[i] == "--pgn" {
			if i+1 >= len(args) {
				return fmt.Errorf("--pgn requires a file path")
			}
			data, err := os.ReadFile(args[i+1])
			if err != nil {
				return fmt.Errorf("failed to read PGN file: %w", err)
			}
			pgnText = string(data)
			i++
			continue
		}
		moves = append(moves, args[i])
	}

	if len(moves) == 0 {
		return fmt.Errorf("at least one move is required")
	}

	resp, err := s.Client.ImportGame(&core.ImportGameRequest{
		PGN:   pgnText,
		Moves: moves,
	})
	if err != nil {
		return err
	}

	s.CurrentGame = resp.GameID

	fmt.Printf("%sGame imported%s\n", display.Green, display.Reset)
	fmt.Printf("Game ID: %s\n", resp.GameID)
	fmt.Printf("Moves:   %d\n", resp.MoveCount)
	printOpening(resp.Opening)
	return nil
}

func gamesHandler(s *Session, args []string) error {
	games, err := s.Client.ListGames()
	if err != nil {
		return err
	}

	if len(games) == 0 {
		fmt.Printf("%sNo games imported yet%s\n", display.Yellow, display.Reset)
		return nil
	}

	fmt.Printf("%sGames:%s\n", display.Cyan, display.Reset)
	for _, g := range games {
		name := g.Opening.Name
		if name == "" {
			name = "unknown opening"
		}
		fmt.Printf("  %s  %3d moves  %s  %s\n",
			g.GameID, g.MoveCount, g.ImportedAt.Format("2006-01-02"), name)
	}
	return nil
}

func analyzeHandler(s *Session, args []string) error {
	gameID := s.CurrentGame
	if len(args) > 0 {
		gameID = args[0]
	}
	if gameID == "" {
		return fmt.Errorf("no game selected; usage: analyze [gameId]")
	}

	fmt.Printf("%sAnalyzing... this can take a while%s\n", display.Yellow, display.Reset)

	resp, err := s.Client.AnalyzeGame(gameID, core.AnalysisConfig{})
	if err != nil {
		return err
	}

	s.CurrentGame = gameID
	s.Queue = resp.Puzzles
	s.QueueIndex = 0

	fmt.Printf("%sAnalysis complete: %d puzzles%s\n", display.Green, len(resp.Puzzles), display.Reset)
	if len(resp.Puzzles) > 0 {
		fmt.Printf("Type 'show' to start training\n")
	}
	return nil
}

func deleteHandler(s *Session, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: delete <gameId>")
	}

	if err := s.Client.DeleteGame(args[0]); err != nil {
		return err
	}

	if s.CurrentGame == args[0] {
		s.CurrentGame = ""
		s.Queue = nil
		s.QueueIndex = 0
	}

	fmt.Printf("%sGame deleted%s\n", display.Green, display.Reset)
	return nil
}

func printOpening(op core.OpeningInfo) {
	if op.Name == "" && op.ECO == "" {
		return
	}
	line := op.Name
	if op.Variation != "" {
		line += ", " + op.Variation
	}
	if op.ECO != "" {
		line = op.ECO + " " + line
	}
	fmt.Printf("Opening: %s\n", line)
}
