// Package main implements the interactive puzzle trainer client.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/AdamHerman69/backranq-sub002/internal/client/api"
	"github.com/AdamHerman69/backranq-sub002/internal/client/commands"
	"github.com/AdamHerman69/backranq-sub002/internal/client/display"

	"github.com/chzyer/readline"
)

func main() {
	baseURL := flag.String("url", "http://localhost:8080", "Training server base URL")
	flag.Parse()

	s := &commands.Session{
		APIBaseURL: *baseURL,
		Client:     api.New(*baseURL),
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          display.Prompt("backranq"),
		HistoryFile:     ".backranq_history",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		fmt.Printf("%s%s%s\n", display.Red, err.Error(), display.Reset)
		os.Exit(1)
	}
	defer rl.Close()

	fmt.Printf("%sBackranq Puzzle Trainer%s\n", display.Cyan, display.Reset)
	fmt.Printf("%sAPI: %s%s\n", display.Cyan, s.APIBaseURL, display.Reset)
	fmt.Printf("Type 'help' for commands\n\n")

	registry := commands.NewRegistry(s)

	for {
		rl.SetPrompt(buildPrompt(s))

		line, err := rl.Readline()
		if err == io.EOF {
			break
		}
		if err != nil {
			continue
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if line == "exit" || line == "quit" || line == "x" {
			break
		}

		// Check for verbose flag
		if strings.HasSuffix(line, " -v") {
			s.Verbose = true
			line = strings.TrimSuffix(line, " -v")
		} else {
			s.Verbose = false
		}

		registry.Execute(line)
	}
}

func buildPrompt(s *commands.Session) string {
	parts := []string{}

	if s.Username != "" {
		parts = append(parts, fmt.Sprintf("%s%s%s", display.Magenta, s.Username, display.Reset))
	}
	if s.CurrentGame != "" {
		parts = append(parts, fmt.Sprintf("%s%s%s", display.White, s.CurrentGame[:8], display.Reset))
	}
	if len(s.Queue) > 0 {
		parts = append(parts, fmt.Sprintf("%s%d/%d%s", display.Cyan, s.QueueIndex+1, len(s.Queue), display.Reset))
	}

	promptStr := "backranq"
	if len(parts) > 0 {
		promptStr += display.Yellow + " [" + display.Reset + strings.Join(parts, " ") + display.Yellow + "]"
	}

	return display.Prompt(promptStr)
}
