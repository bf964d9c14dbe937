package commands

import (
	"fmt"

	"github.com/AdamHerman69/backranq-sub002/internal/client/display"
)

func (r *Registry) registerUtilCommands() {
	r.Register(&Command{
		Name:        "health",
		ShortName:   ".",
		Description: "Check server health",
		Usage:       "health",
		Handler:     healthHandler,
	})

	r.Register(&Command{
		Name:        "url",
		ShortName:   "/",
		Description: "Show or set the API base URL",
		Usage:       "url [baseUrl]",
		Handler:     urlHandler,
	})
}

func healthHandler(s *Session, args []string) error {
	resp, err := s.Client.Health()
	if err != nil {
		return err
	}

	fmt.Printf("%sServer:%s %s\n", display.Cyan, display.Reset, resp.Status)
	fmt.Printf("  Storage: %s\n", resp.Storage)
	fmt.Printf("  Engine:  %s\n", resp.Engine)
	return nil
}

func urlHandler(s *Session, args []string) error {
	if len(args) == 0 {
		fmt.Printf("API base URL: %s\n", s.APIBaseURL)
		return nil
	}

	s.APIBaseURL = args[0]
	s.Client.SetBaseURL(args[0])
	fmt.Printf("%sAPI base URL set to: %s%s\n", display.Green, s.APIBaseURL, display.Reset)
	return nil
}
