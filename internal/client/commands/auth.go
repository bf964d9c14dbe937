package commands

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/AdamHerman69/backranq-sub002/internal/client/display"

	"golang.org/x/term"
)

func (r *Registry) registerAuthCommands() {
	r.Register(&Command{
		Name:        "register",
		ShortName:   "r",
		Description: "Register a new user",
		Usage:       "register",
		Handler:     registerHandler,
	})

	r.Register(&Command{
		Name:        "login",
		ShortName:   "l",
		Description: "Login with credentials",
		Usage:       "login",
		Handler:     loginHandler,
	})

	r.Register(&Command{
		Name:        "logout",
		ShortName:   "o",
		Description: "Clear authentication",
		Usage:       "logout",
		Handler:     logoutHandler,
	})

	r.Register(&Command{
		Name:        "whoami",
		ShortName:   "i",
		Description: "Show current user",
		Usage:       "whoami",
		Handler:     whoamiHandler,
	})
}

func readPassword(prompt string) (string, error) {
	fmt.Print(prompt)
	bytePassword, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", err
	}
	return string(bytePassword), nil
}

func registerHandler(s *Session, args []string) error {
	scanner := bufio.NewScanner(os.Stdin)

	fmt.Print(display.Yellow + "Username: " + display.Reset)
	scanner.Scan()
	username := strings.TrimSpace(scanner.Text())

	password, err := readPassword(display.Yellow + "Password: " + display.Reset)
	if err != nil {
		return err
	}

	fmt.Print(display.Yellow + "Email (optional): " + display.Reset)
	scanner.Scan()
	email := strings.TrimSpace(scanner.Text())

	resp, err := s.Client.Register(username, password, email)
	if err != nil {
		return err
	}

	s.UserID = resp.UserID
	s.Username = resp.Username
	s.Client.SetToken(resp.Token)

	fmt.Printf("%sRegistered successfully%s\n", display.Green, display.Reset)
	fmt.Printf("User ID: %s\n", resp.UserID)
	fmt.Printf("Username: %s\n", resp.Username)

	return nil
}

func loginHandler(s *Session, args []string) error {
	scanner := bufio.NewScanner(os.Stdin)

	fmt.Print(display.Yellow + "Username or Email: " + display.Reset)
	scanner.Scan()
	identifier := strings.TrimSpace(scanner.Text())

	password, err := readPassword(display.Yellow + "Password: " + display.Reset)
	if err != nil {
		return err
	}

	resp, err := s.Client.Login(identifier, password)
	if err != nil {
		return err
	}

	s.UserID = resp.UserID
	s.Username = resp.Username
	s.Client.SetToken(resp.Token)

	fmt.Printf("%sLogged in successfully%s\n", display.Green, display.Reset)
	fmt.Printf("User ID: %s\n", resp.UserID)
	fmt.Printf("Username: %s\n", resp.Username)

	return nil
}

func logoutHandler(s *Session, args []string) error {
	if s.UserID != "" {
		// Best effort; local state clears either way
		_ = s.Client.Logout()
	}

	s.UserID = ""
	s.Username = ""
	s.CurrentGame = ""
	s.Queue = nil
	s.QueueIndex = 0
	s.Client.SetToken("")

	fmt.Printf("%sLogged out%s\n", display.Green, display.Reset)
	return nil
}

func whoamiHandler(s *Session, args []string) error {
	if s.UserID == "" {
		fmt.Printf("%sNot authenticated%s\n", display.Yellow, display.Reset)
		return nil
	}

	user, err := s.Client.GetCurrentUser()
	if err != nil {
		return err
	}

	fmt.Printf("%sCurrent User:%s\n", display.Cyan, display.Reset)
	fmt.Printf("  User ID:  %s\n", user.UserID)
	fmt.Printf("  Username: %s\n", user.Username)
	if user.Email != "" {
		fmt.Printf("  Email:    %s\n", user.Email)
	}
	fmt.Printf("  Created:  %s\n", user.CreatedAt.Format("2006-01-02 15:04:05"))

	return nil
}
