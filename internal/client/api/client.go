// Package api is the HTTP client for the training server.
package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/AdamHerman69/backranq-sub002/internal/client/display"
	"github.com/AdamHerman69/backranq-sub002/internal/core"
)

type Client struct {
	BaseURL    string
	AuthToken  string
	HTTPClient *http.Client
	Verbose    bool
}

func New(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{
			// Analysis requests can hold the connection for a while
			Timeout: 5 * time.Minute,
		},
	}
}

func (c *Client) SetVerbose(v bool) {
	c.Verbose = v
}

// SetBaseURL updates the API base URL for the client
func (c *Client) SetBaseURL(u string) {
	c.BaseURL = strings.TrimRight(u, "/")
}

func (c *Client) SetToken(token string) {
	c.AuthToken = token
}

func (c *Client) doRequest(method, path string, body interface{}, result interface{}) error {
	reqURL := c.BaseURL + path

	var bodyReader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return err
		}
		bodyReader = bytes.NewReader(jsonData)
		if c.Verbose {
			fmt.Printf("%s[API] %s %s%s\n%s\n", display.Blue, method, path, display.Reset, string(jsonData))
		}
	} else if c.Verbose {
		fmt.Printf("%s[API] %s %s%s\n", display.Blue, method, path, display.Reset)
	}

	req, err := http.NewRequest(method, reqURL, bodyReader)
	if err != nil {
		return err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.AuthToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.AuthToken)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if c.Verbose && len(respBody) > 0 {
		var pretty interface{}
		if err := json.Unmarshal(respBody, &pretty); err == nil {
			prettyJSON, _ := json.MarshalIndent(pretty, "", "  ")
			fmt.Printf("%s[%d]%s\n%s\n", display.Cyan, resp.StatusCode, display.Reset, string(prettyJSON))
		}
	}

	if resp.StatusCode >= 400 {
		var errResp core.ErrorResponse
		if err := json.Unmarshal(respBody, &errResp); err == nil && errResp.Error != "" {
			if errResp.Details != "" {
				return fmt.Errorf("%s: %s", errResp.Error, errResp.Details)
			}
			return fmt.Errorf("%s", errResp.Error)
		}
		return fmt.Errorf("request failed with status %d", resp.StatusCode)
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to parse response: %w", err)
		}
	}

	return nil
}

// API Methods

func (c *Client) Health() (*HealthResponse, error) {
	var resp HealthResponse
	err := c.doRequest("GET", "/health", nil, &resp)
	return &resp, err
}

func (c *Client) Register(username, password, email string) (*AuthResponse, error) {
	req := &RegisterRequest{Username: username, Password: password, Email: email}
	var resp AuthResponse
	err := c.doRequest("POST", "/api/v1/auth/register", req, &resp)
	return &resp, err
}

func (c *Client) Login(identifier, password string) (*AuthResponse, error) {
	req := &LoginRequest{Identifier: identifier, Password: password}
	var resp AuthResponse
	err := c.doRequest("POST", "/api/v1/auth/login", req, &resp)
	return &resp, err
}

func (c *Client) Logout() error {
	return c.doRequest("POST", "/api/v1/auth/logout", nil, nil)
}

func (c *Client) GetCurrentUser() (*UserResponse, error) {
	var resp UserResponse
	err := c.doRequest("GET", "/api/v1/auth/me", nil, &resp)
	return &resp, err
}

func (c *Client) ImportGame(req *core.ImportGameRequest) (*core.GameResponse, error) {
	var resp core.GameResponse
	err := c.doRequest("POST", "/api/v1/games", req, &resp)
	return &resp, err
}

func (c *Client) ListGames() ([]core.GameResponse, error) {
	var resp GamesEnvelope
	err := c.doRequest("GET", "/api/v1/games", nil, &resp)
	return resp.Games, err
}

func (c *Client) GetGame(gameID string) (*core.GameResponse, error) {
	var resp core.GameResponse
	err := c.doRequest("GET", "/api/v1/games/"+gameID, nil, &resp)
	return &resp, err
}

func (c *Client) DeleteGame(gameID string) error {
	return c.doRequest("DELETE", "/api/v1/games/"+gameID, nil, nil)
}

func (c *Client) AnalyzeGame(gameID string, cfg core.AnalysisConfig) (*core.AnalyzeResponse, error) {
	req := &core.AnalyzeRequest{Config: cfg}
	var resp core.AnalyzeResponse
	err := c.doRequest("POST", "/api/v1/games/"+gameID+"/analyze", req, &resp)
	return &resp, err
}

func (c *Client) ListPuzzles(gameID string) ([]core.PuzzleResponse, error) {
	path := "/api/v1/puzzles"
	if gameID != "" {
		path += "?gameId=" + url.QueryEscape(gameID)
	}
	var resp PuzzlesEnvelope
	err := c.doRequest("GET", path, nil, &resp)
	return resp.Puzzles, err
}

func (c *Client) GetPuzzle(puzzleID string) (*core.PuzzleResponse, error) {
	var resp core.PuzzleResponse
	err := c.doRequest("GET", "/api/v1/puzzles/"+puzzleID, nil, &resp)
	return &resp, err
}

func (c *Client) SubmitAttempt(puzzleID, moveUci string, timeSpentMs *int) (*core.AttemptResponse, error) {
	req := &core.AttemptRequest{UserMoveUci: moveUci, TimeSpentMs: timeSpentMs}
	var resp core.AttemptResponse
	err := c.doRequest("POST", "/api/v1/puzzles/"+puzzleID+"/attempts", req, &resp)
	return &resp, err
}

func (c *Client) GetAttemptStats(puzzleID string) (*core.AttemptStats, error) {
	var resp core.AttemptStats
	err := c.doRequest("GET", "/api/v1/puzzles/"+puzzleID+"/stats", nil, &resp)
	return &resp, err
}
