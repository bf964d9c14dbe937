package commands

import (
	"time"

	"github.com/AdamHerman69/backranq-sub002/internal/client/api"
	"github.com/AdamHerman69/backranq-sub002/internal/core"
)

// Session holds the interactive client state between commands.
type Session struct {
	APIBaseURL string
	Client     *api.Client
	Verbose    bool

	UserID   string
	Username string

	CurrentGame string

	// Training queue fetched by the train command
	Queue      []core.PuzzleResponse
	QueueIndex int
	ShownAt    time.Time
}

// CurrentPuzzle returns the puzzle under training, nil when the queue is
// exhausted or empty.
func (s *Session) CurrentPuzzle() *core.PuzzleResponse {
	if s.QueueIndex < 0 || s.QueueIndex >= len(s.Queue) {
		return nil
	}
	return &s.Queue[s.QueueIndex]
}
