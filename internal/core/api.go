package core

import "time"

// Request types

type ImportGameRequest struct {
	PGN        string   `json:"pgn" validate:"omitempty,max=65536"`
	Moves      []string `json:"moves" validate:"required,min=1,max=600"` // UCI, in played order
	InitialFEN string   `json:"initialFen,omitempty" validate:"omitempty,max=100"`
}

type AnalyzeRequest struct {
	Config AnalysisConfig `json:"config"`
}

type AttemptRequest struct {
	UserMoveUci string `json:"userMoveUci" validate:"required,min=1,max=16"`
	TimeSpentMs *int   `json:"timeSpentMs,omitempty" validate:"omitempty,min=0"`
}

// Response types

type GameResponse struct {
	GameID     string      `json:"gameId"`
	MoveCount  int         `json:"moveCount"`
	Opening    OpeningInfo `json:"opening"`
	ImportedAt time.Time   `json:"importedAt"`
}

type PuzzleResponse struct {
	PuzzleID         string     `json:"puzzleId"`
	GameID           string     `json:"gameId"`
	SourcePly        int        `json:"sourcePly"`
	FEN              string     `json:"fen"`
	Type             PuzzleType `json:"type"`
	Severity         *int       `json:"severity,omitempty"`
	BestMoveUci      string     `json:"bestMoveUci"`
	BestLine         []string   `json:"bestLine"`
	Score            *int       `json:"score,omitempty"`
	Tags             []string   `json:"tags"`
	OpeningECO       string     `json:"openingEco,omitempty"`
	OpeningName      string     `json:"openingName,omitempty"`
	OpeningVariation string     `json:"openingVariation,omitempty"`
	Label            string     `json:"label,omitempty"`
}

type AnalyzeResponse struct {
	GameID  string           `json:"gameId"`
	Puzzles []PuzzleResponse `json:"puzzles"`
}

type AttemptResponse struct {
	PuzzleID    string       `json:"puzzleId"`
	UserMoveUci string       `json:"userMoveUci"`
	WasCorrect  bool         `json:"wasCorrect"`
	AttemptedAt time.Time    `json:"attemptedAt"`
	Stats       AttemptStats `json:"stats"`
}

// AttemptStats is the read-time aggregate over one user's attempts at one
// puzzle. It is recomputed from the attempt history on every read.
type AttemptStats struct {
	TotalAttempts       int        `json:"totalAttempts"`
	CorrectAttempts     int        `json:"correctAttempts"`
	SuccessRate         float64    `json:"successRate"`
	FirstAttemptCorrect bool       `json:"firstAttemptCorrect"`
	LastAttemptCorrect  bool       `json:"lastAttemptCorrect"`
	LastAttemptAt       *time.Time `json:"lastAttemptAt,omitempty"`
	CurrentStreak       int        `json:"currentStreak"` // consecutive correct, most recent first
}

type BoardResponse struct {
	FEN   string `json:"fen"`
	Board string `json:"board"` // ASCII representation
}
