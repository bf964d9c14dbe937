package core

// Error codes
const (
	ErrGameNotFound      = "GAME_NOT_FOUND"
	ErrPuzzleNotFound    = "PUZZLE_NOT_FOUND"
	ErrInvalidMove       = "INVALID_MOVE"
	ErrInvalidPGN        = "INVALID_PGN"
	ErrInvalidFEN        = "INVALID_FEN"
	ErrInvalidRequest    = "INVALID_REQUEST"
	ErrInvalidContent    = "INVALID_CONTENT_TYPE"
	ErrRateLimitExceeded = "RATE_LIMIT_EXCEEDED"
	ErrCouldNotAnalyze   = "COULD_NOT_ANALYZE"
	ErrInternalError     = "INTERNAL_ERROR"
	ErrUnauthorized      = "UNAUTHORIZED"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code"`
	Details string `json:"details,omitempty"`
}
