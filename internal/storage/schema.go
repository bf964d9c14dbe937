package storage

import "time"

// UserRecord represents a user account in the database
type UserRecord struct {
	UserID       string     `db:"user_id"`
	Username     string     `db:"username"`
	Email        string     `db:"email"`
	PasswordHash string     `db:"password_hash"`
	AccountType  string     `db:"account_type"` // "permanent" or "temp"
	CreatedAt    time.Time  `db:"created_at"`
	ExpiresAt    *time.Time `db:"expires_at"` // nil for permanent
	LastLoginAt  *time.Time `db:"last_login_at"`
}

// SessionRecord represents an active user session
type SessionRecord struct {
	SessionID string    `db:"session_id"`
	UserID    string    `db:"user_id"`
	CreatedAt time.Time `db:"created_at"`
	ExpiresAt time.Time `db:"expires_at"`
}

// GameRecord is one imported game, stored with its per-ply positions so
// re-extraction never needs to replay the moves again.
type GameRecord struct {
	GameID           string    `db:"game_id"`
	UserID           string    `db:"user_id"`
	PGN              string    `db:"pgn"`
	MovesJSON        string    `db:"moves_json"` // UCI moves, JSON array
	FENsJSON         string    `db:"fens_json"`  // position before each ply plus final, JSON array
	OpeningECO       string    `db:"opening_eco"`
	OpeningName      string    `db:"opening_name"`
	OpeningVariation string    `db:"opening_variation"`
	OpeningSource    string    `db:"opening_source"`
	ImportedAt       time.Time `db:"imported_at"`
}

// PuzzleRecord is one persisted training puzzle
type PuzzleRecord struct {
	PuzzleID         string    `db:"puzzle_id"`
	UserID           string    `db:"user_id"`
	GameID           string    `db:"game_id"`
	SourcePly        int       `db:"source_ply"`
	FEN              string    `db:"fen"`
	Type             string    `db:"type"` // avoidBlunder | punishBlunder
	Severity         *int      `db:"severity"`
	BestMoveUci      string    `db:"best_move_uci"`
	BestLineJSON     string    `db:"best_line_json"` // JSON array of UCI moves
	Score            *int      `db:"score"`
	TagsJSON         string    `db:"tags_json"`      // JSON array of strings
	AltMovesJSON     string    `db:"alt_moves_json"` // alternate accepted moves, JSON array
	OpeningECO       string    `db:"opening_eco"`
	OpeningName      string    `db:"opening_name"`
	OpeningVariation string    `db:"opening_variation"`
	Label            string    `db:"label"`
	CreatedAt        time.Time `db:"created_at"`
}

// AttemptRecord is one immutable puzzle attempt
type AttemptRecord struct {
	AttemptID   int64     `db:"attempt_id"`
	PuzzleID    string    `db:"puzzle_id"`
	UserID      string    `db:"user_id"`
	MoveUci     string    `db:"move_uci"`
	WasCorrect  bool      `db:"was_correct"`
	TimeSpentMs *int      `db:"time_spent_ms"`
	AttemptedAt time.Time `db:"attempted_at"`
}

// AnalysisRunRecord is one audit row per extraction run
type AnalysisRunRecord struct {
	RunID       int64     `db:"run_id"`
	GameID      string    `db:"game_id"`
	UserID      string    `db:"user_id"`
	ConfigJSON  string    `db:"config_json"`
	PuzzleCount int       `db:"puzzle_count"`
	DurationMs  int       `db:"duration_ms"`
	RunAt       time.Time `db:"run_at"`
}

// Schema defines the SQLite database structure
const Schema = `
CREATE TABLE IF NOT EXISTS users (
	user_id TEXT PRIMARY KEY,
	username TEXT UNIQUE NOT NULL COLLATE NOCASE,
	email TEXT COLLATE NOCASE,
	password_hash TEXT NOT NULL,
	account_type TEXT NOT NULL DEFAULT 'temp' CHECK(account_type IN ('permanent', 'temp')),
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	expires_at DATETIME,
	last_login_at DATETIME
);

CREATE INDEX IF NOT EXISTS idx_users_username ON users(username);
CREATE INDEX IF NOT EXISTS idx_users_expires_at ON users(expires_at);
CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email_unique ON users(email) WHERE email IS NOT NULL AND email != '';

CREATE TABLE IF NOT EXISTS sessions (
	session_id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL UNIQUE,
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	expires_at DATETIME NOT NULL,
	FOREIGN KEY (user_id) REFERENCES users(user_id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_sessions_expires_at ON sessions(expires_at);

CREATE TABLE IF NOT EXISTS games (
	game_id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL,
	pgn TEXT NOT NULL DEFAULT '',
	moves_json TEXT NOT NULL,
	fens_json TEXT NOT NULL,
	opening_eco TEXT NOT NULL DEFAULT '',
	opening_name TEXT NOT NULL DEFAULT '',
	opening_variation TEXT NOT NULL DEFAULT '',
	opening_source TEXT NOT NULL DEFAULT 'unknown',
	imported_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_games_user ON games(user_id);

CREATE TABLE IF NOT EXISTS puzzles (
	puzzle_id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL,
	game_id TEXT NOT NULL,
	source_ply INTEGER NOT NULL CHECK(source_ply >= 0),
	fen TEXT NOT NULL,
	type TEXT NOT NULL CHECK(type IN ('avoidBlunder', 'punishBlunder')),
	severity INTEGER,
	best_move_uci TEXT NOT NULL,
	best_line_json TEXT NOT NULL,
	score INTEGER,
	tags_json TEXT NOT NULL DEFAULT '[]',
	alt_moves_json TEXT NOT NULL DEFAULT '[]',
	opening_eco TEXT NOT NULL DEFAULT '',
	opening_name TEXT NOT NULL DEFAULT '',
	opening_variation TEXT NOT NULL DEFAULT '',
	label TEXT NOT NULL DEFAULT '',
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (game_id) REFERENCES games(game_id) ON DELETE CASCADE,
	UNIQUE(game_id, source_ply, type)
);

CREATE INDEX IF NOT EXISTS idx_puzzles_user ON puzzles(user_id);
CREATE INDEX IF NOT EXISTS idx_puzzles_game ON puzzles(game_id);

CREATE TABLE IF NOT EXISTS attempts (
	attempt_id INTEGER PRIMARY KEY AUTOINCREMENT,
	puzzle_id TEXT NOT NULL,
	user_id TEXT NOT NULL,
	move_uci TEXT NOT NULL,
	was_correct INTEGER NOT NULL,
	time_spent_ms INTEGER,
	attempted_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (puzzle_id) REFERENCES puzzles(puzzle_id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_attempts_puzzle_user ON attempts(puzzle_id, user_id);

CREATE TABLE IF NOT EXISTS analysis_runs (
	run_id INTEGER PRIMARY KEY AUTOINCREMENT,
	game_id TEXT NOT NULL,
	user_id TEXT NOT NULL,
	config_json TEXT NOT NULL DEFAULT '{}',
	puzzle_count INTEGER NOT NULL DEFAULT 0,
	duration_ms INTEGER NOT NULL DEFAULT 0,
	run_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_analysis_runs_game ON analysis_runs(game_id);
`
