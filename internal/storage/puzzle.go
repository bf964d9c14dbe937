package storage

import (
	"database/sql"
	"fmt"
	"log"
)

// ReplacePuzzles atomically replaces the puzzle set for (user, game):
// delete all existing rows, then insert the new list, skipping exact
// duplicates. The whole delete+insert is one transaction, so a failure
// never leaves the game half-replaced; retrying the full replace is
// always safe. An empty list is a valid replace and clears the game.
func (s *Store) ReplacePuzzles(userID, gameID string, puzzles []PuzzleRecord) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM puzzles WHERE user_id = ? AND game_id = ?`, userID, gameID); err != nil {
		return fmt.Errorf("failed to delete existing puzzles: %w", err)
	}

	insert := `INSERT OR IGNORE INTO puzzles (
		puzzle_id, user_id, game_id, source_ply, fen, type, severity,
		best_move_uci, best_line_json, score, tags_json, alt_moves_json,
		opening_eco, opening_name, opening_variation, label, created_at
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	for _, p := range puzzles {
		_, err := tx.Exec(insert,
			p.PuzzleID, userID, gameID, p.SourcePly, p.FEN, p.Type, p.Severity,
			p.BestMoveUci, p.BestLineJSON, p.Score, p.TagsJSON, p.AltMovesJSON,
			p.OpeningECO, p.OpeningName, p.OpeningVariation, p.Label, p.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert puzzle at ply %d: %w", p.SourcePly, err)
		}
	}

	return tx.Commit()
}

// GetPuzzle retrieves one puzzle by ID
func (s *Store) GetPuzzle(puzzleID string) (*PuzzleRecord, error) {
	var p PuzzleRecord
	query := `SELECT puzzle_id, user_id, game_id, source_ply, fen, type, severity,
		best_move_uci, best_line_json, score, tags_json, alt_moves_json,
		opening_eco, opening_name, opening_variation, label, created_at
	FROM puzzles WHERE puzzle_id = ?`

	err := s.db.QueryRow(query, puzzleID).Scan(
		&p.PuzzleID, &p.UserID, &p.GameID, &p.SourcePly, &p.FEN, &p.Type, &p.Severity,
		&p.BestMoveUci, &p.BestLineJSON, &p.Score, &p.TagsJSON, &p.AltMovesJSON,
		&p.OpeningECO, &p.OpeningName, &p.OpeningVariation, &p.Label, &p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// QueryPuzzles retrieves a user's puzzles, optionally filtered by game,
// highest severity first, earliest ply first within a band.
func (s *Store) QueryPuzzles(userID, gameID string) ([]PuzzleRecord, error) {
	query := `SELECT puzzle_id, user_id, game_id, source_ply, fen, type, severity,
		best_move_uci, best_line_json, score, tags_json, alt_moves_json,
		opening_eco, opening_name, opening_variation, label, created_at
	FROM puzzles WHERE user_id = ?`

	args := []any{userID}
	if gameID != "" {
		query += " AND game_id = ?"
		args = append(args, gameID)
	}
	query += " ORDER BY severity DESC, source_ply ASC"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	var puzzles []PuzzleRecord
	for rows.Next() {
		var p PuzzleRecord
		err := rows.Scan(
			&p.PuzzleID, &p.UserID, &p.GameID, &p.SourcePly, &p.FEN, &p.Type, &p.Severity,
			&p.BestMoveUci, &p.BestLineJSON, &p.Score, &p.TagsJSON, &p.AltMovesJSON,
			&p.OpeningECO, &p.OpeningName, &p.OpeningVariation, &p.Label, &p.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		puzzles = append(puzzles, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration failed: %w", err)
	}

	return puzzles, nil
}

// CountPuzzles returns the puzzle count for a (user, game) pair
func (s *Store) CountPuzzles(userID, gameID string) (int, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM puzzles WHERE user_id = ? AND game_id = ?`, userID, gameID).Scan(&count)
	return count, err
}

// RecordAnalysisRun asynchronously records an extraction audit row
func (s *Store) RecordAnalysisRun(record AnalysisRunRecord) error {
	if !s.healthStatus.Load() {
		return nil // Silently drop if degraded
	}

	select {
	case s.writeChan <- func(tx *sql.Tx) error {
		query := `INSERT INTO analysis_runs (
			game_id, user_id, config_json, puzzle_count, duration_ms, run_at
		) VALUES (?, ?, ?, ?, ?, ?)`

		_, err := tx.Exec(query,
			record.GameID, record.UserID, record.ConfigJSON,
			record.PuzzleCount, record.DurationMs, record.RunAt,
		)
		return err
	}:
		return nil
	default:
		// Channel full, drop write
		log.Printf("Storage write queue full, dropping analysis run record")
		return nil
	}
}
