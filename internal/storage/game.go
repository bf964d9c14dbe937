package storage

import (
	"database/sql"
	"fmt"
)

// CreateGame inserts an imported game synchronously.
func (s *Store) CreateGame(record GameRecord) error {
	query := `INSERT INTO games (
		game_id, user_id, pgn, moves_json, fens_json,
		opening_eco, opening_name, opening_variation, opening_source,
		imported_at
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := s.db.Exec(query,
		record.GameID, record.UserID, record.PGN, record.MovesJSON, record.FENsJSON,
		record.OpeningECO, record.OpeningName, record.OpeningVariation, record.OpeningSource,
		record.ImportedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert game: %w", err)
	}
	return nil
}

// GetGame retrieves a game by ID
func (s *Store) GetGame(gameID string) (*GameRecord, error) {
	var g GameRecord
	query := `SELECT game_id, user_id, pgn, moves_json, fens_json,
		opening_eco, opening_name, opening_variation, opening_source, imported_at
	FROM games WHERE game_id = ?`

	err := s.db.QueryRow(query, gameID).Scan(
		&g.GameID, &g.UserID, &g.PGN, &g.MovesJSON, &g.FENsJSON,
		&g.OpeningECO, &g.OpeningName, &g.OpeningVariation, &g.OpeningSource, &g.ImportedAt,
	)
	if err != nil {
		return nil, err
	}
	return &g, nil
}

// QueryGames retrieves a user's games, most recent first
func (s *Store) QueryGames(userID string) ([]GameRecord, error) {
	query := `SELECT game_id, user_id, pgn, moves_json, fens_json,
		opening_eco, opening_name, opening_variation, opening_source, imported_at
	FROM games WHERE user_id = ? ORDER BY imported_at DESC`

	rows, err := s.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	var games []GameRecord
	for rows.Next() {
		var g GameRecord
		err := rows.Scan(
			&g.GameID, &g.UserID, &g.PGN, &g.MovesJSON, &g.FENsJSON,
			&g.OpeningECO, &g.OpeningName, &g.OpeningVariation, &g.OpeningSource, &g.ImportedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		games = append(games, g)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration failed: %w", err)
	}

	return games, nil
}

// DeleteGame removes a game and, through cascades, its puzzles
func (s *Store) DeleteGame(gameID, userID string) error {
	result, err := s.db.Exec(`DELETE FROM games WHERE game_id = ? AND user_id = ?`, gameID, userID)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
