package storage

import "fmt"

// InsertAttempt appends one immutable attempt record. Attempts are
// never updated or overwritten.
func (s *Store) InsertAttempt(record AttemptRecord) (int64, error) {
	query := `INSERT INTO attempts (
		puzzle_id, user_id, move_uci, was_correct, time_spent_ms, attempted_at
	) VALUES (?, ?, ?, ?, ?, ?)`

	result, err := s.db.Exec(query,
		record.PuzzleID, record.UserID, record.MoveUci,
		record.WasCorrect, record.TimeSpentMs, record.AttemptedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert attempt: %w", err)
	}
	return result.LastInsertId()
}

// QueryAttempts returns the attempt history for a (puzzle, user) pair,
// most recent first.
func (s *Store) QueryAttempts(puzzleID, userID string) ([]AttemptRecord, error) {
	query := `SELECT attempt_id, puzzle_id, user_id, move_uci, was_correct, time_spent_ms, attempted_at
	FROM attempts WHERE puzzle_id = ? AND user_id = ?
	ORDER BY attempted_at DESC, attempt_id DESC`

	rows, err := s.db.Query(query, puzzleID, userID)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	var attempts []AttemptRecord
	for rows.Next() {
		var a AttemptRecord
		err := rows.Scan(
			&a.AttemptID, &a.PuzzleID, &a.UserID, &a.MoveUci,
			&a.WasCorrect, &a.TimeSpentMs, &a.AttemptedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		attempts = append(attempts, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration failed: %w", err)
	}

	return attempts, nil
}
