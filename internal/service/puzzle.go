package service

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/AdamHerman69/backranq-sub002/internal/core"
	"github.com/AdamHerman69/backranq-sub002/internal/extract"
	"github.com/AdamHerman69/backranq-sub002/internal/storage"

	"github.com/google/uuid"
)

// ListPuzzles retrieves the user's puzzles, optionally filtered by game,
// highest severity first. Rows that fail shape validation are dropped
// from the response rather than failing the whole listing.
func (s *Service) ListPuzzles(userID, gameID string) ([]core.PuzzleResponse, error) {
	if gameID != "" {
		if _, err := s.ownedGame(userID, gameID); err != nil {
			return nil, err
		}
	}

	records, err := s.store.QueryPuzzles(userID, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to query puzzles: %w", err)
	}

	puzzles := make([]core.PuzzleResponse, 0, len(records))
	for i := range records {
		pr, ok := puzzleResponse(&records[i])
		if !ok {
			log.Printf("Dropping malformed puzzle record %s", records[i].PuzzleID)
			continue
		}
		puzzles = append(puzzles, pr)
	}
	return puzzles, nil
}

// GetPuzzle retrieves one of the user's puzzles.
func (s *Service) GetPuzzle(userID, puzzleID string) (*core.PuzzleResponse, error) {
	record, err := s.ownedPuzzle(userID, puzzleID)
	if err != nil {
		return nil, err
	}

	pr, ok := puzzleResponse(record)
	if !ok {
		return nil, ErrPuzzleNotFound
	}
	return &pr, nil
}

// ownedPuzzle loads a puzzle and hides other users' puzzles behind
// not-found.
func (s *Service) ownedPuzzle(userID, puzzleID string) (*storage.PuzzleRecord, error) {
	record, err := s.store.GetPuzzle(puzzleID)
	if err != nil || record.UserID != userID {
		return nil, ErrPuzzleNotFound
	}
	return record, nil
}

// puzzleRecords converts extracted puzzles into storage rows.
func puzzleRecords(userID, gameID string, puzzles []extract.Puzzle) []storage.PuzzleRecord {
	now := time.Now().UTC()

	records := make([]storage.PuzzleRecord, 0, len(puzzles))
	for _, p := range puzzles {
		lineJSON, _ := json.Marshal(emptyAsList(p.BestLine))
		tagsJSON, _ := json.Marshal(emptyAsList(p.Tags))
		altJSON, _ := json.Marshal(emptyAsList(p.AltMoves))

		records = append(records, storage.PuzzleRecord{
			PuzzleID:         uuid.New().String(),
			UserID:           userID,
			GameID:           gameID,
			SourcePly:        p.SourcePly,
			FEN:              p.FEN,
			Type:             string(p.Type),
			Severity:         p.Severity,
			BestMoveUci:      p.BestMoveUci,
			BestLineJSON:     string(lineJSON),
			Score:            p.ScoreCp,
			TagsJSON:         string(tagsJSON),
			AltMovesJSON:     string(altJSON),
			OpeningECO:       p.Opening.ECO,
			OpeningName:      p.Opening.Name,
			OpeningVariation: p.Opening.Variation,
			Label:            p.Label,
			CreatedAt:        now,
		})
	}
	return records
}

// puzzleResponse validates a stored row's shape and converts it. The
// boolean is false for rows that would not make a playable puzzle.
func puzzleResponse(record *storage.PuzzleRecord) (core.PuzzleResponse, bool) {
	var line, tags []string
	if err := json.Unmarshal([]byte(record.BestLineJSON), &line); err != nil {
		return core.PuzzleResponse{}, false
	}
	if err := json.Unmarshal([]byte(record.TagsJSON), &tags); err != nil {
		tags = nil
	}

	t := core.PuzzleType(record.Type)
	if !t.Valid() || record.FEN == "" || record.BestMoveUci == "" || record.SourcePly < 0 {
		return core.PuzzleResponse{}, false
	}

	return core.PuzzleResponse{
		PuzzleID:         record.PuzzleID,
		GameID:           record.GameID,
		SourcePly:        record.SourcePly,
		FEN:              record.FEN,
		Type:             t,
		Severity:         record.Severity,
		BestMoveUci:      record.BestMoveUci,
		BestLine:         line,
		Score:            record.Score,
		Tags:             emptyAsList(tags),
		OpeningECO:       record.OpeningECO,
		OpeningName:      record.OpeningName,
		OpeningVariation: record.OpeningVariation,
		Label:            record.Label,
	}, true
}

// emptyAsList keeps JSON arrays as [] instead of null.
func emptyAsList(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
