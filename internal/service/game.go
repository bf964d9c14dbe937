package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/AdamHerman69/backranq-sub002/internal/board"
	"github.com/AdamHerman69/backranq-sub002/internal/core"
	"github.com/AdamHerman69/backranq-sub002/internal/metrics"
	"github.com/AdamHerman69/backranq-sub002/internal/opening"
	"github.com/AdamHerman69/backranq-sub002/internal/pgn"
	"github.com/AdamHerman69/backranq-sub002/internal/storage"

	"github.com/google/uuid"
)

// ImportGame validates and stores a completed game. Positions are
// derived once at import through the engine, so analysis runs never
// replay the moves again.
func (s *Service) ImportGame(ctx context.Context, userID string, req core.ImportGameRequest) (*core.GameResponse, error) {
	if s.pool == nil {
		return nil, ErrEngineUnavailable
	}

	for i, move := range req.Moves {
		if !board.IsValidUCI(move) {
			return nil, fmt.Errorf("%w: %q at ply %d", ErrInvalidMove, move, i)
		}
	}

	initialFEN := req.InitialFEN
	if initialFEN == "" {
		initialFEN = board.StartingFEN
	}
	if _, err := board.ParseFEN(initialFEN); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFEN, err)
	}

	// Opening attribution: PGN headers are trusted verbatim when present,
	// otherwise guessed from the SAN movetext.
	op := core.OpeningInfo{Source: core.OpeningSourceUnknown}
	if req.PGN != "" {
		parsed, err := pgn.Parse(req.PGN)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidPGN, err)
		}
		op = opening.Classify(parsed.Tags, parsed.Moves)
	}

	fens, err := s.pool.DeriveFENs(initialFEN, req.Moves)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMove, err)
	}

	movesJSON, err := json.Marshal(req.Moves)
	if err != nil {
		return nil, fmt.Errorf("failed to encode moves: %w", err)
	}
	fensJSON, err := json.Marshal(fens)
	if err != nil {
		return nil, fmt.Errorf("failed to encode positions: %w", err)
	}

	record := storage.GameRecord{
		GameID:           uuid.New().String(),
		UserID:           userID,
		PGN:              req.PGN,
		MovesJSON:        string(movesJSON),
		FENsJSON:         string(fensJSON),
		OpeningECO:       op.ECO,
		OpeningName:      op.Name,
		OpeningVariation: op.Variation,
		OpeningSource:    string(op.Source),
		ImportedAt:       time.Now().UTC(),
	}

	if err := s.store.CreateGame(record); err != nil {
		return nil, fmt.Errorf("failed to store game: %w", err)
	}

	metrics.GamesImported.Inc()

	return &core.GameResponse{
		GameID:     record.GameID,
		MoveCount:  len(req.Moves),
		Opening:    op,
		ImportedAt: record.ImportedAt,
	}, nil
}

// GetGame retrieves one of the user's games.
func (s *Service) GetGame(userID, gameID string) (*core.GameResponse, error) {
	record, err := s.ownedGame(userID, gameID)
	if err != nil {
		return nil, err
	}
	resp := gameResponse(record)
	return &resp, nil
}

// ListGames retrieves the user's games, most recent first.
func (s *Service) ListGames(userID string) ([]core.GameResponse, error) {
	records, err := s.store.QueryGames(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query games: %w", err)
	}

	games := make([]core.GameResponse, 0, len(records))
	for i := range records {
		games = append(games, gameResponse(&records[i]))
	}
	return games, nil
}

// DeleteGame removes a game and, through cascades, its puzzles.
func (s *Service) DeleteGame(userID, gameID string) error {
	unlock := s.lockGame(userID, gameID)
	defer unlock()

	if err := s.store.DeleteGame(gameID, userID); err != nil {
		return ErrGameNotFound
	}
	return nil
}

// ownedGame loads a game and hides other users' games behind not-found.
func (s *Service) ownedGame(userID, gameID string) (*storage.GameRecord, error) {
	record, err := s.store.GetGame(gameID)
	if err != nil || record.UserID != userID {
		return nil, ErrGameNotFound
	}
	return record, nil
}

func gameResponse(record *storage.GameRecord) core.GameResponse {
	var moves []string
	json.Unmarshal([]byte(record.MovesJSON), &moves)

	return core.GameResponse{
		GameID:    record.GameID,
		MoveCount: len(moves),
		Opening: core.OpeningInfo{
			ECO:       record.OpeningECO,
			Name:      record.OpeningName,
			Variation: record.OpeningVariation,
			Source:    core.OpeningSource(record.OpeningSource),
		},
		ImportedAt: record.ImportedAt,
	}
}
