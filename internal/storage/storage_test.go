package storage

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := NewStore(filepath.Join(t.TempDir(), "test.db"), false)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	require.NoError(t, store.InitDB())
	require.True(t, store.IsHealthy())
	return store
}

func testGameRecord(gameID, userID string, importedAt time.Time) GameRecord {
	return GameRecord{
		GameID:        gameID,
		UserID:        userID,
		MovesJSON:     `["e2e4","g7g5","d1h5"]`,
		FENsJSON:      `["fen0","fen1","fen2","fen3"]`,
		OpeningECO:    "B00",
		OpeningName:   "King's Pawn Game",
		OpeningSource: "guess",
		ImportedAt:    importedAt,
	}
}

func testPuzzleRecord(puzzleID, gameID string, ply int, ptype string, severity int) PuzzleRecord {
	return PuzzleRecord{
		PuzzleID:     puzzleID,
		UserID:       "user-1",
		GameID:       gameID,
		SourcePly:    ply,
		FEN:          "rnbqkbnr/pppppp1p/8/6p1/4P3/8/PPPP1PPP/RNBQKBNR w KQkq g6 0 2",
		Type:         ptype,
		Severity:     &severity,
		BestMoveUci:  "d1h5",
		BestLineJSON: `["d1h5","g8f6"]`,
		TagsJSON:     `["kind:punishBlunder","blunder"]`,
		AltMovesJSON: `[]`,
		Label:        "Punish the blunder: decisive tactic",
		CreatedAt:    time.Now().UTC(),
	}
}

func TestGameRoundtrip(t *testing.T) {
	store := newTestStore(t)

	importedAt := time.Now().UTC()
	require.NoError(t, store.CreateGame(testGameRecord("game-1", "user-1", importedAt)))

	g, err := store.GetGame("game-1")
	require.NoError(t, err)
	require.Equal(t, "game-1", g.GameID)
	require.Equal(t, "user-1", g.UserID)
	require.Equal(t, `["e2e4","g7g5","d1h5"]`, g.MovesJSON)
	require.Equal(t, "B00", g.OpeningECO)
	require.Equal(t, "guess", g.OpeningSource)
	require.WithinDuration(t, importedAt, g.ImportedAt, time.Second)

	_, err = store.GetGame("missing")
	require.ErrorIs(t, err, sql.ErrNoRows)
}

func TestQueryGamesNewestFirst(t *testing.T) {
	store := newTestStore(t)

	now := time.Now().UTC()
	require.NoError(t, store.CreateGame(testGameRecord("game-old", "user-1", now.Add(-time.Hour))))
	require.NoError(t, store.CreateGame(testGameRecord("game-new", "user-1", now)))
	require.NoError(t, store.CreateGame(testGameRecord("game-other", "user-2", now)))

	games, err := store.QueryGames("user-1")
	require.NoError(t, err)
	require.Len(t, games, 2)
	require.Equal(t, "game-new", games[0].GameID)
	require.Equal(t, "game-old", games[1].GameID)
}

func TestReplacePuzzlesIdempotent(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.CreateGame(testGameRecord("game-1", "user-1", time.Now().UTC())))

	set := []PuzzleRecord{
		testPuzzleRecord("p1", "game-1", 4, "avoidBlunder", 2),
		testPuzzleRecord("p2", "game-1", 4, "punishBlunder", 2),
	}
	require.NoError(t, store.ReplacePuzzles("user-1", "game-1", set))

	count, err := store.CountPuzzles("user-1", "game-1")
	require.NoError(t, err)
	require.Equal(t, 2, count)

	// Replaying the same replace leaves exactly the same set
	require.NoError(t, store.ReplacePuzzles("user-1", "game-1", set))
	count, err = store.CountPuzzles("user-1", "game-1")
	require.NoError(t, err)
	require.Equal(t, 2, count)

	// A new run replaces the old set wholesale
	require.NoError(t, store.ReplacePuzzles("user-1", "game-1", []PuzzleRecord{
		testPuzzleRecord("p3", "game-1", 9, "avoidBlunder", 3),
	}))
	puzzles, err := store.QueryPuzzles("user-1", "game-1")
	require.NoError(t, err)
	require.Len(t, puzzles, 1)
	require.Equal(t, "p3", puzzles[0].PuzzleID)

	// An empty replace is a valid clear
	require.NoError(t, store.ReplacePuzzles("user-1", "game-1", nil))
	count, err = store.CountPuzzles("user-1", "game-1")
	require.NoError(t, err)
	require.Equal(t, 0, count)
}

func TestQueryPuzzlesOrdering(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.CreateGame(testGameRecord("game-1", "user-1", time.Now().UTC())))

	require.NoError(t, store.ReplacePuzzles("user-1", "game-1", []PuzzleRecord{
		testPuzzleRecord("p-late-blunder", "game-1", 30, "avoidBlunder", 2),
		testPuzzleRecord("p-mate", "game-1", 22, "punishBlunder", 3),
		testPuzzleRecord("p-early-blunder", "game-1", 10, "avoidBlunder", 2),
		testPuzzleRecord("p-tactic", "game-1", 5, "avoidBlunder", 1),
	}))

	puzzles, err := store.QueryPuzzles("user-1", "game-1")
	require.NoError(t, err)
	require.Len(t, puzzles, 4)
	require.Equal(t, "p-mate", puzzles[0].PuzzleID)
	require.Equal(t, "p-early-blunder", puzzles[1].PuzzleID)
	require.Equal(t, "p-late-blunder", puzzles[2].PuzzleID)
	require.Equal(t, "p-tactic", puzzles[3].PuzzleID)
}

func TestGetPuzzle(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.CreateGame(testGameRecord("game-1", "user-1", time.Now().UTC())))
	require.NoError(t, store.ReplacePuzzles("user-1", "game-1", []PuzzleRecord{
		testPuzzleRecord("p1", "game-1", 4, "punishBlunder", 2),
	}))

	p, err := store.GetPuzzle("p1")
	require.NoError(t, err)
	require.Equal(t, "p1", p.PuzzleID)
	require.Equal(t, "punishBlunder", p.Type)
	require.NotNil(t, p.Severity)
	require.Equal(t, 2, *p.Severity)
	require.Equal(t, `["d1h5","g8f6"]`, p.BestLineJSON)

	_, err = store.GetPuzzle("missing")
	require.ErrorIs(t, err, sql.ErrNoRows)
}

func TestDeleteGameCascades(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.CreateGame(testGameRecord("game-1", "user-1", time.Now().UTC())))
	require.NoError(t, store.ReplacePuzzles("user-1", "game-1", []PuzzleRecord{
		testPuzzleRecord("p1", "game-1", 4, "avoidBlunder", 2),
	}))

	// Another user cannot delete the game
	require.ErrorIs(t, store.DeleteGame("game-1", "user-2"), sql.ErrNoRows)

	require.NoError(t, store.DeleteGame("game-1", "user-1"))

	_, err := store.GetGame("game-1")
	require.ErrorIs(t, err, sql.ErrNoRows)

	count, err := store.CountPuzzles("user-1", "game-1")
	require.NoError(t, err)
	require.Equal(t, 0, count, "puzzles must cascade with their game")

	require.ErrorIs(t, store.DeleteGame("game-1", "user-1"), sql.ErrNoRows)
}

func TestAttemptsNewestFirst(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.CreateGame(testGameRecord("game-1", "user-1", time.Now().UTC())))
	require.NoError(t, store.ReplacePuzzles("user-1", "game-1", []PuzzleRecord{
		testPuzzleRecord("p1", "game-1", 4, "avoidBlunder", 2),
	}))

	base := time.Now().UTC().Add(-time.Hour)
	spent := 4200
	records := []AttemptRecord{
		{PuzzleID: "p1", UserID: "user-1", MoveUci: "b1c3", WasCorrect: false, AttemptedAt: base},
		{PuzzleID: "p1", UserID: "user-1", MoveUci: "d1g4", WasCorrect: false, TimeSpentMs: &spent, AttemptedAt: base.Add(time.Minute)},
		{PuzzleID: "p1", UserID: "user-1", MoveUci: "d1h5", WasCorrect: true, AttemptedAt: base.Add(2 * time.Minute)},
	}
	for _, r := range records {
		id, err := store.InsertAttempt(r)
		require.NoError(t, err)
		require.Greater(t, id, int64(0))
	}

	attempts, err := store.QueryAttempts("p1", "user-1")
	require.NoError(t, err)
	require.Len(t, attempts, 3)
	require.Equal(t, "d1h5", attempts[0].MoveUci)
	require.True(t, attempts[0].WasCorrect)
	require.Equal(t, "d1g4", attempts[1].MoveUci)
	require.NotNil(t, attempts[1].TimeSpentMs)
	require.Equal(t, 4200, *attempts[1].TimeSpentMs)
	require.Equal(t, "b1c3", attempts[2].MoveUci)
	require.Nil(t, attempts[2].TimeSpentMs)

	// Another user's history is empty
	attempts, err = store.QueryAttempts("p1", "user-2")
	require.NoError(t, err)
	require.Empty(t, attempts)
}

func TestCreateUserUniqueness(t *testing.T) {
	store := newTestStore(t)

	user := UserRecord{
		UserID:       "user-1",
		Username:     "magnus",
		Email:        "magnus@example.com",
		PasswordHash: "hash",
		AccountType:  "permanent",
		CreatedAt:    time.Now().UTC(),
	}
	require.NoError(t, store.CreateUser(user))

	// Case-insensitive username collision
	dup := user
	dup.UserID = "user-2"
	dup.Username = "MAGNUS"
	dup.Email = "other@example.com"
	require.Error(t, store.CreateUser(dup))

	// Email collision
	dup.Username = "hikaru"
	dup.Email = "MAGNUS@example.com"
	require.Error(t, store.CreateUser(dup))

	got, err := store.GetUserByUsername("Magnus")
	require.NoError(t, err)
	require.Equal(t, "user-1", got.UserID)

	got, err = store.GetUserByEmail("magnus@example.com")
	require.NoError(t, err)
	require.Equal(t, "magnus", got.Username)

	_, err = store.GetUserByUsername("nobody")
	require.ErrorIs(t, err, sql.ErrNoRows)
}

func TestSessionReplace(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.CreateUser(UserRecord{
		UserID:       "user-1",
		Username:     "magnus",
		PasswordHash: "hash",
		AccountType:  "permanent",
		CreatedAt:    time.Now().UTC(),
	}))

	now := time.Now().UTC()
	require.NoError(t, store.CreateSession(SessionRecord{
		SessionID: "sess-1", UserID: "user-1", CreatedAt: now, ExpiresAt: now.Add(time.Hour),
	}))

	// A second login replaces the session instead of violating the
	// one-session-per-user constraint
	require.NoError(t, store.CreateSession(SessionRecord{
		SessionID: "sess-2", UserID: "user-1", CreatedAt: now, ExpiresAt: now.Add(time.Hour),
	}))

	require.NoError(t, store.DeleteSessionByUserID("user-1"))
}

func TestDeleteExpiredSessions(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.CreateUser(UserRecord{
		UserID:       "user-1",
		Username:     "magnus",
		PasswordHash: "hash",
		AccountType:  "permanent",
		CreatedAt:    time.Now().UTC(),
	}))

	now := time.Now().UTC()
	require.NoError(t, store.CreateSession(SessionRecord{
		SessionID: "sess-1", UserID: "user-1", CreatedAt: now.Add(-2 * time.Hour), ExpiresAt: now.Add(-time.Hour),
	}))

	deleted, err := store.DeleteExpiredSessions()
	require.NoError(t, err)
	require.Equal(t, int64(1), deleted)
}
