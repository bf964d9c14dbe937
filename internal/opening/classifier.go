// Package opening attributes ECO code, name and variation to a game,
// either from explicit PGN headers or by longest-prefix match against
// the built-in book.
package opening

import (
	"github.com/AdamHerman69/backranq-sub002/internal/core"
	"github.com/AdamHerman69/backranq-sub002/internal/pgn"
)

// Classify runs the two-stage attribution: explicit PGN header tags are
// trusted verbatim when any is present; otherwise the SAN move list is
// matched against the book. No match yields source=unknown with all
// fields absent.
func Classify(tags map[string]string, sanMoves []string) core.OpeningInfo {
	if info, ok := fromHeaders(tags); ok {
		return info
	}
	return FromMoves(sanMoves)
}

func fromHeaders(tags map[string]string) (core.OpeningInfo, bool) {
	if tags == nil {
		return core.OpeningInfo{}, false
	}
	eco := tags["ECO"]
	name := tags["Opening"]
	variation := tags["Variation"]
	if eco == "" && name == "" && variation == "" {
		return core.OpeningInfo{}, false
	}
	return core.OpeningInfo{
		ECO:       eco,
		Name:      name,
		Variation: variation,
		Source:    core.OpeningSourcePGN,
	}, true
}

// FromMoves finds the longest book entry whose moves are a prefix of
// the game's moves. Ties on length are broken by book declaration
// order. Check and mate suffixes are ignored for comparison.
func FromMoves(sanMoves []string) core.OpeningInfo {
	normalized := make([]string, len(sanMoves))
	for i, m := range sanMoves {
		normalized[i] = pgn.NormalizeSAN(m)
	}

	var best *BookEntry
	for i := range Book {
		entry := &Book[i]
		if !isPrefix(entry.Moves, normalized) {
			continue
		}
		if best == nil || len(entry.Moves) > len(best.Moves) {
			best = entry
		}
	}

	if best == nil {
		return core.OpeningInfo{Source: core.OpeningSourceUnknown}
	}
	return core.OpeningInfo{
		ECO:       best.ECO,
		Name:      best.Name,
		Variation: best.Variation,
		Source:    core.OpeningSourceGuess,
	}
}

func isPrefix(entry, game []string) bool {
	if len(entry) > len(game) {
		return false
	}
	for i, m := range entry {
		if pgn.NormalizeSAN(m) != game[i] {
			return false
		}
	}
	return true
}
