// Package pgn parses the subset of PGN this service needs: the header
// tag section and the movetext as a flat SAN token stream. Variations,
// comments and NAG annotations are stripped, not interpreted.
package pgn

import (
	"fmt"
	"regexp"
	"strings"
)

var tagPattern = regexp.MustCompile(`\[\s*(\w+)\s+"((?:[^"\\]|\\.)*)"\s*\]`)

// Game is the parsed form of one PGN game.
type Game struct {
	Tags  map[string]string
	Moves []string // SAN, in played order, without move numbers or results
}

// Tag returns the value for a header tag, empty string if absent.
func (g *Game) Tag(name string) string {
	return g.Tags[name]
}

// Parse splits a PGN string into header tags and SAN moves. An empty
// input yields an empty game, not an error; malformed movetext tokens
// are rejected.
func Parse(text string) (*Game, error) {
	g := &Game{Tags: make(map[string]string)}

	headerEnd := 0
	for _, m := range tagPattern.FindAllStringSubmatchIndex(text, -1) {
		name := text[m[2]:m[3]]
		value := strings.ReplaceAll(text[m[4]:m[5]], `\"`, `"`)
		g.Tags[name] = value
		if m[1] > headerEnd {
			headerEnd = m[1]
		}
	}

	movetext := text[headerEnd:]
	moves, err := parseMovetext(movetext)
	if err != nil {
		return nil, err
	}
	g.Moves = moves

	return g, nil
}

var (
	commentPattern   = regexp.MustCompile(`\{[^}]*\}`)
	lineCommentRegex = regexp.MustCompile(`(?m);.*$`)
	moveNumberRegex  = regexp.MustCompile(`^\d+\.*$`)
	sanPattern       = regexp.MustCompile(`^(?:O-O-O|O-O|[KQRBN]?[a-h]?[1-8]?x?[a-h][1-8](?:=[QRBN])?|[a-h][1-8])[+#]?$`)
)

func parseMovetext(movetext string) ([]string, error) {
	movetext = commentPattern.ReplaceAllString(movetext, " ")
	movetext = lineCommentRegex.ReplaceAllString(movetext, " ")
	movetext = stripVariations(movetext)

	var moves []string
	for _, token := range strings.Fields(movetext) {
		switch {
		case token == "1-0" || token == "0-1" || token == "1/2-1/2" || token == "*":
			continue
		case strings.HasPrefix(token, "$"):
			continue
		case moveNumberRegex.MatchString(token):
			continue
		}

		// Split glued move numbers like "12.Nf3"
		if idx := strings.LastIndex(token, "."); idx != -1 && idx < len(token)-1 {
			prefix := token[:idx+1]
			if moveNumberRegex.MatchString(prefix) {
				token = token[idx+1:]
			}
		}

		if !sanPattern.MatchString(token) {
			return nil, fmt.Errorf("invalid SAN token: %q", token)
		}
		moves = append(moves, token)
	}
	return moves, nil
}

// stripVariations removes parenthesized recursive variations.
func stripVariations(s string) string {
	var sb strings.Builder
	depth := 0
	for _, r := range s {
		switch r {
		case '(':
			depth++
		case ')':
			if depth > 0 {
				depth--
			}
		default:
			if depth == 0 {
				sb.WriteRune(r)
			} else {
				continue
			}
			continue
		}
		sb.WriteRune(' ')
	}
	return sb.String()
}

// NormalizeSAN strips check and mate suffixes for move-for-move
// comparison against opening book entries.
func NormalizeSAN(san string) string {
	return strings.TrimRight(san, "+#")
}
