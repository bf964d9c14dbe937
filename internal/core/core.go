package core

type Color byte

const (
	ColorWhite Color = 'w'
	ColorBlack Color = 'b'
)

func (c Color) String() string {
	return string(c)
}

func OppositeColor(c Color) Color {
	if c == ColorWhite {
		return ColorBlack
	}
	return ColorWhite
}

// PuzzleType distinguishes the two framings a blunder can be trained from
type PuzzleType string

const (
	// PuzzleAvoidBlunder poses the position right before the blunder to the
	// side that played it: find the move that should have been played.
	PuzzleAvoidBlunder PuzzleType = "avoidBlunder"
	// PuzzlePunishBlunder poses the position right after the blunder to the
	// opponent: find the refutation.
	PuzzlePunishBlunder PuzzleType = "punishBlunder"
)

func (t PuzzleType) Valid() bool {
	return t == PuzzleAvoidBlunder || t == PuzzlePunishBlunder
}

// PuzzleMode selects which framings the extraction engine considers
type PuzzleMode string

const (
	ModeAvoidBlunder  PuzzleMode = "avoidBlunder"
	ModePunishBlunder PuzzleMode = "punishBlunder"
	ModeBoth          PuzzleMode = "both"
)

// Quality is the discrete label assigned to one played move
type Quality int

const (
	QualityUnclassified Quality = iota // evaluation missing for this ply
	QualityBest
	QualityGood
	QualityInaccuracy
	QualityMistake
	QualityBlunder
)

func (q Quality) String() string {
	switch q {
	case QualityBest:
		return "best"
	case QualityGood:
		return "good"
	case QualityInaccuracy:
		return "inaccuracy"
	case QualityMistake:
		return "mistake"
	case QualityBlunder:
		return "blunder"
	default:
		return "unclassified"
	}
}

// Severity bands for extracted puzzles, higher is more instructive
const (
	SeverityMissedTactic = 1
	SeverityBlunder      = 2
	SeverityMate         = 3
)

// OpeningSource records where an opening attribution came from
type OpeningSource string

const (
	OpeningSourcePGN     OpeningSource = "pgn"
	OpeningSourceGuess   OpeningSource = "guess"
	OpeningSourceUnknown OpeningSource = "unknown"
)

// OpeningInfo is attached once per game and inherited by its puzzles
type OpeningInfo struct {
	ECO       string        `json:"eco,omitempty"`
	Name      string        `json:"name,omitempty"`
	Variation string        `json:"variation,omitempty"`
	Source    OpeningSource `json:"source"`
}
