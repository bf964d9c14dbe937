package core

// Default thresholds applied when an AnalysisConfig field is left zero.
// Bound-type fields (eval band, uniqueness margin, confirmation pass,
// puzzle cap) stay disabled when absent instead of defaulting.
const (
	DefaultMovetimeMs          = 600
	DefaultMultiPV             = 2
	DefaultBlunderSwingCp      = 300
	DefaultMissedTacticSwingCp = 150
	DefaultInaccuracySwingCp   = 50
	DefaultGoodSwingCp         = 20
	DefaultMateClampCp         = 1500
	DefaultOpeningSkipPlies    = 8
	DefaultMinPvMoves          = 2
	DefaultMinNonKingPieces    = 3
	DefaultTacticalLookahead   = 2
)

// AnalysisConfig is the full threshold set for one extraction run.
// It is immutable once a run starts; callers hand a copy to the pipeline.
//
// Under Merge a zero field means "keep the base value", so a request
// cannot override MaxPuzzlesPerGame or OpeningSkipPlies back to zero
// with a literal 0. Both accept -1 as an explicit zero: no cap, no
// opening skip. Normalized folds the sentinel back to 0.
type AnalysisConfig struct {
	PuzzleMode        PuzzleMode `json:"puzzleMode,omitempty" koanf:"puzzle_mode"`
	MovetimeMs        int        `json:"movetimeMs,omitempty" koanf:"movetime_ms" validate:"omitempty,min=50,max=60000"`
	MultiPV           int        `json:"multiPv,omitempty" koanf:"multi_pv" validate:"omitempty,min=1,max=8"`
	MaxPuzzlesPerGame int        `json:"maxPuzzlesPerGame,omitempty" koanf:"max_puzzles_per_game" validate:"omitempty,min=-1,max=100"`

	BlunderSwingCp      int `json:"blunderSwingCp,omitempty" koanf:"blunder_swing_cp" validate:"omitempty,min=1"`
	MissedTacticSwingCp int `json:"missedTacticSwingCp,omitempty" koanf:"missed_tactic_swing_cp" validate:"omitempty,min=1"`
	InaccuracySwingCp   int `json:"inaccuracySwingCp,omitempty" koanf:"inaccuracy_swing_cp" validate:"omitempty,min=1"`
	GoodSwingCp         int `json:"goodSwingCp,omitempty" koanf:"good_swing_cp" validate:"omitempty,min=1"`
	MateClampCp         int `json:"mateClampCp,omitempty" koanf:"mate_clamp_cp" validate:"omitempty,min=100"`

	// Bound-type fields: nil/zero means the filter is disabled
	EvalBandMinCp      *int `json:"evalBandMinCp,omitempty" koanf:"eval_band_min_cp"`
	EvalBandMaxCp      *int `json:"evalBandMaxCp,omitempty" koanf:"eval_band_max_cp"`
	UniquenessMarginCp int  `json:"uniquenessMarginCp,omitempty" koanf:"uniqueness_margin_cp" validate:"omitempty,min=0"`
	ConfirmMovetimeMs  int  `json:"confirmMovetimeMs,omitempty" koanf:"confirm_movetime_ms" validate:"omitempty,min=0,max=60000"`

	RequireTactical        bool `json:"requireTactical,omitempty" koanf:"require_tactical"`
	SkipTrivialEndgames    bool `json:"skipTrivialEndgames,omitempty" koanf:"skip_trivial_endgames"`
	OpeningSkipPlies       int  `json:"openingSkipPlies,omitempty" koanf:"opening_skip_plies" validate:"omitempty,min=-1,max=60"`
	MinPvMoves             int  `json:"minPvMoves,omitempty" koanf:"min_pv_moves" validate:"omitempty,min=1,max=20"`
	MinNonKingPieces       int  `json:"minNonKingPieces,omitempty" koanf:"min_non_king_pieces" validate:"omitempty,min=0,max=30"`
	TacticalLookaheadPlies int  `json:"tacticalLookaheadPlies,omitempty" koanf:"tactical_lookahead_plies" validate:"omitempty,min=1,max=10"`
}

// Normalized returns a copy with every threshold-type zero field replaced
// by its documented default. Bound-type fields are left as-is; the -1
// sentinels collapse to their explicit zero.
func (c AnalysisConfig) Normalized() AnalysisConfig {
	if c.PuzzleMode == "" {
		c.PuzzleMode = ModeBoth
	}
	if c.MovetimeMs == 0 {
		c.MovetimeMs = DefaultMovetimeMs
	}
	if c.MultiPV == 0 {
		c.MultiPV = DefaultMultiPV
	}
	if c.BlunderSwingCp == 0 {
		c.BlunderSwingCp = DefaultBlunderSwingCp
	}
	if c.MissedTacticSwingCp == 0 {
		c.MissedTacticSwingCp = DefaultMissedTacticSwingCp
	}
	if c.InaccuracySwingCp == 0 {
		c.InaccuracySwingCp = DefaultInaccuracySwingCp
	}
	if c.GoodSwingCp == 0 {
		c.GoodSwingCp = DefaultGoodSwingCp
	}
	if c.MateClampCp == 0 {
		c.MateClampCp = DefaultMateClampCp
	}
	if c.OpeningSkipPlies == 0 {
		c.OpeningSkipPlies = DefaultOpeningSkipPlies
	} else if c.OpeningSkipPlies < 0 {
		c.OpeningSkipPlies = 0
	}
	if c.MaxPuzzlesPerGame < 0 {
		c.MaxPuzzlesPerGame = 0
	}
	if c.MinPvMoves == 0 {
		c.MinPvMoves = DefaultMinPvMoves
	}
	if c.MinNonKingPieces == 0 {
		c.MinNonKingPieces = DefaultMinNonKingPieces
	}
	if c.TacticalLookaheadPlies == 0 {
		c.TacticalLookaheadPlies = DefaultTacticalLookahead
	}
	return c
}

// Merge overlays the non-zero fields of override onto c.
func (c AnalysisConfig) Merge(override AnalysisConfig) AnalysisConfig {
	if override.PuzzleMode != "" {
		c.PuzzleMode = override.PuzzleMode
	}
	if override.MovetimeMs != 0 {
		c.MovetimeMs = override.MovetimeMs
	}
	if override.MultiPV != 0 {
		c.MultiPV = override.MultiPV
	}
	if override.MaxPuzzlesPerGame != 0 {
		c.MaxPuzzlesPerGame = override.MaxPuzzlesPerGame
	}
	if override.BlunderSwingCp != 0 {
		c.BlunderSwingCp = override.BlunderSwingCp
	}
	if override.MissedTacticSwingCp != 0 {
		c.MissedTacticSwingCp = override.MissedTacticSwingCp
	}
	if override.InaccuracySwingCp != 0 {
		c.InaccuracySwingCp = override.InaccuracySwingCp
	}
	if override.GoodSwingCp != 0 {
		c.GoodSwingCp = override.GoodSwingCp
	}
	if override.MateClampCp != 0 {
		c.MateClampCp = override.MateClampCp
	}
	if override.EvalBandMinCp != nil {
		c.EvalBandMinCp = override.EvalBandMinCp
	}
	if override.EvalBandMaxCp != nil {
		c.EvalBandMaxCp = override.EvalBandMaxCp
	}
	if override.UniquenessMarginCp != 0 {
		c.UniquenessMarginCp = override.UniquenessMarginCp
	}
	if override.ConfirmMovetimeMs != 0 {
		c.ConfirmMovetimeMs = override.ConfirmMovetimeMs
	}
	if override.RequireTactical {
		c.RequireTactical = true
	}
	if override.SkipTrivialEndgames {
		c.SkipTrivialEndgames = true
	}
	if override.OpeningSkipPlies != 0 {
		c.OpeningSkipPlies = override.OpeningSkipPlies
	}
	if override.MinPvMoves != 0 {
		c.MinPvMoves = override.MinPvMoves
	}
	if override.MinNonKingPieces != 0 {
		c.MinNonKingPieces = override.MinNonKingPieces
	}
	if override.TacticalLookaheadPlies != 0 {
		c.TacticalLookaheadPlies = override.TacticalLookaheadPlies
	}
	return c
}
