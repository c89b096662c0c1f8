package game

import (
	"fmt"
	"time"
)

// ModePolicy is the pluggable ruleset consulted by the rules engine and
// the state machine. CaptureOverride returning non-nil short-circuits
// standard validation (restricted modes); returning nil defers to it.
type ModePolicy interface {
	Name() string
	TargetScore() int
	HandSize() int
	BoardSize() int
	Scoring() ScoringTable
	CaptureOverride(base Card, area []Card, slot ComboSlot) *AreaResult

	// RoundTimer returns the per-round time limit, or 0 for untimed play.
	// On expiry the round is forcibly resolved as if all hands emptied.
	RoundTimer() time.Duration
}

// Restriction narrows which capture types a mode allows.
type Restriction int

const (
	RestrictNone Restriction = iota
	RestrictPairsOnly
	RestrictSumsOnly
)

func (r Restriction) String() string {
	switch r {
	case RestrictPairsOnly:
		return "pairs-only"
	case RestrictSumsOnly:
		return "sums-only"
	default:
		return ""
	}
}

// configMode is a ModePolicy built from a config entry (or a built-in
// preset). All modes share this implementation: the differences are data.
type configMode struct {
	name        string
	targetScore int
	handSize    int
	boardSize   int
	scoring     ScoringTable
	restrict    Restriction
	roundTimer  time.Duration
}

func (m *configMode) Name() string          { return m.name }
func (m *configMode) TargetScore() int      { return m.targetScore }
func (m *configMode) HandSize() int         { return m.handSize }
func (m *configMode) BoardSize() int        { return m.boardSize }
func (m *configMode) Scoring() ScoringTable { return m.scoring }
func (m *configMode) RoundTimer() time.Duration {
	return m.roundTimer
}

func (m *configMode) CaptureOverride(base Card, area []Card, slot ComboSlot) *AreaResult {
	switch m.restrict {
	case RestrictPairsOnly:
		for _, c := range area {
			if c.Rank != base.Rank {
				return &AreaResult{
					Slot:   slot,
					Valid:  false,
					Detail: fmt.Sprintf("%s mode allows pair captures only", m.name),
				}
			}
		}
		return &AreaResult{Slot: slot, Valid: true, Type: CapturePair}
	case RestrictSumsOnly:
		r := validateAreaStandard(base, area, slot)
		if r.Valid && r.Type == CapturePair {
			return &AreaResult{
				Slot:   slot,
				Valid:  false,
				Detail: fmt.Sprintf("%s mode allows sum captures only", m.name),
			}
		}
		return &r
	default:
		return nil // defer to standard validation
	}
}

// ClassicMode is the default ruleset: first to 500, untimed, no
// restrictions.
func ClassicMode() ModePolicy {
	return &configMode{
		name:        "classic",
		targetScore: 500,
		handSize:    4,
		boardSize:   4,
		scoring:     DefaultScoring(),
	}
}

// SpeedMode halves the target and puts each round on a 30-second clock.
func SpeedMode() ModePolicy {
	return &configMode{
		name:        "speed",
		targetScore: 250,
		handSize:    4,
		boardSize:   4,
		scoring:     DefaultScoring(),
		roundTimer:  30 * time.Second,
	}
}

// PairsDrillMode restricts captures to pairs, the progressive-mode
// teaching restriction.
func PairsDrillMode() ModePolicy {
	return &configMode{
		name:        "pairs-drill",
		targetScore: 200,
		handSize:    4,
		boardSize:   4,
		scoring:     DefaultScoring(),
		restrict:    RestrictPairsOnly,
	}
}

// BuiltinModes returns the shipped presets keyed by name.
func BuiltinModes() map[string]ModePolicy {
	modes := make(map[string]ModePolicy)
	for _, m := range []ModePolicy{ClassicMode(), SpeedMode(), PairsDrillMode()} {
		modes[m.Name()] = m
	}
	return modes
}
