package game

import (
	"fmt"
	"strings"
)

// --- Scoring ---

// ScoringTable maps ranks to point values. Ranks absent from the table
// fall back to the table's default value.
type ScoringTable struct {
	Points  map[Rank]int
	Default int
}

// DefaultScoring is the standard table: A=15, K/Q/J/10=10, everything
// else 5.
func DefaultScoring() ScoringTable {
	return ScoringTable{
		Points: map[Rank]int{
			Ace:   15,
			King:  10,
			Queen: 10,
			Jack:  10,
			Ten:   10,
		},
		Default: 5,
	}
}

// CardPoints returns the point value of a single card.
func (t ScoringTable) CardPoints(c Card) int {
	if p, ok := t.Points[c.Rank]; ok {
		return p
	}
	return t.Default
}

// TotalPoints sums the point values of a set of cards.
func (t ScoringTable) TotalPoints(cards []Card) int {
	total := 0
	for _, c := range cards {
		total += t.CardPoints(c)
	}
	return total
}

// --- Validation results ---

type CaptureType int

const (
	CaptureNone CaptureType = iota
	CapturePair
	CaptureSum
)

func (t CaptureType) String() string {
	switch t {
	case CapturePair:
		return "pair"
	case CaptureSum:
		return "sum"
	default:
		return "none"
	}
}

// AreaResult is the per-area verdict. Invalid areas carry a coaching
// message describing which rank or arithmetic mismatch occurred.
type AreaResult struct {
	Slot   ComboSlot
	Valid  bool
	Type   CaptureType
	Detail string
}

// CaptureResult is the verdict for a full capture submission. Invalid
// combos are a normal, frequent, recoverable user interaction, so this is
// always returned as a value, never an error.
type CaptureResult struct {
	Valid  bool
	Detail string
	Areas  []AreaResult
	Cards  []Card // base + all valid areas' cards, in capture order
	Points int
}

// --- Area validation ---

// ValidateArea checks one capture area against the base card: pair first
// (every card matches the base rank), then sum (non-face cards whose values
// total the base value) when the base is not a face card. The mode's
// override is consulted first and short-circuits when non-nil.
func ValidateArea(mode ModePolicy, base Card, area []Card, slot ComboSlot) AreaResult {
	if r := mode.CaptureOverride(base, area, slot); r != nil {
		return *r
	}
	return validateAreaStandard(base, area, slot)
}

func validateAreaStandard(base Card, area []Card, slot ComboSlot) AreaResult {
	// Pair check: rank equality, independent of face/number status.
	pair := true
	for _, c := range area {
		if c.Rank != base.Rank {
			pair = false
			break
		}
	}
	if pair {
		return AreaResult{Slot: slot, Valid: true, Type: CapturePair}
	}

	// Sum check. Face cards cannot anchor sum captures.
	if base.Rank.IsFace() {
		return AreaResult{
			Slot:   slot,
			Valid:  false,
			Detail: fmt.Sprintf("%s is a face card: it can only capture by matching rank", base),
		}
	}
	baseValue, _ := base.Rank.SumValue()
	sum := 0
	for _, c := range area {
		v, ok := c.Rank.SumValue()
		if !ok {
			return AreaResult{
				Slot:   slot,
				Valid:  false,
				Detail: fmt.Sprintf("%s is a face card and cannot be part of a sum", c),
			}
		}
		sum += v
	}
	if sum != baseValue {
		return AreaResult{
			Slot:   slot,
			Valid:  false,
			Detail: fmt.Sprintf("cards total %d but the base %s needs %d", sum, base, baseValue),
		}
	}
	return AreaResult{Slot: slot, Valid: true, Type: CaptureSum}
}

// --- Full submission validation ---

// provenanceOf classifies a staged card's origin as hand or board.
type provenance struct {
	fromHand  bool
	fromBoard bool
}

// ValidateStagedCapture validates the combo slots currently staged in the
// ledger. The Base slot must hold exactly one card; zero or more than one
// is a caller error, not a rules failure. A submission succeeds when at
// least one populated area is valid; any populated invalid area rejects
// the whole submission (partial capture is not permitted).
func ValidateStagedCapture(led *Ledger, mode ModePolicy) (CaptureResult, error) {
	baseCards := led.Query(ComboLoc(SlotBase))
	if len(baseCards) != 1 {
		return CaptureResult{}, InvalidGameStateError{
			Reason: fmt.Sprintf("base slot holds %d cards, want exactly 1", len(baseCards)),
		}
	}
	base := baseCards[0]

	result := CaptureResult{Cards: []Card{base}}
	var invalidDetails []string
	anyValid := false

	for _, slot := range AreaSlots {
		area := led.Query(ComboLoc(slot))
		if len(area) == 0 {
			continue
		}

		// Provenance: the combined set must mix at least one hand card
		// with at least one board card, whatever the ranks say.
		prov := stagedProvenance(led, base, area)
		if !prov.fromHand || !prov.fromBoard {
			ar := AreaResult{
				Slot:   slot,
				Valid:  false,
				Detail: "a capture must combine at least one hand card with at least one board card",
			}
			result.Areas = append(result.Areas, ar)
			invalidDetails = append(invalidDetails, fmt.Sprintf("%s: %s", slot, ar.Detail))
			continue
		}

		ar := ValidateArea(mode, base, area, slot)
		result.Areas = append(result.Areas, ar)
		if ar.Valid {
			anyValid = true
			result.Cards = append(result.Cards, area...)
		} else {
			invalidDetails = append(invalidDetails, fmt.Sprintf("%s: %s", slot, ar.Detail))
		}
	}

	switch {
	case len(result.Areas) == 0:
		result.Valid = false
		result.Detail = "no capture areas have cards"
	case len(invalidDetails) > 0:
		// Fail-fast: one bad area aborts the whole submission so the
		// player can fix or remove it and retry.
		result.Valid = false
		result.Detail = strings.Join(invalidDetails, "; ")
	case !anyValid:
		result.Valid = false
		result.Detail = "no valid capture areas"
	default:
		result.Valid = true
		result.Points = mode.Scoring().TotalPoints(result.Cards)
	}
	return result, nil
}

func stagedProvenance(led *Ledger, base Card, area []Card) provenance {
	var prov provenance
	mark := func(id CardID) {
		orig, ok := led.ComboOrigin(id)
		if !ok {
			return
		}
		switch orig.Kind {
		case InHand:
			prov.fromHand = true
		case OnBoard:
			prov.fromBoard = true
		}
	}
	mark(base.ID)
	for _, c := range area {
		mark(c.ID)
	}
	return prov
}
