package game

import (
	"fmt"
	"sort"
	"strings"
)

// CaptureOption is one rules-valid capture found by search: a base card
// from the hand plus one or more disjoint board-card areas. Options are
// built so the normal submission path will accept them, but the rules
// engine remains the sole arbiter: every option is re-validated on
// submission.
type CaptureOption struct {
	Base   Card
	Areas  map[ComboSlot][]Card
	Cards  []Card // base + all area cards
	Points int
}

// Move converts the option into a submittable Move.
func (o CaptureOption) Move() Move {
	areas := make(map[ComboSlot][]CardID, len(o.Areas))
	var parts []string
	for _, slot := range AreaSlots {
		cards := o.Areas[slot]
		if len(cards) == 0 {
			continue
		}
		ids := make([]CardID, len(cards))
		labels := make([]string, len(cards))
		for i, c := range cards {
			ids[i] = c.ID
			labels[i] = c.String()
		}
		areas[slot] = ids
		parts = append(parts, strings.Join(labels, "+"))
	}
	return Move{
		Type:  MoveCapture,
		Base:  o.Base.ID,
		Areas: areas,
		Desc:  fmt.Sprintf("Capture %s with %s (+%d pts)", strings.Join(parts, ", "), o.Base, o.Points),
	}
}

// signature is a canonical key for deduplicating options.
func (o CaptureOption) signature() string {
	ids := make([]string, len(o.Cards))
	for i, c := range o.Cards {
		ids[i] = string(c.ID)
	}
	sort.Strings(ids)
	return string(o.Base.ID) + "|" + strings.Join(ids, ",")
}

// FindCaptures enumerates the rules-valid captures available to a hand
// against the current board: for each hand card as base, the full set of
// rank matches, every sum grouping of up to three board cards, and the
// maximal combination of pair area plus disjoint sum areas. Results are
// sorted by points, highest first.
func FindCaptures(hand, board []Card, mode ModePolicy) []CaptureOption {
	var options []CaptureOption
	seen := make(map[string]bool)
	add := func(o CaptureOption) {
		sig := o.signature()
		if !seen[sig] {
			seen[sig] = true
			options = append(options, o)
		}
	}

	for _, base := range hand {
		// Rank matches: taking every matching board card is strictly
		// better than a subset, so only the full set is proposed.
		var pairCards []Card
		for _, c := range board {
			if c.Rank == base.Rank {
				pairCards = append(pairCards, c)
			}
		}
		if len(pairCards) > 0 && !ValidateArea(mode, base, pairCards, SlotMatch).Valid {
			pairCards = nil
		}

		sumGroups := sumSubsets(base, board, mode)

		if len(pairCards) > 0 {
			add(buildOption(mode, base, pairCards, nil))
		}
		for _, g := range sumGroups {
			add(buildOption(mode, base, nil, [][]Card{g}))
		}

		// Maximal combined option: pair area plus a greedy disjoint
		// packing of sum groups into the three sum slots. Groups that
		// touch the pair cards are skipped: a card captures once.
		packed := packDisjoint(sumGroups, mode, 3, pairCards)
		if len(packed) > 0 || len(pairCards) > 0 {
			if len(packed)+boolToInt(len(pairCards) > 0) > 1 {
				add(buildOption(mode, base, pairCards, packed))
			}
		}
	}

	sort.SliceStable(options, func(i, j int) bool {
		return options[i].Points > options[j].Points
	})
	return options
}

// Hint returns the highest-scoring capture available, or nil when the
// only legal move is a place. This is the single hint facility used by
// every surface.
func Hint(hand, board []Card, mode ModePolicy) *CaptureOption {
	options := FindCaptures(hand, board, mode)
	if len(options) == 0 {
		return nil
	}
	return &options[0]
}

// LegalMoves enumerates every move the player can submit: all found
// captures plus a place for each hand card.
func LegalMoves(s *GameSession, player int) []Move {
	hand := s.Hand(player)
	board := s.Board()

	var moves []Move
	for _, o := range FindCaptures(hand, board, s.Mode()) {
		moves = append(moves, o.Move())
	}
	for _, c := range hand {
		moves = append(moves, Move{
			Type: MovePlace,
			Card: c.ID,
			Desc: fmt.Sprintf("Place %s", c),
		})
	}
	return moves
}

// sumSubsets returns every grouping of one to three board cards whose sum
// values total the base value. Face bases have no sum captures.
func sumSubsets(base Card, board []Card, mode ModePolicy) [][]Card {
	target, ok := base.Rank.SumValue()
	if !ok {
		return nil
	}
	var numeric []Card
	for _, c := range board {
		if _, ok := c.Rank.SumValue(); ok {
			numeric = append(numeric, c)
		}
	}

	var groups [][]Card
	n := len(numeric)
	try := func(cards []Card) {
		sum := 0
		for _, c := range cards {
			v, _ := c.Rank.SumValue()
			sum += v
		}
		if sum == target && ValidateArea(mode, base, cards, SlotSum1).Valid {
			groups = append(groups, append([]Card(nil), cards...))
		}
	}
	for i := 0; i < n; i++ {
		try([]Card{numeric[i]})
		for j := i + 1; j < n; j++ {
			try([]Card{numeric[i], numeric[j]})
			for k := j + 1; k < n; k++ {
				try([]Card{numeric[i], numeric[j], numeric[k]})
			}
		}
	}
	return groups
}

// packDisjoint greedily selects up to max card-disjoint groups, highest
// point value first. Cards in taken are off limits.
func packDisjoint(groups [][]Card, mode ModePolicy, max int, taken []Card) [][]Card {
	scoring := mode.Scoring()
	ordered := append([][]Card(nil), groups...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return scoring.TotalPoints(ordered[i]) > scoring.TotalPoints(ordered[j])
	})

	used := make(map[CardID]bool)
	for _, c := range taken {
		used[c.ID] = true
	}
	var packed [][]Card
	for _, g := range ordered {
		if len(packed) == max {
			break
		}
		overlap := false
		for _, c := range g {
			if used[c.ID] {
				overlap = true
				break
			}
		}
		if overlap {
			continue
		}
		for _, c := range g {
			used[c.ID] = true
		}
		packed = append(packed, g)
	}
	return packed
}

func buildOption(mode ModePolicy, base Card, pairCards []Card, sumGroups [][]Card) CaptureOption {
	o := CaptureOption{
		Base:  base,
		Areas: make(map[ComboSlot][]Card),
		Cards: []Card{base},
	}
	if len(pairCards) > 0 {
		o.Areas[SlotMatch] = pairCards
		o.Cards = append(o.Cards, pairCards...)
	}
	sumSlots := [...]ComboSlot{SlotSum1, SlotSum2, SlotSum3}
	for i, g := range sumGroups {
		if i >= len(sumSlots) {
			break
		}
		o.Areas[sumSlots[i]] = g
		o.Cards = append(o.Cards, g...)
	}
	o.Points = mode.Scoring().TotalPoints(o.Cards)
	return o
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
