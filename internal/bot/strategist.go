package bot

import (
	"sort"

	"github.com/toocheesy/stacked/internal/game"
)

// stance is the strategist's current posture, derived from the score gap
// against the leading opponent.
type stance int

const (
	stanceBalanced stance = iota
	stanceAggressive
	stanceConservative
)

// weights tune how the strategist values the components of a move.
type weights struct {
	capture float64 // immediate points taken
	denial  float64 // points left exposed on the board afterward
	chain   float64 // best follow-up capture from the remaining hand
	clear   float64 // bonus for sweeping the board empty
}

func (s stance) weights() weights {
	switch s {
	case stanceAggressive:
		return weights{capture: 1.5, denial: 0.2, chain: 0.6, clear: 3}
	case stanceConservative:
		return weights{capture: 1.0, denial: 0.8, chain: 0.3, clear: 8}
	default:
		return weights{capture: 1.0, denial: 0.5, chain: 0.4, clear: 5}
	}
}

// Strategist weighs captures against what they leave behind. It tracks
// which ranks are still unseen to estimate how dangerous a board is, and
// shifts posture with the scoreline: when far behind it chases points,
// when ahead it denies them.
type Strategist struct{}

// NewStrategist returns a risk-aware personality.
func NewStrategist() Strategist { return Strategist{} }

func (Strategist) Name() string { return "strategist" }

func (st Strategist) Decide(hand, board []game.Card, ctx Context) game.Move {
	w := st.stance(ctx).weights()

	options := game.FindCaptures(hand, board, ctx.Mode)
	if len(options) == 0 {
		return placeMove(st.safestPlace(hand, board, ctx))
	}

	best := 0
	bestVal := st.evaluate(options[0], hand, board, ctx, w)
	for i := 1; i < len(options); i++ {
		if v := st.evaluate(options[i], hand, board, ctx, w); v > bestVal {
			best, bestVal = i, v
		}
	}
	return options[best].Move()
}

// stance compares our overall score with the best opponent's.
func (Strategist) stance(ctx Context) stance {
	if len(ctx.Scores) == 0 {
		return stanceBalanced
	}
	mine := ctx.Scores[ctx.Player].Overall
	lead := mine
	for p, s := range ctx.Scores {
		if p != ctx.Player && s.Overall > lead {
			lead = s.Overall
		}
	}
	gap := mine - lead
	switch {
	case gap <= -50:
		return stanceAggressive
	case gap >= 50:
		return stanceConservative
	default:
		return stanceBalanced
	}
}

func (st Strategist) evaluate(o game.CaptureOption, hand, board []game.Card, ctx Context, w weights) float64 {
	after := boardAfter(board, o)
	rest := handWithout(hand, o.Base.ID)

	val := w.capture * float64(o.Points)
	val -= w.denial * st.exposure(after, ctx)
	if follow := game.Hint(rest, after, ctx.Mode); follow != nil {
		val += w.chain * float64(follow.Points)
	}
	if len(after) == 0 {
		val += w.clear
	}
	return val
}

// exposure estimates the points an opponent could take from a board:
// the best capture any single unseen-rank card could make against it,
// scaled by how many copies of that rank are still out there.
func (st Strategist) exposure(board []game.Card, ctx Context) float64 {
	if len(board) == 0 {
		return 0
	}
	worst := 0.0
	for _, probe := range probeCards(ctx.Seen) {
		opt := game.Hint([]game.Card{probe}, board, ctx.Mode)
		if opt == nil {
			continue
		}
		frac := float64(unseenCopies(probe.Rank, ctx.Seen)) / 4
		if v := float64(opt.Points) * frac; v > worst {
			worst = v
		}
	}
	return worst
}

// safestPlace picks the hand card whose placement exposes the least to
// whoever moves next, preferring to hold high-point cards on ties.
func (st Strategist) safestPlace(hand, board []game.Card, ctx Context) game.Card {
	scoring := ctx.Mode.Scoring()
	sorted := make([]game.Card, len(hand))
	copy(sorted, hand)
	sort.SliceStable(sorted, func(i, j int) bool {
		ri := st.exposure(append(append([]game.Card{}, board...), sorted[i]), ctx)
		rj := st.exposure(append(append([]game.Card{}, board...), sorted[j]), ctx)
		if ri != rj {
			return ri < rj
		}
		pi, pj := scoring.CardPoints(sorted[i]), scoring.CardPoints(sorted[j])
		if pi != pj {
			return pi < pj
		}
		return sorted[i].Rank < sorted[j].Rank
	})
	return sorted[0]
}

// probeCards returns one representative card per rank with unseen copies,
// used as a hypothetical opponent base. Suit never matters to capture
// rules, so one card per rank is enough.
func probeCards(seen map[game.Rank]int) []game.Card {
	var probes []game.Card
	had := make(map[game.Rank]bool)
	for _, c := range game.AllCards() {
		if had[c.Rank] || unseenCopies(c.Rank, seen) == 0 {
			continue
		}
		had[c.Rank] = true
		probes = append(probes, c)
	}
	return probes
}

func unseenCopies(r game.Rank, seen map[game.Rank]int) int {
	n := 4 - seen[r]
	if n < 0 {
		return 0
	}
	return n
}

func boardAfter(board []game.Card, o game.CaptureOption) []game.Card {
	taken := make(map[game.CardID]bool, len(o.Cards))
	for _, c := range o.Cards {
		taken[c.ID] = true
	}
	var after []game.Card
	for _, c := range board {
		if !taken[c.ID] {
			after = append(after, c)
		}
	}
	return after
}

func handWithout(hand []game.Card, id game.CardID) []game.Card {
	var rest []game.Card
	for _, c := range hand {
		if c.ID != id {
			rest = append(rest, c)
		}
	}
	return rest
}
