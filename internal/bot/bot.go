// Package bot implements the computer opponents: pluggable personalities
// that pick a move from a hand and board snapshot, plus a controller that
// adapts a personality to the match loop.
package bot

import (
	"fmt"
	"sort"

	"github.com/toocheesy/stacked/internal/game"
)

// Context carries the public information a personality may consult beyond
// its own hand and the board. Seen counts copies of each rank observed
// face-up so far this round; it never includes opponents' hidden cards.
type Context struct {
	Player    int
	Scores    []game.Score
	DeckCount int
	Seen      map[game.Rank]int
	Mode      game.ModePolicy
}

// Personality decides moves. Implementations must be pure functions of
// their inputs so the same situation always yields the same move.
type Personality interface {
	Name() string
	Decide(hand, board []game.Card, ctx Context) game.Move
}

// ByName returns a fresh personality by its registered name.
func ByName(name string) (Personality, error) {
	switch name {
	case "greedy":
		return Greedy{}, nil
	case "strategist":
		return NewStrategist(), nil
	default:
		return nil, fmt.Errorf("unknown personality %q", name)
	}
}

// Names lists the available personality names.
func Names() []string {
	return []string{"greedy", "strategist"}
}

// placeMove builds a place move for a card.
func placeMove(c game.Card) game.Move {
	return game.Move{
		Type: game.MovePlace,
		Card: c.ID,
		Desc: fmt.Sprintf("Place %s", c),
	}
}

// cheapestCard returns the hand card worth the fewest points, breaking
// ties by lower rank. The hand must be non-empty.
func cheapestCard(hand []game.Card, scoring game.ScoringTable) game.Card {
	sorted := make([]game.Card, len(hand))
	copy(sorted, hand)
	sort.SliceStable(sorted, func(i, j int) bool {
		pi, pj := scoring.CardPoints(sorted[i]), scoring.CardPoints(sorted[j])
		if pi != pj {
			return pi < pj
		}
		return sorted[i].Rank < sorted[j].Rank
	})
	return sorted[0]
}
