package bot

import "github.com/toocheesy/stacked/internal/game"

// Greedy is the naive maximizer: it takes the highest-scoring capture
// available right now, and when no capture exists it dumps its cheapest
// card. It never looks at the opponents or what a placement gives away.
type Greedy struct{}

func (Greedy) Name() string { return "greedy" }

func (Greedy) Decide(hand, board []game.Card, ctx Context) game.Move {
	options := game.FindCaptures(hand, board, ctx.Mode)
	if len(options) > 0 {
		return options[0].Move()
	}
	return placeMove(cheapestCard(hand, ctx.Mode.Scoring()))
}
