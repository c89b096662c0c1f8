package bot

import (
	"context"
	"sync"
	"time"

	"github.com/toocheesy/stacked/internal/game"
	"github.com/toocheesy/stacked/internal/log"
)

// rankOf maps a card label back to its rank, for counting ranks seen in
// event notifications.
var rankOf = func() map[string]game.Rank {
	m := make(map[string]game.Rank, game.DeckSize)
	for _, c := range game.AllCards() {
		m[string(c.ID)] = c.Rank
	}
	return m
}()

// Controller adapts a Personality to the match loop. It accumulates the
// ranks revealed by events and snapshots, hands the personality a public
// context each turn, and holds every decision for a configurable thinking
// delay so a human opponent can follow the action.
type Controller struct {
	personality Personality
	player      int
	delay       time.Duration

	mu   sync.Mutex
	seen map[game.CardID]bool
}

// NewController wires a personality to a seat.
func NewController(p Personality, player int, delay time.Duration) *Controller {
	return &Controller{
		personality: p,
		player:      player,
		delay:       delay,
		seen:        make(map[game.CardID]bool),
	}
}

func (c *Controller) ChooseMove(ctx context.Context, s *game.GameSession, _ []game.Move) (game.Move, error) {
	if c.delay > 0 {
		t := time.NewTimer(c.delay)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return game.Move{}, ctx.Err()
		case <-t.C:
		}
	}

	hand := s.Hand(c.player)
	board := s.Board()

	c.mu.Lock()
	for _, card := range hand {
		c.seen[card.ID] = true
	}
	for _, card := range board {
		c.seen[card.ID] = true
	}
	counts := make(map[game.Rank]int)
	for id := range c.seen {
		counts[rankOf[string(id)]]++
	}
	c.mu.Unlock()

	bctx := Context{
		Player:    c.player,
		Scores:    s.Scores(),
		DeckCount: s.DeckCount(),
		Seen:      counts,
		Mode:      s.Mode(),
	}
	return c.personality.Decide(hand, board, bctx), nil
}

func (c *Controller) Notify(_ context.Context, e log.GameEvent) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch e.Type {
	case log.EventNewRound:
		// Everything goes back through the deck between rounds.
		c.seen = make(map[game.CardID]bool)
	case log.EventPlace, log.EventCapture:
		if _, ok := rankOf[e.Card]; ok {
			c.seen[game.CardID(e.Card)] = true
		}
	}
	return nil
}
