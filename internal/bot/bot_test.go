package bot

import (
	"context"
	"testing"

	"github.com/toocheesy/stacked/internal/game"
	"github.com/toocheesy/stacked/internal/log"
)

func pickCards(t *testing.T, ids ...game.CardID) []game.Card {
	t.Helper()
	byID := make(map[game.CardID]game.Card)
	for _, c := range game.AllCards() {
		byID[c.ID] = c
	}
	out := make([]game.Card, len(ids))
	for i, id := range ids {
		c, ok := byID[id]
		if !ok {
			t.Fatalf("unknown card %s", id)
		}
		out[i] = c
	}
	return out
}

func testContext(mode game.ModePolicy) Context {
	return Context{
		Player: 0,
		Scores: []game.Score{{}, {}, {}},
		Seen:   map[game.Rank]int{},
		Mode:   mode,
	}
}

func TestByName(t *testing.T) {
	for _, name := range Names() {
		p, err := ByName(name)
		if err != nil {
			t.Fatalf("ByName(%s): %v", name, err)
		}
		if p.Name() != name {
			t.Errorf("Name() = %s, want %s", p.Name(), name)
		}
	}
	if _, err := ByName("chess-engine"); err == nil {
		t.Fatal("expected error for unknown personality")
	}
}

func TestGreedyTakesBiggestCapture(t *testing.T) {
	hand := pickCards(t, "2♥", "5♥")
	board := pickCards(t, "2♦", "A♥", "4♦")

	m := Greedy{}.Decide(hand, board, testContext(game.ClassicMode()))
	if m.Type != game.MoveCapture {
		t.Fatalf("move = %v", m)
	}
	// 5♥ + A♥ + 4♦ (25 pts) beats the pair of twos (10 pts).
	if m.Base != "5♥" {
		t.Errorf("base = %s", m.Base)
	}
}

func TestGreedyDumpsCheapestCard(t *testing.T) {
	hand := pickCards(t, "A♠", "K♦", "3♣")
	board := pickCards(t, "Q♥") // nothing to capture

	m := Greedy{}.Decide(hand, board, testContext(game.ClassicMode()))
	if m.Type != game.MovePlace || m.Card != "3♣" {
		t.Errorf("move = %+v", m)
	}
}

func TestStrategistCapturesWhenAvailable(t *testing.T) {
	hand := pickCards(t, "7♣", "2♥")
	board := pickCards(t, "7♦")

	m := NewStrategist().Decide(hand, board, testContext(game.ClassicMode()))
	if m.Type != game.MoveCapture || m.Base != "7♣" {
		t.Errorf("move = %+v", m)
	}
}

func TestStrategistAvoidsFeedingTheBoard(t *testing.T) {
	// Placing the ace would let any unseen ace pair it for 30 points;
	// the low club is the safer discard.
	hand := pickCards(t, "A♠", "2♣")
	board := pickCards(t, "K♥")

	ctx := testContext(game.ClassicMode())
	m := NewStrategist().Decide(hand, board, ctx)
	if m.Type != game.MovePlace || m.Card != "2♣" {
		t.Errorf("move = %+v", m)
	}
}

func TestStrategistIsDeterministic(t *testing.T) {
	hand := pickCards(t, "2♥", "5♥", "8♥", "J♥")
	board := pickCards(t, "A♥", "2♦", "3♦", "4♦")
	ctx := testContext(game.ClassicMode())

	first := NewStrategist().Decide(hand, board, ctx)
	for i := 0; i < 5; i++ {
		if got := NewStrategist().Decide(hand, board, ctx); got.Desc != first.Desc {
			t.Fatalf("run %d chose %q, first chose %q", i, got.Desc, first.Desc)
		}
	}
}

func TestControllerChoosesLegalMove(t *testing.T) {
	s, err := game.NewSession(game.SessionConfig{NoShuffle: true})
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}

	c := NewController(Greedy{}, 0, 0)
	legal := game.LegalMoves(s, 0)
	m, err := c.ChooseMove(context.Background(), s, legal)
	if err != nil {
		t.Fatalf("ChooseMove: %v", err)
	}

	res, err := submit(s, 0, m)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if !res.Accepted {
		t.Fatalf("move rejected: %s", res.Detail)
	}
}

func submit(s *game.GameSession, player int, m game.Move) (game.MoveResult, error) {
	if m.Type == game.MovePlace {
		return s.SubmitPlace(player, m.Card)
	}
	return s.SubmitCapture(player, m.Base, m.Areas)
}

func TestControllerTracksSeenRanks(t *testing.T) {
	c := NewController(Greedy{}, 1, 0)

	ctx := context.Background()
	if err := c.Notify(ctx, log.NewPlaceEvent(1, 0, "A♠")); err != nil {
		t.Fatalf("Notify: %v", err)
	}
	if err := c.Notify(ctx, log.NewCaptureEvent(1, 2, "A♦", 2, 30, "pair")); err != nil {
		t.Fatalf("Notify: %v", err)
	}
	if len(c.seen) != 2 {
		t.Errorf("seen = %d cards", len(c.seen))
	}

	// A new round reshuffles everything back through the deck.
	if err := c.Notify(ctx, log.NewRoundEvent(2, 0, 1)); err != nil {
		t.Fatalf("Notify: %v", err)
	}
	if len(c.seen) != 0 {
		t.Errorf("seen = %d cards after new round", len(c.seen))
	}
}
