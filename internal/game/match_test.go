package game

import (
	"context"
	"strings"
	"testing"

	"github.com/toocheesy/stacked/internal/log"
)

func TestMatchRunsToCompletion(t *testing.T) {
	// P0 opens with the only scripted capture; everyone else just places.
	// With a 10-point target the round-end jackpot hands P0 the game.
	p0 := NewScriptedController(t).AddCapture("2♥", map[ComboSlot][]CardID{SlotMatch: {"2♦"}})
	p1 := NewScriptedController(t)
	p2 := NewScriptedController(t)

	logger := log.NewMemoryLogger()
	match, err := NewMatch(MatchConfig{
		Mode:      fixedTargetMode{ModePolicy: ClassicMode(), target: 10},
		NoShuffle: true,
		Logger:    logger,
	}, p0, p1, p2)
	if err != nil {
		t.Fatalf("NewMatch: %v", err)
	}

	winner, err := match.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if winner != 0 {
		t.Errorf("winner = %d", winner)
	}
	// Every card ends captured: 10 from the pair, 370 from the jackpot.
	if got := match.Session.Scores()[0].Overall; got != 380 {
		t.Errorf("P0 overall = %d, want 380", got)
	}
	if len(logger.EventsOfType(log.EventGameOver)) != 1 {
		t.Error("expected a game-over event")
	}
	if len(logger.EventsOfType(log.EventJackpot)) != 1 {
		t.Error("expected a jackpot event")
	}
}

func TestMatchForfeitsAfterRepeatedRejections(t *testing.T) {
	// Three invalid submissions in a row cost the seat its turn: the
	// loop places the first hand card instead.
	bad := map[ComboSlot][]CardID{SlotSum1: {"4♦"}} // 4 != 5
	p0 := NewScriptedController(t).
		AddCapture("5♥", bad).
		AddCapture("5♥", bad).
		AddCapture("5♥", bad)
	p1 := NewScriptedController(t)
	p2 := NewScriptedController(t)

	logger := log.NewMemoryLogger()
	match, err := NewMatch(MatchConfig{
		Mode:      fixedTargetMode{ModePolicy: ClassicMode(), target: 10},
		NoShuffle: true,
		Logger:    logger,
		MaxMoves:  60,
	}, p0, p1, p2)
	if err != nil {
		t.Fatalf("NewMatch: %v", err)
	}

	// Nobody ever captures, so no round can crown a winner; the move
	// limit stops the match.
	_, err = match.Run(context.Background())
	if err == nil || !strings.Contains(err.Error(), "move limit") {
		t.Fatalf("err = %v, want move limit", err)
	}

	if got := len(logger.EventsOfType(log.EventInvalidMove)); got != 3 {
		t.Errorf("invalid-move events = %d, want 3", got)
	}
	// The forfeit placed 2♥, P0's first card.
	places := logger.EventsOfType(log.EventPlace)
	if len(places) == 0 {
		t.Fatal("no place events")
	}
	if places[0].Player != 0 || places[0].Card != "2♥" {
		t.Errorf("first place = %+v", places[0])
	}
}

func TestMatchHonorsContextCancel(t *testing.T) {
	p0 := NewScriptedController(t)
	p1 := NewScriptedController(t)

	match, err := NewMatch(MatchConfig{
		Mode:      ClassicMode(),
		NoShuffle: true,
		Logger:    log.NewMemoryLogger(),
	}, p0, p1)
	if err != nil {
		t.Fatalf("NewMatch: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := match.Run(ctx); err == nil {
		t.Fatal("expected error from cancelled context")
	}
}
