package game

import (
	"context"
	"testing"

	"github.com/toocheesy/stacked/internal/log"
)

// newTestSession creates a deterministic session: no shuffle, so the deal
// follows canonical deck order (Two..Ace within Hearts, Diamonds, Clubs,
// Spades). With three players and the classic mode that yields:
//
//	P0 hand: 2♥ 5♥ 8♥ J♥
//	P1 hand: 3♥ 6♥ 9♥ Q♥
//	P2 hand: 4♥ 7♥ 10♥ K♥
//	Board:   A♥ 2♦ 3♦ 4♦
func newTestSession(t *testing.T, mode ModePolicy) (*GameSession, *log.MemoryLogger) {
	t.Helper()
	logger := log.NewMemoryLogger()
	s, err := NewSession(SessionConfig{
		Mode:      mode,
		NoShuffle: true,
		Logger:    logger,
	})
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	return s, logger
}

// dealTo moves specific cards out of a fresh ledger's deck for rules
// tests that need a hand-crafted table.
func dealTo(t *testing.T, l *Ledger, dest Location, ids ...CardID) {
	t.Helper()
	for _, id := range ids {
		if err := l.MoveCard(id, DeckLoc(), dest, -1); err != nil {
			t.Fatalf("deal %s to %s: %v", id, dest, err)
		}
	}
}

// stage moves cards into a combo slot, failing the test on error.
func stage(t *testing.T, l *Ledger, slot ComboSlot, ids ...CardID) {
	t.Helper()
	for _, id := range ids {
		if err := l.MoveToComboSlot(id, slot); err != nil {
			t.Fatalf("stage %s into %s: %v", id, slot, err)
		}
	}
}

func cardIDs(cards []Card) []CardID {
	ids := make([]CardID, len(cards))
	for i, c := range cards {
		ids[i] = c.ID
	}
	return ids
}

func sameIDs(a []Card, want ...CardID) bool {
	if len(a) != len(want) {
		return false
	}
	for i := range a {
		if a[i].ID != want[i] {
			return false
		}
	}
	return true
}

// ScriptedController plays a fixed sequence of moves, then falls back to
// placing its first hand card. Used to drive matches deterministically.
type ScriptedController struct {
	t     *testing.T
	moves []Move
	pos   int
}

func NewScriptedController(t *testing.T) *ScriptedController {
	return &ScriptedController{t: t}
}

func (sc *ScriptedController) AddPlace(card CardID) *ScriptedController {
	sc.moves = append(sc.moves, Move{Type: MovePlace, Card: card})
	return sc
}

func (sc *ScriptedController) AddCapture(base CardID, areas map[ComboSlot][]CardID) *ScriptedController {
	sc.moves = append(sc.moves, Move{Type: MoveCapture, Base: base, Areas: areas})
	return sc
}

func (sc *ScriptedController) ChooseMove(ctx context.Context, s *GameSession, moves []Move) (Move, error) {
	if sc.pos < len(sc.moves) {
		m := sc.moves[sc.pos]
		sc.pos++
		return m, nil
	}
	for _, m := range moves {
		if m.Type == MovePlace {
			return m, nil
		}
	}
	return moves[0], nil
}

func (sc *ScriptedController) Notify(ctx context.Context, event log.GameEvent) error {
	return nil
}

// fixedTargetMode wraps another policy with a different target score, for
// tests that need a game to end quickly.
type fixedTargetMode struct {
	ModePolicy
	target int
}

func (m fixedTargetMode) TargetScore() int { return m.target }
