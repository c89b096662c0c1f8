package game

import (
	"errors"
	"math/rand"
	"testing"
)

func TestNewLedgerHoldsFullDeck(t *testing.T) {
	l := NewLedger()
	if got := l.Count(DeckLoc()); got != DeckSize {
		t.Fatalf("deck count = %d, want %d", got, DeckSize)
	}
	if err := l.InvariantCheck(); err != nil {
		t.Fatalf("InvariantCheck: %v", err)
	}
	c, loc, err := l.Lookup("A♠")
	if err != nil {
		t.Fatalf("Lookup A♠: %v", err)
	}
	if c.Rank != Ace || c.Suit != Spades || loc != DeckLoc() {
		t.Errorf("A♠ = %v at %v", c, loc)
	}
}

func TestLookupUnknownCard(t *testing.T) {
	l := NewLedger()
	_, _, err := l.Lookup("xyzzy")
	var unknown UnknownCardError
	if !errors.As(err, &unknown) {
		t.Fatalf("err = %v, want UnknownCardError", err)
	}
}

func TestDealRoundRobin(t *testing.T) {
	l := NewLedger()
	if err := l.Deal(3, 4, 4); err != nil {
		t.Fatalf("Deal: %v", err)
	}

	if !sameIDs(l.Query(HandLoc(0)), "2♥", "5♥", "8♥", "J♥") {
		t.Errorf("P0 hand = %v", cardIDs(l.Query(HandLoc(0))))
	}
	if !sameIDs(l.Query(HandLoc(1)), "3♥", "6♥", "9♥", "Q♥") {
		t.Errorf("P1 hand = %v", cardIDs(l.Query(HandLoc(1))))
	}
	if !sameIDs(l.Query(HandLoc(2)), "4♥", "7♥", "10♥", "K♥") {
		t.Errorf("P2 hand = %v", cardIDs(l.Query(HandLoc(2))))
	}
	if !sameIDs(l.Query(BoardLoc()), "A♥", "2♦", "3♦", "4♦") {
		t.Errorf("board = %v", cardIDs(l.Query(BoardLoc())))
	}
	if got := l.Count(DeckLoc()); got != 36 {
		t.Errorf("deck count = %d, want 36", got)
	}
	if err := l.InvariantCheck(); err != nil {
		t.Fatalf("InvariantCheck: %v", err)
	}
}

func TestDealInsufficientCards(t *testing.T) {
	l := NewLedger()
	err := l.Deal(6, 9, 4) // 58 cards needed
	var insufficient InsufficientCardsError
	if !errors.As(err, &insufficient) {
		t.Fatalf("err = %v, want InsufficientCardsError", err)
	}
}

func TestMoveCardLocationMismatch(t *testing.T) {
	l := NewLedger()
	err := l.MoveCard("A♠", BoardLoc(), HandLoc(0), -1)
	var mismatch LocationMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("err = %v, want LocationMismatchError", err)
	}
	// Nothing moved.
	if got := l.Count(DeckLoc()); got != DeckSize {
		t.Errorf("deck count = %d after failed move", got)
	}
}

func TestShuffleDeterministicBySeed(t *testing.T) {
	a, b := NewLedger(), NewLedger()
	a.Shuffle(rand.New(rand.NewSource(7)))
	b.Shuffle(rand.New(rand.NewSource(7)))

	da, db := a.Query(DeckLoc()), b.Query(DeckLoc())
	for i := range da {
		if da[i].ID != db[i].ID {
			t.Fatalf("decks diverge at %d: %s vs %s", i, da[i], db[i])
		}
	}
}

func TestComboStagingRoundTrip(t *testing.T) {
	l := NewLedger()
	if err := l.Deal(3, 4, 4); err != nil {
		t.Fatalf("Deal: %v", err)
	}

	// Stage a hand card and two board cards, then abandon the combo.
	stage(t, l, SlotBase, "5♥")
	stage(t, l, SlotSum1, "2♦", "3♦")

	if got := l.Count(ComboLoc(SlotSum1)); got != 2 {
		t.Fatalf("sum1 count = %d", got)
	}
	if orig, ok := l.ComboOrigin("2♦"); !ok || orig != BoardLoc() {
		t.Errorf("2♦ origin = %v, %v", orig, ok)
	}

	if err := l.ResetAllCombo(); err != nil {
		t.Fatalf("ResetAllCombo: %v", err)
	}

	// Everything back in its original place, original order.
	if !sameIDs(l.Query(HandLoc(0)), "2♥", "5♥", "8♥", "J♥") {
		t.Errorf("P0 hand = %v after reset", cardIDs(l.Query(HandLoc(0))))
	}
	if !sameIDs(l.Query(BoardLoc()), "A♥", "2♦", "3♦", "4♦") {
		t.Errorf("board = %v after reset", cardIDs(l.Query(BoardLoc())))
	}
	if err := l.InvariantCheck(); err != nil {
		t.Fatalf("InvariantCheck: %v", err)
	}
}

func TestResetRestoresCardsStagedFromOneHand(t *testing.T) {
	l := NewLedger()
	if err := l.Deal(3, 4, 4); err != nil {
		t.Fatalf("Deal: %v", err)
	}

	// Both cards leave P0's hand; the second removal happens after the
	// first already shifted the hand's order indices.
	stage(t, l, SlotBase, "5♥")
	stage(t, l, SlotSum1, "J♥")

	if err := l.ResetAllCombo(); err != nil {
		t.Fatalf("ResetAllCombo: %v", err)
	}

	if !sameIDs(l.Query(HandLoc(0)), "2♥", "5♥", "8♥", "J♥") {
		t.Errorf("P0 hand = %v after reset", cardIDs(l.Query(HandLoc(0))))
	}
	if err := l.InvariantCheck(); err != nil {
		t.Fatalf("InvariantCheck: %v", err)
	}
}

func TestBaseSlotEviction(t *testing.T) {
	l := NewLedger()
	if err := l.Deal(3, 4, 4); err != nil {
		t.Fatalf("Deal: %v", err)
	}

	stage(t, l, SlotBase, "5♥")
	// Choosing a different base sends 5♥ straight home.
	stage(t, l, SlotBase, "8♥")

	if !sameIDs(l.Query(ComboLoc(SlotBase)), "8♥") {
		t.Errorf("base slot = %v", cardIDs(l.Query(ComboLoc(SlotBase))))
	}
	_, loc, _ := l.Lookup("5♥")
	if loc != HandLoc(0) {
		t.Errorf("5♥ at %v, want back in hand", loc)
	}
	if !sameIDs(l.Query(HandLoc(0)), "2♥", "5♥", "J♥") {
		t.Errorf("P0 hand = %v", cardIDs(l.Query(HandLoc(0))))
	}
}

func TestCaptureSweepsStagedCards(t *testing.T) {
	l := NewLedger()
	if err := l.Deal(3, 4, 4); err != nil {
		t.Fatalf("Deal: %v", err)
	}

	stage(t, l, SlotBase, "2♥")
	stage(t, l, SlotMatch, "2♦")
	if err := l.Capture([]CardID{"2♥", "2♦"}, 0); err != nil {
		t.Fatalf("Capture: %v", err)
	}

	if got := l.Count(CapturedLoc(0)); got != 2 {
		t.Errorf("captured count = %d", got)
	}
	for _, slot := range append([]ComboSlot{SlotBase}, AreaSlots[:]...) {
		if got := l.Count(ComboLoc(slot)); got != 0 {
			t.Errorf("%s slot holds %d cards after capture", slot, got)
		}
	}
	if err := l.InvariantCheck(); err != nil {
		t.Fatalf("InvariantCheck: %v", err)
	}
}

func TestGatherAllReturnsEverything(t *testing.T) {
	l := NewLedger()
	if err := l.Deal(3, 4, 4); err != nil {
		t.Fatalf("Deal: %v", err)
	}
	if err := l.Capture([]CardID{"A♥", "2♦"}, 1); err != nil {
		t.Fatalf("Capture: %v", err)
	}

	if err := l.GatherAll(); err != nil {
		t.Fatalf("GatherAll: %v", err)
	}
	if got := l.Count(DeckLoc()); got != DeckSize {
		t.Errorf("deck count = %d after gather", got)
	}
	if got := l.Count(CapturedLoc(1)); got != 0 {
		t.Errorf("captured count = %d after gather", got)
	}
}
