package game

import "testing"

// pickCards resolves ids to Card values.
func pickCards(ids ...CardID) []Card {
	byID := make(map[CardID]Card)
	for _, c := range AllCards() {
		byID[c.ID] = c
	}
	out := make([]Card, len(ids))
	for i, id := range ids {
		out[i] = byID[id]
	}
	return out
}

func TestFindCapturesOpeningHand(t *testing.T) {
	hand := pickCards("2♥", "5♥", "8♥", "J♥")
	board := pickCards("A♥", "2♦", "3♦", "4♦")

	options := FindCaptures(hand, board, ClassicMode())

	// 2♥ pairs 2♦; 5♥ sums {A,4}, {2,3}, and both combined; 8♥ sums
	// {A,3,4}; J♥ has nothing.
	if len(options) != 5 {
		for _, o := range options {
			t.Logf("option: %s (%d pts)", o.Move().Desc, o.Points)
		}
		t.Fatalf("options = %d, want 5", len(options))
	}

	// Sorted by points: the full 5♥ double-sum sweep leads.
	wantPoints := []int{35, 30, 25, 15, 10}
	for i, o := range options {
		if o.Points != wantPoints[i] {
			t.Errorf("option %d = %d pts, want %d", i, o.Points, wantPoints[i])
		}
	}

	best := options[0]
	if best.Base.ID != "5♥" || len(best.Cards) != 5 {
		t.Errorf("best option = %s with %v", best.Base, cardIDs(best.Cards))
	}
}

func TestFindCapturesNoDoubleUse(t *testing.T) {
	// The lone 2♦ is both the rank match and a sum group for a 2 base;
	// it must never appear twice in one option.
	hand := pickCards("2♥")
	board := pickCards("2♦", "K♠")

	options := FindCaptures(hand, board, ClassicMode())
	if len(options) != 1 {
		t.Fatalf("options = %d, want 1", len(options))
	}
	if len(options[0].Cards) != 2 {
		t.Errorf("cards = %v", cardIDs(options[0].Cards))
	}
}

func TestFindCapturesFaceBase(t *testing.T) {
	hand := pickCards("K♥")
	board := pickCards("K♠", "6♦", "7♦")

	options := FindCaptures(hand, board, ClassicMode())
	if len(options) != 1 {
		t.Fatalf("options = %d, want 1", len(options))
	}
	if options[0].Areas[SlotMatch] == nil {
		t.Error("expected a rank-match area")
	}
}

func TestHintNilWhenNoCapture(t *testing.T) {
	hand := pickCards("J♥")
	board := pickCards("2♦", "3♦")

	if got := Hint(hand, board, ClassicMode()); got != nil {
		t.Errorf("hint = %+v, want nil", got)
	}
}

func TestLegalMovesAlwaysIncludePlaces(t *testing.T) {
	s, _ := newTestSession(t, nil)

	moves := LegalMoves(s, 0)
	// 5 captures plus 4 places.
	if len(moves) != 9 {
		t.Fatalf("moves = %d, want 9", len(moves))
	}
	places := 0
	for _, m := range moves {
		if m.Type == MovePlace {
			places++
		}
	}
	if places != 4 {
		t.Errorf("places = %d, want 4", places)
	}
}

func TestFindCapturesSubmittable(t *testing.T) {
	// Every option the search proposes must survive the real submission
	// path.
	s, _ := newTestSession(t, nil)
	for _, o := range FindCaptures(s.Hand(0), s.Board(), s.Mode()) {
		m := o.Move()
		res, err := s.SubmitCapture(0, m.Base, m.Areas)
		if err != nil {
			t.Fatalf("SubmitCapture(%s): %v", m.Desc, err)
		}
		if !res.Accepted {
			t.Fatalf("SubmitCapture(%s) rejected: %s", m.Desc, res.Detail)
		}
		break // the table changed; one submission is the point
	}
}
