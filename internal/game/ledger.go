package game

import (
	"math/rand"
)

// DeckSize is the number of cards in the standard deck.
const DeckSize = 52

// comboOrigin is the snapshot taken when a card is staged into a combo
// slot, so a reset can restore it to exactly where it came from: same
// location, same owner, same order index.
type comboOrigin struct {
	Loc   Location
	Index int
}

type entry struct {
	card   Card
	loc    Location
	origin *comboOrigin // non-nil only while loc.Kind == InCombo
}

// Ledger is the sole owner of card-placement truth: a single authoritative
// map of every card's current location, mutated only by atomic moves. It is
// a pure data store, not a state machine; callers must serialize mutations.
type Ledger struct {
	deckSize int
	entries  map[CardID]*entry
	seqs     map[Location][]CardID // ordered sequence per location
	staging  []CardID              // chronological staging order, all combo slots
}

// NewLedger builds the 52 canonical cards, all placed in the deck in
// canonical order (Two..Ace within Hearts, Diamonds, Clubs, Spades).
func NewLedger() *Ledger {
	l := &Ledger{
		deckSize: DeckSize,
		entries:  make(map[CardID]*entry, DeckSize),
		seqs:     make(map[Location][]CardID),
	}
	for _, c := range AllCards() {
		l.entries[c.ID] = &entry{card: c, loc: DeckLoc()}
		l.seqs[DeckLoc()] = append(l.seqs[DeckLoc()], c.ID)
	}
	return l
}

// Shuffle applies a uniform Fisher–Yates permutation to the deck sequence.
func (l *Ledger) Shuffle(rng *rand.Rand) {
	deck := l.seqs[DeckLoc()]
	rng.Shuffle(len(deck), func(i, j int) {
		deck[i], deck[j] = deck[j], deck[i]
	})
}

// Lookup returns the card and its current location.
func (l *Ledger) Lookup(id CardID) (Card, Location, error) {
	e, ok := l.entries[id]
	if !ok {
		return Card{}, Location{}, UnknownCardError{Card: id}
	}
	return e.card, e.loc, nil
}

// Query returns a read-only ordered snapshot of the cards at a location.
func (l *Ledger) Query(loc Location) []Card {
	seq := l.seqs[loc]
	out := make([]Card, len(seq))
	for i, id := range seq {
		out[i] = l.entries[id].card
	}
	return out
}

// Count returns the number of cards at a location.
func (l *Ledger) Count(loc Location) int {
	return len(l.seqs[loc])
}

// ComboOrigin returns the staged card's original location, for provenance
// checks and restoration. ok is false if the card is not staged.
func (l *Ledger) ComboOrigin(id CardID) (Location, bool) {
	e, ok := l.entries[id]
	if !ok || e.origin == nil {
		return Location{}, false
	}
	return e.origin.Loc, true
}

// removeFromSeq removes id from its location sequence, shifting later
// order indices down. Returns the index it held.
func (l *Ledger) removeFromSeq(id CardID, loc Location) int {
	seq := l.seqs[loc]
	for i, other := range seq {
		if other == id {
			l.seqs[loc] = append(seq[:i], seq[i+1:]...)
			return i
		}
	}
	return -1
}

// insertIntoSeq inserts id into the location sequence at the given index,
// appending when index is negative or past the end.
func (l *Ledger) insertIntoSeq(id CardID, loc Location, index int) {
	seq := l.seqs[loc]
	if index < 0 || index >= len(seq) {
		l.seqs[loc] = append(seq, id)
		return
	}
	seq = append(seq, "")
	copy(seq[index+1:], seq[index:])
	seq[index] = id
	l.seqs[loc] = seq
}

// MoveCard atomically relocates a card. The caller states where it thinks
// the card is; a mismatch is fatal, never silently repaired. atIndex < 0
// appends to the destination sequence.
func (l *Ledger) MoveCard(id CardID, from, to Location, atIndex int) error {
	e, ok := l.entries[id]
	if !ok {
		return UnknownCardError{Card: id}
	}
	if e.loc != from {
		return LocationMismatchError{Card: id, Expected: from, Actual: e.loc}
	}
	l.removeFromSeq(id, from)
	l.insertIntoSeq(id, to, atIndex)
	e.loc = to
	if to.Kind != InCombo && e.origin != nil {
		e.origin = nil
		l.unstage(id)
	}
	return nil
}

// MoveToComboSlot stages a card into a combo slot, snapshotting its origin
// for later restoration. Placing a second card into the Base slot first
// evicts the existing Base card back to where it came from, keeping
// exactly one Base card at a time.
func (l *Ledger) MoveToComboSlot(id CardID, slot ComboSlot) error {
	e, ok := l.entries[id]
	if !ok {
		return UnknownCardError{Card: id}
	}
	if e.loc.Kind == InCombo {
		return LocationMismatchError{Card: id, Expected: e.loc, Actual: e.loc}
	}
	if slot == SlotBase {
		if err := l.RestoreComboSlot(SlotBase); err != nil {
			return err
		}
	}
	index := l.removeFromSeq(id, e.loc)
	e.origin = &comboOrigin{Loc: e.loc, Index: index}
	l.insertIntoSeq(id, ComboLoc(slot), -1)
	e.loc = ComboLoc(slot)
	l.staging = append(l.staging, id)
	return nil
}

// unstage drops a card from the staging history.
func (l *Ledger) unstage(id CardID) {
	for i, other := range l.staging {
		if other == id {
			l.staging = append(l.staging[:i], l.staging[i+1:]...)
			return
		}
	}
}

// restoreStaged undoes a single staging: the card goes back to its
// recorded location and order index and leaves the staging history.
func (l *Ledger) restoreStaged(id CardID) error {
	e := l.entries[id]
	if e.origin == nil {
		return InvalidGameStateError{Reason: "staged card " + string(id) + " has no origin snapshot"}
	}
	orig := *e.origin
	l.removeFromSeq(id, e.loc)
	l.insertIntoSeq(id, orig.Loc, orig.Index)
	e.loc = orig.Loc
	e.origin = nil
	l.unstage(id)
	return nil
}

// RestoreComboSlot moves every card in the slot back to its recorded
// original location, owner, and order index. Stagings are undone newest
// first: each recorded index is relative to the sequence as it stood at
// staging time, so only reverse chronological replay reproduces it.
func (l *Ledger) RestoreComboSlot(slot ComboSlot) error {
	loc := ComboLoc(slot)
	for i := len(l.staging) - 1; i >= 0; i-- {
		if l.entries[l.staging[i]].loc != loc {
			continue
		}
		if err := l.restoreStaged(l.staging[i]); err != nil {
			return err
		}
	}
	if len(l.seqs[loc]) != 0 {
		return InvalidGameStateError{Reason: "combo slot " + slot.String() + " holds a card with no staging record"}
	}
	return nil
}

// ResetAllCombo restores every combo slot, Base included, by unwinding
// the whole staging history newest first. Used when a capture attempt
// fails validation or the player cancels. Cards staged from the same
// sequence shift each other's indices, so slot-by-slot restoration would
// misplace them; only the full reverse replay is exact.
func (l *Ledger) ResetAllCombo() error {
	for len(l.staging) > 0 {
		if err := l.restoreStaged(l.staging[len(l.staging)-1]); err != nil {
			return err
		}
	}
	return nil
}

// Capture atomically moves a set of cards, which may span hands, the
// board, and combo slots, into the capturing player's pile.
func (l *Ledger) Capture(ids []CardID, player int) error {
	// Validate the full set before touching anything.
	for _, id := range ids {
		if _, ok := l.entries[id]; !ok {
			return UnknownCardError{Card: id}
		}
	}
	for _, id := range ids {
		e := l.entries[id]
		l.removeFromSeq(id, e.loc)
		l.insertIntoSeq(id, CapturedLoc(player), -1)
		e.loc = CapturedLoc(player)
		if e.origin != nil {
			e.origin = nil
			l.unstage(id)
		}
	}
	return nil
}

// DealFromDeck removes the top count cards of the deck (lowest order
// index) and moves them to the destination in order.
func (l *Ledger) DealFromDeck(count int, dest Location) ([]Card, error) {
	deck := l.seqs[DeckLoc()]
	if len(deck) < count {
		return nil, InsufficientCardsError{Requested: count, Available: len(deck)}
	}
	dealt := make([]Card, 0, count)
	for i := 0; i < count; i++ {
		id := l.seqs[DeckLoc()][0]
		if err := l.MoveCard(id, DeckLoc(), dest, -1); err != nil {
			return nil, err
		}
		dealt = append(dealt, l.entries[id].card)
	}
	return dealt, nil
}

// Deal performs the round-robin deal: one card to each player in turn
// before moving to the next card, then the board cards from the remainder.
func (l *Ledger) Deal(numPlayers, cardsPerPlayer, boardCards int) error {
	need := numPlayers*cardsPerPlayer + boardCards
	if avail := l.Count(DeckLoc()); avail < need {
		return InsufficientCardsError{Requested: need, Available: avail}
	}
	for i := 0; i < cardsPerPlayer; i++ {
		for p := 0; p < numPlayers; p++ {
			if _, err := l.DealFromDeck(1, HandLoc(p)); err != nil {
				return err
			}
		}
	}
	_, err := l.DealFromDeck(boardCards, BoardLoc())
	return err
}

// GatherAll returns every card to the deck, clearing hands, board, combo
// slots, and capture piles. Order is unspecified; callers reshuffle before
// dealing. Used at round boundaries.
func (l *Ledger) GatherAll() error {
	for id, e := range l.entries {
		if e.loc == DeckLoc() {
			continue
		}
		if err := l.MoveCard(id, e.loc, DeckLoc(), -1); err != nil {
			return err
		}
	}
	return l.InvariantCheck()
}

// InvariantCheck recomputes the total card count across all locations and
// verifies the golden rule: every card in exactly one place, 52 in total.
// Called after every externally visible mutation as a correctness gate.
func (l *Ledger) InvariantCheck() error {
	total := 0
	breakdown := make(map[string]int)
	for loc, seq := range l.seqs {
		total += len(seq)
		if len(seq) > 0 {
			breakdown[loc.String()] = len(seq)
		}
		for _, id := range seq {
			e, ok := l.entries[id]
			if !ok || e.loc != loc {
				return LedgerCorruptionError{Expected: l.deckSize, Actual: total, Breakdown: breakdown}
			}
		}
	}
	if total != l.deckSize || len(l.entries) != l.deckSize {
		return LedgerCorruptionError{Expected: l.deckSize, Actual: total, Breakdown: breakdown}
	}
	return nil
}
