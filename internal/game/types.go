package game

import "fmt"

// --- Enums ---

type Suit int

const (
	Hearts Suit = iota
	Diamonds
	Clubs
	Spades
)

func (s Suit) String() string {
	switch s {
	case Hearts:
		return "Hearts"
	case Diamonds:
		return "Diamonds"
	case Clubs:
		return "Clubs"
	case Spades:
		return "Spades"
	default:
		return "Unknown"
	}
}

// Symbol returns the one-rune suit glyph for compact board rendering.
func (s Suit) Symbol() string {
	switch s {
	case Hearts:
		return "♥"
	case Diamonds:
		return "♦"
	case Clubs:
		return "♣"
	case Spades:
		return "♠"
	default:
		return "?"
	}
}

type Rank int

const (
	Two   Rank = 2
	Three Rank = 3
	Four  Rank = 4
	Five  Rank = 5
	Six   Rank = 6
	Seven Rank = 7
	Eight Rank = 8
	Nine  Rank = 9
	Ten   Rank = 10
	Jack  Rank = 11
	Queen Rank = 12
	King  Rank = 13
	Ace   Rank = 14
)

func (r Rank) String() string {
	switch r {
	case Jack:
		return "J"
	case Queen:
		return "Q"
	case King:
		return "K"
	case Ace:
		return "A"
	default:
		return fmt.Sprintf("%d", int(r))
	}
}

// IsFace reports whether the rank is J, Q, or K. Face cards can anchor
// pair captures but are excluded from sum arithmetic entirely.
func (r Rank) IsFace() bool {
	return r == Jack || r == Queen || r == King
}

// SumValue returns the rank's value for sum captures (Ace counts as 1)
// and false for face cards, which have no sum value.
func (r Rank) SumValue() (int, bool) {
	switch {
	case r == Ace:
		return 1, true
	case r.IsFace():
		return 0, false
	default:
		return int(r), true
	}
}

// --- Card ---

// CardID is the opaque identity of a card. The deck holds exactly one card
// per rank×suit pair, so the "A♠"-style label doubles as a stable id.
type CardID string

// Card is an immutable value object. Identity is by ID.
type Card struct {
	ID   CardID
	Rank Rank
	Suit Suit
}

func (c Card) String() string {
	return c.Rank.String() + c.Suit.Symbol()
}

func cardID(r Rank, s Suit) CardID {
	return CardID(r.String() + s.Symbol())
}

// AllCards returns the 52 canonical cards in canonical order (Two..Ace
// within Hearts, Diamonds, Clubs, Spades).
func AllCards() []Card {
	cards := make([]Card, 0, 52)
	for _, s := range []Suit{Hearts, Diamonds, Clubs, Spades} {
		for r := Two; r <= Ace; r++ {
			cards = append(cards, Card{ID: cardID(r, s), Rank: r, Suit: s})
		}
	}
	return cards
}

// --- Locations ---

type LocationKind int

const (
	InDeck LocationKind = iota
	InHand
	OnBoard
	InCombo
	InCaptured
)

func (k LocationKind) String() string {
	switch k {
	case InDeck:
		return "Deck"
	case InHand:
		return "Hand"
	case OnBoard:
		return "Board"
	case InCombo:
		return "Combo"
	case InCaptured:
		return "Captured"
	default:
		return "Unknown"
	}
}

// ComboSlot names the staging areas a capture is built in. Base holds the
// single anchor card; the others are independently validated capture areas.
type ComboSlot int

const (
	SlotBase ComboSlot = iota
	SlotSum1
	SlotSum2
	SlotSum3
	SlotMatch
)

func (s ComboSlot) String() string {
	switch s {
	case SlotBase:
		return "Base"
	case SlotSum1:
		return "Sum1"
	case SlotSum2:
		return "Sum2"
	case SlotSum3:
		return "Sum3"
	case SlotMatch:
		return "Match"
	default:
		return "Unknown"
	}
}

// AreaSlots lists the capture areas in validation order (Base excluded).
var AreaSlots = [...]ComboSlot{SlotSum1, SlotSum2, SlotSum3, SlotMatch}

// Location is a tagged value: Kind selects which of Player/Slot is
// meaningful. Exactly one Location is associated with each card at any time.
type Location struct {
	Kind   LocationKind
	Player int       // for InHand and InCaptured
	Slot   ComboSlot // for InCombo
}

func DeckLoc() Location                { return Location{Kind: InDeck} }
func HandLoc(player int) Location      { return Location{Kind: InHand, Player: player} }
func BoardLoc() Location               { return Location{Kind: OnBoard} }
func ComboLoc(slot ComboSlot) Location { return Location{Kind: InCombo, Slot: slot} }
func CapturedLoc(player int) Location  { return Location{Kind: InCaptured, Player: player} }

func (l Location) String() string {
	switch l.Kind {
	case InHand:
		return fmt.Sprintf("Hand(P%d)", l.Player+1)
	case InCombo:
		return fmt.Sprintf("Combo(%s)", l.Slot)
	case InCaptured:
		return fmt.Sprintf("Captured(P%d)", l.Player+1)
	default:
		return l.Kind.String()
	}
}

// --- Scores ---

// Score tracks one player's points. Round resets each round; Overall
// accumulates until the mode's target score is reached.
type Score struct {
	Round   int
	Overall int
}

// --- Moves ---

type MoveType int

const (
	MovePlace MoveType = iota
	MoveCapture
)

func (t MoveType) String() string {
	if t == MovePlace {
		return "Place"
	}
	return "Capture"
}

// Move is a single request submitted into the core by a controller
// (human input layer or bot). A Place names one hand card; a Capture names
// a base card and the cards staged into each capture area.
type Move struct {
	Type  MoveType
	Card  CardID                 // for MovePlace
	Base  CardID                 // for MoveCapture
	Areas map[ComboSlot][]CardID // for MoveCapture; keys drawn from AreaSlots
	Desc  string                 // human-readable description
}

func (m Move) String() string {
	if m.Desc != "" {
		return m.Desc
	}
	if m.Type == MovePlace {
		return fmt.Sprintf("Place %s", m.Card)
	}
	return fmt.Sprintf("Capture with base %s", m.Base)
}

// --- Session phases ---

type Phase int

const (
	PhaseAwaitingMove Phase = iota
	PhaseRoundResolution
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhaseAwaitingMove:
		return "Awaiting Move"
	case PhaseRoundResolution:
		return "Round Resolution"
	case PhaseGameOver:
		return "Game Over"
	default:
		return "Unknown"
	}
}
