package log

import (
	"fmt"
	"io"
	"strings"
)

// EventLogger is the interface for logging game events.
type EventLogger interface {
	Log(event GameEvent)
	Events() []GameEvent
}

// --- MemoryLogger: stores events in memory for test assertions ---

type MemoryLogger struct {
	events []GameEvent
	seq    int
}

func NewMemoryLogger() *MemoryLogger {
	return &MemoryLogger{}
}

func (l *MemoryLogger) Log(event GameEvent) {
	l.seq++
	event.Seq = l.seq
	l.events = append(l.events, event)
}

func (l *MemoryLogger) Events() []GameEvent {
	return l.events
}

// EventsOfType returns all events matching the given type.
func (l *MemoryLogger) EventsOfType(t EventType) []GameEvent {
	var result []GameEvent
	for _, e := range l.events {
		if e.Type == t {
			result = append(result, e)
		}
	}
	return result
}

// LastEvent returns the most recent event, or a zero event if none.
func (l *MemoryLogger) LastEvent() GameEvent {
	if len(l.events) == 0 {
		return GameEvent{}
	}
	return l.events[len(l.events)-1]
}

// --- TextLogger: writes human-readable lines to an io.Writer ---

type TextLogger struct {
	MemoryLogger
	w io.Writer
}

func NewTextLogger(w io.Writer) *TextLogger {
	return &TextLogger{w: w}
}

func (l *TextLogger) Log(event GameEvent) {
	l.MemoryLogger.Log(event)
	fmt.Fprintln(l.w, FormatEvent(event))
}

// --- Formatting ---

// playerName returns "You" for the human seat and "Bot N" otherwise.
func playerName(p int) string {
	if p == 0 {
		return "You"
	}
	return fmt.Sprintf("Bot %d", p)
}

// FormatEvent formats a single event as a human-readable line.
func FormatEvent(e GameEvent) string {
	return fmt.Sprintf("R%-2d | %s", e.Round, e.Details)
}

// FormatAll formats all events as a multi-line string.
func FormatAll(events []GameEvent) string {
	var sb strings.Builder
	for _, e := range events {
		sb.WriteString(FormatEvent(e))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// --- Helper constructors for common events ---

func NewShuffleEvent(round int) GameEvent {
	return GameEvent{
		Round:   round,
		Player:  -1,
		Type:    EventShuffle,
		Details: "Deck shuffled",
	}
}

func NewDealEvent(round, players, cardsPerPlayer, boardCards int) GameEvent {
	detail := fmt.Sprintf("Dealt %d cards to each of %d players", cardsPerPlayer, players)
	if boardCards > 0 {
		detail += fmt.Sprintf(" and %d to the board", boardCards)
	}
	return GameEvent{
		Round:   round,
		Player:  -1,
		Type:    EventDeal,
		Cards:   players*cardsPerPlayer + boardCards,
		Details: detail,
	}
}

func NewRoundEvent(round, dealer, first int) GameEvent {
	return GameEvent{
		Round:   round,
		Player:  first,
		Type:    EventNewRound,
		Details: fmt.Sprintf("=== Round %d (dealer %s, %s leads) ===", round, playerName(dealer), playerName(first)),
	}
}

func NewTurnEvent(round, player int) GameEvent {
	return GameEvent{
		Round:   round,
		Player:  player,
		Type:    EventTurn,
		Details: fmt.Sprintf("%s to move", playerName(player)),
	}
}

func NewPlaceEvent(round, player int, card string) GameEvent {
	return GameEvent{
		Round:   round,
		Player:  player,
		Type:    EventPlace,
		Card:    card,
		Details: fmt.Sprintf("%s places %s on the board", playerName(player), card),
	}
}

func NewCaptureEvent(round, player int, base string, cards, points int, captureTypes string) GameEvent {
	return GameEvent{
		Round:   round,
		Player:  player,
		Type:    EventCapture,
		Card:    base,
		Cards:   cards,
		Points:  points,
		Details: fmt.Sprintf("%s captures %d cards with base %s (%s, +%d pts)", playerName(player), cards, base, captureTypes, points),
	}
}

func NewInvalidMoveEvent(round, player int, reason string) GameEvent {
	return GameEvent{
		Round:   round,
		Player:  player,
		Type:    EventInvalidMove,
		Details: fmt.Sprintf("%s's capture rejected: %s", playerName(player), reason),
	}
}

func NewTimerExpiredEvent(round int) GameEvent {
	return GameEvent{
		Round:   round,
		Player:  -1,
		Type:    EventTimerExpired,
		Details: fmt.Sprintf("Round %d timer expired", round),
	}
}

func NewRoundEndEvent(round int, scores []int) GameEvent {
	parts := make([]string, len(scores))
	for i, s := range scores {
		parts[i] = fmt.Sprintf("%s %d", playerName(i), s)
	}
	return GameEvent{
		Round:   round,
		Player:  -1,
		Type:    EventRoundEnd,
		Details: fmt.Sprintf("Round %d over (%s)", round, strings.Join(parts, ", ")),
	}
}

func NewJackpotEvent(round, player, cards, points int) GameEvent {
	return GameEvent{
		Round:   round,
		Player:  player,
		Type:    EventJackpot,
		Cards:   cards,
		Points:  points,
		Details: fmt.Sprintf("%s takes the last-combo jackpot: %d board cards, +%d pts", playerName(player), cards, points),
	}
}

func NewGameOverEvent(round, winner, score int) GameEvent {
	return GameEvent{
		Round:   round,
		Player:  winner,
		Type:    EventGameOver,
		Details: fmt.Sprintf("%s wins with %d points!", playerName(winner), score),
	}
}
