package game

import (
	"fmt"
	"sort"
	"strings"
)

// Errors in this package mark programming-invariant violations: a caller
// passed internally-inconsistent state, and continuing would risk losing a
// card permanently. Game-logic outcomes (invalid combos, round ends, wins)
// are never errors; they are returned as values.

// UnknownCardError reports an id the ledger does not track.
type UnknownCardError struct {
	Card CardID
}

func (e UnknownCardError) Error() string {
	return fmt.Sprintf("unknown card id %q", e.Card)
}

// LocationMismatchError reports a move whose expected source location does
// not match the card's actual location (a stale-state bug in the caller).
type LocationMismatchError struct {
	Card     CardID
	Expected Location
	Actual   Location
}

func (e LocationMismatchError) Error() string {
	return fmt.Sprintf("card %s is at %s, not %s", e.Card, e.Actual, e.Expected)
}

// InsufficientCardsError reports a deal request the deck cannot satisfy.
// Callers treat it as resource exhaustion, not corruption: the round or
// game ends instead of aborting.
type InsufficientCardsError struct {
	Requested int
	Available int
}

func (e InsufficientCardsError) Error() string {
	return fmt.Sprintf("need %d cards but deck has %d", e.Requested, e.Available)
}

// LedgerCorruptionError reports a violated card-count invariant, with a
// per-location breakdown for diagnosis.
type LedgerCorruptionError struct {
	Expected  int
	Actual    int
	Breakdown map[string]int
}

func (e LedgerCorruptionError) Error() string {
	keys := make([]string, 0, len(e.Breakdown))
	for k := range e.Breakdown {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var sb strings.Builder
	for i, k := range keys {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%s=%d", k, e.Breakdown[k])
	}
	return fmt.Sprintf("ledger corruption: tracking %d cards, expected %d (%s)", e.Actual, e.Expected, sb.String())
}

// InvalidGameStateError reports a structurally impossible session snapshot
// (player index out of range, base slot misuse, and the like). Not retried;
// the caller should restart the game.
type InvalidGameStateError struct {
	Reason string
}

func (e InvalidGameStateError) Error() string {
	return "invalid game state: " + e.Reason
}
