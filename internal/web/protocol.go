package web

import (
	"time"

	"github.com/toocheesy/stacked/internal/game"
)

// Message types for the JSON protocol over the websocket.

// --- Server → Browser messages ---

// ServerMessage is the envelope for all server-to-browser messages.
type ServerMessage struct {
	Type string `json:"type"`

	// For "notify"
	Event *EventView `json:"event,omitempty"`

	// For "choose_move"
	Moves []MoveView `json:"moves,omitempty"`
	State *StateView `json:"state,omitempty"`
	Hint  *MoveView  `json:"hint,omitempty"`

	// For "game_over"
	Winner int         `json:"winner,omitempty"`
	Scores []ScoreView `json:"scores,omitempty"`

	// For "error"
	Detail string `json:"detail,omitempty"`
}

// EventView is a simplified game event for the browser.
type EventView struct {
	Round   int    `json:"round"`
	Player  int    `json:"player"`
	Type    string `json:"type"`
	Card    string `json:"card,omitempty"`
	Cards   int    `json:"cards,omitempty"`
	Points  int    `json:"points,omitempty"`
	Details string `json:"details"`
}

// MoveView is a numbered move choice.
type MoveView struct {
	Index int    `json:"index"`
	Desc  string `json:"desc"`
}

// ScoreView is one seat's scoreline.
type ScoreView struct {
	Player  int `json:"player"`
	Round   int `json:"round"`
	Overall int `json:"overall"`
}

// SeatView is the public view of one seat.
type SeatView struct {
	Player        int  `json:"player"`
	HandCount     int  `json:"hand_count"`
	CapturedCount int  `json:"captured_count"`
	Round         int  `json:"round_score"`
	Overall       int  `json:"overall_score"`
	IsDealer      bool `json:"is_dealer"`
	IsCurrent     bool `json:"is_current"`
}

// StateView is the session from one player's perspective: their own hand
// face-up, everyone else reduced to counts.
type StateView struct {
	You        int        `json:"you"`
	Round      int        `json:"round"`
	Board      []string   `json:"board"`
	Hand       []string   `json:"hand"`
	DeckCount  int        `json:"deck_count"`
	Seats      []SeatView `json:"seats"`
	IsYourTurn bool       `json:"is_your_turn"`
	TimerMs    int64      `json:"timer_ms,omitempty"` // time left in round, timed modes only
}

// --- Browser → Server messages ---

// ClientMessage is the envelope for all browser-to-server messages.
type ClientMessage struct {
	Type string `json:"type"`

	// For "start" (initial handshake)
	Mode    string   `json:"mode,omitempty"`
	Bots    []string `json:"bots,omitempty"`
	Seed    int64    `json:"seed,omitempty"`
	DelayMs int      `json:"delay_ms,omitempty"`

	// For "move"
	Index int `json:"index,omitempty"`
}

// BuildStateView creates a StateView from the perspective of the given player.
func BuildStateView(s *game.GameSession, player int) *StateView {
	sv := &StateView{
		You:        player,
		Round:      s.Round(),
		DeckCount:  s.DeckCount(),
		IsYourTurn: s.CurrentPlayer() == player,
	}
	for _, c := range s.Board() {
		sv.Board = append(sv.Board, c.String())
	}
	for _, c := range s.Hand(player) {
		sv.Hand = append(sv.Hand, c.String())
	}
	scores := s.Scores()
	for p := 0; p < s.NumPlayers(); p++ {
		sv.Seats = append(sv.Seats, SeatView{
			Player:        p,
			HandCount:     len(s.Hand(p)),
			CapturedCount: s.CapturedCount(p),
			Round:         scores[p].Round,
			Overall:       scores[p].Overall,
			IsDealer:      s.Dealer() == p,
			IsCurrent:     s.CurrentPlayer() == p,
		})
	}
	if deadline, ok := s.RoundDeadline(); ok {
		if left := time.Until(deadline); left > 0 {
			sv.TimerMs = left.Milliseconds()
		}
	}
	return sv
}
