package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/toocheesy/stacked/internal/bot"
	"github.com/toocheesy/stacked/internal/game"
	"github.com/toocheesy/stacked/internal/log"
	"github.com/toocheesy/stacked/internal/web"
)

// DecisionType identifies what the game engine is waiting for.
type DecisionType string

const (
	DecisionChooseMove DecisionType = "choose_move"
	DecisionGameOver   DecisionType = "game_over"
)

// PendingDecision represents a decision the game engine is waiting for.
type PendingDecision struct {
	Type   DecisionType   `json:"type"`
	Player int            `json:"player"`
	State  *web.StateView `json:"state"`
	Moves  []web.MoveView `json:"moves,omitempty"`
	Hint   *web.MoveView  `json:"hint,omitempty"`
}

// MoveResponse is sent back from the take_move tool to the controller.
type MoveResponse struct {
	Index int
}

// ToolResponse is the JSON envelope returned by all MCP tools.
type ToolResponse struct {
	Events   []web.EventView `json:"events"`
	State    *web.StateView  `json:"state,omitempty"`
	Pending  *PendingView    `json:"pending,omitempty"`
	GameOver bool            `json:"game_over"`
	Winner   int             `json:"winner,omitempty"`
	Scores   []web.ScoreView `json:"scores,omitempty"`
}

// PendingView is the pending decision as presented in the tool response JSON.
type PendingView struct {
	Type      DecisionType   `json:"type"`
	ForPlayer string         `json:"for_player"`
	Moves     []web.MoveView `json:"moves,omitempty"`
	Hint      *web.MoveView  `json:"hint,omitempty"`
}

// GameSession holds the state of a single MCP game session: the LLM sits
// in seat 0, bots fill the rest of the table.
type GameSession struct {
	match      *game.Match
	claudeCtrl *MCPController

	pendingCh      chan *PendingDecision
	currentPending *PendingDecision

	mu       sync.Mutex
	events   []web.EventView
	gameOver bool
	winner   int
	scores   []game.Score
}

// NewGameSession creates a session and starts the match in the background.
// The first pending decision arrives once the deal reaches seat 0.
func NewGameSession(modesFile, modeName string, botNames []string, seed int64) (*GameSession, error) {
	mode, err := game.ModeByName(modesFile, modeName)
	if err != nil {
		return nil, fmt.Errorf("load mode: %w", err)
	}

	sess := &GameSession{
		pendingCh: make(chan *PendingDecision, 1),
		winner:    -1,
	}
	sess.claudeCtrl = NewMCPController(0, sess)

	controllers := []game.PlayerController{sess.claudeCtrl}
	for i, name := range botNames {
		p, err := bot.ByName(name)
		if err != nil {
			return nil, err
		}
		controllers = append(controllers, bot.NewController(p, i+1, 0))
	}

	match, err := game.NewMatch(game.MatchConfig{
		Mode:   mode,
		Seed:   seed,
		Logger: log.NewMemoryLogger(),
	}, controllers...)
	if err != nil {
		return nil, err
	}
	sess.match = match

	go func() {
		winner, err := match.Run(context.Background())

		sess.mu.Lock()
		sess.gameOver = true
		sess.winner = winner
		sess.scores = match.Session.Scores()
		if err != nil {
			sess.events = append(sess.events, web.EventView{
				Type:    "Error",
				Player:  -1,
				Details: err.Error(),
			})
		}
		sess.mu.Unlock()

		sess.pendingCh <- &PendingDecision{
			Type:   DecisionGameOver,
			Player: winner,
			State:  web.BuildStateView(match.Session, 0),
		}
	}()

	return sess, nil
}

// appendEvent adds an event to the session's event log. Thread-safe.
func (s *GameSession) appendEvent(ev web.EventView) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
}

// drainEvents returns all accumulated events and clears the buffer.
func (s *GameSession) drainEvents() []web.EventView {
	s.mu.Lock()
	defer s.mu.Unlock()
	events := s.events
	s.events = nil
	return events
}

// waitForPending blocks until the next decision arrives from the game
// engine, then builds a ToolResponse with accumulated events plus the
// pending decision.
func (s *GameSession) waitForPending() (*ToolResponse, error) {
	pending := <-s.pendingCh
	s.currentPending = pending

	resp := &ToolResponse{
		Events: s.drainEvents(),
	}

	if pending.Type == DecisionGameOver {
		s.mu.Lock()
		resp.GameOver = true
		resp.Winner = s.winner
		for p, sc := range s.scores {
			resp.Scores = append(resp.Scores, web.ScoreView{Player: p, Round: sc.Round, Overall: sc.Overall})
		}
		s.mu.Unlock()
		resp.State = pending.State
		return resp, nil
	}

	resp.State = pending.State
	resp.Pending = &PendingView{
		Type:      pending.Type,
		ForPlayer: "claude",
		Moves:     pending.Moves,
		Hint:      pending.Hint,
	}
	return resp, nil
}

// respondJSON marshals a ToolResponse to a JSON string.
func respondJSON(resp *ToolResponse) string {
	data, err := json.Marshal(resp)
	if err != nil {
		return fmt.Sprintf(`{"error": "marshal error: %v"}`, err)
	}
	return string(data)
}
