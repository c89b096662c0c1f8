package mcp

import (
	"context"

	"github.com/toocheesy/stacked/internal/game"
	"github.com/toocheesy/stacked/internal/log"
	"github.com/toocheesy/stacked/internal/web"
)

// MCPController implements game.PlayerController by publishing decisions
// to the session's pending channel and blocking on a response channel
// until a tool call answers.
type MCPController struct {
	player     int
	session    *GameSession
	responseCh chan MoveResponse
}

// NewMCPController creates a controller for the given seat.
func NewMCPController(player int, session *GameSession) *MCPController {
	return &MCPController{
		player:     player,
		session:    session,
		responseCh: make(chan MoveResponse),
	}
}

// ChooseMove implements game.PlayerController.
func (c *MCPController) ChooseMove(ctx context.Context, s *game.GameSession, moves []game.Move) (game.Move, error) {
	var views []web.MoveView
	for i, m := range moves {
		views = append(views, web.MoveView{Index: i, Desc: m.Desc})
	}

	pending := &PendingDecision{
		Type:   DecisionChooseMove,
		Player: c.player,
		State:  web.BuildStateView(s, c.player),
		Moves:  views,
	}
	if opt := game.Hint(s.Hand(c.player), s.Board(), s.Mode()); opt != nil {
		hint := opt.Move()
		for i, m := range moves {
			if m.Desc == hint.Desc {
				pending.Hint = &web.MoveView{Index: i, Desc: m.Desc}
				break
			}
		}
	}
	c.session.pendingCh <- pending

	select {
	case <-ctx.Done():
		return game.Move{}, ctx.Err()
	case resp := <-c.responseCh:
		if resp.Index < 0 || resp.Index >= len(moves) {
			return moves[0], nil
		}
		return moves[resp.Index], nil
	}
}

// Notify implements game.PlayerController. Only this controller appends
// to the session event log; the bot seats stay silent.
func (c *MCPController) Notify(ctx context.Context, event log.GameEvent) error {
	c.session.appendEvent(web.EventView{
		Round:   event.Round,
		Player:  event.Player,
		Type:    event.Type.String(),
		Card:    event.Card,
		Cards:   event.Cards,
		Points:  event.Points,
		Details: event.Details,
	})
	return nil
}
