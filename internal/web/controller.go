package web

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/coder/websocket"

	"github.com/toocheesy/stacked/internal/game"
	"github.com/toocheesy/stacked/internal/log"
)

// SocketController implements game.PlayerController over a websocket
// connection: the browser is one seat at the table.
type SocketController struct {
	conn   *websocket.Conn
	player int
	mu     sync.Mutex
}

// NewSocketController creates a controller for the given connection.
func NewSocketController(conn *websocket.Conn, player int) *SocketController {
	return &SocketController{conn: conn, player: player}
}

// send writes a server message. Must be called with mu held.
func (sc *SocketController) send(ctx context.Context, msg ServerMessage) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	return sc.conn.Write(ctx, websocket.MessageText, data)
}

// recv reads a client message. Must be called with mu held.
func (sc *SocketController) recv(ctx context.Context) (ClientMessage, error) {
	_, data, err := sc.conn.Read(ctx)
	if err != nil {
		return ClientMessage{}, err
	}
	var msg ClientMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return ClientMessage{}, err
	}
	return msg, nil
}

// ChooseMove implements game.PlayerController.
func (sc *SocketController) ChooseMove(ctx context.Context, s *game.GameSession, moves []game.Move) (game.Move, error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	var views []MoveView
	for i, m := range moves {
		views = append(views, MoveView{Index: i, Desc: m.Desc})
	}
	msg := ServerMessage{
		Type:  "choose_move",
		Moves: views,
		State: BuildStateView(s, sc.player),
	}
	if opt := game.Hint(s.Hand(sc.player), s.Board(), s.Mode()); opt != nil {
		hint := opt.Move()
		for i, m := range moves {
			if m.Desc == hint.Desc {
				msg.Hint = &MoveView{Index: i, Desc: m.Desc}
				break
			}
		}
	}
	if err := sc.send(ctx, msg); err != nil {
		return game.Move{}, fmt.Errorf("send choose_move: %w", err)
	}

	resp, err := sc.recv(ctx)
	if err != nil {
		return game.Move{}, fmt.Errorf("recv move: %w", err)
	}
	if resp.Index < 0 || resp.Index >= len(moves) {
		return moves[0], nil // fallback to first move
	}
	return moves[resp.Index], nil
}

// SendGameOver sends a game_over message to the browser.
func (sc *SocketController) SendGameOver(ctx context.Context, winner int, scores []game.Score) error {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	msg := ServerMessage{Type: "game_over", Winner: winner}
	for p, s := range scores {
		msg.Scores = append(msg.Scores, ScoreView{Player: p, Round: s.Round, Overall: s.Overall})
	}
	return sc.send(ctx, msg)
}

// Notify implements game.PlayerController.
func (sc *SocketController) Notify(ctx context.Context, event log.GameEvent) error {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.send(ctx, ServerMessage{
		Type: "notify",
		Event: &EventView{
			Round:   event.Round,
			Player:  event.Player,
			Type:    event.Type.String(),
			Card:    event.Card,
			Cards:   event.Cards,
			Points:  event.Points,
			Details: event.Details,
		},
	})
}
