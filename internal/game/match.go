package game

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/toocheesy/stacked/internal/log"
)

// PlayerController is the interface every seat implements: the human input
// layer (terminal, browser, MCP) and the bot scheduler alike. The core
// presents legal moves and consumes one choice; it never hands out mutable
// ledger state.
type PlayerController interface {
	// ChooseMove presents the legal moves and waits for the seat to pick
	// one. The context carries the round deadline in timed modes.
	ChooseMove(ctx context.Context, s *GameSession, moves []Move) (Move, error)

	// Notify sends a game event notification (fire-and-forget).
	Notify(ctx context.Context, event log.GameEvent) error
}

// MatchConfig holds configuration for creating a new match.
type MatchConfig struct {
	Mode      ModePolicy
	Logger    log.EventLogger
	Seed      int64 // RNG seed (0 for random)
	NoShuffle bool  // skip shuffling (for deterministic tests)
	MaxMoves  int   // stop after this many accepted moves (0 = no limit)
}

// Match drives an entire game: one session, one controller per seat, one
// sequential control loop. Exactly one move is ever in flight, which is
// what keeps the 52-card invariant safe without locking.
type Match struct {
	Session     *GameSession
	Controllers []PlayerController
	Logger      log.EventLogger
	ctx         context.Context
	maxMoves    int
}

// NewMatch creates a match for the given controllers (one per seat).
func NewMatch(cfg MatchConfig, controllers ...PlayerController) (*Match, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewMemoryLogger()
	}

	m := &Match{
		Controllers: controllers,
		Logger:      logger,
		ctx:         context.Background(),
		maxMoves:    cfg.MaxMoves,
	}
	if m.maxMoves == 0 {
		m.maxMoves = 5000 // safety limit
	}

	session, err := NewSession(SessionConfig{
		Mode:       cfg.Mode,
		NumPlayers: len(controllers),
		Seed:       cfg.Seed,
		NoShuffle:  cfg.NoShuffle,
		Logger:     &fanoutLogger{match: m},
	})
	if err != nil {
		return nil, err
	}
	m.Session = session
	return m, nil
}

// Run executes the match loop until the game ends. Returns the winner's
// seat index.
func (m *Match) Run(ctx context.Context) (int, error) {
	m.ctx = ctx
	s := m.Session

	moveCount := 0
	rejections := 0
	for !s.Over() {
		if err := ctx.Err(); err != nil {
			return -1, err
		}
		if moveCount >= m.maxMoves {
			return -1, fmt.Errorf("move limit reached (%d moves)", m.maxMoves)
		}

		deadline, timed := s.RoundDeadline()
		if timed && time.Now().After(deadline) {
			if err := s.ForceRoundEnd(); err != nil {
				return -1, err
			}
			continue
		}

		player := s.CurrentPlayer()
		moves := LegalMoves(s, player)
		if len(moves) == 0 {
			return -1, InvalidGameStateError{Reason: fmt.Sprintf("player %d has no legal moves", player)}
		}

		chooseCtx := ctx
		cancel := context.CancelFunc(func() {})
		if timed {
			chooseCtx, cancel = context.WithDeadline(ctx, deadline)
		}
		chosen, err := m.Controllers[player].ChooseMove(chooseCtx, s, moves)
		cancel()
		if err != nil {
			if timed && errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
				if err := s.ForceRoundEnd(); err != nil {
					return -1, err
				}
				continue
			}
			return -1, err
		}

		res, err := m.submit(player, chosen)
		if err != nil {
			return -1, err
		}
		if !res.Accepted {
			// State is unchanged; the seat may fix the combo and retry.
			// A seat that keeps submitting invalid moves forfeits the
			// turn by placing its first card instead of looping forever.
			rejections++
			if rejections < 3 {
				continue
			}
			hand := s.Hand(player)
			if len(hand) == 0 {
				return -1, InvalidGameStateError{Reason: "rejected move from a player with no cards"}
			}
			if _, err := s.SubmitPlace(player, hand[0].ID); err != nil {
				return -1, err
			}
		}
		rejections = 0
		moveCount++
	}

	return s.Winner(), nil
}

func (m *Match) submit(player int, move Move) (MoveResult, error) {
	switch move.Type {
	case MovePlace:
		return m.Session.SubmitPlace(player, move.Card)
	case MoveCapture:
		return m.Session.SubmitCapture(player, move.Base, move.Areas)
	default:
		return MoveResult{}, InvalidGameStateError{Reason: fmt.Sprintf("unknown move type %d", move.Type)}
	}
}

// fanoutLogger forwards session events to the match logger and every
// controller, so the renderer/audio boundary and remote seats all observe
// the same stream.
type fanoutLogger struct {
	match *Match
}

func (l *fanoutLogger) Log(event log.GameEvent) {
	l.match.Logger.Log(event)
	for _, c := range l.match.Controllers {
		_ = c.Notify(l.match.ctx, event)
	}
}

func (l *fanoutLogger) Events() []log.GameEvent {
	return l.match.Logger.Events()
}
