package game

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/toocheesy/stacked/internal/log"
)

// SessionConfig holds configuration for creating a new game session.
type SessionConfig struct {
	Mode       ModePolicy
	NumPlayers int   // default 3 (one human seat, two bots)
	Seed       int64 // RNG seed (0 for random)
	NoShuffle  bool  // skip shuffling (for deterministic tests)
	Logger     log.EventLogger
}

// MoveResult is the outcome of a submitted move. Rejections are normal,
// recoverable interactions; the game state is unchanged and the player may
// retry.
type MoveResult struct {
	Accepted   bool
	Detail     string
	Capture    *CaptureResult // set for capture submissions
	Phase      Phase
	NextPlayer int
	Round      int
}

type lastActionTag int

const (
	lastNone lastActionTag = iota
	lastPlace
	lastCapture
)

// GameSession owns one ledger, the turn/round/game state machine, and the
// active mode policy. Dependencies are passed explicitly; nothing is
// looked up from ambient scope. All mutating calls must be serialized by
// the caller (one control loop, per the single-mutation-in-flight rule).
type GameSession struct {
	ledger       *Ledger
	mode         ModePolicy
	numPlayers   int
	round        int
	dealer       int
	current      int
	lastCapturer int // -1 until a capture happens this round
	phase        Phase
	winner       int // -1 until game over
	scores       []Score
	rng          *rand.Rand
	noShuffle    bool
	logger       log.EventLogger
	roundStart   time.Time
}

// NewSession creates a session and deals the first round.
func NewSession(cfg SessionConfig) (*GameSession, error) {
	mode := cfg.Mode
	if mode == nil {
		mode = ClassicMode()
	}
	numPlayers := cfg.NumPlayers
	if numPlayers == 0 {
		numPlayers = 3
	}
	if numPlayers < 2 || numPlayers*mode.HandSize()+mode.BoardSize() > DeckSize {
		return nil, InvalidGameStateError{Reason: fmt.Sprintf("unplayable configuration: %d players", numPlayers)}
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewMemoryLogger()
	}

	s := &GameSession{
		ledger:       NewLedger(),
		mode:         mode,
		numPlayers:   numPlayers,
		dealer:       -1,
		lastCapturer: -1,
		winner:       -1,
		scores:       make([]Score, numPlayers),
		rng:          rand.New(rand.NewSource(seed)),
		noShuffle:    cfg.NoShuffle,
		logger:       logger,
	}
	if err := s.startRound(); err != nil {
		return nil, err
	}
	return s, nil
}

// --- Read-only accessors ---

func (s *GameSession) Mode() ModePolicy   { return s.mode }
func (s *GameSession) NumPlayers() int    { return s.numPlayers }
func (s *GameSession) Round() int         { return s.round }
func (s *GameSession) Dealer() int        { return s.dealer }
func (s *GameSession) CurrentPlayer() int { return s.current }
func (s *GameSession) LastCapturer() int  { return s.lastCapturer }
func (s *GameSession) Phase() Phase       { return s.phase }
func (s *GameSession) Winner() int        { return s.winner }
func (s *GameSession) Over() bool         { return s.phase == PhaseGameOver }

// Scores returns a copy of the per-player scores.
func (s *GameSession) Scores() []Score {
	return append([]Score(nil), s.scores...)
}

// Hand returns the ordered snapshot of a player's hand.
func (s *GameSession) Hand(player int) []Card {
	return s.ledger.Query(HandLoc(player))
}

// Board returns the ordered snapshot of the board.
func (s *GameSession) Board() []Card {
	return s.ledger.Query(BoardLoc())
}

// DeckCount returns the number of undealt cards.
func (s *GameSession) DeckCount() int {
	return s.ledger.Count(DeckLoc())
}

// CapturedCount returns the size of a player's capture pile.
func (s *GameSession) CapturedCount(player int) int {
	return s.ledger.Count(CapturedLoc(player))
}

// RoundDeadline returns the wall-clock deadline of the current round, and
// false when the active mode is untimed.
func (s *GameSession) RoundDeadline() (time.Time, bool) {
	if t := s.mode.RoundTimer(); t > 0 {
		return s.roundStart.Add(t), true
	}
	return time.Time{}, false
}

// --- Move submission ---

// SubmitPlace places one hand card onto the board and passes the turn.
func (s *GameSession) SubmitPlace(player int, card CardID) (MoveResult, error) {
	if player < 0 || player >= s.numPlayers {
		return MoveResult{}, InvalidGameStateError{Reason: fmt.Sprintf("player index %d out of range", player)}
	}
	if r, ok := s.guard(player); !ok {
		return r, nil
	}
	if err := s.ledger.MoveCard(card, HandLoc(player), BoardLoc(), -1); err != nil {
		return MoveResult{}, err
	}
	if err := s.ledger.InvariantCheck(); err != nil {
		return MoveResult{}, err
	}
	c, _, _ := s.ledger.Lookup(card)
	s.emit(log.NewPlaceEvent(s.round, player, c.String()))
	if err := s.advance(lastPlace); err != nil {
		return MoveResult{}, err
	}
	return s.accepted(nil), nil
}

// SubmitCapture stages the named cards into the combo slots, validates the
// submission, and either captures all valid areas plus the base as one
// event or restores every staged card to exactly where it was. Combo slots
// must be empty before any new move begins.
func (s *GameSession) SubmitCapture(player int, base CardID, areas map[ComboSlot][]CardID) (MoveResult, error) {
	if player < 0 || player >= s.numPlayers {
		return MoveResult{}, InvalidGameStateError{Reason: fmt.Sprintf("player index %d out of range", player)}
	}
	if r, ok := s.guard(player); !ok {
		return r, nil
	}
	for _, slot := range append([]ComboSlot{SlotBase}, AreaSlots[:]...) {
		if s.ledger.Count(ComboLoc(slot)) != 0 {
			return MoveResult{}, InvalidGameStateError{Reason: "combo slots not empty at move start"}
		}
	}

	if err := s.ledger.MoveToComboSlot(base, SlotBase); err != nil {
		return MoveResult{}, err
	}
	for _, slot := range AreaSlots {
		for _, id := range areas[slot] {
			if err := s.ledger.MoveToComboSlot(id, slot); err != nil {
				return MoveResult{}, err
			}
		}
	}

	result, err := ValidateStagedCapture(s.ledger, s.mode)
	if err != nil {
		return MoveResult{}, err
	}

	if !result.Valid {
		if err := s.ledger.ResetAllCombo(); err != nil {
			return MoveResult{}, err
		}
		if err := s.ledger.InvariantCheck(); err != nil {
			return MoveResult{}, err
		}
		s.emit(log.NewInvalidMoveEvent(s.round, player, result.Detail))
		r := s.accepted(&result)
		r.Accepted = false
		r.Detail = result.Detail
		return r, nil
	}

	ids := make([]CardID, len(result.Cards))
	for i, c := range result.Cards {
		ids[i] = c.ID
	}
	if err := s.ledger.Capture(ids, player); err != nil {
		return MoveResult{}, err
	}
	if err := s.ledger.InvariantCheck(); err != nil {
		return MoveResult{}, err
	}

	s.scores[player].Round += result.Points
	s.scores[player].Overall += result.Points
	s.lastCapturer = player

	baseCard := result.Cards[0]
	s.emit(log.NewCaptureEvent(s.round, player, baseCard.String(), len(result.Cards), result.Points, captureTypes(result)))

	if err := s.advance(lastCapture); err != nil {
		return MoveResult{}, err
	}
	return s.accepted(&result), nil
}

// ForceRoundEnd resolves the round immediately, as if all hands had
// emptied naturally. Remaining hand cards are placed onto the board first
// so the jackpot (and the 52-card invariant) still hold. Used by timed
// modes on round-timer expiry.
func (s *GameSession) ForceRoundEnd() error {
	if s.phase != PhaseAwaitingMove {
		return nil
	}
	s.emit(log.NewTimerExpiredEvent(s.round))
	for p := 0; p < s.numPlayers; p++ {
		for _, c := range s.Hand(p) {
			if err := s.ledger.MoveCard(c.ID, HandLoc(p), BoardLoc(), -1); err != nil {
				return err
			}
		}
	}
	if err := s.ledger.InvariantCheck(); err != nil {
		return err
	}
	return s.resolveRound()
}

// --- Internals ---

// guard returns a rejection result when the move cannot be accepted at
// all: wrong phase or an out-of-turn player.
func (s *GameSession) guard(player int) (MoveResult, bool) {
	if s.phase != PhaseAwaitingMove {
		return MoveResult{Detail: "no move expected in phase " + s.phase.String(), Phase: s.phase}, false
	}
	if player != s.current {
		return MoveResult{Detail: fmt.Sprintf("it is not player %d's turn", player), Phase: s.phase, NextPlayer: s.current, Round: s.round}, false
	}
	return MoveResult{}, true
}

func (s *GameSession) accepted(capture *CaptureResult) MoveResult {
	return MoveResult{
		Accepted:   true,
		Capture:    capture,
		Phase:      s.phase,
		NextPlayer: s.current,
		Round:      s.round,
	}
}

// advance runs the next-player selection of the state machine. The last
// action is tagged explicitly by whichever submission just completed: a
// capture can empty a hand just like a place can, so the tag rather than
// a hand-size delta decides whether the turn continues.
func (s *GameSession) advance(tag lastActionTag) error {
	if tag == lastCapture && s.ledger.Count(HandLoc(s.current)) > 0 {
		return nil // same player continues after a capture
	}

	// Forward search from the next seat for a player holding cards.
	for i := 1; i < s.numPlayers; i++ {
		p := (s.current + i) % s.numPlayers
		if s.ledger.Count(HandLoc(p)) > 0 {
			s.current = p
			s.emit(log.NewTurnEvent(s.round, p))
			return nil
		}
	}

	// No player has cards. Redeal hands mid-round while the deck allows.
	need := s.numPlayers * s.mode.HandSize()
	if s.DeckCount() >= need {
		if err := s.dealHands(); err != nil {
			return err
		}
		s.current = (s.dealer + 1) % s.numPlayers
		s.emit(log.NewTurnEvent(s.round, s.current))
		return nil
	}

	return s.resolveRound()
}

// resolveRound applies the jackpot, checks the win condition, and either
// ends the game or rotates the dealer into a fresh round.
func (s *GameSession) resolveRound() error {
	s.phase = PhaseRoundResolution

	// Last combo takes all: the final capturer sweeps the leftover board.
	board := s.Board()
	if len(board) > 0 && s.lastCapturer >= 0 {
		points := s.mode.Scoring().TotalPoints(board)
		ids := make([]CardID, len(board))
		for i, c := range board {
			ids[i] = c.ID
		}
		if err := s.ledger.Capture(ids, s.lastCapturer); err != nil {
			return err
		}
		if err := s.ledger.InvariantCheck(); err != nil {
			return err
		}
		s.scores[s.lastCapturer].Round += points
		s.scores[s.lastCapturer].Overall += points
		s.emit(log.NewJackpotEvent(s.round, s.lastCapturer, len(board), points))
	}

	roundScores := make([]int, s.numPlayers)
	for i := range s.scores {
		roundScores[i] = s.scores[i].Round
	}
	s.emit(log.NewRoundEndEvent(s.round, roundScores))

	// Win check happens only here, after the jackpot, so the jackpot can
	// itself trigger the win. Ties at the top play another round.
	best, bestAt, tied := -1, -1, false
	for i, sc := range s.scores {
		if sc.Overall > best {
			best, bestAt, tied = sc.Overall, i, false
		} else if sc.Overall == best {
			tied = true
		}
	}
	if best >= s.mode.TargetScore() && !tied {
		s.phase = PhaseGameOver
		s.winner = bestAt
		s.emit(log.NewGameOverEvent(s.round, bestAt, best))
		return nil
	}

	return s.startRound()
}

// startRound gathers every card back to the deck, rotates the dealer,
// shuffles, deals, and hands the lead to the player left of the dealer.
func (s *GameSession) startRound() error {
	if s.round > 0 {
		if err := s.ledger.GatherAll(); err != nil {
			return err
		}
	}
	s.round++
	if s.dealer < 0 {
		// First round: the human seat (player 0) leads, so the dealer
		// button starts on the last seat.
		s.dealer = s.numPlayers - 1
	} else {
		s.dealer = (s.dealer + 1) % s.numPlayers
	}
	s.lastCapturer = -1
	for i := range s.scores {
		s.scores[i].Round = 0
	}

	if !s.noShuffle {
		s.ledger.Shuffle(s.rng)
		s.emit(log.NewShuffleEvent(s.round))
	}

	s.current = (s.dealer + 1) % s.numPlayers
	s.emit(log.NewRoundEvent(s.round, s.dealer, s.current))

	if err := s.ledger.Deal(s.numPlayers, s.mode.HandSize(), s.mode.BoardSize()); err != nil {
		return err
	}
	if err := s.ledger.InvariantCheck(); err != nil {
		return err
	}
	s.emit(log.NewDealEvent(s.round, s.numPlayers, s.mode.HandSize(), s.mode.BoardSize()))

	s.phase = PhaseAwaitingMove
	s.roundStart = time.Now()
	return nil
}

// dealHands deals a fresh hand to every player mid-round (board persists).
func (s *GameSession) dealHands() error {
	for i := 0; i < s.mode.HandSize(); i++ {
		for p := 0; p < s.numPlayers; p++ {
			if _, err := s.ledger.DealFromDeck(1, HandLoc(p)); err != nil {
				return err
			}
		}
	}
	if err := s.ledger.InvariantCheck(); err != nil {
		return err
	}
	s.emit(log.NewDealEvent(s.round, s.numPlayers, s.mode.HandSize(), 0))
	return nil
}

func (s *GameSession) emit(e log.GameEvent) {
	s.logger.Log(e)
}

func captureTypes(res CaptureResult) string {
	seen := make(map[CaptureType]bool)
	var parts []string
	for _, a := range res.Areas {
		if a.Valid && !seen[a.Type] {
			seen[a.Type] = true
			parts = append(parts, a.Type.String())
		}
	}
	return strings.Join(parts, "+")
}
