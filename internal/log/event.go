package log

// EventType enumerates all observable game events.
type EventType int

const (
	EventShuffle EventType = iota
	EventDeal
	EventNewRound
	EventTurn
	EventPlace
	EventCapture
	EventInvalidMove
	EventTimerExpired
	EventRoundEnd
	EventJackpot
	EventGameOver
)

func (e EventType) String() string {
	switch e {
	case EventShuffle:
		return "Shuffle"
	case EventDeal:
		return "Deal"
	case EventNewRound:
		return "NewRound"
	case EventTurn:
		return "Turn"
	case EventPlace:
		return "Place"
	case EventCapture:
		return "Capture"
	case EventInvalidMove:
		return "InvalidMove"
	case EventTimerExpired:
		return "TimerExpired"
	case EventRoundEnd:
		return "RoundEnd"
	case EventJackpot:
		return "Jackpot"
	case EventGameOver:
		return "GameOver"
	default:
		return "Unknown"
	}
}

// GameEvent represents a single observable event in a game. Events are
// fire-and-forget notifications: the core never consumes a return value
// from whoever is listening.
type GameEvent struct {
	Seq     int       // monotonic sequence number
	Round   int       // which round (1-based)
	Player  int       // acting player (0-based), -1 when not applicable
	Type    EventType // event type
	Card    string    // card label (if applicable)
	Cards   int       // number of cards involved (captures, deals, jackpot)
	Points  int       // points awarded (captures, jackpot)
	Details string    // human-readable detail string
}
