package session

// State is the session's game phase.
type State int

const (
	StateActive   State = iota // Ship alive, simulation running
	StateGameOver              // Out of lives; only NewGame leaves this state
)

func (s State) String() string {
	switch s {
	case StateActive:
		return "active"
	case StateGameOver:
		return "game-over"
	default:
		return "unknown"
	}
}

// EventType identifies the type of session event.
type EventType int

const (
	EventLivesChanged EventType = iota
	EventScoreChanged
	EventGameOver
	EventNewGame
)

// Event reports a change the UI may want to reflect.
type Event struct {
	Type  EventType
	Lives int // Lives after the change
	Score int // Score after the change
}

// eventBuffer is the capacity of the events channel. Events past it are dropped.
const eventBuffer = 64
