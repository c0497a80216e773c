package core

// EventKind classifies a gameplay notification emitted by a tick.
type EventKind int

const (
	EventJump EventKind = iota
	EventStomp
	EventCoin
	EventLevelClear
	EventDeath
	EventPowerUp
	EventPowerDown
	EventBump
	EventItemSpawned
	EventHazardContact
	EventFellOutOfBounds
	EventProgressSaved
	EventGameOver
)

// String returns a human-readable name for the event kind.
func (k EventKind) String() string {
	switch k {
	case EventJump:
		return "Jump"
	case EventStomp:
		return "Stomp"
	case EventCoin:
		return "Coin"
	case EventLevelClear:
		return "LevelClear"
	case EventDeath:
		return "Death"
	case EventPowerUp:
		return "PowerUp"
	case EventPowerDown:
		return "PowerDown"
	case EventBump:
		return "Bump"
	case EventItemSpawned:
		return "ItemSpawned"
	case EventHazardContact:
		return "HazardContact"
	case EventFellOutOfBounds:
		return "FellOutOfBounds"
	case EventProgressSaved:
		return "ProgressSaved"
	case EventGameOver:
		return "GameOver"
	default:
		return "Unknown"
	}
}

// Event is one record produced by the simulation for external consumers
// (audio, persistence, logging). Fields not relevant to a kind stay zero.
type Event struct {
	Kind  EventKind
	Slot  string // Save slot ("1".."3"), ProgressSaved and GameOver
	World int    // World index at the time of the event
	Level int    // Level slot at the time of the event
	Won   bool   // GameOver only
	Coins int    // GameOver only
	Actor string // Character name, when a character caused the event
}

// Events accumulates the records of a single tick.
type Events []Event

// Emit appends an event.
func (e *Events) Emit(ev Event) {
	*e = append(*e, ev)
}

// Has reports whether an event of the given kind was recorded.
func (e Events) Has(kind EventKind) bool {
	for _, ev := range e {
		if ev.Kind == kind {
			return true
		}
	}
	return false
}

// Count returns how many events of the given kind were recorded.
func (e Events) Count(kind EventKind) int {
	n := 0
	for _, ev := range e {
		if ev.Kind == kind {
			n++
		}
	}
	return n
}
