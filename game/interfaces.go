// game/interfaces.go
package game

import "time"

// RoomInfo is the directory's view of a room at the moment of a lookup.
// MemberIDs is ordered by join time and becomes the draw order on game start.
type RoomInfo struct {
	Code      string
	CreatorID string
	Rounds    int
	MemberIDs []string
}

// Directory resolves room codes to current membership and configuration.
// Membership must reflect joins and leaves synchronously relative to engine
// calls; the engine never mutates the directory.
type Directory interface {
	FindRoomByCode(code string) (RoomInfo, bool)
}

// Broadcaster delivers events to a room's subscribers or to one participant.
// Calls are issued synchronously in emission order; delivery reliability is
// the broadcaster's concern.
type Broadcaster interface {
	ToRoom(roomCode, event string, payload interface{}) error
	ToParticipant(participantID, event string, payload interface{}) error
}

// WordSource produces distinct random word candidates.
type WordSource interface {
	Pick(count int) ([]string, error)
}

// TimerService schedules cancelable callbacks. Satisfied by timer.Manager.
type TimerService interface {
	AddTimer(delay time.Duration, interval time.Duration, callback func()) int64
	RemoveTimer(timerID int64)
}

// Metrics receives engine-level counters. Satisfied by monitor.Monitor.
type Metrics interface {
	GameStarted()
	GameEnded()
	TurnCompleted(duration time.Duration)
	GuessReceived(correct bool)
}

// Recorder persists the outcome of a finished game.
type Recorder interface {
	RecordGameResult(roomCode string, scores map[string]int, rounds int) error
}

// NopMetrics discards all observations.
type NopMetrics struct{}

func (NopMetrics) GameStarted()                      {}
func (NopMetrics) GameEnded()                        {}
func (NopMetrics) TurnCompleted(time.Duration)       {}
func (NopMetrics) GuessReceived(bool)                {}
