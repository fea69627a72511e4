// broadcast/broadcast.go
package broadcast

import (
	"encoding/json"
	"errors"

	"github.com/wfunc/drawparty/room"
	"github.com/wfunc/drawparty/session"
)

var (
	ErrRoomNotFound        = errors.New("room not found")
	ErrParticipantNotFound = errors.New("participant has no live session")
)

// RoomBroadcaster fans events out to the sessions subscribed to a room's
// channel. It implements game.Broadcaster.
type RoomBroadcaster struct {
	roomManager    *room.Manager
	sessionManager *session.Manager
}

func NewRoomBroadcaster(roomManager *room.Manager, sessionManager *session.Manager) *RoomBroadcaster {
	return &RoomBroadcaster{
		roomManager:    roomManager,
		sessionManager: sessionManager,
	}
}

// ToRoom delivers an event to every session bound to the room. Individual
// send failures are skipped; a dead socket is cleaned up by its read loop.
func (b *RoomBroadcaster) ToRoom(roomCode, event string, payload interface{}) error {
	if _, exists := b.roomManager.GetRoom(roomCode); !exists {
		return ErrRoomNotFound
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	for _, s := range b.sessionManager.GetByRoomCode(roomCode) {
		if err := s.Send(event, data); err != nil {
			continue
		}
	}
	return nil
}

// ToParticipant delivers an event to one participant's session(s) only.
func (b *RoomBroadcaster) ToParticipant(participantID, event string, payload interface{}) error {
	sessions := b.sessionManager.GetByParticipantID(participantID)
	if len(sessions) == 0 {
		return ErrParticipantNotFound
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	for _, s := range sessions {
		if err := s.Send(event, data); err != nil {
			continue
		}
	}
	return nil
}

// ToRoomExcept delivers an event to every session in the room except the
// given session id. Used for the canvas path relay.
func (b *RoomBroadcaster) ToRoomExcept(roomCode, exceptSessionID, event string, payload interface{}) error {
	if _, exists := b.roomManager.GetRoom(roomCode); !exists {
		return ErrRoomNotFound
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	for _, s := range b.sessionManager.GetByRoomCode(roomCode) {
		if s.GetID() == exceptSessionID {
			continue
		}
		if err := s.Send(event, data); err != nil {
			continue
		}
	}
	return nil
}
