// session/session.go
package session

import (
	"sync"
	"time"

	"github.com/wfunc/drawparty/network"
)

// Session is one live websocket connection. ParticipantID and RoomCode are
// bound when the client joins a room and stay empty until then.
type Session struct {
	ID            string
	Conn          network.Connection
	ParticipantID string
	RoomCode      string
	CreatedAt     time.Time
	LastActive    time.Time
	mutex         sync.RWMutex
}

func NewSession(id string, conn network.Connection) *Session {
	now := time.Now()
	return &Session{
		ID:         id,
		Conn:       conn,
		CreatedAt:  now,
		LastActive: now,
	}
}

// Bind attaches the session to a participant inside a room.
func (s *Session) Bind(participantID, roomCode string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.ParticipantID = participantID
	s.RoomCode = roomCode
}

// Binding returns the participant id and room code set by Bind.
func (s *Session) Binding() (participantID, roomCode string) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.ParticipantID, s.RoomCode
}

func (s *Session) Send(event string, data []byte) error {
	s.LastActive = time.Now()
	return s.Conn.Send(event, data)
}

func (s *Session) GetID() string {
	return s.ID
}

func (s *Session) Close() error {
	return s.Conn.Close()
}

// Manager tracks all live sessions.
type Manager struct {
	sessions map[string]*Session
	mutex    sync.RWMutex
}

func NewManager() *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
	}
}

func (m *Manager) Add(session *Session) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.sessions[session.ID] = session
}

func (m *Manager) Remove(sessionID string) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	delete(m.sessions, sessionID)
}

func (m *Manager) Get(sessionID string) (*Session, bool) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	session, exists := m.sessions[sessionID]
	return session, exists
}

// GetByParticipantID returns every session bound to the given participant.
// Usually one, but a participant can reconnect before the old socket dies.
func (m *Manager) GetByParticipantID(participantID string) []*Session {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	var result []*Session
	for _, session := range m.sessions {
		if pid, _ := session.Binding(); pid == participantID {
			result = append(result, session)
		}
	}
	return result
}

// GetByRoomCode returns every session bound to the given room.
func (m *Manager) GetByRoomCode(roomCode string) []*Session {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	var result []*Session
	for _, session := range m.sessions {
		if _, code := session.Binding(); code == roomCode {
			result = append(result, session)
		}
	}
	return result
}
