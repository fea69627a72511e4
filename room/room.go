// room/room.go
package room

import (
	"errors"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/wfunc/drawparty/game"
)

// Status is a room's lifecycle phase from the directory's perspective.
type Status string

const (
	StatusWaiting Status = "waiting"
	StatusPlaying Status = "playing"
	StatusEnded   Status = "ended"
)

var (
	ErrRoomNotFound   = errors.New("room not found")
	ErrRoomFull       = errors.New("room is full")
	ErrGameInProgress = errors.New("game has already started")
	ErrInvalidRounds  = errors.New("rounds must be between 1 and 10")
)

const (
	DefaultMaxParticipants = 5
	MinParticipants        = 2
	MaxParticipants        = 8
	MinRounds              = 1
	MaxRounds              = 10

	codeLength  = 4
	codeCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// Member is one participant of a room.
type Member struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	JoinedAt time.Time `json:"joinedAt"`
}

// Room is a joinable game session identified by a short code.
type Room struct {
	Code            string
	CreatorID       string
	MaxParticipants int
	Rounds          int
	CreatedAt       time.Time

	status      Status
	members     []*Member
	statusMutex sync.RWMutex
	memberMutex sync.RWMutex
}

// Snapshot is the serializable view sent in room-updated events.
type Snapshot struct {
	Code            string    `json:"code"`
	CreatorID       string    `json:"creatorId"`
	MaxParticipants int       `json:"maxParticipants"`
	Rounds          int       `json:"rounds"`
	Status          Status    `json:"status"`
	Members         []*Member `json:"members"`
}

func (r *Room) Snapshot() Snapshot {
	r.memberMutex.RLock()
	members := make([]*Member, len(r.members))
	copy(members, r.members)
	r.memberMutex.RUnlock()

	return Snapshot{
		Code:            r.Code,
		CreatorID:       r.CreatorID,
		MaxParticipants: r.MaxParticipants,
		Rounds:          r.Rounds,
		Status:          r.GetStatus(),
		Members:         members,
	}
}

// MemberIDs returns member ids in join order.
func (r *Room) MemberIDs() []string {
	r.memberMutex.RLock()
	defer r.memberMutex.RUnlock()

	ids := make([]string, 0, len(r.members))
	for _, m := range r.members {
		ids = append(ids, m.ID)
	}
	return ids
}

// GetMember returns the member with the given id.
func (r *Room) GetMember(participantID string) (*Member, bool) {
	r.memberMutex.RLock()
	defer r.memberMutex.RUnlock()

	for _, m := range r.members {
		if m.ID == participantID {
			return m, true
		}
	}
	return nil, false
}

func (r *Room) addMember(name string) (*Member, error) {
	r.memberMutex.Lock()
	defer r.memberMutex.Unlock()

	if len(r.members) >= r.MaxParticipants {
		return nil, ErrRoomFull
	}
	member := &Member{
		ID:       uuid.New().String(),
		Name:     name,
		JoinedAt: time.Now(),
	}
	r.members = append(r.members, member)
	return member, nil
}

func (r *Room) removeMember(participantID string) bool {
	r.memberMutex.Lock()
	defer r.memberMutex.Unlock()

	for i, m := range r.members {
		if m.ID == participantID {
			r.members = append(r.members[:i], r.members[i+1:]...)
			return true
		}
	}
	return false
}

// MemberCount returns the number of current members.
func (r *Room) MemberCount() int {
	r.memberMutex.RLock()
	defer r.memberMutex.RUnlock()
	return len(r.members)
}

func (r *Room) SetStatus(status Status) {
	r.statusMutex.Lock()
	defer r.statusMutex.Unlock()
	r.status = status
}

func (r *Room) GetStatus() Status {
	r.statusMutex.RLock()
	defer r.statusMutex.RUnlock()
	return r.status
}

// Manager is the room directory: it owns every live room, keyed by code.
type Manager struct {
	rooms map[string]*Room
	mutex sync.RWMutex
}

func NewManager() *Manager {
	return &Manager{
		rooms: make(map[string]*Room),
	}
}

// CreateRoom makes a new waiting room with the given creator as its first
// member. maxParticipants outside 2..8 falls back to the default of 5;
// rounds outside 1..10 is a client error.
func (m *Manager) CreateRoom(creatorName string, maxParticipants, rounds int) (*Room, *Member, error) {
	if rounds < MinRounds || rounds > MaxRounds {
		return nil, nil, ErrInvalidRounds
	}
	if maxParticipants < MinParticipants || maxParticipants > MaxParticipants {
		maxParticipants = DefaultMaxParticipants
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()

	room := &Room{
		Code:            m.generateCodeLocked(),
		MaxParticipants: maxParticipants,
		Rounds:          rounds,
		CreatedAt:       time.Now(),
		status:          StatusWaiting,
	}
	creator, err := room.addMember(creatorName)
	if err != nil {
		return nil, nil, err
	}
	room.CreatorID = creator.ID

	m.rooms[room.Code] = room
	return room, creator, nil
}

// Join adds a named participant to a waiting room.
func (m *Manager) Join(code, name string) (*Room, *Member, error) {
	room, exists := m.GetRoom(code)
	if !exists {
		return nil, nil, ErrRoomNotFound
	}
	if room.GetStatus() != StatusWaiting {
		return nil, nil, ErrGameInProgress
	}

	member, err := room.addMember(name)
	if err != nil {
		return nil, nil, err
	}
	return room, member, nil
}

// Leave removes a participant from a room. Empty rooms are dissolved.
func (m *Manager) Leave(code, participantID string) (*Room, bool) {
	room, exists := m.GetRoom(code)
	if !exists {
		return nil, false
	}

	removed := room.removeMember(participantID)
	if removed && room.MemberCount() == 0 {
		m.RemoveRoom(code)
	}
	return room, removed
}

// GetRoom returns the room with the given code.
func (m *Manager) GetRoom(code string) (*Room, bool) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	room, exists := m.rooms[code]
	return room, exists
}

// RemoveRoom dissolves a room.
func (m *Manager) RemoveRoom(code string) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	delete(m.rooms, code)
}

// Count returns the number of live rooms.
func (m *Manager) Count() int {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return len(m.rooms)
}

// FindRoomByCode implements game.Directory.
func (m *Manager) FindRoomByCode(code string) (game.RoomInfo, bool) {
	room, exists := m.GetRoom(code)
	if !exists {
		return game.RoomInfo{}, false
	}
	return game.RoomInfo{
		Code:      room.Code,
		CreatorID: room.CreatorID,
		Rounds:    room.Rounds,
		MemberIDs: room.MemberIDs(),
	}, true
}

func (m *Manager) generateCodeLocked() string {
	for {
		buf := make([]byte, codeLength)
		for i := range buf {
			buf[i] = codeCharset[rand.Intn(len(codeCharset))]
		}
		code := string(buf)
		if _, taken := m.rooms[code]; !taken {
			return code
		}
	}
}
