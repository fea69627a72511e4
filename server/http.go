package server

import (
	"encoding/json"
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/wfunc/drawparty/logger"
	"github.com/wfunc/drawparty/room"
)

const defaultRounds = 3

type createRoomRequest struct {
	CreatorName     string `json:"creatorName"`
	MaxParticipants int    `json:"maxParticipants"`
	Rounds          int    `json:"rounds"`
}

type joinRoomRequest struct {
	UserName string `json:"userName"`
	RoomCode string `json:"roomCode"`
}

type roomResponse struct {
	Room        room.Snapshot `json:"room"`
	Participant *room.Member  `json:"participant"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *GameServer) handleCreateRoom(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "method not allowed"})
		return
	}
	if !s.limiter.allow(clientIP(r)) {
		writeJSON(w, http.StatusTooManyRequests, errorResponse{Error: "too many requests"})
		return
	}

	var req createRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.CreatorName == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "creatorName is required"})
		return
	}
	if req.Rounds == 0 {
		req.Rounds = defaultRounds
	}

	newRoom, creator, err := s.roomManager.CreateRoom(req.CreatorName, req.MaxParticipants, req.Rounds)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	s.mon.SetActiveRooms(s.roomManager.Count())
	logger.Log.Infof("Room %s created by %s", newRoom.Code, creator.ID)
	writeJSON(w, http.StatusCreated, roomResponse{Room: newRoom.Snapshot(), Participant: creator})
}

func (s *GameServer) handleJoinRoom(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "method not allowed"})
		return
	}
	if !s.limiter.allow(clientIP(r)) {
		writeJSON(w, http.StatusTooManyRequests, errorResponse{Error: "too many requests"})
		return
	}

	var req joinRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.UserName == "" || req.RoomCode == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "userName and roomCode are required"})
		return
	}

	joined, member, err := s.roomManager.Join(req.RoomCode, req.UserName)
	switch err {
	case nil:
	case room.ErrRoomNotFound:
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
		return
	case room.ErrRoomFull:
		writeJSON(w, http.StatusForbidden, errorResponse{Error: err.Error()})
		return
	case room.ErrGameInProgress:
		writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
		return
	default:
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
		return
	}

	s.emitRoomUpdate(req.RoomCode)
	writeJSON(w, http.StatusOK, roomResponse{Room: joined.Snapshot(), Participant: member})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// ipLimiter throttles the room API per client address: 10 requests per
// minute, matching the join/create abuse window.
type ipLimiter struct {
	mu       sync.Mutex
	visitors map[string]*rate.Limiter
}

func newIPLimiter() *ipLimiter {
	return &ipLimiter{
		visitors: make(map[string]*rate.Limiter),
	}
}

func (l *ipLimiter) allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	limiter, exists := l.visitors[ip]
	if !exists {
		limiter = rate.NewLimiter(rate.Every(time.Minute/10), 10)
		l.visitors[ip] = limiter
	}
	return limiter.Allow()
}
