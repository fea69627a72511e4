package server

import (
	"encoding/json"
	"net/http"
	"net/rpc"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/wfunc/drawparty/broadcast"
	"github.com/wfunc/drawparty/config"
	"github.com/wfunc/drawparty/game"
	"github.com/wfunc/drawparty/logger"
	"github.com/wfunc/drawparty/monitor"
	"github.com/wfunc/drawparty/network"
	"github.com/wfunc/drawparty/persistence"
	"github.com/wfunc/drawparty/room"
	drawparty_rpc "github.com/wfunc/drawparty/rpc"
	"github.com/wfunc/drawparty/services"
	"github.com/wfunc/drawparty/session"
	"github.com/wfunc/drawparty/timer"
	"github.com/wfunc/drawparty/words"
)

// Server-originated event names; the game engine owns the rest.
const (
	EventRoomUpdated = "room-updated"
	EventReceivePath = "receive-path"
)

type GameServer struct {
	addr           string
	upgrader       websocket.Upgrader
	roomManager    *room.Manager
	sessionManager *session.Manager
	broadcaster    *broadcast.RoomBroadcaster
	engine         *game.Engine
	bridge         *game.Bridge
	records        *services.RecordService
	db             persistence.Database
	mon            *monitor.Monitor
	timers         *timer.Manager
	rpcServer      *drawparty_rpc.Server
	limiter        *ipLimiter
	monitorAddr    string
	shutdownChan   chan struct{}
}

func NewGameServer(cfg *config.Config, db persistence.Database) *GameServer {
	s := &GameServer{
		addr:           cfg.Server.HTTPAddress,
		monitorAddr:    cfg.Server.MonitorAddress,
		roomManager:    room.NewManager(),
		sessionManager: session.NewManager(),
		db:             db,
		mon:            monitor.NewMonitor("drawparty"),
		timers:         timer.NewManager(),
		limiter:        newIPLimiter(),
		shutdownChan:   make(chan struct{}),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}

	s.broadcaster = broadcast.NewRoomBroadcaster(s.roomManager, s.sessionManager)
	s.records = services.NewRecordService(db)

	s.engine = game.NewEngine(s.roomManager, s.broadcaster, words.NewSelector(nil), s.timers)
	s.engine.SetLogger(logger.Log)
	s.engine.SetMetrics(s.mon)
	s.engine.SetTurnDuration(cfg.Game.TurnDuration())
	s.engine.SetRecorder(&gameRecorder{server: s})

	s.bridge = game.NewBridge(s.engine, s.roomManager, s.broadcaster)

	rpcServer, err := drawparty_rpc.NewServer(cfg.Server.RPCAddress)
	if err != nil {
		logger.Log.Fatalf("Failed to create RPC server: %v", err)
	}
	s.rpcServer = rpcServer

	adminService := drawparty_rpc.NewAdminService(s.records, s.engine)
	rpc.Register(adminService)

	return s
}

func (s *GameServer) Start() error {
	go s.rpcServer.Start()
	s.mon.StartServer(s.monitorAddr)

	mux := http.NewServeMux()
	mux.HandleFunc("/api/rooms/create", s.handleCreateRoom)
	mux.HandleFunc("/api/rooms/join", s.handleJoinRoom)
	mux.HandleFunc("/ws", s.handleWebSocket)

	logger.Log.Infof("Game server listening on %s", s.addr)
	return http.ListenAndServe(s.addr, mux)
}

func (s *GameServer) Shutdown() {
	close(s.shutdownChan)
	s.rpcServer.Stop()
	s.timers.Stop()
}

func (s *GameServer) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Log.Infof("Failed to upgrade connection: %v", err)
		return
	}
	s.handleConnection(conn)
}

func (s *GameServer) handleConnection(conn *websocket.Conn) {
	wsConn := network.NewWSConnection(conn)
	sess := session.NewSession(uuid.New().String(), wsConn)
	s.sessionManager.Add(sess)
	s.mon.IncOnlineParticipants()

	logger.Log.Infof("New connection from %s, session ID: %s", wsConn.RemoteAddr(), sess.GetID())

	defer func() {
		logger.Log.Infof("Connection closed from %s, session ID: %s", wsConn.RemoteAddr(), sess.GetID())
		s.sessionManager.Remove(sess.GetID())
		s.mon.DecOnlineParticipants()
		s.handleLeave(sess)
		wsConn.Close()
	}()

	for {
		select {
		case <-s.shutdownChan:
			return
		default:
			env, err := wsConn.ReadEnvelope()
			if err != nil {
				return
			}
			s.handleEnvelope(sess, env)
		}
	}
}

func (s *GameServer) handleEnvelope(sess *session.Session, env *network.Envelope) {
	s.mon.IncRequests()

	switch env.Event {
	case network.EventJoinRoom:
		s.handleJoinRoomEvent(sess, env.Data)
	case network.EventStartGame:
		s.handleStartGameEvent(sess, env.Data)
	case network.EventWordChosen:
		s.handleWordChosenEvent(sess, env.Data)
	case network.EventSendGuess:
		s.handleSendGuessEvent(sess, env.Data)
	case network.EventSendPath:
		s.handleSendPathEvent(sess, env.Data)
	default:
		logger.Log.Infof("Unknown event from session %s: %q", sess.GetID(), env.Event)
	}
}

// handleJoinRoomEvent binds the socket to a participant who already joined
// through the HTTP API, then fans out the fresh room snapshot.
func (s *GameServer) handleJoinRoomEvent(sess *session.Session, data []byte) {
	var req network.JoinRoomRequest
	if err := json.Unmarshal(data, &req); err != nil || req.RoomCode == "" || req.ParticipantID == "" {
		logger.Log.Warnf("Session %s sent an invalid join-room payload", sess.GetID())
		return
	}

	r, exists := s.roomManager.GetRoom(req.RoomCode)
	if !exists {
		return
	}
	if _, ok := r.GetMember(req.ParticipantID); !ok {
		logger.Log.Warnf("Session %s tried to bind to room %s as unknown participant %s",
			sess.GetID(), req.RoomCode, req.ParticipantID)
		return
	}

	sess.Bind(req.ParticipantID, req.RoomCode)
	s.emitRoomUpdate(req.RoomCode)
}

func (s *GameServer) handleStartGameEvent(sess *session.Session, data []byte) {
	var req network.StartGameRequest
	if err := json.Unmarshal(data, &req); err != nil || req.RoomCode == "" {
		return
	}

	participantID, boundRoom := sess.Binding()
	if participantID == "" || boundRoom != req.RoomCode {
		return
	}

	s.bridge.StartGame(req.RoomCode, participantID)

	if s.engine.IsActive(req.RoomCode) {
		if r, exists := s.roomManager.GetRoom(req.RoomCode); exists {
			r.SetStatus(room.StatusPlaying)
			s.emitRoomUpdate(req.RoomCode)
		}
	}
}

func (s *GameServer) handleWordChosenEvent(sess *session.Session, data []byte) {
	var req network.WordChosenRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return
	}

	_, boundRoom := sess.Binding()
	if boundRoom != req.RoomCode {
		return
	}
	s.bridge.WordChosen(req.RoomCode, req.Word)
}

func (s *GameServer) handleSendGuessEvent(sess *session.Session, data []byte) {
	var req network.SendGuessRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return
	}

	participantID, boundRoom := sess.Binding()
	if participantID == "" || boundRoom != req.RoomCode {
		return
	}
	s.bridge.GuessSubmitted(req.RoomCode, req.Guess, participantID)
}

// handleSendPathEvent relays drawing strokes to everyone else in the room.
// Pure pass-through: the server keeps no canvas state.
func (s *GameServer) handleSendPathEvent(sess *session.Session, data []byte) {
	var req network.SendPathRequest
	if err := json.Unmarshal(data, &req); err != nil || req.RoomCode == "" || len(req.PathData) == 0 {
		return
	}

	_, boundRoom := sess.Binding()
	if boundRoom != req.RoomCode {
		return
	}
	s.broadcaster.ToRoomExcept(req.RoomCode, sess.GetID(), EventReceivePath, req.PathData)
}

func (s *GameServer) handleLeave(sess *session.Session) {
	participantID, roomCode := sess.Binding()
	if roomCode == "" {
		return
	}

	s.roomManager.Leave(roomCode, participantID)
	s.bridge.ParticipantLeft(roomCode, participantID)
	s.emitRoomUpdate(roomCode)
	s.mon.SetActiveRooms(s.roomManager.Count())
}

// emitRoomUpdate broadcasts the room's current snapshot and persists it.
func (s *GameServer) emitRoomUpdate(roomCode string) {
	r, exists := s.roomManager.GetRoom(roomCode)
	if !exists {
		return
	}
	snapshot := r.Snapshot()
	s.broadcaster.ToRoom(roomCode, EventRoomUpdated, snapshot)

	go func() {
		membersJSON, err := json.Marshal(snapshot.Members)
		if err != nil {
			return
		}
		if err := s.db.SaveRoomState(roomCode, string(snapshot.Status), string(membersJSON)); err != nil {
			logger.Log.Warnf("room %s: failed to persist room state: %v", roomCode, err)
		}
	}()
}

// gameRecorder marks the room as ended and hands the result to the record
// service. Implements game.Recorder; called by the engine off its lock.
type gameRecorder struct {
	server *GameServer
}

func (g *gameRecorder) RecordGameResult(roomCode string, scores map[string]int, rounds int) error {
	if r, exists := g.server.roomManager.GetRoom(roomCode); exists {
		r.SetStatus(room.StatusEnded)
		g.server.emitRoomUpdate(roomCode)
	}
	return g.server.records.RecordGameResult(roomCode, scores, rounds)
}
