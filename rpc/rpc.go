package rpc

import (
	"net"
	"net/rpc"

	"github.com/wfunc/drawparty/game"
	"github.com/wfunc/drawparty/logger"
	"github.com/wfunc/drawparty/models"
	"github.com/wfunc/drawparty/services"
)

// Server manages the RPC listener.
type Server struct {
	listener net.Listener
	address  string
}

// NewServer creates a new RPC server.
func NewServer(addr string) (*Server, error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	return &Server{
		listener: listener,
		address:  addr,
	}, nil
}

// Start begins listening for RPC requests.
func (s *Server) Start() {
	logger.Log.Infof("RPC server listening on %s", s.address)
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if _, ok := err.(*net.OpError); ok {
				logger.Log.Info("RPC server listener closed.")
				return
			}
			logger.Log.Errorf("RPC server accept error: %v", err)
			continue
		}
		go rpc.ServeConn(conn)
	}
}

// Stop closes the RPC listener.
func (s *Server) Stop() {
	if s.listener != nil {
		logger.Log.Info("Stopping RPC server.")
		s.listener.Close()
	}
}

// AdminService exposes operational queries over net/rpc: exported methods
// with exported argument types, pointer reply, error return.
type AdminService struct {
	records *services.RecordService
	engine  *game.Engine
}

func NewAdminService(records *services.RecordService, engine *game.Engine) *AdminService {
	return &AdminService{records: records, engine: engine}
}

type GetParticipantStatsArgs struct {
	ParticipantID string
}

type GetParticipantStatsReply struct {
	Stats *models.ParticipantStats
}

func (a *AdminService) GetParticipantStats(args *GetParticipantStatsArgs, reply *GetParticipantStatsReply) error {
	stats, err := a.records.GetParticipantStats(args.ParticipantID)
	if err != nil {
		return err
	}
	reply.Stats = stats
	return nil
}

type ListActiveGamesArgs struct{}

type ListActiveGamesReply struct {
	Games []game.Snapshot
}

func (a *AdminService) ListActiveGames(args *ListActiveGamesArgs, reply *ListActiveGamesReply) error {
	reply.Games = a.engine.ActiveGames()
	return nil
}
