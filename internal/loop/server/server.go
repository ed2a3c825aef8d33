// Package server hosts one independent game session per connected client
// and keeps what the sessions share: the player count, a leaderboard and
// the shutdown signal.
package server

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/laserfall/internal/loop/config"
	"github.com/tomz197/laserfall/internal/loop/session"
)

// GameServer is the interface clients use to talk to the server.
// Decouples the Client from the concrete Server implementation.
type GameServer interface {
	RegisterClient(username string) *ClientHandle
	UnregisterClient(clientID int)
	SubmitScore(clientID int, score int)
	TopScores() []TopScoreEntry
	Players() int
	Context() context.Context
}

// Server owns every connected client's session.
type Server struct {
	tuning       config.Tuning
	logger       *log.Logger
	ctx          context.Context
	cancel       context.CancelFunc
	clients      map[int]*ClientHandle
	nextClientID int
	board        leaderboard
	mu           sync.RWMutex
}

// Compile-time check that Server implements GameServer.
var _ GameServer = (*Server)(nil)

// ClientHandle represents a client's connection to the server.
type ClientHandle struct {
	ID       int
	Username string // Display name for this client
	Session  *session.GameSession
}

// NewServer creates a server whose sessions are built from tuning.
func NewServer(tuning config.Tuning, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Server{
		tuning:       tuning,
		logger:       logger,
		ctx:          ctx,
		cancel:       cancel,
		clients:      make(map[int]*ClientHandle),
		nextClientID: 1,
		board:        leaderboard{size: config.TopScoresCount},
	}
}

// Context is cancelled when the server begins shutting down.
func (s *Server) Context() context.Context {
	return s.ctx
}

// RegisterClient creates a fresh session for a new connection.
func (s *Server) RegisterClient(username string) *ClientHandle {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextClientID
	s.nextClientID++

	sess := session.New(s.tuning, session.WithLogger(s.logger.With("user", username)))
	handle := &ClientHandle{ID: id, Username: username, Session: sess}
	s.clients[id] = handle

	s.logger.Info("client registered", "client", id, "user", username, "session", sess.ID(), "players", len(s.clients))
	return handle
}

// UnregisterClient drops a client's session. Its leaderboard entry stays.
func (s *Server) UnregisterClient(clientID int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.clients[clientID]; !ok {
		return
	}
	delete(s.clients, clientID)
	s.logger.Info("client unregistered", "client", clientID, "players", len(s.clients))
}

// SubmitScore records a finished game's score for the client.
func (s *Server) SubmitScore(clientID int, score int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	handle, ok := s.clients[clientID]
	if !ok {
		return
	}
	if s.board.submit(TopScoreEntry{Username: handle.Username, Score: score, clientID: clientID}) {
		s.logger.Info("new top score", "user", handle.Username, "score", score)
	}
}

// TopScores returns a copy of the leaderboard, best first.
func (s *Server) TopScores() []TopScoreEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.board.entries()
}

// Players returns the number of connected clients.
func (s *Server) Players() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}

// Shutdown notifies every client and waits for them to disconnect, or
// until timeout elapses.
func (s *Server) Shutdown(timeout time.Duration) {
	s.cancel()

	deadline := time.After(timeout)
	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()

	for {
		if s.Players() == 0 {
			return
		}
		select {
		case <-deadline:
			s.logger.Warn("shutdown timed out", "players", s.Players())
			return
		case <-ticker.C:
		}
	}
}
