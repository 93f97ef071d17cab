// Package netplay serves game sessions over WebSocket. Each connection owns
// one session; its actions are decoded and applied one at a time and every
// request is answered with the resulting state.
package netplay

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"chosenoffset.com/packdelve/action"
	"chosenoffset.com/packdelve/contract"
	"chosenoffset.com/packdelve/gamestate"
	"chosenoffset.com/packdelve/internal/game"
)

// SessionFactory creates a fresh session for a new run
type SessionFactory func() (*game.Session, error)

// Server upgrades HTTP requests and runs one session per connection
type Server struct {
	newSession SessionFactory
	logger     *zap.Logger
	upgrader   websocket.Upgrader

	// Totals across every finished run
	Stats *gamestate.Stats

	mu       sync.Mutex
	sessions map[string]*game.Session
}

// NewServer creates a server. A nil logger disables logging.
func NewServer(factory SessionFactory, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		newSession: factory,
		logger:     logger.Named("netplay"),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		Stats:    gamestate.New(),
		sessions: make(map[string]*game.Session),
	}
}

// Active returns the number of connected sessions
func (s *Server) Active() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// RestoreStats merges totals saved by SaveStats into Stats. A missing file
// is not an error.
func (s *Server) RestoreStats(path string) error {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	saved, err := gamestate.Load(path)
	if err != nil {
		return err
	}
	s.Stats.Merge(saved)
	s.logger.Info("stats restored", zap.String("path", path), zap.String("totals", s.Stats.Debug()))
	return nil
}

// SaveStats writes the totals across finished runs to path
func (s *Server) SaveStats(path string) error {
	return s.Stats.Save(path)
}

// ServeHTTP upgrades the request and serves the connection until it closes
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ws, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("failed to upgrade connection", zap.Error(err))
		return
	}

	logger := s.logger.With(zap.String("remote", ws.RemoteAddr().String()))
	conn := NewConnection(ws, logger)
	c := &client{server: s, logger: logger}

	go conn.WritePump()

	if err := c.start(); err != nil {
		logger.Error("failed to start session", zap.Error(err))
		conn.Send(MessageTypeError, ErrorPayload{Code: CodeInternal, Message: "failed to start session"})
	} else {
		conn.Send(MessageTypeState, StatePayload{Snapshot: c.session.Snapshot()})
	}

	conn.ReadPump(c)
	c.stop()
	logger.Info("client disconnected")
}

func (s *Server) track(sess *game.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.ID] = sess
}

func (s *Server) untrack(sess *game.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sess.ID)
}

// client is the per-connection handler
type client struct {
	server  *Server
	session *game.Session
	logger  *zap.Logger
}

func (c *client) start() error {
	sess, err := c.server.newSession()
	if err != nil {
		return err
	}
	c.stop()
	c.session = sess
	c.logger = c.logger.With(zap.String("session", sess.ID))
	sess.OnEnd = func(*game.Session) { c.server.Stats.Merge(sess.Stats()) }
	c.server.track(sess)
	c.logger.Info("session opened")
	return nil
}

func (c *client) stop() {
	if c.session == nil {
		return
	}
	c.server.untrack(c.session)
	c.session = nil
}

// HandleMessage decodes one frame and answers it
func (c *client) HandleMessage(conn *Connection, data []byte) {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		conn.Send(MessageTypeError, ErrorPayload{Code: CodeBadMessage, Message: "malformed message"})
		return
	}

	switch msg.Type {
	case MessageTypeAction:
		c.handleAction(conn, msg.Payload)
	case MessageTypeNewGame:
		if err := c.start(); err != nil {
			c.logger.Error("failed to start session", zap.Error(err))
			conn.Send(MessageTypeError, ErrorPayload{Code: CodeInternal, Message: "failed to start session"})
			return
		}
		conn.Send(MessageTypeState, StatePayload{Snapshot: c.session.Snapshot()})
	default:
		conn.Send(MessageTypeError, ErrorPayload{
			Code:    CodeUnknownType,
			Message: fmt.Sprintf("unknown message type %q", msg.Type),
		})
	}
}

func (c *client) handleAction(conn *Connection, payload json.RawMessage) {
	if c.session == nil {
		conn.Send(MessageTypeError, ErrorPayload{Code: CodeInternal, Message: "no session"})
		return
	}
	a, err := action.Decode(payload)
	if err != nil {
		conn.Send(MessageTypeError, ErrorPayload{Code: CodeBadAction, Message: err.Error()})
		return
	}

	res, err := c.apply(a)
	if err != nil {
		c.logger.Error("action violated a contract", zap.Stringer("action", a), zap.Error(err))
		conn.Send(MessageTypeError, ErrorPayload{Code: CodeInternal, Message: "action failed"})
		return
	}
	conn.Send(MessageTypeState, StatePayload{Result: &res, Snapshot: c.session.Snapshot()})
}

func (c *client) apply(a action.Action) (res game.Result, err error) {
	defer contract.Recover(&err)
	return c.session.Apply(a), nil
}
