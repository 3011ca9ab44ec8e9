// Package net exposes an encounter over WebSocket. All rule resolution
// runs on a single authority goroutine; connection handlers only submit
// commands and relay replies, so concurrent clients can never interleave
// inside a play.
package net

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"cardcore/internal/rules"
)

type commandKind int

const (
	cmdPlay commandKind = iota
	cmdEndTurn
	cmdState
	cmdEventLog
)

// command is one unit of work for the authority goroutine. The reply
// channel is buffered so the authority never blocks on a slow client.
type command struct {
	kind     commandKind
	seat     *rules.Combatant
	cardID   int
	afterSeq int
	reply    chan ServerMessage
}

// Server hosts one encounter for WebSocket clients.
type Server struct {
	enc      *rules.Encounter
	logger   *zap.Logger
	mux      *http.ServeMux
	commands chan command

	mu    sync.Mutex
	seats map[uuid.UUID]*rules.Combatant // session id → combatant
	taken map[uuid.UUID]bool             // combatant id → seated
}

// NewServer creates a server around an already-wired encounter.
func NewServer(enc *rules.Encounter, logger *zap.Logger) *Server {
	s := &Server{
		enc:      enc,
		logger:   logger,
		mux:      http.NewServeMux(),
		commands: make(chan command),
		seats:    make(map[uuid.UUID]*rules.Combatant),
		taken:    make(map[uuid.UUID]bool),
	}
	s.mux.HandleFunc("GET /ws", s.handleWebSocket)
	return s
}

// Run drives the authority loop until the context is cancelled. Every
// state mutation in the encounter happens on this goroutine.
func (s *Server) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case cmd := <-s.commands:
			cmd.reply <- s.execute(cmd)
		}
	}
}

// ListenAndServe starts the HTTP listener. Call Run separately.
func (s *Server) ListenAndServe(addr string) error {
	return http.ListenAndServe(addr, s.mux)
}

func (s *Server) execute(cmd command) ServerMessage {
	switch cmd.kind {
	case cmdPlay:
		res, err := s.enc.Play(cmd.seat, cmd.cardID)
		if err != nil {
			return ServerMessage{Type: "error", Error: err.Error()}
		}
		msg := ServerMessage{
			Type:   "play_result",
			Played: res.Played,
			State:  BuildStateView(s.enc, cmd.seat),
		}
		if !res.Played {
			msg.Reject = res.Reason.String()
		}
		return msg

	case cmdEndTurn:
		s.enc.EndTurn(cmd.seat)
		s.enc.NextTurn(cmd.seat)
		return ServerMessage{Type: "state", State: BuildStateView(s.enc, cmd.seat)}

	case cmdState:
		return ServerMessage{Type: "state", State: BuildStateView(s.enc, cmd.seat)}

	case cmdEventLog:
		var views []EventView
		for _, e := range s.enc.Events.Events() {
			if e.Seq > cmd.afterSeq {
				views = append(views, BuildEventView(e))
			}
		}
		return ServerMessage{Type: "event_log", Events: views}

	default:
		return ServerMessage{Type: "error", Error: "unknown command"}
	}
}

// seat claims the first unseated combatant for a new session.
func (s *Server) seat(session uuid.UUID) (*rules.Combatant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.enc.Combatants {
		if !s.taken[c.ID] {
			s.taken[c.ID] = true
			s.seats[session] = c
			return c, nil
		}
	}
	return nil, fmt.Errorf("all seats taken")
}

func (s *Server) unseat(session uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c, ok := s.seats[session]; ok {
		delete(s.taken, c.ID)
		delete(s.seats, session)
	}
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true, // Allow connections from any origin
	})
	if err != nil {
		s.logger.Warn("websocket accept failed", zap.Error(err))
		return
	}
	defer conn.CloseNow()

	ctx := r.Context()
	session := uuid.New()

	seat, err := s.seat(session)
	if err != nil {
		s.writeMessage(ctx, conn, ServerMessage{Type: "error", Error: err.Error()})
		conn.Close(websocket.StatusTryAgainLater, "no free seat")
		return
	}
	defer s.unseat(session)

	s.logger.Info("client seated",
		zap.String("session", session.String()),
		zap.String("combatant", seat.Name))
	if err := s.writeMessage(ctx, conn, ServerMessage{Type: "seat", Seat: seat.Name}); err != nil {
		return
	}

	for {
		_, data, err := conn.Read(ctx)
		if err != nil {
			s.logger.Debug("client disconnected",
				zap.String("session", session.String()),
				zap.Error(err))
			return
		}

		var msg ClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			if err := s.writeMessage(ctx, conn, ServerMessage{Type: "error", Error: "bad message"}); err != nil {
				return
			}
			continue
		}

		reply, ok := s.dispatch(ctx, seat, msg)
		if !ok {
			return
		}
		if err := s.writeMessage(ctx, conn, reply); err != nil {
			return
		}
	}
}

// dispatch turns a client message into a command, submits it to the
// authority and waits for the reply.
func (s *Server) dispatch(ctx context.Context, seat *rules.Combatant, msg ClientMessage) (ServerMessage, bool) {
	cmd := command{seat: seat, reply: make(chan ServerMessage, 1)}
	switch msg.Type {
	case "play":
		cmd.kind = cmdPlay
		cmd.cardID = msg.CardID
	case "end_turn":
		cmd.kind = cmdEndTurn
	case "state":
		cmd.kind = cmdState
	case "event_log":
		cmd.kind = cmdEventLog
		cmd.afterSeq = msg.AfterSeq
	default:
		return ServerMessage{Type: "error", Error: fmt.Sprintf("unknown message type %q", msg.Type)}, true
	}

	select {
	case s.commands <- cmd:
	case <-ctx.Done():
		return ServerMessage{}, false
	}
	select {
	case reply := <-cmd.reply:
		return reply, true
	case <-ctx.Done():
		return ServerMessage{}, false
	}
}

func (s *Server) writeMessage(ctx context.Context, conn *websocket.Conn, msg ServerMessage) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	return conn.Write(ctx, websocket.MessageText, data)
}
