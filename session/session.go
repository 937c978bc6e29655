package session

import (
	"log"
	"time"

	"whackamole/game"
	"whackamole/protocol"
	"whackamole/score"

	"github.com/google/uuid"
)

// Conn is the transport half the session writes to.
type Conn interface {
	Send([]byte) error
	Close() error
}

// Broadcaster fans a frame out to every other connection.
type Broadcaster interface {
	Broadcast(b []byte, exclude Conn)
}

// Session binds one game engine + score engine pair to one connection for
// the connection's lifetime. It routes inbound envelopes to engine calls and
// forwards engine callbacks back out as events. Engine errors become error
// events; they never take the session down.
type Session struct {
	ID string

	conn Conn
	hub  Broadcaster
	base game.Config

	engine *game.Engine
	scores *score.Engine

	now func() int64
}

func New(conn Conn, hub Broadcaster, base game.Config) *Session {
	return &Session{
		ID:     uuid.NewString(),
		conn:   conn,
		hub:    hub,
		base:   base,
		engine: game.NewEngine(game.NewBoard()),
		scores: score.NewEngine(score.NewLedger()),
		now:    func() int64 { return time.Now().UnixMilli() },
	}
}

// Hello greets the client; call once right after the connection is up.
func (s *Session) Hello() {
	s.send(protocol.EvtWelcome, protocol.Welcome{
		Msg:       "Connected",
		Time:      s.now(),
		SessionID: s.ID,
	})
}

// Close tears down any running game so no timer outlives the connection.
func (s *Session) Close() {
	s.engine.End()
}

// HandleMessage routes one raw inbound frame.
func (s *Session) HandleMessage(raw []byte) {
	env, err := protocol.DecodeEnvelope(raw)
	if err != nil {
		s.send(protocol.EvtError, protocol.Error{Message: "Invalid JSON"})
		return
	}

	switch env.Event {
	case protocol.EvtPing:
		s.send(protocol.EvtPong, protocol.Pong{Time: s.now(), Payload: env.Payload})
	case protocol.EvtEcho:
		s.send(protocol.EvtEcho, env.Payload)
	case protocol.EvtBroadcast:
		s.handleBroadcast(env)
	case protocol.EvtGameStart:
		s.handleGameStart(env)
	case protocol.EvtGameEnd:
		s.handleGameEnd()
	case protocol.EvtGameWhack:
		s.handleWhack(env)
	default:
		s.send(protocol.EvtError, protocol.Error{Message: "Unknown event: " + env.Event})
	}
}

func (s *Session) handleGameStart(env protocol.Envelope) {
	var req protocol.StartRequest
	if len(env.Payload) > 0 {
		var err error
		req, err = protocol.DecodePayload[protocol.StartRequest](env)
		if err != nil {
			s.send(protocol.EvtError, protocol.Error{Message: "Invalid message shape"})
			return
		}
	}

	cfg := s.base
	if req.DurationMs > 0 {
		cfg.DurationMs = req.DurationMs
	}
	if req.Moles > 0 {
		cfg.Moles = req.Moles
	}
	player := req.Player
	if player == "" {
		player = "anonymous"
	}

	res := s.engine.Start(&cfg)

	// A restart while a score session is open records the abandoned game
	// before opening the new one, mirroring the engine's re-entrant start.
	if s.scores.CurrentScore() != nil {
		if _, err := s.scores.EndGame(); err != nil {
			log.Printf("session %s: end stale score session: %v", s.ID, err)
		}
	}
	if err := s.scores.StartGame(player); err != nil {
		s.sendHandlerError(err)
		return
	}

	s.send(protocol.EvtGameStarted, protocol.GameStarted{
		Moles:  moleSnapshots(res.Moles),
		EndsAt: res.EndsAt,
	})

	s.engine.StartNominationCycle(func(ev game.MoleEvent) {
		s.send(protocol.EvtGameNomination, protocol.Nomination{
			Mole: protocol.MoleSnapshot{ID: ev.ID, State: string(ev.State), ExpireAt: ev.ExpireAt},
		})
	})
	s.engine.ScheduleEnd(func() {
		s.finishGame()
	})
}

func (s *Session) handleGameEnd() {
	s.engine.End()
	s.finishGame()
}

// finishGame closes the score session and reports the final standings. The
// game engine is already torn down by the time this runs.
func (s *Session) finishGame() {
	endedAt := s.now()
	highscores, err := s.scores.EndGame()
	if err != nil {
		s.sendHandlerError(err)
		return
	}
	s.send(protocol.EvtGameEnded, protocol.GameEnded{
		EndedAt:    endedAt,
		Highscores: scoreSnapshots(highscores),
	})
}

func (s *Session) handleWhack(env protocol.Envelope) {
	req, err := protocol.DecodePayload[protocol.WhackRequest](env)
	if err != nil {
		s.send(protocol.EvtError, protocol.Error{Message: "Invalid message shape"})
		return
	}

	expireAt, err := s.engine.WhackMole(req.ID)
	if err != nil {
		s.sendHandlerError(err)
		return
	}
	total, err := s.scores.AddScore(expireAt)
	if err != nil {
		s.sendHandlerError(err)
		return
	}
	s.send(protocol.EvtGameWhacked, protocol.Whacked{ID: req.ID, TotalScore: total})
}

func (s *Session) handleBroadcast(env protocol.Envelope) {
	req, err := protocol.DecodePayload[protocol.BroadcastRequest](env)
	if err != nil {
		s.send(protocol.EvtError, protocol.Error{Message: "Invalid message shape"})
		return
	}
	b, err := protocol.Encode(protocol.EvtMessage, protocol.Message{Msg: req.Msg})
	if err != nil {
		log.Printf("session %s: encode broadcast: %v", s.ID, err)
		return
	}
	s.hub.Broadcast(b, s.conn)
	s.send(protocol.EvtBroadcastAck, protocol.BroadcastAck{Delivered: true})
}

func (s *Session) sendHandlerError(err error) {
	s.send(protocol.EvtError, protocol.Error{Message: "Handler failed", Detail: err.Error()})
}

func (s *Session) send(event string, payload any) {
	b, err := protocol.Encode(event, payload)
	if err != nil {
		log.Printf("session %s: encode %s: %v", s.ID, event, err)
		return
	}
	if err := s.conn.Send(b); err != nil {
		log.Printf("session %s: send %s: %v", s.ID, event, err)
	}
}

func moleSnapshots(moles map[int]game.Mole) map[int]protocol.MoleSnapshot {
	out := make(map[int]protocol.MoleSnapshot, len(moles))
	for id, m := range moles {
		out[id] = protocol.MoleSnapshot{ID: m.ID, State: string(m.State), ExpireAt: m.ExpireAt}
	}
	return out
}

func scoreSnapshots(scores []score.Score) []protocol.ScoreSnapshot {
	out := make([]protocol.ScoreSnapshot, 0, len(scores))
	for _, sc := range scores {
		out = append(out, protocol.ScoreSnapshot{Player: sc.Player, Score: sc.Score})
	}
	return out
}
