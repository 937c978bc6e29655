package protocol

import (
	"encoding/json"
)

// Event names shared with the client. Inbound and outbound use the same
// envelope shape.
const (
	EvtWelcome      = "welcome"
	EvtPing         = "ping"
	EvtPong         = "pong"
	EvtEcho         = "echo"
	EvtBroadcast    = "broadcast"
	EvtMessage      = "message"
	EvtBroadcastAck = "broadcast_ack"
	EvtError        = "error"

	EvtGameStart = "game/start"
	EvtGameEnd   = "game/end"
	EvtGameWhack = "game/whack"

	EvtGameStarted    = "game/started"
	EvtGameNomination = "game/nomination"
	EvtGameEnded      = "game/ended"
	EvtGameWhacked    = "game/whacked"
)

const (
	HeartbeatSec    = 25 // server ping interval
	ReadTimeoutSec  = 60 // reset on every pong
	WriteTimeoutSec = 10
)

type Envelope struct {
	Event   string          `json:"event"`
	Payload json.RawMessage `json:"payload,omitempty"` // raw payload bytes
}
