package protocol

import "encoding/json"

// Output structs sent to the client.

type Welcome struct {
	Msg       string `json:"msg"`
	Time      int64  `json:"time"`
	SessionID string `json:"sessionId"`
}

type MoleSnapshot struct {
	ID       int    `json:"id"`
	State    string `json:"state"` // "mole" or "hole"
	ExpireAt int64  `json:"expireAt,omitempty"`
}

type GameStarted struct {
	Moles  map[int]MoleSnapshot `json:"moles"`
	EndsAt int64                `json:"endsAt"`
}

type Nomination struct {
	Mole MoleSnapshot `json:"mole"`
}

type ScoreSnapshot struct {
	Player string `json:"player"`
	Score  int    `json:"score"`
}

type GameEnded struct {
	EndedAt    int64           `json:"endedAt"`
	Highscores []ScoreSnapshot `json:"highscores"`
}

type Whacked struct {
	ID         int `json:"id"`
	TotalScore int `json:"totalScore"`
}

type Pong struct {
	Time    int64           `json:"time"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type Message struct {
	Msg string `json:"msg"`
}

type BroadcastAck struct {
	Delivered bool `json:"delivered"`
}

type Error struct {
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}
