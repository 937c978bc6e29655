package protocol

// Input structs coming in from the client.

type StartRequest struct {
	DurationMs int64  `json:"durationMs,omitempty"` // game length, default 120000
	Moles      int    `json:"moles,omitempty"`      // board size, default 12
	Player     string `json:"player,omitempty"`     // name on the highscore table
}

type WhackRequest struct {
	ID int `json:"id"`
}

type BroadcastRequest struct {
	Msg string `json:"msg"`
}
