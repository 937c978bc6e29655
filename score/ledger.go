package score

import (
	"errors"
	"sort"
)

var (
	ErrNotStarted    = errors.New("score session has not been started")
	ErrAlreadyActive = errors.New("score session already active")
)

type Score struct {
	Player string `json:"player"`
	Score  int    `json:"score"`
}

// Ledger holds one player's running score plus the ranked results of every
// finished game this session. It outlives individual games so highscores
// accumulate across repeated plays on one connection.
type Ledger struct {
	current    *Score
	highscores []Score
}

func NewLedger() *Ledger {
	return &Ledger{}
}

func (l *Ledger) StartGame(player string) error {
	if l.current != nil {
		return ErrAlreadyActive
	}
	l.current = &Score{Player: player}
	return nil
}

func (l *Ledger) Add(delta int) (int, error) {
	if l.current == nil {
		return 0, ErrNotStarted
	}
	l.current.Score += delta
	return l.current.Score, nil
}

// EndGame moves the running score into the highscore table and re-ranks it.
// Ties keep their insertion order, the stable sort guarantees that.
func (l *Ledger) EndGame() ([]Score, error) {
	if l.current == nil {
		return nil, ErrNotStarted
	}
	l.highscores = append(l.highscores, *l.current)
	sort.SliceStable(l.highscores, func(i, j int) bool {
		return l.highscores[i].Score > l.highscores[j].Score
	})
	l.current = nil
	return l.Highscores(), nil
}

// Current returns a copy of the running score, or nil when no game is active.
func (l *Ledger) Current() *Score {
	if l.current == nil {
		return nil
	}
	c := *l.current
	return &c
}

func (l *Ledger) Highscores() []Score {
	out := make([]Score, len(l.highscores))
	copy(out, l.highscores)
	return out
}
