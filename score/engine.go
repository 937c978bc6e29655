package score

import (
	"math"
	"sync"
	"time"
)

// PointWindowMs is how much remaining visible time buys one point: a whack
// landing 450ms before the mole would have hidden is worth 5 points.
const PointWindowMs = 100

// Engine applies the reaction-time scoring policy to a Ledger. The game-over
// timer and the connection's read loop both reach it, hence the mutex.
type Engine struct {
	mu     sync.Mutex
	ledger *Ledger

	now func() int64 // unix ms, swapped out in tests
}

func NewEngine(ledger *Ledger) *Engine {
	return &Engine{
		ledger: ledger,
		now:    func() int64 { return time.Now().UnixMilli() },
	}
}

func (e *Engine) StartGame(player string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ledger.StartGame(player)
}

// AddScore awards points for a whack on a mole that was scheduled to hide at
// expireAt and returns the new running total. The faster the reaction, the
// more of the visible window is left, the more points. A non-positive delta
// means the whack raced the expiry; the ledger is left untouched rather than
// ever decreasing. The board's visibility gate should make that unreachable.
func (e *Engine) AddScore(expireAt int64) (int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	cur := e.ledger.Current()
	if cur == nil {
		return 0, ErrNotStarted
	}

	delta := int(math.Round(float64(expireAt-e.now()) / PointWindowMs))
	if delta <= 0 {
		return cur.Score, nil
	}
	return e.ledger.Add(delta)
}

// EndGame finalizes the running score and returns the updated highscores.
func (e *Engine) EndGame() ([]Score, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ledger.EndGame()
}

func (e *Engine) CurrentScore() *Score {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ledger.Current()
}

func (e *Engine) Highscores() []Score {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ledger.Highscores()
}
