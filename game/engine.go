package game

import (
	"crypto/rand"
	"math/big"
	"sync"
	"time"
)

type Config struct {
	DurationMs int64
	Moles      int
}

// MoleEvent is emitted once when a mole is revealed and once when it hides.
type MoleEvent struct {
	ID       int       `json:"id"`
	State    MoleState `json:"state"`
	ExpireAt int64     `json:"expireAt,omitempty"`
}

type StartResult struct {
	Moles  map[int]Mole
	EndsAt int64
}

// Engine drives the temporal lifecycle of one game: the nomination cadence,
// each mole's auto-hide, and the overall duration. All mutation goes through
// the Board under e.mu, and every timer callback carries the generation it
// was armed for, so a timer belonging to a superseded game can never touch
// the current one.
type Engine struct {
	mu    sync.Mutex
	board *Board
	cfg   Config
	gen   uint64

	endTimer     *time.Timer
	cadence      *time.Ticker
	cadenceDone  chan struct{}
	expireTimers []*time.Timer

	now func() int64 // unix ms, swapped out in tests
}

func NewEngine(board *Board) *Engine {
	return &Engine{
		board: board,
		cfg:   Config{DurationMs: DefaultDurationMs, Moles: DefaultMoles},
		now:   func() int64 { return time.Now().UnixMilli() },
	}
}

// Start begins a new game, cancelling every timer of the previous one first.
// Zero fields of cfg fall back to the defaults; a nil cfg means all defaults.
func (e *Engine) Start(cfg *Config) StartResult {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.gen++
	e.cancelTimersLocked()

	e.cfg = Config{DurationMs: DefaultDurationMs, Moles: DefaultMoles}
	if cfg != nil {
		if cfg.DurationMs > 0 {
			e.cfg.DurationMs = cfg.DurationMs
		}
		if cfg.Moles > 0 {
			e.cfg.Moles = cfg.Moles
		}
	}

	now := e.now()
	endsAt := now + e.cfg.DurationMs
	e.board.Start(e.cfg.Moles, now, endsAt)

	return StartResult{Moles: e.board.State().Moles, EndsAt: endsAt}
}

// ScheduleEnd arms the game-over timer. When it fires the engine tears down
// the whole game (board reset, cadence and expiry timers cancelled) and then
// calls onEnd. Re-arming replaces a previously armed end timer.
func (e *Engine) ScheduleEnd(onEnd func()) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.endTimer != nil {
		e.endTimer.Stop()
	}
	gen := e.gen
	e.endTimer = time.AfterFunc(time.Duration(e.cfg.DurationMs)*time.Millisecond, func() {
		e.mu.Lock()
		if gen != e.gen {
			e.mu.Unlock()
			return
		}
		e.gen++
		e.cancelTimersLocked()
		e.board.End()
		e.mu.Unlock()
		onEnd()
	})
}

// StartNominationCycle reveals one random mole per cadence tick. onMole is
// called immediately with the revealed mole (including its expiry) and again
// when the expiry timer hides it. Re-arming replaces the previous cadence.
func (e *Engine) StartNominationCycle(onMole func(MoleEvent)) {
	e.mu.Lock()
	e.stopCadenceLocked()
	gen := e.gen
	ticker := time.NewTicker(NominationEveryMs * time.Millisecond)
	done := make(chan struct{})
	e.cadence = ticker
	e.cadenceDone = done
	e.mu.Unlock()

	go func() {
		for {
			select {
			case <-done:
				ticker.Stop()
				return
			case <-ticker.C:
				e.tick(gen, onMole)
			}
		}
	}()
}

func (e *Engine) tick(gen uint64, onMole func(MoleEvent)) {
	e.mu.Lock()
	if gen != e.gen {
		e.mu.Unlock()
		return
	}

	id, err := e.nominateLocked()
	if err != nil {
		e.mu.Unlock()
		return
	}

	visible := randInt(MinVisibleMs, MaxVisibleMs)
	expireAt := e.now() + visible
	_ = e.board.SetExpiry(id, expireAt)

	timer := time.AfterFunc(time.Duration(visible)*time.Millisecond, func() {
		e.expire(gen, id, onMole)
	})
	e.expireTimers = append(e.expireTimers, timer)
	e.mu.Unlock()

	onMole(MoleEvent{ID: id, State: StateMole, ExpireAt: expireAt})
}

func (e *Engine) expire(gen uint64, id int, onMole func(MoleEvent)) {
	e.mu.Lock()
	if gen != e.gen {
		e.mu.Unlock()
		return
	}
	_ = e.board.Expire(id)
	e.mu.Unlock()

	onMole(MoleEvent{ID: id, State: StateHole})
}

// NominateMole picks one mole uniformly at random and reveals it. This is the
// single-tick primitive the cadence runs on.
func (e *Engine) NominateMole() (int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.nominateLocked()
}

func (e *Engine) nominateLocked() (int, error) {
	id := int(randInt(0, int64(e.cfg.Moles)))
	if err := e.board.Nominate(id); err != nil {
		return 0, err
	}
	return id, nil
}

// WhackMole hides mole id through the board's anti-cheat gate and returns the
// expiry it was scheduled for, ready for scoring.
func (e *Engine) WhackMole(id int) (int64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.board.Whack(id)
}

// End tears the game down immediately: every timer cancelled, board reset.
// It does not notify anyone; the caller owns that.
func (e *Engine) End() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.gen++
	e.cancelTimersLocked()
	e.board.End()
}

func (e *Engine) cancelTimersLocked() {
	if e.endTimer != nil {
		e.endTimer.Stop()
		e.endTimer = nil
	}
	e.stopCadenceLocked()
	for _, t := range e.expireTimers {
		t.Stop()
	}
	e.expireTimers = nil
}

func (e *Engine) stopCadenceLocked() {
	if e.cadenceDone != nil {
		close(e.cadenceDone)
		e.cadenceDone = nil
	}
	if e.cadence != nil {
		e.cadence.Stop()
		e.cadence = nil
	}
}

// randInt draws uniformly from [min, max). The mole pick must not be
// predictable by the client, hence crypto/rand rather than math/rand.
func randInt(min, max int64) int64 {
	n, err := rand.Int(rand.Reader, big.NewInt(max-min))
	if err != nil {
		return min
	}
	return min + n.Int64()
}
