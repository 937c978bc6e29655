package game

import "errors"

// Internal truth authoritative board state

var (
	ErrNotFound   = errors.New("mole not found")
	ErrNotStarted = errors.New("game has not been started")
	ErrNotVisible = errors.New("mole is not visible")
)

type MoleState string

const (
	StateHole MoleState = "hole"
	StateMole MoleState = "mole"
)

type Mole struct {
	ID       int       `json:"id"`
	State    MoleState `json:"state"`
	ExpireAt int64     `json:"expireAt,omitempty"` // unix ms, set while visible
}

// Board holds the moles for one game. It knows nothing about timers or
// scoring; the Engine drives it.
type Board struct {
	moles     map[int]*Mole
	running   bool
	startedAt int64
	endsAt    int64
}

type BoardState struct {
	Moles     map[int]Mole
	Running   bool
	StartedAt int64
	EndsAt    int64
}

func NewBoard() *Board {
	b := &Board{}
	b.reset()
	return b
}

func (b *Board) reset() {
	b.moles = make(map[int]*Mole)
	b.running = false
	b.startedAt = 0
	b.endsAt = 0
}

// Start discards any in-flight game and creates amount moles, all hidden.
func (b *Board) Start(amount int, now, endsAt int64) {
	b.reset()
	for i := 0; i < amount; i++ {
		b.moles[i] = &Mole{ID: i, State: StateHole}
	}
	b.running = true
	b.startedAt = now
	b.endsAt = endsAt
}

// Nominate makes mole id visible.
func (b *Board) Nominate(id int) error {
	m, ok := b.moles[id]
	if !ok {
		return ErrNotFound
	}
	m.State = StateMole
	return nil
}

// SetExpiry records when mole id is scheduled to auto-hide.
func (b *Board) SetExpiry(id int, expireAt int64) error {
	m, ok := b.moles[id]
	if !ok {
		return ErrNotFound
	}
	m.ExpireAt = expireAt
	return nil
}

// Expire hides mole id again. Hiding an already-hidden mole is a no-op.
func (b *Board) Expire(id int) error {
	m, ok := b.moles[id]
	if !ok {
		return ErrNotFound
	}
	m.State = StateHole
	return nil
}

// Whack hides mole id and returns the expiry it was scheduled for, so the
// caller can score the reaction. Whacking a hidden mole fails: that is the
// anti-cheat gate, a mole can only ever be whacked once per nomination.
func (b *Board) Whack(id int) (int64, error) {
	if !b.running {
		return 0, ErrNotStarted
	}
	m, ok := b.moles[id]
	if !ok {
		return 0, ErrNotFound
	}
	if m.State != StateMole {
		return 0, ErrNotVisible
	}
	m.State = StateHole
	return m.ExpireAt, nil
}

// End stops the game and fully resets the board.
func (b *Board) End() {
	b.reset()
}

// State returns a copy of the board; mutating it does not touch the board.
func (b *Board) State() BoardState {
	s := BoardState{
		Moles:     make(map[int]Mole, len(b.moles)),
		Running:   b.running,
		StartedAt: b.startedAt,
		EndsAt:    b.endsAt,
	}
	for id, m := range b.moles {
		s.Moles[id] = *m
	}
	return s
}
