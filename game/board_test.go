package game

import (
	"errors"
	"testing"
)

const testNow = int64(1_700_000_000_000)

func startedBoard(t *testing.T, amount int) *Board {
	t.Helper()
	b := NewBoard()
	b.Start(amount, testNow, testNow+30_000)
	return b
}

func TestBoardStartCreatesHiddenMoles(t *testing.T) {
	b := startedBoard(t, 3)
	s := b.State()
	if !s.Running {
		t.Fatalf("expected running board after Start")
	}
	if len(s.Moles) != 3 {
		t.Fatalf("mole count = %d, want 3", len(s.Moles))
	}
	for id := 0; id < 3; id++ {
		m, ok := s.Moles[id]
		if !ok {
			t.Fatalf("mole %d missing", id)
		}
		if m.State != StateHole {
			t.Fatalf("mole %d state = %q, want %q", id, m.State, StateHole)
		}
	}
	if s.StartedAt != testNow || s.EndsAt != testNow+30_000 {
		t.Fatalf("timestamps = (%d, %d), want (%d, %d)", s.StartedAt, s.EndsAt, testNow, testNow+30_000)
	}
}

func TestBoardNominate(t *testing.T) {
	b := startedBoard(t, 3)
	if err := b.Nominate(1); err != nil {
		t.Fatalf("Nominate(1): %v", err)
	}
	if got := b.State().Moles[1].State; got != StateMole {
		t.Fatalf("mole 1 state = %q, want %q", got, StateMole)
	}
	if err := b.Nominate(99); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Nominate(99) = %v, want ErrNotFound", err)
	}
}

func TestBoardUnknownIDAlwaysNotFound(t *testing.T) {
	b := startedBoard(t, 3)
	if err := b.SetExpiry(7, testNow+500); !errors.Is(err, ErrNotFound) {
		t.Fatalf("SetExpiry(7) = %v, want ErrNotFound", err)
	}
	if err := b.Expire(-1); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Expire(-1) = %v, want ErrNotFound", err)
	}
	if _, err := b.Whack(3); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Whack(3) = %v, want ErrNotFound", err)
	}
}

func TestBoardWhackGates(t *testing.T) {
	b := startedBoard(t, 1)

	// still hidden: anti-cheat refuses the whack
	if _, err := b.Whack(0); !errors.Is(err, ErrNotVisible) {
		t.Fatalf("Whack on hidden mole = %v, want ErrNotVisible", err)
	}

	if err := b.Nominate(0); err != nil {
		t.Fatalf("Nominate(0): %v", err)
	}
	if err := b.SetExpiry(0, testNow+900); err != nil {
		t.Fatalf("SetExpiry(0): %v", err)
	}
	expireAt, err := b.Whack(0)
	if err != nil {
		t.Fatalf("Whack(0): %v", err)
	}
	if expireAt != testNow+900 {
		t.Fatalf("Whack returned expireAt %d, want %d", expireAt, testNow+900)
	}
	if got := b.State().Moles[0].State; got != StateHole {
		t.Fatalf("mole 0 after whack = %q, want %q", got, StateHole)
	}

	// second whack without a fresh nomination must fail
	if _, err := b.Whack(0); !errors.Is(err, ErrNotVisible) {
		t.Fatalf("second Whack = %v, want ErrNotVisible", err)
	}
}

func TestBoardWhackRequiresRunning(t *testing.T) {
	b := NewBoard()
	if _, err := b.Whack(0); !errors.Is(err, ErrNotStarted) {
		t.Fatalf("Whack before Start = %v, want ErrNotStarted", err)
	}

	b = startedBoard(t, 2)
	b.End()
	if _, err := b.Whack(0); !errors.Is(err, ErrNotStarted) {
		t.Fatalf("Whack after End = %v, want ErrNotStarted", err)
	}
}

func TestBoardExpireIsIdempotent(t *testing.T) {
	b := startedBoard(t, 2)
	if err := b.Nominate(0); err != nil {
		t.Fatalf("Nominate(0): %v", err)
	}
	if err := b.Expire(0); err != nil {
		t.Fatalf("Expire(0): %v", err)
	}
	if err := b.Expire(0); err != nil {
		t.Fatalf("Expire on hidden mole = %v, want nil", err)
	}
	if got := b.State().Moles[0].State; got != StateHole {
		t.Fatalf("mole 0 state = %q, want %q", got, StateHole)
	}
}

func TestBoardEndFullyResets(t *testing.T) {
	b := startedBoard(t, 5)
	_ = b.Nominate(2)
	_ = b.SetExpiry(2, testNow+1000)

	b.End()

	s := b.State()
	if s.Running {
		t.Fatalf("running after End")
	}
	if len(s.Moles) != 0 {
		t.Fatalf("moles after End = %d, want 0", len(s.Moles))
	}
	if s.StartedAt != 0 || s.EndsAt != 0 {
		t.Fatalf("timestamps after End = (%d, %d), want (0, 0)", s.StartedAt, s.EndsAt)
	}
}

func TestBoardStateIsACopy(t *testing.T) {
	b := startedBoard(t, 1)
	s := b.State()
	m := s.Moles[0]
	m.State = StateMole
	s.Moles[0] = m
	if got := b.State().Moles[0].State; got != StateHole {
		t.Fatalf("board mutated through snapshot: %q", got)
	}
}
