package score

import (
	"errors"
	"testing"
)

const testNow = int64(1_700_000_000_000)

func fixedEngine(t *testing.T) *Engine {
	t.Helper()
	e := NewEngine(NewLedger())
	e.now = func() int64 { return testNow }
	return e
}

func TestEngineAddScoreRequiresGame(t *testing.T) {
	e := fixedEngine(t)
	if _, err := e.AddScore(testNow + 450); !errors.Is(err, ErrNotStarted) {
		t.Fatalf("AddScore without game = %v, want ErrNotStarted", err)
	}
}

func TestEngineAddScoreRoundsRemainingTime(t *testing.T) {
	e := fixedEngine(t)
	if err := e.StartGame("alice"); err != nil {
		t.Fatalf("StartGame: %v", err)
	}

	// 450ms of visible time left -> round(4.5) -> 5 points
	total, err := e.AddScore(testNow + 450)
	if err != nil {
		t.Fatalf("AddScore: %v", err)
	}
	if total != 5 {
		t.Fatalf("total = %d, want 5", total)
	}

	// 90ms left -> round(0.9) -> 1 point, cumulative 6
	total, err = e.AddScore(testNow + 90)
	if err != nil {
		t.Fatalf("AddScore: %v", err)
	}
	if total != 6 {
		t.Fatalf("cumulative total = %d, want 6", total)
	}
}

func TestEngineAddScoreClampsNonPositive(t *testing.T) {
	e := fixedEngine(t)
	if err := e.StartGame("alice"); err != nil {
		t.Fatalf("StartGame: %v", err)
	}
	if _, err := e.AddScore(testNow + 450); err != nil {
		t.Fatalf("AddScore: %v", err)
	}

	for _, expireAt := range []int64{testNow, testNow - 10, testNow - 5000, testNow + 40} {
		total, err := e.AddScore(expireAt)
		if err != nil {
			t.Fatalf("AddScore(%d): %v", expireAt, err)
		}
		if total != 5 {
			t.Fatalf("AddScore(%d) changed total to %d, want unchanged 5", expireAt, total)
		}
	}
}

func TestEngineEndGameReturnsHighscores(t *testing.T) {
	e := fixedEngine(t)
	if err := e.StartGame("alice"); err != nil {
		t.Fatalf("StartGame: %v", err)
	}
	if _, err := e.AddScore(testNow + 450); err != nil {
		t.Fatalf("AddScore: %v", err)
	}

	hs, err := e.EndGame()
	if err != nil {
		t.Fatalf("EndGame: %v", err)
	}
	if len(hs) != 1 || hs[0].Player != "alice" || hs[0].Score != 5 {
		t.Fatalf("highscores = %+v, want [{alice 5}]", hs)
	}
	if cur := e.CurrentScore(); cur != nil {
		t.Fatalf("current after EndGame = %+v, want nil", cur)
	}
	if _, err := e.EndGame(); !errors.Is(err, ErrNotStarted) {
		t.Fatalf("second EndGame = %v, want ErrNotStarted", err)
	}
}
