package game

import "testing"

// TestAnimationClockAdvance 测试时钟推进与暂停
func TestAnimationClockAdvance(t *testing.T) {
	clock := NewAnimationClock()
	if clock.Now() != 0 {
		t.Fatalf("initial Now: got %v, want 0", clock.Now())
	}

	clock.Advance(0.5)
	clock.Advance(0.25)
	if clock.Now() != 0.75 {
		t.Errorf("Now: got %v, want 0.75", clock.Now())
	}

	clock.SetPaused(true)
	clock.Advance(10)
	if clock.Now() != 0.75 || !clock.IsPaused() {
		t.Errorf("paused clock advanced to %v", clock.Now())
	}

	clock.SetPaused(false)
	clock.Advance(-1)
	if clock.Now() != 0.75 {
		t.Errorf("negative delta should be ignored, got %v", clock.Now())
	}
}
