package timeutil

import (
	"testing"
	"time"
)

func TestRealClock_Now(t *testing.T) {
	clock := RealClock{}
	before := time.Now()
	now := clock.Now()
	after := time.Now()

	if now.Before(before) || now.After(after) {
		t.Errorf("Now() = %v, expected between %v and %v", now, before, after)
	}
}

func TestRealClock_Since(t *testing.T) {
	clock := RealClock{}
	past := time.Now().Add(-time.Second)
	d := clock.Since(past)

	if d < time.Second {
		t.Errorf("Since() returned %v, expected >= 1s", d)
	}
}

func TestRealClock_NewTicker(t *testing.T) {
	clock := RealClock{}
	ticker := clock.NewTicker(10 * time.Millisecond)
	defer ticker.Stop()

	select {
	case <-ticker.C():
		// Ticker fired as expected
	case <-time.After(time.Second):
		t.Error("ticker did not fire")
	}
}

func TestMockClock_Advance(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	clock := NewMockClock(start)
	clock.Advance(90 * time.Second)

	if got := clock.Since(start); got != 90*time.Second {
		t.Errorf("Since() = %v, want 90s", got)
	}
	if !clock.Now().Equal(start.Add(90 * time.Second)) {
		t.Errorf("Now() = %v", clock.Now())
	}
}

func TestMockClock_Ticker(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	clock := NewMockClock(start)
	ticker := clock.NewTicker(time.Minute)

	// Ticker should not tick yet
	clock.Advance(30 * time.Second)
	select {
	case <-ticker.C():
		t.Error("ticker fired too early")
	default:
	}

	clock.Advance(30 * time.Second)
	select {
	case got := <-ticker.C():
		if !got.Equal(start.Add(time.Minute)) {
			t.Errorf("tick at %v", got)
		}
	default:
		t.Error("ticker did not fire after first interval")
	}

	// Next tick is one interval after the last one.
	clock.Advance(59 * time.Second)
	select {
	case <-ticker.C():
		t.Error("ticker fired before second interval")
	default:
	}
}

func TestMockClock_Ticker_Stop(t *testing.T) {
	clock := NewMockClock(time.Now())
	ticker := clock.NewTicker(time.Second)
	ticker.Stop()
	clock.Advance(5 * time.Second)

	select {
	case <-ticker.C():
		t.Error("stopped ticker should not tick")
	default:
		// Expected
	}
}

func TestMockClock_TickerCreated(t *testing.T) {
	clock := NewMockClock(time.Now())

	done := make(chan struct{})
	go func() {
		defer close(done)
		ticker := clock.NewTicker(time.Second)
		defer ticker.Stop()
		<-ticker.C()
	}()

	select {
	case <-clock.TickerCreated():
	case <-time.After(time.Second):
		t.Fatal("ticker creation not signalled")
	}

	clock.Advance(time.Second)
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("goroutine did not receive tick")
	}
}

func TestMockTicker_Trigger(t *testing.T) {
	clock := NewMockClock(time.Now())
	ticker := clock.NewTicker(time.Hour).(*MockTicker)
	now := clock.Now()
	ticker.Trigger(now)

	select {
	case received := <-ticker.C():
		if !received.Equal(now) {
			t.Errorf("got %v, want %v", received, now)
		}
	default:
		t.Error("Trigger did not send tick")
	}
}

func TestClockInterface(t *testing.T) {
	var _ Clock = RealClock{}
	var _ Clock = NewMockClock(time.Time{})
}
